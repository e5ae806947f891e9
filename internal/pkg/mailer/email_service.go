// FILE: internal/pkg/mailer/email_service.go
package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"csupport-chat-be/internal/entity"
)

type IEmailService interface {
	SendEscalationNotice(ticket *entity.Ticket, reason string) error
}

type emailService struct {
	dialer       *gomail.Dialer
	senderEmail  string
	supportInbox string
}

func NewEmailService(host string, port int, username, password, senderEmail, supportInbox string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)

	return &emailService{
		dialer:       d,
		senderEmail:  senderEmail,
		supportInbox: supportInbox,
	}
}

func (s *emailService) SendEscalationNotice(ticket *entity.Ticket, reason string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", s.supportInbox)
	m.SetHeader("Subject", fmt.Sprintf("[%s priority] Ticket escalated: %s", ticket.Priority, ticket.Subject))

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Ticket Escalated</h2>
			<p>A chat session needs a human agent.</p>
			<table cellpadding="4">
				<tr><td><b>Ticket</b></td><td>%s</td></tr>
				<tr><td><b>Session</b></td><td>%s</td></tr>
				<tr><td><b>Customer</b></td><td>%s (%s)</td></tr>
				<tr><td><b>Category</b></td><td>%s</td></tr>
				<tr><td><b>Reason</b></td><td>%s</td></tr>
			</table>
		</div>
	`, ticket.Id, ticket.SessionId, ticket.CustomerName, ticket.UserEmail, ticket.Category, reason)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send escalation notice for %s: %v\n", ticket.Id, err)
		return err
	}

	fmt.Printf("[MAILER] Escalation notice sent for ticket %s\n", ticket.Id)
	return nil
}

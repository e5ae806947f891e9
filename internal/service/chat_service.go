// FILE: internal/service/chat_service.go
package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"csupport-chat-be/internal/constant"
	"csupport-chat-be/internal/dto"
	"csupport-chat-be/internal/entity"
	"csupport-chat-be/internal/pkg/logger"
	"csupport-chat-be/internal/repository/ephemeral"
	"csupport-chat-be/internal/repository/memory"
	"csupport-chat-be/pkg/store"
	"csupport-chat-be/pkg/support/answer"
	"csupport-chat-be/pkg/support/related"
	"csupport-chat-be/pkg/support/ticket"
	"csupport-chat-be/pkg/support/transcript"
)

type IChatService interface {
	// HandleMessage runs the full pipeline for one inbound message. It never
	// returns an error: any fatal failure degrades to a fixed apology reply.
	HandleMessage(ctx context.Context, req *dto.ChatMessageRequest) *dto.ChatMessageResponse
	History(ctx context.Context, sessionID string) ([]*dto.ChatHistoryItem, error)
}

// Narrow collaborator contracts so tests can fake each stage.
type ticketLifecycle interface {
	EnsureOpen(ctx context.Context, p ticket.OpenParams) error
	Escalate(ctx context.Context, p ticket.EscalateParams) error
	Resolve(ctx context.Context, sessionID, userEmail string) error
}

type answerResolver interface {
	Resolve(ctx context.Context, q answer.Query) (*answer.Result, bool)
}

type relatedGenerator interface {
	Questions(ctx context.Context, category string, limit int) []string
}

type resolveScheduler interface {
	Arm(ctx context.Context, sessionID, userEmail string)
	Disarm(ctx context.Context, sessionID string)
}

type transcriptRecorder interface {
	Record(ctx context.Context, sessionID, role, content string, meta *transcript.Meta) error
	History(ctx context.Context, sessionID string) ([]*entity.ChatMessage, error)
}

type chatService struct {
	sessions   *memory.SessionRepository
	transcript transcriptRecorder
	tickets    ticketLifecycle
	answers    answerResolver
	related    relatedGenerator
	scheduler  resolveScheduler
	state      ephemeral.StateStore
	publisher  IPublisherService // optional, suggestion-click analytics
	threshold  int64
	logger     logger.ILogger
}

func NewChatService(
	sessions *memory.SessionRepository,
	recorder transcriptRecorder,
	tickets ticketLifecycle,
	answers answerResolver,
	relatedGen relatedGenerator,
	scheduler resolveScheduler,
	state ephemeral.StateStore,
	publisher IPublisherService,
	escalationThreshold int,
	log logger.ILogger,
) IChatService {
	return &chatService{
		sessions:   sessions,
		transcript: recorder,
		tickets:    tickets,
		answers:    answers,
		related:    relatedGen,
		scheduler:  scheduler,
		state:      state,
		publisher:  publisher,
		threshold:  int64(escalationThreshold),
		logger:     log,
	}
}

func (s *chatService) HandleMessage(ctx context.Context, req *dto.ChatMessageRequest) (resp *dto.ChatMessageResponse) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("ChatService", "Pipeline panicked, sending fallback reply", map[string]interface{}{
				"session_id": req.SessionId,
				"panic":      r,
			})
			resp = &dto.ChatMessageResponse{
				SessionId:        req.SessionId,
				Role:             constant.ChatMessageRoleAssistant,
				Content:          constant.FallbackApologyMessage,
				RelatedQuestions: []string{},
			}
		}
	}()

	text := strings.TrimSpace(req.Content)
	sess := s.resolveSession(req, text)
	meta := sessionMeta(sess)

	if req.IsRelatedQuestion {
		s.trackSuggestionClick(ctx, sess.ID, text)
	}

	if text != "" {
		if err := s.transcript.Record(ctx, sess.ID, constant.ChatMessageRoleUser, text, meta); err != nil {
			s.logger.Warn("ChatService", "Failed to store user message", map[string]interface{}{
				"session_id": sess.ID,
				"error":      err.Error(),
			})
		}
	}

	if err := s.tickets.EnsureOpen(ctx, ticket.OpenParams{
		SessionID:    sess.ID,
		UserEmail:    sess.UserEmail,
		CustomerName: sess.CustomerName,
		Subject:      sess.Subject,
		Category:     sess.Category,
		FirstMessage: text,
	}); err != nil {
		s.logger.Warn("ChatService", "Failed to ensure ticket", map[string]interface{}{
			"session_id": sess.ID,
			"error":      err.Error(),
		})
	}

	// A fresh user message always cancels a pending auto-resolve.
	if err := s.state.SetLastActivity(ctx, sess.ID, time.Now().Unix()); err != nil {
		s.logger.Warn("ChatService", "Failed to stamp activity", map[string]interface{}{
			"session_id": sess.ID,
			"error":      err.Error(),
		})
	}
	s.scheduler.Disarm(ctx, sess.ID)

	normalized := strings.ToLower(text)

	if _, ok := constant.EscalationTriggerPhrases[normalized]; ok {
		return s.escalateOnRequest(ctx, sess, meta)
	}

	if containsAny(normalized, constant.ResolutionKeywords) {
		return s.confirmResolution(ctx, sess, meta)
	}

	if result, ok := s.answers.Resolve(ctx, answer.Query{
		SessionID: sess.ID,
		Text:      text,
		Category:  sess.Category,
	}); ok {
		content := result.Answer
		if answer.SuggestsResolution(result.Answer, text) {
			content += constant.ResolutionPromptSuffix
			s.scheduler.Arm(ctx, sess.ID, sess.UserEmail)
		}
		return s.reply(ctx, sess, meta, content)
	}

	return s.handleUnanswered(ctx, sess, meta, text)
}

func (s *chatService) History(ctx context.Context, sessionID string) ([]*dto.ChatHistoryItem, error) {
	messages, err := s.transcript.History(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.ChatHistoryItem, 0, len(messages))
	for _, msg := range messages {
		items = append(items, &dto.ChatHistoryItem{
			Role:      msg.Role,
			Content:   msg.Content,
			CreatedAt: msg.CreatedAt.Format(time.RFC3339),
		})
	}
	return items, nil
}

func (s *chatService) escalateOnRequest(ctx context.Context, sess *store.Session, meta *transcript.Meta) *dto.ChatMessageResponse {
	if err := s.tickets.Escalate(ctx, ticket.EscalateParams{
		SessionID:    sess.ID,
		UserEmail:    sess.UserEmail,
		CustomerName: sess.CustomerName,
		Subject:      sess.Subject,
		Category:     sess.Category,
		Reason:       "User requested a human agent",
	}); err != nil {
		s.logger.Error("ChatService", "Failed to escalate ticket", map[string]interface{}{
			"session_id": sess.ID,
			"error":      err.Error(),
		})
	}

	if err := s.state.ResetFailure(ctx, sess.ID); err != nil {
		s.logger.Warn("ChatService", "Failed to reset failure counter", map[string]interface{}{
			"session_id": sess.ID,
			"error":      err.Error(),
		})
	}

	return s.reply(ctx, sess, meta, constant.EscalationNoticeMessage)
}

func (s *chatService) confirmResolution(ctx context.Context, sess *store.Session, meta *transcript.Meta) *dto.ChatMessageResponse {
	if err := s.tickets.Resolve(ctx, sess.ID, sess.UserEmail); err != nil {
		s.logger.Error("ChatService", "Failed to resolve ticket", map[string]interface{}{
			"session_id": sess.ID,
			"error":      err.Error(),
		})
	}
	return s.reply(ctx, sess, meta, constant.ResolutionConfirmedMessage)
}

func (s *chatService) handleUnanswered(ctx context.Context, sess *store.Session, meta *transcript.Meta, text string) *dto.ChatMessageResponse {
	count, err := s.state.IncrementFailure(ctx, sess.ID)
	if err != nil {
		s.logger.Warn("ChatService", "Failed to increment failure counter", map[string]interface{}{
			"session_id": sess.ID,
			"error":      err.Error(),
		})
		return s.reply(ctx, sess, meta, constant.ClarificationRequestMessage)
	}

	if count >= s.threshold {
		if err := s.tickets.Escalate(ctx, ticket.EscalateParams{
			SessionID:    sess.ID,
			UserEmail:    sess.UserEmail,
			CustomerName: sess.CustomerName,
			Subject:      sess.Subject,
			Category:     sess.Category,
			Reason:       "User asked: " + text,
		}); err != nil {
			s.logger.Error("ChatService", "Failed to escalate after repeated failures", map[string]interface{}{
				"session_id": sess.ID,
				"error":      err.Error(),
			})
		}
		if err := s.state.ResetFailure(ctx, sess.ID); err != nil {
			s.logger.Warn("ChatService", "Failed to reset failure counter", map[string]interface{}{
				"session_id": sess.ID,
				"error":      err.Error(),
			})
		}
		return s.reply(ctx, sess, meta, constant.ThresholdEscalationMessage)
	}

	return s.reply(ctx, sess, meta, constant.ClarificationRequestMessage)
}

// reply stores the assistant message and attaches related questions. Every
// terminal branch of the pipeline goes through here.
func (s *chatService) reply(ctx context.Context, sess *store.Session, meta *transcript.Meta, content string) *dto.ChatMessageResponse {
	if err := s.transcript.Record(ctx, sess.ID, constant.ChatMessageRoleAssistant, content, meta); err != nil {
		s.logger.Warn("ChatService", "Failed to store assistant message", map[string]interface{}{
			"session_id": sess.ID,
			"error":      err.Error(),
		})
	}

	relatedQuestions := s.related.Questions(ctx, sess.Category, related.DefaultLimit)
	if relatedQuestions == nil {
		relatedQuestions = []string{}
	}

	return &dto.ChatMessageResponse{
		SessionId:        sess.ID,
		Role:             constant.ChatMessageRoleAssistant,
		Content:          content,
		RelatedQuestions: relatedQuestions,
	}
}

// resolveSession merges the request's customer metadata with what was seen
// earlier in the session, so later messages can omit the fields.
func (s *chatService) resolveSession(req *dto.ChatMessageRequest, text string) *store.Session {
	sess, ok := s.sessions.Get(req.SessionId)
	if !ok {
		sess = &store.Session{ID: req.SessionId}
	}

	if req.UserEmail != "" {
		sess.UserEmail = req.UserEmail
	}
	if sess.UserEmail == "" {
		sess.UserEmail = constant.DefaultGuestEmail
	}
	if req.CustomerName != "" {
		sess.CustomerName = req.CustomerName
	}
	if req.Subject != "" {
		sess.Subject = req.Subject
	}
	if req.Category != "" {
		sess.Category = req.Category
	}
	sess.LastQuery = text

	s.sessions.Save(sess)
	return sess
}

func (s *chatService) trackSuggestionClick(ctx context.Context, sessionID, question string) {
	if s.publisher == nil {
		return
	}

	payload, err := json.Marshal(dto.SuggestionClickMessage{
		SessionId: sessionID,
		Question:  question,
	})
	if err != nil {
		return
	}

	if err := s.publisher.Publish(ctx, payload); err != nil {
		s.logger.Warn("ChatService", "Failed to publish suggestion click", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
	}
}

func sessionMeta(sess *store.Session) *transcript.Meta {
	return &transcript.Meta{
		UserEmail:    sess.UserEmail,
		CustomerName: sess.CustomerName,
		Subject:      sess.Subject,
		Category:     sess.Category,
	}
}

func containsAny(haystack string, needles []string) bool {
	for _, needle := range needles {
		if strings.Contains(haystack, needle) {
			return true
		}
	}
	return false
}

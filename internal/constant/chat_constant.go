package constant

const (
	ChatMessageRoleUser      = "user"
	ChatMessageRoleAssistant = "assistant"
	ChatMessageRoleSystem    = "system"
)

// Fixed assistant replies. The frontend renders these verbatim, do not reword
// without coordinating with the client team.
const (
	EscalationNoticeMessage = "I've escalated this case to a human agent. You'll be contacted shortly."

	ThresholdEscalationMessage = "I'm escalating your request to a human agent. You'll be contacted soon."

	ResolutionConfirmedMessage = "Great! I've marked your case as resolved. Thank you for confirming!"

	ClarificationRequestMessage = "I'm not sure about that. Could you rephrase or provide more details?"

	FallbackApologyMessage = "Sorry, something went wrong on our side. Please try again in a moment."

	InactivityResolveMessage = "Marking this case as resolved due to inactivity. If you still need help, just reply and we'll reopen."

	ResolutionPromptSuffix = "\n\n✅ Does this answer resolve your issue? If so, please let me know by saying 'yes, resolved' or 'that helps, thanks'."
)

// EscalationTriggerPhrases match the whole message, case-insensitive, after trim.
var EscalationTriggerPhrases = map[string]struct{}{
	"!escalate":       {},
	"/escalate":       {},
	"escalate now":    {},
	"please escalate": {},
}

// ResolutionKeywords are substring-matched (case-insensitive) against the user
// message to detect a confirmation that the issue is solved.
var ResolutionKeywords = []string{
	"yes, resolved", "that helps, thanks", "resolved", "solved", "fixed",
	"that works", "perfect", "thank you", "thanks", "great", "awesome",
	"that answers it", "that's what i needed", "exactly what i needed",
	"problem solved", "issue resolved", "all set", "good to go",
}

// SolutionIndicators mark an assistant answer as an actionable solution.
var SolutionIndicators = []string{
	"here's how", "follow these steps", "to fix this", "solution is",
	"you need to", "try this", "do the following", "here's what",
	"the issue is", "this should resolve", "this will fix",
}

// ProblemIndicators mark a user message as a problem statement.
var ProblemIndicators = []string{
	"how do i", "how can i", "why is", "what's wrong", "not working",
	"error", "problem", "issue", "trouble", "help", "fix", "solve",
}

// CategoryKeywordMap filters knowledge-base questions per normalized category.
var CategoryKeywordMap = map[string][]string{
	"general":   {"password", "login", "account", "contact", "support", "help"},
	"technical": {"error", "loading", "crash", "bug", "issue", "problem", "fix"},
	"billing":   {"bill", "payment", "subscription", "invoice", "refund", "charge", "price", "cost"},
	"account":   {"profile", "settings", "username", "delete", "export", "privacy"},
}

// FallbackQuestions backstop the related-questions chain when both the
// generative tier and the knowledge base come up short.
var FallbackQuestions = map[string][]string{
	"General": {
		"How do I reset my password?",
		"What are your business hours?",
		"How do I contact customer support?",
		"Where can I find my account settings?",
		"How do I update my profile information?",
	},
	"Technical": {
		"Why is the website loading slowly?",
		"I'm getting an error message, what should I do?",
		"How do I enable two-factor authentication?",
		"The app keeps crashing, how can I fix it?",
		"Why can't I log in to my account?",
	},
	"Billing": {
		"How do I update my payment method?",
		"When will I be charged for my subscription?",
		"How do I cancel my subscription?",
		"Can I get a refund?",
		"How do I download my invoice?",
	},
	"Account": {
		"How do I delete my account?",
		"Can I change my email address?",
		"How do I export my data?",
		"What happens if I forget my username?",
		"How do I enable email notifications?",
	},
}

// CategoryTopics describe each category for the related-questions prompt.
var CategoryTopics = map[string]string{
	"billing":   "customer billing, payments, subscriptions, invoices, and refunds",
	"technical": "technical issues, errors, bugs, and troubleshooting",
	"account":   "user account management, profile settings, and security",
	"general":   "general customer support and common questions",
}

// CategoryExampleQuestions seed the generative related-questions prompt.
var CategoryExampleQuestions = map[string]string{
	"Billing":   "- How do I update my payment method?\n- When will I be charged for my subscription?\n- Can I get a refund for my purchase?",
	"Technical": "- Why is the website loading slowly?\n- How do I fix this error message?\n- The app keeps crashing, what should I do?",
	"Account":   "- How do I change my email address?\n- How do I delete my account?\n- How do I enable two-factor authentication?",
	"General":   "- How do I reset my password?\n- What are your business hours?\n- How do I contact customer support?",
}

// System instructions for the generative answer tiers.
const (
	SupportAgentInstruction = "You are a customer support assistant. Answer clearly and concisely. If steps are needed, provide them as a short list."

	ContextualAgentInstruction = "You are a helpful customer support assistant. Use FAQs if relevant."

	LocalAgentInstruction = "You are a helpful support agent. Be concise."
)

// Ticket description markers. The admin tooling greps for these, keep stable.
const (
	EscalationMarkerPrefix  = "\n\n[Escalated] "
	ResolutionMarkerPrefix  = "\n\n--- RESOLUTION SUMMARY ---\n"
	DefaultTicketFirstEntry = "User started a chat session."
)

const DefaultGuestEmail = "guest@example.com"

package related

import (
	"strings"

	"csupport-chat-be/internal/constant"
)

// CategoryKeyword normalizes a free-form category ("Billing issue") to its
// lookup keyword ("billing"). Unknown or empty categories fold to "general".
func CategoryKeyword(category string) string {
	fields := strings.Fields(category)
	if len(fields) == 0 {
		return "general"
	}
	return strings.ToLower(fields[0])
}

// FallbackKey maps a category to its static fallback list key ("Billing").
func FallbackKey(category string) string {
	keyword := CategoryKeyword(category)
	if keyword == "" {
		return "General"
	}
	return strings.ToUpper(keyword[:1]) + keyword[1:]
}

// FallbackQuestions returns the fixed backstop list for the category;
// General is the default for anything unmapped.
func FallbackQuestions(category string) []string {
	if questions, ok := constant.FallbackQuestions[FallbackKey(category)]; ok {
		return questions
	}
	return constant.FallbackQuestions["General"]
}

package answer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuggestsResolution(t *testing.T) {
	longSolution := "To fix this, follow these steps: open settings, pick security, and reset your password from there."

	tests := []struct {
		name     string
		answer   string
		question string
		want     bool
	}{
		{
			name:     "solution answer to problem question",
			answer:   longSolution,
			question: "How do I reset my password?",
			want:     true,
		},
		{
			name:     "question is not a problem statement",
			answer:   longSolution,
			question: "Tell me about your pricing tiers",
			want:     false,
		},
		{
			name:     "answer has no solution indicator",
			answer:   "Our business hours are Monday to Friday, nine to five, excluding public holidays.",
			question: "Why is my account not working?",
			want:     false,
		},
		{
			name:     "short answers never qualify",
			answer:   "Try this: reboot.",
			question: "How do I fix this error?",
			want:     false,
		},
		{
			name:     "matching is case-insensitive",
			answer:   strings.ToUpper(longSolution),
			question: "WHY IS THE APP NOT WORKING",
			want:     true,
		},
		{
			name:     "empty inputs",
			answer:   "",
			question: "",
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SuggestsResolution(tt.answer, tt.question))
		})
	}
}

package answer

import (
	"strings"

	"csupport-chat-be/internal/constant"
)

const minSubstantialAnswerLength = 50

// SuggestsResolution reports whether an answer looks complete enough to ask
// the customer for a resolution confirmation: the answer reads like a
// solution, the question reads like a problem, and the answer is
// substantial. Deterministic substring matching, no model call.
func SuggestsResolution(answerText, userQuestion string) bool {
	answerLower := strings.ToLower(answerText)
	questionLower := strings.ToLower(userQuestion)

	hasSolution := false
	for _, indicator := range constant.SolutionIndicators {
		if strings.Contains(answerLower, indicator) {
			hasSolution = true
			break
		}
	}

	isProblem := false
	for _, indicator := range constant.ProblemIndicators {
		if strings.Contains(questionLower, indicator) {
			isProblem = true
			break
		}
	}

	return hasSolution && isProblem && len(answerText) > minSubstantialAnswerLength
}

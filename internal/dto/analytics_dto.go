package dto

// SuggestionClickMessage is the payload published when a user picks one of
// the suggested related questions.
type SuggestionClickMessage struct {
	SessionId string `json:"session_id"`
	Question  string `json:"question"`
}

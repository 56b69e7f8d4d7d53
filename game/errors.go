package game

import "errors"

var (
	ErrRoomNotFound            = errors.New("room-not-found")
	ErrRoomFull                = errors.New("room-full")
	ErrNicknameTaken           = errors.New("nickname-taken")
	ErrInvalidNickname         = errors.New("invalid-nickname")
	ErrAlreadyStarted          = errors.New("already-started")
	ErrNotInLobby              = errors.New("not-in-lobby")
	ErrInsufficientPlayers     = errors.New("insufficient-players")
	ErrForbidden               = errors.New("forbidden")
	ErrCodeGenerationExhausted = errors.New("code-generation-exhausted")
)

// Reason identifies why a word submission was rejected. Reasons are part of
// the wire surface so clients can render precise feedback.
type Reason string

const (
	ReasonNotPlaying        Reason = "not-playing"
	ReasonNotYourTurn       Reason = "not-your-turn"
	ReasonInvalidCharacters Reason = "invalid-characters"
	ReasonMissingPrompt     Reason = "missing-prompt"
	ReasonWordRepeated      Reason = "word-repeated"
	ReasonNotInDictionary   Reason = "word-not-in-dictionary"

	// ReasonStale is returned when the dictionary verdict for a submission
	// came back after the turn had already been resolved through another
	// path (timeout, departure, or a faster resubmission).
	ReasonStale Reason = "stale"
)

// SubmitResult is the structured outcome of a word submission, delivered to
// the submitting caller only. Broadcast notification happens separately
// through the event sink.
type SubmitResult struct {
	Accepted bool   `json:"accepted"`
	Reason   Reason `json:"reason,omitempty"`
}

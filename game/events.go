package game

import "time"

// Event is a named notification broadcast to every participant of a room.
// Payloads marshal to the JSON the websocket layer puts on the wire.
type Event struct {
	Name    string `json:"event"`
	Payload any    `json:"payload,omitempty"`
}

const (
	EventRoomStateChanged = "room_state_changed"
	EventTurnChanged      = "turn_changed"
	EventWordAccepted     = "word_accepted"
	EventWordRejected     = "word_rejected"
	EventPlayerEliminated = "player_eliminated"
	EventGameEnded        = "game_ended"
	EventChat             = "chat"
	EventSubmitResult     = "submit_result"
)

type TurnChangedPayload struct {
	PlayerID string `json:"playerId"`
	Prompt   string `json:"prompt"`
	Round    int    `json:"round"`
	Deadline int64  `json:"deadline"` // unix milliseconds
}

type WordAcceptedPayload struct {
	PlayerID string `json:"playerId"`
	Word     string `json:"word"`
}

type WordRejectedPayload struct {
	PlayerID string `json:"playerId"`
	Word     string `json:"word"`
	Reason   Reason `json:"reason"`
}

type PlayerEliminatedPayload struct {
	PlayerID string `json:"playerId"`
}

type GameEndedPayload struct {
	WinnerID *string `json:"winnerId"`
}

type ChatPayload struct {
	From    string `json:"from"`
	Message string `json:"message"`
	At      int64  `json:"at"`
}

func RoomStateChanged(view RoomView) Event {
	return Event{Name: EventRoomStateChanged, Payload: view}
}

func TurnChanged(playerID, prompt string, round int, deadline time.Time) Event {
	return Event{Name: EventTurnChanged, Payload: TurnChangedPayload{
		PlayerID: playerID,
		Prompt:   prompt,
		Round:    round,
		Deadline: deadline.UnixMilli(),
	}}
}

func WordAccepted(playerID, word string) Event {
	return Event{Name: EventWordAccepted, Payload: WordAcceptedPayload{PlayerID: playerID, Word: word}}
}

func WordRejected(playerID, word string, reason Reason) Event {
	return Event{Name: EventWordRejected, Payload: WordRejectedPayload{PlayerID: playerID, Word: word, Reason: reason}}
}

func PlayerEliminated(playerID string) Event {
	return Event{Name: EventPlayerEliminated, Payload: PlayerEliminatedPayload{PlayerID: playerID}}
}

func GameEnded(winnerID *string) Event {
	return Event{Name: EventGameEnded, Payload: GameEndedPayload{WinnerID: winnerID}}
}

func Chat(from, message string, at time.Time) Event {
	return Event{Name: EventChat, Payload: ChatPayload{From: from, Message: message, At: at.UnixMilli()}}
}

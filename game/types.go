package game

import "time"

type Status int

const (
	StatusLobby Status = iota
	StatusPlaying
	StatusEnded
)

func (s Status) String() string {
	switch s {
	case StatusLobby:
		return "lobby"
	case StatusPlaying:
		return "playing"
	case StatusEnded:
		return "ended"
	}
	return "unknown"
}

const (
	MaxPlayers        = 8
	MinPlayersToStart = 2

	DefaultTurnSeconds = 10
	MinTurnSeconds     = 5
	MaxTurnSeconds     = 30

	DefaultLives = 3
	MinLives     = 1
	MaxLives     = 5

	MinWordLength = 2
	MaxWordLength = 40

	MinNicknameLength = 2
	MaxNicknameLength = 16
)

// Options is the lobby-time configuration a game is started with.
//
// StrictRejects is the single decision point for whether a rejected
// submission (bad characters, missing prompt, repeated or unknown word)
// resolves the turn like a timeout. When false a rejection is a free retry
// and the turn timer keeps running.
type Options struct {
	TurnSeconds   int  `json:"turnSeconds"`
	Lives         int  `json:"lives"`
	StrictRejects bool `json:"strictRejects"`
}

func DefaultOptions() Options {
	return Options{TurnSeconds: DefaultTurnSeconds, Lives: DefaultLives}
}

// sanitized fills zero values with defaults and clamps the rest to bounds.
func (o Options) sanitized() Options {
	if o.TurnSeconds == 0 {
		o.TurnSeconds = DefaultTurnSeconds
	}
	if o.Lives == 0 {
		o.Lives = DefaultLives
	}
	o.TurnSeconds = min(max(o.TurnSeconds, MinTurnSeconds), MaxTurnSeconds)
	o.Lives = min(max(o.Lives, MinLives), MaxLives)
	return o
}

func (o Options) turnDuration() time.Duration {
	return time.Duration(o.TurnSeconds) * time.Second
}

type Player struct {
	ID         string
	Nickname   string
	Lives      int
	Eliminated bool
	JoinedAt   time.Time
}

package game

import (
	"context"
	"time"
)

// Oracle supplies prompt fragments and answers dictionary membership.
// CheckWord may hit the network or disk; the room never calls it from its
// own goroutine.
type Oracle interface {
	NextPrompt() string
	CheckWord(ctx context.Context, word string) (bool, error)
}

// TurnTimer is a cancellable armed deadline. *time.Timer satisfies it.
type TurnTimer interface {
	Stop() bool
}

// TimerScheduler arms deadline callbacks. Injectable so tests fire
// deadlines deterministically.
type TimerScheduler interface {
	AfterFunc(d time.Duration, fn func()) TurnTimer
}

type realScheduler struct{}

func (realScheduler) AfterFunc(d time.Duration, fn func()) TurnTimer {
	return time.AfterFunc(d, fn)
}

func NewTimerScheduler() TimerScheduler { return realScheduler{} }

// EventSink receives typed state-change notifications after the mutation
// they describe has completed. Implemented by the transport layer.
type EventSink interface {
	Broadcast(roomCode string, ev Event)
}

// WinRecorder persists a finished game's winner. May be nil.
type WinRecorder interface {
	RecordWin(ctx context.Context, playerID string) error
}

// roomParent is the registry seen from inside a room actor.
type roomParent interface {
	forget(code string)
}

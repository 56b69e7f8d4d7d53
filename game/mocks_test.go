package game

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"
)

// --- Oracle ---

type MockOracle struct {
	mock.Mock
}

func (m *MockOracle) NextPrompt() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockOracle) CheckWord(ctx context.Context, word string) (bool, error) {
	args := m.Called(ctx, word)
	return args.Bool(0), args.Error(1)
}

// --- WinRecorder ---

type MockWinRecorder struct {
	mock.Mock
	recorded chan string
}

func NewMockWinRecorder() *MockWinRecorder {
	return &MockWinRecorder{recorded: make(chan string, 8)}
}

func (m *MockWinRecorder) RecordWin(ctx context.Context, playerID string) error {
	args := m.Called(ctx, playerID)
	if m.recorded != nil {
		m.recorded <- playerID
	}
	return args.Error(0)
}

// --- NetworkSession ---

type MockNetworkSession struct {
	mock.Mock
}

func (m *MockNetworkSession) Write(data []byte) error {
	args := m.Called(data)
	return args.Error(0)
}

func (m *MockNetworkSession) Read() ([]byte, error) {
	args := m.Called()
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockNetworkSession) Ping() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockNetworkSession) Close(reason string) {
	m.Called(reason)
}

// --- EventSink recording every broadcast ---

type recordingSink struct {
	mu     sync.Mutex
	events []Event
}

func (s *recordingSink) Broadcast(roomCode string, ev Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
}

func (s *recordingSink) names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.events))
	for _, ev := range s.events {
		out = append(out, ev.Name)
	}
	return out
}

func (s *recordingSink) last(name string) (Event, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(s.events) - 1; i >= 0; i-- {
		if s.events[i].Name == name {
			return s.events[i], true
		}
	}
	return Event{}, false
}

func (s *recordingSink) count(name string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, ev := range s.events {
		if ev.Name == name {
			n++
		}
	}
	return n
}

func (s *recordingSink) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = nil
}

// --- manual TimerScheduler ---

type fakeTimer struct {
	fn      func()
	stopped bool
}

func (t *fakeTimer) Stop() bool {
	wasRunning := !t.stopped
	t.stopped = true
	return wasRunning
}

type fakeScheduler struct {
	mu     sync.Mutex
	timers []*fakeTimer
}

func (s *fakeScheduler) AfterFunc(d time.Duration, fn func()) TurnTimer {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &fakeTimer{fn: fn}
	s.timers = append(s.timers, t)
	return t
}

// fireLatest triggers the most recently armed timer the way the runtime
// would, unless it was already cancelled.
func (s *fakeScheduler) fireLatest() {
	s.mu.Lock()
	var t *fakeTimer
	if len(s.timers) > 0 {
		t = s.timers[len(s.timers)-1]
	}
	s.mu.Unlock()
	if t != nil && !t.stopped {
		t.fn()
	}
}

// fireAll replays every armed timer callback, stopped or not. Used to prove
// stale fires are ignored by the room itself, not just by timer bookkeeping.
func (s *fakeScheduler) fireAll() {
	s.mu.Lock()
	timers := make([]*fakeTimer, len(s.timers))
	copy(timers, s.timers)
	s.mu.Unlock()
	for _, t := range timers {
		t.fn()
	}
}

func (s *fakeScheduler) armedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, t := range s.timers {
		if !t.stopped {
			n++
		}
	}
	return n
}

// --- dictionary dispatch collector ---

// checkCollector replaces the room's asynchronous dictionary dispatch so a
// test can hold verdicts and deliver them at a chosen moment.
type checkCollector struct {
	pending []pendingCheck
}

func (c *checkCollector) dispatch(pc pendingCheck) {
	c.pending = append(c.pending, pc)
}

func (c *checkCollector) pop() pendingCheck {
	pc := c.pending[0]
	c.pending = c.pending[1:]
	return pc
}

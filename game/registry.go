package game

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const (
	janitorInterval   = time.Minute
	endedRetention    = 5 * time.Minute
	idleRoomRetention = 30 * time.Minute
)

// Registry owns the set of active rooms. The map is the only cross-room
// shared structure; it is guarded by its own lock, independent of each
// room's actor.
type Registry struct {
	locker sync.RWMutex
	rooms  map[string]*Room

	oracle    Oracle
	scheduler TimerScheduler
	sink      EventSink
	rankings  WinRecorder
	now       func() time.Time
	log       zerolog.Logger
}

type RegistryOption func(*Registry)

func WithScheduler(s TimerScheduler) RegistryOption {
	return func(r *Registry) { r.scheduler = s }
}

func WithClock(now func() time.Time) RegistryOption {
	return func(r *Registry) { r.now = now }
}

func NewRegistry(oracle Oracle, sink EventSink, rankings WinRecorder, log zerolog.Logger, opts ...RegistryOption) *Registry {
	reg := &Registry{
		rooms:     make(map[string]*Room),
		oracle:    oracle,
		scheduler: NewTimerScheduler(),
		sink:      sink,
		rankings:  rankings,
		now:       time.Now,
		log:       log,
	}
	for _, opt := range opts {
		opt(reg)
	}
	return reg
}

// CreateRoom allocates a unique code and starts the room's actor with the
// owner as its sole player.
func (reg *Registry) CreateRoom(ctx context.Context, ownerID, nickname string, opts Options) (RoomView, error) {
	nick, ok := validateNickname(nickname)
	if !ok {
		return RoomView{}, ErrInvalidNickname
	}

	reg.locker.Lock()
	code, err := generateCode(func(c string) bool {
		_, exists := reg.rooms[c]
		return exists
	})
	if err != nil {
		reg.locker.Unlock()
		reg.log.Error().Err(err).Msg("room code space exhausted")
		return RoomView{}, err
	}

	room := newRoom(code, Player{ID: ownerID, Nickname: nick}, opts, roomDeps{
		oracle:    reg.oracle,
		scheduler: reg.scheduler,
		sink:      reg.sink,
		rankings:  reg.rankings,
		parent:    reg,
		now:       reg.now,
		log:       reg.log,
	})
	reg.rooms[code] = room
	reg.locker.Unlock()

	go room.run()
	reg.log.Info().Str("room", code).Str("owner", ownerID).Msg("room created")

	var view RoomView
	err = room.do(ctx, func() { view = room.publicView() })
	return view, err
}

func (reg *Registry) roomByCode(code string) (*Room, error) {
	reg.locker.RLock()
	room, exists := reg.rooms[code]
	reg.locker.RUnlock()
	if !exists {
		return nil, ErrRoomNotFound
	}
	return room, nil
}

func (reg *Registry) JoinRoom(ctx context.Context, code, playerID, nickname string) (RoomView, error) {
	nick, ok := validateNickname(nickname)
	if !ok {
		return RoomView{}, ErrInvalidNickname
	}
	room, err := reg.roomByCode(code)
	if err != nil {
		return RoomView{}, err
	}
	var (
		view    RoomView
		joinErr error
	)
	if err := room.do(ctx, func() { view, joinErr = room.handleJoin(playerID, nick) }); err != nil {
		return RoomView{}, err
	}
	return view, joinErr
}

func (reg *Registry) LeaveRoom(ctx context.Context, code, playerID string) error {
	room, err := reg.roomByCode(code)
	if err != nil {
		return err
	}
	return room.do(ctx, func() { room.handleLeave(playerID) })
}

func (reg *Registry) UpdateOptions(ctx context.Context, code, requesterID string, opts Options) (RoomView, error) {
	room, err := reg.roomByCode(code)
	if err != nil {
		return RoomView{}, err
	}
	var (
		view      RoomView
		updateErr error
	)
	if err := room.do(ctx, func() { view, updateErr = room.handleUpdateOptions(requesterID, opts) }); err != nil {
		return RoomView{}, err
	}
	return view, updateErr
}

func (reg *Registry) StartGame(ctx context.Context, code, requesterID string) error {
	room, err := reg.roomByCode(code)
	if err != nil {
		return err
	}
	var startErr error
	if err := room.do(ctx, func() { startErr = room.handleStartGame(requesterID) }); err != nil {
		return err
	}
	return startErr
}

// SubmitWord runs the validation pipeline. The reply may come from the
// asynchronous dictionary verdict, so the wait is bounded by ctx rather than
// by the room command completing.
func (reg *Registry) SubmitWord(ctx context.Context, code, playerID, word string) (SubmitResult, error) {
	room, err := reg.roomByCode(code)
	if err != nil {
		return SubmitResult{}, err
	}

	reply := make(chan SubmitResult, 1)
	if err := room.do(ctx, func() { room.handleSubmitWord(playerID, word, reply) }); err != nil {
		return SubmitResult{}, err
	}

	select {
	case res := <-reply:
		return res, nil
	case <-room.closed:
		return SubmitResult{}, ErrRoomNotFound
	case <-ctx.Done():
		return SubmitResult{}, ctx.Err()
	}
}

func (reg *Registry) View(ctx context.Context, code string) (RoomView, error) {
	room, err := reg.roomByCode(code)
	if err != nil {
		return RoomView{}, err
	}
	var view RoomView
	err = room.do(ctx, func() { view = room.publicView() })
	return view, err
}

// forget drops a room from the map. Called by the room's own actor once it
// has shut down, and by the janitor.
func (reg *Registry) forget(code string) {
	reg.locker.Lock()
	delete(reg.rooms, code)
	reg.locker.Unlock()
	reg.log.Info().Str("room", code).Msg("room removed")
}

// RunJanitor periodically sweeps rooms that are empty, long ended, or idle.
// Blocks until ctx is cancelled.
func (reg *Registry) RunJanitor(ctx context.Context) {
	ticker := time.NewTicker(janitorInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			reg.sweep()
		}
	}
}

func (reg *Registry) sweep() {
	reg.locker.RLock()
	rooms := make([]*Room, 0, len(reg.rooms))
	for _, room := range reg.rooms {
		rooms = append(rooms, room)
	}
	reg.locker.RUnlock()

	now := reg.now()
	for _, room := range rooms {
		room.post(func() {
			expired := len(room.players) == 0 ||
				(room.status == StatusEnded && now.Sub(room.endedAt) > endedRetention) ||
				now.Sub(room.lastActive) > idleRoomRetention
			if !expired {
				return
			}
			room.log.Info().Msg("sweeping expired room")
			room.shutdown()
			reg.forget(room.code)
		})
	}
}

// RoomCount reports the number of active rooms, for health reporting.
func (reg *Registry) RoomCount() int {
	reg.locker.RLock()
	defer reg.locker.RUnlock()
	return len(reg.rooms)
}

package game

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/samber/lo"
)

const (
	cmdBufferSize          = 256
	dictionaryCheckTimeout = 5 * time.Second
	recordWinTimeout       = 5 * time.Second
)

// Room is one game session. All state below the channel fields is owned by
// the actor goroutine running run(); the only way in is a command on cmds.
// Both triggers that race on a turn — a player action and the deadline timer
// firing — arrive through the same channel, so every mutation is serialized.
type Room struct {
	code    string
	ownerID string
	status  Status
	players []*Player // insertion order, defines rotation
	options Options

	usedWords       map[string]struct{}
	currentPrompt   string
	currentPlayerID string
	round           int

	turnTimer    TurnTimer
	turnDeadline time.Time

	createdAt  time.Time
	lastActive time.Time
	endedAt    time.Time

	oracle    Oracle
	scheduler TimerScheduler
	sink      EventSink
	rankings  WinRecorder
	parent    roomParent
	now       func() time.Time
	log       zerolog.Logger

	cmds    chan func()
	closed  chan struct{}
	stopped bool

	// dispatchCheck hands a submission that passed the synchronous checks to
	// the oracle off the actor goroutine. Swapped out by tests.
	dispatchCheck func(pc pendingCheck)
}

// pendingCheck is a submission awaiting a dictionary verdict. playerID and
// round are the freshness token: if either differs by the time the verdict
// arrives, the turn was resolved through another path and the verdict is
// applied as a no-op.
type pendingCheck struct {
	playerID string
	round    int
	word     string
	reply    chan<- SubmitResult
}

func (pc pendingCheck) deliver(res SubmitResult) {
	if pc.reply == nil {
		return
	}
	select {
	case pc.reply <- res:
	default:
	}
}

type roomDeps struct {
	oracle    Oracle
	scheduler TimerScheduler
	sink      EventSink
	rankings  WinRecorder
	parent    roomParent
	now       func() time.Time
	log       zerolog.Logger
}

func newRoom(code string, owner Player, opts Options, deps roomDeps) *Room {
	if deps.now == nil {
		deps.now = time.Now
	}
	r := &Room{
		code:      code,
		ownerID:   owner.ID,
		status:    StatusLobby,
		players:   []*Player{&owner},
		options:   opts.sanitized(),
		usedWords: make(map[string]struct{}),
		createdAt: deps.now(),
		oracle:    deps.oracle,
		scheduler: deps.scheduler,
		sink:      deps.sink,
		rankings:  deps.rankings,
		parent:    deps.parent,
		now:       deps.now,
		log:       deps.log.With().Str("room", code).Logger(),
		cmds:      make(chan func(), cmdBufferSize),
		closed:    make(chan struct{}),
	}
	r.lastActive = r.createdAt
	owner.Lives = r.options.Lives
	owner.JoinedAt = r.createdAt
	r.dispatchCheck = r.asyncDictionaryCheck
	return r
}

func (r *Room) run() {
	for {
		select {
		case cmd := <-r.cmds:
			cmd()
		case <-r.closed:
			return
		}
	}
}

// do executes fn on the actor goroutine and waits for it to complete.
func (r *Room) do(ctx context.Context, fn func()) error {
	started := make(chan struct{})
	done := make(chan struct{})
	wrapped := func() {
		close(started)
		fn()
		close(done)
	}
	select {
	case r.cmds <- wrapped:
	case <-r.closed:
		return ErrRoomNotFound
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case <-done:
		return nil
	case <-r.closed:
		// fn itself may be what shut the room down, in which case it ran to
		// completion and the call succeeded.
		select {
		case <-started:
			<-done
			return nil
		default:
			return ErrRoomNotFound
		}
	case <-ctx.Done():
		return ctx.Err()
	}
}

// post enqueues fn without waiting. Used by timer callbacks and dictionary
// verdicts, which must never block.
func (r *Room) post(fn func()) {
	select {
	case r.cmds <- fn:
	case <-r.closed:
	}
}

func (r *Room) touch() {
	r.lastActive = r.now()
}

// shutdown releases the actor. Idempotent; only ever called on the actor
// goroutine.
func (r *Room) shutdown() {
	if r.stopped {
		return
	}
	r.stopped = true
	r.cancelTurnTimer()
	close(r.closed)
}

func (r *Room) playerByID(id string) *Player {
	p, _ := lo.Find(r.players, func(p *Player) bool { return p.ID == id })
	return p
}

func (r *Room) alivePlayers() []*Player {
	return lo.Filter(r.players, func(p *Player, _ int) bool { return !p.Eliminated })
}

// nextAliveAfter scans circularly in join order starting just after from,
// skipping eliminated players. from itself is a valid result on wrap-around.
// Returns nil when nobody is alive.
func (r *Room) nextAliveAfter(from *Player) *Player {
	start := slices.Index(r.players, from)
	if start < 0 {
		return nil
	}
	n := len(r.players)
	for i := 1; i <= n; i++ {
		candidate := r.players[(start+i)%n]
		if !candidate.Eliminated {
			return candidate
		}
	}
	return nil
}

// --- lobby operations ---

func (r *Room) handleJoin(playerID, nickname string) (RoomView, error) {
	if existing := r.playerByID(playerID); existing != nil {
		// Rejoin of a known player is idempotent.
		return r.publicView(), nil
	}
	if r.status != StatusLobby {
		return RoomView{}, ErrAlreadyStarted
	}
	if len(r.players) >= MaxPlayers {
		return RoomView{}, ErrRoomFull
	}
	for _, p := range r.players {
		if strings.EqualFold(p.Nickname, nickname) {
			return RoomView{}, ErrNicknameTaken
		}
	}

	r.touch()
	r.players = append(r.players, &Player{
		ID:       playerID,
		Nickname: nickname,
		Lives:    r.options.Lives,
		JoinedAt: r.now(),
	})
	r.log.Info().Str("player", playerID).Str("nickname", nickname).Msg("player joined")
	r.sink.Broadcast(r.code, RoomStateChanged(r.publicView()))
	return r.publicView(), nil
}

func (r *Room) handleUpdateOptions(requesterID string, opts Options) (RoomView, error) {
	if r.status != StatusLobby {
		return RoomView{}, ErrNotInLobby
	}
	if requesterID != r.ownerID {
		return RoomView{}, ErrForbidden
	}
	r.touch()
	r.options = opts.sanitized()
	for _, p := range r.players {
		p.Lives = r.options.Lives
	}
	r.sink.Broadcast(r.code, RoomStateChanged(r.publicView()))
	return r.publicView(), nil
}

func (r *Room) handleLeave(playerID string) {
	p := r.playerByID(playerID)
	if p == nil {
		return
	}
	r.touch()

	// A departing current player must resolve their turn first so rotation
	// never points at a removed player.
	if r.status == StatusPlaying && r.currentPlayerID == playerID {
		r.resolveFailure(p)
	}

	idx := slices.Index(r.players, p)
	r.players = slices.Delete(r.players, idx, idx+1)
	r.log.Info().Str("player", playerID).Msg("player left")

	if len(r.players) == 0 {
		r.shutdown()
		if r.parent != nil {
			r.parent.forget(r.code)
		}
		return
	}

	if r.ownerID == playerID {
		r.ownerID = r.players[0].ID
	}

	// Departures shrink the alive count just like eliminations do.
	if r.status == StatusPlaying && len(r.alivePlayers()) <= 1 {
		r.endGame()
	}

	r.sink.Broadcast(r.code, RoomStateChanged(r.publicView()))
}

// --- turn scheduling ---

func (r *Room) handleStartGame(requesterID string) error {
	if requesterID != r.ownerID {
		return ErrForbidden
	}
	if len(r.players) < MinPlayersToStart {
		return ErrInsufficientPlayers
	}
	if r.status != StatusLobby {
		return ErrAlreadyStarted
	}

	r.touch()
	for _, p := range r.players {
		p.Lives = r.options.Lives
		p.Eliminated = false
	}
	r.usedWords = make(map[string]struct{})
	r.round = 1
	r.status = StatusPlaying
	r.currentPlayerID = r.players[0].ID
	r.log.Info().Int("players", len(r.players)).Msg("game started")
	r.sink.Broadcast(r.code, RoomStateChanged(r.publicView()))
	r.beginTurn()
	return nil
}

// beginTurn assigns a prompt and arms the deadline timer for the current
// player. The armed callback captures (playerID, round) so a late fire for
// an already-resolved turn identifies itself as stale.
func (r *Room) beginTurn() {
	r.currentPrompt = r.oracle.NextPrompt()
	r.turnDeadline = r.now().Add(r.options.turnDuration())

	playerID, round := r.currentPlayerID, r.round
	r.turnTimer = r.scheduler.AfterFunc(r.options.turnDuration(), func() {
		r.post(func() { r.handleTurnTimeout(playerID, round) })
	})

	r.sink.Broadcast(r.code, TurnChanged(playerID, r.currentPrompt, round, r.turnDeadline))
}

func (r *Room) cancelTurnTimer() {
	if r.turnTimer != nil {
		r.turnTimer.Stop()
		r.turnTimer = nil
	}
}

func (r *Room) handleTurnTimeout(playerID string, round int) {
	if r.status != StatusPlaying || r.currentPlayerID != playerID || r.round != round {
		r.log.Debug().Str("player", playerID).Int("round", round).Msg("stale turn timer ignored")
		return
	}
	r.touch()
	r.log.Info().Str("player", playerID).Int("round", round).Msg("turn timed out")
	r.resolveFailure(r.playerByID(playerID))
}

// resolveFailure is the timeout-style resolution: the player loses a life,
// may be eliminated, and the turn advances. Cancelling the outstanding timer
// is always the first step, making the resolution the one and only one for
// this turn.
func (r *Room) resolveFailure(p *Player) {
	r.cancelTurnTimer()
	p.Lives--
	if p.Lives <= 0 {
		p.Lives = 0
		p.Eliminated = true
		r.log.Info().Str("player", p.ID).Msg("player eliminated")
		r.sink.Broadcast(r.code, PlayerEliminated(p.ID))
	}
	r.advanceTurn(p)
}

func (r *Room) resolveSuccess(p *Player, word string) {
	r.cancelTurnTimer()
	r.usedWords[word] = struct{}{}
	r.sink.Broadcast(r.code, WordAccepted(p.ID, word))
	r.advanceTurn(p)
}

// advanceTurn moves to the next alive player in join order, or ends the
// game when at most one player remains alive.
func (r *Room) advanceTurn(from *Player) {
	alive := r.alivePlayers()
	if len(alive) <= 1 {
		r.endGame()
		return
	}
	next := r.nextAliveAfter(from)
	if next == nil {
		// Unreachable given the termination rule above; fail safe.
		r.log.Error().Msg("no alive player found while advancing turn")
		r.endGame()
		return
	}
	r.round++
	r.currentPlayerID = next.ID
	r.beginTurn()
}

func (r *Room) endGame() {
	r.cancelTurnTimer()
	r.status = StatusEnded
	r.currentPrompt = ""
	r.currentPlayerID = ""
	r.endedAt = r.now()

	var winnerID *string
	if alive := r.alivePlayers(); len(alive) == 1 {
		id := alive[0].ID
		winnerID = &id
	}
	if winnerID != nil {
		r.log.Info().Str("winner", *winnerID).Msg("game ended")
		r.recordWin(*winnerID)
	} else {
		r.log.Info().Msg("game ended with no winner")
	}
	r.sink.Broadcast(r.code, GameEnded(winnerID))
}

func (r *Room) recordWin(playerID string) {
	if r.rankings == nil {
		return
	}
	log := r.log
	recorder := r.rankings
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), recordWinTimeout)
		defer cancel()
		if err := recorder.RecordWin(ctx, playerID); err != nil {
			log.Error().Err(err).Str("player", playerID).Msg("failed to record win")
		}
	}()
}

// --- word submission ---

func (r *Room) handleSubmitWord(playerID, rawWord string, reply chan<- SubmitResult) {
	r.touch()
	word, reason, ok := r.checkSubmission(playerID, rawWord)
	if !ok {
		r.resolveReject(playerID, word, reason)
		pendingCheck{reply: reply}.deliver(SubmitResult{Accepted: false, Reason: reason})
		return
	}

	r.dispatchCheck(pendingCheck{
		playerID: playerID,
		round:    r.round,
		word:     word,
		reply:    reply,
	})
}

func (r *Room) asyncDictionaryCheck(pc pendingCheck) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), dictionaryCheckTimeout)
		defer cancel()
		valid, err := r.oracle.CheckWord(ctx, pc.word)
		if err != nil {
			r.log.Warn().Err(err).Str("word", pc.word).Msg("dictionary check failed")
			valid = false
		}
		r.post(func() { r.handleVerdict(pc, valid) })
	}()
}

// handleVerdict commits or discards an asynchronous dictionary result. The
// room may have moved on while the check ran, so the captured state is
// re-validated before any mutation.
func (r *Room) handleVerdict(pc pendingCheck, valid bool) {
	if r.status != StatusPlaying || r.currentPlayerID != pc.playerID || r.round != pc.round {
		pc.deliver(SubmitResult{Accepted: false, Reason: ReasonStale})
		return
	}
	if _, used := r.usedWords[pc.word]; used {
		pc.deliver(SubmitResult{Accepted: false, Reason: ReasonStale})
		return
	}
	r.touch()
	if !valid {
		r.resolveReject(pc.playerID, pc.word, ReasonNotInDictionary)
		pc.deliver(SubmitResult{Accepted: false, Reason: ReasonNotInDictionary})
		return
	}
	r.resolveSuccess(r.playerByID(pc.playerID), pc.word)
	pc.deliver(SubmitResult{Accepted: true})
}

// resolveReject is the one decision point for rejected submissions. Under
// StrictRejects a rejection of the current player's own attempt resolves the
// turn exactly like a timeout; otherwise the turn stays live and the timer
// keeps running. Failures of the turn-ownership checks never cost anyone a
// life under either policy.
func (r *Room) resolveReject(playerID, word string, reason Reason) {
	r.sink.Broadcast(r.code, WordRejected(playerID, word, reason))
	if !r.options.StrictRejects {
		return
	}
	if reason == ReasonNotPlaying || reason == ReasonNotYourTurn {
		return
	}
	r.resolveFailure(r.playerByID(playerID))
}

package room

import (
	"context"
	"errors"
	"sync"
	"time"

	"word-duel/internal/config"
	"word-duel/internal/duel"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

var (
	ErrRoomNotFound   = errors.New("room not found")
	ErrRoomFull       = errors.New("room full")
	ErrActionRejected = errors.New("action rejected")
)

type ActionKind string

const (
	ActionSetWord     ActionKind = "set-word"
	ActionGuessLetter ActionKind = "guess-letter"
	ActionNewMatch    ActionKind = "new-match"
)

type Action struct {
	Kind   ActionKind
	Word   string
	Letter string
}

type Store interface {
	GetRoom(code string) (*Room, bool)
	SaveRoom(r *Room)
	DeleteRoom(code string)
	Rooms() []*Room
	Len() int
}

// Registry owns the collection of live rooms. The store's map is the only
// resource shared across rooms; everything inside a room is guarded by
// that room's own mutex. Broadcasts are emitted while the room is locked
// so both participants observe every transition in the same order.
type Registry struct {
	store Store
	cfg   config.Config
	clock clockwork.Clock
	hub   Broadcaster

	createMu sync.Mutex

	timersMu sync.Mutex
	timers   map[string]settleTimer
}

func NewRegistry(s Store, cfg config.Config, clock clockwork.Clock) *Registry {
	return &Registry{
		store:  s,
		cfg:    cfg,
		clock:  clock,
		timers: make(map[string]settleTimer),
	}
}

// SetBroadcaster wires the gateway in after construction; the hub needs
// the registry first.
func (m *Registry) SetBroadcaster(b Broadcaster) {
	m.hub = b
}

// CreateRoom builds a room with the caller as host and stores it under a
// code unique among live rooms.
func (m *Registry) CreateRoom(hostID string, maxAttempts int) *Room {
	if maxAttempts <= 0 {
		maxAttempts = m.cfg.MaxAttempts
	}

	m.createMu.Lock()
	code := randCode(6)
	for _, exists := m.store.GetRoom(code); exists; _, exists = m.store.GetRoom(code) {
		code = randCode(6)
	}
	r := &Room{
		Code:      code,
		HostID:    hostID,
		State:     duel.NewState(maxAttempts),
		CreatedAt: m.clock.Now(),
	}
	m.store.SaveRoom(r)
	m.createMu.Unlock()

	log.Info().Str("room", code).Str("host", hostID).Int("max_attempts", maxAttempts).Msg("room created")
	return r
}

// JoinRoom fills the guest seat. The seat is set at most once for the life
// of the room; joining also clears a pending host-disconnect grace mark.
// Returns the snapshot the guest needs for initial sync.
func (m *Registry) JoinRoom(code, guestID string) (duel.PublicState, error) {
	r, ok := m.store.GetRoom(code)
	if !ok {
		return duel.PublicState{}, ErrRoomNotFound
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// The room may have been destroyed while we waited for its lock;
	// mutating it now would resurrect it in the store.
	if cur, ok := m.store.GetRoom(code); !ok || cur != r {
		return duel.PublicState{}, ErrRoomNotFound
	}
	if r.GuestID != "" {
		return duel.PublicState{}, ErrRoomFull
	}
	r.GuestID = guestID
	r.HostDisconnectedAt = time.Time{}
	m.store.SaveRoom(r)

	snap := r.snapshot()
	m.hub.Broadcast(code, "player-joined", snap)
	log.Info().Str("room", code).Str("guest", guestID).Msg("guest joined")
	return snap, nil
}

// Dispatch resolves the actor's seat and forwards the action to the duel
// state. Role and phase mismatches come back as errors; the gateway turns
// them into silence.
func (m *Registry) Dispatch(code, actorID string, act Action) error {
	r, ok := m.store.GetRoom(code)
	if !ok {
		return ErrRoomNotFound
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if cur, ok := m.store.GetRoom(code); !ok || cur != r {
		return ErrRoomNotFound
	}
	role, ok := r.roleOf(actorID)
	if !ok {
		return ErrActionRejected
	}

	switch act.Kind {
	case ActionSetWord:
		return m.setWord(r, role, act.Word)
	case ActionGuessLetter:
		return m.guessLetter(r, role, act.Letter)
	case ActionNewMatch:
		return m.newMatch(r)
	default:
		return ErrActionRejected
	}
}

func (m *Registry) setWord(r *Room, role duel.Role, word string) error {
	if !r.ready() {
		return ErrActionRejected
	}
	if err := r.State.SetSecret(role, word); err != nil {
		return err
	}
	m.store.SaveRoom(r)
	m.hub.Broadcast(r.Code, "game-started", r.snapshot())
	return nil
}

func (m *Registry) guessLetter(r *Room, role duel.Role, letter string) error {
	res, err := r.State.Guess(role, letter)
	if err != nil {
		return err
	}
	m.store.SaveRoom(r)
	m.hub.Broadcast(r.Code, "guess-result", gin.H{
		"letter":    res.Letter,
		"correct":   res.Correct,
		"gameState": r.snapshot(),
	})

	if !res.TurnOver {
		return nil
	}

	outcome, err := r.State.CompleteTurn()
	if err != nil {
		return err
	}
	m.scheduleSettle(r, outcome)
	return nil
}

func (m *Registry) newMatch(r *Room) error {
	if !r.ready() {
		return ErrActionRejected
	}
	// Invalidate any pending settle transition before wiping state.
	r.gen++
	m.cancelTimer(r.Code)
	r.State.ResetMatch()
	m.store.SaveRoom(r)
	m.hub.Broadcast(r.Code, "match-reset", r.snapshot())
	log.Info().Str("room", r.Code).Msg("match reset")
	return nil
}

// OnDisconnect routes a dropped connection. A host who leaves before any
// guest ever joined gets a grace period: the room is only marked, and the
// sweeper reclaims it if nobody joins in time. Any other participant
// dropping destroys the room immediately.
func (m *Registry) OnDisconnect(actorID string) {
	for _, r := range m.store.Rooms() {
		r.mu.Lock()
		switch {
		case r.HostID == actorID && r.GuestID == "":
			r.HostDisconnectedAt = m.clock.Now()
			m.store.SaveRoom(r)
			log.Info().Str("room", r.Code).Msg("host disconnected, grace period started")
		case r.HostID == actorID || r.GuestID == actorID:
			m.hub.Broadcast(r.Code, "player-disconnected", nil)
			m.deleteLocked(r)
			log.Info().Str("room", r.Code).Str("participant", actorID).Msg("participant disconnected, room destroyed")
		}
		r.mu.Unlock()
	}
}

// Sweep reclaims rooms past the maximum lifetime and host-abandoned rooms
// whose grace period ran out. One bad iteration must not stop the sweeper,
// so panics are contained here.
func (m *Registry) Sweep() {
	defer func() {
		if rec := recover(); rec != nil {
			log.Error().Interface("panic", rec).Msg("sweep iteration failed")
		}
	}()

	now := m.clock.Now()
	for _, r := range m.store.Rooms() {
		r.mu.Lock()
		expired := now.Sub(r.CreatedAt) > m.cfg.MaxRoomAge
		abandoned := r.GuestID == "" && !r.HostDisconnectedAt.IsZero() &&
			now.Sub(r.HostDisconnectedAt) > m.cfg.HostGracePeriod
		if expired || abandoned {
			m.deleteLocked(r)
			log.Info().Str("room", r.Code).Bool("expired", expired).Msg("room swept")
		}
		r.mu.Unlock()
	}
}

// RunSweeper ticks Sweep until the context ends.
func (m *Registry) RunSweeper(ctx context.Context) {
	ticker := m.clock.NewTicker(m.cfg.SweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			m.Sweep()
		}
	}
}

func (m *Registry) ActiveRooms() int {
	return m.store.Len()
}

// deleteLocked removes a room and invalidates its timers. Callers hold
// the room's mutex.
func (m *Registry) deleteLocked(r *Room) {
	r.gen++
	m.cancelTimer(r.Code)
	m.store.DeleteRoom(r.Code)
}

// matchResult is the terminal payload for a decided match. Callers hold
// the room's mutex.
func matchResult(r *Room) gin.H {
	return gin.H{
		"winner":  r.State.Winner,
		"scores":  r.State.Scores,
		"turnLog": append([]duel.TurnRecord{}, r.State.TurnLog...),
	}
}

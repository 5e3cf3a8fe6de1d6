package room

import (
	"word-duel/internal/duel"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

type settleTimer struct {
	timer  clockwork.Timer
	cancel chan struct{}
}

// scheduleSettle arms the one-shot settle timer for a concluded turn. The
// outcome broadcast must stay on screen for the settle interval before the
// next transition fires, so the reset happens on a timer rather than
// inline. The room's generation at scheduling time is captured; a timer
// that outlives a reset or deletion finds a different generation and does
// nothing. Callers hold r.mu.
func (m *Registry) scheduleSettle(r *Room, outcome duel.Outcome) {
	gen := r.gen
	code := r.Code
	st := settleTimer{
		timer:  m.clock.NewTimer(m.cfg.SettleInterval),
		cancel: make(chan struct{}),
	}
	m.replaceTimer(code, st)

	go func() {
		select {
		case <-st.timer.Chan():
			m.removeTimer(code)
			m.settle(code, gen, outcome)
		case <-st.cancel:
		}
	}()
}

// settle applies the delayed transition, provided the room still exists
// and nothing reset it while the timer was pending.
func (m *Registry) settle(code string, gen uint64, outcome duel.Outcome) {
	r, ok := m.store.GetRoom(code)
	if !ok {
		log.Debug().Str("room", code).Msg("settle fired for deleted room")
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.gen != gen {
		log.Debug().Str("room", code).Msg("stale settle timer, skipping")
		return
	}

	switch outcome {
	case duel.OutcomeMatchOver:
		m.hub.Broadcast(code, "match-winner", matchResult(r))
	case duel.OutcomeNextTurn:
		r.State.StartNextTurn()
		m.store.SaveRoom(r)
		m.hub.Broadcast(code, "game-reset", r.snapshot())
	case duel.OutcomeNextRound:
		r.State.StartNextRound()
		m.store.SaveRoom(r)
		m.hub.Broadcast(code, "game-reset", r.snapshot())
	}
}

// replaceTimer swaps in a new timer for a room, stopping any pending one
// so a turn can never fire two transitions.
func (m *Registry) replaceTimer(code string, st settleTimer) {
	m.timersMu.Lock()
	defer m.timersMu.Unlock()
	if old, ok := m.timers[code]; ok {
		stopSettleTimer(old)
	}
	m.timers[code] = st
}

func (m *Registry) cancelTimer(code string) {
	m.timersMu.Lock()
	defer m.timersMu.Unlock()
	if st, ok := m.timers[code]; ok {
		stopSettleTimer(st)
		delete(m.timers, code)
	}
}

func (m *Registry) removeTimer(code string) {
	m.timersMu.Lock()
	defer m.timersMu.Unlock()
	delete(m.timers, code)
}

// stopSettleTimer stops the timer and releases its waiting goroutine. The
// drain covers a timer that fired between Stop and the cancel signal.
func stopSettleTimer(st settleTimer) {
	if !st.timer.Stop() {
		select {
		case <-st.timer.Chan():
		default:
		}
	}
	close(st.cancel)
}

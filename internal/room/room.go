package room

import (
	"math/rand"
	"sync"
	"time"

	"word-duel/internal/duel"
)

// Room is one duel instance. Every mutation happens under mu, so a room
// only ever sees its inbound actions in arrival order. gen invalidates
// settle timers scheduled before a reset or deletion.
type Room struct {
	mu sync.Mutex

	Code    string
	HostID  string
	GuestID string

	State *duel.State

	CreatedAt          time.Time
	HostDisconnectedAt time.Time

	gen uint64
}

// ready reports whether both seats are filled. Callers hold mu.
func (r *Room) ready() bool {
	return r.HostID != "" && r.GuestID != ""
}

// roleOf resolves a connection ID to its seat. Callers hold mu.
func (r *Room) roleOf(actorID string) (duel.Role, bool) {
	switch {
	case actorID == r.HostID:
		return duel.RoleHost, true
	case r.GuestID != "" && actorID == r.GuestID:
		return duel.RoleGuest, true
	}
	return "", false
}

// snapshot builds the public projection. Callers hold mu.
func (r *Room) snapshot() duel.PublicState {
	return r.State.Snapshot(r.Code, r.ready())
}

// Codes skip 0/O/1/I lookalikes.
const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

func randCode(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = codeAlphabet[rand.Intn(len(codeAlphabet))]
	}
	return string(b)
}

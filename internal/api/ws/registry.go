package ws

import (
	"word-duel/internal/duel"
	"word-duel/internal/room"
)

// Registry is the slice of the room registry the gateway needs. It keeps
// the ws package free of game logic: every inbound action maps 1:1 onto
// one of these calls.
type Registry interface {
	CreateRoom(hostID string, maxAttempts int) *room.Room
	JoinRoom(code, guestID string) (duel.PublicState, error)
	Dispatch(code, actorID string, act room.Action) error
	OnDisconnect(actorID string)
}

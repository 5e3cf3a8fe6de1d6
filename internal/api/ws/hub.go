package ws

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"word-duel/internal/duel"
	"word-duel/internal/room"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins
	},
}

type envelope struct {
	Action string      `json:"action"`
	Data   interface{} `json:"data"`
}

// client is one WebSocket connection. Its id doubles as the participant
// identifier stored in the room's host/guest slot. Writes are serialized
// per connection; gorilla allows only one concurrent writer.
type client struct {
	id   string
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *client) send(action string, data interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(envelope{Action: action, Data: data})
}

// Hub adapts inbound connection events to registry calls and fans
// resulting snapshots out to both participants. It owns no game state,
// only the connection-to-room mapping needed for routing.
type Hub struct {
	mu       sync.RWMutex
	rooms    map[string]map[*client]struct{}
	registry Registry
}

func NewHub(registry Registry) *Hub {
	return &Hub{
		rooms:    make(map[string]map[*client]struct{}),
		registry: registry,
	}
}

// HandleWS upgrades the connection and runs its read loop. One message is
// one `{action, data}` envelope; actions for rooms the sender does not
// belong to are rejected by the registry, and rejection means silence.
func (h *Hub) HandleWS(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Msg("websocket upgrade failed")
		return
	}

	cl := &client{id: uuid.NewString(), conn: conn}
	log.Info().Str("conn", cl.id).Msg("client connected")

	defer func() {
		h.dropClient(cl)
		h.registry.OnDisconnect(cl.id)
		_ = conn.Close()
		log.Info().Str("conn", cl.id).Msg("client disconnected")
	}()

	for {
		var msg struct {
			Action string          `json:"action"`
			Data   json.RawMessage `json:"data"`
		}
		if err := conn.ReadJSON(&msg); err != nil {
			return
		}

		switch msg.Action {
		case "create-room":
			h.handleCreate(cl, msg.Data)
		case "join-room":
			h.handleJoin(cl, msg.Data)
		case "set-word":
			h.handleSetWord(cl, msg.Data)
		case "guess-letter":
			h.handleGuess(cl, msg.Data)
		case "new-match":
			h.handleNewMatch(cl, msg.Data)
		default:
			log.Debug().Str("action", msg.Action).Msg("unknown action")
		}
	}
}

func (h *Hub) handleCreate(cl *client, data json.RawMessage) {
	var req struct {
		MaxAttempts int `json:"maxAttempts"`
	}
	if err := json.Unmarshal(data, &req); err != nil {
		log.Debug().Err(err).Msg("invalid create-room payload")
		return
	}
	r := h.registry.CreateRoom(cl.id, req.MaxAttempts)
	h.addToRoom(r.Code, cl)
	_ = cl.send("room-created", gin.H{
		"success":  true,
		"roomCode": r.Code,
		"role":     duel.RoleHost,
	})
}

func (h *Hub) handleJoin(cl *client, data json.RawMessage) {
	var req struct {
		RoomCode string `json:"roomCode"`
	}
	if err := json.Unmarshal(data, &req); err != nil {
		log.Debug().Err(err).Msg("invalid join-room payload")
		return
	}

	// Register the connection first so the join broadcast reaches the
	// guest as well as the host.
	h.addToRoom(req.RoomCode, cl)
	snap, err := h.registry.JoinRoom(req.RoomCode, cl.id)
	if err != nil {
		h.removeFromRoom(req.RoomCode, cl)
		_ = cl.send("room-joined", gin.H{
			"success": false,
			"message": rejectionMessage(err),
		})
		return
	}
	_ = cl.send("room-joined", gin.H{
		"success":   true,
		"roomCode":  req.RoomCode,
		"role":      duel.RoleGuest,
		"gameState": snap,
	})
}

func (h *Hub) handleSetWord(cl *client, data json.RawMessage) {
	var req struct {
		RoomCode string `json:"roomCode"`
		Word     string `json:"word"`
	}
	if err := json.Unmarshal(data, &req); err != nil {
		log.Debug().Err(err).Msg("invalid set-word payload")
		return
	}
	act := room.Action{Kind: room.ActionSetWord, Word: req.Word}
	if err := h.registry.Dispatch(req.RoomCode, cl.id, act); err != nil {
		log.Debug().Err(err).Str("room", req.RoomCode).Msg("set-word rejected")
	}
}

func (h *Hub) handleGuess(cl *client, data json.RawMessage) {
	var req struct {
		RoomCode string `json:"roomCode"`
		Letter   string `json:"letter"`
	}
	if err := json.Unmarshal(data, &req); err != nil {
		log.Debug().Err(err).Msg("invalid guess-letter payload")
		return
	}
	act := room.Action{Kind: room.ActionGuessLetter, Letter: req.Letter}
	err := h.registry.Dispatch(req.RoomCode, cl.id, act)
	if err == nil {
		return
	}
	if errors.Is(err, duel.ErrDuplicateLetter) {
		// Non-fatal; only the acting participant is told.
		_ = cl.send("duplicate-letter", gin.H{"letter": req.Letter})
		return
	}
	log.Debug().Err(err).Str("room", req.RoomCode).Msg("guess-letter rejected")
}

func (h *Hub) handleNewMatch(cl *client, data json.RawMessage) {
	var req struct {
		RoomCode string `json:"roomCode"`
	}
	if err := json.Unmarshal(data, &req); err != nil {
		log.Debug().Err(err).Msg("invalid new-match payload")
		return
	}
	act := room.Action{Kind: room.ActionNewMatch}
	if err := h.registry.Dispatch(req.RoomCode, cl.id, act); err != nil {
		log.Debug().Err(err).Str("room", req.RoomCode).Msg("new-match rejected")
	}
}

// Broadcast sends one event to every connection in a room. The registry
// calls this while holding the room's lock, which is what guarantees both
// participants see transitions in the same order. A failed write closes
// the connection; its read loop then unregisters it.
func (h *Hub) Broadcast(roomCode string, action string, data interface{}) {
	h.mu.RLock()
	clients := make([]*client, 0, 2)
	for cl := range h.rooms[roomCode] {
		clients = append(clients, cl)
	}
	h.mu.RUnlock()

	for _, cl := range clients {
		if err := cl.send(action, data); err != nil {
			log.Error().Err(err).Str("room", roomCode).Str("conn", cl.id).Msg("broadcast write failed")
			_ = cl.conn.Close()
		}
	}
}

func (h *Hub) addToRoom(roomCode string, cl *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.rooms[roomCode]; !ok {
		h.rooms[roomCode] = make(map[*client]struct{})
	}
	h.rooms[roomCode][cl] = struct{}{}
}

func (h *Hub) removeFromRoom(roomCode string, cl *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if set, ok := h.rooms[roomCode]; ok {
		delete(set, cl)
		if len(set) == 0 {
			delete(h.rooms, roomCode)
		}
	}
}

func (h *Hub) dropClient(cl *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for code, set := range h.rooms {
		if _, ok := set[cl]; ok {
			delete(set, cl)
			if len(set) == 0 {
				delete(h.rooms, code)
			}
		}
	}
}

func rejectionMessage(err error) string {
	switch {
	case errors.Is(err, room.ErrRoomNotFound):
		return "room not found"
	case errors.Is(err, room.ErrRoomFull):
		return "room full"
	default:
		return "action rejected"
	}
}

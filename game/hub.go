package game

import (
	"encoding/json"
	"sync"

	"github.com/rs/zerolog"
)

// Hub fans broadcast events out to the websocket clients of each room. It
// implements EventSink; the membership map has its own lock so broadcasts
// from a room actor never contend with other rooms.
type Hub struct {
	locker  sync.RWMutex
	members map[string]map[*Client]struct{}
	log     zerolog.Logger
}

func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		members: make(map[string]map[*Client]struct{}),
		log:     log,
	}
}

func (h *Hub) Broadcast(roomCode string, ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		h.log.Error().Err(err).Str("event", ev.Name).Msg("failed to marshal event")
		return
	}

	h.locker.RLock()
	defer h.locker.RUnlock()
	for client := range h.members[roomCode] {
		client.send(data)
	}
}

func (h *Hub) add(c *Client) {
	h.locker.Lock()
	defer h.locker.Unlock()
	clients, ok := h.members[c.roomCode]
	if !ok {
		clients = make(map[*Client]struct{})
		h.members[c.roomCode] = clients
	}
	clients[c] = struct{}{}
}

func (h *Hub) remove(c *Client) {
	h.locker.Lock()
	defer h.locker.Unlock()
	clients, ok := h.members[c.roomCode]
	if !ok {
		return
	}
	delete(clients, c)
	if len(clients) == 0 {
		delete(h.members, c.roomCode)
	}
}

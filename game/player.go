package game

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

const (
	outboxSize       = 256
	pingInterval     = 30 * time.Second
	actionTimeout    = 10 * time.Second
	maxChatLength    = 200
	inboundRateLimit = 5 // messages per second, small burst
)

// clientMessage is the inbound websocket envelope.
type clientMessage struct {
	Action  string   `json:"action"`
	Word    string   `json:"word,omitempty"`
	Message string   `json:"message,omitempty"`
	Options *Options `json:"options,omitempty"`
}

type errorPayload struct {
	Code string `json:"code"`
}

// Client is one player's websocket connection to one room.
type Client struct {
	playerID string
	nickname string
	roomCode string

	session  NetworkSession
	registry *Registry
	hub      *Hub
	limiter  *rate.Limiter
	log      zerolog.Logger

	outbox    chan []byte
	done      chan struct{}
	closeOnce sync.Once
}

func NewClient(playerID, nickname, roomCode string, session NetworkSession, registry *Registry, hub *Hub, log zerolog.Logger) *Client {
	return &Client{
		playerID: playerID,
		nickname: nickname,
		roomCode: roomCode,
		session:  session,
		registry: registry,
		hub:      hub,
		limiter:  rate.NewLimiter(inboundRateLimit, inboundRateLimit*2),
		log:      log.With().Str("room", roomCode).Str("player", playerID).Logger(),
		outbox:   make(chan []byte, outboxSize),
		done:     make(chan struct{}),
	}
}

// Start registers the client with the hub and runs both pumps. Blocks until
// the read pump exits, then tears everything down, including the player's
// room membership.
func (c *Client) Start() {
	c.hub.add(c)
	go c.writePump()
	c.readPump()
	c.Close()
}

func (c *Client) send(data []byte) {
	select {
	case c.outbox <- data:
	default:
		c.log.Warn().Msg("dropping message to slow client")
	}
}

func (c *Client) SendEvent(ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		c.log.Error().Err(err).Str("event", ev.Name).Msg("failed to marshal event")
		return
	}
	c.send(data)
}

func (c *Client) sendError(err error) {
	c.SendEvent(Event{Name: "error", Payload: errorPayload{Code: err.Error()}})
}

func (c *Client) readPump() {
	for {
		data, err := c.session.Read()
		if err != nil {
			return
		}
		if !c.limiter.Allow() {
			continue
		}
		var msg clientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			continue
		}
		if c.dispatch(msg) {
			return
		}
	}
}

// dispatch handles one inbound action. Returns true when the connection
// should be torn down.
func (c *Client) dispatch(msg clientMessage) (closing bool) {
	ctx, cancel := context.WithTimeout(context.Background(), actionTimeout)
	defer cancel()

	switch msg.Action {
	case "start_game":
		if err := c.registry.StartGame(ctx, c.roomCode, c.playerID); err != nil {
			c.sendError(err)
		}
	case "submit_word":
		res, err := c.registry.SubmitWord(ctx, c.roomCode, c.playerID, msg.Word)
		if err != nil {
			c.sendError(err)
			return false
		}
		c.SendEvent(Event{Name: EventSubmitResult, Payload: res})
	case "update_options":
		if msg.Options == nil {
			return false
		}
		if _, err := c.registry.UpdateOptions(ctx, c.roomCode, c.playerID, *msg.Options); err != nil {
			c.sendError(err)
		}
	case "chat":
		text := strings.TrimSpace(msg.Message)
		if text == "" || len(text) > maxChatLength {
			return false
		}
		c.hub.Broadcast(c.roomCode, Chat(c.nickname, text, time.Now()))
	case "leave":
		return true
	}
	return false
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()
	for {
		select {
		case data := <-c.outbox:
			if err := c.session.Write(data); err != nil {
				return
			}
		case <-ticker.C:
			if err := c.session.Ping(); err != nil {
				return
			}
		case <-c.done:
			return
		}
	}
}

// Close removes the client from its room and releases the connection.
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		c.hub.remove(c)
		ctx, cancel := context.WithTimeout(context.Background(), actionTimeout)
		defer cancel()
		if err := c.registry.LeaveRoom(ctx, c.roomCode, c.playerID); err != nil && err != ErrRoomNotFound {
			c.log.Warn().Err(err).Msg("failed to leave room on disconnect")
		}
		close(c.done)
		c.session.Close("")
	})
}

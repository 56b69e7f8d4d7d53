package game

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

type GameHandler struct {
	registry *Registry
	hub      *Hub
	upgrader websocket.Upgrader
	log      zerolog.Logger
}

func NewGameHandler(registry *Registry, hub *Hub, log zerolog.Logger) *GameHandler {
	return &GameHandler{
		registry: registry,
		hub:      hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Origins are filtered by server middleware before routing.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		log: log,
	}
}

// playerIdentity prefers the authenticated user id set by the auth
// middleware and falls back to a fresh guest id.
func playerIdentity(ctx *gin.Context) string {
	if id := ctx.GetString("id"); id != "" {
		return id
	}
	return uuid.NewString()
}

func optionsFromQuery(ctx *gin.Context) Options {
	opts := DefaultOptions()
	if v, err := strconv.Atoi(ctx.Query("turnSeconds")); err == nil {
		opts.TurnSeconds = v
	}
	if v, err := strconv.Atoi(ctx.Query("lives")); err == nil {
		opts.Lives = v
	}
	opts.StrictRejects = ctx.Query("strictRejects") == "true"
	return opts
}

// CreateRoomHandler upgrades the connection, creates a room owned by the
// caller and attaches them to it.
func (h *GameHandler) CreateRoomHandler(ctx *gin.Context) {
	playerID := playerIdentity(ctx)
	nickname := ctx.Query("nickname")
	opts := optionsFromQuery(ctx)

	conn, err := h.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		h.log.Warn().Err(err).Str("ip", ctx.ClientIP()).Msg("websocket upgrade failed")
		return
	}
	session := NewWebsocketSession(conn)

	view, err := h.registry.CreateRoom(ctx.Request.Context(), playerID, nickname, opts)
	if err != nil {
		session.Close(err.Error())
		return
	}

	h.attach(playerID, nickname, view, session)
}

// JoinRoomHandler upgrades the connection and joins an existing room.
func (h *GameHandler) JoinRoomHandler(ctx *gin.Context) {
	playerID := playerIdentity(ctx)
	nickname := ctx.Query("nickname")
	code := strings.ToUpper(strings.TrimSpace(ctx.Param("code")))

	conn, err := h.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		h.log.Warn().Err(err).Str("ip", ctx.ClientIP()).Msg("websocket upgrade failed")
		return
	}
	session := NewWebsocketSession(conn)

	view, err := h.registry.JoinRoom(ctx.Request.Context(), code, playerID, nickname)
	if err != nil {
		session.Close(err.Error())
		return
	}

	h.attach(playerID, nickname, view, session)
}

func (h *GameHandler) attach(playerID, nickname string, view RoomView, session NetworkSession) {
	client := NewClient(playerID, nickname, view.Code, session, h.registry, h.hub, h.log)
	client.SendEvent(RoomStateChanged(view))
	client.Start()
}

// RoomStateHandler returns the public projection of a room.
func (h *GameHandler) RoomStateHandler(ctx *gin.Context) {
	code := strings.ToUpper(strings.TrimSpace(ctx.Param("code")))
	view, err := h.registry.View(ctx.Request.Context(), code)
	if err != nil {
		ctx.String(statusForError(err), err.Error())
		return
	}
	ctx.JSON(http.StatusOK, view)
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, ErrRoomNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidNickname), errors.Is(err, ErrInsufficientPlayers):
		return http.StatusBadRequest
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrRoomFull), errors.Is(err, ErrNicknameTaken),
		errors.Is(err, ErrAlreadyStarted), errors.Is(err, ErrNotInLobby):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

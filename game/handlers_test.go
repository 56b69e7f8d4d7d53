package game

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, oracle *MockOracle) (*httptest.Server, *Registry) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hub := NewHub(zerolog.Nop())
	reg := NewRegistry(oracle, hub, nil, zerolog.Nop(), WithScheduler(&fakeScheduler{}))
	handler := NewGameHandler(reg, hub, zerolog.Nop())

	r := gin.New()
	r.GET("/game/create", handler.CreateRoomHandler)
	r.GET("/game/join/:code", handler.JoinRoomHandler)
	r.GET("/game/rooms/:code", handler.RoomStateHandler)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, reg
}

func dialWS(t *testing.T, srv *httptest.Server, path string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + path
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

type wsEnvelope struct {
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
}

// waitForEvent reads frames until the named event arrives.
func waitForEvent(t *testing.T, conn *websocket.Conn, name string) json.RawMessage {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	for range 16 {
		_, data, err := conn.ReadMessage()
		require.NoError(t, err)
		var env wsEnvelope
		require.NoError(t, json.Unmarshal(data, &env))
		if env.Event == name {
			return env.Payload
		}
	}
	t.Fatalf("event %q never arrived", name)
	return nil
}

func TestGameHandler_EndToEnd(t *testing.T) {
	t.Parallel()

	oracle := &MockOracle{}
	oracle.On("NextPrompt").Return("ar")
	oracle.On("CheckWord", mock.Anything, "arbol").Return(true, nil)

	srv, _ := newTestServer(t, oracle)

	owner := dialWS(t, srv, "/game/create?nickname=ana&lives=2")

	payload := waitForEvent(t, owner, EventRoomStateChanged)
	var view RoomView
	require.NoError(t, json.Unmarshal(payload, &view))
	require.Len(t, view.Code, codeLength)
	assert.Equal(t, "lobby", view.Status)
	assert.Equal(t, 2, view.Options.Lives)

	joiner := dialWS(t, srv, "/game/join/"+view.Code+"?nickname=bruno")
	payload = waitForEvent(t, joiner, EventRoomStateChanged)
	require.NoError(t, json.Unmarshal(payload, &view))
	assert.Len(t, view.Players, 2)

	// plain http projection of the same room
	res, err := http.Get(srv.URL + "/game/rooms/" + view.Code)
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)

	require.NoError(t, owner.WriteJSON(map[string]string{"action": "start_game"}))

	payload = waitForEvent(t, joiner, EventTurnChanged)
	var turn TurnChangedPayload
	require.NoError(t, json.Unmarshal(payload, &turn))
	assert.Equal(t, "ar", turn.Prompt)
	assert.Equal(t, 1, turn.Round)

	require.NoError(t, owner.WriteJSON(map[string]string{"action": "submit_word", "word": "arbol"}))

	payload = waitForEvent(t, owner, EventSubmitResult)
	var result SubmitResult
	require.NoError(t, json.Unmarshal(payload, &result))
	assert.True(t, result.Accepted)

	payload = waitForEvent(t, joiner, EventWordAccepted)
	var accepted WordAcceptedPayload
	require.NoError(t, json.Unmarshal(payload, &accepted))
	assert.Equal(t, "arbol", accepted.Word)

	require.NoError(t, owner.WriteJSON(map[string]string{"action": "chat", "message": "hola"}))
	payload = waitForEvent(t, joiner, EventChat)
	var chat ChatPayload
	require.NoError(t, json.Unmarshal(payload, &chat))
	assert.Equal(t, "ana", chat.From)
	assert.Equal(t, "hola", chat.Message)
}

func TestGameHandler_JoinFailureClosesSocket(t *testing.T) {
	t.Parallel()

	oracle := &MockOracle{}
	srv, _ := newTestServer(t, oracle)

	conn := dialWS(t, srv, "/game/join/ZZZZZ?nickname=ana")
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))

	_, _, err := conn.ReadMessage()
	var closeErr *websocket.CloseError
	require.ErrorAs(t, err, &closeErr)
	assert.Equal(t, ErrRoomNotFound.Error(), closeErr.Text)
}

func TestGameHandler_RoomStateErrors(t *testing.T) {
	t.Parallel()

	oracle := &MockOracle{}
	srv, _ := newTestServer(t, oracle)

	res, err := http.Get(srv.URL + "/game/rooms/NOPE1")
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestStatusForError(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		err  error
		code int
	}{
		{err: ErrRoomNotFound, code: http.StatusNotFound},
		{err: ErrInvalidNickname, code: http.StatusBadRequest},
		{err: ErrInsufficientPlayers, code: http.StatusBadRequest},
		{err: ErrForbidden, code: http.StatusForbidden},
		{err: ErrRoomFull, code: http.StatusConflict},
		{err: ErrNicknameTaken, code: http.StatusConflict},
		{err: ErrAlreadyStarted, code: http.StatusConflict},
		{err: ErrNotInLobby, code: http.StatusConflict},
		{err: ErrCodeGenerationExhausted, code: http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.code, statusForError(tc.err), "error %v", tc.err)
	}
}

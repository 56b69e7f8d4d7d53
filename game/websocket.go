package game

import (
	"time"

	"github.com/gorilla/websocket"
)

// NetworkSession abstracts the websocket connection so client pumps are
// testable without a live socket.
type NetworkSession interface {
	Write(data []byte) error
	Read() ([]byte, error)
	Ping() error
	Close(reason string)
}

type websocketSession struct {
	socket *websocket.Conn
}

func NewWebsocketSession(conn *websocket.Conn) NetworkSession {
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(time.Minute))
	})
	return &websocketSession{socket: conn}
}

func (ws *websocketSession) Write(data []byte) error {
	return ws.socket.WriteMessage(websocket.TextMessage, data)
}

func (ws *websocketSession) Read() ([]byte, error) {
	_, p, err := ws.socket.ReadMessage()
	return p, err
}

func (ws *websocketSession) Ping() error {
	return ws.socket.WriteMessage(websocket.PingMessage, nil)
}

func (ws *websocketSession) Close(reason string) {
	ws.socket.SetWriteDeadline(time.Now().Add(time.Second * 10))
	ws.socket.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, reason))
	ws.socket.Close()
}

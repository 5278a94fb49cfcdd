package websocket

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe-match/pkg/idgen"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBufferSize = 256
)

var (
	errConnectionClosed = errors.New("connection is closed")
	errSendQueueFull    = errors.New("send queue is full")
)

// Connection - a client socket with a buffered outbound queue drained by writePump.
type Connection struct {
	id     string
	ws     *websocket.Conn
	logger *slog.Logger

	mu     sync.Mutex
	send   chan []byte
	closed bool
}

func newConnection(logger *slog.Logger, ws *websocket.Conn) *Connection {
	id := idgen.NewConnectionID()

	return &Connection{
		id:     id,
		ws:     ws,
		logger: logger.With("connectionID", id),
		send:   make(chan []byte, sendBufferSize),
	}
}

func (that *Connection) ID() string {
	return that.id
}

// Send - queues a frame. It never blocks.
func (that *Connection) Send(data []byte) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.closed {
		return errConnectionClosed
	}

	select {
	case that.send <- data:
		return nil
	default:
		return errSendQueueFull
	}
}

// Close - closes the queue. writePump then sends a close frame and drops the socket.
func (that *Connection) Close() error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if !that.closed {
		that.closed = true
		close(that.send)
	}

	return nil
}

// readPump - reads frames until the socket fails and passes them to handle.
func (that *Connection) readPump(handle func(data []byte)) {
	that.ws.SetReadLimit(maxMessageSize)

	if err := that.ws.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		that.logger.Error("failed to set read deadline", "error", err)
	}

	that.ws.SetPongHandler(func(string) error {
		return that.ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		messageType, data, err := that.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				that.logger.Warn("websocket closed unexpectedly", "error", err)
			}
			return
		}

		if messageType != websocket.TextMessage {
			continue
		}

		handle(data)
	}
}

// writePump - drains the send queue and keeps the socket alive with pings.
func (that *Connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = that.ws.Close()
	}()

	for {
		select {
		case data, ok := <-that.send:
			_ = that.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = that.ws.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}

			if err := that.ws.WriteMessage(websocket.TextMessage, data); err != nil {
				that.logger.Debug("failed to write message", "error", err)
				return
			}
		case <-ticker.C:
			_ = that.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := that.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

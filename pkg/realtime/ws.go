package realtime

import (
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/ashrith-07/campus-bites-sub000/pkg/auth"
	"github.com/ashrith-07/campus-bites-sub000/pkg/logger"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 30 * time.Second // heartbeat to detect half-open connections
	maxMessageSize = 8 * 1024
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Allow all origins by default — restrict in production.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// SetCheckOrigin replaces the default (allow-all) origin checker.
func SetCheckOrigin(fn func(r *http.Request) bool) {
	upgrader.CheckOrigin = fn
}

var (
	// ErrSendBufferFull marks a connection whose outbound queue stopped
	// draining; the dispatcher evicts it.
	ErrSendBufferFull = errors.New("realtime: send buffer full")

	// ErrConnClosed marks a send attempted after the connection closed.
	ErrConnClosed = errors.New("realtime: connection closed")
)

// wsConn adapts a gorilla WebSocket to the Conn interface with the
// usual read/write pump pair.
type wsConn struct {
	conn      *websocket.Conn
	send      chan []byte
	done      chan struct{}
	closeOnce sync.Once
}

// Send queues a message for the write pump. Non-blocking so one slow
// client cannot stall a fan-out.
func (c *wsConn) Send(data []byte) error {
	select {
	case <-c.done:
		return ErrConnClosed
	case c.send <- data:
		return nil
	default:
		return ErrSendBufferFull
	}
}

func (c *wsConn) Close() error {
	c.closeOnce.Do(func() { close(c.done) })
	return c.conn.Close()
}

// readPump discards inbound frames (clients only listen) and keeps the
// read deadline fresh from pongs. Any read error unregisters the
// connection.
func (c *wsConn) readPump(reg *Registry) {
	defer func() {
		reg.Unregister(c)
		c.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				logger.Warn("realtime: unexpected close", "error", err)
			}
			return
		}
	}
}

// writePump drains the send queue and emits the heartbeat ping.
func (c *wsConn) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case msg := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-c.done:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// Upgrade switches the HTTP connection to a WebSocket and registers it
// under the caller's identity.
func Upgrade(w http.ResponseWriter, r *http.Request, ident *auth.Identity, reg *Registry) error {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Error("realtime: upgrade failed", "error", err)
		return err
	}

	c := &wsConn{conn: conn, send: make(chan []byte, 256), done: make(chan struct{})}
	reg.Register(ident.ID, ident.Role, c)
	go c.writePump()
	go c.readPump(reg)
	return nil
}

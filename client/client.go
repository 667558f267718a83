// Package client is a Go consumer for the realtime notification
// surface: it subscribes over WebSocket, keeps an in-memory
// notification list, and polls the store status as a fallback path.
//
// Nothing is persisted; all state dies with the Client. The backend
// remains the source of truth and is reachable again with a fresh
// fetch after any restart.
package client

import (
	"errors"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	defaultReconnectDelay = 3 * time.Second
	defaultPollInterval   = 30 * time.Second
	defaultToastDuration  = 6 * time.Second
)

// Notification is one received event, most recent first in the list.
type Notification struct {
	ID        int64     `json:"id"` // generation timestamp, unique per client
	Type      string    `json:"type"`
	OrderID   uint      `json:"orderId,omitempty"`
	Status    string    `json:"status,omitempty"`
	Message   string    `json:"message,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Read      bool      `json:"read"`
}

// Options configures a Client.
type Options struct {
	// BaseURL is the server root, e.g. "http://localhost:8080".
	BaseURL string
	// Token is the bearer token; it travels as a query parameter on the
	// WebSocket dial.
	Token string

	ReconnectDelay time.Duration
	PollInterval   time.Duration
	ToastDuration  time.Duration

	// OnToast fires for each received notification; OnToastDismiss
	// fires when its toast auto-dismisses after ToastDuration.
	OnToast        func(Notification)
	OnToastDismiss func(Notification)
	// OnNative is the hook for OS-level notifications, invoked only
	// when the user granted permission upstream.
	OnNative func(Notification)
	// OnStoreStatus fires whenever the open/closed state is learned,
	// from a broadcast or from polling.
	OnStoreStatus func(isOpen bool)

	HTTPClient *http.Client
}

// Client consumes realtime events. Safe for concurrent use.
type Client struct {
	opts Options

	mu            sync.Mutex
	notifications []Notification
	unread        int
	activeToasts  int
	conn          *websocket.Conn
	closed        bool
	pendingRetry  *time.Timer

	done chan struct{}
}

// New builds a Client. Call Start to connect.
func New(opts Options) (*Client, error) {
	if opts.BaseURL == "" {
		return nil, errors.New("client: BaseURL is required")
	}
	if opts.Token == "" {
		return nil, errors.New("client: Token is required")
	}
	if opts.ReconnectDelay <= 0 {
		opts.ReconnectDelay = defaultReconnectDelay
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = defaultPollInterval
	}
	if opts.ToastDuration <= 0 {
		opts.ToastDuration = defaultToastDuration
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: 10 * time.Second}
	}

	return &Client{
		opts: opts,
		done: make(chan struct{}),
	}, nil
}

// Start connects the WebSocket and begins the store-status polling
// ticker. The poll runs on its fixed interval regardless of transport
// health, so store state stays eventually consistent even with every
// push path down.
func (c *Client) Start() error {
	go c.pollLoop()
	return c.connect()
}

func (c *Client) wsURL() (string, error) {
	u, err := url.Parse(c.opts.BaseURL)
	if err != nil {
		return "", err
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}
	u.Path = "/ws"
	u.RawQuery = "token=" + url.QueryEscape(c.opts.Token)
	return u.String(), nil
}

func (c *Client) connect() error {
	target, err := c.wsURL()
	if err != nil {
		return err
	}

	conn, _, err := websocket.DefaultDialer.Dial(target, nil)
	if err != nil {
		c.scheduleReconnect()
		return err
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		conn.Close()
		return errors.New("client: closed")
	}
	c.conn = conn
	c.mu.Unlock()

	go c.readLoop(conn)
	return nil
}

func (c *Client) readLoop(conn *websocket.Conn) {
	defer conn.Close()
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			c.scheduleReconnect()
			return
		}
		c.handleMessage(data)
	}
}

// scheduleReconnect arms one retry after the fixed delay. At most one
// attempt is pending at a time; retries continue indefinitely until
// Close.
func (c *Client) scheduleReconnect() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || c.pendingRetry != nil {
		return
	}
	c.pendingRetry = time.AfterFunc(c.opts.ReconnectDelay, func() {
		c.mu.Lock()
		c.pendingRetry = nil
		closed := c.closed
		c.mu.Unlock()
		if !closed {
			c.connect() //nolint:errcheck
		}
	})
}

// Close synchronously tears down the socket, any pending reconnect,
// and the polling ticker.
func (c *Client) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	if c.pendingRetry != nil {
		c.pendingRetry.Stop()
		c.pendingRetry = nil
	}
	conn := c.conn
	c.conn = nil
	c.mu.Unlock()

	close(c.done)
	if conn != nil {
		return conn.Close()
	}
	return nil
}

package client

import (
	"encoding/json"
	"time"
)

// wireEvent mirrors the server envelope {"event": ..., "data": {...}}.
type wireEvent struct {
	Event string `json:"event"`
	Data  struct {
		OrderID   uint      `json:"orderId"`
		Status    string    `json:"status"`
		Message   string    `json:"message"`
		IsOpen    bool      `json:"isOpen"`
		Timestamp time.Time `json:"timestamp"`
	} `json:"data"`
}

func (c *Client) handleMessage(data []byte) {
	var ev wireEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		return
	}

	n := Notification{
		ID:        time.Now().UnixNano(),
		Type:      ev.Event,
		OrderID:   ev.Data.OrderID,
		Status:    ev.Data.Status,
		Message:   ev.Data.Message,
		Timestamp: ev.Data.Timestamp,
	}

	if ev.Event == "store-status" {
		n.Message = storeMessage(ev.Data.IsOpen)
		if c.opts.OnStoreStatus != nil {
			c.opts.OnStoreStatus(ev.Data.IsOpen)
		}
	}

	c.append(n)
}

func storeMessage(isOpen bool) string {
	if isOpen {
		return "The store is now open"
	}
	return "The store is now closed"
}

// append records the notification most-recent-first, bumps the unread
// counter, and raises the toast and native hooks.
func (c *Client) append(n Notification) {
	c.mu.Lock()
	c.notifications = append([]Notification{n}, c.notifications...)
	c.unread++
	c.activeToasts++
	c.mu.Unlock()

	if c.opts.OnToast != nil {
		c.opts.OnToast(n)
	}
	if c.opts.OnNative != nil {
		c.opts.OnNative(n)
	}

	time.AfterFunc(c.opts.ToastDuration, func() {
		c.mu.Lock()
		if c.activeToasts > 0 {
			c.activeToasts--
		}
		c.mu.Unlock()
		if c.opts.OnToastDismiss != nil {
			c.opts.OnToastDismiss(n)
		}
	})
}

// Notifications returns a copy of the list, most recent first.
func (c *Client) Notifications() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Notification, len(c.notifications))
	copy(out, c.notifications)
	return out
}

// Unread returns the unread counter.
func (c *Client) Unread() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.unread
}

// ActiveToasts returns how many toasts are currently showing.
func (c *Client) ActiveToasts() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.activeToasts
}

// MarkAsRead flags one notification read and decrements the unread
// counter. Unknown or already-read IDs are no-ops.
func (c *Client) MarkAsRead(id int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.notifications {
		if c.notifications[i].ID == id && !c.notifications[i].Read {
			c.notifications[i].Read = true
			if c.unread > 0 {
				c.unread--
			}
			return
		}
	}
}

// MarkAllAsRead flags everything read and zeroes the unread counter.
func (c *Client) MarkAllAsRead() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.notifications {
		c.notifications[i].Read = true
	}
	c.unread = 0
}

package realtime

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"github.com/ashrith-07/campus-bites-sub000/pkg/logger"
)

// relayChannel is the Redis pub/sub channel events travel on between
// server processes.
const relayChannel = "campusbites:events"

const (
	scopeUser      = "user"
	scopeRole      = "role"
	scopeBroadcast = "broadcast"
)

// relayMessage wraps an encoded event with enough routing information
// for the receiving process to deliver it locally. Origin is the
// publishing instance's ID so a process skips its own messages.
type relayMessage struct {
	Origin string          `json:"origin"`
	Scope  string          `json:"scope"`
	UserID uint            `json:"userId,omitempty"`
	Role   string          `json:"role,omitempty"`
	Event  json.RawMessage `json:"event"`
}

func (d *Dispatcher) startRelay() {
	d.origin = uuid.NewString()

	ctx, cancel := context.WithCancel(context.Background())
	d.stop = cancel

	sub := d.rdb.Subscribe(ctx, relayChannel)
	go func() {
		defer sub.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-sub.Channel():
				if !ok {
					return
				}
				d.handleRelayed([]byte(msg.Payload))
			}
		}
	}()

	logger.Info("realtime: redis relay started", "channel", relayChannel, "instance", d.origin)
}

// publish forwards a dispatched event to sibling processes. No-op
// without Redis.
func (d *Dispatcher) publish(scope string, userID uint, role string, event []byte) {
	if d.rdb == nil {
		return
	}

	msg := relayMessage{
		Origin: d.origin,
		Scope:  scope,
		UserID: userID,
		Role:   role,
		Event:  event,
	}
	payload, err := json.Marshal(msg)
	if err != nil {
		logger.Error("realtime: encode relay message", "error", err)
		return
	}

	if err := d.rdb.Publish(context.Background(), relayChannel, payload).Err(); err != nil {
		logger.Warn("realtime: relay publish failed", "error", err)
	}
}

// handleRelayed delivers an event published by another instance to the
// connections this process holds.
func (d *Dispatcher) handleRelayed(payload []byte) {
	var msg relayMessage
	if err := json.Unmarshal(payload, &msg); err != nil {
		logger.Warn("realtime: bad relay message", "error", err)
		return
	}
	if msg.Origin == d.origin {
		return
	}

	switch msg.Scope {
	case scopeUser:
		d.deliver(d.reg.Lookup(msg.UserID), msg.Event)
	case scopeRole:
		d.deliver(d.reg.Connections(msg.Role), msg.Event)
	case scopeBroadcast:
		d.deliver(d.reg.All(), msg.Event)
	default:
		logger.Warn("realtime: unknown relay scope", "scope", msg.Scope)
	}
}

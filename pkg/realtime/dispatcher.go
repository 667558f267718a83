package realtime

import (
	"github.com/redis/go-redis/v9"

	"github.com/ashrith-07/campus-bites-sub000/pkg/logger"
	"github.com/ashrith-07/campus-bites-sub000/pkg/metrics"
)

// Dispatcher fans events out to live connections. With a Redis client
// it also relays each dispatch to sibling server processes.
//
// Delivery is fire-and-forget: a failed send closes and unregisters the
// offending connection without affecting the others, and there is no
// replay for targets that are offline at dispatch time.
type Dispatcher struct {
	reg    *Registry
	rdb    *redis.Client
	origin string
	stop   func()
}

// NewDispatcher builds a dispatcher on the given registry. rdb may be
// nil, in which case events stay within this process.
func NewDispatcher(reg *Registry, rdb *redis.Client) *Dispatcher {
	d := &Dispatcher{reg: reg, rdb: rdb}
	if rdb != nil {
		d.startRelay()
	}
	return d
}

// Close stops the relay subscription, if any.
func (d *Dispatcher) Close() {
	if d.stop != nil {
		d.stop()
	}
}

// SendToUser delivers the event to every connection the user holds,
// here and on relayed instances. Reports whether at least one local
// connection received it.
func (d *Dispatcher) SendToUser(userID uint, ev Event) bool {
	data, err := ev.Encode()
	if err != nil {
		logger.Error("realtime: encode event", "event", ev.Name, "error", err)
		return false
	}

	n := d.deliver(d.reg.Lookup(userID), data)
	metrics.EventsDispatched.WithLabelValues(ev.Name, "user").Inc()
	d.publish(scopeUser, userID, "", data)
	return n > 0
}

// SendToRole delivers the event to every connection held by users of
// the role. Returns the local delivery count.
func (d *Dispatcher) SendToRole(role string, ev Event) int {
	data, err := ev.Encode()
	if err != nil {
		logger.Error("realtime: encode event", "event", ev.Name, "error", err)
		return 0
	}

	n := d.deliver(d.reg.Connections(role), data)
	metrics.EventsDispatched.WithLabelValues(ev.Name, "role").Inc()
	d.publish(scopeRole, 0, role, data)
	return n
}

// Broadcast delivers the event to every connected client regardless of
// identity. Returns the local delivery count.
func (d *Dispatcher) Broadcast(ev Event) int {
	data, err := ev.Encode()
	if err != nil {
		logger.Error("realtime: encode event", "event", ev.Name, "error", err)
		return 0
	}

	n := d.deliver(d.reg.All(), data)
	metrics.EventsDispatched.WithLabelValues(ev.Name, "broadcast").Inc()
	d.publish(scopeBroadcast, 0, "", data)
	return n
}

// deliver pushes data to each connection, evicting any that fail.
func (d *Dispatcher) deliver(conns []Conn, data []byte) int {
	sent := 0
	for _, c := range conns {
		if err := c.Send(data); err != nil {
			metrics.EventSendFailures.Inc()
			logger.Warn("realtime: send failed, evicting connection", "error", err)
			d.reg.Unregister(c)
			c.Close()
			continue
		}
		sent++
	}
	return sent
}

package realtime

import (
	"sync"
	"time"

	"github.com/ashrith-07/campus-bites-sub000/pkg/logger"
	"github.com/ashrith-07/campus-bites-sub000/pkg/metrics"
)

// Conn is a live client connection handle. Send must not block
// indefinitely; a returned error marks the connection dead.
type Conn interface {
	Send(data []byte) error
	Close() error
}

type entry struct {
	userID      uint
	role        string
	connectedAt time.Time
}

// Registry tracks which connections belong to which user. A user may
// hold several connections at once (multiple tabs); the user counts as
// online while at least one remains.
type Registry struct {
	mu     sync.RWMutex
	conns  map[Conn]entry
	byUser map[uint]map[Conn]struct{}
	byRole map[string]map[Conn]struct{}
}

func NewRegistry() *Registry {
	return &Registry{
		conns:  make(map[Conn]entry),
		byUser: make(map[uint]map[Conn]struct{}),
		byRole: make(map[string]map[Conn]struct{}),
	}
}

// Register adds a connection under the given identity.
func (r *Registry) Register(userID uint, role string, c Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.conns[c] = entry{userID: userID, role: role, connectedAt: time.Now()}

	if r.byUser[userID] == nil {
		r.byUser[userID] = make(map[Conn]struct{})
	}
	r.byUser[userID][c] = struct{}{}

	if r.byRole[role] == nil {
		r.byRole[role] = make(map[Conn]struct{})
	}
	r.byRole[role][c] = struct{}{}

	metrics.WSConnections.Inc()
	logger.Debug("realtime: connection registered", "user_id", userID, "role", role, "total", len(r.conns))
}

// Unregister removes a connection. Removing the user's last connection
// takes them offline. Safe to call more than once.
func (r *Registry) Unregister(c Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.conns[c]
	if !ok {
		return
	}
	delete(r.conns, c)

	if set := r.byUser[e.userID]; set != nil {
		delete(set, c)
		if len(set) == 0 {
			delete(r.byUser, e.userID)
		}
	}
	if set := r.byRole[e.role]; set != nil {
		delete(set, c)
		if len(set) == 0 {
			delete(r.byRole, e.role)
		}
	}

	metrics.WSConnections.Dec()
	logger.Debug("realtime: connection unregistered", "user_id", e.userID, "total", len(r.conns))
}

// Lookup returns the user's live connections.
func (r *Registry) Lookup(userID uint) []Conn {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Conn, 0, len(r.byUser[userID]))
	for c := range r.byUser[userID] {
		out = append(out, c)
	}
	return out
}

// Connections returns every live connection held by users of the role.
func (r *Registry) Connections(role string) []Conn {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Conn, 0, len(r.byRole[role]))
	for c := range r.byRole[role] {
		out = append(out, c)
	}
	return out
}

// All returns every live connection.
func (r *Registry) All() []Conn {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Conn, 0, len(r.conns))
	for c := range r.conns {
		out = append(out, c)
	}
	return out
}

// Count returns the number of live connections.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.conns)
}

package realtime

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashrith-07/campus-bites-sub000/pkg/auth"
)

func dialTestServer(t *testing.T, reg *Registry, ident *auth.Identity) (*websocket.Conn, func()) {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		Upgrade(w, r, ident, reg) //nolint:errcheck
	}))

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err, "dial websocket")

	return conn, func() {
		conn.Close()
		srv.Close()
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}

func TestUpgradeRegistersAndDelivers(t *testing.T) {
	reg := NewRegistry()
	d := NewDispatcher(reg, nil)
	ident := &auth.Identity{ID: 11, Role: "CUSTOMER", Email: "c@x.dev", Name: "C"}

	conn, teardown := dialTestServer(t, reg, ident)
	defer teardown()

	waitFor(t, func() bool { return reg.Count() == 1 })

	ok := d.SendToUser(11, OrderUpdate(3, "READY", "Your order is ready for pickup"))
	assert.True(t, ok)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, raw, err := conn.ReadMessage()
	require.NoError(t, err)

	var env struct {
		Event string `json:"event"`
		Data  struct {
			OrderID uint   `json:"orderId"`
			Status  string `json:"status"`
			Message string `json:"message"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(raw, &env))
	assert.Equal(t, EventOrderUpdate, env.Event)
	assert.Equal(t, uint(3), env.Data.OrderID)
	assert.Equal(t, "READY", env.Data.Status)
	assert.Contains(t, env.Data.Message, "ready for pickup")
}

func TestDisconnectUnregisters(t *testing.T) {
	reg := NewRegistry()
	ident := &auth.Identity{ID: 21, Role: "VENDOR"}

	conn, teardown := dialTestServer(t, reg, ident)
	defer teardown()

	waitFor(t, func() bool { return reg.Count() == 1 })

	conn.Close()
	waitFor(t, func() bool { return reg.Count() == 0 })
}

package services

import (
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"gorm.io/gorm"

	"github.com/ashrith-07/campus-bites-sub000/app/repositories"
	"github.com/ashrith-07/campus-bites-sub000/pkg/realtime"
	"github.com/ashrith-07/campus-bites-sub000/pkg/testkit"
)

// captureConn records delivered events for assertions.
type captureConn struct {
	mu   sync.Mutex
	sent [][]byte
	fail bool
}

func (c *captureConn) Send(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fail {
		return errors.New("broken pipe")
	}
	c.sent = append(c.sent, data)
	return nil
}

func (c *captureConn) Close() error { return nil }

type capturedEvent struct {
	Event string `json:"event"`
	Data  struct {
		OrderID uint   `json:"orderId"`
		Status  string `json:"status"`
		Message string `json:"message"`
		IsOpen  bool   `json:"isOpen"`
	} `json:"data"`
}

func (c *captureConn) events(t *testing.T) []capturedEvent {
	t.Helper()
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]capturedEvent, 0, len(c.sent))
	for _, raw := range c.sent {
		var ev capturedEvent
		if err := json.Unmarshal(raw, &ev); err != nil {
			t.Fatalf("malformed event %q: %v", raw, err)
		}
		out = append(out, ev)
	}
	return out
}

// fixture bundles everything the service tests need.
type fixture struct {
	db       *gorm.DB
	registry *realtime.Registry
	dispatch *realtime.Dispatcher

	users    *repositories.UserRepository
	menu     *repositories.MenuItemRepository
	orders   *repositories.OrderRepository
	settings *repositories.StoreSettingRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := testkit.NewDB(t)
	registry := realtime.NewRegistry()

	return &fixture{
		db:       db,
		registry: registry,
		dispatch: realtime.NewDispatcher(registry, nil),
		users:    repositories.NewUserRepository(db),
		menu:     repositories.NewMenuItemRepository(db),
		orders:   repositories.NewOrderRepository(db),
		settings: repositories.NewStoreSettingRepository(db),
	}
}

// connect registers a capture connection for the user.
func (f *fixture) connect(userID uint, role string) *captureConn {
	c := &captureConn{}
	f.registry.Register(userID, role, c)
	return c
}

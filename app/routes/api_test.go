package routes

import (
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ashrith-07/campus-bites-sub000/app/controllers"
	"github.com/ashrith-07/campus-bites-sub000/app/models"
	"github.com/ashrith-07/campus-bites-sub000/app/repositories"
	"github.com/ashrith-07/campus-bites-sub000/app/services"
	"github.com/ashrith-07/campus-bites-sub000/pkg/middleware"
	"github.com/ashrith-07/campus-bites-sub000/pkg/realtime"
	"github.com/ashrith-07/campus-bites-sub000/pkg/router"
	"github.com/ashrith-07/campus-bites-sub000/pkg/storage"
	"github.com/ashrith-07/campus-bites-sub000/pkg/testkit"
)

// apiEnvelope mirrors the JSON response envelope.
type apiEnvelope struct {
	Status  int             `json:"status"`
	Code    string          `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type testServer struct {
	*httptest.Server
	db *gorm.DB
}

// newTestServer stands up the full HTTP surface over an in-memory
// database, without Redis.
func newTestServer(t *testing.T) *testServer {
	t.Helper()

	t.Setenv("STORAGE_DISK", "local")
	t.Setenv("STORAGE_LOCAL_ROOT", t.TempDir())

	db := testkit.NewDB(t)
	registry := realtime.NewRegistry()
	dispatch := realtime.NewDispatcher(registry, nil)
	t.Cleanup(dispatch.Close)

	users := repositories.NewUserRepository(db)
	menu := repositories.NewMenuItemRepository(db)
	orders := repositories.NewOrderRepository(db)
	settings := repositories.NewStoreSettingRepository(db)

	r := router.New()
	r.Use(middleware.Logger, middleware.Recovery)
	RegisterAPI(r, Deps{
		Auth:     controllers.NewAuthController(services.NewAuthService(users)),
		Menu:     controllers.NewMenuController(services.NewMenuService(menu, nil)),
		Order:    controllers.NewOrderController(services.NewOrderService(orders, menu, dispatch)),
		Store:    controllers.NewStoreController(services.NewStoreService(settings, nil, dispatch)),
		Upload:   controllers.NewUploadController(services.NewUploadService(storage.Connect())),
		User:     controllers.NewUserController(services.NewUserService(users)),
		Realtime: controllers.NewRealtimeController(registry),
	})

	srv := httptest.NewServer(r.Handler())
	t.Cleanup(srv.Close)

	return &testServer{Server: srv, db: db}
}

func (s *testServer) do(t *testing.T, method, path string, body any, token string) (*http.Response, apiEnvelope) {
	t.Helper()

	req := testkit.JSONRequest(t, method, s.URL+path, body, token)
	req.RequestURI = "" // client requests must not carry one

	res, err := s.Client().Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	var env apiEnvelope
	require.NoError(t, json.NewDecoder(res.Body).Decode(&env))
	return res, env
}

func TestSignupLoginFlow(t *testing.T) {
	s := newTestServer(t)

	res, env := s.do(t, http.MethodPost, "/api/auth/signup", map[string]any{
		"name":     "Asha",
		"email":    "asha@campus.dev",
		"password": "password123",
	}, "")
	require.Equal(t, http.StatusCreated, res.StatusCode)

	var signedUp struct {
		Token string      `json:"token"`
		User  models.User `json:"user"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &signedUp))
	assert.NotEmpty(t, signedUp.Token)
	assert.Equal(t, models.RoleCustomer, signedUp.User.Role)

	res, _ = s.do(t, http.MethodPost, "/api/auth/login", map[string]any{
		"email":    "asha@campus.dev",
		"password": "password123",
	}, "")
	assert.Equal(t, http.StatusOK, res.StatusCode)

	res, env = s.do(t, http.MethodPost, "/api/auth/login", map[string]any{
		"email":    "asha@campus.dev",
		"password": "wrong-password",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
	assert.Equal(t, "UNAUTHENTICATED", env.Code)
}

func TestMenuMutationsAreVendorOnly(t *testing.T) {
	s := newTestServer(t)

	_, customer := testkit.SeedUser(t, s.db, "c@campus.dev", models.RoleCustomer)
	_, vendor := testkit.SeedUser(t, s.db, "v@campus.dev", models.RoleVendor)

	item := map[string]any{
		"name":        "Masala Dosa",
		"price":       80,
		"category":    "South Indian",
		"isAvailable": true,
	}

	res, _ := s.do(t, http.MethodPost, "/api/menu/items", item, "")
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)

	res, _ = s.do(t, http.MethodPost, "/api/menu/items", item, testkit.Token(t, customer))
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	res, _ = s.do(t, http.MethodPost, "/api/menu/items", item, testkit.Token(t, vendor))
	assert.Equal(t, http.StatusCreated, res.StatusCode)

	// Reads are public.
	res, env := s.do(t, http.MethodGet, "/api/menu/items", nil, "")
	require.Equal(t, http.StatusOK, res.StatusCode)

	var items []models.MenuItem
	require.NoError(t, json.Unmarshal(env.Data, &items))
	require.Len(t, items, 1)
	assert.Equal(t, "Masala Dosa", items[0].Name)
}

func TestOrderLifecycleOverHTTP(t *testing.T) {
	s := newTestServer(t)

	_, customer := testkit.SeedUser(t, s.db, "c@campus.dev", models.RoleCustomer)
	_, vendor := testkit.SeedUser(t, s.db, "v@campus.dev", models.RoleVendor)
	dosa := testkit.SeedMenuItem(t, s.db, "Masala Dosa", 80)

	custToken := testkit.Token(t, customer)
	vendorToken := testkit.Token(t, vendor)

	cart := []map[string]any{{"menuItemId": dosa.ID, "quantity": 2}}

	res, env := s.do(t, http.MethodPost, "/api/orders/checkout", map[string]any{
		"total": 160,
		"items": cart,
	}, custToken)
	require.Equal(t, http.StatusOK, res.StatusCode)

	var checkout struct {
		PaymentRef string `json:"paymentRef"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &checkout))
	assert.True(t, strings.HasPrefix(checkout.PaymentRef, "pi_"))

	res, env = s.do(t, http.MethodPost, "/api/orders/confirm", map[string]any{
		"total":      160,
		"items":      cart,
		"paymentRef": checkout.PaymentRef,
	}, custToken)
	require.Equal(t, http.StatusCreated, res.StatusCode)

	var order models.Order
	require.NoError(t, json.Unmarshal(env.Data, &order))
	assert.Equal(t, models.StatusPending, order.Status)
	require.Len(t, order.Items, 1)
	assert.Equal(t, 80.0, order.Items[0].UnitPrice)

	orderPath := "/api/orders/" + strconv.FormatUint(uint64(order.ID), 10)

	// Customers cannot move the order along.
	res, _ = s.do(t, http.MethodPut, orderPath, map[string]any{"status": models.StatusProcessing}, custToken)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	res, env = s.do(t, http.MethodPut, orderPath, map[string]any{"status": models.StatusProcessing}, vendorToken)
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.NoError(t, json.Unmarshal(env.Data, &order))
	assert.Equal(t, models.StatusProcessing, order.Status)

	// Skipping ahead is rejected.
	res, env = s.do(t, http.MethodPut, orderPath, map[string]any{"status": models.StatusCompleted}, vendorToken)
	assert.Equal(t, http.StatusConflict, res.StatusCode)
	assert.Equal(t, "INVALID_STATE", env.Code)

	res, env = s.do(t, http.MethodGet, "/api/orders", nil, custToken)
	require.Equal(t, http.StatusOK, res.StatusCode)
	var mine []models.Order
	require.NoError(t, json.Unmarshal(env.Data, &mine))
	assert.Len(t, mine, 1)
}

func TestWebSocketReceivesOrderUpdates(t *testing.T) {
	s := newTestServer(t)

	_, customer := testkit.SeedUser(t, s.db, "c@campus.dev", models.RoleCustomer)
	_, vendor := testkit.SeedUser(t, s.db, "v@campus.dev", models.RoleVendor)
	dosa := testkit.SeedMenuItem(t, s.db, "Masala Dosa", 80)

	custToken := testkit.Token(t, customer)

	// Browsers cannot set headers on a WebSocket dial, so the token
	// travels as a query parameter.
	wsBase := "ws" + strings.TrimPrefix(s.URL, "http")

	custConn, _, err := websocket.DefaultDialer.Dial(wsBase+"/ws?token="+custToken, nil)
	require.NoError(t, err)
	defer custConn.Close()

	vendorConn, _, err := websocket.DefaultDialer.Dial(wsBase+"/ws?token="+testkit.Token(t, vendor), nil)
	require.NoError(t, err)
	defer vendorConn.Close()

	res, _ := s.do(t, http.MethodPost, "/api/orders/confirm", map[string]any{
		"total":      80,
		"items":      []map[string]any{{"menuItemId": dosa.ID, "quantity": 1}},
		"paymentRef": "pi_test",
	}, custToken)
	require.Equal(t, http.StatusCreated, res.StatusCode)

	custEvent := readEvent(t, custConn)
	assert.Equal(t, "order-update", custEvent.Event)
	assert.Equal(t, models.StatusPending, custEvent.Data.Status)

	vendorEvent := readEvent(t, vendorConn)
	assert.Equal(t, "new-order", vendorEvent.Event)
	assert.Equal(t, custEvent.Data.OrderID, vendorEvent.Data.OrderID)
}

func TestWebSocketRejectsAnonymousDial(t *testing.T) {
	s := newTestServer(t)

	wsBase := "ws" + strings.TrimPrefix(s.URL, "http")
	_, res, err := websocket.DefaultDialer.Dial(wsBase+"/ws", nil) //nolint:bodyclose
	require.Error(t, err)
	require.NotNil(t, res)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}

func TestStoreStatusEndpoints(t *testing.T) {
	s := newTestServer(t)

	_, vendor := testkit.SeedUser(t, s.db, "v@campus.dev", models.RoleVendor)

	res, env := s.do(t, http.MethodGet, "/api/store/status", nil, "")
	require.Equal(t, http.StatusOK, res.StatusCode)

	var status struct {
		IsOpen bool `json:"isOpen"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &status))
	assert.True(t, status.IsOpen, "store opens by default")

	res, _ = s.do(t, http.MethodPost, "/api/store/status", map[string]any{"isOpen": false}, testkit.Token(t, vendor))
	require.Equal(t, http.StatusOK, res.StatusCode)

	res, env = s.do(t, http.MethodGet, "/api/store/status", nil, "")
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.NoError(t, json.Unmarshal(env.Data, &status))
	assert.False(t, status.IsOpen)
}

// postImage uploads a small PNG under the "image" field with the given
// bearer token.
func postImage(t *testing.T, s *testServer, token string) *http.Response {
	t.Helper()

	var body strings.Builder
	w := multipart.NewWriter(&body)
	part, err := w.CreatePart(textproto.MIMEHeader{
		"Content-Disposition": {`form-data; name="image"; filename="dosa.png"`},
		"Content-Type":        {"image/png"},
	})
	require.NoError(t, err)
	_, err = part.Write([]byte("\x89PNG\r\n\x1a\nfake image bytes"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req, err := http.NewRequest(http.MethodPost, s.URL+"/api/upload/image", strings.NewReader(body.String()))
	require.NoError(t, err)
	req.Header.Set("Content-Type", w.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := s.Client().Do(req)
	require.NoError(t, err)
	return res
}

func TestImageUpload(t *testing.T) {
	s := newTestServer(t)

	_, vendor := testkit.SeedUser(t, s.db, "v@campus.dev", models.RoleVendor)

	res := postImage(t, s, testkit.Token(t, vendor))
	defer res.Body.Close()
	require.Equal(t, http.StatusCreated, res.StatusCode)

	var env apiEnvelope
	require.NoError(t, json.NewDecoder(res.Body).Decode(&env))

	var result struct {
		ImageURL string `json:"imageUrl"`
		PublicID string `json:"publicId"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.Contains(t, result.ImageURL, "/uploads/"+result.PublicID)
	assert.Contains(t, result.ImageURL, ".png")
}

func TestImageUploadIsVendorOnly(t *testing.T) {
	s := newTestServer(t)

	_, customer := testkit.SeedUser(t, s.db, "c@campus.dev", models.RoleCustomer)

	res := postImage(t, s, "")
	res.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)

	res = postImage(t, s, testkit.Token(t, customer))
	res.Body.Close()
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t)

	res, err := s.Client().Get(s.URL + "/healthz")
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)
}

type wsEvent struct {
	Event string `json:"event"`
	Data  struct {
		OrderID uint   `json:"orderId"`
		Status  string `json:"status"`
		Message string `json:"message"`
		IsOpen  bool   `json:"isOpen"`
	} `json:"data"`
}

func readEvent(t *testing.T, conn *websocket.Conn) wsEvent {
	t.Helper()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, raw, err := conn.ReadMessage()
	require.NoError(t, err, "expected an event frame")

	var ev wsEvent
	require.NoError(t, json.Unmarshal(raw, &ev))
	return ev
}


// Package routes wires the HTTP surface onto the controllers.
package routes

import (
	"net/http"
	"time"

	"github.com/ashrith-07/campus-bites-sub000/app/controllers"
	"github.com/ashrith-07/campus-bites-sub000/app/models"
	"github.com/ashrith-07/campus-bites-sub000/pkg/ctx"
	"github.com/ashrith-07/campus-bites-sub000/pkg/metrics"
	"github.com/ashrith-07/campus-bites-sub000/pkg/middleware"
	"github.com/ashrith-07/campus-bites-sub000/pkg/router"
)

// Deps carries the constructed controllers into route registration.
type Deps struct {
	Auth     *controllers.AuthController
	Menu     *controllers.MenuController
	Order    *controllers.OrderController
	Store    *controllers.StoreController
	Upload   *controllers.UploadController
	User     *controllers.UserController
	Realtime *controllers.RealtimeController

	// GraphQL is the optional read-only query endpoint handler.
	GraphQL http.Handler
}

// RegisterAPI mounts every route.
func RegisterAPI(r *router.Router, d Deps) {
	vendorOnly := []router.Middleware{middleware.Auth, middleware.RequireRole(models.RoleVendor)}

	api := r.Group("/api")

	// Auth — rate limited to slow down credential stuffing.
	auth := api.Group("/auth", middleware.RateLimit(20, time.Minute))
	auth.Post("/signup", "auth.signup", ctx.Wrap(d.Auth.Signup))
	auth.Post("/login", "auth.login", ctx.Wrap(d.Auth.Login))

	// Menu — public reads, vendor mutations.
	menu := api.Group("/menu")
	menu.Get("/items", "menu.list", ctx.Wrap(d.Menu.List))
	menu.Get("/items/{id}", "menu.show", ctx.Wrap(d.Menu.Show))
	menu.Post("/items", "menu.create", ctx.Wrap(d.Menu.Create), vendorOnly...)
	menu.Put("/items/{id}", "menu.update", ctx.Wrap(d.Menu.Update), vendorOnly...)
	menu.Delete("/items/{id}", "menu.delete", ctx.Wrap(d.Menu.Delete), vendorOnly...)

	// Orders — ownership and role checks live in the service.
	orders := api.Group("/orders", middleware.Auth)
	orders.Post("/checkout", "orders.checkout", ctx.Wrap(d.Order.Checkout))
	orders.Post("/confirm", "orders.confirm", ctx.Wrap(d.Order.Confirm))
	orders.Get("", "orders.list", ctx.Wrap(d.Order.List))
	orders.Get("/{id}", "orders.show", ctx.Wrap(d.Order.Show))
	orders.Put("/{id}", "orders.update_status", ctx.Wrap(d.Order.UpdateStatus))
	orders.Delete("/{id}", "orders.cancel", ctx.Wrap(d.Order.Cancel))

	// Store status — public read, vendor write.
	store := api.Group("/store")
	store.Get("/status", "store.status", ctx.Wrap(d.Store.Status))
	store.Post("/status", "store.set_status", ctx.Wrap(d.Store.SetStatus), middleware.Auth)

	// Uploads and profile. Only vendors store images.
	api.Post("/upload/image", "upload.image", ctx.Wrap(d.Upload.Image), vendorOnly...)
	api.Get("/users/profile", "users.profile", ctx.Wrap(d.User.Profile), middleware.Auth)
	api.Put("/users/profile", "users.update_profile", ctx.Wrap(d.User.UpdateProfile), middleware.Auth)

	if d.GraphQL != nil {
		api.Post("/graphql", "graphql", d.GraphQL.ServeHTTP)
	}

	// Realtime endpoint. The token may arrive as a query parameter since
	// browsers cannot set headers on WebSocket dials.
	r.Get("/ws", "realtime.connect", ctx.Wrap(d.Realtime.Connect), middleware.Auth)

	r.Get("/metrics", "metrics", metrics.Handler().ServeHTTP)
	r.Get("/healthz", "healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})
}

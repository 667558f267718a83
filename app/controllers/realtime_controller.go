package controllers

import (
	"github.com/ashrith-07/campus-bites-sub000/pkg/apperr"
	"github.com/ashrith-07/campus-bites-sub000/pkg/ctx"
	"github.com/ashrith-07/campus-bites-sub000/pkg/realtime"
)

type RealtimeController struct {
	registry *realtime.Registry
}

func NewRealtimeController(registry *realtime.Registry) *RealtimeController {
	return &RealtimeController{registry: registry}
}

// Connect upgrades the request to a WebSocket and registers it under
// the caller's identity. The token arrives via the Authorization header
// or the token query parameter; the auth middleware handles both.
func (c *RealtimeController) Connect(cx *ctx.Context) {
	ident, ok := cx.Identity()
	if !ok {
		cx.Fail(apperr.Unauthenticated("Login required"))
		return
	}

	// Upgrade writes its own error response on failure.
	realtime.Upgrade(cx.W, cx.R, ident, c.registry) //nolint:errcheck
}

package controllers

import (
	"github.com/ashrith-07/campus-bites-sub000/app/services"
	"github.com/ashrith-07/campus-bites-sub000/pkg/apperr"
	"github.com/ashrith-07/campus-bites-sub000/pkg/ctx"
)

type StoreController struct {
	store *services.StoreService
}

func NewStoreController(store *services.StoreService) *StoreController {
	return &StoreController{store: store}
}

type storeStatusRequest struct {
	// Pointer so a missing field is distinguishable from false.
	IsOpen *bool `json:"isOpen" validate:"required"`
}

type storeStatusResponse struct {
	IsOpen bool `json:"isOpen"`
}

// Status returns whether the store is open. Public; never fails.
func (c *StoreController) Status(cx *ctx.Context) {
	cx.Success(storeStatusResponse{IsOpen: c.store.Get(cx.Context())})
}

// SetStatus toggles the store open/closed. Vendor only.
func (c *StoreController) SetStatus(cx *ctx.Context) {
	ident, _ := cx.Identity()

	var req storeStatusRequest
	if !cx.BindJSON(&req) {
		return
	}
	if req.IsOpen == nil {
		cx.Fail(apperr.InvalidInput("isOpen must be a boolean"))
		return
	}

	if err := c.store.Set(cx.Context(), ident, *req.IsOpen); err != nil {
		cx.Fail(err)
		return
	}
	cx.Success(storeStatusResponse{IsOpen: *req.IsOpen})
}

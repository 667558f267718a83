package controllers

import (
	"github.com/ashrith-07/campus-bites-sub000/app/services"
	"github.com/ashrith-07/campus-bites-sub000/pkg/apperr"
	"github.com/ashrith-07/campus-bites-sub000/pkg/ctx"
)

type OrderController struct {
	orders *services.OrderService
}

func NewOrderController(orders *services.OrderService) *OrderController {
	return &OrderController{orders: orders}
}

type checkoutRequest struct {
	Total float64                 `json:"total" validate:"required,gt=0"`
	Items []services.CheckoutItem `json:"items" validate:"required,min=1,dive"`
}

type confirmRequest struct {
	Total      float64                 `json:"total" validate:"required,gt=0"`
	Items      []services.CheckoutItem `json:"items" validate:"required,min=1,dive"`
	PaymentRef string                  `json:"paymentRef" validate:"required"`
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// Checkout validates the cart and returns a pending-payment reference.
func (c *OrderController) Checkout(cx *ctx.Context) {
	ident, _ := cx.Identity()

	var req checkoutRequest
	if !cx.BindJSON(&req) {
		return
	}

	ref, err := c.orders.Checkout(ident, req.Total, req.Items)
	if err != nil {
		cx.Fail(err)
		return
	}
	cx.Success(map[string]string{"paymentRef": ref})
}

// Confirm persists the order and notifies the owner and vendors.
func (c *OrderController) Confirm(cx *ctx.Context) {
	ident, _ := cx.Identity()

	var req confirmRequest
	if !cx.BindJSON(&req) {
		return
	}

	order, err := c.orders.Confirm(ident, req.Total, req.Items, req.PaymentRef)
	if err != nil {
		cx.Fail(err)
		return
	}
	cx.Created(order)
}

// List returns the caller's orders (all orders for vendors).
func (c *OrderController) List(cx *ctx.Context) {
	ident, _ := cx.Identity()

	orders, err := c.orders.List(ident)
	if err != nil {
		cx.Fail(err)
		return
	}
	cx.Success(orders)
}

// Show returns one order for its owner or a vendor.
func (c *OrderController) Show(cx *ctx.Context) {
	ident, _ := cx.Identity()

	id := cx.ParamUint("id")
	if id == 0 {
		cx.Fail(apperr.InvalidInput("Invalid order id"))
		return
	}

	order, err := c.orders.GetByID(ident, id)
	if err != nil {
		cx.Fail(err)
		return
	}
	cx.Success(order)
}

// UpdateStatus moves the order along its lifecycle. Vendor only.
func (c *OrderController) UpdateStatus(cx *ctx.Context) {
	ident, _ := cx.Identity()

	id := cx.ParamUint("id")
	if id == 0 {
		cx.Fail(apperr.InvalidInput("Invalid order id"))
		return
	}

	var req updateStatusRequest
	if !cx.BindJSON(&req) {
		return
	}

	order, err := c.orders.UpdateStatus(ident, id, req.Status)
	if err != nil {
		cx.Fail(err)
		return
	}
	cx.Success(order)
}

// Cancel deletes the order for its owner or a vendor.
func (c *OrderController) Cancel(cx *ctx.Context) {
	ident, _ := cx.Identity()

	id := cx.ParamUint("id")
	if id == 0 {
		cx.Fail(apperr.InvalidInput("Invalid order id"))
		return
	}

	if err := c.orders.Cancel(ident, id); err != nil {
		cx.Fail(err)
		return
	}
	cx.Success(map[string]string{"message": "Order cancelled"})
}

package controllers

import (
	"github.com/ashrith-07/campus-bites-sub000/app/services"
	"github.com/ashrith-07/campus-bites-sub000/pkg/apperr"
	"github.com/ashrith-07/campus-bites-sub000/pkg/ctx"
)

type MenuController struct {
	menu *services.MenuService
}

func NewMenuController(menu *services.MenuService) *MenuController {
	return &MenuController{menu: menu}
}

type menuItemRequest struct {
	Name         string  `json:"name" validate:"required,min=2,max=255"`
	Description  string  `json:"description"`
	Price        float64 `json:"price" validate:"required,gt=0"`
	Category     string  `json:"category" validate:"required"`
	ImageURL     string  `json:"imageUrl"`
	ImageIsEmoji bool    `json:"imageIsEmoji"`
	Stock        int     `json:"stock" validate:"gte=0"`
	IsAvailable  bool    `json:"isAvailable"`
	Popular      bool    `json:"popular"`
}

func (r menuItemRequest) input() services.MenuItemInput {
	return services.MenuItemInput{
		Name:         r.Name,
		Description:  r.Description,
		Price:        r.Price,
		Category:     r.Category,
		ImageURL:     r.ImageURL,
		ImageIsEmoji: r.ImageIsEmoji,
		Stock:        r.Stock,
		IsAvailable:  r.IsAvailable,
		Popular:      r.Popular,
	}
}

// List returns the full menu. Public.
func (c *MenuController) List(cx *ctx.Context) {
	items, err := c.menu.List(cx.Context())
	if err != nil {
		cx.Fail(err)
		return
	}
	cx.Success(items)
}

// Show returns one menu item. Public.
func (c *MenuController) Show(cx *ctx.Context) {
	id := cx.ParamUint("id")
	if id == 0 {
		cx.Fail(apperr.InvalidInput("Invalid menu item id"))
		return
	}

	item, err := c.menu.Get(id)
	if err != nil {
		cx.Fail(err)
		return
	}
	cx.Success(item)
}

// Create adds a menu item. Vendor only (gated in routes).
func (c *MenuController) Create(cx *ctx.Context) {
	var req menuItemRequest
	if !cx.BindJSON(&req) {
		return
	}

	item, err := c.menu.Create(cx.Context(), req.input())
	if err != nil {
		cx.Fail(err)
		return
	}
	cx.Created(item)
}

// Update replaces a menu item. Vendor only.
func (c *MenuController) Update(cx *ctx.Context) {
	id := cx.ParamUint("id")
	if id == 0 {
		cx.Fail(apperr.InvalidInput("Invalid menu item id"))
		return
	}

	var req menuItemRequest
	if !cx.BindJSON(&req) {
		return
	}

	item, err := c.menu.Update(cx.Context(), id, req.input())
	if err != nil {
		cx.Fail(err)
		return
	}
	cx.Success(item)
}

// Delete removes a menu item. Vendor only.
func (c *MenuController) Delete(cx *ctx.Context) {
	id := cx.ParamUint("id")
	if id == 0 {
		cx.Fail(apperr.InvalidInput("Invalid menu item id"))
		return
	}

	if err := c.menu.Delete(cx.Context(), id); err != nil {
		cx.Fail(err)
		return
	}
	cx.Success(map[string]string{"message": "Menu item deleted"})
}

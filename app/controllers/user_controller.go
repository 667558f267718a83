package controllers

import (
	"github.com/ashrith-07/campus-bites-sub000/app/services"
	"github.com/ashrith-07/campus-bites-sub000/pkg/apperr"
	"github.com/ashrith-07/campus-bites-sub000/pkg/ctx"
)

type UserController struct {
	users *services.UserService
}

func NewUserController(users *services.UserService) *UserController {
	return &UserController{users: users}
}

type updateProfileRequest struct {
	Name     string `json:"name" validate:"omitempty,min=2,max=100"`
	Password string `json:"password" validate:"omitempty,min=8"`
}

// Profile returns the caller's account.
func (c *UserController) Profile(cx *ctx.Context) {
	ident, ok := cx.Identity()
	if !ok {
		cx.Fail(apperr.Unauthenticated("Login required"))
		return
	}

	user, err := c.users.Profile(ident.ID)
	if err != nil {
		cx.Fail(err)
		return
	}
	cx.Success(user)
}

// UpdateProfile changes the caller's name and/or password.
func (c *UserController) UpdateProfile(cx *ctx.Context) {
	ident, ok := cx.Identity()
	if !ok {
		cx.Fail(apperr.Unauthenticated("Login required"))
		return
	}

	var req updateProfileRequest
	if !cx.BindJSON(&req) {
		return
	}

	user, err := c.users.UpdateProfile(ident.ID, req.Name, req.Password)
	if err != nil {
		cx.Fail(err)
		return
	}
	cx.Success(user)
}

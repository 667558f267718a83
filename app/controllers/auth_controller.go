// Package controllers maps HTTP requests onto the service layer.
package controllers

import (
	"github.com/ashrith-07/campus-bites-sub000/app/models"
	"github.com/ashrith-07/campus-bites-sub000/app/services"
	"github.com/ashrith-07/campus-bites-sub000/pkg/ctx"
)

type AuthController struct {
	auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{auth: auth}
}

type signupRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"omitempty,oneof=CUSTOMER VENDOR"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// Signup creates an account and returns a token with the user.
func (c *AuthController) Signup(cx *ctx.Context) {
	var req signupRequest
	if !cx.BindJSON(&req) {
		return
	}

	token, user, err := c.auth.Signup(services.SignupInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		cx.Fail(err)
		return
	}

	cx.Created(authResponse{Token: token, User: user})
}

// Login verifies credentials and returns a token with the user.
func (c *AuthController) Login(cx *ctx.Context) {
	var req loginRequest
	if !cx.BindJSON(&req) {
		return
	}

	token, user, err := c.auth.Login(req.Email, req.Password)
	if err != nil {
		cx.Fail(err)
		return
	}

	cx.Success(authResponse{Token: token, User: user})
}

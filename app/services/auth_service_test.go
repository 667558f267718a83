package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashrith-07/campus-bites-sub000/app/models"
	"github.com/ashrith-07/campus-bites-sub000/pkg/apperr"
	"github.com/ashrith-07/campus-bites-sub000/pkg/auth"
)

func TestSignup(t *testing.T) {
	f := newFixture(t)
	svc := NewAuthService(f.users)

	token, user, err := svc.Signup(SignupInput{
		Name:     "Asha",
		Email:    "Asha@Campus.dev",
		Password: "password123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, models.RoleCustomer, user.Role, "role defaults to CUSTOMER")
	assert.Equal(t, "asha@campus.dev", user.Email, "email is normalised")
	assert.NotEqual(t, "password123", user.Password, "password is never stored in the clear")

	ident, err := auth.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, ident.ID)
	assert.Equal(t, models.RoleCustomer, ident.Role)
}

func TestSignupDuplicateEmailConflicts(t *testing.T) {
	f := newFixture(t)
	svc := NewAuthService(f.users)

	_, _, err := svc.Signup(SignupInput{Name: "Asha", Email: "asha@campus.dev", Password: "password123"})
	require.NoError(t, err)

	_, _, err = svc.Signup(SignupInput{Name: "Impostor", Email: "ASHA@campus.dev", Password: "password456"})
	require.Error(t, err)
	assert.True(t, apperr.Is(err, "CONFLICT"), "second signup with the same email must conflict, got %v", err)
}

func TestSignupRejectsUnknownRole(t *testing.T) {
	f := newFixture(t)
	svc := NewAuthService(f.users)

	_, _, err := svc.Signup(SignupInput{Name: "A", Email: "a@campus.dev", Password: "password123", Role: "ADMIN"})
	assert.True(t, apperr.Is(err, "INVALID_INPUT"))
}

func TestLogin(t *testing.T) {
	f := newFixture(t)
	svc := NewAuthService(f.users)

	_, _, err := svc.Signup(SignupInput{Name: "Asha", Email: "asha@campus.dev", Password: "password123"})
	require.NoError(t, err)

	token, user, err := svc.Login("asha@campus.dev", "password123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "asha@campus.dev", user.Email)

	_, _, err = svc.Login("asha@campus.dev", "wrong-password")
	assert.True(t, apperr.Is(err, "UNAUTHENTICATED"))

	_, _, err = svc.Login("nobody@campus.dev", "password123")
	assert.True(t, apperr.Is(err, "UNAUTHENTICATED"), "unknown email reads the same as a bad password")
}

// Package testkit provides shared helpers for package tests: an
// in-memory database, seeded identities, and JSON request plumbing.
package testkit

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ashrith-07/campus-bites-sub000/app/models"
	"github.com/ashrith-07/campus-bites-sub000/pkg/auth"
	"github.com/ashrith-07/campus-bites-sub000/pkg/database"
)

// NewDB opens a fresh in-memory SQLite database with the full schema.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Open("sqlite", ":memory:")
	require.NoError(t, err, "open in-memory database")

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.MenuItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.StoreSetting{},
	), "migrate schema")

	return db
}

// SeedUser inserts a user with the given role and returns it together
// with its identity. The password is "password123".
func SeedUser(t *testing.T, db *gorm.DB, email, role string) (models.User, *auth.Identity) {
	t.Helper()

	hash, err := auth.HashPassword("password123")
	require.NoError(t, err)

	user := models.User{
		Name:     "Test " + role,
		Email:    email,
		Password: hash,
		Role:     role,
	}
	require.NoError(t, db.Create(&user).Error, "seed user")

	return user, &auth.Identity{ID: user.ID, Email: user.Email, Role: user.Role, Name: user.Name}
}

// SeedMenuItem inserts one available menu item.
func SeedMenuItem(t *testing.T, db *gorm.DB, name string, price float64) models.MenuItem {
	t.Helper()

	item := models.MenuItem{
		Name:        name,
		Price:       price,
		Category:    "Snacks",
		Stock:       10,
		IsAvailable: true,
	}
	require.NoError(t, db.Create(&item).Error, "seed menu item")
	return item
}

// Token mints a signed JWT for the identity.
func Token(t *testing.T, ident *auth.Identity) string {
	t.Helper()

	token, err := auth.GenerateToken(*ident)
	require.NoError(t, err)
	return token
}

// JSONRequest builds a request with a JSON body and optional bearer
// token.
func JSONRequest(t *testing.T, method, target string, body any, token string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

// DecodeEnvelope unmarshals a response envelope body into out.
func DecodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out),
		"decode response body: %s", rec.Body.String())
}

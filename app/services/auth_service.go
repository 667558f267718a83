// Package services holds the business logic between controllers and
// repositories.
package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/ashrith-07/campus-bites-sub000/app/models"
	"github.com/ashrith-07/campus-bites-sub000/app/repositories"
	"github.com/ashrith-07/campus-bites-sub000/pkg/apperr"
	"github.com/ashrith-07/campus-bites-sub000/pkg/auth"
)

// AuthService handles signup and login.
type AuthService struct {
	users *repositories.UserRepository
}

func NewAuthService(users *repositories.UserRepository) *AuthService {
	return &AuthService{users: users}
}

// SignupInput is the validated signup payload.
type SignupInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// Signup creates an account and returns a fresh token with the user.
// The email must be unique; role defaults to CUSTOMER.
func (s *AuthService) Signup(in SignupInput) (string, models.User, error) {
	role := strings.ToUpper(strings.TrimSpace(in.Role))
	if role == "" {
		role = models.RoleCustomer
	}
	if role != models.RoleCustomer && role != models.RoleVendor {
		return "", models.User{}, apperr.InvalidInput("Role must be CUSTOMER or VENDOR")
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))

	taken, err := s.users.ExistsByEmail(email)
	if err != nil {
		return "", models.User{}, apperr.Internal(err)
	}
	if taken {
		return "", models.User{}, apperr.Conflict("Email is already registered")
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return "", models.User{}, apperr.Internal(err)
	}

	user := models.User{
		Name:     strings.TrimSpace(in.Name),
		Email:    email,
		Password: hash,
		Role:     role,
	}
	if err := s.users.Create(&user); err != nil {
		return "", models.User{}, apperr.Internal(err)
	}

	token, err := s.token(user)
	if err != nil {
		return "", models.User{}, err
	}
	return token, user, nil
}

// Login verifies the credentials and returns a fresh token with the
// user. Wrong email and wrong password are indistinguishable to the
// caller.
func (s *AuthService) Login(email, password string) (string, models.User, error) {
	user, err := s.users.FindByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", models.User{}, apperr.Unauthenticated("Invalid email or password")
		}
		return "", models.User{}, apperr.Internal(err)
	}

	if !auth.CheckPassword(user.Password, password) {
		return "", models.User{}, apperr.Unauthenticated("Invalid email or password")
	}

	token, err := s.token(user)
	if err != nil {
		return "", models.User{}, err
	}
	return token, user, nil
}

func (s *AuthService) token(user models.User) (string, error) {
	token, err := auth.GenerateToken(auth.Identity{
		ID:    user.ID,
		Email: user.Email,
		Role:  user.Role,
		Name:  user.Name,
	})
	if err != nil {
		return "", apperr.Internal(err)
	}
	return token, nil
}

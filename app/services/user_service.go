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

// UserService handles profile reads and updates.
type UserService struct {
	users *repositories.UserRepository
}

func NewUserService(users *repositories.UserRepository) *UserService {
	return &UserService{users: users}
}

// Profile returns the user's account.
func (s *UserService) Profile(userID uint) (models.User, error) {
	user, err := s.users.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, apperr.NotFound("User not found")
		}
		return models.User{}, apperr.Internal(err)
	}
	return user, nil
}

// UpdateProfile changes the user's name and/or password. Empty fields
// are left untouched; email and role are immutable here.
func (s *UserService) UpdateProfile(userID uint, name, password string) (models.User, error) {
	user, err := s.Profile(userID)
	if err != nil {
		return models.User{}, err
	}

	if n := strings.TrimSpace(name); n != "" {
		user.Name = n
	}
	if password != "" {
		hash, err := auth.HashPassword(password)
		if err != nil {
			return models.User{}, apperr.Internal(err)
		}
		user.Password = hash
	}

	if err := s.users.Update(&user); err != nil {
		return models.User{}, apperr.Internal(err)
	}
	return user, nil
}

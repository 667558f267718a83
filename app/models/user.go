// Package models holds the GORM persistence models.
package models

import "gorm.io/gorm"

// User roles. Role is immutable after signup.
const (
	RoleCustomer = "CUSTOMER"
	RoleVendor   = "VENDOR"
)

// User is an account holder. Password stores the bcrypt hash and is
// never serialised.
type User struct {
	gorm.Model
	Name     string `gorm:"size:255;not null" json:"name"`
	Email    string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password string `gorm:"size:255;not null" json:"-"`
	Role     string `gorm:"size:50;not null;default:CUSTOMER" json:"role"`

	Orders []Order `json:"-"`
}

// IsVendor reports whether the user holds the vendor role.
func (u *User) IsVendor() bool { return u.Role == RoleVendor }

package seeders

import (
	"gorm.io/gorm"

	"github.com/ashrith-07/campus-bites-sub000/app/models"
	"github.com/ashrith-07/campus-bites-sub000/pkg/auth"
)

func init() {
	Register("vendor", SeedVendor)
	Register("menu", SeedMenu)
	Register("store", SeedStore)
}

// SeedVendor creates the default vendor account if it does not exist.
func SeedVendor(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Where("email = ?", "vendor@campusbites.dev").Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := auth.HashPassword("vendor-dev-password")
	if err != nil {
		return err
	}
	return db.Create(&models.User{
		Name:     "Campus Bites Kitchen",
		Email:    "vendor@campusbites.dev",
		Password: hash,
		Role:     models.RoleVendor,
	}).Error
}

// SeedMenu inserts a starter menu when the catalogue is empty.
func SeedMenu(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.MenuItem{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	items := []models.MenuItem{
		{Name: "Masala Dosa", Description: "Crispy dosa with spiced potato filling", Price: 80, Category: "South Indian", ImageURL: "🥞", ImageIsEmoji: true, Stock: 50, IsAvailable: true, Popular: true},
		{Name: "Veg Thali", Description: "Rice, dal, two sabzis, roti, and curd", Price: 120, Category: "Meals", ImageURL: "🍛", ImageIsEmoji: true, Stock: 40, IsAvailable: true, Popular: true},
		{Name: "Paneer Roll", Description: "Grilled paneer wrapped in a soft paratha", Price: 90, Category: "Snacks", ImageURL: "🌯", ImageIsEmoji: true, Stock: 60, IsAvailable: true},
		{Name: "Cold Coffee", Description: "Blended iced coffee with ice cream", Price: 60, Category: "Beverages", ImageURL: "🥤", ImageIsEmoji: true, Stock: 100, IsAvailable: true},
		{Name: "Samosa", Description: "Two pieces with mint and tamarind chutney", Price: 30, Category: "Snacks", ImageURL: "🥟", ImageIsEmoji: true, Stock: 80, IsAvailable: true, Popular: true},
	}
	return db.Create(&items).Error
}

// SeedStore initialises the isOpen flag to open.
func SeedStore(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.StoreSetting{}).Where("key = ?", models.SettingKeyIsOpen).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return db.Create(&models.StoreSetting{Key: models.SettingKeyIsOpen, Value: "true"}).Error
}

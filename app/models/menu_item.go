package models

import "gorm.io/gorm"

// MenuItem is a catalogue entry. Stock is informational only; orders
// are never blocked on depletion.
type MenuItem struct {
	gorm.Model
	Name         string  `gorm:"uniqueIndex;size:255;not null" json:"name"`
	Description  string  `gorm:"type:text" json:"description"`
	Price        float64 `gorm:"not null" json:"price"`
	Category     string  `gorm:"size:100;index" json:"category"`
	ImageURL     string  `gorm:"size:512" json:"imageUrl"`
	ImageIsEmoji bool    `json:"imageIsEmoji"`
	Stock        int     `gorm:"not null;default:0" json:"stock"`
	IsAvailable  bool    `gorm:"not null;default:true" json:"isAvailable"`
	Popular      bool    `gorm:"not null;default:false" json:"popular"`
}

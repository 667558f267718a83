package models

import "gorm.io/gorm"

// SettingKeyIsOpen is the single store open/closed flag.
const SettingKeyIsOpen = "isOpen"

// StoreSetting is a key/value row for store-wide flags.
type StoreSetting struct {
	gorm.Model
	Key   string `gorm:"uniqueIndex;size:100;not null" json:"key"`
	Value string `gorm:"size:255;not null" json:"value"`
}

package migrations

import (
	"gorm.io/gorm"

	"github.com/ashrith-07/campus-bites-sub000/app/models"
	"github.com/ashrith-07/campus-bites-sub000/pkg/migration"
)

func init() {
	migration.Register("20260301000000_create_users_table", &createUsersTable{})
	migration.Register("20260301000001_create_menu_items_table", &createMenuItemsTable{})
	migration.Register("20260301000002_create_orders_tables", &createOrdersTables{})
	migration.Register("20260301000003_create_store_settings_table", &createStoreSettingsTable{})
}

type createUsersTable struct{}

func (m *createUsersTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.User{})
}

func (m *createUsersTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("users")
}

type createMenuItemsTable struct{}

func (m *createMenuItemsTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.MenuItem{})
}

func (m *createMenuItemsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("menu_items")
}

type createOrdersTables struct{}

func (m *createOrdersTables) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Order{}, &models.OrderItem{})
}

func (m *createOrdersTables) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("order_items", "orders")
}

type createStoreSettingsTable struct{}

func (m *createStoreSettingsTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.StoreSetting{})
}

func (m *createStoreSettingsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("store_settings")
}

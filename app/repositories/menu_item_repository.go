package repositories

import (
	"gorm.io/gorm"

	"github.com/ashrith-07/campus-bites-sub000/app/models"
)

// MenuItemRepository handles database operations for MenuItem.
type MenuItemRepository struct {
	db *gorm.DB
}

func NewMenuItemRepository(db *gorm.DB) *MenuItemRepository {
	return &MenuItemRepository{db: db}
}

// All returns every menu item, newest first.
func (r *MenuItemRepository) All() ([]models.MenuItem, error) {
	var items []models.MenuItem
	err := r.db.Order("created_at desc").Find(&items).Error
	return items, err
}

// FindByID looks up a menu item by primary key.
func (r *MenuItemRepository) FindByID(id uint) (models.MenuItem, error) {
	var item models.MenuItem
	err := r.db.First(&item, id).Error
	return item, err
}

// ExistsByName reports whether an item with the name already exists,
// excluding the given ID (pass 0 for creates).
func (r *MenuItemRepository) ExistsByName(name string, excludeID uint) (bool, error) {
	var count int64
	q := r.db.Model(&models.MenuItem{}).Where("name = ?", name)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	err := q.Count(&count).Error
	return count > 0, err
}

// Create persists a new menu item.
func (r *MenuItemRepository) Create(item *models.MenuItem) error {
	return r.db.Create(item).Error
}

// Update persists changes to an existing menu item.
func (r *MenuItemRepository) Update(item *models.MenuItem) error {
	return r.db.Save(item).Error
}

// Delete removes a menu item.
func (r *MenuItemRepository) Delete(id uint) error {
	return r.db.Delete(&models.MenuItem{}, id).Error
}

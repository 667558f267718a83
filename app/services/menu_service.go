package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/ashrith-07/campus-bites-sub000/app/models"
	"github.com/ashrith-07/campus-bites-sub000/app/repositories"
	"github.com/ashrith-07/campus-bites-sub000/pkg/apperr"
	"github.com/ashrith-07/campus-bites-sub000/pkg/cache"
)

const (
	menuCacheKey = "menu:items"
	menuCacheTTL = 5 * time.Minute
)

// MenuService handles the menu catalogue. Reads go through the Redis
// cache; every mutation invalidates it.
type MenuService struct {
	items *repositories.MenuItemRepository
	cache *cache.Cache
}

func NewMenuService(items *repositories.MenuItemRepository, c *cache.Cache) *MenuService {
	return &MenuService{items: items, cache: c}
}

// MenuItemInput is the validated create/update payload.
type MenuItemInput struct {
	Name         string
	Description  string
	Price        float64
	Category     string
	ImageURL     string
	ImageIsEmoji bool
	Stock        int
	IsAvailable  bool
	Popular      bool
}

// List returns the full menu, newest first.
func (s *MenuService) List(ctx context.Context) ([]models.MenuItem, error) {
	var cached []models.MenuItem
	if s.cache.Get(ctx, menuCacheKey, &cached) {
		return cached, nil
	}

	items, err := s.items.All()
	if err != nil {
		return nil, apperr.Internal(err)
	}

	s.cache.Set(ctx, menuCacheKey, items, menuCacheTTL)
	return items, nil
}

// Get returns one menu item.
func (s *MenuService) Get(id uint) (models.MenuItem, error) {
	item, err := s.items.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.MenuItem{}, apperr.NotFound("Menu item not found")
		}
		return models.MenuItem{}, apperr.Internal(err)
	}
	return item, nil
}

// Create adds a menu item. Names are unique across the catalogue.
func (s *MenuService) Create(ctx context.Context, in MenuItemInput) (models.MenuItem, error) {
	if err := s.ensureUniqueName(in.Name, 0); err != nil {
		return models.MenuItem{}, err
	}

	item := models.MenuItem{
		Name:         in.Name,
		Description:  in.Description,
		Price:        in.Price,
		Category:     in.Category,
		ImageURL:     in.ImageURL,
		ImageIsEmoji: in.ImageIsEmoji,
		Stock:        in.Stock,
		IsAvailable:  in.IsAvailable,
		Popular:      in.Popular,
	}
	if err := s.items.Create(&item); err != nil {
		return models.MenuItem{}, apperr.Internal(err)
	}

	s.cache.Forget(ctx, menuCacheKey)
	return item, nil
}

// Update replaces a menu item's fields.
func (s *MenuService) Update(ctx context.Context, id uint, in MenuItemInput) (models.MenuItem, error) {
	item, err := s.Get(id)
	if err != nil {
		return models.MenuItem{}, err
	}

	if err := s.ensureUniqueName(in.Name, id); err != nil {
		return models.MenuItem{}, err
	}

	item.Name = in.Name
	item.Description = in.Description
	item.Price = in.Price
	item.Category = in.Category
	item.ImageURL = in.ImageURL
	item.ImageIsEmoji = in.ImageIsEmoji
	item.Stock = in.Stock
	item.IsAvailable = in.IsAvailable
	item.Popular = in.Popular

	if err := s.items.Update(&item); err != nil {
		return models.MenuItem{}, apperr.Internal(err)
	}

	s.cache.Forget(ctx, menuCacheKey)
	return item, nil
}

// Delete removes a menu item.
func (s *MenuService) Delete(ctx context.Context, id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	if err := s.items.Delete(id); err != nil {
		return apperr.Internal(err)
	}

	s.cache.Forget(ctx, menuCacheKey)
	return nil
}

func (s *MenuService) ensureUniqueName(name string, excludeID uint) error {
	taken, err := s.items.ExistsByName(name, excludeID)
	if err != nil {
		return apperr.Internal(err)
	}
	if taken {
		return apperr.Conflict("A menu item with this name already exists")
	}
	return nil
}

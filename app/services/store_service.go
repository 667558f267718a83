package services

import (
	"context"
	"errors"
	"strconv"
	"time"

	"gorm.io/gorm"

	"github.com/ashrith-07/campus-bites-sub000/app/models"
	"github.com/ashrith-07/campus-bites-sub000/app/repositories"
	"github.com/ashrith-07/campus-bites-sub000/pkg/apperr"
	"github.com/ashrith-07/campus-bites-sub000/pkg/auth"
	"github.com/ashrith-07/campus-bites-sub000/pkg/cache"
	"github.com/ashrith-07/campus-bites-sub000/pkg/logger"
	"github.com/ashrith-07/campus-bites-sub000/pkg/realtime"
)

const (
	storeCacheKey = "store:isOpen"
	storeCacheTTL = time.Hour
)

// StoreService tracks whether the store accepts orders. Reads never
// fail the caller: any error degrades to open so browsing is never
// blocked.
type StoreService struct {
	settings *repositories.StoreSettingRepository
	cache    *cache.Cache
	dispatch *realtime.Dispatcher
}

func NewStoreService(settings *repositories.StoreSettingRepository, c *cache.Cache, dispatch *realtime.Dispatcher) *StoreService {
	return &StoreService{settings: settings, cache: c, dispatch: dispatch}
}

// Get returns the store's open state, lazily creating the row as open
// on first access. The cache is consulted first and refilled from the
// repository on a miss.
func (s *StoreService) Get(ctx context.Context) bool {
	var cached bool
	if s.cache.Get(ctx, storeCacheKey, &cached) {
		return cached
	}

	setting, err := s.settings.FindByKey(models.SettingKeyIsOpen)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			created := models.StoreSetting{Key: models.SettingKeyIsOpen, Value: "true"}
			if err := s.settings.Create(&created); err != nil {
				logger.Warn("store: initialise isOpen failed", "error", err)
			}
			s.cache.Set(ctx, storeCacheKey, true, storeCacheTTL)
			return true
		}
		logger.Warn("store: read isOpen failed, reporting open", "error", err)
		return true
	}

	open, err := strconv.ParseBool(setting.Value)
	if err != nil {
		logger.Warn("store: malformed isOpen value, reporting open", "value", setting.Value)
		return true
	}

	s.cache.Set(ctx, storeCacheKey, open, storeCacheTTL)
	return open
}

// Set persists the open state and broadcasts it to every connected
// client. Vendor only.
func (s *StoreService) Set(ctx context.Context, caller *auth.Identity, isOpen bool) error {
	if caller == nil {
		return apperr.Unauthenticated("Login required")
	}
	if caller.Role != models.RoleVendor {
		return apperr.Forbidden("Only vendors may change the store status")
	}

	if err := s.settings.Upsert(models.SettingKeyIsOpen, strconv.FormatBool(isOpen)); err != nil {
		return apperr.Internal(err)
	}

	s.cache.Set(ctx, storeCacheKey, isOpen, storeCacheTTL)
	s.dispatch.Broadcast(realtime.StoreStatus(isOpen))
	return nil
}

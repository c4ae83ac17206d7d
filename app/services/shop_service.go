package services

import (
	"context"
	"time"

	"github.com/drovo/backend/app/models"
	"github.com/drovo/backend/app/repositories"
	"github.com/drovo/backend/pkg/cache"
	"github.com/drovo/backend/pkg/logger"
)

// shopDirectoryKey caches the public shop listing, the hottest read in the
// API. Invalidated on payment verification, which is the only write that
// changes which shops are active.
const (
	shopDirectoryKey = "drovo:shops:active"
	shopDirectoryTTL = time.Minute
)

// ShopService serves the public shop directory and a shop's own profile.
type ShopService struct {
	shops repositories.ShopRepository
	foods repositories.FoodRepository
}

func NewShopService(shops repositories.ShopRepository, foods repositories.FoodRepository) *ShopService {
	return &ShopService{shops: shops, foods: foods}
}

// FetchAll lists shops whose subscription window covers now. Expired and
// never-completed shops stay invisible to customers.
func (s *ShopService) FetchAll(ctx context.Context) ([]models.Shop, error) {
	var cached []models.Shop
	if cache.Get(ctx, shopDirectoryKey, &cached) {
		return cached, nil
	}

	shops, err := s.shops.FindActive(ctx, time.Now())
	if err != nil {
		return nil, err
	}
	if shops == nil {
		shops = []models.Shop{}
	}

	if err := cache.Set(ctx, shopDirectoryKey, shops, shopDirectoryTTL); err != nil {
		logger.WithCtx(ctx).Warn("shops: cache directory", "error", err)
	}
	return shops, nil
}

// Find returns a shop's public profile together with its catalog.
func (s *ShopService) Find(ctx context.Context, shopID string) (*models.Shop, []models.FoodItem, error) {
	shop, err := s.shops.FindByID(ctx, shopID)
	if err != nil {
		return nil, nil, err
	}
	items, err := s.foods.ListByShop(ctx, shopID)
	if err != nil {
		return nil, nil, err
	}
	if items == nil {
		items = []models.FoodItem{}
	}
	return shop, items, nil
}

// Details returns the caller's own shop profile.
func (s *ShopService) Details(ctx context.Context, shopID string) (*models.Shop, error) {
	return s.shops.FindByID(ctx, shopID)
}

package services

import (
	"context"
	"path"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/drovo/backend/app/models"
	"github.com/drovo/backend/app/repositories"
	"github.com/drovo/backend/pkg/logger"
	"github.com/drovo/backend/pkg/storage"
)

// foodImageDir is where catalog images live on the storage disk.
const foodImageDir = "foods"

// FoodInput carries the validated fields for a new catalog item. The image
// arrives separately as a stored filename.
type FoodInput struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description" validate:"required"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	Quantity    int     `json:"quantity" validate:"required,gt=0"`
	Unit        string  `json:"unit" validate:"required"`
	Category    string  `json:"category" validate:"required"`
}

// FoodUpdate carries a partial edit. Zero-valued fields are left untouched;
// numeric fields use pointers so 0 is distinguishable from absent.
type FoodUpdate struct {
	Name        string
	Description string
	Unit        string
	Category    string
	Price       *float64
	Quantity    *int
	Image       string
}

// CatalogService manages a shop's food items. Every operation is scoped to
// the owning shop; cross-shop access surfaces as not-found.
type CatalogService struct {
	foods       repositories.FoodRepository
	removeAsset func(string) error
}

func NewCatalogService(foods repositories.FoodRepository) *CatalogService {
	return &CatalogService{
		foods:       foods,
		removeAsset: storage.Delete,
	}
}

// Add creates a new item owned by shopID. image is the stored filename.
func (s *CatalogService) Add(ctx context.Context, shopID primitive.ObjectID, in FoodInput, image string) (*models.FoodItem, error) {
	item := &models.FoodItem{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Quantity:    in.Quantity,
		Unit:        in.Unit,
		Category:    in.Category,
		Image:       image,
		ShopID:      shopID,
	}
	if err := s.foods.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// Edit applies a partial update to an owned item. When a new image is
// supplied the old asset is deleted best-effort: a failed delete is logged
// and never fails the edit.
func (s *CatalogService) Edit(ctx context.Context, shopID primitive.ObjectID, id string, upd FoodUpdate) (*models.FoodItem, error) {
	item, err := s.foods.FindOwned(ctx, id, shopID.Hex())
	if err != nil {
		return nil, err
	}

	if upd.Name != "" {
		item.Name = upd.Name
	}
	if upd.Description != "" {
		item.Description = upd.Description
	}
	if upd.Unit != "" {
		item.Unit = upd.Unit
	}
	if upd.Category != "" {
		item.Category = upd.Category
	}
	if upd.Price != nil {
		item.Price = *upd.Price
	}
	if upd.Quantity != nil {
		item.Quantity = *upd.Quantity
	}
	if upd.Image != "" && upd.Image != item.Image {
		s.deleteImage(ctx, item.Image)
		item.Image = upd.Image
	}

	if err := s.foods.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// Get returns one owned item.
func (s *CatalogService) Get(ctx context.Context, shopID primitive.ObjectID, id string) (*models.FoodItem, error) {
	return s.foods.FindOwned(ctx, id, shopID.Hex())
}

// List returns all items of a shop.
func (s *CatalogService) List(ctx context.Context, shopID string) ([]models.FoodItem, error) {
	items, err := s.foods.ListByShop(ctx, shopID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []models.FoodItem{}
	}
	return items, nil
}

// Remove deletes an owned item and, best-effort, its stored image.
func (s *CatalogService) Remove(ctx context.Context, shopID primitive.ObjectID, id string) error {
	item, err := s.foods.FindOwned(ctx, id, shopID.Hex())
	if err != nil {
		return err
	}
	if err := s.foods.DeleteOwned(ctx, id, shopID.Hex()); err != nil {
		return err
	}
	s.deleteImage(ctx, item.Image)
	return nil
}

func (s *CatalogService) deleteImage(ctx context.Context, image string) {
	if image == "" {
		return
	}
	if err := s.removeAsset(path.Join(foodImageDir, image)); err != nil {
		logger.WithCtx(ctx).Warn("catalog: delete image", "image", image, "error", err)
	}
}

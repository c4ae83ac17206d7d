// Package repositories handles database operations, one repository per
// document kind. The interfaces exist so services and middleware can be
// tested against in-memory fakes; the mongo implementations are the only
// ones used in production.
package repositories

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/drovo/backend/app/models"
)

// ErrNotFound is returned when no document matches the query.
var ErrNotFound = errors.New("repositories: not found")

// UserRepository persists user accounts.
type UserRepository interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	UpdateCart(ctx context.Context, id string, cart map[string]int) error
}

// ShopRepository persists shop accounts.
type ShopRepository interface {
	FindByID(ctx context.Context, id string) (*models.Shop, error)
	FindByEmail(ctx context.Context, email string) (*models.Shop, error)
	Create(ctx context.Context, shop *models.Shop) error
	Update(ctx context.Context, shop *models.Shop) error
	FindActive(ctx context.Context, now time.Time) ([]models.Shop, error)
}

// FoodRepository persists catalog items.
type FoodRepository interface {
	Create(ctx context.Context, item *models.FoodItem) error
	FindByID(ctx context.Context, id string) (*models.FoodItem, error)
	FindOwned(ctx context.Context, id, shopID string) (*models.FoodItem, error)
	ListByShop(ctx context.Context, shopID string) ([]models.FoodItem, error)
	Update(ctx context.Context, item *models.FoodItem) error
	DeleteOwned(ctx context.Context, id, shopID string) error
}

// OrderRepository persists orders.
type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, id string) (*models.Order, error)
	ListByUser(ctx context.Context, userID string) ([]models.Order, error)
	ListByShop(ctx context.Context, shopID string) ([]models.Order, error)
	UpdateStatus(ctx context.Context, id, status string) error
}

// objectID parses a hex id, mapping malformed input to ErrNotFound — a bad id
// can never match a document, and callers treat both the same way.
func objectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, ErrNotFound
	}
	return oid, nil
}

func mapErr(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	return err
}

package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/drovo/backend/app/models"
	"github.com/drovo/backend/app/repositories"
)

// In-memory repositories backing the service tests.

type fakeUserRepo struct {
	users map[string]*models.User // id hex → user
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*models.User{}}
}

func (r *fakeUserRepo) FindByID(_ context.Context, id string) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	user.ID = primitive.NewObjectID()
	cp := *user
	r.users[user.ID.Hex()] = &cp
	return nil
}

func (r *fakeUserRepo) UpdateCart(_ context.Context, id string, cart map[string]int) error {
	u, ok := r.users[id]
	if !ok {
		return repositories.ErrNotFound
	}
	u.CartData = cart
	return nil
}

type fakeShopRepo struct {
	shops   map[string]*models.Shop
	updates int
}

func newFakeShopRepo() *fakeShopRepo {
	return &fakeShopRepo{shops: map[string]*models.Shop{}}
}

func (r *fakeShopRepo) FindByID(_ context.Context, id string) (*models.Shop, error) {
	s, ok := r.shops[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *fakeShopRepo) FindByEmail(_ context.Context, email string) (*models.Shop, error) {
	for _, s := range r.shops {
		if s.Email == email {
			cp := *s
			return &cp, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeShopRepo) Create(_ context.Context, shop *models.Shop) error {
	shop.ID = primitive.NewObjectID()
	cp := *shop
	r.shops[shop.ID.Hex()] = &cp
	return nil
}

func (r *fakeShopRepo) Update(_ context.Context, shop *models.Shop) error {
	if _, ok := r.shops[shop.ID.Hex()]; !ok {
		return repositories.ErrNotFound
	}
	cp := *shop
	r.shops[shop.ID.Hex()] = &cp
	r.updates++
	return nil
}

func (r *fakeShopRepo) FindActive(_ context.Context, now time.Time) ([]models.Shop, error) {
	var out []models.Shop
	for _, s := range r.shops {
		if s.SubscriptionActive(now) {
			out = append(out, *s)
		}
	}
	return out, nil
}

type fakeFoodRepo struct {
	items map[string]*models.FoodItem
}

func newFakeFoodRepo() *fakeFoodRepo {
	return &fakeFoodRepo{items: map[string]*models.FoodItem{}}
}

func (r *fakeFoodRepo) Create(_ context.Context, item *models.FoodItem) error {
	item.ID = primitive.NewObjectID()
	cp := *item
	r.items[item.ID.Hex()] = &cp
	return nil
}

func (r *fakeFoodRepo) FindByID(_ context.Context, id string) (*models.FoodItem, error) {
	it, ok := r.items[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *it
	return &cp, nil
}

func (r *fakeFoodRepo) FindOwned(_ context.Context, id, shopID string) (*models.FoodItem, error) {
	it, ok := r.items[id]
	if !ok || it.ShopID.Hex() != shopID {
		return nil, repositories.ErrNotFound
	}
	cp := *it
	return &cp, nil
}

func (r *fakeFoodRepo) ListByShop(_ context.Context, shopID string) ([]models.FoodItem, error) {
	var out []models.FoodItem
	for _, it := range r.items {
		if it.ShopID.Hex() == shopID {
			out = append(out, *it)
		}
	}
	return out, nil
}

func (r *fakeFoodRepo) Update(_ context.Context, item *models.FoodItem) error {
	if _, ok := r.items[item.ID.Hex()]; !ok {
		return repositories.ErrNotFound
	}
	cp := *item
	r.items[item.ID.Hex()] = &cp
	return nil
}

func (r *fakeFoodRepo) DeleteOwned(_ context.Context, id, shopID string) error {
	it, ok := r.items[id]
	if !ok || it.ShopID.Hex() != shopID {
		return repositories.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

type fakeOrderRepo struct {
	orders map[string]*models.Order
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: map[string]*models.Order{}}
}

func (r *fakeOrderRepo) Create(_ context.Context, order *models.Order) error {
	order.ID = primitive.NewObjectID()
	cp := *order
	r.orders[order.ID.Hex()] = &cp
	return nil
}

func (r *fakeOrderRepo) FindByID(_ context.Context, id string) (*models.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (r *fakeOrderRepo) ListByUser(_ context.Context, userID string) ([]models.Order, error) {
	var out []models.Order
	for _, o := range r.orders {
		if o.UserID.Hex() == userID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) ListByShop(_ context.Context, shopID string) ([]models.Order, error) {
	var out []models.Order
	for _, o := range r.orders {
		if o.ShopID.Hex() == shopID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) UpdateStatus(_ context.Context, id, status string) error {
	o, ok := r.orders[id]
	if !ok {
		return repositories.ErrNotFound
	}
	o.Status = status
	return nil
}

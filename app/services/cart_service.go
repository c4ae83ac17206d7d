package services

import (
	"context"

	"github.com/drovo/backend/app/repositories"
)

// CartService mutates a user's pre-checkout cart: a map of food item id to
// quantity. Cart state is advisory, the order snapshot is what matters.
type CartService struct {
	users repositories.UserRepository
}

func NewCartService(users repositories.UserRepository) *CartService {
	return &CartService{users: users}
}

// Add increments the quantity for itemID in the user's cart.
func (s *CartService) Add(ctx context.Context, userID, itemID string) (map[string]int, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	cart := user.CartData
	if cart == nil {
		cart = map[string]int{}
	}
	cart[itemID]++

	if err := s.users.UpdateCart(ctx, userID, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// Remove decrements the quantity for itemID, dropping the entry at zero.
func (s *CartService) Remove(ctx context.Context, userID, itemID string) (map[string]int, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	cart := user.CartData
	if cart == nil {
		cart = map[string]int{}
	}
	if cart[itemID] > 1 {
		cart[itemID]--
	} else {
		delete(cart, itemID)
	}

	if err := s.users.UpdateCart(ctx, userID, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// Get returns the user's cart.
func (s *CartService) Get(ctx context.Context, userID string) (map[string]int, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.CartData == nil {
		return map[string]int{}, nil
	}
	return user.CartData, nil
}

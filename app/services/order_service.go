package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/drovo/backend/app/jobs"
	"github.com/drovo/backend/app/models"
	"github.com/drovo/backend/app/repositories"
	"github.com/drovo/backend/pkg/logger"
	"github.com/drovo/backend/pkg/queue"
)

// OrderItemInput is one cart line at checkout.
type OrderItemInput struct {
	FoodID   string  `json:"foodId" validate:"required"`
	Name     string  `json:"name" validate:"required"`
	Quantity int     `json:"quantity" validate:"required,gt=0"`
	Price    float64 `json:"price" validate:"required,gt=0"`
}

// PlaceOrderInput is the checkout payload.
type PlaceOrderInput struct {
	ShopID         string                 `json:"shopId" validate:"required"`
	Items          []OrderItemInput       `json:"items" validate:"required"`
	Amount         float64                `json:"amount" validate:"required,gt=0"`
	Address        models.DeliveryAddress `json:"address"`
	DeliveryCharge float64                `json:"deliveryCharge"`
}

// FeedbackInput is a customer's post-order rating, relayed to the shop.
type FeedbackInput struct {
	ShopID  string `json:"shopId" validate:"required"`
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Message string `json:"message" validate:"required"`
}

// OrderService owns the order lifecycle from checkout to status updates.
type OrderService struct {
	orders   repositories.OrderRepository
	users    repositories.UserRepository
	shops    repositories.ShopRepository
	dispatch func(queue.Job) error
	now      func() time.Time
}

func NewOrderService(orders repositories.OrderRepository, users repositories.UserRepository, shops repositories.ShopRepository) *OrderService {
	return &OrderService{
		orders:   orders,
		users:    users,
		shops:    shops,
		dispatch: queue.Dispatch,
		now:      time.Now,
	}
}

// Place stores the order, clears the user's cart, and queues the shop
// notification mail. The three steps are deliberately non-transactional:
// the response reports success once the order is durably stored, and a
// failed cart clear or notification is logged, never surfaced. Item lines
// are snapshots, so later catalog edits do not rewrite order history.
func (s *OrderService) Place(ctx context.Context, userID string, in PlaceOrderInput) (*models.Order, error) {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, repositories.ErrNotFound
	}
	sid, err := primitive.ObjectIDFromHex(in.ShopID)
	if err != nil {
		return nil, repositories.ErrNotFound
	}

	items := make([]models.OrderItem, 0, len(in.Items))
	for _, it := range in.Items {
		fid, err := primitive.ObjectIDFromHex(it.FoodID)
		if err != nil {
			return nil, repositories.ErrNotFound
		}
		items = append(items, models.OrderItem{
			FoodID:   fid,
			Name:     it.Name,
			Quantity: it.Quantity,
			Price:    it.Price,
		})
	}

	order := &models.Order{
		UserID:         uid,
		ShopID:         sid,
		Items:          items,
		Amount:         in.Amount,
		Address:        in.Address,
		DeliveryCharge: in.DeliveryCharge,
		Status:         models.OrderStatusPlaced,
		Date:           s.now(),
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}

	if err := s.users.UpdateCart(ctx, userID, map[string]int{}); err != nil {
		logger.WithCtx(ctx).Warn("order: clear cart", "user", userID, "error", err)
	}

	shop, err := s.shops.FindByID(ctx, in.ShopID)
	if err != nil {
		logger.WithCtx(ctx).Warn("order: resolve shop for notification", "shop", in.ShopID, "error", err)
		return order, nil
	}
	if err := s.dispatch(jobs.OrderPlacedJob{
		ShopEmail: shop.Email,
		ShopName:  shop.Name,
		OrderID:   order.ID.Hex(),
		Amount:    order.Amount,
	}); err != nil {
		logger.WithCtx(ctx).Warn("order: queue notification", "order", order.ID.Hex(), "error", err)
	}

	return order, nil
}

// ListUser returns a user's orders, newest first.
func (s *OrderService) ListUser(ctx context.Context, userID string) ([]models.Order, error) {
	orders, err := s.orders.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []models.Order{}
	}
	return orders, nil
}

// ListShop returns a shop's orders, newest first.
func (s *OrderService) ListShop(ctx context.Context, shopID string) ([]models.Order, error) {
	orders, err := s.orders.ListByShop(ctx, shopID)
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []models.Order{}
	}
	return orders, nil
}

// UpdateStatus overwrites an order's status. No transition validation and no
// caller check: the admin panel posts arbitrary status strings here.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID, status string) error {
	return s.orders.UpdateStatus(ctx, orderID, status)
}

// Detail joins an order with its shop for the order-tracking screen.
func (s *OrderService) Detail(ctx context.Context, orderID string) (*models.Order, *models.Shop, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}
	shop, err := s.shops.FindByID(ctx, order.ShopID.Hex())
	if err != nil {
		return nil, nil, err
	}
	return order, shop, nil
}

// Feedback relays a customer's rating and message to the shop by mail.
func (s *OrderService) Feedback(ctx context.Context, in FeedbackInput) error {
	shop, err := s.shops.FindByID(ctx, in.ShopID)
	if err != nil {
		return err
	}
	return s.dispatch(jobs.FeedbackMailJob{
		ShopEmail: shop.Email,
		UserName:  in.Name,
		UserEmail: in.Email,
		Rating:    in.Rating,
		Message:   in.Message,
	})
}

package services

import (
	"context"
	"testing"
	"time"

	"github.com/drovo/backend/app/jobs"
	"github.com/drovo/backend/app/models"
	"github.com/drovo/backend/pkg/queue"
)

func newTestOrderService() (*OrderService, *fakeOrderRepo, *fakeUserRepo, *fakeShopRepo, *[]queue.Job) {
	orders := newFakeOrderRepo()
	users := newFakeUserRepo()
	shops := newFakeShopRepo()
	var dispatched []queue.Job

	svc := NewOrderService(orders, users, shops)
	svc.dispatch = func(j queue.Job) error {
		dispatched = append(dispatched, j)
		return nil
	}
	svc.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }
	return svc, orders, users, shops, &dispatched
}

func TestPlaceOrder(t *testing.T) {
	svc, orders, users, shops, dispatched := newTestOrderService()
	ctx := context.Background()

	user := &models.User{Name: "Asha", Email: "asha@example.com", CartData: map[string]int{"abc": 2}}
	users.Create(ctx, user) //nolint:errcheck
	shop := seedShop(shops, "shop@example.com")
	food := models.FoodItem{ID: shop.ID} // any valid hex id works for the snapshot

	order, err := svc.Place(ctx, user.ID.Hex(), PlaceOrderInput{
		ShopID: shop.ID.Hex(),
		Items: []OrderItemInput{
			{FoodID: food.ID.Hex(), Name: "Samosa", Quantity: 2, Price: 20},
		},
		Amount:         250,
		Address:        models.DeliveryAddress{Street: "12 MG Road", City: "Bengaluru", Phone: "9876543210"},
		DeliveryCharge: 30,
	})
	if err != nil {
		t.Fatalf("place order: %v", err)
	}

	if order.Status != models.OrderStatusPlaced {
		t.Errorf("status = %q, want %q", order.Status, models.OrderStatusPlaced)
	}

	// The cart is cleared after placement.
	stored, _ := users.FindByID(ctx, user.ID.Hex())
	if len(stored.CartData) != 0 {
		t.Errorf("cart not cleared: %v", stored.CartData)
	}

	// The shop notification is queued with the order details.
	if len(*dispatched) != 1 {
		t.Fatalf("dispatched %d jobs, want 1", len(*dispatched))
	}
	job, ok := (*dispatched)[0].(jobs.OrderPlacedJob)
	if !ok {
		t.Fatalf("dispatched job is %T", (*dispatched)[0])
	}
	if job.ShopEmail != "shop@example.com" || job.OrderID != order.ID.Hex() {
		t.Errorf("notification = %+v", job)
	}

	// Retrievable through the user listing and the detail join.
	list, err := svc.ListUser(ctx, user.ID.Hex())
	if err != nil || len(list) != 1 {
		t.Fatalf("list user orders: %v (%d)", err, len(list))
	}
	gotOrder, gotShop, err := svc.Detail(ctx, order.ID.Hex())
	if err != nil {
		t.Fatalf("detail: %v", err)
	}
	if gotOrder.Amount != 250 || gotShop.Email != "shop@example.com" {
		t.Errorf("detail join: order=%+v shop=%+v", gotOrder, gotShop)
	}
	_ = orders
}

func TestPlaceOrderSurvivesNotificationFailure(t *testing.T) {
	svc, _, users, shops, _ := newTestOrderService()
	ctx := context.Background()

	user := &models.User{Email: "asha@example.com", CartData: map[string]int{"abc": 1}}
	users.Create(ctx, user) //nolint:errcheck
	shop := seedShop(shops, "shop@example.com")

	svc.dispatch = func(queue.Job) error { return context.DeadlineExceeded }

	order, err := svc.Place(ctx, user.ID.Hex(), PlaceOrderInput{
		ShopID: shop.ID.Hex(),
		Items:  []OrderItemInput{{FoodID: shop.ID.Hex(), Name: "Samosa", Quantity: 1, Price: 20}},
		Amount: 20,
	})
	if err != nil {
		t.Fatalf("place order must succeed despite notification failure: %v", err)
	}
	if order.ID.IsZero() {
		t.Error("order not stored")
	}
}

func TestUpdateStatusOverwrites(t *testing.T) {
	svc, orders, users, shops, _ := newTestOrderService()
	ctx := context.Background()

	user := &models.User{Email: "asha@example.com"}
	users.Create(ctx, user) //nolint:errcheck
	shop := seedShop(shops, "shop@example.com")

	order, err := svc.Place(ctx, user.ID.Hex(), PlaceOrderInput{
		ShopID: shop.ID.Hex(),
		Items:  []OrderItemInput{{FoodID: shop.ID.Hex(), Name: "Samosa", Quantity: 1, Price: 20}},
		Amount: 20,
	})
	if err != nil {
		t.Fatal(err)
	}

	if err := svc.UpdateStatus(ctx, order.ID.Hex(), "Out for Delivery"); err != nil {
		t.Fatalf("update status: %v", err)
	}
	stored, _ := orders.FindByID(ctx, order.ID.Hex())
	if stored.Status != "Out for Delivery" {
		t.Errorf("status = %q", stored.Status)
	}
	if stored.Amount != 20 || stored.UserID != order.UserID {
		t.Error("immutable fields changed on status update")
	}
}

func TestFeedbackRelaysToShop(t *testing.T) {
	svc, _, _, shops, dispatched := newTestOrderService()
	ctx := context.Background()
	shop := seedShop(shops, "shop@example.com")

	err := svc.Feedback(ctx, FeedbackInput{
		ShopID:  shop.ID.Hex(),
		Name:    "Asha",
		Email:   "asha@example.com",
		Rating:  4,
		Message: "Great samosas",
	})
	if err != nil {
		t.Fatalf("feedback: %v", err)
	}
	if len(*dispatched) != 1 {
		t.Fatalf("dispatched %d jobs, want 1", len(*dispatched))
	}
	job, ok := (*dispatched)[0].(jobs.FeedbackMailJob)
	if !ok || job.ShopEmail != "shop@example.com" || job.Rating != 4 {
		t.Errorf("feedback job = %+v", (*dispatched)[0])
	}
}

package services

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"testing"
	"time"

	"github.com/drovo/backend/app/models"
	"github.com/drovo/backend/pkg/gateway"
)

const testKeySecret = "test_key_secret"

func testSign(orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(testKeySecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func newTestPaymentService(shops *fakeShopRepo, now time.Time) *PaymentService {
	svc := NewPaymentService(shops, gateway.NewWithCredentials("key", testKeySecret, ""))
	svc.now = func() time.Time { return now }
	return svc
}

func seedShop(shops *fakeShopRepo, email string) *models.Shop {
	shop := &models.Shop{Name: "Chaat Corner", Email: email, Password: "hash"}
	shops.Create(context.Background(), shop) //nolint:errcheck
	return shop
}

func TestVerifySetupCompletesShop(t *testing.T) {
	shops := newFakeShopRepo()
	seedShop(shops, "shop@example.com")
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc := newTestPaymentService(shops, now)

	shop, err := svc.VerifySetup(context.Background(), SetupVerification{
		GatewayOrderID:   "order_1",
		GatewayPaymentID: "pay_1",
		Signature:        testSign("order_1", "pay_1"),
		Email:            "shop@example.com",
		Name:             "Chaat Corner Deluxe",
		Phone:            "9876543210",
		Subscription:     "99",
		Address:          models.ShopAddress{Address: "12 MG Road", Latitude: "12.97", Longitude: "77.59"},
		Image:            "image-abc.png",
	})
	if err != nil {
		t.Fatalf("verify setup: %v", err)
	}

	if !shop.IsSetupComplete {
		t.Error("setup flag not set")
	}
	want := now.Add(15 * 24 * time.Hour)
	if shop.SubEndDate == nil || !shop.SubEndDate.Equal(want) {
		t.Errorf("subEndDate = %v, want %v", shop.SubEndDate, want)
	}
	if shop.PaymentDetails.GatewayOrderID != "order_1" || shop.PaymentDetails.GatewayPaymentID != "pay_1" {
		t.Errorf("payment details not recorded: %+v", shop.PaymentDetails)
	}
	if shop.ShopImage != "image-abc.png" {
		t.Errorf("shop image = %q", shop.ShopImage)
	}

	stored, _ := shops.FindByEmail(context.Background(), "shop@example.com")
	if !stored.IsSetupComplete {
		t.Error("setup flag not persisted")
	}
}

func TestVerifySetupBadSignature(t *testing.T) {
	shops := newFakeShopRepo()
	seedShop(shops, "shop@example.com")
	svc := newTestPaymentService(shops, time.Now())

	_, err := svc.VerifySetup(context.Background(), SetupVerification{
		GatewayOrderID:   "order_1",
		GatewayPaymentID: "pay_1",
		Signature:        "deadbeef",
		Email:            "shop@example.com",
		Subscription:     "99",
	})
	if !errors.Is(err, ErrInvalidSignature) {
		t.Fatalf("expected ErrInvalidSignature, got %v", err)
	}
	if shops.updates != 0 {
		t.Error("shop written despite signature failure")
	}
}

func TestVerifySetupUnknownPlanRejectedBeforeWrite(t *testing.T) {
	shops := newFakeShopRepo()
	seedShop(shops, "shop@example.com")
	svc := newTestPaymentService(shops, time.Now())

	_, err := svc.VerifySetup(context.Background(), SetupVerification{
		GatewayOrderID:   "order_1",
		GatewayPaymentID: "pay_1",
		Signature:        testSign("order_1", "pay_1"),
		Email:            "shop@example.com",
		Subscription:     "42",
	})
	if !errors.Is(err, ErrInvalidPlan) {
		t.Fatalf("expected ErrInvalidPlan, got %v", err)
	}
	if shops.updates != 0 {
		t.Error("shop written despite unknown plan")
	}
}

func TestVerifyRenewalExtendsFlatFromNow(t *testing.T) {
	shops := newFakeShopRepo()
	shop := seedShop(shops, "shop@example.com")

	// An active subscription with 10 days left; renewal still computes from now.
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	remaining := now.Add(10 * 24 * time.Hour)
	shop.IsSetupComplete = true
	shop.SubEndDate = &remaining
	shops.shops[shop.ID.Hex()] = shop

	svc := newTestPaymentService(shops, now)
	renewed, err := svc.VerifyRenewal(context.Background(), shop.ID.Hex(), RenewalVerification{
		GatewayOrderID:   "order_2",
		GatewayPaymentID: "pay_2",
		Signature:        testSign("order_2", "pay_2"),
		Subscription:     "149",
	})
	if err != nil {
		t.Fatalf("verify renewal: %v", err)
	}

	want := now.Add(30 * 24 * time.Hour)
	if renewed.SubEndDate == nil || !renewed.SubEndDate.Equal(want) {
		t.Errorf("subEndDate = %v, want %v (flat from now)", renewed.SubEndDate, want)
	}
	if renewed.Subscription != "149" {
		t.Errorf("subscription = %q", renewed.Subscription)
	}
}

func TestVerifyRenewalUnknownShop(t *testing.T) {
	shops := newFakeShopRepo()
	svc := newTestPaymentService(shops, time.Now())

	_, err := svc.VerifyRenewal(context.Background(), "660f1a2b3c4d5e6f70819203", RenewalVerification{
		GatewayOrderID:   "order_2",
		GatewayPaymentID: "pay_2",
		Signature:        testSign("order_2", "pay_2"),
		Subscription:     "149",
	})
	if err == nil {
		t.Fatal("expected error for unknown shop")
	}
}

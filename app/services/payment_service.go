package services

import (
	"context"
	"time"

	"github.com/drovo/backend/app/models"
	"github.com/drovo/backend/app/repositories"
	"github.com/drovo/backend/pkg/cache"
	"github.com/drovo/backend/pkg/gateway"
	"github.com/drovo/backend/pkg/logger"
)

// SetupVerification is the payload of the one-time setup payment: the
// gateway confirmation plus the shop profile collected during onboarding.
type SetupVerification struct {
	GatewayOrderID   string
	GatewayPaymentID string
	Signature        string
	Email            string
	Name             string
	Phone            string
	Address          models.ShopAddress
	Subscription     string
	Image            string // stored filename, optional
}

// RenewalVerification is the payload of a subscription renewal payment.
type RenewalVerification struct {
	GatewayOrderID   string
	GatewayPaymentID string
	Signature        string
	Subscription     string
}

// PaymentService verifies gateway payment confirmations and applies their
// outcome to the shop: setup completion or subscription renewal.
type PaymentService struct {
	shops repositories.ShopRepository
	gw    *gateway.Client
	now   func() time.Time
}

func NewPaymentService(shops repositories.ShopRepository, gw *gateway.Client) *PaymentService {
	return &PaymentService{shops: shops, gw: gw, now: time.Now}
}

// CreateOrder creates a gateway order for the setup payment. Amounts are in
// whole rupees everywhere above the gateway client.
func (s *PaymentService) CreateOrder(ctx context.Context, amountRupees int64) (*gateway.Order, error) {
	return s.gw.CreateOrder(ctx, amountRupees, "INR", "setup")
}

// CreateRenewalOrder creates a gateway order for a renewal payment.
func (s *PaymentService) CreateRenewalOrder(ctx context.Context, amountRupees int64) (*gateway.Order, error) {
	return s.gw.CreateOrder(ctx, amountRupees, "INR", "renewal")
}

// planDuration maps a plan id to its validity window. Unknown plans are
// rejected before any write happens.
func planDuration(plan string) (time.Duration, error) {
	days, ok := models.PlanDays[plan]
	if !ok {
		return 0, ErrInvalidPlan
	}
	return time.Duration(days) * 24 * time.Hour, nil
}

// VerifySetup checks the gateway signature and, on success, finalises the
// shop: profile fields, setup flag, subscription window, payment record.
// Any signature mismatch is a hard rejection; no field is written first.
func (s *PaymentService) VerifySetup(ctx context.Context, in SetupVerification) (*models.Shop, error) {
	if !s.gw.VerifySignature(in.GatewayOrderID, in.GatewayPaymentID, in.Signature) {
		return nil, ErrInvalidSignature
	}

	duration, err := planDuration(in.Subscription)
	if err != nil {
		return nil, err
	}

	shop, err := s.shops.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}

	end := s.now().Add(duration)
	shop.Name = in.Name
	shop.Phone = in.Phone
	shop.ShopAddress = in.Address
	shop.Subscription = in.Subscription
	shop.IsSetupComplete = true
	shop.SubEndDate = &end
	if in.Image != "" {
		shop.ShopImage = in.Image
	}
	shop.PaymentDetails = models.PaymentDetails{
		GatewayOrderID:   in.GatewayOrderID,
		GatewayPaymentID: in.GatewayPaymentID,
		PaymentDate:      s.now(),
	}

	if err := s.shops.Update(ctx, shop); err != nil {
		return nil, err
	}
	s.invalidateDirectory(ctx)
	return shop, nil
}

// VerifyRenewal checks the gateway signature for an existing shop and resets
// the subscription window to now plus the plan duration. The extension is
// flat from now, not cumulative: renewing early forfeits remaining time.
func (s *PaymentService) VerifyRenewal(ctx context.Context, shopID string, in RenewalVerification) (*models.Shop, error) {
	shop, err := s.shops.FindByID(ctx, shopID)
	if err != nil {
		return nil, err
	}

	if !s.gw.VerifySignature(in.GatewayOrderID, in.GatewayPaymentID, in.Signature) {
		return nil, ErrInvalidSignature
	}

	duration, err := planDuration(in.Subscription)
	if err != nil {
		return nil, err
	}

	end := s.now().Add(duration)
	shop.Subscription = in.Subscription
	shop.SubEndDate = &end
	shop.PaymentDetails = models.PaymentDetails{
		GatewayOrderID:   in.GatewayOrderID,
		GatewayPaymentID: in.GatewayPaymentID,
		PaymentDate:      s.now(),
	}

	if err := s.shops.Update(ctx, shop); err != nil {
		return nil, err
	}
	s.invalidateDirectory(ctx)
	return shop, nil
}

// invalidateDirectory drops the cached public shop listing after a payment
// changes which shops are active. Best-effort: redis being down only means
// the stale entry lives out its TTL.
func (s *PaymentService) invalidateDirectory(ctx context.Context) {
	if err := cache.Del(ctx, shopDirectoryKey); err != nil {
		logger.WithCtx(ctx).Warn("payment: invalidate shop directory", "error", err)
	}
}

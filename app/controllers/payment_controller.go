package controllers

import (
	"context"
	"errors"
	"net/http"

	"github.com/drovo/backend/app/middlewares"
	"github.com/drovo/backend/app/models"
	"github.com/drovo/backend/app/repositories"
	"github.com/drovo/backend/app/services"
	"github.com/drovo/backend/pkg/auth"
	"github.com/drovo/backend/pkg/bind"
	"github.com/drovo/backend/pkg/gateway"
	"github.com/drovo/backend/pkg/response"
	"github.com/drovo/backend/pkg/storage"
)

type PaymentController struct {
	payments *services.PaymentService
}

func NewPaymentController(payments *services.PaymentService) *PaymentController {
	return &PaymentController{payments: payments}
}

type createOrderInput struct {
	Token  string `json:"token" validate:"required"`
	Amount int64  `json:"amount" validate:"required,gt=0"` // rupees
}

// CreateOrder creates a gateway order for the setup payment. The frontend
// sends the token in the body on this flow.
func (c *PaymentController) CreateOrder(w http.ResponseWriter, r *http.Request) {
	c.createOrder(w, r, c.payments.CreateOrder)
}

// CreateRenewalOrder creates a gateway order for a renewal payment.
func (c *PaymentController) CreateRenewalOrder(w http.ResponseWriter, r *http.Request) {
	c.createOrder(w, r, c.payments.CreateRenewalOrder)
}

func (c *PaymentController) createOrder(w http.ResponseWriter, r *http.Request, create func(context.Context, int64) (*gateway.Order, error)) {
	var in createOrderInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	if _, err := auth.ResolveToken(in.Token); err != nil {
		response.Unauthorized(w, "Not authorized, login again")
		return
	}

	order, err := create(r.Context(), in.Amount)
	if err != nil {
		response.ServerError(w, "Could not create payment order")
		return
	}
	response.OK(w, response.M{"order": order})
}

// Verify finalises shop setup after the one-time payment. The request is a
// multipart form: gateway confirmation fields, profile fields, and an
// optional shop image.
func (c *PaymentController) Verify(w http.ResponseWriter, r *http.Request) {
	image, err := storage.SaveUpload(r, "image", "shops")
	if err != nil && !errors.Is(err, storage.ErrNoFile) {
		if errors.Is(err, storage.ErrNotImage) {
			response.ValidationError(w, map[string]string{"image": "only image files are allowed"})
			return
		}
		response.ServerError(w, "Could not store image")
		return
	}

	in := services.SetupVerification{
		GatewayOrderID:   r.FormValue("razorpay_order_id"),
		GatewayPaymentID: r.FormValue("razorpay_payment_id"),
		Signature:        r.FormValue("razorpay_signature"),
		Email:            r.FormValue("email"),
		Name:             r.FormValue("name"),
		Phone:            r.FormValue("phone"),
		Subscription:     r.FormValue("subscription"),
		Image:            image,
		Address: models.ShopAddress{
			Address:   r.FormValue("address"),
			Latitude:  r.FormValue("latitude"),
			Longitude: r.FormValue("longitude"),
		},
	}
	if in.GatewayOrderID == "" || in.GatewayPaymentID == "" || in.Signature == "" || in.Email == "" {
		response.ValidationError(w, map[string]string{"payment": "missing gateway confirmation fields"})
		return
	}

	shop, err := c.payments.VerifySetup(r.Context(), in)
	if err != nil {
		c.verifyError(w, err)
		return
	}
	response.OK(w, response.M{"message": "Payment verified", "data": shop})
}

type renewalVerifyInput struct {
	GatewayOrderID   string `json:"razorpay_order_id" validate:"required"`
	GatewayPaymentID string `json:"razorpay_payment_id" validate:"required"`
	Signature        string `json:"razorpay_signature" validate:"required"`
	Subscription     string `json:"subscription" validate:"required"`
}

// VerifyRenewal extends the authenticated shop's subscription after a
// renewal payment. Auth comes from the bearer header on this flow.
func (c *PaymentController) VerifyRenewal(w http.ResponseWriter, r *http.Request) {
	var in renewalVerifyInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	shopID, _ := middlewares.AccountIDFromContext(r.Context())
	shop, err := c.payments.VerifyRenewal(r.Context(), shopID, services.RenewalVerification{
		GatewayOrderID:   in.GatewayOrderID,
		GatewayPaymentID: in.GatewayPaymentID,
		Signature:        in.Signature,
		Subscription:     in.Subscription,
	})
	if err != nil {
		c.verifyError(w, err)
		return
	}
	response.OK(w, response.M{"message": "Subscription renewed", "data": shop})
}

func (c *PaymentController) verifyError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidSignature):
		response.Error(w, http.StatusBadRequest, "Payment verification failed")
	case errors.Is(err, services.ErrInvalidPlan):
		response.Error(w, http.StatusBadRequest, "Unknown subscription plan")
	case errors.Is(err, repositories.ErrNotFound):
		response.NotFound(w, "Shop not found")
	default:
		response.ServerError(w, "Something went wrong")
	}
}

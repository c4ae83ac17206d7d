package controllers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/drovo/backend/app/middlewares"
	"github.com/drovo/backend/app/repositories"
	"github.com/drovo/backend/app/services"
	"github.com/drovo/backend/pkg/bind"
	"github.com/drovo/backend/pkg/response"
)

type OrderController struct {
	orders *services.OrderService
}

func NewOrderController(orders *services.OrderService) *OrderController {
	return &OrderController{orders: orders}
}

// Place handles checkout for an authenticated user.
func (c *OrderController) Place(w http.ResponseWriter, r *http.Request) {
	var in services.PlaceOrderInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}
	if len(in.Items) == 0 {
		response.ValidationError(w, map[string]string{"items": "at least one item is required"})
		return
	}

	userID, _ := middlewares.AccountIDFromContext(r.Context())
	order, err := c.orders.Place(r.Context(), userID, in)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			response.NotFound(w, "Shop not found")
			return
		}
		response.ServerError(w, "Could not place order")
		return
	}
	response.OK(w, response.M{"data": order})
}

// UserOrders lists the authenticated user's orders.
func (c *OrderController) UserOrders(w http.ResponseWriter, r *http.Request) {
	userID, _ := middlewares.AccountIDFromContext(r.Context())
	orders, err := c.orders.ListUser(r.Context(), userID)
	if err != nil {
		response.ServerError(w, "Something went wrong")
		return
	}
	response.OK(w, response.M{"data": orders})
}

// ShopOrders lists the gate-authorized shop's orders.
func (c *OrderController) ShopOrders(w http.ResponseWriter, r *http.Request) {
	shop, _ := middlewares.ShopFromContext(r.Context())
	orders, err := c.orders.ListShop(r.Context(), shop.ID.Hex())
	if err != nil {
		response.ServerError(w, "Something went wrong")
		return
	}
	response.OK(w, response.M{"data": orders})
}

type orderStatusInput struct {
	OrderID string `json:"orderId" validate:"required"`
	Status  string `json:"status" validate:"required"`
}

// UpdateStatus overwrites an order's status. The admin panel calls this
// without a token; any caller can hit it.
func (c *OrderController) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var in orderStatusInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	if err := c.orders.UpdateStatus(r.Context(), in.OrderID, in.Status); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			response.NotFound(w, "Order not found")
			return
		}
		response.ServerError(w, "Could not update status")
		return
	}
	response.OK(w, response.M{"message": "Status updated"})
}

// Detail returns an order joined with its shop.
func (c *OrderController) Detail(w http.ResponseWriter, r *http.Request) {
	order, shop, err := c.orders.Detail(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			response.NotFound(w, "Order not found")
			return
		}
		response.ServerError(w, "Something went wrong")
		return
	}
	response.OK(w, response.M{"data": order, "shop": shop})
}

// Feedback relays a customer's rating to the shop.
func (c *OrderController) Feedback(w http.ResponseWriter, r *http.Request) {
	var in services.FeedbackInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	if err := c.orders.Feedback(r.Context(), in); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			response.NotFound(w, "Shop not found")
			return
		}
		response.ServerError(w, "Could not send feedback")
		return
	}
	response.OK(w, response.M{"message": "Feedback sent"})
}

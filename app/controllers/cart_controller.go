package controllers

import (
	"errors"
	"net/http"

	"github.com/drovo/backend/app/middlewares"
	"github.com/drovo/backend/app/repositories"
	"github.com/drovo/backend/app/services"
	"github.com/drovo/backend/pkg/bind"
	"github.com/drovo/backend/pkg/response"
)

type CartController struct {
	cart *services.CartService
}

func NewCartController(cart *services.CartService) *CartController {
	return &CartController{cart: cart}
}

type cartItemInput struct {
	ItemID string `json:"itemId" validate:"required"`
}

func (c *CartController) Add(w http.ResponseWriter, r *http.Request) {
	var in cartItemInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	userID, _ := middlewares.AccountIDFromContext(r.Context())
	cart, err := c.cart.Add(r.Context(), userID, in.ItemID)
	if err != nil {
		c.fail(w, err)
		return
	}
	response.OK(w, response.M{"cartData": cart})
}

func (c *CartController) Remove(w http.ResponseWriter, r *http.Request) {
	var in cartItemInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	userID, _ := middlewares.AccountIDFromContext(r.Context())
	cart, err := c.cart.Remove(r.Context(), userID, in.ItemID)
	if err != nil {
		c.fail(w, err)
		return
	}
	response.OK(w, response.M{"cartData": cart})
}

func (c *CartController) Get(w http.ResponseWriter, r *http.Request) {
	userID, _ := middlewares.AccountIDFromContext(r.Context())
	cart, err := c.cart.Get(r.Context(), userID)
	if err != nil {
		c.fail(w, err)
		return
	}
	response.OK(w, response.M{"cartData": cart})
}

func (c *CartController) fail(w http.ResponseWriter, err error) {
	if errors.Is(err, repositories.ErrNotFound) {
		response.NotFound(w, "User not found")
		return
	}
	response.ServerError(w, "Something went wrong")
}

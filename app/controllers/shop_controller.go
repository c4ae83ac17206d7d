package controllers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/drovo/backend/app/middlewares"
	"github.com/drovo/backend/app/repositories"
	"github.com/drovo/backend/app/services"
	"github.com/drovo/backend/pkg/response"
)

type ShopController struct {
	shops *services.ShopService
}

func NewShopController(shops *services.ShopService) *ShopController {
	return &ShopController{shops: shops}
}

// All lists shops with an active subscription, for the customer home screen.
func (c *ShopController) All(w http.ResponseWriter, r *http.Request) {
	shops, err := c.shops.FetchAll(r.Context())
	if err != nil {
		response.ServerError(w, "Something went wrong")
		return
	}
	response.OK(w, response.M{"data": shops})
}

// Find returns one shop's public profile and catalog.
func (c *ShopController) Find(w http.ResponseWriter, r *http.Request) {
	shop, items, err := c.shops.Find(r.Context(), chi.URLParam(r, "shopId"))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			response.NotFound(w, "Shop not found")
			return
		}
		response.ServerError(w, "Something went wrong")
		return
	}
	response.OK(w, response.M{"data": shop, "foods": items})
}

// Details returns the authenticated shop's own profile.
func (c *ShopController) Details(w http.ResponseWriter, r *http.Request) {
	shopID, _ := middlewares.AccountIDFromContext(r.Context())
	shop, err := c.shops.Details(r.Context(), shopID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			response.NotFound(w, "Shop not found")
			return
		}
		response.ServerError(w, "Something went wrong")
		return
	}
	response.OK(w, response.M{"data": shop})
}

package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/drovo/backend/app/middlewares"
	"github.com/drovo/backend/app/repositories"
	"github.com/drovo/backend/app/services"
	"github.com/drovo/backend/pkg/auth"
	"github.com/drovo/backend/pkg/bind"
	"github.com/drovo/backend/pkg/response"
	"github.com/drovo/backend/pkg/storage"
	"github.com/drovo/backend/pkg/validate"
)

type FoodController struct {
	catalog *services.CatalogService
}

func NewFoodController(catalog *services.CatalogService) *FoodController {
	return &FoodController{catalog: catalog}
}

// Add creates a catalog item from a multipart form. The image is required.
func (c *FoodController) Add(w http.ResponseWriter, r *http.Request) {
	shop, _ := middlewares.ShopFromContext(r.Context())

	image, err := storage.SaveUpload(r, "image", "foods")
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNoFile):
			response.ValidationError(w, map[string]string{"image": "image is required"})
		case errors.Is(err, storage.ErrNotImage):
			response.ValidationError(w, map[string]string{"image": "only image files are allowed"})
		default:
			response.ServerError(w, "Could not store image")
		}
		return
	}

	in, errs := foodInputFromForm(r)
	if validate.HasErrors(errs) {
		response.ValidationError(w, errs)
		return
	}

	item, err := c.catalog.Add(r.Context(), shop.ID, in, image)
	if err != nil {
		response.ServerError(w, "Could not add food item")
		return
	}
	response.OK(w, response.M{"data": item})
}

// Edit applies a partial update; a new image is optional.
func (c *FoodController) Edit(w http.ResponseWriter, r *http.Request) {
	shop, _ := middlewares.ShopFromContext(r.Context())
	id := chi.URLParam(r, "id")

	upd := services.FoodUpdate{}

	image, err := storage.SaveUpload(r, "image", "foods")
	switch {
	case err == nil:
		upd.Image = image
	case errors.Is(err, storage.ErrNoFile):
		// keep the current image
	case errors.Is(err, storage.ErrNotImage):
		response.ValidationError(w, map[string]string{"image": "only image files are allowed"})
		return
	default:
		response.ServerError(w, "Could not store image")
		return
	}

	upd.Name = r.FormValue("name")
	upd.Description = r.FormValue("description")
	upd.Unit = r.FormValue("unit")
	upd.Category = r.FormValue("category")
	if v := r.FormValue("price"); v != "" {
		p, err := strconv.ParseFloat(v, 64)
		if err != nil || p <= 0 {
			response.ValidationError(w, map[string]string{"price": "price must be a positive number"})
			return
		}
		upd.Price = &p
	}
	if v := r.FormValue("quantity"); v != "" {
		q, err := strconv.Atoi(v)
		if err != nil || q <= 0 {
			response.ValidationError(w, map[string]string{"quantity": "quantity must be a positive number"})
			return
		}
		upd.Quantity = &q
	}

	item, err := c.catalog.Edit(r.Context(), shop.ID, id, upd)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			response.NotFound(w, "Food item not found")
			return
		}
		response.ServerError(w, "Could not update food item")
		return
	}
	response.OK(w, response.M{"data": item})
}

// Get fetches one owned item.
func (c *FoodController) Get(w http.ResponseWriter, r *http.Request) {
	shop, _ := middlewares.ShopFromContext(r.Context())

	item, err := c.catalog.Get(r.Context(), shop.ID, chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			response.NotFound(w, "Food item not found")
			return
		}
		response.ServerError(w, "Something went wrong")
		return
	}
	response.OK(w, response.M{"data": item})
}

// List serves both the public per-shop catalog and a shop listing its own
// items: an explicit shopId in the path wins over the token-derived one.
func (c *FoodController) List(w http.ResponseWriter, r *http.Request) {
	shopID := chi.URLParam(r, "shopId")
	if shopID == "" {
		id, err := auth.ResolveToken(r.Header.Get("token"))
		if err != nil {
			response.Error(w, http.StatusBadRequest, "Shop id required")
			return
		}
		shopID = id
	}

	items, err := c.catalog.List(r.Context(), shopID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			response.Error(w, http.StatusBadRequest, "Shop id required")
			return
		}
		response.ServerError(w, "Something went wrong")
		return
	}
	response.OK(w, response.M{"data": items})
}

type removeFoodInput struct {
	ID string `json:"id" validate:"required"`
}

// Remove deletes an owned item along with its stored image.
func (c *FoodController) Remove(w http.ResponseWriter, r *http.Request) {
	var in removeFoodInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	shop, _ := middlewares.ShopFromContext(r.Context())
	if err := c.catalog.Remove(r.Context(), shop.ID, in.ID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			response.NotFound(w, "Food item not found")
			return
		}
		response.ServerError(w, "Could not remove food item")
		return
	}
	response.OK(w, response.M{"message": "Food item removed"})
}

func foodInputFromForm(r *http.Request) (services.FoodInput, map[string]string) {
	in := services.FoodInput{
		Name:        r.FormValue("name"),
		Description: r.FormValue("description"),
		Unit:        r.FormValue("unit"),
		Category:    r.FormValue("category"),
	}
	in.Price, _ = strconv.ParseFloat(r.FormValue("price"), 64)
	in.Quantity, _ = strconv.Atoi(r.FormValue("quantity"))
	return in, validate.Struct(&in)
}

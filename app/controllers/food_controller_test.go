package controllers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/drovo/backend/app/controllers"
	"github.com/drovo/backend/app/models"
	"github.com/drovo/backend/app/repositories"
	"github.com/drovo/backend/app/services"
	"github.com/drovo/backend/pkg/auth"
)

// stubFoodRepo serves a fixed per-shop catalog; only the read paths the
// listing endpoint touches are live.
type stubFoodRepo struct {
	byShop map[string][]models.FoodItem
}

func (r *stubFoodRepo) ListByShop(_ context.Context, shopID string) ([]models.FoodItem, error) {
	return r.byShop[shopID], nil
}

func (r *stubFoodRepo) Create(context.Context, *models.FoodItem) error { return nil }
func (r *stubFoodRepo) FindByID(context.Context, string) (*models.FoodItem, error) {
	return nil, repositories.ErrNotFound
}
func (r *stubFoodRepo) FindOwned(context.Context, string, string) (*models.FoodItem, error) {
	return nil, repositories.ErrNotFound
}
func (r *stubFoodRepo) Update(context.Context, *models.FoodItem) error { return nil }
func (r *stubFoodRepo) DeleteOwned(context.Context, string, string) error {
	return repositories.ErrNotFound
}

func newListRouter(repo repositories.FoodRepository) http.Handler {
	ctl := controllers.NewFoodController(services.NewCatalogService(repo))
	r := chi.NewRouter()
	r.Get("/api/food/list", ctl.List)
	r.Get("/api/food/list/{shopId}", ctl.List)
	return r
}

func listFoods(t *testing.T, h http.Handler, path, token string) (*httptest.ResponseRecorder, []models.FoodItem) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("token", token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var body struct {
		Success bool              `json:"success"`
		Data    []models.FoodItem `json:"data"`
	}
	if rec.Code == http.StatusOK {
		if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
	}
	return rec, body.Data
}

func TestListPathParamWinsOverToken(t *testing.T) {
	shopA := primitive.NewObjectID()
	shopB := primitive.NewObjectID()
	repo := &stubFoodRepo{byShop: map[string][]models.FoodItem{
		shopA.Hex(): {{ID: primitive.NewObjectID(), Name: "Samosa", ShopID: shopA}},
		shopB.Hex(): {{ID: primitive.NewObjectID(), Name: "Jalebi", ShopID: shopB}},
	}}
	h := newListRouter(repo)

	// A token for shop B must not override the explicit shop A in the path.
	token, err := auth.GenerateToken(shopB.Hex())
	if err != nil {
		t.Fatal(err)
	}
	rec, items := listFoods(t, h, "/api/food/list/"+shopA.Hex(), token)
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d", rec.Code)
	}
	if len(items) != 1 || items[0].Name != "Samosa" {
		t.Errorf("items = %+v, want shop A's catalog", items)
	}
}

func TestListFallsBackToToken(t *testing.T) {
	shopB := primitive.NewObjectID()
	repo := &stubFoodRepo{byShop: map[string][]models.FoodItem{
		shopB.Hex(): {{ID: primitive.NewObjectID(), Name: "Jalebi", ShopID: shopB}},
	}}
	h := newListRouter(repo)

	token, err := auth.GenerateToken(shopB.Hex())
	if err != nil {
		t.Fatal(err)
	}
	rec, items := listFoods(t, h, "/api/food/list", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d", rec.Code)
	}
	if len(items) != 1 || items[0].Name != "Jalebi" {
		t.Errorf("items = %+v, want the token shop's catalog", items)
	}
}

func TestListNeitherParamNorToken(t *testing.T) {
	h := newListRouter(&stubFoodRepo{byShop: map[string][]models.FoodItem{}})

	rec, _ := listFoods(t, h, "/api/food/list", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("code = %d, want 400 when no shop id resolves", rec.Code)
	}
}

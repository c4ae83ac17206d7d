package middlewares

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/drovo/backend/app/models"
	"github.com/drovo/backend/app/repositories"
	"github.com/drovo/backend/pkg/auth"
)

type stubShopRepo struct {
	shops map[string]*models.Shop
}

func (r *stubShopRepo) FindByID(_ context.Context, id string) (*models.Shop, error) {
	s, ok := r.shops[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return s, nil
}

func (r *stubShopRepo) FindByEmail(context.Context, string) (*models.Shop, error) {
	return nil, repositories.ErrNotFound
}
func (r *stubShopRepo) Create(context.Context, *models.Shop) error { return nil }
func (r *stubShopRepo) Update(context.Context, *models.Shop) error { return nil }
func (r *stubShopRepo) FindActive(context.Context, time.Time) ([]models.Shop, error) {
	return nil, nil
}

func gateRequest(t *testing.T, repo repositories.ShopRepository, token string) (*httptest.ResponseRecorder, bool) {
	t.Helper()

	forwarded := false
	handler := ShopGate(repo)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		forwarded = true
		if _, ok := ShopFromContext(r.Context()); !ok {
			t.Error("shop missing from context on forwarded request")
		}
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/order/list", nil)
	if token != "" {
		req.Header.Set("token", token)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec, forwarded
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return body
}

func seedGateShop(setupComplete bool, subEnd *time.Time) (*stubShopRepo, string) {
	shop := &models.Shop{
		ID:              primitive.NewObjectID(),
		Email:           "shop@example.com",
		IsSetupComplete: setupComplete,
		SubEndDate:      subEnd,
	}
	repo := &stubShopRepo{shops: map[string]*models.Shop{shop.ID.Hex(): shop}}
	token, _ := auth.GenerateToken(shop.ID.Hex())
	return repo, token
}

func TestGateMissingToken(t *testing.T) {
	repo, _ := seedGateShop(true, nil)
	rec, forwarded := gateRequest(t, repo, "")
	if rec.Code != http.StatusUnauthorized || forwarded {
		t.Errorf("code=%d forwarded=%v, want 401 and no forward", rec.Code, forwarded)
	}
}

func TestGateInvalidToken(t *testing.T) {
	repo, _ := seedGateShop(true, nil)
	rec, forwarded := gateRequest(t, repo, "garbage.token.here")
	if rec.Code != http.StatusInternalServerError || forwarded {
		t.Errorf("code=%d forwarded=%v, want 500 and no forward", rec.Code, forwarded)
	}
}

func TestGateShopNotFound(t *testing.T) {
	repo := &stubShopRepo{shops: map[string]*models.Shop{}}
	token, _ := auth.GenerateToken(primitive.NewObjectID().Hex())
	rec, forwarded := gateRequest(t, repo, token)
	if rec.Code != http.StatusNotFound || forwarded {
		t.Errorf("code=%d forwarded=%v, want 404 and no forward", rec.Code, forwarded)
	}
}

func TestGateSetupIncomplete(t *testing.T) {
	repo, token := seedGateShop(false, nil)
	rec, forwarded := gateRequest(t, repo, token)
	if rec.Code != http.StatusForbidden || forwarded {
		t.Fatalf("code=%d forwarded=%v, want 403 and no forward", rec.Code, forwarded)
	}
	if body := decodeBody(t, rec); body["redirect"] != "/setup" {
		t.Errorf("redirect = %v, want /setup", body["redirect"])
	}
}

func TestGateSubscriptionExpired(t *testing.T) {
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	timeNow = func() time.Time { return fixed }
	defer func() { timeNow = time.Now }()

	expired := fixed.Add(-time.Hour)
	repo, token := seedGateShop(true, &expired)
	rec, forwarded := gateRequest(t, repo, token)
	if rec.Code != http.StatusForbidden || forwarded {
		t.Fatalf("code=%d forwarded=%v, want 403 and no forward", rec.Code, forwarded)
	}
	if body := decodeBody(t, rec); body["redirect"] != "/renew-subscription" {
		t.Errorf("redirect = %v, want /renew-subscription", body["redirect"])
	}
}

func TestGateAuthorizedForwards(t *testing.T) {
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	timeNow = func() time.Time { return fixed }
	defer func() { timeNow = time.Now }()

	active := fixed.Add(24 * time.Hour)
	repo, token := seedGateShop(true, &active)
	rec, forwarded := gateRequest(t, repo, token)
	if rec.Code != http.StatusOK || !forwarded {
		t.Errorf("code=%d forwarded=%v, want 200 and forward", rec.Code, forwarded)
	}
}

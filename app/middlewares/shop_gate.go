package middlewares

import (
	"context"
	"errors"
	"net/http"

	"github.com/drovo/backend/app/models"
	"github.com/drovo/backend/app/repositories"
	"github.com/drovo/backend/pkg/auth"
	"github.com/drovo/backend/pkg/response"
)

// ShopFromContext returns the authorized shop attached by the gate.
func ShopFromContext(ctx context.Context) (*models.Shop, bool) {
	shop, ok := ctx.Value(shopKey).(*models.Shop)
	return shop, ok
}

// ShopGate is the authorization gate in front of every shop-scoped route.
// It resolves the caller's token to a shop and checks the shop is allowed to
// operate: setup finished and a subscription window covering now. Rejections
// carry redirect hints so the frontend can route the shop to the setup or
// renewal flow. On success the shop is attached to the request context.
//
// The gate is pure read and branch; it never writes.
func ShopGate(shops repositories.ShopRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			accountID, err := auth.ResolveToken(tokenFromRequest(r))
			if err != nil {
				writeTokenError(w, err)
				return
			}

			shop, err := shops.FindByID(r.Context(), accountID)
			if err != nil {
				if errors.Is(err, repositories.ErrNotFound) {
					response.NotFound(w, "Shop not found")
					return
				}
				response.ServerError(w, "Something went wrong")
				return
			}

			if !shop.IsSetupComplete {
				response.Redirect(w, "/setup", "Complete your shop setup first")
				return
			}
			if !shop.SubscriptionActive(timeNow()) {
				response.Redirect(w, "/renew-subscription", "Your subscription has expired")
				return
			}

			ctx := context.WithValue(r.Context(), accountIDKey, accountID)
			ctx = context.WithValue(ctx, shopKey, shop)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

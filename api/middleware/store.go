package middleware

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/boutiquehq/boutique-backend/pkg/logger"
)

// StoreContext seeds the request context with the storeId path parameter so
// idempotency scoping and log lines carry it.
func StoreContext(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			storeID := chi.URLParam(r, "storeId")
			if storeID == "" {
				next.ServeHTTP(w, r)
				return
			}

			ctx := WithStoreID(r.Context(), storeID)
			if logg != nil {
				ctx = logg.WithStoreID(ctx, storeID)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

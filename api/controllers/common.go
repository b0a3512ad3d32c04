package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/boutiquehq/boutique-backend/api/middleware"
	"github.com/boutiquehq/boutique-backend/api/validators"
	pkgerrors "github.com/boutiquehq/boutique-backend/pkg/errors"
)

// principal returns the authenticated user id seeded by the auth middleware.
func principal(r *http.Request) (string, error) {
	userID := middleware.UserIDFromContext(r.Context())
	if userID == "" {
		return "", pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing")
	}
	return userID, nil
}

// pathUUID extracts and validates a chi URL parameter.
func pathUUID(r *http.Request, param string) (uuid.UUID, error) {
	return validators.ParsePathUUID(chi.URLParam(r, param), param)
}

// storeIDFromPath reads the storeId route parameter shared by the
// store-scoped routes.
func storeIDFromPath(r *http.Request) (uuid.UUID, error) {
	return pathUUID(r, "storeId")
}

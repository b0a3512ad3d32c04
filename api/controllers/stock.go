package controllers

import (
	"net/http"

	"github.com/boutiquehq/boutique-backend/api/responses"
	"github.com/boutiquehq/boutique-backend/api/validators"
	"github.com/boutiquehq/boutique-backend/internal/stock"
	pkgerrors "github.com/boutiquehq/boutique-backend/pkg/errors"
	"github.com/boutiquehq/boutique-backend/pkg/logger"
)

type stockAdjustRequest struct {
	Delta int `json:"delta"`
}

func (p stockAdjustRequest) check() error {
	if p.Delta == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "delta must be non-zero")
	}
	return nil
}

// ProductStockAdjust moves the flat stock counter for a product by a signed delta.
func ProductStockAdjust(svc stock.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, err := principal(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		storeID, err := storeIDFromPath(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		productID, err := pathUUID(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload stockAdjustRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := payload.check(); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		adjusted, err := svc.AdjustProduct(r.Context(), ownerID, storeID, productID, payload.Delta)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, adjusted)
	}
}

// VariationStockAdjust moves a variation stock counter by a signed delta.
func VariationStockAdjust(svc stock.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, err := principal(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		storeID, err := storeIDFromPath(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		variationID, err := pathUUID(r, "variationId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload stockAdjustRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := payload.check(); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		adjusted, err := svc.AdjustVariation(r.Context(), ownerID, storeID, variationID, payload.Delta)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, adjusted)
	}
}

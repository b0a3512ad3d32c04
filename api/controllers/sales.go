package controllers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/boutiquehq/boutique-backend/api/responses"
	"github.com/boutiquehq/boutique-backend/api/validators"
	sales "github.com/boutiquehq/boutique-backend/internal/sales"
	"github.com/boutiquehq/boutique-backend/pkg/logger"
)

type saleItemRequest struct {
	ProductID   uuid.UUID        `json:"product_id" validate:"required"`
	VariationID *uuid.UUID       `json:"variation_id,omitempty"`
	Quantity    int              `json:"quantity" validate:"required,gte=1"`
	UnitPrice   *decimal.Decimal `json:"unit_price,omitempty"`
}

type saleCreateRequest struct {
	CustomerName string            `json:"customer_name" validate:"required,min=1,max=160"`
	IsPaid       bool              `json:"is_paid"`
	Items        []saleItemRequest `json:"items" validate:"required,min=1,dive"`
}

func (p saleCreateRequest) toInput() sales.CreateSaleInput {
	items := make([]sales.SaleItemInput, 0, len(p.Items))
	for _, item := range p.Items {
		items = append(items, sales.SaleItemInput{
			ProductID:   item.ProductID,
			VariationID: item.VariationID,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		})
	}
	return sales.CreateSaleInput{
		CustomerName: validators.SanitizeString(p.CustomerName, 160),
		IsPaid:       p.IsPaid,
		Items:        items,
	}
}

func SaleCreate(svc sales.Service, logg *logger.Logger) http.HandlerFunc {
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

		var payload saleCreateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		created, err := svc.CreateSale(r.Context(), ownerID, storeID, payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

func SaleList(svc sales.Service, logg *logger.Logger) http.HandlerFunc {
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

		rows, err := svc.ListSales(r.Context(), ownerID, storeID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}

func SaleDelete(svc sales.Service, logg *logger.Logger) http.HandlerFunc {
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
		saleID, err := pathUUID(r, "saleId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteSale(r.Context(), ownerID, storeID, saleID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

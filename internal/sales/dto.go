package sale

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/boutiquehq/boutique-backend/pkg/db/models"
)

// SaleDTO is the sale payload returned to clients.
type SaleDTO struct {
	ID           uuid.UUID     `json:"id"`
	StoreID      uuid.UUID     `json:"store_id"`
	CustomerName string        `json:"customer_name"`
	IsPaid       bool          `json:"is_paid"`
	Items        []SaleItemDTO `json:"items"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// SaleItemDTO is one line of a sale with its captured unit price.
type SaleItemDTO struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	VariationID *uuid.UUID      `json:"variation_id,omitempty"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// NewSaleDTO builds a DTO from the persisted sale with its items.
func NewSaleDTO(sale *models.Sale) *SaleDTO {
	dto := &SaleDTO{
		ID:           sale.ID,
		StoreID:      sale.StoreID,
		CustomerName: sale.CustomerName,
		IsPaid:       sale.IsPaid,
		Items:        make([]SaleItemDTO, 0, len(sale.Items)),
		CreatedAt:    sale.CreatedAt,
		UpdatedAt:    sale.UpdatedAt,
	}
	for _, item := range sale.Items {
		dto.Items = append(dto.Items, SaleItemDTO{
			ID:          item.ID,
			ProductID:   item.ProductID,
			VariationID: item.VariationID,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		})
	}
	return dto
}

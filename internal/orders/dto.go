package order

import (
	"time"

	"github.com/google/uuid"

	"github.com/boutiquehq/boutique-backend/pkg/db/models"
)

// OrderDTO is the order payload returned to clients.
type OrderDTO struct {
	ID        uuid.UUID      `json:"id"`
	StoreID   uuid.UUID      `json:"store_id"`
	IsPaid    bool           `json:"is_paid"`
	Phone     string         `json:"phone"`
	Address   string         `json:"address"`
	Items     []OrderItemDTO `json:"items"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// OrderItemDTO is one line of an order.
type OrderItemDTO struct {
	ID          uuid.UUID  `json:"id"`
	ProductID   uuid.UUID  `json:"product_id"`
	VariationID *uuid.UUID `json:"variation_id,omitempty"`
	Quantity    int        `json:"quantity"`
}

// NewOrderDTO builds a DTO from the persisted order with its items.
func NewOrderDTO(order *models.Order) *OrderDTO {
	dto := &OrderDTO{
		ID:        order.ID,
		StoreID:   order.StoreID,
		IsPaid:    order.IsPaid,
		Phone:     order.Phone,
		Address:   order.Address,
		Items:     make([]OrderItemDTO, 0, len(order.Items)),
		CreatedAt: order.CreatedAt,
		UpdatedAt: order.UpdatedAt,
	}
	for _, item := range order.Items {
		dto.Items = append(dto.Items, OrderItemDTO{
			ID:          item.ID,
			ProductID:   item.ProductID,
			VariationID: item.VariationID,
			Quantity:    item.Quantity,
		})
	}
	return dto
}

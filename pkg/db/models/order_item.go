package models

import (
	"time"

	"github.com/google/uuid"
)

// OrderItem references the ordered product and, for variant products, the
// exact variation whose stock the payment transition decrements.
type OrderItem struct {
	ID          uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	OrderID     uuid.UUID  `gorm:"column:order_id;type:uuid;not null;index"`
	ProductID   uuid.UUID  `gorm:"column:product_id;type:uuid;not null"`
	VariationID *uuid.UUID `gorm:"column:variation_id;type:uuid"`
	Quantity    int        `gorm:"column:quantity;not null;default:1"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

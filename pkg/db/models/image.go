package models

import (
	"time"

	"github.com/google/uuid"
)

// Image stores a hosted image URL owned by exactly one of a product or a
// variation.
type Image struct {
	ID          uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	ProductID   *uuid.UUID `gorm:"column:product_id;type:uuid;index"`
	VariationID *uuid.UUID `gorm:"column:variation_id;type:uuid;index"`
	URL         string     `gorm:"column:url;not null"`
	Position    int        `gorm:"column:position;not null;default:0"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

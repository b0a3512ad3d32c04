package models

import (
	"time"

	"github.com/google/uuid"
)

// ProductVariation is one sellable (color, size) combination of a variant
// product. The (product_id, color_id, size_id) tuple is unique.
type ProductVariation struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	ProductID uuid.UUID `gorm:"column:product_id;type:uuid;not null;uniqueIndex:idx_variations_product_color_size"`
	ColorID   uuid.UUID `gorm:"column:color_id;type:uuid;not null;uniqueIndex:idx_variations_product_color_size"`
	SizeID    uuid.UUID `gorm:"column:size_id;type:uuid;not null;uniqueIndex:idx_variations_product_color_size"`
	Stock     int       `gorm:"column:stock;not null;default:0"`
	Color     *Color    `gorm:"foreignKey:ColorID"`
	Size      *Size     `gorm:"foreignKey:SizeID"`
	Images    []Image   `gorm:"foreignKey:VariationID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/boutiquehq/boutique-backend/pkg/enums"
)

// Product is the canonical catalog listing. Kind controls where stock lives:
// flat products count stock on FlatStock, variant products on their variations.
type Product struct {
	ID          uuid.UUID          `gorm:"column:id;type:uuid;primaryKey"`
	StoreID     uuid.UUID          `gorm:"column:store_id;type:uuid;not null;index"`
	CategoryID  uuid.UUID          `gorm:"column:category_id;type:uuid;not null"`
	Name        string             `gorm:"column:name;not null"`
	Description *string            `gorm:"column:description"`
	Price       decimal.Decimal    `gorm:"column:price;type:numeric(12,2);not null"`
	Kind        enums.ProductKind  `gorm:"column:kind;not null;default:'flat'"`
	FlatStock   int                `gorm:"column:flat_stock;not null;default:0"`
	IsFeatured  bool               `gorm:"column:is_featured;not null;default:false"`
	IsArchived  bool               `gorm:"column:is_archived;not null;default:false"`
	Category    *Category          `gorm:"foreignKey:CategoryID"`
	Images      []Image            `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Variations  []ProductVariation `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}

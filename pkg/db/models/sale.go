package models

import (
	"time"

	"github.com/google/uuid"
)

// Sale is an in-person sale recorded from the dashboard.
type Sale struct {
	ID           uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	StoreID      uuid.UUID  `gorm:"column:store_id;type:uuid;not null;index"`
	CustomerName string     `gorm:"column:customer_name;not null"`
	IsPaid       bool       `gorm:"column:is_paid;not null"`
	Items        []SaleItem `gorm:"foreignKey:SaleID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

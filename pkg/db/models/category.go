package models

import (
	"time"

	"github.com/google/uuid"
)

// Category groups products under a billboard. Deletion is restricted while
// products still reference it.
type Category struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	StoreID     uuid.UUID `gorm:"column:store_id;type:uuid;not null;index"`
	BillboardID uuid.UUID `gorm:"column:billboard_id;type:uuid;not null"`
	Name        string    `gorm:"column:name;not null"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

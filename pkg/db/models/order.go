package models

import (
	"time"

	"github.com/google/uuid"
)

// Order is a storefront checkout. Phone and Address are filled in when the
// payment provider confirms the session.
type Order struct {
	ID        uuid.UUID   `gorm:"column:id;type:uuid;primaryKey"`
	StoreID   uuid.UUID   `gorm:"column:store_id;type:uuid;not null;index"`
	IsPaid    bool        `gorm:"column:is_paid;not null"`
	Phone     string      `gorm:"column:phone;not null;default:''"`
	Address   string      `gorm:"column:address;not null;default:''"`
	Items     []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time   `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time   `gorm:"column:updated_at;autoUpdateTime"`
}

package store

import (
	"time"

	"github.com/google/uuid"

	"github.com/boutiquehq/boutique-backend/pkg/db/models"
)

// StoreDTO represents the store payload returned to clients.
type StoreDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	OwnerID   string    `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewStoreDTO builds a DTO from the persisted model.
func NewStoreDTO(store *models.Store) *StoreDTO {
	return &StoreDTO{
		ID:        store.ID,
		Name:      store.Name,
		OwnerID:   store.OwnerID,
		CreatedAt: store.CreatedAt,
		UpdatedAt: store.UpdatedAt,
	}
}

package catalog

import (
	"time"

	"github.com/google/uuid"

	"github.com/boutiquehq/boutique-backend/pkg/db/models"
)

// BillboardDTO represents the billboard payload returned to clients.
type BillboardDTO struct {
	ID        uuid.UUID `json:"id"`
	StoreID   uuid.UUID `json:"store_id"`
	Label     string    `json:"label"`
	ImageURL  string    `json:"image_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CategoryDTO represents the category payload returned to clients.
type CategoryDTO struct {
	ID          uuid.UUID `json:"id"`
	StoreID     uuid.UUID `json:"store_id"`
	BillboardID uuid.UUID `json:"billboard_id"`
	Name        string    `json:"name"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// OptionDTO is the shared payload shape for colors and sizes.
type OptionDTO struct {
	ID        uuid.UUID `json:"id"`
	StoreID   uuid.UUID `json:"store_id"`
	Name      string    `json:"name"`
	Value     string    `json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewBillboardDTO builds a DTO from the persisted model.
func NewBillboardDTO(row *models.Billboard) *BillboardDTO {
	return &BillboardDTO{
		ID:        row.ID,
		StoreID:   row.StoreID,
		Label:     row.Label,
		ImageURL:  row.ImageURL,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

// NewCategoryDTO builds a DTO from the persisted model.
func NewCategoryDTO(row *models.Category) *CategoryDTO {
	return &CategoryDTO{
		ID:          row.ID,
		StoreID:     row.StoreID,
		BillboardID: row.BillboardID,
		Name:        row.Name,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}

// NewColorDTO builds a DTO from the persisted color.
func NewColorDTO(row *models.Color) *OptionDTO {
	return &OptionDTO{
		ID:        row.ID,
		StoreID:   row.StoreID,
		Name:      row.Name,
		Value:     row.Value,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

// NewSizeDTO builds a DTO from the persisted size.
func NewSizeDTO(row *models.Size) *OptionDTO {
	return &OptionDTO{
		ID:        row.ID,
		StoreID:   row.StoreID,
		Name:      row.Name,
		Value:     row.Value,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

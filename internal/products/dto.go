package product

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/boutiquehq/boutique-backend/pkg/db/models"
)

// ProductDTO represents the product payload returned to clients.
type ProductDTO struct {
	ID          uuid.UUID       `json:"id"`
	StoreID     uuid.UUID       `json:"store_id"`
	CategoryID  uuid.UUID       `json:"category_id"`
	Category    *CategoryDTO    `json:"category,omitempty"`
	Name        string          `json:"name"`
	Description *string         `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Kind        string          `json:"kind"`
	FlatStock   int             `json:"flat_stock"`
	IsFeatured  bool            `json:"is_featured"`
	IsArchived  bool            `json:"is_archived"`
	Images      []ImageDTO      `json:"images"`
	Variations  []VariationDTO  `json:"variations,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// CategoryDTO surfaces the category attached to a product response.
type CategoryDTO struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// ImageDTO captures a hosted image reference.
type ImageDTO struct {
	ID       uuid.UUID `json:"id"`
	URL      string    `json:"url"`
	Position int       `json:"position"`
}

// VariationDTO represents one sellable (color, size) combination.
type VariationDTO struct {
	ID        uuid.UUID  `json:"id"`
	ColorID   uuid.UUID  `json:"color_id"`
	SizeID    uuid.UUID  `json:"size_id"`
	Stock     int        `json:"stock"`
	Color     *OptionDTO `json:"color,omitempty"`
	Size      *OptionDTO `json:"size,omitempty"`
	Images    []ImageDTO `json:"images,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// OptionDTO surfaces the color/size data attached to a variation.
type OptionDTO struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Value string    `json:"value"`
}

// NewProductDTO builds a DTO from the persisted model with its associations.
func NewProductDTO(product *models.Product) *ProductDTO {
	dto := &ProductDTO{
		ID:          product.ID,
		StoreID:     product.StoreID,
		CategoryID:  product.CategoryID,
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price,
		Kind:        string(product.Kind),
		FlatStock:   product.FlatStock,
		IsFeatured:  product.IsFeatured,
		IsArchived:  product.IsArchived,
		Images:      make([]ImageDTO, 0, len(product.Images)),
		CreatedAt:   product.CreatedAt,
		UpdatedAt:   product.UpdatedAt,
	}

	if product.Category != nil {
		dto.Category = &CategoryDTO{ID: product.Category.ID, Name: product.Category.Name}
	}

	for _, img := range product.Images {
		dto.Images = append(dto.Images, ImageDTO{ID: img.ID, URL: img.URL, Position: img.Position})
	}

	if len(product.Variations) > 0 {
		dto.Variations = make([]VariationDTO, 0, len(product.Variations))
		for i := range product.Variations {
			dto.Variations = append(dto.Variations, newVariationDTO(&product.Variations[i]))
		}
	}

	return dto
}

func newVariationDTO(v *models.ProductVariation) VariationDTO {
	dto := VariationDTO{
		ID:        v.ID,
		ColorID:   v.ColorID,
		SizeID:    v.SizeID,
		Stock:     v.Stock,
		CreatedAt: v.CreatedAt,
	}
	if v.Color != nil {
		dto.Color = &OptionDTO{ID: v.Color.ID, Name: v.Color.Name, Value: v.Color.Value}
	}
	if v.Size != nil {
		dto.Size = &OptionDTO{ID: v.Size.ID, Name: v.Size.Name, Value: v.Size.Value}
	}
	if len(v.Images) > 0 {
		dto.Images = make([]ImageDTO, 0, len(v.Images))
		for _, img := range v.Images {
			dto.Images = append(dto.Images, ImageDTO{ID: img.ID, URL: img.URL, Position: img.Position})
		}
	}
	return dto
}

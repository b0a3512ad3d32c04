package product

import (
	"github.com/google/uuid"

	"github.com/boutiquehq/boutique-backend/pkg/pagination"
)

// ProductListFilters describe the supported filter knobs for the listing
// endpoint. ColorID and SizeID match products with any variation carrying the
// option.
type ProductListFilters struct {
	CategoryID      *uuid.UUID `json:"category_id,omitempty"`
	ColorID         *uuid.UUID `json:"color_id,omitempty"`
	SizeID          *uuid.UUID `json:"size_id,omitempty"`
	IsFeatured      *bool      `json:"is_featured,omitempty"`
	IncludeArchived bool       `json:"include_archived,omitempty"`
}

// ListProductsInput captures the inputs needed to paginate/filter products for a store.
type ListProductsInput struct {
	StoreID    uuid.UUID
	Filters    ProductListFilters
	Pagination pagination.Params
}

// ProductListResult holds one page of products plus the cursor for the next.
type ProductListResult struct {
	Products   []ProductDTO `json:"products"`
	NextCursor string       `json:"next_cursor,omitempty"`
}

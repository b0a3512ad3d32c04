package controllers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/boutiquehq/boutique-backend/api/responses"
	"github.com/boutiquehq/boutique-backend/api/validators"
	product "github.com/boutiquehq/boutique-backend/internal/products"
	"github.com/boutiquehq/boutique-backend/pkg/logger"
	"github.com/boutiquehq/boutique-backend/pkg/pagination"
)

type productImageRequest struct {
	URL string `json:"url" validate:"required,url"`
}

type productVariationRequest struct {
	ColorID uuid.UUID             `json:"color_id" validate:"required"`
	SizeID  uuid.UUID             `json:"size_id" validate:"required"`
	Stock   int                   `json:"stock" validate:"gte=0"`
	Images  []productImageRequest `json:"images,omitempty" validate:"omitempty,dive"`
}

type productCreateRequest struct {
	Name        string                    `json:"name" validate:"required,min=1,max=160"`
	Description *string                   `json:"description,omitempty"`
	Price       decimal.Decimal           `json:"price"`
	CategoryID  uuid.UUID                 `json:"category_id" validate:"required"`
	IsFeatured  bool                      `json:"is_featured"`
	FlatStock   int                       `json:"flat_stock" validate:"gte=0"`
	Images      []productImageRequest     `json:"images" validate:"required,min=1,dive"`
	Variations  []productVariationRequest `json:"variations,omitempty" validate:"omitempty,dive"`
}

type productUpdateRequest struct {
	Name        string                    `json:"name" validate:"required,min=1,max=160"`
	Description *string                   `json:"description,omitempty"`
	Price       decimal.Decimal           `json:"price"`
	CategoryID  uuid.UUID                 `json:"category_id" validate:"required"`
	IsFeatured  bool                      `json:"is_featured"`
	IsArchived  bool                      `json:"is_archived"`
	FlatStock   int                       `json:"flat_stock" validate:"gte=0"`
	Images      []productImageRequest     `json:"images" validate:"required,min=1,dive"`
	Variations  []productVariationRequest `json:"variations,omitempty" validate:"omitempty,dive"`
}

type variationsReplaceRequest struct {
	Variations []productVariationRequest `json:"variations" validate:"omitempty,dive"`
}

func toImageInputs(images []productImageRequest) []product.ImageInput {
	out := make([]product.ImageInput, 0, len(images))
	for _, img := range images {
		out = append(out, product.ImageInput{URL: img.URL})
	}
	return out
}

func toVariationInputs(variations []productVariationRequest) []product.VariationInput {
	out := make([]product.VariationInput, 0, len(variations))
	for _, v := range variations {
		out = append(out, product.VariationInput{
			ColorID: v.ColorID,
			SizeID:  v.SizeID,
			Stock:   v.Stock,
			Images:  toImageInputs(v.Images),
		})
	}
	return out
}

func ProductCreate(svc product.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, err := principal(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		storeID, err := storeIDFromPath(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload productCreateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		created, err := svc.CreateProduct(r.Context(), ownerID, storeID, product.CreateProductInput{
			Name:        payload.Name,
			Description: payload.Description,
			Price:       payload.Price,
			CategoryID:  payload.CategoryID,
			IsFeatured:  payload.IsFeatured,
			FlatStock:   payload.FlatStock,
			Images:      toImageInputs(payload.Images),
			Variations:  toVariationInputs(payload.Variations),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

func ProductList(svc product.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, err := principal(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		storeID, err := storeIDFromPath(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", 0, 0, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		categoryID, err := validators.ParseQueryUUID(r, "category_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		colorID, err := validators.ParseQueryUUID(r, "color_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		sizeID, err := validators.ParseQueryUUID(r, "size_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		isFeatured, err := validators.ParseQueryBool(r, "is_featured")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		includeArchived, err := validators.ParseQueryBool(r, "include_archived")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := product.ListProductsInput{
			StoreID: storeID,
			Filters: product.ProductListFilters{
				CategoryID:      categoryID,
				ColorID:         colorID,
				SizeID:          sizeID,
				IsFeatured:      isFeatured,
				IncludeArchived: includeArchived != nil && *includeArchived,
			},
			Pagination: pagination.Params{
				Limit:  limit,
				Cursor: r.URL.Query().Get("cursor"),
			},
		}

		result, err := svc.ListProducts(r.Context(), ownerID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

func ProductDetail(svc product.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, err := principal(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		storeID, err := storeIDFromPath(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		productID, err := pathUUID(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		found, err := svc.GetProduct(r.Context(), ownerID, storeID, productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, found)
	}
}

func ProductUpdate(svc product.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, err := principal(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		storeID, err := storeIDFromPath(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		productID, err := pathUUID(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload productUpdateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		updated, err := svc.UpdateProduct(r.Context(), ownerID, storeID, productID, product.UpdateProductInput{
			Name:        payload.Name,
			Description: payload.Description,
			Price:       payload.Price,
			CategoryID:  payload.CategoryID,
			IsFeatured:  payload.IsFeatured,
			IsArchived:  payload.IsArchived,
			FlatStock:   payload.FlatStock,
			Images:      toImageInputs(payload.Images),
			Variations:  toVariationInputs(payload.Variations),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, updated)
	}
}

func ProductDelete(svc product.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, err := principal(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		storeID, err := storeIDFromPath(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		productID, err := pathUUID(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteProduct(r.Context(), ownerID, storeID, productID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// ProductVariationsList returns the variation set from the product detail.
func ProductVariationsList(svc product.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, err := principal(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		storeID, err := storeIDFromPath(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		productID, err := pathUUID(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		found, err := svc.GetProduct(r.Context(), ownerID, storeID, productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, found.Variations)
	}
}

// ProductVariationsReplace swaps the product's variation set for the payload.
func ProductVariationsReplace(svc product.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, err := principal(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		storeID, err := storeIDFromPath(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		productID, err := pathUUID(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload variationsReplaceRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		updated, err := svc.ReplaceVariations(r.Context(), ownerID, storeID, productID, toVariationInputs(payload.Variations))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, updated)
	}
}

package product

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/boutiquehq/boutique-backend/pkg/db"
	"github.com/boutiquehq/boutique-backend/pkg/db/models"
	"github.com/boutiquehq/boutique-backend/pkg/enums"
	pkgerrors "github.com/boutiquehq/boutique-backend/pkg/errors"
)

// Service exposes product management operations.
type Service interface {
	CreateProduct(ctx context.Context, ownerID string, storeID uuid.UUID, input CreateProductInput) (*ProductDTO, error)
	UpdateProduct(ctx context.Context, ownerID string, storeID, productID uuid.UUID, input UpdateProductInput) (*ProductDTO, error)
	ReplaceVariations(ctx context.Context, ownerID string, storeID, productID uuid.UUID, variations []VariationInput) (*ProductDTO, error)
	DeleteProduct(ctx context.Context, ownerID string, storeID, productID uuid.UUID) error
	GetProduct(ctx context.Context, ownerID string, storeID, productID uuid.UUID) (*ProductDTO, error)
	ListProducts(ctx context.Context, ownerID string, input ListProductsInput) (*ProductListResult, error)
}

// ImageInput references a hosted image URL. Position follows payload order.
type ImageInput struct {
	URL string
}

// VariationInput describes one (color, size) combination in a payload.
type VariationInput struct {
	ColorID uuid.UUID
	SizeID  uuid.UUID
	Stock   int
	Images  []ImageInput
}

// CreateProductInput holds the validated payload to create a product. A
// payload with variations produces a variant product; without, a flat one.
type CreateProductInput struct {
	Name        string
	Description *string
	Price       decimal.Decimal
	CategoryID  uuid.UUID
	IsFeatured  bool
	FlatStock   int
	Images      []ImageInput
	Variations  []VariationInput
}

// UpdateProductInput is the full replacement payload for a product. The image
// set is swapped wholesale; the variation set is reconciled against what is
// stored.
type UpdateProductInput struct {
	Name        string
	Description *string
	Price       decimal.Decimal
	CategoryID  uuid.UUID
	IsFeatured  bool
	IsArchived  bool
	FlatStock   int
	Images      []ImageInput
	Variations  []VariationInput
}

type storeGuard interface {
	RequireOwned(ctx context.Context, ownerID string, storeID uuid.UUID) error
}

type catalogReader interface {
	FindCategory(ctx context.Context, id uuid.UUID) (*models.Category, error)
	FindColor(ctx context.Context, id uuid.UUID) (*models.Color, error)
	FindSize(ctx context.Context, id uuid.UUID) (*models.Size, error)
}

// service implements the product service.
type service struct {
	repo     *Repository
	dbClient *db.Client
	stores   storeGuard
	catalog  catalogReader
}

// NewService constructs a product service instance.
func NewService(repo *Repository, dbClient *db.Client, stores storeGuard, catalog catalogReader) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	if stores == nil {
		return nil, fmt.Errorf("store guard required")
	}
	if catalog == nil {
		return nil, fmt.Errorf("catalog reader required")
	}
	return &service{
		repo:     repo,
		dbClient: dbClient,
		stores:   stores,
		catalog:  catalog,
	}, nil
}

// CreateProduct creates the product with its images and variations in one
// transaction.
func (s *service) CreateProduct(ctx context.Context, ownerID string, storeID uuid.UUID, input CreateProductInput) (*ProductDTO, error) {
	if err := s.stores.RequireOwned(ctx, ownerID, storeID); err != nil {
		return nil, err
	}
	if err := validateProductCore(input.Name, input.Price, input.FlatStock, input.Images); err != nil {
		return nil, err
	}
	if err := s.ensureStoreCategory(ctx, storeID, input.CategoryID); err != nil {
		return nil, err
	}
	if err := s.validateVariations(ctx, storeID, input.Variations); err != nil {
		return nil, err
	}

	kind := enums.ProductKindFlat
	flatStock := input.FlatStock
	if len(input.Variations) > 0 {
		kind = enums.ProductKindVariant
		flatStock = 0
	}

	productID := uuid.New()
	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		row := &models.Product{
			ID:          productID,
			StoreID:     storeID,
			CategoryID:  input.CategoryID,
			Name:        strings.TrimSpace(input.Name),
			Description: input.Description,
			Price:       input.Price,
			Kind:        kind,
			FlatStock:   flatStock,
			IsFeatured:  input.IsFeatured,
		}
		if _, err := txRepo.CreateProduct(ctx, row); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert product")
		}

		if err := txRepo.ReplaceProductImages(ctx, productID, buildProductImages(productID, input.Images)); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert product images")
		}

		if err := s.reconcileVariations(ctx, txRepo, productID, input.Variations); err != nil {
			return err
		}
		return nil
	}); err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create product")
	}

	return s.loadDetail(ctx, productID)
}

// UpdateProduct replaces the product fields and image set, and reconciles the
// variation set, all in one transaction.
func (s *service) UpdateProduct(ctx context.Context, ownerID string, storeID, productID uuid.UUID, input UpdateProductInput) (*ProductDTO, error) {
	if err := s.stores.RequireOwned(ctx, ownerID, storeID); err != nil {
		return nil, err
	}
	if err := validateProductCore(input.Name, input.Price, input.FlatStock, input.Images); err != nil {
		return nil, err
	}
	if err := s.ensureStoreCategory(ctx, storeID, input.CategoryID); err != nil {
		return nil, err
	}
	if err := s.validateVariations(ctx, storeID, input.Variations); err != nil {
		return nil, err
	}

	row, err := s.loadOwnedProduct(ctx, storeID, productID)
	if err != nil {
		return nil, err
	}

	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		row.Name = strings.TrimSpace(input.Name)
		row.Description = input.Description
		row.Price = input.Price
		row.CategoryID = input.CategoryID
		row.IsFeatured = input.IsFeatured
		row.IsArchived = input.IsArchived
		if len(input.Variations) > 0 {
			row.Kind = enums.ProductKindVariant
			row.FlatStock = 0
		} else {
			row.Kind = enums.ProductKindFlat
			row.FlatStock = input.FlatStock
		}
		if _, err := txRepo.UpdateProduct(ctx, row); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update product")
		}

		if err := txRepo.ReplaceProductImages(ctx, productID, buildProductImages(productID, input.Images)); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: replace product images")
		}

		if err := s.reconcileVariations(ctx, txRepo, productID, input.Variations); err != nil {
			return err
		}
		return nil
	}); err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update product")
	}

	return s.loadDetail(ctx, productID)
}

// ReplaceVariations reconciles the product's variation set against the
// payload without touching the rest of the product.
func (s *service) ReplaceVariations(ctx context.Context, ownerID string, storeID, productID uuid.UUID, variations []VariationInput) (*ProductDTO, error) {
	if err := s.stores.RequireOwned(ctx, ownerID, storeID); err != nil {
		return nil, err
	}
	if err := s.validateVariations(ctx, storeID, variations); err != nil {
		return nil, err
	}

	row, err := s.loadOwnedProduct(ctx, storeID, productID)
	if err != nil {
		return nil, err
	}

	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		if len(variations) > 0 {
			row.Kind = enums.ProductKindVariant
			row.FlatStock = 0
		} else {
			row.Kind = enums.ProductKindFlat
		}
		if _, err := txRepo.UpdateProduct(ctx, row); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update product")
		}

		return s.reconcileVariations(ctx, txRepo, productID, variations)
	}); err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "replace variations")
	}

	return s.loadDetail(ctx, productID)
}

// DeleteProduct removes a product with its images and variations.
func (s *service) DeleteProduct(ctx context.Context, ownerID string, storeID, productID uuid.UUID) error {
	if err := s.stores.RequireOwned(ctx, ownerID, storeID); err != nil {
		return err
	}
	if _, err := s.loadOwnedProduct(ctx, storeID, productID); err != nil {
		return err
	}

	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		return s.repo.WithTx(tx).DeleteProduct(ctx, productID)
	}); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete product")
	}
	return nil
}

// GetProduct returns the product detail scoped to the caller's store.
func (s *service) GetProduct(ctx context.Context, ownerID string, storeID, productID uuid.UUID) (*ProductDTO, error) {
	if err := s.stores.RequireOwned(ctx, ownerID, storeID); err != nil {
		return nil, err
	}
	detail, err := s.repo.GetProductDetail(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product detail")
	}
	if detail.StoreID != storeID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return NewProductDTO(detail), nil
}

// ListProducts returns one filtered page of the caller's store products.
func (s *service) ListProducts(ctx context.Context, ownerID string, input ListProductsInput) (*ProductListResult, error) {
	if err := s.stores.RequireOwned(ctx, ownerID, input.StoreID); err != nil {
		return nil, err
	}
	result, err := s.repo.ListProducts(ctx, input)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list products")
	}
	return result, nil
}

// reconcileVariations matches stored variation rows to the payload by
// (color_id, size_id). Matched rows keep their stored stock so concurrent
// ledger writes are not lost; new pairs are inserted with the payload stock;
// absent pairs are deleted with their images.
func (s *service) reconcileVariations(ctx context.Context, txRepo *Repository, productID uuid.UUID, inputs []VariationInput) error {
	existing, err := txRepo.ListVariations(ctx, productID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list variations")
	}

	type pair struct{ color, size uuid.UUID }
	byPair := make(map[pair]*models.ProductVariation, len(existing))
	for i := range existing {
		byPair[pair{existing[i].ColorID, existing[i].SizeID}] = &existing[i]
	}

	wanted := make(map[pair]struct{}, len(inputs))
	toCreate := make([]models.ProductVariation, 0, len(inputs))
	type imageSwap struct {
		variationID uuid.UUID
		images      []ImageInput
	}
	swaps := make([]imageSwap, 0, len(inputs))

	for _, input := range inputs {
		key := pair{input.ColorID, input.SizeID}
		wanted[key] = struct{}{}

		if current, ok := byPair[key]; ok {
			swaps = append(swaps, imageSwap{variationID: current.ID, images: input.Images})
			continue
		}

		variationID := uuid.New()
		toCreate = append(toCreate, models.ProductVariation{
			ID:        variationID,
			ProductID: productID,
			ColorID:   input.ColorID,
			SizeID:    input.SizeID,
			Stock:     input.Stock,
		})
		swaps = append(swaps, imageSwap{variationID: variationID, images: input.Images})
	}

	toDelete := make([]uuid.UUID, 0, len(existing))
	for key, row := range byPair {
		if _, ok := wanted[key]; !ok {
			toDelete = append(toDelete, row.ID)
		}
	}

	if err := txRepo.DeleteVariations(ctx, toDelete); err != nil {
		return variationDeleteError(err)
	}
	if err := txRepo.CreateVariations(ctx, toCreate); err != nil {
		if db.IsUniqueViolation(err, "") {
			return pkgerrors.New(pkgerrors.CodeConflict, "duplicate color/size combination")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert variations")
	}
	for _, swap := range swaps {
		if err := txRepo.ReplaceVariationImages(ctx, swap.variationID, buildVariationImages(swap.variationID, swap.images)); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: replace variation images")
		}
	}
	return nil
}

// variationDeleteError maps a failed variation delete. Variations still
// referenced by sale or order lines trip the RESTRICT constraints and come
// back as a conflict the caller can act on.
func variationDeleteError(err error) error {
	if db.IsForeignKeyViolation(err) {
		return pkgerrors.New(pkgerrors.CodeConflict, "variation is referenced by sales or orders")
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete variations")
}

func (s *service) loadOwnedProduct(ctx context.Context, storeID, productID uuid.UUID) (*models.Product, error) {
	row, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	if row.StoreID != storeID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "product does not belong to store")
	}
	return row, nil
}

func (s *service) loadDetail(ctx context.Context, productID uuid.UUID) (*ProductDTO, error) {
	detail, err := s.repo.GetProductDetail(ctx, productID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product detail")
	}
	return NewProductDTO(detail), nil
}

func (s *service) ensureStoreCategory(ctx context.Context, storeID, categoryID uuid.UUID) error {
	if categoryID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "category_id is required")
	}
	category, err := s.catalog.FindCategory(ctx, categoryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeValidation, "category not found in store")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load category")
	}
	if category.StoreID != storeID {
		return pkgerrors.New(pkgerrors.CodeValidation, "category not found in store")
	}
	return nil
}

func (s *service) validateVariations(ctx context.Context, storeID uuid.UUID, inputs []VariationInput) error {
	type pair struct{ color, size uuid.UUID }
	seen := make(map[pair]struct{}, len(inputs))

	for _, input := range inputs {
		if input.Stock < 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "variation stock must be non-negative")
		}

		key := pair{input.ColorID, input.SizeID}
		if _, ok := seen[key]; ok {
			return pkgerrors.New(pkgerrors.CodeValidation, "duplicate color/size combination in payload")
		}
		seen[key] = struct{}{}

		color, err := s.catalog.FindColor(ctx, input.ColorID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeValidation, "color not found in store")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load color")
		}
		if color.StoreID != storeID {
			return pkgerrors.New(pkgerrors.CodeValidation, "color not found in store")
		}

		size, err := s.catalog.FindSize(ctx, input.SizeID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeValidation, "size not found in store")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load size")
		}
		if size.StoreID != storeID {
			return pkgerrors.New(pkgerrors.CodeValidation, "size not found in store")
		}

		for _, img := range input.Images {
			if strings.TrimSpace(img.URL) == "" {
				return pkgerrors.New(pkgerrors.CodeValidation, "image url is required")
			}
		}
	}
	return nil
}

func validateProductCore(name string, price decimal.Decimal, flatStock int, images []ImageInput) error {
	if strings.TrimSpace(name) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if price.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "price must be non-negative")
	}
	if flatStock < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "flat_stock must be non-negative")
	}
	if len(images) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "at least one image is required")
	}
	for _, img := range images {
		if strings.TrimSpace(img.URL) == "" {
			return pkgerrors.New(pkgerrors.CodeValidation, "image url is required")
		}
	}
	return nil
}

func buildProductImages(productID uuid.UUID, inputs []ImageInput) []models.Image {
	rows := make([]models.Image, 0, len(inputs))
	for idx, input := range inputs {
		id := productID
		rows = append(rows, models.Image{
			ID:        uuid.New(),
			ProductID: &id,
			URL:       strings.TrimSpace(input.URL),
			Position:  idx,
		})
	}
	return rows
}

func buildVariationImages(variationID uuid.UUID, inputs []ImageInput) []models.Image {
	rows := make([]models.Image, 0, len(inputs))
	for idx, input := range inputs {
		id := variationID
		rows = append(rows, models.Image{
			ID:          uuid.New(),
			VariationID: &id,
			URL:         strings.TrimSpace(input.URL),
			Position:    idx,
		})
	}
	return rows
}

package stock

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/boutiquehq/boutique-backend/pkg/db/models"
	"github.com/boutiquehq/boutique-backend/pkg/enums"
	pkgerrors "github.com/boutiquehq/boutique-backend/pkg/errors"
)

// Service is the stock ledger. Every stock counter mutation in the system
// goes through here or the Tx helpers below.
type Service interface {
	AdjustVariation(ctx context.Context, ownerID string, storeID, variationID uuid.UUID, delta int) (*VariationStockDTO, error)
	AdjustProduct(ctx context.Context, ownerID string, storeID, productID uuid.UUID, delta int) (*ProductStockDTO, error)
	StockCount(ctx context.Context, ownerID string, storeID uuid.UUID) (int64, error)
	ProductsInStock(ctx context.Context, ownerID string, storeID uuid.UUID) (int64, error)
}

// VariationStockDTO reports a variation counter after an adjustment.
type VariationStockDTO struct {
	VariationID uuid.UUID `json:"variation_id"`
	ProductID   uuid.UUID `json:"product_id"`
	Stock       int       `json:"stock"`
}

// ProductStockDTO reports a flat product counter after an adjustment.
type ProductStockDTO struct {
	ProductID uuid.UUID `json:"product_id"`
	FlatStock int       `json:"flat_stock"`
}

type storeGuard interface {
	RequireOwned(ctx context.Context, ownerID string, storeID uuid.UUID) error
}

type service struct {
	repo   *Repository
	stores storeGuard
}

// NewService constructs the stock ledger service.
func NewService(repo *Repository, stores storeGuard) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("stock repository required")
	}
	if stores == nil {
		return nil, fmt.Errorf("store guard required")
	}
	return &service{repo: repo, stores: stores}, nil
}

// AdjustVariation applies delta to a variation counter. A delta that would
// take the counter negative is rejected without writing.
func (s *service) AdjustVariation(ctx context.Context, ownerID string, storeID, variationID uuid.UUID, delta int) (*VariationStockDTO, error) {
	if err := s.stores.RequireOwned(ctx, ownerID, storeID); err != nil {
		return nil, err
	}

	variation, product, err := s.loadScopedVariation(ctx, storeID, variationID)
	if err != nil {
		return nil, err
	}

	rows, err := s.repo.AdjustVariationStock(ctx, variationID, delta)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: adjust variation stock")
	}
	if rows == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeInsufficientStock, "insufficient stock").
			WithDetails(map[string]any{"variation_id": variationID, "stock": variation.Stock, "delta": delta})
	}

	updated, err := s.repo.FindVariation(ctx, variationID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: reload variation")
	}
	return &VariationStockDTO{VariationID: updated.ID, ProductID: product.ID, Stock: updated.Stock}, nil
}

// AdjustProduct applies delta to a flat product counter. Variant products are
// rejected since their units live on variations.
func (s *service) AdjustProduct(ctx context.Context, ownerID string, storeID, productID uuid.UUID, delta int) (*ProductStockDTO, error) {
	if err := s.stores.RequireOwned(ctx, ownerID, storeID); err != nil {
		return nil, err
	}

	product, err := s.loadScopedProduct(ctx, storeID, productID)
	if err != nil {
		return nil, err
	}
	if product.Kind == enums.ProductKindVariant {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "variant products track stock per variation")
	}

	rows, err := s.repo.AdjustProductStock(ctx, productID, delta)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: adjust product stock")
	}
	if rows == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeInsufficientStock, "insufficient stock").
			WithDetails(map[string]any{"product_id": productID, "stock": product.FlatStock, "delta": delta})
	}

	updated, err := s.repo.FindProduct(ctx, productID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: reload product")
	}
	return &ProductStockDTO{ProductID: updated.ID, FlatStock: updated.FlatStock}, nil
}

// StockCount returns the store's total sellable units for the dashboard.
func (s *service) StockCount(ctx context.Context, ownerID string, storeID uuid.UUID) (int64, error) {
	if err := s.stores.RequireOwned(ctx, ownerID, storeID); err != nil {
		return 0, err
	}
	count, err := s.repo.StockCount(ctx, storeID)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: stock count")
	}
	return count, nil
}

// ProductsInStock returns how many active products still have units.
func (s *service) ProductsInStock(ctx context.Context, ownerID string, storeID uuid.UUID) (int64, error) {
	if err := s.stores.RequireOwned(ctx, ownerID, storeID); err != nil {
		return 0, err
	}
	count, err := s.repo.ProductsInStock(ctx, storeID)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: products in stock")
	}
	return count, nil
}

func (s *service) loadScopedVariation(ctx context.Context, storeID, variationID uuid.UUID) (*models.ProductVariation, *models.Product, error) {
	variation, err := s.repo.FindVariation(ctx, variationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, pkgerrors.New(pkgerrors.CodeNotFound, "variation not found")
		}
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load variation")
	}
	product, err := s.repo.FindProduct(ctx, variation.ProductID)
	if err != nil {
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load variation product")
	}
	if product.StoreID != storeID {
		return nil, nil, pkgerrors.New(pkgerrors.CodeNotFound, "variation not found")
	}
	return variation, product, nil
}

func (s *service) loadScopedProduct(ctx context.Context, storeID, productID uuid.UUID) (*models.Product, error) {
	product, err := s.repo.FindProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	if product.StoreID != storeID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return product, nil
}

// DecrementVariationTx removes qty units from a variation inside an open
// transaction. Used by sale creation and payment finalization.
func DecrementVariationTx(ctx context.Context, tx *gorm.DB, variationID uuid.UUID, qty int) error {
	if qty <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}
	repo := NewRepository(tx)
	rows, err := repo.AdjustVariationStock(ctx, variationID, -qty)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: decrement variation stock")
	}
	if rows == 0 {
		if _, err := repo.FindVariation(ctx, variationID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "variation not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load variation")
		}
		return pkgerrors.New(pkgerrors.CodeInsufficientStock, "insufficient stock").
			WithDetails(map[string]any{"variation_id": variationID, "quantity": qty})
	}
	return nil
}

// DecrementProductTx is the flat-product counterpart of DecrementVariationTx.
func DecrementProductTx(ctx context.Context, tx *gorm.DB, productID uuid.UUID, qty int) error {
	if qty <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}
	repo := NewRepository(tx)
	rows, err := repo.AdjustProductStock(ctx, productID, -qty)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: decrement product stock")
	}
	if rows == 0 {
		if _, err := repo.FindProduct(ctx, productID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
		}
		return pkgerrors.New(pkgerrors.CodeInsufficientStock, "insufficient stock").
			WithDetails(map[string]any{"product_id": productID, "quantity": qty})
	}
	return nil
}

package stock

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/boutiquehq/boutique-backend/pkg/db/models"
	"github.com/boutiquehq/boutique-backend/pkg/enums"
)

// Repository issues the guarded stock writes and the dashboard aggregates.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// AdjustVariationStock applies delta in a single guarded UPDATE. The write
// only lands when the resulting stock stays non-negative; the row lock
// serializes concurrent adjusters.
func (r *Repository) AdjustVariationStock(ctx context.Context, variationID uuid.UUID, delta int) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.ProductVariation{}).
		Where("id = ? AND stock + ? >= 0", variationID, delta).
		Update("stock", gorm.Expr("stock + ?", delta))
	return res.RowsAffected, res.Error
}

// AdjustProductStock is the flat-product counterpart of AdjustVariationStock.
func (r *Repository) AdjustProductStock(ctx context.Context, productID uuid.UUID, delta int) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ? AND flat_stock + ? >= 0", productID, delta).
		Update("flat_stock", gorm.Expr("flat_stock + ?", delta))
	return res.RowsAffected, res.Error
}

func (r *Repository) FindVariation(ctx context.Context, id uuid.UUID) (*models.ProductVariation, error) {
	var row models.ProductVariation
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *Repository) FindProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var row models.Product
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// StockCount sums the store's sellable units over both product kinds.
func (r *Repository) StockCount(ctx context.Context, storeID uuid.UUID) (int64, error) {
	var flat int64
	if err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("store_id = ? AND kind = ?", storeID, enums.ProductKindFlat).
		Select("COALESCE(SUM(flat_stock), 0)").
		Scan(&flat).Error; err != nil {
		return 0, err
	}

	var variant int64
	if err := r.db.WithContext(ctx).
		Model(&models.ProductVariation{}).
		Joins("JOIN products ON products.id = product_variations.product_id").
		Where("products.store_id = ?", storeID).
		Select("COALESCE(SUM(product_variations.stock), 0)").
		Scan(&variant).Error; err != nil {
		return 0, err
	}

	return flat + variant, nil
}

// ProductsInStock counts active products with at least one sellable unit.
func (r *Repository) ProductsInStock(ctx context.Context, storeID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("store_id = ? AND is_archived = ?", storeID, false).
		Where(
			"(kind = ? AND flat_stock > 0) OR (kind = ? AND EXISTS (SELECT 1 FROM product_variations v WHERE v.product_id = products.id AND v.stock > 0))",
			enums.ProductKindFlat, enums.ProductKindVariant,
		).
		Count(&count).Error
	return count, err
}

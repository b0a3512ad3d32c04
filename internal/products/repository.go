package product

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/boutiquehq/boutique-backend/pkg/db/models"
	"github.com/boutiquehq/boutique-backend/pkg/pagination"
)

// Repository wires together product persistence helpers.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// FindByID loads the product without associations.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// CreateProduct inserts a new product row.
func (r *Repository) CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// UpdateProduct updates an existing product row.
func (r *Repository) UpdateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Save(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct removes a product by ID. Its images and variations go with it.
func (r *Repository) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	tx := r.db.WithContext(ctx)
	var variationIDs []uuid.UUID
	if err := tx.Model(&models.ProductVariation{}).
		Where("product_id = ?", id).
		Pluck("id", &variationIDs).
		Error; err != nil {
		return err
	}
	if len(variationIDs) > 0 {
		if err := tx.Where("variation_id IN ?", variationIDs).Delete(&models.Image{}).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", id).Delete(&models.ProductVariation{}).Error; err != nil {
			return err
		}
	}
	if err := tx.Where("product_id = ?", id).Delete(&models.Image{}).Error; err != nil {
		return err
	}
	return tx.Where("id = ?", id).Delete(&models.Product{}).Error
}

// GetProductDetail fetches a product with category, images, and variations.
func (r *Repository) GetProductDetail(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("Variations", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("Variations.Color").
		Preload("Variations.Size").
		Preload("Variations.Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&product, "id = ?", id).
		Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// ReplaceProductImages swaps the product-level image set.
func (r *Repository) ReplaceProductImages(ctx context.Context, productID uuid.UUID, images []models.Image) error {
	tx := r.db.WithContext(ctx)
	if err := tx.Where("product_id = ?", productID).Delete(&models.Image{}).Error; err != nil {
		return err
	}
	if len(images) == 0 {
		return nil
	}
	return tx.Create(&images).Error
}

// ReplaceVariationImages swaps the image set of a single variation.
func (r *Repository) ReplaceVariationImages(ctx context.Context, variationID uuid.UUID, images []models.Image) error {
	tx := r.db.WithContext(ctx)
	if err := tx.Where("variation_id = ?", variationID).Delete(&models.Image{}).Error; err != nil {
		return err
	}
	if len(images) == 0 {
		return nil
	}
	return tx.Create(&images).Error
}

// ListVariations returns all variation rows for the product.
func (r *Repository) ListVariations(ctx context.Context, productID uuid.UUID) ([]models.ProductVariation, error) {
	var rows []models.ProductVariation
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at ASC").
		Find(&rows).
		Error
	return rows, err
}

// CreateVariations batch-inserts variation rows.
func (r *Repository) CreateVariations(ctx context.Context, rows []models.ProductVariation) error {
	if len(rows) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&rows).Error
}

// DeleteVariations removes the given variation rows together with their images.
func (r *Repository) DeleteVariations(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	tx := r.db.WithContext(ctx)
	if err := tx.Where("variation_id IN ?", ids).Delete(&models.Image{}).Error; err != nil {
		return err
	}
	return tx.Where("id IN ?", ids).Delete(&models.ProductVariation{}).Error
}

// ListProducts returns one filtered page of products with associations, newest
// first.
func (r *Repository) ListProducts(ctx context.Context, input ListProductsInput) (*ProductListResult, error) {
	pageSize := pagination.NormalizeLimit(input.Pagination.Limit)
	limitWithBuffer := pagination.LimitWithBuffer(input.Pagination.Limit)

	cursor, err := pagination.ParseCursor(input.Pagination.Cursor)
	if err != nil {
		return nil, err
	}

	qb := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("store_id = ?", input.StoreID)

	filter := input.Filters
	if !filter.IncludeArchived {
		qb = qb.Where("is_archived = ?", false)
	}
	if filter.CategoryID != nil {
		qb = qb.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.IsFeatured != nil {
		qb = qb.Where("is_featured = ?", *filter.IsFeatured)
	}
	if filter.ColorID != nil {
		qb = qb.Where(
			"EXISTS (SELECT 1 FROM product_variations v WHERE v.product_id = products.id AND v.color_id = ?)",
			*filter.ColorID,
		)
	}
	if filter.SizeID != nil {
		qb = qb.Where(
			"EXISTS (SELECT 1 FROM product_variations v WHERE v.product_id = products.id AND v.size_id = ?)",
			*filter.SizeID,
		)
	}

	qb = pagination.ApplyCursor(qb, cursor).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limitWithBuffer).
		Preload("Category").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("Variations", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("Variations.Color").
		Preload("Variations.Size")

	var rows []models.Product
	if err := qb.Find(&rows).Error; err != nil {
		return nil, err
	}

	nextCursor := ""
	if len(rows) > pageSize {
		rows = rows[:pageSize]
		last := rows[len(rows)-1]
		nextCursor = pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
	}

	dtos := make([]ProductDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, *NewProductDTO(&rows[i]))
	}

	return &ProductListResult{
		Products:   dtos,
		NextCursor: nextCursor,
	}, nil
}

package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/boutiquehq/boutique-backend/pkg/db/models"
)

// Repository wires together persistence for billboards, categories, colors and
// sizes.
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

// CreateBillboard inserts a billboard row.
func (r *Repository) CreateBillboard(ctx context.Context, row *models.Billboard) (*models.Billboard, error) {
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

// FindBillboard loads a billboard by primary key.
func (r *Repository) FindBillboard(ctx context.Context, id uuid.UUID) (*models.Billboard, error) {
	var row models.Billboard
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// ListBillboards returns the store's billboards, newest first.
func (r *Repository) ListBillboards(ctx context.Context, storeID uuid.UUID) ([]models.Billboard, error) {
	var rows []models.Billboard
	err := r.db.WithContext(ctx).
		Where("store_id = ?", storeID).
		Order("created_at DESC").
		Find(&rows).
		Error
	return rows, err
}

// UpdateBillboard persists the billboard row.
func (r *Repository) UpdateBillboard(ctx context.Context, row *models.Billboard) (*models.Billboard, error) {
	if err := r.db.WithContext(ctx).Save(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

// DeleteBillboard removes the billboard by ID.
func (r *Repository) DeleteBillboard(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Billboard{}).Error
}

// CountCategoriesByBillboard counts categories still referencing the billboard.
func (r *Repository) CountCategoriesByBillboard(ctx context.Context, billboardID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Category{}).
		Where("billboard_id = ?", billboardID).
		Count(&count).
		Error
	return count, err
}

// CreateCategory inserts a category row.
func (r *Repository) CreateCategory(ctx context.Context, row *models.Category) (*models.Category, error) {
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

// FindCategory loads a category by primary key.
func (r *Repository) FindCategory(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	var row models.Category
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// ListCategories returns the store's categories, newest first.
func (r *Repository) ListCategories(ctx context.Context, storeID uuid.UUID) ([]models.Category, error) {
	var rows []models.Category
	err := r.db.WithContext(ctx).
		Where("store_id = ?", storeID).
		Order("created_at DESC").
		Find(&rows).
		Error
	return rows, err
}

// UpdateCategory persists the category row.
func (r *Repository) UpdateCategory(ctx context.Context, row *models.Category) (*models.Category, error) {
	if err := r.db.WithContext(ctx).Save(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

// DeleteCategory removes the category by ID.
func (r *Repository) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Category{}).Error
}

// CountProductsByCategory counts products still referencing the category.
func (r *Repository) CountProductsByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("category_id = ?", categoryID).
		Count(&count).
		Error
	return count, err
}

// CreateColor inserts a color row.
func (r *Repository) CreateColor(ctx context.Context, row *models.Color) (*models.Color, error) {
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

// FindColor loads a color by primary key.
func (r *Repository) FindColor(ctx context.Context, id uuid.UUID) (*models.Color, error) {
	var row models.Color
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// ListColors returns the store's colors, newest first.
func (r *Repository) ListColors(ctx context.Context, storeID uuid.UUID) ([]models.Color, error) {
	var rows []models.Color
	err := r.db.WithContext(ctx).
		Where("store_id = ?", storeID).
		Order("created_at DESC").
		Find(&rows).
		Error
	return rows, err
}

// UpdateColor persists the color row.
func (r *Repository) UpdateColor(ctx context.Context, row *models.Color) (*models.Color, error) {
	if err := r.db.WithContext(ctx).Save(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

// DeleteColor removes the color by ID.
func (r *Repository) DeleteColor(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Color{}).Error
}

// CountVariationsByColor counts variations still referencing the color.
func (r *Repository) CountVariationsByColor(ctx context.Context, colorID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.ProductVariation{}).
		Where("color_id = ?", colorID).
		Count(&count).
		Error
	return count, err
}

// CreateSize inserts a size row.
func (r *Repository) CreateSize(ctx context.Context, row *models.Size) (*models.Size, error) {
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

// FindSize loads a size by primary key.
func (r *Repository) FindSize(ctx context.Context, id uuid.UUID) (*models.Size, error) {
	var row models.Size
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// ListSizes returns the store's sizes, newest first.
func (r *Repository) ListSizes(ctx context.Context, storeID uuid.UUID) ([]models.Size, error) {
	var rows []models.Size
	err := r.db.WithContext(ctx).
		Where("store_id = ?", storeID).
		Order("created_at DESC").
		Find(&rows).
		Error
	return rows, err
}

// UpdateSize persists the size row.
func (r *Repository) UpdateSize(ctx context.Context, row *models.Size) (*models.Size, error) {
	if err := r.db.WithContext(ctx).Save(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

// DeleteSize removes the size by ID.
func (r *Repository) DeleteSize(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Size{}).Error
}

// CountVariationsBySize counts variations still referencing the size.
func (r *Repository) CountVariationsBySize(ctx context.Context, sizeID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.ProductVariation{}).
		Where("size_id = ?", sizeID).
		Count(&count).
		Error
	return count, err
}

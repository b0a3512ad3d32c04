package order

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/boutiquehq/boutique-backend/pkg/db/models"
)

// Repository owns order persistence.
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

func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var row models.Order
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// ListByStore returns the store's orders newest first with items.
func (r *Repository) ListByStore(ctx context.Context, storeID uuid.UUID) ([]models.Order, error) {
	var rows []models.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("store_id = ?", storeID).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *Repository) Create(ctx context.Context, order *models.Order) (*models.Order, error) {
	if err := r.db.WithContext(ctx).Create(order).Error; err != nil {
		return nil, err
	}
	return order, nil
}

func (r *Repository) Update(ctx context.Context, order *models.Order) (*models.Order, error) {
	if err := r.db.WithContext(ctx).Save(order).Error; err != nil {
		return nil, err
	}
	return order, nil
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", id).Delete(&models.OrderItem{}).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Where("id = ?", id).Delete(&models.Order{}).Error
}

// DeleteManyByStore removes the given orders, ignoring ids outside the store,
// and reports how many orders were deleted.
func (r *Repository) DeleteManyByStore(ctx context.Context, storeID uuid.UUID, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	var owned []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("store_id = ? AND id IN ?", storeID, ids).
		Pluck("id", &owned).Error; err != nil {
		return 0, err
	}
	if len(owned) == 0 {
		return 0, nil
	}

	if err := r.db.WithContext(ctx).
		Where("order_id IN ?", owned).Delete(&models.OrderItem{}).Error; err != nil {
		return 0, err
	}
	res := r.db.WithContext(ctx).
		Where("id IN ?", owned).Delete(&models.Order{})
	return res.RowsAffected, res.Error
}

package order

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/boutiquehq/boutique-backend/pkg/db"
	"github.com/boutiquehq/boutique-backend/pkg/db/models"
	pkgerrors "github.com/boutiquehq/boutique-backend/pkg/errors"
)

// Service exposes dashboard order operations. Orders are created by the
// storefront checkout and paid through the payment webhook; the dashboard
// reads and prunes them.
type Service interface {
	GetOrder(ctx context.Context, ownerID string, storeID, orderID uuid.UUID) (*OrderDTO, error)
	ListOrders(ctx context.Context, ownerID string, storeID uuid.UUID) ([]OrderDTO, error)
	DeleteOrder(ctx context.Context, ownerID string, storeID, orderID uuid.UUID) error
	DeleteOrders(ctx context.Context, ownerID string, storeID uuid.UUID, orderIDs []uuid.UUID) (int64, error)
}

type storeGuard interface {
	RequireOwned(ctx context.Context, ownerID string, storeID uuid.UUID) error
}

type service struct {
	repo     *Repository
	dbClient *db.Client
	stores   storeGuard
}

// NewService constructs an order service instance.
func NewService(repo *Repository, dbClient *db.Client, stores storeGuard) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("order repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	if stores == nil {
		return nil, fmt.Errorf("store guard required")
	}
	return &service{repo: repo, dbClient: dbClient, stores: stores}, nil
}

func (s *service) GetOrder(ctx context.Context, ownerID string, storeID, orderID uuid.UUID) (*OrderDTO, error) {
	if err := s.stores.RequireOwned(ctx, ownerID, storeID); err != nil {
		return nil, err
	}
	row, err := s.loadScoped(ctx, storeID, orderID)
	if err != nil {
		return nil, err
	}
	return NewOrderDTO(row), nil
}

func (s *service) ListOrders(ctx context.Context, ownerID string, storeID uuid.UUID) ([]OrderDTO, error) {
	if err := s.stores.RequireOwned(ctx, ownerID, storeID); err != nil {
		return nil, err
	}
	rows, err := s.repo.ListByStore(ctx, storeID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list orders")
	}
	dtos := make([]OrderDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, *NewOrderDTO(&rows[i]))
	}
	return dtos, nil
}

func (s *service) DeleteOrder(ctx context.Context, ownerID string, storeID, orderID uuid.UUID) error {
	if err := s.stores.RequireOwned(ctx, ownerID, storeID); err != nil {
		return err
	}
	if _, err := s.loadScoped(ctx, storeID, orderID); err != nil {
		return err
	}
	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		return s.repo.WithTx(tx).Delete(ctx, orderID)
	}); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete order")
	}
	return nil
}

// DeleteOrders removes the listed orders, skipping ids from other stores, and
// reports how many were deleted.
func (s *service) DeleteOrders(ctx context.Context, ownerID string, storeID uuid.UUID, orderIDs []uuid.UUID) (int64, error) {
	if err := s.stores.RequireOwned(ctx, ownerID, storeID); err != nil {
		return 0, err
	}
	if len(orderIDs) == 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "at least one order id is required")
	}

	var deleted int64
	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		var err error
		deleted, err = s.repo.WithTx(tx).DeleteManyByStore(ctx, storeID, orderIDs)
		return err
	}); err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete orders")
	}
	return deleted, nil
}

func (s *service) loadScoped(ctx context.Context, storeID, orderID uuid.UUID) (*models.Order, error) {
	row, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	if row.StoreID != storeID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	return row, nil
}

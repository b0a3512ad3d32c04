package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/boutiquehq/boutique-backend/pkg/db/models"
	pkgerrors "github.com/boutiquehq/boutique-backend/pkg/errors"
)

// Service exposes tenant store management operations.
type Service interface {
	CreateStore(ctx context.Context, ownerID string, input CreateStoreInput) (*StoreDTO, error)
	GetStore(ctx context.Context, ownerID string, storeID uuid.UUID) (*StoreDTO, error)
	ListStores(ctx context.Context, ownerID string) ([]StoreDTO, error)
	UpdateStore(ctx context.Context, ownerID string, storeID uuid.UUID, input UpdateStoreInput) (*StoreDTO, error)
	DeleteStore(ctx context.Context, ownerID string, storeID uuid.UUID) error
	RequireOwned(ctx context.Context, ownerID string, storeID uuid.UUID) error
}

// CreateStoreInput holds the validated payload to create a store.
type CreateStoreInput struct {
	Name string
}

// UpdateStoreInput holds optional mutation values for a store.
type UpdateStoreInput struct {
	Name *string
}

// service implements the store service.
type service struct {
	repo *Repository
}

// NewService constructs a store service instance.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("store repository required")
	}
	return &service{repo: repo}, nil
}

// CreateStore creates a store owned by the principal.
func (s *service) CreateStore(ctx context.Context, ownerID string, input CreateStoreInput) (*StoreDTO, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if strings.TrimSpace(ownerID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing principal")
	}

	store := &models.Store{
		ID:      uuid.New(),
		Name:    name,
		OwnerID: ownerID,
	}
	created, err := s.repo.Create(ctx, store)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert store")
	}
	return NewStoreDTO(created), nil
}

// GetStore returns an owned store.
func (s *service) GetStore(ctx context.Context, ownerID string, storeID uuid.UUID) (*StoreDTO, error) {
	store, err := s.loadOwned(ctx, ownerID, storeID)
	if err != nil {
		return nil, err
	}
	return NewStoreDTO(store), nil
}

// ListStores returns all stores administered by the principal.
func (s *service) ListStores(ctx context.Context, ownerID string) ([]StoreDTO, error) {
	rows, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list stores")
	}
	dtos := make([]StoreDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, *NewStoreDTO(&rows[i]))
	}
	return dtos, nil
}

// UpdateStore renames an owned store.
func (s *service) UpdateStore(ctx context.Context, ownerID string, storeID uuid.UUID, input UpdateStoreInput) (*StoreDTO, error) {
	store, err := s.loadOwned(ctx, ownerID, storeID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
		}
		store.Name = name
	}

	updated, err := s.repo.Update(ctx, store)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update store")
	}
	return NewStoreDTO(updated), nil
}

// DeleteStore removes an owned store and relies on FK cascades for children.
func (s *service) DeleteStore(ctx context.Context, ownerID string, storeID uuid.UUID) error {
	if _, err := s.loadOwned(ctx, ownerID, storeID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, storeID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete store")
	}
	return nil
}

// RequireOwned verifies the store exists and belongs to the principal. Other
// services use this as their tenancy guard.
func (s *service) RequireOwned(ctx context.Context, ownerID string, storeID uuid.UUID) error {
	_, err := s.loadOwned(ctx, ownerID, storeID)
	return err
}

func (s *service) loadOwned(ctx context.Context, ownerID string, storeID uuid.UUID) (*models.Store, error) {
	store, err := s.repo.FindByID(ctx, storeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "store not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load store")
	}
	if store.OwnerID != ownerID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "store does not belong to principal")
	}
	return store, nil
}

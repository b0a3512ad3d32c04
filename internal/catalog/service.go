package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/boutiquehq/boutique-backend/pkg/db"
	"github.com/boutiquehq/boutique-backend/pkg/db/models"
	pkgerrors "github.com/boutiquehq/boutique-backend/pkg/errors"
)

// Service exposes CRUD for the catalog reference entities: billboards,
// categories, colors and sizes.
type Service interface {
	CreateBillboard(ctx context.Context, ownerID string, storeID uuid.UUID, input BillboardInput) (*BillboardDTO, error)
	GetBillboard(ctx context.Context, storeID, billboardID uuid.UUID) (*BillboardDTO, error)
	ListBillboards(ctx context.Context, storeID uuid.UUID) ([]BillboardDTO, error)
	UpdateBillboard(ctx context.Context, ownerID string, storeID, billboardID uuid.UUID, input BillboardInput) (*BillboardDTO, error)
	DeleteBillboard(ctx context.Context, ownerID string, storeID, billboardID uuid.UUID) error

	CreateCategory(ctx context.Context, ownerID string, storeID uuid.UUID, input CategoryInput) (*CategoryDTO, error)
	GetCategory(ctx context.Context, storeID, categoryID uuid.UUID) (*CategoryDTO, error)
	ListCategories(ctx context.Context, storeID uuid.UUID) ([]CategoryDTO, error)
	UpdateCategory(ctx context.Context, ownerID string, storeID, categoryID uuid.UUID, input CategoryInput) (*CategoryDTO, error)
	DeleteCategory(ctx context.Context, ownerID string, storeID, categoryID uuid.UUID) error

	CreateColor(ctx context.Context, ownerID string, storeID uuid.UUID, input OptionInput) (*OptionDTO, error)
	GetColor(ctx context.Context, storeID, colorID uuid.UUID) (*OptionDTO, error)
	ListColors(ctx context.Context, storeID uuid.UUID) ([]OptionDTO, error)
	UpdateColor(ctx context.Context, ownerID string, storeID, colorID uuid.UUID, input OptionInput) (*OptionDTO, error)
	DeleteColor(ctx context.Context, ownerID string, storeID, colorID uuid.UUID) error

	CreateSize(ctx context.Context, ownerID string, storeID uuid.UUID, input OptionInput) (*OptionDTO, error)
	GetSize(ctx context.Context, storeID, sizeID uuid.UUID) (*OptionDTO, error)
	ListSizes(ctx context.Context, storeID uuid.UUID) ([]OptionDTO, error)
	UpdateSize(ctx context.Context, ownerID string, storeID, sizeID uuid.UUID, input OptionInput) (*OptionDTO, error)
	DeleteSize(ctx context.Context, ownerID string, storeID, sizeID uuid.UUID) error
}

// BillboardInput holds the validated billboard payload.
type BillboardInput struct {
	Label    string
	ImageURL string
}

// CategoryInput holds the validated category payload.
type CategoryInput struct {
	Name        string
	BillboardID uuid.UUID
}

// OptionInput holds the validated payload shared by colors and sizes.
type OptionInput struct {
	Name  string
	Value string
}

type storeGuard interface {
	RequireOwned(ctx context.Context, ownerID string, storeID uuid.UUID) error
}

// service implements the catalog service.
type service struct {
	repo   *Repository
	stores storeGuard
}

// NewService constructs a catalog service instance.
func NewService(repo *Repository, stores storeGuard) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if stores == nil {
		return nil, fmt.Errorf("store guard required")
	}
	return &service{repo: repo, stores: stores}, nil
}

// CreateBillboard creates a billboard for an owned store.
func (s *service) CreateBillboard(ctx context.Context, ownerID string, storeID uuid.UUID, input BillboardInput) (*BillboardDTO, error) {
	if err := validateBillboardInput(input); err != nil {
		return nil, err
	}
	if err := s.stores.RequireOwned(ctx, ownerID, storeID); err != nil {
		return nil, err
	}

	row := &models.Billboard{
		ID:       uuid.New(),
		StoreID:  storeID,
		Label:    strings.TrimSpace(input.Label),
		ImageURL: strings.TrimSpace(input.ImageURL),
	}
	created, err := s.repo.CreateBillboard(ctx, row)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert billboard")
	}
	return NewBillboardDTO(created), nil
}

// GetBillboard returns a single billboard scoped to the store.
func (s *service) GetBillboard(ctx context.Context, storeID, billboardID uuid.UUID) (*BillboardDTO, error) {
	row, err := s.loadBillboard(ctx, storeID, billboardID)
	if err != nil {
		return nil, err
	}
	return NewBillboardDTO(row), nil
}

// ListBillboards returns the store's billboards.
func (s *service) ListBillboards(ctx context.Context, storeID uuid.UUID) ([]BillboardDTO, error) {
	rows, err := s.repo.ListBillboards(ctx, storeID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list billboards")
	}
	dtos := make([]BillboardDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, *NewBillboardDTO(&rows[i]))
	}
	return dtos, nil
}

// UpdateBillboard replaces the billboard's label and image.
func (s *service) UpdateBillboard(ctx context.Context, ownerID string, storeID, billboardID uuid.UUID, input BillboardInput) (*BillboardDTO, error) {
	if err := validateBillboardInput(input); err != nil {
		return nil, err
	}
	if err := s.stores.RequireOwned(ctx, ownerID, storeID); err != nil {
		return nil, err
	}

	row, err := s.loadBillboard(ctx, storeID, billboardID)
	if err != nil {
		return nil, err
	}
	row.Label = strings.TrimSpace(input.Label)
	row.ImageURL = strings.TrimSpace(input.ImageURL)

	updated, err := s.repo.UpdateBillboard(ctx, row)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update billboard")
	}
	return NewBillboardDTO(updated), nil
}

// DeleteBillboard removes a billboard unless categories still reference it.
func (s *service) DeleteBillboard(ctx context.Context, ownerID string, storeID, billboardID uuid.UUID) error {
	if err := s.stores.RequireOwned(ctx, ownerID, storeID); err != nil {
		return err
	}
	if _, err := s.loadBillboard(ctx, storeID, billboardID); err != nil {
		return err
	}

	count, err := s.repo.CountCategoriesByBillboard(ctx, billboardID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: count categories")
	}
	if count > 0 {
		return pkgerrors.New(pkgerrors.CodeConflict, "billboard is referenced by categories").
			WithDetails(map[string]any{"categories": count})
	}

	if err := s.repo.DeleteBillboard(ctx, billboardID); err != nil {
		if db.IsForeignKeyViolation(err) {
			return pkgerrors.New(pkgerrors.CodeConflict, "billboard is referenced by categories")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete billboard")
	}
	return nil
}

// CreateCategory creates a category under one of the store's billboards.
func (s *service) CreateCategory(ctx context.Context, ownerID string, storeID uuid.UUID, input CategoryInput) (*CategoryDTO, error) {
	if err := validateCategoryInput(input); err != nil {
		return nil, err
	}
	if err := s.stores.RequireOwned(ctx, ownerID, storeID); err != nil {
		return nil, err
	}
	if _, err := s.loadBillboard(ctx, storeID, input.BillboardID); err != nil {
		if typed := pkgerrors.As(err); typed != nil && typed.Code() == pkgerrors.CodeNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "billboard not found in store")
		}
		return nil, err
	}

	row := &models.Category{
		ID:          uuid.New(),
		StoreID:     storeID,
		BillboardID: input.BillboardID,
		Name:        strings.TrimSpace(input.Name),
	}
	created, err := s.repo.CreateCategory(ctx, row)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert category")
	}
	return NewCategoryDTO(created), nil
}

// GetCategory returns a single category scoped to the store.
func (s *service) GetCategory(ctx context.Context, storeID, categoryID uuid.UUID) (*CategoryDTO, error) {
	row, err := s.loadCategory(ctx, storeID, categoryID)
	if err != nil {
		return nil, err
	}
	return NewCategoryDTO(row), nil
}

// ListCategories returns the store's categories.
func (s *service) ListCategories(ctx context.Context, storeID uuid.UUID) ([]CategoryDTO, error) {
	rows, err := s.repo.ListCategories(ctx, storeID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list categories")
	}
	dtos := make([]CategoryDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, *NewCategoryDTO(&rows[i]))
	}
	return dtos, nil
}

// UpdateCategory replaces the category's name and billboard.
func (s *service) UpdateCategory(ctx context.Context, ownerID string, storeID, categoryID uuid.UUID, input CategoryInput) (*CategoryDTO, error) {
	if err := validateCategoryInput(input); err != nil {
		return nil, err
	}
	if err := s.stores.RequireOwned(ctx, ownerID, storeID); err != nil {
		return nil, err
	}

	row, err := s.loadCategory(ctx, storeID, categoryID)
	if err != nil {
		return nil, err
	}
	if _, err := s.loadBillboard(ctx, storeID, input.BillboardID); err != nil {
		if typed := pkgerrors.As(err); typed != nil && typed.Code() == pkgerrors.CodeNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "billboard not found in store")
		}
		return nil, err
	}

	row.Name = strings.TrimSpace(input.Name)
	row.BillboardID = input.BillboardID

	updated, err := s.repo.UpdateCategory(ctx, row)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update category")
	}
	return NewCategoryDTO(updated), nil
}

// DeleteCategory removes a category unless products still reference it.
func (s *service) DeleteCategory(ctx context.Context, ownerID string, storeID, categoryID uuid.UUID) error {
	if err := s.stores.RequireOwned(ctx, ownerID, storeID); err != nil {
		return err
	}
	if _, err := s.loadCategory(ctx, storeID, categoryID); err != nil {
		return err
	}

	count, err := s.repo.CountProductsByCategory(ctx, categoryID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: count products")
	}
	if count > 0 {
		return pkgerrors.New(pkgerrors.CodeConflict, "category is referenced by products").
			WithDetails(map[string]any{"products": count})
	}

	if err := s.repo.DeleteCategory(ctx, categoryID); err != nil {
		if db.IsForeignKeyViolation(err) {
			return pkgerrors.New(pkgerrors.CodeConflict, "category is referenced by products")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete category")
	}
	return nil
}

// CreateColor creates a color option for the store.
func (s *service) CreateColor(ctx context.Context, ownerID string, storeID uuid.UUID, input OptionInput) (*OptionDTO, error) {
	if err := validateOptionInput(input); err != nil {
		return nil, err
	}
	if err := s.stores.RequireOwned(ctx, ownerID, storeID); err != nil {
		return nil, err
	}

	row := &models.Color{
		ID:      uuid.New(),
		StoreID: storeID,
		Name:    strings.TrimSpace(input.Name),
		Value:   strings.TrimSpace(input.Value),
	}
	created, err := s.repo.CreateColor(ctx, row)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert color")
	}
	return NewColorDTO(created), nil
}

// GetColor returns a single color scoped to the store.
func (s *service) GetColor(ctx context.Context, storeID, colorID uuid.UUID) (*OptionDTO, error) {
	row, err := s.loadColor(ctx, storeID, colorID)
	if err != nil {
		return nil, err
	}
	return NewColorDTO(row), nil
}

// ListColors returns the store's colors.
func (s *service) ListColors(ctx context.Context, storeID uuid.UUID) ([]OptionDTO, error) {
	rows, err := s.repo.ListColors(ctx, storeID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list colors")
	}
	dtos := make([]OptionDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, *NewColorDTO(&rows[i]))
	}
	return dtos, nil
}

// UpdateColor replaces the color's name and value.
func (s *service) UpdateColor(ctx context.Context, ownerID string, storeID, colorID uuid.UUID, input OptionInput) (*OptionDTO, error) {
	if err := validateOptionInput(input); err != nil {
		return nil, err
	}
	if err := s.stores.RequireOwned(ctx, ownerID, storeID); err != nil {
		return nil, err
	}

	row, err := s.loadColor(ctx, storeID, colorID)
	if err != nil {
		return nil, err
	}
	row.Name = strings.TrimSpace(input.Name)
	row.Value = strings.TrimSpace(input.Value)

	updated, err := s.repo.UpdateColor(ctx, row)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update color")
	}
	return NewColorDTO(updated), nil
}

// DeleteColor removes a color unless variations still reference it.
func (s *service) DeleteColor(ctx context.Context, ownerID string, storeID, colorID uuid.UUID) error {
	if err := s.stores.RequireOwned(ctx, ownerID, storeID); err != nil {
		return err
	}
	if _, err := s.loadColor(ctx, storeID, colorID); err != nil {
		return err
	}

	count, err := s.repo.CountVariationsByColor(ctx, colorID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: count variations")
	}
	if count > 0 {
		return pkgerrors.New(pkgerrors.CodeConflict, "color is referenced by product variations").
			WithDetails(map[string]any{"variations": count})
	}

	if err := s.repo.DeleteColor(ctx, colorID); err != nil {
		if db.IsForeignKeyViolation(err) {
			return pkgerrors.New(pkgerrors.CodeConflict, "color is referenced by product variations")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete color")
	}
	return nil
}

// CreateSize creates a size option for the store.
func (s *service) CreateSize(ctx context.Context, ownerID string, storeID uuid.UUID, input OptionInput) (*OptionDTO, error) {
	if err := validateOptionInput(input); err != nil {
		return nil, err
	}
	if err := s.stores.RequireOwned(ctx, ownerID, storeID); err != nil {
		return nil, err
	}

	row := &models.Size{
		ID:      uuid.New(),
		StoreID: storeID,
		Name:    strings.TrimSpace(input.Name),
		Value:   strings.TrimSpace(input.Value),
	}
	created, err := s.repo.CreateSize(ctx, row)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert size")
	}
	return NewSizeDTO(created), nil
}

// GetSize returns a single size scoped to the store.
func (s *service) GetSize(ctx context.Context, storeID, sizeID uuid.UUID) (*OptionDTO, error) {
	row, err := s.loadSize(ctx, storeID, sizeID)
	if err != nil {
		return nil, err
	}
	return NewSizeDTO(row), nil
}

// ListSizes returns the store's sizes.
func (s *service) ListSizes(ctx context.Context, storeID uuid.UUID) ([]OptionDTO, error) {
	rows, err := s.repo.ListSizes(ctx, storeID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list sizes")
	}
	dtos := make([]OptionDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, *NewSizeDTO(&rows[i]))
	}
	return dtos, nil
}

// UpdateSize replaces the size's name and value.
func (s *service) UpdateSize(ctx context.Context, ownerID string, storeID, sizeID uuid.UUID, input OptionInput) (*OptionDTO, error) {
	if err := validateOptionInput(input); err != nil {
		return nil, err
	}
	if err := s.stores.RequireOwned(ctx, ownerID, storeID); err != nil {
		return nil, err
	}

	row, err := s.loadSize(ctx, storeID, sizeID)
	if err != nil {
		return nil, err
	}
	row.Name = strings.TrimSpace(input.Name)
	row.Value = strings.TrimSpace(input.Value)

	updated, err := s.repo.UpdateSize(ctx, row)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update size")
	}
	return NewSizeDTO(updated), nil
}

// DeleteSize removes a size unless variations still reference it.
func (s *service) DeleteSize(ctx context.Context, ownerID string, storeID, sizeID uuid.UUID) error {
	if err := s.stores.RequireOwned(ctx, ownerID, storeID); err != nil {
		return err
	}
	if _, err := s.loadSize(ctx, storeID, sizeID); err != nil {
		return err
	}

	count, err := s.repo.CountVariationsBySize(ctx, sizeID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: count variations")
	}
	if count > 0 {
		return pkgerrors.New(pkgerrors.CodeConflict, "size is referenced by product variations").
			WithDetails(map[string]any{"variations": count})
	}

	if err := s.repo.DeleteSize(ctx, sizeID); err != nil {
		if db.IsForeignKeyViolation(err) {
			return pkgerrors.New(pkgerrors.CodeConflict, "size is referenced by product variations")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete size")
	}
	return nil
}

func (s *service) loadBillboard(ctx context.Context, storeID, billboardID uuid.UUID) (*models.Billboard, error) {
	row, err := s.repo.FindBillboard(ctx, billboardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "billboard not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load billboard")
	}
	if row.StoreID != storeID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "billboard not found")
	}
	return row, nil
}

func (s *service) loadCategory(ctx context.Context, storeID, categoryID uuid.UUID) (*models.Category, error) {
	row, err := s.repo.FindCategory(ctx, categoryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load category")
	}
	if row.StoreID != storeID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
	}
	return row, nil
}

func (s *service) loadColor(ctx context.Context, storeID, colorID uuid.UUID) (*models.Color, error) {
	row, err := s.repo.FindColor(ctx, colorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "color not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load color")
	}
	if row.StoreID != storeID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "color not found")
	}
	return row, nil
}

func (s *service) loadSize(ctx context.Context, storeID, sizeID uuid.UUID) (*models.Size, error) {
	row, err := s.repo.FindSize(ctx, sizeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "size not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load size")
	}
	if row.StoreID != storeID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "size not found")
	}
	return row, nil
}

func validateBillboardInput(input BillboardInput) error {
	if strings.TrimSpace(input.Label) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "label is required")
	}
	if strings.TrimSpace(input.ImageURL) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "image_url is required")
	}
	return nil
}

func validateCategoryInput(input CategoryInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if input.BillboardID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "billboard_id is required")
	}
	return nil
}

func validateOptionInput(input OptionInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if strings.TrimSpace(input.Value) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "value is required")
	}
	return nil
}

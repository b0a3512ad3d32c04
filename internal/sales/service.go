package sale

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/boutiquehq/boutique-backend/internal/stock"
	"github.com/boutiquehq/boutique-backend/pkg/db"
	"github.com/boutiquehq/boutique-backend/pkg/db/models"
	"github.com/boutiquehq/boutique-backend/pkg/enums"
	pkgerrors "github.com/boutiquehq/boutique-backend/pkg/errors"
)

// Service records in-person sales from the dashboard. A sale decrements
// stock at creation time; deleting one is a bookkeeping correction and does
// not restock.
type Service interface {
	CreateSale(ctx context.Context, ownerID string, storeID uuid.UUID, input CreateSaleInput) (*SaleDTO, error)
	ListSales(ctx context.Context, ownerID string, storeID uuid.UUID) ([]SaleDTO, error)
	DeleteSale(ctx context.Context, ownerID string, storeID, saleID uuid.UUID) error
	TotalRevenue(ctx context.Context, ownerID string, storeID uuid.UUID) (decimal.Decimal, error)
	SalesCount(ctx context.Context, ownerID string, storeID uuid.UUID) (int64, error)
}

// SaleItemInput is one line of a sale payload. UnitPrice overrides the
// product's current price when set; otherwise the current price is captured.
type SaleItemInput struct {
	ProductID   uuid.UUID
	VariationID *uuid.UUID
	Quantity    int
	UnitPrice   *decimal.Decimal
}

// CreateSaleInput holds the validated payload to record a sale.
type CreateSaleInput struct {
	CustomerName string
	IsPaid       bool
	Items        []SaleItemInput
}

type storeGuard interface {
	RequireOwned(ctx context.Context, ownerID string, storeID uuid.UUID) error
}

type service struct {
	repo     *Repository
	dbClient *db.Client
	stores   storeGuard
}

// NewService constructs a sale service instance.
func NewService(repo *Repository, dbClient *db.Client, stores storeGuard) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("sale repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	if stores == nil {
		return nil, fmt.Errorf("store guard required")
	}
	return &service{repo: repo, dbClient: dbClient, stores: stores}, nil
}

// CreateSale inserts the sale with its items and decrements stock for each
// line inside one transaction. Any shortfall rolls back the whole sale.
func (s *service) CreateSale(ctx context.Context, ownerID string, storeID uuid.UUID, input CreateSaleInput) (*SaleDTO, error) {
	if err := s.stores.RequireOwned(ctx, ownerID, storeID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.CustomerName) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer_name is required")
	}
	if len(input.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one item is required")
	}

	saleID := uuid.New()
	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		items := make([]models.SaleItem, 0, len(input.Items))
		for _, line := range input.Items {
			item, err := s.resolveLine(ctx, txRepo, storeID, saleID, line)
			if err != nil {
				return err
			}
			items = append(items, *item)
		}

		row := &models.Sale{
			ID:           saleID,
			StoreID:      storeID,
			CustomerName: strings.TrimSpace(input.CustomerName),
			IsPaid:       input.IsPaid,
			Items:        items,
		}
		if _, err := txRepo.Create(ctx, row); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert sale")
		}

		for _, item := range items {
			if item.VariationID != nil {
				if err := stock.DecrementVariationTx(ctx, tx, *item.VariationID, item.Quantity); err != nil {
					return err
				}
			} else {
				if err := stock.DecrementProductTx(ctx, tx, item.ProductID, item.Quantity); err != nil {
					return err
				}
			}
		}
		return nil
	}); err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create sale")
	}

	created, err := s.repo.FindByID(ctx, saleID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload sale")
	}
	return NewSaleDTO(created), nil
}

func (s *service) ListSales(ctx context.Context, ownerID string, storeID uuid.UUID) ([]SaleDTO, error) {
	if err := s.stores.RequireOwned(ctx, ownerID, storeID); err != nil {
		return nil, err
	}
	rows, err := s.repo.ListByStore(ctx, storeID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list sales")
	}
	dtos := make([]SaleDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, *NewSaleDTO(&rows[i]))
	}
	return dtos, nil
}

// DeleteSale removes the sale and its items without restocking.
func (s *service) DeleteSale(ctx context.Context, ownerID string, storeID, saleID uuid.UUID) error {
	if err := s.stores.RequireOwned(ctx, ownerID, storeID); err != nil {
		return err
	}

	row, err := s.repo.FindByID(ctx, saleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "sale not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load sale")
	}
	if row.StoreID != storeID {
		return pkgerrors.New(pkgerrors.CodeNotFound, "sale not found")
	}

	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		return s.repo.WithTx(tx).Delete(ctx, saleID)
	}); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete sale")
	}
	return nil
}

func (s *service) TotalRevenue(ctx context.Context, ownerID string, storeID uuid.UUID) (decimal.Decimal, error) {
	if err := s.stores.RequireOwned(ctx, ownerID, storeID); err != nil {
		return decimal.Zero, err
	}
	total, err := s.repo.TotalRevenue(ctx, storeID)
	if err != nil {
		return decimal.Zero, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: total revenue")
	}
	return total, nil
}

func (s *service) SalesCount(ctx context.Context, ownerID string, storeID uuid.UUID) (int64, error) {
	if err := s.stores.RequireOwned(ctx, ownerID, storeID); err != nil {
		return 0, err
	}
	count, err := s.repo.CountByStore(ctx, storeID)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: sales count")
	}
	return count, nil
}

// resolveLine validates one payload line against the catalog and snapshots
// the unit price.
func (s *service) resolveLine(ctx context.Context, txRepo *Repository, storeID, saleID uuid.UUID, line SaleItemInput) (*models.SaleItem, error) {
	if line.Quantity <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}

	product, err := txRepo.FindProduct(ctx, line.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "product not found in store")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	if product.StoreID != storeID {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product not found in store")
	}

	if product.Kind == enums.ProductKindVariant {
		if line.VariationID == nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "variation is required for variant products")
		}
		variation, err := txRepo.FindVariation(ctx, *line.VariationID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.New(pkgerrors.CodeValidation, "variation not found")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load variation")
		}
		if variation.ProductID != product.ID {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "variation does not belong to product")
		}
	} else if line.VariationID != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "flat products have no variations")
	}

	unitPrice := product.Price
	if line.UnitPrice != nil {
		if line.UnitPrice.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "unit_price must be non-negative")
		}
		unitPrice = *line.UnitPrice
	}

	return &models.SaleItem{
		ID:          uuid.New(),
		SaleID:      saleID,
		ProductID:   line.ProductID,
		VariationID: line.VariationID,
		Quantity:    line.Quantity,
		UnitPrice:   unitPrice,
	}, nil
}

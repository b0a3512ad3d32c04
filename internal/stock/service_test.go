package stock

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/boutiquehq/boutique-backend/pkg/db/models"
	"github.com/boutiquehq/boutique-backend/pkg/enums"
	pkgerrors "github.com/boutiquehq/boutique-backend/pkg/errors"
)

type allowAllGuard struct{}

func (allowAllGuard) RequireOwned(ctx context.Context, ownerID string, storeID uuid.UUID) error {
	return nil
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:stock_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.Store{}, &models.Product{}, &models.ProductVariation{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newTestService(t *testing.T) (Service, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	svc, err := NewService(NewRepository(db), allowAllGuard{})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc, db
}

func seedVariantProduct(t *testing.T, db *gorm.DB, storeID uuid.UUID, stock int) (productID, variationID uuid.UUID) {
	t.Helper()
	productID, variationID = uuid.New(), uuid.New()
	product := models.Product{
		ID: productID, StoreID: storeID, CategoryID: uuid.New(),
		Name: "Dress", Price: decimal.NewFromInt(50), Kind: enums.ProductKindVariant,
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}
	variation := models.ProductVariation{
		ID: variationID, ProductID: productID,
		ColorID: uuid.New(), SizeID: uuid.New(), Stock: stock,
	}
	if err := db.Create(&variation).Error; err != nil {
		t.Fatalf("seed variation: %v", err)
	}
	return productID, variationID
}

func seedFlatProduct(t *testing.T, db *gorm.DB, storeID uuid.UUID, stock int) uuid.UUID {
	t.Helper()
	productID := uuid.New()
	product := models.Product{
		ID: productID, StoreID: storeID, CategoryID: uuid.New(),
		Name: "Shirt", Price: decimal.NewFromInt(25), Kind: enums.ProductKindFlat,
		FlatStock: stock,
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return productID
}

func TestAdjustVariationStock(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	storeID := uuid.New()
	_, variationID := seedVariantProduct(t, db, storeID, 5)

	after, err := svc.AdjustVariation(ctx, "user_1", storeID, variationID, -3)
	if err != nil {
		t.Fatalf("decrement: %v", err)
	}
	if after.Stock != 2 {
		t.Fatalf("expected stock 2, got %d", after.Stock)
	}

	_, err = svc.AdjustVariation(ctx, "user_1", storeID, variationID, -3)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeInsufficientStock {
		t.Fatalf("expected insufficient stock, got %v", err)
	}

	var row models.ProductVariation
	if err := db.First(&row, "id = ?", variationID).Error; err != nil {
		t.Fatalf("reload variation: %v", err)
	}
	if row.Stock != 2 {
		t.Fatalf("expected stock unchanged at 2 after rejection, got %d", row.Stock)
	}

	after, err = svc.AdjustVariation(ctx, "user_1", storeID, variationID, 4)
	if err != nil {
		t.Fatalf("increment: %v", err)
	}
	if after.Stock != 6 {
		t.Fatalf("expected stock 6, got %d", after.Stock)
	}
}

func TestAdjustVariationScoping(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	storeID := uuid.New()
	_, variationID := seedVariantProduct(t, db, storeID, 5)

	_, err := svc.AdjustVariation(ctx, "user_1", storeID, uuid.New(), -1)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for unknown variation, got %v", err)
	}

	_, err = svc.AdjustVariation(ctx, "user_1", uuid.New(), variationID, -1)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for foreign store, got %v", err)
	}
}

func TestAdjustProductStock(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	storeID := uuid.New()
	flatID := seedFlatProduct(t, db, storeID, 2)
	variantID, _ := seedVariantProduct(t, db, storeID, 5)

	after, err := svc.AdjustProduct(ctx, "user_1", storeID, flatID, 3)
	if err != nil {
		t.Fatalf("increment flat stock: %v", err)
	}
	if after.FlatStock != 5 {
		t.Fatalf("expected flat stock 5, got %d", after.FlatStock)
	}

	_, err = svc.AdjustProduct(ctx, "user_1", storeID, flatID, -6)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeInsufficientStock {
		t.Fatalf("expected insufficient stock, got %v", err)
	}

	_, err = svc.AdjustProduct(ctx, "user_1", storeID, variantID, -1)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for variant product, got %v", err)
	}
}

func TestDecrementTxHelpers(t *testing.T) {
	_, db := newTestService(t)
	ctx := context.Background()
	storeID := uuid.New()
	flatID := seedFlatProduct(t, db, storeID, 4)
	_, variationID := seedVariantProduct(t, db, storeID, 1)

	if err := db.Transaction(func(tx *gorm.DB) error {
		if err := DecrementProductTx(ctx, tx, flatID, 4); err != nil {
			return err
		}
		return DecrementVariationTx(ctx, tx, variationID, 1)
	}); err != nil {
		t.Fatalf("decrement in tx: %v", err)
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		return DecrementVariationTx(ctx, tx, variationID, 1)
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeInsufficientStock {
		t.Fatalf("expected insufficient stock, got %v", err)
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		return DecrementProductTx(ctx, tx, uuid.New(), 1)
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		return DecrementVariationTx(ctx, tx, variationID, 0)
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for zero quantity, got %v", err)
	}
}

func TestDashboardCounts(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	storeID := uuid.New()

	seedFlatProduct(t, db, storeID, 3)
	seedVariantProduct(t, db, storeID, 2)

	// Empty variation and an archived product should not count as in stock.
	seedVariantProduct(t, db, storeID, 0)
	archivedID := seedFlatProduct(t, db, storeID, 8)
	if err := db.Model(&models.Product{}).Where("id = ?", archivedID).
		Update("is_archived", true).Error; err != nil {
		t.Fatalf("archive product: %v", err)
	}

	// Another store's rows stay out of the aggregates.
	seedFlatProduct(t, db, uuid.New(), 100)

	total, err := svc.StockCount(ctx, "user_1", storeID)
	if err != nil {
		t.Fatalf("stock count: %v", err)
	}
	if total != 13 {
		t.Fatalf("expected 13 units (3 flat + 2 variant + 8 archived), got %d", total)
	}

	inStock, err := svc.ProductsInStock(ctx, "user_1", storeID)
	if err != nil {
		t.Fatalf("products in stock: %v", err)
	}
	if inStock != 2 {
		t.Fatalf("expected 2 products in stock, got %d", inStock)
	}
}

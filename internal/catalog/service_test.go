package catalog

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

func (allowAllGuard) RequireOwned(context.Context, string, uuid.UUID) error { return nil }

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:catalog_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Billboard{},
		&models.Category{},
		&models.Color{},
		&models.Size{},
		&models.Product{},
		&models.ProductVariation{},
	); err != nil {
		t.Fatalf("migrate catalog: %v", err)
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

func TestBillboardCRUD(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	storeID := uuid.New()

	created, err := svc.CreateBillboard(ctx, "user_1", storeID, BillboardInput{Label: "Summer", ImageURL: "https://cdn/x.png"})
	if err != nil {
		t.Fatalf("create billboard: %v", err)
	}

	updated, err := svc.UpdateBillboard(ctx, "user_1", storeID, created.ID, BillboardInput{Label: "Autumn", ImageURL: "https://cdn/y.png"})
	if err != nil {
		t.Fatalf("update billboard: %v", err)
	}
	if updated.Label != "Autumn" {
		t.Fatalf("expected updated label, got %q", updated.Label)
	}

	rows, err := svc.ListBillboards(ctx, storeID)
	if err != nil {
		t.Fatalf("list billboards: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 billboard, got %d", len(rows))
	}

	if err := svc.DeleteBillboard(ctx, "user_1", storeID, created.ID); err != nil {
		t.Fatalf("delete billboard: %v", err)
	}

	if _, err := svc.GetBillboard(ctx, storeID, created.ID); pkgerrors.As(err) == nil {
		t.Fatal("expected not found after delete")
	}
}

func TestBillboardDeleteBlockedByCategories(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	storeID := uuid.New()

	billboard, err := svc.CreateBillboard(ctx, "user_1", storeID, BillboardInput{Label: "Hero", ImageURL: "https://cdn/h.png"})
	if err != nil {
		t.Fatalf("create billboard: %v", err)
	}
	if _, err := svc.CreateCategory(ctx, "user_1", storeID, CategoryInput{Name: "Dresses", BillboardID: billboard.ID}); err != nil {
		t.Fatalf("create category: %v", err)
	}

	err = svc.DeleteBillboard(ctx, "user_1", storeID, billboard.ID)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict error, got %v", err)
	}
}

func TestCategoryRequiresStoreBillboard(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	storeID := uuid.New()
	otherStoreID := uuid.New()

	foreign, err := svc.CreateBillboard(ctx, "user_1", otherStoreID, BillboardInput{Label: "Other", ImageURL: "https://cdn/o.png"})
	if err != nil {
		t.Fatalf("create billboard: %v", err)
	}

	_, err = svc.CreateCategory(ctx, "user_1", storeID, CategoryInput{Name: "Dresses", BillboardID: foreign.ID})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for cross-store billboard, got %v", err)
	}
}

func TestCategoryDeleteBlockedByProducts(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	storeID := uuid.New()

	billboard, err := svc.CreateBillboard(ctx, "user_1", storeID, BillboardInput{Label: "Hero", ImageURL: "https://cdn/h.png"})
	if err != nil {
		t.Fatalf("create billboard: %v", err)
	}
	category, err := svc.CreateCategory(ctx, "user_1", storeID, CategoryInput{Name: "Dresses", BillboardID: billboard.ID})
	if err != nil {
		t.Fatalf("create category: %v", err)
	}

	product := &models.Product{
		ID:         uuid.New(),
		StoreID:    storeID,
		CategoryID: category.ID,
		Name:       "Linen Dress",
		Price:      decimal.NewFromInt(80),
		Kind:       enums.ProductKindFlat,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}

	err = svc.DeleteCategory(ctx, "user_1", storeID, category.ID)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict error, got %v", err)
	}

	if err := db.Delete(product).Error; err != nil {
		t.Fatalf("remove product: %v", err)
	}
	if err := svc.DeleteCategory(ctx, "user_1", storeID, category.ID); err != nil {
		t.Fatalf("delete category after clearing products: %v", err)
	}
}

func TestColorAndSizeDeleteBlockedByVariations(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	storeID := uuid.New()

	color, err := svc.CreateColor(ctx, "user_1", storeID, OptionInput{Name: "Navy", Value: "#001f3f"})
	if err != nil {
		t.Fatalf("create color: %v", err)
	}
	size, err := svc.CreateSize(ctx, "user_1", storeID, OptionInput{Name: "Medium", Value: "M"})
	if err != nil {
		t.Fatalf("create size: %v", err)
	}

	variation := &models.ProductVariation{
		ID:        uuid.New(),
		ProductID: uuid.New(),
		ColorID:   color.ID,
		SizeID:    size.ID,
		Stock:     3,
	}
	if err := db.Create(variation).Error; err != nil {
		t.Fatalf("seed variation: %v", err)
	}

	if err := svc.DeleteColor(ctx, "user_1", storeID, color.ID); pkgerrors.As(err) == nil || pkgerrors.As(err).Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict deleting referenced color, got %v", err)
	}
	if err := svc.DeleteSize(ctx, "user_1", storeID, size.ID); pkgerrors.As(err) == nil || pkgerrors.As(err).Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict deleting referenced size, got %v", err)
	}

	if err := db.Delete(variation).Error; err != nil {
		t.Fatalf("remove variation: %v", err)
	}
	if err := svc.DeleteColor(ctx, "user_1", storeID, color.ID); err != nil {
		t.Fatalf("delete color: %v", err)
	}
	if err := svc.DeleteSize(ctx, "user_1", storeID, size.ID); err != nil {
		t.Fatalf("delete size: %v", err)
	}
}

func TestOptionValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	storeID := uuid.New()

	_, err := svc.CreateColor(ctx, "user_1", storeID, OptionInput{Name: "", Value: "#fff"})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	_, err = svc.CreateSize(ctx, "user_1", storeID, OptionInput{Name: "Small", Value: " "})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

package product

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/boutiquehq/boutique-backend/pkg/db/models"
	"github.com/boutiquehq/boutique-backend/pkg/enums"
	"github.com/boutiquehq/boutique-backend/pkg/pagination"
)

func seedListProducts(t *testing.T, fix *testFixture) (oldest, middle, newest uuid.UUID) {
	t.Helper()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	oldest, middle, newest = uuid.New(), uuid.New(), uuid.New()

	rows := []models.Product{
		{
			ID: oldest, StoreID: fix.storeID, CategoryID: fix.categoryID,
			Name: "Oldest", Price: decimal.NewFromInt(10), Kind: enums.ProductKindFlat,
			FlatStock: 3, CreatedAt: base,
		},
		{
			ID: middle, StoreID: fix.storeID, CategoryID: fix.categoryID,
			Name: "Middle", Price: decimal.NewFromInt(20), Kind: enums.ProductKindVariant,
			IsFeatured: true, CreatedAt: base.Add(time.Minute),
		},
		{
			ID: newest, StoreID: fix.storeID, CategoryID: fix.categoryID,
			Name: "Newest", Price: decimal.NewFromInt(30), Kind: enums.ProductKindFlat,
			IsArchived: true, CreatedAt: base.Add(2 * time.Minute),
		},
	}
	if err := fix.conn().Create(&rows).Error; err != nil {
		t.Fatalf("seed products: %v", err)
	}

	variation := models.ProductVariation{
		ID: uuid.New(), ProductID: middle, ColorID: fix.redID, SizeID: fix.smallID, Stock: 4,
	}
	if err := fix.conn().Create(&variation).Error; err != nil {
		t.Fatalf("seed variation: %v", err)
	}
	return oldest, middle, newest
}

func TestListProductsExcludesArchivedByDefault(t *testing.T) {
	fix := newTestFixture(t)
	ctx := context.Background()
	oldest, middle, _ := seedListProducts(t, fix)

	result, err := fix.svc.ListProducts(ctx, "user_1", ListProductsInput{StoreID: fix.storeID})
	if err != nil {
		t.Fatalf("list products: %v", err)
	}
	if len(result.Products) != 2 {
		t.Fatalf("expected 2 active products, got %d", len(result.Products))
	}
	if result.Products[0].ID != middle || result.Products[1].ID != oldest {
		t.Fatalf("expected newest-first ordering, got %v then %v", result.Products[0].ID, result.Products[1].ID)
	}
	if result.NextCursor != "" {
		t.Fatalf("expected no next cursor, got %q", result.NextCursor)
	}

	all, err := fix.svc.ListProducts(ctx, "user_1", ListProductsInput{
		StoreID: fix.storeID,
		Filters: ProductListFilters{IncludeArchived: true},
	})
	if err != nil {
		t.Fatalf("list all products: %v", err)
	}
	if len(all.Products) != 3 {
		t.Fatalf("expected 3 products with archived included, got %d", len(all.Products))
	}
}

func TestListProductsFilters(t *testing.T) {
	fix := newTestFixture(t)
	ctx := context.Background()
	_, middle, _ := seedListProducts(t, fix)

	featured := true
	byFeatured, err := fix.svc.ListProducts(ctx, "user_1", ListProductsInput{
		StoreID: fix.storeID,
		Filters: ProductListFilters{IsFeatured: &featured},
	})
	if err != nil {
		t.Fatalf("list featured: %v", err)
	}
	if len(byFeatured.Products) != 1 || byFeatured.Products[0].ID != middle {
		t.Fatalf("expected only the featured product, got %+v", byFeatured.Products)
	}

	byColor, err := fix.svc.ListProducts(ctx, "user_1", ListProductsInput{
		StoreID: fix.storeID,
		Filters: ProductListFilters{ColorID: &fix.redID},
	})
	if err != nil {
		t.Fatalf("list by color: %v", err)
	}
	if len(byColor.Products) != 1 || byColor.Products[0].ID != middle {
		t.Fatalf("expected only the product with a red variation, got %+v", byColor.Products)
	}

	bySize, err := fix.svc.ListProducts(ctx, "user_1", ListProductsInput{
		StoreID: fix.storeID,
		Filters: ProductListFilters{SizeID: &fix.largeID},
	})
	if err != nil {
		t.Fatalf("list by size: %v", err)
	}
	if len(bySize.Products) != 0 {
		t.Fatalf("expected no products in size large, got %d", len(bySize.Products))
	}
}

func TestListProductsCursorPagination(t *testing.T) {
	fix := newTestFixture(t)
	ctx := context.Background()
	oldest, middle, _ := seedListProducts(t, fix)

	first, err := fix.svc.ListProducts(ctx, "user_1", ListProductsInput{
		StoreID:    fix.storeID,
		Pagination: pagination.Params{Limit: 1},
	})
	if err != nil {
		t.Fatalf("first page: %v", err)
	}
	if len(first.Products) != 1 || first.Products[0].ID != middle {
		t.Fatalf("expected newest active product first, got %+v", first.Products)
	}
	if first.NextCursor == "" {
		t.Fatal("expected a next cursor on the first page")
	}

	second, err := fix.svc.ListProducts(ctx, "user_1", ListProductsInput{
		StoreID:    fix.storeID,
		Pagination: pagination.Params{Limit: 1, Cursor: first.NextCursor},
	})
	if err != nil {
		t.Fatalf("second page: %v", err)
	}
	if len(second.Products) != 1 || second.Products[0].ID != oldest {
		t.Fatalf("expected oldest product on second page, got %+v", second.Products)
	}
	if second.NextCursor != "" {
		t.Fatalf("expected no cursor after final page, got %q", second.NextCursor)
	}
}

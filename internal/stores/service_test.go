package store

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/boutiquehq/boutique-backend/pkg/db/models"
	pkgerrors "github.com/boutiquehq/boutique-backend/pkg/errors"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:stores_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.Store{}); err != nil {
		t.Fatalf("migrate stores: %v", err)
	}
	return db
}

func newTestService(t *testing.T) (Service, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	svc, err := NewService(NewRepository(db))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc, db
}

func TestCreateAndGetStore(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateStore(ctx, "user_1", CreateStoreInput{Name: "  Boutique  "})
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	if created.Name != "Boutique" {
		t.Fatalf("expected trimmed name, got %q", created.Name)
	}

	got, err := svc.GetStore(ctx, "user_1", created.ID)
	if err != nil {
		t.Fatalf("get store: %v", err)
	}
	if got.ID != created.ID {
		t.Fatalf("id mismatch: %s vs %s", got.ID, created.ID)
	}
}

func TestCreateStoreValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateStore(ctx, "user_1", CreateStoreInput{Name: "   "})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}

	_, err = svc.CreateStore(ctx, "", CreateStoreInput{Name: "Boutique"})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized error, got %v", err)
	}
}

func TestGetStoreForbiddenForOtherOwner(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateStore(ctx, "user_1", CreateStoreInput{Name: "Boutique"})
	if err != nil {
		t.Fatalf("create store: %v", err)
	}

	_, err = svc.GetStore(ctx, "user_2", created.ID)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden error, got %v", err)
	}

	if err := svc.RequireOwned(ctx, "user_2", created.ID); err == nil {
		t.Fatal("expected RequireOwned to reject other owner")
	}
	if err := svc.RequireOwned(ctx, "user_1", created.ID); err != nil {
		t.Fatalf("expected RequireOwned to pass for owner: %v", err)
	}
}

func TestUpdateAndDeleteStore(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateStore(ctx, "user_1", CreateStoreInput{Name: "Boutique"})
	if err != nil {
		t.Fatalf("create store: %v", err)
	}

	name := "Renamed"
	updated, err := svc.UpdateStore(ctx, "user_1", created.ID, UpdateStoreInput{Name: &name})
	if err != nil {
		t.Fatalf("update store: %v", err)
	}
	if updated.Name != "Renamed" {
		t.Fatalf("expected renamed store, got %q", updated.Name)
	}

	if err := svc.DeleteStore(ctx, "user_1", created.ID); err != nil {
		t.Fatalf("delete store: %v", err)
	}
	var count int64
	if err := db.Model(&models.Store{}).Count(&count).Error; err != nil {
		t.Fatalf("count stores: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected 0 stores, got %d", count)
	}

	_, err = svc.GetStore(ctx, "user_1", created.ID)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}

func TestListStoresScopedToOwner(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.CreateStore(ctx, "user_1", CreateStoreInput{Name: "First"}); err != nil {
		t.Fatalf("create store: %v", err)
	}
	if _, err := svc.CreateStore(ctx, "user_1", CreateStoreInput{Name: "Second"}); err != nil {
		t.Fatalf("create store: %v", err)
	}
	if _, err := svc.CreateStore(ctx, "user_2", CreateStoreInput{Name: "Other"}); err != nil {
		t.Fatalf("create store: %v", err)
	}

	mine, err := svc.ListStores(ctx, "user_1")
	if err != nil {
		t.Fatalf("list stores: %v", err)
	}
	if len(mine) != 2 {
		t.Fatalf("expected 2 stores, got %d", len(mine))
	}
}

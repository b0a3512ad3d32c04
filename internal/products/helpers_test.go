package product

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/boutiquehq/boutique-backend/internal/catalog"
	"github.com/boutiquehq/boutique-backend/pkg/config"
	"github.com/boutiquehq/boutique-backend/pkg/db"
	"github.com/boutiquehq/boutique-backend/pkg/db/models"
)

type allowAllGuard struct{}

func (allowAllGuard) RequireOwned(ctx context.Context, ownerID string, storeID uuid.UUID) error {
	return nil
}

type testFixture struct {
	svc     Service
	client  *db.Client
	storeID uuid.UUID
	otherID uuid.UUID
	// catalog rows seeded for storeID
	categoryID uuid.UUID
	redID      uuid.UUID
	blueID     uuid.UUID
	smallID    uuid.UUID
	largeID    uuid.UUID
	// catalog rows seeded for otherID
	otherCategoryID uuid.UUID
	otherColorID    uuid.UUID
}

func newTestFixture(t *testing.T) *testFixture {
	t.Helper()

	cfg := config.DBConfig{
		DSN:    "file:products_" + uuid.NewString() + "?mode=memory&cache=shared",
		Driver: "sqlite",
	}
	client, err := db.New(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })

	conn := client.DB()
	if err := conn.AutoMigrate(
		&models.Store{},
		&models.Billboard{},
		&models.Category{},
		&models.Color{},
		&models.Size{},
		&models.Product{},
		&models.ProductVariation{},
		&models.Image{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	fix := &testFixture{
		client:          client,
		storeID:         uuid.New(),
		otherID:         uuid.New(),
		categoryID:      uuid.New(),
		redID:           uuid.New(),
		blueID:          uuid.New(),
		smallID:         uuid.New(),
		largeID:         uuid.New(),
		otherCategoryID: uuid.New(),
		otherColorID:    uuid.New(),
	}

	stores := []models.Store{
		{ID: fix.storeID, Name: "Boutique", OwnerID: "user_1"},
		{ID: fix.otherID, Name: "Other", OwnerID: "user_2"},
	}
	if err := conn.Create(&stores).Error; err != nil {
		t.Fatalf("seed stores: %v", err)
	}

	billboardID := uuid.New()
	billboards := []models.Billboard{
		{ID: billboardID, StoreID: fix.storeID, Label: "Summer", ImageURL: "https://img/summer.png"},
	}
	if err := conn.Create(&billboards).Error; err != nil {
		t.Fatalf("seed billboards: %v", err)
	}

	categories := []models.Category{
		{ID: fix.categoryID, StoreID: fix.storeID, BillboardID: billboardID, Name: "Dresses"},
		{ID: fix.otherCategoryID, StoreID: fix.otherID, BillboardID: billboardID, Name: "Elsewhere"},
	}
	if err := conn.Create(&categories).Error; err != nil {
		t.Fatalf("seed categories: %v", err)
	}

	colors := []models.Color{
		{ID: fix.redID, StoreID: fix.storeID, Name: "Red", Value: "#FF0000"},
		{ID: fix.blueID, StoreID: fix.storeID, Name: "Blue", Value: "#0000FF"},
		{ID: fix.otherColorID, StoreID: fix.otherID, Name: "Green", Value: "#00FF00"},
	}
	if err := conn.Create(&colors).Error; err != nil {
		t.Fatalf("seed colors: %v", err)
	}

	sizes := []models.Size{
		{ID: fix.smallID, StoreID: fix.storeID, Name: "Small", Value: "S"},
		{ID: fix.largeID, StoreID: fix.storeID, Name: "Large", Value: "L"},
	}
	if err := conn.Create(&sizes).Error; err != nil {
		t.Fatalf("seed sizes: %v", err)
	}

	svc, err := NewService(NewRepository(conn), client, allowAllGuard{}, catalog.NewRepository(conn))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	fix.svc = svc
	return fix
}

func (f *testFixture) conn() *gorm.DB {
	return f.client.DB()
}

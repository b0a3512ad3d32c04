package order

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/boutiquehq/boutique-backend/pkg/db/models"
)

func setupOrdersRepoDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file:orders_repo_"+uuid.NewString()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&models.Store{}, &models.Order{}, &models.OrderItem{}))
	return conn
}

func TestRepositoryFindByIDPreloadsItems(t *testing.T) {
	conn := setupOrdersRepoDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	storeID := uuid.New()
	created, err := repo.Create(ctx, &models.Order{
		ID:      uuid.New(),
		StoreID: storeID,
		Phone:   "555-0100",
		Items: []models.OrderItem{
			{ID: uuid.New(), ProductID: uuid.New(), Quantity: 2},
			{ID: uuid.New(), ProductID: uuid.New(), Quantity: 1},
		},
	})
	require.NoError(t, err)

	found, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, storeID, found.StoreID)
	assert.Len(t, found.Items, 2)
}

func TestRepositoryListByStoreNewestFirst(t *testing.T) {
	conn := setupOrdersRepoDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	storeID := uuid.New()
	base := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	older := models.Order{ID: uuid.New(), StoreID: storeID, CreatedAt: base}
	newer := models.Order{ID: uuid.New(), StoreID: storeID, CreatedAt: base.Add(time.Hour)}
	foreign := models.Order{ID: uuid.New(), StoreID: uuid.New(), CreatedAt: base.Add(2 * time.Hour)}
	require.NoError(t, conn.Create(&[]models.Order{older, newer, foreign}).Error)

	rows, err := repo.ListByStore(ctx, storeID)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, newer.ID, rows[0].ID)
	assert.Equal(t, older.ID, rows[1].ID)
}

func TestRepositoryDeleteManyByStoreSkipsForeignIDs(t *testing.T) {
	conn := setupOrdersRepoDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	storeID := uuid.New()
	owned := models.Order{ID: uuid.New(), StoreID: storeID}
	foreign := models.Order{ID: uuid.New(), StoreID: uuid.New()}
	require.NoError(t, conn.Create(&[]models.Order{owned, foreign}).Error)
	require.NoError(t, conn.Create(&models.OrderItem{
		ID: uuid.New(), OrderID: owned.ID, ProductID: uuid.New(), Quantity: 1,
	}).Error)

	deleted, err := repo.DeleteManyByStore(ctx, storeID, []uuid.UUID{owned.ID, foreign.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	var orderCount, itemCount int64
	require.NoError(t, conn.Model(&models.Order{}).Count(&orderCount).Error)
	require.NoError(t, conn.Model(&models.OrderItem{}).Count(&itemCount).Error)
	assert.Equal(t, int64(1), orderCount)
	assert.Equal(t, int64(0), itemCount)
}

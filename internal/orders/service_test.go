package order

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/boutiquehq/boutique-backend/pkg/config"
	"github.com/boutiquehq/boutique-backend/pkg/db"
	"github.com/boutiquehq/boutique-backend/pkg/db/models"
	pkgerrors "github.com/boutiquehq/boutique-backend/pkg/errors"
)

type allowAllGuard struct{}

func (allowAllGuard) RequireOwned(ctx context.Context, ownerID string, storeID uuid.UUID) error {
	return nil
}

func newTestService(t *testing.T) (Service, *db.Client) {
	t.Helper()
	cfg := config.DBConfig{
		DSN:    "file:orders_" + uuid.NewString() + "?mode=memory&cache=shared",
		Driver: "sqlite",
	}
	client, err := db.New(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })

	if err := client.DB().AutoMigrate(&models.Order{}, &models.OrderItem{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	svc, err := NewService(NewRepository(client.DB()), client, allowAllGuard{})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc, client
}

func seedOrder(t *testing.T, client *db.Client, storeID uuid.UUID, createdAt time.Time, items int) uuid.UUID {
	t.Helper()
	orderID := uuid.New()
	row := models.Order{
		ID:        orderID,
		StoreID:   storeID,
		Phone:     "",
		Address:   "",
		CreatedAt: createdAt,
	}
	if err := client.DB().Create(&row).Error; err != nil {
		t.Fatalf("seed order: %v", err)
	}
	for i := 0; i < items; i++ {
		item := models.OrderItem{
			ID:        uuid.New(),
			OrderID:   orderID,
			ProductID: uuid.New(),
			Quantity:  i + 1,
		}
		if err := client.DB().Create(&item).Error; err != nil {
			t.Fatalf("seed order item: %v", err)
		}
	}
	return orderID
}

func TestListOrdersNewestFirst(t *testing.T) {
	svc, client := newTestService(t)
	ctx := context.Background()
	storeID := uuid.New()

	base := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	older := seedOrder(t, client, storeID, base, 2)
	newer := seedOrder(t, client, storeID, base.Add(time.Hour), 1)
	seedOrder(t, client, uuid.New(), base, 1)

	orders, err := svc.ListOrders(ctx, "user_1", storeID)
	if err != nil {
		t.Fatalf("list orders: %v", err)
	}
	if len(orders) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(orders))
	}
	if orders[0].ID != newer || orders[1].ID != older {
		t.Fatalf("expected newest first, got %v then %v", orders[0].ID, orders[1].ID)
	}
	if len(orders[1].Items) != 2 {
		t.Fatalf("expected 2 items on the older order, got %d", len(orders[1].Items))
	}
}

func TestGetOrderScopedToStore(t *testing.T) {
	svc, client := newTestService(t)
	ctx := context.Background()
	storeID := uuid.New()
	orderID := seedOrder(t, client, storeID, time.Now(), 1)

	got, err := svc.GetOrder(ctx, "user_1", storeID, orderID)
	if err != nil {
		t.Fatalf("get order: %v", err)
	}
	if got.ID != orderID || len(got.Items) != 1 {
		t.Fatalf("unexpected order %+v", got)
	}

	_, err = svc.GetOrder(ctx, "user_1", uuid.New(), orderID)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for foreign store, got %v", err)
	}
}

func TestDeleteOrderRemovesItems(t *testing.T) {
	svc, client := newTestService(t)
	ctx := context.Background()
	storeID := uuid.New()
	orderID := seedOrder(t, client, storeID, time.Now(), 3)

	if err := svc.DeleteOrder(ctx, "user_1", storeID, orderID); err != nil {
		t.Fatalf("delete order: %v", err)
	}

	var itemCount int64
	if err := client.DB().Model(&models.OrderItem{}).Count(&itemCount).Error; err != nil {
		t.Fatalf("count items: %v", err)
	}
	if itemCount != 0 {
		t.Fatalf("expected no order items left, got %d", itemCount)
	}

	err := svc.DeleteOrder(ctx, "user_1", storeID, orderID)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
}

func TestDeleteOrdersScopedToStore(t *testing.T) {
	svc, client := newTestService(t)
	ctx := context.Background()
	storeID := uuid.New()

	first := seedOrder(t, client, storeID, time.Now(), 1)
	second := seedOrder(t, client, storeID, time.Now(), 1)
	foreign := seedOrder(t, client, uuid.New(), time.Now(), 1)

	deleted, err := svc.DeleteOrders(ctx, "user_1", storeID, []uuid.UUID{first, second, foreign, uuid.New()})
	if err != nil {
		t.Fatalf("delete orders: %v", err)
	}
	if deleted != 2 {
		t.Fatalf("expected 2 deleted, got %d", deleted)
	}

	var remaining int64
	if err := client.DB().Model(&models.Order{}).Count(&remaining).Error; err != nil {
		t.Fatalf("count orders: %v", err)
	}
	if remaining != 1 {
		t.Fatalf("expected the foreign order to survive, got %d rows", remaining)
	}

	_, err = svc.DeleteOrders(ctx, "user_1", storeID, nil)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for empty id list, got %v", err)
	}
}

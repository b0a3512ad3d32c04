package payment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	orderpkg "github.com/boutiquehq/boutique-backend/internal/orders"
	"github.com/boutiquehq/boutique-backend/internal/stock"
	"github.com/boutiquehq/boutique-backend/pkg/db"
	"github.com/boutiquehq/boutique-backend/pkg/db/models"
	pkgerrors "github.com/boutiquehq/boutique-backend/pkg/errors"
	"github.com/boutiquehq/boutique-backend/pkg/logger"
	"github.com/boutiquehq/boutique-backend/pkg/redis"
)

const providerName = "payment"

// CompletedEvent is a verified checkout-completed notification from the
// payment provider.
type CompletedEvent struct {
	EventID string    `json:"event_id" validate:"required"`
	OrderID uuid.UUID `json:"order_id" validate:"required"`
	Phone   string    `json:"phone"`
	Address string    `json:"address"`
}

// Result reports what the handler did with the event.
type Result struct {
	OrderID   uuid.UUID `json:"order_id"`
	Processed bool      `json:"processed"`
	Duplicate bool      `json:"duplicate"`
}

// Service finalizes paid checkouts delivered at-least-once by the provider.
type Service interface {
	HandlePaymentCompleted(ctx context.Context, event CompletedEvent) (*Result, error)
}

type service struct {
	orders   *orderpkg.Repository
	dbClient *db.Client
	idem     redis.IdempotencyStore
	guardTTL time.Duration
	logger   *logger.Logger
}

// NewService constructs the payment webhook service.
func NewService(orders *orderpkg.Repository, dbClient *db.Client, idem redis.IdempotencyStore, guardTTL time.Duration, logg *logger.Logger) (Service, error) {
	if orders == nil {
		return nil, fmt.Errorf("order repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	if idem == nil {
		return nil, fmt.Errorf("idempotency store required")
	}
	if guardTTL <= 0 {
		return nil, fmt.Errorf("guard TTL must be positive")
	}
	return &service{
		orders:   orders,
		dbClient: dbClient,
		idem:     idem,
		guardTTL: guardTTL,
		logger:   logg,
	}, nil
}

// HandlePaymentCompleted marks the order paid and decrements stock for every
// item, exactly once per event id. A duplicate delivery is a no-op; a failed
// transition drops the event guard so the provider's retry can land.
func (s *service) HandlePaymentCompleted(ctx context.Context, event CompletedEvent) (*Result, error) {
	if strings.TrimSpace(event.EventID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "event_id is required")
	}
	if event.OrderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order_id is required")
	}

	guardKey := s.idem.WebhookEventKey(providerName, event.EventID)
	won, err := s.idem.SetNX(ctx, guardKey, event.OrderID.String(), s.guardTTL)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "redis: event guard")
	}
	if !won {
		if s.logger != nil {
			s.logger.Info(s.logger.WithField(ctx, "event_id", event.EventID), "duplicate payment event ignored")
		}
		return &Result{OrderID: event.OrderID, Duplicate: true}, nil
	}

	alreadyPaid := false
	txErr := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txOrders := s.orders.WithTx(tx)

		order, err := txOrders.FindByID(ctx, event.OrderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
		}
		if order.IsPaid {
			alreadyPaid = true
			return nil
		}

		order.IsPaid = true
		order.Phone = event.Phone
		order.Address = event.Address
		if _, err := txOrders.Update(ctx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: mark order paid")
		}

		for _, item := range order.Items {
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

		return archiveProducts(ctx, tx, order.Items)
	})
	if txErr != nil {
		// Drop the guard so the provider's redelivery can retry the
		// transition.
		if delErr := s.idem.Del(ctx, guardKey); delErr != nil && s.logger != nil {
			s.logger.Error(s.logger.WithField(ctx, "event_id", event.EventID), "failed to release event guard", delErr)
		}
		if pkgerrors.As(txErr) != nil {
			return nil, txErr
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, txErr, "finalize payment")
	}

	if alreadyPaid {
		return &Result{OrderID: event.OrderID, Duplicate: true}, nil
	}

	if s.logger != nil {
		s.logger.Info(s.logger.WithFields(ctx, map[string]any{
			"order_id": event.OrderID.String(),
			"event_id": event.EventID,
		}), "order marked paid")
	}
	return &Result{OrderID: event.OrderID, Processed: true}, nil
}

// archiveProducts pulls every sold product off the storefront once its order
// is paid.
func archiveProducts(ctx context.Context, tx *gorm.DB, items []models.OrderItem) error {
	ids := make([]uuid.UUID, 0, len(items))
	seen := make(map[uuid.UUID]struct{}, len(items))
	for _, item := range items {
		if _, ok := seen[item.ProductID]; ok {
			continue
		}
		seen[item.ProductID] = struct{}{}
		ids = append(ids, item.ProductID)
	}
	if len(ids) == 0 {
		return nil
	}
	if err := tx.WithContext(ctx).
		Model(&models.Product{}).
		Where("id IN ?", ids).
		Update("is_archived", true).Error; err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: archive products")
	}
	return nil
}

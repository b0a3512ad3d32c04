package controllers

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/boutiquehq/boutique-backend/internal/webhooks/payment"
	"github.com/boutiquehq/boutique-backend/pkg/config"
)

type stubPaymentService struct {
	called bool
	event  payment.CompletedEvent
	result *payment.Result
}

func (s *stubPaymentService) HandlePaymentCompleted(ctx context.Context, event payment.CompletedEvent) (*payment.Result, error) {
	s.called = true
	s.event = event
	if s.result != nil {
		return s.result, nil
	}
	return &payment.Result{OrderID: event.OrderID, Processed: true}, nil
}

func signBody(secret, body string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(body))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestPaymentWebhook(t *testing.T) {
	logg := testLogger()
	orderID := uuid.New()
	body := `{"event_id":"evt_1","order_id":"` + orderID.String() + `","phone":"555-0100","address":"1 Main St"}`

	t.Run("rejects missing signature when secret set", func(t *testing.T) {
		cfg := config.PaymentConfig{WebhookSecret: "whsec_test"}
		stub := &stubPaymentService{}
		req := httptest.NewRequest(http.MethodPost, "/api/v1/webhooks/payment", strings.NewReader(body))
		rec := httptest.NewRecorder()
		PaymentWebhook(cfg, stub, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401 without signature, got %d", rec.Code)
		}
		if stub.called {
			t.Fatalf("service must not run on signature failure")
		}
	})

	t.Run("rejects tampered body", func(t *testing.T) {
		cfg := config.PaymentConfig{WebhookSecret: "whsec_test"}
		stub := &stubPaymentService{}
		req := httptest.NewRequest(http.MethodPost, "/api/v1/webhooks/payment", strings.NewReader(body))
		req.Header.Set("X-Webhook-Signature", signBody("whsec_test", body+"tampered"))
		rec := httptest.NewRecorder()
		PaymentWebhook(cfg, stub, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401 for bad signature, got %d", rec.Code)
		}
	})

	t.Run("accepts signed event", func(t *testing.T) {
		cfg := config.PaymentConfig{WebhookSecret: "whsec_test"}
		stub := &stubPaymentService{}
		req := httptest.NewRequest(http.MethodPost, "/api/v1/webhooks/payment", strings.NewReader(body))
		req.Header.Set("X-Webhook-Signature", signBody("whsec_test", body))
		rec := httptest.NewRecorder()
		PaymentWebhook(cfg, stub, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if !stub.called {
			t.Fatalf("expected service call")
		}
		if stub.event.EventID != "evt_1" || stub.event.OrderID != orderID {
			t.Fatalf("unexpected event decoded: %+v", stub.event)
		}

		var envelope struct {
			Data payment.Result `json:"data"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if !envelope.Data.Processed || envelope.Data.OrderID != orderID {
			t.Fatalf("unexpected result: %+v", envelope.Data)
		}
	})

	t.Run("skips signature check when secret unset", func(t *testing.T) {
		stub := &stubPaymentService{}
		req := httptest.NewRequest(http.MethodPost, "/api/v1/webhooks/payment", strings.NewReader(body))
		rec := httptest.NewRecorder()
		PaymentWebhook(config.PaymentConfig{}, stub, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})

	t.Run("rejects malformed payload", func(t *testing.T) {
		stub := &stubPaymentService{}
		req := httptest.NewRequest(http.MethodPost, "/api/v1/webhooks/payment", strings.NewReader("{not json"))
		rec := httptest.NewRecorder()
		PaymentWebhook(config.PaymentConfig{}, stub, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for malformed payload, got %d", rec.Code)
		}
	})
}

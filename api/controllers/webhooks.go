package controllers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"

	"github.com/boutiquehq/boutique-backend/api/responses"
	"github.com/boutiquehq/boutique-backend/internal/webhooks/payment"
	"github.com/boutiquehq/boutique-backend/pkg/config"
	pkgerrors "github.com/boutiquehq/boutique-backend/pkg/errors"
	"github.com/boutiquehq/boutique-backend/pkg/logger"
)

const paymentSignatureHeader = "X-Webhook-Signature"

const maxWebhookBody = 1 << 20

// PaymentWebhook receives completed-checkout events from the payment provider.
// The route is unauthenticated; when a webhook secret is configured the
// payload must carry a hex HMAC-SHA256 of the raw body.
func PaymentWebhook(cfg config.PaymentConfig, svc payment.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "read webhook body"))
			return
		}

		if cfg.WebhookSecret != "" {
			if !verifySignature(cfg.WebhookSecret, body, r.Header.Get(paymentSignatureHeader)) {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid webhook signature"))
				return
			}
		}

		var event payment.CompletedEvent
		if err := json.Unmarshal(body, &event); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "decode webhook payload"))
			return
		}

		result, err := svc.HandlePaymentCompleted(r.Context(), event)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

func verifySignature(secret string, body []byte, header string) bool {
	if header == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(header))
}

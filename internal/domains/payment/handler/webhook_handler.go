package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"renthub-backend/internal/domains/payment/gateway/payhere"
	"renthub-backend/internal/domains/payment/model"
	"renthub-backend/internal/domains/payment/service"
	"renthub-backend/internal/shared/response"
)

type WebhookHandler struct {
	reconciler service.ReconcilerInterface
}

// NewWebhookHandler creates new webhook handler
func NewWebhookHandler(reconciler service.ReconcilerInterface) *WebhookHandler {
	return &WebhookHandler{
		reconciler: reconciler,
	}
}

// HandlePayHere processes the server-to-server payment notification
// POST /api/v1/webhooks/payhere (form-encoded, no auth, signature-verified)
//
// Response contract: handled rejections answer 4xx so the gateway stops
// retrying a notification we will reject again; only unexpected internal
// errors answer 500, which the gateway retries.
func (h *WebhookHandler) HandlePayHere(c *gin.Context) {
	// Step 1: The route is POST-only, but guard anyway since this endpoint
	// is unauthenticated
	if c.Request.Method != http.MethodPost {
		response.ErrorResponse(c, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "POST required")
		return
	}

	// Step 2: Parse the form payload
	if err := c.Request.ParseForm(); err != nil {
		response.BadRequest(c, "invalid form payload")
		return
	}
	form := c.Request.PostForm

	notification := payhere.Notification{
		MerchantID: form.Get("merchant_id"),
		OrderID:    form.Get("order_id"),
		PaymentID:  form.Get("payment_id"),
		Amount:     form.Get("payhere_amount"),
		Currency:   form.Get("payhere_currency"),
		StatusCode: form.Get("status_code"),
		Signature:  form.Get("md5sig"),
		Custom1:    form.Get("custom_1"),
		Custom2:    form.Get("custom_2"),
	}

	// Step 3: Run the reconciliation pipeline
	result, err := h.reconciler.HandleNotification(c.Request.Context(), notification, rawForm(form))
	if err != nil {
		var paymentErr *model.PaymentError
		if errors.As(err, &paymentErr) {
			// Handled rejection: logged and audited, acknowledge with 4xx
			writeError(c, err)
			return
		}

		log.Error().
			Err(err).
			Str("order_id", notification.OrderID).
			Msg("webhook processing failed")
		response.InternalServerError(c, "notification processing failed")
		return
	}

	// Step 4: Acknowledge
	response.Success(c, http.StatusOK, gin.H{
		"order_id": result.OrderID,
		"status":   result.Status,
	})
}

// rawForm renders the payload for the audit log with the signature value
// redacted
func rawForm(form url.Values) string {
	clone := url.Values{}
	for key, values := range form {
		if key == "md5sig" {
			clone.Set(key, "[redacted]")
			continue
		}
		clone[key] = values
	}
	return clone.Encode()
}

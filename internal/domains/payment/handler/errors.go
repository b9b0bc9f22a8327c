package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"renthub-backend/internal/domains/payment/model"
	"renthub-backend/internal/shared/response"
)

// mapPaymentError maps a domain error to an HTTP status, an error code and
// the message the client is allowed to see. Authorization and not-found
// failures answer with generic messages so the endpoints cannot be used to
// probe which records exist.
func mapPaymentError(err error) (int, string, string) {
	var paymentErr *model.PaymentError
	if errors.As(err, &paymentErr) {
		switch paymentErr.Code {
		case model.ErrCodeValidation,
			model.ErrCodeInvalidAmount,
			model.ErrCodeInvalidType,
			model.ErrCodeInvalidMethod:
			return http.StatusBadRequest, paymentErr.Code, paymentErr.Message

		case model.ErrCodeInvalidSignature,
			model.ErrCodeMerchantMismatch,
			model.ErrCodeAmountMismatch,
			model.ErrCodeUnknownStatus,
			model.ErrCodeNotPending:
			// Gateway-facing rejections: the details are in the logs and
			// the webhook audit table, never in the response body
			return http.StatusBadRequest, paymentErr.Code, "Invalid notification"

		case model.ErrCodeNotAgreementOwner,
			model.ErrCodeUnauthorized:
			return http.StatusForbidden, paymentErr.Code, "Forbidden"

		case model.ErrCodePaymentNotFound,
			model.ErrCodeAgreementNotFound,
			model.ErrCodePropertyNotFound:
			return http.StatusNotFound, paymentErr.Code, "Not found"

		case model.ErrCodeAgreementNotEligible:
			return http.StatusConflict, paymentErr.Code, paymentErr.Message
		}
	}

	return http.StatusInternalServerError, model.ErrCodeInternal, "Internal server error"
}

// writeError logs unexpected errors and writes the mapped response
func writeError(c *gin.Context, err error) {
	status, code, message := mapPaymentError(err)
	if status == http.StatusInternalServerError {
		log.Error().
			Err(err).
			Str("request_id", c.GetString("request_id")).
			Msg("unexpected payment error")
	}
	response.ErrorResponse(c, status, code, message)
}

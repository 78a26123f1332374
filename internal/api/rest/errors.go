package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/datafair/df-marketplace/internal/domain"
	"github.com/datafair/df-marketplace/internal/logger"
)

// ErrorCode represents a standardized error code
type ErrorCode string

const (
	// Client errors (4xx)
	errCodeBadRequest       ErrorCode = "bad_request"
	errCodeNotFound         ErrorCode = "not_found"
	errCodeValidationFailed ErrorCode = "validation_failed"
	errCodeForbidden        ErrorCode = "forbidden"
	errCodeConflict         ErrorCode = "conflict"
	errCodePaymentRequired  ErrorCode = "payment_required"
	errCodeUnprocessable    ErrorCode = "unprocessable"

	// Server errors (5xx)
	errCodeInternalError ErrorCode = "internal_error"
	errCodeBadGateway    ErrorCode = "bad_gateway"
)

// errorResponse represents a standardized error response
type errorResponse struct {
	Error errorDetail `json:"error"`
}

// errorDetail contains error information
type errorDetail struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Details string    `json:"details,omitempty"`
}

// respondWithError sends a standardized error response
func respondWithError(c *gin.Context, statusCode int, code ErrorCode, message string, details ...string) {
	response := errorResponse{
		Error: errorDetail{
			Code:    code,
			Message: message,
		},
	}

	if len(details) > 0 {
		response.Error.Details = details[0]
	}

	c.JSON(statusCode, response)
}

// respondBadRequest sends a 400 Bad Request response
func respondBadRequest(c *gin.Context, message string, details ...string) {
	respondWithError(c, http.StatusBadRequest, errCodeBadRequest, message, details...)
}

// respondNotFound sends a 404 Not Found response
func respondNotFound(c *gin.Context, message string, details ...string) {
	respondWithError(c, http.StatusNotFound, errCodeNotFound, message, details...)
}

// respondValidationError sends a 400 Bad Request with validation error
func respondValidationError(c *gin.Context, details string) {
	respondWithError(c, http.StatusBadRequest, errCodeValidationFailed, "Validation failed", details)
}

// respondInternalError sends a 500 Internal Server Error response and logs the error
func respondInternalError(c *gin.Context, err error, message string, fields ...zap.Field) {
	logger.Error(err, fields...)
	respondWithError(c, http.StatusInternalServerError, errCodeInternalError, message)
}

// respondLedgerError maps ledger errors onto HTTP responses. Anything not in
// the taxonomy is treated as an internal error.
func respondLedgerError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		respondNotFound(c, "Asset not found", err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		respondWithError(c, http.StatusForbidden, errCodeForbidden, "Operation not permitted", err.Error())
	case errors.Is(err, domain.ErrInvalidPrice),
		errors.Is(err, domain.ErrInvalidArgument):
		respondWithError(c, http.StatusUnprocessableEntity, errCodeUnprocessable, "Invalid request", err.Error())
	case errors.Is(err, domain.ErrAlreadyRegistered),
		errors.Is(err, domain.ErrAlreadyPurchased),
		errors.Is(err, domain.ErrInactive),
		errors.Is(err, domain.ErrSelfPurchase),
		errors.Is(err, domain.ErrNothingToWithdraw):
		respondWithError(c, http.StatusConflict, errCodeConflict, "Request conflicts with ledger state", err.Error())
	case errors.Is(err, domain.ErrInsufficientPayment):
		respondWithError(c, http.StatusPaymentRequired, errCodePaymentRequired, "Payment does not cover the listed price", err.Error())
	case errors.Is(err, domain.ErrExternalTransferFailed):
		respondWithError(c, http.StatusBadGateway, errCodeBadGateway, "Payout transfer failed", err.Error())
	default:
		respondInternalError(c, err, "Internal server error")
	}
}

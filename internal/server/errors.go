package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	authdomain "github.com/elzapay/elza/internal/auth/domain"
	checkoutdomain "github.com/elzapay/elza/internal/checkout/domain"
	checkoutconfigdomain "github.com/elzapay/elza/internal/checkoutconfig/domain"
	customerdomain "github.com/elzapay/elza/internal/customer/domain"
	dashboarddomain "github.com/elzapay/elza/internal/dashboard/domain"
	merchantdomain "github.com/elzapay/elza/internal/merchant/domain"
	paymentdomain "github.com/elzapay/elza/internal/payment/domain"
	productdomain "github.com/elzapay/elza/internal/product/domain"
	receiptdomain "github.com/elzapay/elza/internal/receipt/domain"
	subscriptiondomain "github.com/elzapay/elza/internal/subscription/domain"
	"gorm.io/gorm"
)

type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (v ValidationErrors) Error() string {
	return "validation error"
}

type errorPayload struct {
	Type    string            `json:"type"`
	Message string            `json:"message"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrUnauthorized   = errors.New("unauthorized")
	ErrConflict       = errors.New("conflict")
	ErrNotFound       = errors.New("not_found")
	ErrInvalidRequest = errors.New("invalid_request")
)

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func invalidRequestError() error {
	return newValidationError("request", "invalid_request", "invalid request")
}

func newValidationError(field, code, message string) error {
	return &ValidationErrors{
		Errors: []ValidationError{
			{Field: field, Code: code, Message: message},
		},
	}
}

func mapError(err error) (int, errorPayload) {
	if err == nil {
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}

	if vErr := asValidationErrors(err); vErr != nil {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors:  vErr.Errors,
		}
	}

	var contactErr *checkoutdomain.ValidationError
	if errors.As(err, &contactErr) {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors:  contactValidationErrors(contactErr),
		}
	}

	if isValidationError(err) {
		code := err.Error()
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors: []ValidationError{
				{
					Field:   validationErrorField(code),
					Code:    code,
					Message: "invalid value",
				},
			},
		}
	}

	switch {
	case errors.Is(err, ErrUnauthorized),
		errors.Is(err, authdomain.ErrInvalidToken),
		errors.Is(err, productdomain.ErrInvalidMerchant),
		errors.Is(err, checkoutconfigdomain.ErrInvalidMerchant),
		errors.Is(err, customerdomain.ErrInvalidMerchant),
		errors.Is(err, subscriptiondomain.ErrInvalidMerchant),
		errors.Is(err, receiptdomain.ErrInvalidMerchant),
		errors.Is(err, dashboarddomain.ErrInvalidMerchant):
		return http.StatusUnauthorized, errorPayload{
			Type:    "unauthorized",
			Message: "unauthorized",
		}
	case isConflictError(err):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: "conflict",
		}
	case isNotFoundError(err):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "not found",
		}
	case errors.Is(err, checkoutdomain.ErrPaymentFailed):
		return http.StatusPaymentRequired, errorPayload{
			Type:    "payment_failure",
			Message: "payment failed",
		}
	case errors.Is(err, paymentdomain.ErrUnavailable),
		errors.Is(err, checkoutdomain.ErrUpstream):
		return http.StatusServiceUnavailable, errorPayload{
			Type:    "service_unavailable",
			Message: "service unavailable",
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}

func asValidationErrors(err error) *ValidationErrors {
	var vErr *ValidationErrors
	if errors.As(err, &vErr) && vErr != nil {
		return vErr
	}
	return nil
}

func contactValidationErrors(err *checkoutdomain.ValidationError) []ValidationError {
	out := make([]ValidationError, 0, len(err.Fields))
	for field, message := range err.Fields {
		out = append(out, ValidationError{
			Field:   field,
			Code:    "invalid_" + field,
			Message: message,
		})
	}
	return out
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, merchantdomain.ErrInvalidWallet),
		errors.Is(err, authdomain.ErrInvalidWallet),
		errors.Is(err, productdomain.ErrInvalidName),
		errors.Is(err, productdomain.ErrInvalidType),
		errors.Is(err, productdomain.ErrInvalidPrice),
		errors.Is(err, productdomain.ErrInvalidCurrency),
		errors.Is(err, productdomain.ErrInvalidSubscription),
		errors.Is(err, productdomain.ErrInvalidID),
		errors.Is(err, checkoutconfigdomain.ErrInvalidName),
		errors.Is(err, checkoutconfigdomain.ErrInvalidType),
		errors.Is(err, checkoutconfigdomain.ErrInvalidSlug),
		errors.Is(err, checkoutconfigdomain.ErrInvalidDomain),
		errors.Is(err, checkoutconfigdomain.ErrInvalidKey),
		errors.Is(err, checkoutconfigdomain.ErrInvalidID),
		errors.Is(err, customerdomain.ErrInvalidEmail),
		errors.Is(err, customerdomain.ErrInvalidID),
		errors.Is(err, subscriptiondomain.ErrInvalidRequest),
		errors.Is(err, subscriptiondomain.ErrInvalidID),
		errors.Is(err, subscriptiondomain.ErrNotActive),
		errors.Is(err, subscriptiondomain.ErrNotPaused),
		errors.Is(err, subscriptiondomain.ErrAlreadyPaused),
		errors.Is(err, receiptdomain.ErrInvalidID),
		errors.Is(err, receiptdomain.ErrInvalidCursor),
		errors.Is(err, checkoutdomain.ErrEmptyCheckout),
		errors.Is(err, checkoutdomain.ErrInvalidID):
		return true
	default:
		return false
	}
}

func isConflictError(err error) bool {
	switch {
	case errors.Is(err, ErrConflict),
		errors.Is(err, checkoutconfigdomain.ErrSlugTaken),
		errors.Is(err, checkoutconfigdomain.ErrDomainTaken),
		errors.Is(err, gorm.ErrDuplicatedKey):
		return true
	default:
		return false
	}
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, merchantdomain.ErrNotFound),
		errors.Is(err, productdomain.ErrNotFound),
		errors.Is(err, checkoutconfigdomain.ErrNotFound),
		errors.Is(err, customerdomain.ErrNotFound),
		errors.Is(err, subscriptiondomain.ErrNotFound),
		errors.Is(err, receiptdomain.ErrNotFound),
		errors.Is(err, checkoutdomain.ErrNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return true
	default:
		return false
	}
}

func validationErrorField(code string) string {
	if code == "invalid_request" {
		return "request"
	}
	if strings.HasPrefix(code, "invalid_") {
		return strings.TrimPrefix(code, "invalid_")
	}
	return ""
}

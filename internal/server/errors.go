package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	attrdomain "github.com/smallbiznis/storefront/internal/attribute/domain"
	categorydomain "github.com/smallbiznis/storefront/internal/category/domain"
	collectiondomain "github.com/smallbiznis/storefront/internal/collection/domain"
	customerdomain "github.com/smallbiznis/storefront/internal/customer/domain"
	"github.com/smallbiznis/storefront/internal/handle"
	orderdomain "github.com/smallbiznis/storefront/internal/order/domain"
	pricedomain "github.com/smallbiznis/storefront/internal/price/domain"
	productdomain "github.com/smallbiznis/storefront/internal/product/domain"
	saleschanneldomain "github.com/smallbiznis/storefront/internal/saleschannel/domain"
	tagdomain "github.com/smallbiznis/storefront/internal/tag/domain"
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
	ErrConflict       = errors.New("conflict")
	ErrInternal       = errors.New("internal_error")
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
			{
				Field:   field,
				Code:    code,
				Message: message,
			},
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

	if isValidationError(err) {
		code := validationErrorCode(err)
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors: []ValidationError{
				{
					Field:   validationErrorField(code),
					Code:    code,
					Message: validationErrorMessage(code),
				},
			},
		}
	}

	switch {
	case errors.Is(err, ErrConflict),
		errors.Is(err, customerdomain.ErrEmailTaken),
		errors.Is(err, categorydomain.ErrCategoryInUse):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: "conflict",
		}
	case isNotFoundError(err):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "not found",
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

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, handle.ErrExhausted):
		return true
	case isProductValidationError(err),
		isCategoryValidationError(err),
		isCollectionValidationError(err),
		isTagValidationError(err),
		isSalesChannelValidationError(err),
		isAttributeValidationError(err),
		isPriceValidationError(err),
		isCustomerValidationError(err),
		isOrderValidationError(err):
		return true
	default:
		return false
	}
}

func isProductValidationError(err error) bool {
	switch {
	case errors.Is(err, productdomain.ErrInvalidTitle),
		errors.Is(err, productdomain.ErrInvalidStatus),
		errors.Is(err, productdomain.ErrInvalidID),
		errors.Is(err, productdomain.ErrBatchTooLarge),
		errors.Is(err, productdomain.ErrOptionNotFound),
		errors.Is(err, productdomain.ErrOptionValueNotFound),
		errors.Is(err, productdomain.ErrAttributeGroupNotLinked),
		errors.Is(err, productdomain.ErrAttributePairUnknown):
		return true
	default:
		return false
	}
}

func isCategoryValidationError(err error) bool {
	switch {
	case errors.Is(err, categorydomain.ErrInvalidValue),
		errors.Is(err, categorydomain.ErrInvalidStatus),
		errors.Is(err, categorydomain.ErrInvalidVisibility),
		errors.Is(err, categorydomain.ErrInvalidID),
		errors.Is(err, categorydomain.ErrCircularParent):
		return true
	default:
		return false
	}
}

func isCollectionValidationError(err error) bool {
	return errors.Is(err, collectiondomain.ErrInvalidTitle) ||
		errors.Is(err, collectiondomain.ErrInvalidID)
}

func isTagValidationError(err error) bool {
	return errors.Is(err, tagdomain.ErrInvalidValue) ||
		errors.Is(err, tagdomain.ErrInvalidID)
}

func isSalesChannelValidationError(err error) bool {
	return errors.Is(err, saleschanneldomain.ErrInvalidName) ||
		errors.Is(err, saleschanneldomain.ErrInvalidID)
}

func isAttributeValidationError(err error) bool {
	return errors.Is(err, attrdomain.ErrInvalidName) ||
		errors.Is(err, attrdomain.ErrInvalidID)
}

func isPriceValidationError(err error) bool {
	switch {
	case errors.Is(err, pricedomain.ErrInvalidAmount),
		errors.Is(err, pricedomain.ErrInvalidCurrency),
		errors.Is(err, pricedomain.ErrInvalidID):
		return true
	default:
		return false
	}
}

func isCustomerValidationError(err error) bool {
	return errors.Is(err, customerdomain.ErrInvalidEmail) ||
		errors.Is(err, customerdomain.ErrInvalidID)
}

func isOrderValidationError(err error) bool {
	return errors.Is(err, orderdomain.ErrInvalidStatus) ||
		errors.Is(err, orderdomain.ErrInvalidID)
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, productdomain.ErrNotFound),
		errors.Is(err, productdomain.ErrCategoryNotFound),
		errors.Is(err, productdomain.ErrTagNotFound),
		errors.Is(err, productdomain.ErrCollectionNotFound),
		errors.Is(err, productdomain.ErrSalesChannelNotFound),
		errors.Is(err, productdomain.ErrAttributeGroupNotFound),
		errors.Is(err, categorydomain.ErrNotFound),
		errors.Is(err, categorydomain.ErrParentNotFound),
		errors.Is(err, collectiondomain.ErrNotFound),
		errors.Is(err, collectiondomain.ErrProductNotFound),
		errors.Is(err, tagdomain.ErrNotFound),
		errors.Is(err, saleschanneldomain.ErrNotFound),
		errors.Is(err, attrdomain.ErrNotFound),
		errors.Is(err, attrdomain.ErrAttributeNotFound),
		errors.Is(err, customerdomain.ErrNotFound),
		errors.Is(err, orderdomain.ErrNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return true
	default:
		return false
	}
}

func validationErrorCode(err error) string {
	if errors.Is(err, ErrInvalidRequest) {
		return "invalid_request"
	}
	return err.Error()
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

func validationErrorMessage(code string) string {
	switch code {
	case "invalid_request":
		return "invalid request"
	default:
		return "invalid value"
	}
}

// classifyErrorForLog buckets an error for the request log without exposing
// internals: returns (error_type, error_code).
func classifyErrorForLog(err error) (string, string) {
	switch {
	case err == nil:
		return "", ""
	case asValidationErrors(err) != nil, isValidationError(err):
		return "validation_error", validationErrorCode(err)
	case isNotFoundError(err):
		return "not_found", "not_found"
	case errors.Is(err, ErrConflict),
		errors.Is(err, customerdomain.ErrEmailTaken),
		errors.Is(err, categorydomain.ErrCategoryInUse):
		return "conflict", "conflict"
	default:
		return "internal_error", "internal_error"
	}
}

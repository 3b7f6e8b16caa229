package http

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"fulfillment/internal/core/domain/model/coupon"
	"fulfillment/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Error is the body of every non-2xx response.
type Error struct {
	Code    int      `json:"code"`
	Message string   `json:"message"`
	Reason  string   `json:"reason,omitempty"`
	Details []string `json:"details,omitempty"`
}

// RequestValidator plugs go-playground/validator into echo's Context.Validate.
type RequestValidator struct {
	validate *validator.Validate
}

func NewRequestValidator() *RequestValidator {
	return &RequestValidator{validate: validator.New(validator.WithRequiredStructEnabled())}
}

func (v *RequestValidator) Validate(i any) error {
	return v.validate.Struct(i)
}

// bind decodes and validates the body. On failure the 400 response has
// already been written and the returned bool is false.
func bind(c echo.Context, dst any) (bool, error) {
	if err := c.Bind(dst); err != nil {
		return false, c.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(dst); err != nil {
		return false, c.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Validation failed",
			Details: validationDetails(err),
		})
	}
	return true, nil
}

func validationDetails(err error) []string {
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return []string{err.Error()}
	}

	details := make([]string, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		field := lowerCamel(fe.Field())
		switch fe.Tag() {
		case "required":
			details = append(details, fmt.Sprintf("%s is required", field))
		case "min", "gt", "gte":
			details = append(details, fmt.Sprintf("%s must be at least %s", field, fe.Param()))
		default:
			details = append(details, fmt.Sprintf("%s is invalid", field))
		}
	}
	return details
}

func lowerCamel(field string) string {
	if field == "" {
		return field
	}
	return strings.ToLower(field[:1]) + field[1:]
}

// writeError maps application errors to status codes. Unexpected errors are
// logged and hidden behind message.
func writeError(c echo.Context, err error, message string) error {
	var rejection *coupon.Rejection
	if errors.As(err, &rejection) {
		return c.JSON(http.StatusUnprocessableEntity, Error{
			Code:    http.StatusUnprocessableEntity,
			Message: rejection.Message,
			Reason:  string(rejection.Reason),
		})
	}

	status := statusFor(err)
	if status == http.StatusInternalServerError {
		c.Logger().Errorf("%s: %v", message, err)
		return c.JSON(status, Error{Code: status, Message: message})
	}
	return c.JSON(status, Error{Code: status, Message: err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrVersionIsInvalid):
		return http.StatusConflict
	case errors.Is(err, errs.ErrInvariantViolation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, errs.ErrExternalServiceError):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func badRequest(c echo.Context, message string, err error) error {
	return c.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message + ": " + err.Error(),
	})
}

package errs_test

import (
	"errors"
	"fmt"
	"testing"

	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessages(t *testing.T) {
	lost := errors.New("connection reset")

	cases := []struct {
		name string
		err  error
		want string
	}{
		{"order not found", errs.NewObjectNotFoundError("order", "5f1c"), "object not found: 5f1c"},
		{
			"coupon lookup failed",
			errs.NewObjectNotFoundErrorWithCause("code", "WELCOME10", lost),
			"object not found: param is: code, ID is: WELCOME10 (cause: connection reset)",
		},
		{"bad status", errs.NewValueIsInvalidError("status"), "value is invalid: status"},
		{
			"bad dimensions",
			errs.NewValueIsInvalidErrorWithCause("dimensions", errors.New("height is 0")),
			"value is invalid: dimensions (cause: height is 0)",
		},
		{
			"page too large",
			errs.NewValueIsOutOfRangeError("limit", 900, 1, 500),
			"value is invalid: 900 is limit, min value is 1, max value is 500",
		},
		{"missing phone", errs.NewValueIsRequiredError("phone"), "value is required: phone"},
		{
			"missing actor",
			errs.NewValueIsRequiredErrorWithCause("approvedBy", errors.New("blank")),
			"value is required: approvedBy (cause: blank)",
		},
		{"stale order", errs.NewVersionIsInvalidError("order", lost), "version is invalid: order (cause: connection reset)"},
		{"stale settings", errs.NewVersionIsInvalidErrorWithCause("settings"), "version is invalid: settings"},
		{
			"unpaid shipment",
			errs.NewInvariantViolationError("payment", "prepaid order is not paid"),
			"invariant violation: payment: prepaid order is not paid",
		},
		{
			"multi-line reason",
			errs.NewInvariantViolationError("dimensions", "no weight\nno box"),
			"invariant violation: dimensions: no weight no box",
		},
		{"carrier down", errs.NewExternalServiceError("carrier", lost), "external service error: carrier (cause: connection reset)"},
		{"catalog down", errs.NewExternalServiceError("catalog", nil), "external service error: catalog"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.err.Error())
		})
	}
}

func TestErrorKinds(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		sentinel error
	}{
		{"not found", errs.NewObjectNotFoundError("customer", "+919800000001"), errs.ErrObjectNotFound},
		{"invalid", errs.NewValueIsInvalidError("payment method"), errs.ErrValueIsInvalid},
		{"out of range", errs.NewValueIsOutOfRangeError("offset", -1, 0, nil), errs.ErrValueIsOutOfRange},
		{"required", errs.NewValueIsRequiredError("awb"), errs.ErrValueIsRequired},
		{"version", errs.NewVersionIsInvalidErrorWithCause("order"), errs.ErrVersionIsInvalid},
		{"invariant", errs.NewInvariantViolationError("carrier", "unknown carrier"), errs.ErrInvariantViolation},
		{"external", errs.NewExternalServiceError("messaging", nil), errs.ErrExternalServiceError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, tc.err, tc.sentinel)
			assert.ErrorIs(t, fmt.Errorf("create order: %w", tc.err), tc.sentinel)

			for _, other := range cases {
				if other.sentinel != tc.sentinel {
					assert.NotErrorIs(t, tc.err, other.sentinel)
				}
			}
		})
	}
}

func TestJoinedValidationErrors(t *testing.T) {
	err := errors.Join(
		errs.NewValueIsRequiredError("phone"),
		nil,
		errs.NewValueIsInvalidError("quantity"),
	)

	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.NotErrorIs(t, err, errs.ErrObjectNotFound)

	var required *errs.ValueIsRequiredError
	if assert.ErrorAs(t, err, &required) {
		assert.Equal(t, "phone", required.ParamName)
	}
}

package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
)

// CourierResult is the uniform outcome of a carrier submission. Raw request and
// response are kept for audit whether or not the submission succeeded.
type CourierResult struct {
	Success     bool
	AWB         string
	TrackingURL string
	RawRequest  []byte
	RawResponse []byte
	Error       string
}

type CourierAdapter interface {
	Name() string
	Mode() order.ShipmentMode
	Submit(ctx context.Context, o *order.Order, manualAWB string) CourierResult
}

// CourierRegistry is the closed set of carriers the core can ship with.
type CourierRegistry interface {
	Get(name string) (CourierAdapter, bool)
}

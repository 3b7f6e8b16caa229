package courier

import (
	"context"
	"encoding/json"
	"strings"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

var _ ports.CourierAdapter = Manual{}

// Manual records a shipment booked outside the system. The operator supplies
// the AWB; nothing is sent anywhere.
type Manual struct{}

func NewManual() Manual { return Manual{} }

func (Manual) Name() string             { return ManualName }
func (Manual) Mode() order.ShipmentMode { return order.ShipmentModeManual }

type manualRecord struct {
	OrderID string `json:"order_id"`
	AWB     string `json:"awb"`
}

func (Manual) Submit(_ context.Context, o *order.Order, manualAWB string) ports.CourierResult {
	awb := strings.TrimSpace(manualAWB)
	raw, _ := json.Marshal(manualRecord{OrderID: o.ID().String(), AWB: awb})

	if awb == "" {
		return ports.CourierResult{RawRequest: raw, Error: "manual shipments require an AWB"}
	}
	return ports.CourierResult{Success: true, AWB: awb, RawRequest: raw, RawResponse: raw}
}

package order

import "time"

type ShipmentMode string

const (
	ShipmentModeAPI    ShipmentMode = "api"
	ShipmentModeManual ShipmentMode = "manual"
)

// ShipmentInfo is the last carrier submission recorded on the order, successful or not.
type ShipmentInfo struct {
	Carrier        string
	Mode           ShipmentMode
	AWB            string
	TrackingURL    string
	RawRequest     []byte
	RawResponse    []byte
	TrackingStatus string
	LastError      string
	AttemptedAt    time.Time
}

// ShipmentAttempt is a carrier submission outcome handed to the order for recording.
type ShipmentAttempt struct {
	Carrier     string
	Mode        ShipmentMode
	Success     bool
	AWB         string
	TrackingURL string
	RawRequest  []byte
	RawResponse []byte
	Error       string
	At          time.Time
}

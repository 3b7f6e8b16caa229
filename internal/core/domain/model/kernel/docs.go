// Package kernel provides the shared value objects of the fulfillment domain.
//
// The package includes:
//   - UUID: identifier value object wrapping github.com/google/uuid
//   - Dimensions: validated parcel length/width/height with per-axis maximum
//   - RoundMoney: 2-decimal rounding for shopspring/decimal amounts
//
// Values are immutable and safe for concurrent use. Zero values of UUID and
// Dimensions are invalid and fail Validate.
package kernel

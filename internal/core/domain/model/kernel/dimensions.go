package kernel

import (
	"errors"
	"fmt"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// ErrDimensionsAreNotConstructed is returned when a zero-value Dimensions is used.
var ErrDimensionsAreNotConstructed = errs.NewValueIsRequiredError(
	"dimensions must be created via NewDimensions")

// Dimensions is a parcel's length, width and height in centimetres.
// Every axis is strictly positive; the zero value is invalid.
//
// Example:
//
//	box, err := kernel.NewDimensions(30, 20, 10)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(box) // 30x20x10
type Dimensions struct { //nolint:recvcheck //using for validation
	length float64
	width  float64
	height float64
	guard  guard.ConstructorGuard
}

// NewDimensions validates every axis and returns the value object.
// All axis errors are reported together.
func NewDimensions(length, width, height float64) (Dimensions, error) {
	d := Dimensions{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		setAxis(&d.length, "length", length),
		setAxis(&d.width, "width", width),
		setAxis(&d.height, "height", height),
	); err != nil {
		return Dimensions{}, err
	}

	return d, nil
}

// MustNewDimensions is NewDimensions for literals known to be valid. It panics otherwise.
func MustNewDimensions(length, width, height float64) Dimensions {
	d, err := NewDimensions(length, width, height)
	if err != nil {
		panic(err)
	}
	return d
}

func (d Dimensions) Validate() error {
	return d.guard.Validate(ErrDimensionsAreNotConstructed)
}

func (d Dimensions) Length() float64 { return d.length }
func (d Dimensions) Width() float64  { return d.width }
func (d Dimensions) Height() float64 { return d.height }

// Volume returns length × width × height.
func (d Dimensions) Volume() float64 {
	return d.length * d.width * d.height
}

// Max returns the per-axis maximum of d and other. It is the box that encloses the
// largest extent on each axis, not a packing of both parcels.
func (d Dimensions) Max(other Dimensions) (Dimensions, error) {
	if err := errors.Join(d.Validate(), other.Validate()); err != nil {
		return Dimensions{}, err
	}
	return NewDimensions(
		max(d.length, other.length),
		max(d.width, other.width),
		max(d.height, other.height),
	)
}

// Equals compares all three axes.
func (d Dimensions) Equals(other Dimensions) bool {
	return d.length == other.length && d.width == other.width && d.height == other.height
}

func (d Dimensions) String() string {
	return fmt.Sprintf("%gx%gx%g", d.length, d.width, d.height)
}

func setAxis(dst *float64, name string, value float64) error {
	if value <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			name+" is invalid",
			fmt.Errorf("%g is not greater than 0", value),
		)
	}
	*dst = value
	return nil
}

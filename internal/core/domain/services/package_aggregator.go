package services

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// ErrNothingToPack is returned when Aggregate receives no lines.
var ErrNothingToPack = errors.New("nothing to pack")

// PackageLine is one resolved order line: per-unit weight and box size.
type PackageLine struct {
	Weight     float64
	Dimensions kernel.Dimensions
	Quantity   int
}

// PackageAggregator derives a parcel from resolved lines.
//
// Weight is Σ(weight × quantity). Dimensions are the per-axis maximum over
// all lines. That is the smallest box fitting the largest item on every axis;
// it is not bin-packing and can underestimate parcels of several bulky items.
type PackageAggregator struct{}

func NewPackageAggregator() PackageAggregator {
	return PackageAggregator{}
}

func (PackageAggregator) Aggregate(lines []PackageLine) (float64, kernel.Dimensions, error) {
	if len(lines) == 0 {
		return 0, kernel.Dimensions{}, ErrNothingToPack
	}

	var (
		total float64
		box   kernel.Dimensions
	)
	for i, l := range lines {
		if l.Weight <= 0 || l.Quantity <= 0 {
			return 0, kernel.Dimensions{}, errs.NewValueIsInvalidErrorWithCause("package line is invalid",
				fmt.Errorf("line %d has weight %g and quantity %d", i, l.Weight, l.Quantity))
		}
		total += l.Weight * float64(l.Quantity)

		if i == 0 {
			if err := l.Dimensions.Validate(); err != nil {
				return 0, kernel.Dimensions{}, err
			}
			box = l.Dimensions
			continue
		}
		next, err := box.Max(l.Dimensions)
		if err != nil {
			return 0, kernel.Dimensions{}, err
		}
		box = next
	}

	return total, box, nil
}

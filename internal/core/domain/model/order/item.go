package order

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Item is one order line. ProductID and SKU may be blank on imported orders;
// such lines cannot be resolved and force manual verification.
type Item struct {
	productID   string
	variationID string
	sku         string
	quantity    int
	unitPrice   decimal.Decimal
	weight      *float64
	dimensions  *kernel.Dimensions
	taxCode     string
}

func NewItem(productID, sku string, quantity int, unitPrice decimal.Decimal) (Item, error) {
	var errQty, errPrice error
	if quantity <= 0 {
		errQty = errs.NewValueIsInvalidErrorWithCause("quantity is invalid",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	if unitPrice.IsNegative() {
		errPrice = errs.NewValueIsInvalidErrorWithCause("unit price is invalid",
			fmt.Errorf("%s is negative", unitPrice))
	}
	if err := errors.Join(errQty, errPrice); err != nil {
		return Item{}, err
	}

	return Item{
		productID: productID,
		sku:       sku,
		quantity:  quantity,
		unitPrice: unitPrice,
	}, nil
}

// Resolved returns a copy of the item carrying catalog data.
func (i Item) Resolved(variationID string, weight float64, dimensions kernel.Dimensions, taxCode string) Item {
	i.variationID = variationID
	i.weight = &weight
	i.dimensions = &dimensions
	i.taxCode = taxCode
	return i
}

func (i Item) ProductID() string              { return i.productID }
func (i Item) VariationID() string            { return i.variationID }
func (i Item) SKU() string                    { return i.sku }
func (i Item) Quantity() int                  { return i.quantity }
func (i Item) UnitPrice() decimal.Decimal     { return i.unitPrice }
func (i Item) Weight() *float64               { return i.weight }
func (i Item) Dimensions() *kernel.Dimensions { return i.dimensions }
func (i Item) TaxCode() string                { return i.taxCode }
func (i Item) IsResolved() bool               { return i.weight != nil && i.dimensions != nil }
func (i Item) LineTotal() decimal.Decimal {
	return i.unitPrice.Mul(decimal.NewFromInt(int64(i.quantity)))
}
func (i Item) HasIdentity() bool { return i.productID != "" && i.sku != "" }

// RestoreItem rebuilds a persisted line without re-validating it.
func RestoreItem(
	productID, variationID, sku string,
	quantity int,
	unitPrice decimal.Decimal,
	weight *float64,
	dimensions *kernel.Dimensions,
	taxCode string,
) Item {
	return Item{
		productID:   productID,
		variationID: variationID,
		sku:         sku,
		quantity:    quantity,
		unitPrice:   unitPrice,
		weight:      weight,
		dimensions:  dimensions,
		taxCode:     taxCode,
	}
}

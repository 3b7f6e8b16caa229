package queries

import (
	"errors"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrSearchCombinationsByProductQueryIsNotConstructed = errors.New(
	"SearchCombinationsByProductQuery must be created via NewSearchCombinationsByProductQuery constructor",
)

// SearchCombinationsByProductQuery finds every combination containing a product.
type SearchCombinationsByProductQuery struct {
	productID string

	guard guard.ConstructorGuard
}

func NewSearchCombinationsByProductQuery(productID string) (SearchCombinationsByProductQuery, error) {
	if productID == "" {
		return SearchCombinationsByProductQuery{}, errs.NewValueIsRequiredError("productID")
	}
	return SearchCombinationsByProductQuery{productID: productID, guard: guard.NewConstructorGuard()}, nil
}

func (q SearchCombinationsByProductQuery) Validate() error {
	return q.guard.Validate(ErrSearchCombinationsByProductQueryIsNotConstructed)
}

func (q SearchCombinationsByProductQuery) ProductID() string { return q.productID }

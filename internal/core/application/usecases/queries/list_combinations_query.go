package queries

import (
	"errors"
	"fmt"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

const (
	DefaultPageSize = 50
	MaxPageSize     = 500
)

var ErrListCombinationsQueryIsNotConstructed = errors.New(
	"ListCombinationsQuery must be created via NewListCombinationsQuery constructor",
)

type ListCombinationsQuery struct {
	activeOnly bool
	limit      int
	offset     int

	guard guard.ConstructorGuard
}

// NewListCombinationsQuery pages through combinations, most used first. A zero
// limit means DefaultPageSize.
func NewListCombinationsQuery(activeOnly bool, limit, offset int) (ListCombinationsQuery, error) {
	if limit == 0 {
		limit = DefaultPageSize
	}
	if limit < 0 || limit > MaxPageSize {
		return ListCombinationsQuery{}, errs.NewValueIsOutOfRangeError("limit", limit, 1, MaxPageSize)
	}
	if offset < 0 {
		return ListCombinationsQuery{}, errs.NewValueIsInvalidErrorWithCause("offset is invalid",
			fmt.Errorf("%d is negative", offset))
	}
	return ListCombinationsQuery{
		activeOnly: activeOnly,
		limit:      limit,
		offset:     offset,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (q ListCombinationsQuery) Validate() error {
	return q.guard.Validate(ErrListCombinationsQueryIsNotConstructed)
}

func (q ListCombinationsQuery) ActiveOnly() bool { return q.activeOnly }
func (q ListCombinationsQuery) Limit() int       { return q.limit }
func (q ListCombinationsQuery) Offset() int      { return q.offset }

package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/combination"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrFindCombinationQueryIsNotConstructed = errors.New(
	"FindCombinationQuery must be created via NewFindCombinationQuery constructor",
)

// FindCombinationQuery looks a combination up by its items. Inactive records
// are returned too.
type FindCombinationQuery struct {
	hash string

	guard guard.ConstructorGuard
}

func NewFindCombinationQuery(items []combination.Item) (FindCombinationQuery, error) {
	if len(items) == 0 {
		return FindCombinationQuery{}, errs.NewValueIsRequiredError("items")
	}
	return FindCombinationQuery{hash: combination.HashItems(items), guard: guard.NewConstructorGuard()}, nil
}

func (q FindCombinationQuery) Validate() error {
	return q.guard.Validate(ErrFindCombinationQueryIsNotConstructed)
}

func (q FindCombinationQuery) Hash() string { return q.hash }

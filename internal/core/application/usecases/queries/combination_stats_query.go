package queries

import (
	"errors"

	"fulfillment/internal/pkg/guard"
)

var ErrCombinationStatsQueryIsNotConstructed = errors.New(
	"CombinationStatsQuery must be created via NewCombinationStatsQuery constructor",
)

type CombinationStatsQuery struct {
	guard guard.ConstructorGuard
}

func NewCombinationStatsQuery() CombinationStatsQuery {
	return CombinationStatsQuery{guard: guard.NewConstructorGuard()}
}

func (q CombinationStatsQuery) Validate() error {
	return q.guard.Validate(ErrCombinationStatsQueryIsNotConstructed)
}

// CombinationStats summarises the combination cache. MostUsedHash is empty
// when no combination has been used yet.
type CombinationStats struct {
	Total         int64
	Active        int64
	TotalUsage    int64
	MostUsedHash  string
	MostUsedCount int64
}

package ports

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/combination"
)

type CombinationRepository interface {
	// Save upserts by hash.
	Save(ctx context.Context, aggregate *combination.VerifiedCombination) error

	// Get returns the record for hash, active or not.
	Get(ctx context.Context, hash string) (*combination.VerifiedCombination, error)

	// RecordUsage increments usage_count by one and moves last_used_at forward
	// to at, in one atomic statement.
	RecordUsage(ctx context.Context, hash string, at time.Time) error
}

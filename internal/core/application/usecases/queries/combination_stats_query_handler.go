package queries

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

type CombinationStatsQueryHandler struct {
	db *gorm.DB
}

func NewCombinationStatsQueryHandler(db *gorm.DB) CombinationStatsQueryHandler {
	return CombinationStatsQueryHandler{db: db}
}

func (h CombinationStatsQueryHandler) Handle(ctx context.Context, query CombinationStatsQuery) (CombinationStats, error) {
	if err := query.Validate(); err != nil {
		return CombinationStats{}, err
	}

	var stats CombinationStats
	db := h.db.WithContext(ctx)

	err := db.Raw(`
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE is_active),
			COALESCE(SUM(usage_count), 0)
		FROM verified_combinations
	`).Row().Scan(&stats.Total, &stats.Active, &stats.TotalUsage)
	if err != nil {
		return CombinationStats{}, err
	}

	var hash sql.NullString
	var count sql.NullInt64
	err = db.Raw(`
		SELECT hash, usage_count
		FROM verified_combinations
		WHERE usage_count > 0
		ORDER BY usage_count DESC, hash
		LIMIT 1
	`).Row().Scan(&hash, &count)
	switch {
	case err == sql.ErrNoRows:
	case err != nil:
		return CombinationStats{}, err
	default:
		stats.MostUsedHash = hash.String
		stats.MostUsedCount = count.Int64
	}

	return stats, nil
}

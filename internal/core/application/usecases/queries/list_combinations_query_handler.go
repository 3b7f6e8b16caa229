package queries

import (
	"context"

	"gorm.io/gorm"
)

type ListCombinationsQueryHandler struct {
	db *gorm.DB
}

func NewListCombinationsQueryHandler(db *gorm.DB) ListCombinationsQueryHandler {
	return ListCombinationsQueryHandler{db: db}
}

func (h ListCombinationsQueryHandler) Handle(ctx context.Context, query ListCombinationsQuery) ([]CombinationView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT `+combinationColumns+`
		FROM verified_combinations
		WHERE is_active OR NOT ?
		ORDER BY usage_count DESC, hash
		LIMIT ? OFFSET ?
	`, query.ActiveOnly(), query.Limit(), query.Offset()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanCombinations(rows)
}

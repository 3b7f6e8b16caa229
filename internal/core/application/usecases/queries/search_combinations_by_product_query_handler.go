package queries

import (
	"context"
	"encoding/json"

	"gorm.io/gorm"
)

type SearchCombinationsByProductQueryHandler struct {
	db *gorm.DB
}

func NewSearchCombinationsByProductQueryHandler(db *gorm.DB) SearchCombinationsByProductQueryHandler {
	return SearchCombinationsByProductQueryHandler{db: db}
}

func (h SearchCombinationsByProductQueryHandler) Handle(
	ctx context.Context,
	query SearchCombinationsByProductQuery,
) ([]CombinationView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	needle, err := json.Marshal([]map[string]string{{"product_id": query.ProductID()}})
	if err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT `+combinationColumns+`
		FROM verified_combinations
		WHERE items @> ?::jsonb
		ORDER BY usage_count DESC, hash
	`, string(needle)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanCombinations(rows)
}

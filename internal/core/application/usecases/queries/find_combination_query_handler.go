package queries

import (
	"context"

	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
)

type FindCombinationQueryHandler struct {
	db *gorm.DB
}

func NewFindCombinationQueryHandler(db *gorm.DB) FindCombinationQueryHandler {
	return FindCombinationQueryHandler{db: db}
}

// Handle returns errs.ObjectNotFoundError when no record has the hash.
func (h FindCombinationQueryHandler) Handle(ctx context.Context, query FindCombinationQuery) (CombinationView, error) {
	if err := query.Validate(); err != nil {
		return CombinationView{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT `+combinationColumns+`
		FROM verified_combinations
		WHERE hash = ?
	`, query.Hash()).Rows()
	if err != nil {
		return CombinationView{}, err
	}
	defer rows.Close()

	views, err := scanCombinations(rows)
	if err != nil {
		return CombinationView{}, err
	}
	if len(views) == 0 {
		return CombinationView{}, errs.NewObjectNotFoundError("hash", query.Hash())
	}
	return views[0], nil
}

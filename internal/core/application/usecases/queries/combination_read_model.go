// Package queries contains the read-side use cases. Handlers read straight
// from the database with SQL instead of loading aggregates.
package queries

import (
	"database/sql"
	"encoding/json"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
)

// CombinationItem is one line of a verified combination.
type CombinationItem struct {
	ProductID string `json:"product_id"`
	SKU       string `json:"sku"`
	Quantity  int    `json:"quantity"`
}

// CombinationView is a verified combination as stored, active or not.
type CombinationView struct {
	Hash          string
	Items         []CombinationItem
	Weight        float64
	Dimensions    kernel.Dimensions
	VerifiedBy    string
	VerifiedAt    time.Time
	Notes         string
	UsageCount    int
	LastUsedAt    *time.Time
	IsActive      bool
	DeactivatedBy string
	DeactivatedAt *time.Time
}

const combinationColumns = `
	hash,
	items,
	weight,
	length,
	width,
	height,
	verified_by,
	verified_at,
	notes,
	usage_count,
	last_used_at,
	is_active,
	deactivated_by,
	deactivated_at`

func scanCombinations(rows *sql.Rows) ([]CombinationView, error) {
	views := make([]CombinationView, 0)
	for rows.Next() {
		var (
			v                     CombinationView
			items                 []byte
			length, width, height float64
			lastUsedAt            sql.NullTime
			deactivatedAt         sql.NullTime
			deactivatedBy         sql.NullString
			notes                 sql.NullString
		)

		err := rows.Scan(
			&v.Hash,
			&items,
			&v.Weight,
			&length,
			&width,
			&height,
			&v.VerifiedBy,
			&v.VerifiedAt,
			&notes,
			&v.UsageCount,
			&lastUsedAt,
			&v.IsActive,
			&deactivatedBy,
			&deactivatedAt,
		)
		if err != nil {
			return nil, err
		}

		if err = json.Unmarshal(items, &v.Items); err != nil {
			return nil, err
		}

		dims, dimErr := kernel.NewDimensions(length, width, height)
		if dimErr != nil {
			return nil, dimErr
		}
		v.Dimensions = dims
		v.Notes = notes.String
		v.DeactivatedBy = deactivatedBy.String
		if lastUsedAt.Valid {
			v.LastUsedAt = &lastUsedAt.Time
		}
		if deactivatedAt.Valid {
			v.DeactivatedAt = &deactivatedAt.Time
		}

		views = append(views, v)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return views, nil
}

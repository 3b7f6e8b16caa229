package combinationrepo

import (
	"context"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/combination"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormCombinationRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id string, aggregate any)
}

func NewGormCombinationRepository(db *gorm.DB, tracker aggregateTracker) *GormCombinationRepository {
	return &GormCombinationRepository{
		db:      db,
		tracker: tracker,
	}
}

// Save upserts by hash. Usage counters are never overwritten by a save, so a
// concurrent RecordUsage is not lost.
func (r *GormCombinationRepository) Save(ctx context.Context, aggregate *combination.VerifiedCombination) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "hash"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"items", "weight", "length", "width", "height",
			"verified_by", "verified_at", "notes", "is_active",
			"updated_by", "updated_at", "deactivated_by", "deactivated_at",
		}),
	}).Create(&dto).Error
	if err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.Hash(), aggregate)
	return nil
}

func (r *GormCombinationRepository) Get(ctx context.Context, hash string) (*combination.VerifiedCombination, error) {
	if hash == "" {
		return nil, errs.NewValueIsRequiredError("hash")
	}

	var dto CombinationDTO
	if err := r.db.WithContext(ctx).Take(&dto, "hash = ?", hash).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("combination", hash)
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormCombinationRepository) RecordUsage(ctx context.Context, hash string, at time.Time) error {
	result := r.db.WithContext(ctx).Model(&CombinationDTO{}).
		Where("hash = ?", hash).
		UpdateColumns(map[string]any{
			"usage_count":  gorm.Expr("usage_count + 1"),
			"last_used_at": gorm.Expr("GREATEST(COALESCE(last_used_at, ?), ?)", at, at),
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("combination", hash)
	}
	return nil
}

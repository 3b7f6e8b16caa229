package couponrepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/coupon"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormCouponRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id string, aggregate any)
}

func NewGormCouponRepository(db *gorm.DB, tracker aggregateTracker) *GormCouponRepository {
	return &GormCouponRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormCouponRepository) Add(ctx context.Context, aggregate *coupon.Coupon) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID().String(), aggregate)
	return nil
}

func (r *GormCouponRepository) FindActiveByCode(ctx context.Context, code string) (*coupon.Coupon, error) {
	return r.findActive(r.db.WithContext(ctx), code)
}

func (r *GormCouponRepository) LockActiveByCode(ctx context.Context, code string) (*coupon.Coupon, error) {
	return r.findActive(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}), code)
}

func (r *GormCouponRepository) findActive(db *gorm.DB, code string) (*coupon.Coupon, error) {
	code = coupon.NormalizeCode(code)

	var dto CouponDTO
	if err := db.Where("code = ? AND is_active", code).Take(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("coupon", code)
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormCouponRepository) CountUsages(
	ctx context.Context,
	couponID kernel.UUID,
	customerID, phone string,
) (int64, error) {
	if customerID == "" && phone == "" {
		return 0, nil
	}

	var count int64
	err := r.db.WithContext(ctx).Model(&CouponUsageDTO{}).
		Where("coupon_id = ?", couponID.Bytes()).
		Where("(customer_id <> '' AND customer_id = ?) OR (phone <> '' AND phone = ?)", customerID, phone).
		Count(&count).Error
	return count, err
}

// RecordUsage runs in a nested transaction (a savepoint when the caller already
// has one open), so the ledger row and the counter move together.
func (r *GormCouponRepository) RecordUsage(ctx context.Context, usage coupon.Usage) error {
	dto := usageFromDomain(usage)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&dto).Error; err != nil {
			return err
		}

		result := tx.Model(&CouponDTO{}).
			Where("id = ?", dto.CouponID).
			UpdateColumn("current_usage_count", gorm.Expr("current_usage_count + 1"))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errs.NewObjectNotFoundError("coupon", usage.CouponID.String())
		}

		r.tracker.TrackAggregate(usage.CouponID.String(), usage)
		return nil
	})
}

package orderrepo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
)

type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id string, aggregate any)
}

func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
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

func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	return r.update(ctx, aggregate, nil)
}

func (r *GormOrderRepository) UpdateFromStatus(
	ctx context.Context,
	aggregate *order.Order,
	expected order.Status,
) error {
	return r.update(ctx, aggregate, &expected)
}

// update writes every column except the identity, creation time and shipment
// claim, guarded by the loaded version and optionally by the stored status.
func (r *GormOrderRepository) update(ctx context.Context, aggregate *order.Order, expected *order.Status) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	dto.Version = aggregate.Version() + 1

	q := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ? AND version = ?", dto.ID, aggregate.Version())
	if expected != nil {
		q = q.Where("status = ?", int(*expected))
	}

	result := q.Select("*").Omit("id", "created_at", "shipment_claimed_at").Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return r.conflict(ctx, aggregate, expected)
	}

	r.tracker.TrackAggregate(aggregate.ID().String(), aggregate)
	return nil
}

// conflict tells a missing row from a stale version or a status change.
func (r *GormOrderRepository) conflict(ctx context.Context, aggregate *order.Order, expected *order.Status) error {
	var current struct {
		Version int
		Status  int
	}
	err := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Select("version", "status").
		Where("id = ?", aggregate.ID().Bytes()).
		Take(&current).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return gorm.ErrRecordNotFound
	}
	if err != nil {
		return err
	}

	cause := fmt.Errorf("loaded version %d, stored version %d", aggregate.Version(), current.Version)
	if expected != nil && current.Status != int(*expected) {
		cause = fmt.Errorf("expected status %s, stored status %s", expected, order.Status(current.Status))
	}
	return errs.NewVersionIsInvalidError("order", cause)
}

func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormOrderRepository) CountByPhone(ctx context.Context, phone string, exclude kernel.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("phone = ? AND id <> ?", phone, exclude.Bytes()).
		Count(&count).Error
	return count, err
}

// CountByCustomer matches customer_id when customerID parses as an id and phone
// when it is set. With neither it returns 0.
func (r *GormOrderRepository) CountByCustomer(
	ctx context.Context,
	customerID, phone string,
	exclude kernel.UUID,
) (int64, error) {
	var conds []string
	var args []any
	if id, err := kernel.UUIDFromString(customerID); customerID != "" && err == nil {
		conds = append(conds, "customer_id = ?")
		args = append(args, id.Bytes())
	}
	if phone != "" {
		conds = append(conds, "phone = ?")
		args = append(args, phone)
	}
	if len(conds) == 0 {
		return 0, nil
	}

	var count int64
	err := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("("+strings.Join(conds, " OR ")+")", args...).
		Where("id <> ?", exclude.Bytes()).
		Count(&count).Error
	return count, err
}

func (r *GormOrderRepository) ClaimShipment(
	ctx context.Context,
	id kernel.UUID,
	at time.Time,
	ttl time.Duration,
) (bool, error) {
	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ? AND status = ?", id.Bytes(), int(order.Approved)).
		Where("shipment_claimed_at IS NULL OR shipment_claimed_at < ?", at.Add(-ttl)).
		UpdateColumn("shipment_claimed_at", at)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *GormOrderRepository) ReleaseShipmentClaim(ctx context.Context, id kernel.UUID) error {
	return r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ?", id.Bytes()).
		UpdateColumn("shipment_claimed_at", nil).Error
}

package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/coupon"
	"fulfillment/internal/core/domain/model/kernel"
)

type CouponRepository interface {
	Add(ctx context.Context, aggregate *coupon.Coupon) error

	// FindActiveByCode looks a coupon up by normalised code among active coupons.
	FindActiveByCode(ctx context.Context, code string) (*coupon.Coupon, error)

	// LockActiveByCode is FindActiveByCode with SELECT ... FOR UPDATE.
	LockActiveByCode(ctx context.Context, code string) (*coupon.Coupon, error)

	// CountUsages counts ledger rows of the coupon redeemed by customerID or phone.
	CountUsages(ctx context.Context, couponID kernel.UUID, customerID, phone string) (int64, error)

	// RecordUsage inserts the ledger row and increments the coupon's usage
	// counter atomically. Neither happens without the other.
	RecordUsage(ctx context.Context, usage coupon.Usage) error
}

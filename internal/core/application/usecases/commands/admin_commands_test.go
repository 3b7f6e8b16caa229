package commands_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/coupon"
	"fulfillment/internal/core/domain/model/settings"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type countingInvalidator struct{ calls int }

func (c *countingInvalidator) Invalidate() { c.calls++ }

func TestUpdateApprovalSettings_SavesAndInvalidatesCache(t *testing.T) {
	ctx := t.Context()
	uow := newMockUoW()
	uow.allowRollback()
	mock.InOrder(
		uow.On("Begin", mock.Anything).Return(nil).Once(),
		uow.settings.On("SaveApprovalSettings", mock.Anything, mock.MatchedBy(func(s settings.ApprovalSettings) bool {
			return s.MinCustomerAgeDays == 14 && s.AllowNewCustomers && s.MaxAutoApprovalValue.Equal(decimal.NewFromInt(2500))
		})).Return(nil).Once(),
		uow.On("Commit", mock.Anything).Return(nil).Once(),
	)
	cache := &countingInvalidator{}

	cmd, err := commands.NewUpdateApprovalSettingsCommand(14, true, decimal.NewFromInt(2500), false)
	require.NoError(t, err)

	h := commands.NewUpdateApprovalSettingsCommandHandler(settingsUoWFactory{uow}, cache, discardLogger())
	require.NoError(t, h.Handle(ctx, cmd))

	assert.Equal(t, 1, cache.calls)
	uow.assertAll(t)
}

func TestNewUpdateApprovalSettingsCommand_RejectsNegativeValues(t *testing.T) {
	_, err := commands.NewUpdateApprovalSettingsCommand(-1, false, decimal.NewFromInt(-5), false)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestCreateCoupon_DuplicateActiveCodeIsRefused(t *testing.T) {
	ctx := t.Context()
	existing := storedCoupon(t, coupon.Definition{})

	uow := newMockUoW()
	uow.allowRollback()
	uow.On("Begin", mock.Anything).Return(nil).Once()
	uow.coupons.On("FindActiveByCode", mock.Anything, "SAVE10").Return(existing, nil).Once()

	cmd, err := commands.NewCreateCouponCommand(coupon.Definition{
		Code:         " save10 ",
		DiscountType: coupon.DiscountFixedAmount,
		Value:        decimal.NewFromInt(100),
		UsageType:    coupon.MultiUse,
		ValidFrom:    testNow,
	})
	require.NoError(t, err)

	_, err = commands.NewCreateCouponCommandHandler(couponUoWFactory{uow}).Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrInvariantViolation)
	uow.coupons.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}

func TestCreateCoupon_Stores(t *testing.T) {
	ctx := t.Context()
	uow := newMockUoW()
	uow.allowRollback()
	mock.InOrder(
		uow.On("Begin", mock.Anything).Return(nil).Once(),
		uow.coupons.On("FindActiveByCode", mock.Anything, "WELCOME").
			Return(nil, errs.NewObjectNotFoundError("code", "WELCOME")).Once(),
		uow.coupons.On("Add", mock.Anything, mock.MatchedBy(func(c *coupon.Coupon) bool {
			return c.Code() == "WELCOME" && c.Eligibility() == coupon.EligibleAll && c.IsActive()
		})).Return(nil).Once(),
		uow.On("Commit", mock.Anything).Return(nil).Once(),
	)

	cmd, err := commands.NewCreateCouponCommand(coupon.Definition{
		Code:         "welcome",
		DiscountType: coupon.DiscountPercentage,
		Value:        decimal.NewFromInt(15),
		UsageType:    coupon.SingleUse,
		ValidFrom:    testNow,
	})
	require.NoError(t, err)

	id, err := commands.NewCreateCouponCommandHandler(couponUoWFactory{uow}).Handle(ctx, cmd)
	require.NoError(t, err)
	require.NoError(t, id.Validate())
	uow.assertAll(t)
}

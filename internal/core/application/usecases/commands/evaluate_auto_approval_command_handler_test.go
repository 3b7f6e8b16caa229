package commands_test

import (
	"errors"
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/settings"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func approvalSettings(t *testing.T, allowNew bool, limit int64) *settings.ApprovalSettings {
	t.Helper()
	s, err := settings.NewApprovalSettings(30, allowNew, decimal.NewFromInt(limit), false)
	require.NoError(t, err)
	return &s
}

func approvalHandler(
	uow *MockUoW,
	provider *MockSettingsProvider,
	intelligence *MockIntelligence,
) commands.EvaluateAutoApprovalCommandHandler {
	observer, _, _ := quietObserver()
	return commands.NewEvaluateAutoApprovalCommandHandler(
		customerUoWFactory{uow}, provider, intelligence, observer, fixedClock{testNow}, discardLogger(),
	)
}

func TestEvaluateAutoApproval_ReturningCustomerIsApproved(t *testing.T) {
	ctx := t.Context()
	o := restoreOrder(t, orderFixture{status: order.CreatedPending, total: 800})
	c := restoreCustomer(t, o.Phone(), 4, testNow.Add(-90*24*time.Hour))

	provider := new(MockSettingsProvider)
	provider.On("ApprovalSettings", mock.Anything).Return(approvalSettings(t, false, 1000), nil).Once()

	uow := newMockUoW()
	uow.allowRollback()
	mock.InOrder(
		uow.orders.On("Get", mock.Anything, o.ID()).Return(o, nil).Once(),
		uow.customers.On("FindByPhone", mock.Anything, o.Phone()).Return(c, nil).Once(),
		uow.On("Begin", mock.Anything).Return(nil).Once(),
		uow.orders.On("UpdateFromStatus", mock.Anything, o, order.CreatedPending).Return(nil).Once(),
		uow.On("Commit", mock.Anything).Return(nil).Once(),
	)

	intelligence := new(MockIntelligence)
	intelligence.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.UpdateCustomerIntelligenceCommand) bool {
		return cmd.NewStatus() == order.Approved && cmd.OrderID().IsEqual(o.ID())
	})).Return(commands.IntelligenceOutcome{Applied: true}).Once()

	cmd, err := commands.NewEvaluateAutoApprovalCommand(o.ID())
	require.NoError(t, err)

	out := approvalHandler(uow, provider, intelligence).Handle(ctx, cmd)

	require.NoError(t, out.Err)
	assert.True(t, out.Approved)
	assert.Equal(t, order.Approved, o.Status())
	assert.Equal(t, order.AutoApprover, o.Approval().ApprovedBy)
	intelligence.AssertExpectations(t)
	uow.assertAll(t)
}

func TestEvaluateAutoApproval_ValueAboveLimitStaysPending(t *testing.T) {
	ctx := t.Context()
	o := restoreOrder(t, orderFixture{status: order.CreatedPending, total: 5000})
	c := restoreCustomer(t, o.Phone(), 4, testNow.Add(-90*24*time.Hour))

	provider := new(MockSettingsProvider)
	provider.On("ApprovalSettings", mock.Anything).Return(approvalSettings(t, true, 1000), nil).Once()
	uow := newMockUoW()
	uow.orders.On("Get", mock.Anything, o.ID()).Return(o, nil).Once()
	uow.customers.On("FindByPhone", mock.Anything, o.Phone()).Return(c, nil).Once()
	intelligence := new(MockIntelligence)

	cmd, err := commands.NewEvaluateAutoApprovalCommand(o.ID())
	require.NoError(t, err)

	out := approvalHandler(uow, provider, intelligence).Handle(ctx, cmd)

	require.NoError(t, out.Err)
	assert.False(t, out.Approved)
	assert.Equal(t, services.ApprovalReasonValueAboveLimit, out.Reason)
	assert.Equal(t, order.CreatedPending, o.Status())
	uow.AssertNotCalled(t, "Begin", mock.Anything)
	intelligence.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}

func TestEvaluateAutoApproval_UnknownCustomerIsNotApproved(t *testing.T) {
	ctx := t.Context()
	o := restoreOrder(t, orderFixture{status: order.CreatedPending, total: 100})

	provider := new(MockSettingsProvider)
	provider.On("ApprovalSettings", mock.Anything).Return(approvalSettings(t, true, 1000), nil).Once()
	uow := newMockUoW()
	uow.orders.On("Get", mock.Anything, o.ID()).Return(o, nil).Once()
	uow.customers.On("FindByPhone", mock.Anything, o.Phone()).
		Return(nil, errs.NewObjectNotFoundError("phone", o.Phone())).Once()

	cmd, err := commands.NewEvaluateAutoApprovalCommand(o.ID())
	require.NoError(t, err)

	out := approvalHandler(uow, provider, new(MockIntelligence)).Handle(ctx, cmd)

	require.NoError(t, out.Err)
	assert.False(t, out.Approved)
	assert.Equal(t, services.ApprovalReasonNoCustomer, out.Reason)
}

func TestEvaluateAutoApproval_SettingsFailureIsSwallowed(t *testing.T) {
	ctx := t.Context()
	o := restoreOrder(t, orderFixture{status: order.CreatedPending, total: 100})

	provider := new(MockSettingsProvider)
	provider.On("ApprovalSettings", mock.Anything).Return(nil, errors.New("db down")).Once()
	uow := newMockUoW()

	cmd, err := commands.NewEvaluateAutoApprovalCommand(o.ID())
	require.NoError(t, err)

	out := approvalHandler(uow, provider, new(MockIntelligence)).Handle(ctx, cmd)

	require.Error(t, out.Err)
	assert.False(t, out.Approved)
	uow.assertAll(t)
}

func TestEvaluateAutoApproval_ConcurrentChangeIsNotAnError(t *testing.T) {
	ctx := t.Context()
	o := restoreOrder(t, orderFixture{status: order.CreatedPending, total: 100})
	c := restoreCustomer(t, o.Phone(), 4, testNow.Add(-90*24*time.Hour))

	provider := new(MockSettingsProvider)
	provider.On("ApprovalSettings", mock.Anything).Return(approvalSettings(t, true, 1000), nil).Once()
	uow := newMockUoW()
	uow.allowRollback()
	uow.orders.On("Get", mock.Anything, o.ID()).Return(o, nil).Once()
	uow.customers.On("FindByPhone", mock.Anything, o.Phone()).Return(c, nil).Once()
	uow.On("Begin", mock.Anything).Return(nil).Once()
	uow.orders.On("UpdateFromStatus", mock.Anything, o, order.CreatedPending).
		Return(errs.NewVersionIsInvalidError("order", nil)).Once()
	intelligence := new(MockIntelligence)

	cmd, err := commands.NewEvaluateAutoApprovalCommand(o.ID())
	require.NoError(t, err)

	out := approvalHandler(uow, provider, intelligence).Handle(ctx, cmd)

	require.NoError(t, out.Err)
	assert.False(t, out.Approved)
	assert.Equal(t, commands.ApprovalReasonConcurrentUpdate, out.Reason)
	intelligence.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}

package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOutbox struct{ mock.Mock }

func (m *MockOutbox) ClaimPending(ctx context.Context, limit int) ([]ports.Notification, error) {
	args := m.Called(ctx, limit)
	if n, ok := args.Get(0).([]ports.Notification); ok {
		return n, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOutbox) MarkSent(ctx context.Context, id kernel.UUID, messageID string, at time.Time) error {
	return m.Called(ctx, id, messageID, at).Error(0)
}

func (m *MockOutbox) MarkFailed(ctx context.Context, id kernel.UUID, reason string, at time.Time) error {
	return m.Called(ctx, id, reason, at).Error(0)
}

type MockDispatcher struct{ mock.Mock }

func (m *MockDispatcher) Send(
	ctx context.Context,
	kind ports.NotificationKind,
	phone string,
	data map[string]string,
) ports.DispatchResult {
	return m.Called(ctx, kind, phone, data).Get(0).(ports.DispatchResult)
}

func TestDispatchNotifications_SendsAndMarksEachClaimedRow(t *testing.T) {
	ctx := t.Context()
	ok := ports.Notification{ID: kernel.NewUUID(), OrderID: kernel.NewUUID(), Kind: ports.NotificationPlaced,
		Phone: "+919800000001", Data: map[string]string{"order_id": "a"}}
	bad := ports.Notification{ID: kernel.NewUUID(), OrderID: kernel.NewUUID(), Kind: ports.NotificationShipped,
		Phone: "+919800000002", Data: map[string]string{"order_id": "b"}}

	outbox := new(MockOutbox)
	dispatcher := new(MockDispatcher)
	mock.InOrder(
		outbox.On("ClaimPending", mock.Anything, 25).Return([]ports.Notification{ok, bad}, nil).Once(),
		dispatcher.On("Send", mock.Anything, ok.Kind, ok.Phone, ok.Data).
			Return(ports.DispatchResult{Success: true, MessageID: "wamid.1"}).Once(),
		outbox.On("MarkSent", mock.Anything, ok.ID, "wamid.1", testNow).Return(nil).Once(),
		dispatcher.On("Send", mock.Anything, bad.Kind, bad.Phone, bad.Data).
			Return(ports.DispatchResult{Error: "template not approved"}).Once(),
		outbox.On("MarkFailed", mock.Anything, bad.ID, "template not approved", testNow).Return(nil).Once(),
	)

	cmd, err := commands.NewDispatchNotificationsCommand(25)
	require.NoError(t, err)

	h := commands.NewDispatchNotificationsCommandHandler(outbox, dispatcher, fixedClock{testNow}, discardLogger())
	report, err := h.Handle(ctx, cmd)
	require.NoError(t, err)

	assert.Equal(t, commands.DispatchReport{Claimed: 2, Sent: 1, Failed: 1}, report)
	outbox.AssertExpectations(t)
	dispatcher.AssertExpectations(t)
}

func TestDispatchNotifications_ClaimFailure(t *testing.T) {
	outbox := new(MockOutbox)
	outbox.On("ClaimPending", mock.Anything, 10).Return(nil, errors.New("db down")).Once()
	dispatcher := new(MockDispatcher)

	cmd, err := commands.NewDispatchNotificationsCommand(10)
	require.NoError(t, err)

	h := commands.NewDispatchNotificationsCommandHandler(outbox, dispatcher, fixedClock{testNow}, discardLogger())
	_, err = h.Handle(t.Context(), cmd)

	require.Error(t, err)
	dispatcher.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestNewDispatchNotificationsCommand_RejectsEmptyBatch(t *testing.T) {
	_, err := commands.NewDispatchNotificationsCommand(0)
	require.Error(t, err)
}

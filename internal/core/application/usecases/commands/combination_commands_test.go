package commands_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/combination"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var comboItems = []combination.Item{
	{ProductID: "prod-1", SKU: "SKU-1", Quantity: 1},
	{ProductID: "prod-2", SKU: "SKU-2", Quantity: 2},
}

func TestNewSaveCombinationCommand_Validation(t *testing.T) {
	_, err := commands.NewSaveCombinationCommand(nil, 0, kernel.Dimensions{}, "", "")
	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestSaveCombination_CreatesNewRecord(t *testing.T) {
	ctx := t.Context()
	hash := combination.HashItems(comboItems)

	uow := newMockUoW()
	uow.allowRollback()
	mock.InOrder(
		uow.On("Begin", mock.Anything).Return(nil).Once(),
		uow.combinations.On("Get", mock.Anything, hash).Return(nil, errs.NewObjectNotFoundError("hash", hash)).Once(),
		uow.combinations.On("Save", mock.Anything, mock.MatchedBy(func(c *combination.VerifiedCombination) bool {
			return c.Hash() == hash && c.IsActive() && c.UsageCount() == 0 && c.VerifiedBy() == "ops@example.com"
		})).Return(nil).Once(),
		uow.On("Commit", mock.Anything).Return(nil).Once(),
	)

	cmd, err := commands.NewSaveCombinationCommand(comboItems, 900, kernel.MustNewDimensions(30, 20, 10),
		"ops@example.com", "weighed at dock 2")
	require.NoError(t, err)

	got, err := commands.NewSaveCombinationCommandHandler(combinationUoWFactory{uow}, fixedClock{testNow}).Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, hash, got)
	uow.assertAll(t)
}

func TestSaveCombination_ReactivatesDeactivatedRecord(t *testing.T) {
	ctx := t.Context()
	existing, err := combination.NewVerifiedCombination(comboItems, 800, kernel.MustNewDimensions(25, 20, 10),
		"first@example.com", "", testNow.Add(-30*24*time.Hour))
	require.NoError(t, err)
	existing.RecordUsage(testNow.Add(-24 * time.Hour))
	require.NoError(t, existing.Deactivate("ops@example.com", testNow.Add(-time.Hour)))

	uow := newMockUoW()
	uow.allowRollback()
	uow.On("Begin", mock.Anything).Return(nil).Once()
	uow.combinations.On("Get", mock.Anything, existing.Hash()).Return(existing, nil).Once()
	uow.combinations.On("Save", mock.Anything, existing).Return(nil).Once()
	uow.On("Commit", mock.Anything).Return(nil).Once()

	cmd, err := commands.NewSaveCombinationCommand(comboItems, 950, kernel.MustNewDimensions(30, 20, 10), "ops@example.com", "")
	require.NoError(t, err)

	_, err = commands.NewSaveCombinationCommandHandler(combinationUoWFactory{uow}, fixedClock{testNow}).Handle(ctx, cmd)
	require.NoError(t, err)

	assert.True(t, existing.IsActive())
	assert.InDelta(t, 950.0, existing.Weight(), 1e-9)
	assert.Equal(t, 1, existing.UsageCount())
	uow.assertAll(t)
}

func TestUpdateCombination_UnknownHash(t *testing.T) {
	ctx := t.Context()
	uow := newMockUoW()
	uow.allowRollback()
	uow.On("Begin", mock.Anything).Return(nil).Once()
	uow.combinations.On("Get", mock.Anything, "deadbeef").Return(nil, errs.NewObjectNotFoundError("hash", "deadbeef")).Once()

	cmd, err := commands.NewUpdateCombinationCommand("deadbeef", 100, kernel.MustNewDimensions(1, 1, 1), "ops", "")
	require.NoError(t, err)

	err = commands.NewUpdateCombinationCommandHandler(combinationUoWFactory{uow}, fixedClock{testNow}).Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	uow.combinations.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestDeactivateCombination(t *testing.T) {
	ctx := t.Context()
	existing, err := combination.NewVerifiedCombination(comboItems, 800, kernel.MustNewDimensions(25, 20, 10),
		"first@example.com", "", testNow.Add(-30*24*time.Hour))
	require.NoError(t, err)

	uow := newMockUoW()
	uow.allowRollback()
	uow.On("Begin", mock.Anything).Return(nil).Once()
	uow.combinations.On("Get", mock.Anything, existing.Hash()).Return(existing, nil).Once()
	uow.combinations.On("Save", mock.Anything, existing).Return(nil).Once()
	uow.On("Commit", mock.Anything).Return(nil).Once()

	cmd, err := commands.NewDeactivateCombinationCommand(existing.Hash(), "ops@example.com")
	require.NoError(t, err)

	err = commands.NewDeactivateCombinationCommandHandler(combinationUoWFactory{uow}, fixedClock{testNow}).Handle(ctx, cmd)
	require.NoError(t, err)

	assert.False(t, existing.IsActive())
	assert.Equal(t, "ops@example.com", existing.DeactivatedBy())
	uow.assertAll(t)
}

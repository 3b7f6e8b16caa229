package combinationrepo_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/postgres/combinationrepo"
	"fulfillment/internal/adapters/out/postgres/pgtest"
	"fulfillment/internal/core/domain/model/combination"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/gorm"
)

var testNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

type CombinationRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *combinationrepo.GormCombinationRepository
}

func (suite *CombinationRepositoryIntegrationTestSuite) SetupSuite() {
	container, db, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.container = container
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&combinationrepo.CombinationDTO{}))
}

func (suite *CombinationRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE verified_combinations").Error)
	suite.repository = combinationrepo.NewGormCombinationRepository(suite.db, pgtest.NoopTracker{})
}

func (suite *CombinationRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func items() []combination.Item {
	return []combination.Item{
		{ProductID: "p1", SKU: "TEE-M", Quantity: 2},
		{ProductID: "p2", SKU: "CAP-1", Quantity: 1},
	}
}

func (suite *CombinationRepositoryIntegrationTestSuite) TestSaveAndGet() {
	ctx := context.Background()
	c, err := combination.NewVerifiedCombination(items(), 1.2, kernel.MustNewDimensions(30, 20, 8), "ops@shop", "", testNow)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Save(ctx, c))

	got, err := suite.repository.Get(ctx, combination.HashItems(items()))
	suite.Require().NoError(err)
	suite.Equal(c.Hash(), got.Hash())
	suite.InDelta(1.2, got.Weight(), 1e-9)
	suite.True(got.Dimensions().Equals(kernel.MustNewDimensions(30, 20, 8)))
	suite.ElementsMatch(items(), got.Items())
	suite.True(got.IsActive())
	suite.Zero(got.UsageCount())
}

func (suite *CombinationRepositoryIntegrationTestSuite) TestGet_Unknown_ReturnsNotFound() {
	_, err := suite.repository.Get(context.Background(), "deadbeef")
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *CombinationRepositoryIntegrationTestSuite) TestSave_UpsertKeepsUsageCounters() {
	ctx := context.Background()
	c, err := combination.NewVerifiedCombination(items(), 1.2, kernel.MustNewDimensions(30, 20, 8), "ops@shop", "", testNow)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Save(ctx, c))
	suite.Require().NoError(suite.repository.RecordUsage(ctx, c.Hash(), testNow.Add(time.Hour)))

	suite.Require().NoError(c.Deactivate("ops@shop", testNow.Add(2*time.Hour)))
	suite.Require().NoError(suite.repository.Save(ctx, c))

	got, err := suite.repository.Get(ctx, c.Hash())
	suite.Require().NoError(err)
	suite.False(got.IsActive())
	suite.Equal("ops@shop", got.DeactivatedBy())
	suite.Equal(1, got.UsageCount())
}

func (suite *CombinationRepositoryIntegrationTestSuite) TestRecordUsage_LastUsedNeverMovesBackwards() {
	ctx := context.Background()
	c, err := combination.NewVerifiedCombination(items(), 1.2, kernel.MustNewDimensions(30, 20, 8), "ops@shop", "", testNow)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Save(ctx, c))

	later := testNow.Add(2 * time.Hour)
	suite.Require().NoError(suite.repository.RecordUsage(ctx, c.Hash(), later))
	suite.Require().NoError(suite.repository.RecordUsage(ctx, c.Hash(), testNow.Add(time.Hour)))

	got, err := suite.repository.Get(ctx, c.Hash())
	suite.Require().NoError(err)
	suite.Equal(2, got.UsageCount())
	suite.Require().NotNil(got.LastUsedAt())
	suite.WithinDuration(later, *got.LastUsedAt(), time.Second)
}

func (suite *CombinationRepositoryIntegrationTestSuite) TestRecordUsage_UnknownHash_ReturnsNotFound() {
	err := suite.repository.RecordUsage(context.Background(), "deadbeef", testNow)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func TestCombinationRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(CombinationRepositoryIntegrationTestSuite))
}

package queries_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/adapters/out/postgres/combinationrepo"
	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/adapters/out/postgres/pgtest"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/combination"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/gorm"
)

var testNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

type ReadModelQueriesTestSuite struct {
	suite.Suite
	container    *postgres.PostgresContainer
	db           *gorm.DB
	combinations *combinationrepo.GormCombinationRepository
	orders       *orderrepo.GormOrderRepository
}

func (suite *ReadModelQueriesTestSuite) SetupSuite() {
	container, db, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.container = container
	suite.db = db

	suite.Require().NoError(postgres_adapter.Migrate(db))
	suite.combinations = combinationrepo.NewGormCombinationRepository(db, pgtest.NoopTracker{})
	suite.orders = orderrepo.NewGormOrderRepository(db, pgtest.NoopTracker{})
}

func (suite *ReadModelQueriesTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *ReadModelQueriesTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE verified_combinations, orders").Error)
}

func (suite *ReadModelQueriesTestSuite) saveCombination(uses int, active bool, items ...combination.Item) *combination.VerifiedCombination {
	ctx := context.Background()
	c, err := combination.NewVerifiedCombination(items, 1.1, kernel.MustNewDimensions(25, 20, 10), "ops@shop", "boxed", testNow)
	suite.Require().NoError(err)
	if !active {
		suite.Require().NoError(c.Deactivate("ops@shop", testNow))
	}
	suite.Require().NoError(suite.combinations.Save(ctx, c))
	for i := range uses {
		suite.Require().NoError(suite.combinations.RecordUsage(ctx, c.Hash(), testNow.Add(time.Duration(i)*time.Minute)))
	}
	return c
}

func tee(qty int) combination.Item {
	return combination.Item{ProductID: "tee", SKU: "TEE-M", Quantity: qty}
}
func cap1() combination.Item { return combination.Item{ProductID: "cap", SKU: "CAP-1", Quantity: 1} }
func mug() combination.Item  { return combination.Item{ProductID: "mug", SKU: "MUG-1", Quantity: 1} }

func (suite *ReadModelQueriesTestSuite) TestFindCombination_IgnoresItemOrder() {
	saved := suite.saveCombination(0, true, tee(2), cap1())

	query, err := queries.NewFindCombinationQuery([]combination.Item{cap1(), tee(2)})
	suite.Require().NoError(err)

	got, err := queries.NewFindCombinationQueryHandler(suite.db).Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Equal(saved.Hash(), got.Hash)
	suite.Equal("boxed", got.Notes)
	suite.True(got.Dimensions.Equals(kernel.MustNewDimensions(25, 20, 10)))
	suite.Len(got.Items, 2)
	suite.Nil(got.LastUsedAt)
}

func (suite *ReadModelQueriesTestSuite) TestFindCombination_QuantityChangeMisses() {
	suite.saveCombination(0, true, tee(2), cap1())

	query, err := queries.NewFindCombinationQuery([]combination.Item{tee(3), cap1()})
	suite.Require().NoError(err)

	_, err = queries.NewFindCombinationQueryHandler(suite.db).Handle(context.Background(), query)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *ReadModelQueriesTestSuite) TestListCombinations_MostUsedFirstAndActiveFilter() {
	popular := suite.saveCombination(3, true, tee(2), cap1())
	quiet := suite.saveCombination(1, true, tee(1), mug())
	retired := suite.saveCombination(5, false, cap1(), mug())

	handler := queries.NewListCombinationsQueryHandler(suite.db)

	all, err := queries.NewListCombinationsQuery(false, 0, 0)
	suite.Require().NoError(err)
	got, err := handler.Handle(context.Background(), all)
	suite.Require().NoError(err)
	suite.Require().Len(got, 3)
	suite.Equal([]string{retired.Hash(), popular.Hash(), quiet.Hash()},
		[]string{got[0].Hash, got[1].Hash, got[2].Hash})
	suite.Equal("ops@shop", got[0].DeactivatedBy)

	activePage, err := queries.NewListCombinationsQuery(true, 1, 1)
	suite.Require().NoError(err)
	got, err = handler.Handle(context.Background(), activePage)
	suite.Require().NoError(err)
	suite.Require().Len(got, 1)
	suite.Equal(quiet.Hash(), got[0].Hash)
}

func (suite *ReadModelQueriesTestSuite) TestSearchCombinationsByProduct() {
	withCap := suite.saveCombination(2, true, tee(2), cap1())
	alsoCap := suite.saveCombination(0, false, cap1(), mug())
	suite.saveCombination(0, true, tee(1), mug())

	query, err := queries.NewSearchCombinationsByProductQuery("cap")
	suite.Require().NoError(err)

	got, err := queries.NewSearchCombinationsByProductQueryHandler(suite.db).Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Require().Len(got, 2)
	suite.Equal(withCap.Hash(), got[0].Hash)
	suite.Equal(alsoCap.Hash(), got[1].Hash)
}

func (suite *ReadModelQueriesTestSuite) TestCombinationStats() {
	handler := queries.NewCombinationStatsQueryHandler(suite.db)

	empty, err := handler.Handle(context.Background(), queries.NewCombinationStatsQuery())
	suite.Require().NoError(err)
	suite.Equal(queries.CombinationStats{}, empty)

	top := suite.saveCombination(4, true, tee(2), cap1())
	suite.saveCombination(1, true, tee(1), mug())
	suite.saveCombination(0, false, cap1(), mug())

	stats, err := handler.Handle(context.Background(), queries.NewCombinationStatsQuery())
	suite.Require().NoError(err)
	suite.Equal(int64(3), stats.Total)
	suite.Equal(int64(2), stats.Active)
	suite.Equal(int64(5), stats.TotalUsage)
	suite.Equal(top.Hash(), stats.MostUsedHash)
	suite.Equal(int64(4), stats.MostUsedCount)
}

func (suite *ReadModelQueriesTestSuite) newOrder(minutesAgo int) *order.Order {
	item, err := order.NewItem("tee", "TEE-M", 1, decimal.NewFromInt(400))
	suite.Require().NoError(err)
	pricing, err := order.NewPricing(decimal.NewFromInt(400), decimal.Zero, decimal.Zero, decimal.Zero, decimal.Zero)
	suite.Require().NoError(err)
	o, err := order.NewOrder(kernel.NewUUID(), "+919800000001", order.Address{Name: "Asha"}, []order.Item{item},
		order.Payment{Method: order.PaymentPrepaid, Status: order.PaymentCompleted}, pricing,
		testNow.Add(-time.Duration(minutesAgo)*time.Minute))
	suite.Require().NoError(err)
	return o
}

func (suite *ReadModelQueriesTestSuite) TestGetOrdersAwaitingAction() {
	ctx := context.Background()

	pending := suite.newOrder(30)

	held := suite.newOrder(20)
	suite.Require().NoError(held.ApplyResolution(held.Items(), nil, nil, true, testNow))

	approved := suite.newOrder(10)
	suite.Require().NoError(approved.ConfirmDimensions(0.4, kernel.MustNewDimensions(20, 15, 3), testNow))
	suite.Require().NoError(approved.Approve("ops@shop", testNow))
	suite.Require().NoError(approved.RecordShipmentAttempt(order.ShipmentAttempt{
		Carrier: "delhivery", Mode: order.ShipmentModeAPI, Error: "pincode not serviceable", At: testNow,
	}))

	cancelled := suite.newOrder(5)
	suite.Require().NoError(cancelled.TransitionTo(order.Cancelled, testNow))

	for _, o := range []*order.Order{approved, cancelled, held, pending} {
		suite.Require().NoError(suite.orders.Add(ctx, o))
	}

	got, err := queries.NewGetOrdersAwaitingActionQueryHandler(suite.db).
		Handle(ctx, queries.NewGetOrdersAwaitingActionQuery())
	suite.Require().NoError(err)
	suite.Require().Len(got, 3)

	suite.Equal(pending.ID(), got[0].ID)
	suite.Equal(order.CreatedPending, got[0].Status)
	suite.False(got[0].HasDimensions)

	suite.Equal(held.ID(), got[1].ID)
	suite.Equal(order.NeedsManualVerification, got[1].Status)

	suite.Equal(approved.ID(), got[2].ID)
	suite.True(got[2].HasDimensions)
	suite.Equal("pincode not serviceable", got[2].LastShipmentError)
	suite.Equal(order.PaymentPrepaid, got[2].PaymentMethod)
	suite.Equal("400.00", got[2].GrandTotal.StringFixed(2))
}

func (suite *ReadModelQueriesTestSuite) TestHandle_NotConstructed_ReturnsError() {
	_, err := queries.NewGetOrdersAwaitingActionQueryHandler(suite.db).
		Handle(context.Background(), queries.GetOrdersAwaitingActionQuery{})
	suite.Require().ErrorIs(err, queries.ErrGetOrdersAwaitingActionQueryIsNotConstructed)

	_, err = queries.NewListCombinationsQueryHandler(suite.db).
		Handle(context.Background(), queries.ListCombinationsQuery{})
	suite.Require().ErrorIs(err, queries.ErrListCombinationsQueryIsNotConstructed)
}

func TestReadModelQueriesTestSuite(t *testing.T) {
	suite.Run(t, new(ReadModelQueriesTestSuite))
}

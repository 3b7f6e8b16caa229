package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/adapters/out/postgres/pgtest"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/gorm"
)

var testNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id string, aggregate any) {
	m.Called(id, aggregate)
}

type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	container, db, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.container = container
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) newOrder(phone string, qty ...int) *order.Order {
	if len(qty) == 0 {
		qty = []int{1}
	}
	items := make([]order.Item, 0, len(qty))
	subtotal := decimal.Zero
	for i, q := range qty {
		it, err := order.NewItem("prod-"+string(rune('a'+i)), "SKU-"+string(rune('A'+i)), q, decimal.NewFromInt(250))
		suite.Require().NoError(err)
		items = append(items, it)
		subtotal = subtotal.Add(it.LineTotal())
	}

	pricing, err := order.NewPricing(subtotal, decimal.Zero, decimal.NewFromInt(50), decimal.Zero, decimal.Zero)
	suite.Require().NoError(err)

	o, err := order.NewOrder(kernel.NewUUID(), phone,
		order.Address{Name: "Asha", Line1: "12 MG Road", City: "Pune", State: "MH", Pincode: "411001"},
		items, order.Payment{Method: order.PaymentCOD, Status: order.PaymentPending}, pricing, testNow)
	suite.Require().NoError(err)
	return o
}

func (suite *OrderRepositoryIntegrationTestSuite) approvedOrder() *order.Order {
	o := suite.newOrder("+919800000001")
	suite.Require().NoError(o.ConfirmDimensions(1.5, kernel.MustNewDimensions(20, 15, 10), testNow))
	suite.Require().NoError(o.Approve(order.AutoApprover, testNow))
	return o
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAddAndGet_RoundTripsTheAggregate() {
	ctx := context.Background()
	o := suite.newOrder("+919800000001", 2, 1)

	weight := 0.5
	resolved := make([]order.Item, 0)
	for _, it := range o.Items() {
		resolved = append(resolved, it.Resolved("var-1", weight, kernel.MustNewDimensions(10, 10, 5), "GST18"))
	}
	suite.Require().NoError(o.ApplyResolution(resolved, nil, nil, true, testNow))
	o.SetNotificationsOptOut(true)

	suite.Require().NoError(suite.repository.Add(ctx, o))

	got, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)

	suite.Equal(o.ID(), got.ID())
	suite.Equal(order.NeedsManualVerification, got.Status())
	suite.Equal("+919800000001", got.Phone())
	suite.Equal("Pune", got.ShippingAddress().City)
	suite.Equal("800.00", got.GrandTotal().StringFixed(2))
	suite.Require().Len(got.Items(), 2)
	suite.Equal(2, got.Items()[0].Quantity())
	suite.Equal("GST18", got.Items()[0].TaxCode())
	suite.Require().NotNil(got.Items()[0].Dimensions())
	suite.True(got.Items()[0].Dimensions().Equals(kernel.MustNewDimensions(10, 10, 5)))
	suite.Nil(got.Weight())
	suite.Nil(got.Shipment())
	suite.True(got.NotificationsOptOut())
	suite.WithinDuration(testNow, got.CreatedAt(), time.Second)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NonExistentOrder_ReturnsNotFoundError() {
	got, err := suite.repository.Get(context.Background(), kernel.NewUUID())

	suite.Nil(got)
	var notFound *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_BumpsVersionAndRejectsStaleWrites() {
	ctx := context.Background()
	o := suite.newOrder("+919800000001")
	suite.Require().NoError(suite.repository.Add(ctx, o))

	first, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	second, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)

	suite.Require().NoError(first.TransitionTo(order.Cancelled, testNow))
	suite.Require().NoError(suite.repository.Update(ctx, first))

	suite.Require().NoError(second.Approve("ops@shop", testNow))
	err = suite.repository.Update(ctx, second)
	suite.Require().ErrorIs(err, errs.ErrVersionIsInvalid)

	stored, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Cancelled, stored.Status())
	suite.Equal(1, stored.Version())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_UnknownOrder_ReturnsRecordNotFound() {
	err := suite.repository.Update(context.Background(), suite.newOrder("+919800000001"))
	suite.Require().ErrorIs(err, gorm.ErrRecordNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdateFromStatus_RequiresExpectedStatus() {
	ctx := context.Background()
	o := suite.newOrder("+919800000001")
	suite.Require().NoError(suite.repository.Add(ctx, o))

	suite.Require().NoError(o.Approve("ops@shop", testNow))
	err := suite.repository.UpdateFromStatus(ctx, o, order.NeedsManualVerification)
	suite.Require().ErrorIs(err, errs.ErrVersionIsInvalid)
	suite.Contains(err.Error(), "expected status needs_manual_verification")

	suite.Require().NoError(suite.repository.UpdateFromStatus(ctx, o, order.CreatedPending))
	stored, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Approved, stored.Status())
	suite.Equal("ops@shop", stored.Approval().ApprovedBy)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_PersistsShipmentAudit() {
	ctx := context.Background()
	o := suite.approvedOrder()
	suite.Require().NoError(suite.repository.Add(ctx, o))

	suite.Require().NoError(o.RecordShipmentAttempt(order.ShipmentAttempt{
		Carrier:     "delhivery",
		Mode:        order.ShipmentModeAPI,
		Success:     true,
		AWB:         "AWB123",
		TrackingURL: "https://track.example/AWB123",
		RawRequest:  []byte(`{"order":"x"}`),
		RawResponse: []byte("plain text body"),
		At:          testNow,
	}))
	suite.Require().NoError(suite.repository.UpdateFromStatus(ctx, o, order.Approved))

	stored, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Shipped, stored.Status())
	suite.True(stored.NeedsTracking())
	suite.Require().NotNil(stored.Shipment())
	suite.Equal("AWB123", stored.Shipment().AWB)
	suite.JSONEq(`{"order":"x"}`, string(stored.Shipment().RawRequest))
	suite.JSONEq(`"plain text body"`, string(stored.Shipment().RawResponse))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestCountByPhone_IgnoresExcludedOrder() {
	ctx := context.Background()
	first := suite.newOrder("+919800000001")
	second := suite.newOrder("+919800000001")
	other := suite.newOrder("+919800000002")
	for _, o := range []*order.Order{first, second, other} {
		suite.Require().NoError(suite.repository.Add(ctx, o))
	}

	count, err := suite.repository.CountByPhone(ctx, "+919800000001", second.ID())
	suite.Require().NoError(err)
	suite.Equal(int64(1), count)

	count, err = suite.repository.CountByPhone(ctx, "+919800000001", kernel.UUID{})
	suite.Require().NoError(err)
	suite.Equal(int64(2), count)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestCountByCustomer_MatchesEitherIdentity() {
	ctx := context.Background()
	customerID := kernel.NewUUID()

	byID := suite.newOrder("+919800000010")
	suite.Require().NoError(byID.AttachCustomer(customerID))
	byPhone := suite.newOrder("+919800000011")
	other := suite.newOrder("+919800000012")
	for _, o := range []*order.Order{byID, byPhone, other} {
		suite.Require().NoError(suite.repository.Add(ctx, o))
	}

	count, err := suite.repository.CountByCustomer(ctx, customerID.String(), "", kernel.UUID{})
	suite.Require().NoError(err)
	suite.Equal(int64(1), count)

	count, err = suite.repository.CountByCustomer(ctx, customerID.String(), "+919800000011", kernel.UUID{})
	suite.Require().NoError(err)
	suite.Equal(int64(2), count)

	count, err = suite.repository.CountByCustomer(ctx, customerID.String(), "+919800000011", byID.ID())
	suite.Require().NoError(err)
	suite.Equal(int64(1), count)

	count, err = suite.repository.CountByCustomer(ctx, "cust-42", "", kernel.UUID{})
	suite.Require().NoError(err)
	suite.Zero(count)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestClaimShipment() {
	ctx := context.Background()
	approved := suite.approvedOrder()
	pending := suite.newOrder("+919800000003")
	suite.Require().NoError(suite.repository.Add(ctx, approved))
	suite.Require().NoError(suite.repository.Add(ctx, pending))

	ttl := 2 * time.Minute

	ok, err := suite.repository.ClaimShipment(ctx, pending.ID(), testNow, ttl)
	suite.Require().NoError(err)
	suite.False(ok, "only approved orders can be claimed")

	ok, err = suite.repository.ClaimShipment(ctx, approved.ID(), testNow, ttl)
	suite.Require().NoError(err)
	suite.True(ok)

	ok, err = suite.repository.ClaimShipment(ctx, approved.ID(), testNow.Add(time.Minute), ttl)
	suite.Require().NoError(err)
	suite.False(ok, "a live claim blocks a second attempt")

	ok, err = suite.repository.ClaimShipment(ctx, approved.ID(), testNow.Add(3*time.Minute), ttl)
	suite.Require().NoError(err)
	suite.True(ok, "an abandoned claim can be taken over")

	suite.Require().NoError(suite.repository.ReleaseShipmentClaim(ctx, approved.ID()))
	ok, err = suite.repository.ClaimShipment(ctx, approved.ID(), testNow.Add(3*time.Minute), ttl)
	suite.Require().NoError(err)
	suite.True(ok)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_DoesNotTouchShipmentClaim() {
	ctx := context.Background()
	o := suite.approvedOrder()
	suite.Require().NoError(suite.repository.Add(ctx, o))

	ok, err := suite.repository.ClaimShipment(ctx, o.ID(), testNow, time.Minute)
	suite.Require().NoError(err)
	suite.Require().True(ok)

	suite.Require().NoError(suite.repository.Update(ctx, o))

	ok, err = suite.repository.ClaimShipment(ctx, o.ID(), testNow.Add(time.Second), time.Minute)
	suite.Require().NoError(err)
	suite.False(ok)
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}

package commands_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/combination"
	"fulfillment/internal/core/domain/model/coupon"
	"fulfillment/internal/core/domain/model/customer"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/settings"
	"fulfillment/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

func discardLogger() *slog.Logger { return slog.New(slog.DiscardHandler) }

// --- repositories ---

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) UpdateFromStatus(ctx context.Context, o *order.Order, expected order.Status) error {
	return m.Called(ctx, o, expected).Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if o, ok := args.Get(0).(*order.Order); ok {
		return o, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderRepository) CountByPhone(ctx context.Context, phone string, exclude kernel.UUID) (int64, error) {
	args := m.Called(ctx, phone, exclude)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) CountByCustomer(
	ctx context.Context,
	customerID, phone string,
	exclude kernel.UUID,
) (int64, error) {
	args := m.Called(ctx, customerID, phone, exclude)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) ClaimShipment(
	ctx context.Context,
	id kernel.UUID,
	at time.Time,
	ttl time.Duration,
) (bool, error) {
	args := m.Called(ctx, id, at, ttl)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepository) ReleaseShipmentClaim(ctx context.Context, id kernel.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockCustomerRepository struct{ mock.Mock }

func (m *MockCustomerRepository) Add(ctx context.Context, c *customer.Customer) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCustomerRepository) Update(ctx context.Context, c *customer.Customer) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCustomerRepository) Get(ctx context.Context, id kernel.UUID) (*customer.Customer, error) {
	return customerResult(m.Called(ctx, id))
}

func (m *MockCustomerRepository) FindByPhone(ctx context.Context, phone string) (*customer.Customer, error) {
	return customerResult(m.Called(ctx, phone))
}

func (m *MockCustomerRepository) LockByPhone(ctx context.Context, phone string) (*customer.Customer, error) {
	return customerResult(m.Called(ctx, phone))
}

func customerResult(args mock.Arguments) (*customer.Customer, error) {
	if c, ok := args.Get(0).(*customer.Customer); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockCouponRepository struct{ mock.Mock }

func (m *MockCouponRepository) Add(ctx context.Context, c *coupon.Coupon) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCouponRepository) FindActiveByCode(ctx context.Context, code string) (*coupon.Coupon, error) {
	return couponResult(m.Called(ctx, code))
}

func (m *MockCouponRepository) LockActiveByCode(ctx context.Context, code string) (*coupon.Coupon, error) {
	return couponResult(m.Called(ctx, code))
}

func (m *MockCouponRepository) CountUsages(
	ctx context.Context,
	couponID kernel.UUID,
	customerID, phone string,
) (int64, error) {
	args := m.Called(ctx, couponID, customerID, phone)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCouponRepository) RecordUsage(ctx context.Context, usage coupon.Usage) error {
	return m.Called(ctx, usage).Error(0)
}

func couponResult(args mock.Arguments) (*coupon.Coupon, error) {
	if c, ok := args.Get(0).(*coupon.Coupon); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockCombinationRepository struct{ mock.Mock }

func (m *MockCombinationRepository) Save(ctx context.Context, c *combination.VerifiedCombination) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCombinationRepository) Get(ctx context.Context, hash string) (*combination.VerifiedCombination, error) {
	args := m.Called(ctx, hash)
	if c, ok := args.Get(0).(*combination.VerifiedCombination); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCombinationRepository) RecordUsage(ctx context.Context, hash string, at time.Time) error {
	return m.Called(ctx, hash, at).Error(0)
}

type MockSettingsRepository struct{ mock.Mock }

func (m *MockSettingsRepository) GetApprovalSettings(ctx context.Context) (*settings.ApprovalSettings, error) {
	args := m.Called(ctx)
	if s, ok := args.Get(0).(*settings.ApprovalSettings); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockSettingsRepository) SaveApprovalSettings(ctx context.Context, s settings.ApprovalSettings) error {
	return m.Called(ctx, s).Error(0)
}

// --- unit of work ---

// MockUoW satisfies every UoW shape the handlers ask for. Repositories are
// plain fields; only the transaction calls are recorded.
type MockUoW struct {
	mock.Mock

	orders       *MockOrderRepository
	customers    *MockCustomerRepository
	coupons      *MockCouponRepository
	combinations *MockCombinationRepository
	settings     *MockSettingsRepository
}

func newMockUoW() *MockUoW {
	return &MockUoW{
		orders:       new(MockOrderRepository),
		customers:    new(MockCustomerRepository),
		coupons:      new(MockCouponRepository),
		combinations: new(MockCombinationRepository),
		settings:     new(MockSettingsRepository),
	}
}

func (m *MockUoW) Begin(ctx context.Context) error             { return m.Called(ctx).Error(0) }
func (m *MockUoW) BeginSerializable(ctx context.Context) error { return m.Called(ctx).Error(0) }
func (m *MockUoW) Commit(ctx context.Context) error            { return m.Called(ctx).Error(0) }
func (m *MockUoW) Rollback(ctx context.Context) error          { return m.Called(ctx).Error(0) }

func (m *MockUoW) OrderRepository() ports.OrderRepository             { return m.orders }
func (m *MockUoW) CustomerRepository() ports.CustomerRepository       { return m.customers }
func (m *MockUoW) CouponRepository() ports.CouponRepository           { return m.coupons }
func (m *MockUoW) CombinationRepository() ports.CombinationRepository { return m.combinations }
func (m *MockUoW) SettingsRepository() ports.SettingsRepository       { return m.settings }

func (m *MockUoW) allowRollback() {
	m.On("Rollback", mock.Anything).Return(nil).Maybe()
}

func (m *MockUoW) assertAll(t *testing.T) {
	t.Helper()
	m.AssertExpectations(t)
	m.orders.AssertExpectations(t)
	m.customers.AssertExpectations(t)
	m.coupons.AssertExpectations(t)
	m.combinations.AssertExpectations(t)
	m.settings.AssertExpectations(t)
}

type uowFactory struct{ uow *MockUoW }

func (f uowFactory) Create() commands.UoW { return f.uow }

type orderUoWFactory struct{ uow *MockUoW }

func (f orderUoWFactory) Create() commands.OrderUoW { return f.uow }

type customerUoWFactory struct{ uow *MockUoW }

func (f customerUoWFactory) Create() commands.CustomerUoW { return f.uow }

type couponUoWFactory struct{ uow *MockUoW }

func (f couponUoWFactory) Create() commands.CouponUoW { return f.uow }

type combinationUoWFactory struct{ uow *MockUoW }

func (f combinationUoWFactory) Create() commands.CombinationUoW { return f.uow }

type settingsUoWFactory struct{ uow *MockUoW }

func (f settingsUoWFactory) Create() commands.SettingsUoW { return f.uow }

// --- collaborators ---

type MockCatalog struct{ mock.Mock }

func (m *MockCatalog) Variations(ctx context.Context, productID string) ([]ports.CatalogVariation, error) {
	args := m.Called(ctx, productID)
	if v, ok := args.Get(0).([]ports.CatalogVariation); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockCourierAdapter struct{ mock.Mock }

func (m *MockCourierAdapter) Name() string             { return "delhivery" }
func (m *MockCourierAdapter) Mode() order.ShipmentMode { return order.ShipmentModeAPI }
func (m *MockCourierAdapter) Submit(ctx context.Context, o *order.Order, manualAWB string) ports.CourierResult {
	return m.Called(ctx, o, manualAWB).Get(0).(ports.CourierResult)
}

type registry map[string]ports.CourierAdapter

func (r registry) Get(name string) (ports.CourierAdapter, bool) {
	a, ok := r[name]
	return a, ok
}

type MockStatusMirror struct{ mock.Mock }

func (m *MockStatusMirror) Mirror(ctx context.Context, view ports.OrderStatusView) error {
	return m.Called(ctx, view).Error(0)
}

type MockNotificationQueue struct{ mock.Mock }

func (m *MockNotificationQueue) Enqueue(ctx context.Context, n ports.Notification) error {
	return m.Called(ctx, n).Error(0)
}

type MockSettingsProvider struct{ mock.Mock }

func (m *MockSettingsProvider) ApprovalSettings(ctx context.Context) (*settings.ApprovalSettings, error) {
	args := m.Called(ctx)
	if s, ok := args.Get(0).(*settings.ApprovalSettings); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockIntelligence struct{ mock.Mock }

func (m *MockIntelligence) Handle(
	ctx context.Context,
	cmd commands.UpdateCustomerIntelligenceCommand,
) commands.IntelligenceOutcome {
	return m.Called(ctx, cmd).Get(0).(commands.IntelligenceOutcome)
}

// quietObserver accepts every mirror and enqueue call.
func quietObserver() (commands.OrderObserver, *MockStatusMirror, *MockNotificationQueue) {
	mirror := new(MockStatusMirror)
	mirror.On("Mirror", mock.Anything, mock.Anything).Return(nil).Maybe()
	queue := new(MockNotificationQueue)
	queue.On("Enqueue", mock.Anything, mock.Anything).Return(nil).Maybe()
	return commands.NewOrderObserver(mirror, queue, fixedClock{testNow}, discardLogger()), mirror, queue
}

// --- fixtures ---

func newItem(t *testing.T, productID, sku string, qty int, price int64) order.Item {
	t.Helper()
	it, err := order.NewItem(productID, sku, qty, decimal.NewFromInt(price))
	require.NoError(t, err)
	return it
}

type orderFixture struct {
	status   order.Status
	payment  order.Payment
	weight   *float64
	dims     *kernel.Dimensions
	total    int64
	items    []order.Item
	optedOut bool
}

func restoreOrder(t *testing.T, f orderFixture) *order.Order {
	t.Helper()
	if f.items == nil {
		f.items = []order.Item{newItem(t, "prod-1", "SKU-1", 1, f.total)}
	}
	if f.payment.Method == "" {
		f.payment = order.Payment{Method: order.PaymentCOD, Status: order.PaymentPending}
	}
	pricing, err := order.NewPricing(decimal.NewFromInt(f.total), decimal.Zero, decimal.Zero, decimal.Zero, decimal.Zero)
	require.NoError(t, err)

	o, err := order.Restore(order.Snapshot{
		ID:                  kernel.NewUUID(),
		Phone:               "+919800000001",
		ShippingAddress:     order.Address{Name: "Asha", Line1: "12 MG Road", City: "Pune", Pincode: "411001"},
		Items:               f.items,
		Payment:             f.payment,
		Pricing:             pricing,
		Approval:            order.Approval{Status: order.ApprovalPending},
		Status:              f.status,
		Weight:              f.weight,
		Dimensions:          f.dims,
		NotificationsOptOut: f.optedOut,
		Version:             1,
		CreatedAt:           testNow.Add(-time.Hour),
		UpdatedAt:           testNow.Add(-time.Hour),
	})
	require.NoError(t, err)
	return o
}

func ptrFloat(v float64) *float64 { return &v }

func ptrDims(t *testing.T, l, w, h float64) *kernel.Dimensions {
	t.Helper()
	d, err := kernel.NewDimensions(l, w, h)
	require.NoError(t, err)
	return &d
}

func restoreCustomer(t *testing.T, phone string, totalOrders int, createdAt time.Time) *customer.Customer {
	t.Helper()
	id := kernel.NewUUID()
	c, err := customer.Restore(customer.Snapshot{
		ID:          id,
		Key:         id.String(),
		Phone:       phone,
		Name:        "Asha",
		TotalOrders: totalOrders,
		TotalSpent:  decimal.Zero,
		TrustScore:  customer.DefaultTrustScore,
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	})
	require.NoError(t, err)
	return c
}

type MockResolver struct{ mock.Mock }

func (m *MockResolver) Handle(ctx context.Context, cmd commands.ResolveDimensionsCommand) (commands.Resolution, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.Resolution), args.Error(1)
}

type MockApprover struct{ mock.Mock }

func (m *MockApprover) Handle(ctx context.Context, cmd commands.EvaluateAutoApprovalCommand) commands.ApprovalOutcome {
	return m.Called(ctx, cmd).Get(0).(commands.ApprovalOutcome)
}

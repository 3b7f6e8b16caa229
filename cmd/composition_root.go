package cmd

import (
	"log/slog"
	"time"

	"fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/out/cache"
	"fulfillment/internal/adapters/out/courier"
	mongoadapter "fulfillment/internal/adapters/out/mongo"
	"fulfillment/internal/adapters/out/notify"
	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/adapters/out/postgres/outboxrepo"
	"fulfillment/internal/adapters/out/postgres/settingsrepo"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/jobs"

	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	clock      ports.Clock
	logger     *slog.Logger

	catalog       *mongoadapter.CatalogResolver
	mirror        *mongoadapter.StatusMirror
	outbox        *outboxrepo.GormNotificationOutbox
	settingsCache *cache.SettingsCache
	couriers      *courier.Registry
}

func NewCompositionRoot(cfg Config, gormDB *gorm.DB, mongoDB *mongo.Database, logger *slog.Logger) CompositionRoot {
	clock := SystemClock{}
	return CompositionRoot{
		cfg:           cfg,
		gormDB:        gormDB,
		uowFactory:    *postgres.NewGormUnitOfWorkFactory(gormDB),
		clock:         clock,
		logger:        logger,
		catalog:       mongoadapter.NewCatalogResolver(mongoDB),
		mirror:        mongoadapter.NewStatusMirror(mongoDB),
		outbox:        outboxrepo.NewGormNotificationOutbox(gormDB),
		settingsCache: cache.NewSettingsCache(settingsrepo.NewGormSettingsRepository(gormDB), cfg.SettingsTTL, clock),
		couriers:      newCourierRegistry(cfg, logger),
	}
}

// newCourierRegistry always offers manual shipments; the real carrier is added
// when its credentials are configured.
func newCourierRegistry(cfg Config, logger *slog.Logger) *courier.Registry {
	adapters := []ports.CourierAdapter{courier.NewManual()}

	realCarrier, err := courier.NewRealCarrier(courier.RealCarrierConfig{
		BaseURL:  cfg.CarrierBaseURL,
		Email:    cfg.CarrierEmail,
		Password: cfg.CarrierPassword,
		Timeout:  cfg.OutboundTimeout,
	})
	if err != nil {
		logger.Warn("Real carrier disabled", "error", err)
	} else {
		adapters = append(adapters, realCarrier)
	}

	return courier.NewRegistry(adapters...)
}

func (c *CompositionRoot) CreateOrderObserver() commands.OrderObserver {
	return commands.NewOrderObserver(c.mirror, c.outbox, c.clock, c.logger)
}

func (c *CompositionRoot) CreateUpdateCustomerIntelligenceCommandHandler() commands.UpdateCustomerIntelligenceCommandHandler {
	return commands.NewUpdateCustomerIntelligenceCommandHandler(c.customerUoWFactory(), c.clock, c.logger)
}

func (c *CompositionRoot) CreateResolveDimensionsCommandHandler() commands.ResolveDimensionsCommandHandler {
	return commands.NewResolveDimensionsCommandHandler(c.catalog, c.combinationUoWFactory(), c.clock, c.logger)
}

func (c *CompositionRoot) CreateEvaluateAutoApprovalCommandHandler() commands.EvaluateAutoApprovalCommandHandler {
	return commands.NewEvaluateAutoApprovalCommandHandler(
		c.customerUoWFactory(),
		c.settingsCache,
		c.CreateUpdateCustomerIntelligenceCommandHandler(),
		c.CreateOrderObserver(),
		c.clock,
		c.logger,
	)
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(
		c.uowFactoryAll(),
		c.CreateResolveDimensionsCommandHandler(),
		c.CreateEvaluateAutoApprovalCommandHandler(),
		c.CreateOrderObserver(),
		c.clock,
		c.logger,
	)
}

func (c *CompositionRoot) CreateApproveOrderCommandHandler() commands.ApproveOrderCommandHandler {
	return commands.NewApproveOrderCommandHandler(
		c.uowFactoryAll(),
		c.CreateUpdateCustomerIntelligenceCommandHandler(),
		c.CreateOrderObserver(),
		c.clock,
		c.logger,
	)
}

func (c *CompositionRoot) CreateCreateShipmentCommandHandler() commands.CreateShipmentCommandHandler {
	return commands.NewCreateShipmentCommandHandler(
		c.orderUoWFactory(),
		c.couriers,
		c.CreateOrderObserver(),
		c.clock,
		c.cfg.ShipmentClaimTTL,
		c.logger,
	)
}

func (c *CompositionRoot) CreateTransitionOrderCommandHandler() commands.TransitionOrderCommandHandler {
	return commands.NewTransitionOrderCommandHandler(
		c.orderUoWFactory(),
		c.CreateUpdateCustomerIntelligenceCommandHandler(),
		c.CreateOrderObserver(),
		c.clock,
		c.logger,
	)
}

func (c *CompositionRoot) CreateCreateCouponCommandHandler() commands.CreateCouponCommandHandler {
	return commands.NewCreateCouponCommandHandler(c.couponUoWFactory())
}

func (c *CompositionRoot) CreateRedeemCouponCommandHandler() commands.RedeemCouponCommandHandler {
	return commands.NewRedeemCouponCommandHandler(c.couponUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateSaveCombinationCommandHandler() commands.SaveCombinationCommandHandler {
	return commands.NewSaveCombinationCommandHandler(c.combinationUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateUpdateCombinationCommandHandler() commands.UpdateCombinationCommandHandler {
	return commands.NewUpdateCombinationCommandHandler(c.combinationUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateDeactivateCombinationCommandHandler() commands.DeactivateCombinationCommandHandler {
	return commands.NewDeactivateCombinationCommandHandler(c.combinationUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateUpdateApprovalSettingsCommandHandler() commands.UpdateApprovalSettingsCommandHandler {
	return commands.NewUpdateApprovalSettingsCommandHandler(c.settingsUoWFactory(), c.settingsCache, c.logger)
}

func (c *CompositionRoot) CreateDispatchNotificationsCommandHandler() commands.DispatchNotificationsCommandHandler {
	dispatcher := notify.NewHTTPDispatcher(c.cfg.MessagingBaseURL, c.cfg.MessagingToken, c.cfg.OutboundTimeout)
	return commands.NewDispatchNotificationsCommandHandler(c.outbox, dispatcher, c.clock, c.logger)
}

func (c *CompositionRoot) CreateValidateCouponQueryHandler() queries.ValidateCouponQueryHandler {
	uow := c.uowFactory.Create()
	return queries.NewValidateCouponQueryHandler(uow.CouponRepository(), uow.OrderRepository(), c.clock)
}

func (c *CompositionRoot) CreateGetOrdersAwaitingActionQueryHandler() queries.GetOrdersAwaitingActionQueryHandler {
	return queries.NewGetOrdersAwaitingActionQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateFindCombinationQueryHandler() queries.FindCombinationQueryHandler {
	return queries.NewFindCombinationQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListCombinationsQueryHandler() queries.ListCombinationsQueryHandler {
	return queries.NewListCombinationsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateSearchCombinationsByProductQueryHandler() queries.SearchCombinationsByProductQueryHandler {
	return queries.NewSearchCombinationsByProductQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateCombinationStatsQueryHandler() queries.CombinationStatsQueryHandler {
	return queries.NewCombinationStatsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateHTTPServer() *http.Server {
	return http.NewServer(http.Handlers{
		CreateOrder:         c.CreateCreateOrderCommandHandler(),
		ApproveOrder:        c.CreateApproveOrderCommandHandler(),
		CreateShipment:      c.CreateCreateShipmentCommandHandler(),
		TransitionOrder:     c.CreateTransitionOrderCommandHandler(),
		CreateCoupon:        c.CreateCreateCouponCommandHandler(),
		RedeemCoupon:        c.CreateRedeemCouponCommandHandler(),
		SaveCombination:     c.CreateSaveCombinationCommandHandler(),
		UpdateCombination:   c.CreateUpdateCombinationCommandHandler(),
		DeactivateCombo:     c.CreateDeactivateCombinationCommandHandler(),
		UpdateSettings:      c.CreateUpdateApprovalSettingsCommandHandler(),
		ValidateCoupon:      c.CreateValidateCouponQueryHandler(),
		OrdersAwaiting:      c.CreateGetOrdersAwaitingActionQueryHandler(),
		FindCombination:     c.CreateFindCombinationQueryHandler(),
		ListCombinations:    c.CreateListCombinationsQueryHandler(),
		SearchCombinations:  c.CreateSearchCombinationsByProductQueryHandler(),
		CombinationStatsFor: c.CreateCombinationStatsQueryHandler(),
	})
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(jobs.NewNotificationDispatchJob(
		c.CreateDispatchNotificationsCommandHandler(),
		c.cfg.NotificationDispatchCron,
		c.cfg.NotificationBatchSize,
		c.logger,
	))
}

func (c *CompositionRoot) uowFactoryAll() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) customerUoWFactory() commands.CustomerUoWFactory {
	return FuncCustomerUoWFactory(func() commands.CustomerUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) couponUoWFactory() commands.CouponUoWFactory {
	return FuncCouponUoWFactory(func() commands.CouponUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) combinationUoWFactory() commands.CombinationUoWFactory {
	return FuncCombinationUoWFactory(func() commands.CombinationUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) settingsUoWFactory() commands.SettingsUoWFactory {
	return FuncSettingsUoWFactory(func() commands.SettingsUoW { return c.uowFactory.Create() })
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncCustomerUoWFactory func() commands.CustomerUoW

func (f FuncCustomerUoWFactory) Create() commands.CustomerUoW {
	return f()
}

type FuncCouponUoWFactory func() commands.CouponUoW

func (f FuncCouponUoWFactory) Create() commands.CouponUoW {
	return f()
}

type FuncCombinationUoWFactory func() commands.CombinationUoW

func (f FuncCombinationUoWFactory) Create() commands.CombinationUoW {
	return f()
}

type FuncSettingsUoWFactory func() commands.SettingsUoW

func (f FuncSettingsUoWFactory) Create() commands.SettingsUoW {
	return f()
}

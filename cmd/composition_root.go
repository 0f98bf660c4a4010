package cmd

import (
	"log/slog"

	"deliverytracking/internal/adapters/out/geolocation"
	"deliverytracking/internal/adapters/out/orderstore"
	"deliverytracking/internal/adapters/out/postgres"
	"deliverytracking/internal/core/application/session"
	"deliverytracking/internal/core/application/usecases/commands"
	"deliverytracking/internal/core/application/usecases/queries"
	"deliverytracking/internal/core/domain/services"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	configs    Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
}

func NewCompositionRoot(configs Config, gormDB *gorm.DB) CompositionRoot {
	return CompositionRoot{
		configs:    configs,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
	}
}

func (c *CompositionRoot) CreateUpdateOrderStatusCommandHandler() commands.UpdateOrderStatusCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateOrderStatusCommandHandler(f)
}

func (c *CompositionRoot) CreateUpdateDriverLocationCommandHandler() commands.UpdateDriverLocationCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateDriverLocationCommandHandler(f)
}

func (c *CompositionRoot) CreateGetDeliveryOrderQueryHandler() queries.GetDeliveryOrderQueryHandler {
	return queries.NewGetDeliveryOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetActiveDeliveriesQueryHandler() queries.GetActiveDeliveriesQueryHandler {
	return queries.NewGetActiveDeliveriesQueryHandler(c.gormDB)
}

// CreateOrderStoreClient builds the HTTP client for the remote order store.
func (c *CompositionRoot) CreateOrderStoreClient(logger *slog.Logger) *orderstore.Client {
	return orderstore.NewClient(c.configs.OrderStoreBaseURL, c.configs.OrderStoreAuthToken, logger)
}

// CreateSessionRegistry wires a delivery session registry. The position
// provider is platform specific: driver-facing binaries supply one backed by
// the device location API.
func (c *CompositionRoot) CreateSessionRegistry(
	provider geolocation.PositionProvider,
	logger *slog.Logger,
) *session.Registry {
	streamer := geolocation.NewStreamer(provider, geolocation.DefaultOptions(), logger)
	return session.NewRegistry(
		c.CreateOrderStoreClient(logger),
		streamer,
		services.NewArrivalPolicy(),
		logger,
	)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

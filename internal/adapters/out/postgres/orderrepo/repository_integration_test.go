package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"deliverytracking/internal/adapters/out/postgres/orderrepo"
	"deliverytracking/internal/core/domain/model/kernel"
	"deliverytracking/internal/core/domain/model/order"
	"deliverytracking/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type mockAggregateTracker struct{}

func (mockAggregateTracker) TrackAggregate(_ kernel.UUID, _ any) {}

type GormOrderRepositoryTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	repo      *orderrepo.GormOrderRepository
}

func (suite *GormOrderRepositoryTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = orderrepo.Migrate(db)
	suite.Require().NoError(err)

	suite.repo = orderrepo.NewGormOrderRepository(db, mockAggregateTracker{})
}

func (suite *GormOrderRepositoryTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *GormOrderRepositoryTestSuite) SetupTest() {
	for _, table := range []string{"orders", "order_items", "custom_orders", "custom_order_items"} {
		err := suite.db.Exec("TRUNCATE TABLE " + table + " CASCADE").Error
		suite.Require().NoError(err)
	}
}

func (suite *GormOrderRepositoryTestSuite) newOrder(orderType order.Type) *order.Order {
	dest, err := kernel.NewCoordinate(14.5995, 120.9842)
	suite.Require().NoError(err)

	aggregate, err := order.RestoreOrder(
		kernel.NewUUID(), orderType, order.StatusProcessing,
		order.Customer{ID: "42", Name: "Maria Santos", Phone: "+639171234567", Email: "maria@example.com"},
		"Rizal Elementary School, Manila",
		&dest, nil,
		[]order.LineItem{
			{ID: "item-1", Name: "5-gallon water", Quantity: 3, UnitPrice: 3500},
			{ID: "item-2", Name: "Dispenser", Quantity: 1, UnitPrice: 120000},
		},
	)
	suite.Require().NoError(err)
	return aggregate
}

func (suite *GormOrderRepositoryTestSuite) TestAddAndGet_RoundTrip() {
	ctx := context.Background()
	aggregate := suite.newOrder(order.TypeNormal)

	err := suite.repo.Add(ctx, aggregate)
	suite.Require().NoError(err)

	loaded, err := suite.repo.Get(ctx, aggregate.ID(), order.TypeNormal)
	suite.Require().NoError(err)

	suite.True(aggregate.ID().IsEqual(loaded.ID()))
	suite.Equal(order.StatusProcessing, loaded.Status())
	suite.Equal("Maria Santos", loaded.Customer().Name)
	suite.Equal("Rizal Elementary School, Manila", loaded.DeliveryAddress())

	suite.Require().NotNil(loaded.DeliveryLocation())
	isEqual, err := aggregate.DeliveryLocation().IsEqual(*loaded.DeliveryLocation())
	suite.Require().NoError(err)
	suite.True(isEqual)

	suite.Nil(loaded.DriverLocation())
	suite.Len(loaded.Items(), 2)
	suite.Equal("5-gallon water", loaded.Items()[0].Name)
	suite.Equal(int64(120000), loaded.Items()[1].UnitPrice)
}

func (suite *GormOrderRepositoryTestSuite) TestGet_OrderFamiliesAreIsolated() {
	ctx := context.Background()
	aggregate := suite.newOrder(order.TypeCustom)

	err := suite.repo.Add(ctx, aggregate)
	suite.Require().NoError(err)

	_, err = suite.repo.Get(ctx, aggregate.ID(), order.TypeNormal)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	loaded, err := suite.repo.Get(ctx, aggregate.ID(), order.TypeCustom)
	suite.Require().NoError(err)
	suite.Equal(order.TypeCustom, loaded.OrderType())
}

func (suite *GormOrderRepositoryTestSuite) TestGet_MissingOrder_ReturnsNotFound() {
	_, err := suite.repo.Get(context.Background(), kernel.NewUUID(), order.TypeNormal)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *GormOrderRepositoryTestSuite) TestUpdate_StatusPersists() {
	ctx := context.Background()
	aggregate := suite.newOrder(order.TypeNormal)

	err := suite.repo.Add(ctx, aggregate)
	suite.Require().NoError(err)

	err = aggregate.ChangeStatus(order.StatusDelivering)
	suite.Require().NoError(err)
	err = suite.repo.Update(ctx, aggregate)
	suite.Require().NoError(err)

	loaded, err := suite.repo.Get(ctx, aggregate.ID(), order.TypeNormal)
	suite.Require().NoError(err)
	suite.Equal(order.StatusDelivering, loaded.Status())
}

func (suite *GormOrderRepositoryTestSuite) TestUpdate_DriverLocationOverwritesPrevious() {
	ctx := context.Background()
	aggregate := suite.newOrder(order.TypeNormal)

	err := suite.repo.Add(ctx, aggregate)
	suite.Require().NoError(err)

	first, err := kernel.NewCoordinate(14.55, 120.98)
	suite.Require().NoError(err)
	suite.Require().NoError(aggregate.UpdateDriverLocation(first))
	suite.Require().NoError(suite.repo.Update(ctx, aggregate))

	second, err := kernel.NewCoordinate(14.5990, 120.9840)
	suite.Require().NoError(err)
	suite.Require().NoError(aggregate.UpdateDriverLocation(second))
	suite.Require().NoError(suite.repo.Update(ctx, aggregate))

	loaded, err := suite.repo.Get(ctx, aggregate.ID(), order.TypeNormal)
	suite.Require().NoError(err)
	suite.Require().NotNil(loaded.DriverLocation())

	isEqual, err := second.IsEqual(*loaded.DriverLocation())
	suite.Require().NoError(err)
	suite.True(isEqual)
}

func (suite *GormOrderRepositoryTestSuite) TestUpdate_MissingOrder_ReturnsError() {
	aggregate := suite.newOrder(order.TypeNormal)

	err := suite.repo.Update(context.Background(), aggregate)
	suite.Require().ErrorIs(err, gorm.ErrRecordNotFound)
}

func (suite *GormOrderRepositoryTestSuite) TestGetAllInDeliveringStatus_FiltersByStatus() {
	ctx := context.Background()

	delivering := suite.newOrder(order.TypeNormal)
	suite.Require().NoError(suite.repo.Add(ctx, delivering))
	suite.Require().NoError(delivering.ChangeStatus(order.StatusDelivering))
	suite.Require().NoError(suite.repo.Update(ctx, delivering))

	pending := suite.newOrder(order.TypeNormal)
	suite.Require().NoError(suite.repo.Add(ctx, pending))

	result, err := suite.repo.GetAllInDeliveringStatus(ctx, order.TypeNormal)
	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.True(delivering.ID().IsEqual(result[0].ID()))
}

func TestGormOrderRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(GormOrderRepositoryTestSuite))
}

package commands_test

import (
	"errors"
	"testing"

	"deliverytracking/internal/core/application/usecases/commands"
	"deliverytracking/internal/core/domain/model/kernel"
	"deliverytracking/internal/core/domain/model/order"
	"deliverytracking/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewUpdateDriverLocationCommand(t *testing.T) {
	t.Run("valid command", func(t *testing.T) {
		orderID := kernel.NewUUID()
		position, err := kernel.NewCoordinate(14.5990, 120.9840)
		require.NoError(t, err)

		cmd, err := commands.NewUpdateDriverLocationCommand(orderID, order.TypeNormal, position)

		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		assert.True(t, orderID.IsEqual(cmd.OrderID()))

		isEqual, err := position.IsEqual(cmd.Coordinate())
		require.NoError(t, err)
		assert.True(t, isEqual)
	})

	t.Run("zero coordinate is rejected", func(t *testing.T) {
		var zeroCoordinate kernel.Coordinate
		_, err := commands.NewUpdateDriverLocationCommand(kernel.NewUUID(), order.TypeNormal, zeroCoordinate)
		require.Error(t, err)
	})

	t.Run("zero value command fails validation", func(t *testing.T) {
		var cmd commands.UpdateDriverLocationCommand
		require.ErrorIs(t, cmd.Validate(), commands.ErrUpdateDriverLocationCommandIsNotConstructed)
	})
}

func TestUpdateDriverLocationCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	aggregate := newTrackedOrder(t)

	position, err := kernel.NewCoordinate(14.5990, 120.9840)
	require.NoError(t, err)

	cmd, err := commands.NewUpdateDriverLocationCommand(aggregate.ID(), order.TypeNormal, position)
	require.NoError(t, err)

	repo := new(StatusOrderRepo)
	repo.On("Get", ctx, aggregate.ID(), order.TypeNormal).Return(aggregate, nil)
	repo.On("Update", ctx, aggregate).Return(nil)

	uow := new(StatusUnitOfWork)
	uow.On("Begin", ctx).Return(nil)
	uow.On("OrderRepository").Return(repo)
	uow.On("Commit", ctx).Return(nil)
	uow.On("Rollback", ctx).Return(errors.New("no transaction"))

	factory := new(StatusUoWFactory)
	factory.On("Create").Return(uow)

	handler := commands.NewUpdateDriverLocationCommandHandler(factory)
	require.NoError(t, handler.Handle(ctx, cmd))

	require.NotNil(t, aggregate.DriverLocation())
	isEqual, err := position.IsEqual(*aggregate.DriverLocation())
	require.NoError(t, err)
	assert.True(t, isEqual)
	repo.AssertExpectations(t)
}

func TestUpdateDriverLocationCommandHandler_Handle_OverwritesPreviousPosition(t *testing.T) {
	ctx := t.Context()
	aggregate := newTrackedOrder(t)

	first, err := kernel.NewCoordinate(14.55, 120.98)
	require.NoError(t, err)
	require.NoError(t, aggregate.UpdateDriverLocation(first))

	second, err := kernel.NewCoordinate(14.5990, 120.9840)
	require.NoError(t, err)

	cmd, err := commands.NewUpdateDriverLocationCommand(aggregate.ID(), order.TypeNormal, second)
	require.NoError(t, err)

	repo := new(StatusOrderRepo)
	repo.On("Get", ctx, aggregate.ID(), order.TypeNormal).Return(aggregate, nil)
	repo.On("Update", ctx, aggregate).Return(nil)

	uow := new(StatusUnitOfWork)
	uow.On("Begin", ctx).Return(nil)
	uow.On("OrderRepository").Return(repo)
	uow.On("Commit", ctx).Return(nil)
	uow.On("Rollback", ctx).Return(errors.New("no transaction"))

	factory := new(StatusUoWFactory)
	factory.On("Create").Return(uow)

	handler := commands.NewUpdateDriverLocationCommandHandler(factory)
	require.NoError(t, handler.Handle(ctx, cmd))

	require.NotNil(t, aggregate.DriverLocation())

	matchesSecond, err := second.IsEqual(*aggregate.DriverLocation())
	require.NoError(t, err)
	assert.True(t, matchesSecond)

	matchesFirst, err := first.IsEqual(*aggregate.DriverLocation())
	require.NoError(t, err)
	assert.False(t, matchesFirst)
}

func TestUpdateDriverLocationCommandHandler_Handle_OrderNotFound(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()

	position, err := kernel.NewCoordinate(14.5990, 120.9840)
	require.NoError(t, err)

	cmd, err := commands.NewUpdateDriverLocationCommand(orderID, order.TypeCustom, position)
	require.NoError(t, err)

	repo := new(StatusOrderRepo)
	repo.On("Get", ctx, orderID, order.TypeCustom).
		Return(nil, errs.NewObjectNotFoundError("orderId", orderID.String()))

	uow := new(StatusUnitOfWork)
	uow.On("Begin", ctx).Return(nil)
	uow.On("OrderRepository").Return(repo)
	uow.On("Rollback", ctx).Return(nil)

	factory := new(StatusUoWFactory)
	factory.On("Create").Return(uow)

	handler := commands.NewUpdateDriverLocationCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

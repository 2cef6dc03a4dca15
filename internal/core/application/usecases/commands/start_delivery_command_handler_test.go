package commands_test

import (
	"testing"
	"time"

	"boutique/internal/core/application/usecases/commands"
	"boutique/internal/core/domain/model/order"
	"boutique/internal/core/domain/services"
	"boutique/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestStartDeliveryCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewStartDeliveryCommand(42, testCourierID, 30)
	require.NoError(t, err)

	board := services.NewDispatchBoard()
	board.Enqueue(42, testCourierID, testZoneName, "@alice", time.Now())

	pending := restoredOrder(t, 42, "@alice", order.Pending)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	factory := new(MockOrderUoWFactory)
	notifier := new(MockNotifier)
	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", ctx, int64(42)).Return(pending, nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Update", ctx, pending, order.Pending).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	notifier.On("EnRouteConfirmation", ctx, testCourierID, int64(42), 30).Once()

	h := commands.NewStartDeliveryCommandHandler(factory, board, notifier)
	require.NoError(t, h.Handle(ctx, cmd))
	require.Equal(t, order.EnRoute, pending.Status())
	require.NotNil(t, pending.EtaMinutes())
	require.Equal(t, 30, *pending.EtaMinutes())

	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestStartDeliveryCommandHandler_Handle_WrongCourier(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewStartDeliveryCommand(42, "courier-nord", 30)
	require.NoError(t, err)

	board := services.NewDispatchBoard()
	board.Enqueue(42, testCourierID, testZoneName, "@alice", time.Now())

	factory := new(MockOrderUoWFactory)
	notifier := new(MockNotifier)

	h := commands.NewStartDeliveryCommandHandler(factory, board, notifier)
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, commands.ErrOrderNotAssignedToCourier)
	factory.AssertNotCalled(t, "Create")
}

func TestStartDeliveryCommandHandler_Handle_NotOnBoard(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewStartDeliveryCommand(99, testCourierID, 15)
	require.NoError(t, err)

	factory := new(MockOrderUoWFactory)
	notifier := new(MockNotifier)

	h := commands.NewStartDeliveryCommandHandler(factory, services.NewDispatchBoard(), notifier)
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, services.ErrAssignmentNotFound)
}

func TestStartDeliveryCommandHandler_Handle_GuardedWriteConflict(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewStartDeliveryCommand(42, testCourierID, 30)
	require.NoError(t, err)

	board := services.NewDispatchBoard()
	board.Enqueue(42, testCourierID, testZoneName, "@alice", time.Now())

	pending := restoredOrder(t, 42, "@alice", order.Pending)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	factory := new(MockOrderUoWFactory)
	notifier := new(MockNotifier)
	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", ctx, int64(42)).Return(pending, nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Update", ctx, pending, order.Pending).
			Return(errs.NewConflictError("order", 42)).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	h := commands.NewStartDeliveryCommandHandler(factory, board, notifier)
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrConflict)
	notifier.AssertNotCalled(t, "EnRouteConfirmation", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

package commands_test

import (
	"testing"
	"time"

	"boutique/internal/core/application/usecases/commands"
	"boutique/internal/core/domain/model/customer"
	"boutique/internal/core/domain/model/order"
	"boutique/internal/core/domain/model/stock"
	"boutique/internal/core/domain/services"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func pendingCustomer(t *testing.T, handle string) *customer.Customer {
	t.Helper()

	cust, err := customer.NewCustomer(handle, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	return cust
}

func newReviewHandler(
	factory *MockUoWFactory,
	notifier *MockNotifier,
	board *services.DispatchBoard,
	router *services.ZoneRouter,
) commands.ReviewCustomerCommandHandler {
	policy := services.DefaultLoyaltyPolicy()
	return commands.NewReviewCustomerCommandHandler(factory, &policy, router, board, notifier)
}

func TestReviewCustomerCommandHandler_Approve_ActivatesDeferredOrders(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewReviewCustomerCommand("@newcomer", commands.ReviewApprove, "admin", "")
	require.NoError(t, err)

	deferred := restoredOrder(t, 42, "@newcomer", order.PendingApproval)

	orderRepo := new(MockOrderRepository)
	custRepo := new(MockCustomerRepository)
	stockRepo := new(MockStockRepository)
	ledgerRepo := new(MockLedgerRepository)
	uow := new(MockUoW)
	factory := new(MockUoWFactory)
	notifier := new(MockNotifier)
	board := services.NewDispatchBoard()

	cust := pendingCustomer(t, "@newcomer")

	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("CustomerRepository").Return(custRepo)
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("StockRepository").Return(stockRepo)
	uow.On("LedgerRepository").Return(ledgerRepo)

	custRepo.On("Get", ctx, "@newcomer").Return(cust, nil).Once()
	custRepo.On("Update", ctx, cust).Return(nil).Once()
	orderRepo.On("GetDeferredByCustomer", ctx, "@newcomer").
		Return([]*order.Order{deferred}, nil).Once()
	custRepo.On("GetLoyalty", ctx, "@newcomer").
		Return(customer.Loyalty{Handle: "@newcomer"}, nil).Once()
	orderRepo.On("Update", ctx, deferred, order.PendingApproval).Return(nil).Once()

	line, err := stock.NewLine(1, "3.5g")
	require.NoError(t, err)
	stockRepo.On("GetOrCreateLine", ctx, int64(1), "3.5g").Return(line, nil).Once()
	stockRepo.On("SaveLine", ctx, line).Return(nil).Once()
	stockRepo.On("AddMovement", ctx, mock.AnythingOfType("stock.Movement")).Return(nil).Once()
	ledgerRepo.On("Append", ctx, mock.AnythingOfType("ledger.Entry")).Return(nil).Once()
	custRepo.On("IncrementLoyalty", ctx, "@newcomer", mock.AnythingOfType("time.Time")).Return(nil).Once()

	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	notifier.On("CustomerReviewed", ctx, "@newcomer", true, 1).Once()
	notifier.On("OrderPlacedAdmin", ctx, deferred).Once()
	notifier.On("OrderPlacedSupport", ctx, deferred).Once()
	notifier.On("DispatchCard", ctx, testCourierID, deferred).Once()

	h := newReviewHandler(factory, notifier, board, testRouter(t))
	result, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.Equal(t, 1, result.Affected)
	require.Equal(t, customer.TrustApproved, cust.Status())
	require.Equal(t, order.Pending, deferred.Status())
	require.True(t, board.Contains(42))

	orderRepo.AssertExpectations(t)
	custRepo.AssertExpectations(t)
	stockRepo.AssertExpectations(t)
	ledgerRepo.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestReviewCustomerCommandHandler_Approve_NoDeferredOrders(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewReviewCustomerCommand("@quiet", commands.ReviewApprove, "admin", "")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	custRepo := new(MockCustomerRepository)
	uow := new(MockUoW)
	factory := new(MockUoWFactory)
	notifier := new(MockNotifier)
	board := services.NewDispatchBoard()

	cust := pendingCustomer(t, "@quiet")

	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("CustomerRepository").Return(custRepo)
	uow.On("OrderRepository").Return(orderRepo)
	custRepo.On("Get", ctx, "@quiet").Return(cust, nil).Once()
	custRepo.On("Update", ctx, cust).Return(nil).Once()
	orderRepo.On("GetDeferredByCustomer", ctx, "@quiet").Return([]*order.Order{}, nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	notifier.On("CustomerReviewed", ctx, "@quiet", true, 0).Once()

	h := newReviewHandler(factory, notifier, board, testRouter(t))
	result, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.Zero(t, result.Affected)
	notifier.AssertExpectations(t)
}

func TestReviewCustomerCommandHandler_Block_CancelsOpenOrders(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewReviewCustomerCommand("@trouble", commands.ReviewBlock, "admin", "no-show x3")
	require.NoError(t, err)

	held := restoredOrder(t, 42, "@trouble", order.PendingApproval)
	dispatched := restoredOrder(t, 43, "@trouble", order.Pending)

	orderRepo := new(MockOrderRepository)
	custRepo := new(MockCustomerRepository)
	uow := new(MockUoW)
	factory := new(MockUoWFactory)
	notifier := new(MockNotifier)

	board := services.NewDispatchBoard()
	board.Enqueue(43, testCourierID, testZoneName, "@trouble", time.Now())

	cust := pendingCustomer(t, "@trouble")

	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("CustomerRepository").Return(custRepo)
	uow.On("OrderRepository").Return(orderRepo)
	custRepo.On("Get", ctx, "@trouble").Return(cust, nil).Once()
	custRepo.On("Update", ctx, cust).Return(nil).Once()
	orderRepo.On("GetNonTerminalByCustomer", ctx, "@trouble").
		Return([]*order.Order{held, dispatched}, nil).Once()
	orderRepo.On("Update", ctx, held, order.PendingApproval).Return(nil).Once()
	orderRepo.On("Update", ctx, dispatched, order.Pending).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	notifier.On("CustomerReviewed", ctx, "@trouble", false, 2).Once()

	h := newReviewHandler(factory, notifier, board, testRouter(t))
	result, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.Equal(t, 2, result.Affected)
	require.Equal(t, customer.TrustBlocked, cust.Status())
	require.Equal(t, "no-show x3", cust.BlockReason())
	require.Equal(t, order.Cancelled, held.Status())
	require.Equal(t, order.Cancelled, dispatched.Status())
	require.False(t, board.Contains(43))

	orderRepo.AssertExpectations(t)
	custRepo.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestReviewCustomerCommandHandler_Block_AlreadyBlocked(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewReviewCustomerCommand("@banned", commands.ReviewBlock, "admin", "again")
	require.NoError(t, err)

	blocked, err := customer.RestoreCustomer("@banned", customer.TrustBlocked,
		time.Now().Add(-time.Hour), nil, "", "no-show", "")
	require.NoError(t, err)

	custRepo := new(MockCustomerRepository)
	uow := new(MockUoW)
	factory := new(MockUoWFactory)
	notifier := new(MockNotifier)

	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("CustomerRepository").Return(custRepo).Once()
	custRepo.On("Get", ctx, "@banned").Return(blocked, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	h := newReviewHandler(factory, notifier, services.NewDispatchBoard(), testRouter(t))
	_, err = h.Handle(ctx, cmd)
	require.Error(t, err)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

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

func intakeCommand(t *testing.T, handle string) commands.CreateOrderCommand {
	t.Helper()

	cmd, err := commands.NewCreateOrderCommand(handle, "livraison centre", "12 rue des Lilas",
		[]commands.LineItemInput{
			{ProductID: 1, Name: "Classique", Variant: "3.5g", Quantity: 2, UnitPrice: 25},
		}, 50)
	require.NoError(t, err)
	return cmd
}

func approvedCustomer(t *testing.T, handle string) *customer.Customer {
	t.Helper()

	approvedAt := time.Now().Add(-24 * time.Hour)
	cust, err := customer.RestoreCustomer(handle, customer.TrustApproved,
		approvedAt.Add(-time.Hour), &approvedAt, "admin", "", "")
	require.NoError(t, err)
	return cust
}

func newCreateOrderHandler(
	factory *MockUoWFactory,
	notifier *MockNotifier,
	board *services.DispatchBoard,
	router *services.ZoneRouter,
) commands.CreateOrderCommandHandler {
	policy := services.DefaultLoyaltyPolicy()
	return commands.NewCreateOrderCommandHandler(factory, &policy, router, board, notifier)
}

func TestCreateOrderCommandHandler_ApprovedCustomer_FullIntake(t *testing.T) {
	ctx := t.Context()
	cmd := intakeCommand(t, "@alice")

	orderRepo := new(MockOrderRepository)
	custRepo := new(MockCustomerRepository)
	stockRepo := new(MockStockRepository)
	ledgerRepo := new(MockLedgerRepository)
	uow := new(MockUoW)
	factory := new(MockUoWFactory)
	notifier := new(MockNotifier)
	board := services.NewDispatchBoard()

	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("CustomerRepository").Return(custRepo)
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("StockRepository").Return(stockRepo)
	uow.On("LedgerRepository").Return(ledgerRepo)

	custRepo.On("GetOrCreate", ctx, "@alice", mock.AnythingOfType("time.Time")).
		Return(approvedCustomer(t, "@alice"), nil).Once()
	custRepo.On("GetLoyalty", ctx, "@alice").Return(customer.Loyalty{Handle: "@alice"}, nil).Once()

	orderRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).
		Run(func(args mock.Arguments) {
			require.NoError(t, args.Get(1).(*order.Order).AssignID(42))
		}).Return(nil).Once()

	line, err := stock.NewLine(1, "3.5g")
	require.NoError(t, err)
	stockRepo.On("GetOrCreateLine", ctx, int64(1), "3.5g").Return(line, nil).Once()
	stockRepo.On("SaveLine", ctx, line).Return(nil).Once()
	stockRepo.On("AddMovement", ctx, mock.AnythingOfType("stock.Movement")).Return(nil).Once()

	ledgerRepo.On("Append", ctx, mock.AnythingOfType("ledger.Entry")).Return(nil).Once()
	custRepo.On("IncrementLoyalty", ctx, "@alice", mock.AnythingOfType("time.Time")).Return(nil).Once()

	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	notifier.On("OrderPlacedAdmin", ctx, mock.AnythingOfType("*order.Order")).Once()
	notifier.On("OrderPlacedSupport", ctx, mock.AnythingOfType("*order.Order")).Once()
	notifier.On("DispatchCard", ctx, testCourierID, mock.AnythingOfType("*order.Order")).Once()

	h := newCreateOrderHandler(factory, notifier, board, testRouter(t))
	result, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.Equal(t, int64(42), result.OrderID)
	require.Zero(t, result.Discount)
	require.False(t, result.RequiresApproval)

	assignment, err := board.Get(42)
	require.NoError(t, err)
	require.Equal(t, testCourierID, assignment.CourierID)

	orderRepo.AssertExpectations(t)
	custRepo.AssertExpectations(t)
	stockRepo.AssertExpectations(t)
	ledgerRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_TenthOrder_GetsDiscount(t *testing.T) {
	ctx := t.Context()
	cmd := intakeCommand(t, "@alice")

	orderRepo := new(MockOrderRepository)
	custRepo := new(MockCustomerRepository)
	stockRepo := new(MockStockRepository)
	ledgerRepo := new(MockLedgerRepository)
	uow := new(MockUoW)
	factory := new(MockUoWFactory)
	notifier := new(MockNotifier)
	board := services.NewDispatchBoard()

	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("CustomerRepository").Return(custRepo)
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("StockRepository").Return(stockRepo)
	uow.On("LedgerRepository").Return(ledgerRepo)

	custRepo.On("GetOrCreate", ctx, "@alice", mock.AnythingOfType("time.Time")).
		Return(approvedCustomer(t, "@alice"), nil).Once()
	// nine prior orders: this intake is the tenth
	custRepo.On("GetLoyalty", ctx, "@alice").
		Return(customer.Loyalty{Handle: "@alice", OrdersCount: 9}, nil).Once()

	orderRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).
		Run(func(args mock.Arguments) {
			require.NoError(t, args.Get(1).(*order.Order).AssignID(10))
		}).Return(nil).Once()

	line, err := stock.NewLine(1, "3.5g")
	require.NoError(t, err)
	stockRepo.On("GetOrCreateLine", ctx, int64(1), "3.5g").Return(line, nil).Once()
	stockRepo.On("SaveLine", ctx, line).Return(nil).Once()
	stockRepo.On("AddMovement", ctx, mock.AnythingOfType("stock.Movement")).Return(nil).Once()
	ledgerRepo.On("Append", ctx, mock.AnythingOfType("ledger.Entry")).Return(nil).Once()
	custRepo.On("IncrementLoyalty", ctx, "@alice", mock.AnythingOfType("time.Time")).Return(nil).Once()

	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	notifier.On("OrderPlacedAdmin", ctx, mock.Anything).Once()
	notifier.On("OrderPlacedSupport", ctx, mock.Anything).Once()
	notifier.On("DispatchCard", ctx, testCourierID, mock.Anything).Once()

	h := newCreateOrderHandler(factory, notifier, board, testRouter(t))
	result, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.InDelta(t, 5.0, result.Discount, 0.001) // 10% of 50, under the cap
	require.False(t, result.RequiresApproval)
}

func TestCreateOrderCommandHandler_PendingCustomer_DefersOrder(t *testing.T) {
	ctx := t.Context()
	cmd := intakeCommand(t, "@newcomer")

	orderRepo := new(MockOrderRepository)
	custRepo := new(MockCustomerRepository)
	uow := new(MockUoW)
	factory := new(MockUoWFactory)
	notifier := new(MockNotifier)
	board := services.NewDispatchBoard()

	pending, err := customer.NewCustomer("@newcomer", time.Now())
	require.NoError(t, err)

	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("CustomerRepository").Return(custRepo)
	uow.On("OrderRepository").Return(orderRepo)

	custRepo.On("GetOrCreate", ctx, "@newcomer", mock.AnythingOfType("time.Time")).
		Return(pending, nil).Once()
	orderRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).
		Run(func(args mock.Arguments) {
			o := args.Get(1).(*order.Order)
			require.Equal(t, order.PendingApproval, o.Status())
			require.NoError(t, o.AssignID(7))
		}).Return(nil).Once()

	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	notifier.On("ApprovalCard", ctx, mock.AnythingOfType("*order.Order")).Once()

	h := newCreateOrderHandler(factory, notifier, board, testRouter(t))
	result, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.True(t, result.RequiresApproval)
	require.Zero(t, result.Discount)

	// nothing is dispatched while the customer awaits review
	require.False(t, board.Contains(7))
	notifier.AssertNotCalled(t, "DispatchCard", mock.Anything, mock.Anything, mock.Anything)
	notifier.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_BlockedCustomer_RejectsBeforeAnyRow(t *testing.T) {
	ctx := t.Context()
	cmd := intakeCommand(t, "@banned")

	orderRepo := new(MockOrderRepository)
	custRepo := new(MockCustomerRepository)
	uow := new(MockUoW)
	factory := new(MockUoWFactory)
	notifier := new(MockNotifier)
	board := services.NewDispatchBoard()

	blocked, err := customer.RestoreCustomer("@banned", customer.TrustBlocked,
		time.Now().Add(-time.Hour), nil, "", "no-show", "")
	require.NoError(t, err)

	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("CustomerRepository").Return(custRepo)
	custRepo.On("GetOrCreate", ctx, "@banned", mock.AnythingOfType("time.Time")).
		Return(blocked, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	h := newCreateOrderHandler(factory, notifier, board, testRouter(t))
	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, customer.ErrCustomerBlocked)

	orderRepo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestCreateOrderCommandHandler_UnroutedZone_EmitsRoutingGap(t *testing.T) {
	ctx := t.Context()

	cmd, err := commands.NewCreateOrderCommand("@alice", "livraison nord", "3 rue du Nord",
		[]commands.LineItemInput{
			{ProductID: 1, Name: "Classique", Variant: "3.5g", Quantity: 1, UnitPrice: 25},
		}, 25)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	custRepo := new(MockCustomerRepository)
	stockRepo := new(MockStockRepository)
	ledgerRepo := new(MockLedgerRepository)
	uow := new(MockUoW)
	factory := new(MockUoWFactory)
	notifier := new(MockNotifier)
	board := services.NewDispatchBoard()

	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("CustomerRepository").Return(custRepo)
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("StockRepository").Return(stockRepo)
	uow.On("LedgerRepository").Return(ledgerRepo)

	custRepo.On("GetOrCreate", ctx, "@alice", mock.AnythingOfType("time.Time")).
		Return(approvedCustomer(t, "@alice"), nil).Once()
	custRepo.On("GetLoyalty", ctx, "@alice").Return(customer.Loyalty{Handle: "@alice"}, nil).Once()
	orderRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).
		Run(func(args mock.Arguments) {
			require.NoError(t, args.Get(1).(*order.Order).AssignID(8))
		}).Return(nil).Once()

	line, err := stock.NewLine(1, "3.5g")
	require.NoError(t, err)
	stockRepo.On("GetOrCreateLine", ctx, int64(1), "3.5g").Return(line, nil).Once()
	stockRepo.On("SaveLine", ctx, line).Return(nil).Once()
	stockRepo.On("AddMovement", ctx, mock.AnythingOfType("stock.Movement")).Return(nil).Once()
	ledgerRepo.On("Append", ctx, mock.AnythingOfType("ledger.Entry")).Return(nil).Once()
	custRepo.On("IncrementLoyalty", ctx, "@alice", mock.AnythingOfType("time.Time")).Return(nil).Once()

	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	notifier.On("OrderPlacedAdmin", ctx, mock.Anything).Once()
	notifier.On("OrderPlacedSupport", ctx, mock.Anything).Once()
	notifier.On("RoutingGap", ctx, mock.AnythingOfType("*order.Order")).Once()

	h := newCreateOrderHandler(factory, notifier, board, testRouter(t))
	result, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.False(t, result.RequiresApproval)

	// the order stays pending in the store but never reaches a courier
	require.False(t, board.Contains(8))
	notifier.AssertNotCalled(t, "DispatchCard", mock.Anything, mock.Anything, mock.Anything)
	notifier.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_ValidationError(t *testing.T) {
	ctx := t.Context()

	factory := new(MockUoWFactory)
	notifier := new(MockNotifier)
	board := services.NewDispatchBoard()

	h := newCreateOrderHandler(factory, notifier, board, testRouter(t))
	_, err := h.Handle(ctx, commands.CreateOrderCommand{})
	require.Error(t, err)
	factory.AssertNotCalled(t, "Create")
}

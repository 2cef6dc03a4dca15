package commands_test

import (
	"context"
	"time"

	"boutique/internal/core/application/usecases/commands"
	"boutique/internal/core/domain/model/customer"
	"boutique/internal/core/domain/model/ledger"
	"boutique/internal/core/domain/model/order"
	"boutique/internal/core/domain/model/stock"
	"boutique/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order, expected order.Status) error {
	args := m.Called(ctx, o, expected)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id int64) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllNonTerminal(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetNonTerminalByCustomer(ctx context.Context, handle string) ([]*order.Order, error) {
	args := m.Called(ctx, handle)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetDeferredByCustomer(ctx context.Context, handle string) ([]*order.Order, error) {
	args := m.Called(ctx, handle)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockCustomerRepository struct{ mock.Mock }

func (m *MockCustomerRepository) GetOrCreate(ctx context.Context, handle string, now time.Time) (*customer.Customer, error) {
	args := m.Called(ctx, handle, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customer.Customer), args.Error(1)
}

func (m *MockCustomerRepository) Get(ctx context.Context, handle string) (*customer.Customer, error) {
	args := m.Called(ctx, handle)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customer.Customer), args.Error(1)
}

func (m *MockCustomerRepository) Update(ctx context.Context, c *customer.Customer) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCustomerRepository) GetLoyalty(ctx context.Context, handle string) (customer.Loyalty, error) {
	args := m.Called(ctx, handle)
	return args.Get(0).(customer.Loyalty), args.Error(1)
}

func (m *MockCustomerRepository) IncrementLoyalty(ctx context.Context, handle string, now time.Time) error {
	args := m.Called(ctx, handle, now)
	return args.Error(0)
}

type MockStockRepository struct{ mock.Mock }

func (m *MockStockRepository) GetOrCreateLine(ctx context.Context, productID int64, variant string) (*stock.Line, error) {
	args := m.Called(ctx, productID, variant)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*stock.Line), args.Error(1)
}

func (m *MockStockRepository) SaveLine(ctx context.Context, line *stock.Line) error {
	args := m.Called(ctx, line)
	return args.Error(0)
}

func (m *MockStockRepository) AddMovement(ctx context.Context, movement stock.Movement) error {
	args := m.Called(ctx, movement)
	return args.Error(0)
}

func (m *MockStockRepository) GetLinesBelow(ctx context.Context, threshold int) ([]*stock.Line, error) {
	args := m.Called(ctx, threshold)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*stock.Line), args.Error(1)
}

type MockLedgerRepository struct{ mock.Mock }

func (m *MockLedgerRepository) Append(ctx context.Context, entry ledger.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) CustomerRepository() ports.CustomerRepository {
	args := m.Called()
	return args.Get(0).(ports.CustomerRepository)
}

func (m *MockUoW) StockRepository() ports.StockRepository {
	args := m.Called()
	return args.Get(0).(ports.StockRepository)
}

func (m *MockUoW) LedgerRepository() ports.LedgerRepository {
	args := m.Called()
	return args.Get(0).(ports.LedgerRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockStockUoW struct{ mock.Mock }

func (m *MockStockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockStockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockStockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockStockUoW) StockRepository() ports.StockRepository {
	args := m.Called()
	return args.Get(0).(ports.StockRepository)
}

type MockStockUoWFactory struct{ mock.Mock }

func (m *MockStockUoWFactory) Create() commands.StockUoW {
	args := m.Called()
	return args.Get(0).(commands.StockUoW)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) OrderPlacedAdmin(ctx context.Context, o *order.Order) {
	m.Called(ctx, o)
}

func (m *MockNotifier) OrderPlacedSupport(ctx context.Context, o *order.Order) {
	m.Called(ctx, o)
}

func (m *MockNotifier) DispatchCard(ctx context.Context, courierChatID string, o *order.Order) {
	m.Called(ctx, courierChatID, o)
}

func (m *MockNotifier) ApprovalCard(ctx context.Context, o *order.Order) {
	m.Called(ctx, o)
}

func (m *MockNotifier) RoutingGap(ctx context.Context, o *order.Order) {
	m.Called(ctx, o)
}

func (m *MockNotifier) EnRouteConfirmation(ctx context.Context, courierChatID string, orderID int64, etaMinutes int) {
	m.Called(ctx, courierChatID, orderID, etaMinutes)
}

func (m *MockNotifier) OrderDelivered(ctx context.Context, o *order.Order) {
	m.Called(ctx, o)
}

func (m *MockNotifier) OrderRefused(ctx context.Context, o *order.Order) {
	m.Called(ctx, o)
}

func (m *MockNotifier) CustomerReviewed(ctx context.Context, handle string, approved bool, affected int) {
	m.Called(ctx, handle, approved, affected)
}

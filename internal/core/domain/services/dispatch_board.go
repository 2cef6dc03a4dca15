package services

import (
	"errors"
	"sync"
	"time"
)

// Board errors.
var (
	// ErrAssignmentNotFound is returned when an order id has no active
	// assignment on the board.
	ErrAssignmentNotFound = errors.New("dispatch assignment not found")
	// ErrConversationBusy is returned when a courier tries to open a second
	// conversation: courier-to-customer messaging is half-duplex across
	// orders, at most one open conversation per courier.
	ErrConversationBusy = errors.New("courier already has an open conversation")
)

// Assignment is one active order on the board: which courier owns it, in
// which zone, for which customer, and whether the courier currently has the
// anonymized conversation with that customer open.
type Assignment struct {
	OrderID        int64
	CourierID      string
	Zone           string
	Customer       string
	CreatedAt      time.Time
	InConversation bool
}

// DispatchBoard is the process-local table of active courier assignments.
// It owns the per-courier backlog ordering (FIFO by order creation time) and
// the conversation-relay lookup. All state is behind one mutex; the board is
// intentionally not durable and is rebuilt from non-terminal orders on
// startup, which resets every conversation to closed.
type DispatchBoard struct {
	mu          sync.Mutex
	assignments map[int64]*Assignment
}

// NewDispatchBoard creates an empty board.
func NewDispatchBoard() *DispatchBoard {
	return &DispatchBoard{
		assignments: make(map[int64]*Assignment),
	}
}

// Enqueue registers an order on a courier's backlog. Re-enqueueing an already
// tracked order updates the assignment but keeps its conversation state.
func (b *DispatchBoard) Enqueue(orderID int64, courierID, zone, customer string, createdAt time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if existing, ok := b.assignments[orderID]; ok {
		existing.CourierID = courierID
		existing.Zone = zone
		existing.Customer = customer
		existing.CreatedAt = createdAt
		return
	}

	b.assignments[orderID] = &Assignment{
		OrderID:   orderID,
		CourierID: courierID,
		Zone:      zone,
		Customer:  customer,
		CreatedAt: createdAt,
	}
}

// Get returns a copy of the assignment for the given order.
func (b *DispatchBoard) Get(orderID int64) (Assignment, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	a, ok := b.assignments[orderID]
	if !ok {
		return Assignment{}, ErrAssignmentNotFound
	}
	return *a, nil
}

// Contains reports whether the order is tracked on the board.
func (b *DispatchBoard) Contains(orderID int64) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	_, ok := b.assignments[orderID]
	return ok
}

// NextFor returns the oldest assignment on the courier's backlog, so the
// courier is always offered the order that has waited longest.
func (b *DispatchBoard) NextFor(courierID string) (Assignment, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	var oldest *Assignment
	for _, a := range b.assignments {
		if a.CourierID != courierID {
			continue
		}
		if oldest == nil || a.CreatedAt.Before(oldest.CreatedAt) ||
			(a.CreatedAt.Equal(oldest.CreatedAt) && a.OrderID < oldest.OrderID) {
			oldest = a
		}
	}

	if oldest == nil {
		return Assignment{}, false
	}
	return *oldest, true
}

// QueueFor returns the courier's whole backlog, oldest first.
func (b *DispatchBoard) QueueFor(courierID string) []Assignment {
	b.mu.Lock()
	defer b.mu.Unlock()

	var queue []Assignment
	for _, a := range b.assignments {
		if a.CourierID == courierID {
			queue = append(queue, *a)
		}
	}

	// Insertion sort: backlogs are a handful of orders.
	for i := 1; i < len(queue); i++ {
		for j := i; j > 0; j-- {
			earlier := queue[j].CreatedAt.Before(queue[j-1].CreatedAt) ||
				(queue[j].CreatedAt.Equal(queue[j-1].CreatedAt) && queue[j].OrderID < queue[j-1].OrderID)
			if !earlier {
				break
			}
			queue[j], queue[j-1] = queue[j-1], queue[j]
		}
	}
	return queue
}

// StartConversation opens the anonymized relay between the order's courier
// and its customer. At most one conversation per courier may be open.
func (b *DispatchBoard) StartConversation(orderID int64) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	a, ok := b.assignments[orderID]
	if !ok {
		return ErrAssignmentNotFound
	}
	if a.InConversation {
		return nil
	}

	for _, other := range b.assignments {
		if other.CourierID == a.CourierID && other.InConversation {
			return ErrConversationBusy
		}
	}

	a.InConversation = true
	return nil
}

// EndConversation closes the relay for the given order. Closing an already
// closed conversation is a no-op.
func (b *DispatchBoard) EndConversation(orderID int64) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	a, ok := b.assignments[orderID]
	if !ok {
		return ErrAssignmentNotFound
	}
	a.InConversation = false
	return nil
}

// Relay returns the single order for which the courier currently has an open
// conversation. When the courier has none, the caller drops the message.
func (b *DispatchBoard) Relay(courierID string) (Assignment, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, a := range b.assignments {
		if a.CourierID == courierID && a.InConversation {
			return *a, true
		}
	}
	return Assignment{}, false
}

// Remove drops the assignment when its order reaches a terminal status.
func (b *DispatchBoard) Remove(orderID int64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.assignments, orderID)
}

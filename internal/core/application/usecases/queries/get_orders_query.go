// Package queries contains read-only operations against the store.
// Query handlers bypass the aggregates and read rows directly, keeping the
// admin surfaces decoupled from the write-side repositories.
package queries

import (
	"errors"
	"fmt"
	"time"

	"boutique/internal/core/domain/model/order"
	"boutique/internal/pkg/errs"
	"boutique/internal/pkg/guard"
)

var (
	ErrGetOrdersQueryIsNotConstructed = errors.New(
		"GetOrdersQuery must be created via NewGetOrdersQuery constructor",
	)
)

const (
	defaultOrdersLimit = 100
	maxOrdersLimit     = 500
)

// GetOrdersQuery retrieves orders for the admin listing, newest first,
// optionally restricted to one status.
type GetOrdersQuery struct {
	status order.Status
	limit  int

	guard guard.ConstructorGuard
}

// NewGetOrdersQuery creates the query. An empty status means all statuses;
// a non-positive limit falls back to the default page size.
func NewGetOrdersQuery(status string, limit int) (GetOrdersQuery, error) {
	q := GetOrdersQuery{
		limit: defaultOrdersLimit,
		guard: guard.NewConstructorGuard(),
	}

	if status != "" {
		parsed, err := order.StatusFromString(status)
		if err != nil {
			return GetOrdersQuery{}, err
		}
		q.status = parsed
	}

	if limit > maxOrdersLimit {
		return GetOrdersQuery{}, errs.NewValueIsOutOfRangeError("limit", limit, 1, maxOrdersLimit)
	}
	if limit > 0 {
		q.limit = limit
	}

	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersQueryIsNotConstructed)
}

// Status returns the status filter, order.Unknown when unfiltered.
func (q GetOrdersQuery) Status() order.Status {
	return q.status
}

// Limit returns the page size.
func (q GetOrdersQuery) Limit() int {
	return q.limit
}

// OrderItemResponse is one cart line of a listed order. The JSON tags match
// the shape the order repository stores in the items column.
type OrderItemResponse struct {
	ProductID int64   `json:"product_id"`
	Name      string  `json:"name"`
	Variant   string  `json:"variant,omitempty"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

// GetOrdersQueryResponse is one order row of the admin listing.
type GetOrdersQueryResponse struct {
	ID           int64               `json:"id"`
	Customer     string              `json:"customer"`
	DeliveryType string              `json:"delivery_type"`
	Address      string              `json:"address"`
	Items        []OrderItemResponse `json:"items"`
	Total        float64             `json:"total"`
	Discount     float64             `json:"discount"`
	Status       string              `json:"status"`
	Zone         string              `json:"zone"`
	EtaMinutes   *int                `json:"eta_minutes,omitempty"`
	CreatedAt    time.Time           `json:"created_at"`
}

func (r GetOrdersQueryResponse) String() string {
	return fmt.Sprintf("order #%d (%s, %s)", r.ID, r.Customer, r.Status)
}

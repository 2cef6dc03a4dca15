package queries

import (
	"context"
	"encoding/json"

	"boutique/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// GetOrdersQueryHandler reads the admin order listing straight from the
// orders table.
type GetOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetOrdersQueryHandler creates a handler for admin order listings.
func NewGetOrdersQueryHandler(db *gorm.DB) GetOrdersQueryHandler {
	return GetOrdersQueryHandler{db: db}
}

// Handle executes the listing. Rows come back newest first so the admin sees
// fresh activity at the top.
func (h GetOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetOrdersQuery,
) ([]GetOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sql := `
		SELECT
			id,
			customer,
			delivery_type,
			address,
			items,
			total,
			discount,
			status,
			zone,
			eta_minutes,
			created_at
		FROM orders
	`
	args := make([]any, 0, 2)
	if query.Status() != order.Unknown {
		sql += ` WHERE status = ?`
		args = append(args, query.Status().String())
	}
	sql += ` ORDER BY created_at DESC, id DESC LIMIT ?`
	args = append(args, query.Limit())

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]GetOrdersQueryResponse, 0)
	for rows.Next() {
		var resp GetOrdersQueryResponse
		var itemsJSON string

		err = rows.Scan(
			&resp.ID,
			&resp.Customer,
			&resp.DeliveryType,
			&resp.Address,
			&itemsJSON,
			&resp.Total,
			&resp.Discount,
			&resp.Status,
			&resp.Zone,
			&resp.EtaMinutes,
			&resp.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		if err = json.Unmarshal([]byte(itemsJSON), &resp.Items); err != nil {
			return nil, err
		}
		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}

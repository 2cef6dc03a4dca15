// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"encoding/json"
	"time"

	"boutique/internal/core/domain/model/order"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Line items are serialized as a JSON document inside the row: items are
// immutable after creation, so they are never queried or updated individually.
type OrderDTO struct {
	ID           int64  `gorm:"primaryKey;autoIncrement"`
	Customer     string `gorm:"index"`
	DeliveryType string
	Address      string
	Items        string `gorm:"type:jsonb"`
	Total        float64
	Discount     float64
	Status       string `gorm:"index"`
	Zone         string
	EtaMinutes   *int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// itemDTO is the JSON shape of one serialized line item.
type itemDTO struct {
	ProductID int64   `json:"product_id"`
	Name      string  `json:"name"`
	Variant   string  `json:"variant,omitempty"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) (OrderDTO, error) {
	items := aggregate.Items()
	raw := make([]itemDTO, 0, len(items))
	for _, item := range items {
		raw = append(raw, itemDTO{
			ProductID: item.ProductID(),
			Name:      item.Name(),
			Variant:   item.Variant(),
			Quantity:  item.Quantity(),
			UnitPrice: item.UnitPrice(),
		})
	}

	encoded, err := json.Marshal(raw)
	if err != nil {
		return OrderDTO{}, err
	}

	return OrderDTO{
		ID:           aggregate.ID(),
		Customer:     aggregate.Customer(),
		DeliveryType: aggregate.DeliveryType(),
		Address:      aggregate.Address(),
		Items:        string(encoded),
		Total:        aggregate.Total(),
		Discount:     aggregate.Discount(),
		Status:       aggregate.Status().String(),
		Zone:         aggregate.Zone(),
		EtaMinutes:   aggregate.EtaMinutes(),
		CreatedAt:    aggregate.CreatedAt(),
		UpdatedAt:    aggregate.UpdatedAt(),
	}, nil
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including serialized line items using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	var raw []itemDTO
	if err := json.Unmarshal([]byte(dto.Items), &raw); err != nil {
		return nil, err
	}

	items := make([]order.LineItem, 0, len(raw))
	for _, itm := range raw {
		item, err := order.NewLineItem(itm.ProductID, itm.Name, itm.Variant, itm.Quantity, itm.UnitPrice)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		dto.ID,
		dto.Customer,
		dto.DeliveryType,
		dto.Address,
		items,
		dto.Total,
		dto.Discount,
		status,
		dto.Zone,
		dto.EtaMinutes,
		dto.CreatedAt,
		dto.UpdatedAt,
	)
}

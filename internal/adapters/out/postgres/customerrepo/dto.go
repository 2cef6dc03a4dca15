// Package customerrepo provides data transfer objects and mapping functions for
// customer trust records and loyalty counters.
package customerrepo

import (
	"time"

	"boutique/internal/core/domain/model/customer"
)

// CustomerDTO represents the database structure for persisting trust records.
// The handle is the natural key: a handle has at most one record.
type CustomerDTO struct {
	Handle      string `gorm:"primaryKey"`
	Status      string `gorm:"index"`
	FirstSeen   time.Time
	ApprovedAt  *time.Time
	ApprovedBy  string
	BlockReason string
	Notes       string
}

// TableName specifies the database table name for customer trust records.
func (CustomerDTO) TableName() string {
	return "customers"
}

// LoyaltyDTO represents the per-handle loyalty counter row.
type LoyaltyDTO struct {
	Handle      string `gorm:"primaryKey"`
	OrdersCount int
	LastOrderAt *time.Time
}

// TableName specifies the database table name for loyalty counters.
func (LoyaltyDTO) TableName() string {
	return "loyalty"
}

// fromDomain converts a customer trust aggregate to its database representation.
func fromDomain(aggregate *customer.Customer) CustomerDTO {
	return CustomerDTO{
		Handle:      aggregate.Handle(),
		Status:      aggregate.Status().String(),
		FirstSeen:   aggregate.FirstSeen(),
		ApprovedAt:  aggregate.ApprovedAt(),
		ApprovedBy:  aggregate.ApprovedBy(),
		BlockReason: aggregate.BlockReason(),
		Notes:       aggregate.Notes(),
	}
}

// toDomain converts a database DTO back to a customer trust aggregate.
func toDomain(dto CustomerDTO) (*customer.Customer, error) {
	status, err := customer.TrustStatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	return customer.RestoreCustomer(
		dto.Handle,
		status,
		dto.FirstSeen,
		dto.ApprovedAt,
		dto.ApprovedBy,
		dto.BlockReason,
		dto.Notes,
	)
}

// Package stockrepo provides data transfer objects and mapping functions for
// stock lines and their movement journal.
package stockrepo

import (
	"time"

	"boutique/internal/core/domain/model/stock"
)

// LineDTO represents the quantity on hand for one (product, variant) pair.
// The pair is the composite primary key.
type LineDTO struct {
	ProductID int64  `gorm:"primaryKey;autoIncrement:false"`
	Variant   string `gorm:"primaryKey"`
	Qty       int
}

// TableName specifies the database table name for stock lines.
func (LineDTO) TableName() string {
	return "stock"
}

// MovementDTO represents one append-only movement journal row.
type MovementDTO struct {
	ID         int64 `gorm:"primaryKey;autoIncrement"`
	ProductID  int64 `gorm:"index"`
	Variant    string
	Direction  string
	Quantity   int
	StockAfter int
	Reason     string
	At         time.Time `gorm:"index"`
}

// TableName specifies the database table name for stock movements.
func (MovementDTO) TableName() string {
	return "stock_movements"
}

func lineFromDomain(line *stock.Line) LineDTO {
	return LineDTO{
		ProductID: line.ProductID(),
		Variant:   line.Variant(),
		Qty:       line.Qty(),
	}
}

func lineToDomain(dto LineDTO) (*stock.Line, error) {
	return stock.RestoreLine(dto.ProductID, dto.Variant, dto.Qty)
}

func movementFromDomain(movement stock.Movement) MovementDTO {
	return MovementDTO{
		ProductID:  movement.ProductID,
		Variant:    movement.Variant,
		Direction:  string(movement.Direction),
		Quantity:   movement.Quantity,
		StockAfter: movement.StockAfter,
		Reason:     movement.Reason,
		At:         movement.At,
	}
}

package stockrepo

import (
	"context"

	"boutique/internal/core/domain/model/stock"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStockRepository implements StockRepository using GORM.
type GormStockRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id string, aggregate any)
}

// NewGormStockRepository creates a new GORM stock repository.
func NewGormStockRepository(db *gorm.DB, tracker aggregateTracker) *GormStockRepository {
	return &GormStockRepository{
		db:      db,
		tracker: tracker,
	}
}

// GetOrCreateLine returns the line for the product and variant, inserting an
// empty line when none exists yet. The insert uses ON CONFLICT DO NOTHING
// against the composite key and then re-reads, so concurrent first movements
// converge on one row.
func (r *GormStockRepository) GetOrCreateLine(ctx context.Context, productID int64, variant string) (*stock.Line, error) {
	fresh, err := stock.NewLine(productID, variant)
	if err != nil {
		return nil, err
	}

	dto := lineFromDomain(fresh)
	err = r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&dto).Error
	if err != nil {
		return nil, err
	}

	var stored LineDTO
	err = r.db.WithContext(ctx).
		First(&stored, "product_id = ? AND variant = ?", productID, variant).Error
	if err != nil {
		return nil, err
	}

	return lineToDomain(stored)
}

// SaveLine persists the line's current quantity.
func (r *GormStockRepository) SaveLine(ctx context.Context, line *stock.Line) error {
	if err := line.Validate(); err != nil {
		return err
	}

	dto := lineFromDomain(line)
	err := r.db.WithContext(ctx).
		Model(&LineDTO{}).
		Where("product_id = ? AND variant = ?", dto.ProductID, dto.Variant).
		Update("qty", dto.Qty).Error
	if err != nil {
		return err
	}

	r.tracker.TrackAggregate(dto.Variant, line)
	return nil
}

// AddMovement appends one movement row to the journal.
func (r *GormStockRepository) AddMovement(ctx context.Context, movement stock.Movement) error {
	dto := movementFromDomain(movement)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetLinesBelow returns every line whose quantity is strictly below the
// threshold, lowest first.
func (r *GormStockRepository) GetLinesBelow(ctx context.Context, threshold int) ([]*stock.Line, error) {
	var dtos []LineDTO
	err := r.db.WithContext(ctx).
		Where("qty < ?", threshold).
		Order("qty ASC, product_id ASC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return linesToDomain(dtos)
}

func linesToDomain(dtos []LineDTO) ([]*stock.Line, error) {
	lines := make([]*stock.Line, 0, len(dtos))
	for _, dto := range dtos {
		line, err := lineToDomain(dto)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, nil
}

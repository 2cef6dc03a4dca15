package customerrepo

import (
	"context"
	"errors"
	"time"

	"boutique/internal/core/domain/model/customer"
	"boutique/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCustomerRepository implements CustomerRepository using GORM.
type GormCustomerRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id string, aggregate any)
}

// NewGormCustomerRepository creates a new GORM customer repository.
func NewGormCustomerRepository(db *gorm.DB, tracker aggregateTracker) *GormCustomerRepository {
	return &GormCustomerRepository{
		db:      db,
		tracker: tracker,
	}
}

// GetOrCreate returns the trust record for the handle, inserting a pending
// record when the handle is seen for the first time. The insert uses
// ON CONFLICT DO NOTHING against the handle's primary key and then re-reads,
// so two concurrent first orders converge on the same single record.
func (r *GormCustomerRepository) GetOrCreate(ctx context.Context, handle string, now time.Time) (*customer.Customer, error) {
	fresh, err := customer.NewCustomer(handle, now)
	if err != nil {
		return nil, err
	}

	dto := fromDomain(fresh)
	err = r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&dto).Error
	if err != nil {
		return nil, err
	}

	return r.Get(ctx, handle)
}

// Get retrieves the trust record for the handle.
func (r *GormCustomerRepository) Get(ctx context.Context, handle string) (*customer.Customer, error) {
	var dto CustomerDTO
	if err := r.db.WithContext(ctx).First(&dto, "handle = ?", handle).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("customer", handle)
		}
		return nil, err
	}

	return toDomain(dto)
}

// Update saves an existing trust record.
func (r *GormCustomerRepository) Update(ctx context.Context, aggregate *customer.Customer) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&CustomerDTO{}).
		Where("handle = ?", dto.Handle).
		Updates(map[string]any{
			"status":       dto.Status,
			"approved_at":  dto.ApprovedAt,
			"approved_by":  dto.ApprovedBy,
			"block_reason": dto.BlockReason,
			"notes":        dto.Notes,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("customer", dto.Handle)
	}

	r.tracker.TrackAggregate(dto.Handle, aggregate)
	return nil
}

// GetLoyalty returns the loyalty counter for the handle. A handle without a
// counter row yet gets a zero counter, not an error.
func (r *GormCustomerRepository) GetLoyalty(ctx context.Context, handle string) (customer.Loyalty, error) {
	var dto LoyaltyDTO
	err := r.db.WithContext(ctx).First(&dto, "handle = ?", handle).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return customer.Loyalty{Handle: handle}, nil
		}
		return customer.Loyalty{}, err
	}

	return customer.Loyalty{
		Handle:      dto.Handle,
		OrdersCount: dto.OrdersCount,
		LastOrderAt: dto.LastOrderAt,
	}, nil
}

// IncrementLoyalty adds one counted order to the handle's counter, creating
// the row on first increment.
func (r *GormCustomerRepository) IncrementLoyalty(ctx context.Context, handle string, now time.Time) error {
	dto := LoyaltyDTO{
		Handle:      handle,
		OrdersCount: 1,
		LastOrderAt: &now,
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "handle"}},
			DoUpdates: clause.Assignments(map[string]any{
				"orders_count":  gorm.Expr("loyalty.orders_count + 1"),
				"last_order_at": now,
			}),
		}).
		Create(&dto).Error
}

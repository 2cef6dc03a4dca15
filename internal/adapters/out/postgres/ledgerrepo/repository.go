// Package ledgerrepo persists the append-only financial journal.
package ledgerrepo

import (
	"context"
	"time"

	"boutique/internal/core/domain/model/ledger"

	"gorm.io/gorm"
)

// EntryDTO represents one financial transaction row.
type EntryDTO struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"`
	EntryType   string `gorm:"index"`
	Category    string `gorm:"index"`
	Description string
	Amount      float64
	Method      string
	Date        time.Time `gorm:"index"`
}

// TableName specifies the database table name for ledger entries.
func (EntryDTO) TableName() string {
	return "transactions"
}

// GormLedgerRepository implements LedgerRepository using GORM.
type GormLedgerRepository struct {
	db *gorm.DB
}

// NewGormLedgerRepository creates a new GORM ledger repository.
func NewGormLedgerRepository(db *gorm.DB) *GormLedgerRepository {
	return &GormLedgerRepository{db: db}
}

// Append writes one journal entry. The journal has no update or delete path.
func (r *GormLedgerRepository) Append(ctx context.Context, entry ledger.Entry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	dto := EntryDTO{
		EntryType:   string(entry.EntryType()),
		Category:    entry.Category(),
		Description: entry.Description(),
		Amount:      entry.Amount(),
		Method:      entry.Method(),
		Date:        entry.Date(),
	}

	return r.db.WithContext(ctx).Create(&dto).Error
}

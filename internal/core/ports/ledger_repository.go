package ports

import (
	"context"

	"boutique/internal/core/domain/model/ledger"
)

// LedgerRepository defines the persistence contract for the append-only
// financial journal.
type LedgerRepository interface {
	// Append writes one journal entry. Entries are never updated or
	// deleted afterwards.
	Append(ctx context.Context, entry ledger.Entry) error
}

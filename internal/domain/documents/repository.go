package documents

import (
	"context"
	"time"

	"batibill/internal/core/id"
	"batibill/internal/core/money"
)

// ListFilter narrows document listings. Zero values mean "no filter".
type ListFilter struct {
	Type     Type
	Status   Status
	ClientID id.ID
	SiteID   id.ID
	From     time.Time
	To       time.Time
	Limit    int
	Offset   int
}

// LedgerState is the pair the payment ledger writes back to an invoice.
type LedgerState struct {
	RemainingBalance money.Money
	Status           Status
}

// Repository defines storage operations for documents and their lines.
// Write methods must run inside a transaction carried by ctx.
type Repository interface {
	// Create inserts the header and its lines. Returns a DUPLICATE_ENTRY
	// error when the (tenant, type, number) triple already exists.
	Create(ctx context.Context, doc *Document) error

	GetByID(ctx context.Context, tenantID, docID id.ID) (*Document, error)
	GetByNumber(ctx context.Context, tenantID id.ID, docType Type, number string) (*Document, error)

	// GetForUpdate loads the header with a row lock, serializing ledger
	// recomputation. Lines are not loaded.
	GetForUpdate(ctx context.Context, tenantID, docID id.ID) (*Document, error)

	// GetLines returns the lines of a document in display order.
	GetLines(ctx context.Context, docID id.ID) ([]Line, error)

	List(ctx context.Context, tenantID id.ID, filter ListFilter) ([]Document, error)

	// UpdateStatus persists a lifecycle move with optimistic locking.
	UpdateStatus(ctx context.Context, doc *Document) error

	// UpdateLedgerState writes the ledger-derived state on a row already
	// locked via GetForUpdate.
	UpdateLedgerState(ctx context.Context, tenantID, docID id.ID, state LedgerState) error

	// SoftDelete marks the document deleted. Its number is never reissued.
	SoftDelete(ctx context.Context, tenantID, docID id.ID) error
}

package payments

import (
	"context"

	"batibill/internal/core/id"
	"batibill/internal/core/money"
)

// Repository defines storage operations for payments.
// Write methods must run inside a transaction carried by ctx.
type Repository interface {
	Create(ctx context.Context, p *Payment) error
	GetByID(ctx context.Context, tenantID, paymentID id.ID) (*Payment, error)
	ListByInvoice(ctx context.Context, tenantID, invoiceID id.ID) ([]Payment, error)

	// SumActiveByInvoice returns the total of non-deleted payments.
	// Must be read under the invoice row lock to be race-free.
	SumActiveByInvoice(ctx context.Context, tenantID, invoiceID id.ID) (money.Money, error)

	SoftDelete(ctx context.Context, tenantID, paymentID id.ID) error
}

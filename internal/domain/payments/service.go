package payments

import (
	"context"
	"time"

	"batibill/internal/core/apperror"
	"batibill/internal/core/entity"
	"batibill/internal/core/id"
	"batibill/internal/core/money"
	"batibill/internal/core/tenant"
	"batibill/internal/core/tx"
	"batibill/internal/domain/documents"
	"batibill/pkg/logger"
)

// InvoiceAccess is the slice of the document repository the ledger needs:
// locking an invoice header and writing back the derived state.
type InvoiceAccess interface {
	GetForUpdate(ctx context.Context, tenantID, docID id.ID) (*documents.Document, error)
	UpdateLedgerState(ctx context.Context, tenantID, docID id.ID, state documents.LedgerState) error
}

// Invalidator evicts a tenant's cached analytics after ledger changes.
type Invalidator interface {
	Invalidate(ctx context.Context, tenantID id.ID)
}

// Service implements the payment ledger. Every mutation locks the
// invoice header first, so concurrent payments against one invoice
// serialize and the overpayment check is race-free.
type Service struct {
	repo      Repository
	invoices  InvoiceAccess
	txManager tx.Manager
	analytics Invalidator
}

func NewService(repo Repository, invoices InvoiceAccess, txManager tx.Manager, analytics Invalidator) *Service {
	return &Service{
		repo:      repo,
		invoices:  invoices,
		txManager: txManager,
		analytics: analytics,
	}
}

// RecordInput holds fields accepted when recording a payment.
type RecordInput struct {
	InvoiceID   id.ID
	Amount      money.Money
	Method      Method
	PaymentDate time.Time
	Reference   string
	Notes       string
}

// Record registers a payment against an invoice and recomputes the
// invoice state in the same transaction. Overpayment is rejected before
// anything is written, with the attempted and remaining amounts in the
// error details.
func (s *Service) Record(ctx context.Context, in RecordInput) (*Payment, documents.LedgerState, error) {
	t, err := tenant.RequireTenant(ctx)
	if err != nil {
		return nil, documents.LedgerState{}, err
	}
	if in.PaymentDate.IsZero() {
		in.PaymentDate = time.Now().UTC()
	}

	p := &Payment{
		BaseEntity:  entity.NewBaseEntity(t.ID),
		InvoiceID:   in.InvoiceID,
		Amount:      in.Amount,
		Method:      in.Method,
		PaymentDate: in.PaymentDate,
		Reference:   in.Reference,
		Notes:       in.Notes,
		CreatedAt:   time.Now().UTC(),
	}
	if err := p.Validate(ctx); err != nil {
		return nil, documents.LedgerState{}, err
	}

	var state documents.LedgerState
	err = s.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		inv, txErr := s.invoices.GetForUpdate(txCtx, t.ID, in.InvoiceID)
		if txErr != nil {
			return txErr
		}
		if !inv.IsInvoice() {
			return apperror.NewValidation("payments can only be recorded against invoices").
				WithDetail("doc_type", string(inv.Type))
		}

		paid, txErr := s.repo.SumActiveByInvoice(txCtx, t.ID, in.InvoiceID)
		if txErr != nil {
			return txErr
		}
		if txErr := ValidateAmount(inv.ID.String(), inv.TotalTTC, paid, in.Amount); txErr != nil {
			return txErr
		}

		if txErr := s.repo.Create(txCtx, p); txErr != nil {
			return txErr
		}

		state = DeriveState(inv.Status, inv.TotalTTC, paid.Add(in.Amount))
		return s.invoices.UpdateLedgerState(txCtx, t.ID, inv.ID, state)
	})
	if err != nil {
		return nil, documents.LedgerState{}, err
	}

	s.analytics.Invalidate(ctx, t.ID)
	logger.Info(ctx, "payment recorded",
		"payment_id", p.ID, "invoice_id", in.InvoiceID,
		"amount", in.Amount.String(), "invoice_status", state.Status)
	return p, state, nil
}

// Delete soft-deletes a payment and recomputes the invoice state.
// Removing the last payment of a previously paid invoice regresses it
// to COMPLETED, never back to DRAFT unless it still was one.
func (s *Service) Delete(ctx context.Context, paymentID id.ID) (documents.LedgerState, error) {
	t, err := tenant.RequireTenant(ctx)
	if err != nil {
		return documents.LedgerState{}, err
	}

	var state documents.LedgerState
	err = s.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		p, txErr := s.repo.GetByID(txCtx, t.ID, paymentID)
		if txErr != nil {
			return txErr
		}

		inv, txErr := s.invoices.GetForUpdate(txCtx, t.ID, p.InvoiceID)
		if txErr != nil {
			return txErr
		}

		if txErr := s.repo.SoftDelete(txCtx, t.ID, paymentID); txErr != nil {
			return txErr
		}

		paid, txErr := s.repo.SumActiveByInvoice(txCtx, t.ID, p.InvoiceID)
		if txErr != nil {
			return txErr
		}

		state = DeriveState(inv.Status, inv.TotalTTC, paid)
		return s.invoices.UpdateLedgerState(txCtx, t.ID, inv.ID, state)
	})
	if err != nil {
		return documents.LedgerState{}, err
	}

	s.analytics.Invalidate(ctx, t.ID)
	logger.Info(ctx, "payment deleted",
		"payment_id", paymentID, "invoice_status", state.Status)
	return state, nil
}

// ListByInvoice returns the active payments of an invoice.
func (s *Service) ListByInvoice(ctx context.Context, invoiceID id.ID) ([]Payment, error) {
	return s.repo.ListByInvoice(ctx, tenant.GetTenantID(ctx), invoiceID)
}

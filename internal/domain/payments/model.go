// Package payments implements the invoice payment ledger: recording and
// deleting payments, and deriving the invoice paid-state from the sum of
// active payments.
package payments

import (
	"context"
	"time"

	"batibill/internal/core/apperror"
	"batibill/internal/core/entity"
	"batibill/internal/core/id"
	"batibill/internal/core/money"
)

// Method of payment.
type Method string

const (
	MethodCash         Method = "CASH"
	MethodBankTransfer Method = "BANK_TRANSFER"
	MethodCheck        Method = "CHECK"
	MethodCard         Method = "CARD"
)

func (m Method) Valid() bool {
	switch m {
	case MethodCash, MethodBankTransfer, MethodCheck, MethodCard:
		return true
	}
	return false
}

// Payment is one settlement against an invoice. Payments are never
// edited: corrections go through delete and re-record, both of which
// recompute the invoice state.
type Payment struct {
	entity.BaseEntity

	InvoiceID id.ID `db:"invoice_id" json:"invoiceId"`

	Amount money.Money `db:"amount" json:"amount"`
	Method Method      `db:"method" json:"method"`

	PaymentDate time.Time `db:"payment_date" json:"paymentDate"`

	// Reference is the check number, transfer reference, etc.
	Reference string `db:"reference" json:"reference,omitempty"`
	Notes     string `db:"notes" json:"notes,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// Validate implements entity.Validatable.
func (p *Payment) Validate(_ context.Context) error {
	if id.IsNil(p.InvoiceID) {
		return apperror.NewValidation("invoice is required")
	}
	if !p.Amount.IsPositive() {
		return apperror.NewValidation("payment amount must be positive").
			WithDetail("amount", p.Amount.String())
	}
	if !p.Method.Valid() {
		return apperror.NewValidation("invalid payment method").
			WithDetail("method", string(p.Method))
	}
	return nil
}

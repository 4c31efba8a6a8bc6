package dto

import (
	"time"

	"batibill/internal/core/apperror"
	"batibill/internal/core/id"
	"batibill/internal/core/money"
	"batibill/internal/domain/documents"
	"batibill/internal/domain/payments"
)

// RecordPaymentRequest records a payment against an invoice.
type RecordPaymentRequest struct {
	InvoiceID   string      `json:"invoiceId" binding:"required"`
	Amount      money.Money `json:"amount" binding:"required"`
	Method      string      `json:"method" binding:"required"`
	PaymentDate *time.Time  `json:"paymentDate"`
	Reference   string      `json:"reference"`
	Notes       string      `json:"notes"`
}

// ToInput converts the request into the service input.
func (r RecordPaymentRequest) ToInput() (payments.RecordInput, error) {
	invoiceID, err := id.Parse(r.InvoiceID)
	if err != nil {
		return payments.RecordInput{}, apperror.NewValidation("invalid invoice id").
			WithDetail("invoice_id", r.InvoiceID)
	}

	in := payments.RecordInput{
		InvoiceID: invoiceID,
		Amount:    r.Amount,
		Method:    payments.Method(r.Method),
		Reference: r.Reference,
		Notes:     r.Notes,
	}
	if r.PaymentDate != nil {
		in.PaymentDate = *r.PaymentDate
	}
	return in, nil
}

// PaymentResponse pairs the created payment with the invoice state it
// produced, so clients never need a second round-trip.
type PaymentResponse struct {
	Payment *payments.Payment   `json:"payment"`
	Invoice LedgerStateResponse `json:"invoice"`
}

// NewPaymentResponse creates the payment response.
func NewPaymentResponse(p *payments.Payment, state documents.LedgerState) PaymentResponse {
	return PaymentResponse{
		Payment: p,
		Invoice: FromLedgerState(state),
	}
}

package payments

import (
	"batibill/internal/core/apperror"
	"batibill/internal/core/money"
	"batibill/internal/domain/documents"
)

// DeriveState computes the invoice ledger state from its tax-inclusive
// total and the sum of active payments. It is a pure function: callers
// validate amounts beforehand, so the only clamp here is defensive
// against stored data already in breach.
//
// Rules, in order:
//
//	remaining = clamp0(total - paid)
//	paid in full          -> PAID
//	partially paid        -> PARTIALLY_PAID
//	nothing paid anymore  -> COMPLETED when regressing from a paid state,
//	                         otherwise the previous status is kept
//
// The regression to COMPLETED only applies to documents sitting in a
// ledger-derived status. An invoice still in DRAFT with no payments is
// never force-advanced by the ledger.
func DeriveState(prev documents.Status, totalTTC, paid money.Money) documents.LedgerState {
	remaining := money.ClampZero(totalTTC.Sub(paid))

	switch {
	case totalTTC.IsPositive() && remaining.IsZero():
		return documents.LedgerState{RemainingBalance: remaining, Status: documents.StatusPaid}

	case remaining.LessThan(totalTTC):
		return documents.LedgerState{RemainingBalance: remaining, Status: documents.StatusPartiallyPaid}

	default:
		// Nothing paid. Regress ledger-derived statuses to COMPLETED;
		// anything else (DRAFT, COMPLETED) stays as it was.
		status := prev
		if documents.IsLedgerStatus(prev) {
			status = documents.StatusCompleted
		}
		return documents.LedgerState{RemainingBalance: remaining, Status: status}
	}
}

// ValidateAmount rejects a payment that would push the active sum over
// the invoice total. alreadyPaid is the sum of active payments excluding
// the one being validated.
func ValidateAmount(invoiceID string, totalTTC, alreadyPaid, amount money.Money) error {
	if alreadyPaid.Add(amount).GreaterThan(totalTTC) {
		remaining := money.ClampZero(totalTTC.Sub(alreadyPaid))
		return apperror.NewOverpayment(invoiceID, amount.String(), remaining.String())
	}
	return nil
}

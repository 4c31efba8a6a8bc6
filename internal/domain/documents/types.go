package documents

// Type identifies a financial document kind. Each type numbers
// independently and has its own status vocabulary.
type Type string

const (
	TypeInvoice       Type = "INVOICE"
	TypeQuote         Type = "QUOTE"
	TypePurchaseOrder Type = "PURCHASE_ORDER"
)

func (t Type) Valid() bool {
	switch t {
	case TypeInvoice, TypeQuote, TypePurchaseOrder:
		return true
	}
	return false
}

// Status of a document within its type's lifecycle.
type Status string

const (
	StatusDraft Status = "DRAFT"

	// Invoice statuses. PARTIALLY_PAID and PAID are ledger-derived:
	// they are never set directly, only by payment recomputation.
	StatusCompleted     Status = "COMPLETED"
	StatusPartiallyPaid Status = "PARTIALLY_PAID"
	StatusPaid          Status = "PAID"

	// Quote statuses.
	StatusSent     Status = "SENT"
	StatusAccepted Status = "ACCEPTED"
	StatusRejected Status = "REJECTED"
	StatusExpired  Status = "EXPIRED"

	// Purchase order statuses (plus SENT, COMPLETED above).
	StatusConfirmed Status = "CONFIRMED"
	StatusCancelled Status = "CANCELLED"
)

// transitions lists the user-driven status moves per document type.
// Ledger-derived invoice statuses are intentionally absent as targets:
// the payment ledger owns them.
var transitions = map[Type]map[Status][]Status{
	TypeInvoice: {
		StatusDraft: {StatusCompleted},
	},
	TypeQuote: {
		StatusDraft: {StatusSent},
		StatusSent:  {StatusAccepted, StatusRejected, StatusExpired},
	},
	TypePurchaseOrder: {
		StatusDraft:     {StatusSent, StatusCancelled},
		StatusSent:      {StatusConfirmed, StatusCancelled},
		StatusConfirmed: {StatusCompleted, StatusCancelled},
	},
}

// CanTransition reports whether a user may move a document of the given
// type from one status to another.
func CanTransition(t Type, from, to Status) bool {
	for _, allowed := range transitions[t][from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// IsLedgerStatus reports whether the status is owned by the payment
// ledger rather than by direct user action.
func IsLedgerStatus(s Status) bool {
	return s == StatusPartiallyPaid || s == StatusPaid
}

// IsEditable reports whether a document in this status accepts line or
// header changes. Only drafts are editable: once issued, a document's
// lines and totals are frozen.
func IsEditable(s Status) bool {
	return s == StatusDraft
}

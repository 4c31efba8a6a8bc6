package documents

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		docType Type
		from    Status
		to      Status
		want    bool
	}{
		// Invoice: the only user-driven move is issuing the draft.
		{TypeInvoice, StatusDraft, StatusCompleted, true},
		{TypeInvoice, StatusDraft, StatusPaid, false},
		{TypeInvoice, StatusCompleted, StatusDraft, false},
		{TypeInvoice, StatusCompleted, StatusPaid, false},

		// Quote lifecycle.
		{TypeQuote, StatusDraft, StatusSent, true},
		{TypeQuote, StatusSent, StatusAccepted, true},
		{TypeQuote, StatusSent, StatusRejected, true},
		{TypeQuote, StatusSent, StatusExpired, true},
		{TypeQuote, StatusDraft, StatusAccepted, false},
		{TypeQuote, StatusAccepted, StatusSent, false},

		// Purchase order lifecycle.
		{TypePurchaseOrder, StatusDraft, StatusSent, true},
		{TypePurchaseOrder, StatusSent, StatusConfirmed, true},
		{TypePurchaseOrder, StatusConfirmed, StatusCompleted, true},
		{TypePurchaseOrder, StatusConfirmed, StatusCancelled, true},
		{TypePurchaseOrder, StatusSent, StatusCancelled, true},
		{TypePurchaseOrder, StatusDraft, StatusConfirmed, false},
		{TypePurchaseOrder, StatusCompleted, StatusCancelled, false},
	}

	for _, tt := range tests {
		got := CanTransition(tt.docType, tt.from, tt.to)
		assert.Equal(t, tt.want, got, "%s: %s -> %s", tt.docType, tt.from, tt.to)
	}
}

func TestIsLedgerStatus(t *testing.T) {
	assert.True(t, IsLedgerStatus(StatusPartiallyPaid))
	assert.True(t, IsLedgerStatus(StatusPaid))
	assert.False(t, IsLedgerStatus(StatusCompleted))
	assert.False(t, IsLedgerStatus(StatusDraft))
}

func TestIsEditable(t *testing.T) {
	assert.True(t, IsEditable(StatusDraft))
	assert.False(t, IsEditable(StatusCompleted))
	assert.False(t, IsEditable(StatusSent))
}

package payments

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"batibill/internal/core/apperror"
	"batibill/internal/core/money"
	"batibill/internal/domain/documents"
)

func TestDeriveState(t *testing.T) {
	tests := []struct {
		name          string
		prev          documents.Status
		total         string
		paid          string
		wantStatus    documents.Status
		wantRemaining string
	}{
		{
			name: "no payments keeps completed",
			prev: documents.StatusCompleted, total: "300", paid: "0",
			wantStatus: documents.StatusCompleted, wantRemaining: "300",
		},
		{
			name: "no payments keeps draft",
			prev: documents.StatusDraft, total: "300", paid: "0",
			wantStatus: documents.StatusDraft, wantRemaining: "300",
		},
		{
			name: "partial payment",
			prev: documents.StatusCompleted, total: "300", paid: "100",
			wantStatus: documents.StatusPartiallyPaid, wantRemaining: "200",
		},
		{
			name: "full payment",
			prev: documents.StatusCompleted, total: "300", paid: "300",
			wantStatus: documents.StatusPaid, wantRemaining: "0",
		},
		{
			name: "full payment in installments",
			prev: documents.StatusPartiallyPaid, total: "300", paid: "300",
			wantStatus: documents.StatusPaid, wantRemaining: "0",
		},
		{
			name: "deleting all payments regresses paid to completed",
			prev: documents.StatusPaid, total: "300", paid: "0",
			wantStatus: documents.StatusCompleted, wantRemaining: "300",
		},
		{
			name: "deleting all payments regresses partially paid to completed",
			prev: documents.StatusPartiallyPaid, total: "300", paid: "0",
			wantStatus: documents.StatusCompleted, wantRemaining: "300",
		},
		{
			name: "draft paid in full becomes paid",
			prev: documents.StatusDraft, total: "300", paid: "300",
			wantStatus: documents.StatusPaid, wantRemaining: "0",
		},
		{
			name: "overpaid stored data clamps to zero",
			prev: documents.StatusCompleted, total: "300", paid: "400",
			wantStatus: documents.StatusPaid, wantRemaining: "0",
		},
		{
			name: "zero total invoice stays put",
			prev: documents.StatusCompleted, total: "0", paid: "0",
			wantStatus: documents.StatusCompleted, wantRemaining: "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := DeriveState(tt.prev, money.MustParse(tt.total), money.MustParse(tt.paid))
			assert.Equal(t, tt.wantStatus, state.Status)
			assert.True(t, state.RemainingBalance.Equal(money.MustParse(tt.wantRemaining)),
				"remaining = %s, want %s", state.RemainingBalance, tt.wantRemaining)
		})
	}
}

func TestValidateAmount(t *testing.T) {
	total := money.New(300)

	assert.NoError(t, ValidateAmount("inv-1", total, money.Zero(), money.New(300)))
	assert.NoError(t, ValidateAmount("inv-1", total, money.New(100), money.New(200)))

	err := ValidateAmount("inv-1", total, money.New(100), money.MustParse("200.01"))
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeOverpayment, appErr.Code)
	assert.Equal(t, "200.01", appErr.Details["attempted"])
	assert.Equal(t, "200", appErr.Details["remaining"])
}

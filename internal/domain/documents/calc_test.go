package documents

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"batibill/internal/core/apperror"
	"batibill/internal/core/money"
)

func TestComputeLine(t *testing.T) {
	tests := []struct {
		name         string
		qty          string
		price        string
		taxRate      string
		wantSubtotal string
		wantTax      string
		wantTotal    string
	}{
		{
			name: "unit quantity",
			qty:  "1", price: "100", taxRate: "20",
			wantSubtotal: "100", wantTax: "20", wantTotal: "120",
		},
		{
			name: "fractional quantity",
			qty:  "2.5", price: "33.33", taxRate: "20",
			wantSubtotal: "83.32", wantTax: "16.66", wantTotal: "99.98",
		},
		{
			name: "zero tax",
			qty:  "3", price: "50", taxRate: "0",
			wantSubtotal: "150", wantTax: "0", wantTotal: "150",
		},
		{
			name: "bankers rounding on subtotal",
			qty:  "0.5", price: "2.01", taxRate: "0",
			wantSubtotal: "1", wantTax: "0", wantTotal: "1",
		},
		{
			name: "zero quantity",
			qty:  "0", price: "100", taxRate: "20",
			wantSubtotal: "0", wantTax: "0", wantTotal: "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line, err := ComputeLine(LineInput{
				ItemName:  "Test item",
				Quantity:  money.MustParse(tt.qty),
				UnitPrice: money.MustParse(tt.price),
				TaxRate:   money.MustParse(tt.taxRate),
			})
			require.NoError(t, err)

			assert.True(t, line.Subtotal.Equal(money.MustParse(tt.wantSubtotal)),
				"subtotal = %s, want %s", line.Subtotal, tt.wantSubtotal)
			assert.True(t, line.TaxAmount.Equal(money.MustParse(tt.wantTax)),
				"tax = %s, want %s", line.TaxAmount, tt.wantTax)
			assert.True(t, line.Total.Equal(money.MustParse(tt.wantTotal)),
				"total = %s, want %s", line.Total, tt.wantTotal)
		})
	}
}

func TestComputeLineTotalIsExactSum(t *testing.T) {
	// The invariant: total equals the sum of the two stored components,
	// whatever rounding produced them.
	inputs := []struct{ qty, price, rate string }{
		{"1", "0.01", "20"},
		{"3", "33.33", "14"},
		{"7.77", "7.77", "7"},
		{"1000", "999.99", "20"},
		{"0.33", "0.33", "10"},
	}
	for _, in := range inputs {
		line, err := ComputeLine(LineInput{
			ItemName:  "x",
			Quantity:  money.MustParse(in.qty),
			UnitPrice: money.MustParse(in.price),
			TaxRate:   money.MustParse(in.rate),
		})
		require.NoError(t, err)
		assert.True(t, line.Total.Equal(line.Subtotal.Add(line.TaxAmount)),
			"qty=%s price=%s rate=%s: %s != %s + %s",
			in.qty, in.price, in.rate, line.Total, line.Subtotal, line.TaxAmount)
	}
}

func TestComputeLineValidation(t *testing.T) {
	tests := []struct {
		name  string
		input LineInput
		field string
	}{
		{
			name: "negative quantity",
			input: LineInput{
				Quantity: money.MustParse("-1"), UnitPrice: money.New(10), TaxRate: money.New(20),
			},
			field: "quantity",
		},
		{
			name: "negative price",
			input: LineInput{
				Quantity: money.New(1), UnitPrice: money.MustParse("-0.01"), TaxRate: money.New(20),
			},
			field: "unit_price",
		},
		{
			name: "tax rate above 100",
			input: LineInput{
				Quantity: money.New(1), UnitPrice: money.New(10), TaxRate: money.New(101),
			},
			field: "tax_rate",
		},
		{
			name: "negative tax rate",
			input: LineInput{
				Quantity: money.New(1), UnitPrice: money.New(10), TaxRate: money.MustParse("-5"),
			},
			field: "tax_rate",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ComputeLine(tt.input)
			require.Error(t, err)

			appErr, ok := apperror.AsAppError(err)
			require.True(t, ok)
			assert.Equal(t, apperror.CodeValidation, appErr.Code)
			assert.Equal(t, tt.field, appErr.Details["field"])
		})
	}
}

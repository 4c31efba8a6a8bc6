package documents

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"batibill/internal/core/money"
)

func mustLine(t *testing.T, qty, price, rate string) Line {
	t.Helper()
	line, err := ComputeLine(LineInput{
		ItemName:  "item",
		Quantity:  money.MustParse(qty),
		UnitPrice: money.MustParse(price),
		TaxRate:   money.MustParse(rate),
	})
	require.NoError(t, err)
	return line
}

func assertMoney(t *testing.T, want string, got money.Money, label string) {
	t.Helper()
	assert.True(t, got.Equal(money.MustParse(want)), "%s = %s, want %s", label, got, want)
}

func TestAggregate(t *testing.T) {
	// Two lines at 100 each plus one at 50, all taxed at 20%, no discount.
	lines := []Line{
		mustLine(t, "2", "100", "20"),
		mustLine(t, "1", "50", "20"),
	}

	totals, err := Aggregate(lines, money.Zero())
	require.NoError(t, err)

	assertMoney(t, "250", totals.Subtotal, "subtotal")
	assertMoney(t, "0", totals.DiscountAmount, "discount")
	assertMoney(t, "250", totals.TotalHT, "total_ht")
	assertMoney(t, "20", totals.TaxRate, "tax_rate")
	assertMoney(t, "50", totals.TaxAmount, "tax")
	assertMoney(t, "300", totals.TotalTTC, "total_ttc")
}

func TestAggregateWithDiscount(t *testing.T) {
	lines := []Line{
		mustLine(t, "10", "100", "20"),
	}

	totals, err := Aggregate(lines, money.New(10))
	require.NoError(t, err)

	assertMoney(t, "1000", totals.Subtotal, "subtotal")
	assertMoney(t, "100", totals.DiscountAmount, "discount")
	assertMoney(t, "900", totals.TotalHT, "total_ht")
	assertMoney(t, "180", totals.TaxAmount, "tax")
	assertMoney(t, "1080", totals.TotalTTC, "total_ttc")
}

func TestAggregateMixedRates(t *testing.T) {
	lines := []Line{
		mustLine(t, "1", "100", "20"), // tax 20
		mustLine(t, "1", "100", "10"), // tax 10
	}

	totals, err := Aggregate(lines, money.Zero())
	require.NoError(t, err)

	assertMoney(t, "200", totals.Subtotal, "subtotal")
	assertMoney(t, "30", totals.TaxAmount, "tax")
	assertMoney(t, "230", totals.TotalTTC, "total_ttc")
	assertMoney(t, "15", totals.TaxRate, "effective tax rate")
}

func TestAggregateIsIdempotent(t *testing.T) {
	lines := []Line{
		mustLine(t, "3", "33.33", "20"),
		mustLine(t, "1.5", "47.99", "14"),
	}

	first, err := Aggregate(lines, money.MustParse("7.5"))
	require.NoError(t, err)
	second, err := Aggregate(lines, money.MustParse("7.5"))
	require.NoError(t, err)

	assert.True(t, first.Subtotal.Equal(second.Subtotal))
	assert.True(t, first.DiscountAmount.Equal(second.DiscountAmount))
	assert.True(t, first.TaxAmount.Equal(second.TaxAmount))
	assert.True(t, first.TotalTTC.Equal(second.TotalTTC))
}

func TestAggregateEmptyLines(t *testing.T) {
	totals, err := Aggregate(nil, money.Zero())
	require.NoError(t, err)
	assert.True(t, totals.TotalTTC.IsZero())
}

func TestAggregateInvalidDiscount(t *testing.T) {
	_, err := Aggregate(nil, money.New(101))
	assert.Error(t, err)
	_, err = Aggregate(nil, money.MustParse("-1"))
	assert.Error(t, err)
}

func TestAggregateWithStatutoryRetention(t *testing.T) {
	// 1000 gross: 10% retention withheld, then 20% tax on the 900 base.
	lines := []Line{
		mustLine(t, "10", "100", "20"),
	}

	totals := AggregateWithStatutoryRetention(lines)

	assertMoney(t, "1000", totals.Subtotal, "subtotal")
	assertMoney(t, "100", totals.DiscountAmount, "retention")
	assertMoney(t, "900", totals.TotalHT, "total_ht")
	assertMoney(t, "180", totals.TaxAmount, "tax")
	assertMoney(t, "1080", totals.TotalTTC, "total_ttc")
}

func TestAmountInWords(t *testing.T) {
	tests := []struct {
		amount string
		lang   string
		want   string
	}{
		{"1080", "fr", "MILLE QUATRE-VINGTS DIRHAMS TTC"},
		{"250.50", "fr", "DEUX CENT CINQUANTE DIRHAMS ET 50 CTS TTC"},
		{"0", "fr", "ZÉRO DIRHAMS TTC"},
		{"21.05", "fr", "VINGT ET UN DIRHAMS ET 5 CTS TTC"},
		{"300", "en", "THREE HUNDRED DIRHAMS TTC"},
		{"115.25", "en", "ONE HUNDRED FIFTEEN DIRHAMS AND 25 CTS TTC"},
	}

	for _, tt := range tests {
		got := AmountInWords(money.MustParse(tt.amount), tt.lang)
		assert.Equal(t, tt.want, got, "amount %s lang %s", tt.amount, tt.lang)
	}
}

package documents

import (
	"strings"

	"batibill/internal/core/apperror"
	"batibill/internal/core/money"
	"batibill/pkg/numwords"
)

// Statutory retention terms applied to public-works invoices:
// a fixed 10% retenue de garantie withheld from the gross, then 20% tax
// on the discounted base.
var (
	statutoryRetentionPct = money.MustParse("10")
	statutoryTaxPct       = money.MustParse("20")
)

// Totals is the aggregated monetary summary of a document.
type Totals struct {
	Subtotal       money.Money
	DiscountPct    money.Money
	DiscountAmount money.Money
	TotalHT        money.Money
	TaxRate        money.Money
	TaxAmount      money.Money
	TotalTTC       money.Money
}

// Aggregate computes document totals from computed lines:
//
//	subtotal        = sum of line subtotals
//	discount_amount = round(subtotal x discount_pct / 100)
//	total_ht        = subtotal - discount_amount
//	tax_amount      = round(line tax scaled to the discounted base)
//	total_ttc       = total_ht + tax_amount
//
// The effective document tax rate is derived from the lines, so mixed-rate
// documents aggregate correctly; with no discount the document tax equals
// the sum of line taxes exactly. Aggregate is idempotent: recomputing from
// the same lines yields identical totals.
func Aggregate(lines []Line, discountPct money.Money) (Totals, error) {
	if !money.IsValidPercent(discountPct) {
		return Totals{}, apperror.NewValidation("discount must be between 0 and 100").
			WithDetail("discount_pct", discountPct.String())
	}

	subtotal := money.Zero()
	lineTax := money.Zero()
	for _, l := range lines {
		subtotal = subtotal.Add(l.Subtotal)
		lineTax = lineTax.Add(l.TaxAmount)
	}

	discount := money.Round(money.PercentOf(subtotal, discountPct))
	totalHT := subtotal.Sub(discount)

	tax := money.Zero()
	taxRate := money.Zero()
	if subtotal.IsPositive() {
		// Scale the line tax to the discounted base. Unrounded until the
		// final figure.
		tax = money.Round(lineTax.Mul(totalHT).Div(subtotal))
		taxRate = money.Round(lineTax.Div(subtotal).Mul(money.New(100)))
	}

	return Totals{
		Subtotal:       subtotal,
		DiscountPct:    discountPct,
		DiscountAmount: discount,
		TotalHT:        totalHT,
		TaxRate:        taxRate,
		TaxAmount:      tax,
		TotalTTC:       totalHT.Add(tax),
	}, nil
}

// AggregateWithStatutoryRetention computes totals under public-works
// terms: 10% retention withheld as discount, 20% tax on the discounted
// base, regardless of line-level rates.
func AggregateWithStatutoryRetention(lines []Line) Totals {
	subtotal := money.Zero()
	for _, l := range lines {
		subtotal = subtotal.Add(l.Subtotal)
	}

	discount := money.Round(money.PercentOf(subtotal, statutoryRetentionPct))
	totalHT := subtotal.Sub(discount)
	tax := money.Round(money.PercentOf(totalHT, statutoryTaxPct))

	return Totals{
		Subtotal:       subtotal,
		DiscountPct:    statutoryRetentionPct,
		DiscountAmount: discount,
		TotalHT:        totalHT,
		TaxRate:        statutoryTaxPct,
		TaxAmount:      tax,
		TotalTTC:       totalHT.Add(tax),
	}
}

// AmountInWords renders the tax-inclusive total as the uppercase legal
// line printed on documents, e.g.
//
//	"MILLE QUATRE-VINGTS DIRHAMS TTC"
//	"DEUX CENT CINQUANTE DIRHAMS ET 50 CTS TTC"
//
// Centimes stay numeric. Unsupported magnitudes fall back to the plain
// numeric amount rather than failing document creation.
func AmountInWords(totalTTC money.Money, lang string) string {
	rounded := money.Round(totalTTC)
	units := rounded.IntPart()
	cents := rounded.Sub(money.New(units)).Mul(money.New(100)).IntPart()

	words, err := numwords.Spell(lang, units)
	if err != nil {
		words = rounded.StringFixed(money.CurrencyScale)
	}

	currency, cts := "dirhams", "cts"
	conj := "et"
	if lang == "en" {
		conj = "and"
	}

	var b strings.Builder
	b.WriteString(words)
	b.WriteByte(' ')
	b.WriteString(currency)
	if cents > 0 {
		b.WriteByte(' ')
		b.WriteString(conj)
		b.WriteByte(' ')
		b.WriteString(money.New(cents).String())
		b.WriteByte(' ')
		b.WriteString(cts)
	}
	b.WriteString(" ttc")
	return strings.ToUpper(b.String())
}

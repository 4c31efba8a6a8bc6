package documents

import (
	"batibill/internal/core/apperror"
	"batibill/internal/core/id"
	"batibill/internal/core/money"
)

// LineInput carries the raw figures for one document line.
// Item fields are the snapshot values; the service fills them from the
// catalog when an item reference is given and the caller left them blank.
type LineInput struct {
	ItemID      *id.ID
	ItemCode    string
	ItemName    string
	Description string
	Unit        string

	Quantity  money.Money
	UnitPrice money.Money
	TaxRate   money.Money
}

// ComputeLine derives the monetary amounts for one line:
//
//	subtotal   = round(quantity x unit_price)
//	tax_amount = round(subtotal x tax_rate / 100)
//	total      = subtotal + tax_amount
//
// Each derived figure is rounded exactly once, so total is always the
// exact sum of the two stored components.
func ComputeLine(in LineInput) (Line, error) {
	if in.Quantity.IsNegative() {
		return Line{}, apperror.NewValidation("quantity must not be negative").
			WithDetail("field", "quantity").
			WithDetail("value", in.Quantity.String())
	}
	if in.UnitPrice.IsNegative() {
		return Line{}, apperror.NewValidation("unit price must not be negative").
			WithDetail("field", "unit_price").
			WithDetail("value", in.UnitPrice.String())
	}
	if !money.IsValidPercent(in.TaxRate) {
		return Line{}, apperror.NewValidation("tax rate must be between 0 and 100").
			WithDetail("field", "tax_rate").
			WithDetail("value", in.TaxRate.String())
	}

	subtotal := money.Round(in.Quantity.Mul(in.UnitPrice))
	tax := money.Round(money.PercentOf(subtotal, in.TaxRate))

	return Line{
		ItemID:      in.ItemID,
		ItemCode:    in.ItemCode,
		ItemName:    in.ItemName,
		Description: in.Description,
		Unit:        in.Unit,
		Quantity:    in.Quantity,
		UnitPrice:   in.UnitPrice,
		TaxRate:     in.TaxRate,
		Subtotal:    subtotal,
		TaxAmount:   tax,
		Total:       subtotal.Add(tax),
	}, nil
}

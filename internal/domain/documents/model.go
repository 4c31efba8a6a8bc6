// Package documents implements the financial document engine: invoices,
// quotes, and purchase orders with computed totals, sequential numbering,
// and lifecycle control.
package documents

import (
	"context"
	"time"

	"batibill/internal/core/apperror"
	"batibill/internal/core/entity"
	"batibill/internal/core/id"
	"batibill/internal/core/money"
)

// Document is a financial document header with computed totals.
// All monetary fields are stored at currency scale; arithmetic that
// produced them used full precision.
type Document struct {
	entity.BaseDocument

	Type Type `db:"doc_type" json:"type"`

	// Number is the human-facing sequential identifier, assigned once
	// at creation and never changed or reused.
	Number string `db:"number" json:"number"`

	Status Status `db:"status" json:"status"`

	ClientID id.ID  `db:"client_id" json:"clientId"`
	SiteID   *id.ID `db:"site_id" json:"siteId,omitempty"`

	// ClientName is snapshotted from the catalog at creation so that
	// renaming a client never rewrites issued documents.
	ClientName string `db:"client_name" json:"clientName"`

	IssuedDate time.Time  `db:"issued_date" json:"issuedDate"`
	DueDate    *time.Time `db:"due_date" json:"dueDate,omitempty"`

	// Totals, all derived. Subtotal is the sum of line subtotals,
	// TotalHT the discounted base, TotalTTC the tax-inclusive total.
	Subtotal       money.Money `db:"subtotal" json:"subtotal"`
	DiscountPct    money.Money `db:"discount_pct" json:"discountPct"`
	DiscountAmount money.Money `db:"discount_amount" json:"discountAmount"`
	TotalHT        money.Money `db:"total_ht" json:"totalHT"`
	TaxRate        money.Money `db:"tax_rate" json:"taxRate"`
	TaxAmount      money.Money `db:"tax_amount" json:"taxAmount"`
	TotalTTC       money.Money `db:"total_ttc" json:"totalTTC"`

	// AmountInWords is the legal total spelled out, uppercase, in the
	// tenant's document language.
	AmountInWords string `db:"amount_in_words" json:"amountInWords"`

	// RemainingBalance is maintained by the payment ledger for invoices.
	RemainingBalance money.Money `db:"remaining_balance" json:"remainingBalance"`

	Notes string `db:"notes" json:"notes,omitempty"`

	// Lines are loaded separately, not a database column.
	Lines []Line `db:"-" json:"lines,omitempty"`
}

// Line is a single priced position on a document. Item data is
// snapshotted: catalog edits after creation do not affect it.
type Line struct {
	ID         id.ID `db:"id" json:"id"`
	DocumentID id.ID `db:"document_id" json:"documentId"`

	// LineNo orders lines for display, 1-based.
	LineNo int `db:"line_no" json:"lineNo"`

	// ItemID references the catalog item, nil for free-form lines.
	ItemID *id.ID `db:"item_id" json:"itemId,omitempty"`

	ItemCode    string `db:"item_code" json:"itemCode,omitempty"`
	ItemName    string `db:"item_name" json:"itemName"`
	Description string `db:"description" json:"description,omitempty"`
	Unit        string `db:"unit" json:"unit,omitempty"`

	Quantity  money.Money `db:"quantity" json:"quantity"`
	UnitPrice money.Money `db:"unit_price" json:"unitPrice"`
	TaxRate   money.Money `db:"tax_rate" json:"taxRate"`

	// Derived amounts, rounded at currency scale.
	Subtotal  money.Money `db:"subtotal" json:"subtotal"`
	TaxAmount money.Money `db:"tax_amount" json:"taxAmount"`
	Total     money.Money `db:"total" json:"total"`
}

// Validate implements entity.Validatable.
func (d *Document) Validate(_ context.Context) error {
	if !d.Type.Valid() {
		return apperror.NewValidation("invalid document type").
			WithDetail("type", string(d.Type))
	}
	if id.IsNil(d.ClientID) {
		return apperror.NewValidation("client is required")
	}
	if len(d.Lines) == 0 {
		return apperror.NewValidation("document must have at least one line")
	}
	if !money.IsValidPercent(d.DiscountPct) {
		return apperror.NewValidation("discount must be between 0 and 100").
			WithDetail("discount_pct", d.DiscountPct.String())
	}
	for _, l := range d.Lines {
		if !l.Quantity.IsPositive() {
			return apperror.NewValidation("line quantity must be positive").
				WithDetail("line_no", l.LineNo)
		}
	}
	return nil
}

// IsInvoice reports whether the document participates in the payment ledger.
func (d *Document) IsInvoice() bool {
	return d.Type == TypeInvoice
}

// Package catalogitem defines the service/material catalog.
// Documents snapshot catalog data at creation time, so later edits here
// never rewrite history on issued documents.
package catalogitem

import (
	"context"

	"batibill/internal/core/apperror"
	"batibill/internal/core/entity"
	"batibill/internal/core/money"
)

// Item is a priced service or material offered by the tenant.
type Item struct {
	entity.BaseCatalog

	// Code is the short reference printed on document lines. Unique per tenant.
	Code        string `db:"code" json:"code"`
	Name        string `db:"name" json:"name"`
	Description string `db:"description" json:"description,omitempty"`

	// Unit is the billing unit (m², day, unit, ...).
	Unit string `db:"unit" json:"unit"`

	// UnitPrice is the default price, overridable per document line.
	UnitPrice money.Money `db:"unit_price" json:"unitPrice"`

	// TaxRate is the default tax percentage for this item.
	TaxRate money.Money `db:"tax_rate" json:"taxRate"`

	IsActive bool `db:"is_active" json:"isActive"`
}

// Validate implements entity.Validatable.
func (i *Item) Validate(_ context.Context) error {
	if i.Name == "" {
		return apperror.NewValidation("item name is required")
	}
	if i.Code == "" {
		return apperror.NewValidation("item code is required")
	}
	if i.UnitPrice.IsNegative() {
		return apperror.NewValidation("unit price must not be negative").
			WithDetail("unit_price", i.UnitPrice.String())
	}
	if !money.IsValidPercent(i.TaxRate) {
		return apperror.NewValidation("tax rate must be between 0 and 100").
			WithDetail("tax_rate", i.TaxRate.String())
	}
	return nil
}

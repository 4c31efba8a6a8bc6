// Package expenses tracks operating costs, optionally per site.
// Expenses feed the breakdown and profitability metrics.
package expenses

import (
	"context"
	"time"

	"batibill/internal/core/apperror"
	"batibill/internal/core/entity"
	"batibill/internal/core/id"
	"batibill/internal/core/money"
)

// Category of expense.
type Category string

const (
	CategoryMaterials Category = "MATERIALS"
	CategoryTransport Category = "TRANSPORT"
	CategoryEquipment Category = "EQUIPMENT"
	CategorySalary    Category = "SALARY"
	CategoryFuel      Category = "FUEL"
	CategoryRent      Category = "RENT"
	CategoryOther     Category = "OTHER"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryMaterials, CategoryTransport, CategoryEquipment,
		CategorySalary, CategoryFuel, CategoryRent, CategoryOther:
		return true
	}
	return false
}

// Expense is one operating cost entry.
type Expense struct {
	entity.BaseDocument

	SiteID *id.ID `db:"site_id" json:"siteId,omitempty"`

	Category    Category    `db:"category" json:"category"`
	Description string      `db:"description" json:"description"`
	Amount      money.Money `db:"amount" json:"amount"`

	ExpenseDate time.Time `db:"expense_date" json:"expenseDate"`

	Supplier string `db:"supplier" json:"supplier,omitempty"`
}

// Validate implements entity.Validatable.
func (e *Expense) Validate(_ context.Context) error {
	if !e.Category.Valid() {
		return apperror.NewValidation("invalid expense category").
			WithDetail("category", string(e.Category))
	}
	if !e.Amount.IsPositive() {
		return apperror.NewValidation("expense amount must be positive").
			WithDetail("amount", e.Amount.String())
	}
	if e.ExpenseDate.IsZero() {
		return apperror.NewValidation("expense date is required")
	}
	return nil
}

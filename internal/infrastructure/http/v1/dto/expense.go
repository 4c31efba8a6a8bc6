package dto

import (
	"time"

	"batibill/internal/core/apperror"
	"batibill/internal/core/id"
	"batibill/internal/core/money"
	"batibill/internal/domain/expenses"
)

// CreateExpenseRequest creates an expense entry.
type CreateExpenseRequest struct {
	SiteID      *string     `json:"siteId"`
	Category    string      `json:"category" binding:"required"`
	Description string      `json:"description"`
	Amount      money.Money `json:"amount" binding:"required"`
	ExpenseDate time.Time   `json:"expenseDate" binding:"required"`
	Supplier    string      `json:"supplier"`
}

// ToEntity converts the request into an expense.
func (r CreateExpenseRequest) ToEntity() (*expenses.Expense, error) {
	e := &expenses.Expense{
		Category:    expenses.Category(r.Category),
		Description: r.Description,
		Amount:      r.Amount,
		ExpenseDate: r.ExpenseDate,
		Supplier:    r.Supplier,
	}
	if r.SiteID != nil {
		siteID, err := id.Parse(*r.SiteID)
		if err != nil {
			return nil, apperror.NewValidation("invalid site id").
				WithDetail("site_id", *r.SiteID)
		}
		e.SiteID = &siteID
	}
	return e, nil
}

// UpdateExpenseRequest updates an expense. Nil fields are unchanged.
type UpdateExpenseRequest struct {
	Category    *string      `json:"category"`
	Description *string      `json:"description"`
	Amount      *money.Money `json:"amount"`
	ExpenseDate *time.Time   `json:"expenseDate"`
	Supplier    *string      `json:"supplier"`
	Version     int          `json:"version" binding:"required,min=1"`
}

// ApplyTo patches the existing expense in place.
func (r UpdateExpenseRequest) ApplyTo(e *expenses.Expense) {
	if r.Category != nil {
		e.Category = expenses.Category(*r.Category)
	}
	if r.Description != nil {
		e.Description = *r.Description
	}
	if r.Amount != nil {
		e.Amount = *r.Amount
	}
	if r.ExpenseDate != nil {
		e.ExpenseDate = *r.ExpenseDate
	}
	if r.Supplier != nil {
		e.Supplier = *r.Supplier
	}
	e.SetVersion(r.Version)
}

// ExpenseFilter narrows expense listings via query parameters.
type ExpenseFilter struct {
	SiteID   string     `form:"siteId"`
	Category string     `form:"category"`
	From     *time.Time `form:"from" time_format:"2006-01-02"`
	To       *time.Time `form:"to" time_format:"2006-01-02"`
	Limit    int        `form:"limit"`
	Offset   int        `form:"offset"`
}

// ToFilter converts query parameters into the repository filter.
func (f ExpenseFilter) ToFilter() (expenses.ListFilter, error) {
	out := expenses.ListFilter{
		Category: expenses.Category(f.Category),
		Limit:    f.Limit,
		Offset:   f.Offset,
	}
	if f.SiteID != "" {
		siteID, err := id.Parse(f.SiteID)
		if err != nil {
			return expenses.ListFilter{}, apperror.NewValidation("invalid site id").
				WithDetail("site_id", f.SiteID)
		}
		out.SiteID = siteID
	}
	if f.From != nil {
		out.From = *f.From
	}
	if f.To != nil {
		out.To = *f.To
	}
	return out, nil
}

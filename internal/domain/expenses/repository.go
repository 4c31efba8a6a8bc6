package expenses

import (
	"context"
	"time"

	"batibill/internal/core/id"
)

// ListFilter narrows expense listings. Zero values mean "no filter".
type ListFilter struct {
	SiteID   id.ID
	Category Category
	From     time.Time
	To       time.Time
	Limit    int
	Offset   int
}

// Repository defines storage operations for expenses.
type Repository interface {
	Create(ctx context.Context, e *Expense) error
	Update(ctx context.Context, e *Expense) error
	GetByID(ctx context.Context, tenantID, expenseID id.ID) (*Expense, error)
	List(ctx context.Context, tenantID id.ID, filter ListFilter) ([]Expense, error)
	SoftDelete(ctx context.Context, tenantID, expenseID id.ID) error
}

package expenses

import (
	"context"

	"batibill/internal/core/entity"
	"batibill/internal/core/id"
	"batibill/internal/core/tenant"
	"batibill/pkg/logger"
)

// Invalidator evicts a tenant's cached analytics after data changes.
type Invalidator interface {
	Invalidate(ctx context.Context, tenantID id.ID)
}

// Service implements expense use cases. Every write evicts the tenant's
// analytics cache: expense metrics read from these rows.
type Service struct {
	repo      Repository
	analytics Invalidator
}

func NewService(repo Repository, analytics Invalidator) *Service {
	return &Service{repo: repo, analytics: analytics}
}

// Create registers a new expense for the current tenant.
func (s *Service) Create(ctx context.Context, e *Expense) (*Expense, error) {
	t, err := tenant.RequireTenant(ctx)
	if err != nil {
		return nil, err
	}
	e.BaseDocument = entity.NewBaseDocument(t.ID)

	if err := e.Validate(ctx); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return nil, err
	}

	s.analytics.Invalidate(ctx, t.ID)
	logger.Info(ctx, "expense created",
		"expense_id", e.ID, "category", e.Category, "amount", e.Amount.String())
	return e, nil
}

// Update modifies an existing expense.
func (s *Service) Update(ctx context.Context, e *Expense) error {
	if err := e.Validate(ctx); err != nil {
		return err
	}
	e.Touch()
	if err := s.repo.Update(ctx, e); err != nil {
		return err
	}
	s.analytics.Invalidate(ctx, e.TenantID)
	return nil
}

// Get returns an expense by ID.
func (s *Service) Get(ctx context.Context, expenseID id.ID) (*Expense, error) {
	return s.repo.GetByID(ctx, tenant.GetTenantID(ctx), expenseID)
}

// List returns expenses matching the filter.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]Expense, error) {
	return s.repo.List(ctx, tenant.GetTenantID(ctx), filter)
}

// Delete soft-deletes an expense.
func (s *Service) Delete(ctx context.Context, expenseID id.ID) error {
	tenantID := tenant.GetTenantID(ctx)
	if err := s.repo.SoftDelete(ctx, tenantID, expenseID); err != nil {
		return err
	}
	s.analytics.Invalidate(ctx, tenantID)
	return nil
}

package site

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

// Service implements site use cases.
// Site changes feed the profitability and efficiency metrics, so writes
// evict the tenant's analytics cache.
type Service struct {
	repo      Repository
	analytics Invalidator
}

func NewService(repo Repository, analytics Invalidator) *Service {
	return &Service{repo: repo, analytics: analytics}
}

// Create registers a new site for the current tenant.
func (s *Service) Create(ctx context.Context, st *Site) (*Site, error) {
	t, err := tenant.RequireTenant(ctx)
	if err != nil {
		return nil, err
	}
	st.BaseCatalog = entity.NewBaseCatalog(t.ID)
	if st.Status == "" {
		st.Status = StatusActive
	}

	if err := st.Validate(ctx); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, st); err != nil {
		return nil, err
	}
	s.analytics.Invalidate(ctx, t.ID)
	logger.Info(ctx, "site created", "site_id", st.ID, "name", st.Name)
	return st, nil
}

// Update modifies an existing site.
func (s *Service) Update(ctx context.Context, st *Site) error {
	if err := st.Validate(ctx); err != nil {
		return err
	}
	if err := s.repo.Update(ctx, st); err != nil {
		return err
	}
	s.analytics.Invalidate(ctx, st.TenantID)
	return nil
}

// Get returns a site by ID.
func (s *Service) Get(ctx context.Context, siteID id.ID) (*Site, error) {
	return s.repo.GetByID(ctx, tenant.GetTenantID(ctx), siteID)
}

// List returns the tenant's sites, optionally filtered by status.
func (s *Service) List(ctx context.Context, status Status) ([]Site, error) {
	return s.repo.List(ctx, tenant.GetTenantID(ctx), status)
}

// Delete soft-deletes a site. Documents referencing it keep their snapshot.
func (s *Service) Delete(ctx context.Context, siteID id.ID) error {
	tenantID := tenant.GetTenantID(ctx)
	if err := s.repo.SoftDelete(ctx, tenantID, siteID); err != nil {
		return err
	}
	s.analytics.Invalidate(ctx, tenantID)
	return nil
}

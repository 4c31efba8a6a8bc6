package client

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

// Service implements client use cases.
// Client changes feed the concentration metrics, so writes evict
// the tenant's analytics cache.
type Service struct {
	repo      Repository
	analytics Invalidator
}

func NewService(repo Repository, analytics Invalidator) *Service {
	return &Service{repo: repo, analytics: analytics}
}

// Create registers a new client for the current tenant.
func (s *Service) Create(ctx context.Context, c *Client) (*Client, error) {
	t, err := tenant.RequireTenant(ctx)
	if err != nil {
		return nil, err
	}
	c.BaseCatalog = entity.NewBaseCatalog(t.ID)
	c.IsActive = true

	if err := c.Validate(ctx); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	s.analytics.Invalidate(ctx, t.ID)
	logger.Info(ctx, "client created", "client_id", c.ID, "name", c.Name)
	return c, nil
}

// Update modifies an existing client.
func (s *Service) Update(ctx context.Context, c *Client) error {
	if err := c.Validate(ctx); err != nil {
		return err
	}
	if err := s.repo.Update(ctx, c); err != nil {
		return err
	}
	s.analytics.Invalidate(ctx, c.TenantID)
	return nil
}

// Get returns a client by ID.
func (s *Service) Get(ctx context.Context, clientID id.ID) (*Client, error) {
	return s.repo.GetByID(ctx, tenant.GetTenantID(ctx), clientID)
}

// List returns the tenant's clients.
func (s *Service) List(ctx context.Context, activeOnly bool) ([]Client, error) {
	return s.repo.List(ctx, tenant.GetTenantID(ctx), activeOnly)
}

// Delete soft-deletes a client. Documents referencing it keep their snapshot.
func (s *Service) Delete(ctx context.Context, clientID id.ID) error {
	tenantID := tenant.GetTenantID(ctx)
	if err := s.repo.SoftDelete(ctx, tenantID, clientID); err != nil {
		return err
	}
	s.analytics.Invalidate(ctx, tenantID)
	return nil
}

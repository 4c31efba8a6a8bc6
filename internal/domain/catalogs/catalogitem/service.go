package catalogitem

import (
	"context"

	"batibill/internal/core/entity"
	"batibill/internal/core/id"
	"batibill/internal/core/tenant"
	"batibill/pkg/logger"
)

// Service implements catalog item use cases.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create registers a new catalog item for the current tenant.
func (s *Service) Create(ctx context.Context, item *Item) (*Item, error) {
	t, err := tenant.RequireTenant(ctx)
	if err != nil {
		return nil, err
	}
	item.BaseCatalog = entity.NewBaseCatalog(t.ID)
	item.IsActive = true

	if err := item.Validate(ctx); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	logger.Info(ctx, "catalog item created", "item_id", item.ID, "code", item.Code)
	return item, nil
}

// Update modifies an existing item. Price and tax changes only affect
// documents created afterwards.
func (s *Service) Update(ctx context.Context, item *Item) error {
	if err := item.Validate(ctx); err != nil {
		return err
	}
	return s.repo.Update(ctx, item)
}

// Get returns an item by ID.
func (s *Service) Get(ctx context.Context, itemID id.ID) (*Item, error) {
	return s.repo.GetByID(ctx, tenant.GetTenantID(ctx), itemID)
}

// List returns the tenant's catalog.
func (s *Service) List(ctx context.Context, activeOnly bool) ([]Item, error) {
	return s.repo.List(ctx, tenant.GetTenantID(ctx), activeOnly)
}

// Delete soft-deletes an item. Snapshots on existing documents are untouched.
func (s *Service) Delete(ctx context.Context, itemID id.ID) error {
	return s.repo.SoftDelete(ctx, tenant.GetTenantID(ctx), itemID)
}

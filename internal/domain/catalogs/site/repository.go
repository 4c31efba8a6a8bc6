package site

import (
	"context"

	"batibill/internal/core/id"
)

// Repository defines storage operations for sites.
type Repository interface {
	Create(ctx context.Context, s *Site) error
	Update(ctx context.Context, s *Site) error
	GetByID(ctx context.Context, tenantID, siteID id.ID) (*Site, error)
	List(ctx context.Context, tenantID id.ID, status Status) ([]Site, error)
	SoftDelete(ctx context.Context, tenantID, siteID id.ID) error
}

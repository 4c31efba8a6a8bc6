package catalogitem

import (
	"context"

	"batibill/internal/core/id"
)

// Repository defines storage operations for catalog items.
type Repository interface {
	Create(ctx context.Context, item *Item) error
	Update(ctx context.Context, item *Item) error
	GetByID(ctx context.Context, tenantID, itemID id.ID) (*Item, error)
	GetByCode(ctx context.Context, tenantID id.ID, code string) (*Item, error)
	List(ctx context.Context, tenantID id.ID, activeOnly bool) ([]Item, error)
	SoftDelete(ctx context.Context, tenantID, itemID id.ID) error
}

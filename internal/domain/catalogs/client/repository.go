package client

import (
	"context"

	"batibill/internal/core/id"
)

// Repository defines storage operations for clients.
type Repository interface {
	Create(ctx context.Context, c *Client) error
	Update(ctx context.Context, c *Client) error
	GetByID(ctx context.Context, tenantID, clientID id.ID) (*Client, error)
	List(ctx context.Context, tenantID id.ID, activeOnly bool) ([]Client, error)
	SoftDelete(ctx context.Context, tenantID, clientID id.ID) error
}

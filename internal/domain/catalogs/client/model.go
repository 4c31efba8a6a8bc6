// Package client defines the customer catalog.
package client

import (
	"context"
	"net/mail"

	"batibill/internal/core/apperror"
	"batibill/internal/core/entity"
)

// Client is a customer a tenant issues documents to.
type Client struct {
	entity.BaseCatalog

	Name string `db:"name" json:"name"`

	// TaxID is the client's fiscal identifier printed on invoices.
	TaxID string `db:"tax_id" json:"taxId,omitempty"`

	Address       string `db:"address" json:"address,omitempty"`
	City          string `db:"city" json:"city,omitempty"`
	Phone         string `db:"phone" json:"phone,omitempty"`
	Email         string `db:"email" json:"email,omitempty"`
	ContactPerson string `db:"contact_person" json:"contactPerson,omitempty"`

	IsActive bool `db:"is_active" json:"isActive"`
}

// Validate implements entity.Validatable.
func (c *Client) Validate(_ context.Context) error {
	if c.Name == "" {
		return apperror.NewValidation("client name is required")
	}
	if c.Email != "" {
		if _, err := mail.ParseAddress(c.Email); err != nil {
			return apperror.NewValidation("invalid email address").
				WithDetail("email", c.Email)
		}
	}
	return nil
}

package dto

import (
	"time"

	"batibill/internal/core/apperror"
	"batibill/internal/core/id"
	"batibill/internal/core/money"
	"batibill/internal/domain/catalogs/catalogitem"
	"batibill/internal/domain/catalogs/client"
	"batibill/internal/domain/catalogs/site"
)

// --- Catalog items ---

// CreateItemRequest creates a catalog item.
type CreateItemRequest struct {
	Code        string      `json:"code" binding:"required"`
	Name        string      `json:"name" binding:"required"`
	Description string      `json:"description"`
	Unit        string      `json:"unit"`
	UnitPrice   money.Money `json:"unitPrice"`
	TaxRate     money.Money `json:"taxRate"`
}

// ToEntity converts the request into a catalog item.
func (r CreateItemRequest) ToEntity() *catalogitem.Item {
	return &catalogitem.Item{
		Code:        r.Code,
		Name:        r.Name,
		Description: r.Description,
		Unit:        r.Unit,
		UnitPrice:   r.UnitPrice,
		TaxRate:     r.TaxRate,
	}
}

// UpdateItemRequest updates a catalog item. Nil fields are unchanged.
type UpdateItemRequest struct {
	Code        *string      `json:"code"`
	Name        *string      `json:"name"`
	Description *string      `json:"description"`
	Unit        *string      `json:"unit"`
	UnitPrice   *money.Money `json:"unitPrice"`
	TaxRate     *money.Money `json:"taxRate"`
	IsActive    *bool        `json:"isActive"`
	Version     int          `json:"version" binding:"required,min=1"`
}

// ApplyTo patches the existing item in place.
func (r UpdateItemRequest) ApplyTo(item *catalogitem.Item) {
	if r.Code != nil {
		item.Code = *r.Code
	}
	if r.Name != nil {
		item.Name = *r.Name
	}
	if r.Description != nil {
		item.Description = *r.Description
	}
	if r.Unit != nil {
		item.Unit = *r.Unit
	}
	if r.UnitPrice != nil {
		item.UnitPrice = *r.UnitPrice
	}
	if r.TaxRate != nil {
		item.TaxRate = *r.TaxRate
	}
	if r.IsActive != nil {
		item.IsActive = *r.IsActive
	}
	item.SetVersion(r.Version)
}

// --- Clients ---

// CreateClientRequest creates a client.
type CreateClientRequest struct {
	Name          string `json:"name" binding:"required"`
	TaxID         string `json:"taxId"`
	Address       string `json:"address"`
	City          string `json:"city"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	ContactPerson string `json:"contactPerson"`
}

// ToEntity converts the request into a client.
func (r CreateClientRequest) ToEntity() *client.Client {
	return &client.Client{
		Name:          r.Name,
		TaxID:         r.TaxID,
		Address:       r.Address,
		City:          r.City,
		Phone:         r.Phone,
		Email:         r.Email,
		ContactPerson: r.ContactPerson,
	}
}

// UpdateClientRequest updates a client. Nil fields are unchanged.
type UpdateClientRequest struct {
	Name          *string `json:"name"`
	TaxID         *string `json:"taxId"`
	Address       *string `json:"address"`
	City          *string `json:"city"`
	Phone         *string `json:"phone"`
	Email         *string `json:"email"`
	ContactPerson *string `json:"contactPerson"`
	IsActive      *bool   `json:"isActive"`
	Version       int     `json:"version" binding:"required,min=1"`
}

// ApplyTo patches the existing client in place.
func (r UpdateClientRequest) ApplyTo(c *client.Client) {
	if r.Name != nil {
		c.Name = *r.Name
	}
	if r.TaxID != nil {
		c.TaxID = *r.TaxID
	}
	if r.Address != nil {
		c.Address = *r.Address
	}
	if r.City != nil {
		c.City = *r.City
	}
	if r.Phone != nil {
		c.Phone = *r.Phone
	}
	if r.Email != nil {
		c.Email = *r.Email
	}
	if r.ContactPerson != nil {
		c.ContactPerson = *r.ContactPerson
	}
	if r.IsActive != nil {
		c.IsActive = *r.IsActive
	}
	c.SetVersion(r.Version)
}

// --- Sites ---

// CreateSiteRequest creates a construction site.
type CreateSiteRequest struct {
	Name      string      `json:"name" binding:"required"`
	ClientID  *string     `json:"clientId"`
	Address   string      `json:"address"`
	City      string      `json:"city"`
	StartDate *time.Time  `json:"startDate"`
	EndDate   *time.Time  `json:"endDate"`
	Budget    money.Money `json:"budget"`
}

// ToEntity converts the request into a site.
func (r CreateSiteRequest) ToEntity() (*site.Site, error) {
	s := &site.Site{
		Name:      r.Name,
		Address:   r.Address,
		City:      r.City,
		StartDate: r.StartDate,
		EndDate:   r.EndDate,
		Budget:    r.Budget,
	}
	if r.ClientID != nil {
		clientID, err := id.Parse(*r.ClientID)
		if err != nil {
			return nil, apperror.NewValidation("invalid client id").
				WithDetail("client_id", *r.ClientID)
		}
		s.ClientID = &clientID
	}
	return s, nil
}

// UpdateSiteRequest updates a site. Nil fields are unchanged.
type UpdateSiteRequest struct {
	Name      *string      `json:"name"`
	Address   *string      `json:"address"`
	City      *string      `json:"city"`
	Status    *string      `json:"status"`
	StartDate *time.Time   `json:"startDate"`
	EndDate   *time.Time   `json:"endDate"`
	Budget    *money.Money `json:"budget"`
	Version   int          `json:"version" binding:"required,min=1"`
}

// ApplyTo patches the existing site in place.
func (r UpdateSiteRequest) ApplyTo(s *site.Site) {
	if r.Name != nil {
		s.Name = *r.Name
	}
	if r.Address != nil {
		s.Address = *r.Address
	}
	if r.City != nil {
		s.City = *r.City
	}
	if r.Status != nil {
		s.Status = site.Status(*r.Status)
	}
	if r.StartDate != nil {
		s.StartDate = r.StartDate
	}
	if r.EndDate != nil {
		s.EndDate = r.EndDate
	}
	if r.Budget != nil {
		s.Budget = *r.Budget
	}
	s.SetVersion(r.Version)
}

// Package site defines construction sites (chantiers).
// Sites group documents, expenses, and attendance for profitability reporting.
package site

import (
	"context"
	"time"

	"batibill/internal/core/apperror"
	"batibill/internal/core/entity"
	"batibill/internal/core/id"
	"batibill/internal/core/money"
)

// Status of a construction site.
type Status string

const (
	StatusActive    Status = "ACTIVE"
	StatusCompleted Status = "COMPLETED"
	StatusSuspended Status = "SUSPENDED"
)

func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusCompleted, StatusSuspended:
		return true
	}
	return false
}

// Site is a construction site a tenant works on.
type Site struct {
	entity.BaseCatalog

	Name string `db:"name" json:"name"`

	// ClientID links the site to its customer, optional for internal works.
	ClientID *id.ID `db:"client_id" json:"clientId,omitempty"`

	Address string `db:"address" json:"address,omitempty"`
	City    string `db:"city" json:"city,omitempty"`

	Status Status `db:"status" json:"status"`

	StartDate *time.Time `db:"start_date" json:"startDate,omitempty"`
	EndDate   *time.Time `db:"end_date" json:"endDate,omitempty"`

	// Budget is the planned spend, zero when not tracked.
	Budget money.Money `db:"budget" json:"budget"`
}

// Validate implements entity.Validatable.
func (s *Site) Validate(_ context.Context) error {
	if s.Name == "" {
		return apperror.NewValidation("site name is required")
	}
	if !s.Status.Valid() {
		return apperror.NewValidation("invalid site status").
			WithDetail("status", string(s.Status))
	}
	if s.Budget.IsNegative() {
		return apperror.NewValidation("budget must not be negative")
	}
	if s.StartDate != nil && s.EndDate != nil && s.EndDate.Before(*s.StartDate) {
		return apperror.NewValidation("end date must not precede start date")
	}
	return nil
}

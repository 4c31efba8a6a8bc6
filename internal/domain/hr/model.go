// Package hr covers site workforce: employees and daily attendance.
// Attendance feeds the labor intensity and site profitability metrics.
package hr

import (
	"context"
	"time"

	"batibill/internal/core/apperror"
	"batibill/internal/core/entity"
	"batibill/internal/core/id"
	"batibill/internal/core/money"
)

// Employee is a worker on the tenant's payroll.
type Employee struct {
	entity.BaseCatalog

	FirstName string `db:"first_name" json:"firstName"`
	LastName  string `db:"last_name" json:"lastName"`

	// NationalID is the worker's identity card number.
	NationalID string `db:"national_id" json:"nationalId,omitempty"`

	Role string `db:"role" json:"role,omitempty"`

	// DailyRate is the cost of one worked day, used for labor costing.
	DailyRate money.Money `db:"daily_rate" json:"dailyRate"`

	Phone    string `db:"phone" json:"phone,omitempty"`
	IsActive bool   `db:"is_active" json:"isActive"`
}

// Validate implements entity.Validatable.
func (e *Employee) Validate(_ context.Context) error {
	if e.FirstName == "" || e.LastName == "" {
		return apperror.NewValidation("employee name is required")
	}
	if e.DailyRate.IsNegative() {
		return apperror.NewValidation("daily rate must not be negative")
	}
	return nil
}

// FullName returns the display name.
func (e *Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

// AttendanceStatus for one employee-day.
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "PRESENT"
	AttendanceAbsent  AttendanceStatus = "ABSENT"
	AttendanceHalfDay AttendanceStatus = "HALF_DAY"
)

func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendancePresent, AttendanceAbsent, AttendanceHalfDay:
		return true
	}
	return false
}

// DayValue returns the worked-day fraction for labor costing.
func (s AttendanceStatus) DayValue() money.Money {
	switch s {
	case AttendancePresent:
		return money.New(1)
	case AttendanceHalfDay:
		return money.MustParse("0.5")
	default:
		return money.Zero()
	}
}

// Attendance records one employee's presence on one date,
// optionally tied to a site.
type Attendance struct {
	entity.BaseEntity

	EmployeeID id.ID  `db:"employee_id" json:"employeeId"`
	SiteID     *id.ID `db:"site_id" json:"siteId,omitempty"`

	Date   time.Time        `db:"work_date" json:"date"`
	Status AttendanceStatus `db:"status" json:"status"`

	Notes string `db:"notes" json:"notes,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// Validate implements entity.Validatable.
func (a *Attendance) Validate(_ context.Context) error {
	if id.IsNil(a.EmployeeID) {
		return apperror.NewValidation("employee is required")
	}
	if a.Date.IsZero() {
		return apperror.NewValidation("attendance date is required")
	}
	if !a.Status.Valid() {
		return apperror.NewValidation("invalid attendance status").
			WithDetail("status", string(a.Status))
	}
	return nil
}

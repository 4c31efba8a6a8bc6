package dto

import (
	"time"

	"batibill/internal/core/apperror"
	"batibill/internal/core/id"
	"batibill/internal/core/money"
	"batibill/internal/domain/hr"
)

// CreateEmployeeRequest creates an employee.
type CreateEmployeeRequest struct {
	FirstName  string      `json:"firstName" binding:"required"`
	LastName   string      `json:"lastName" binding:"required"`
	NationalID string      `json:"nationalId"`
	Role       string      `json:"role"`
	DailyRate  money.Money `json:"dailyRate"`
	Phone      string      `json:"phone"`
}

// ToEntity converts the request into an employee.
func (r CreateEmployeeRequest) ToEntity() *hr.Employee {
	return &hr.Employee{
		FirstName:  r.FirstName,
		LastName:   r.LastName,
		NationalID: r.NationalID,
		Role:       r.Role,
		DailyRate:  r.DailyRate,
		Phone:      r.Phone,
	}
}

// UpdateEmployeeRequest updates an employee. Nil fields are unchanged.
type UpdateEmployeeRequest struct {
	FirstName  *string      `json:"firstName"`
	LastName   *string      `json:"lastName"`
	NationalID *string      `json:"nationalId"`
	Role       *string      `json:"role"`
	DailyRate  *money.Money `json:"dailyRate"`
	Phone      *string      `json:"phone"`
	IsActive   *bool        `json:"isActive"`
	Version    int          `json:"version" binding:"required,min=1"`
}

// ApplyTo patches the existing employee in place.
func (r UpdateEmployeeRequest) ApplyTo(e *hr.Employee) {
	if r.FirstName != nil {
		e.FirstName = *r.FirstName
	}
	if r.LastName != nil {
		e.LastName = *r.LastName
	}
	if r.NationalID != nil {
		e.NationalID = *r.NationalID
	}
	if r.Role != nil {
		e.Role = *r.Role
	}
	if r.DailyRate != nil {
		e.DailyRate = *r.DailyRate
	}
	if r.Phone != nil {
		e.Phone = *r.Phone
	}
	if r.IsActive != nil {
		e.IsActive = *r.IsActive
	}
	e.SetVersion(r.Version)
}

// RecordAttendanceRequest records one employee-day entry.
// Re-sending the same (employee, date) replaces the previous entry.
type RecordAttendanceRequest struct {
	EmployeeID string    `json:"employeeId" binding:"required"`
	SiteID     *string   `json:"siteId"`
	Date       time.Time `json:"date" binding:"required"`
	Status     string    `json:"status" binding:"required"`
	Notes      string    `json:"notes"`
}

// ToEntity converts the request into an attendance entry.
func (r RecordAttendanceRequest) ToEntity() (*hr.Attendance, error) {
	employeeID, err := id.Parse(r.EmployeeID)
	if err != nil {
		return nil, apperror.NewValidation("invalid employee id").
			WithDetail("employee_id", r.EmployeeID)
	}

	a := &hr.Attendance{
		EmployeeID: employeeID,
		Date:       r.Date,
		Status:     hr.AttendanceStatus(r.Status),
		Notes:      r.Notes,
	}
	if r.SiteID != nil {
		siteID, err := id.Parse(*r.SiteID)
		if err != nil {
			return nil, apperror.NewValidation("invalid site id").
				WithDetail("site_id", *r.SiteID)
		}
		a.SiteID = &siteID
	}
	return a, nil
}

// AttendanceFilter narrows attendance listings via query parameters.
type AttendanceFilter struct {
	From *time.Time `form:"from" time_format:"2006-01-02"`
	To   *time.Time `form:"to" time_format:"2006-01-02"`
}

package hr

import (
	"context"
	"time"

	"batibill/internal/core/id"
)

// EmployeeRepository defines storage operations for employees.
type EmployeeRepository interface {
	Create(ctx context.Context, e *Employee) error
	Update(ctx context.Context, e *Employee) error
	GetByID(ctx context.Context, tenantID, employeeID id.ID) (*Employee, error)
	List(ctx context.Context, tenantID id.ID, activeOnly bool) ([]Employee, error)
	SoftDelete(ctx context.Context, tenantID, employeeID id.ID) error
}

// AttendanceRepository defines storage operations for attendance records.
type AttendanceRepository interface {
	// Upsert records or replaces the (employee, date) entry. One row
	// per employee per day.
	Upsert(ctx context.Context, a *Attendance) error
	ListByPeriod(ctx context.Context, tenantID id.ID, from, to time.Time) ([]Attendance, error)
	ListByEmployee(ctx context.Context, tenantID, employeeID id.ID, from, to time.Time) ([]Attendance, error)
	Delete(ctx context.Context, tenantID, attendanceID id.ID) error
}

package hr

import (
	"context"
	"time"

	"batibill/internal/core/entity"
	"batibill/internal/core/id"
	"batibill/internal/core/tenant"
	"batibill/pkg/logger"
)

// Invalidator evicts a tenant's cached analytics after data changes.
type Invalidator interface {
	Invalidate(ctx context.Context, tenantID id.ID)
}

// Service implements workforce use cases. Attendance writes evict the
// analytics cache: labor metrics read from these rows.
type Service struct {
	employees  EmployeeRepository
	attendance AttendanceRepository
	analytics  Invalidator
}

func NewService(employees EmployeeRepository, attendance AttendanceRepository, analytics Invalidator) *Service {
	return &Service{employees: employees, attendance: attendance, analytics: analytics}
}

// CreateEmployee registers a new employee for the current tenant.
func (s *Service) CreateEmployee(ctx context.Context, e *Employee) (*Employee, error) {
	t, err := tenant.RequireTenant(ctx)
	if err != nil {
		return nil, err
	}
	e.BaseCatalog = entity.NewBaseCatalog(t.ID)
	e.IsActive = true

	if err := e.Validate(ctx); err != nil {
		return nil, err
	}
	if err := s.employees.Create(ctx, e); err != nil {
		return nil, err
	}
	logger.Info(ctx, "employee created", "employee_id", e.ID)
	return e, nil
}

// UpdateEmployee modifies an existing employee.
func (s *Service) UpdateEmployee(ctx context.Context, e *Employee) error {
	if err := e.Validate(ctx); err != nil {
		return err
	}
	return s.employees.Update(ctx, e)
}

// GetEmployee returns an employee by ID.
func (s *Service) GetEmployee(ctx context.Context, employeeID id.ID) (*Employee, error) {
	return s.employees.GetByID(ctx, tenant.GetTenantID(ctx), employeeID)
}

// ListEmployees returns the tenant's employees.
func (s *Service) ListEmployees(ctx context.Context, activeOnly bool) ([]Employee, error) {
	return s.employees.List(ctx, tenant.GetTenantID(ctx), activeOnly)
}

// DeleteEmployee soft-deletes an employee, keeping attendance history.
func (s *Service) DeleteEmployee(ctx context.Context, employeeID id.ID) error {
	return s.employees.SoftDelete(ctx, tenant.GetTenantID(ctx), employeeID)
}

// RecordAttendance registers or replaces one employee-day entry.
func (s *Service) RecordAttendance(ctx context.Context, a *Attendance) (*Attendance, error) {
	t, err := tenant.RequireTenant(ctx)
	if err != nil {
		return nil, err
	}
	if id.IsNil(a.ID) {
		a.BaseEntity = entity.NewBaseEntity(t.ID)
		a.CreatedAt = time.Now().UTC()
	}
	a.Date = a.Date.Truncate(24 * time.Hour)

	if err := a.Validate(ctx); err != nil {
		return nil, err
	}
	if _, err := s.employees.GetByID(ctx, t.ID, a.EmployeeID); err != nil {
		return nil, err
	}
	if err := s.attendance.Upsert(ctx, a); err != nil {
		return nil, err
	}

	s.analytics.Invalidate(ctx, t.ID)
	return a, nil
}

// ListAttendance returns attendance entries in a period.
func (s *Service) ListAttendance(ctx context.Context, from, to time.Time) ([]Attendance, error) {
	return s.attendance.ListByPeriod(ctx, tenant.GetTenantID(ctx), from, to)
}

// DeleteAttendance removes one attendance entry.
func (s *Service) DeleteAttendance(ctx context.Context, attendanceID id.ID) error {
	tenantID := tenant.GetTenantID(ctx)
	if err := s.attendance.Delete(ctx, tenantID, attendanceID); err != nil {
		return err
	}
	s.analytics.Invalidate(ctx, tenantID)
	return nil
}

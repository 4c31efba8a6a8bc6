package postgres

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"batibill/internal/core/apperror"
	"batibill/internal/core/id"
	"batibill/internal/domain/hr"
)

const attendanceTable = "hr_attendances"

var (
	_ hr.EmployeeRepository   = (*EmployeeRepo)(nil)
	_ hr.AttendanceRepository = (*AttendanceRepo)(nil)
)

// EmployeeRepo persists employees in hr_employees.
type EmployeeRepo struct {
	catalogBase[hr.Employee]
}

func NewEmployeeRepo(source QuerierSource) *EmployeeRepo {
	return &EmployeeRepo{newCatalogBase[hr.Employee](source, "hr_employees", "employee")}
}

func (r *EmployeeRepo) Create(ctx context.Context, e *hr.Employee) error {
	return r.create(ctx, e)
}

func (r *EmployeeRepo) Update(ctx context.Context, e *hr.Employee) error {
	return r.update(ctx, e, e.ID, e.TenantID, e.Version)
}

func (r *EmployeeRepo) GetByID(ctx context.Context, tenantID, employeeID id.ID) (*hr.Employee, error) {
	return r.getByID(ctx, tenantID, employeeID)
}

func (r *EmployeeRepo) List(ctx context.Context, tenantID id.ID, activeOnly bool) ([]hr.Employee, error) {
	var extra sq.Sqlizer
	if activeOnly {
		extra = sq.Eq{"is_active": true}
	}
	return r.list(ctx, tenantID, extra, "last_name, first_name")
}

func (r *EmployeeRepo) SoftDelete(ctx context.Context, tenantID, employeeID id.ID) error {
	return r.softDelete(ctx, tenantID, employeeID)
}

// AttendanceRepo persists attendance in hr_attendances, one row per
// (tenant, employee, date) enforced by a unique index.
type AttendanceRepo struct {
	source QuerierSource
	cols   []string
}

func NewAttendanceRepo(source QuerierSource) *AttendanceRepo {
	return &AttendanceRepo{
		source: source,
		cols:   ExtractDBColumns[hr.Attendance](),
	}
}

// Upsert inserts or replaces the employee-day entry.
func (r *AttendanceRepo) Upsert(ctx context.Context, a *hr.Attendance) error {
	m := StructToMap(a)
	cols := make([]string, 0, len(r.cols))
	vals := make([]any, 0, len(r.cols))
	for _, col := range r.cols {
		cols = append(cols, col)
		vals = append(vals, m[col])
	}

	query, args, err := psql.Insert(attendanceTable).
		Columns(cols...).
		Values(vals...).
		Suffix(`ON CONFLICT (tenant_id, employee_id, work_date)
			DO UPDATE SET status = EXCLUDED.status,
			              site_id = EXCLUDED.site_id,
			              notes = EXCLUDED.notes`).
		ToSql()
	if err != nil {
		return apperror.NewInternal(err)
	}
	if _, err := r.source.GetQuerier(ctx).Exec(ctx, query, args...); err != nil {
		return apperror.NewInternal(err)
	}
	return nil
}

func (r *AttendanceRepo) ListByPeriod(ctx context.Context, tenantID id.ID, from, to time.Time) ([]hr.Attendance, error) {
	return r.listWhere(ctx, sq.Eq{"tenant_id": tenantID}, from, to)
}

func (r *AttendanceRepo) ListByEmployee(ctx context.Context, tenantID, employeeID id.ID, from, to time.Time) ([]hr.Attendance, error) {
	return r.listWhere(ctx, sq.Eq{"tenant_id": tenantID, "employee_id": employeeID}, from, to)
}

func (r *AttendanceRepo) listWhere(ctx context.Context, where sq.Eq, from, to time.Time) ([]hr.Attendance, error) {
	q := psql.Select(r.cols...).
		From(attendanceTable).
		Where(where).
		OrderBy("work_date")
	if !from.IsZero() {
		q = q.Where(sq.GtOrEq{"work_date": from})
	}
	if !to.IsZero() {
		q = q.Where(sq.LtOrEq{"work_date": to})
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, apperror.NewInternal(err)
	}

	var out []hr.Attendance
	if err := pgxscan.Select(ctx, r.source.GetQuerier(ctx), &out, query, args...); err != nil {
		return nil, apperror.NewInternal(err)
	}
	return out, nil
}

func (r *AttendanceRepo) Delete(ctx context.Context, tenantID, attendanceID id.ID) error {
	query, args, err := psql.Delete(attendanceTable).
		Where(sq.Eq{"id": attendanceID, "tenant_id": tenantID}).
		ToSql()
	if err != nil {
		return apperror.NewInternal(err)
	}

	tag, err := r.source.GetQuerier(ctx).Exec(ctx, query, args...)
	if err != nil {
		return apperror.NewInternal(err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("attendance", attendanceID)
	}
	return nil
}

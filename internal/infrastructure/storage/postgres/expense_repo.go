package postgres

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"batibill/internal/core/apperror"
	"batibill/internal/core/id"
	"batibill/internal/domain/expenses"
)

const expensesTable = "exp_expenses"

var _ expenses.Repository = (*ExpenseRepo)(nil)

// ExpenseRepo persists expenses in exp_expenses.
type ExpenseRepo struct {
	source QuerierSource
	cols   []string
}

func NewExpenseRepo(source QuerierSource) *ExpenseRepo {
	return &ExpenseRepo{
		source: source,
		cols:   ExtractDBColumns[expenses.Expense](),
	}
}

func (r *ExpenseRepo) Create(ctx context.Context, e *expenses.Expense) error {
	query, args, err := psql.Insert(expensesTable).SetMap(StructToMap(e)).ToSql()
	if err != nil {
		return apperror.NewInternal(err)
	}
	if _, err := r.source.GetQuerier(ctx).Exec(ctx, query, args...); err != nil {
		return apperror.NewInternal(err)
	}
	return nil
}

func (r *ExpenseRepo) Update(ctx context.Context, e *expenses.Expense) error {
	setMap := StructToMap(e)
	delete(setMap, "id")
	delete(setMap, "tenant_id")
	delete(setMap, "created_at")
	delete(setMap, "created_by")

	query, args, err := psql.Update(expensesTable).
		SetMap(setMap).
		Where(sq.Eq{"id": e.ID, "tenant_id": e.TenantID, "version": e.Version - 1}).
		ToSql()
	if err != nil {
		return apperror.NewInternal(err)
	}

	tag, err := r.source.GetQuerier(ctx).Exec(ctx, query, args...)
	if err != nil {
		return apperror.NewInternal(err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewConcurrentModification("expense", e.ID)
	}
	return nil
}

func (r *ExpenseRepo) GetByID(ctx context.Context, tenantID, expenseID id.ID) (*expenses.Expense, error) {
	query, args, err := psql.Select(r.cols...).
		From(expensesTable).
		Where(sq.Eq{"id": expenseID, "tenant_id": tenantID, "deletion_mark": false}).
		ToSql()
	if err != nil {
		return nil, apperror.NewInternal(err)
	}

	var e expenses.Expense
	if err := pgxscan.Get(ctx, r.source.GetQuerier(ctx), &e, query, args...); err != nil {
		return nil, mapScanError(err, "expense", expenseID)
	}
	return &e, nil
}

func (r *ExpenseRepo) List(ctx context.Context, tenantID id.ID, filter expenses.ListFilter) ([]expenses.Expense, error) {
	q := psql.Select(r.cols...).
		From(expensesTable).
		Where(sq.Eq{"tenant_id": tenantID, "deletion_mark": false}).
		OrderBy("expense_date DESC")

	if !id.IsNil(filter.SiteID) {
		q = q.Where(sq.Eq{"site_id": filter.SiteID})
	}
	if filter.Category != "" {
		q = q.Where(sq.Eq{"category": filter.Category})
	}
	if !filter.From.IsZero() {
		q = q.Where(sq.GtOrEq{"expense_date": filter.From})
	}
	if !filter.To.IsZero() {
		q = q.Where(sq.Lt{"expense_date": filter.To})
	}
	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, apperror.NewInternal(err)
	}

	var out []expenses.Expense
	if err := pgxscan.Select(ctx, r.source.GetQuerier(ctx), &out, query, args...); err != nil {
		return nil, apperror.NewInternal(err)
	}
	return out, nil
}

func (r *ExpenseRepo) SoftDelete(ctx context.Context, tenantID, expenseID id.ID) error {
	query, args, err := psql.Update(expensesTable).
		Set("deletion_mark", true).
		Where(sq.Eq{"id": expenseID, "tenant_id": tenantID}).
		ToSql()
	if err != nil {
		return apperror.NewInternal(err)
	}

	tag, err := r.source.GetQuerier(ctx).Exec(ctx, query, args...)
	if err != nil {
		return apperror.NewInternal(err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("expense", expenseID)
	}
	return nil
}

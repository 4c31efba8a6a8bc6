package postgres

import (
	"context"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"

	"batibill/internal/core/apperror"
	"batibill/internal/core/id"
	"batibill/internal/core/money"
	"batibill/internal/domain/analytics"
)

var _ analytics.Repository = (*AnalyticsRepo)(nil)

// AnalyticsRepo computes metrics with aggregate queries over the ledger
// tables. Queries here are read-only and tenant-filtered; the cache in
// front of them absorbs the cost of full-table aggregation.
//
// "Issued" below means a non-deleted invoice that has left DRAFT.
type AnalyticsRepo struct {
	source QuerierSource
}

func NewAnalyticsRepo(source QuerierSource) *AnalyticsRepo {
	return &AnalyticsRepo{source: source}
}

func (r *AnalyticsRepo) KPISummary(ctx context.Context, tenantID id.ID) (*analytics.KPISummary, error) {
	const query = `
		SELECT
			COALESCE(inv.revenue, 0)                          AS revenue,
			COALESCE(inv.revenue, 0) - COALESCE(inv.outstanding, 0) AS collected,
			COALESCE(inv.outstanding, 0)                      AS outstanding,
			COALESCE(exp.total, 0)                            AS expenses,
			COALESCE(inv.revenue, 0) - COALESCE(exp.total, 0) AS net_profit,
			COALESCE(inv.cnt, 0)                              AS invoice_count
		FROM (
			SELECT SUM(total_ttc) AS revenue,
			       SUM(remaining_balance) AS outstanding,
			       COUNT(*) AS cnt
			FROM doc_documents
			WHERE tenant_id = $1 AND doc_type = 'INVOICE'
			  AND status <> 'DRAFT' AND deletion_mark = false
		) inv
		CROSS JOIN (
			SELECT SUM(amount) AS total
			FROM exp_expenses
			WHERE tenant_id = $1 AND deletion_mark = false
		) exp`

	var out struct {
		Revenue      money.Money `db:"revenue"`
		Collected    money.Money `db:"collected"`
		Outstanding  money.Money `db:"outstanding"`
		Expenses     money.Money `db:"expenses"`
		NetProfit    money.Money `db:"net_profit"`
		InvoiceCount int         `db:"invoice_count"`
	}
	if err := pgxscan.Get(ctx, r.source.GetQuerier(ctx), &out, query, tenantID); err != nil {
		return nil, apperror.NewInternal(err)
	}
	return &analytics.KPISummary{
		Revenue:      out.Revenue,
		Collected:    out.Collected,
		Outstanding:  out.Outstanding,
		Expenses:     out.Expenses,
		NetProfit:    out.NetProfit,
		InvoiceCount: out.InvoiceCount,
	}, nil
}

func (r *AnalyticsRepo) RevenueTrend(ctx context.Context, tenantID id.ID, months int) ([]analytics.RevenuePoint, error) {
	const query = `
		SELECT EXTRACT(YEAR FROM issued_date)::int  AS year,
		       EXTRACT(MONTH FROM issued_date)::int AS month,
		       SUM(total_ttc)                       AS revenue
		FROM doc_documents
		WHERE tenant_id = $1 AND doc_type = 'INVOICE'
		  AND status <> 'DRAFT' AND deletion_mark = false
		  AND issued_date >= date_trunc('month', now()) - ($2 - 1) * INTERVAL '1 month'
		GROUP BY 1, 2
		ORDER BY 1, 2`

	var out []analytics.RevenuePoint
	if err := pgxscan.Select(ctx, r.source.GetQuerier(ctx), &out, query, tenantID, months); err != nil {
		return nil, apperror.NewInternal(err)
	}
	return out, nil
}

func (r *AnalyticsRepo) ExpenseBreakdown(ctx context.Context, tenantID id.ID, from, to time.Time) ([]analytics.CategoryAmount, error) {
	const query = `
		SELECT category, SUM(amount) AS amount
		FROM exp_expenses
		WHERE tenant_id = $1 AND deletion_mark = false
		  AND expense_date >= $2 AND expense_date < $3
		GROUP BY category
		ORDER BY amount DESC`

	var out []analytics.CategoryAmount
	if err := pgxscan.Select(ctx, r.source.GetQuerier(ctx), &out, query, tenantID, from, to); err != nil {
		return nil, apperror.NewInternal(err)
	}
	return out, nil
}

func (r *AnalyticsRepo) SiteProfitability(ctx context.Context, tenantID id.ID) ([]analytics.SiteProfitability, error) {
	const query = `
		SELECT s.id   AS site_id,
		       s.name AS site_name,
		       COALESCE(rev.total, 0)                        AS revenue,
		       COALESCE(exp.total, 0)                        AS expenses,
		       COALESCE(rev.total, 0) - COALESCE(exp.total, 0) AS profit
		FROM cat_sites s
		LEFT JOIN (
			SELECT site_id, SUM(total_ttc) AS total
			FROM doc_documents
			WHERE tenant_id = $1 AND doc_type = 'INVOICE'
			  AND status <> 'DRAFT' AND deletion_mark = false
			GROUP BY site_id
		) rev ON rev.site_id = s.id
		LEFT JOIN (
			SELECT site_id, SUM(amount) AS total
			FROM exp_expenses
			WHERE tenant_id = $1 AND deletion_mark = false
			GROUP BY site_id
		) exp ON exp.site_id = s.id
		WHERE s.tenant_id = $1 AND s.deletion_mark = false
		ORDER BY profit DESC`

	var out []analytics.SiteProfitability
	if err := pgxscan.Select(ctx, r.source.GetQuerier(ctx), &out, query, tenantID); err != nil {
		return nil, apperror.NewInternal(err)
	}
	return out, nil
}

func (r *AnalyticsRepo) ARAging(ctx context.Context, tenantID id.ID, asOf time.Time) (*analytics.AgingBuckets, error) {
	// Buckets measure days past due_date; invoices without a due date
	// count as current.
	const query = `
		SELECT
			COALESCE(SUM(remaining_balance) FILTER (WHERE due_date IS NULL OR due_date >= $2), 0)                            AS current,
			COALESCE(SUM(remaining_balance) FILTER (WHERE due_date < $2 AND due_date >= $2 - INTERVAL '30 days'), 0)          AS days1to30,
			COALESCE(SUM(remaining_balance) FILTER (WHERE due_date < $2 - INTERVAL '30 days' AND due_date >= $2 - INTERVAL '60 days'), 0) AS days31to60,
			COALESCE(SUM(remaining_balance) FILTER (WHERE due_date < $2 - INTERVAL '60 days' AND due_date >= $2 - INTERVAL '90 days'), 0) AS days61to90,
			COALESCE(SUM(remaining_balance) FILTER (WHERE due_date < $2 - INTERVAL '90 days'), 0)                             AS over90
		FROM doc_documents
		WHERE tenant_id = $1 AND doc_type = 'INVOICE'
		  AND status IN ('COMPLETED', 'PARTIALLY_PAID')
		  AND deletion_mark = false`

	var out struct {
		Current    money.Money `db:"current"`
		Days1To30  money.Money `db:"days1to30"`
		Days31To60 money.Money `db:"days31to60"`
		Days61To90 money.Money `db:"days61to90"`
		Over90     money.Money `db:"over90"`
	}
	if err := pgxscan.Get(ctx, r.source.GetQuerier(ctx), &out, query, tenantID, asOf); err != nil {
		return nil, apperror.NewInternal(err)
	}
	return &analytics.AgingBuckets{
		Current:    out.Current,
		Days1To30:  out.Days1To30,
		Days31To60: out.Days31To60,
		Days61To90: out.Days61To90,
		Over90:     out.Over90,
	}, nil
}

func (r *AnalyticsRepo) DSOInputs(ctx context.Context, tenantID id.ID, windowDays int) (money.Money, money.Money, error) {
	const query = `
		SELECT
			COALESCE(SUM(remaining_balance) FILTER (WHERE status IN ('COMPLETED', 'PARTIALLY_PAID')), 0) AS outstanding,
			COALESCE(SUM(total_ttc) FILTER (WHERE issued_date >= now() - $2 * INTERVAL '1 day'), 0)      AS revenue
		FROM doc_documents
		WHERE tenant_id = $1 AND doc_type = 'INVOICE'
		  AND status <> 'DRAFT' AND deletion_mark = false`

	var outstanding, revenue money.Money
	err := r.source.GetQuerier(ctx).QueryRow(ctx, query, tenantID, windowDays).Scan(&outstanding, &revenue)
	if err != nil {
		return money.Zero(), money.Zero(), apperror.NewInternal(err)
	}
	return outstanding, revenue, nil
}

func (r *AnalyticsRepo) ClientRevenues(ctx context.Context, tenantID id.ID) ([]analytics.ClientRevenue, error) {
	const query = `
		SELECT d.client_id,
		       c.name         AS client_name,
		       SUM(d.total_ttc) AS revenue
		FROM doc_documents d
		JOIN cat_clients c ON c.id = d.client_id
		WHERE d.tenant_id = $1 AND d.doc_type = 'INVOICE'
		  AND d.status <> 'DRAFT' AND d.deletion_mark = false
		GROUP BY d.client_id, c.name
		ORDER BY revenue DESC`

	var out []analytics.ClientRevenue
	if err := pgxscan.Select(ctx, r.source.GetQuerier(ctx), &out, query, tenantID); err != nil {
		return nil, apperror.NewInternal(err)
	}
	return out, nil
}

func (r *AnalyticsRepo) LaborIntensity(ctx context.Context, tenantID id.ID, from, to time.Time) ([]analytics.LaborIntensityRow, error) {
	const query = `
		SELECT e.id AS employee_id,
		       e.first_name || ' ' || e.last_name AS employee_name,
		       SUM(CASE a.status WHEN 'PRESENT' THEN 1 WHEN 'HALF_DAY' THEN 0.5 ELSE 0 END) AS days_worked,
		       SUM(CASE a.status WHEN 'PRESENT' THEN 1 WHEN 'HALF_DAY' THEN 0.5 ELSE 0 END * e.daily_rate) AS labor_cost
		FROM hr_attendances a
		JOIN hr_employees e ON e.id = a.employee_id
		WHERE a.tenant_id = $1
		  AND a.work_date >= $2 AND a.work_date <= $3
		GROUP BY e.id, e.first_name, e.last_name
		ORDER BY days_worked DESC`

	var out []analytics.LaborIntensityRow
	if err := pgxscan.Select(ctx, r.source.GetQuerier(ctx), &out, query, tenantID, from, to); err != nil {
		return nil, apperror.NewInternal(err)
	}
	return out, nil
}

func (r *AnalyticsRepo) ProjectEfficiency(ctx context.Context, tenantID id.ID) ([]analytics.ProjectEfficiencyRow, error) {
	const query = `
		SELECT s.id   AS site_id,
		       s.name AS site_name,
		       COALESCE(rev.total, 0) AS revenue,
		       COALESCE(lab.days, 0)  AS labor_days
		FROM cat_sites s
		LEFT JOIN (
			SELECT site_id, SUM(total_ttc) AS total
			FROM doc_documents
			WHERE tenant_id = $1 AND doc_type = 'INVOICE'
			  AND status <> 'DRAFT' AND deletion_mark = false
			GROUP BY site_id
		) rev ON rev.site_id = s.id
		LEFT JOIN (
			SELECT site_id,
			       SUM(CASE status WHEN 'PRESENT' THEN 1 WHEN 'HALF_DAY' THEN 0.5 ELSE 0 END) AS days
			FROM hr_attendances
			WHERE tenant_id = $1
			GROUP BY site_id
		) lab ON lab.site_id = s.id
		WHERE s.tenant_id = $1 AND s.deletion_mark = false
		ORDER BY revenue DESC`

	var out []analytics.ProjectEfficiencyRow
	if err := pgxscan.Select(ctx, r.source.GetQuerier(ctx), &out, query, tenantID); err != nil {
		return nil, apperror.NewInternal(err)
	}
	return out, nil
}

func (r *AnalyticsRepo) QuarterTaxInputs(ctx context.Context, tenantID id.ID, from, to time.Time) (money.Money, money.Money, error) {
	const query = `
		SELECT
			COALESCE((
				SELECT SUM(tax_amount)
				FROM doc_documents
				WHERE tenant_id = $1 AND doc_type = 'INVOICE' AND status = 'PAID'
				  AND deletion_mark = false
				  AND issued_date >= $2 AND issued_date < $3
			), 0) AS collected,
			COALESCE((
				SELECT SUM(amount)
				FROM exp_expenses
				WHERE tenant_id = $1 AND deletion_mark = false
				  AND expense_date >= $2 AND expense_date < $3
			), 0) AS expenses`

	var collected, expenses money.Money
	err := r.source.GetQuerier(ctx).QueryRow(ctx, query, tenantID, from, to).Scan(&collected, &expenses)
	if err != nil {
		return money.Zero(), money.Zero(), apperror.NewInternal(err)
	}
	return collected, expenses, nil
}

package analytics

import (
	"context"
	"time"

	"batibill/internal/core/id"
	"batibill/internal/core/money"
)

// Repository runs the metric queries against the ledger. Every method
// reads committed state only; results are aggregates, never row sets
// the caller could mutate.
type Repository interface {
	// KPISummary aggregates invoiced revenue, collected payments,
	// outstanding balances, expenses, and invoice count.
	KPISummary(ctx context.Context, tenantID id.ID) (*KPISummary, error)

	// RevenueTrend returns invoiced revenue per month, oldest first.
	RevenueTrend(ctx context.Context, tenantID id.ID, months int) ([]RevenuePoint, error)

	// ExpenseBreakdown sums expenses per category in the period.
	ExpenseBreakdown(ctx context.Context, tenantID id.ID, from, to time.Time) ([]CategoryAmount, error)

	// SiteProfitability joins per-site invoiced revenue against
	// per-site expenses.
	SiteProfitability(ctx context.Context, tenantID id.ID) ([]SiteProfitability, error)

	// ARAging buckets unpaid invoice balances by days overdue at asOf.
	ARAging(ctx context.Context, tenantID id.ID, asOf time.Time) (*AgingBuckets, error)

	// DSOInputs returns the current outstanding balance and the
	// invoiced revenue over the trailing window.
	DSOInputs(ctx context.Context, tenantID id.ID, windowDays int) (outstanding, revenue money.Money, err error)

	// ClientRevenues returns per-client invoiced revenue, highest first.
	ClientRevenues(ctx context.Context, tenantID id.ID) ([]ClientRevenue, error)

	// LaborIntensity sums worked days and labor cost per employee.
	LaborIntensity(ctx context.Context, tenantID id.ID, from, to time.Time) ([]LaborIntensityRow, error)

	// ProjectEfficiency joins per-site revenue against worked labor days.
	ProjectEfficiency(ctx context.Context, tenantID id.ID) ([]ProjectEfficiencyRow, error)

	// QuarterTaxInputs returns tax collected on paid invoices and the
	// gross expense total within the period.
	QuarterTaxInputs(ctx context.Context, tenantID id.ID, from, to time.Time) (collectedTax, expenses money.Money, err error)
}

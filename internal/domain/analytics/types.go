// Package analytics computes tenant business metrics behind a
// read-through cache. Results are best-effort accelerators over the
// ledger: they may lag by the cache TTL and are never consulted for
// financial decisions.
package analytics

import (
	"time"

	"batibill/internal/core/id"
	"batibill/internal/core/money"
)

// Metric names. The set is closed: unknown names fail with NOT_FOUND.
const (
	MetricKPISummary         = "kpi_summary"
	MetricRevenueTrend       = "revenue_trend"
	MetricExpenseBreakdown   = "expense_breakdown"
	MetricSiteProfitability  = "site_profitability"
	MetricARAging            = "ar_aging"
	MetricDSO                = "dso"
	MetricClientConcentration = "client_concentration"
	MetricLaborIntensity     = "labor_intensity"
	MetricProjectEfficiency  = "project_efficiency"
	MetricTaxForecast        = "tax_forecast"
)

// KPISummary is the dashboard headline block.
type KPISummary struct {
	Revenue      money.Money `json:"revenue"`
	Collected    money.Money `json:"collected"`
	Outstanding  money.Money `json:"outstanding"`
	Expenses     money.Money `json:"expenses"`
	NetProfit    money.Money `json:"netProfit"`
	InvoiceCount int         `json:"invoiceCount"`
}

// RevenuePoint is one month of invoiced revenue.
type RevenuePoint struct {
	Year    int         `json:"year"`
	Month   int         `json:"month"`
	Revenue money.Money `json:"revenue"`
}

// CategoryAmount is one slice of the expense breakdown.
type CategoryAmount struct {
	Category string      `json:"category"`
	Amount   money.Money `json:"amount"`
}

// SiteProfitability compares what a site earned against what it cost.
type SiteProfitability struct {
	SiteID   id.ID       `json:"siteId"`
	SiteName string      `json:"siteName"`
	Revenue  money.Money `json:"revenue"`
	Expenses money.Money `json:"expenses"`
	Profit   money.Money `json:"profit"`
}

// AgingBuckets groups unpaid invoice balances by days overdue,
// measured from each invoice's due date.
type AgingBuckets struct {
	Current    money.Money `json:"current"`
	Days1To30  money.Money `json:"days1to30"`
	Days31To60 money.Money `json:"days31to60"`
	Days61To90 money.Money `json:"days61to90"`
	Over90     money.Money `json:"over90"`
}

// DSOResult is the days-sales-outstanding figure.
type DSOResult struct {
	Days        money.Money `json:"days"`
	Outstanding money.Money `json:"outstanding"`
	// WindowDays is the revenue window the ratio was computed over.
	WindowDays int `json:"windowDays"`
}

// ClientRevenue is one client's invoiced revenue with its share of the
// tenant total.
type ClientRevenue struct {
	ClientID   id.ID       `json:"clientId"`
	ClientName string      `json:"clientName"`
	Revenue    money.Money `json:"revenue"`
	SharePct   money.Money `json:"sharePct"`
}

// LaborIntensityRow is one employee's worked days over a period.
type LaborIntensityRow struct {
	EmployeeID   id.ID       `json:"employeeId"`
	EmployeeName string      `json:"employeeName"`
	DaysWorked   money.Money `json:"daysWorked"`
	LaborCost    money.Money `json:"laborCost"`
}

// ProjectEfficiencyRow is one site's revenue per worked labor day.
type ProjectEfficiencyRow struct {
	SiteID            id.ID       `json:"siteId"`
	SiteName          string      `json:"siteName"`
	Revenue           money.Money `json:"revenue"`
	LaborDays         money.Money `json:"laborDays"`
	RevenuePerLaborDay money.Money `json:"revenuePerLaborDay"`
}

// TaxForecast estimates the VAT due for the current fiscal quarter:
// tax collected on paid invoices minus an estimate of recoverable tax
// embedded in expenses.
type TaxForecast struct {
	Quarter        int         `json:"quarter"`
	Year           int         `json:"year"`
	CollectedTax   money.Money `json:"collectedTax"`
	RecoverableTax money.Money `json:"recoverableTax"`
	NetDue         money.Money `json:"netDue"`
	PeriodStart    time.Time   `json:"periodStart"`
	PeriodEnd      time.Time   `json:"periodEnd"`
}

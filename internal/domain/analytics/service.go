package analytics

import (
	"context"
	"time"

	"github.com/samber/lo"

	"batibill/internal/core/apperror"
	"batibill/internal/core/id"
	"batibill/internal/core/money"
	"batibill/internal/core/tenant"
	"batibill/pkg/logger"
)

// Defaults for the metric windows.
const (
	DefaultTTL = 5 * time.Minute

	trendMonths      = 12
	breakdownDays    = 365
	dsoWindowDays    = 90
	laborWindowDays  = 30
	concentrationTop = 5

	// vatRate is the statutory rate used to estimate the recoverable
	// part embedded in gross expenses.
	vatRate = 20
)

type computeFn func(ctx context.Context, tenantID id.ID) (any, error)

// Service is the read-through metric layer: on miss it computes from
// the ledger and stores the value with a TTL. Whole-tenant invalidation
// plus the TTL bound how stale a value can ever be.
type Service struct {
	repo  Repository
	cache Cache
	ttl   time.Duration

	registry map[string]computeFn
	now      func() time.Time
}

func NewService(repo Repository, cache Cache, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	s := &Service{
		repo:  repo,
		cache: cache,
		ttl:   ttl,
		now:   func() time.Time { return time.Now().UTC() },
	}
	s.registry = map[string]computeFn{
		MetricKPISummary:          s.computeKPISummary,
		MetricRevenueTrend:        s.computeRevenueTrend,
		MetricExpenseBreakdown:    s.computeExpenseBreakdown,
		MetricSiteProfitability:   s.computeSiteProfitability,
		MetricARAging:             s.computeARAging,
		MetricDSO:                 s.computeDSO,
		MetricClientConcentration: s.computeClientConcentration,
		MetricLaborIntensity:      s.computeLaborIntensity,
		MetricProjectEfficiency:   s.computeProjectEfficiency,
		MetricTaxForecast:         s.computeTaxForecast,
	}
	return s
}

// Metrics returns the supported metric names.
func (s *Service) Metrics() []string {
	return lo.Keys(s.registry)
}

// Get returns the metric value for the current tenant, computing and
// caching it on miss.
func (s *Service) Get(ctx context.Context, metric string) (any, error) {
	t, err := tenant.RequireTenant(ctx)
	if err != nil {
		return nil, err
	}

	compute, ok := s.registry[metric]
	if !ok {
		return nil, apperror.NewNotFound("metric", metric)
	}

	key := cacheKey(t.ID, metric)
	if v, hit := s.cache.Get(key); hit {
		return v, nil
	}

	v, err := compute(ctx, t.ID)
	if err != nil {
		return nil, err
	}
	s.cache.Set(key, v, s.ttl)
	logger.Debug(ctx, "analytics metric computed", "metric", metric)
	return v, nil
}

// Invalidate evicts every cached metric of a tenant. Mutating services
// call this synchronously with their write, so the next read recomputes
// from post-write state.
func (s *Service) Invalidate(_ context.Context, tenantID id.ID) {
	s.cache.DeleteByPrefix(tenantPrefix(tenantID))
}

// OnEntityChanged is the invalidation hook for collaborators owning
// client, attendance, and expense mutations outside the engine.
func (s *Service) OnEntityChanged(ctx context.Context, tenantID id.ID, entityType string) {
	logger.Debug(ctx, "entity changed, evicting analytics",
		"entity_type", entityType, "tenant_id", tenantID)
	s.Invalidate(ctx, tenantID)
}

// --- metric computations ---

func (s *Service) computeKPISummary(ctx context.Context, tenantID id.ID) (any, error) {
	return s.repo.KPISummary(ctx, tenantID)
}

func (s *Service) computeRevenueTrend(ctx context.Context, tenantID id.ID) (any, error) {
	return s.repo.RevenueTrend(ctx, tenantID, trendMonths)
}

func (s *Service) computeExpenseBreakdown(ctx context.Context, tenantID id.ID) (any, error) {
	to := s.now()
	return s.repo.ExpenseBreakdown(ctx, tenantID, to.AddDate(0, 0, -breakdownDays), to)
}

func (s *Service) computeSiteProfitability(ctx context.Context, tenantID id.ID) (any, error) {
	return s.repo.SiteProfitability(ctx, tenantID)
}

func (s *Service) computeARAging(ctx context.Context, tenantID id.ID) (any, error) {
	return s.repo.ARAging(ctx, tenantID, s.now())
}

func (s *Service) computeDSO(ctx context.Context, tenantID id.ID) (any, error) {
	outstanding, revenue, err := s.repo.DSOInputs(ctx, tenantID, dsoWindowDays)
	if err != nil {
		return nil, err
	}

	days := money.Zero()
	if revenue.IsPositive() {
		days = money.Round(outstanding.Div(revenue).Mul(money.New(dsoWindowDays)))
	}
	return &DSOResult{
		Days:        days,
		Outstanding: outstanding,
		WindowDays:  dsoWindowDays,
	}, nil
}

func (s *Service) computeClientConcentration(ctx context.Context, tenantID id.ID) (any, error) {
	revenues, err := s.repo.ClientRevenues(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	total := lo.Reduce(revenues, func(acc money.Money, r ClientRevenue, _ int) money.Money {
		return acc.Add(r.Revenue)
	}, money.Zero())

	top := revenues
	if len(top) > concentrationTop {
		top = top[:concentrationTop]
	}
	return lo.Map(top, func(r ClientRevenue, _ int) ClientRevenue {
		if total.IsPositive() {
			r.SharePct = money.Round(r.Revenue.Div(total).Mul(money.New(100)))
		}
		return r
	}), nil
}

func (s *Service) computeLaborIntensity(ctx context.Context, tenantID id.ID) (any, error) {
	to := s.now()
	return s.repo.LaborIntensity(ctx, tenantID, to.AddDate(0, 0, -laborWindowDays), to)
}

func (s *Service) computeProjectEfficiency(ctx context.Context, tenantID id.ID) (any, error) {
	rows, err := s.repo.ProjectEfficiency(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	return lo.Map(rows, func(r ProjectEfficiencyRow, _ int) ProjectEfficiencyRow {
		if r.LaborDays.IsPositive() {
			r.RevenuePerLaborDay = money.Round(r.Revenue.Div(r.LaborDays))
		}
		return r
	}), nil
}

func (s *Service) computeTaxForecast(ctx context.Context, tenantID id.ID) (any, error) {
	now := s.now()
	quarter := (int(now.Month())-1)/3 + 1
	start := time.Date(now.Year(), time.Month((quarter-1)*3+1), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 3, 0)

	collected, expenses, err := s.repo.QuarterTaxInputs(ctx, tenantID, start, end)
	if err != nil {
		return nil, err
	}

	// Expenses are stored gross; back out the embedded tax at the
	// statutory rate: recoverable = gross x rate / (100 + rate).
	recoverable := money.Round(
		expenses.Mul(money.New(vatRate)).Div(money.New(100 + vatRate)))

	return &TaxForecast{
		Quarter:        quarter,
		Year:           now.Year(),
		CollectedTax:   collected,
		RecoverableTax: recoverable,
		NetDue:         collected.Sub(recoverable),
		PeriodStart:    start,
		PeriodEnd:      end,
	}, nil
}

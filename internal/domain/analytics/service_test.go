package analytics

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"batibill/internal/core/apperror"
	"batibill/internal/core/id"
	"batibill/internal/core/money"
	"batibill/internal/core/tenant"
)

// --- test doubles ---

type fakeCache struct {
	mu      sync.Mutex
	entries map[string]any
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string]any)}
}

func (c *fakeCache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.entries[key]
	return v, ok
}

func (c *fakeCache) Set(key string, value any, _ time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
}

func (c *fakeCache) DeleteByPrefix(prefix string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.entries {
		if strings.HasPrefix(k, prefix) {
			delete(c.entries, k)
		}
	}
}

type stubRepo struct {
	Repository

	kpiCalls int
	kpi      KPISummary

	clientRevenues []ClientRevenue
	taxCollected   money.Money
	taxExpenses    money.Money
	efficiency     []ProjectEfficiencyRow
	dsoOutstanding money.Money
	dsoRevenue     money.Money
}

func (r *stubRepo) KPISummary(context.Context, id.ID) (*KPISummary, error) {
	r.kpiCalls++
	cp := r.kpi
	return &cp, nil
}

func (r *stubRepo) ClientRevenues(context.Context, id.ID) ([]ClientRevenue, error) {
	return r.clientRevenues, nil
}

func (r *stubRepo) QuarterTaxInputs(context.Context, id.ID, time.Time, time.Time) (money.Money, money.Money, error) {
	return r.taxCollected, r.taxExpenses, nil
}

func (r *stubRepo) ProjectEfficiency(context.Context, id.ID) ([]ProjectEfficiencyRow, error) {
	return r.efficiency, nil
}

func (r *stubRepo) DSOInputs(context.Context, id.ID, int) (money.Money, money.Money, error) {
	return r.dsoOutstanding, r.dsoRevenue, nil
}

// --- fixtures ---

var testTenantID = id.MustParse("0191c9a0-0000-7000-8000-000000000001")

func testContext() context.Context {
	return tenant.WithTenant(context.Background(), &tenant.Tenant{ID: testTenantID})
}

// --- tests ---

func TestGetCachesOnFirstRead(t *testing.T) {
	repo := &stubRepo{kpi: KPISummary{Revenue: money.New(1000), InvoiceCount: 3}}
	svc := NewService(repo, newFakeCache(), time.Minute)
	ctx := testContext()

	first, err := svc.Get(ctx, MetricKPISummary)
	require.NoError(t, err)
	second, err := svc.Get(ctx, MetricKPISummary)
	require.NoError(t, err)

	assert.Equal(t, 1, repo.kpiCalls, "second read must come from cache")
	assert.Same(t, first, second)
}

func TestGetRecomputesAfterInvalidation(t *testing.T) {
	repo := &stubRepo{kpi: KPISummary{Revenue: money.New(1000)}}
	svc := NewService(repo, newFakeCache(), time.Minute)
	ctx := testContext()

	_, err := svc.Get(ctx, MetricKPISummary)
	require.NoError(t, err)

	svc.Invalidate(ctx, testTenantID)

	_, err = svc.Get(ctx, MetricKPISummary)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.kpiCalls, "read after invalidation must recompute")
}

func TestInvalidateIsTenantScoped(t *testing.T) {
	repo := &stubRepo{}
	cache := newFakeCache()
	svc := NewService(repo, cache, time.Minute)

	otherTenant := id.MustParse("0191c9a0-0000-7000-8000-000000000099")
	otherCtx := tenant.WithTenant(context.Background(), &tenant.Tenant{ID: otherTenant})

	_, err := svc.Get(testContext(), MetricKPISummary)
	require.NoError(t, err)
	_, err = svc.Get(otherCtx, MetricKPISummary)
	require.NoError(t, err)
	require.Equal(t, 2, repo.kpiCalls)

	svc.Invalidate(context.Background(), testTenantID)

	_, err = svc.Get(otherCtx, MetricKPISummary)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.kpiCalls, "other tenant's cache must survive")
}

func TestGetUnknownMetric(t *testing.T) {
	svc := NewService(&stubRepo{}, newFakeCache(), time.Minute)
	_, err := svc.Get(testContext(), "revenue_per_moon_phase")
	assert.True(t, apperror.IsNotFound(err))
}

func TestGetRequiresTenant(t *testing.T) {
	svc := NewService(&stubRepo{}, newFakeCache(), time.Minute)
	_, err := svc.Get(context.Background(), MetricKPISummary)
	assert.ErrorIs(t, err, tenant.ErrNoTenantInContext)
}

func TestClientConcentration(t *testing.T) {
	clients := make([]ClientRevenue, 0, 7)
	for i := 0; i < 7; i++ {
		clients = append(clients, ClientRevenue{
			ClientID: id.New(),
			Revenue:  money.New(int64(700 - i*100)),
		})
	}
	repo := &stubRepo{clientRevenues: clients}
	svc := NewService(repo, newFakeCache(), time.Minute)

	v, err := svc.Get(testContext(), MetricClientConcentration)
	require.NoError(t, err)

	top := v.([]ClientRevenue)
	require.Len(t, top, 5)
	// Total revenue is 700+600+...+100 = 2800; the biggest client holds 25%.
	assert.True(t, top[0].SharePct.Equal(money.New(25)),
		"share = %s", top[0].SharePct)
}

func TestDSO(t *testing.T) {
	repo := &stubRepo{
		dsoOutstanding: money.New(3000),
		dsoRevenue:     money.New(9000),
	}
	svc := NewService(repo, newFakeCache(), time.Minute)

	v, err := svc.Get(testContext(), MetricDSO)
	require.NoError(t, err)

	dso := v.(*DSOResult)
	assert.True(t, dso.Days.Equal(money.New(30)), "days = %s", dso.Days)
}

func TestTaxForecast(t *testing.T) {
	repo := &stubRepo{
		taxCollected: money.New(5000),
		taxExpenses:  money.New(12000), // gross, embeds 2000 at 20%
	}
	svc := NewService(repo, newFakeCache(), time.Minute)
	svc.now = func() time.Time { return time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC) }

	v, err := svc.Get(testContext(), MetricTaxForecast)
	require.NoError(t, err)

	forecast := v.(*TaxForecast)
	assert.Equal(t, 2, forecast.Quarter)
	assert.Equal(t, 2025, forecast.Year)
	assert.True(t, forecast.RecoverableTax.Equal(money.New(2000)))
	assert.True(t, forecast.NetDue.Equal(money.New(3000)))
	assert.Equal(t, time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), forecast.PeriodStart)
}

func TestProjectEfficiency(t *testing.T) {
	siteID := id.New()
	repo := &stubRepo{efficiency: []ProjectEfficiencyRow{
		{SiteID: siteID, Revenue: money.New(10000), LaborDays: money.New(40)},
		{SiteID: id.New(), Revenue: money.New(500), LaborDays: money.Zero()},
	}}
	svc := NewService(repo, newFakeCache(), time.Minute)

	v, err := svc.Get(testContext(), MetricProjectEfficiency)
	require.NoError(t, err)

	rows := v.([]ProjectEfficiencyRow)
	assert.True(t, rows[0].RevenuePerLaborDay.Equal(money.New(250)))
	// No labor days: ratio left at zero rather than dividing by zero.
	assert.True(t, rows[1].RevenuePerLaborDay.IsZero())
}

func TestMetricsListsAllRegistered(t *testing.T) {
	svc := NewService(&stubRepo{}, newFakeCache(), time.Minute)
	assert.Len(t, svc.Metrics(), 10)
}

package site

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"batibill/internal/core/apperror"
	"batibill/internal/core/id"
	"batibill/internal/core/tenant"
)

type mockRepo struct {
	sites map[id.ID]*Site
}

func newMockRepo() *mockRepo {
	return &mockRepo{sites: make(map[id.ID]*Site)}
}

func (m *mockRepo) Create(_ context.Context, s *Site) error {
	cp := *s
	m.sites[s.ID] = &cp
	return nil
}

func (m *mockRepo) Update(_ context.Context, s *Site) error {
	if _, ok := m.sites[s.ID]; !ok {
		return apperror.NewNotFound("site", s.ID)
	}
	cp := *s
	m.sites[s.ID] = &cp
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, tenantID, siteID id.ID) (*Site, error) {
	s, ok := m.sites[siteID]
	if !ok || s.TenantID != tenantID {
		return nil, apperror.NewNotFound("site", siteID)
	}
	cp := *s
	return &cp, nil
}

func (m *mockRepo) List(_ context.Context, tenantID id.ID, status Status) ([]Site, error) {
	var out []Site
	for _, s := range m.sites {
		if s.TenantID == tenantID && (status == "" || s.Status == status) {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (m *mockRepo) SoftDelete(_ context.Context, _, siteID id.ID) error {
	delete(m.sites, siteID)
	return nil
}

type spyInvalidator struct {
	calls int
}

func (s *spyInvalidator) Invalidate(_ context.Context, _ id.ID) {
	s.calls++
}

var testTenantID = id.MustParse("0191c9a0-0000-7000-8000-000000000001")

func testContext() context.Context {
	return tenant.WithTenant(context.Background(), &tenant.Tenant{
		ID:   testTenantID,
		Name: "Test BTP",
	})
}

func TestCreateSiteDefaultsAndInvalidates(t *testing.T) {
	repo := newMockRepo()
	inv := &spyInvalidator{}
	svc := NewService(repo, inv)

	s, err := svc.Create(testContext(), &Site{Name: "Villa Anfa"})
	require.NoError(t, err)

	assert.Equal(t, StatusActive, s.Status)
	assert.Equal(t, testTenantID, s.TenantID)
	// Profitability and efficiency read sites, so the write must evict.
	assert.Equal(t, 1, inv.calls)
}

func TestCreateSiteRejectsInvalid(t *testing.T) {
	inv := &spyInvalidator{}
	svc := NewService(newMockRepo(), inv)

	_, err := svc.Create(testContext(), &Site{})
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeValidation))
	// Nothing was written, nothing to evict.
	assert.Equal(t, 0, inv.calls)
}

func TestUpdateSiteInvalidates(t *testing.T) {
	repo := newMockRepo()
	inv := &spyInvalidator{}
	svc := NewService(repo, inv)
	ctx := testContext()

	s, err := svc.Create(ctx, &Site{Name: "Villa Anfa"})
	require.NoError(t, err)
	inv.calls = 0

	s.Name = "Villa Anfa II"
	require.NoError(t, svc.Update(ctx, s))
	assert.Equal(t, 1, inv.calls)
}

func TestDeleteSiteInvalidates(t *testing.T) {
	repo := newMockRepo()
	inv := &spyInvalidator{}
	svc := NewService(repo, inv)
	ctx := testContext()

	s, err := svc.Create(ctx, &Site{Name: "Villa Anfa"})
	require.NoError(t, err)
	inv.calls = 0

	require.NoError(t, svc.Delete(ctx, s.ID))
	assert.Equal(t, 1, inv.calls)

	_, err = svc.Get(ctx, s.ID)
	assert.True(t, apperror.IsCode(err, apperror.CodeNotFound))
}

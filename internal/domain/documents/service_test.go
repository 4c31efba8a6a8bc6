package documents

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"batibill/internal/core/apperror"
	"batibill/internal/core/id"
	"batibill/internal/core/money"
	"batibill/internal/core/sequence"
	"batibill/internal/core/tenant"
	"batibill/internal/domain/catalogs/catalogitem"
	"batibill/internal/domain/catalogs/client"
)

// --- test doubles ---

type mockRepo struct {
	docs       map[id.ID]*Document
	createErr  func(attempt int) error
	createN    int
	statusErrs []error
}

func newMockRepo() *mockRepo {
	return &mockRepo{docs: make(map[id.ID]*Document)}
}

func (m *mockRepo) Create(_ context.Context, doc *Document) error {
	m.createN++
	if m.createErr != nil {
		if err := m.createErr(m.createN); err != nil {
			return err
		}
	}
	cp := *doc
	m.docs[doc.ID] = &cp
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, tenantID, docID id.ID) (*Document, error) {
	doc, ok := m.docs[docID]
	if !ok || doc.TenantID != tenantID {
		return nil, apperror.NewNotFound("document", docID)
	}
	cp := *doc
	return &cp, nil
}

func (m *mockRepo) GetByNumber(_ context.Context, tenantID id.ID, docType Type, number string) (*Document, error) {
	for _, doc := range m.docs {
		if doc.TenantID == tenantID && doc.Type == docType && doc.Number == number {
			cp := *doc
			return &cp, nil
		}
	}
	return nil, apperror.NewNotFound("document", number)
}

func (m *mockRepo) GetForUpdate(ctx context.Context, tenantID, docID id.ID) (*Document, error) {
	return m.GetByID(ctx, tenantID, docID)
}

func (m *mockRepo) GetLines(_ context.Context, docID id.ID) ([]Line, error) {
	if doc, ok := m.docs[docID]; ok {
		return doc.Lines, nil
	}
	return nil, nil
}

func (m *mockRepo) List(_ context.Context, tenantID id.ID, _ ListFilter) ([]Document, error) {
	var out []Document
	for _, doc := range m.docs {
		if doc.TenantID == tenantID {
			out = append(out, *doc)
		}
	}
	return out, nil
}

func (m *mockRepo) UpdateStatus(_ context.Context, doc *Document) error {
	if len(m.statusErrs) > 0 {
		err := m.statusErrs[0]
		m.statusErrs = m.statusErrs[1:]
		if err != nil {
			return err
		}
	}
	cp := *doc
	m.docs[doc.ID] = &cp
	return nil
}

func (m *mockRepo) UpdateLedgerState(_ context.Context, _, docID id.ID, state LedgerState) error {
	doc, ok := m.docs[docID]
	if !ok {
		return apperror.NewNotFound("document", docID)
	}
	doc.RemainingBalance = state.RemainingBalance
	doc.Status = state.Status
	return nil
}

func (m *mockRepo) SoftDelete(_ context.Context, _, docID id.ID) error {
	delete(m.docs, docID)
	return nil
}

type mockItems struct {
	items map[id.ID]*catalogitem.Item
}

func (m *mockItems) GetByID(_ context.Context, _, itemID id.ID) (*catalogitem.Item, error) {
	if item, ok := m.items[itemID]; ok {
		return item, nil
	}
	return nil, apperror.NewNotFound("catalog item", itemID)
}

type mockClients struct {
	clients map[id.ID]*client.Client
}

func (m *mockClients) GetByID(_ context.Context, _, clientID id.ID) (*client.Client, error) {
	if c, ok := m.clients[clientID]; ok {
		return c, nil
	}
	return nil, apperror.NewNotFound("client", clientID)
}

type nopTxManager struct{}

func (nopTxManager) RunInTransaction(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

type spyInvalidator struct {
	calls int
}

func (s *spyInvalidator) Invalidate(_ context.Context, _ id.ID) {
	s.calls++
}

// --- fixtures ---

var (
	testTenantID = id.MustParse("0191c9a0-0000-7000-8000-000000000001")
	testClientID = id.MustParse("0191c9a0-0000-7000-8000-000000000002")
)

func testContext() context.Context {
	return tenant.WithTenant(context.Background(), &tenant.Tenant{
		ID:       testTenantID,
		Name:     "Test BTP",
		Language: "fr",
	})
}

func newTestService(repo *mockRepo) (*Service, *spyInvalidator) {
	inv := &spyInvalidator{}
	svc := NewService(
		repo,
		&mockItems{items: map[id.ID]*catalogitem.Item{}},
		&mockClients{clients: map[id.ID]*client.Client{
			testClientID: {Name: "Client SARL"},
		}},
		sequence.NewMockSequencer(),
		nopTxManager{},
		inv,
	)
	return svc, inv
}

func invoiceInput() CreateInput {
	return CreateInput{
		Type:       TypeInvoice,
		ClientID:   testClientID,
		IssuedDate: time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC),
		Lines: []LineInput{
			{ItemName: "Gros oeuvre", Quantity: money.New(2), UnitPrice: money.New(100), TaxRate: money.New(20)},
			{ItemName: "Finitions", Quantity: money.New(1), UnitPrice: money.New(50), TaxRate: money.New(20)},
		},
	}
}

// --- tests ---

func TestCreateDocument(t *testing.T) {
	repo := newMockRepo()
	svc, inv := newTestService(repo)

	doc, err := svc.Create(testContext(), invoiceInput())
	require.NoError(t, err)

	assert.Equal(t, "2025-03-0001", doc.Number)
	assert.Equal(t, StatusDraft, doc.Status)
	assert.Equal(t, "Client SARL", doc.ClientName)
	assert.True(t, doc.Subtotal.Equal(money.New(250)))
	assert.True(t, doc.TaxAmount.Equal(money.New(50)))
	assert.True(t, doc.TotalTTC.Equal(money.New(300)))
	assert.True(t, doc.RemainingBalance.Equal(money.New(300)))
	assert.Equal(t, "TROIS CENTS DIRHAMS TTC", doc.AmountInWords)
	assert.Len(t, doc.Lines, 2)
	assert.Equal(t, 1, doc.Lines[0].LineNo)
	assert.Equal(t, 1, inv.calls)
}

func TestCreateDocumentNumbersArePerTypeAndPeriod(t *testing.T) {
	repo := newMockRepo()
	svc, _ := newTestService(repo)
	ctx := testContext()

	first, err := svc.Create(ctx, invoiceInput())
	require.NoError(t, err)
	second, err := svc.Create(ctx, invoiceInput())
	require.NoError(t, err)

	quoteIn := invoiceInput()
	quoteIn.Type = TypeQuote
	quote, err := svc.Create(ctx, quoteIn)
	require.NoError(t, err)

	aprilIn := invoiceInput()
	aprilIn.IssuedDate = time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	april, err := svc.Create(ctx, aprilIn)
	require.NoError(t, err)

	assert.Equal(t, "2025-03-0001", first.Number)
	assert.Equal(t, "2025-03-0002", second.Number)
	// Quotes number independently from invoices.
	assert.Equal(t, "2025-03-0001", quote.Number)
	// A new month resets the counter.
	assert.Equal(t, "2025-04-0001", april.Number)
}

func TestCreateDocumentRetriesOnNumberCollision(t *testing.T) {
	repo := newMockRepo()
	repo.createErr = func(attempt int) error {
		if attempt == 1 {
			return apperror.NewDuplicate("document", "number", "2025-03-0001")
		}
		return nil
	}
	svc, _ := newTestService(repo)

	doc, err := svc.Create(testContext(), invoiceInput())
	require.NoError(t, err)
	assert.Equal(t, 2, repo.createN)
	// The retry drew a fresh number instead of reusing the collided one.
	assert.Equal(t, "2025-03-0002", doc.Number)
}

func TestCreateDocumentSequenceConflictAfterRetries(t *testing.T) {
	repo := newMockRepo()
	repo.createErr = func(int) error {
		return apperror.NewDuplicate("document", "number", "2025-03-0001")
	}
	svc, _ := newTestService(repo)

	_, err := svc.Create(testContext(), invoiceInput())
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeSequenceConflict))
	assert.Equal(t, maxNumberAttempts, repo.createN)
}

func TestCreateDocumentSnapshotsCatalogItem(t *testing.T) {
	itemID := id.New()
	repo := newMockRepo()
	svc, _ := newTestService(repo)
	svc.items = &mockItems{items: map[id.ID]*catalogitem.Item{
		itemID: {
			Code:        "GO-01",
			Name:        "Gros oeuvre",
			Description: "Fondations et dalles",
			Unit:        "m²",
			UnitPrice:   money.New(150),
			TaxRate:     money.New(20),
		},
	}}

	in := invoiceInput()
	in.Lines = []LineInput{{ItemID: &itemID, Quantity: money.New(2)}}

	doc, err := svc.Create(testContext(), in)
	require.NoError(t, err)

	line := doc.Lines[0]
	assert.Equal(t, "GO-01", line.ItemCode)
	assert.Equal(t, "Gros oeuvre", line.ItemName)
	assert.Equal(t, "Fondations et dalles", line.Description)
	assert.Equal(t, "m²", line.Unit)
	assert.True(t, line.UnitPrice.Equal(money.New(150)))
	assert.True(t, line.Subtotal.Equal(money.New(300)))
}

func TestCreateDocumentAmountWordsDefaultToFrench(t *testing.T) {
	repo := newMockRepo()
	svc, _ := newTestService(repo)
	// No language on the tenant: the document locale defaults to French.
	ctx := tenant.WithTenant(context.Background(), &tenant.Tenant{
		ID:   testTenantID,
		Name: "Test BTP",
	})

	doc, err := svc.Create(ctx, invoiceInput())
	require.NoError(t, err)
	assert.Equal(t, "TROIS CENTS DIRHAMS TTC", doc.AmountInWords)
}

func TestCreateDocumentRequiresTenant(t *testing.T) {
	svc, _ := newTestService(newMockRepo())
	_, err := svc.Create(context.Background(), invoiceInput())
	assert.ErrorIs(t, err, tenant.ErrNoTenantInContext)
}

func TestCreateDocumentRejectsEmptyLines(t *testing.T) {
	svc, _ := newTestService(newMockRepo())
	in := invoiceInput()
	in.Lines = nil
	_, err := svc.Create(testContext(), in)
	assert.True(t, apperror.IsCode(err, apperror.CodeValidation))
}

func TestTransition(t *testing.T) {
	repo := newMockRepo()
	svc, inv := newTestService(repo)
	ctx := testContext()

	doc, err := svc.Create(ctx, invoiceInput())
	require.NoError(t, err)
	inv.calls = 0

	updated, err := svc.Transition(ctx, doc.ID, StatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, updated.Status)
	assert.Equal(t, 1, inv.calls)
}

func TestTransitionRejectsInvalidMove(t *testing.T) {
	repo := newMockRepo()
	svc, _ := newTestService(repo)
	ctx := testContext()

	doc, err := svc.Create(ctx, invoiceInput())
	require.NoError(t, err)

	_, err = svc.Transition(ctx, doc.ID, StatusSent)
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeInvalidStatusTransition))
}

func TestTransitionRejectsLedgerStatuses(t *testing.T) {
	repo := newMockRepo()
	svc, _ := newTestService(repo)
	ctx := testContext()

	doc, err := svc.Create(ctx, invoiceInput())
	require.NoError(t, err)

	for _, target := range []Status{StatusPaid, StatusPartiallyPaid} {
		_, err = svc.Transition(ctx, doc.ID, target)
		require.Error(t, err)
		assert.True(t, apperror.IsCode(err, apperror.CodeInvalidStatusTransition),
			"target %s", target)
	}
}

func TestDeleteOnlyDrafts(t *testing.T) {
	repo := newMockRepo()
	svc, _ := newTestService(repo)
	ctx := testContext()

	doc, err := svc.Create(ctx, invoiceInput())
	require.NoError(t, err)

	_, err = svc.Transition(ctx, doc.ID, StatusCompleted)
	require.NoError(t, err)

	err = svc.Delete(ctx, doc.ID)
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeDocumentNotEditable))
}

func TestQuoteLifecycle(t *testing.T) {
	repo := newMockRepo()
	svc, _ := newTestService(repo)
	ctx := testContext()

	in := invoiceInput()
	in.Type = TypeQuote
	quote, err := svc.Create(ctx, in)
	require.NoError(t, err)

	_, err = svc.Transition(ctx, quote.ID, StatusSent)
	require.NoError(t, err)
	accepted, err := svc.Transition(ctx, quote.ID, StatusAccepted)
	require.NoError(t, err)
	assert.Equal(t, StatusAccepted, accepted.Status)

	// Terminal: no further moves.
	_, err = svc.Transition(ctx, quote.ID, StatusSent)
	assert.Error(t, err)
}

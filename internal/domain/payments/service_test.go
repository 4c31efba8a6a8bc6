package payments

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"batibill/internal/core/apperror"
	"batibill/internal/core/entity"
	"batibill/internal/core/id"
	"batibill/internal/core/money"
	"batibill/internal/core/tenant"
	"batibill/internal/domain/documents"
)

// --- test doubles ---

type mockPaymentRepo struct {
	payments map[id.ID]*Payment
}

func newMockPaymentRepo() *mockPaymentRepo {
	return &mockPaymentRepo{payments: make(map[id.ID]*Payment)}
}

func (m *mockPaymentRepo) Create(_ context.Context, p *Payment) error {
	cp := *p
	m.payments[p.ID] = &cp
	return nil
}

func (m *mockPaymentRepo) GetByID(_ context.Context, tenantID, paymentID id.ID) (*Payment, error) {
	p, ok := m.payments[paymentID]
	if !ok || p.TenantID != tenantID || p.DeletionMark {
		return nil, apperror.NewNotFound("payment", paymentID)
	}
	cp := *p
	return &cp, nil
}

func (m *mockPaymentRepo) ListByInvoice(_ context.Context, tenantID, invoiceID id.ID) ([]Payment, error) {
	var out []Payment
	for _, p := range m.payments {
		if p.TenantID == tenantID && p.InvoiceID == invoiceID && !p.DeletionMark {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (m *mockPaymentRepo) SumActiveByInvoice(_ context.Context, tenantID, invoiceID id.ID) (money.Money, error) {
	sum := money.Zero()
	for _, p := range m.payments {
		if p.TenantID == tenantID && p.InvoiceID == invoiceID && !p.DeletionMark {
			sum = sum.Add(p.Amount)
		}
	}
	return sum, nil
}

func (m *mockPaymentRepo) SoftDelete(_ context.Context, tenantID, paymentID id.ID) error {
	p, ok := m.payments[paymentID]
	if !ok || p.TenantID != tenantID {
		return apperror.NewNotFound("payment", paymentID)
	}
	p.DeletionMark = true
	return nil
}

type mockInvoices struct {
	docs map[id.ID]*documents.Document
}

func (m *mockInvoices) GetForUpdate(_ context.Context, tenantID, docID id.ID) (*documents.Document, error) {
	doc, ok := m.docs[docID]
	if !ok || doc.TenantID != tenantID {
		return nil, apperror.NewNotFound("document", docID)
	}
	cp := *doc
	return &cp, nil
}

func (m *mockInvoices) UpdateLedgerState(_ context.Context, _, docID id.ID, state documents.LedgerState) error {
	doc := m.docs[docID]
	doc.RemainingBalance = state.RemainingBalance
	doc.Status = state.Status
	return nil
}

type nopTxManager struct{}

func (nopTxManager) RunInTransaction(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

type spyInvalidator struct{ calls int }

func (s *spyInvalidator) Invalidate(context.Context, id.ID) { s.calls++ }

// --- fixtures ---

var testTenantID = id.MustParse("0191c9a0-0000-7000-8000-000000000001")

func testContext() context.Context {
	return tenant.WithTenant(context.Background(), &tenant.Tenant{ID: testTenantID, Language: "fr"})
}

func newTestInvoice(total string, status documents.Status) *documents.Document {
	doc := &documents.Document{
		Type:             documents.TypeInvoice,
		Status:           status,
		TotalTTC:         money.MustParse(total),
		RemainingBalance: money.MustParse(total),
	}
	doc.BaseDocument = entity.NewBaseDocument(testTenantID)
	return doc
}

func newTestLedger(docs ...*documents.Document) (*Service, *mockPaymentRepo, *mockInvoices, *spyInvalidator) {
	repo := newMockPaymentRepo()
	invoices := &mockInvoices{docs: make(map[id.ID]*documents.Document)}
	for _, d := range docs {
		invoices.docs[d.ID] = d
	}
	inv := &spyInvalidator{}
	return NewService(repo, invoices, nopTxManager{}, inv), repo, invoices, inv
}

// --- tests ---

func TestRecordPartialPayment(t *testing.T) {
	invoice := newTestInvoice("300", documents.StatusCompleted)
	svc, _, invoices, spy := newTestLedger(invoice)

	p, state, err := svc.Record(testContext(), RecordInput{
		InvoiceID: invoice.ID,
		Amount:    money.New(100),
		Method:    MethodBankTransfer,
	})
	require.NoError(t, err)

	assert.True(t, p.Amount.Equal(money.New(100)))
	assert.Equal(t, documents.StatusPartiallyPaid, state.Status)
	assert.True(t, state.RemainingBalance.Equal(money.New(200)))
	assert.Equal(t, documents.StatusPartiallyPaid, invoices.docs[invoice.ID].Status)
	assert.Equal(t, 1, spy.calls)
}

func TestRecordPaymentsToFullSettlement(t *testing.T) {
	invoice := newTestInvoice("300", documents.StatusCompleted)
	svc, _, invoices, _ := newTestLedger(invoice)
	ctx := testContext()

	_, state, err := svc.Record(ctx, RecordInput{InvoiceID: invoice.ID, Amount: money.New(100), Method: MethodCash})
	require.NoError(t, err)
	assert.Equal(t, documents.StatusPartiallyPaid, state.Status)

	_, state, err = svc.Record(ctx, RecordInput{InvoiceID: invoice.ID, Amount: money.New(200), Method: MethodCash})
	require.NoError(t, err)
	assert.Equal(t, documents.StatusPaid, state.Status)
	assert.True(t, state.RemainingBalance.IsZero())
	assert.True(t, invoices.docs[invoice.ID].RemainingBalance.IsZero())
}

func TestRecordOverpaymentRejected(t *testing.T) {
	invoice := newTestInvoice("300", documents.StatusCompleted)
	svc, repo, invoices, spy := newTestLedger(invoice)
	ctx := testContext()

	_, _, err := svc.Record(ctx, RecordInput{InvoiceID: invoice.ID, Amount: money.New(100), Method: MethodCash})
	require.NoError(t, err)
	spy.calls = 0

	_, _, err = svc.Record(ctx, RecordInput{InvoiceID: invoice.ID, Amount: money.MustParse("200.01"), Method: MethodCash})
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeOverpayment, appErr.Code)
	assert.Equal(t, "200", appErr.Details["remaining"])

	// Rejection wrote nothing: one payment, state unchanged.
	assert.Len(t, repo.payments, 1)
	assert.Equal(t, documents.StatusPartiallyPaid, invoices.docs[invoice.ID].Status)
	assert.Equal(t, 0, spy.calls)
}

func TestRecordRejectsNonInvoice(t *testing.T) {
	quote := newTestInvoice("300", documents.StatusDraft)
	quote.Type = documents.TypeQuote
	svc, _, _, _ := newTestLedger(quote)

	_, _, err := svc.Record(testContext(), RecordInput{InvoiceID: quote.ID, Amount: money.New(100), Method: MethodCash})
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeValidation))
}

func TestRecordRejectsNonPositiveAmount(t *testing.T) {
	invoice := newTestInvoice("300", documents.StatusCompleted)
	svc, _, _, _ := newTestLedger(invoice)
	ctx := testContext()

	_, _, err := svc.Record(ctx, RecordInput{InvoiceID: invoice.ID, Amount: money.Zero(), Method: MethodCash})
	assert.True(t, apperror.IsCode(err, apperror.CodeValidation))

	_, _, err = svc.Record(ctx, RecordInput{InvoiceID: invoice.ID, Amount: money.MustParse("-10"), Method: MethodCash})
	assert.True(t, apperror.IsCode(err, apperror.CodeValidation))
}

func TestDeletePaymentRegressesStatus(t *testing.T) {
	invoice := newTestInvoice("300", documents.StatusCompleted)
	svc, _, invoices, _ := newTestLedger(invoice)
	ctx := testContext()

	p, state, err := svc.Record(ctx, RecordInput{InvoiceID: invoice.ID, Amount: money.New(300), Method: MethodCheck})
	require.NoError(t, err)
	require.Equal(t, documents.StatusPaid, state.Status)

	state, err = svc.Delete(ctx, p.ID)
	require.NoError(t, err)

	// Back to COMPLETED, not DRAFT: issuing is not undone by a refund.
	assert.Equal(t, documents.StatusCompleted, state.Status)
	assert.True(t, state.RemainingBalance.Equal(money.New(300)))
	assert.Equal(t, documents.StatusCompleted, invoices.docs[invoice.ID].Status)
}

func TestRecordOnDraftFollowsLedgerFormula(t *testing.T) {
	invoice := newTestInvoice("300", documents.StatusDraft)
	svc, _, invoices, _ := newTestLedger(invoice)
	ctx := testContext()

	p, state, err := svc.Record(ctx, RecordInput{InvoiceID: invoice.ID, Amount: money.New(300), Method: MethodCash})
	require.NoError(t, err)
	assert.Equal(t, documents.StatusPaid, state.Status)

	// The draft left DRAFT through the ledger, so a full refund
	// regresses it to COMPLETED like any other paid invoice.
	state, err = svc.Delete(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, documents.StatusCompleted, state.Status)
	assert.Equal(t, documents.StatusCompleted, invoices.docs[invoice.ID].Status)
}

func TestDeleteUnknownPayment(t *testing.T) {
	invoice := newTestInvoice("300", documents.StatusCompleted)
	svc, _, _, _ := newTestLedger(invoice)

	_, err := svc.Delete(testContext(), id.New())
	assert.True(t, apperror.IsNotFound(err))
}

func TestRecordRequiresTenant(t *testing.T) {
	invoice := newTestInvoice("300", documents.StatusCompleted)
	svc, _, _, _ := newTestLedger(invoice)

	_, _, err := svc.Record(context.Background(), RecordInput{InvoiceID: invoice.ID, Amount: money.New(100), Method: MethodCash})
	assert.ErrorIs(t, err, tenant.ErrNoTenantInContext)
}

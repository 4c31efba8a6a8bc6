package documents

import (
	"context"
	"fmt"
	"time"

	"batibill/internal/core/apperror"
	"batibill/internal/core/entity"
	"batibill/internal/core/id"
	"batibill/internal/core/money"
	"batibill/internal/core/sequence"
	"batibill/internal/core/tenant"
	"batibill/internal/core/tx"
	"batibill/internal/domain/catalogs/catalogitem"
	"batibill/internal/domain/catalogs/client"
	"batibill/pkg/logger"
)

// maxNumberAttempts bounds the retry loop around number assignment.
// Exhaustion surfaces as SEQUENCE_CONFLICT and the whole create is safe
// to retry.
const maxNumberAttempts = 3

// ItemLookup resolves catalog items for line snapshots.
type ItemLookup interface {
	GetByID(ctx context.Context, tenantID, itemID id.ID) (*catalogitem.Item, error)
}

// ClientLookup resolves clients for header snapshots.
type ClientLookup interface {
	GetByID(ctx context.Context, tenantID, clientID id.ID) (*client.Client, error)
}

// Invalidator evicts a tenant's cached analytics after document changes.
type Invalidator interface {
	Invalidate(ctx context.Context, tenantID id.ID)
}

// Service implements document use cases: creation with atomic number
// assignment, lifecycle transitions, and retrieval.
type Service struct {
	repo      Repository
	items     ItemLookup
	clients   ClientLookup
	seq       sequence.Sequencer
	txManager tx.Manager
	analytics Invalidator
}

func NewService(
	repo Repository,
	items ItemLookup,
	clients ClientLookup,
	seq sequence.Sequencer,
	txManager tx.Manager,
	analytics Invalidator,
) *Service {
	return &Service{
		repo:      repo,
		items:     items,
		clients:   clients,
		seq:       seq,
		txManager: txManager,
		analytics: analytics,
	}
}

// CreateInput holds everything needed to create a document.
type CreateInput struct {
	Type        Type
	ClientID    id.ID
	SiteID      *id.ID
	IssuedDate  time.Time
	DueDate     *time.Time
	DiscountPct money.Money
	Lines       []LineInput
	Notes       string

	// StatutoryRetention switches totals to public-works terms
	// (fixed 10% retention, 20% tax).
	StatutoryRetention bool
}

// Create builds a document in DRAFT status: snapshots catalog data,
// computes lines and totals, assigns the next sequential number, and
// persists everything in one transaction. The number counter advances
// with the insert, so a rollback leaves a gap but never a duplicate.
func (s *Service) Create(ctx context.Context, in CreateInput) (*Document, error) {
	t, err := tenant.RequireTenant(ctx)
	if err != nil {
		return nil, err
	}
	if !in.Type.Valid() {
		return nil, apperror.NewValidation("invalid document type").
			WithDetail("type", string(in.Type))
	}
	if in.IssuedDate.IsZero() {
		in.IssuedDate = time.Now().UTC()
	}

	cl, err := s.clients.GetByID(ctx, t.ID, in.ClientID)
	if err != nil {
		return nil, err
	}

	lines, err := s.buildLines(ctx, t.ID, in.Lines)
	if err != nil {
		return nil, err
	}

	var totals Totals
	if in.StatutoryRetention {
		totals = AggregateWithStatutoryRetention(lines)
	} else {
		totals, err = Aggregate(lines, in.DiscountPct)
		if err != nil {
			return nil, err
		}
	}

	doc := s.assemble(t, tenant.GetLanguage(ctx), in, cl.Name, lines, totals)
	if err := doc.Validate(ctx); err != nil {
		return nil, err
	}

	// Number assignment can race with a concurrent create in the same
	// period. The counter row serializes almost all of it, so a unique
	// violation on the number is rare; retry with a fresh transaction.
	for attempt := 1; attempt <= maxNumberAttempts; attempt++ {
		err = s.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
			number, seqErr := s.seq.Next(txCtx, t.ID, string(in.Type), in.IssuedDate)
			if seqErr != nil {
				return seqErr
			}
			doc.Number = number
			return s.repo.Create(txCtx, doc)
		})
		if err == nil {
			break
		}
		if !apperror.IsCode(err, apperror.CodeDuplicate) {
			return nil, err
		}
		logger.Warn(ctx, "document number collision, retrying",
			"doc_type", in.Type, "attempt", attempt)
	}
	if err != nil {
		y, m := sequence.PeriodKey(in.IssuedDate)
		return nil, apperror.NewSequenceConflict(string(in.Type), fmt.Sprintf("%04d-%02d", y, m))
	}

	s.analytics.Invalidate(ctx, t.ID)
	logger.Info(ctx, "document created",
		"doc_id", doc.ID, "doc_type", doc.Type, "number", doc.Number,
		"total_ttc", doc.TotalTTC.String())
	return doc, nil
}

func (s *Service) buildLines(ctx context.Context, tenantID id.ID, inputs []LineInput) ([]Line, error) {
	if len(inputs) == 0 {
		return nil, apperror.NewValidation("document must have at least one line")
	}

	lines := make([]Line, 0, len(inputs))
	for i, in := range inputs {
		if in.ItemID != nil {
			item, err := s.items.GetByID(ctx, tenantID, *in.ItemID)
			if err != nil {
				return nil, err
			}
			// Snapshot catalog data; explicit input wins over defaults.
			if in.ItemCode == "" {
				in.ItemCode = item.Code
			}
			if in.ItemName == "" {
				in.ItemName = item.Name
			}
			if in.Description == "" {
				in.Description = item.Description
			}
			if in.Unit == "" {
				in.Unit = item.Unit
			}
			if in.UnitPrice.IsZero() {
				in.UnitPrice = item.UnitPrice
			}
			if in.TaxRate.IsZero() {
				in.TaxRate = item.TaxRate
			}
		}
		if in.ItemName == "" {
			return nil, apperror.NewValidation("line item name is required").
				WithDetail("line_no", i+1)
		}

		line, err := ComputeLine(in)
		if err != nil {
			if appErr, ok := apperror.AsAppError(err); ok {
				appErr.WithDetail("line_no", i+1)
			}
			return nil, err
		}
		line.ID = id.New()
		line.LineNo = i + 1
		lines = append(lines, line)
	}
	return lines, nil
}

func (s *Service) assemble(t *tenant.Tenant, lang string, in CreateInput, clientName string, lines []Line, totals Totals) *Document {
	doc := &Document{
		Type:           in.Type,
		Status:         StatusDraft,
		ClientID:       in.ClientID,
		SiteID:         in.SiteID,
		ClientName:     clientName,
		IssuedDate:     in.IssuedDate,
		DueDate:        in.DueDate,
		Subtotal:       totals.Subtotal,
		DiscountPct:    totals.DiscountPct,
		DiscountAmount: totals.DiscountAmount,
		TotalHT:        totals.TotalHT,
		TaxRate:        totals.TaxRate,
		TaxAmount:      totals.TaxAmount,
		TotalTTC:       totals.TotalTTC,
		AmountInWords:  AmountInWords(totals.TotalTTC, lang),
		Notes:          in.Notes,
		Lines:          lines,
	}
	doc.BaseDocument = entity.NewBaseDocument(t.ID)
	doc.RemainingBalance = totals.TotalTTC
	for i := range doc.Lines {
		doc.Lines[i].DocumentID = doc.ID
	}
	return doc
}

// Get returns a document with its lines.
func (s *Service) Get(ctx context.Context, docID id.ID) (*Document, error) {
	tenantID := tenant.GetTenantID(ctx)
	doc, err := s.repo.GetByID(ctx, tenantID, docID)
	if err != nil {
		return nil, err
	}
	doc.Lines, err = s.repo.GetLines(ctx, doc.ID)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// GetByNumber returns a document by its sequential number.
func (s *Service) GetByNumber(ctx context.Context, docType Type, number string) (*Document, error) {
	doc, err := s.repo.GetByNumber(ctx, tenant.GetTenantID(ctx), docType, number)
	if err != nil {
		return nil, err
	}
	doc.Lines, err = s.repo.GetLines(ctx, doc.ID)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// List returns documents matching the filter.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]Document, error) {
	return s.repo.List(ctx, tenant.GetTenantID(ctx), filter)
}

// Transition moves a document to a new lifecycle status.
// Ledger-derived statuses are rejected: only payment recomputation sets
// PARTIALLY_PAID and PAID.
func (s *Service) Transition(ctx context.Context, docID id.ID, to Status) (*Document, error) {
	tenantID := tenant.GetTenantID(ctx)

	var doc *Document
	err := s.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		var txErr error
		doc, txErr = s.repo.GetForUpdate(txCtx, tenantID, docID)
		if txErr != nil {
			return txErr
		}
		if IsLedgerStatus(to) {
			return apperror.NewBusinessRule(apperror.CodeInvalidStatusTransition,
				"payment statuses are set by the ledger, not directly")
		}
		if !CanTransition(doc.Type, doc.Status, to) {
			return apperror.NewInvalidStatusTransition(string(doc.Type), string(doc.Status), string(to))
		}
		doc.Status = to
		doc.Touch()
		return s.repo.UpdateStatus(txCtx, doc)
	})
	if err != nil {
		return nil, err
	}

	s.analytics.Invalidate(ctx, tenantID)
	logger.Info(ctx, "document transitioned",
		"doc_id", docID, "doc_type", doc.Type, "status", doc.Status)
	return doc, nil
}

// Delete soft-deletes a document. Drafts only: issued documents are
// immutable history, and their numbers are never reissued either way.
func (s *Service) Delete(ctx context.Context, docID id.ID) error {
	tenantID := tenant.GetTenantID(ctx)

	err := s.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		doc, txErr := s.repo.GetForUpdate(txCtx, tenantID, docID)
		if txErr != nil {
			return txErr
		}
		if !IsEditable(doc.Status) {
			return apperror.NewBusinessRule(apperror.CodeDocumentNotEditable,
				"only draft documents can be deleted")
		}
		return s.repo.SoftDelete(txCtx, tenantID, docID)
	})
	if err != nil {
		return err
	}

	s.analytics.Invalidate(ctx, tenantID)
	return nil
}

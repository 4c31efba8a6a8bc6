package postgres

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"batibill/internal/core/apperror"
	"batibill/internal/core/id"
	"batibill/internal/domain/documents"
)

const (
	documentsTable = "doc_documents"
	linesTable     = "doc_document_lines"
)

var _ documents.Repository = (*DocumentRepo)(nil)

// DocumentRepo persists document headers and lines. Lines are written
// once, with the header, and never updated: documents are corrected by
// replacement, not by line edits.
type DocumentRepo struct {
	source   QuerierSource
	docCols  []string
	lineCols []string
}

func NewDocumentRepo(source QuerierSource) *DocumentRepo {
	return &DocumentRepo{
		source:   source,
		docCols:  ExtractDBColumns[documents.Document](),
		lineCols: ExtractDBColumns[documents.Line](),
	}
}

// Create inserts the header and all lines. Callers run it inside the
// transaction that drew the document number; the number's unique index
// is the last line of defense against a sequencing race.
func (r *DocumentRepo) Create(ctx context.Context, doc *documents.Document) error {
	q := r.source.GetQuerier(ctx)

	query, args, err := psql.Insert(documentsTable).SetMap(StructToMap(doc)).ToSql()
	if err != nil {
		return apperror.NewInternal(err)
	}
	if _, err := q.Exec(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return apperror.NewDuplicate("document", "number", doc.Number).WithCause(err)
		}
		return apperror.NewInternal(err)
	}

	ins := psql.Insert(linesTable).Columns(r.lineCols...)
	for _, line := range doc.Lines {
		m := StructToMap(line)
		vals := make([]any, 0, len(r.lineCols))
		for _, col := range r.lineCols {
			vals = append(vals, m[col])
		}
		ins = ins.Values(vals...)
	}
	query, args, err = ins.ToSql()
	if err != nil {
		return apperror.NewInternal(err)
	}
	if _, err := q.Exec(ctx, query, args...); err != nil {
		return apperror.NewInternal(err)
	}
	return nil
}

func (r *DocumentRepo) GetByID(ctx context.Context, tenantID, docID id.ID) (*documents.Document, error) {
	return r.getOne(ctx, sq.Eq{"id": docID, "tenant_id": tenantID, "deletion_mark": false}, docID, "")
}

func (r *DocumentRepo) GetByNumber(ctx context.Context, tenantID id.ID, docType documents.Type, number string) (*documents.Document, error) {
	return r.getOne(ctx, sq.Eq{
		"tenant_id":     tenantID,
		"doc_type":      docType,
		"number":        number,
		"deletion_mark": false,
	}, number, "")
}

// GetForUpdate locks the header row for the rest of the transaction.
// The payment ledger serializes on this lock.
func (r *DocumentRepo) GetForUpdate(ctx context.Context, tenantID, docID id.ID) (*documents.Document, error) {
	return r.getOne(ctx, sq.Eq{"id": docID, "tenant_id": tenantID, "deletion_mark": false}, docID, "FOR UPDATE")
}

func (r *DocumentRepo) getOne(ctx context.Context, where sq.Eq, key any, suffix string) (*documents.Document, error) {
	q := psql.Select(r.docCols...).From(documentsTable).Where(where)
	if suffix != "" {
		q = q.Suffix(suffix)
	}
	query, args, err := q.ToSql()
	if err != nil {
		return nil, apperror.NewInternal(err)
	}

	var doc documents.Document
	if err := pgxscan.Get(ctx, r.source.GetQuerier(ctx), &doc, query, args...); err != nil {
		return nil, mapScanError(err, "document", key)
	}
	return &doc, nil
}

func (r *DocumentRepo) GetLines(ctx context.Context, docID id.ID) ([]documents.Line, error) {
	query, args, err := psql.Select(r.lineCols...).
		From(linesTable).
		Where(sq.Eq{"document_id": docID}).
		OrderBy("line_no").
		ToSql()
	if err != nil {
		return nil, apperror.NewInternal(err)
	}

	var lines []documents.Line
	if err := pgxscan.Select(ctx, r.source.GetQuerier(ctx), &lines, query, args...); err != nil {
		return nil, apperror.NewInternal(err)
	}
	return lines, nil
}

func (r *DocumentRepo) List(ctx context.Context, tenantID id.ID, filter documents.ListFilter) ([]documents.Document, error) {
	q := psql.Select(r.docCols...).
		From(documentsTable).
		Where(sq.Eq{"tenant_id": tenantID, "deletion_mark": false}).
		OrderBy("issued_date DESC", "number DESC")

	if filter.Type != "" {
		q = q.Where(sq.Eq{"doc_type": filter.Type})
	}
	if filter.Status != "" {
		q = q.Where(sq.Eq{"status": filter.Status})
	}
	if !id.IsNil(filter.ClientID) {
		q = q.Where(sq.Eq{"client_id": filter.ClientID})
	}
	if !id.IsNil(filter.SiteID) {
		q = q.Where(sq.Eq{"site_id": filter.SiteID})
	}
	if !filter.From.IsZero() {
		q = q.Where(sq.GtOrEq{"issued_date": filter.From})
	}
	if !filter.To.IsZero() {
		q = q.Where(sq.Lt{"issued_date": filter.To})
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

	var out []documents.Document
	if err := pgxscan.Select(ctx, r.source.GetQuerier(ctx), &out, query, args...); err != nil {
		return nil, apperror.NewInternal(err)
	}
	return out, nil
}

// UpdateStatus persists a lifecycle move with optimistic locking.
// The caller already incremented the version via Touch.
func (r *DocumentRepo) UpdateStatus(ctx context.Context, doc *documents.Document) error {
	query, args, err := psql.Update(documentsTable).
		Set("status", doc.Status).
		Set("updated_at", doc.UpdatedAt).
		Set("version", doc.Version).
		Where(sq.Eq{"id": doc.ID, "tenant_id": doc.TenantID, "version": doc.Version - 1}).
		ToSql()
	if err != nil {
		return apperror.NewInternal(err)
	}

	tag, err := r.source.GetQuerier(ctx).Exec(ctx, query, args...)
	if err != nil {
		return apperror.NewInternal(err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewConcurrentModification("document", doc.ID)
	}
	return nil
}

// UpdateLedgerState writes the derived balance and status. No version
// check: the caller holds the row lock from GetForUpdate.
func (r *DocumentRepo) UpdateLedgerState(ctx context.Context, tenantID, docID id.ID, state documents.LedgerState) error {
	query, args, err := psql.Update(documentsTable).
		Set("remaining_balance", state.RemainingBalance).
		Set("status", state.Status).
		Where(sq.Eq{"id": docID, "tenant_id": tenantID}).
		ToSql()
	if err != nil {
		return apperror.NewInternal(err)
	}

	tag, err := r.source.GetQuerier(ctx).Exec(ctx, query, args...)
	if err != nil {
		return apperror.NewInternal(err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("document", docID)
	}
	return nil
}

func (r *DocumentRepo) SoftDelete(ctx context.Context, tenantID, docID id.ID) error {
	query, args, err := psql.Update(documentsTable).
		Set("deletion_mark", true).
		Where(sq.Eq{"id": docID, "tenant_id": tenantID}).
		ToSql()
	if err != nil {
		return apperror.NewInternal(err)
	}

	tag, err := r.source.GetQuerier(ctx).Exec(ctx, query, args...)
	if err != nil {
		return apperror.NewInternal(err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("document", docID)
	}
	return nil
}

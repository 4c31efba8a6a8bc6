package postgres

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"batibill/internal/core/apperror"
	"batibill/internal/core/id"
	"batibill/internal/core/money"
	"batibill/internal/domain/payments"
)

const paymentsTable = "doc_payments"

var _ payments.Repository = (*PaymentRepo)(nil)

// PaymentRepo persists payments in doc_payments. Deletes are soft, so
// the sum of active payments excludes marked rows but history survives.
type PaymentRepo struct {
	source QuerierSource
	cols   []string
}

func NewPaymentRepo(source QuerierSource) *PaymentRepo {
	return &PaymentRepo{
		source: source,
		cols:   ExtractDBColumns[payments.Payment](),
	}
}

func (r *PaymentRepo) Create(ctx context.Context, p *payments.Payment) error {
	query, args, err := psql.Insert(paymentsTable).SetMap(StructToMap(p)).ToSql()
	if err != nil {
		return apperror.NewInternal(err)
	}
	if _, err := r.source.GetQuerier(ctx).Exec(ctx, query, args...); err != nil {
		return apperror.NewInternal(err)
	}
	return nil
}

func (r *PaymentRepo) GetByID(ctx context.Context, tenantID, paymentID id.ID) (*payments.Payment, error) {
	query, args, err := psql.Select(r.cols...).
		From(paymentsTable).
		Where(sq.Eq{"id": paymentID, "tenant_id": tenantID, "deletion_mark": false}).
		ToSql()
	if err != nil {
		return nil, apperror.NewInternal(err)
	}

	var p payments.Payment
	if err := pgxscan.Get(ctx, r.source.GetQuerier(ctx), &p, query, args...); err != nil {
		return nil, mapScanError(err, "payment", paymentID)
	}
	return &p, nil
}

func (r *PaymentRepo) ListByInvoice(ctx context.Context, tenantID, invoiceID id.ID) ([]payments.Payment, error) {
	query, args, err := psql.Select(r.cols...).
		From(paymentsTable).
		Where(sq.Eq{"tenant_id": tenantID, "invoice_id": invoiceID, "deletion_mark": false}).
		OrderBy("payment_date", "created_at").
		ToSql()
	if err != nil {
		return nil, apperror.NewInternal(err)
	}

	var out []payments.Payment
	if err := pgxscan.Select(ctx, r.source.GetQuerier(ctx), &out, query, args...); err != nil {
		return nil, apperror.NewInternal(err)
	}
	return out, nil
}

// SumActiveByInvoice totals the non-deleted payments of an invoice.
// Run it under the invoice row lock: the ledger derives status from
// this figure.
func (r *PaymentRepo) SumActiveByInvoice(ctx context.Context, tenantID, invoiceID id.ID) (money.Money, error) {
	query, args, err := psql.Select("COALESCE(SUM(amount), 0)").
		From(paymentsTable).
		Where(sq.Eq{"tenant_id": tenantID, "invoice_id": invoiceID, "deletion_mark": false}).
		ToSql()
	if err != nil {
		return money.Zero(), apperror.NewInternal(err)
	}

	var sum money.Money
	if err := r.source.GetQuerier(ctx).QueryRow(ctx, query, args...).Scan(&sum); err != nil {
		return money.Zero(), apperror.NewInternal(err)
	}
	return sum, nil
}

func (r *PaymentRepo) SoftDelete(ctx context.Context, tenantID, paymentID id.ID) error {
	query, args, err := psql.Update(paymentsTable).
		Set("deletion_mark", true).
		Where(sq.Eq{"id": paymentID, "tenant_id": tenantID, "deletion_mark": false}).
		ToSql()
	if err != nil {
		return apperror.NewInternal(err)
	}

	tag, err := r.source.GetQuerier(ctx).Exec(ctx, query, args...)
	if err != nil {
		return apperror.NewInternal(err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("payment", paymentID)
	}
	return nil
}

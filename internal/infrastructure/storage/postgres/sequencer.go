package postgres

import (
	"context"
	"fmt"
	"time"

	"batibill/internal/core/id"
	"batibill/internal/core/sequence"
)

// Compile-time check.
var _ sequence.Sequencer = (*Sequencer)(nil)

// QuerierSource resolves the querier for a context: the active
// transaction inside RunInTransaction, the pool outside.
// TxManager implements it; tests substitute a mock.
type QuerierSource interface {
	GetQuerier(ctx context.Context) Querier
}

// Sequencer issues document numbers from per-(tenant, type, period)
// counter rows. The UPSERT locks the counter row, so concurrent creates
// for the same triple serialize on it; the advance commits or rolls
// back with the caller's transaction, which is why Next must run inside
// the transaction that inserts the document.
type Sequencer struct {
	source QuerierSource
}

func NewSequencer(source QuerierSource) *Sequencer {
	return &Sequencer{source: source}
}

// Next advances the counter and returns the formatted number.
func (s *Sequencer) Next(ctx context.Context, tenantID id.ID, docType string, period time.Time) (string, error) {
	year, month := sequence.PeriodKey(period)
	q := s.source.GetQuerier(ctx)

	var num int64
	err := q.QueryRow(ctx, `
		INSERT INTO sys_doc_sequences (tenant_id, doc_type, year, month, current_val)
		VALUES ($1, $2, $3, $4, 1)
		ON CONFLICT (tenant_id, doc_type, year, month)
		DO UPDATE SET current_val = sys_doc_sequences.current_val + 1
		RETURNING current_val
	`, tenantID, docType, year, month).Scan(&num)
	if err != nil {
		return "", fmt.Errorf("next document number: %w", err)
	}

	return sequence.Format(period, num), nil
}

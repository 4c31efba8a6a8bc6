// Package sequence provides domain contracts for document numbering.
// Implementations live in infrastructure layer.
package sequence

import (
	"context"
	"fmt"
	"time"

	"batibill/internal/core/id"
)

// Number format: {4-digit year}-{2-digit month}-{4-digit sequence},
// e.g. "2025-03-0007". This is a compatibility contract with printed
// documents and must never change.
const padWidth = 4

// Sequencer issues unique document numbers per (tenant, document type, period).
// This is the domain contract - implementations live in infrastructure layer.
//
// Next must run inside the transaction that creates the document: the counter
// advance and the document insert commit or roll back together. Aborted
// transactions leave gaps; a number is never reused, even when the document
// that reserved it is later deleted.
type Sequencer interface {
	// Next returns the next number for the given tenant, document type,
	// and period (the calendar month of the document's issue date).
	Next(ctx context.Context, tenantID id.ID, docType string, period time.Time) (string, error)
}

// Format renders a sequence value as a document number for the period.
func Format(period time.Time, seq int64) string {
	return fmt.Sprintf("%04d-%02d-%0*d", period.Year(), int(period.Month()), padWidth, seq)
}

// PeriodKey splits a period into the (year, month) pair that keys the counter row.
func PeriodKey(period time.Time) (int, int) {
	return period.Year(), int(period.Month())
}

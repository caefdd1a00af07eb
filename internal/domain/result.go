package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MatchPair joins one record from each source whose amounts agree within the
// exact tolerance. Amount is the resolution amount, taken from source A.
type MatchPair struct {
	A      TransactionRecord `json:"a"`
	B      TransactionRecord `json:"b"`
	Amount decimal.Decimal   `json:"amount"`
}

// MismatchPair joins two records whose amounts disagree but sit inside the
// relative review window. Difference is always non-negative.
type MismatchPair struct {
	A          TransactionRecord `json:"a"`
	B          TransactionRecord `json:"b"`
	AmountA    decimal.Decimal   `json:"amount_a"`
	AmountB    decimal.Decimal   `json:"amount_b"`
	Difference decimal.Decimal   `json:"difference"`
}

// Summary provides high-level statistics of a reconciliation run.
type Summary struct {
	TotalA           int             `json:"total_a"`
	TotalB           int             `json:"total_b"`
	Matched          int             `json:"matched"`
	AmountMismatch   int             `json:"amount_mismatch"`
	UnmatchedA       int             `json:"unmatched_a"`
	UnmatchedB       int             `json:"unmatched_b"`
	UnparseableA     int             `json:"unparseable_a"`
	UnparseableB     int             `json:"unparseable_b"`
	TotalDiscrepancy decimal.Decimal `json:"total_discrepancy"`
}

// Result is the four-way partition produced by one reconciliation run. Every
// input record appears in exactly one category: matched, amount mismatch, or
// the unmatched list of its source.
type Result struct {
	RunID          uuid.UUID           `json:"run_id"`
	SourceA        string              `json:"source_a"`
	SourceB        string              `json:"source_b"`
	ColumnsA       []string            `json:"columns_a"`
	ColumnsB       []string            `json:"columns_b"`
	StartedAt      time.Time           `json:"started_at"`
	CompletedAt    time.Time           `json:"completed_at"`
	Summary        Summary             `json:"summary"`
	Matched        []MatchPair         `json:"matched"`
	AmountMismatch []MismatchPair      `json:"amount_mismatch"`
	UnmatchedA     []TransactionRecord `json:"unmatched_a"`
	UnmatchedB     []TransactionRecord `json:"unmatched_b"`
}

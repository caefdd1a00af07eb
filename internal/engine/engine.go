// Package engine implements amount-based reconciliation of two ledgers.
package engine

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"ledger-reconciler/internal/domain"
)

// Config holds the matching thresholds.
type Config struct {
	// ExactEpsilon is the exclusive bound on the absolute difference below
	// which two amounts count as equal.
	ExactEpsilon decimal.Decimal

	// RelativeThreshold is the exclusive upper bound of the review window:
	// amounts that differ by less than this fraction of the larger absolute
	// amount are reported as mismatches instead of staying unmatched.
	RelativeThreshold decimal.Decimal
}

// DefaultConfig returns the production thresholds: amounts within one cent
// count as equal, disagreements under five percent go to review.
func DefaultConfig() Config {
	return Config{
		ExactEpsilon:      decimal.NewFromFloat(0.01),
		RelativeThreshold: decimal.NewFromFloat(0.05),
	}
}

// Engine partitions two ledgers by amount. It holds no per-run state and is
// safe for concurrent use.
type Engine struct {
	cfg Config
}

// New returns an engine with the given thresholds. Non-positive thresholds
// fall back to the defaults.
func New(cfg Config) *Engine {
	def := DefaultConfig()
	if cfg.ExactEpsilon.Sign() <= 0 {
		cfg.ExactEpsilon = def.ExactEpsilon
	}
	if cfg.RelativeThreshold.Sign() <= 0 {
		cfg.RelativeThreshold = def.RelativeThreshold
	}
	return &Engine{cfg: cfg}
}

// Reconcile partitions the records of a and b into matched pairs, amount
// mismatches worth review, and per-source unmatched leftovers. Records are
// claimed by ledger position, never by amount value, so duplicated amounts
// pair off one to one. Inputs are not modified.
func (e *Engine) Reconcile(a, b *domain.Ledger) *domain.Result {
	res := &domain.Result{
		RunID:          uuid.New(),
		SourceA:        a.Name,
		SourceB:        b.Name,
		ColumnsA:       a.Columns,
		ColumnsB:       b.Columns,
		StartedAt:      time.Now().UTC(),
		Matched:        []domain.MatchPair{},
		AmountMismatch: []domain.MismatchPair{},
		UnmatchedA:     []domain.TransactionRecord{},
		UnmatchedB:     []domain.TransactionRecord{},
	}

	claimedA := make(map[int]bool, len(a.Records))
	claimedB := make(map[int]bool, len(b.Records))
	index := newAmountIndex(b.Records, e.cfg.ExactEpsilon)

	// Exact pass: the first unclaimed candidate in source order wins. The
	// resolution amount is always source A's.
	for _, ra := range a.Records {
		if !ra.AmountOK {
			continue
		}
		pos, ok := index.firstWithin(ra.Amount, claimedB)
		if !ok {
			continue
		}
		rb := b.Records[pos]
		res.Matched = append(res.Matched, domain.MatchPair{A: ra, B: rb, Amount: ra.Amount})
		claimedA[ra.Index] = true
		claimedB[rb.Index] = true
	}

	// Fuzzy pass: only records no pair has claimed participate. Every
	// remaining candidate inside the window is reported, so one record can
	// head several mismatch pairs while each candidate is consumed once.
	for _, ra := range a.Records {
		if claimedA[ra.Index] || !ra.AmountOK {
			continue
		}
		for _, rb := range b.Records {
			if claimedB[rb.Index] || !rb.AmountOK {
				continue
			}
			diff := ra.Amount.Sub(rb.Amount).Abs()
			if diff.IsZero() {
				continue
			}
			// The denominator is the larger absolute amount: negative
			// amounts compare symmetrically and a zero never divides.
			denom := decimal.Max(ra.Amount.Abs(), rb.Amount.Abs())
			if denom.IsZero() || diff.Div(denom).Cmp(e.cfg.RelativeThreshold) >= 0 {
				continue
			}
			res.AmountMismatch = append(res.AmountMismatch, domain.MismatchPair{
				A:          ra,
				B:          rb,
				AmountA:    ra.Amount,
				AmountB:    rb.Amount,
				Difference: diff,
			})
			claimedA[ra.Index] = true
			claimedB[rb.Index] = true
		}
	}

	for _, ra := range a.Records {
		if !claimedA[ra.Index] {
			res.UnmatchedA = append(res.UnmatchedA, ra)
		}
	}
	for _, rb := range b.Records {
		if !claimedB[rb.Index] {
			res.UnmatchedB = append(res.UnmatchedB, rb)
		}
	}

	res.CompletedAt = time.Now().UTC()
	res.Summary = summarize(a, b, res)
	return res
}

func summarize(a, b *domain.Ledger, res *domain.Result) domain.Summary {
	discrepancy := decimal.Zero
	for _, m := range res.AmountMismatch {
		discrepancy = discrepancy.Add(m.Difference)
	}
	return domain.Summary{
		TotalA:           len(a.Records),
		TotalB:           len(b.Records),
		Matched:          len(res.Matched),
		AmountMismatch:   len(res.AmountMismatch),
		UnmatchedA:       len(res.UnmatchedA),
		UnmatchedB:       len(res.UnmatchedB),
		UnparseableA:     a.Unparseable(),
		UnparseableB:     b.Unparseable(),
		TotalDiscrepancy: discrepancy,
	}
}

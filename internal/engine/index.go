package engine

import (
	"github.com/shopspring/decimal"

	"ledger-reconciler/internal/domain"
)

// amountIndex buckets records by amount so the exact pass probes a handful of
// candidates instead of scanning the whole ledger. Bucket width equals the
// epsilon, so two amounts closer than epsilon land in the same or an adjacent
// bucket.
type amountIndex struct {
	records []domain.TransactionRecord
	epsilon decimal.Decimal
	buckets map[int64][]int
}

func newAmountIndex(records []domain.TransactionRecord, epsilon decimal.Decimal) *amountIndex {
	ix := &amountIndex{
		records: records,
		epsilon: epsilon,
		buckets: make(map[int64][]int, len(records)),
	}
	for i := range records {
		if !records[i].AmountOK {
			continue
		}
		k := ix.key(records[i].Amount)
		ix.buckets[k] = append(ix.buckets[k], i)
	}
	return ix
}

func (ix *amountIndex) key(d decimal.Decimal) int64 {
	return d.Div(ix.epsilon).Floor().IntPart()
}

// firstWithin returns the position of the earliest unclaimed record whose
// amount differs from want by less than epsilon. Claimed records stay in
// their buckets and are skipped on probe. Positions within a bucket ascend,
// so the scan of a bucket stops at its first hit.
func (ix *amountIndex) firstWithin(want decimal.Decimal, claimed map[int]bool) (int, bool) {
	k := ix.key(want)
	best := -1
	for _, kk := range [3]int64{k - 1, k, k + 1} {
		for _, pos := range ix.buckets[kk] {
			if best >= 0 && pos >= best {
				break
			}
			rec := &ix.records[pos]
			if claimed[rec.Index] {
				continue
			}
			if want.Sub(rec.Amount).Abs().Cmp(ix.epsilon) >= 0 {
				continue
			}
			best = pos
			break
		}
	}
	if best < 0 {
		return 0, false
	}
	return best, true
}

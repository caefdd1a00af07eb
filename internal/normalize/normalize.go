// Package normalize turns raw tabular exports into matchable ledgers. Column
// names are canonicalized and amounts coerced; everything else is carried
// verbatim for reporting.
package normalize

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"ledger-reconciler/internal/domain"
)

// amountJunk matches every character that cannot be part of a plain decimal
// number, so "$1,234.50" coerces to 1234.50.
var amountJunk = regexp.MustCompile(`[^0-9.\-]`)

// CoerceAmount extracts a decimal amount from a raw cell. Currency symbols,
// thousands separators and surrounding noise are stripped; whatever remains
// must parse as a decimal number. The second return is false when it does
// not, and the caller keeps the record out of the matching passes.
func CoerceAmount(raw string) (decimal.Decimal, bool) {
	cleaned := amountJunk.ReplaceAllString(raw, "")
	if cleaned == "" {
		return decimal.Decimal{}, false
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}

// NormalizeName canonicalizes a column name: surrounding whitespace trimmed,
// then lower-cased. Idempotent.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Normalize builds a ledger from a raw table. Column names are canonicalized
// in place (first occurrence wins on collision), each row becomes a record
// with its cells preserved in column order, and the amount column is coerced.
// Rows shorter than the header are padded with empty cells.
//
// A table without an amount column cannot be reconciled at all and yields a
// *domain.SchemaError. A row whose amount fails to coerce is kept: the record
// carries AmountOK=false and surfaces among the unmatched.
func Normalize(t *domain.Table, name string) (*domain.Ledger, error) {
	if name == "" {
		name = t.Source
	}

	columns := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		columns[i] = NormalizeName(c)
	}

	amountIdx := -1
	for i, c := range columns {
		if c == domain.FieldAmount {
			amountIdx = i
			break
		}
	}
	if amountIdx < 0 {
		return nil, &domain.SchemaError{Source: name, Column: domain.FieldAmount}
	}

	records := make([]domain.TransactionRecord, 0, len(t.Rows))
	for i, row := range t.Rows {
		fields := make([]domain.Field, len(columns))
		for j, col := range columns {
			var v string
			if j < len(row) {
				v = row[j]
			}
			fields[j] = domain.Field{Name: col, Value: v}
		}
		rec := domain.TransactionRecord{Index: i, Fields: fields}
		rec.Amount, rec.AmountOK = CoerceAmount(fields[amountIdx].Value)
		records = append(records, rec)
	}

	return &domain.Ledger{Name: name, Columns: columns, Records: records}, nil
}

// Package report flattens a reconciliation result into the four tables the
// reviewers work with and renders them as markdown or an xlsx workbook.
package report

import (
	"time"

	"ledger-reconciler/internal/domain"
)

// MatchedRow is one line of the matched view.
type MatchedRow struct {
	Amount         string
	TransactionIDA string
	TransactionIDB string
	Date           string
}

// MismatchRow is one line of the amount-mismatch view.
type MismatchRow struct {
	AmountA        string
	AmountB        string
	Difference     string
	TransactionIDA string
	TransactionIDB string
}

// UnmatchedView is the verbatim table of one source's unclaimed records.
type UnmatchedView struct {
	Source  string
	Columns []string
	Rows    [][]string
}

// Views holds everything a renderer needs: the four tables, their headings
// with the source names folded in, and the run metadata.
type Views struct {
	RunID       string
	SourceA     string
	SourceB     string
	GeneratedAt time.Time
	Summary     domain.Summary

	// TotalDiscrepancy is Summary.TotalDiscrepancy formatted for display.
	TotalDiscrepancy string

	MatchedColumns  []string
	Matched         []MatchedRow
	MismatchColumns []string
	Mismatches      []MismatchRow
	UnmatchedA      UnmatchedView
	UnmatchedB      UnmatchedView
}

// BuildViews flattens a result into the report tables. Amounts are formatted
// with two decimal places; records without a transaction_id or date column
// show "N/A".
func BuildViews(res *domain.Result) *Views {
	v := &Views{
		RunID:            res.RunID.String(),
		SourceA:          res.SourceA,
		SourceB:          res.SourceB,
		GeneratedAt:      res.CompletedAt,
		Summary:          res.Summary,
		TotalDiscrepancy: res.Summary.TotalDiscrepancy.StringFixed(2),
		MatchedColumns: []string{
			"Amount",
			res.SourceA + " Transaction ID",
			res.SourceB + " Transaction ID",
			"Date",
		},
		MismatchColumns: []string{
			res.SourceA + " Amount",
			res.SourceB + " Amount",
			"Difference",
			res.SourceA + " Transaction ID",
			res.SourceB + " Transaction ID",
		},
	}

	for _, m := range res.Matched {
		v.Matched = append(v.Matched, MatchedRow{
			Amount:         m.Amount.StringFixed(2),
			TransactionIDA: m.A.TransactionID(),
			TransactionIDB: m.B.TransactionID(),
			Date:           m.A.Date(),
		})
	}

	for _, m := range res.AmountMismatch {
		v.Mismatches = append(v.Mismatches, MismatchRow{
			AmountA:        m.AmountA.StringFixed(2),
			AmountB:        m.AmountB.StringFixed(2),
			Difference:     m.Difference.StringFixed(2),
			TransactionIDA: m.A.TransactionID(),
			TransactionIDB: m.B.TransactionID(),
		})
	}

	v.UnmatchedA = unmatchedView(res.SourceA, res.ColumnsA, res.UnmatchedA)
	v.UnmatchedB = unmatchedView(res.SourceB, res.ColumnsB, res.UnmatchedB)
	return v
}

func unmatchedView(source string, columns []string, records []domain.TransactionRecord) UnmatchedView {
	view := UnmatchedView{Source: source, Columns: columns}
	for _, rec := range records {
		row := make([]string, len(columns))
		for i, col := range columns {
			if i < len(rec.Fields) && rec.Fields[i].Name == col {
				row[i] = rec.Fields[i].Value
			} else {
				row[i] = rec.GetOr(col, "")
			}
		}
		view.Rows = append(view.Rows, row)
	}
	return view
}

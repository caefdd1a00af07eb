package report

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"ledger-reconciler/internal/domain"
)

// ExportWorkbook writes the report as an xlsx workbook with one sheet per
// view: Matched, Mismatches, and one unmatched sheet per source.
func ExportWorkbook(w io.Writer, res *domain.Result) error {
	v := BuildViews(res)

	f := excelize.NewFile()
	defer f.Close()

	sheets := []struct {
		name    string
		columns []string
		rows    [][]string
	}{
		{"Matched", v.MatchedColumns, matchedCells(v.Matched)},
		{"Mismatches", v.MismatchColumns, mismatchCells(v.Mismatches)},
		{sheetName("Unmatched " + v.SourceA), v.UnmatchedA.Columns, v.UnmatchedA.Rows},
		{sheetName("Unmatched " + v.SourceB), v.UnmatchedB.Columns, v.UnmatchedB.Rows},
	}

	for _, s := range sheets {
		if _, err := f.NewSheet(s.name); err != nil {
			return fmt.Errorf("failed to create sheet %q: %w", s.name, err)
		}
		if err := writeRow(f, s.name, 1, s.columns); err != nil {
			return err
		}
		for i, row := range s.rows {
			if err := writeRow(f, s.name, i+2, row); err != nil {
				return err
			}
		}
	}

	// The default sheet is replaced by the report sheets.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to drop default sheet: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// Filename returns the workbook download name for a report generated at t.
func Filename(t time.Time) string {
	return "reconciliation_report_" + t.Format("20060102_150405") + ".xlsx"
}

func writeRow(f *excelize.File, sheet string, row int, cells []string) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("failed to address row %d on %q: %w", row, sheet, err)
	}
	values := make([]interface{}, len(cells))
	for i, c := range cells {
		values[i] = c
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write row %d on %q: %w", row, sheet, err)
	}
	return nil
}

func matchedCells(rows []MatchedRow) [][]string {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{r.Amount, r.TransactionIDA, r.TransactionIDB, r.Date})
	}
	return out
}

func mismatchCells(rows []MismatchRow) [][]string {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{r.AmountA, r.AmountB, r.Difference, r.TransactionIDA, r.TransactionIDB})
	}
	return out
}

// sheetName trims a name to the 31 character sheet limit.
func sheetName(name string) string {
	if len(name) > 31 {
		return name[:31]
	}
	return name
}

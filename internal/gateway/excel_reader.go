package gateway

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"ledger-reconciler/internal/domain"
)

// ExcelTableReader reads a raw transaction table from the first sheet of an
// xlsx workbook. The first row is the header; every further row is carried
// verbatim.
type ExcelTableReader struct{}

// NewExcelTableReader creates a new reader instance.
func NewExcelTableReader() *ExcelTableReader {
	return &ExcelTableReader{}
}

// ReadTable reads and parses the workbook at path.
func (r *ExcelTableReader) ReadTable(ctx context.Context, path string) (*domain.Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open table file %s: %w", path, err)
	}
	defer file.Close()

	return r.Read(file, filepath.Base(path))
}

// Read parses workbook data from rd into a raw table named source.
func (r *ExcelTableReader) Read(rd io.Reader, source string) (*domain.Table, error) {
	f, err := excelize.OpenReader(rd)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", source, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook %s has no sheets", source)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q from %s: %w", sheets[0], source, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("failed to read header from %s: sheet %q is empty", source, sheets[0])
	}

	header := rows[0]
	t := &domain.Table{Source: source, Columns: header, Rows: make([][]string, 0, len(rows)-1)}
	for _, row := range rows[1:] {
		// GetRows trims trailing empty cells, so rows come back ragged. Pad
		// to the header width; cells beyond it are dropped.
		padded := make([]string, len(header))
		copy(padded, row)
		t.Rows = append(t.Rows, padded)
	}
	return t, nil
}

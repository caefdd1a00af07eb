package gateway

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"ledger-reconciler/internal/domain"
)

// TableLoader picks a reader by file extension. It is the production
// TableRepository implementation; CSV and xlsx exports are supported.
type TableLoader struct {
	csv   *CSVTableReader
	excel *ExcelTableReader
}

// NewTableLoader creates a loader with both format readers wired in.
func NewTableLoader() *TableLoader {
	return &TableLoader{
		csv:   NewCSVTableReader(),
		excel: NewExcelTableReader(),
	}
}

// ReadTable reads the file at path with the reader its extension calls for.
func (l *TableLoader) ReadTable(ctx context.Context, path string) (*domain.Table, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		return l.csv.ReadTable(ctx, path)
	case ".xlsx":
		return l.excel.ReadTable(ctx, path)
	default:
		return nil, fmt.Errorf("unsupported table format %q (want .csv or .xlsx)", ext)
	}
}

// Read parses already-open data, as with an uploaded file, dispatching on the
// extension of filename.
func (l *TableLoader) Read(rd io.Reader, filename string) (*domain.Table, error) {
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".csv":
		return l.csv.Read(rd, filepath.Base(filename))
	case ".xlsx":
		return l.excel.Read(rd, filepath.Base(filename))
	default:
		return nil, fmt.Errorf("unsupported table format %q (want .csv or .xlsx)", ext)
	}
}

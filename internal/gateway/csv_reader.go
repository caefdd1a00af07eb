package gateway

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"ledger-reconciler/internal/domain"
)

// CSVTableReader reads a raw transaction table from a CSV export. The first
// row is the header; every further row is carried verbatim.
type CSVTableReader struct{}

// NewCSVTableReader creates a new reader instance.
func NewCSVTableReader() *CSVTableReader {
	return &CSVTableReader{}
}

// ReadTable reads and parses the CSV file at path.
func (r *CSVTableReader) ReadTable(ctx context.Context, path string) (*domain.Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open table file %s: %w", path, err)
	}
	defer file.Close()

	return r.Read(file, filepath.Base(path))
}

// Read parses CSV data from rd into a raw table named source. Every row must
// have as many fields as the header; encoding/csv enforces that.
func (r *CSVTableReader) Read(rd io.Reader, source string) (*domain.Table, error) {
	reader := csv.NewReader(rd)

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header from %s: %w", source, err)
	}

	t := &domain.Table{Source: source, Columns: header}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading record from %s: %w", source, err)
		}
		t.Rows = append(t.Rows, record)
	}
	return t, nil
}

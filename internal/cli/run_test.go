package cli

import (
	"context"
	"encoding/json"
	"flag"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/subcommands"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"ledger-reconciler/internal/domain"
)

func sampleResult() *domain.Result {
	rec := domain.TransactionRecord{
		Index: 0,
		Fields: []domain.Field{
			{Name: domain.FieldTransactionID, Value: "OP-1"},
			{Name: domain.FieldAmount, Value: "100.00"},
		},
		Amount:   decimal.RequireFromString("100.00"),
		AmountOK: true,
	}
	return &domain.Result{
		RunID:       uuid.New(),
		SourceA:     "Opera",
		SourceB:     "POS",
		ColumnsA:    []string{domain.FieldTransactionID, domain.FieldAmount},
		ColumnsB:    []string{domain.FieldTransactionID, domain.FieldAmount},
		StartedAt:   time.Now(),
		CompletedAt: time.Now(),
		Summary: domain.Summary{
			TotalA:     1,
			TotalB:     0,
			UnmatchedA: 1,
		},
		Matched:        []domain.MatchPair{},
		AmountMismatch: []domain.MismatchPair{},
		UnmatchedA:     []domain.TransactionRecord{rec},
		UnmatchedB:     []domain.TransactionRecord{},
	}
}

func TestRunCmd_Write(t *testing.T) {
	t.Run("text format renders the markdown report", func(t *testing.T) {
		out := filepath.Join(t.TempDir(), "report.md")
		p := &runCmd{format: "text", output: out}

		require.NoError(t, p.write(sampleResult()))

		data, err := os.ReadFile(out)
		require.NoError(t, err)
		assert.Contains(t, string(data), "# Reconciliation Report")
		assert.Contains(t, string(data), "Opera")
	})

	t.Run("json format writes the full result", func(t *testing.T) {
		out := filepath.Join(t.TempDir(), "report.json")
		p := &runCmd{format: "json", output: out}

		require.NoError(t, p.write(sampleResult()))

		data, err := os.ReadFile(out)
		require.NoError(t, err)

		var decoded map[string]interface{}
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.Equal(t, "Opera", decoded["source_a"])
	})

	t.Run("xlsx format writes a workbook", func(t *testing.T) {
		out := filepath.Join(t.TempDir(), "report.xlsx")
		p := &runCmd{format: "xlsx", output: out}

		require.NoError(t, p.write(sampleResult()))

		f, err := excelize.OpenFile(out)
		require.NoError(t, err)
		defer f.Close()
		assert.Contains(t, f.GetSheetList(), "Unmatched Opera")
	})

	t.Run("xlsx format requires an output file", func(t *testing.T) {
		p := &runCmd{format: "xlsx"}

		err := p.write(sampleResult())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "-o")
	})

	t.Run("unknown format is rejected", func(t *testing.T) {
		p := &runCmd{format: "pdf"}

		err := p.write(sampleResult())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown format")
	})
}

func TestRunCmd_Execute(t *testing.T) {
	dir := t.TempDir()
	pathA := filepath.Join(dir, "opera.csv")
	pathB := filepath.Join(dir, "pos.csv")
	out := filepath.Join(dir, "result.json")

	require.NoError(t, os.WriteFile(pathA, []byte("transaction_id,amount\nOP-1,100.00\nOP-2,52.00\n"), 0o644))
	require.NoError(t, os.WriteFile(pathB, []byte("transaction_id,amount\nPS-1,100.00\nPS-2,50.00\n"), 0o644))

	p := &runCmd{
		pathA:  pathA,
		pathB:  pathB,
		nameA:  "Opera",
		nameB:  "POS",
		format: "json",
		output: out,
	}

	status := p.Execute(context.Background(), flag.NewFlagSet("run", flag.ContinueOnError))

	require.Equal(t, subcommands.ExitSuccess, status)

	data, err := os.ReadFile(out)
	require.NoError(t, err)

	var decoded struct {
		Summary struct {
			Matched        int `json:"matched"`
			AmountMismatch int `json:"amount_mismatch"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, 1, decoded.Summary.Matched)
	assert.Equal(t, 1, decoded.Summary.AmountMismatch)
}

func TestRunCmd_Execute_MissingInputs(t *testing.T) {
	p := &runCmd{}

	status := p.Execute(context.Background(), flag.NewFlagSet("run", flag.ContinueOnError))

	assert.Equal(t, subcommands.ExitUsageError, status)
}

func TestLogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, logLevel("debug"))
	assert.Equal(t, slog.LevelWarn, logLevel("WARN"))
	assert.Equal(t, slog.LevelError, logLevel("error"))
	assert.Equal(t, slog.LevelInfo, logLevel("info"))
	assert.Equal(t, slog.LevelInfo, logLevel("unknown"))
}

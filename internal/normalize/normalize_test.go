package normalize

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ledger-reconciler/internal/domain"
)

func TestCoerceAmount(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
		ok   bool
	}{
		{"plain number", "1234.50", "1234.50", true},
		{"currency symbol and separators", "$1,234.50", "1234.50", true},
		{"negative", "-45.00", "-45.00", true},
		{"surrounding whitespace", "  99.99 ", "99.99", true},
		{"currency suffix", "12.00 EUR", "12.00", true},
		{"integer", "100", "100", true},
		{"leading dot", ".5", "0.5", true},
		{"parentheses strip without negating", "(45.00)", "45.00", true},
		{"empty", "", "", false},
		{"no digits", "n/a", "", false},
		{"multiple dots", "1.2.3", "", false},
		{"embedded minus", "12-34", "", false},
		{"lone minus", "-", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := CoerceAmount(tt.raw)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.True(t, got.Equal(decimal.RequireFromString(tt.want)),
					"want %s, got %s", tt.want, got)
			}
		})
	}
}

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "amount", NormalizeName("  Amount "))
	assert.Equal(t, "transaction_id", NormalizeName("Transaction_ID"))

	// Already-normalized names are fixpoints.
	for _, name := range []string{"amount", "transaction_id", "date", "room number"} {
		assert.Equal(t, name, NormalizeName(name))
	}
}

func TestNormalize(t *testing.T) {
	table := &domain.Table{
		Source:  "opera.csv",
		Columns: []string{"Transaction_ID", " Amount ", "Date"},
		Rows: [][]string{
			{"OP-1001", "$150.00", "2025-09-01"},
			{"OP-1002", "not a number", "2025-09-01"},
			{"OP-1003", "42.50"},
		},
	}

	ledger, err := Normalize(table, "Opera")
	require.NoError(t, err)

	assert.Equal(t, "Opera", ledger.Name)
	assert.Equal(t, []string{"transaction_id", "amount", "date"}, ledger.Columns)
	require.Len(t, ledger.Records, 3)

	first := ledger.Records[0]
	assert.Equal(t, 0, first.Index)
	assert.Equal(t, "OP-1001", first.TransactionID())
	assert.True(t, first.AmountOK)
	assert.True(t, first.Amount.Equal(decimal.RequireFromString("150.00")))
	// The cell stays verbatim even though the amount was coerced.
	v, ok := first.Get("amount")
	assert.True(t, ok)
	assert.Equal(t, "$150.00", v)

	second := ledger.Records[1]
	assert.Equal(t, 1, second.Index)
	assert.False(t, second.AmountOK)

	// The short row is padded to the header width.
	third := ledger.Records[2]
	v, ok = third.Get("date")
	assert.True(t, ok)
	assert.Equal(t, "", v)

	assert.Equal(t, 1, ledger.Unparseable())
}

func TestNormalize_MissingAmountColumn(t *testing.T) {
	table := &domain.Table{
		Source:  "opera.csv",
		Columns: []string{"Transaction_ID", "Date"},
		Rows:    [][]string{{"OP-1001", "2025-09-01"}},
	}

	ledger, err := Normalize(table, "Opera")

	require.Error(t, err)
	assert.Nil(t, ledger)

	var schemaErr *domain.SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, "Opera", schemaErr.Source)
	assert.Equal(t, "amount", schemaErr.Column)
}

func TestNormalize_NameFallsBackToSource(t *testing.T) {
	table := &domain.Table{
		Source:  "pos.csv",
		Columns: []string{"amount"},
	}

	ledger, err := Normalize(table, "")
	require.NoError(t, err)
	assert.Equal(t, "pos.csv", ledger.Name)
}

func TestNormalize_DuplicateColumnFirstWins(t *testing.T) {
	table := &domain.Table{
		Source:  "opera.csv",
		Columns: []string{"Amount", "amount "},
		Rows:    [][]string{{"100.00", "999.00"}},
	}

	ledger, err := Normalize(table, "Opera")
	require.NoError(t, err)

	rec := ledger.Records[0]
	assert.True(t, rec.Amount.Equal(decimal.RequireFromString("100.00")))
	v, _ := rec.Get("amount")
	assert.Equal(t, "100.00", v)
}

func TestNormalize_EmptyTable(t *testing.T) {
	table := &domain.Table{
		Source:  "opera.csv",
		Columns: []string{"Transaction_ID", "Amount"},
	}

	ledger, err := Normalize(table, "Opera")
	require.NoError(t, err)
	assert.Empty(t, ledger.Records)
}

func TestNormalize_Idempotent(t *testing.T) {
	table := &domain.Table{
		Source:  "opera.csv",
		Columns: []string{"Transaction_ID", " Amount "},
		Rows: [][]string{
			{"OP-1001", "$150.00"},
			{"OP-1002", "oops"},
		},
	}

	once, err := Normalize(table, "Opera")
	require.NoError(t, err)

	// Feed the normalized ledger back through as a raw table; nothing may
	// change.
	roundTrip := &domain.Table{Source: "opera.csv", Columns: once.Columns}
	for _, rec := range once.Records {
		row := make([]string, len(rec.Fields))
		for i, f := range rec.Fields {
			row[i] = f.Value
		}
		roundTrip.Rows = append(roundTrip.Rows, row)
	}

	twice, err := Normalize(roundTrip, once.Name)
	require.NoError(t, err)
	assert.Equal(t, once, twice)
}

package domain

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactionRecord_Get(t *testing.T) {
	rec := TransactionRecord{
		Fields: []Field{
			{Name: "amount", Value: "100.00"},
			{Name: "amount", Value: "999.00"},
			{Name: "date", Value: "2025-09-01"},
		},
	}

	v, ok := rec.Get("date")
	assert.True(t, ok)
	assert.Equal(t, "2025-09-01", v)

	// First occurrence wins on duplicate column names.
	v, ok = rec.Get("amount")
	assert.True(t, ok)
	assert.Equal(t, "100.00", v)

	_, ok = rec.Get("missing")
	assert.False(t, ok)
}

func TestTransactionRecord_Fallbacks(t *testing.T) {
	rec := TransactionRecord{
		Fields: []Field{{Name: "amount", Value: "100.00"}},
	}

	assert.Equal(t, "N/A", rec.TransactionID())
	assert.Equal(t, "N/A", rec.Date())
	assert.Equal(t, "fallback", rec.GetOr("missing", "fallback"))
}

func TestTransactionRecord_MarshalJSON(t *testing.T) {
	rec := TransactionRecord{
		Index: 3,
		Fields: []Field{
			{Name: "zeta", Value: "1"},
			{Name: "amount", Value: "$100.00"},
			{Name: "alpha", Value: "2"},
		},
		Amount:   decimal.RequireFromString("100.00"),
		AmountOK: true,
	}

	data, err := json.Marshal(rec)
	require.NoError(t, err)
	assert.JSONEq(t, `{"index":3,"amount":"100","fields":{"zeta":"1","amount":"$100.00","alpha":"2"}}`, string(data))

	// Source column order survives marshalling.
	s := string(data)
	assert.Less(t, strings.Index(s, `"zeta"`), strings.Index(s, `"$100.00"`))
	assert.Less(t, strings.Index(s, `"$100.00"`), strings.Index(s, `"alpha"`))
}

func TestTransactionRecord_MarshalJSON_UnparseableAmount(t *testing.T) {
	rec := TransactionRecord{
		Index:  0,
		Fields: []Field{{Name: "amount", Value: "n/a"}},
	}

	data, err := json.Marshal(rec)
	require.NoError(t, err)
	assert.JSONEq(t, `{"index":0,"amount":null,"fields":{"amount":"n/a"}}`, string(data))
}

func TestLedger_Unparseable(t *testing.T) {
	l := Ledger{
		Records: []TransactionRecord{
			{Index: 0, AmountOK: true},
			{Index: 1, AmountOK: false},
			{Index: 2, AmountOK: false},
		},
	}

	assert.Equal(t, 2, l.Unparseable())
}

func TestSchemaError_Message(t *testing.T) {
	err := &SchemaError{Source: "Opera", Column: "amount"}
	assert.Equal(t, `source "Opera": required column "amount" not found`, err.Error())
}

package domain

import (
	"bytes"
	"encoding/json"

	"github.com/shopspring/decimal"
)

// FieldTransactionID and FieldDate are the conventional column names used by
// the report views. They are looked up after normalization, so any casing in
// the source header resolves to these.
const (
	FieldAmount        = "amount"
	FieldTransactionID = "transaction_id"
	FieldDate          = "date"
)

// MissingValue is reported when a record has no value for a requested field.
const MissingValue = "N/A"

// Field is a single cell of a source row: the normalized column name and the
// verbatim value from the export.
type Field struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// TransactionRecord is one row of a normalized ledger. The source cells are
// preserved in column order; Amount carries the coerced value the matching
// passes compare. Index is the record's position within its ledger and is the
// only identity used to claim a record, so rows with duplicate amounts stay
// distinct.
type TransactionRecord struct {
	Index    int
	Fields   []Field
	Amount   decimal.Decimal
	AmountOK bool
}

// Get returns the verbatim value of the named field. The first field wins
// when a source header contained duplicate column names.
func (r TransactionRecord) Get(name string) (string, bool) {
	for _, f := range r.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return "", false
}

// GetOr returns the verbatim value of the named field, or fallback when the
// record has no such field.
func (r TransactionRecord) GetOr(name, fallback string) string {
	if v, ok := r.Get(name); ok {
		return v
	}
	return fallback
}

// TransactionID returns the record's transaction_id value, or "N/A".
func (r TransactionRecord) TransactionID() string {
	return r.GetOr(FieldTransactionID, MissingValue)
}

// Date returns the record's date value, or "N/A".
func (r TransactionRecord) Date() string {
	return r.GetOr(FieldDate, MissingValue)
}

// MarshalJSON emits the record with its fields as a nested object in source
// column order. encoding/json cannot keep map keys ordered, so the fields
// object is assembled by hand.
func (r TransactionRecord) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"index":`)
	idx, err := json.Marshal(r.Index)
	if err != nil {
		return nil, err
	}
	buf.Write(idx)

	buf.WriteString(`,"amount":`)
	if r.AmountOK {
		amt, err := json.Marshal(r.Amount)
		if err != nil {
			return nil, err
		}
		buf.Write(amt)
	} else {
		buf.WriteString("null")
	}

	buf.WriteString(`,"fields":{`)
	for i, f := range r.Fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(f.Name)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(f.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteString("}}")
	return buf.Bytes(), nil
}

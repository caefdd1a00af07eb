package domain

// Ledger is one normalized transaction source, ready for matching.
type Ledger struct {
	Name    string              `json:"name"`
	Columns []string            `json:"columns"`
	Records []TransactionRecord `json:"records"`
}

// Unparseable counts the records whose amount could not be coerced. They take
// no part in matching and surface in the unmatched list of their source.
func (l *Ledger) Unparseable() int {
	n := 0
	for _, r := range l.Records {
		if !r.AmountOK {
			n++
		}
	}
	return n
}

package domain

// Table is a raw tabular export before normalization: the header exactly as
// read from the source and every row verbatim. Column order is preserved.
type Table struct {
	Source  string     `json:"source"`
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

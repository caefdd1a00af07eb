package domain

import "fmt"

// SchemaError reports a source table whose header lacks a required column.
// It aborts the run: without an amount column nothing can be reconciled.
type SchemaError struct {
	Source string
	Column string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("source %q: required column %q not found", e.Source, e.Column)
}

// Package scanner adapts query results to a driver-neutral row stream that
// the codecs consume.
package scanner

// Rows is a forward-only stream of converted rows.
type Rows interface {
	Next() bool
	ScanRow() ([]any, error)
	Columns() ([]Column, error)
	Driver() string
	Err() error
}

// Metadata is passed to custom type mappers.
type Metadata struct {
	RowID  int
	Driver string
	Column Column
}

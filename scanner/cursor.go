package scanner

import (
	"github.com/pkg/errors"

	"github.com/go-data-exporter/adomd"
)

// Driver is the name reported by rows read from an adomd cursor.
const Driver = "adomd"

type cursorRowsScanner struct {
	cursor  *adomd.Cursor
	columns []Column
	err     error
}

// FromCursor wraps the active tabular result of cursor. Rows already consumed
// from the cursor are not replayed.
func FromCursor(cursor *adomd.Cursor) Rows {
	return &cursorRowsScanner{cursor: cursor}
}

// Next advances the cursor. Errors are reported by Err.
func (s *cursorRowsScanner) Next() bool {
	if s.err != nil {
		return false
	}
	ok, err := s.cursor.Next()
	if err != nil {
		s.err = err
		return false
	}
	return ok
}

// ScanRow returns the converted values of the current row.
func (s *cursorRowsScanner) ScanRow() ([]any, error) {
	return s.cursor.FetchOneTuple()
}

// Columns returns the column descriptions of the executed query.
func (s *cursorRowsScanner) Columns() ([]Column, error) {
	if s.columns != nil {
		return s.columns, nil
	}
	desc := s.cursor.Description()
	if desc == nil && s.cursor.IsClosed() {
		return nil, errors.Wrap(adomd.ErrClosed, "scanner: cursor has no tabular result")
	}
	s.columns = make([]Column, len(desc))
	for i, d := range desc {
		s.columns[i] = &cursorColumn{desc: d}
	}
	return s.columns, nil
}

func (s *cursorRowsScanner) Driver() string {
	return Driver
}

func (s *cursorRowsScanner) Err() error {
	return s.err
}

package hive

import (
	"context"
	"strings"

	"github.com/beltran/gohive"
	"github.com/pkg/errors"

	"github.com/go-data-exporter/adomd/engine"
)

type column struct {
	name     string
	hiveType string
}

// parseDescription turns gohive's [name, type] pairs into columns. Table
// qualifiers are dropped from names and the "_TYPE" suffix from types.
func parseDescription(desc [][]string) []column {
	var cols []column
	for _, c := range desc {
		if len(c) == 0 {
			continue
		}
		var col column
		col.name = c[0]
		if len(c) > 1 {
			col.hiveType = c[1]
		}
		if _, name, ok := strings.Cut(col.name, "."); ok {
			col.name = name
		}
		col.hiveType = strings.TrimSuffix(col.hiveType, "_TYPE")
		cols = append(cols, col)
	}
	return cols
}

// Reader reads rows from a gohive cursor.
type Reader struct {
	ctx     context.Context
	cursor  *gohive.Cursor
	columns []column
	row     []any
	ptrs    []any
	closed  bool
}

func (r *Reader) Read() (bool, error) {
	if r.closed {
		return false, errors.New("hive: reader is closed")
	}
	if !r.cursor.HasMore(r.ctx) {
		if err := r.cursor.Error(); err != nil {
			return false, errors.Wrap(err, "hive: fetch")
		}
		return false, nil
	}
	if r.row == nil {
		r.row = make([]any, len(r.columns))
		r.ptrs = make([]any, len(r.columns))
	}
	for i := range r.row {
		r.row[i] = nil
		r.ptrs[i] = &r.row[i]
	}
	r.cursor.FetchOne(r.ctx, r.ptrs...)
	if err := r.cursor.Error(); err != nil {
		return false, errors.Wrap(err, "hive: fetch")
	}
	return true, nil
}

func (r *Reader) FieldCount() (int, error) { return len(r.columns), nil }

func (r *Reader) Name(i int) (string, error) {
	if i < 0 || i >= len(r.columns) {
		return "", errors.Errorf("hive: column %d out of range", i)
	}
	return r.columns[i].name, nil
}

func (r *Reader) FieldTypeID(i int) (string, error) {
	if i < 0 || i >= len(r.columns) {
		return "", errors.Errorf("hive: column %d out of range", i)
	}
	return r.columns[i].hiveType, nil
}

func (r *Reader) Value(i int) (engine.Value, error) {
	if r.row == nil {
		return engine.Value{}, errors.New("hive: no current row")
	}
	if i < 0 || i >= len(r.row) {
		return engine.Value{}, errors.Errorf("hive: column %d out of range", i)
	}
	return engine.ValueOf(r.row[i]), nil
}

func (r *Reader) IsClosed() bool { return r.closed }

func (r *Reader) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	r.cursor.Close()
	return r.cursor.Error()
}

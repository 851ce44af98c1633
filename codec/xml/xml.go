// Package xmlcodec writes rows as an XML document with one <row> element per
// row and one child element per non-NULL column. Column names are escaped
// with adomd.EncodeName.
package xmlcodec

import (
	"bufio"
	"io"
	"reflect"

	"github.com/beevik/etree"
	"github.com/pkg/errors"

	"github.com/go-data-exporter/adomd"
	"github.com/go-data-exporter/adomd/scanner"
	"github.com/go-data-exporter/adomd/tostring"
)

const prolog = `<?xml version="1.0" encoding="UTF-8"?>` + "\n<data>\n"

type xmlCodec struct {
	customMapper     map[reflect.Type]func(any, scanner.Metadata) tostring.String
	preProcessorFunc func(rowID int, row []string) ([]string, bool)
	limit            int
}

type Option func(*xmlCodec)

func New(opts ...Option) *xmlCodec {
	c := &xmlCodec{
		customMapper: make(map[reflect.Type]func(any, scanner.Metadata) tostring.String),
		limit:        -1,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithCustomType renders values of type T with fn.
func WithCustomType[T any](fn func(v T, metadata scanner.Metadata) tostring.String) Option {
	return func(c *xmlCodec) {
		var zero T
		c.customMapper[reflect.TypeOf(zero)] = func(v any, metadata scanner.Metadata) tostring.String {
			return fn(v.(T), metadata)
		}
	}
}

// WithPreProcessorFunc sets a function that may rewrite a rendered row or
// drop it by returning false.
func WithPreProcessorFunc(fn func(rowID int, row []string) ([]string, bool)) Option {
	return func(c *xmlCodec) {
		c.preProcessorFunc = fn
	}
}

// WithLimit caps the number of written rows. Negative means unlimited.
func WithLimit(limit int) Option {
	return func(c *xmlCodec) {
		c.limit = limit
	}
}

// Write writes nothing when no row is written.
func (c *xmlCodec) Write(rows scanner.Rows, writer io.Writer) (err error) {
	if c.limit == 0 {
		return nil
	}
	cols, err := rows.Columns()
	if err != nil {
		return err
	}
	tags := make([]string, len(cols))
	for i, col := range cols {
		tags[i] = adomd.EncodeName(col.Name())
	}

	w := bufio.NewWriter(writer)
	written := 0
	defer func() {
		if written > 0 {
			w.WriteString("</data>\n")
		}
		if ferr := w.Flush(); err == nil {
			err = ferr
		}
	}()

	rowID := 0
	for rows.Next() {
		rowID++
		values, err := rows.ScanRow()
		if err != nil {
			return err
		}
		row := make([]string, len(cols))
		null := make([]bool, len(cols))
		for i, col := range cols {
			s := c.toString(values[i], scanner.Metadata{RowID: rowID, Driver: rows.Driver(), Column: col})
			row[i], null[i] = s.String, s.IsNULL
		}
		if c.preProcessorFunc != nil {
			var keep bool
			if row, keep = c.preProcessorFunc(rowID, row); !keep {
				continue
			}
		}

		doc := etree.NewDocument()
		el := doc.CreateElement("row")
		for i, tag := range tags {
			if null[i] || i >= len(row) {
				continue
			}
			el.CreateElement(tag).SetText(row[i])
		}
		if written == 0 {
			w.WriteString(prolog)
		}
		if _, err := doc.WriteTo(w); err != nil {
			return errors.Wrapf(err, "write row %d", rowID)
		}
		w.WriteByte('\n')
		written++
		if c.limit > 0 && written >= c.limit {
			break
		}
	}
	return rows.Err()
}

func (c *xmlCodec) toString(v any, metadata scanner.Metadata) tostring.String {
	if v == nil {
		return tostring.String{IsNULL: true}
	}
	if fn, ok := c.customMapper[reflect.TypeOf(v)]; ok {
		return fn(v, metadata)
	}
	return tostring.ToString(v)
}

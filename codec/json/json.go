// Package jsoncodec writes rows as a JSON array of objects or as newline
// delimited JSON. Objects are keyed by column name; when names repeat, the
// last column wins.
package jsoncodec

import (
	"bufio"
	"io"
	"reflect"

	jsoniter "github.com/json-iterator/go"

	"github.com/go-data-exporter/adomd/scanner"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Option func(*jsonCodec)

type jsonCodec struct {
	customMapper     map[reflect.Type]func(any, scanner.Metadata) any
	preProcessorFunc func(rowID int, row map[string]any) (map[string]any, bool)
	newlineDelimited bool
	limit            int
}

func New(opts ...Option) *jsonCodec {
	c := &jsonCodec{
		customMapper: make(map[reflect.Type]func(any, scanner.Metadata) any),
		limit:        -1,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithPreProcessorFunc sets a function that may rewrite a row or drop it by
// returning false.
func WithPreProcessorFunc(fn func(rowID int, row map[string]any) (map[string]any, bool)) Option {
	return func(c *jsonCodec) {
		c.preProcessorFunc = fn
	}
}

// WithNewlineDelimited writes one object per line instead of an array.
func WithNewlineDelimited(isNewlineDelimited bool) Option {
	return func(c *jsonCodec) {
		c.newlineDelimited = isNewlineDelimited
	}
}

// WithCustomType replaces values of type T before encoding.
func WithCustomType[T any](fn func(v T, metadata scanner.Metadata) any) Option {
	return func(c *jsonCodec) {
		var zero T
		c.customMapper[reflect.TypeOf(zero)] = func(v any, metadata scanner.Metadata) any {
			return fn(v.(T), metadata)
		}
	}
}

// WithLimit caps the number of written rows. Negative means unlimited.
func WithLimit(limit int) Option {
	return func(c *jsonCodec) {
		c.limit = limit
	}
}

func (c *jsonCodec) Write(rows scanner.Rows, writer io.Writer) error {
	cols, err := rows.Columns()
	if err != nil {
		return err
	}
	w := bufio.NewWriter(writer)
	written := 0
	if c.limit != 0 {
		rowID := 0
		for rows.Next() {
			rowID++
			values, err := rows.ScanRow()
			if err != nil {
				return err
			}
			row := make(map[string]any, len(cols))
			for i, col := range cols {
				v := values[i]
				if fn, ok := c.customMapper[reflect.TypeOf(v)]; ok {
					v = fn(v, scanner.Metadata{RowID: rowID, Driver: rows.Driver(), Column: col})
				}
				row[col.Name()] = v
			}
			if c.preProcessorFunc != nil {
				var keep bool
				if row, keep = c.preProcessorFunc(rowID, row); !keep {
					continue
				}
			}
			data, err := json.Marshal(row)
			if err != nil {
				return err
			}
			switch {
			case c.newlineDelimited:
				w.Write(data)
				w.WriteByte('\n')
			case written == 0:
				w.WriteString("[\n")
				w.Write(data)
			default:
				w.WriteString(",\n")
				w.Write(data)
			}
			written++
			if c.limit > 0 && written >= c.limit {
				break
			}
		}
		if err := rows.Err(); err != nil {
			return err
		}
	}
	if !c.newlineDelimited {
		if written == 0 {
			w.WriteString("[]\n")
		} else {
			w.WriteString("\n]\n")
		}
	}
	return w.Flush()
}

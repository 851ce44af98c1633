// Package csvcodec writes rows as CSV with an optional header.
package csvcodec

import (
	"encoding/csv"
	"io"
	"reflect"

	"github.com/pkg/errors"

	"github.com/go-data-exporter/adomd/scanner"
	"github.com/go-data-exporter/adomd/tostring"
)

// ErrHeaderLength is returned when a custom header does not match the
// number of result columns.
var ErrHeaderLength = errors.New("csvcodec: invalid header length")

type csvCodec struct {
	customMapper     map[reflect.Type]func(any, scanner.Metadata) string
	preProcessorFunc func(row []string) ([]string, bool)
	delimiter        rune
	useCRLF          bool
	writeHeader      bool
	customHeader     []string
	nullValue        string
}

type Option func(*csvCodec)

func New(opts ...Option) *csvCodec {
	c := &csvCodec{
		customMapper: make(map[reflect.Type]func(any, scanner.Metadata) string),
		delimiter:    ',',
		writeHeader:  true,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithCustomType renders values of type T with fn.
func WithCustomType[T any](fn func(v T, metadata scanner.Metadata) string) Option {
	return func(c *csvCodec) {
		var zero T
		c.customMapper[reflect.TypeOf(zero)] = func(v any, metadata scanner.Metadata) string {
			return fn(v.(T), metadata)
		}
	}
}

func WithPreProcessorFunc(fn func(row []string) ([]string, bool)) Option {
	return func(c *csvCodec) {
		c.preProcessorFunc = fn
	}
}

// WithCustomDelimiter sets the field separator. Zero keeps the default comma.
func WithCustomDelimiter(delimiter rune) Option {
	return func(c *csvCodec) {
		c.delimiter = delimiter
	}
}

func WithCRLF(useCRLF bool) Option {
	return func(c *csvCodec) {
		c.useCRLF = useCRLF
	}
}

func WithHeader(writeHeader bool) Option {
	return func(c *csvCodec) {
		c.writeHeader = writeHeader
	}
}

// WithCustomHeader replaces the column names in the header row.
func WithCustomHeader(customHeader []string) Option {
	return func(c *csvCodec) {
		c.customHeader = customHeader
	}
}

// WithCustomNULL sets the text written for NULL values. The default is empty.
func WithCustomNULL(nullValue string) Option {
	return func(c *csvCodec) {
		c.nullValue = nullValue
	}
}

func (c *csvCodec) Write(rows scanner.Rows, writer io.Writer) error {
	cols, err := rows.Columns()
	if err != nil {
		return err
	}
	header := make([]string, len(cols))
	for i, col := range cols {
		header[i] = col.Name()
	}
	if c.customHeader != nil {
		if len(c.customHeader) != len(cols) {
			return errors.Wrapf(ErrHeaderLength, "%d names for %d columns", len(c.customHeader), len(cols))
		}
		header = c.customHeader
	}

	w := csv.NewWriter(writer)
	if c.delimiter != 0 {
		w.Comma = c.delimiter
	}
	w.UseCRLF = c.useCRLF
	if c.writeHeader {
		if err := w.Write(header); err != nil {
			return errors.Wrap(err, "write header")
		}
	}
	rowID := 0
	for rows.Next() {
		rowID++
		values, err := rows.ScanRow()
		if err != nil {
			return err
		}
		record := make([]string, len(cols))
		for i, col := range cols {
			record[i] = c.toString(values[i], scanner.Metadata{RowID: rowID, Driver: rows.Driver(), Column: col})
		}
		if c.preProcessorFunc != nil {
			var keep bool
			if record, keep = c.preProcessorFunc(record); !keep {
				continue
			}
		}
		if err := w.Write(record); err != nil {
			return errors.Wrapf(err, "write row %d", rowID)
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

func (c *csvCodec) toString(v any, metadata scanner.Metadata) string {
	if v == nil {
		return c.nullValue
	}
	if fn, ok := c.customMapper[reflect.TypeOf(v)]; ok {
		return fn(v, metadata)
	}
	s := tostring.ToString(v)
	if s.IsNULL {
		return c.nullValue
	}
	return s.String
}

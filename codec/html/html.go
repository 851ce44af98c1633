// Package htmlcodec writes rows as a standalone HTML page holding one table.
// Header cells show the column name and its semantic type label.
package htmlcodec

import (
	"bufio"
	"io"
	"reflect"
	"strings"

	"golang.org/x/net/html"

	"github.com/go-data-exporter/adomd/scanner"
	"github.com/go-data-exporter/adomd/tostring"
)

type htmlCodec struct {
	customMapper      map[reflect.Type]func(any, scanner.Metadata) tostring.String
	preProcessorFunc  func(row []string) ([]string, bool)
	toStringFunc      func(v any) tostring.String
	title             string
	writeHeader       bool
	writeHeaderNoData bool
	nullValue         string
}

type Option func(*htmlCodec)

func New(opts ...Option) *htmlCodec {
	c := &htmlCodec{
		customMapper:      make(map[reflect.Type]func(any, scanner.Metadata) tostring.String),
		toStringFunc:      tostring.ToString,
		title:             "Query result",
		writeHeader:       true,
		writeHeaderNoData: true,
		nullValue:         `<span class="null">[NULL]</span>`,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithCustomType renders values of type T with fn. The result is escaped.
func WithCustomType[T any](fn func(v T, metadata scanner.Metadata) tostring.String) Option {
	return func(c *htmlCodec) {
		var zero T
		c.customMapper[reflect.TypeOf(zero)] = func(v any, metadata scanner.Metadata) tostring.String {
			return fn(v.(T), metadata)
		}
	}
}

// WithPreProcessorFunc receives escaped cells.
func WithPreProcessorFunc(fn func(row []string) ([]string, bool)) Option {
	return func(c *htmlCodec) {
		c.preProcessorFunc = fn
	}
}

func WithCustomToStringFunc(fn func(v any) tostring.String) Option {
	return func(c *htmlCodec) {
		c.toStringFunc = fn
	}
}

func WithTitle(title string) Option {
	return func(c *htmlCodec) {
		c.title = title
	}
}

func WithHeader(writeHeader bool) Option {
	return func(c *htmlCodec) {
		c.writeHeader = writeHeader
	}
}

// WithCustomNULL sets the markup written for NULL cells. It is not escaped.
func WithCustomNULL(nullValue string) Option {
	return func(c *htmlCodec) {
		c.nullValue = nullValue
	}
}

// WithWriteHeaderWhenNoData controls whether a result without rows still
// produces a page with the header. When false, such a result writes nothing.
func WithWriteHeaderWhenNoData(writeHeaderNoData bool) Option {
	return func(c *htmlCodec) {
		c.writeHeaderNoData = writeHeaderNoData
	}
}

const style = `<style>
body{margin:0;font-family:sans-serif}
table{width:100%;border-spacing:0}
thead{position:sticky;top:0;background:#f9f9f9}
th,td{border:1px solid #dedede;border-top:0;border-left:0;padding:10px;white-space:nowrap}
p.typ{margin-top:5px;color:#333}
.null{color:#aaaaaa}
</style>`

func (c *htmlCodec) Write(rows scanner.Rows, writer io.Writer) error {
	cols, err := rows.Columns()
	if err != nil {
		return err
	}
	w := bufio.NewWriter(writer)
	started := false
	start := func() {
		started = true
		w.WriteString(`<!DOCTYPE html><html><head><meta charset="utf-8"><title>`)
		w.WriteString(html.EscapeString(c.title))
		w.WriteString(`</title>` + style + `</head><body><table>`)
		if !c.writeHeader {
			return
		}
		w.WriteString(`<thead><tr>`)
		for _, col := range cols {
			w.WriteString(`<th><p>` + html.EscapeString(col.Name()) + `</p><p class="typ">` +
				html.EscapeString(strings.ToLower(col.DatabaseTypeName())) + `</p></th>`)
		}
		w.WriteString(`</tr></thead>`)
	}
	if c.writeHeaderNoData && len(cols) != 0 {
		start()
	}

	body := false
	rowID := 0
	for rows.Next() {
		rowID++
		values, err := rows.ScanRow()
		if err != nil {
			return err
		}
		row := make([]string, len(cols))
		for i, col := range cols {
			row[i] = c.toString(values[i], scanner.Metadata{RowID: rowID, Driver: rows.Driver(), Column: col})
		}
		if c.preProcessorFunc != nil {
			var keep bool
			if row, keep = c.preProcessorFunc(row); !keep {
				continue
			}
		}
		if !started {
			start()
		}
		if !body {
			body = true
			w.WriteString(`<tbody>`)
		}
		w.WriteString(`<tr>`)
		for _, cell := range row {
			w.WriteString(`<td>` + cell + `</td>`)
		}
		w.WriteString(`</tr>`)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	if body {
		w.WriteString(`</tbody>`)
	}
	if started {
		w.WriteString(`</table></body></html>`)
	}
	return w.Flush()
}

func (c *htmlCodec) toString(v any, metadata scanner.Metadata) string {
	if v == nil {
		return c.nullValue
	}
	var s tostring.String
	if fn, ok := c.customMapper[reflect.TypeOf(v)]; ok {
		s = fn(v, metadata)
	} else {
		s = c.toStringFunc(v)
	}
	if s.IsNULL {
		return c.nullValue
	}
	return html.EscapeString(s.String)
}

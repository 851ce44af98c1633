package adomd

import (
	stderrors "errors"
	"iter"
	"strings"

	"github.com/beevik/etree"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/go-data-exporter/adomd/engine"
	"github.com/go-data-exporter/adomd/typemap"
)

// Cursor executes queries on a connection handle and reads their results.
// A Cursor holds at most one active result; executing another query replaces
// it. A Cursor is not safe for concurrent use.
type Cursor struct {
	conn        engine.Conn
	registry    typemap.Registry
	logger      zerolog.Logger
	reader      *Reader
	description []Description
}

func newCursor(conn engine.Conn, o options) *Cursor {
	return &Cursor{conn: conn, registry: o.registry, logger: o.logger}
}

// ExecuteDAX runs a tabular query. No rows are fetched until Next is called.
func (c *Cursor) ExecuteDAX(query string, opts ...QueryOption) (*Cursor, error) {
	qo := newQueryOptions(opts)
	c.logger.Debug().Str("query_name", qo.name).Msg("execute DAX query")
	rd, err := c.conn.Execute(query)
	if err != nil {
		return c, errors.Wrap(err, "execute DAX query")
	}
	reader := newTabularReader(rd, c.registry, c.logger)
	desc, err := reader.Descriptions()
	if err != nil {
		_ = rd.Close()
		return c, err
	}
	c.replaceReader(reader)
	c.description = desc
	c.logger.Debug().Str("query_name", qo.name).Int("columns", len(desc)).Msg("reading query")
	return c, nil
}

// ExecuteNonQuery runs a command that returns no rows.
func (c *Cursor) ExecuteNonQuery(query string, opts ...QueryOption) (*Cursor, error) {
	qo := newQueryOptions(opts)
	c.logger.Debug().Str("query_name", qo.name).Msg("execute non query")
	if err := c.conn.ExecuteNonQuery(query); err != nil {
		return c, errors.Wrap(err, "execute non query")
	}
	return c, nil
}

// ExecuteXML runs a query, reads its XML fragments to the end and parses them
// as one document. Element names escaped by the engine are decoded with
// DecodeName.
func (c *Cursor) ExecuteXML(query string, opts ...QueryOption) (*etree.Document, error) {
	qo := newQueryOptions(opts)
	c.logger.Debug().Str("query_name", qo.name).Msg("execute XML query")
	rd, err := c.conn.ExecuteXML(query)
	if err != nil {
		return nil, errors.Wrap(err, "execute XML query")
	}
	reader := newXMLReader(rd, c.logger)
	c.replaceReader(reader)
	c.description = nil

	c.logger.Debug().Str("query_name", qo.name).Msg("reading query")
	var sb strings.Builder
	for {
		frag, err := reader.ReadOuterXML()
		if err != nil {
			return nil, errors.Wrap(err, "read XML fragment")
		}
		if frag == "" {
			break
		}
		sb.WriteString(frag)
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromString(sb.String()); err != nil {
		return nil, errors.Wrap(stderrors.Join(ErrMalformedXML, err), "parse XML result")
	}
	decodeElementNames(&doc.Element)
	return doc, nil
}

func (c *Cursor) replaceReader(r *Reader) {
	if c.reader != nil && !c.reader.IsClosed() {
		c.logger.Debug().Msg("replacing open reader")
	}
	c.reader = r
}

func (c *Cursor) activeReader() (*Reader, error) {
	if c.reader == nil {
		return nil, ErrClosed
	}
	return c.reader, nil
}

// Reader returns the active reader, or nil before the first execute.
func (c *Cursor) Reader() *Reader { return c.reader }

// Next advances the active result to its next row.
func (c *Cursor) Next() (bool, error) {
	r, err := c.activeReader()
	if err != nil {
		return false, err
	}
	return r.Read()
}

// ColumnNames returns the column names of the last executed query.
func (c *Cursor) ColumnNames() ([]string, error) {
	r, err := c.activeReader()
	if err != nil {
		return nil, err
	}
	return r.ColumnNames()
}

// FetchOneTuple returns the current row as converted values in column order.
func (c *Cursor) FetchOneTuple() ([]any, error) {
	r, err := c.activeReader()
	if err != nil {
		return nil, err
	}
	return r.Row()
}

// FetchOne returns the current row keyed by column name. When names repeat,
// the last column wins.
func (c *Cursor) FetchOne() (map[string]any, error) {
	names, err := c.ColumnNames()
	if err != nil {
		return nil, err
	}
	return c.fetchMapped(names)
}

func (c *Cursor) fetchMapped(names []string) (map[string]any, error) {
	values, err := c.FetchOneTuple()
	if err != nil {
		return nil, err
	}
	row := make(map[string]any, len(names))
	for i, name := range names {
		if i < len(values) {
			row[name] = values[i]
		}
	}
	return row, nil
}

// FetchMany advances and reads up to limit rows, stopping early at the end of
// the result. A negative limit reads to the end.
func (c *Cursor) FetchMany(limit int) ([]map[string]any, error) {
	names, err := c.ColumnNames()
	if err != nil {
		return nil, err
	}
	var rows []map[string]any
	for limit < 0 || len(rows) < limit {
		ok, err := c.Next()
		if err != nil {
			return rows, err
		}
		if !ok {
			break
		}
		row, err := c.fetchMapped(names)
		if err != nil {
			return rows, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// FetchAll reads every remaining row.
func (c *Cursor) FetchAll() ([]map[string]any, error) {
	return c.FetchMany(-1)
}

// FetchStream yields the remaining rows one at a time. The sequence is tied
// to the active result: once it is exhausted, ranging again yields nothing.
// Iteration stops after the first error.
func (c *Cursor) FetchStream() iter.Seq2[map[string]any, error] {
	return func(yield func(map[string]any, error) bool) {
		names, err := c.ColumnNames()
		if err != nil {
			yield(nil, err)
			return
		}
		for {
			ok, err := c.Next()
			if err != nil {
				yield(nil, err)
				return
			}
			if !ok {
				return
			}
			row, err := c.fetchMapped(names)
			if !yield(row, err) || err != nil {
				return
			}
		}
	}
}

// FetchStreamTuple is FetchStream with rows as converted values in column
// order.
func (c *Cursor) FetchStreamTuple() iter.Seq2[[]any, error] {
	return func(yield func([]any, error) bool) {
		for {
			ok, err := c.Next()
			if err != nil {
				yield(nil, err)
				return
			}
			if !ok {
				return
			}
			row, err := c.FetchOneTuple()
			if !yield(row, err) || err != nil {
				return
			}
		}
	}
}

// Description returns the column descriptions of the last tabular query.
func (c *Cursor) Description() []Description { return c.description }

// IsClosed reports true before the first execute and once the active result
// is closed.
func (c *Cursor) IsClosed() bool {
	if c.reader == nil {
		return true
	}
	return c.reader.IsClosed()
}

// Close closes the active result. It is a no-op when already closed.
func (c *Cursor) Close() error {
	if c.IsClosed() {
		return nil
	}
	return c.reader.Close()
}

// Use calls fn with c and closes c when fn returns or panics.
func (c *Cursor) Use(fn func(*Cursor) error) (err error) {
	defer func() {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return fn(c)
}

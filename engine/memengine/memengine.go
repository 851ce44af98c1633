// Package memengine is an in-memory query engine serving scripted results.
// It is meant for tests and examples that need the engine contract without a
// live server.
package memengine

import (
	"sync"

	"github.com/pkg/errors"

	"github.com/go-data-exporter/adomd/engine"
)

var (
	// ErrNotOpen is returned when a query runs on a connection that is not open.
	ErrNotOpen = errors.New("memengine: connection is not open")

	// ErrUnknownQuery is returned for queries without a scripted result.
	ErrUnknownQuery = errors.New("memengine: no result scripted for query")

	// ErrReaderClosed is returned by accessors of a closed reader.
	ErrReaderClosed = errors.New("memengine: reader is closed")

	// ErrNoRow is returned by Value before the first successful Read.
	ErrNoRow = errors.New("memengine: no current row")
)

// Column describes one scripted result column.
type Column struct {
	Name        string
	FieldTypeID string
}

// Table is a scripted tabular result.
type Table struct {
	Columns []Column
	Rows    [][]engine.Value

	// ReadErr, when set, is returned by Read once FailAfter rows were served.
	ReadErr   error
	FailAfter int
}

// Engine holds scripted results and the connections created from it.
type Engine struct {
	mu       sync.Mutex
	tables   map[string]Table
	xml      map[string][]string
	openErr  error
	conns    []*Conn
	nonQuery []string
}

// New returns an empty Engine.
func New() *Engine {
	return &Engine{
		tables: make(map[string]Table),
		xml:    make(map[string][]string),
	}
}

// Table scripts the tabular result returned for query.
func (e *Engine) Table(query string, t Table) *Engine {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.tables[query] = t
	return e
}

// XML scripts the outer XML fragments returned for query.
func (e *Engine) XML(query string, fragments ...string) *Engine {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.xml[query] = fragments
	return e
}

// FailOpen makes every subsequent Conn.Open return err.
func (e *Engine) FailOpen(err error) *Engine {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.openErr = err
	return e
}

// Connector returns an engine.Connector creating connections on e.
func (e *Engine) Connector() engine.Connector {
	return func(connectionString string) (engine.Conn, error) {
		c := &Conn{engine: e, connStr: connectionString}
		e.mu.Lock()
		e.conns = append(e.conns, c)
		e.mu.Unlock()
		return c, nil
	}
}

// Conns returns the connections created so far, in creation order.
func (e *Engine) Conns() []*Conn {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]*Conn(nil), e.conns...)
}

// NonQueries returns the non-query commands executed so far.
func (e *Engine) NonQueries() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.nonQuery...)
}

// Conn is an in-memory connection handle. It counts lifecycle calls.
type Conn struct {
	engine  *Engine
	connStr string
	state   engine.State

	Opens    int
	Closes   int
	Disposes int
	Readers  []*Reader
}

func (c *Conn) Open() error {
	c.engine.mu.Lock()
	err := c.engine.openErr
	c.engine.mu.Unlock()
	if err != nil {
		return err
	}
	c.Opens++
	c.state = engine.Open
	return nil
}

func (c *Conn) Close() error {
	c.Closes++
	c.state = engine.Closed
	return nil
}

func (c *Conn) Dispose() error {
	c.Disposes++
	return nil
}

func (c *Conn) State() engine.State { return c.state }

func (c *Conn) ConnectionString() string { return c.connStr }

func (c *Conn) Execute(query string) (engine.Reader, error) {
	if c.state != engine.Open {
		return nil, ErrNotOpen
	}
	c.engine.mu.Lock()
	t, ok := c.engine.tables[query]
	c.engine.mu.Unlock()
	if !ok {
		return nil, errors.Wrapf(ErrUnknownQuery, "%q", query)
	}
	r := &Reader{table: t, pos: -1}
	c.Readers = append(c.Readers, r)
	return r, nil
}

func (c *Conn) ExecuteXML(query string) (engine.XMLReader, error) {
	if c.state != engine.Open {
		return nil, ErrNotOpen
	}
	c.engine.mu.Lock()
	frags, ok := c.engine.xml[query]
	c.engine.mu.Unlock()
	if !ok {
		return nil, errors.Wrapf(ErrUnknownQuery, "%q", query)
	}
	return &XMLReader{fragments: frags}, nil
}

func (c *Conn) ExecuteNonQuery(query string) error {
	if c.state != engine.Open {
		return ErrNotOpen
	}
	c.engine.mu.Lock()
	c.engine.nonQuery = append(c.engine.nonQuery, query)
	c.engine.mu.Unlock()
	return nil
}

// Reader serves the rows of a Table.
type Reader struct {
	table  Table
	pos    int
	served int
	closed bool
}

func (r *Reader) Read() (bool, error) {
	if r.closed {
		return false, ErrReaderClosed
	}
	if r.table.ReadErr != nil && r.served >= r.table.FailAfter {
		return false, r.table.ReadErr
	}
	if r.pos+1 >= len(r.table.Rows) {
		r.pos = len(r.table.Rows)
		return false, nil
	}
	r.pos++
	r.served++
	return true, nil
}

func (r *Reader) FieldCount() (int, error) {
	return len(r.table.Columns), nil
}

func (r *Reader) Name(i int) (string, error) {
	if i < 0 || i >= len(r.table.Columns) {
		return "", errors.Errorf("memengine: column %d out of range", i)
	}
	return r.table.Columns[i].Name, nil
}

func (r *Reader) FieldTypeID(i int) (string, error) {
	if i < 0 || i >= len(r.table.Columns) {
		return "", errors.Errorf("memengine: column %d out of range", i)
	}
	return r.table.Columns[i].FieldTypeID, nil
}

func (r *Reader) Value(i int) (engine.Value, error) {
	if r.closed {
		return engine.Value{}, ErrReaderClosed
	}
	if r.pos < 0 || r.pos >= len(r.table.Rows) {
		return engine.Value{}, ErrNoRow
	}
	row := r.table.Rows[r.pos]
	if i < 0 || i >= len(row) {
		return engine.Value{}, errors.Errorf("memengine: column %d out of range", i)
	}
	return row[i], nil
}

func (r *Reader) IsClosed() bool { return r.closed }

func (r *Reader) Close() error {
	r.closed = true
	return nil
}

// XMLReader serves scripted fragments, then empty strings.
type XMLReader struct {
	fragments []string
	next      int
	closed    bool
}

func (r *XMLReader) ReadOuterXML() (string, error) {
	if r.closed {
		return "", ErrReaderClosed
	}
	if r.next >= len(r.fragments) {
		return "", nil
	}
	f := r.fragments[r.next]
	r.next++
	return f, nil
}

func (r *XMLReader) IsClosed() bool { return r.closed }

func (r *XMLReader) Close() error {
	r.closed = true
	return nil
}

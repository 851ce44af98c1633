package adomd

import (
	stderrors "errors"

	"github.com/pkg/errors"

	"github.com/go-data-exporter/adomd/engine"
)

// State is the live state of a connection.
type State = engine.State

const (
	StateClosed = engine.Closed
	StateOpen   = engine.Open
)

// Connection owns one engine connection handle. A Connection is not safe for
// concurrent use; use one Connection per goroutine.
type Connection struct {
	connector engine.Connector
	handle    engine.Conn
	opts      options
	rawOpts   []Option
}

// Connect creates a connection handle for connStr. The connection is not
// opened; call Open or Use.
func Connect(connector engine.Connector, connStr string, opts ...Option) (*Connection, error) {
	if connector == nil {
		return nil, errors.Wrap(ErrEngineUnavailable, "nil connector")
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	handle, err := connector(connStr)
	if err != nil {
		return nil, errors.Wrap(stderrors.Join(ErrEngineUnavailable, err), "connect")
	}
	return &Connection{
		connector: connector,
		handle:    handle,
		opts:      o,
		rawOpts:   opts,
	}, nil
}

// Open opens the engine connection.
func (c *Connection) Open() (*Connection, error) {
	if err := c.handle.Open(); err != nil {
		return c, errors.Wrap(stderrors.Join(ErrEngineUnavailable, err), "open")
	}
	c.opts.logger.Debug().Msg("connection opened")
	return c, nil
}

// Close closes and then disposes the engine connection. Dispose runs even
// when Close fails.
func (c *Connection) Close() error {
	closeErr := c.handle.Close()
	disposeErr := c.handle.Dispose()
	if closeErr == nil && disposeErr == nil {
		c.opts.logger.Debug().Msg("connection closed")
		return nil
	}
	return errors.Wrap(stderrors.Join(ErrEngineUnavailable, closeErr, disposeErr), "close")
}

// Clone creates a new, unopened Connection with the same connection string
// and options. No state is shared with c.
func (c *Connection) Clone() (*Connection, error) {
	return Connect(c.connector, c.handle.ConnectionString(), c.rawOpts...)
}

// Cursor returns a new Cursor bound to the current handle. The connection need
// not be open yet.
func (c *Connection) Cursor() *Cursor {
	return newCursor(c.handle, c.opts)
}

// State returns the state reported by the engine.
func (c *Connection) State() State { return c.handle.State() }

// ConnectionString returns the connection string reported by the engine.
func (c *Connection) ConnectionString() string { return c.handle.ConnectionString() }

// Use opens c unless it is already open, calls fn, and closes c when fn
// returns or panics. The connection is closed even if it was open before Use
// was called, so a nested Use closes the outer scope's connection too.
func (c *Connection) Use(fn func(*Connection) error) (err error) {
	if c.State() != StateOpen {
		if _, err := c.Open(); err != nil {
			return err
		}
	}
	defer func() {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return fn(c)
}

// Package engine defines the narrow boundary between the adomd client and the
// vendor query engine that actually executes queries.
//
// Nothing in this package talks to a network. Implementations wrap a vendor
// connectivity library (see engine/hive) or serve scripted results from memory
// (see engine/memengine).
package engine

import (
	"strconv"

	"github.com/pkg/errors"
)

// ErrUnknownResponse classifies the engine's "unknown response" failure while
// advancing a reader. The client translates it into a clean end of stream.
var ErrUnknownResponse = errors.New("engine: unknown response")

// State is the engine-reported connection state.
type State int

const (
	Closed State = 0
	Open   State = 1
)

func (s State) String() string {
	switch s {
	case Open:
		return "Open"
	case Closed:
		return "Closed"
	}
	return "State(" + strconv.Itoa(int(s)) + ")"
}

// Connector opens a handle for a connection string. The handle is not opened
// until Conn.Open is called.
type Connector func(connectionString string) (Conn, error)

// Conn is an engine connection handle.
type Conn interface {
	Open() error
	// Close ends the session. Engine-side resources may stay allocated until
	// Dispose is called.
	Close() error
	Dispose() error
	State() State
	ConnectionString() string

	Execute(query string) (Reader, error)
	ExecuteXML(query string) (XMLReader, error)
	ExecuteNonQuery(query string) error
}

// Reader is a tabular result-set handle. Column accessors use zero-based
// ordinals.
type Reader interface {
	Read() (bool, error)
	FieldCount() (int, error)
	Name(i int) (string, error)
	FieldTypeID(i int) (string, error)
	Value(i int) (Value, error)
	IsClosed() bool
	Close() error
}

// XMLReader yields outer XML fragments. An empty fragment marks the end.
type XMLReader interface {
	ReadOuterXML() (string, error)
	IsClosed() bool
	Close() error
}

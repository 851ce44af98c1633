package adomd

import (
	"github.com/pkg/errors"

	"github.com/go-data-exporter/adomd/engine"
	"github.com/go-data-exporter/adomd/typemap"
)

var (
	// ErrEngineUnavailable classifies failures opening or closing the engine
	// connection.
	ErrEngineUnavailable = errors.New("adomd: engine unavailable")

	// ErrClosed is returned when reading from a closed reader or from a cursor
	// with no active result.
	ErrClosed = errors.New("adomd: use of closed resource")

	// ErrMalformedXML is returned when the fragments of an XML result do not
	// parse as a document.
	ErrMalformedXML = errors.New("adomd: malformed XML result")

	// ErrNoResult is returned when a tabular operation is used on an XML
	// result, or the other way round.
	ErrNoResult = errors.New("adomd: result kind does not support operation")
)

// Re-exported so callers can classify errors without importing the
// subpackages.
var (
	ErrUnmappedFieldType = typemap.ErrUnmappedFieldType
	ErrConversion        = typemap.ErrConversion
	ErrUnknownResponse   = engine.ErrUnknownResponse
)

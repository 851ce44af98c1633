package adomd

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/go-data-exporter/adomd/engine"
	"github.com/go-data-exporter/adomd/typemap"
)

// Description describes one result column.
type Description struct {
	Name     string
	TypeCode string
}

// Reader wraps one engine result. A Reader over a tabular result supports
// the row accessors; a Reader over an XML result supports ReadOuterXML.
type Reader struct {
	rows     engine.Reader
	xml      engine.XMLReader
	registry typemap.Registry
	logger   zerolog.Logger
}

func newTabularReader(rd engine.Reader, registry typemap.Registry, logger zerolog.Logger) *Reader {
	return &Reader{rows: rd, registry: registry, logger: logger}
}

func newXMLReader(rd engine.XMLReader, logger zerolog.Logger) *Reader {
	return &Reader{xml: rd, logger: logger}
}

// Read advances to the next row. It reports false at the end of the data.
// An engine "unknown response" failure is also reported as the end of the
// data; the rows not yet delivered are lost.
func (r *Reader) Read() (bool, error) {
	if r.rows == nil {
		return false, ErrNoResult
	}
	if r.rows.IsClosed() {
		return false, ErrClosed
	}
	ok, err := r.rows.Read()
	if err != nil {
		if errors.Is(err, engine.ErrUnknownResponse) {
			r.logger.Warn().Err(err).Msg("unknown response while reading, ending result early")
			return false, nil
		}
		return false, errors.Wrap(err, "read")
	}
	return ok, nil
}

// ReadOuterXML returns the next XML fragment. An empty string marks the end.
func (r *Reader) ReadOuterXML() (string, error) {
	if r.xml == nil {
		return "", ErrNoResult
	}
	if r.xml.IsClosed() {
		return "", ErrClosed
	}
	return r.xml.ReadOuterXML()
}

// FieldCount returns the number of columns in the result.
func (r *Reader) FieldCount() (int, error) {
	if r.rows == nil {
		return 0, ErrNoResult
	}
	return r.rows.FieldCount()
}

// ColumnNames returns the column names in ordinal order.
func (r *Reader) ColumnNames() ([]string, error) {
	n, err := r.FieldCount()
	if err != nil {
		return nil, err
	}
	names := make([]string, n)
	for i := range n {
		if names[i], err = r.rows.Name(i); err != nil {
			return nil, errors.Wrapf(err, "column %d name", i)
		}
	}
	return names, nil
}

// Descriptions returns the name and semantic type of every column.
func (r *Reader) Descriptions() ([]Description, error) {
	n, err := r.FieldCount()
	if err != nil {
		return nil, err
	}
	descs := make([]Description, n)
	for i := range n {
		name, err := r.rows.Name(i)
		if err != nil {
			return nil, errors.Wrapf(err, "column %d name", i)
		}
		id, err := r.rows.FieldTypeID(i)
		if err != nil {
			return nil, errors.Wrapf(err, "column %q type", name)
		}
		d, err := r.registry.Lookup(id)
		if err != nil {
			return nil, errors.Wrapf(err, "column %q", name)
		}
		descs[i] = Description{Name: name, TypeCode: d.TypeName}
	}
	return descs, nil
}

// Row converts every column of the current row. It must follow a Read that
// returned true.
func (r *Reader) Row() ([]any, error) {
	if r.rows == nil {
		return nil, ErrNoResult
	}
	if r.rows.IsClosed() {
		return nil, ErrClosed
	}
	n, err := r.rows.FieldCount()
	if err != nil {
		return nil, err
	}
	row := make([]any, n)
	for i := range n {
		id, err := r.rows.FieldTypeID(i)
		if err != nil {
			return nil, errors.Wrapf(err, "column %d type", i)
		}
		raw, err := r.rows.Value(i)
		if err != nil {
			return nil, errors.Wrapf(err, "column %d value", i)
		}
		if row[i], err = typemap.Convert(r.registry, id, raw); err != nil {
			return nil, errors.Wrapf(err, "column %d", i)
		}
	}
	return row, nil
}

// IsClosed reports whether the underlying engine result is closed.
func (r *Reader) IsClosed() bool {
	switch {
	case r.rows != nil:
		return r.rows.IsClosed()
	case r.xml != nil:
		return r.xml.IsClosed()
	}
	return true
}

// Close closes the underlying engine result. Callers guard repeated calls
// with IsClosed.
func (r *Reader) Close() error {
	switch {
	case r.rows != nil:
		return r.rows.Close()
	case r.xml != nil:
		return r.xml.Close()
	}
	return nil
}

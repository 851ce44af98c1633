// Package export writes the rows of a query result through a codec.
package export

import (
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/go-data-exporter/adomd"
	"github.com/go-data-exporter/adomd/codec"
	"github.com/go-data-exporter/adomd/scanner"
)

type Exporter struct {
	rows  scanner.Rows
	codec codec.Codec
}

func New(rows scanner.Rows, codec codec.Codec) *Exporter {
	return &Exporter{
		rows:  rows,
		codec: codec,
	}
}

// FromCursor exports the remaining rows of the cursor's tabular result.
func FromCursor(cursor *adomd.Cursor, codec codec.Codec) *Exporter {
	return New(scanner.FromCursor(cursor), codec)
}

func (e *Exporter) Write(writer io.Writer) error {
	return e.codec.Write(e.rows, writer)
}

// WriteFile creates or truncates filename and writes the export to it.
func (e *Exporter) WriteFile(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return errors.Wrap(err, "export: create file")
	}
	defer f.Close()
	if err := e.Write(f); err != nil {
		return err
	}
	return f.Close()
}

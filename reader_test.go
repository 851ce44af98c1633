package adomd

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/go-data-exporter/adomd/engine"
	"github.com/go-data-exporter/adomd/engine/memengine"
	"github.com/go-data-exporter/adomd/typemap"
)

func executeTable(t *testing.T, table memengine.Table) engine.Reader {
	t.Helper()
	eng := memengine.New().Table("q", table)
	c, err := eng.Connector()("x")
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Open(); err != nil {
		t.Fatal(err)
	}
	rd, err := c.Execute("q")
	if err != nil {
		t.Fatal(err)
	}
	return rd
}

func TestReaderRows(t *testing.T) {
	r := newTabularReader(executeTable(t, productsTable(2)), typemap.ADOMD, zerolog.Nop())

	n, err := r.FieldCount()
	if err != nil || n != 2 {
		t.Fatalf("FieldCount = %d, %v", n, err)
	}
	names, err := r.ColumnNames()
	if err != nil || len(names) != 2 || names[0] != "id" || names[1] != "name" {
		t.Fatalf("ColumnNames = %v, %v", names, err)
	}

	var rows [][]any
	for {
		ok, err := r.Read()
		if err != nil {
			t.Fatal(err)
		}
		if !ok {
			break
		}
		row, err := r.Row()
		if err != nil {
			t.Fatal(err)
		}
		rows = append(rows, row)
	}
	if len(rows) != 2 || rows[1][0] != int64(2) || rows[1][1] != "b" {
		t.Errorf("rows = %v", rows)
	}

	if r.IsClosed() {
		t.Error("reader closed before Close")
	}
	if err := r.Close(); err != nil {
		t.Fatal(err)
	}
	if !r.IsClosed() {
		t.Error("reader not closed after Close")
	}
	if _, err := r.Read(); !errors.Is(err, ErrClosed) {
		t.Errorf("Read after Close: expected ErrClosed, got %v", err)
	}
	if _, err := r.Row(); !errors.Is(err, ErrClosed) {
		t.Errorf("Row after Close: expected ErrClosed, got %v", err)
	}
	// Field count stays available on a closed reader.
	if n, err := r.FieldCount(); err != nil || n != 2 {
		t.Errorf("FieldCount after Close = %d, %v", n, err)
	}
}

func TestReaderConversionError(t *testing.T) {
	table := memengine.Table{
		Columns: []memengine.Column{{Name: "n", FieldTypeID: "System.Int32"}},
		Rows:    [][]engine.Value{{engine.String("twelve")}},
	}
	r := newTabularReader(executeTable(t, table), typemap.ADOMD, zerolog.Nop())
	if ok, err := r.Read(); !ok || err != nil {
		t.Fatalf("Read = %v, %v", ok, err)
	}
	if _, err := r.Row(); !errors.Is(err, ErrConversion) {
		t.Fatalf("expected ErrConversion, got %v", err)
	}
}

func TestReaderXML(t *testing.T) {
	xr := &memengine.XMLReader{}
	r := newXMLReader(xr, zerolog.Nop())
	frag, err := r.ReadOuterXML()
	if err != nil || frag != "" {
		t.Fatalf("ReadOuterXML = %q, %v", frag, err)
	}
	if _, err := r.Read(); !errors.Is(err, ErrNoResult) {
		t.Errorf("Read on XML reader: expected ErrNoResult, got %v", err)
	}
	if _, err := r.Row(); !errors.Is(err, ErrNoResult) {
		t.Errorf("Row on XML reader: expected ErrNoResult, got %v", err)
	}
	if err := r.Close(); err != nil {
		t.Fatal(err)
	}
	if !r.IsClosed() {
		t.Error("XML reader not closed after Close")
	}
	if _, err := r.ReadOuterXML(); !errors.Is(err, ErrClosed) {
		t.Errorf("ReadOuterXML after Close: expected ErrClosed, got %v", err)
	}
}

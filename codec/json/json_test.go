package jsoncodec

import (
	"bytes"
	"strings"
	"testing"

	"github.com/go-data-exporter/adomd"
	"github.com/go-data-exporter/adomd/engine"
	"github.com/go-data-exporter/adomd/engine/memengine"
	"github.com/go-data-exporter/adomd/scanner"
)

func testRows(t *testing.T) scanner.Rows {
	t.Helper()
	eng := memengine.New().Table("q", memengine.Table{
		Columns: []memengine.Column{
			{Name: "id", FieldTypeID: "System.Int32"},
			{Name: "name", FieldTypeID: "System.String"},
			{Name: "price", FieldTypeID: "System.Decimal"},
		},
		Rows: [][]engine.Value{
			{engine.Int(1), engine.String("first"), engine.DecimalText("1.10")},
			{engine.Int(2), engine.String("second"), engine.Null()},
			{engine.Int(3), engine.String("third"), engine.DecimalText("3")},
		},
	})
	conn, err := adomd.Connect(eng.Connector(), "memory")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := conn.Open(); err != nil {
		t.Fatal(err)
	}
	cur, err := conn.Cursor().ExecuteDAX("q")
	if err != nil {
		t.Fatal(err)
	}
	return scanner.FromCursor(cur)
}

func TestWriteArray(t *testing.T) {
	var buf bytes.Buffer
	if err := New().Write(testRows(t), &buf); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	want := "[\n" +
		`{"id":1,"name":"first","price":"1.1"}` + ",\n" +
		`{"id":2,"name":"second","price":null}` + ",\n" +
		`{"id":3,"name":"third","price":"3"}` + "\n]\n"
	if buf.String() != want {
		t.Errorf("output =\n%s\nwant\n%s", buf.String(), want)
	}
}

func TestWriteNewlineDelimited(t *testing.T) {
	var buf bytes.Buffer
	if err := New(WithNewlineDelimited(true), WithLimit(2)).Write(testRows(t), &buf); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), buf.String())
	}
	if strings.Contains(buf.String(), "third") {
		t.Error("limit ignored")
	}
}

func TestWithPreProcessorFunc(t *testing.T) {
	skipSecond := func(rowID int, row map[string]any) (map[string]any, bool) {
		return row, rowID != 2
	}
	var buf bytes.Buffer
	if err := New(WithPreProcessorFunc(skipSecond)).Write(testRows(t), &buf); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if strings.Contains(buf.String(), "second") {
		t.Error("preProcessorFunc did not filter row 2")
	}
	if !strings.Contains(buf.String(), "first") || !strings.Contains(buf.String(), "third") {
		t.Error("preProcessorFunc filtered wrong rows")
	}
}

func TestWithCustomType(t *testing.T) {
	label := func(v string, meta scanner.Metadata) any {
		return meta.Column.Name() + ":" + v
	}
	var buf bytes.Buffer
	if err := New(WithCustomType(label)).Write(testRows(t), &buf); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if !strings.Contains(buf.String(), `"name":"name:first"`) {
		t.Errorf("custom function not applied, got: %s", buf.String())
	}
}

func TestWriteLimitZero(t *testing.T) {
	var buf bytes.Buffer
	if err := New(WithLimit(0)).Write(testRows(t), &buf); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if buf.String() != "[]\n" {
		t.Errorf("output = %q, want empty array", buf.String())
	}
}

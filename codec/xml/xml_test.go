package xmlcodec

import (
	"bytes"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/go-data-exporter/adomd"
	"github.com/go-data-exporter/adomd/engine"
	"github.com/go-data-exporter/adomd/engine/memengine"
	"github.com/go-data-exporter/adomd/scanner"
	"github.com/go-data-exporter/adomd/tostring"
)

func tableRows(t *testing.T, table memengine.Table) scanner.Rows {
	t.Helper()
	eng := memengine.New().Table("q", table)
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

func labelRows(t *testing.T, labels ...string) scanner.Rows {
	t.Helper()
	table := memengine.Table{
		Columns: []memengine.Column{
			{Name: "id", FieldTypeID: "System.Int64"},
			{Name: "label", FieldTypeID: "System.String"},
		},
	}
	for i, l := range labels {
		table.Rows = append(table.Rows, []engine.Value{engine.Int(int64(i + 1)), engine.String(l)})
	}
	return tableRows(t, table)
}

func TestNew(t *testing.T) {
	c := New()
	if c == nil {
		t.Error("New() returned nil")
	}
	if c.customMapper == nil {
		t.Error("customMapper not initialized")
	}
	if c.limit != -1 {
		t.Error("default limit should be -1")
	}
}

func TestWithCustomType(t *testing.T) {
	customFn := func(v int64, _ scanner.Metadata) tostring.String {
		return tostring.String{String: "custom:" + tostring.ToString(v).String}
	}

	c := New(WithCustomType(customFn))
	if _, ok := c.customMapper[reflect.TypeOf(int64(0))]; !ok {
		t.Error("custom type not registered")
	}

	var buf bytes.Buffer
	if err := c.Write(labelRows(t, "x"), &buf); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if !strings.Contains(buf.String(), "<id>custom:1</id>") {
		t.Errorf("custom function not applied, got: %s", buf.String())
	}
}

func TestWithPreProcessorFunc(t *testing.T) {
	preProcess := func(rowID int, row []string) ([]string, bool) {
		if row[1] == "second" {
			return nil, false
		}
		return row, true
	}

	var buf bytes.Buffer
	if err := New(WithPreProcessorFunc(preProcess)).Write(labelRows(t, "first", "second", "third"), &buf); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	output := buf.String()
	if strings.Contains(output, "second") {
		t.Error("preProcessorFunc did not filter row 2")
	}
	if !strings.Contains(output, "first") || !strings.Contains(output, "third") {
		t.Error("preProcessorFunc filtered wrong rows")
	}
}

func TestWithLimit(t *testing.T) {
	var buf bytes.Buffer
	if err := New(WithLimit(2)).Write(labelRows(t, "first", "second", "third"), &buf); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	output := buf.String()
	if strings.Count(output, "<row>") != 2 {
		t.Errorf("expected 2 rows, got %d", strings.Count(output, "<row>"))
	}
	if strings.Contains(output, "third") {
		t.Error("limit ignored")
	}
	if !strings.HasSuffix(output, "</data>\n") {
		t.Error("root element not closed after limit")
	}
}

func TestWrite(t *testing.T) {
	at := time.Date(2024, 3, 1, 9, 30, 0, 0, time.FixedZone("", 2*60*60))
	rows := tableRows(t, memengine.Table{
		Columns: []memengine.Column{
			{Name: "id", FieldTypeID: "System.Int64"},
			{Name: "qty", FieldTypeID: "System.Int32"},
			{Name: "at", FieldTypeID: "System.DateTime"},
			{Name: "label", FieldTypeID: "System.String"},
			{Name: "ratio", FieldTypeID: "System.Double"},
		},
		Rows: [][]engine.Value{
			{engine.Int(1), engine.Int(5), engine.Time(at), engine.String("text"), engine.Float(3.14)},
			{engine.Int(4), engine.Null(), engine.Time(at), engine.String("<text>"), engine.Float(3.14)},
			{engine.Int(7), engine.Int(5), engine.Time(at), engine.String("text"), engine.Float(3.14)},
		},
	})
	var buf bytes.Buffer
	if err := New().Write(rows, &buf); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	output := buf.String()
	if !strings.HasPrefix(output, `<?xml version="1.0" encoding="UTF-8"?>`+"\n<data>") {
		t.Error("missing XML declaration or root element")
	}
	if rowCount := strings.Count(output, "<row>"); rowCount != 3 {
		t.Errorf("expected 3 rows, got %d", rowCount)
	}
	if n := strings.Count(output, "<qty>"); n != 2 {
		t.Errorf("NULL values should be omitted, got %d qty elements", n)
	}
	if !strings.Contains(output, "&lt;text&gt;") {
		t.Error("XML special characters not escaped")
	}
	if !strings.Contains(output, "<at>"+at.Format(time.RFC3339Nano)+"</at>") {
		t.Error("time not formatted correctly")
	}
	if !strings.Contains(output, "<ratio>3.14</ratio>") {
		t.Error("float not formatted correctly")
	}
}

func TestWriteEncodesColumnNames(t *testing.T) {
	rows := tableRows(t, memengine.Table{
		Columns: []memengine.Column{{Name: "Sales[Total Amount]", FieldTypeID: "System.String"}},
		Rows:    [][]engine.Value{{engine.String("10")}},
	})
	var buf bytes.Buffer
	if err := New().Write(rows, &buf); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	const tag = "Sales_x005B_Total_x0020_Amount_x005D_"
	if !strings.Contains(buf.String(), "<"+tag+">10</"+tag+">") {
		t.Errorf("column name not encoded, got: %s", buf.String())
	}
}

func TestToString(t *testing.T) {
	c := New()
	if result := c.toString(nil, scanner.Metadata{}); !result.IsNULL {
		t.Error("nil value should be marked as NULL")
	}

	customFn := func(v string, _ scanner.Metadata) tostring.String {
		return tostring.String{String: "CUSTOM:" + v}
	}
	var buf bytes.Buffer
	if err := New(WithCustomType(customFn)).Write(labelRows(t, "test"), &buf); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if !strings.Contains(buf.String(), "CUSTOM:test") {
		t.Errorf("custom function not applied, got: %s", buf.String())
	}
}

func TestWriteEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := New().Write(labelRows(t), &buf); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if buf.Len() != 0 {
		t.Error("empty data should produce no output")
	}

	if err := New(WithLimit(0)).Write(labelRows(t, "test"), &buf); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if buf.Len() != 0 {
		t.Error("limit 0 should produce no output")
	}
}

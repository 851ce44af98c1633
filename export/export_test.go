package export

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-data-exporter/adomd"
	"github.com/go-data-exporter/adomd/codec"
	"github.com/go-data-exporter/adomd/engine"
	"github.com/go-data-exporter/adomd/engine/memengine"
)

func testCursor(t *testing.T) *adomd.Cursor {
	t.Helper()
	eng := memengine.New().Table("EVALUATE Regions", memengine.Table{
		Columns: []memengine.Column{
			{Name: "Region", FieldTypeID: "System.String"},
			{Name: "Units", FieldTypeID: "System.Int64"},
		},
		Rows: [][]engine.Value{
			{engine.String("north"), engine.Int(10)},
			{engine.String("south"), engine.Int(7)},
		},
	})
	conn, err := adomd.Connect(eng.Connector(), "memory")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := conn.Open(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { conn.Close() })
	cur, err := conn.Cursor().ExecuteDAX("EVALUATE Regions")
	if err != nil {
		t.Fatal(err)
	}
	return cur
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := FromCursor(testCursor(t), codec.CSV()).Write(&buf); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	want := "Region,Units\nnorth,10\nsouth,7\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestWriteFileJSON(t *testing.T) {
	name := filepath.Join(t.TempDir(), "regions.json")
	if err := FromCursor(testCursor(t), codec.JSON()).WriteFile(name); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	data, err := os.ReadFile(name)
	if err != nil {
		t.Fatal(err)
	}
	want := "[\n" + `{"Region":"north","Units":10}` + ",\n" + `{"Region":"south","Units":7}` + "\n]\n"
	if string(data) != want {
		t.Errorf("file = %q, want %q", data, want)
	}
}

func TestWriteFileBadPath(t *testing.T) {
	name := filepath.Join(t.TempDir(), "missing", "out.csv")
	if err := FromCursor(testCursor(t), codec.CSV()).WriteFile(name); err == nil {
		t.Fatal("expected error for missing directory")
	}
}

package htmlcodec

import (
	"bytes"
	"strings"
	"testing"

	"github.com/go-data-exporter/adomd"
	"github.com/go-data-exporter/adomd/engine"
	"github.com/go-data-exporter/adomd/engine/memengine"
	"github.com/go-data-exporter/adomd/scanner"
	"github.com/go-data-exporter/adomd/tostring"
)

func testRows(t *testing.T, rows ...[]engine.Value) scanner.Rows {
	t.Helper()
	eng := memengine.New().Table("q", memengine.Table{
		Columns: []memengine.Column{
			{Name: "Product[Name]", FieldTypeID: "System.String"},
			{Name: "Units", FieldTypeID: "System.Int64"},
		},
		Rows: rows,
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

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	rows := testRows(t,
		[]engine.Value{engine.String("<b>bolt</b>"), engine.Int(3)},
		[]engine.Value{engine.String("nut"), engine.Null()},
	)
	if err := New().Write(rows, &buf); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	output := buf.String()
	if !strings.HasPrefix(output, "<!DOCTYPE html>") || !strings.HasSuffix(output, "</table></body></html>") {
		t.Errorf("page not framed, got: %s", output)
	}
	if !strings.Contains(output, "<th><p>Product[Name]</p><p class=\"typ\">string</p></th>") {
		t.Error("header cell missing name or type")
	}
	if !strings.Contains(output, "<td>&lt;b&gt;bolt&lt;/b&gt;</td>") {
		t.Error("cell text not escaped")
	}
	if !strings.Contains(output, `<td><span class="null">[NULL]</span></td>`) {
		t.Error("NULL markup missing")
	}
	if n := strings.Count(output, "<tr>"); n != 3 {
		t.Errorf("expected 3 table rows, got %d", n)
	}
}

func TestWriteNoData(t *testing.T) {
	var buf bytes.Buffer
	if err := New().Write(testRows(t), &buf); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if !strings.Contains(buf.String(), "<thead>") || strings.Contains(buf.String(), "<tbody>") {
		t.Errorf("expected header only, got: %s", buf.String())
	}

	buf.Reset()
	if err := New(WithWriteHeaderWhenNoData(false)).Write(testRows(t), &buf); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("expected no output, got: %s", buf.String())
	}
}

func TestWriteOptions(t *testing.T) {
	units := func(v int64, meta scanner.Metadata) tostring.String {
		return tostring.String{String: meta.Column.Name() + "=" + tostring.ToString(v).String}
	}
	dropNut := func(row []string) ([]string, bool) { return row, row[0] != "nut" }

	var buf bytes.Buffer
	c := New(
		WithHeader(false),
		WithTitle("Stock & Units"),
		WithCustomNULL("-"),
		WithCustomType(units),
		WithPreProcessorFunc(dropNut),
	)
	rows := testRows(t,
		[]engine.Value{engine.String("bolt"), engine.Int(3)},
		[]engine.Value{engine.String("nut"), engine.Int(9)},
		[]engine.Value{engine.String("washer"), engine.Null()},
	)
	if err := c.Write(rows, &buf); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	output := buf.String()
	if strings.Contains(output, "<thead>") {
		t.Error("header written with WithHeader(false)")
	}
	if !strings.Contains(output, "<title>Stock &amp; Units</title>") {
		t.Error("title not escaped")
	}
	if !strings.Contains(output, "<tr><td>bolt</td><td>Units=3</td></tr>") {
		t.Errorf("custom type not applied, got: %s", output)
	}
	if strings.Contains(output, "nut") {
		t.Error("preProcessorFunc did not drop row")
	}
	if !strings.Contains(output, "<tr><td>washer</td><td>-</td></tr>") {
		t.Error("custom NULL not used")
	}
}

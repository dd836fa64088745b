package tabular

import (
	"archive/zip"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestOpenCSVRaggedRowsAndBOM(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "reviews.csv",
		"\ufeffApp, Translated_Review,Sentiment\n"+
			"X,\"Great, really\",Positive\n"+
			"Y,short\n")
	tb, err := Open(p, Options{})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if want := []string{"App", "Translated_Review", "Sentiment"}; !reflect.DeepEqual(tb.Header, want) {
		t.Fatalf("header = %q, want %q", tb.Header, want)
	}
	if len(tb.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(tb.Rows))
	}
	if tb.Rows[0][1] != "Great, really" {
		t.Fatalf("quoted field = %q", tb.Rows[0][1])
	}
	if len(tb.Rows[1]) != 2 {
		t.Fatalf("ragged row should keep its length, got %d", len(tb.Rows[1]))
	}
	if tb.Index("Sentiment") != 2 || tb.Index("cleaned") != -1 {
		t.Fatalf("Index mismatch")
	}
}

func TestOpenTSV(t *testing.T) {
	p := writeFile(t, t.TempDir(), "reviews.tsv", "App\tSentiment\nX\tPositive\n")
	tb, err := Open(p, Options{})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if tb.Rows[0][1] != "Positive" {
		t.Fatalf("tsv row = %q", tb.Rows[0])
	}
}

func TestOpenEmptyFile(t *testing.T) {
	p := writeFile(t, t.TempDir(), "empty.csv", "")
	tb, err := Open(p, Options{})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if len(tb.Header) != 0 || len(tb.Rows) != 0 {
		t.Fatalf("expected empty table, got %+v", tb)
	}
}

func TestOpenMissingAndUnsupported(t *testing.T) {
	dir := t.TempDir()
	if _, err := Open(filepath.Join(dir, "nope.csv"), Options{}); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("err = %v, want not-exist", err)
	}
	p := writeFile(t, dir, "x.parquet", "data")
	if _, err := Open(p, Options{}); !errors.Is(err, ErrUnsupported) {
		t.Fatalf("err = %v, want ErrUnsupported", err)
	}
}

// writeXLSX builds a minimal two-sheet workbook. Sheet targets use both the
// absolute and relative relationship forms.
func writeXLSX(t *testing.T, p string) {
	t.Helper()
	f, err := os.Create(p)
	if err != nil {
		t.Fatal(err)
	}
	zw := zip.NewWriter(f)
	parts := map[string]string{
		"xl/workbook.xml": `<?xml version="1.0" encoding="UTF-8"?>
<workbook xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships">
<sheets><sheet name="Summary" sheetId="1" r:id="rId1"/><sheet name="Reviews" sheetId="2" r:id="rId2"/></sheets>
</workbook>`,
		"xl/_rels/workbook.xml.rels": `<?xml version="1.0" encoding="UTF-8"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="worksheet" Target="/xl/worksheets/sheet1.xml"/>
<Relationship Id="rId2" Type="worksheet" Target="worksheets/sheet2.xml"/>
</Relationships>`,
		"xl/sharedStrings.xml": `<?xml version="1.0" encoding="UTF-8"?>
<sst xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main">
<si><t>App</t></si><si><t>Translated_Review</t></si><si><t>Sentiment</t></si>
<si><t>X</t></si><si><r><t>Good </t></r><r><t>app</t></r></si><si><t>Positive</t></si>
</sst>`,
		"xl/worksheets/sheet1.xml": `<?xml version="1.0" encoding="UTF-8"?>
<worksheet xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main"><sheetData>
<row r="1"><c r="A1" t="inlineStr"><is><t>Total</t></is></c></row>
<row r="2"><c r="A2"><v>3</v></c></row>
</sheetData></worksheet>`,
		"xl/worksheets/sheet2.xml": `<?xml version="1.0" encoding="UTF-8"?>
<worksheet xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main"><sheetData>
<row r="1"><c r="A1" t="s"><v>0</v></c><c r="B1" t="s"><v>1</v></c><c r="C1" t="s"><v>2</v></c></row>
<row r="2"><c r="A2" t="s"><v>3</v></c><c r="B2" t="s"><v>4</v></c><c r="C2" t="s"><v>5</v></c></row>
<row r="3"><c r="A3" t="s"><v>3</v></c><c r="C3" t="s"><v>5</v></c></row>
</sheetData></worksheet>`,
	}
	for name, body := range parts {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := w.Write([]byte(body)); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestOpenXLSXSheetSelection(t *testing.T) {
	p := filepath.Join(t.TempDir(), "reviews.xlsx")
	writeXLSX(t, p)

	first, err := Open(p, Options{})
	if err != nil {
		t.Fatalf("Open default sheet: %v", err)
	}
	if !reflect.DeepEqual(first.Header, []string{"Total"}) || first.Rows[0][0] != "3" {
		t.Fatalf("default sheet = %+v", first)
	}

	byName, err := Open(p, Options{SheetName: "reviews"})
	if err != nil {
		t.Fatalf("Open by name: %v", err)
	}
	byIndex, err := Open(p, Options{SheetIndex: 2})
	if err != nil {
		t.Fatalf("Open by index: %v", err)
	}
	want := [][]string{{"X", "Good app", "Positive"}, {"X", "", "Positive"}}
	for _, tb := range []*Table{byName, byIndex} {
		if !reflect.DeepEqual(tb.Header, []string{"App", "Translated_Review", "Sentiment"}) {
			t.Fatalf("header = %q", tb.Header)
		}
		if !reflect.DeepEqual(tb.Rows, want) {
			t.Fatalf("rows = %q, want %q", tb.Rows, want)
		}
	}

	_, err = Open(p, Options{SheetName: "Missing"})
	if err == nil || !strings.Contains(err.Error(), "Summary, Reviews") {
		t.Fatalf("expected available sheets in error, got %v", err)
	}
}

func TestPartName(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{"/xl/worksheets/sheet1.xml", "xl/worksheets/sheet1.xml"},
		{"xl/worksheets/sheet1.xml", "xl/worksheets/sheet1.xml"},
		{"/worksheets/sheet1.xml", "xl/worksheets/sheet1.xml"},
		{"worksheets/sheet1.xml", "xl/worksheets/sheet1.xml"},
	}
	for _, tt := range tests {
		if got := partName(tt.input); got != tt.want {
			t.Errorf("partName(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestColIndex(t *testing.T) {
	tests := map[string]int{"A1": 0, "C12": 2, "Z3": 25, "AA10": 26, "ab2": 27, "": -1, "12": -1}
	for ref, want := range tests {
		if got := colIndex(ref); got != want {
			t.Errorf("colIndex(%q) = %d, want %d", ref, got, want)
		}
	}
}

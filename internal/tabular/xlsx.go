package tabular

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strconv"
	"strings"
)

type xlsxReader struct{}

func (xlsxReader) CanRead(p string) bool {
	return strings.EqualFold(filepath.Ext(p), ".xlsx")
}

// Read loads one worksheet. A sheet name wins over the index; with neither,
// the first sheet is used.
func (xlsxReader) Read(p string, opt Options) (*Table, error) {
	zr, err := zip.OpenReader(p)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer zr.Close()

	wb := &workbook{zr: &zr.Reader}
	sheets, err := wb.sheets()
	if err != nil {
		return nil, err
	}
	target, err := wb.resolve(sheets, opt)
	if err != nil {
		return nil, fmt.Errorf("%w in workbook '%s'", err, filepath.Base(p))
	}
	shared, err := wb.sharedStrings()
	if err != nil {
		return nil, err
	}
	rc, err := wb.open(target)
	if err != nil {
		return nil, fmt.Errorf("open worksheet %s: %w", target, err)
	}
	defer rc.Close()

	t := &Table{Name: filepath.Base(p)}
	rr := &sheetRows{dec: xml.NewDecoder(rc), shared: shared}
	for {
		row, ok, err := rr.next()
		if err != nil {
			return nil, fmt.Errorf("read worksheet %s: %w", target, err)
		}
		if !ok {
			break
		}
		if t.Header == nil {
			for i := range row {
				row[i] = strings.TrimSpace(row[i])
			}
			t.Header = row
			continue
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

type sheetEntry struct {
	Name    string
	SheetID int
	RID     string
}

type workbook struct {
	zr *zip.Reader
}

func (w *workbook) open(name string) (io.ReadCloser, error) {
	for _, f := range w.zr.File {
		if f.Name == name {
			return f.Open()
		}
	}
	return nil, fmt.Errorf("missing part %s", name)
}

func (w *workbook) read(name string) ([]byte, error) {
	rc, err := w.open(name)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// sheets lists the workbook's sheets in declaration order.
func (w *workbook) sheets() ([]sheetEntry, error) {
	rc, err := w.open("xl/workbook.xml")
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer rc.Close()
	var out []sheetEntry
	err = walkStart(xml.NewDecoder(rc), "sheet", func(se xml.StartElement) {
		var s sheetEntry
		for _, a := range se.Attr {
			switch a.Name.Local {
			case "name":
				s.Name = a.Value
			case "sheetId":
				s.SheetID, _ = strconv.Atoi(a.Value)
			case "id":
				s.RID = a.Value
			}
		}
		out = append(out, s)
	})
	return out, err
}

// relationships maps relationship ids to zip part names.
func (w *workbook) relationships() (map[string]string, error) {
	out := map[string]string{}
	rc, err := w.open("xl/_rels/workbook.xml.rels")
	if err != nil {
		return out, nil
	}
	defer rc.Close()
	err = walkStart(xml.NewDecoder(rc), "Relationship", func(se xml.StartElement) {
		var id, target string
		for _, a := range se.Attr {
			switch a.Name.Local {
			case "Id":
				id = a.Value
			case "Target":
				target = a.Value
			}
		}
		if id != "" && target != "" {
			out[id] = partName(target)
		}
	})
	return out, err
}

func (w *workbook) resolve(sheets []sheetEntry, opt Options) (string, error) {
	rels, err := w.relationships()
	if err != nil {
		return "", err
	}
	if opt.SheetName != "" {
		names := make([]string, 0, len(sheets))
		for _, s := range sheets {
			if strings.EqualFold(s.Name, opt.SheetName) {
				if target, ok := rels[s.RID]; ok {
					return target, nil
				}
			}
			names = append(names, s.Name)
		}
		return "", fmt.Errorf("sheet '%s' not found (available: %s)", opt.SheetName, strings.Join(names, ", "))
	}
	idx := opt.SheetIndex
	if idx <= 0 {
		idx = 1
	}
	if idx <= len(sheets) {
		if target, ok := rels[sheets[idx-1].RID]; ok {
			return target, nil
		}
	}
	for _, s := range sheets {
		if s.SheetID == idx {
			if target, ok := rels[s.RID]; ok {
				return target, nil
			}
		}
	}
	return path.Join("xl", "worksheets", fmt.Sprintf("sheet%d.xml", idx)), nil
}

func (w *workbook) sharedStrings() ([]string, error) {
	b, err := w.read("xl/sharedStrings.xml")
	if err != nil {
		// workbooks with only inline or numeric cells omit the part
		return nil, nil
	}
	dec := xml.NewDecoder(bytes.NewReader(b))
	var out []string
	var buf strings.Builder
	inT := false
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("parse shared strings: %w", err)
		}
		switch se := tok.(type) {
		case xml.StartElement:
			switch se.Name.Local {
			case "si":
				buf.Reset()
			case "t":
				inT = true
			}
		case xml.EndElement:
			switch se.Name.Local {
			case "t":
				inT = false
			case "si":
				out = append(out, buf.String())
			}
		case xml.CharData:
			if inT {
				buf.Write(se)
			}
		}
	}
}

// sheetRows streams rows of a worksheet, placing each cell at the column
// named by its reference so gaps become empty strings.
type sheetRows struct {
	dec    *xml.Decoder
	shared []string
}

func (r *sheetRows) next() ([]string, bool, error) {
	var row []string
	inRow := false
	for {
		tok, err := r.dec.Token()
		if errors.Is(err, io.EOF) {
			return nil, false, nil
		}
		if err != nil {
			return nil, false, err
		}
		switch se := tok.(type) {
		case xml.StartElement:
			switch {
			case se.Name.Local == "row":
				inRow = true
				row = row[:0]
			case inRow && se.Name.Local == "c":
				var ref, typ string
				for _, a := range se.Attr {
					switch a.Name.Local {
					case "r":
						ref = a.Value
					case "t":
						typ = a.Value
					}
				}
				col := colIndex(ref)
				if col < 0 {
					col = len(row)
				}
				val, err := r.cellValue(typ)
				if err != nil {
					return nil, false, err
				}
				for len(row) <= col {
					row = append(row, "")
				}
				row[col] = val
			}
		case xml.EndElement:
			if se.Name.Local == "row" && inRow {
				out := make([]string, len(row))
				copy(out, row)
				return out, true, nil
			}
		}
	}
}

// cellValue consumes tokens up to the end of the current <c> element.
func (r *sheetRows) cellValue(typ string) (string, error) {
	var raw strings.Builder
	capture := false
	for {
		tok, err := r.dec.Token()
		if err != nil {
			return "", err
		}
		switch se := tok.(type) {
		case xml.StartElement:
			if se.Name.Local == "v" || se.Name.Local == "t" {
				capture = true
			}
		case xml.CharData:
			if capture {
				raw.Write(se)
			}
		case xml.EndElement:
			switch se.Name.Local {
			case "v", "t":
				capture = false
			case "c":
				v := raw.String()
				switch typ {
				case "s":
					i, err := strconv.Atoi(strings.TrimSpace(v))
					if err != nil || i < 0 || i >= len(r.shared) {
						return "", nil
					}
					return r.shared[i], nil
				case "b":
					if v == "1" {
						return "TRUE", nil
					}
					return "FALSE", nil
				}
				return v, nil
			}
		}
	}
}

// colIndex converts a cell reference like "C12" to a 0-based column, or -1
// when the reference carries no column letters.
func colIndex(ref string) int {
	idx := 0
	n := 0
	for _, c := range ref {
		switch {
		case c >= 'A' && c <= 'Z':
			idx = idx*26 + int(c-'A'+1)
		case c >= 'a' && c <= 'z':
			idx = idx*26 + int(c-'a'+1)
		default:
			return idx - 1
		}
		n++
	}
	if n == 0 {
		return -1
	}
	return idx - 1
}

// partName converts a relationship target to a zip entry name. Targets may
// be absolute ("/xl/worksheets/sheet1.xml") or relative to xl/.
func partName(target string) string {
	target = strings.TrimPrefix(target, "/")
	if strings.HasPrefix(target, "xl/") {
		return target
	}
	return path.Join("xl", target)
}

func walkStart(dec *xml.Decoder, local string, fn func(xml.StartElement)) error {
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("parse workbook xml: %w", err)
		}
		if se, ok := tok.(xml.StartElement); ok && se.Name.Local == local {
			fn(se)
		}
	}
}

package tabular

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

const utf8BOM = "\ufeff"

type csvReader struct {
	comma rune
	exts  []string
}

func (r csvReader) CanRead(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range r.exts {
		if ext == e {
			return true
		}
	}
	return false
}

func (r csvReader) Read(path string, _ Options) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open table: %w", err)
	}
	defer f.Close()
	t, err := ReadDelimited(f, r.comma)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	t.Name = filepath.Base(path)
	return t, nil
}

// ReadDelimited parses a header-first delimited stream. Ragged rows are
// accepted as-is and a leading UTF-8 byte order mark is dropped.
func ReadDelimited(rd io.Reader, comma rune) (*Table, error) {
	cr := csv.NewReader(bufio.NewReader(rd))
	cr.Comma = comma
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return &Table{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], utf8BOM)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}
	t := &Table{Header: header}
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", len(t.Rows)+1, err)
		}
		t.Rows = append(t.Rows, rec)
	}
	return t, nil
}

// Package tabular reads header-first tables from delimited text files and
// XLSX workbooks into memory.
package tabular

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Table is a fully materialised sheet: a header row plus data rows. Rows may
// be shorter than the header; callers treat absent cells as missing.
type Table struct {
	Name   string
	Header []string
	Rows   [][]string
}

// Index returns the position of the named column, or -1.
func (t *Table) Index(name string) int {
	for i, h := range t.Header {
		if h == name {
			return i
		}
	}
	return -1
}

// Options selects a sheet for workbook formats. SheetIndex is 1-based.
type Options struct {
	SheetName  string
	SheetIndex int
}

// Reader loads one file format.
type Reader interface {
	CanRead(path string) bool
	Read(path string, opt Options) (*Table, error)
}

var registry []Reader

// Register adds a reader implementation to the registry.
func Register(r Reader) {
	registry = append(registry, r)
}

// ErrUnsupported indicates no registered reader accepts the file extension.
var ErrUnsupported = errors.New("unsupported table format")

// Open selects a reader based on the file name. Files with an unknown
// extension are read as comma separated text.
func Open(path string, opt Options) (*Table, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	for _, r := range registry {
		if r.CanRead(path) {
			return r.Read(path, opt)
		}
	}
	if filepath.Ext(path) == "" {
		return csvReader{comma: ','}.Read(path, opt)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupported, filepath.Ext(path))
}

func init() {
	Register(csvReader{comma: ',', exts: []string{".csv", ".txt"}})
	Register(csvReader{comma: '\t', exts: []string{".tsv", ".tab"}})
	Register(xlsxReader{})
}

package preprocess

import (
	"fmt"
	"strings"
)

// InputNotFoundError indicates the raw dataset path does not exist.
type InputNotFoundError struct {
	Path string
	Err  error
}

func (e *InputNotFoundError) Error() string {
	return fmt.Sprintf("input not found: %s", e.Path)
}

func (e *InputNotFoundError) Unwrap() error { return e.Err }

// SchemaError indicates required columns are absent from the raw dataset.
type SchemaError struct {
	Path    string
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema error: %s is missing required columns: %s", e.Path, strings.Join(e.Missing, ", "))
}

// IOError wraps read, write and mirror failures. Op names the failed step.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

package ingestion

import (
	"errors"
	"fmt"
)

var (
	// ErrNotDirectory is wrapped by ScanRootError when the root exists but is not a directory.
	ErrNotDirectory = errors.New("not a directory")

	// ErrMissingColumns is returned by Decode when the table header lacks required columns.
	ErrMissingColumns = errors.New("missing required columns")
)

// ScanRootError reports that the configured trades directory cannot be used as a
// traversal root. It is the only error a scan surfaces to its caller.
type ScanRootError struct {
	Root string
	Err  error
}

func (e *ScanRootError) Error() string {
	return fmt.Sprintf("scan root %q: %v", e.Root, e.Err)
}

func (e *ScanRootError) Unwrap() error { return e.Err }

// FileReadError reports a source file (or directory entry) that could not be read.
// The scanner logs it and moves on.
type FileReadError struct {
	Path string
	Err  error
}

func (e *FileReadError) Error() string {
	return fmt.Sprintf("read %s: %v", e.Path, e.Err)
}

func (e *FileReadError) Unwrap() error { return e.Err }

// RowParseError reports a row dropped by the decoder.
//
// Row is the zero-based data row index (-1 for the header) and Line the
// one-based line number inside the source file.
type RowParseError struct {
	File   string
	Row    int
	Line   int
	Reason string
	Err    error
}

func (e *RowParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s line %d: %s: %v", e.File, e.Line, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s line %d: %s", e.File, e.Line, e.Reason)
}

func (e *RowParseError) Unwrap() error { return e.Err }

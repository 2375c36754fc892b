package ingestion

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/sync/errgroup"

	"github.com/guttosm/tradesync/internal/domain/models"
	"github.com/guttosm/tradesync/internal/logger"
)

const (
	// DefaultExtension is the extension (without dot) of broker trade exports.
	DefaultExtension = "csv"
	maxParallel      = 8
)

// readFile is an indirection so tests can simulate unreadable files.
var readFile = os.ReadFile

// ScannerOptions configures a Scanner.
//
// Fields:
//   - Extension: case-sensitive file extension without the dot (default "csv").
//   - HeaderLines: metadata lines before the table header (default 4).
//   - Strict: see DecodeOptions.Strict.
//   - Parallel: how many files are decoded concurrently (0 = min(8, NumCPU)).
type ScannerOptions struct {
	Extension   string
	HeaderLines int
	Strict      bool
	Parallel    int
}

// Scanner walks a trades directory and turns every matching file into records.
// A Scanner holds no mutable state and is safe for concurrent use.
type Scanner struct {
	root string
	opts ScannerOptions
}

// NewScanner returns a Scanner rooted at root, applying defaults to opts.
func NewScanner(root string, opts ScannerOptions) *Scanner {
	if opts.Extension == "" {
		opts.Extension = DefaultExtension
	}
	opts.Extension = strings.TrimPrefix(opts.Extension, ".")
	if opts.HeaderLines <= 0 {
		opts.HeaderLines = DefaultHeaderLines
	}
	if opts.Parallel <= 0 {
		opts.Parallel = maxParallel
		if c := runtime.NumCPU(); c < opts.Parallel {
			opts.Parallel = c
		}
	}
	return &Scanner{root: root, opts: opts}
}

// Root returns the directory this scanner walks.
func (s *Scanner) Root() string { return s.root }

// Extension returns the file extension this scanner matches.
func (s *Scanner) Extension() string { return s.opts.Extension }

type fileResult struct {
	summary models.FileSummary
	records []models.TradeRecord
	ok      bool
}

// Scan reads every matching file beneath the root and returns a new snapshot.
//
// Behavior:
//   - Fails with *ScanRootError only when the root cannot be used as a traversal root.
//   - Unreadable entries and files are logged and skipped.
//   - Files are decoded concurrently; records keep walk order across files
//     and row order within a file.
//
// Returns:
//   - *models.Snapshot: a fresh snapshot tagged with trigger, possibly empty.
//   - error: *ScanRootError, or nil.
func (s *Scanner) Scan(trigger models.Trigger) (*models.Snapshot, error) {
	start := time.Now()

	walkRoot, files, err := s.collect()
	if err != nil {
		return nil, err
	}

	results := make([]fileResult, len(files))

	var g errgroup.Group
	g.SetLimit(s.opts.Parallel)
	for i, path := range files {
		g.Go(func() error {
			results[i] = s.scanFile(walkRoot, path)
			return nil
		})
	}
	// Per-file failures are absorbed in scanFile; Wait never reports an error.
	_ = g.Wait()

	now := time.Now().UTC()
	snap := &models.Snapshot{
		ID:         models.NewSnapshotID(now),
		ProducedAt: now,
		Trigger:    trigger,
		Files:      make([]models.FileSummary, 0, len(results)),
		Records:    []models.TradeRecord{},
	}

	digest := xxhash.New()
	for _, r := range results {
		if !r.ok {
			continue
		}
		snap.Files = append(snap.Files, r.summary)
		snap.Records = append(snap.Records, r.records...)
		_, _ = digest.WriteString(r.summary.Path)
		_, _ = digest.WriteString(r.summary.Checksum)
	}
	snap.Fingerprint = strconv.FormatUint(digest.Sum64(), 16)

	logger.L().Info().
		Str("root", s.root).
		Str("trigger", string(trigger)).
		Str("snapshot", snap.ID).
		Int("files", len(snap.Files)).
		Int("records", len(snap.Records)).
		Dur("elapsed", time.Since(start)).
		Msg("scan done")

	return snap, nil
}

// collect establishes the root and lists matching files in walk order.
//
// A root that is a symlink (e.g. a linked cloud folder) is resolved first;
// WalkDir does not descend into a symlinked root. The resolved directory is
// returned so file paths can be reported relative to it.
func (s *Scanner) collect() (string, []string, error) {
	info, err := os.Stat(s.root)
	if err != nil {
		return "", nil, &ScanRootError{Root: s.root, Err: err}
	}
	if !info.IsDir() {
		return "", nil, &ScanRootError{Root: s.root, Err: ErrNotDirectory}
	}
	walkRoot, err := filepath.EvalSymlinks(s.root)
	if err != nil {
		return "", nil, &ScanRootError{Root: s.root, Err: err}
	}

	var files []string
	walkErr := filepath.WalkDir(walkRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == walkRoot {
				return err
			}
			logFileError(&FileReadError{Path: path, Err: err})
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if s.matches(path, d) {
			files = append(files, path)
		}
		return nil
	})
	if walkErr != nil {
		return "", nil, &ScanRootError{Root: s.root, Err: walkErr}
	}
	return walkRoot, files, nil
}

// matches reports whether a directory entry is a regular file (or a link to
// one) carrying the configured extension.
func (s *Scanner) matches(path string, d fs.DirEntry) bool {
	if strings.TrimPrefix(filepath.Ext(path), ".") != s.opts.Extension {
		return false
	}
	if d.Type().IsRegular() {
		return true
	}
	if d.Type()&fs.ModeSymlink != 0 {
		info, err := os.Stat(path)
		return err == nil && info.Mode().IsRegular()
	}
	return false
}

// scanFile reads and decodes one file. Failures are logged and reported via ok=false.
func (s *Scanner) scanFile(walkRoot, path string) fileResult {
	base := filepath.Base(path)
	rel, err := filepath.Rel(walkRoot, path)
	if err != nil {
		rel = base
	}

	data, err := readFile(path)
	if err != nil {
		logFileError(&FileReadError{Path: path, Err: err})
		return fileResult{}
	}

	res, err := Decode(base, data, DecodeOptions{HeaderLines: s.opts.HeaderLines, Strict: s.opts.Strict})
	if err != nil {
		var rpe *RowParseError
		if errors.As(err, &rpe) {
			logRowError(rpe)
		} else {
			logger.L().Warn().Str("file", base).Err(err).Msg("decode failed")
		}
	}

	return fileResult{
		summary: models.FileSummary{
			Path:     filepath.ToSlash(rel),
			Records:  len(res.Records),
			Dropped:  res.Dropped,
			Checksum: strconv.FormatUint(xxhash.Sum64(data), 16),
			Lossy:    res.Lossy,
		},
		records: res.Records,
		ok:      true,
	}
}

func logFileError(err *FileReadError) {
	logger.L().Warn().Str("file", err.Path).Err(err.Err).Msg("file read failed")
}

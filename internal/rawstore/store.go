// ABOUTME: Raw blob store for per-day wellness export artifacts.
// ABOUTME: File-backed implementation strips // comment lines before returning.
package rawstore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/akeil/wellkit/internal/models"
)

// ErrNotFound marks an artifact that is absent from the store.
var ErrNotFound = errors.New("artifact not found")

// Store provides per-(kind, date) JSON blobs from a wellness export.
// This interface allows swapping implementations (e.g., for testing).
type Store interface {
	// Read returns the artifact bytes for one kind and calendar date, or
	// an error wrapping ErrNotFound when the artifact is absent.
	Read(kind models.Kind, date string) ([]byte, error)

	// Dates lists every calendar date with a summary artifact, ascending.
	Dates() ([]string, error)
}

// FileStore reads artifacts from an export root directory on disk.
type FileStore struct {
	root string
}

// NewFileStore creates a FileStore rooted at the given export directory.
func NewFileStore(root string) *FileStore {
	return &FileStore{root: root}
}

// Root returns the export root directory.
func (s *FileStore) Root() string {
	return s.root
}

// Read returns the stripped artifact bytes for one kind and date.
func (s *FileStore) Read(kind models.Kind, date string) ([]byte, error) {
	path := filepath.Join(s.root, kind.Dir(), kind.Filename(date))
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s %s: %w", kind, date, ErrNotFound)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return StripComments(data), nil
}

// Dates lists calendar dates with a summary artifact, sorted ascending.
// A missing activities directory is an error: without it there is nothing
// to assemble and the caller must stop.
func (s *FileStore) Dates() ([]string, error) {
	dir := filepath.Join(s.root, models.KindSummary.Dir())
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("activities directory %s: %w", dir, err)
	}

	matches, err := filepath.Glob(filepath.Join(dir, "*_summary.json"))
	if err != nil {
		return nil, fmt.Errorf("scan summaries: %w", err)
	}

	dates := make([]string, 0, len(matches))
	for _, m := range matches {
		base := filepath.Base(m)
		dates = append(dates, strings.TrimSuffix(base, "_summary.json"))
	}
	sort.Strings(dates)
	return dates, nil
}

// StripComments drops lines whose first non-blank characters are //.
// Manually annotated export files carry such lines ahead of the JSON body.
func StripComments(data []byte) []byte {
	lines := strings.Split(string(data), "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "//") {
			continue
		}
		kept = append(kept, line)
	}
	return []byte(strings.Join(kept, "\n"))
}

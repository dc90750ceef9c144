package journal

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/cleared-dev/tally/internal/model"
)

// Service loads journal entries from a repo's journal/YYYY/MM tree.
// It is read-only: the engine reports on the journal, it never posts.
type Service struct {
	repoRoot string
}

// NewService creates a journal Service.
func NewService(repoRoot string) *Service {
	return &Service{repoRoot: repoRoot}
}

// ReadMonth reads all entries for a given year/month. A missing month
// file is an empty month, not an error.
func (s *Service) ReadMonth(year, month int) ([]model.JournalEntry, error) {
	path := s.monthPath(year, month)
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening journal %s: %w", path, err)
	}
	defer f.Close()

	entries, err := ReadEntries(f)
	if err != nil {
		return nil, fmt.Errorf("reading journal %s: %w", path, err)
	}
	return entries, nil
}

// ReadAll walks every journal/YYYY/MM/journal.csv under the repo root
// and returns all entries, oldest month first.
func (s *Service) ReadAll() ([]model.JournalEntry, error) {
	root := filepath.Join(s.repoRoot, "journal")
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && d.Name() == "journal.csv" {
			paths = append(paths, path)
		}
		return nil
	})
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("walking journal tree: %w", err)
	}
	sort.Strings(paths)

	var all []model.JournalEntry
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("opening journal %s: %w", path, err)
		}
		entries, err := ReadEntries(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("reading journal %s: %w", path, err)
		}
		all = append(all, entries...)
	}
	return all, nil
}

func (s *Service) monthPath(year, month int) string {
	return filepath.Join(s.repoRoot, "journal", fmt.Sprintf("%04d", year), fmt.Sprintf("%02d", month), "journal.csv")
}

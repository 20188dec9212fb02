package scanner

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/stationxml-rs/fixturecheck/internal/domain"
)

// FixtureScanner implements domain.FixtureLocator by reading a single
// directory level.
type FixtureScanner struct{}

func New() *FixtureScanner {
	return &FixtureScanner{}
}

// Locate creates fixturesDir and every ensure directory when missing, then
// returns the regular files in fixturesDir whose names match pattern,
// sorted by file name. Directory creation failures are ignored; a
// directory that still does not exist simply yields no fixtures.
func (s *FixtureScanner) Locate(fixturesDir, pattern string, ensure ...string) ([]domain.FixturePath, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("%w: %q", doublestar.ErrBadPattern, pattern)
	}

	absDir, err := filepath.Abs(fixturesDir)
	if err != nil {
		return nil, err
	}

	for _, dir := range append([]string{absDir}, ensure...) {
		_ = os.MkdirAll(dir, 0755)
	}

	entries, err := os.ReadDir(absDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var fixtures []domain.FixturePath
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if ok, _ := doublestar.Match(pattern, e.Name()); !ok {
			continue
		}
		fixtures = append(fixtures, domain.FixturePath{
			Path: filepath.Join(absDir, e.Name()),
			Name: e.Name(),
		})
	}

	sort.Slice(fixtures, func(i, j int) bool {
		return fixtures[i].Name < fixtures[j].Name
	})

	return fixtures, nil
}

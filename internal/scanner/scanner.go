// Package scanner discovers reunion years under the site root and lists the
// photos in each year's gallery.
package scanner

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-git/go-billy/v5"

	"github.com/JCSmillie/AlbrightReunion/internal/config"
	"github.com/JCSmillie/AlbrightReunion/internal/model"
)

// ErrRootNotFound is returned when the site root does not exist.
var ErrRootNotFound = errors.New("site root not found")

type Scanner struct {
	fs   billy.Filesystem
	root string
	cfg  config.Config
}

func New(fsys billy.Filesystem, root string, cfg config.Config) Scanner {
	return Scanner{
		fs:   fsys,
		root: root,
		cfg:  cfg,
	}
}

// Scan returns every immediate subdirectory of the root that holds a gallery
// directory, sorted by name. Candidates that cannot be read are left out.
func (s Scanner) Scan() ([]model.YearEntry, error) {
	info, err := s.fs.Stat(s.root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrRootNotFound, s.root)
		}
		return nil, fmt.Errorf("failed to stat site root '%s': %w", s.root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrRootNotFound, s.root)
	}

	entries, err := s.fs.ReadDir(s.root)
	if err != nil {
		return nil, fmt.Errorf("failed to list site root '%s': %w", s.root, err)
	}
	sortByName(entries)

	var years []model.YearEntry
	for _, entry := range entries {
		if !s.isDir(entry) {
			continue
		}

		year := model.YearEntry{
			Year:       entry.Name(),
			Dir:        filepath.Join(s.root, entry.Name()),
			GalleryDir: filepath.Join(s.root, entry.Name(), s.cfg.GalleryDir),
		}

		images, err := s.listImages(year.GalleryDir)
		if err != nil {
			slog.Debug("skipping year without a readable gallery", "year", year.Year, "error", err)
			continue
		}

		year.Images = images
		year.Highlights = SelectHighlights(images, s.cfg.HighlightPrefix, s.cfg.FeaturedImage)
		years = append(years, year)
	}

	return years, nil
}

// isDir follows symlinks so year folders linked in from elsewhere are found.
func (s Scanner) isDir(entry os.FileInfo) bool {
	if entry.Mode()&fs.ModeSymlink == 0 {
		return entry.IsDir()
	}

	target, err := s.fs.Stat(filepath.Join(s.root, entry.Name()))
	if err != nil {
		slog.Debug("skipping unreadable link", "name", entry.Name(), "error", err)
		return false
	}
	return target.IsDir()
}

func (s Scanner) listImages(dir string) ([]string, error) {
	info, err := s.fs.Stat(dir)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", dir)
	}

	entries, err := s.fs.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	images := []string{}
	for _, entry := range entries {
		if entry.IsDir() || !s.cfg.IsImage(entry.Name()) {
			continue
		}
		images = append(images, entry.Name())
	}
	sort.Strings(images)

	return images, nil
}

// SelectHighlights picks the curated subset of images: the featured image
// first when present, then every name starting with prefix in sorted order.
func SelectHighlights(images []string, prefix, featured string) []string {
	sorted := append([]string(nil), images...)
	sort.Strings(sorted)

	var highlights []string
	hasFeatured := false

	for _, name := range sorted {
		if featured != "" && name == featured {
			hasFeatured = true
			continue
		}
		if prefix != "" && strings.HasPrefix(name, prefix) {
			highlights = append(highlights, name)
		}
	}

	if hasFeatured {
		highlights = append([]string{featured}, highlights...)
	}

	return highlights
}

func sortByName(entries []os.FileInfo) {
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})
}

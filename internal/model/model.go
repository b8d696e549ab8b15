package model

import (
	"cmp"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
)

// YearEntry represents one reunion year discovered under the site root.
type YearEntry struct {
	Year       string
	Dir        string
	GalleryDir string
	Images     []string
	Highlights []string
}

// HighlightsPath returns where the year's highlights page is written.
func (y YearEntry) HighlightsPath(pageName string) string {
	return filepath.Join(y.Dir, pageName)
}

// GalleryIndexPath returns where the year's download-all page is written.
func (y YearEntry) GalleryIndexPath(pageName string) string {
	return filepath.Join(y.GalleryDir, pageName)
}

// SortYearsDescending orders year labels newest first. Integer labels compare
// numerically and come before any non-integer label, which compare as strings.
func SortYearsDescending(years []string) {
	slices.SortFunc(years, func(a, b string) int {
		ai, aErr := strconv.Atoi(a)
		bi, bErr := strconv.Atoi(b)

		switch {
		case aErr == nil && bErr == nil && ai != bi:
			return cmp.Compare(bi, ai)
		case aErr == nil && bErr != nil:
			return -1
		case aErr != nil && bErr == nil:
			return 1
		}
		return strings.Compare(b, a)
	})
}

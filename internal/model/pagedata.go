package model

import "html/template"

// PageData is what every page template receives.
type PageData struct {
	SiteTitle   string
	PageTitle   string
	Heading     string
	StyleSheets []string
	Scripts     []string
}

// HighlightsPage is the curated per-year page.
type HighlightsPage struct {
	PageData
	Year         string
	GroupKey     string
	GalleryDir   string
	GalleryIndex string
	HomePage     string
	Images       []string
}

// GalleryPage lists every photo of a year for download.
type GalleryPage struct {
	PageData
	Year           string
	Images         []string
	HighlightsPage string
}

// HomePage links every year that produced highlights.
type HomePage struct {
	PageData
	Years     []YearLink
	Attention template.HTML
	Intro     template.HTML
	Documents template.HTML
}

// YearLink is a single entry in the home page year list.
type YearLink struct {
	Href  string
	Label string
}

// Decorations are the optional fragments placed around the home page year
// list. Each is empty when its source file is absent.
type Decorations struct {
	Heading   string
	Attention template.HTML
	Intro     template.HTML
	Documents template.HTML
}

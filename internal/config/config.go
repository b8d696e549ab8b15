package config

import (
	"errors"
	"fmt"
	"strings"
)

const (
	LightboxCSS = "https://cdnjs.cloudflare.com/ajax/libs/lightbox2/2.11.4/css/lightbox.min.css"
	LightboxJS  = "https://cdnjs.cloudflare.com/ajax/libs/lightbox2/2.11.4/js/lightbox.min.js"
)

// Config holds every setting the generator needs. It is passed explicitly to
// the scanner, renderer and assembler so tests can point them at other roots.
type Config struct {
	RootDir     string `mapstructure:"rootDir" yaml:"rootDir"`
	SiteTitle   string `mapstructure:"siteTitle" yaml:"siteTitle"`
	SiteHeading string `mapstructure:"siteHeading" yaml:"siteHeading"`
	FamilyName  string `mapstructure:"familyName" yaml:"familyName"`
	YearSuffix  string `mapstructure:"yearSuffix" yaml:"yearSuffix"`

	GalleryDir      string   `mapstructure:"galleryDir" yaml:"galleryDir"`
	HighlightPrefix string   `mapstructure:"highlightPrefix" yaml:"highlightPrefix"`
	FeaturedImage   string   `mapstructure:"featuredImage" yaml:"featuredImage"`
	ImageExtensions []string `mapstructure:"imageExtensions" yaml:"imageExtensions"`

	IntroFile         string `mapstructure:"introFile" yaml:"introFile"`
	IntroMarkdownFile string `mapstructure:"introMarkdownFile" yaml:"introMarkdownFile"`
	AttentionImage    string `mapstructure:"attentionImage" yaml:"attentionImage"`
	DocumentExtension string `mapstructure:"documentExtension" yaml:"documentExtension"`

	StyleSheet  string `mapstructure:"styleSheet" yaml:"styleSheet"`
	LightboxCSS string `mapstructure:"lightboxCSS" yaml:"lightboxCSS"`
	LightboxJS  string `mapstructure:"lightboxJS" yaml:"lightboxJS"`

	HighlightsPage    string `mapstructure:"highlightsPage" yaml:"highlightsPage"`
	IndexPage         string `mapstructure:"indexPage" yaml:"indexPage"`
	WriteGalleryIndex bool   `mapstructure:"writeGalleryIndex" yaml:"writeGalleryIndex"`

	LogLevel string `mapstructure:"logLevel" yaml:"logLevel"`
}

// Defaults returns the configuration the reunion site has always been built
// with.
func Defaults() Config {
	return Config{
		RootDir:           ".",
		SiteTitle:         "Albright Reunion Gallery",
		SiteHeading:       "Welcome to the Albright Family Reunion Gallery",
		FamilyName:        "Albright",
		YearSuffix:        "th",
		GalleryDir:        "gallery",
		HighlightPrefix:   "highlight",
		FeaturedImage:     "family_group.jpg",
		ImageExtensions:   []string{".jpg"},
		IntroFile:         "intro.txt",
		IntroMarkdownFile: "intro.md",
		AttentionImage:    "Attention.png",
		DocumentExtension: ".pdf",
		StyleSheet:        "style.css",
		LightboxCSS:       LightboxCSS,
		LightboxJS:        LightboxJS,
		HighlightsPage:    "highlights.html",
		IndexPage:         "index.html",
		WriteGalleryIndex: true,
		LogLevel:          "info",
	}
}

// Validate reports the settings the generator cannot run without.
func (c Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.RootDir) == "" {
		errs = append(errs, errors.New("rootDir must not be empty"))
	}
	if strings.TrimSpace(c.GalleryDir) == "" {
		errs = append(errs, errors.New("galleryDir must not be empty"))
	}
	if c.HighlightsPage == "" || c.IndexPage == "" {
		errs = append(errs, errors.New("highlightsPage and indexPage must not be empty"))
	}
	if len(c.ImageExtensions) == 0 {
		errs = append(errs, errors.New("at least one image extension is required"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}

// YearLabel is how a year directory is named in page titles, e.g. "45th".
func (c Config) YearLabel(year string) string {
	return year + c.YearSuffix
}

// IsImage reports whether name carries one of the configured image
// extensions, ignoring case.
func (c Config) IsImage(name string) bool {
	lower := strings.ToLower(name)
	for _, ext := range c.ImageExtensions {
		if strings.HasSuffix(lower, strings.ToLower(ext)) {
			return true
		}
	}
	return false
}

// IsDocument reports whether name is a document linked from the home page.
func (c Config) IsDocument(name string) bool {
	return c.DocumentExtension != "" &&
		strings.HasSuffix(strings.ToLower(name), strings.ToLower(c.DocumentExtension))
}

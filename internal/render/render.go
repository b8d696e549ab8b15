// Package render turns lists of photo names into the gallery's HTML pages.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"path/filepath"
	"strings"

	"github.com/JCSmillie/AlbrightReunion/internal/config"
	"github.com/JCSmillie/AlbrightReunion/internal/model"
)

const (
	highlightsLayout = "highlights.html"
	galleryLayout    = "gallery.html"
	homeLayout       = "home.html"
)

//go:embed templates
var templateFS embed.FS

// Renderer executes the embedded page templates against a configuration.
type Renderer struct {
	cfg       config.Config
	templates *template.Template
}

// New parses the page layouts and partials. The partials are parsed with the
// layouts so every page can use the shared head.
func New(cfg config.Config) (*Renderer, error) {
	templates, err := template.ParseFS(templateFS, "templates/*.html", "templates/partials/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse page templates: %w", err)
	}

	return &Renderer{
		cfg:       cfg,
		templates: templates,
	}, nil
}

// Highlights renders the curated page written to <year>/highlights.html.
func (r *Renderer) Highlights(year string, images []string) (string, error) {
	label := r.cfg.YearLabel(year)

	page := model.HighlightsPage{
		PageData: model.PageData{
			SiteTitle:   r.cfg.SiteTitle,
			PageTitle:   fmt.Sprintf("%s Reunion Highlights", label),
			Heading:     fmt.Sprintf("%s %s Reunion - Highlights", label, r.cfg.FamilyName),
			StyleSheets: r.styleSheets(1, r.cfg.LightboxCSS),
			Scripts:     nonEmpty(r.cfg.LightboxJS),
		},
		Year:         label,
		GroupKey:     label,
		GalleryDir:   filepath.ToSlash(r.cfg.GalleryDir),
		GalleryIndex: filepath.ToSlash(filepath.Join(r.cfg.GalleryDir, r.cfg.IndexPage)),
		HomePage:     "../" + r.cfg.IndexPage,
		Images:       images,
	}

	return r.execute(highlightsLayout, page)
}

// Gallery renders the download-all page written inside the gallery directory.
func (r *Renderer) Gallery(year string, images []string) (string, error) {
	label := r.cfg.YearLabel(year)
	depth := r.galleryDepth()

	page := model.GalleryPage{
		PageData: model.PageData{
			SiteTitle:   r.cfg.SiteTitle,
			PageTitle:   fmt.Sprintf("%s Reunion - All Photos", label),
			Heading:     fmt.Sprintf("%s Reunion - Full Photo Set", label),
			StyleSheets: r.styleSheets(depth),
		},
		Year:           label,
		Images:         images,
		HighlightsPage: strings.Repeat("../", depth-1) + r.cfg.HighlightsPage,
	}

	return r.execute(galleryLayout, page)
}

// Home renders the site index. Years are listed newest first regardless of
// the order they are passed in.
func (r *Renderer) Home(years []string, decorations model.Decorations) (string, error) {
	sorted := append([]string(nil), years...)
	model.SortYearsDescending(sorted)

	heading := r.cfg.SiteHeading
	if decorations.Heading != "" {
		heading = decorations.Heading
	}

	page := model.HomePage{
		PageData: model.PageData{
			SiteTitle:   r.cfg.SiteTitle,
			PageTitle:   r.cfg.SiteTitle,
			Heading:     heading,
			StyleSheets: r.styleSheets(0),
		},
		Attention: decorations.Attention,
		Intro:     decorations.Intro,
		Documents: decorations.Documents,
	}

	for _, year := range sorted {
		page.Years = append(page.Years, model.YearLink{
			Href:  year + "/" + r.cfg.HighlightsPage,
			Label: r.cfg.YearLabel(year),
		})
	}

	return r.execute(homeLayout, page)
}

// Intro wraps already escaped intro text in its paragraph.
func (r *Renderer) Intro(text string) (template.HTML, error) {
	if text == "" {
		return "", nil
	}
	return r.fragment("intro", template.HTML(text)) // #nosec G203 -- escaped by the caller
}

// IntroMarkdown wraps intro HTML produced by the Markdown converter.
func (r *Renderer) IntroMarkdown(html template.HTML) (template.HTML, error) {
	if strings.TrimSpace(string(html)) == "" {
		return "", nil
	}
	return r.fragment("intro-markdown", html)
}

// Attention renders the announcement block for the given image.
func (r *Renderer) Attention(image string) (template.HTML, error) {
	if image == "" {
		return "", nil
	}
	return r.fragment("attention", image)
}

// Documents renders the list of document links, in the order given.
func (r *Renderer) Documents(names []string) (template.HTML, error) {
	if len(names) == 0 {
		return "", nil
	}
	return r.fragment("documents", names)
}

func (r *Renderer) execute(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to execute template '%s': %w", name, err)
	}
	return buf.String(), nil
}

func (r *Renderer) fragment(name string, data any) (template.HTML, error) {
	out, err := r.execute(name, data)
	if err != nil {
		return "", err
	}
	return template.HTML(out), nil // #nosec G203 -- produced by html/template
}

// styleSheets returns the site stylesheet as seen from a page depth levels
// below the root, followed by any extra stylesheets.
func (r *Renderer) styleSheets(depth int, extra ...string) []string {
	sheets := nonEmpty(relativeAsset(depth, r.cfg.StyleSheet))
	return append(sheets, nonEmpty(extra...)...)
}

func (r *Renderer) galleryDepth() int {
	dir := filepath.ToSlash(filepath.Clean(r.cfg.GalleryDir))
	return strings.Count(dir, "/") + 2
}

func relativeAsset(depth int, ref string) string {
	if ref == "" || strings.HasPrefix(ref, "/") || strings.Contains(ref, "://") {
		return ref
	}
	return strings.Repeat("../", depth) + ref
}

func nonEmpty(values ...string) []string {
	var out []string
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

package site

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"

	"github.com/JCSmillie/AlbrightReunion/internal/config"
	"github.com/JCSmillie/AlbrightReunion/internal/model"
	"github.com/JCSmillie/AlbrightReunion/internal/render"
)

// introReplacements run in order: escaped CRLF and CR before the backslash
// collapse, and the backslash collapse before real newlines.
var introReplacements = []struct{ from, to string }{
	{`\\n`, "<br>"},
	{`\r\n`, "<br>"},
	{`\r`, "<br>"},
	{`\\`, `\`},
	{"\n", "<br>"},
}

var introEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

type introFrontmatter struct {
	Heading string `yaml:"heading"`
}

// FormatIntroText escapes intro text and turns line breaks into <br>.
func FormatIntroText(raw string) string {
	text := introEscaper.Replace(strings.TrimSpace(raw))
	for _, r := range introReplacements {
		text = strings.ReplaceAll(text, r.from, r.to)
	}
	return text
}

// LoadDecorations gathers the optional home page fragments found at the root.
func LoadDecorations(fsys billy.Filesystem, root string, cfg config.Config, r *render.Renderer) (model.Decorations, error) {
	var (
		err         error
		decorations model.Decorations
	)

	if decorations, err = LoadIntro(fsys, root, cfg, r); err != nil {
		return decorations, err
	}

	if decorations.Attention, err = AttentionHTML(fsys, root, cfg, r); err != nil {
		return decorations, err
	}

	if decorations.Documents, err = DocumentsHTML(fsys, root, cfg, r); err != nil {
		return decorations, err
	}

	return decorations, nil
}

// LoadIntro reads intro.txt, or intro.md when there is no plain-text intro.
// Both missing is not an error.
func LoadIntro(fsys billy.Filesystem, root string, cfg config.Config, r *render.Renderer) (model.Decorations, error) {
	var decorations model.Decorations

	raw, found, err := readOptional(fsys, filepath.Join(root, cfg.IntroFile))
	if err != nil {
		return decorations, err
	}
	if found {
		decorations.Intro, err = r.Intro(FormatIntroText(string(raw)))
		return decorations, err
	}

	if cfg.IntroMarkdownFile == "" {
		return decorations, nil
	}

	raw, found, err = readOptional(fsys, filepath.Join(root, cfg.IntroMarkdownFile))
	if err != nil || !found {
		return decorations, err
	}

	var meta introFrontmatter
	body, err := frontmatter.Parse(bytes.NewReader(raw), &meta)
	if err != nil {
		return decorations, fmt.Errorf("failed to parse front matter in '%s': %w", cfg.IntroMarkdownFile, err)
	}

	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(
			gmhtml.WithHardWraps(),
		),
	)

	var buf bytes.Buffer
	if err = md.Convert(body, &buf); err != nil {
		return decorations, fmt.Errorf("failed to convert '%s' to HTML: %w", cfg.IntroMarkdownFile, err)
	}

	decorations.Heading = strings.TrimSpace(meta.Heading)
	decorations.Intro, err = r.IntroMarkdown(template.HTML(buf.String())) // #nosec G203 -- goldmark drops raw HTML
	return decorations, err
}

// AttentionHTML returns the announcement block when the announcement image
// exists at the root.
func AttentionHTML(fsys billy.Filesystem, root string, cfg config.Config, r *render.Renderer) (template.HTML, error) {
	if cfg.AttentionImage == "" {
		return "", nil
	}

	info, err := fsys.Stat(filepath.Join(root, cfg.AttentionImage))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("failed to check for '%s': %w", cfg.AttentionImage, err)
	}
	if info.IsDir() {
		return "", nil
	}

	return r.Attention(cfg.AttentionImage)
}

// DocumentsHTML links every document file at the root, sorted by name.
func DocumentsHTML(fsys billy.Filesystem, root string, cfg config.Config, r *render.Renderer) (template.HTML, error) {
	entries, err := fsys.ReadDir(root)
	if err != nil {
		return "", fmt.Errorf("failed to list documents in '%s': %w", root, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !cfg.IsDocument(entry.Name()) {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	return r.Documents(names)
}

func readOptional(fsys billy.Filesystem, path string) ([]byte, bool, error) {
	info, err := fsys.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to stat '%s': %w", path, err)
	}
	if info.IsDir() {
		return nil, false, nil
	}

	b, err := util.ReadFile(fsys, path)
	if err != nil {
		return nil, false, fmt.Errorf("failed to read '%s': %w", path, err)
	}
	return b, true, nil
}

// Package site assembles the reunion gallery: it writes a highlights page and
// a download page for every year with highlights, then the home page linking
// them.
package site

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"

	"github.com/JCSmillie/AlbrightReunion/internal/config"
	"github.com/JCSmillie/AlbrightReunion/internal/model"
	"github.com/JCSmillie/AlbrightReunion/internal/render"
	"github.com/JCSmillie/AlbrightReunion/internal/scanner"
)

const pagePerm = 0o644

type GeneratorConfig struct {
	Config   config.Config
	FS       billy.Filesystem
	Root     string
	Renderer *render.Renderer
}

type Generator struct {
	cfg      config.Config
	fs       billy.Filesystem
	root     string
	renderer *render.Renderer
	scanner  scanner.Scanner
}

// Result describes what a generation run wrote.
type Result struct {
	Years       []string
	HomeWritten bool
}

func NewGenerator(config GeneratorConfig) Generator {
	return Generator{
		cfg:      config.Config,
		fs:       config.FS,
		root:     config.Root,
		renderer: config.Renderer,
		scanner:  scanner.New(config.FS, config.Root, config.Config),
	}
}

// Generate runs one full pass over the root. Every year page is written
// before the home page, and the home page is only written when at least one
// year had highlights. Pages written before an error are left in place.
func (g Generator) Generate() (Result, error) {
	var result Result

	years, err := g.scanner.Scan()
	if err != nil {
		return result, err
	}

	for _, year := range years {
		if len(year.Highlights) == 0 {
			slog.Debug("no highlights found, skipping year", "year", year.Year)
			continue
		}

		if err = g.writeYear(year); err != nil {
			return result, err
		}

		slog.Info("generated highlights and gallery index",
			"year", year.Year,
			"highlights", len(year.Highlights),
			"total", len(year.Images),
		)
		result.Years = append(result.Years, year.Year)
	}

	if len(result.Years) == 0 {
		slog.Warn("no reunion years with highlights found, home page not updated", "root", g.root)
		return result, nil
	}

	decorations, err := LoadDecorations(g.fs, g.root, g.cfg, g.renderer)
	if err != nil {
		return result, err
	}

	home, err := g.renderer.Home(result.Years, decorations)
	if err != nil {
		return result, err
	}

	homePath := filepath.Join(g.root, g.cfg.IndexPage)
	if err = g.write(homePath, home); err != nil {
		return result, err
	}

	result.HomeWritten = true
	slog.Info("updated home page", "path", homePath, "years", len(result.Years))

	return result, nil
}

func (g Generator) writeYear(year model.YearEntry) error {
	highlights, err := g.renderer.Highlights(year.Year, year.Highlights)
	if err != nil {
		return fmt.Errorf("failed to render highlights for %s: %w", year.Year, err)
	}

	if err = g.write(year.HighlightsPath(g.cfg.HighlightsPage), highlights); err != nil {
		return err
	}

	if !g.cfg.WriteGalleryIndex {
		return nil
	}

	gallery, err := g.renderer.Gallery(year.Year, year.Images)
	if err != nil {
		return fmt.Errorf("failed to render gallery index for %s: %w", year.Year, err)
	}

	return g.write(year.GalleryIndexPath(g.cfg.IndexPage), gallery)
}

func (g Generator) write(path, contents string) error {
	if err := util.WriteFile(g.fs, path, []byte(contents), pagePerm); err != nil {
		return fmt.Errorf("failed to write '%s': %w", path, err)
	}
	return nil
}

// cmd/build.go
package cmd

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/spf13/cobra"

	"github.com/JCSmillie/AlbrightReunion/internal/config"
	"github.com/JCSmillie/AlbrightReunion/internal/render"
	"github.com/JCSmillie/AlbrightReunion/internal/site"
)

// buildCmd represents the build command
var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Builds the reunion gallery pages",
	Long: `The build command looks for '<root>/<year>/gallery/*.jpg', writes
'<year>/highlights.html' and '<year>/gallery/index.html' for every year with
highlight photos, then rewrites '<root>/index.html' with intro text, the
announcement image and any PDF documents found in the root. Running the
binary without a command does the same thing.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBuildProcess(appConfig)
	},
}

func runBuildProcess(cfg config.Config) error {
	root, err := filepath.Abs(cfg.RootDir)
	if err != nil {
		return fmt.Errorf("failed to resolve site root '%s': %w", cfg.RootDir, err)
	}

	slog.Info("starting gallery build", "root", root)

	renderer, err := render.New(cfg)
	if err != nil {
		return err
	}

	generator := site.NewGenerator(site.GeneratorConfig{
		Config:   cfg,
		FS:       osfs.New("/"),
		Root:     root,
		Renderer: renderer,
	})

	result, err := generator.Generate()
	if err != nil {
		return fmt.Errorf("gallery build failed: %w", err)
	}

	slog.Info("gallery build completed", "years", len(result.Years), "homePageWritten", result.HomeWritten)
	return nil
}

func init() {
	rootCmd.AddCommand(buildCmd)
}

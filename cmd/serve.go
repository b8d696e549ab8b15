// cmd/serve.go
package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/JCSmillie/AlbrightReunion/internal/config"
)

var serverPort int

// buildMu keeps a debounced rebuild from overlapping one still running.
var buildMu sync.Mutex

const debounceDuration = 500 * time.Millisecond

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the gallery locally and rebuilds when photos change",
	Long: `The serve command builds the gallery once, serves the site root over
HTTP, and watches the root for new or removed photos, intro text, the
announcement image and documents, rebuilding the pages after each change.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := filepath.Abs(appConfig.RootDir)
		if err != nil {
			return fmt.Errorf("failed to resolve site root '%s': %w", appConfig.RootDir, err)
		}

		slog.Info("performing initial build...")
		if err := rebuild(appConfig); err != nil {
			return fmt.Errorf("initial build failed, fix the issues and try again: %w", err)
		}

		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return fmt.Errorf("failed to create file watcher: %w", err)
		}
		defer watcher.Close()

		if err := watchTree(watcher, root); err != nil {
			return err
		}

		go watchLoop(watcher, appConfig)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return serve(ctx, root, serverPort)
	},
}

func watchTree(watcher *fsnotify.Watcher, root string) error {
	slog.Info("setting up watch", "root", root)

	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			slog.Warn("error walking path", "path", path, "error", err)
			return nil
		}
		if d.IsDir() {
			if watchErr := watcher.Add(path); watchErr != nil {
				slog.Warn("failed to watch directory", "path", path, "error", watchErr)
			}
		}
		return nil
	})
}

func watchLoop(watcher *fsnotify.Watcher, cfg config.Config) {
	var buildTimer *time.Timer

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !relevantEvent(event, cfg) {
				continue
			}

			slog.Info("change detected", "path", event.Name, "op", event.Op.String())

			if event.Has(fsnotify.Create) && isDir(event.Name) {
				if err := watchTree(watcher, event.Name); err != nil {
					slog.Warn("error watching new directory", "path", event.Name, "error", err)
				}
			}

			if buildTimer != nil {
				buildTimer.Stop()
			}
			buildTimer = time.AfterFunc(debounceDuration, func() {
				slog.Info("rebuilding gallery due to changes...")
				if err := runBuildProcess(cfg); err != nil {
					slog.Error("error during rebuild", "error", err)
				}
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			slog.Error("watcher error", "error", err)
		}
	}
}

func rebuild(cfg config.Config) error {
	buildMu.Lock()
	defer buildMu.Unlock()
	return runBuildProcess(cfg)
}

// relevantEvent ignores the pages the build itself writes so a rebuild does
// not trigger another one.
func relevantEvent(event fsnotify.Event, cfg config.Config) bool {
	if !(event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)) {
		return false
	}

	name := filepath.Base(event.Name)
	if name == cfg.HighlightsPage || name == cfg.IndexPage {
		return false
	}
	return !strings.HasPrefix(name, ".")
}

func serve(ctx context.Context, root string, port int) error {
	files := http.FileServer(http.Dir(root))

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
		w.Header().Set("Pragma", "no-cache")
		w.Header().Set("Expires", "0")
		files.ServeHTTP(w, r)
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           mux,
		ReadHeaderTimeout: 15 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown error", "error", err)
		}
	}()

	slog.Info("serving gallery", "root", root, "url", fmt.Sprintf("http://localhost:%d", port))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}

	slog.Info("server stopped")
	return nil
}

func isDir(path string) bool {
	fileInfo, err := os.Stat(path)
	if err != nil {
		return false
	}
	return fileInfo.IsDir()
}

func init() {
	serveCmd.Flags().IntVarP(&serverPort, "port", "p", 1313, "Port to serve the gallery on")
	rootCmd.AddCommand(serveCmd)
}

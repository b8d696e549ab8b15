package cmd

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JCSmillie/AlbrightReunion/internal/config"
)

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
}

func TestInitializeConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gallery.yaml")
	writeFile(t, path, "rootDir: /srv/reunion\nfamilyName: Smith\nimageExtensions: [.jpg, .jpeg]\n")

	cfgFile = path
	t.Cleanup(func() { cfgFile = "" })

	require.NoError(t, initializeConfig(rootCmd))
	assert.Equal(t, "/srv/reunion", appConfig.RootDir)
	assert.Equal(t, "Smith", appConfig.FamilyName)
	assert.Equal(t, []string{".jpg", ".jpeg"}, appConfig.ImageExtensions)
	assert.Equal(t, "family_group.jpg", appConfig.FeaturedImage)
}

func TestInitializeConfigEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gallery.yaml")
	writeFile(t, path, "siteTitle: From File\n")

	cfgFile = path
	t.Cleanup(func() { cfgFile = "" })
	t.Setenv("GALLERY_SITETITLE", "From Env")

	require.NoError(t, initializeConfig(rootCmd))
	assert.Equal(t, "From Env", appConfig.SiteTitle)
}

func TestInitializeConfigMissingExplicitFile(t *testing.T) {
	cfgFile = filepath.Join(t.TempDir(), "missing.yaml")
	t.Cleanup(func() { cfgFile = "" })

	require.Error(t, initializeConfig(rootCmd))
}

func TestRunBuildProcess(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "45", "gallery", "highlight1.jpg"), "")
	writeFile(t, filepath.Join(root, "45", "gallery", "other.jpg"), "")
	writeFile(t, filepath.Join(root, "40", "gallery", "other.jpg"), "")
	writeFile(t, filepath.Join(root, "minutes.pdf"), "")

	cfg := config.Defaults()
	cfg.RootDir = root
	require.NoError(t, runBuildProcess(cfg))

	home, err := os.ReadFile(filepath.Join(root, "index.html"))
	require.NoError(t, err)
	assert.Contains(t, string(home), `href="45/highlights.html"`)
	assert.NotContains(t, string(home), `href="40/highlights.html"`)
	assert.Contains(t, string(home), `href="minutes.pdf"`)

	assert.FileExists(t, filepath.Join(root, "45", "highlights.html"))
	assert.FileExists(t, filepath.Join(root, "45", "gallery", "index.html"))
	assert.NoFileExists(t, filepath.Join(root, "40", "highlights.html"))
}

func TestRunBuildProcessFollowsSymlinkedYears(t *testing.T) {
	root := t.TempDir()
	elsewhere := t.TempDir()
	writeFile(t, filepath.Join(elsewhere, "45", "gallery", "highlight1.jpg"), "")
	writeFile(t, filepath.Join(elsewhere, "40-gallery", "highlight1.jpg"), "")
	require.NoError(t, os.Symlink(filepath.Join(elsewhere, "45"), filepath.Join(root, "45")))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "40"), 0o755))
	require.NoError(t, os.Symlink(filepath.Join(elsewhere, "40-gallery"), filepath.Join(root, "40", "gallery")))
	writeFile(t, filepath.Join(elsewhere, "notes.txt"), "")
	require.NoError(t, os.Symlink(filepath.Join(elsewhere, "notes.txt"), filepath.Join(root, "35")))

	cfg := config.Defaults()
	cfg.RootDir = root
	require.NoError(t, runBuildProcess(cfg))

	home, err := os.ReadFile(filepath.Join(root, "index.html"))
	require.NoError(t, err)
	assert.Contains(t, string(home), `href="45/highlights.html"`)
	assert.Contains(t, string(home), `href="40/highlights.html"`)
	assert.NotContains(t, string(home), `href="35/highlights.html"`)
	assert.FileExists(t, filepath.Join(elsewhere, "45", "highlights.html"))
}

func TestRebuildWaitsForRunningBuild(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "45", "gallery", "highlight1.jpg"), "")

	cfg := config.Defaults()
	cfg.RootDir = root

	buildMu.Lock()
	done := make(chan error, 1)
	go func() { done <- rebuild(cfg) }()

	select {
	case <-done:
		buildMu.Unlock()
		t.Fatal("rebuild ran while another build held the lock")
	case <-time.After(100 * time.Millisecond):
	}
	assert.NoFileExists(t, filepath.Join(root, "index.html"))

	buildMu.Unlock()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("rebuild did not finish")
	}
	assert.FileExists(t, filepath.Join(root, "index.html"))
}

func TestRunBuildProcessMissingRoot(t *testing.T) {
	cfg := config.Defaults()
	cfg.RootDir = filepath.Join(t.TempDir(), "missing")
	require.Error(t, runBuildProcess(cfg))
}

func TestRelevantEvent(t *testing.T) {
	cfg := config.Defaults()

	assert.True(t, relevantEvent(fsnotify.Event{Name: "/site/45/gallery/new.jpg", Op: fsnotify.Create}, cfg))
	assert.True(t, relevantEvent(fsnotify.Event{Name: "/site/intro.txt", Op: fsnotify.Write}, cfg))
	assert.False(t, relevantEvent(fsnotify.Event{Name: "/site/45/highlights.html", Op: fsnotify.Write}, cfg))
	assert.False(t, relevantEvent(fsnotify.Event{Name: "/site/index.html", Op: fsnotify.Create}, cfg))
	assert.False(t, relevantEvent(fsnotify.Event{Name: "/site/.intro.txt.swp", Op: fsnotify.Write}, cfg))
	assert.False(t, relevantEvent(fsnotify.Event{Name: "/site/intro.txt", Op: fsnotify.Chmod}, cfg))
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLogLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, parseLogLevel("warning"))
	assert.Equal(t, slog.LevelError, parseLogLevel("error"))
	assert.Equal(t, slog.LevelInfo, parseLogLevel(""))
}

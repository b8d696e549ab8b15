package site

import (
	"html/template"
	"strings"
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JCSmillie/AlbrightReunion/internal/config"
	"github.com/JCSmillie/AlbrightReunion/internal/render"
)

func TestFormatIntroText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain", in: "hello", want: "hello"},
		{name: "trimmed", in: "\n  hello \r\n", want: "hello"},
		{name: "escapes markup", in: `a & <b> "c"`, want: `a &amp; &lt;b&gt; "c"`},
		{name: "real newline", in: "one\ntwo", want: "one<br>two"},
		{name: "escaped backslash newline", in: `one\\ntwo`, want: "one<br>two"},
		{name: "escaped crlf", in: `one\r\ntwo`, want: "one<br>two"},
		{name: "escaped cr", in: `one\rtwo`, want: "one<br>two"},
		{name: "escaped backslash collapses", in: `C:\\photos`, want: `C:\photos`},
		{name: "single escaped newline kept", in: `one\ntwo`, want: `one\ntwo`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatIntroText(tt.in))
		})
	}
}

func TestFormatIntroTextHasNoRawNewlines(t *testing.T) {
	out := FormatIntroText("a\nb\n\nc")
	assert.NotContains(t, out, "\n")
	assert.Equal(t, 3, strings.Count(out, "<br>"))
}

func newTestRenderer(t *testing.T, cfg config.Config) *render.Renderer {
	t.Helper()
	r, err := render.New(cfg)
	require.NoError(t, err)
	return r
}

func TestLoadIntroAbsent(t *testing.T) {
	fsys := memfs.New()
	require.NoError(t, fsys.MkdirAll(root, 0o755))
	cfg := config.Defaults()

	decorations, err := LoadIntro(fsys, root, cfg, newTestRenderer(t, cfg))
	require.NoError(t, err)
	assert.Empty(t, decorations.Intro)
	assert.Empty(t, decorations.Heading)
}

func TestLoadIntroPrefersPlainText(t *testing.T) {
	fsys := memfs.New()
	writeFiles(t, fsys, map[string]string{
		"intro.txt": "plain",
		"intro.md":  "# markdown",
	})
	cfg := config.Defaults()

	decorations, err := LoadIntro(fsys, root, cfg, newTestRenderer(t, cfg))
	require.NoError(t, err)
	assert.Equal(t, template.HTML("<p class='intro'>plain</p>"), decorations.Intro)
}

func TestLoadIntroMarkdown(t *testing.T) {
	fsys := memfs.New()
	writeFiles(t, fsys, map[string]string{
		"intro.md": "---\nheading: Albright Reunion 2025\n---\nSee **everyone**\nat the park <script>x</script>\n",
	})
	cfg := config.Defaults()

	decorations, err := LoadIntro(fsys, root, cfg, newTestRenderer(t, cfg))
	require.NoError(t, err)

	assert.Equal(t, "Albright Reunion 2025", decorations.Heading)
	intro := string(decorations.Intro)
	assert.True(t, strings.HasPrefix(intro, "<div class='intro'>"))
	assert.Contains(t, intro, "<strong>everyone</strong>")
	assert.Contains(t, intro, "<br")
	assert.NotContains(t, intro, "<script>")
}

func TestAttentionHTML(t *testing.T) {
	fsys := memfs.New()
	require.NoError(t, fsys.MkdirAll(root, 0o755))
	cfg := config.Defaults()
	r := newTestRenderer(t, cfg)

	html, err := AttentionHTML(fsys, root, cfg, r)
	require.NoError(t, err)
	assert.Empty(t, html)

	writeFiles(t, fsys, map[string]string{"Attention.png": "png"})
	html, err = AttentionHTML(fsys, root, cfg, r)
	require.NoError(t, err)
	assert.Contains(t, string(html), `src="Attention.png"`)
}

func TestDocumentsHTMLSorted(t *testing.T) {
	fsys := memfs.New()
	writeFiles(t, fsys, map[string]string{
		"b.pdf":          "",
		"a.pdf":          "",
		"notes.txt":      "",
		"45/minutes.pdf": "",
	})
	cfg := config.Defaults()

	html, err := DocumentsHTML(fsys, root, cfg, newTestRenderer(t, cfg))
	require.NoError(t, err)

	out := string(html)
	assert.Less(t, strings.Index(out, "a.pdf"), strings.Index(out, "b.pdf"))
	assert.NotContains(t, out, "notes.txt")
	assert.NotContains(t, out, "minutes.pdf")
}

func TestDocumentsHTMLNone(t *testing.T) {
	fsys := memfs.New()
	writeFiles(t, fsys, map[string]string{"notes.txt": ""})
	cfg := config.Defaults()

	html, err := DocumentsHTML(fsys, root, cfg, newTestRenderer(t, cfg))
	require.NoError(t, err)
	assert.Empty(t, html)
}

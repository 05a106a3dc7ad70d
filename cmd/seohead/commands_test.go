package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/require"
)

func newGlobal(stdin string) (*Global, *bytes.Buffer) {
	var out bytes.Buffer
	return &Global{Stdout: &out, Stdin: strings.NewReader(stdin)}, &out
}

func TestTagsFromStdin(t *testing.T) {
	g, out := newGlobal("title: Hello\ndescription: World\n")
	require.NoError(t, (&TagsCmd{File: "-"}).Run(g, &CLI{}))
	require.Equal(t, "<title>Hello</title>\n<meta name=\"description\" content=\"World\">\n", out.String())
}

func TestTagsWithDefaults(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "site.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("site:\n  title: Ex\n  url: https://example.com\nseo:\n  titleTemplate: \"%s | Ex\"\n"), 0o644))
	doc := filepath.Join(dir, "page.yaml")
	require.NoError(t, os.WriteFile(doc, []byte("title: Page\n"), 0o644))

	g, out := newGlobal("")
	require.NoError(t, (&TagsCmd{File: doc, Defaults: true}).Run(g, &CLI{Config: cfgPath}))
	require.Equal(t, "<title>Page | Ex</title>\n", out.String())

	g, _ = newGlobal("")
	require.Error(t, (&TagsCmd{File: doc, Defaults: true}).Run(g, &CLI{Config: filepath.Join(dir, "missing.yaml")}))
}

func TestBuildAndCheck(t *testing.T) {
	dir := t.TempDir()
	content := filepath.Join(dir, "content")
	require.NoError(t, os.MkdirAll(content, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(content, "index.md"), []byte("---\ntitle: Home\nslug: index\n---\nHi."), 0o644))
	cfgPath := filepath.Join(dir, "site.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(
		"site:\n  title: Ex\n  url: https://example.com\nbuild:\n  source_dir: "+content+"\n  public_dir: "+filepath.Join(dir, "public")+"\n"), 0o644))

	g, out := newGlobal("")
	require.NoError(t, (&CheckCmd{}).Run(context.Background(), g, &CLI{Config: cfgPath}))
	require.Equal(t, "1 pages, 0 problems\n", out.String())

	g, out = newGlobal("")
	public := filepath.Join(dir, "elsewhere")
	require.NoError(t, (&BuildCmd{Public: public}).Run(context.Background(), g, &CLI{Config: cfgPath}))
	require.Equal(t, "1 pages: 1 written, 0 unchanged, 0 removed, 0 drafts skipped, 0 warnings\n", out.String())
	require.FileExists(t, filepath.Join(public, "index.html"))

	require.NoError(t, os.WriteFile(filepath.Join(content, "bad.md"), []byte("---\ntitle: [\n---\n"), 0o644))
	g, out = newGlobal("")
	require.ErrorIs(t, (&CheckCmd{}).Run(context.Background(), g, &CLI{Config: cfgPath}), errCheckFailed)
	require.Contains(t, out.String(), "bad.md: failed to parse front matter")
}

func TestLayout(t *testing.T) {
	g, out := newGlobal("")
	require.NoError(t, (&LayoutCmd{Name: "404.tmpl"}).Run(g))
	require.Contains(t, out.String(), "Page not found")
}

func TestParseCommandLine(t *testing.T) {
	var cli CLI
	parser, err := kong.New(&cli, kong.Vars{"version": "test"}, kong.Bind(&Global{}), kong.Exit(func(int) {}))
	require.NoError(t, err)

	ctx, err := parser.Parse([]string{"-c", "x.yaml", "watch", "--drafts", "--debounce", "50"})
	require.NoError(t, err)
	require.Equal(t, "watch", ctx.Command())
	require.True(t, cli.Watch.IncludeDraft)
	require.Equal(t, 50, cli.Watch.Debounce)
	require.True(t, filepath.IsAbs(cli.Config))

	_, err = parser.Parse([]string{"tags"})
	require.NoError(t, err)
	require.Equal(t, "-", cli.Tags.File)
}

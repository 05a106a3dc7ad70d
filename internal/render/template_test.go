package render

import (
	"bytes"
	"context"
	"html/template"
	"os"
	"path/filepath"
	"seohead/internal/domain/config"
	"seohead/internal/domain/page"
	"seohead/internal/domain/site"
	"seohead/internal/seo"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

func sampleView() PageView {
	return PageView{
		Site: config.SiteConfig{Title: "Example", Language: "de"},
		Meta: page.Meta{Title: "About", Date: time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC)},
		Route: site.Route{
			Kind:    site.RoutePage,
			Slug:    "about",
			URLPath: "/about/",
			OutPath: "about/index.html",
		},
		SEO: seo.Config{
			Title:       "About & more",
			Description: `Say "hi"`,
			Canonical:   "https://example.com/about/",
			OpenGraph:   &seo.OpenGraph{Type: "website"},
		},
		HTML: template.HTML("<p>Body text</p>"),
	}
}

func parse(t *testing.T, out []byte) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(out))
	require.NoError(t, err)
	return doc
}

func TestRenderPageHead(t *testing.T) {
	r, err := NewTemplateRenderer("")
	require.NoError(t, err)

	out, err := r.RenderPage(context.Background(), sampleView())
	require.NoError(t, err)
	require.Contains(t, string(out), seo.BuildTags(sampleView().SEO), "head tags are inserted verbatim")

	doc := parse(t, out)
	lang, _ := doc.Find("html").Attr("lang")
	require.Equal(t, "de", lang)
	require.Equal(t, "About & more", doc.Find("head title").Text())
	desc, _ := doc.Find(`head meta[name="description"]`).Attr("content")
	require.Equal(t, `Say "hi"`, desc)
	href, _ := doc.Find(`head link[rel="canonical"]`).Attr("href")
	require.Equal(t, "https://example.com/about/", href)
	ogType, _ := doc.Find(`head meta[property="og:type"]`).Attr("content")
	require.Equal(t, "website", ogType)

	require.Equal(t, "About", doc.Find("article h1").Text())
	require.Equal(t, "2024-05-06", doc.Find("article time").Text())
	require.Equal(t, "Body text", doc.Find("article p").Text())
}

func TestRenderFooterUsesBuildTime(t *testing.T) {
	r, err := NewTemplateRenderer("")
	require.NoError(t, err)

	view := sampleView()
	view.Generated = time.Date(2031, 7, 1, 0, 0, 0, 0, time.UTC)
	out, err := r.RenderPage(context.Background(), view)
	require.NoError(t, err)
	require.Equal(t, "© 2031 Example", parse(t, out).Find("footer").Text())

	out, err = r.RenderPage(context.Background(), sampleView())
	require.NoError(t, err)
	require.Equal(t, "© Example", parse(t, out).Find("footer").Text())
}

func TestRenderNotFound(t *testing.T) {
	r, err := NewTemplateRenderer("")
	require.NoError(t, err)

	view := sampleView()
	view.Meta.Title = ""
	view.Route = site.Route{Kind: site.RouteNotFound, Slug: "404", URLPath: "/404.html", OutPath: "404.html"}
	out, err := r.RenderPage(context.Background(), view)
	require.NoError(t, err)
	require.Equal(t, "Page not found", parse(t, out).Find("main h1").Text())
}

func TestRenderThemeOverride(t *testing.T) {
	theme := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(theme, "page.tmpl"),
		[]byte(`<html><head>{{.Head}}</head><body class="themed">{{.HTML}}</body></html>`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(theme, "landing.tmpl"),
		[]byte(`<html><head>{{.Head}}</head><body class="landing"></body></html>`), 0o644))

	r, err := NewTemplateRenderer(theme)
	require.NoError(t, err)

	out, err := r.RenderPage(context.Background(), sampleView())
	require.NoError(t, err)
	doc := parse(t, out)
	require.Equal(t, 1, doc.Find("body.themed").Length())
	require.Equal(t, "About & more", doc.Find("title").Text())

	view := sampleView()
	view.Meta.Layout = "landing"
	out, err = r.RenderPage(context.Background(), view)
	require.NoError(t, err)
	require.Equal(t, 1, parse(t, out).Find("body.landing").Length())

	view.Meta.Layout = "unknown"
	out, err = r.RenderPage(context.Background(), view)
	require.NoError(t, err)
	require.Equal(t, 1, parse(t, out).Find("body.themed").Length())
}

func TestCheckTheme(t *testing.T) {
	require.NoError(t, CheckTheme(t.TempDir()))
	require.Error(t, CheckTheme(filepath.Join(t.TempDir(), "missing")))

	bad := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(bad, "page.tmpl"), []byte(`{{if}}`), 0o644))
	require.Error(t, CheckTheme(bad))
}

func TestRenderPageCanceled(t *testing.T) {
	r, err := NewTemplateRenderer("")
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = r.RenderPage(ctx, sampleView())
	require.ErrorIs(t, err, context.Canceled)
}

func TestBuiltinTemplate(t *testing.T) {
	src, err := BuiltinTemplate("page.tmpl")
	require.NoError(t, err)
	require.Contains(t, string(src), "{{.Head}}")
}

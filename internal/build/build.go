package build

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path/filepath"
	"seohead/internal/app"
	"seohead/internal/domain/config"
	"seohead/internal/domain/page"
	"seohead/internal/domain/site"
	"seohead/internal/ingest"
	"seohead/internal/observability"
	"seohead/internal/render"
	"seohead/internal/seo"
	"sort"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	fingerprint "seohead/internal/domain/build"
)

type Builder struct {
	Cfg    config.Config
	Logger *zap.Logger
}

type Result struct {
	Pages     int
	Written   int
	Unchanged int
	Drafts    int
	Removed   int
	Warnings  []ingest.Warning
}

func (b *Builder) Run(ctx context.Context) (*Result, error) {
	log := observability.OrNop(b.Logger)
	started := time.Now()

	pages, warns, err := ingest.Ingest(ctx, b.Cfg.Build.SourceDir)
	if err != nil {
		return nil, fmt.Errorf("ingest failed: %w", err)
	}
	for _, w := range warns {
		log.Warn("ingest", zap.String("path", w.Path), zap.String("warning", w.Msg))
	}

	tpl, err := render.NewTemplateRenderer(b.Cfg.Build.ThemeDir)
	if err != nil {
		return nil, fmt.Errorf("load theme(%s): %w", b.Cfg.Build.ThemeDir, err)
	}
	themeHash, err := hashTheme(b.Cfg.Build.ThemeDir)
	if err != nil {
		return nil, fmt.Errorf("hash theme(%s): %w", b.Cfg.Build.ThemeDir, err)
	}
	configHash, err := b.hashConfig()
	if err != nil {
		return nil, err
	}

	outDir := b.Cfg.Build.PublicDir
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir public: %w", err)
	}

	res := &Result{Warnings: warns}
	prev := fingerprint.LoadManifest(outDir)
	next := fingerprint.NewManifest()
	md := render.NewMarkdownRenderer()
	routes := (&app.RouteBuilder{}).Build(pages)

	for i, p := range pages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		route := routes[i]
		if p.Meta.Draft && !b.Cfg.Build.IncludeDraft {
			res.Drafts++
			log.Debug("skip draft", zap.String("path", p.Body.SourcePath))
			continue
		}
		res.Pages++

		fp := fingerprint.Fingerprint{
			ContentHash:  p.Body.ContentHash,
			MetaHash:     hashMeta(p.Meta),
			ThemeHash:    themeHash,
			ConfigHash:   configHash,
			RendererHash: fingerprint.RendererVersion,
		}
		fp.ComputeRenderHash()
		next.Outputs[route.OutPath] = fp.RenderHash

		if prev.Fresh(outDir, route.OutPath, fp.RenderHash) {
			res.Unchanged++
			continue
		}

		out, err := b.renderPage(ctx, md, tpl, p, route)
		if err != nil {
			return nil, fmt.Errorf("render page(%s): %w", p.Meta.Slug, err)
		}
		written, err := writeIfChanged(outDir, route.OutPath, out)
		if err != nil {
			return nil, err
		}
		if written {
			res.Written++
			log.Debug("wrote", zap.String("route", route.String()))
		} else {
			res.Unchanged++
		}
	}

	stale := prev.Stale(next)
	if err := fingerprint.RemoveStale(outDir, stale); err != nil {
		return nil, fmt.Errorf("remove stale outputs: %w", err)
	}
	res.Removed = len(stale)

	if err := b.copyStaticAssets(outDir); err != nil {
		return nil, fmt.Errorf("copy static assets: %w", err)
	}
	if err := next.Save(outDir); err != nil {
		return nil, err
	}

	log.Info("build finished",
		zap.Int("pages", res.Pages),
		zap.Int("written", res.Written),
		zap.Int("unchanged", res.Unchanged),
		zap.Int("drafts", res.Drafts),
		zap.Int("removed", res.Removed),
		zap.Int("warnings", len(res.Warnings)),
		zap.Duration("took", time.Since(started)),
	)
	return res, nil
}

func (b *Builder) renderPage(
	ctx context.Context,
	md *render.MarkdownRenderer,
	tpl render.Renderer,
	p page.Page,
	route site.Route,
) ([]byte, error) {
	src, err := os.ReadFile(p.Body.SourcePath)
	if err != nil {
		return nil, fmt.Errorf("read source(%s): %w", p.Body.SourcePath, err)
	}
	_, body, fmErr := ingest.ParseFrontMatter(src)
	if fmErr != nil {
		body = src
	}

	mdResult, err := md.Render(body)
	if err != nil {
		return nil, fmt.Errorf("markdown render: %w", err)
	}

	view := render.PageView{
		Site:      b.Cfg.Site,
		Meta:      p.Meta,
		Route:     route,
		SEO:       b.PageSEO(p, route, mdResult.Lead),
		HTML:      template.HTML(mdResult.HTML),
		TOC:       mdResult.Headings,
		Generated: b.Cfg.Build.Now,
	}
	return tpl.RenderPage(ctx, view)
}

// PageSEO layers the page's own seo block over the site defaults and fills
// in what the site can derive: the title from front matter, a description
// from the first paragraph, the canonical and og:url from the route, and
// article times, authors and tags from the page metadata.
func (b *Builder) PageSEO(p page.Page, route site.Route, lead []byte) seo.Config {
	cfg := seo.Merge(b.Cfg.SEO, p.SEO)

	if cfg.Title == "" {
		cfg.Title = p.Meta.Title
	}
	if cfg.Title == "" && route.Kind == site.RouteIndex {
		cfg.Title = b.Cfg.Site.Title
	}

	if cfg.Description == "" && b.Cfg.Build.SummaryLength > 0 && len(lead) > 0 {
		cfg.Description = render.Summary(lead, b.Cfg.Build.SummaryLength)
	}
	if cfg.Description == "" && route.Kind == site.RouteIndex {
		cfg.Description = b.Cfg.Site.Description
	}

	if b.Cfg.Build.AutoCanonical && route.Kind != site.RouteNotFound && b.Cfg.Site.URL != "" {
		if u, err := route.AbsoluteURL(b.Cfg.Site.URL); err == nil {
			if cfg.Canonical == "" {
				cfg.Canonical = u
			}
			if cfg.OpenGraph != nil && cfg.OpenGraph.URL == "" {
				og := *cfg.OpenGraph
				og.URL = cfg.Canonical
				cfg.OpenGraph = &og
			}
		}
	}

	if cfg.OpenGraph != nil && cfg.OpenGraph.Article != nil {
		og := *cfg.OpenGraph
		art := *og.Article
		if art.PublishedTime == "" && !p.Meta.Date.IsZero() {
			art.PublishedTime = p.Meta.Date.Format(time.RFC3339)
		}
		if art.ModifiedTime == "" && !p.Meta.Updated.Equal(p.Meta.Date) {
			art.ModifiedTime = p.Meta.Updated.Format(time.RFC3339)
		}
		if len(art.Authors) == 0 && b.Cfg.Site.Author != "" {
			art.Authors = []string{b.Cfg.Site.Author}
		}
		if len(art.Tags) == 0 {
			art.Tags = p.Meta.Tags
		}
		og.Article = &art
		cfg.OpenGraph = &og
	}
	return cfg
}

func (b *Builder) hashConfig() (string, error) {
	bc := b.Cfg.Build
	raw, err := yaml.Marshal(struct {
		Site          config.SiteConfig `yaml:"site"`
		SEO           seo.Config        `yaml:"seo"`
		AutoCanonical bool              `yaml:"auto_canonical"`
		SummaryLength int               `yaml:"summary_length"`
		Year          int               `yaml:"year"`
	}{b.Cfg.Site, b.Cfg.SEO, bc.AutoCanonical, bc.SummaryLength, bc.Now.Year()})
	if err != nil {
		return "", fmt.Errorf("hash config: %w", err)
	}
	return fingerprint.HashStrings(string(raw)), nil
}

// hashMeta covers the dates, which may come from the file modification time
// rather than the source bytes.
func hashMeta(m page.Meta) string {
	return fingerprint.HashStrings(m.Date.Format(time.RFC3339Nano), m.Updated.Format(time.RFC3339Nano))
}

func hashTheme(themeDir string) (string, error) {
	if themeDir == "" {
		return "", nil
	}
	matches, err := filepath.Glob(filepath.Join(themeDir, "*.tmpl"))
	if err != nil {
		return "", err
	}
	sort.Strings(matches)
	parts := make([]string, 0, 2*len(matches))
	for _, m := range matches {
		raw, err := os.ReadFile(m)
		if err != nil {
			return "", err
		}
		parts = append(parts, filepath.Base(m), string(raw))
	}
	return fingerprint.HashStrings(parts...), nil
}

func writeIfChanged(root, rel string, data []byte) (bool, error) {
	full := filepath.Join(root, filepath.FromSlash(rel))
	if old, err := os.ReadFile(full); err == nil && bytes.Equal(old, data) {
		return false, nil
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return false, err
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return false, err
	}
	return true, nil
}

func (b *Builder) copyStaticAssets(outDir string) error {
	if b.Cfg.Build.ThemeDir == "" {
		return nil
	}
	src := filepath.Join(b.Cfg.Build.ThemeDir, "static")
	info, err := os.Stat(src)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	if !info.IsDir() {
		return nil
	}

	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		in, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		_, err = writeIfChanged(outDir, filepath.ToSlash(rel), in)
		return err
	})
}

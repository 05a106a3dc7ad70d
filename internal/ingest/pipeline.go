package ingest

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"seohead/internal/domain/config"
	"seohead/internal/domain/page"
	"sort"
	"strings"
	"sync"
	"time"
)

type Warning struct {
	Path string
	Msg  string
}

func (w Warning) String() string {
	return w.Path + ": " + w.Msg
}

type result struct {
	Page  page.Page
	Warns []Warning
	Skip  bool
	Err   error
}

// Ingest reads every markdown page under sourceDir. Hidden pages and pages
// whose front matter cannot be parsed are left out; the latter, together with
// slug conflicts and unusable seo entries, are reported as warnings. Pages
// come back sorted by source path, and on a slug conflict the first path wins.
func Ingest(ctx context.Context, sourceDir string) ([]page.Page, []Warning, error) {
	files, err := DiscoverSource(sourceDir)
	if err != nil {
		return nil, nil, fmt.Errorf("discover %s: %w", sourceDir, err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	workers := min(runtime.GOMAXPROCS(0), max(len(files), 1))
	jobs := make(chan SourceFile)
	results := make(chan result)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for sf := range jobs {
				select {
				case results <- readPage(sf):
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	go func() {
		defer func() {
			close(jobs)
			wg.Wait()
			close(results)
		}()
		for _, f := range files {
			select {
			case jobs <- f:
			case <-ctx.Done():
				return
			}
		}
	}()

	var out []page.Page
	var warns []Warning
	for r := range results {
		if r.Err != nil {
			cancel()
			for range results {
			}
			return nil, nil, r.Err
		}
		warns = append(warns, r.Warns...)
		if !r.Skip {
			out = append(out, r.Page)
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Body.SourcePath < out[j].Body.SourcePath })
	sort.SliceStable(warns, func(i, j int) bool { return warns[i].Path < warns[j].Path })

	seen := make(map[string]string, len(out))
	filtered := make([]page.Page, 0, len(out))
	for _, p := range out {
		if first, ok := seen[p.Meta.Slug]; ok {
			warns = append(warns, Warning{
				Path: p.Body.SourcePath,
				Msg:  fmt.Sprintf("slug %q already used by %s, skipped", p.Meta.Slug, first),
			})
			continue
		}
		seen[p.Meta.Slug] = p.Body.SourcePath
		filtered = append(filtered, p)
	}
	return filtered, warns, nil
}

func readPage(sf SourceFile) result {
	st, err := os.Stat(sf.Path)
	if err != nil {
		return result{Err: err}
	}
	raw, err := os.ReadFile(sf.Path)
	if err != nil {
		return result{Err: err}
	}

	fm, _, fmErr := ParseFrontMatter(raw)
	if fmErr != nil && !errors.Is(fmErr, errNoFrontMatter) {
		return result{
			Warns: []Warning{{Path: sf.Path, Msg: "failed to parse front matter: " + fmErr.Error()}},
			Skip:  true,
		}
	}
	if fm.Hidden {
		return result{Skip: true}
	}

	var warns []Warning
	slug := ResolveSlug(fm, sf.Path)
	if slug == "" {
		return result{Warns: []Warning{{Path: sf.Path, Msg: "empty slug"}}, Skip: true}
	}

	meta := page.Meta{
		Title:   fm.Title,
		Slug:    slug,
		Date:    ParseTime(fm.Date),
		Updated: ParseTime(fm.Updated),
		Tags:    fm.Tags,
		Layout:  fm.Layout,
		Hidden:  fm.Hidden,
		Draft:   fm.Draft,
	}
	if fm.Date != "" && meta.Date.IsZero() {
		warns = append(warns, Warning{Path: sf.Path, Msg: fmt.Sprintf("unrecognised date %q", fm.Date)})
	}
	if meta.Date.IsZero() {
		meta.Date = st.ModTime().In(time.Local)
	}
	if strings.TrimSpace(meta.Title) == "" && fm.SEO.Title == "" {
		warns = append(warns, Warning{Path: sf.Path, Msg: "title is empty"})
	}
	meta.Normalize()

	for _, item := range config.CheckSEO(fm.SEO).Items {
		warns = append(warns, Warning{Path: sf.Path, Msg: "seo." + item.Field + ": " + item.Message})
	}

	return result{
		Page: page.Page{
			Meta: meta,
			SEO:  fm.SEO,
			Body: page.BodyRef{
				SourcePath:  sf.Path,
				ContentHash: HashBytes(raw),
			},
		},
		Warns: warns,
	}
}

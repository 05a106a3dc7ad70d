package page

import (
	"seohead/internal/seo"
	"strings"
	"time"
)

type Meta struct {
	Title   string
	Slug    string
	Date    time.Time
	Updated time.Time

	Tags   []string
	Layout string

	Hidden bool
	Draft  bool
}

type BodyRef struct {
	SourcePath  string
	ContentHash string
}

// Page is one markdown source file: its front matter, the seo block it
// declared (before site defaults are layered under it) and where its body
// lives.
type Page struct {
	Meta Meta
	SEO  seo.Config
	Body BodyRef
}

func (m *Meta) Normalize() {
	m.Title = strings.TrimSpace(m.Title)
	m.Slug = strings.TrimSpace(m.Slug)
	m.Layout = strings.TrimSpace(m.Layout)
	m.Tags = normalizeStrings(m.Tags)
	if m.Updated.IsZero() {
		m.Updated = m.Date
	}
}

func normalizeStrings(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		item = strings.ToLower(item)
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}

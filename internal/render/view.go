package render

import (
	"html/template"
	"seohead/internal/domain/config"
	"seohead/internal/domain/page"
	"seohead/internal/domain/site"
	"seohead/internal/seo"
	"time"
)

// PageView is everything a layout sees. SEO is the page's block already
// layered over the site defaults.
type PageView struct {
	Site  config.SiteConfig
	Meta  page.Meta
	Route site.Route
	SEO   seo.Config

	HTML template.HTML
	TOC  []Heading

	Generated time.Time
}

// Head renders the SEO tags for the page head.
func (v PageView) Head() template.HTML {
	return template.HTML(seo.BuildTags(v.SEO))
}

// Year is the year of the build, or 0 when no build time is set.
func (v PageView) Year() int {
	if v.Generated.IsZero() {
		return 0
	}
	return v.Generated.Year()
}

func (v PageView) Lang() string {
	if v.Site.Language == "" {
		return "en"
	}
	return v.Site.Language
}

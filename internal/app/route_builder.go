package app

import (
	"path"
	"seohead/internal/domain/page"
	"seohead/internal/domain/site"
)

const (
	indexSlug    = "index"
	notFoundSlug = "404"
)

type RouteBuilder struct{}

// Build returns one route per page, in page order. The "index" slug is the
// site root and "404" is written as a flat 404.html; every other page gets
// its own directory.
func (rb *RouteBuilder) Build(pages []page.Page) []site.Route {
	routes := make([]site.Route, 0, len(pages))
	for _, p := range pages {
		routes = append(routes, rb.route(p.Meta.Slug))
	}
	return routes
}

func (rb *RouteBuilder) route(slug string) site.Route {
	switch slug {
	case indexSlug:
		return site.Route{Kind: site.RouteIndex, Slug: slug, URLPath: "/", OutPath: "index.html"}
	case notFoundSlug:
		return site.Route{Kind: site.RouteNotFound, Slug: slug, URLPath: "/404.html", OutPath: "404.html"}
	}
	return site.Route{
		Kind:    site.RoutePage,
		Slug:    slug,
		URLPath: "/" + slug + "/",
		OutPath: path.Join(slug, "index.html"),
	}
}

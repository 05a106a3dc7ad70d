package site

import (
	"fmt"
	"net/url"
	"path"
	"strings"
)

type RouteKind string

const (
	RouteIndex    RouteKind = "index"
	RoutePage     RouteKind = "page"
	RouteNotFound RouteKind = "404"
)

// Route maps a page to the file it is written to and the path it is served
// from. URLPath always starts with "/"; directory routes end with "/".
type Route struct {
	Kind    RouteKind
	Slug    string
	URLPath string
	OutPath string
}

func (r Route) String() string {
	var parts []string
	parts = append(parts, string(r.Kind))
	if r.Slug != "" {
		parts = append(parts, "slug="+r.Slug)
	}
	if r.URLPath != "" {
		parts = append(parts, "url="+r.URLPath)
	}
	if r.OutPath != "" {
		parts = append(parts, "out="+r.OutPath)
	}
	return strings.Join(parts, " ")
}

// AbsoluteURL resolves the route against the public base URL of the site.
// Any path on base is kept as a prefix.
func (r Route) AbsoluteURL(base string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(base))
	if err != nil {
		return "", fmt.Errorf("parse site url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("site url %q is not absolute", base)
	}
	joined := path.Join("/", u.Path, r.URLPath)
	if strings.HasSuffix(r.URLPath, "/") && !strings.HasSuffix(joined, "/") {
		joined += "/"
	}
	u.Path = joined
	u.RawQuery = ""
	u.Fragment = ""
	return u.String(), nil
}

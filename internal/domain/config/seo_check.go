package config

import (
	domainerr "seohead/internal/domain/errors"
	"seohead/internal/seo"
	"strings"
)

// CheckSEO reports the entries of c that BuildTags would silently drop
// because a required value is missing. It only looks at presence.
func CheckSEO(c seo.Config) domainerr.ValidationError {
	var ve domainerr.ValidationError

	if c.TitleTemplate != "" && !strings.Contains(c.TitleTemplate, "%s") {
		ve.Add("titleTemplate", "has no %s placeholder")
	}
	if m := c.MobileAlternate; m != nil && m.Href == "" {
		ve.Add("mobileAlternate.href", "missing")
	}
	for i, alt := range c.LanguageAlternates {
		if alt.Href == "" {
			ve.Addf("languageAlternates", "entry %d: href missing", i)
		}
	}

	if og := c.OpenGraph; og != nil {
		checkMedia(&ve, "openGraph.images", og.Images)
		checkMedia(&ve, "openGraph.videos", og.Videos)
		if og.Video != nil {
			for i, a := range og.Video.Actors {
				if a.Profile == "" {
					ve.Addf("openGraph.video.actors", "entry %d: profile missing", i)
				}
			}
		}
	}

	for i, m := range c.AdditionalMetaTags {
		if m.Kind.Attribute() == "" || m.Key == "" {
			ve.Addf("additionalMetaTags", "entry %d: needs one of name, property or httpEquiv", i)
		}
	}
	for i, l := range c.AdditionalLinkTags {
		if l.Rel == "" || l.Href == "" {
			ve.Addf("additionalLinkTags", "entry %d: rel and href are required", i)
		}
	}
	return ve
}

func checkMedia(ve *domainerr.ValidationError, field string, items []seo.Media) {
	for i, m := range items {
		if m.URL == "" {
			ve.Addf(field, "entry %d: url missing", i)
		}
	}
}

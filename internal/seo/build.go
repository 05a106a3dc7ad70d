package seo

import (
	"strconv"
	"strings"
)

// BuildTags renders the head fragment for cfg: one element per line, in a
// fixed section order, with surrounding whitespace trimmed. An empty Config
// yields "". BuildTags is pure and safe for concurrent use.
func BuildTags(cfg Config) string {
	var w tagWriter

	w.title(cfg)
	if cfg.Description != "" {
		w.add(Meta(Attr{"name", "description"}, Attr{"content", cfg.Description}))
	}
	w.robots(cfg)
	if cfg.Canonical != "" {
		w.add(Link(Attr{"rel", "canonical"}, Attr{"href", cfg.Canonical}))
	}
	w.alternates(cfg)
	if cfg.OpenGraph != nil {
		w.openGraph(cfg)
	}
	if cfg.Facebook != nil && cfg.Facebook.AppID != "" {
		w.add(Meta(Attr{"property", "fb:app_id"}, Attr{"content", cfg.Facebook.AppID}))
	}
	if cfg.Twitter != nil {
		w.twitter(cfg.Twitter)
	}
	w.additionalMeta(cfg.AdditionalMetaTags)
	w.additionalLinks(cfg.AdditionalLinkTags)

	return strings.TrimSpace(w.b.String())
}

type tagWriter struct {
	b strings.Builder
}

func (w *tagWriter) add(tag string) {
	w.b.WriteString(tag)
	w.b.WriteByte('\n')
}

func (w *tagWriter) og(property, content string) {
	if content == "" {
		return
	}
	w.add(OpenGraphMeta(property, content))
}

// property writes a property-keyed meta tag unless content is empty.
func (w *tagWriter) property(name, content string) {
	if content == "" {
		return
	}
	w.add(Meta(Attr{"property", name}, Attr{"content", content}))
}

func (w *tagWriter) propertyEach(name string, values []string) {
	for _, v := range values {
		w.property(name, v)
	}
}

func (w *tagWriter) title(cfg Config) {
	if cfg.Title == "" {
		return
	}
	formatted := cfg.Title
	if cfg.TitleTemplate != "" {
		formatted = strings.Replace(cfg.TitleTemplate, "%s", cfg.Title, 1)
	}
	w.add("<title>" + Escape(formatted) + "</title>")
}

func (w *tagWriter) robots(cfg Config) {
	content := RobotsDirectives(cfg)
	if len(content) == 0 {
		return
	}
	w.add(Meta(Attr{"name", "robots"}, Attr{"content", strings.Join(content, ",")}))
}

// RobotsDirectives returns the robots directives of cfg in emission order.
func RobotsDirectives(cfg Config) []string {
	var out []string
	if cfg.NoIndex != nil {
		out = append(out, pick(*cfg.NoIndex, "noindex", "index"))
	}
	if cfg.NoFollow != nil {
		out = append(out, pick(*cfg.NoFollow, "nofollow", "follow"))
	}
	r := cfg.Robots
	if r == nil {
		return out
	}
	if r.NoSnippet {
		out = append(out, "nosnippet")
	}
	if r.MaxSnippet != nil {
		out = append(out, "max-snippet:"+strconv.Itoa(*r.MaxSnippet))
	}
	if r.MaxImagePreview != "" {
		out = append(out, "max-image-preview:"+r.MaxImagePreview)
	}
	if r.NoArchive {
		out = append(out, "noarchive")
	}
	if r.UnavailableAfter != "" {
		out = append(out, "unavailable_after:"+r.UnavailableAfter)
	}
	if r.NoImageIndex {
		out = append(out, "noimageindex")
	}
	if r.NoTranslate {
		out = append(out, "notranslate")
	}
	return out
}

func pick(v bool, yes, no string) string {
	if v {
		return yes
	}
	return no
}

func (w *tagWriter) alternates(cfg Config) {
	if m := cfg.MobileAlternate; m != nil && m.Href != "" {
		attrs := []Attr{{"rel", "alternate"}}
		if m.Media != "" {
			attrs = append(attrs, Attr{"media", m.Media})
		}
		w.add(Link(append(attrs, Attr{"href", m.Href})...))
	}
	for _, alt := range cfg.LanguageAlternates {
		if alt.Href == "" {
			continue
		}
		attrs := []Attr{{"rel", "alternate"}}
		if alt.HrefLang != "" {
			attrs = append(attrs, Attr{"hreflang", alt.HrefLang})
		}
		w.add(Link(append(attrs, Attr{"href", alt.Href})...))
	}
}

func (w *tagWriter) openGraph(cfg Config) {
	og := cfg.OpenGraph

	w.og("title", firstNonEmpty(og.Title, cfg.Title))
	w.og("description", firstNonEmpty(og.Description, cfg.Description))
	w.og("url", og.URL)
	w.og("type", og.Type)
	w.media("image", og.Images)
	w.media("video", og.Videos)
	w.og("locale", og.Locale)
	w.og("site_name", og.SiteName)

	// Object properties use their Open Graph namespaces as is, so the output
	// is "profile:username" and "article:tag", not "og:profile:username".
	// Consumers that matched the og:-prefixed form need updating.
	if p := og.Profile; p != nil {
		w.property("profile:first_name", p.FirstName)
		w.property("profile:last_name", p.LastName)
		w.property("profile:username", p.Username)
		w.property("profile:gender", p.Gender)
	}

	if b := og.Book; b != nil {
		w.propertyEach("book:author", b.Authors)
		w.property("book:isbn", b.ISBN)
		w.property("book:release_date", b.ReleaseDate)
		w.propertyEach("book:tag", b.Tags)
	}

	if a := og.Article; a != nil {
		w.property("article:published_time", a.PublishedTime)
		w.property("article:modified_time", a.ModifiedTime)
		w.property("article:expiration_time", a.ExpirationTime)
		w.propertyEach("article:author", a.Authors)
		w.property("article:section", a.Section)
		w.propertyEach("article:tag", a.Tags)
	}

	if v := og.Video; v != nil {
		for _, actor := range v.Actors {
			if actor.Profile == "" {
				continue
			}
			w.property("video:actor", actor.Profile)
			w.property("video:actor:role", actor.Role)
		}
		w.propertyEach("video:director", v.Directors)
		w.propertyEach("video:writer", v.Writers)
		if v.Duration != nil {
			w.property("video:duration", strconv.Itoa(*v.Duration))
		}
		w.property("video:release_date", v.ReleaseDate)
		w.propertyEach("video:tag", v.Tags)
		w.property("video:series", v.Series)
	}
}

// media writes og:image or og:video groups. A medium without a URL is
// dropped along with its sub-properties.
func (w *tagWriter) media(kind string, items []Media) {
	for _, m := range items {
		if m.URL == "" {
			continue
		}
		w.og(kind, m.URL)
		w.og(kind+":alt", m.Alt)
		w.og(kind+":secure_url", m.SecureURL)
		w.og(kind+":type", m.Type)
		if m.Width != nil {
			w.og(kind+":width", strconv.Itoa(*m.Width))
		}
		if m.Height != nil {
			w.og(kind+":height", strconv.Itoa(*m.Height))
		}
	}
}

func (w *tagWriter) twitter(t *Twitter) {
	for _, f := range []struct{ name, value string }{
		{"twitter:card", t.CardType},
		{"twitter:site", t.Site},
		{"twitter:creator", t.Handle},
	} {
		if f.value != "" {
			w.add(Meta(Attr{"name", f.name}, Attr{"content", f.value}))
		}
	}
}

// additionalMeta writes content before the identifying attribute.
func (w *tagWriter) additionalMeta(tags []MetaTag) {
	for _, t := range tags {
		attr := t.Kind.Attribute()
		if attr == "" || t.Key == "" {
			continue
		}
		w.add(Meta(Attr{"content", t.Content}, Attr{attr, t.Key}))
	}
}

func (w *tagWriter) additionalLinks(tags []LinkTag) {
	for _, t := range tags {
		attrs := []Attr{{"rel", t.Rel}, {"href", t.Href}}
		for _, opt := range []Attr{
			{"sizes", t.Sizes},
			{"media", t.Media},
			{"type", t.Type},
			{"color", t.Color},
			{"as", t.As},
			{"crossorigin", t.CrossOrigin},
		} {
			if opt.Value != "" {
				attrs = append(attrs, opt)
			}
		}
		w.add(Link(attrs...))
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

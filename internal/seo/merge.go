package seo

// Merge layers override on top of base and returns the result; neither
// argument is modified. Set scalars in override win, blocks are merged field
// by field, non-empty sequences in override replace those of base, and
// additional meta and link tags are concatenated with base first.
func Merge(base, override Config) Config {
	out := base

	out.Title = str(base.Title, override.Title)
	out.TitleTemplate = str(base.TitleTemplate, override.TitleTemplate)
	out.Description = str(base.Description, override.Description)
	out.NoIndex = ptr(base.NoIndex, override.NoIndex)
	out.NoFollow = ptr(base.NoFollow, override.NoFollow)
	out.Robots = mergeRobots(base.Robots, override.Robots)
	out.Canonical = str(base.Canonical, override.Canonical)
	out.MobileAlternate = mergeBlock(base.MobileAlternate, override.MobileAlternate, func(b, o MobileAlternate) MobileAlternate {
		return MobileAlternate{Media: str(b.Media, o.Media), Href: str(b.Href, o.Href)}
	})
	out.LanguageAlternates = list(base.LanguageAlternates, override.LanguageAlternates)
	out.OpenGraph = mergeBlock(base.OpenGraph, override.OpenGraph, mergeOpenGraph)
	out.Facebook = mergeBlock(base.Facebook, override.Facebook, func(b, o Facebook) Facebook {
		return Facebook{AppID: str(b.AppID, o.AppID)}
	})
	out.Twitter = mergeBlock(base.Twitter, override.Twitter, func(b, o Twitter) Twitter {
		return Twitter{
			CardType: str(b.CardType, o.CardType),
			Site:     str(b.Site, o.Site),
			Handle:   str(b.Handle, o.Handle),
		}
	})
	out.AdditionalMetaTags = concat(base.AdditionalMetaTags, override.AdditionalMetaTags)
	out.AdditionalLinkTags = concat(base.AdditionalLinkTags, override.AdditionalLinkTags)
	return out
}

func mergeRobots(base, override *RobotsProps) *RobotsProps {
	return mergeBlock(base, override, func(b, o RobotsProps) RobotsProps {
		return RobotsProps{
			NoSnippet:        b.NoSnippet || o.NoSnippet,
			MaxSnippet:       ptr(b.MaxSnippet, o.MaxSnippet),
			MaxImagePreview:  str(b.MaxImagePreview, o.MaxImagePreview),
			NoArchive:        b.NoArchive || o.NoArchive,
			UnavailableAfter: str(b.UnavailableAfter, o.UnavailableAfter),
			NoImageIndex:     b.NoImageIndex || o.NoImageIndex,
			NoTranslate:      b.NoTranslate || o.NoTranslate,
		}
	})
}

func mergeOpenGraph(b, o OpenGraph) OpenGraph {
	return OpenGraph{
		Title:       str(b.Title, o.Title),
		Description: str(b.Description, o.Description),
		URL:         str(b.URL, o.URL),
		Type:        str(b.Type, o.Type),
		Locale:      str(b.Locale, o.Locale),
		SiteName:    str(b.SiteName, o.SiteName),
		Images:      list(b.Images, o.Images),
		Videos:      list(b.Videos, o.Videos),
		Profile:     mergeBlock(b.Profile, o.Profile, replace[Profile]),
		Book:        mergeBlock(b.Book, o.Book, replace[Book]),
		Article:     mergeBlock(b.Article, o.Article, replace[Article]),
		Video:       mergeBlock(b.Video, o.Video, replace[Video]),
	}
}

// Profile, book, article and video blocks describe a single object, so the
// page's block replaces the default wholesale.
func replace[T any](_, o T) T { return o }

func mergeBlock[T any](base, override *T, merge func(b, o T) T) *T {
	switch {
	case base == nil && override == nil:
		return nil
	case base == nil:
		v := *override
		return &v
	case override == nil:
		v := *base
		return &v
	}
	v := merge(*base, *override)
	return &v
}

func str(base, override string) string {
	if override != "" {
		return override
	}
	return base
}

func ptr[T any](base, override *T) *T {
	if override != nil {
		return override
	}
	return base
}

func list[T any](base, override []T) []T {
	if len(override) > 0 {
		return override
	}
	return base
}

func concat[T any](base, override []T) []T {
	if len(base) == 0 {
		return override
	}
	if len(override) == 0 {
		return base
	}
	out := make([]T, 0, len(base)+len(override))
	out = append(out, base...)
	return append(out, override...)
}

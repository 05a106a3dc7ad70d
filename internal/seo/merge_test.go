package seo

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMergeScalarsAndBlocks(t *testing.T) {
	base := Config{
		TitleTemplate: "%s | Site",
		Description:   "Site description",
		NoIndex:       Bool(false),
		Robots:        &RobotsProps{MaxImagePreview: ImagePreviewLarge},
		OpenGraph: &OpenGraph{
			Type:     "website",
			SiteName: "Site",
			Images:   []Media{{URL: "https://example.com/default.png"}},
		},
		Twitter:            &Twitter{CardType: "summary", Site: "@site"},
		AdditionalMetaTags: []MetaTag{NameMeta("generator", "seohead")},
	}
	page := Config{
		Title:              "Post",
		NoIndex:            Bool(true),
		Robots:             &RobotsProps{MaxSnippet: Int(0)},
		OpenGraph:          &OpenGraph{Type: "article"},
		Twitter:            &Twitter{CardType: "summary_large_image"},
		AdditionalMetaTags: []MetaTag{NameMeta("author", "Ada")},
	}

	got := Merge(base, page)

	require.Equal(t, "Post", got.Title)
	require.Equal(t, "%s | Site", got.TitleTemplate)
	require.Equal(t, "Site description", got.Description)
	require.True(t, *got.NoIndex)
	require.Equal(t, ImagePreviewLarge, got.Robots.MaxImagePreview)
	require.Equal(t, 0, *got.Robots.MaxSnippet)
	require.Equal(t, "article", got.OpenGraph.Type)
	require.Equal(t, "Site", got.OpenGraph.SiteName)
	require.Equal(t, []Media{{URL: "https://example.com/default.png"}}, got.OpenGraph.Images)
	require.Equal(t, &Twitter{CardType: "summary_large_image", Site: "@site"}, got.Twitter)
	require.Equal(t, []MetaTag{NameMeta("generator", "seohead"), NameMeta("author", "Ada")}, got.AdditionalMetaTags)

	// inputs are untouched
	require.Equal(t, "website", base.OpenGraph.Type)
	require.False(t, *base.NoIndex)
	require.Len(t, base.AdditionalMetaTags, 1)
}

func TestMergeSequencesReplace(t *testing.T) {
	base := Config{LanguageAlternates: []LanguageAlternate{{HrefLang: "en", Href: "https://example.com/"}}}
	page := Config{LanguageAlternates: []LanguageAlternate{{HrefLang: "es", Href: "https://example.com/es/"}}}

	require.Equal(t, page.LanguageAlternates, Merge(base, page).LanguageAlternates)
	require.Equal(t, base.LanguageAlternates, Merge(base, Config{}).LanguageAlternates)
}

func TestMergeKeepsBlockAbsence(t *testing.T) {
	got := Merge(Config{Title: "T"}, Config{Description: "D"})
	require.Nil(t, got.OpenGraph)
	require.Nil(t, got.Twitter)
	require.NotContains(t, BuildTags(got), "og:")
}

func TestMergeCopiesBlocks(t *testing.T) {
	base := Config{Facebook: &Facebook{AppID: "1"}}
	got := Merge(base, Config{})
	got.Facebook.AppID = "2"
	require.Equal(t, "1", base.Facebook.AppID)
}

func TestMergeObjectBlocksReplaceWholesale(t *testing.T) {
	base := Config{OpenGraph: &OpenGraph{Article: &Article{Section: "News", Tags: []string{"a"}}}}
	page := Config{OpenGraph: &OpenGraph{Article: &Article{Tags: []string{"b"}}}}

	got := Merge(base, page)
	require.Equal(t, &Article{Tags: []string{"b"}}, got.OpenGraph.Article)
}

package config

import (
	"errors"
	"gopkg.in/yaml.v3"
	"net/url"
	"os"
	domainerr "seohead/internal/domain/errors"
	"seohead/internal/seo"
	"strings"
	"time"
)

type Config struct {
	Site  SiteConfig  `yaml:"site"`
	SEO   seo.Config  `yaml:"seo"`
	Build BuildConfig `yaml:"build"`
}

type SiteConfig struct {
	Title       string `yaml:"title"`
	URL         string `yaml:"url"`
	Language    string `yaml:"language"`
	Description string `yaml:"description"`
	Author      string `yaml:"author"`
}

type BuildConfig struct {
	SourceDir     string    `yaml:"source_dir"`
	PublicDir     string    `yaml:"public_dir"`
	ThemeDir      string    `yaml:"theme_dir"`
	IncludeDraft  bool      `yaml:"include_draft"`
	AutoCanonical bool      `yaml:"auto_canonical"`
	SummaryLength int       `yaml:"summary_length"`
	Now           time.Time `yaml:"-"`
}

func Default() Config {
	return Config{
		Site: SiteConfig{
			Title:    "seohead",
			Language: "en",
		},
		Build: BuildConfig{
			SourceDir:     "content",
			PublicDir:     "public",
			AutoCanonical: true,
			SummaryLength: 160,
			Now:           time.Now(),
		},
	}
}

func (c Config) Validate() error {
	var ve domainerr.ValidationError

	if strings.TrimSpace(c.Site.Title) == "" {
		ve.Add("site.title", "must not be empty")
	}

	switch u := strings.TrimSpace(c.Site.URL); {
	case u == "" && c.Build.AutoCanonical:
		ve.Add("site.url", "must be set when build.auto_canonical is enabled")
	case u != "" && !isValidAbsURL(u):
		ve.Add("site.url", "must be a valid absolute URL")
	}

	if strings.TrimSpace(c.Build.SourceDir) == "" {
		ve.Add("build.source_dir", "must not be empty")
	}
	if strings.TrimSpace(c.Build.PublicDir) == "" {
		ve.Add("build.public_dir", "must not be empty")
	}
	if c.Build.SummaryLength < 0 {
		ve.Add("build.summary_length", "must not be negative")
	}

	ve.Nest("seo", CheckSEO(c.SEO))

	return ve.Err()
}

func isValidAbsURL(s string) bool {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	return u.Host != ""
}

// Load reads path over Default(): keys present in the file override the
// defaults, everything else keeps its default value.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	return decode(cfg, data)
}

// LoadOrDefault is Load, except that a missing file yields Default().
func LoadOrDefault(path string) (Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		cfg = Default()
		return cfg, cfg.Validate()
	}
	return cfg, err
}

func decode(cfg Config, data []byte) (Config, error) {
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if cfg.Build.Now.IsZero() {
		cfg.Build.Now = time.Now()
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

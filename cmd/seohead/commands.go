package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"seohead/internal/build"
	"seohead/internal/domain/config"
	"seohead/internal/ingest"
	"seohead/internal/observability"
	"seohead/internal/render"
	"seohead/internal/seo"
	"seohead/internal/watch"
	"time"

	"github.com/alecthomas/kong"
	"go.uber.org/zap"
)

// Global carries what every command shares once flags are parsed.
type Global struct {
	Logger *zap.Logger
	Stdout io.Writer
	Stdin  io.Reader
}

type CLI struct {
	Config  string           `short:"c" help:"Site configuration file" default:"site.yaml" type:"path"`
	Verbose bool             `short:"v" help:"Enable debug logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Tags   TagsCmd   `cmd:"" help:"Print the head tags for a YAML seo document"`
	Build  BuildCmd  `cmd:"" help:"Render every page under build.source_dir into build.public_dir"`
	Watch  WatchCmd  `cmd:"" help:"Build, then rebuild whenever sources, theme or config change"`
	Check  CheckCmd  `cmd:"" help:"Validate the config, theme and pages without writing anything"`
	Layout LayoutCmd `cmd:"" help:"Print a built-in layout to start a theme from"`
}

// AfterApply runs after flag parsing and sets up logging once.
func (c *CLI) AfterApply(g *Global) error {
	logger, err := observability.NewLogger(c.Verbose)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	g.Logger = logger
	return nil
}

type TagsCmd struct {
	File     string `arg:"" optional:"" default:"-" help:"YAML file holding a seo block, '-' for stdin"`
	Defaults bool   `help:"Layer the seo defaults from the site config under the document"`
}

func (t *TagsCmd) Run(g *Global, root *CLI) error {
	raw, err := readInput(g.Stdin, t.File)
	if err != nil {
		return err
	}
	cfg, err := seo.ParseYAML(raw)
	if err != nil {
		return fmt.Errorf("parse %s: %w", t.File, err)
	}
	if t.Defaults {
		site, err := config.Load(root.Config)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = seo.Merge(site.SEO, cfg)
	}
	for _, item := range config.CheckSEO(cfg).Items {
		observability.OrNop(g.Logger).Warn("entry dropped", zap.String("field", item.Field), zap.String("reason", item.Message))
	}
	_, err = fmt.Fprintln(g.Stdout, seo.BuildTags(cfg))
	return err
}

func readInput(stdin io.Reader, name string) ([]byte, error) {
	if name == "" || name == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(name)
}

type BuildCmd struct {
	IncludeDraft bool   `name:"drafts" help:"Also render pages marked draft"`
	Public       string `short:"o" help:"Override build.public_dir" type:"path"`
}

func (b *BuildCmd) Run(ctx context.Context, g *Global, root *CLI) error {
	cfg, err := b.load(root.Config)
	if err != nil {
		return err
	}
	res, err := (&build.Builder{Cfg: cfg, Logger: g.Logger}).Run(ctx)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(g.Stdout, "%d pages: %d written, %d unchanged, %d removed, %d drafts skipped, %d warnings\n",
		res.Pages, res.Written, res.Unchanged, res.Removed, res.Drafts, len(res.Warnings))
	return err
}

func (b *BuildCmd) load(path string) (config.Config, error) {
	cfg, err := config.LoadOrDefault(path)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	if b.IncludeDraft {
		cfg.Build.IncludeDraft = true
	}
	if b.Public != "" {
		cfg.Build.PublicDir = b.Public
	}
	return cfg, nil
}

type WatchCmd struct {
	BuildCmd `embed:""`
	Debounce int `help:"Quiet period in milliseconds before a rebuild" default:"200"`
}

func (w *WatchCmd) Run(ctx context.Context, g *Global, root *CLI) error {
	log := observability.OrNop(g.Logger)
	cfg, err := w.load(root.Config)
	if err != nil {
		return err
	}
	if _, err := (&build.Builder{Cfg: cfg, Logger: log}).Run(ctx); err != nil {
		log.Error("initial build failed", zap.Error(err))
	}

	watcher, err := watch.New(watch.Options{
		Dirs:     []string{cfg.Build.SourceDir, cfg.Build.ThemeDir},
		Files:    []string{root.Config},
		Ignore:   []string{cfg.Build.PublicDir},
		Debounce: time.Duration(w.Debounce) * time.Millisecond,
		Logger:   log,
		Rebuild: func(ctx context.Context) error {
			next, err := w.load(root.Config)
			if err != nil {
				log.Error("config reload failed, keeping previous", zap.Error(err))
				next = cfg
			}
			cfg = next
			_, err = (&build.Builder{Cfg: cfg, Logger: log}).Run(ctx)
			return err
		},
	})
	if err != nil {
		return err
	}
	return watcher.Run(ctx)
}

type CheckCmd struct{}

var errCheckFailed = errors.New("check failed")

func (c *CheckCmd) Run(ctx context.Context, g *Global, root *CLI) error {
	cfg, err := config.LoadOrDefault(root.Config)
	if err != nil {
		return err
	}
	problems := 0
	if cfg.Build.ThemeDir != "" {
		if err := render.CheckTheme(cfg.Build.ThemeDir); err != nil {
			fmt.Fprintf(g.Stdout, "theme: %v\n", err)
			problems++
		}
	}
	pages, warns, err := ingest.Ingest(ctx, cfg.Build.SourceDir)
	if err != nil {
		return err
	}
	for _, w := range warns {
		fmt.Fprintln(g.Stdout, w.String())
	}
	problems += len(warns)
	fmt.Fprintf(g.Stdout, "%d pages, %d problems\n", len(pages), problems)
	if problems > 0 {
		return errCheckFailed
	}
	return nil
}

type LayoutCmd struct {
	Name string `arg:"" optional:"" default:"page.tmpl" enum:"page.tmpl,404.tmpl" help:"Layout to print"`
}

func (l *LayoutCmd) Run(g *Global) error {
	src, err := render.BuiltinTemplate(l.Name)
	if err != nil {
		return err
	}
	_, err = g.Stdout.Write(src)
	return err
}

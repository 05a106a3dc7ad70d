package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
)

var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var cli CLI
	global := &Global{Stdout: os.Stdout, Stdin: os.Stdin}
	parser := kong.Parse(&cli,
		kong.Name("seohead"),
		kong.Description("Render SEO meta and link tags, and build static pages that carry them."),
		kong.UsageOnError(),
		kong.Vars{"version": version},
		kong.Bind(global, &cli),
		kong.BindTo(ctx, (*context.Context)(nil)),
	)
	defer func() {
		if global.Logger != nil {
			_ = global.Logger.Sync()
		}
	}()
	parser.FatalIfErrorf(parser.Run())
}

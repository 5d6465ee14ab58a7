// Command generate runs the feed pipeline once and writes the result to disk.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"promfeed/internal/app"
	"promfeed/internal/config"
	"promfeed/internal/feed"
	"promfeed/internal/worker/processors/export"
)

type options struct {
	output   string
	override feed.Override
}

// parseFlags reads the command line. It needs no environment so that -h
// works on an unconfigured machine.
func parseFlags(args []string) (options, error) {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	output := fs.String("o", "", "output file (default FEED_OUTPUT_PATH)")
	dialect := fs.String("dialect", "", "override FEED_DIALECT (rss, yml, hybrid)")
	mode := fs.String("mode", "", "override FEED_OFFER_MODE (product, variant)")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	override, err := feed.ParseOverride(*dialect, *mode)
	if err != nil {
		return options{}, fmt.Errorf("invalid flags: %w", err)
	}
	return options{output: *output, override: override}, nil
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		log.Fatal(err)
	}

	if err := run(opts); err != nil {
		log.Fatal(err)
	}
}

func run(opts options) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if opts.output == "" {
		opts.output = cfg.FeedOutputPath
	}

	logger := app.NewLogger(cfg)

	generator, err := app.NewGenerator(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to build feed generator: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	res, err := generator.Generate(ctx, opts.override)
	if err != nil {
		return fmt.Errorf("feed run %s failed: %w", res.RunID, err)
	}

	if err := export.New(logger).WriteFile(ctx, opts.output, res.Data); err != nil {
		return fmt.Errorf("feed run %s: %w", res.RunID, err)
	}
	logger.Info("Feed run %s wrote %d offers to %s", res.RunID, res.Offers, opts.output)
	return nil
}

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/lestrrat-go/svgo"
	"github.com/lestrrat-go/svgo/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type cmdopts struct {
	Input     string `short:"i" long:"input" description:"directory holding the SVG files (default: output)"`
	Output    string `short:"o" long:"output" description:"directory the optimized files are written to (default: svg)"`
	Config    string `short:"c" long:"config" description:"YAML configuration file"`
	Jobs      int    `short:"j" long:"jobs" description:"number of files optimized in parallel (default: number of CPUs)"`
	Precision *int   `short:"p" long:"precision" description:"decimals kept when numbers are rewritten (default: 3)"`
	Multipass bool   `long:"multipass" description:"repeat the plugin list until the output stops changing"`
	Verbose   bool   `short:"v" long:"verbose" description:"log every file"`
	Trace     bool   `long:"trace" description:"write optimizer trace records to stderr"`
	Version   bool   `long:"version" description:"display the version of the optimizer"`
}

func main() {
	os.Exit(_main())
}

func showVersion() {
	fmt.Printf("svgo-batch: using svgo version %s\n", svgo.Version)
}

func _main() int {
	opts := cmdopts{}
	if _, err := flags.ParseArgs(&opts, os.Args[1:]); err != nil {
		if flags.WroteHelp(err) {
			return 0
		}
		return 1
	}

	if opts.Version {
		showVersion()
		return 0
	}

	logger, err := newLogger(opts.Verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %s\n", err)
		return 1
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()
	if opts.Trace {
		tlog := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
		ctx = svgo.WithTraceLogger(ctx, tlog)
	}

	if err := run(ctx, opts, os.Stdout, logger); err != nil {
		logger.Error("batch failed", zap.Error(err))
		return 1
	}
	return 0
}

func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return cfg.Build()
}

// loadConfig reads the configuration file, if any, and applies the
// command line on top of it.
func loadConfig(opts cmdopts) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if opts.Config != "" {
		var err error
		if cfg, err = config.Load(opts.Config); err != nil {
			return nil, err
		}
	}

	if opts.Input != "" {
		cfg.Input = opts.Input
	}
	if opts.Output != "" {
		cfg.Output = opts.Output
	}
	if opts.Jobs != 0 {
		cfg.Jobs = opts.Jobs
	}
	if opts.Precision != nil {
		cfg.FloatPrecision = *opts.Precision
	}
	if opts.Multipass {
		cfg.Multipass = true
	}

	// output keeps its viewBox whatever the configuration says
	cfg.Disable("removeViewBox")
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func run(ctx context.Context, opts cmdopts, stdout io.Writer, logger *zap.Logger) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	optimizer, err := svgo.NewOptimizer(cfg.OptimizeOptions()...)
	if err != nil {
		return err
	}
	logger.Debug("starting batch",
		zap.String("input", cfg.Input),
		zap.String("output", cfg.Output),
		zap.Int("jobs", cfg.Jobs),
		zap.Strings("plugins", optimizer.PluginNames()),
	)

	b := &batch{
		optimizer: optimizer,
		input:     cfg.Input,
		output:    cfg.Output,
		jobs:      cfg.Jobs,
		stdout:    stdout,
		logger:    logger,
	}
	return b.run(ctx)
}

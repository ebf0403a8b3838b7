package main

import (
	"context"
	"fmt"
	"os"
	"runtime/pprof"

	"github.com/jessevdk/go-flags"
	"github.com/lestrrat-go/svgo"
	"github.com/pkg/errors"
)

const usage = `svgo-profile - Profile the optimizer on a single file

Usage:
  svgo-profile [options] <svg-file>

The profile is written to svgo_<type>.prof (or --out) and can be
viewed with:

  go tool pprof -http=:8080 svgo_cpu.prof
`

type cmdopts struct {
	Iterations int    `short:"n" long:"iterations" default:"2000" description:"number of optimizer runs"`
	Profile    string `long:"profile" default:"cpu" choice:"cpu" choice:"mem" description:"profile type"`
	Out        string `long:"out" description:"profile file name"`
	Multipass  bool   `long:"multipass" description:"profile multipass runs"`
}

func main() {
	os.Exit(_main())
}

func _main() int {
	var opts cmdopts
	args, err := flags.ParseArgs(&opts, os.Args[1:])
	if err != nil {
		if flags.WroteHelp(err) {
			fmt.Print(usage)
			return 0
		}
		return 1
	}
	if len(args) != 1 {
		fmt.Fprintf(os.Stderr, "Error: SVG file argument required\n\n")
		fmt.Print(usage)
		return 1
	}

	if opts.Out == "" {
		opts.Out = fmt.Sprintf("svgo_%s.prof", opts.Profile)
	}

	if err := generateProfile(args[0], opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	fmt.Printf("Profile written to %s\n", opts.Out)
	return 0
}

func generateProfile(svgFile string, opts cmdopts) error {
	data, err := os.ReadFile(svgFile)
	if err != nil {
		return errors.Wrap(err, "failed to read SVG file")
	}

	// Disable tracing for performance
	svgo.SetTracingEnabled(false)
	optimizer, err := svgo.NewOptimizer(svgo.WithPath(svgFile), svgo.WithMultipass(opts.Multipass))
	if err != nil {
		return err
	}

	f, err := os.Create(opts.Out)
	if err != nil {
		return err
	}
	defer f.Close()

	ctx := context.Background()
	switch opts.Profile {
	case "cpu":
		if err := pprof.StartCPUProfile(f); err != nil {
			return err
		}
		defer pprof.StopCPUProfile()
		return runWorkload(ctx, optimizer, data, opts.Iterations)
	default:
		if err := runWorkload(ctx, optimizer, data, opts.Iterations); err != nil {
			return err
		}
		return pprof.WriteHeapProfile(f)
	}
}

func runWorkload(ctx context.Context, optimizer *svgo.Optimizer, data []byte, iterations int) error {
	for i := range iterations {
		if _, err := optimizer.Optimize(ctx, data); err != nil {
			return errors.Wrapf(err, "optimize failed at iteration %d", i)
		}
	}
	return nil
}

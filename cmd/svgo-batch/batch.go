package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/lestrrat-go/svgo"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// batch optimizes every SVG file of a directory into another one
type batch struct {
	optimizer *svgo.Optimizer
	input     string
	output    string
	jobs      int
	logger    *zap.Logger

	mu     sync.Mutex
	stdout io.Writer
}

func (b *batch) run(ctx context.Context) error {
	entries, err := os.ReadDir(b.input)
	if err != nil {
		return errors.Wrap(err, "failed to read input directory")
	}
	if err := os.MkdirAll(b.output, 0755); err != nil {
		return errors.Wrap(err, "failed to create output directory")
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(b.jobs)
	for _, entry := range entries {
		name := entry.Name()
		if !entry.Type().IsRegular() || !strings.HasSuffix(name, ".svg") {
			continue
		}
		// files already running finish, but nothing new starts
		// after a failure
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			return b.process(ctx, name)
		})
	}
	return g.Wait()
}

func (b *batch) process(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	src := filepath.Join(b.input, name)
	data, err := os.ReadFile(src)
	if err != nil {
		return errors.Wrapf(err, "failed to read %s", src)
	}

	out, err := b.optimizer.Optimize(ctx, data)
	if err != nil {
		return errors.Wrapf(err, "failed to optimize %s", src)
	}

	dst := filepath.Join(b.output, name)
	if err := os.WriteFile(dst, out, 0644); err != nil {
		return errors.Wrapf(err, "failed to write %s", dst)
	}

	b.logger.Debug("optimized",
		zap.String("file", name),
		zap.Int("input_size", len(data)),
		zap.Int("output_size", len(out)),
	)

	b.mu.Lock()
	defer b.mu.Unlock()
	_, err = fmt.Fprintf(b.stdout, "Processed %s\n", name)
	return err
}

package svgo

import (
	"bytes"
	"context"
	"log/slog"

	"github.com/lestrrat-go/pdebug/v3"
	"github.com/lestrrat-go/svgo/node"
	"github.com/lestrrat-go/svgo/plugins"
	"github.com/lestrrat-go/svgo/s11n"
	"github.com/pkg/errors"
)

// DefaultFloatPrecision is the number of decimals kept when plugins
// rewrite numbers, unless WithFloatPrecision says otherwise.
const DefaultFloatPrecision = 3

// maxPasses bounds the number of plugin list runs in multipass mode
const maxPasses = 10

func (p Plugin) override() PluginOverride {
	return PluginOverride{Name: string(p)}
}

func (o PluginOverride) override() PluginOverride {
	return o
}

// Disabled returns an entry that keeps the named plugin from running
func Disabled(name string) PluginOverride {
	active := false
	return PluginOverride{Name: name, Active: &active}
}

// Optimize parses input, runs the plugin list over it and returns the
// serialized result. Without WithPlugins the default preset runs.
func Optimize(ctx context.Context, input []byte, options ...OptimizeOption) ([]byte, error) {
	o, err := NewOptimizer(options...)
	if err != nil {
		return nil, err
	}
	return o.Optimize(ctx, input)
}

// NewOptimizer validates options and resolves the plugin list.
// Unknown plugin names are reported with ErrUnknownPlugin.
func NewOptimizer(options ...OptimizeOption) (*Optimizer, error) {
	o := Optimizer{precision: DefaultFloatPrecision}

	var entries []PluginEntry
	entriesSet := false
	for _, option := range options {
		switch option.Ident() {
		case identPlugins{}:
			entries = option.Value().([]PluginEntry)
			entriesSet = true
		case identFloatPrecision{}:
			o.precision = option.Value().(int)
		case identMultipass{}:
			o.multipass = option.Value().(bool)
		case identIndent{}:
			o.indent = option.Value().(string)
		case identParseOptions{}:
			o.parseOptions = append(o.parseOptions, option.Value().([]ParseOption)...)
		case identPath{}:
			o.path = option.Value().(string)
		}
	}

	if o.precision < 0 {
		return nil, errors.Wrapf(ErrInvalidOption, "float precision must not be negative, got %d", o.precision)
	}

	if !entriesSet {
		for _, name := range plugins.DefaultPreset() {
			entries = append(entries, Plugin(name))
		}
	}
	list, err := resolvePlugins(entries)
	if err != nil {
		return nil, err
	}
	o.plugins = list

	if o.path != "" {
		o.parseOptions = append(o.parseOptions, WithPath(o.path))
	}
	return &o, nil
}

func resolvePlugins(entries []PluginEntry) ([]resolvedPlugin, error) {
	list := make([]resolvedPlugin, 0, len(entries))
	for _, entry := range entries {
		if entry == nil {
			continue
		}
		ov := entry.override()
		p, ok := plugins.Lookup(ov.Name)
		if !ok {
			return nil, errors.Wrapf(ErrUnknownPlugin, "%q", ov.Name)
		}
		if ov.Active != nil && !*ov.Active {
			continue
		}
		list = append(list, resolvedPlugin{plugin: p, params: ov.Params})
	}
	return list, nil
}

// PluginNames returns the names of the plugins o runs, in order
func (o *Optimizer) PluginNames() []string {
	names := make([]string, len(o.plugins))
	for i, p := range o.plugins {
		names[i] = p.plugin.Name()
	}
	return names
}

// Optimize runs o over a single document. A parse failure is returned
// as a *ParseError, a plugin failure as a *plugins.InvariantError; in
// both cases no output is produced.
func (o *Optimizer) Optimize(ctx context.Context, input []byte) (out []byte, err error) {
	if pdebug.Enabled {
		g := pdebug.FuncMarker().BindError(&err)
		defer g.End()
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Once started, a document is processed to the end; cancellation
	// only prevents new documents from starting.
	ctx, span := StartSpan(context.WithoutCancel(ctx), "optimize")
	defer span.End()

	doc, err := Parse(ctx, input, o.parseOptions...)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, errors.Wrap(node.ErrNoRootElement, "the configured SAX handler built no document")
	}

	passes := 1
	if o.multipass {
		passes = maxPasses
	}

	var prev []byte
	for pass := 1; pass <= passes; pass++ {
		if err := o.runPlugins(ctx, doc, pass); err != nil {
			TraceError(ctx, err, "optimize failed", slog.String("path", o.path), slog.Int("pass", pass))
			return nil, err
		}
		cur, err := o.serialize(doc)
		if err != nil {
			return nil, err
		}
		if bytes.Equal(cur, prev) {
			break
		}
		prev = cur
	}

	TraceEvent(ctx, "optimize done",
		slog.String("path", o.path),
		slog.Int("input_size", len(input)),
		slog.Int("output_size", len(prev)),
	)
	return prev, nil
}

func (o *Optimizer) runPlugins(ctx context.Context, doc *node.Document, pass int) error {
	ctx, span := StartSpan(ctx, "plugins")
	defer span.End()

	logger := getTraceLogFromContext(ctx).With(slog.String("path", o.path), slog.Int("pass", pass))
	for _, rp := range o.plugins {
		pctx := &plugins.Context{
			Logger:         logger,
			FloatPrecision: o.precision,
			Params:         rp.params,
		}
		TraceEvent(ctx, "plugin", slog.String("name", rp.plugin.Name()))
		if err := rp.plugin.Run(ctx, pctx, doc); err != nil {
			return err
		}
	}
	return nil
}

func (o *Optimizer) serialize(doc *node.Document) ([]byte, error) {
	var buf bytes.Buffer
	d := s11n.Dumper{Indent: o.indent}
	if err := d.DumpDoc(&buf, doc); err != nil {
		return nil, errors.Wrap(err, "failed to serialize document")
	}
	return buf.Bytes(), nil
}

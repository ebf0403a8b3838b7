// Package plugins holds the transformations the optimizer applies to
// a parsed document. Each plugin is a function over a node.Document;
// plugins are looked up by name and run in the order the caller
// gives.
package plugins

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"slices"

	"github.com/lestrrat-go/pdebug/v3"
	"github.com/lestrrat-go/svgo/node"
	"github.com/pkg/errors"
)

var ErrInvalidParams = errors.New("invalid plugin parameters")

// Func is the body of a plugin. It modifies doc in place.
type Func func(ctx context.Context, pctx *Context, doc *node.Document) error

// Plugin is a named transformation
type Plugin struct {
	name        string
	description string
	fn          Func
}

func (p *Plugin) Name() string {
	return p.name
}

func (p *Plugin) Description() string {
	return p.description
}

// Context carries the settings of a single plugin invocation
type Context struct {
	// Logger receives notes about input the plugin skipped. It is
	// never nil when the plugin runs.
	Logger *slog.Logger
	// FloatPrecision is the number of decimals kept when a plugin
	// writes numbers.
	FloatPrecision int
	// Params holds the plugin specific parameters
	Params map[string]any
}

// InvariantError is returned when a plugin fails. The document it
// was working on must be considered broken.
type InvariantError struct {
	Plugin string
	Err    error
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("plugin %s: %s", e.Plugin, e.Err)
}

func (e *InvariantError) Unwrap() error {
	return e.Err
}

// Run applies the plugin to doc. Any error is reported as an
// *InvariantError.
func (p *Plugin) Run(ctx context.Context, pctx *Context, doc *node.Document) (err error) {
	if pdebug.Enabled {
		g := pdebug.Marker("plugin %s", p.name).BindError(&err)
		defer g.End()
	}

	if pctx == nil {
		pctx = &Context{}
	}
	if pctx.Logger == nil {
		pctx.Logger = slog.New(slog.DiscardHandler)
	}

	if err := p.fn(ctx, pctx, doc); err != nil {
		return &InvariantError{Plugin: p.name, Err: err}
	}
	if doc.DocumentElement() == nil {
		return &InvariantError{Plugin: p.name, Err: node.ErrNoRootElement}
	}
	return nil
}

// skip records input the plugin leaves alone
func (c *Context) skip(plugin, reason string, args ...any) {
	c.Logger.Debug("unsupported input skipped", append([]any{"plugin", plugin, "reason", reason}, args...)...)
}

func invalidParam(name, want string, got any) error {
	return errors.Wrapf(ErrInvalidParams, "%s: expected %s, got %T", name, want, got)
}

func (c *Context) boolParam(name string, def bool) (bool, error) {
	v, ok := c.Params[name]
	if !ok || v == nil {
		return def, nil
	}
	b, ok := v.(bool)
	if !ok {
		return false, invalidParam(name, "a boolean", v)
	}
	return b, nil
}

func (c *Context) intParam(name string, def int) (int, error) {
	v, ok := c.Params[name]
	if !ok || v == nil {
		return def, nil
	}
	switch v := v.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case uint64:
		return int(v), nil
	case float64:
		if v == math.Trunc(v) {
			return int(v), nil
		}
	}
	return 0, invalidParam(name, "an integer", v)
}

// stringsParam accepts a list of strings. The boolean false stands
// for the empty list.
func (c *Context) stringsParam(name string, def []string) ([]string, error) {
	v, ok := c.Params[name]
	if !ok || v == nil {
		return def, nil
	}
	switch v := v.(type) {
	case bool:
		if !v {
			return nil, nil
		}
	case string:
		return []string{v}, nil
	case []string:
		return v, nil
	case []any:
		list := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, invalidParam(name, "a list of strings", item)
			}
			list = append(list, s)
		}
		return list, nil
	}
	return nil, invalidParam(name, "a list of strings", v)
}

// precision returns the floatPrecision parameter, falling back to the
// optimizer wide setting.
func (c *Context) precision() (int, error) {
	p, err := c.intParam("floatPrecision", c.FloatPrecision)
	if err != nil {
		return 0, err
	}
	if p < 0 {
		return 0, invalidParam("floatPrecision", "a non-negative integer", p)
	}
	return p, nil
}

var registry = map[string]*Plugin{}

func register(name, description string, fn Func) {
	registry[name] = &Plugin{name: name, description: description, fn: fn}
}

// Lookup returns the plugin registered under name
func Lookup(name string) (*Plugin, bool) {
	p, ok := registry[name]
	return p, ok
}

// Names returns the names of every registered plugin, sorted
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

var defaultPreset = []string{
	"removeDoctype",
	"removeXMLProcInst",
	"removeComments",
	"removeMetadata",
	"removeEditorsNSData",
	"cleanupAttrs",
	"inlineStyles",
	"minifyStyles",
	"convertStyleToAttrs",
	"removeRasterImages",
	"convertShapeToPath",
	"mergePaths",
	"sortAttrs",
	"removeDimensions",
}

// DefaultPreset returns the names of the plugins run when the caller
// does not choose, in the order they run.
func DefaultPreset() []string {
	return slices.Clone(defaultPreset)
}

package svgo

import (
	"github.com/lestrrat-go/option"
	"github.com/lestrrat-go/svgo/sax"
)

type Option = option.Interface

type identFloatPrecision struct{}
type identIndent struct{}
type identKeepBlanks struct{}
type identMultipass struct{}
type identParseOptions struct{}
type identPath struct{}
type identPlugins struct{}
type identSAX struct{}

// ParseOption configures Parse and NewParser
type ParseOption interface {
	Option
	parseOption()
}

type parseOption struct{ Option }

func (*parseOption) parseOption() {}

// OptimizeOption configures Optimize
type OptimizeOption interface {
	Option
	optimizeOption()
}

type optimizeOption struct{ Option }

func (*optimizeOption) optimizeOption() {}

// GlobalOption is accepted by both Parse and Optimize
type GlobalOption interface {
	ParseOption
	OptimizeOption
}

type globalOption struct{ Option }

func (*globalOption) parseOption()    {}
func (*globalOption) optimizeOption() {}

// WithSAX replaces the TreeBuilder with a different event handler.
// Parse then returns a nil document unless the handler builds one.
func WithSAX(v sax.Handler) ParseOption {
	return &parseOption{option.New(identSAX{}, v)}
}

// WithKeepBlanks keeps whitespace-only text nodes that would
// otherwise be dropped.
func WithKeepBlanks(v bool) ParseOption {
	return &parseOption{option.New(identKeepBlanks{}, v)}
}

// WithPath names the input. The name shows up in errors and trace
// output only.
func WithPath(v string) GlobalOption {
	return &globalOption{option.New(identPath{}, v)}
}

// WithPlugins sets the plugin list. Each entry is either a Plugin
// (a bare name) or a PluginOverride. When the option is not given,
// the default preset is used.
func WithPlugins(v ...PluginEntry) OptimizeOption {
	return &optimizeOption{option.New(identPlugins{}, v)}
}

// WithFloatPrecision sets the number of decimals used when numbers
// are rewritten. The default is 3.
func WithFloatPrecision(v int) OptimizeOption {
	return &optimizeOption{option.New(identFloatPrecision{}, v)}
}

// WithMultipass runs the plugin list repeatedly until the output
// stops changing.
func WithMultipass(v bool) OptimizeOption {
	return &optimizeOption{option.New(identMultipass{}, v)}
}

// WithIndent pretty prints the output using v as the indentation unit
func WithIndent(v string) OptimizeOption {
	return &optimizeOption{option.New(identIndent{}, v)}
}

// WithParseOptions passes options through to the parser used by
// Optimize.
func WithParseOptions(v ...ParseOption) OptimizeOption {
	return &optimizeOption{option.New(identParseOptions{}, v)}
}

package svgo

import (
	"github.com/lestrrat-go/svgo/node"
	"github.com/lestrrat-go/svgo/plugins"
	"github.com/lestrrat-go/svgo/sax"
	"github.com/pkg/errors"
)

// Version of the optimizer, reported by the commands
const Version = "0.1.0"

var (
	ErrEmptyDocument       = errors.New("document is empty")
	ErrExtraContent        = errors.New("extra content at the end of the document")
	ErrPrematureEnd        = errors.New("premature end of data")
	ErrTagNameMismatch     = errors.New("opening and ending tag mismatch")
	ErrUnboundPrefix       = errors.New("namespace prefix is not defined")
	ErrInvalidDirective    = errors.New("unsupported markup declaration")
	ErrTextOutsideRoot     = errors.New("text content outside of the root element")
	ErrUnknownPlugin       = errors.New("unknown plugin")
	ErrInvalidOption       = errors.New("invalid option")
	ErrInvalidPluginParams = plugins.ErrInvalidParams
)

// ParseError is returned when the input cannot be read as a
// well-formed XML document.
type ParseError struct {
	// Path is the name of the input, when one was given
	Path string
	// Line is the text of the offending line
	Line       string
	LineNumber int
	Column     int
	// Location is the byte offset into the input
	Location int64
	Err      error
}

// Parser reads SVG text into a document tree. A Parser holds no
// per-document state and may be shared between goroutines.
type Parser struct {
	sax        sax.Handler
	keepBlanks bool
	path       string
}

// TreeBuilder is the sax.Handler that assembles a node.Document.
// Parse uses one unless a different handler is configured.
type TreeBuilder struct {
	doc *node.Document
	cur node.Node
}

type elementFrame struct {
	name     string
	textual  bool
	preserve bool
	nsdecls  int
}

type parsedAttribute struct {
	prefix string
	local  string
	value  string
}

type parsedElement struct {
	prefix string
	local  string
	uri    string
	attrs  []sax.ParsedAttribute
}

// PluginEntry is an element of the list given to WithPlugins: either
// a Plugin or a PluginOverride.
type PluginEntry interface {
	override() PluginOverride
}

// Plugin selects a registered plugin by name, with default settings
type Plugin string

// PluginOverride selects a registered plugin and changes how it runs.
// A nil Active counts as active.
type PluginOverride struct {
	Name   string
	Active *bool
	Params map[string]any
}

// Optimizer runs a plugin list over documents. An Optimizer is
// immutable once created and may be shared between goroutines.
type Optimizer struct {
	parseOptions []ParseOption
	path         string
	plugins      []resolvedPlugin
	precision    int
	multipass    bool
	indent       string
}

type resolvedPlugin struct {
	plugin *plugins.Plugin
	params map[string]any
}

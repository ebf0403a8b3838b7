package svgo

import (
	"context"
	"log/slog"

	"github.com/lestrrat-go/pdebug/v3"
	"github.com/lestrrat-go/svgo/node"
	"github.com/lestrrat-go/svgo/sax"
)

// Parse reads an SVG document from b.
func Parse(ctx context.Context, b []byte, options ...ParseOption) (*node.Document, error) {
	return NewParser(options...).Parse(ctx, b)
}

func NewParser(options ...ParseOption) *Parser {
	var p Parser
	for _, option := range options {
		switch option.Ident() {
		case identSAX{}:
			p.sax = option.Value().(sax.Handler)
		case identKeepBlanks{}:
			p.keepBlanks = option.Value().(bool)
		case identPath{}:
			p.path = option.Value().(string)
		}
	}
	return &p
}

func (p *Parser) Parse(ctx context.Context, b []byte) (*node.Document, error) {
	if pdebug.Enabled {
		g := pdebug.FuncMarker()
		defer g.End()
	}

	ctx, span := StartSpan(ctx, "parse")
	defer span.End()

	// Parser is just a thin wrapper around parserCtx. Every call gets
	// its own context and, unless one was configured, its own tree
	// builder, so a Parser can be shared.
	handler := p.sax
	if handler == nil {
		handler = NewTreeBuilder()
	}

	pctx := &parserCtx{}
	pctx.init(p, handler, b)
	if err := pctx.parseDocument(ctx); err != nil {
		TraceError(ctx, err, "parse failed", slog.String("path", p.path))
		return nil, err
	}
	TraceEvent(ctx, "parse done", slog.String("path", p.path), slog.Int("size", len(b)))
	return pctx.doc, nil
}

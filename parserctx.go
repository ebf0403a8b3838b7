package svgo

import (
	"bytes"
	"context"
	"encoding/xml"
	"io"
	"regexp"
	"strings"

	"github.com/lestrrat-go/strcursor"
	"github.com/lestrrat-go/svgo/encoding"
	"github.com/lestrrat-go/svgo/internal/debug"
	"github.com/lestrrat-go/svgo/internal/stack/nsstack"
	"github.com/lestrrat-go/svgo/node"
	"github.com/lestrrat-go/svgo/sax"
	"github.com/pkg/errors"
)

const xmlWhitespace = " \t\r\n"

// textElements hold character data that is rendered or read as
// content. Whitespace inside them (and inside their descendants) is
// significant.
var textElements = map[string]struct{}{
	"a":            {},
	"altGlyph":     {},
	"altGlyphDef":  {},
	"altGlyphItem": {},
	"glyph":        {},
	"glyphRef":     {},
	"pre":          {},
	"text":         {},
	"textPath":     {},
	"title":        {},
	"tref":         {},
	"tspan":        {},
}

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}

	// "<?" of an XML declaration written in UTF-16 without a byte
	// order mark
	declUTF16LE = []byte{'<', 0x00, '?', 0x00}
	declUTF16BE = []byte{0x00, '<', 0x00, '?'}
)

// internal subset entity declarations, parameter entities excluded
var entityDecl = regexp.MustCompile(`<!ENTITY\s+([^\s%"']+)\s+(?:"([^"]*)"|'([^']*)')\s*>`)

type parserCtx struct {
	data       []byte
	dec        *xml.Decoder
	sax        sax.Handler
	keepBlanks bool
	path       string
	transcoded bool
	frames     frameStack
	nsstack    nsstack.Stack
	pending    []byte
	seenRoot   bool
	doc        *node.Document

	// position of the token being processed
	lineNumber int
	column     int
	offset     int64
}

var _ sax.DocumentLocator = (*parserCtx)(nil)

func (pctx *parserCtx) init(p *Parser, h sax.Handler, b []byte) {
	pctx.sax = h
	pctx.keepBlanks = p.keepBlanks
	pctx.path = p.path
	pctx.lineNumber = 1
	pctx.column = 1
	pctx.data = b
}

func (pctx *parserCtx) LineNumber() int {
	return pctx.lineNumber
}

func (pctx *parserCtx) ColumnNumber() int {
	return pctx.column
}

// detectEncoding looks at the first bytes of the input the way XML 1.0
// appendix F describes. A UTF-8 byte order mark is stripped. UTF-16
// input, with a byte order mark or recognized by how "<?" is encoded,
// is converted to UTF-8 up front because the tokenizer only switches
// charsets after it has read the XML declaration.
func (pctx *parserCtx) detectEncoding() error {
	if debug.Enabled {
		debug.Printf("START detectEncoding")
		defer debug.Printf("END   detectEncoding")
	}

	c := strcursor.NewByteCursor(bytes.NewReader(pctx.data), len(declUTF16LE))
	var label string
	switch {
	case c.HasPrefix(bomUTF8):
		pctx.data = pctx.data[len(bomUTF8):]
		return nil
	case c.HasPrefix(bomUTF16LE), c.HasPrefix(bomUTF16BE):
		label = "utf-16"
	case c.HasPrefix(declUTF16LE):
		label = "utf-16le"
	case c.HasPrefix(declUTF16BE):
		label = "utf-16be"
	default:
		return nil
	}

	if debug.Enabled {
		debug.Printf("input detected as %s", label)
	}
	out, err := encoding.Load(label).NewDecoder().Bytes(pctx.data)
	if err != nil {
		return errors.Wrapf(err, "failed to decode %s input", label)
	}
	pctx.data = out
	pctx.transcoded = true
	return nil
}

func (pctx *parserCtx) charsetReader(label string, input io.Reader) (io.Reader, error) {
	if pctx.transcoded && strings.HasPrefix(strings.ToLower(label), "utf-16") {
		return input, nil
	}
	r, err := encoding.CharsetReader(label, input)
	if err != nil {
		return nil, errors.Wrapf(err, "unsupported encoding %q", label)
	}
	return r, nil
}

func (pctx *parserCtx) parseDocument(ctx context.Context) error {
	if err := pctx.detectEncoding(); err != nil {
		return pctx.error(err)
	}

	dec := xml.NewDecoder(bytes.NewReader(pctx.data))
	dec.Strict = true
	dec.CharsetReader = pctx.charsetReader
	pctx.dec = dec

	if err := pctx.sax.SetDocumentLocator(pctx, pctx); err != nil {
		return pctx.error(err)
	}
	if err := pctx.sax.StartDocument(pctx); err != nil {
		return pctx.error(err)
	}

	for {
		pctx.lineNumber, pctx.column = dec.InputPos()
		pctx.offset = dec.InputOffset()
		tok, err := dec.RawToken()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return pctx.error(err)
		}
		if err := pctx.handleToken(ctx, tok); err != nil {
			return pctx.error(err)
		}
	}

	if err := pctx.flushText(); err != nil {
		return pctx.error(err)
	}
	if f := pctx.frames.PeekOne(); f != nil {
		return pctx.error(errors.Wrapf(ErrPrematureEnd, "element <%s> is not closed", f.name))
	}
	if !pctx.seenRoot {
		return pctx.error(ErrEmptyDocument)
	}
	if err := pctx.sax.EndDocument(pctx); err != nil {
		return pctx.error(err)
	}
	return nil
}

func (pctx *parserCtx) handleToken(ctx context.Context, tok xml.Token) error {
	switch tok := tok.(type) {
	case xml.StartElement:
		return pctx.startElement(ctx, tok)
	case xml.EndElement:
		return pctx.endElement(tok)
	case xml.CharData:
		// the tokenizer splits text around CDATA sections and reuses
		// its buffer, so runs are accumulated into a private copy
		pctx.pending = append(pctx.pending, tok...)
		return nil
	case xml.Comment:
		if err := pctx.flushText(); err != nil {
			return err
		}
		return pctx.sax.Comment(pctx, bytes.Clone(tok))
	case xml.ProcInst:
		if err := pctx.flushText(); err != nil {
			return err
		}
		if strings.EqualFold(tok.Target, "xml") && pctx.offset != 0 {
			return errors.New("XML declaration allowed only at the start of the document")
		}
		return pctx.sax.ProcessingInstruction(pctx, tok.Target, string(tok.Inst))
	case xml.Directive:
		if err := pctx.flushText(); err != nil {
			return err
		}
		return pctx.directive(tok)
	}
	return nil
}

func (pctx *parserCtx) startElement(ctx context.Context, tok xml.StartElement) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := pctx.flushText(); err != nil {
		return err
	}

	parent := pctx.frames.PeekOne()
	if parent == nil && pctx.seenRoot {
		return ErrExtraContent
	}
	pctx.seenRoot = true

	frame := &elementFrame{name: qname(tok.Name)}
	if parent != nil {
		frame.textual = parent.textual
		frame.preserve = parent.preserve
	}
	if _, ok := textElements[tok.Name.Local]; ok {
		frame.textual = true
	}

	attrs := make([]sax.ParsedAttribute, 0, len(tok.Attr))
	for _, a := range tok.Attr {
		switch {
		case a.Name.Space == "xmlns":
			pctx.nsstack.Push(a.Name.Local, a.Value)
			frame.nsdecls++
		case a.Name.Space == "" && a.Name.Local == "xmlns":
			pctx.nsstack.Push("", a.Value)
			frame.nsdecls++
		case a.Name.Space == "xml" && a.Name.Local == "space":
			frame.preserve = a.Value == "preserve"
		}
		attrs = append(attrs, parsedAttribute{
			prefix: a.Name.Space,
			local:  a.Name.Local,
			value:  a.Value,
		})
	}
	pctx.frames.Push(frame)

	elem := &parsedElement{
		prefix: tok.Name.Space,
		local:  tok.Name.Local,
		attrs:  attrs,
	}
	uri, ok := pctx.lookupNamespace(elem.prefix)
	if !ok && elem.prefix != "" {
		return errors.Wrapf(ErrUnboundPrefix, "element <%s>", frame.name)
	}
	elem.uri = uri

	for _, a := range tok.Attr {
		prefix := a.Name.Space
		if prefix == "" || prefix == "xmlns" {
			continue
		}
		if _, ok := pctx.lookupNamespace(prefix); !ok {
			return errors.Wrapf(ErrUnboundPrefix, "attribute %s on <%s>", qname(a.Name), frame.name)
		}
	}

	if debug.Enabled {
		debug.Printf(" --> push element %s", frame.name)
		debug.Dump(elem.attrs)
	}
	return pctx.sax.StartElement(pctx, elem)
}

func (pctx *parserCtx) endElement(tok xml.EndElement) error {
	if err := pctx.flushText(); err != nil {
		return err
	}

	name := qname(tok.Name)
	frame := pctx.frames.Pop()
	if frame == nil {
		return errors.Wrapf(ErrTagNameMismatch, "unexpected end tag </%s>", name)
	}
	if frame.name != name {
		return errors.Wrapf(ErrTagNameMismatch, "expected </%s>, found </%s>", frame.name, name)
	}

	elem := &parsedElement{
		prefix: tok.Name.Space,
		local:  tok.Name.Local,
	}
	elem.uri, _ = pctx.lookupNamespace(elem.prefix)
	if err := pctx.sax.EndElement(pctx, elem); err != nil {
		return err
	}
	pctx.nsstack.Pop(frame.nsdecls)

	if debug.Enabled {
		debug.Printf(" <-- pop element %s", frame.name)
	}
	return nil
}

// flushText hands the accumulated character data to the handler,
// applying the whitespace policy of the enclosing element.
func (pctx *parserCtx) flushText() error {
	if len(pctx.pending) == 0 {
		return nil
	}
	text := pctx.pending
	pctx.pending = nil

	frame := pctx.frames.PeekOne()
	if frame == nil {
		if len(bytes.Trim(text, xmlWhitespace)) == 0 {
			return nil
		}
		return ErrTextOutsideRoot
	}

	if !frame.textual && !frame.preserve && !pctx.keepBlanks {
		text = bytes.Trim(text, xmlWhitespace)
		if len(text) == 0 {
			return nil
		}
	}
	return pctx.sax.Characters(pctx, text)
}

func (pctx *parserCtx) directive(tok xml.Directive) error {
	s := string(tok)
	if !strings.HasPrefix(s, "DOCTYPE") {
		return errors.Wrapf(ErrInvalidDirective, "<!%s>", truncate(s, 20))
	}
	if pctx.seenRoot {
		return errors.Wrap(ErrInvalidDirective, "DOCTYPE after the root element")
	}

	for _, m := range entityDecl.FindAllStringSubmatch(s, -1) {
		if pctx.dec.Entity == nil {
			pctx.dec.Entity = make(map[string]string)
		}
		pctx.dec.Entity[m[1]] = m[2] + m[3]
	}
	return pctx.sax.Doctype(pctx, strings.TrimPrefix(s, "DOCTYPE"))
}

func (pctx *parserCtx) lookupNamespace(prefix string) (string, bool) {
	switch prefix {
	case "xml":
		return node.XMLNamespace, true
	case "xmlns":
		return node.XMLNSNamespace, true
	}
	return pctx.nsstack.Lookup(prefix)
}

func (pctx *parserCtx) error(err error) error {
	var perr *ParseError
	if errors.As(err, &perr) {
		return perr
	}

	var serr *xml.SyntaxError
	if errors.As(err, &serr) {
		pctx.lineNumber, pctx.column = pctx.dec.InputPos()
		pctx.lineNumber = serr.Line
		pctx.offset = pctx.dec.InputOffset()
		err = errors.New(serr.Msg)
	}

	return &ParseError{
		Path:       pctx.path,
		Line:       pctx.lineText(pctx.lineNumber, pctx.column),
		LineNumber: pctx.lineNumber,
		Column:     pctx.column,
		Location:   pctx.offset,
		Err:        err,
	}
}

// lineText returns up to 80 bytes of line n around column col
func (pctx *parserCtx) lineText(n, col int) string {
	data := pctx.data
	for i := 1; i < n; i++ {
		idx := bytes.IndexByte(data, '\n')
		if idx < 0 {
			return ""
		}
		data = data[idx+1:]
	}
	if idx := bytes.IndexByte(data, '\n'); idx >= 0 {
		data = data[:idx]
	}
	data = bytes.TrimRight(data, "\r")

	const width = 80
	if len(data) > width {
		start := max(col-1-width/2, 0)
		end := min(start+width, len(data))
		data = data[start:end]
	}
	return strings.ToValidUTF8(string(data), "")
}

func qname(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	return n.Space + ":" + n.Local
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

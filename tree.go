package svgo

import (
	"strings"

	"github.com/lestrrat-go/svgo/internal/debug"
	"github.com/lestrrat-go/svgo/node"
	"github.com/lestrrat-go/svgo/sax"
	"github.com/pkg/errors"
)

var _ sax.Handler = (*TreeBuilder)(nil)

func NewTreeBuilder() *TreeBuilder {
	return &TreeBuilder{}
}

func (t *TreeBuilder) SetDocumentLocator(ctxif sax.Context, loc sax.DocumentLocator) error {
	return nil
}

func (t *TreeBuilder) StartDocument(ctxif sax.Context) error {
	if debug.Enabled {
		g := debug.IPrintf("START tree.StartDocument")
		defer g.IRelease("END tree.StartDocument")
	}

	t.doc = node.NewDocument()
	t.cur = nil
	return nil
}

func (t *TreeBuilder) EndDocument(ctxif sax.Context) error {
	if debug.Enabled {
		g := debug.IPrintf("START tree.EndDocument")
		defer g.IRelease("END tree.EndDocument")
	}

	if ctx, ok := ctxif.(*parserCtx); ok {
		ctx.doc = t.doc
	}
	t.doc = nil
	t.cur = nil
	return nil
}

// Document returns the document built so far. It is nil once
// EndDocument has handed the document to the parser.
func (t *TreeBuilder) Document() *node.Document {
	return t.doc
}

func (t *TreeBuilder) parent() node.Node {
	if t.cur == nil {
		return t.doc
	}
	return t.cur
}

func (t *TreeBuilder) ProcessingInstruction(ctxif sax.Context, target, data string) error {
	if target == "xml" {
		data = normalizeXMLDecl(data)
	}
	return t.parent().AddChild(t.doc.CreatePI(target, data))
}

func (t *TreeBuilder) Doctype(ctxif sax.Context, content string) error {
	return t.doc.AddChild(t.doc.CreateDoctype(content))
}

func (t *TreeBuilder) StartElement(ctxif sax.Context, elem sax.ParsedElement) error {
	if debug.Enabled {
		g := debug.IPrintf("START tree.StartElement: %s", elem.Name())
		defer g.IRelease("END tree.StartElement")
	}

	e := t.doc.CreateElement(elem.Name())
	for _, attr := range elem.Attributes() {
		if err := e.AddAttribute(attr.Name(), attr.Value()); err != nil {
			return errors.Wrapf(err, "attribute %s on <%s>", attr.Name(), elem.Name())
		}
	}

	if err := t.parent().AddChild(e); err != nil {
		return err
	}
	t.cur = e
	return nil
}

func (t *TreeBuilder) EndElement(ctxif sax.Context, elem sax.ParsedElement) error {
	if debug.Enabled {
		g := debug.IPrintf("START tree.EndElement: %s", elem.Name())
		defer g.IRelease("END tree.EndElement")
	}

	if t.cur == nil {
		return errors.Errorf("end of element %s without a start", elem.Name())
	}

	p := t.cur.Parent()
	if p == nil || p.Type() == node.DocumentNodeType {
		t.cur = nil
		return nil
	}
	t.cur = p
	return nil
}

func (t *TreeBuilder) Characters(ctxif sax.Context, content []byte) error {
	if t.cur == nil {
		return errors.New("character data outside of an element")
	}

	if last, ok := t.cur.LastChild().(*node.Text); ok {
		return last.AddContent(content)
	}
	return t.cur.AddChild(t.doc.CreateText(content))
}

func (t *TreeBuilder) Comment(ctxif sax.Context, content []byte) error {
	return t.parent().AddChild(t.doc.CreateComment(content))
}

// normalizeXMLDecl drops the encoding pseudo attribute unless it says
// UTF-8, since the serializer always writes UTF-8.
func normalizeXMLDecl(data string) string {
	pi := node.NewProcessingInstruction("xml", data)
	parts := make([]string, 0, 3)
	for _, attr := range pi.PseudoAttributes() {
		if attr.Name() == "encoding" && !strings.EqualFold(attr.Value(), "utf-8") {
			continue
		}
		parts = append(parts, attr.Name()+`="`+attr.Value()+`"`)
	}
	return strings.Join(parts, " ")
}

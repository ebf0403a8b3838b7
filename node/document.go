package node

import "errors"

var ErrNoRootElement = errors.New("document has no root element")

// Document represents the root document node. Its children are the
// prolog nodes (processing instructions, comments, doctype) and
// exactly one root element.
type Document struct {
	treeNode
}

var _ Node = (*Document)(nil)

func NewDocument() *Document {
	doc := &Document{}
	doc.treeNode = treeNode{
		doc: doc,
	}
	return doc
}

func (*Document) Type() NodeType {
	return DocumentNodeType
}

func (*Document) LocalName() string {
	return "#document"
}

func (d *Document) AddChild(cur Node) error {
	return addChild(d, cur)
}

func (d *Document) AddSibling(cur Node) error {
	return ErrInvalidOperation
}

func (d *Document) Replace(cur Node) error {
	return ErrInvalidOperation
}

func (d *Document) CreateElement(name string) *Element {
	e := NewElement(name)
	_ = e.SetOwnerDocument(d)
	return e
}

func (d *Document) CreateComment(content []byte) *Comment {
	c := NewComment(content)
	_ = c.SetOwnerDocument(d)
	return c
}

func (d *Document) CreateText(content []byte) *Text {
	t := NewText(content)
	_ = t.SetOwnerDocument(d)
	return t
}

func (d *Document) CreatePI(target, data string) *ProcessingInstruction {
	pi := NewProcessingInstruction(target, data)
	_ = pi.SetOwnerDocument(d)
	return pi
}

func (d *Document) CreateDoctype(content string) *Doctype {
	dt := NewDoctype(content)
	_ = dt.SetOwnerDocument(d)
	return dt
}

// DocumentElement returns the root element, or nil if the document
// does not have one yet.
func (d *Document) DocumentElement() *Element {
	for n := d.FirstChild(); n != nil; n = n.NextSibling() {
		if e, ok := n.(*Element); ok {
			return e
		}
	}
	return nil
}

// SetDocumentElement sets root as the root element, replacing the
// current one if any.
func (d *Document) SetDocumentElement(root *Element) error {
	if root == nil {
		return ErrNilNode
	}

	if old := d.DocumentElement(); old != nil {
		return old.Replace(root)
	}
	return d.AddChild(root)
}

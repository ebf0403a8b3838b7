package node

import "bytes"

// charData is the content storage shared by text and comment nodes
type charData struct {
	treeNode
	content []byte
}

func (d *charData) Content(dst []byte) ([]byte, error) {
	return append(dst, d.content...), nil
}

func (d *charData) SetContent(b []byte) {
	d.content = b
}

func (d *charData) AddContent(b []byte) error {
	d.content = append(d.content, b...)
	return nil
}

// IsBlank reports whether the content consists of XML whitespace only
func (d *charData) IsBlank() bool {
	return len(bytes.TrimLeft(d.content, " \t\r\n")) == 0
}

// Text holds character data. CDATA sections are stored as plain text
// and come back out however the serializer sees fit.
type Text struct {
	charData
}

var _ Node = (*Text)(nil)

func NewText(content []byte) *Text {
	t := &Text{}
	t.content = content
	return t
}

func (*Text) Type() NodeType {
	return TextNodeType
}

func (*Text) LocalName() string {
	return "#text"
}

// AddChild appends the content of another text node. Nothing else can
// be added to a text node.
func (n *Text) AddChild(child Node) error {
	t, ok := child.(*Text)
	if !ok {
		return ErrInvalidOperation
	}
	return n.AddContent(t.content)
}

func (n *Text) AddSibling(sibling Node) error {
	return addSibling(n, sibling)
}

func (n *Text) Replace(cur Node) error {
	return replaceNode(n, cur)
}

// Comment holds the body of <!--...-->, without the delimiters
type Comment struct {
	charData
}

var _ Node = (*Comment)(nil)

func NewComment(content []byte) *Comment {
	c := &Comment{}
	c.content = content
	return c
}

func (*Comment) Type() NodeType {
	return CommentNodeType
}

func (*Comment) LocalName() string {
	return "#comment"
}

func (n *Comment) AddChild(child Node) error {
	c, ok := child.(*Comment)
	if !ok {
		return ErrInvalidOperation
	}
	return n.AddContent(c.content)
}

func (n *Comment) AddSibling(sibling Node) error {
	return addSibling(n, sibling)
}

func (n *Comment) Replace(cur Node) error {
	return replaceNode(n, cur)
}

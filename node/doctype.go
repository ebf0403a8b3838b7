package node

// Doctype holds a document type declaration as opaque text: everything
// between "<!DOCTYPE" and the closing ">".
type Doctype struct {
	treeNode
	content string
}

var _ Node = (*Doctype)(nil)

func NewDoctype(content string) *Doctype {
	return &Doctype{content: content}
}

func (*Doctype) Type() NodeType {
	return DocumentTypeNodeType
}

func (*Doctype) LocalName() string {
	return "#doctype"
}

func (n *Doctype) Content(dst []byte) ([]byte, error) {
	return append(dst, n.content...), nil
}

func (n *Doctype) AddChild(Node) error {
	return ErrInvalidOperation
}

func (n *Doctype) AddSibling(cur Node) error {
	return addSibling(n, cur)
}

func (n *Doctype) Replace(cur Node) error {
	return replaceNode(n, cur)
}

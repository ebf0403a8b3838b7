package node

import (
	"errors"
	"iter"

	"github.com/lestrrat-go/svgo/internal/orderedmap"
)

var ErrDuplicateAttribute = errors.New("duplicate attribute")
var ErrAttributeNotFound = errors.New("attribute not found")

type Element struct {
	treeNode
	name  string
	attrs *orderedmap.Map[string, *Attribute]
}

var _ Node = (*Element)(nil)

// NewElement creates a new Element with the given qualified name.
// Please note that elements created this way are orphan nodes. You
// normally want to create an element using the Document.CreateElement
// method, which also sets the owner document.
func NewElement(name string) *Element {
	return &Element{
		name:  name,
		attrs: orderedmap.New[string, *Attribute](),
	}
}

func (Element) Type() NodeType {
	return ElementNodeType
}

// Name returns the qualified name of the element
func (e *Element) Name() string {
	return e.name
}

// SetName renames the element. Attributes and children are kept.
func (e *Element) SetName(name string) {
	e.name = name
}

func (e *Element) LocalName() string {
	_, local := SplitQName(e.name)
	return local
}

func (e *Element) Prefix() string {
	prefix, _ := SplitQName(e.name)
	return prefix
}

// URI returns the namespace URI the element's prefix resolves to.
func (e *Element) URI() string {
	uri, _ := e.LookupNamespaceURI(e.Prefix())
	return uri
}

func (e *Element) AddChild(child Node) error {
	return addChild(e, child)
}

func (e *Element) AddContent(b []byte) error {
	t := NewText(b)
	t.doc = e.doc
	return e.AddChild(t)
}

func (e *Element) AddSibling(sibling Node) error {
	return addSibling(e, sibling)
}

func (e *Element) Replace(cur Node) error {
	return replaceNode(e, cur)
}

// AddAttribute appends a new attribute. If an attribute with the same
// name already exists, ErrDuplicateAttribute is returned.
func (e *Element) AddAttribute(name, value string) error {
	if err := e.attrs.Set(name, newAttribute(name, value)); err != nil {
		if errors.Is(err, orderedmap.ErrDuplicateEntry) {
			return ErrDuplicateAttribute
		}
		return err
	}
	return nil
}

// SetAttribute sets the value of the named attribute. An existing
// attribute keeps its position; a new one is appended.
func (e *Element) SetAttribute(name, value string) {
	if attr, ok := e.attrs.Get(name); ok {
		attr.value = value
		return
	}
	e.attrs.Put(name, newAttribute(name, value))
}

// Attribute returns the value of the named attribute.
func (e *Element) Attribute(name string) (string, bool) {
	attr, ok := e.attrs.Get(name)
	if !ok {
		return "", false
	}
	return attr.value, true
}

// AttributeValue is like Attribute but returns the empty string
// when the attribute is missing.
func (e *Element) AttributeValue(name string) string {
	v, _ := e.Attribute(name)
	return v
}

func (e *Element) HasAttribute(name string) bool {
	return e.attrs.Has(name)
}

// RemoveAttribute removes the named attribute and reports whether it
// was present.
func (e *Element) RemoveAttribute(name string) bool {
	return e.attrs.Delete(name)
}

// RenameAttribute changes the name of an attribute while keeping its
// position.
func (e *Element) RenameAttribute(from, to string) error {
	attr, ok := e.attrs.Get(from)
	if !ok {
		return ErrAttributeNotFound
	}
	if err := e.attrs.Rename(from, to); err != nil {
		if errors.Is(err, orderedmap.ErrDuplicateEntry) {
			return ErrDuplicateAttribute
		}
		return err
	}
	attr.name = to
	return nil
}

// Attributes populates the given slice with the attributes
// of the element. If the slice is nil, it will create a new slice
// and return it. If the element has no attributes, it will return
// an empty slice.
func (e *Element) Attributes(dst []*Attribute) []*Attribute {
	if dst == nil {
		dst = make([]*Attribute, 0, e.attrs.Len())
	} else {
		dst = dst[:0]
	}
	for _, attr := range e.attrs.Range() {
		dst = append(dst, attr)
	}
	return dst
}

// AttributeNames returns the attribute names in document order.
func (e *Element) AttributeNames() []string {
	return e.attrs.Keys()
}

func (e *Element) AttributeCount() int {
	return e.attrs.Len()
}

// SortAttributes reorders the attributes. Values are never touched.
func (e *Element) SortAttributes(cmp func(a, b string) int) {
	e.attrs.SortFunc(cmp)
}

// ChildElements iterates over the element children of e. The
// children are collected before the first yield, so the caller may
// detach the element it is given.
func (e *Element) ChildElements() iter.Seq[*Element] {
	var children []*Element
	for c := e.FirstChild(); c != nil; c = c.NextSibling() {
		if ce, ok := c.(*Element); ok {
			children = append(children, ce)
		}
	}
	return func(yield func(*Element) bool) {
		for _, c := range children {
			if !yield(c) {
				return
			}
		}
	}
}

// LookupNamespaceURI resolves prefix against the xmlns declarations
// on e and its ancestors. The empty prefix resolves the default
// namespace.
func (e *Element) LookupNamespaceURI(prefix string) (string, bool) {
	if prefix == "xml" {
		return XMLNamespace, true
	}
	if prefix == "xmlns" {
		return XMLNSNamespace, true
	}

	key := "xmlns"
	if prefix != "" {
		key = "xmlns:" + prefix
	}

	var cur Node = e
	for cur != nil {
		if ce, ok := cur.(*Element); ok {
			if v, ok := ce.Attribute(key); ok {
				return v, true
			}
		}
		cur = cur.Parent()
	}
	return "", false
}

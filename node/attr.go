package node

import "strings"

// Attribute is a single name/value pair on an element. The name is
// kept in its qualified form ("xlink:href").
type Attribute struct {
	name  string
	value string
}

func newAttribute(name, value string) *Attribute {
	return &Attribute{
		name:  name,
		value: value,
	}
}

func (a *Attribute) Name() string {
	return a.name
}

func (a *Attribute) Prefix() string {
	prefix, _ := SplitQName(a.name)
	return prefix
}

func (a *Attribute) LocalName() string {
	_, local := SplitQName(a.name)
	return local
}

func (a *Attribute) Value() string {
	return a.value
}

func (a *Attribute) SetValue(v string) {
	a.value = v
}

// IsNamespaceDecl reports whether the attribute is an xmlns or
// xmlns:* declaration.
func (a *Attribute) IsNamespaceDecl() bool {
	return a.name == "xmlns" || strings.HasPrefix(a.name, "xmlns:")
}

// SplitQName splits a qualified name into its prefix and local part.
func SplitQName(name string) (string, string) {
	if i := strings.IndexByte(name, ':'); i > 0 {
		return name[:i], name[i+1:]
	}
	return "", name
}

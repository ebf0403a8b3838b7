package sax

// Context is the opaque value the parser passes to every callback.
// The tree builder uses it to reach the parser state.
type Context interface{}

// DocumentLocator reports the position of the event being delivered.
type DocumentLocator interface {
	LineNumber() int
	ColumnNumber() int
}

// Handler is the interface defining the event handler the parser
// drives. The first argument is always an opaque context value.
// CDATA sections are delivered through Characters.
type Handler interface {
	SetDocumentLocator(Context, DocumentLocator) error
	StartDocument(Context) error
	EndDocument(Context) error
	ProcessingInstruction(Context, string, string) error
	Doctype(Context, string) error
	StartElement(Context, ParsedElement) error
	EndElement(Context, ParsedElement) error
	Characters(Context, []byte) error
	Comment(Context, []byte) error
}

// ParsedElement describes an element start or end tag. Name is the
// qualified name as written in the source.
type ParsedElement interface {
	Prefix() string
	URI() string
	LocalName() string
	Name() string
	Attributes() []ParsedAttribute
}

// ParsedAttribute describes an attribute, namespace declarations
// included, in source order.
type ParsedAttribute interface {
	Prefix() string
	LocalName() string
	Name() string
	Value() string
}

package sax

import "errors"

// ErrHandlerUnspecified is returned when there is no handler
// registered for that particular event callback. This is not
// a fatal error per se, and can be ignored if the implementation
// chooses to do so.
var ErrHandlerUnspecified = errors.New("handler unspecified")

// SetDocumentLocatorFunc defines the function type for SAX2.SetDocumentLocatorHandler
type SetDocumentLocatorFunc func(ctx Context, loc DocumentLocator) error

// StartDocumentFunc defines the function type for SAX2.StartDocumentHandler
type StartDocumentFunc func(ctx Context) error

// EndDocumentFunc defines the function type for SAX2.EndDocumentHandler
type EndDocumentFunc func(ctx Context) error

// ProcessingInstructionFunc defines the function type for SAX2.ProcessingInstructionHandler
type ProcessingInstructionFunc func(ctx Context, target string, data string) error

// DoctypeFunc defines the function type for SAX2.DoctypeHandler
type DoctypeFunc func(ctx Context, content string) error

// StartElementFunc defines the function type for SAX2.StartElementHandler
type StartElementFunc func(ctx Context, elem ParsedElement) error

// EndElementFunc defines the function type for SAX2.EndElementHandler
type EndElementFunc func(ctx Context, elem ParsedElement) error

// CharactersFunc defines the function type for SAX2.CharactersHandler
type CharactersFunc func(ctx Context, content []byte) error

// CommentFunc defines the function type for SAX2.CommentHandler
type CommentFunc func(ctx Context, content []byte) error

package plugins

import (
	"context"

	"github.com/lestrrat-go/svgo/node"
)

func init() {
	register("removeDoctype", "removes the document type declaration", removeDoctype)
	register("removeXMLProcInst", "removes the XML declaration", removeXMLProcInst)
	register("removeMetadata", "removes <metadata> elements", removeMetadata)
}

// A doctype can only appear in the prolog, so only the children of
// the document are looked at.
func removeDoctype(_ context.Context, _ *Context, doc *node.Document) error {
	for c := doc.FirstChild(); c != nil; {
		next := c.NextSibling()
		if c.Type() == node.DocumentTypeNodeType {
			node.Unlink(c)
		}
		c = next
	}
	return nil
}

func removeXMLProcInst(_ context.Context, _ *Context, doc *node.Document) error {
	for c := doc.FirstChild(); c != nil; {
		next := c.NextSibling()
		if pi, ok := c.(*node.ProcessingInstruction); ok && pi.Target() == "xml" {
			node.Unlink(c)
		}
		c = next
	}
	return nil
}

func removeMetadata(_ context.Context, _ *Context, doc *node.Document) error {
	root := doc.DocumentElement()
	for e := range node.Elements(root) {
		if e != root && e.LocalName() == "metadata" && node.IsAttached(e) {
			node.Unlink(e)
		}
	}
	return nil
}

package plugins

import (
	"context"

	"github.com/lestrrat-go/svgo/node"
)

func init() {
	register("removeEditorsNSData", "removes elements and attributes in drawing tool namespaces", removeEditorsNSData)
}

type attrRef struct {
	elem *node.Element
	name string
}

// removeEditorsNSData resolves every prefix while the tree is still
// intact, then removes what resolved to an editor namespace, and
// finally the declarations of those namespaces.
func removeEditorsNSData(_ context.Context, pctx *Context, doc *node.Document) error {
	extra, err := pctx.stringsParam("additionalNamespaces", nil)
	if err != nil {
		return err
	}

	editor := make(map[string]struct{}, len(editorNamespaces)+len(extra))
	for _, uri := range editorNamespaces {
		editor[uri] = struct{}{}
	}
	for _, uri := range extra {
		editor[uri] = struct{}{}
	}
	isEditor := func(e *node.Element, prefix string) bool {
		uri, ok := e.LookupNamespaceURI(prefix)
		if !ok {
			return false
		}
		_, found := editor[uri]
		return found
	}

	root := doc.DocumentElement()
	var elems []*node.Element
	var attrs []attrRef
	var decls []attrRef
	err = node.Walk(root, func(n node.Node) (node.WalkResult, error) {
		e, ok := n.(*node.Element)
		if !ok {
			return node.WalkContinue, nil
		}
		if e != root && isEditor(e, e.Prefix()) {
			elems = append(elems, e)
			return node.WalkSkip, nil
		}
		for _, a := range e.Attributes(nil) {
			if a.IsNamespaceDecl() {
				if _, found := editor[a.Value()]; found {
					decls = append(decls, attrRef{elem: e, name: a.Name()})
				}
				continue
			}
			// unprefixed attributes are in no namespace
			if a.Prefix() != "" && isEditor(e, a.Prefix()) {
				attrs = append(attrs, attrRef{elem: e, name: a.Name()})
			}
		}
		return node.WalkContinue, nil
	})
	if err != nil {
		return err
	}

	for _, e := range elems {
		node.Unlink(e)
	}
	for _, ref := range attrs {
		ref.elem.RemoveAttribute(ref.name)
	}
	for _, ref := range decls {
		// the default namespace of a surviving element is still in use
		if ref.name == "xmlns" {
			pctx.skip("removeEditorsNSData", "editor namespace is the default namespace", "element", ref.elem.Name())
			continue
		}
		ref.elem.RemoveAttribute(ref.name)
	}
	return nil
}

package plugins

import (
	"context"

	"github.com/lestrrat-go/svgo/css"
	"github.com/lestrrat-go/svgo/node"
)

func init() {
	register("minifyStyles", "minifies <style> elements and style attributes", minifyStyles)
}

func minifyStyles(_ context.Context, pctx *Context, doc *node.Document) error {
	const name = "minifyStyles"

	for e := range node.Elements(doc) {
		if isCSSStyle(e) {
			if isBlank(e) {
				if onlyText(e) {
					node.Unlink(e)
				}
				continue
			}
			text := textContent(e)
			sheet, err := css.Parse(text)
			if err != nil {
				pctx.skip(name, "stylesheet cannot be parsed", "error", err)
				continue
			}
			minified := sheet.String()
			if minified == "" {
				node.Unlink(e)
				continue
			}
			if minified != text {
				if err := setTextContent(doc, e, minified); err != nil {
					return err
				}
			}
			continue
		}

		style, ok := e.Attribute("style")
		if !ok {
			continue
		}
		decls, err := css.ParseDeclarations(style)
		if err != nil {
			pctx.skip(name, "style attribute cannot be parsed", "element", e.Name(), "error", err)
			continue
		}
		decls = css.MinifyDeclarations(decls)
		if len(decls) == 0 {
			e.RemoveAttribute("style")
			continue
		}
		e.SetAttribute("style", css.FormatDeclarations(decls))
	}
	return nil
}

// onlyText reports whether every child of e is a text node
func onlyText(e *node.Element) bool {
	for c := e.FirstChild(); c != nil; c = c.NextSibling() {
		if c.Type() != node.TextNodeType {
			return false
		}
	}
	return true
}

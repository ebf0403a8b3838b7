package plugins

import (
	"context"
	"strings"

	"github.com/lestrrat-go/svgo/css"
	"github.com/lestrrat-go/svgo/node"
)

func init() {
	register("convertStyleToAttrs", "turns style declarations into presentation attributes", convertStyleToAttrs)
}

// A presentation attribute loses against every stylesheet rule, while
// a style attribute wins. Properties some rule still sets therefore
// stay in the style attribute.
func convertStyleToAttrs(_ context.Context, pctx *Context, doc *node.Document) error {
	const name = "convertStyleToAttrs"

	styles := collectStyles(doc)
	for e := range node.Elements(doc) {
		style, ok := e.Attribute("style")
		if !ok {
			continue
		}
		decls, err := css.ParseDeclarations(style)
		if err != nil {
			pctx.skip(name, "style attribute cannot be parsed", "element", e.Name(), "error", err)
			continue
		}
		if hasRepeatedProperty(decls) {
			pctx.skip(name, "style attribute sets a property twice", "element", e.Name())
			continue
		}

		var keep []*css.Declaration
		moved := false
		for _, d := range decls {
			prop := strings.ToLower(d.Property)
			switch {
			case !isPresentationAttribute(prop),
				e.HasAttribute(prop),
				styles.declares(prop),
				strings.ContainsRune(d.Value, '\\'):
				keep = append(keep, d)
			default:
				e.SetAttribute(prop, d.Value)
				moved = true
			}
		}

		switch {
		case len(keep) == 0:
			e.RemoveAttribute("style")
		case moved:
			e.SetAttribute("style", css.FormatDeclarations(keep))
		}
	}
	return nil
}

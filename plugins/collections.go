package plugins

import (
	"strings"

	"github.com/lestrrat-go/svgo/css"
	"github.com/lestrrat-go/svgo/node"
)

// SVG 1.1 presentation attributes
var presentationAttributes = map[string]struct{}{
	"alignment-baseline":           {},
	"baseline-shift":               {},
	"clip":                         {},
	"clip-path":                    {},
	"clip-rule":                    {},
	"color":                        {},
	"color-interpolation":          {},
	"color-interpolation-filters":  {},
	"color-profile":                {},
	"color-rendering":              {},
	"cursor":                       {},
	"direction":                    {},
	"display":                      {},
	"dominant-baseline":            {},
	"enable-background":            {},
	"fill":                         {},
	"fill-opacity":                 {},
	"fill-rule":                    {},
	"filter":                       {},
	"flood-color":                  {},
	"flood-opacity":                {},
	"font-family":                  {},
	"font-size":                    {},
	"font-size-adjust":             {},
	"font-stretch":                 {},
	"font-style":                   {},
	"font-variant":                 {},
	"font-weight":                  {},
	"glyph-orientation-horizontal": {},
	"glyph-orientation-vertical":   {},
	"image-rendering":              {},
	"kerning":                      {},
	"letter-spacing":               {},
	"lighting-color":               {},
	"marker-end":                   {},
	"marker-mid":                   {},
	"marker-start":                 {},
	"mask":                         {},
	"opacity":                      {},
	"overflow":                     {},
	"pointer-events":               {},
	"shape-rendering":              {},
	"stop-color":                   {},
	"stop-opacity":                 {},
	"stroke":                       {},
	"stroke-dasharray":             {},
	"stroke-dashoffset":            {},
	"stroke-linecap":               {},
	"stroke-linejoin":              {},
	"stroke-miterlimit":            {},
	"stroke-opacity":               {},
	"stroke-width":                 {},
	"text-anchor":                  {},
	"text-decoration":              {},
	"text-rendering":               {},
	"unicode-bidi":                 {},
	"visibility":                   {},
	"word-spacing":                 {},
	"writing-mode":                 {},
}

func isPresentationAttribute(name string) bool {
	_, ok := presentationAttributes[name]
	return ok
}

// Namespaces written by drawing tools. Nothing in them affects
// rendering.
var editorNamespaces = []string{
	"http://creativecommons.org/ns#",
	"http://inkscape.sourceforge.net/DTD/sodipodi-0.dtd",
	"http://ns.adobe.com/AdobeIllustrator/10.0/",
	"http://ns.adobe.com/AdobeSVGViewerExtensions/3.0/",
	"http://ns.adobe.com/Extensibility/1.0/",
	"http://ns.adobe.com/Flows/1.0/",
	"http://ns.adobe.com/GenericCustomNamespace/1.0/",
	"http://ns.adobe.com/Graphs/1.0/",
	"http://ns.adobe.com/ImageReplacement/1.0/",
	"http://ns.adobe.com/SaveForWeb/1.0/",
	"http://ns.adobe.com/Variables/1.0/",
	"http://ns.adobe.com/XPath/1.0/",
	"http://purl.org/dc/elements/1.1/",
	"http://schemas.microsoft.com/visio/2003/SVGExtensions/",
	"http://sodipodi.sourceforge.net/DTD/sodipodi-0.dtd",
	"http://taptrix.com/vectorillustrator/svg_extensions",
	"http://www.bohemiancoding.com/sketch/ns",
	"http://www.corel.com/coreldraw/odm/2003",
	"http://www.figma.com/figma/ns",
	"http://www.inkscape.org/namespaces/inkscape",
	"http://www.serif.com/",
	"http://www.vector.evaxdesign.sk",
	"http://www.w3.org/1999/02/22-rdf-syntax-ns#",
	"https://boxy-svg.com",
	"https://vectornator.io",
}

// EditorNamespaces returns the namespace URIs removeEditorsNSData
// removes by default.
func EditorNamespaces() []string {
	return append([]string(nil), editorNamespaces...)
}

// isCSSStyle reports whether e is a <style> element holding CSS
func isCSSStyle(e *node.Element) bool {
	if e.LocalName() != "style" {
		return false
	}
	typ, ok := e.Attribute("type")
	return !ok || typ == "" || strings.EqualFold(typ, "text/css")
}

// isBlank reports whether the text children of e hold nothing but
// whitespace
func isBlank(e *node.Element) bool {
	for c := e.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*node.Text); ok && !t.IsBlank() {
			return false
		}
	}
	return true
}

// textContent concatenates the text children of e
func textContent(e *node.Element) string {
	var buf []byte
	for c := e.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*node.Text); ok {
			buf, _ = t.Content(buf)
		}
	}
	return string(buf)
}

// setTextContent replaces the children of e with a single text node
func setTextContent(doc *node.Document, e *node.Element, text string) error {
	for c := e.FirstChild(); c != nil; {
		next := c.NextSibling()
		node.Unlink(c)
		c = next
	}
	if text == "" {
		return nil
	}
	return e.AddChild(doc.CreateText([]byte(text)))
}

// styleContext describes the stylesheets of a document, for plugins
// that must not change which rules match which elements.
type styleContext struct {
	// opaque is set when some stylesheet could not be parsed, or is
	// not CSS at all
	opaque   bool
	empty    bool
	mentions *css.Mentions
}

func collectStyles(doc *node.Document) *styleContext {
	sc := &styleContext{
		empty:    true,
		mentions: css.NewMentions(),
	}
	for e := range node.Elements(doc) {
		if e.LocalName() != "style" {
			continue
		}
		if isBlank(e) {
			continue
		}
		text := textContent(e)
		sc.empty = false
		if !isCSSStyle(e) {
			sc.opaque = true
			continue
		}
		sheet, err := css.Parse(text)
		if err != nil {
			sc.opaque = true
			continue
		}
		sc.mentions.Merge(sheet.Mentions())
	}
	return sc
}

// selectsElement and the helpers below report true for any name when
// a stylesheet is opaque, since it could select anything.
func (sc *styleContext) selectsElement(name string) bool {
	return sc.opaque || sc.mentions.SelectsElement(name)
}

func (sc *styleContext) selectsAttribute(name string) bool {
	return sc.opaque || sc.mentions.SelectsAttribute(name)
}

func (sc *styleContext) usesPseudoClass(name string) bool {
	return sc.opaque || sc.mentions.UsesPseudoClass(name)
}

func (sc *styleContext) declares(property string) bool {
	return sc.opaque || sc.mentions.Declares(property)
}

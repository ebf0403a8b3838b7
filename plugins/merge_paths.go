package plugins

import (
	"context"
	"math"
	"strings"

	"github.com/lestrrat-go/svgo/css"
	"github.com/lestrrat-go/svgo/node"
	"github.com/lestrrat-go/svgo/pathdata"
)

func init() {
	register("mergePaths", "merges adjacent paths that share every other attribute", mergePaths)
}

// properties that make a path paint differently once merged with
// another one
var mergeBlockers = []string{
	"marker",
	"marker-start",
	"marker-mid",
	"marker-end",
	"clip-path",
	"mask",
	"mask-image",
}

type mergeablePath struct {
	elem   *node.Element
	d      string
	bounds pathdata.Rect
}

func mergePaths(_ context.Context, pctx *Context, doc *node.Document) error {
	const name = "mergePaths"

	// any selector could tell the merged paths apart
	if styles := collectStyles(doc); !styles.empty {
		pctx.skip(name, "document has a stylesheet")
		return nil
	}

	for parent := range node.Elements(doc.DocumentElement()) {
		var prev *mergeablePath
		for c := parent.FirstChild(); c != nil; {
			next := c.NextSibling()
			cur := asMergeable(c)
			switch {
			case cur == nil:
				prev = nil
			case prev != nil && sameAttributes(prev.elem, cur.elem) && !prev.bounds.Intersects(cur.bounds):
				prev.d = prev.d + " " + cur.d
				prev.bounds = union(prev.bounds, cur.bounds)
				prev.elem.SetAttribute("d", prev.d)
				node.Unlink(cur.elem)
			default:
				prev = cur
			}
			c = next
		}
	}
	return nil
}

// Mergeable reports whether b may be joined onto a, stylesheets aside:
// both are eligible paths, every attribute but d is equal, and their
// bounding boxes are disjoint.
func Mergeable(a, b *node.Element) bool {
	ma, mb := asMergeable(a), asMergeable(b)
	return ma != nil && mb != nil && sameAttributes(a, b) && !ma.bounds.Intersects(mb.bounds)
}

func union(a, b pathdata.Rect) pathdata.Rect {
	return pathdata.Rect{
		MinX: math.Min(a.MinX, b.MinX),
		MinY: math.Min(a.MinY, b.MinY),
		MaxX: math.Max(a.MaxX, b.MaxX),
		MaxY: math.Max(a.MaxY, b.MaxY),
	}
}

// asMergeable returns n as a merge candidate, or nil when n is not a
// path that may take part in a merge
func asMergeable(n node.Node) *mergeablePath {
	e, ok := n.(*node.Element)
	if !ok || e.LocalName() != "path" || e.FirstChild() != nil || e.HasAttribute("id") {
		return nil
	}
	if uri := e.URI(); uri != "" && uri != node.SVGNamespace {
		return nil
	}

	d := strings.TrimSpace(e.AttributeValue("d"))
	if !strings.HasPrefix(d, "M") {
		return nil
	}
	path, err := pathdata.Parse(d)
	if err != nil {
		return nil
	}
	bounds, ok := path.Bounds()
	if !ok {
		return nil
	}

	for _, prop := range mergeBlockers {
		if _, found, _ := inheritedProperty(e, prop, false); found {
			return nil
		}
	}
	margin, ok := strokeMargin(e)
	if !ok {
		return nil
	}
	return &mergeablePath{elem: e, d: d, bounds: bounds.Expand(margin)}
}

// sameAttributes compares every attribute but d
func sameAttributes(a, b *node.Element) bool {
	if a.AttributeCount() != b.AttributeCount() {
		return false
	}
	for _, attr := range a.Attributes(nil) {
		if attr.Name() == "d" {
			continue
		}
		v, ok := b.Attribute(attr.Name())
		if !ok || v != attr.Value() {
			return false
		}
	}
	return true
}

// inheritedProperty looks a presentation property up on e, through its
// attribute and style attribute, and when inherit is set on its
// ancestors as well. ok is false when a style attribute on the way
// cannot be read.
func inheritedProperty(e *node.Element, prop string, inherit bool) (value string, found bool, ok bool) {
	for cur := e; cur != nil; {
		if style, has := cur.Attribute("style"); has {
			decls, err := css.ParseDeclarations(style)
			if err != nil {
				return "", true, false
			}
			for i := len(decls) - 1; i >= 0; i-- {
				if strings.EqualFold(decls[i].Property, prop) {
					return decls[i].Value, true, true
				}
			}
		}
		if v, has := cur.Attribute(prop); has {
			return v, true, true
		}
		if !inherit {
			break
		}
		p, _ := cur.Parent().(*node.Element)
		cur = p
	}
	return "", false, true
}

// strokeMargin returns how far the stroke of e may reach outside its
// geometry. Miter joins are the worst case.
func strokeMargin(e *node.Element) (float64, bool) {
	stroke, found, ok := inheritedProperty(e, "stroke", true)
	if !ok {
		return 0, false
	}
	if !found || strings.TrimSpace(stroke) == "none" {
		return 0, true
	}

	width, ok := numericProperty(e, "stroke-width", 1, parseLength)
	if !ok {
		return 0, false
	}
	limit, ok := numericProperty(e, "stroke-miterlimit", 4, parseNumber)
	if !ok {
		return 0, false
	}
	return math.Abs(width) * math.Max(limit, 2), true
}

func numericProperty(e *node.Element, prop string, def float64, parse func(string) (float64, bool)) (float64, bool) {
	v, found, ok := inheritedProperty(e, prop, true)
	if !ok {
		return 0, false
	}
	if !found {
		return def, true
	}
	return parse(v)
}

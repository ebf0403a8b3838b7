package plugins

import (
	"context"
	"math"

	"github.com/lestrrat-go/svgo/node"
	"github.com/lestrrat-go/svgo/pathdata"
)

func init() {
	register("convertShapeToPath", "converts basic shapes to <path> elements", convertShapeToPath)
}

var shapeGeometry = map[string][]string{
	"rect":     {"x", "y", "width", "height", "rx", "ry"},
	"circle":   {"cx", "cy", "r"},
	"ellipse":  {"cx", "cy", "rx", "ry"},
	"line":     {"x1", "y1", "x2", "y2"},
	"polyline": {"points"},
	"polygon":  {"points"},
}

// pseudo-classes that depend on the element name
var typePseudoClasses = []string{
	"first-of-type",
	"last-of-type",
	"only-of-type",
	"nth-of-type",
	"nth-last-of-type",
}

type shapeConverter struct {
	pctx        *Context
	convertArcs bool
	precision   int
}

func convertShapeToPath(_ context.Context, pctx *Context, doc *node.Document) error {
	const name = "convertShapeToPath"

	convertArcs, err := pctx.boolParam("convertArcs", true)
	if err != nil {
		return err
	}
	precision, err := pctx.precision()
	if err != nil {
		return err
	}
	sc := &shapeConverter{pctx: pctx, convertArcs: convertArcs, precision: precision}

	// Renaming an element changes which selectors match it
	styles := collectStyles(doc)
	if styles.selectsElement("path") {
		pctx.skip(name, "a stylesheet selects path elements")
		return nil
	}
	for _, pseudo := range typePseudoClasses {
		if styles.usesPseudoClass(pseudo) {
			pctx.skip(name, "a stylesheet selects by element type position")
			return nil
		}
	}

	for e := range node.Elements(doc.DocumentElement()) {
		geometry, ok := shapeGeometry[e.LocalName()]
		if !ok || !node.IsAttached(e) {
			continue
		}
		if uri := e.URI(); uri != "" && uri != node.SVGNamespace {
			continue
		}
		if e.HasAttribute("d") {
			continue
		}
		if hasAnimation(e) {
			pctx.skip(name, "shape is animated", "element", e.Name())
			continue
		}
		if styles.selectsElement(e.LocalName()) {
			pctx.skip(name, "a stylesheet selects the shape by name", "element", e.Name())
			continue
		}
		mentioned := false
		for _, attr := range geometry {
			if styles.selectsAttribute(attr) {
				mentioned = true
				break
			}
		}
		if mentioned {
			pctx.skip(name, "a stylesheet selects a geometry attribute", "element", e.Name())
			continue
		}

		path, remove, ok := sc.outline(e)
		if remove {
			node.Unlink(e)
			continue
		}
		if !ok {
			continue
		}

		for _, attr := range geometry {
			e.RemoveAttribute(attr)
		}
		if prefix := e.Prefix(); prefix != "" {
			e.SetName(prefix + ":path")
		} else {
			e.SetName("path")
		}
		e.SetAttribute("d", path.Format(precision))
	}
	return nil
}

// outline computes the path equivalent to a shape. remove is set for
// shapes that render nothing and can be dropped outright.
func (sc *shapeConverter) outline(e *node.Element) (path pathdata.Path, remove bool, ok bool) {
	switch e.LocalName() {
	case "rect":
		path, ok = sc.rect(e)
	case "circle":
		path, ok = sc.ellipse(e, "r", "r")
	case "ellipse":
		path, ok = sc.ellipse(e, "rx", "ry")
	case "line":
		path, ok = sc.line(e)
	case "polyline", "polygon":
		return sc.poly(e)
	}
	return path, false, ok
}

// number reads an optional numeric attribute. A missing attribute
// reads as def; anything that is not a plain number fails.
func (sc *shapeConverter) number(e *node.Element, attr string, def float64) (float64, bool) {
	v, present := e.Attribute(attr)
	if !present {
		return def, true
	}
	f, ok := parseNumber(v)
	if !ok {
		sc.pctx.skip("convertShapeToPath", "geometry is not a plain number", "element", e.Name(), "attribute", attr, "value", v)
	}
	return f, ok
}

// hasAnimation reports whether e has animation children, which may
// refer to its geometry attributes by name
func hasAnimation(e *node.Element) bool {
	for c := range e.ChildElements() {
		switch c.LocalName() {
		case "animate", "animateMotion", "animateTransform", "set":
			return true
		}
	}
	return false
}

func cmd(op byte, args ...float64) pathdata.Command {
	return pathdata.Command{Op: op, Args: args}
}

func (sc *shapeConverter) rect(e *node.Element) (pathdata.Path, bool) {
	if !e.HasAttribute("width") || !e.HasAttribute("height") {
		return nil, false
	}
	var vals [4]float64
	for i, attr := range []string{"x", "y", "width", "height"} {
		v, ok := sc.number(e, attr, 0)
		if !ok {
			return nil, false
		}
		vals[i] = v
	}
	x, y, w, h := vals[0], vals[1], vals[2], vals[3]
	if w <= 0 || h <= 0 {
		sc.pctx.skip("convertShapeToPath", "rect has no area", "element", e.Name())
		return nil, false
	}

	rx, ry, ok := sc.cornerRadii(e, w, h)
	if !ok {
		return nil, false
	}
	if rx == 0 || ry == 0 {
		return pathdata.Path{
			pathdata.M(x, y),
			cmd('h', w),
			cmd('v', h),
			cmd('h', -w),
			pathdata.Z(),
		}, true
	}
	if !sc.convertArcs {
		return nil, false
	}

	innerW, innerH := w-2*rx, h-2*ry
	path := pathdata.Path{pathdata.M(x+rx, y)}
	if innerW > 0 {
		path = append(path, cmd('h', innerW))
	}
	path = append(path, cmd('a', rx, ry, 0, 0, 1, rx, ry))
	if innerH > 0 {
		path = append(path, cmd('v', innerH))
	}
	path = append(path, cmd('a', rx, ry, 0, 0, 1, -rx, ry))
	if innerW > 0 {
		path = append(path, cmd('h', -innerW))
	}
	path = append(path, cmd('a', rx, ry, 0, 0, 1, -rx, -ry))
	if innerH > 0 {
		path = append(path, cmd('v', -innerH))
	}
	path = append(path, cmd('a', rx, ry, 0, 0, 1, rx, -ry), pathdata.Z())
	return path, true
}

// cornerRadii resolves rx and ry: a missing or "auto" radius takes the
// value of the other one, and both are clamped to half the size.
func (sc *shapeConverter) cornerRadii(e *node.Element, w, h float64) (float64, float64, bool) {
	read := func(attr string) (float64, bool, bool) {
		v, present := e.Attribute(attr)
		if !present || v == "auto" {
			return 0, false, true
		}
		f, ok := parseNumber(v)
		if !ok || f < 0 {
			sc.pctx.skip("convertShapeToPath", "unusable corner radius", "element", e.Name(), "attribute", attr, "value", v)
			return 0, false, false
		}
		return f, true, true
	}

	rx, hasRX, ok := read("rx")
	if !ok {
		return 0, 0, false
	}
	ry, hasRY, ok := read("ry")
	if !ok {
		return 0, 0, false
	}
	switch {
	case hasRX && !hasRY:
		ry = rx
	case hasRY && !hasRX:
		rx = ry
	}
	return math.Min(rx, w/2), math.Min(ry, h/2), true
}

// ellipse handles circles too, which use the same attribute for both
// radii.
func (sc *shapeConverter) ellipse(e *node.Element, rxAttr, ryAttr string) (pathdata.Path, bool) {
	if !sc.convertArcs {
		return nil, false
	}
	cx, ok := sc.number(e, "cx", 0)
	if !ok {
		return nil, false
	}
	cy, ok := sc.number(e, "cy", 0)
	if !ok {
		return nil, false
	}

	_, hasRX := e.Attribute(rxAttr)
	_, hasRY := e.Attribute(ryAttr)
	if !hasRX && !hasRY {
		return nil, false
	}
	rx, ok := sc.number(e, rxAttr, -1)
	if !ok {
		return nil, false
	}
	ry, ok := sc.number(e, ryAttr, -1)
	if !ok {
		return nil, false
	}
	switch {
	case !hasRX:
		rx = ry
	case !hasRY:
		ry = rx
	}
	if rx <= 0 || ry <= 0 {
		sc.pctx.skip("convertShapeToPath", "shape has no area", "element", e.Name())
		return nil, false
	}

	return pathdata.Path{
		pathdata.M(cx-rx, cy),
		pathdata.A(rx, ry, 0, true, false, cx+rx, cy),
		pathdata.A(rx, ry, 0, true, false, cx-rx, cy),
		pathdata.Z(),
	}, true
}

func (sc *shapeConverter) line(e *node.Element) (pathdata.Path, bool) {
	var vals [4]float64
	for i, attr := range []string{"x1", "y1", "x2", "y2"} {
		v, ok := sc.number(e, attr, 0)
		if !ok {
			return nil, false
		}
		vals[i] = v
	}
	return pathdata.Path{
		pathdata.M(vals[0], vals[1]),
		pathdata.L(vals[2], vals[3]),
	}, true
}

func (sc *shapeConverter) poly(e *node.Element) (pathdata.Path, bool, bool) {
	coords, err := pathdata.ParseNumbers(e.AttributeValue("points"))
	if err != nil {
		sc.pctx.skip("convertShapeToPath", "points cannot be parsed", "element", e.Name(), "error", err)
		return nil, false, false
	}
	if len(coords) < 4 {
		return nil, true, false
	}

	path := pathdata.Path{pathdata.M(coords[0], coords[1])}
	for i := 2; i+1 < len(coords); i += 2 {
		path = append(path, pathdata.L(coords[i], coords[i+1]))
	}
	if e.LocalName() == "polygon" {
		path = append(path, pathdata.Z())
	}
	return path, false, true
}

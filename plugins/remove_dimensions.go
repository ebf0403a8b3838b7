package plugins

import (
	"context"
	"slices"
	"strconv"

	"github.com/lestrrat-go/svgo/node"
)

func init() {
	register("removeDimensions", "replaces width and height on the root element with a viewBox", removeDimensions)
	register("removeViewBox", "removes a viewBox that matches the width and height", removeViewBox)
}

func removeDimensions(_ context.Context, pctx *Context, doc *node.Document) error {
	const name = "removeDimensions"

	root := doc.DocumentElement()
	if root.LocalName() != "svg" {
		return nil
	}

	if root.HasAttribute("viewBox") {
		root.RemoveAttribute("width")
		root.RemoveAttribute("height")
		return nil
	}

	width, ok := parseLength(root.AttributeValue("width"))
	if !ok || width < 0 {
		pctx.skip(name, "width is not a number", "value", root.AttributeValue("width"))
		return nil
	}
	height, ok := parseLength(root.AttributeValue("height"))
	if !ok || height < 0 {
		pctx.skip(name, "height is not a number", "value", root.AttributeValue("height"))
		return nil
	}

	// keep attributes sorted if they were, so that running the
	// plugins again does not move the new attribute
	compare := attributeOrder(defaultAttrOrder)
	sorted := slices.IsSortedFunc(root.AttributeNames(), compare)
	root.SetAttribute("viewBox", "0 0 "+formatPlain(width)+" "+formatPlain(height))
	root.RemoveAttribute("width")
	root.RemoveAttribute("height")
	if sorted {
		root.SortAttributes(compare)
	}
	return nil
}

func removeViewBox(_ context.Context, _ *Context, doc *node.Document) error {
	root := doc.DocumentElement()
	if root.LocalName() != "svg" {
		return nil
	}
	viewBox, ok := root.Attribute("viewBox")
	if !ok {
		return nil
	}
	box, err := parseViewBox(viewBox)
	if err != nil {
		return nil
	}
	width, wok := parseLength(root.AttributeValue("width"))
	height, hok := parseLength(root.AttributeValue("height"))
	if wok && hok && box[0] == 0 && box[1] == 0 && box[2] == width && box[3] == height {
		root.RemoveAttribute("viewBox")
	}
	return nil
}

// formatPlain writes the shortest decimal form of v
func formatPlain(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

package plugins

import (
	"cmp"
	"context"
	"strings"

	"github.com/lestrrat-go/svgo/node"
)

func init() {
	register("sortAttrs", "sorts element attributes", sortAttrs)
}

var defaultAttrOrder = []string{
	"id",
	"width",
	"height",
	"x",
	"x1",
	"x2",
	"y",
	"y1",
	"y2",
	"cx",
	"cy",
	"r",
	"fill",
	"stroke",
	"marker",
	"d",
	"points",
}

func namespaceRank(name string) int {
	switch {
	case name == "xmlns":
		return 2
	case strings.HasPrefix(name, "xmlns:"):
		return 1
	}
	return 0
}

// attributeOrder returns a comparison function that puts namespace
// declarations first, then the names in order, then everything else.
// A name sorts with the entry matching its part before the first
// hyphen, so fill-opacity lands right after fill.
func attributeOrder(order []string) func(a, b string) int {
	index := make(map[string]int, len(order))
	for i, name := range order {
		if _, ok := index[name]; !ok {
			index[name] = i
		}
	}

	return func(a, b string) int {
		if c := cmp.Compare(namespaceRank(b), namespaceRank(a)); c != 0 {
			return c
		}

		partA, _, _ := strings.Cut(a, "-")
		partB, _, _ := strings.Cut(b, "-")
		if partA != partB {
			ia, inA := index[partA]
			ib, inB := index[partB]
			switch {
			case inA && inB:
				return cmp.Compare(ia, ib)
			case inA:
				return -1
			case inB:
				return 1
			}
		}
		return strings.Compare(a, b)
	}
}

func sortAttrs(_ context.Context, pctx *Context, doc *node.Document) error {
	order, err := pctx.stringsParam("order", defaultAttrOrder)
	if err != nil {
		return err
	}

	compare := attributeOrder(order)
	for e := range node.Elements(doc.DocumentElement()) {
		if e.AttributeCount() > 1 {
			e.SortAttributes(compare)
		}
	}
	return nil
}

package plugins

import (
	"context"
	"regexp"
	"strings"

	"github.com/lestrrat-go/svgo/node"
)

func init() {
	register("cleanupAttrs", "cleans up newlines and repeated whitespace in attribute values", cleanupAttrs)
}

var repeatedSpaces = regexp.MustCompile(`\s{2,}`)

func isXMLSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// removeNewlines drops line breaks. A break between two non-space
// characters becomes a single space so that words stay apart.
func removeNewlines(v string) string {
	if !strings.Contains(v, "\n") {
		return v
	}

	var sb strings.Builder
	sb.Grow(len(v))
	for i := 0; i < len(v); i++ {
		c := v[i]
		if c == '\r' && i+1 < len(v) && v[i+1] == '\n' {
			continue
		}
		if c != '\n' {
			sb.WriteByte(c)
			continue
		}
		prev := i - 1
		if prev >= 0 && v[prev] == '\r' {
			prev--
		}
		if prev >= 0 && i+1 < len(v) && !isXMLSpace(v[prev]) && !isXMLSpace(v[i+1]) {
			sb.WriteByte(' ')
		}
	}
	return sb.String()
}

func cleanupAttrs(_ context.Context, pctx *Context, doc *node.Document) error {
	stripNewlines, err := pctx.boolParam("newlines", true)
	if err != nil {
		return err
	}
	trim, err := pctx.boolParam("trim", true)
	if err != nil {
		return err
	}
	spaces, err := pctx.boolParam("spaces", true)
	if err != nil {
		return err
	}

	return node.Walk(doc.DocumentElement(), func(n node.Node) (node.WalkResult, error) {
		e, ok := n.(*node.Element)
		if !ok {
			return node.WalkContinue, nil
		}
		if v, ok := e.Attribute("xml:space"); ok && v == "preserve" {
			return node.WalkSkip, nil
		}

		for _, a := range e.Attributes(nil) {
			v := a.Value()
			if stripNewlines {
				v = removeNewlines(v)
			}
			if trim {
				v = strings.TrimSpace(v)
			}
			if spaces {
				v = repeatedSpaces.ReplaceAllString(v, " ")
			}
			a.SetValue(v)
		}
		return node.WalkContinue, nil
	})
}

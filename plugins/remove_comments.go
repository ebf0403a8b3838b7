package plugins

import (
	"context"
	"regexp"

	"github.com/lestrrat-go/svgo/node"
	"github.com/pkg/errors"
)

func init() {
	register("removeComments", "removes comments", removeComments)
}

// Comments starting with "!" are legal notices and stay by default
var defaultPreservePatterns = []string{"^!"}

func removeComments(_ context.Context, pctx *Context, doc *node.Document) error {
	patterns, err := pctx.stringsParam("preservePatterns", defaultPreservePatterns)
	if err != nil {
		return err
	}

	preserve := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return errors.Wrapf(ErrInvalidParams, "preservePatterns: %s", err)
		}
		preserve = append(preserve, re)
	}

	return node.Walk(doc, func(n node.Node) (node.WalkResult, error) {
		c, ok := n.(*node.Comment)
		if !ok {
			return node.WalkContinue, nil
		}
		content, err := c.Content(nil)
		if err != nil {
			return node.WalkStop, err
		}
		for _, re := range preserve {
			if re.Match(content) {
				return node.WalkSkip, nil
			}
		}
		node.Unlink(c)
		return node.WalkSkip, nil
	})
}

package plugins

import (
	"context"
	"slices"
	"strings"

	"github.com/lestrrat-go/svgo/css"
	"github.com/lestrrat-go/svgo/node"
)

func init() {
	register("inlineStyles", "moves rules from <style> elements into style attributes", inlineStyles)
}

type styleSource struct {
	elem  *node.Element
	sheet *css.StyleSheet
	// conditional sources (a media attribute) are never inlined
	conditional bool
	changed     bool
}

type inlineCandidate struct {
	source  *styleSource
	rule    *css.Rule
	sel     *css.Selector
	spec    css.Specificity
	order   int
	matches []*node.Element
	done    bool
}

// blockList records the properties that must not be inlined, because
// a rule that stays in the stylesheet also sets them.
type blockList struct {
	everywhere map[string]struct{}
	elements   map[*node.Element]map[string]struct{}
}

func (b *blockList) add(e *node.Element, decls []*css.Declaration) {
	props, ok := b.elements[e]
	if !ok {
		props = make(map[string]struct{})
		b.elements[e] = props
	}
	for _, d := range decls {
		props[strings.ToLower(d.Property)] = struct{}{}
	}
}

func (b *blockList) addEverywhere(decls []*css.Declaration) {
	for _, d := range decls {
		b.everywhere[strings.ToLower(d.Property)] = struct{}{}
	}
}

func (b *blockList) blocked(e *node.Element, property string) bool {
	if _, ok := b.everywhere[property]; ok {
		return true
	}
	_, ok := b.elements[e][property]
	return ok
}

func inlineStyles(_ context.Context, pctx *Context, doc *node.Document) error {
	const name = "inlineStyles"

	onlyMatchedOnce, err := pctx.boolParam("onlyMatchedOnce", false)
	if err != nil {
		return err
	}
	removeMatched, err := pctx.boolParam("removeMatchedSelectors", true)
	if err != nil {
		return err
	}

	var sources []*styleSource
	var elements []*node.Element
	for e := range node.Elements(doc) {
		elements = append(elements, e)
		if !isCSSStyle(e) {
			continue
		}
		sheet, err := css.Parse(textContent(e))
		if err != nil {
			pctx.skip(name, "stylesheet cannot be parsed", "error", err)
			return nil
		}
		for _, r := range sheet.Rules {
			if r.IsAtRule() && strings.EqualFold(r.Raw.Name, "@import") {
				pctx.skip(name, "stylesheet imports other stylesheets")
				return nil
			}
		}
		sources = append(sources, &styleSource{
			elem:        e,
			sheet:       sheet,
			conditional: e.HasAttribute("media"),
		})
	}
	if len(sources) == 0 {
		return nil
	}

	blocks := &blockList{
		everywhere: make(map[string]struct{}),
		elements:   make(map[*node.Element]map[string]struct{}),
	}
	var blockRules func(rules []*css.Rule)
	blockRules = func(rules []*css.Rule) {
		for _, r := range rules {
			if r.IsAtRule() {
				blockRules(r.Rules)
				continue
			}
			sels, err := css.RelaxSelectorList(r.Prelude())
			if err != nil {
				blocks.addEverywhere(r.Declarations)
				continue
			}
			for _, e := range elements {
				for _, sel := range sels {
					if sel.Match(e) {
						blocks.add(e, r.Declarations)
						break
					}
				}
			}
		}
	}

	var candidates []*inlineCandidate
	order := 0
	for _, src := range sources {
		for _, r := range src.sheet.Rules {
			order++
			if src.conditional || r.IsAtRule() || r.Unsupported {
				pctx.skip(name, "rule left in place", "prelude", r.Prelude())
				blockRules([]*css.Rule{r})
				continue
			}
			if hasRepeatedProperty(r.Declarations) {
				pctx.skip(name, "rule sets a property twice", "prelude", r.Prelude())
				blockRules([]*css.Rule{r})
				continue
			}
			for _, sel := range r.Selectors {
				c := &inlineCandidate{
					source: src,
					rule:   r,
					sel:    sel,
					spec:   sel.Specificity(),
					order:  order,
				}
				for _, e := range elements {
					if sel.Match(e) {
						c.matches = append(c.matches, e)
					}
				}
				candidates = append(candidates, c)
			}
		}
	}

	// The winning declaration is inlined first; what is already in a
	// style attribute is only overridden by an important declaration.
	slices.SortStableFunc(candidates, func(a, b *inlineCandidate) int {
		if c := b.spec.Compare(a.spec); c != 0 {
			return c
		}
		return b.order - a.order
	})

	for _, c := range candidates {
		if len(c.matches) == 0 {
			continue
		}
		if onlyMatchedOnce && len(c.matches) > 1 {
			for _, e := range c.matches {
				blocks.add(e, c.rule.Declarations)
			}
			continue
		}

		c.done = true
		for _, e := range c.matches {
			if !inlineInto(e, c.rule.Declarations, blocks) {
				c.done = false
				blocks.add(e, c.rule.Declarations)
			}
		}
	}

	if !removeMatched {
		return nil
	}

	for _, c := range candidates {
		if !c.done {
			continue
		}
		c.rule.SetSelectors(slices.DeleteFunc(slices.Clone(c.rule.Selectors), func(s *css.Selector) bool {
			return s == c.sel
		}))
		c.source.changed = true
	}

	for _, src := range sources {
		if !src.changed {
			continue
		}
		src.sheet.Rules = slices.DeleteFunc(src.sheet.Rules, func(r *css.Rule) bool {
			return !r.IsAtRule() && !r.Unsupported && len(r.Selectors) == 0
		})

		text := src.sheet.String()
		if text == "" {
			node.Unlink(src.elem)
			continue
		}
		if err := setTextContent(doc, src.elem, text); err != nil {
			return err
		}
	}
	return nil
}

func hasRepeatedProperty(decls []*css.Declaration) bool {
	seen := make(map[string]struct{}, len(decls))
	for _, d := range decls {
		p := strings.ToLower(d.Property)
		if _, ok := seen[p]; ok {
			return true
		}
		seen[p] = struct{}{}
	}
	return false
}

// inlineInto merges decls into the style attribute of e. It returns
// false when some declaration could not be merged.
func inlineInto(e *node.Element, decls []*css.Declaration, blocks *blockList) bool {
	existing, err := css.ParseDeclarations(e.AttributeValue("style"))
	if err != nil || hasRepeatedProperty(existing) {
		return false
	}

	index := make(map[string]*css.Declaration, len(existing))
	for _, d := range existing {
		index[strings.ToLower(d.Property)] = d
	}

	complete := true
	changed := false
	for _, d := range decls {
		prop := strings.ToLower(d.Property)
		if blocks.blocked(e, prop) {
			complete = false
			continue
		}

		cur, ok := index[prop]
		switch {
		case !ok:
			nd := *d
			existing = append(existing, &nd)
			index[prop] = &nd
			changed = true
		case !cur.Important && d.Important:
			cur.Value = d.Value
			cur.Important = true
			changed = true
		}
	}

	if changed {
		e.SetAttribute("style", css.FormatDeclarations(existing))
	}
	return complete
}

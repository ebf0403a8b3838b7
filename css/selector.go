package css

import (
	"strings"

	"github.com/gorilla/css/scanner"
	"github.com/lestrrat-go/svgo/node"
	"github.com/pkg/errors"
)

// Specificity is the (id, class, type) weight of a selector
type Specificity [3]int

// Compare returns -1, 0 or 1 when s is lower than, equal to, or
// higher than other.
func (s Specificity) Compare(other Specificity) int {
	for i := range s {
		switch {
		case s[i] < other[i]:
			return -1
		case s[i] > other[i]:
			return 1
		}
	}
	return 0
}

// Selector is a compiled complex selector. Only type, universal, id,
// class and attribute presence simple selectors are understood,
// joined by descendant or child combinators.
type Selector struct {
	text      string
	compounds []compound
}

type compound struct {
	// combinator links this compound to the previous one: ' ' or '>'
	combinator byte
	tag        string
	id         string
	classes    []string
	attrs      []string
}

func (c *compound) empty() bool {
	return c.tag == "" && c.id == "" && len(c.classes) == 0 && len(c.attrs) == 0
}

// String returns the selector text with whitespace normalized
func (s *Selector) String() string {
	return s.text
}

func (s *Selector) Specificity() Specificity {
	var spec Specificity
	for _, c := range s.compounds {
		if c.id != "" {
			spec[0]++
		}
		spec[1] += len(c.classes) + len(c.attrs)
		if c.tag != "" && c.tag != "*" {
			spec[2]++
		}
	}
	return spec
}

// Match reports whether e is selected
func (s *Selector) Match(e *node.Element) bool {
	return matchAt(s.compounds, len(s.compounds)-1, e)
}

func matchAt(cs []compound, i int, e *node.Element) bool {
	if !cs[i].match(e) {
		return false
	}
	if i == 0 {
		return true
	}

	switch cs[i].combinator {
	case '>':
		p := parentElement(e)
		return p != nil && matchAt(cs, i-1, p)
	default:
		for p := parentElement(e); p != nil; p = parentElement(p) {
			if matchAt(cs, i-1, p) {
				return true
			}
		}
		return false
	}
}

func (c *compound) match(e *node.Element) bool {
	if c.tag != "" && c.tag != "*" && c.tag != e.LocalName() {
		return false
	}
	if c.id != "" && e.AttributeValue("id") != c.id {
		return false
	}
	if len(c.classes) > 0 {
		have := strings.Fields(e.AttributeValue("class"))
		for _, want := range c.classes {
			found := false
			for _, h := range have {
				if h == want {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		}
	}
	for _, attr := range c.attrs {
		if !e.HasAttribute(attr) {
			return false
		}
	}
	return true
}

func parentElement(e *node.Element) *node.Element {
	p, _ := e.Parent().(*node.Element)
	return p
}

// CompileSelectorList compiles a comma separated selector list. If any
// selector in the list is outside the supported subset, the selectors
// compiled so far are returned together with an ErrUnsupported error.
func CompileSelectorList(text string) ([]*Selector, error) {
	c := &selectorCompiler{scan: scanner.New(text)}
	var list []*Selector
	for {
		sel, more, err := c.compileOne()
		if err != nil {
			return list, err
		}
		list = append(list, sel)
		if !more {
			return list, nil
		}
	}
}

// CompileSelector compiles a single selector
func CompileSelector(text string) (*Selector, error) {
	list, err := CompileSelectorList(text)
	if err != nil {
		return nil, err
	}
	if len(list) != 1 {
		return nil, errors.Wrapf(ErrUnsupported, "expected a single selector in %q", text)
	}
	return list[0], nil
}

type selectorCompiler struct {
	scan *scanner.Scanner
	peek *scanner.Token
}

func (c *selectorCompiler) next() *scanner.Token {
	if tok := c.peek; tok != nil {
		c.peek = nil
		return tok
	}
	for {
		tok := c.scan.Next()
		if tok.Type != scanner.TokenComment {
			return tok
		}
	}
}

func (c *selectorCompiler) unread(tok *scanner.Token) {
	c.peek = tok
}

func unsupported(tok *scanner.Token) error {
	return errors.Wrapf(ErrUnsupported, "selector token %s", tok.String())
}

// compileOne reads one selector up to a top level comma or the end of
// the input. more is true when a comma was consumed.
func (c *selectorCompiler) compileOne() (*Selector, bool, error) {
	var sel Selector
	var cur compound
	var combinator byte
	pendingSpace := false

	finish := func() error {
		if cur.empty() {
			return errors.Wrap(ErrUnsupported, "empty compound selector")
		}
		sel.compounds = append(sel.compounds, cur)
		cur = compound{}
		return nil
	}

	for {
		tok := c.next()
		if pendingSpace && !isSelectorEnd(tok) && !isCombinator(tok) && !cur.empty() {
			if err := finish(); err != nil {
				return nil, false, err
			}
			combinator = ' '
		}
		if tok.Type != scanner.TokenS {
			pendingSpace = false
		}

		switch tok.Type {
		case scanner.TokenEOF:
			if err := finish(); err != nil {
				return nil, false, err
			}
			sel.text = selectorText(sel.compounds)
			return &sel, false, nil
		case scanner.TokenS:
			pendingSpace = true
			continue
		case scanner.TokenIdent:
			if !cur.empty() {
				return nil, false, unsupported(tok)
			}
			cur.tag = tok.Value
		case scanner.TokenHash:
			if cur.id != "" {
				return nil, false, unsupported(tok)
			}
			cur.id = strings.TrimPrefix(tok.Value, "#")
		case scanner.TokenChar:
			switch tok.Value {
			case ",":
				if err := finish(); err != nil {
					return nil, false, err
				}
				sel.text = selectorText(sel.compounds)
				return &sel, true, nil
			case ">":
				if err := finish(); err != nil {
					return nil, false, err
				}
				combinator = '>'
				continue
			case "*":
				if !cur.empty() {
					return nil, false, unsupported(tok)
				}
				cur.tag = "*"
			case ".":
				name := c.next()
				if name.Type != scanner.TokenIdent {
					return nil, false, unsupported(name)
				}
				cur.classes = append(cur.classes, name.Value)
			case "[":
				name, err := c.attributePresence()
				if err != nil {
					return nil, false, err
				}
				cur.attrs = append(cur.attrs, name)
			default:
				return nil, false, unsupported(tok)
			}
		default:
			return nil, false, unsupported(tok)
		}

		if len(sel.compounds) > 0 && cur.combinator == 0 {
			cur.combinator = combinator
		}
	}
}

func isSelectorEnd(tok *scanner.Token) bool {
	return tok.Type == scanner.TokenEOF || (tok.Type == scanner.TokenChar && tok.Value == ",")
}

func isCombinator(tok *scanner.Token) bool {
	return tok.Type == scanner.TokenChar && tok.Value == ">"
}

// attributePresence reads the rest of "[name]"
func (c *selectorCompiler) attributePresence() (string, error) {
	tok := c.next()
	for tok.Type == scanner.TokenS {
		tok = c.next()
	}
	if tok.Type != scanner.TokenIdent {
		return "", unsupported(tok)
	}
	name := tok.Value

	tok = c.next()
	for tok.Type == scanner.TokenS {
		tok = c.next()
	}
	if tok.Type != scanner.TokenChar || tok.Value != "]" {
		return "", unsupported(tok)
	}
	return name, nil
}

func selectorText(cs []compound) string {
	var sb strings.Builder
	for i, c := range cs {
		if i > 0 {
			sb.WriteByte(c.combinator)
		}
		sb.WriteString(c.tag)
		if c.id != "" {
			sb.WriteByte('#')
			sb.WriteString(c.id)
		}
		for _, class := range c.classes {
			sb.WriteByte('.')
			sb.WriteString(class)
		}
		for _, attr := range c.attrs {
			sb.WriteByte('[')
			sb.WriteString(attr)
			sb.WriteByte(']')
		}
	}
	return sb.String()
}

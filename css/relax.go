package css

import (
	"strings"

	"github.com/gorilla/css/scanner"
	"github.com/pkg/errors"
)

// RelaxSelectorList compiles a selector list that matches at least
// every element the given list selects. Pseudo-classes and
// pseudo-elements are dropped and attribute conditions become presence
// tests. Sibling combinators and anything else that cannot be widened
// this way still fail with ErrUnsupported.
func RelaxSelectorList(text string) ([]*Selector, error) {
	var sb strings.Builder
	s := scanner.New(text)
	compoundStart := true
	for {
		tok := s.Next()
		switch tok.Type {
		case scanner.TokenEOF:
			return CompileSelectorList(sb.String())
		case scanner.TokenError:
			return nil, unsupported(tok)
		case scanner.TokenComment:
			continue
		case scanner.TokenS:
			sb.WriteByte(' ')
			compoundStart = true
			continue
		case scanner.TokenChar:
			switch tok.Value {
			case ":":
				if compoundStart {
					sb.WriteByte('*')
				}
				if err := skipPseudo(s); err != nil {
					return nil, err
				}
				compoundStart = false
				continue
			case "[":
				name, err := relaxAttribute(s)
				if err != nil {
					return nil, err
				}
				sb.WriteString("[" + name + "]")
				compoundStart = false
				continue
			case ",", ">":
				sb.WriteString(tok.Value)
				compoundStart = true
				continue
			}
		}
		sb.WriteString(tok.Value)
		compoundStart = false
	}
}

// skipPseudo consumes the rest of ":name", "::name" or ":name(...)"
func skipPseudo(s *scanner.Scanner) error {
	tok := s.Next()
	if tok.Type == scanner.TokenChar && tok.Value == ":" {
		tok = s.Next()
	}
	switch tok.Type {
	case scanner.TokenIdent:
		return nil
	case scanner.TokenFunction:
		depth := 1
		for depth > 0 {
			tok = s.Next()
			switch tok.Type {
			case scanner.TokenEOF, scanner.TokenError:
				return unsupported(tok)
			case scanner.TokenFunction:
				depth++
			case scanner.TokenChar:
				switch tok.Value {
				case "(":
					depth++
				case ")":
					depth--
				}
			}
		}
		return nil
	}
	return unsupported(tok)
}

// relaxAttribute reads an attribute selector up to the closing
// bracket and returns the attribute name
func relaxAttribute(s *scanner.Scanner) (string, error) {
	tok := s.Next()
	for tok.Type == scanner.TokenS {
		tok = s.Next()
	}
	if tok.Type != scanner.TokenIdent {
		return "", unsupported(tok)
	}
	name := tok.Value
	for {
		tok = s.Next()
		switch tok.Type {
		case scanner.TokenEOF, scanner.TokenError:
			return "", errors.Wrap(ErrUnsupported, "unterminated attribute selector")
		case scanner.TokenChar:
			if tok.Value == "]" {
				return name, nil
			}
		}
	}
}

// Mentions summarizes what the selectors and declarations of a
// stylesheet refer to, supported or not. Names are sorted by the kind
// of simple selector they appear in, so that a class named "x" is not
// taken for the x attribute.
type Mentions struct {
	// Elements holds the names used in type selectors, including
	// those inside functional pseudo-classes such as :not(path)
	Elements map[string]struct{}
	// Attributes holds the names tested by attribute selectors
	Attributes map[string]struct{}
	// Classes holds class and id names
	Classes map[string]struct{}
	// PseudoClasses holds pseudo-class and pseudo-element names
	PseudoClasses map[string]struct{}
	// Properties holds every declared property, lower-cased
	Properties map[string]struct{}
	// Structural is set when a selector depends on document structure
	// beyond ancestry: pseudo-classes, pseudo-elements, or sibling
	// combinators.
	Structural bool
}

// NewMentions returns an empty summary
func NewMentions() *Mentions {
	return &Mentions{
		Elements:      make(map[string]struct{}),
		Attributes:    make(map[string]struct{}),
		Classes:       make(map[string]struct{}),
		PseudoClasses: make(map[string]struct{}),
		Properties:    make(map[string]struct{}),
	}
}

// Mentions scans every rule of the stylesheet, nested ones included.
func (s *StyleSheet) Mentions() *Mentions {
	m := NewMentions()
	m.addRules(s.Rules)
	return m
}

// Merge adds everything o mentions to m
func (m *Mentions) Merge(o *Mentions) {
	for _, pair := range [][2]map[string]struct{}{
		{m.Elements, o.Elements},
		{m.Attributes, o.Attributes},
		{m.Classes, o.Classes},
		{m.PseudoClasses, o.PseudoClasses},
		{m.Properties, o.Properties},
	} {
		for k := range pair[1] {
			pair[0][k] = struct{}{}
		}
	}
	if o.Structural {
		m.Structural = true
	}
}

func (m *Mentions) addRules(rules []*Rule) {
	for _, r := range rules {
		for _, d := range r.Declarations {
			m.Properties[strings.ToLower(d.Property)] = struct{}{}
		}
		if r.IsAtRule() {
			m.addRules(r.Rules)
			continue
		}
		m.addPrelude(r.Prelude())
	}
}

// what the next identifier in a selector names
type identKind int

const (
	identElement identKind = iota
	identClass
	identAttribute
	identAttributeValue
	identPseudo
)

func (m *Mentions) addPrelude(prelude string) {
	s := scanner.New(prelude)
	next := identElement
	for {
		tok := s.Next()
		switch tok.Type {
		case scanner.TokenEOF, scanner.TokenError:
			return
		case scanner.TokenIdent:
			switch next {
			case identElement:
				m.Elements[tok.Value] = struct{}{}
			case identClass:
				m.Classes[tok.Value] = struct{}{}
				next = identElement
			case identAttribute:
				m.Attributes[strings.ToLower(tok.Value)] = struct{}{}
				next = identAttributeValue
			case identPseudo:
				m.PseudoClasses[strings.ToLower(tok.Value)] = struct{}{}
				next = identElement
			}
		case scanner.TokenHash:
			m.Classes[strings.TrimPrefix(tok.Value, "#")] = struct{}{}
		case scanner.TokenFunction:
			// arguments of :not() and friends are selectors again
			m.PseudoClasses[strings.ToLower(strings.TrimSuffix(tok.Value, "("))] = struct{}{}
			m.Structural = true
			next = identElement
		case scanner.TokenChar:
			switch tok.Value {
			case ".":
				if next != identAttributeValue {
					next = identClass
				}
			case "[":
				next = identAttribute
			case "]":
				next = identElement
			case ":":
				m.Structural = true
				next = identPseudo
			case "+", "~":
				m.Structural = true
			}
		}
	}
}

// SelectsElement reports whether a type selector names the element
func (m *Mentions) SelectsElement(name string) bool {
	_, ok := m.Elements[name]
	return ok
}

// SelectsAttribute reports whether an attribute selector tests name
func (m *Mentions) SelectsAttribute(name string) bool {
	_, ok := m.Attributes[strings.ToLower(name)]
	return ok
}

// UsesPseudoClass reports whether a selector uses the pseudo-class
func (m *Mentions) UsesPseudoClass(name string) bool {
	_, ok := m.PseudoClasses[strings.ToLower(name)]
	return ok
}

// Declares reports whether property is declared by some rule
func (m *Mentions) Declares(property string) bool {
	_, ok := m.Properties[strings.ToLower(property)]
	return ok
}

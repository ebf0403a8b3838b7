package css

import (
	"strings"

	"github.com/gorilla/css/scanner"
)

// at-rules that take a declaration block
var declarationBlockAtRules = map[string]struct{}{
	"@font-face":     {},
	"@page":          {},
	"@viewport":      {},
	"@counter-style": {},
	"@property":      {},
}

// String returns the declaration as "property:value", followed by
// "!important" when flagged.
func (d *Declaration) String() string {
	if d.Important {
		return d.Property + ":" + d.Value + "!important"
	}
	return d.Property + ":" + d.Value
}

// FormatDeclarations joins declarations with semicolons, without a
// trailing one.
func FormatDeclarations(decls []*Declaration) string {
	var sb strings.Builder
	for i, d := range decls {
		if i > 0 {
			sb.WriteByte(';')
		}
		sb.WriteString(d.String())
	}
	return sb.String()
}

// MinifyDeclarations lower-cases property names other than custom
// properties, minifies values and drops declarations left without a
// value. Order is kept.
func MinifyDeclarations(decls []*Declaration) []*Declaration {
	out := make([]*Declaration, 0, len(decls))
	for _, d := range decls {
		v := MinifyValue(d.Value)
		if v == "" {
			continue
		}
		prop := strings.TrimSpace(d.Property)
		if !strings.HasPrefix(prop, "--") {
			prop = strings.ToLower(prop)
		}
		out = append(out, &Declaration{
			Property:  prop,
			Value:     v,
			Important: d.Important,
		})
	}
	return out
}

// MinifyValue collapses whitespace runs to a single space and removes
// whitespace next to commas and inside parentheses. Strings are
// untouched.
func MinifyValue(v string) string {
	return collapse(v, ",")
}

// MinifyPrelude is MinifyValue for selector lists and at-rule
// preludes; whitespace around combinators is removed as well.
func MinifyPrelude(p string) string {
	return collapse(p, ",>+~")
}

func collapse(text, tight string) string {
	var sb strings.Builder
	sb.Grow(len(text))

	space := false
	last := ""
	s := scanner.New(text)
	for {
		tok := s.Next()
		switch tok.Type {
		case scanner.TokenEOF, scanner.TokenError:
			if tok.Type == scanner.TokenError {
				// leave text we cannot tokenize as it is
				return strings.TrimSpace(text)
			}
			return sb.String()
		case scanner.TokenS, scanner.TokenComment:
			space = sb.Len() > 0
			continue
		}

		if space && !tightAfter(last, tight) && !tightBefore(tok.Value, tight) {
			sb.WriteByte(' ')
		}
		space = false
		sb.WriteString(tok.Value)
		last = tok.Value
	}
}

func tightAfter(v, tight string) bool {
	return (len(v) == 1 && strings.Contains(tight, v)) || strings.HasSuffix(v, "(")
}

func tightBefore(v, tight string) bool {
	return (len(v) == 1 && strings.Contains(tight, v)) || v == ")"
}

// String writes the stylesheet in minified form: no whitespace
// between tokens that do not need it, no final semicolon in a block,
// and no empty qualified rules.
func (s *StyleSheet) String() string {
	var sb strings.Builder
	writeRules(&sb, s.Rules)
	return sb.String()
}

func writeRules(sb *strings.Builder, rules []*Rule) {
	for _, r := range rules {
		if r.IsAtRule() {
			writeAtRule(sb, r)
			continue
		}

		decls := MinifyDeclarations(r.Declarations)
		if len(decls) == 0 {
			continue
		}
		sb.WriteString(MinifyPrelude(r.Prelude()))
		sb.WriteByte('{')
		sb.WriteString(FormatDeclarations(decls))
		sb.WriteByte('}')
	}
}

func writeAtRule(sb *strings.Builder, r *Rule) {
	name := strings.ToLower(r.Raw.Name)
	sb.WriteString(name)
	if p := MinifyPrelude(r.Prelude()); p != "" {
		sb.WriteByte(' ')
		sb.WriteString(p)
	}

	_, declBlock := declarationBlockAtRules[name]
	switch {
	case r.Raw.EmbedsRules():
		sb.WriteByte('{')
		writeRules(sb, r.Rules)
		sb.WriteByte('}')
	case declBlock || len(r.Declarations) > 0:
		sb.WriteByte('{')
		sb.WriteString(FormatDeclarations(MinifyDeclarations(r.Declarations)))
		sb.WriteByte('}')
	default:
		sb.WriteByte(';')
	}
}

package css

import (
	"strings"

	dcss "github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
	"github.com/gorilla/css/scanner"
	"github.com/pkg/errors"
)

// Parse reads a stylesheet. Rules whose selectors fall outside the
// supported subset are kept and flagged Unsupported. An error is
// returned only when the text cannot be tokenized or parsed at all.
func Parse(text string) (*StyleSheet, error) {
	cleaned, err := clean(text, false)
	if err != nil {
		return nil, err
	}

	sheet, err := parser.Parse(cleaned)
	if err != nil {
		return nil, errors.Wrap(ErrUnsupported, err.Error())
	}

	var result StyleSheet
	result.Rules = convertRules(sheet.Rules)
	return &result, nil
}

func convertRules(raw []*dcss.Rule) []*Rule {
	rules := make([]*Rule, 0, len(raw))
	for _, r := range raw {
		rule := &Rule{
			Raw:          r,
			Declarations: convertDeclarations(r.Declarations),
		}
		if r.Kind == dcss.AtRule {
			rule.Unsupported = true
			rule.Rules = convertRules(r.Rules)
		} else {
			sels, err := CompileSelectorList(r.Prelude)
			if err != nil {
				rule.Unsupported = true
			}
			rule.Selectors = sels
		}
		rules = append(rules, rule)
	}
	return rules
}

func convertDeclarations(raw []*dcss.Declaration) []*Declaration {
	decls := make([]*Declaration, 0, len(raw))
	for _, d := range raw {
		decls = append(decls, &Declaration{
			Property:  d.Property,
			Value:     d.Value,
			Important: d.Important,
		})
	}
	return decls
}

// ParseDeclarations reads the content of a style attribute
func ParseDeclarations(text string) ([]*Declaration, error) {
	cleaned, err := clean(text, true)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(cleaned) == "" {
		return nil, nil
	}

	raw, err := parser.ParseDeclarations(cleaned)
	if err != nil {
		return nil, errors.Wrap(ErrUnsupported, err.Error())
	}

	decls := convertDeclarations(raw)
	for _, d := range decls {
		if d.Property == "" {
			return nil, errors.Wrap(ErrUnsupported, "declaration without a property")
		}
	}
	return decls, nil
}

// clean drops comments and empty statements, which the declaration
// parser does not accept. A declaration list also gets a final
// semicolon, without which the last value would be lost.
func clean(text string, declarations bool) (string, error) {
	var sb strings.Builder
	sb.Grow(len(text) + 1)

	last := ""
	s := scanner.New(text)
	for {
		tok := s.Next()
		switch tok.Type {
		case scanner.TokenEOF:
			if declarations && last != "" && last != ";" {
				sb.WriteByte(';')
			}
			return sb.String(), nil
		case scanner.TokenError:
			return "", errors.Wrap(ErrUnsupported, tok.String())
		case scanner.TokenComment:
			sb.WriteByte(' ')
			continue
		case scanner.TokenChar:
			if tok.Value == ";" && (last == "" || last == ";" || last == "{") {
				continue
			}
		}

		sb.WriteString(tok.Value)
		if tok.Type != scanner.TokenS {
			last = tok.Value
		}
	}
}

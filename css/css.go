// Package css reads the stylesheets found in <style> elements and
// style attributes, matches the selectors the optimizer understands
// against a document tree, and writes declarations back out.
package css

import (
	"strings"

	dcss "github.com/aymerick/douceur/css"
	"github.com/pkg/errors"
)

// ErrUnsupported marks CSS the optimizer leaves alone: selectors it
// cannot match, malformed declarations, or at-rules.
var ErrUnsupported = errors.New("unsupported CSS")

// StyleSheet is the parsed content of a <style> element
type StyleSheet struct {
	Rules []*Rule
}

// Rule is either a qualified rule (selectors plus declarations) or an
// at-rule. At-rules, and qualified rules whose selectors cannot all
// be compiled, are flagged Unsupported and must be passed through
// as they are.
type Rule struct {
	Selectors    []*Selector
	Declarations []*Declaration
	// Rules holds the rules nested in an at-rule block
	Rules       []*Rule
	Raw         *dcss.Rule
	Unsupported bool
}

// Declaration is a single property: value pair
type Declaration struct {
	Property  string
	Value     string
	Important bool
}

// IsAtRule reports whether the rule is an at-rule such as @media
func (r *Rule) IsAtRule() bool {
	return r.Raw != nil && r.Raw.Kind == dcss.AtRule
}

// Prelude returns the selector text of a qualified rule, or the text
// after the name of an at-rule.
func (r *Rule) Prelude() string {
	if r.Raw == nil {
		return ""
	}
	return r.Raw.Prelude
}

// SetSelectors replaces the selector list of a qualified rule. The
// prelude is rewritten from the normalized selector text.
func (r *Rule) SetSelectors(sels []*Selector) {
	r.Selectors = sels
	if r.Raw == nil {
		return
	}
	texts := make([]string, len(sels))
	for i, s := range sels {
		texts[i] = s.String()
	}
	r.Raw.Prelude = strings.Join(texts, ",")
	r.Raw.Selectors = texts
}

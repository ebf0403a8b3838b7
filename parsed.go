package svgo

import "github.com/lestrrat-go/svgo/sax"

func (a parsedAttribute) Prefix() string {
	return a.prefix
}

func (a parsedAttribute) LocalName() string {
	return a.local
}

func (a parsedAttribute) Name() string {
	if a.prefix == "" {
		return a.local
	}
	return a.prefix + ":" + a.local
}

func (a parsedAttribute) Value() string {
	return a.value
}

func (e *parsedElement) Prefix() string {
	return e.prefix
}

func (e *parsedElement) URI() string {
	return e.uri
}

func (e *parsedElement) LocalName() string {
	return e.local
}

func (e *parsedElement) Name() string {
	if e.prefix == "" {
		return e.local
	}
	return e.prefix + ":" + e.local
}

func (e *parsedElement) Attributes() []sax.ParsedAttribute {
	return e.attrs
}

package s11n

import (
	"io"
	"unicode/utf8"
)

var (
	escQuot = []byte("&quot;")
	escAmp  = []byte("&amp;")
	escLt   = []byte("&lt;")
	escGt   = []byte("&gt;")
	escTab  = []byte("&#9;")
	escNL   = []byte("&#10;")
	escCR   = []byte("&#13;")
	escFFFD = []byte("\uFFFD") // replacement character
)

// isInCharacterRange checks if rune is in XML Character Range
func isInCharacterRange(r rune) bool {
	return r == 0x09 ||
		r == 0x0A ||
		r == 0x0D ||
		r >= 0x20 && r <= 0xD7FF ||
		r >= 0xE000 && r <= 0xFFFD ||
		r >= 0x10000 && r <= 0x10FFFF
}

// escaper decides which characters of a run of character data are
// replaced. Markup characters and carriage returns always are; runes
// that are not XML characters become U+FFFD.
type escaper struct {
	quote   bool
	tab     bool
	newline bool
}

var (
	attrEscaper      = escaper{quote: true, tab: true, newline: true}
	textEscaper      = escaper{}
	textEscaperLines = escaper{newline: true}
)

func (e escaper) replacement(r rune, width int) []byte {
	switch r {
	case '&':
		return escAmp
	case '<':
		return escLt
	case '>':
		return escGt
	case '\r':
		return escCR
	case '"':
		if e.quote {
			return escQuot
		}
	case '\t':
		if e.tab {
			return escTab
		}
	case '\n':
		if e.newline {
			return escNL
		}
	default:
		if !isInCharacterRange(r) || (r == utf8.RuneError && width == 1) {
			return escFFFD
		}
	}
	return nil
}

func (e escaper) write(w io.Writer, s []byte) error {
	last := 0
	for i := 0; i < len(s); {
		r, width := utf8.DecodeRune(s[i:])
		i += width
		esc := e.replacement(r, width)
		if esc == nil {
			continue
		}
		if _, err := w.Write(s[last : i-width]); err != nil {
			return err
		}
		if _, err := w.Write(esc); err != nil {
			return err
		}
		last = i
	}
	_, err := w.Write(s[last:])
	return err
}

// EscapeAttrValue writes s to w so that it can be placed inside a
// double quoted attribute value. Whitespace control characters are
// written as character references so that they survive attribute
// value normalization on the way back in.
func EscapeAttrValue(w io.Writer, s []byte) error {
	return attrEscaper.write(w, s)
}

// EscapeText writes s to w as element content. Newlines are kept as is
// unless escapeNewline is set.
func EscapeText(w io.Writer, s []byte, escapeNewline bool) error {
	if escapeNewline {
		return textEscaperLines.write(w, s)
	}
	return textEscaper.write(w, s)
}

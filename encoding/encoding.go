// Package encoding maps the charset named in an XML declaration to a
// decoder. SVG files written by older editors still show up in
// Latin-1, Windows code pages and UTF-16; everything is decoded to
// UTF-8 before the tokenizer sees it.
package encoding

import (
	"io"
	"strings"

	"golang.org/x/net/html/charset"

	enc "golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/encoding/unicode"
)

// labels lists the spellings seen in XML declarations. Lookups are
// case-insensitive.
var labels = map[string]enc.Encoding{}

func register(e enc.Encoding, names ...string) {
	for _, name := range names {
		labels[name] = e
	}
}

func init() {
	register(unicode.UTF8, "utf-8", "utf8", "us-ascii", "ascii")
	register(unicode.UTF16(unicode.BigEndian, unicode.UseBOM), "utf-16", "utf16")
	register(unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM), "utf-16le", "utf16le")
	register(unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM), "utf-16be", "utf16be")

	register(japanese.EUCJP, "euc-jp")
	register(japanese.ShiftJIS, "shift_jis", "shift-jis", "shiftjis", "cp932")
	register(japanese.ISO2022JP, "iso-2022-jp", "jis")
	register(traditionalchinese.Big5, "big5")
	register(korean.EUCKR, "euc-kr")
	register(simplifiedchinese.GBK, "gbk", "gb2312")
	register(simplifiedchinese.HZGB2312, "hz-gb2312")

	// ISO-8859-1 is decoded as its Windows superset, as browsers do
	register(charmap.Windows1252, "iso-8859-1", "latin1", "windows-1252", "windows1252", "cp1252")
	isoParts := map[string]enc.Encoding{
		"2": charmap.ISO8859_2, "3": charmap.ISO8859_3, "4": charmap.ISO8859_4,
		"5": charmap.ISO8859_5, "6": charmap.ISO8859_6, "7": charmap.ISO8859_7,
		"8": charmap.ISO8859_8, "10": charmap.ISO8859_10, "13": charmap.ISO8859_13,
		"14": charmap.ISO8859_14, "15": charmap.ISO8859_15, "16": charmap.ISO8859_16,
	}
	for part, e := range isoParts {
		register(e, "iso-8859-"+part)
	}
	windows := map[string]enc.Encoding{
		"1250": charmap.Windows1250, "1251": charmap.Windows1251,
		"1253": charmap.Windows1253, "1254": charmap.Windows1254,
		"1255": charmap.Windows1255, "1256": charmap.Windows1256,
		"1257": charmap.Windows1257, "1258": charmap.Windows1258,
		"874": charmap.Windows874,
	}
	for page, e := range windows {
		register(e, "windows-"+page, "windows"+page, "cp"+page)
	}

	register(charmap.CodePage437, "cp437", "ibm437")
	register(charmap.CodePage866, "cp866", "ibm866")
	register(charmap.KOI8R, "koi8-r", "koi8r")
	register(charmap.KOI8U, "koi8-u", "koi8u")
	register(charmap.Macintosh, "macintosh", "mac")
	register(charmap.MacintoshCyrillic, "x-mac-cyrillic", "macintoshcyrillic")
	register(charmap.XUserDefined, "x-user-defined", "xuserdefined")
}

// Load returns the encoding registered under name, or nil if the
// name is not known.
func Load(name string) enc.Encoding {
	return labels[strings.ToLower(strings.TrimSpace(name))]
}

// CharsetReader returns a reader that decodes input from the named
// charset into UTF-8. Names that Load does not know are looked up in
// the WHATWG label table. It has the signature expected by
// encoding/xml.Decoder.CharsetReader.
func CharsetReader(label string, input io.Reader) (io.Reader, error) {
	if e := Load(label); e != nil {
		return e.NewDecoder().Reader(input), nil
	}
	return charset.NewReaderLabel(label, input)
}

package svgo_test

import (
	"bytes"
	"context"
	"sync"
	"testing"

	"github.com/lestrrat-go/svgo"
	"github.com/lestrrat-go/svgo/node"
	"github.com/lestrrat-go/svgo/s11n"
	"github.com/lestrrat-go/svgo/sax"
	"github.com/stretchr/testify/require"
)

func dumpString(t *testing.T, doc *node.Document) string {
	t.Helper()

	var buf bytes.Buffer
	var d s11n.Dumper
	require.NoError(t, d.DumpDoc(&buf, doc), "DumpDoc should succeed")
	return buf.String()
}

func TestParse(t *testing.T) {
	const input = `<?xml version="1.0" standalone="no"?>
<!DOCTYPE svg PUBLIC "-//W3C//DTD SVG 1.1//EN" "http://www.w3.org/Graphics/SVG/1.1/DTD/svg11.dtd">
<!-- generator -->
<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" width="10" height="10">
  <use xlink:href="#a" x="1"/>
</svg>
`
	doc, err := svgo.Parse(context.Background(), []byte(input))
	require.NoError(t, err, "Parse should succeed")

	var types []node.NodeType
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		types = append(types, n.Type())
	}
	require.Equal(t, []node.NodeType{
		node.ProcessingInstructionNodeType,
		node.DocumentTypeNodeType,
		node.CommentNodeType,
		node.ElementNodeType,
	}, types)

	root := doc.DocumentElement()
	require.NotNil(t, root)
	require.Equal(t, "svg", root.Name())
	require.Equal(t, node.SVGNamespace, root.URI())
	require.Equal(t, []string{"xmlns", "xmlns:xlink", "width", "height"}, root.AttributeNames())

	use, ok := root.FirstChild().(*node.Element)
	require.True(t, ok, "first child of svg should be an element")
	require.Equal(t, "use", use.Name())
	href, ok := use.Attribute("xlink:href")
	require.True(t, ok)
	require.Equal(t, "#a", href)

	require.Equal(t,
		`<?xml version="1.0" standalone="no"?><!DOCTYPE svg PUBLIC "-//W3C//DTD SVG 1.1//EN" "http://www.w3.org/Graphics/SVG/1.1/DTD/svg11.dtd"><!-- generator --><svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" width="10" height="10"><use xlink:href="#a" x="1"/></svg>`,
		dumpString(t, doc),
	)
}

func TestParseWhitespace(t *testing.T) {
	testcases := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "indentation between elements is dropped",
			input:    "<svg>\n  <g>\n    <rect/>\n  </g>\n</svg>",
			expected: `<svg><g><rect/></g></svg>`,
		},
		{
			name:     "text content keeps its whitespace",
			input:    "<svg><text> a <tspan> b </tspan> </text></svg>",
			expected: `<svg><text> a <tspan> b </tspan> </text></svg>`,
		},
		{
			name:     "xml:space preserve keeps blanks",
			input:    `<svg><g xml:space="preserve"> <g> </g></g></svg>`,
			expected: `<svg><g xml:space="preserve"> <g> </g></g></svg>`,
		},
		{
			name:     "xml:space default inside preserve",
			input:    `<svg xml:space="preserve"><g xml:space="default"> </g></svg>`,
			expected: `<svg xml:space="preserve"><g xml:space="default"/></svg>`,
		},
		{
			name:     "other text is trimmed",
			input:    "<svg><desc>\n  hello world\n</desc></svg>",
			expected: `<svg><desc>hello world</desc></svg>`,
		},
		{
			name:     "CDATA is plain text",
			input:    `<svg><style><![CDATA[.a{fill:red}]]></style></svg>`,
			expected: `<svg><style>.a{fill:red}</style></svg>`,
		},
		{
			name:     "text and CDATA runs are merged",
			input:    `<svg><text>a<![CDATA[<b>]]>c</text></svg>`,
			expected: `<svg><text>a&lt;b&gt;c</text></svg>`,
		},
		{
			name:     "non-breaking space is not whitespace",
			input:    "<svg><desc>\u00a0x\u00a0 </desc></svg>",
			expected: "<svg><desc>\u00a0x\u00a0</desc></svg>",
		},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			doc, err := svgo.Parse(context.Background(), []byte(tc.input))
			require.NoError(t, err, "Parse should succeed")
			require.Equal(t, tc.expected, dumpString(t, doc))
		})
	}

	t.Run("WithKeepBlanks", func(t *testing.T) {
		doc, err := svgo.Parse(context.Background(), []byte("<svg>\n<g/>\n</svg>"), svgo.WithKeepBlanks(true))
		require.NoError(t, err, "Parse should succeed")
		require.Equal(t, "<svg>\n<g/>\n</svg>", dumpString(t, doc))
	})
}

func TestParseErrors(t *testing.T) {
	testcases := []struct {
		name     string
		input    string
		sentinel error
		line     int
	}{
		{name: "empty input", input: "", sentinel: svgo.ErrEmptyDocument, line: 1},
		{name: "prolog only", input: `<?xml version="1.0"?><!-- c -->`, sentinel: svgo.ErrEmptyDocument, line: 1},
		{name: "mismatched end tag", input: "<svg>\n<g>\n</svg>", sentinel: svgo.ErrTagNameMismatch, line: 3},
		{name: "unclosed element", input: "<svg><g></g>", sentinel: svgo.ErrPrematureEnd, line: 1},
		{name: "two roots", input: "<svg/>\n<svg/>", sentinel: svgo.ErrExtraContent, line: 2},
		{name: "text after root", input: "<svg/>junk", sentinel: svgo.ErrTextOutsideRoot, line: 1},
		{name: "unbound element prefix", input: `<svg><foo:bar/></svg>`, sentinel: svgo.ErrUnboundPrefix, line: 1},
		{name: "unbound attribute prefix", input: `<svg foo:x="1"/>`, sentinel: svgo.ErrUnboundPrefix, line: 1},
		{name: "duplicate attribute", input: `<svg a="1" a="2"/>`, sentinel: node.ErrDuplicateAttribute, line: 1},
		{name: "late doctype", input: `<svg/><!DOCTYPE svg>`, sentinel: svgo.ErrInvalidDirective, line: 1},
		{name: "syntax error", input: "<svg>\n<g a=1/></svg>", line: 2},
		{name: "undefined entity", input: `<svg>&nbsp;</svg>`, line: 1},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svgo.Parse(context.Background(), []byte(tc.input), svgo.WithPath("input.svg"))
			require.Error(t, err, "Parse should fail")

			var perr *svgo.ParseError
			require.ErrorAs(t, err, &perr, "error should be a *ParseError")
			require.Equal(t, "input.svg", perr.Path)
			require.Equal(t, tc.line, perr.LineNumber, "line number should match")
			require.Contains(t, err.Error(), "input.svg: ")
			if tc.sentinel != nil {
				require.ErrorIs(t, err, tc.sentinel)
			}
		})
	}
}

func TestParseNamespaces(t *testing.T) {
	const input = `<svg xmlns="http://www.w3.org/2000/svg" xmlns:a="urn:a"><g xmlns:a="urn:b"><a:x a:y="1"/></g><a:x/></svg>`
	doc, err := svgo.Parse(context.Background(), []byte(input))
	require.NoError(t, err, "Parse should succeed")

	var uris []string
	for e := range node.Elements(doc) {
		if e.LocalName() == "x" {
			uris = append(uris, e.URI())
		}
	}
	require.Equal(t, []string{"urn:b", "urn:a"}, uris, "inner declaration should shadow the outer one")
}

func TestParseEncoding(t *testing.T) {
	t.Run("ISO-8859-1", func(t *testing.T) {
		input := []byte("<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?><svg><desc>caf\xe9</desc></svg>")
		doc, err := svgo.Parse(context.Background(), input)
		require.NoError(t, err, "Parse should succeed")
		require.Equal(t, `<?xml version="1.0"?><svg><desc>café</desc></svg>`, dumpString(t, doc))
	})
	t.Run("UTF-8 BOM", func(t *testing.T) {
		input := append([]byte{0xEF, 0xBB, 0xBF}, `<?xml version="1.0" encoding="UTF-8"?><svg/>`...)
		doc, err := svgo.Parse(context.Background(), input)
		require.NoError(t, err, "Parse should succeed")
		require.Equal(t, `<?xml version="1.0" encoding="UTF-8"?><svg/>`, dumpString(t, doc))
	})
	t.Run("UTF-16LE", func(t *testing.T) {
		src := `<?xml version="1.0" encoding="UTF-16"?><svg><desc>é</desc></svg>`
		input := []byte{0xFF, 0xFE}
		for _, r := range src {
			input = append(input, byte(r), byte(r>>8))
		}
		doc, err := svgo.Parse(context.Background(), input)
		require.NoError(t, err, "Parse should succeed")
		require.Equal(t, `<?xml version="1.0"?><svg><desc>é</desc></svg>`, dumpString(t, doc))
	})
	t.Run("UTF-16 without byte order mark", func(t *testing.T) {
		src := `<?xml version="1.0" encoding="UTF-16"?><svg><desc>é</desc></svg>`
		var le, be []byte
		for _, r := range src {
			le = append(le, byte(r), byte(r>>8))
			be = append(be, byte(r>>8), byte(r))
		}
		for name, input := range map[string][]byte{"LE": le, "BE": be} {
			doc, err := svgo.Parse(context.Background(), input)
			require.NoError(t, err, "Parse should succeed for %s", name)
			require.Equal(t, `<?xml version="1.0"?><svg><desc>é</desc></svg>`, dumpString(t, doc), name)
		}
	})
	t.Run("short input", func(t *testing.T) {
		_, err := svgo.Parse(context.Background(), []byte{0xFF})
		require.Error(t, err, "a lone byte is not a document")
	})
}

func TestParseInternalEntities(t *testing.T) {
	const input = `<!DOCTYPE svg [
	<!ENTITY ns_svg "http://www.w3.org/2000/svg">
	<!ENTITY ns_ai 'http://ns.adobe.com/AdobeIllustrator/10.0/'>
]>
<svg xmlns="&ns_svg;" xmlns:i="&ns_ai;" i:viewOrigin="0 0"/>`

	doc, err := svgo.Parse(context.Background(), []byte(input))
	require.NoError(t, err, "Parse should succeed")

	root := doc.DocumentElement()
	require.Equal(t, node.SVGNamespace, root.AttributeValue("xmlns"))
	require.Equal(t, "http://ns.adobe.com/AdobeIllustrator/10.0/", root.AttributeValue("xmlns:i"))
}

func TestParseWithSAX(t *testing.T) {
	var names []string
	var lines []int
	var loc sax.DocumentLocator

	s := sax.New()
	s.SetDocumentLocatorHandler = func(_ sax.Context, l sax.DocumentLocator) error {
		loc = l
		return nil
	}
	s.StartElementHandler = func(_ sax.Context, elem sax.ParsedElement) error {
		names = append(names, elem.Name())
		lines = append(lines, loc.LineNumber())
		return nil
	}

	doc, err := svgo.Parse(context.Background(), []byte("<svg>\n<g>\n<path/></g></svg>"), svgo.WithSAX(s))
	require.NoError(t, err, "Parse should succeed")
	require.Nil(t, doc, "a custom handler does not produce a document")
	require.Equal(t, []string{"svg", "g", "path"}, names)
	require.Equal(t, []int{1, 2, 3}, lines)
}

func TestParserIsReentrant(t *testing.T) {
	p := svgo.NewParser()

	var wg sync.WaitGroup
	errs := make([]error, 8)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = p.Parse(context.Background(), []byte(`<svg><g><rect width="1"/></g></svg>`))
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}
}

func TestParseCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svgo.Parse(ctx, []byte(`<svg/>`))
	require.ErrorIs(t, err, context.Canceled)
}

package svgo_test

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/lestrrat-go/svgo"
	"github.com/lestrrat-go/svgo/node"
	"github.com/lestrrat-go/svgo/plugins"
	"github.com/lestrrat-go/svgo/sax"
	"github.com/stretchr/testify/require"
)

const svgNS = `xmlns="http://www.w3.org/2000/svg"`

func optimizeString(t *testing.T, input string, options ...svgo.OptimizeOption) string {
	t.Helper()
	out, err := svgo.Optimize(context.Background(), []byte(input), options...)
	require.NoError(t, err, "Optimize should succeed")
	return string(out)
}

func TestOptimizeScenarios(t *testing.T) {
	testcases := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "comment, shape and dimensions",
			input:    `<svg ` + svgNS + ` width="10" height="10"><!-- note --><rect x="0" y="0" width="10" height="10" fill="red"/></svg>`,
			expected: `<svg ` + svgNS + ` viewBox="0 0 10 10"><path fill="red" d="M0 0h10v10h-10z"/></svg>`,
		},
		{
			// fill lands on the class-bearing <g>; the converted path inherits it
			name:     "stylesheet inlined",
			input:    `<svg ` + svgNS + `><style>.a{fill:blue}</style><g class="a"><rect width="10" height="10"/></g></svg>`,
			expected: `<svg ` + svgNS + `><g fill="blue" class="a"><path d="M0 0h10v10h-10z"/></g></svg>`,
		},
		{
			name: "editor data",
			input: `<svg ` + svgNS + ` xmlns:inkscape="http://www.inkscape.org/namespaces/inkscape" xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#" viewBox="0 0 10 10">` +
				`<metadata><rdf:RDF/></metadata><inkscape:label inkscape:name="x"/><path d="M0 0L1 1"/></svg>`,
			expected: `<svg ` + svgNS + ` viewBox="0 0 10 10"><path d="M0 0L1 1"/></svg>`,
		},
		{
			name:     "adjacent paths",
			input:    `<svg ` + svgNS + `><path fill="red" d="M0 0L1 0"/><path fill="red" d="M2 0L3 0"/></svg>`,
			expected: `<svg ` + svgNS + `><path fill="red" d="M0 0L1 0 M2 0L3 0"/></svg>`,
		},
		{
			name:     "raster images",
			input:    `<svg ` + svgNS + `><image href="data:image/png;base64,AAA"/><image href="icon.svg"/></svg>`,
			expected: `<svg ` + svgNS + `><image href="icon.svg"/></svg>`,
		},
		{
			name:     "viewBox kept, dimensions dropped",
			input:    `<svg ` + svgNS + ` viewBox="0 0 20 20" width="20" height="20"><path d="M0 0L1 1"/></svg>`,
			expected: `<svg ` + svgNS + ` viewBox="0 0 20 20"><path d="M0 0L1 1"/></svg>`,
		},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expected, optimizeString(t, tc.input))
		})
	}
}

// TestOptimizeGolden runs the default preset over every .svg file in
// testdata/ that has a matching .golden file.
//
// SVGO_TEST_FILES restricts the run to a comma separated list of files:
//
//	SVGO_TEST_FILES=inkscape.svg go test -run TestOptimizeGolden
func TestOptimizeGolden(t *testing.T) {
	only := map[string]struct{}{}
	if v := os.Getenv("SVGO_TEST_FILES"); v != "" {
		for _, f := range strings.Split(v, ",") {
			only[strings.TrimSpace(f)] = struct{}{}
		}
	}

	const dir = "testdata"
	files, err := os.ReadDir(dir)
	require.NoError(t, err, "os.ReadDir should succeed")

	for _, fi := range files {
		if fi.IsDir() || !strings.HasSuffix(fi.Name(), ".svg") {
			continue
		}
		if len(only) > 0 {
			if _, ok := only[fi.Name()]; !ok {
				continue
			}
		}

		fn := filepath.Join(dir, fi.Name())
		goldenfn := strings.TrimSuffix(fn, ".svg") + ".golden"
		if _, err := os.Stat(goldenfn); err != nil {
			t.Logf("%s does not exist, skipping...", goldenfn)
			continue
		}

		t.Run(fi.Name(), func(t *testing.T) {
			input, err := os.ReadFile(fn)
			require.NoError(t, err, "os.ReadFile should succeed")
			golden, err := os.ReadFile(goldenfn)
			require.NoError(t, err, "os.ReadFile should succeed for golden file")

			out, err := svgo.Optimize(context.Background(), input, svgo.WithPath(fn))
			require.NoError(t, err, "Optimize should succeed")
			require.Equal(t, string(bytes.TrimSpace(golden)), string(out))
		})
	}
}

func TestOptimizeOptions(t *testing.T) {
	const input = `<svg ` + svgNS + ` width="10" height="10"><!-- note --><rect width="10" height="10"/></svg>`

	t.Run("plugin subset", func(t *testing.T) {
		got := optimizeString(t, input, svgo.WithPlugins(svgo.Plugin("removeComments")))
		require.Equal(t, `<svg `+svgNS+` width="10" height="10"><rect width="10" height="10"/></svg>`, got)
	})

	t.Run("empty plugin list", func(t *testing.T) {
		got := optimizeString(t, input, svgo.WithPlugins())
		require.Equal(t, `<svg `+svgNS+` width="10" height="10"><!-- note --><rect width="10" height="10"/></svg>`, got)
	})

	t.Run("inactive plugins", func(t *testing.T) {
		no := false
		got := optimizeString(t, input, svgo.WithPlugins(
			svgo.Plugin("removeComments"),
			svgo.PluginOverride{Name: "convertShapeToPath", Active: &no},
			svgo.Disabled("removeDimensions"),
		))
		require.Equal(t, `<svg `+svgNS+` width="10" height="10"><rect width="10" height="10"/></svg>`, got)
	})

	t.Run("plugin params", func(t *testing.T) {
		got := optimizeString(t, input, svgo.WithPlugins(
			svgo.PluginOverride{Name: "removeComments", Params: map[string]any{"preservePatterns": []any{"note"}}},
		))
		require.Contains(t, got, "<!-- note -->")
	})

	t.Run("removeViewBox", func(t *testing.T) {
		const boxed = `<svg ` + svgNS + ` width="10" height="10" viewBox="0 0 10 10"/>`
		got := optimizeString(t, boxed, svgo.WithPlugins(svgo.Plugin("removeViewBox")))
		require.Equal(t, `<svg `+svgNS+` width="10" height="10"/>`, got)

		got = optimizeString(t, boxed, svgo.WithPlugins(svgo.Disabled("removeViewBox")))
		require.Equal(t, boxed, got)
	})

	t.Run("unknown plugin", func(t *testing.T) {
		_, err := svgo.Optimize(context.Background(), []byte(input), svgo.WithPlugins(svgo.Plugin("removeEverything")))
		require.ErrorIs(t, err, svgo.ErrUnknownPlugin)
		require.Contains(t, err.Error(), "removeEverything")

		// an inactive entry must still name a real plugin
		_, err = svgo.NewOptimizer(svgo.WithPlugins(svgo.Disabled("removeEverything")))
		require.ErrorIs(t, err, svgo.ErrUnknownPlugin)
	})

	t.Run("invalid plugin params", func(t *testing.T) {
		_, err := svgo.Optimize(context.Background(), []byte(input), svgo.WithPlugins(
			svgo.PluginOverride{Name: "sortAttrs", Params: map[string]any{"order": 42}},
		))
		require.ErrorIs(t, err, svgo.ErrInvalidPluginParams)

		var ie *plugins.InvariantError
		require.ErrorAs(t, err, &ie)
		require.Equal(t, "sortAttrs", ie.Plugin)
	})

	t.Run("negative precision", func(t *testing.T) {
		_, err := svgo.Optimize(context.Background(), []byte(input), svgo.WithFloatPrecision(-1))
		require.ErrorIs(t, err, svgo.ErrInvalidOption)
	})

	t.Run("float precision", func(t *testing.T) {
		const line = `<svg ` + svgNS + `><line x1="1.23456789" x2="1" y2="1"/></svg>`
		require.Equal(t,
			`<svg `+svgNS+`><path d="M1.23457 0L1 1"/></svg>`,
			optimizeString(t, line),
		)
		require.Equal(t,
			`<svg `+svgNS+`><path d="M1.2345679 0L1 1"/></svg>`,
			optimizeString(t, line, svgo.WithFloatPrecision(7)),
		)
	})

	t.Run("indent", func(t *testing.T) {
		got := optimizeString(t, input, svgo.WithIndent("  "))
		require.Equal(t, "<svg "+svgNS+" viewBox=\"0 0 10 10\">\n  <path d=\"M0 0h10v10h-10z\"/>\n</svg>\n", got)
	})

	t.Run("parse options", func(t *testing.T) {
		const spaced = `<svg ` + svgNS + `> <g/> </svg>`
		got := optimizeString(t, spaced,
			svgo.WithPlugins(),
			svgo.WithParseOptions(svgo.WithKeepBlanks(true)),
		)
		require.Equal(t, spaced, got)
	})
}

func TestOptimizeErrors(t *testing.T) {
	t.Run("parse error", func(t *testing.T) {
		_, err := svgo.Optimize(context.Background(), []byte(`<svg><g></svg>`), svgo.WithPath("broken.svg"))
		require.Error(t, err)

		var perr *svgo.ParseError
		require.ErrorAs(t, err, &perr)
		require.Equal(t, "broken.svg", perr.Path)
		require.Contains(t, err.Error(), "broken.svg")
	})

	t.Run("cancelled before start", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := svgo.Optimize(ctx, []byte(`<svg/>`))
		require.ErrorIs(t, err, context.Canceled)
	})

	t.Run("SAX handler without a document", func(t *testing.T) {
		_, err := svgo.Optimize(context.Background(), []byte(`<svg/>`),
			svgo.WithParseOptions(svgo.WithSAX(sax.New())),
		)
		require.ErrorIs(t, err, node.ErrNoRootElement)
	})
}

func TestOptimizeMultipass(t *testing.T) {
	if !svgo.TracingEnabled {
		t.Skip("Tracing disabled - skipping multipass test")
		return
	}

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	ctx := svgo.WithTraceLogger(context.Background(), logger)

	const input = `<svg ` + svgNS + ` width="10" height="10"><rect width="10" height="10"/></svg>`
	single, err := svgo.Optimize(ctx, []byte(input), svgo.WithPlugins(svgo.Plugin("convertShapeToPath")))
	require.NoError(t, err, "Optimize should succeed")
	require.Equal(t, 1, strings.Count(buf.String(), `"name":"convertShapeToPath"`))

	buf.Reset()
	multi, err := svgo.Optimize(ctx, []byte(input),
		svgo.WithPlugins(svgo.Plugin("convertShapeToPath")),
		svgo.WithMultipass(true),
	)
	require.NoError(t, err, "Optimize should succeed")
	require.Equal(t, single, multi)
	// the second pass changes nothing, so there is no third
	require.Equal(t, 2, strings.Count(buf.String(), `"name":"convertShapeToPath"`))
}

func TestOptimizerConcurrent(t *testing.T) {
	o, err := svgo.NewOptimizer()
	require.NoError(t, err, "NewOptimizer should succeed")
	require.Equal(t, plugins.DefaultPreset(), o.PluginNames())

	inputs := []string{
		`<svg ` + svgNS + ` width="10" height="10"><rect width="10" height="10"/></svg>`,
		`<svg ` + svgNS + `><style>.a{fill:blue}</style><g class="a"><circle r="1"/></g></svg>`,
		`<svg ` + svgNS + `><path fill="red" d="M0 0L1 0"/><path fill="red" d="M2 0L3 0"/></svg>`,
	}
	expected := make([]string, len(inputs))
	for i, input := range inputs {
		out, err := o.Optimize(context.Background(), []byte(input))
		require.NoError(t, err, "Optimize should succeed")
		expected[i] = string(out)
	}

	var wg sync.WaitGroup
	results := make([][]string, 8)
	errs := make([]error, 8)
	for g := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, input := range inputs {
				out, err := o.Optimize(context.Background(), []byte(input))
				if err != nil {
					errs[g] = err
					return
				}
				results[g] = append(results[g], string(out))
			}
		}()
	}
	wg.Wait()

	for g := range results {
		require.NoError(t, errs[g])
		require.Equal(t, expected, results[g])
	}
}

package plugins_test

import "testing"

func TestRemoveDoctype(t *testing.T) {
	runPluginTests(t, "removeDoctype", []pluginTestCase{
		{
			name:     "doctype in the prolog",
			input:    `<?xml version="1.0"?><!DOCTYPE svg PUBLIC "-//W3C//DTD SVG 1.1//EN" "http://www.w3.org/Graphics/SVG/1.1/DTD/svg11.dtd"><svg/>`,
			expected: `<?xml version="1.0"?><svg/>`,
		},
		{
			name:     "no doctype",
			input:    `<svg><g/></svg>`,
			expected: `<svg><g/></svg>`,
		},
	})
}

func TestRemoveXMLProcInst(t *testing.T) {
	runPluginTests(t, "removeXMLProcInst", []pluginTestCase{
		{
			name:     "xml declaration",
			input:    `<?xml version="1.0" encoding="UTF-8"?><svg/>`,
			expected: `<svg/>`,
		},
		{
			name:     "other processing instructions stay",
			input:    `<?xml version="1.0"?><?xml-stylesheet href="a.css"?><svg/>`,
			expected: `<?xml-stylesheet href="a.css"?><svg/>`,
		},
	})
}

func TestRemoveComments(t *testing.T) {
	runPluginTests(t, "removeComments", []pluginTestCase{
		{
			name:     "comments everywhere",
			input:    `<!--a--><svg><!--b--><g><!-- c --></g></svg>`,
			expected: `<svg><g/></svg>`,
		},
		{
			name:     "legal comments stay",
			input:    `<svg><!--! (c) someone--><!--x--></svg>`,
			expected: `<svg><!--! (c) someone--></svg>`,
		},
		{
			name:     "preservation disabled",
			input:    `<svg><!--! (c) someone--></svg>`,
			params:   map[string]any{"preservePatterns": false},
			expected: `<svg/>`,
		},
		{
			name:     "custom patterns",
			input:    `<svg><!--keep me--><!--drop me--></svg>`,
			params:   map[string]any{"preservePatterns": []any{"^keep"}},
			expected: `<svg><!--keep me--></svg>`,
		},
	})
}

func TestRemoveMetadata(t *testing.T) {
	runPluginTests(t, "removeMetadata", []pluginTestCase{
		{
			name:     "metadata with content",
			input:    `<svg><metadata><title>x</title></metadata><g><metadata/></g></svg>`,
			expected: `<svg><g/></svg>`,
		},
	})
}

func TestRemoveEditorsNSData(t *testing.T) {
	runPluginTests(t, "removeEditorsNSData", []pluginTestCase{
		{
			name: "inkscape and sodipodi",
			input: `<svg xmlns="http://www.w3.org/2000/svg" xmlns:inkscape="http://www.inkscape.org/namespaces/inkscape" ` +
				`xmlns:sodipodi="http://sodipodi.sourceforge.net/DTD/sodipodi-0.dtd" inkscape:version="1.0">` +
				`<sodipodi:namedview pagecolor="#fff"/><g inkscape:label="Layer" inkscape:groupmode="layer" id="g"/></svg>`,
			expected: `<svg xmlns="http://www.w3.org/2000/svg"><g id="g"/></svg>`,
		},
		{
			name:     "prefix bound further down",
			input:    `<svg><g xmlns:sketch="http://www.bohemiancoding.com/sketch/ns" sketch:type="group"><sketch:x/><rect/></g></svg>`,
			expected: `<svg><g><rect/></g></svg>`,
		},
		{
			name:     "other namespaces stay",
			input:    `<svg xmlns:xlink="http://www.w3.org/1999/xlink" xmlns:x="urn:x"><use xlink:href="#a" x:a="1"/></svg>`,
			expected: `<svg xmlns:xlink="http://www.w3.org/1999/xlink" xmlns:x="urn:x"><use xlink:href="#a" x:a="1"/></svg>`,
		},
		{
			name:     "additional namespaces",
			input:    `<svg xmlns:x="urn:x"><use x:a="1"/><x:b/></svg>`,
			params:   map[string]any{"additionalNamespaces": []any{"urn:x"}},
			expected: `<svg><use/></svg>`,
		},
	})
}

func TestCleanupAttrs(t *testing.T) {
	runPluginTests(t, "cleanupAttrs", []pluginTestCase{
		{
			name:     "newlines and spaces",
			input:    "<svg><g class=\"  a\n  b  \" d=\"M0 0\nL1 1\"/></svg>",
			expected: `<svg><g class="a b" d="M0 0 L1 1"/></svg>`,
		},
		{
			name:     "preserved space",
			input:    `<svg><text xml:space="preserve" x=" 1 "><tspan dx="  2"/></text></svg>`,
			expected: `<svg><text xml:space="preserve" x=" 1 "><tspan dx="  2"/></text></svg>`,
		},
		{
			name:     "trim disabled",
			input:    `<svg><g class=" a  b "/></svg>`,
			params:   map[string]any{"trim": false},
			expected: `<svg><g class=" a b "/></svg>`,
		},
	})
}

func TestRemoveRasterImages(t *testing.T) {
	runPluginTests(t, "removeRasterImages", []pluginTestCase{
		{
			name: "raster references",
			input: `<svg xmlns:xlink="http://www.w3.org/1999/xlink">` +
				`<image href="data:image/png;base64,AAA"/>` +
				`<image href="icon.svg"/>` +
				`<image xlink:href="photo.JPG?v=1"/>` +
				`<image href="data:image/svg+xml;base64,AAA"/>` +
				`<image href="a.webp#frag"/>` +
				`<image/>` +
				`</svg>`,
			expected: `<svg xmlns:xlink="http://www.w3.org/1999/xlink">` +
				`<image href="icon.svg"/>` +
				`<image href="data:image/svg+xml;base64,AAA"/>` +
				`<image/>` +
				`</svg>`,
		},
	})
}

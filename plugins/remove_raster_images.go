package plugins

import (
	"context"
	"path"
	"strings"

	"github.com/lestrrat-go/svgo/node"
)

func init() {
	register("removeRasterImages", "removes <image> elements that reference raster images", removeRasterImages)
}

var rasterExtensions = map[string]struct{}{
	".apng": {},
	".avif": {},
	".bmp":  {},
	".gif":  {},
	".ico":  {},
	".jpeg": {},
	".jpg":  {},
	".png":  {},
	".tif":  {},
	".tiff": {},
	".webp": {},
}

var rasterMediaTypes = map[string]struct{}{
	"image/apng":   {},
	"image/avif":   {},
	"image/bmp":    {},
	"image/gif":    {},
	"image/jpeg":   {},
	"image/jpg":    {},
	"image/png":    {},
	"image/tiff":   {},
	"image/webp":   {},
	"image/x-icon": {},
}

func removeRasterImages(_ context.Context, _ *Context, doc *node.Document) error {
	for e := range node.Elements(doc.DocumentElement()) {
		if e.LocalName() != "image" || !node.IsAttached(e) {
			continue
		}
		if ref, ok := imageReference(e); ok && isRasterReference(ref) {
			node.Unlink(e)
		}
	}
	return nil
}

// imageReference returns the value of href, or of an href attribute in
// the XLink namespace.
func imageReference(e *node.Element) (string, bool) {
	if v, ok := e.Attribute("href"); ok {
		return v, true
	}
	for _, a := range e.Attributes(nil) {
		if a.LocalName() != "href" || a.Prefix() == "" {
			continue
		}
		if uri, _ := e.LookupNamespaceURI(a.Prefix()); uri == node.XLinkNamespace {
			return a.Value(), true
		}
	}
	return "", false
}

func isRasterReference(ref string) bool {
	ref = strings.TrimSpace(ref)
	if len(ref) >= 5 && strings.EqualFold(ref[:5], "data:") {
		mediaType := ref[5:]
		if i := strings.IndexAny(mediaType, ";,"); i >= 0 {
			mediaType = mediaType[:i]
		}
		_, ok := rasterMediaTypes[strings.ToLower(strings.TrimSpace(mediaType))]
		return ok
	}

	if i := strings.IndexAny(ref, "?#"); i >= 0 {
		ref = ref[:i]
	}
	_, ok := rasterExtensions[strings.ToLower(path.Ext(ref))]
	return ok
}

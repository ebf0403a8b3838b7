package plugins

import (
	"math"
	"strings"

	"github.com/lestrrat-go/svgo/pathdata"
	"github.com/pkg/errors"
	"github.com/tdewolff/parse/v2/strconv"
)

// parseNumber reads an attribute value that must be a plain number,
// surrounding whitespace aside.
func parseNumber(s string) (float64, bool) {
	b := []byte(strings.TrimSpace(s))
	if len(b) == 0 {
		return 0, false
	}
	f, n := strconv.ParseFloat(b)
	if n != len(b) || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// parseLength is parseNumber that also accepts a px unit
func parseLength(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	return parseNumber(strings.TrimSuffix(s, "px"))
}

// parseViewBox reads the four numbers of a viewBox attribute
func parseViewBox(s string) ([4]float64, error) {
	list, err := pathdata.ParseNumbers(s)
	if err != nil {
		return [4]float64{}, err
	}
	if len(list) != 4 {
		return [4]float64{}, errors.Errorf("viewBox needs four numbers, got %d", len(list))
	}
	return [4]float64(list), nil
}

package pathdata

import (
	"math"

	"github.com/lestrrat-go/svgo/internal/pool"
	"github.com/tdewolff/parse/v2/strconv"
)

// significantDigits is the minimum number of significant digits a
// formatted number keeps, whatever the precision.
const significantDigits = 6

// AppendNumber appends v to dst. The number is rounded to precision
// decimals, or to six significant digits when that keeps more of it.
// Trailing zeros and a trailing dot are dropped.
func AppendNumber(dst []byte, v float64, precision int) []byte {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return append(dst, '0')
	}

	abs := math.Abs(v)
	if abs >= 1e15 {
		dst, _ = strconv.AppendFloat(dst, v, significantDigits-1)
		return dst
	}

	dec := max(precision, 0)
	if abs != 0 {
		if d := significantDigits - 1 - int(math.Floor(math.Log10(abs))); d > dec {
			dec = d
		}
	}
	dec = min(dec, 17)
	// keep v * 10^dec inside int64
	for dec > 0 && abs*math.Pow10(dec) >= 1e18 {
		dec--
	}
	return strconv.AppendDecimal(dst, v, dec)
}

// FormatNumber is AppendNumber returning a string
func FormatNumber(v float64, precision int) string {
	buf := pool.ByteSlice().Get()
	defer func() { pool.ByteSlice().Put(buf) }()

	buf = AppendNumber(buf, v, precision)
	return string(buf)
}

// Append writes the path to dst in compact form: one letter per
// command, and no separator before a negative number.
func (p Path) Append(dst []byte, precision int) []byte {
	scratch := pool.ByteSlice().Get()
	defer func() { pool.ByteSlice().Put(scratch) }()

	for _, c := range p {
		dst = append(dst, c.Op)
		for i, arg := range c.Args {
			scratch = AppendNumber(scratch[:0], arg, precision)
			if i > 0 && scratch[0] != '-' {
				dst = append(dst, ' ')
			}
			dst = append(dst, scratch...)
		}
	}
	return dst
}

// Format returns the path as a string, see Append
func (p Path) Format(precision int) string {
	buf := pool.ByteSlice().Get()
	defer func() { pool.ByteSlice().Put(buf) }()

	buf = p.Append(buf, precision)
	return string(buf)
}

func (p Path) String() string {
	return p.Format(DefaultPrecision)
}

package pathdata

import "math"

// Rect is an axis aligned box
type Rect struct {
	MinX, MinY, MaxX, MaxY float64
}

// Intersects reports whether r and o share at least one point
func (r Rect) Intersects(o Rect) bool {
	return r.MinX <= o.MaxX && o.MinX <= r.MaxX && r.MinY <= o.MaxY && o.MinY <= r.MaxY
}

// Expand grows the box by d on every side
func (r Rect) Expand(d float64) Rect {
	return Rect{MinX: r.MinX - d, MinY: r.MinY - d, MaxX: r.MaxX + d, MaxY: r.MaxY + d}
}

type boundsBuilder struct {
	rect  Rect
	empty bool
}

func (b *boundsBuilder) add(x, y float64) {
	if b.empty {
		b.rect = Rect{MinX: x, MinY: y, MaxX: x, MaxY: y}
		b.empty = false
		return
	}
	b.rect.MinX = math.Min(b.rect.MinX, x)
	b.rect.MinY = math.Min(b.rect.MinY, y)
	b.rect.MaxX = math.Max(b.rect.MaxX, x)
	b.rect.MaxY = math.Max(b.rect.MaxY, y)
}

// Bounds returns a box containing every point the path passes
// through. Curves are bounded by their control points and arcs by a
// box around their start point large enough for the ellipse, so the
// result may be larger than the exact bounding box. ok is false for
// an empty path.
func (p Path) Bounds() (r Rect, ok bool) {
	b := boundsBuilder{empty: true}
	var curX, curY, startX, startY float64

	for _, c := range p {
		var baseX, baseY float64
		if !c.IsAbsolute() {
			baseX, baseY = curX, curY
		}
		args := c.Args

		switch c.Op {
		case 'M', 'm':
			curX, curY = baseX+args[0], baseY+args[1]
			startX, startY = curX, curY
			b.add(curX, curY)
		case 'L', 'l', 'T', 't':
			curX, curY = baseX+args[0], baseY+args[1]
			b.add(curX, curY)
		case 'H', 'h':
			curX = baseX + args[0]
			b.add(curX, curY)
		case 'V', 'v':
			curY = baseY + args[0]
			b.add(curX, curY)
		case 'C', 'c', 'S', 's', 'Q', 'q':
			for i := 0; i+1 < len(args); i += 2 {
				b.add(baseX+args[i], baseY+args[i+1])
			}
			curX, curY = baseX+args[len(args)-2], baseY+args[len(args)-1]
		case 'A', 'a':
			x, y := baseX+args[5], baseY+args[6]
			reach := arcReach(math.Abs(args[0]), math.Abs(args[1]), math.Hypot(x-curX, y-curY))
			b.add(curX-reach, curY-reach)
			b.add(curX+reach, curY+reach)
			b.add(x, y)
			curX, curY = x, y
		case 'Z', 'z':
			curX, curY = startX, startY
		}
	}
	return b.rect, !b.empty
}

// arcReach bounds the distance between the start point of an arc and
// any point on it. Radii too small for the chord are scaled up
// uniformly by the renderer, so the larger radius grows with the
// chord times the ratio of the radii.
func arcReach(rx, ry, chord float64) float64 {
	lo, hi := math.Min(rx, ry), math.Max(rx, ry)
	if lo == 0 {
		// a zero radius draws a straight line
		return chord
	}
	return 2 * math.Max(hi, chord/2*hi/lo)
}

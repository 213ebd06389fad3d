package geo

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/ladybug-tools/dragonfly-uwg/pkg/check"
)

// minArea is the smallest outline area, in m², treated as a real footprint.
const minArea = 1e-6

// vertexPrecision is the grid, in metres, on which vertices are compared
// when detecting shared walls.
const vertexPrecision = 1e-3

// Ring is a closed outline; the closing edge from the last vertex back to
// the first is implied.
type Ring []Point

// RingFromCoords builds a ring from [x, y] pairs. A repeated closing vertex
// is dropped.
func RingFromCoords(coords [][]float64) (Ring, error) {
	r := make(Ring, 0, len(coords))
	for i, c := range coords {
		if len(c) != 2 || !finite(c[0]) || !finite(c[1]) {
			return nil, check.Invalid(fmt.Sprintf("vertex[%d]", i), "a finite [x, y] pair", c)
		}
		r = append(r, Pt(c[0], c[1]))
	}
	if n := len(r); n > 1 && r[0] == r[n-1] {
		r = r[:n-1]
	}
	if len(r) < 3 {
		return nil, check.Invalid("vertices", "at least 3 distinct vertices", len(r))
	}
	if a := r.Area(); a < minArea {
		return nil, check.Invalid("area", "a non-degenerate outline", a)
	}
	return r, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Edge returns the i-th edge as (start, end). Wraps around.
func (r Ring) Edge(i int) (Point, Point) {
	n := len(r)
	return r[i%n], r[(i+1)%n]
}

// SignedArea returns the signed area using the shoelace formula.
// Positive for counterclockwise winding, negative for clockwise.
func (r Ring) SignedArea() float64 {
	n := len(r)
	if n < 3 {
		return 0
	}
	area := 0.0
	for i := 0; i < n; i++ {
		a, b := r.Edge(i)
		area += a.Cross(b)
	}
	return area / 2
}

// Area returns the unsigned area of the ring.
func (r Ring) Area() float64 {
	return math.Abs(r.SignedArea())
}

// Perimeter returns the total edge length.
func (r Ring) Perimeter() float64 {
	if len(r) < 2 {
		return 0
	}
	total := 0.0
	for i := range r {
		a, b := r.Edge(i)
		total += a.Distance(b)
	}
	return total
}

// Contains returns true if the point is inside the ring using ray casting.
func (r Ring) Contains(pt Point) bool {
	n := len(r)
	if n < 3 {
		return false
	}
	inside := false
	j := n - 1
	for i := 0; i < n; i++ {
		vi, vj := r[i], r[j]
		if (vi.Y > pt.Y) != (vj.Y > pt.Y) &&
			pt.X < (vj.X-vi.X)*(pt.Y-vi.Y)/(vj.Y-vi.Y)+vi.X {
			inside = !inside
		}
		j = i
	}
	return inside
}

// Footprint is a building outline with optional courtyard holes.
type Footprint struct {
	Outer Ring
	Holes []Ring
}

// NewFootprint builds a footprint from [x, y] coordinate rings. Every hole
// must lie inside the outer ring.
func NewFootprint(outer [][]float64, holes ...[][]float64) (Footprint, error) {
	o, err := RingFromCoords(outer)
	if err != nil {
		return Footprint{}, fmt.Errorf("outer: %w", err)
	}
	f := Footprint{Outer: o}
	for i, h := range holes {
		ring, err := RingFromCoords(h)
		if err != nil {
			return Footprint{}, fmt.Errorf("holes[%d]: %w", i, err)
		}
		for _, v := range ring {
			if !o.Contains(v) {
				return Footprint{}, fmt.Errorf("holes[%d]: %w", i,
					check.Invalid("vertices", "inside the outer ring", v))
			}
		}
		f.Holes = append(f.Holes, ring)
	}
	return f, nil
}

// Rect is a w by h rectangular footprint with its lower-left corner at (x, y).
func Rect(x, y, w, h float64) Footprint {
	return Footprint{Outer: Ring{Pt(x, y), Pt(x+w, y), Pt(x+w, y+h), Pt(x, y+h)}}
}

// Area is the outer area less the holes.
func (f Footprint) Area() float64 {
	a := f.Outer.Area()
	for _, h := range f.Holes {
		a -= h.Area()
	}
	return a
}

func (f Footprint) rings() []Ring {
	return append([]Ring{f.Outer}, f.Holes...)
}

type edgeKey struct {
	ax, ay, bx, by int64
}

func keyOf(a, b Point) edgeKey {
	q := func(v float64) int64 { return int64(math.Round(v / vertexPrecision)) }
	k := edgeKey{q(a.X), q(a.Y), q(b.X), q(b.Y)}
	if k.ax > k.bx || (k.ax == k.bx && k.ay > k.by) {
		k = edgeKey{k.bx, k.by, k.ax, k.ay}
	}
	return k
}

// Measure returns the total floor-plate area of the footprints and the
// length of their exterior-exposed walls. An edge that appears in two
// footprints is a party wall and is not exposed; only edges that match
// vertex for vertex are detected.
func Measure(footprints []Footprint) (area, perimeter float64) {
	areas := make([]float64, len(footprints))
	count := make(map[edgeKey]int)
	var lengths []float64
	var keys []edgeKey
	for i, f := range footprints {
		areas[i] = f.Area()
		for _, r := range f.rings() {
			for j := range r {
				a, b := r.Edge(j)
				k := keyOf(a, b)
				count[k]++
				keys = append(keys, k)
				lengths = append(lengths, a.Distance(b))
			}
		}
	}
	exposed := make([]float64, 0, len(lengths))
	for i, k := range keys {
		if count[k] == 1 {
			exposed = append(exposed, lengths[i])
		}
	}
	return floats.Sum(areas), floats.Sum(exposed)
}

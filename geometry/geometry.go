// Package geometry holds the bounding box value type shared by all detection
// results, plus the overlap math used when consolidating labels.
package geometry

import (
	"math"
	"strconv"
	"strings"
)

// DefaultTolerance is the per-field slack used by Equivalent when deciding
// that two boxes describe the same physical detection.
const DefaultTolerance = 0.1

// Box is a rectangle normalized to the image dimensions: every field is in
// [0,1] and Left+Width <= 1, Top+Height <= 1.
type Box struct {
	Left   float64 `json:"Left"`
	Top    float64 `json:"Top"`
	Width  float64 `json:"Width"`
	Height float64 `json:"Height"`
}

// Valid reports whether the box is inside the unit square.
func (b Box) Valid() bool {
	if b.Left < 0 || b.Top < 0 || b.Width < 0 || b.Height < 0 {
		return false
	}
	return b.Left+b.Width <= 1+1e-9 && b.Top+b.Height <= 1+1e-9
}

// Area returns the normalized area of the box.
func (b Box) Area() float64 {
	return b.Width * b.Height
}

// Key returns an exact string form of the four fields, used to deduplicate
// instances and to associate recognised identities back to detected faces.
// Identical boxes always produce identical keys.
func (b Box) Key() string {
	return strconv.FormatFloat(b.Left, 'g', -1, 64) + "," +
		strconv.FormatFloat(b.Top, 'g', -1, 64) + "," +
		strconv.FormatFloat(b.Width, 'g', -1, 64) + "," +
		strconv.FormatFloat(b.Height, 'g', -1, 64)
}

// BoxFromKey parses a key produced by Key back into a Box.
func BoxFromKey(key string) (Box, bool) {
	parts := strings.Split(key, ",")
	if len(parts) != 4 {
		return Box{}, false
	}
	values := [4]float64{}
	for i, part := range parts {
		f, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return Box{}, false
		}
		values[i] = f
	}
	return Box{Left: values[0], Top: values[1], Width: values[2], Height: values[3]}, true
}

// Pixels maps the normalized box onto an image of the given size, returning
// left, top, right and bottom pixel coordinates.
func (b Box) Pixels(width, height int) (left, top, right, bottom int) {
	left = int(b.Left * float64(width))
	top = int(b.Top * float64(height))
	right = left + int(b.Width*float64(width))
	bottom = top + int(b.Height*float64(height))
	return
}

// OverlapRatio returns the intersection-over-union of two boxes.
// Non-intersecting boxes yield 0, as do degenerate boxes with zero union.
func OverlapRatio(a, b Box) float64 {
	x1 := math.Max(a.Left, b.Left)
	y1 := math.Max(a.Top, b.Top)
	x2 := math.Min(a.Left+a.Width, b.Left+b.Width)
	y2 := math.Min(a.Top+a.Height, b.Top+b.Height)

	if x2 < x1 || y2 < y1 {
		return 0.0
	}

	intersection := (x2 - x1) * (y2 - y1)
	union := a.Area() + b.Area() - intersection
	if union <= 0 {
		return 0.0
	}
	return intersection / union
}

// Equivalent reports whether every field of the two boxes differs by less
// than tolerance. This is an axis-wise check, not a geometric one: for
// elongated boxes it can disagree with OverlapRatio. That is intentional -
// it answers "is this the same physical detection across calls", where IoU
// is too strict.
func Equivalent(a, b Box, tolerance float64) bool {
	return math.Abs(a.Left-b.Left) < tolerance &&
		math.Abs(a.Top-b.Top) < tolerance &&
		math.Abs(a.Width-b.Width) < tolerance &&
		math.Abs(a.Height-b.Height) < tolerance
}

// Package geom provides the shared 2D vocabulary (points, rectangles, line
// segments) and the small numeric helpers used by the engine, the editor and
// the renderers. All coordinates are millimetres with the origin top-left.
package geom

import "math"

// Point is a position in world space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the vector from q to p.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.Width && p.Y >= r.Y && p.Y <= r.Y+r.Height
}

// Inset shrinks the rectangle by d on every side.
func (r Rect) Inset(d float64) Rect {
	return Rect{X: r.X + d, Y: r.Y + d, Width: r.Width - 2*d, Height: r.Height - 2*d}
}

// Area returns width*height.
func (r Rect) Area() float64 {
	return r.Width * r.Height
}

// Perimeter returns 2*(width+height).
func (r Rect) Perimeter() float64 {
	return 2 * (r.Width + r.Height)
}

// Line is a straight segment.
type Line struct {
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
	X2 float64 `json:"x2"`
	Y2 float64 `json:"y2"`
}

// Start returns the first endpoint.
func (l Line) Start() Point { return Point{X: l.X1, Y: l.Y1} }

// End returns the second endpoint.
func (l Line) End() Point { return Point{X: l.X2, Y: l.Y2} }

// Length returns the Euclidean length of the segment.
func (l Line) Length() float64 {
	return math.Hypot(l.X2-l.X1, l.Y2-l.Y1)
}

// Midpoint returns the centre of the segment.
func (l Line) Midpoint() Point {
	return Point{X: (l.X1 + l.X2) / 2, Y: (l.Y1 + l.Y2) / 2}
}

// Translate returns the segment moved by d.
func (l Line) Translate(d Point) Line {
	return Line{X1: l.X1 + d.X, Y1: l.Y1 + d.Y, X2: l.X2 + d.X, Y2: l.Y2 + d.Y}
}

// DistanceToPoint returns the distance from p to the closest point of the
// segment. A degenerate segment reports +Inf so it can never be hit.
func (l Line) DistanceToPoint(p Point) float64 {
	dx := l.X2 - l.X1
	dy := l.Y2 - l.Y1
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return math.Inf(1)
	}

	t := ((p.X-l.X1)*dx + (p.Y-l.Y1)*dy) / lenSq
	t = Clamp(t, 0, 1)

	return math.Hypot(p.X-(l.X1+t*dx), p.Y-(l.Y1+t*dy))
}

// Near reports whether p is strictly closer than threshold to the segment.
func (l Line) Near(p Point, threshold float64) bool {
	return l.DistanceToPoint(p) < threshold
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}

// Round2 rounds to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Round1 rounds to one decimal place.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Radians converts degrees to radians.
func Radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// Degrees converts radians to degrees.
func Degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}

// RotateAround rotates p by deg degrees (clockwise in screen space, y down)
// about pivot.
func RotateAround(p, pivot Point, deg float64) Point {
	if deg == 0 {
		return p
	}
	rad := Radians(deg)
	cos, sin := math.Cos(rad), math.Sin(rad)
	dx := p.X - pivot.X
	dy := p.Y - pivot.Y
	return Point{
		X: dx*cos - dy*sin + pivot.X,
		Y: dx*sin + dy*cos + pivot.Y,
	}
}

// RotateVector rotates a free vector by deg degrees.
func RotateVector(v Point, deg float64) Point {
	return RotateAround(v, Point{}, deg)
}

// Unrotate maps a world point into the local frame of a shape rotated by deg
// about pivot.
func Unrotate(p, pivot Point, deg float64) Point {
	return RotateAround(p, pivot, -deg)
}

// InRotatedRect reports whether p lies inside r after r has been rotated by
// deg degrees about its own centre.
func InRotatedRect(p Point, r Rect, deg float64) bool {
	return r.Contains(Unrotate(p, r.Center(), deg))
}

// NormalizeDegrees maps any angle into [0, 360).
func NormalizeDegrees(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

// SnapToGrid snaps v to the nearest multiple of grid when it is closer than
// threshold; otherwise v is returned unchanged.
func SnapToGrid(v, grid, threshold float64) float64 {
	if grid <= 0 {
		return v
	}
	snapped := math.Round(v/grid) * grid
	if math.Abs(v-snapped) < threshold {
		return snapped
	}
	return v
}

// SnapPoint applies SnapToGrid to both coordinates independently.
func SnapPoint(p Point, grid, threshold float64) Point {
	return Point{X: SnapToGrid(p.X, grid, threshold), Y: SnapToGrid(p.Y, grid, threshold)}
}

// ConstrainAxis forces end onto the horizontal or vertical through start,
// whichever is closer to the drag direction.
func ConstrainAxis(start, end Point) Point {
	if math.Abs(end.X-start.X) > math.Abs(end.Y-start.Y) {
		return Point{X: end.X, Y: start.Y}
	}
	return Point{X: start.X, Y: end.Y}
}

// RectFromCorners returns the normalised rectangle spanned by two corners.
func RectFromCorners(a, b Point) Rect {
	return Rect{
		X:      math.Min(a.X, b.X),
		Y:      math.Min(a.Y, b.Y),
		Width:  math.Abs(a.X - b.X),
		Height: math.Abs(a.Y - b.Y),
	}
}

// RegularPolygon returns n vertices on a circle of the given radius. The
// first vertex sits at startDeg measured clockwise from the +x axis.
func RegularPolygon(center Point, radius float64, n int, startDeg float64) []Point {
	points := make([]Point, 0, n)
	for i := 0; i < n; i++ {
		rad := Radians(float64(i)*(360/float64(n)) + startDeg)
		points = append(points, Point{
			X: center.X + radius*math.Cos(rad),
			Y: center.Y + radius*math.Sin(rad),
		})
	}
	return points
}

package geom

import (
	"fmt"
	"math"
	"strconv"
)

// Matrix is a 2D affine transformation in row-major order:
//
//	| a  b  c |
//	| d  e  f |
//
// x' = a*x + b*y + c
// y' = d*x + e*y + f
type Matrix struct {
	A, B, C float64
	D, E, F float64
}

// Identity returns the identity transformation.
func Identity() Matrix {
	return Matrix{A: 1, E: 1}
}

// Translate creates a translation matrix.
func Translate(x, y float64) Matrix {
	return Matrix{A: 1, C: x, E: 1, F: y}
}

// Scale creates a scaling matrix.
func Scale(x, y float64) Matrix {
	return Matrix{A: x, E: y}
}

// Rotate creates a rotation matrix from degrees.
func Rotate(deg float64) Matrix {
	rad := Radians(deg)
	cos, sin := math.Cos(rad), math.Sin(rad)
	return Matrix{A: cos, B: -sin, D: sin, E: cos}
}

// ScaleAbout scales by (sx, sy) keeping origin fixed.
func ScaleAbout(origin Point, sx, sy float64) Matrix {
	return Translate(origin.X, origin.Y).
		Multiply(Scale(sx, sy)).
		Multiply(Translate(-origin.X, -origin.Y))
}

// RotateAbout rotates by deg keeping pivot fixed.
func RotateAbout(pivot Point, deg float64) Matrix {
	return Translate(pivot.X, pivot.Y).
		Multiply(Rotate(deg)).
		Multiply(Translate(-pivot.X, -pivot.Y))
}

// Multiply returns m * other; other is applied first.
func (m Matrix) Multiply(other Matrix) Matrix {
	return Matrix{
		A: m.A*other.A + m.B*other.D,
		B: m.A*other.B + m.B*other.E,
		C: m.A*other.C + m.B*other.F + m.C,
		D: m.D*other.A + m.E*other.D,
		E: m.D*other.B + m.E*other.E,
		F: m.D*other.C + m.E*other.F + m.F,
	}
}

// TransformPoint applies the transformation to a point.
func (m Matrix) TransformPoint(p Point) Point {
	return Point{
		X: m.A*p.X + m.B*p.Y + m.C,
		Y: m.D*p.X + m.E*p.Y + m.F,
	}
}

// IsIdentity reports whether m leaves every point unchanged.
func (m Matrix) IsIdentity() bool {
	return m == Identity()
}

// SVG formats m as an SVG transform attribute value.
func (m Matrix) SVG() string {
	return fmt.Sprintf("matrix(%s %s %s %s %s %s)",
		FormatFloat(m.A), FormatFloat(m.D), FormatFloat(m.B),
		FormatFloat(m.E), FormatFloat(m.C), FormatFloat(m.F))
}

// FormatFloat prints v with at most four decimals and no trailing zeros.
func FormatFloat(v float64) string {
	if v == 0 || math.Abs(v) < 1e-9 {
		return "0"
	}
	return strconv.FormatFloat(math.Round(v*10000)/10000, 'f', -1, 64)
}

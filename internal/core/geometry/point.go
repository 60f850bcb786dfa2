package geometry

import "strconv"

// Point is a position on the one-dimensional battle line.
// Points are values: movement replaces a Point, it never mutates one.
type Point struct {
	X int `json:"x" yaml:"x"`
}

// At returns the point at coordinate x.
func At(x int) Point {
	return Point{X: x}
}

func (p Point) Add(o Point) Point {
	return Point{X: p.X + o.X}
}

func (p Point) Sub(o Point) Point {
	return Point{X: p.X - o.X}
}

// Step returns the unit vector pointing in the direction of p.
// The zero point has no direction and stays zero.
func (p Point) Step() Point {
	return Point{X: Sign(p.X)}
}

// Distance returns the absolute distance between p and o.
func (p Point) Distance(o Point) int {
	return Abs(p.X - o.X)
}

func (p Point) IsZero() bool {
	return p.X == 0
}

func (p Point) String() string {
	return "(" + strconv.Itoa(p.X) + ")"
}

// Sign returns -1, 0 or 1 depending on the sign of x.
func Sign(x int) int {
	if x > 0 {
		return 1
	}
	if x < 0 {
		return -1
	}
	return 0
}

func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

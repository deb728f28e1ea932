package registration

import (
	"cmp"
	"fmt"
)

// Position is an exact point or offset in 3-D integer space.
type Position struct {
	X, Y, Z int
}

// Origin is the position of the reference scanner.
var Origin = Position{}

// Add returns p + q.
func (p Position) Add(q Position) Position {
	return Position{X: p.X + q.X, Y: p.Y + q.Y, Z: p.Z + q.Z}
}

// Sub returns p - q.
func (p Position) Sub(q Position) Position {
	return Position{X: p.X - q.X, Y: p.Y - q.Y, Z: p.Z - q.Z}
}

// Neg returns -p.
func (p Position) Neg() Position {
	return Position{X: -p.X, Y: -p.Y, Z: -p.Z}
}

// Rotate multiplies p by m.
func (p Position) Rotate(m RotationMatrix) Position {
	return Position{
		X: m[0][0]*p.X + m[0][1]*p.Y + m[0][2]*p.Z,
		Y: m[1][0]*p.X + m[1][1]*p.Y + m[1][2]*p.Z,
		Z: m[2][0]*p.X + m[2][1]*p.Y + m[2][2]*p.Z,
	}
}

// SquaredLength returns x²+y²+z².
func (p Position) SquaredLength() int {
	return p.X*p.X + p.Y*p.Y + p.Z*p.Z
}

// Manhattan returns the sum of absolute coordinate differences between p and q.
func (p Position) Manhattan(q Position) int {
	d := p.Sub(q)
	return abs(d.X) + abs(d.Y) + abs(d.Z)
}

// String formats p the way scanner reports do: "x,y,z".
func (p Position) String() string {
	return fmt.Sprintf("%d,%d,%d", p.X, p.Y, p.Z)
}

// ComparePositions orders positions lexicographically by x, then y, then z.
func ComparePositions(a, b Position) int {
	if c := cmp.Compare(a.X, b.X); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Y, b.Y); c != 0 {
		return c
	}
	return cmp.Compare(a.Z, b.Z)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

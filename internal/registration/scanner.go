package registration

// Beacon is a detected point. Two beacons at the same position in a common
// frame are the same beacon.
type Beacon struct {
	Pos Position
}

// Scanner is a sensor report. Before resolution its beacons are in the
// scanner's own frame and Position is meaningless; after resolution both are
// in the global frame.
type Scanner struct {
	ID       int
	Position Position
	Beacons  []Beacon
}

// NewScanner builds a scanner at the origin from local-frame positions.
func NewScanner(id int, points []Position) Scanner {
	beacons := make([]Beacon, len(points))
	for i, p := range points {
		beacons[i] = Beacon{Pos: p}
	}
	return Scanner{ID: id, Beacons: beacons}
}

// Positions returns the beacon positions in report order.
func (s Scanner) Positions() []Position {
	out := make([]Position, len(s.Beacons))
	for i, b := range s.Beacons {
		out[i] = b.Pos
	}
	return out
}

// Rotate returns a copy of s with every beacon rotated by r.
func (s Scanner) Rotate(r Rotation) Scanner {
	m := r.Matrix()
	beacons := make([]Beacon, len(s.Beacons))
	for i, b := range s.Beacons {
		beacons[i] = Beacon{Pos: b.Pos.Rotate(m)}
	}
	return Scanner{ID: s.ID, Position: s.Position, Beacons: beacons}
}

// Translate returns a copy of s positioned at offset, with beacons moved from
// the scanner-centred frame into the frame offset is expressed in.
func (s Scanner) Translate(offset Position) Scanner {
	beacons := make([]Beacon, len(s.Beacons))
	for i, b := range s.Beacons {
		beacons[i] = Beacon{Pos: b.Pos.Add(offset)}
	}
	return Scanner{ID: s.ID, Position: offset, Beacons: beacons}
}

// Transform applies a detected overlap to s: rotate, then translate.
func (s Scanner) Transform(info OverlapInfo) Scanner {
	return s.Rotate(info.Rotation).Translate(info.Translation)
}

// Overlaps searches for a rotation and translation under which at least
// DefaultMinOverlap of other's beacons coincide with beacons of s.
// Neither scanner is modified.
func (s Scanner) Overlaps(other Scanner) (OverlapInfo, bool) {
	return OverlapDetector{}.Detect(s, other)
}

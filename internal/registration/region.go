package registration

import "slices"

// Resolution records how a scanner was placed in the global frame.
type Resolution struct {
	Resolved bool
	// Parent is the index of the scanner it was matched against, or -1 for
	// the reference scanner.
	Parent int
	// Rotation takes the scanner's local frame into the global frame.
	Rotation Rotation
}

// Region is the full set of scanners together with their resolution state.
// A Region returned by Registrar.Register is fully resolved and must be
// treated as read-only.
type Region struct {
	Scanners    []Scanner
	Resolutions []Resolution
	// Reference is the index of the scanner that defines the global frame.
	Reference int
}

func newRegion(scanners []Scanner, reference int) *Region {
	r := &Region{
		Scanners:    slices.Clone(scanners),
		Resolutions: make([]Resolution, len(scanners)),
		Reference:   reference,
	}
	r.Scanners[reference] = r.Scanners[reference].Translate(Origin)
	r.Resolutions[reference] = Resolution{Resolved: true, Parent: -1, Rotation: Identity}
	return r
}

// resolve replaces scanner j by its global-frame form. Resolution happens at
// most once per scanner.
func (r *Region) resolve(j, parent int, info OverlapInfo) {
	if r.Resolutions[j].Resolved {
		panic("registration: scanner resolved twice")
	}
	r.Scanners[j] = r.Scanners[j].Transform(info)
	r.Resolutions[j] = Resolution{Resolved: true, Parent: parent, Rotation: info.Rotation}
}

// Unresolved returns the indexes of scanners whose global frame is unknown.
func (r *Region) Unresolved() []int {
	var out []int
	for i, res := range r.Resolutions {
		if !res.Resolved {
			out = append(out, i)
		}
	}
	return out
}

// UniqueBeacons returns every distinct global beacon position, sorted.
func (r *Region) UniqueBeacons() []Position {
	seen := make(map[Position]struct{})
	for _, s := range r.Scanners {
		for _, b := range s.Beacons {
			seen[b.Pos] = struct{}{}
		}
	}
	out := make([]Position, 0, len(seen))
	for p := range seen {
		out = append(out, p)
	}
	slices.SortFunc(out, ComparePositions)
	return out
}

// UniqueBeaconCount returns the number of distinct beacons across all
// scanners.
func (r *Region) UniqueBeaconCount() int {
	return len(r.UniqueBeacons())
}

// MaxScannerManhattanDistance returns the largest Manhattan distance between
// any two scanner positions, or 0 with fewer than two scanners.
func (r *Region) MaxScannerManhattanDistance() int {
	largest := 0
	for i := range r.Scanners {
		for j := i + 1; j < len(r.Scanners); j++ {
			largest = max(largest, r.Scanners[i].Position.Manhattan(r.Scanners[j].Position))
		}
	}
	return largest
}

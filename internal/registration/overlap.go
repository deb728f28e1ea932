package registration

// DefaultMinOverlap is the number of coincident beacons required before two
// scanners are considered to overlap.
const DefaultMinOverlap = 12

// OverlapInfo describes how a candidate scanner lines up with a reference.
type OverlapInfo struct {
	// Rotation takes candidate-local coordinates into the reference's
	// orientation.
	Rotation Rotation
	// Translation is the candidate scanner's position in the reference frame.
	Translation Position
	// Matches maps candidate beacon index to reference beacon index.
	Matches map[int]int
}

// OverlapDetector finds the rotation and translation that make two beacon
// clouds coincide.
type OverlapDetector struct {
	// MinOverlap is the coincidence threshold. Zero means DefaultMinOverlap.
	MinOverlap int
}

func (d OverlapDetector) threshold() int {
	if d.MinOverlap <= 0 {
		return DefaultMinOverlap
	}
	return d.MinOverlap
}

// Detect tries each catalog rotation in order. For each it buckets every
// (reference, rotated candidate) beacon pair by their exact difference; the
// first rotation with a bucket of at least MinOverlap pairs wins and the
// remaining rotations are not tried.
//
// First-match is only exact-match when at most one rotation can clear the
// threshold for a given pair of clouds. That holds for synthetic puzzle data
// but is not a geometric guarantee, and reusers with symmetric or dense
// clouds should not rely on it.
func (d OverlapDetector) Detect(ref, cand Scanner) (OverlapInfo, bool) {
	need := d.threshold()
	if len(ref.Beacons) < need || len(cand.Beacons) < need {
		return OverlapInfo{}, false
	}

	refIndex := make(map[Position]int, len(ref.Beacons))
	for i := len(ref.Beacons) - 1; i >= 0; i-- {
		refIndex[ref.Beacons[i].Pos] = i
	}

	rotated := make([]Position, len(cand.Beacons))
	counts := make(map[Position]int, len(ref.Beacons)*len(cand.Beacons))
	for _, r := range allRotations {
		m := r.Matrix()
		for j, b := range cand.Beacons {
			rotated[j] = b.Pos.Rotate(m)
		}

		clear(counts)
		for _, a := range ref.Beacons {
			for _, b := range rotated {
				counts[a.Pos.Sub(b)]++
			}
		}

		var (
			best      Position
			bestCount int
		)
		for diff, n := range counts {
			if n < need {
				continue
			}
			// Map order is random; pick deterministically.
			if n > bestCount || (n == bestCount && ComparePositions(diff, best) < 0) {
				best, bestCount = diff, n
			}
		}
		if bestCount == 0 {
			continue
		}

		matches := make(map[int]int, bestCount)
		for j, b := range rotated {
			if i, ok := refIndex[b.Add(best)]; ok {
				matches[j] = i
			}
		}
		return OverlapInfo{Rotation: r, Translation: best, Matches: matches}, true
	}
	return OverlapInfo{}, false
}

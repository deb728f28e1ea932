package registration

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/banshee-data/beaconmap/internal/monitoring"
)

var (
	// ErrNoScanners is returned when there is nothing to register.
	ErrNoScanners = errors.New("registration: no scanners")
	// ErrRegistrationStuck is returned when no unresolved scanner overlaps
	// any resolved scanner.
	ErrRegistrationStuck = errors.New("registration: no further scanners can be resolved")
)

// RegistrationError reports the scanners left unresolved when registration
// could make no further progress. It wraps ErrRegistrationStuck.
type RegistrationError struct {
	// Unresolved holds the report IDs of the scanners that were never placed.
	Unresolved []int
}

func (e *RegistrationError) Error() string {
	return fmt.Sprintf("%v: %d scanner(s) unresolved %v", ErrRegistrationStuck, len(e.Unresolved), e.Unresolved)
}

func (e *RegistrationError) Unwrap() error { return ErrRegistrationStuck }

// Registrar resolves every scanner into the frame of a reference scanner.
type Registrar struct {
	Detector OverlapDetector
	// Reference is the index (not report ID) of the scanner defining the
	// global frame.
	Reference int
	// Workers bounds the number of concurrent overlap tests. Values below 1
	// mean 1.
	Workers int
}

// Register runs a breadth-first traversal of the overlap graph starting at
// the reference scanner. Each scanner taken off the queue is tested against
// every scanner still unresolved; matches are moved into the global frame and
// queued in turn. The input slice is not modified.
//
// If the queue drains while scanners remain unresolved, Register returns a
// *RegistrationError and no region.
func (g Registrar) Register(ctx context.Context, scanners []Scanner) (*Region, error) {
	if len(scanners) == 0 {
		return nil, ErrNoScanners
	}
	if g.Reference < 0 || g.Reference >= len(scanners) {
		return nil, fmt.Errorf("registration: reference scanner index %d out of range [0,%d)", g.Reference, len(scanners))
	}

	region := newRegion(scanners, g.Reference)
	pending := len(scanners) - 1
	queue := []int{g.Reference}

	for len(queue) > 0 && pending > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		i := queue[0]
		queue = queue[1:]

		candidates := region.Unresolved()
		found := g.testCandidates(region, i, candidates)
		for k, j := range candidates {
			if found[k] == nil {
				continue
			}
			region.resolve(j, i, *found[k])
			queue = append(queue, j)
			pending--
			monitoring.Logf("registration: scanner %d resolved via scanner %d at %s rotation=%s matches=%d",
				region.Scanners[j].ID, region.Scanners[i].ID, found[k].Translation, found[k].Rotation, len(found[k].Matches))
		}
	}

	if pending > 0 {
		var ids []int
		for _, j := range region.Unresolved() {
			ids = append(ids, region.Scanners[j].ID)
		}
		return nil, &RegistrationError{Unresolved: ids}
	}
	monitoring.Logf("registration: %d scanner(s) resolved against scanner %d", len(scanners), region.Scanners[g.Reference].ID)
	return region, nil
}

// testCandidates runs the overlap test of resolved scanner i against each
// candidate. Result k belongs to candidates[k]; nil means no overlap.
func (g Registrar) testCandidates(region *Region, i int, candidates []int) []*OverlapInfo {
	found := make([]*OverlapInfo, len(candidates))
	var eg errgroup.Group
	eg.SetLimit(max(g.Workers, 1))
	for k, j := range candidates {
		k, j := k, j
		eg.Go(func() error {
			if info, ok := g.Detector.Detect(region.Scanners[i], region.Scanners[j]); ok {
				found[k] = &info
			}
			return nil
		})
	}
	// Detect never fails.
	_ = eg.Wait()
	return found
}

package registration

import (
	"bufio"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp/cmpopts"
)

// loadExample reads testdata/example.txt, the five-scanner reference report.
// The parse package cannot be imported here without a cycle.
func loadExample(t *testing.T) []Scanner {
	t.Helper()

	f, err := os.Open(filepath.Join("testdata", "example.txt"))
	if err != nil {
		t.Fatalf("open example: %v", err)
	}
	defer f.Close()

	var (
		scanners []Scanner
		points   []Position
	)
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		switch {
		case strings.HasPrefix(line, "---"):
			if points != nil {
				scanners = append(scanners, NewScanner(len(scanners), points))
			}
			points = []Position{}
		case line == "":
		default:
			fields := strings.Split(line, ",")
			var v [3]int
			for i, field := range fields {
				if v[i], err = strconv.Atoi(field); err != nil {
					t.Fatalf("bad example line %q: %v", line, err)
				}
			}
			points = append(points, Position{X: v[0], Y: v[1], Z: v[2]})
		}
	}
	if err := sc.Err(); err != nil {
		t.Fatalf("read example: %v", err)
	}
	return append(scanners, NewScanner(len(scanners), points))
}

// sharedPoints are the twelve beacons scanners 0 and 1 of the example both
// see, in scanner 0's frame.
var sharedPoints = []Position{
	{X: -618, Y: -824, Z: -621},
	{X: -537, Y: -823, Z: -458},
	{X: -447, Y: -329, Z: 318},
	{X: 404, Y: -588, Z: -901},
	{X: 544, Y: -627, Z: -890},
	{X: 528, Y: -643, Z: 409},
	{X: -661, Y: -816, Z: -575},
	{X: 390, Y: -675, Z: -793},
	{X: 423, Y: -701, Z: 434},
	{X: -345, Y: -311, Z: 381},
	{X: 459, Y: -707, Z: 401},
	{X: -485, Y: -357, Z: 347},
}

// localView returns how a scanner at pos with orientation r would report
// the given global points.
func localView(points []Position, r Rotation, pos Position) []Position {
	inv := r.Inverse()
	out := make([]Position, len(points))
	for i, p := range points {
		out[i] = inv.Apply(p.Sub(pos))
	}
	return out
}

var sortPositions = cmpopts.SortSlices(func(a, b Position) bool {
	return ComparePositions(a, b) < 0
})

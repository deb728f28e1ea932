// Package render draws a registered region as a flat map of beacons and
// scanner positions, either as a PNG image or an interactive HTML page.
package render

import (
	"fmt"

	"github.com/banshee-data/beaconmap/internal/registration"
)

// Plane selects which two global axes the map shows.
type Plane string

const (
	PlaneXY Plane = "xy"
	PlaneXZ Plane = "xz"
	PlaneYZ Plane = "yz"
)

// ParsePlane validates a plane name. An empty name means PlaneXY.
func ParsePlane(s string) (Plane, error) {
	switch p := Plane(s); p {
	case "":
		return PlaneXY, nil
	case PlaneXY, PlaneXZ, PlaneYZ:
		return p, nil
	default:
		return "", fmt.Errorf("unknown plane %q (want xy, xz or yz)", s)
	}
}

// Project returns the two coordinates of p shown on the plane.
func (pl Plane) Project(p registration.Position) (float64, float64) {
	switch pl {
	case PlaneXZ:
		return float64(p.X), float64(p.Z)
	case PlaneYZ:
		return float64(p.Y), float64(p.Z)
	default:
		return float64(p.X), float64(p.Y)
	}
}

// Axes names the horizontal and vertical axes.
func (pl Plane) Axes() (string, string) {
	switch pl {
	case PlaneXZ:
		return "x", "z"
	case PlaneYZ:
		return "y", "z"
	default:
		return "x", "y"
	}
}

// Options controls map rendering.
type Options struct {
	Title string
	Plane Plane
	// AssetsHost overrides where the HTML page loads echarts from.
	AssetsHost string
}

func (o Options) title() string {
	if o.Title == "" {
		return "Registered beacons"
	}
	return o.Title
}

func (o Options) plane() Plane {
	if o.Plane == "" {
		return PlaneXY
	}
	return o.Plane
}

func subtitle(region *registration.Region) string {
	return fmt.Sprintf("scanners=%d beacons=%d max_manhattan=%d",
		len(region.Scanners), region.UniqueBeaconCount(), region.MaxScannerManhattanDistance())
}

package render

import (
	"errors"
	"fmt"
	"image/color"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/banshee-data/beaconmap/internal/registration"
)

// WritePNG draws the region's unique beacons and scanner positions as a PNG.
func WritePNG(w io.Writer, region *registration.Region, o Options) error {
	if region == nil {
		return errors.New("render: nil region")
	}
	pl := o.plane()

	p := plot.New()
	p.Title.Text = o.title() + "\n" + subtitle(region)
	p.X.Label.Text, p.Y.Label.Text = pl.Axes()

	beacons := region.UniqueBeacons()
	if len(beacons) > 0 {
		pts := make(plotter.XYs, len(beacons))
		for i, b := range beacons {
			pts[i].X, pts[i].Y = pl.Project(b)
		}
		s, err := plotter.NewScatter(pts)
		if err != nil {
			return fmt.Errorf("beacon scatter: %w", err)
		}
		s.GlyphStyle.Color = color.RGBA{R: 31, G: 158, B: 137, A: 255}
		s.GlyphStyle.Radius = vg.Points(2)
		s.GlyphStyle.Shape = draw.CircleGlyph{}
		p.Add(s)
		p.Legend.Add("beacons", s)
	}

	pts := make(plotter.XYs, len(region.Scanners))
	for i, sc := range region.Scanners {
		pts[i].X, pts[i].Y = pl.Project(sc.Position)
	}
	s, err := plotter.NewScatter(pts)
	if err != nil {
		return fmt.Errorf("scanner scatter: %w", err)
	}
	s.GlyphStyle.Color = color.RGBA{R: 220, G: 50, B: 47, A: 255}
	s.GlyphStyle.Radius = vg.Points(5)
	s.GlyphStyle.Shape = draw.PyramidGlyph{}
	p.Add(s, plotter.NewGrid())
	p.Legend.Add("scanners", s)

	wt, err := p.WriterTo(8*vg.Inch, 8*vg.Inch, "png")
	if err != nil {
		return fmt.Errorf("render png: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("write png: %w", err)
	}
	return nil
}

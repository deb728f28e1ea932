package render

import (
	"errors"
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/banshee-data/beaconmap/internal/registration"
)

// WriteHTML writes an interactive scatter page of the region's unique
// beacons and scanner positions.
func WriteHTML(w io.Writer, region *registration.Region, o Options) error {
	if region == nil {
		return errors.New("render: nil region")
	}
	pl := o.plane()
	xName, yName := pl.Axes()

	beacons := region.UniqueBeacons()
	beaconData := make([]opts.ScatterData, 0, len(beacons))
	for _, b := range beacons {
		x, y := pl.Project(b)
		beaconData = append(beaconData, opts.ScatterData{Name: b.String(), Value: []interface{}{x, y}})
	}
	scannerData := make([]opts.ScatterData, 0, len(region.Scanners))
	for _, sc := range region.Scanners {
		x, y := pl.Project(sc.Position)
		scannerData = append(scannerData, opts.ScatterData{
			Name:  fmt.Sprintf("scanner %d @ %s", sc.ID, sc.Position),
			Value: []interface{}{x, y},
		})
	}

	initOpts := opts.Initialization{PageTitle: o.title(), Theme: "dark", Width: "900px", Height: "900px"}
	if o.AssetsHost != "" {
		initOpts.AssetsHost = o.AssetsHost
	}
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(initOpts),
		charts.WithTitleOpts(opts.Title{Title: o.title(), Subtitle: subtitle(region)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: xName, NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Name: yName, NameLocation: "middle", NameGap: 30}),
	)
	scatter.AddSeries("beacons", beaconData, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 5}))
	scatter.AddSeries("scanners", scannerData, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 14}))

	page := components.NewPage()
	if o.AssetsHost != "" {
		page.SetAssetsHost(o.AssetsHost)
	}
	page.AddCharts(scatter)
	if err := page.Render(w); err != nil {
		return fmt.Errorf("render html: %w", err)
	}
	return nil
}

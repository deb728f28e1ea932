// Command beaconmap registers a scanner report into the frame of one
// reference scanner and prints the number of unique beacons and the largest
// Manhattan distance between any two scanners.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/banshee-data/beaconmap/internal/config"
	"github.com/banshee-data/beaconmap/internal/monitoring"
	"github.com/banshee-data/beaconmap/internal/parse"
	"github.com/banshee-data/beaconmap/internal/registration"
	"github.com/banshee-data/beaconmap/internal/render"
	"github.com/banshee-data/beaconmap/internal/storage/sqlite"
	"github.com/banshee-data/beaconmap/internal/version"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		log.Fatalf("beaconmap: %v", err)
	}
}

type options struct {
	input       string
	configPath  string
	problem     int
	dbPath      string
	pngPath     string
	htmlPath    string
	plane       string
	verbose     bool
	showVersion bool
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var o options
	fs := flag.NewFlagSet("beaconmap", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&o.input, "input", "", "path to the scanner report (required)")
	fs.StringVar(&o.configPath, "config", "", "registration config (.json, .yaml or .yml)")
	fs.IntVar(&o.problem, "problem", 0, "answer to print: 1 unique beacons, 2 largest scanner distance, 0 both")
	fs.StringVar(&o.dbPath, "db", "", "record the run in this SQLite database")
	fs.StringVar(&o.pngPath, "png", "", "write a PNG map of the region to this path")
	fs.StringVar(&o.htmlPath, "html", "", "write an interactive HTML map of the region to this path")
	fs.StringVar(&o.plane, "plane", "xy", "map projection plane: xy, xz or yz")
	fs.BoolVar(&o.verbose, "v", false, "log registration progress to stderr")
	fs.BoolVar(&o.showVersion, "version", false, "print version and exit")
	if err := fs.Parse(args); err != nil {
		return o, err
	}
	if o.showVersion {
		return o, nil
	}
	if o.input == "" {
		return o, errors.New("-input is required")
	}
	if o.problem < 0 || o.problem > 2 {
		return o, fmt.Errorf("-problem must be 0, 1 or 2, got %d", o.problem)
	}
	return o, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	o, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}
	if o.showVersion {
		fmt.Fprintln(stdout, version.String())
		return nil
	}
	plane, err := render.ParsePlane(o.plane)
	if err != nil {
		return err
	}

	cfg := config.DefaultConfig()
	if o.configPath != "" {
		if cfg, err = config.LoadConfig(o.configPath); err != nil {
			return fmt.Errorf("load config: %w", err)
		}
	}
	monitoring.Configure(stderr, o.verbose || cfg.GetVerbose())

	f, err := os.Open(o.input)
	if err != nil {
		return fmt.Errorf("open report: %w", err)
	}
	scanners, err := parse.ParseReport(f)
	f.Close()
	if err != nil {
		return fmt.Errorf("parse %s: %w", o.input, err)
	}

	registrar := registration.Registrar{
		Detector:  registration.OverlapDetector{MinOverlap: cfg.GetMinOverlap()},
		Reference: cfg.GetReferenceScanner(),
		Workers:   cfg.GetWorkers(),
	}
	region, err := registrar.Register(ctx, scanners)
	if err != nil {
		return err
	}

	if o.problem == 0 || o.problem == 1 {
		fmt.Fprintln(stdout, region.UniqueBeaconCount())
	}
	if o.problem == 0 || o.problem == 2 {
		fmt.Fprintln(stdout, region.MaxScannerManhattanDistance())
	}

	if o.dbPath != "" {
		if err := recordRun(o.dbPath, o.input, cfg.GetMinOverlap(), region); err != nil {
			return err
		}
	}
	renderOpts := render.Options{Title: o.input, Plane: plane}
	if o.pngPath != "" {
		if err := writeFile(o.pngPath, func(w io.Writer) error { return render.WritePNG(w, region, renderOpts) }); err != nil {
			return err
		}
	}
	if o.htmlPath != "" {
		if err := writeFile(o.htmlPath, func(w io.Writer) error { return render.WriteHTML(w, region, renderOpts) }); err != nil {
			return err
		}
	}
	return nil
}

func recordRun(dbPath, source string, minOverlap int, region *registration.Region) error {
	store, err := sqlite.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open run store: %w", err)
	}
	defer store.Close()

	run := &sqlite.Run{SourcePath: source, MinOverlap: minOverlap}
	if err := store.InsertRun(run, region); err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	return nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

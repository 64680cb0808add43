// Command isochrone computes isochrone polygons from a sample file or a
// synthetic road grid and writes them as GeoJSON. With -serve it runs the
// HTTP adapter instead.
//
// Usage:
//
//	isochrone -samples request.json [-limits 300,600,900] [-out iso.geojson]
//	isochrone -samples points.geojson -cost-property minutes -limits 5,10
//	isochrone -grid 60x60 -limits 600,1200,1800
//	isochrone -serve [-config isochrone.yaml]
//
// A sample file is either a request body of POST /v1/isochrones or a GeoJSON
// FeatureCollection of Points carrying a numeric cost property.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/paulmach/orb/geojson"

	"github.com/katalvlaran/isochrone"
	"github.com/katalvlaran/isochrone/config"
	"github.com/katalvlaran/isochrone/metrics"
	"github.com/katalvlaran/isochrone/network"
	"github.com/katalvlaran/isochrone/samples"
	"github.com/katalvlaran/isochrone/server"
)

func main() {
	configFile := flag.String("config", "", "YAML configuration file")
	samplesFile := flag.String("samples", "", "sample file: request JSON or GeoJSON points")
	costProperty := flag.String("cost-property", samples.DefaultCostProperty, "GeoJSON property holding the cost")
	limitsFlag := flag.String("limits", "", "comma-separated ascending cost limits (overrides config)")
	grid := flag.String("grid", "", "synthetic road grid ROWSxCOLS, searched from its centre")
	seed := flag.Int64("seed", 1, "random seed for -grid edge weights")
	outFile := flag.String("out", "", "output file (default stdout)")
	serve := flag.Bool("serve", false, "run the HTTP server")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	logger := cfg.Log.Logger(os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := metrics.DefaultRegistry()
	opts := append(cfg.Pipeline.Options(), isochrone.WithLogger(logger), isochrone.WithMetrics(reg))
	svc := isochrone.New(opts...)

	if *serve {
		if err := server.New(svc, cfg.Server, reg, logger).ListenAndServe(ctx); err != nil {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
		return
	}

	if err := run(ctx, svc, cfg, logger, runArgs{
		samplesFile:  *samplesFile,
		costProperty: *costProperty,
		limits:       *limitsFlag,
		grid:         *grid,
		seed:         *seed,
		outFile:      *outFile,
	}); err != nil {
		logger.Error("isochrone failed", "error", err)
		os.Exit(1)
	}
}

type runArgs struct {
	samplesFile  string
	costProperty string
	limits       string
	grid         string
	seed         int64
	outFile      string
}

func run(ctx context.Context, svc *isochrone.Service, cfg config.Config, logger *slog.Logger, args runArgs) error {
	limits := cfg.Limits
	if args.limits != "" {
		var err error
		if limits, err = parseLimits(args.limits); err != nil {
			return err
		}
	}

	var (
		set *samples.Set
		err error
	)
	switch {
	case args.samplesFile != "":
		var fileLimits []float64
		set, fileLimits, err = loadSamples(args.samplesFile, args.costProperty, cfg.Pipeline.Subdivisions)
		if len(limits) == 0 {
			limits = fileLimits
		}
	case args.grid != "":
		set, err = gridSamples(ctx, args.grid, args.seed, cfg.Pipeline.Subdivisions)
	default:
		return errors.New("one of -samples or -grid is required")
	}
	if err != nil {
		return err
	}
	logger.Info("samples loaded", "count", set.Len(), "max_cost", set.MaxCost())

	res, err := svc.Compute(ctx, set, limits)
	if err != nil {
		return err
	}
	for _, lr := range res.Limits {
		if lr.Err != nil {
			logger.Warn("limit failed", "limit", lr.Limit, "error", lr.Err)
		}
	}

	if args.outFile == "" {
		return writeGeoJSON(os.Stdout, res)
	}
	f, err := os.Create(args.outFile)
	if err != nil {
		return err
	}
	if err := writeGeoJSON(f, res); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeGeoJSON(w io.Writer, res *isochrone.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(res.FeatureCollection())
}

func parseLimits(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("limits: %q: %w", p, err)
		}
		out = append(out, v)
	}
	return out, isochrone.ValidateLimits(out)
}

// loadSamples reads a request body or a GeoJSON point collection.
func loadSamples(path, costProperty string, subdivisions int) (*samples.Set, []float64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}

	var probe struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}

	if probe.Type == "FeatureCollection" {
		fc, err := geojson.UnmarshalFeatureCollection(data)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", path, err)
		}
		in, err := samples.FromFeatureCollection(fc, costProperty)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", path, err)
		}
		set, err := samples.New(in)
		return set, nil, err
	}

	var req server.IsochroneRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	if req.Subdivisions == 0 {
		req.Subdivisions = subdivisions
	}
	set, err := req.Set()
	return set, req.Limits, err
}

// gridSamples searches a ROWSxCOLS grid with random 30..90 weights from its
// centre cell.
func gridSamples(ctx context.Context, dims string, seed int64, subdivisions int) (*samples.Set, error) {
	var rows, cols int
	if _, err := fmt.Sscanf(dims, "%dx%d", &rows, &cols); err != nil {
		return nil, fmt.Errorf("grid %q: want ROWSxCOLS: %w", dims, err)
	}

	g, err := network.Grid(rows, cols, 100, network.UniformWeight(30, 90), rand.New(rand.NewSource(seed)))
	if err != nil {
		return nil, err
	}
	tree, err := network.ShortestPaths(ctx, g, network.GridID(rows/2, cols/2))
	if err != nil {
		return nil, err
	}

	var opts []samples.Option
	if subdivisions > 1 {
		opts = append(opts, samples.WithEdges(tree.EdgeSamples(), subdivisions))
	}
	return samples.New(tree.Samples(), opts...)
}

package isochrone

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/isochrone/contour"
	"github.com/katalvlaran/isochrone/delaunay"
	"github.com/katalvlaran/isochrone/metrics"
	"github.com/katalvlaran/isochrone/polygon"
	"github.com/katalvlaran/isochrone/samples"
)

// Service computes isochrones. It holds configuration only and is safe for
// concurrent use.
type Service struct {
	opts Options
}

// New returns a Service configured by opts.
func New(opts ...Option) *Service {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Service{opts: cfg}
}

// Compute triangulates set once and builds the polygons of every limit.
//
// Steps:
//  1. Validate limits (positive, finite, strictly increasing).
//  2. Triangulate; collinear input goes to the line buffer when enabled.
//  3. Per limit: extract the contour and assemble it. A failing limit keeps
//     its error in LimitResult.Err.
//
// Compute returns an error only for invalid limits, an unusable sample set
// or a cancelled ctx.
func (s *Service) Compute(ctx context.Context, set *samples.Set, limits []float64) (*Result, error) {
	start := time.Now()
	res := &Result{RequestID: uuid.NewString()}
	log := s.opts.Logger.With("request_id", res.RequestID)

	if err := ValidateLimits(limits); err != nil {
		log.Warn("rejected cost limits", "limits", limits, "error", err)
		s.recordComputation(metrics.StatusError, start, res)
		return nil, err
	}
	if set == nil {
		s.recordComputation(metrics.StatusError, start, res)
		return nil, fmt.Errorf("isochrone: %w", delaunay.ErrNilSet)
	}
	res.Samples = set.Len()

	tr, err := delaunay.Triangulate(ctx, set)
	switch {
	case errors.Is(err, delaunay.ErrDegenerateGeometry) && s.opts.LineBuffer > 0:
		log.Info("collinear samples, using line buffer", "samples", set.Len(), "half_width", s.opts.LineBuffer)
		res.LineBuffer = true
		res.Limits = lineBuffer(set, limits, s.opts.LineBuffer)
		if s.opts.Metrics != nil {
			s.opts.Metrics.RecordLineBufferFallback()
			for range res.Limits {
				s.opts.Metrics.RecordLimit(metrics.StatusSuccess, 0, 0)
			}
		}
		s.recordComputation(metrics.StatusSuccess, start, res)
		return res, nil
	case err != nil:
		log.Warn("triangulation failed", "samples", set.Len(), "error", err)
		s.recordComputation(metrics.StatusError, start, res)
		return nil, fmt.Errorf("isochrone: triangulate: %w", err)
	}
	res.Triangles = tr.Len()

	res.Limits = make([]LimitResult, 0, len(limits))
	for _, limit := range limits {
		lr, err := s.computeLimit(ctx, tr, limit, log)
		if err != nil {
			s.recordComputation(metrics.StatusError, start, res)
			return nil, err
		}
		res.Limits = append(res.Limits, lr)
	}

	log.Info("isochrone computed",
		"samples", res.Samples,
		"triangles", res.Triangles,
		"limits", len(limits),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	s.recordComputation(metrics.StatusSuccess, start, res)
	return res, nil
}

// computeLimit builds one LimitResult. Only cancellation is returned as an
// error; everything else stays in the LimitResult.
func (s *Service) computeLimit(ctx context.Context, tr *delaunay.Triangulation, limit float64, log *slog.Logger) (LimitResult, error) {
	lr := LimitResult{Limit: limit}

	segs, err := contour.Extract(ctx, tr, limit)
	if err == nil {
		var st polygon.Stats
		lr.Polygons, st, err = polygon.AssembleWithStats(tr, segs, limit, polygon.WithEpsilon(s.opts.Epsilon))
		if err == nil {
			log.Debug("limit assembled",
				"limit", limit,
				"segments", len(segs),
				"polygons", len(lr.Polygons),
				"holes", st.Holes,
				"dropped", st.Dropped,
				"snapped", st.SnappedChains,
			)
			if s.opts.Metrics != nil {
				s.opts.Metrics.RecordLimit(metrics.StatusSuccess, st.Dropped, st.SnappedChains)
			}
			return lr, nil
		}
	}
	if ctx.Err() != nil {
		return lr, fmt.Errorf("isochrone: limit %v: %w", limit, err)
	}

	log.Warn("limit failed", "limit", limit, "error", err)
	if s.opts.Metrics != nil {
		s.opts.Metrics.RecordLimit(metrics.StatusError, 0, 0)
	}
	lr.Polygons = nil
	lr.Err = fmt.Errorf("isochrone: limit %v: %w", limit, err)
	return lr, nil
}

func (s *Service) recordComputation(status string, start time.Time, res *Result) {
	if s.opts.Metrics == nil {
		return
	}
	s.opts.Metrics.RecordComputation(status, time.Since(start), res.Samples, res.Triangles)
}

// ComputeBatch runs independent requests with at most Workers in flight.
// Responses are in request order; one failing request does not affect the
// others.
func (s *Service) ComputeBatch(ctx context.Context, reqs []Request) []Response {
	out := make([]Response, len(reqs))

	var g errgroup.Group
	g.SetLimit(s.opts.Workers)
	for i, req := range reqs {
		g.Go(func() error {
			res, err := s.Compute(ctx, req.Set, req.Limits)
			out[i] = Response{Result: res, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	return out
}

// ValidateLimits checks that limits is non-empty, positive, finite and
// strictly increasing. The returned error is a *LimitError.
func ValidateLimits(limits []float64) error {
	if len(limits) == 0 {
		return &LimitError{Index: -1, Reason: "no cost limits"}
	}
	for i, l := range limits {
		switch {
		case math.IsNaN(l) || math.IsInf(l, 0):
			return &LimitError{Index: i, Limit: l, Reason: "must be finite"}
		case l <= 0:
			return &LimitError{Index: i, Limit: l, Reason: "must be positive"}
		case i > 0 && l <= limits[i-1]:
			return &LimitError{Index: i, Limit: l, Reason: fmt.Sprintf("must exceed previous limit %v", limits[i-1])}
		}
	}
	return nil
}

package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/katalvlaran/isochrone"
	"github.com/katalvlaran/isochrone/delaunay"
	"github.com/katalvlaran/isochrone/samples"
)

// validate is a singleton validator instance
var validate = validator.New()

var errBodyTooLarge = errors.New("request body too large")

// IsochroneRequest is the body of POST /v1/isochrones.
type IsochroneRequest struct {
	Samples      []SamplePayload `json:"samples" validate:"required,min=3,dive"`
	Edges        []EdgePayload   `json:"edges" validate:"omitempty,dive"`
	Subdivisions int             `json:"subdivisions" validate:"omitempty,min=1,max=64"`
	Limits       []float64       `json:"limits" validate:"required,min=1"`
}

// SamplePayload is one (x, y, cost) sample.
type SamplePayload struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Cost float64 `json:"cost" validate:"gte=0"`
}

// EdgePayload is one traversed edge with its weight.
type EdgePayload struct {
	From   [2]float64 `json:"from"`
	To     [2]float64 `json:"to"`
	Weight int64      `json:"weight" validate:"gte=0"`
}

// LimitErrorPayload reports a limit that produced no polygons.
type LimitErrorPayload struct {
	Limit float64 `json:"limit"`
	Error string  `json:"error"`
}

// IsochroneResponse is the body of a successful POST /v1/isochrones.
type IsochroneResponse struct {
	RequestID  string                     `json:"request_id"`
	LineBuffer bool                       `json:"line_buffer,omitempty"`
	Isochrones *geojson.FeatureCollection `json:"isochrones"`
	Errors     []LimitErrorPayload        `json:"errors,omitempty"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error   string             `json:"error"`
	Message string             `json:"message"`
	Code    int                `json:"code"`
	Limit   *LimitErrorDetails `json:"limit,omitempty"`
}

// LimitErrorDetails locates the rejected entry of a limit list. Index is -1
// when the list itself is rejected.
type LimitErrorDetails struct {
	Index  int     `json:"index"`
	Limit  float64 `json:"limit"`
	Reason string  `json:"reason"`
}

func (s *Server) computeIsochrones(w http.ResponseWriter, r *http.Request) {
	if r.ContentLength > s.cfg.MaxBodyBytes {
		s.respondError(w, http.StatusRequestEntityTooLarge, errBodyTooLarge)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)

	var req IsochroneRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.respondError(w, http.StatusRequestEntityTooLarge, errBodyTooLarge)
			return
		}
		s.respondError(w, http.StatusBadRequest, fmt.Errorf("invalid JSON: %w", err))
		return
	}
	if err := s.validateRequest(&req); err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, isochrone.ErrInvalidCostLimit) {
			status = http.StatusUnprocessableEntity
		}
		s.respondError(w, status, err)
		return
	}

	set, err := req.Set()
	if err != nil {
		s.respondError(w, http.StatusUnprocessableEntity, err)
		return
	}

	res, err := s.svc.Compute(r.Context(), set, req.Limits)
	if err != nil {
		s.respondError(w, statusOf(err), err)
		return
	}

	resp := IsochroneResponse{
		RequestID:  res.RequestID,
		LineBuffer: res.LineBuffer,
		Isochrones: res.FeatureCollection(),
	}
	for _, lr := range res.Limits {
		if lr.Err != nil {
			resp.Errors = append(resp.Errors, LimitErrorPayload{Limit: lr.Limit, Error: lr.Err.Error()})
		}
	}
	w.Header().Set("X-Request-ID", res.RequestID)
	s.respondJSON(w, http.StatusOK, resp)
}

func (s *Server) validateRequest(req *IsochroneRequest) error {
	if err := validate.Struct(req); err != nil {
		return formatValidationError(err)
	}
	if len(req.Samples) > s.cfg.MaxSamples {
		return fmt.Errorf("samples: maximum %d allowed, got %d", s.cfg.MaxSamples, len(req.Samples))
	}
	if len(req.Limits) > s.cfg.MaxLimits {
		return fmt.Errorf("limits: maximum %d allowed, got %d", s.cfg.MaxLimits, len(req.Limits))
	}
	return isochrone.ValidateLimits(req.Limits)
}

// Set builds the sample set of the request, densified along Edges if any.
func (req *IsochroneRequest) Set() (*samples.Set, error) {
	in := make([]samples.Sample, len(req.Samples))
	for i, p := range req.Samples {
		in[i] = samples.Sample{Point: orb.Point{p.X, p.Y}, Cost: p.Cost}
	}

	var opts []samples.Option
	if len(req.Edges) > 0 {
		edges := make([]samples.EdgeSample, len(req.Edges))
		for i, e := range req.Edges {
			edges[i] = samples.EdgeSample{From: orb.Point(e.From), To: orb.Point(e.To), Weight: e.Weight}
		}
		parts := req.Subdivisions
		if parts == 0 {
			parts = 1
		}
		opts = append(opts, samples.WithEdges(edges, parts))
	}
	return samples.New(in, opts...)
}

// statusOf maps pipeline errors to HTTP status codes.
func statusOf(err error) int {
	switch {
	case errors.Is(err, isochrone.ErrInvalidCostLimit),
		errors.Is(err, delaunay.ErrDegenerateGeometry),
		errors.Is(err, samples.ErrInsufficientData),
		errors.Is(err, samples.ErrInvalidSample):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("encoding JSON response", "error", err)
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, err error) {
	resp := ErrorResponse{
		Error:   http.StatusText(status),
		Message: err.Error(),
		Code:    status,
	}
	var le *isochrone.LimitError
	if errors.As(err, &le) {
		resp.Limit = &LimitErrorDetails{Index: le.Index, Limit: le.Limit, Reason: le.Reason}
	}
	s.respondJSON(w, status, resp)
}

func formatValidationError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	// Return the first validation error in a user-friendly format
	for _, e := range validationErrs {
		field := e.Namespace()
		param := e.Param()

		switch e.Tag() {
		case "required":
			return fmt.Errorf("%s: field is required", field)
		case "min", "gte":
			return fmt.Errorf("%s: must be at least %s", field, param)
		case "max":
			return fmt.Errorf("%s: must not exceed %s", field, param)
		case "gt":
			return fmt.Errorf("%s: must be greater than %s", field, param)
		default:
			return fmt.Errorf("%s: validation failed (%s)", field, e.Tag())
		}
	}
	return err
}

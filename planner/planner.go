// Package planner assembles C-space expansion, trapezoidal decomposition,
// and roadmap search into the single entry point a caller drives: configure
// obstacles and a vehicle, Build once, then Plan as many start/goal pairs as
// needed against the built roadmap.
package planner

import (
	"github.com/pkg/errors"

	"github.com/trapplan/motionplan/cspace"
	"github.com/trapplan/motionplan/geom"
	"github.com/trapplan/motionplan/roadmap"
	"github.com/trapplan/motionplan/trapmap"
)

// Config controls the numeric and random-seeding knobs a Planner exposes.
// EpsilonIntersect and EpsilonMerge are accepted here for documentation and
// forward compatibility; the geom package's tolerances are compile-time
// constants, so a Config that names a different value is rejected by New
// rather than silently ignored.
type Config struct {
	RNGSeed          uint64
	EpsilonIntersect float64
	EpsilonMerge     float64
}

// DefaultConfig returns a Config matching geom's built-in tolerances, seeded
// from 0.
func DefaultConfig() Config {
	return Config{
		RNGSeed:          0,
		EpsilonIntersect: geom.EpsilonIntersect,
		EpsilonMerge:     geom.EpsilonMerge,
	}
}

// ErrToleranceMismatch is returned by New when Config names a tolerance
// different from the one geom is compiled with.
var ErrToleranceMismatch = errors.New("planner: config tolerance does not match compiled geom tolerance")

// Planner holds the obstacle field, vehicle footprint, and (once Build has
// run) the trapezoidal map and roadmap graph that answer Plan queries.
type Planner struct {
	bounds    geom.Box
	cfg       Config
	obstacles []geom.Polygon
	vehicle   geom.Polygon

	cspaceObstacles []geom.Polygon
	trapMap         *trapmap.Map
	graph           *roadmap.Graph
}

// New returns a Planner over the given world bounds. The vehicle defaults to
// a single point (no footprint) until SetVehicle is called.
func New(bounds geom.Box, cfg Config) (*Planner, error) {
	if cfg.EpsilonIntersect != 0 && cfg.EpsilonIntersect != geom.EpsilonIntersect {
		return nil, ErrToleranceMismatch
	}
	if cfg.EpsilonMerge != 0 && cfg.EpsilonMerge != geom.EpsilonMerge {
		return nil, ErrToleranceMismatch
	}
	return &Planner{
		bounds:  bounds,
		cfg:     cfg,
		vehicle: geom.NewPolygon([]geom.Point{{X: 0, Y: 0}}),
	}, nil
}

// SetObstacles replaces the planner's obstacle field. Build must be called
// again before Plan reflects the change.
func (p *Planner) SetObstacles(obstacles []geom.Polygon) {
	p.obstacles = obstacles
}

// SetVehicle replaces the convex polygon swept along any planned path,
// expressed in the vehicle's own local frame (its reference point is the
// origin). Build must be called again before Plan reflects the change.
func (p *Planner) SetVehicle(vehicle geom.Polygon) {
	p.vehicle = vehicle
}

// BuildError wraps any failure encountered while constructing the
// decomposition and roadmap, so callers can type-switch on the underlying
// geom/trapmap/roadmap sentinel without caring which layer raised it.
type BuildError struct {
	cause error
}

func (e *BuildError) Error() string { return "planner: build failed: " + e.cause.Error() }
func (e *BuildError) Unwrap() error { return e.cause }

// Build expands every obstacle by the vehicle footprint, constructs a fresh
// trapezoidal decomposition over the expanded obstacles, prunes trapezoids
// that fall inside an obstacle, and builds the roadmap graph over what's
// left. It is safe to call again after SetObstacles/SetVehicle to replan
// from scratch.
func (p *Planner) Build() (err error) {
	defer func() {
		if err != nil {
			err = &BuildError{cause: err}
		}
	}()

	expanded, err := cspace.Expand(p.obstacles, p.vehicle)
	if err != nil {
		return err
	}
	p.cspaceObstacles = expanded

	obstacleSet := geom.NewSet(expanded)
	m := trapmap.New(p.bounds, p.cfg.RNGSeed)
	if err := m.Build(obstacleSet); err != nil {
		return err
	}
	m.Set.RemoveInsidePolygons(obstacleSet)

	p.trapMap = m
	p.graph = roadmap.Build(m, p.bounds.Min.X)
	return nil
}

// PlanError wraps any failure encountered while searching the roadmap,
// mirroring BuildError for the query side of the API.
type PlanError struct {
	cause error
}

func (e *PlanError) Error() string { return "planner: plan failed: " + e.cause.Error() }
func (e *PlanError) Unwrap() error { return e.cause }

// ErrNotBuilt is returned by Plan when Build has not yet succeeded.
var ErrNotBuilt = errors.New("planner: Build has not been run")

// Plan finds a path from start to goal through free C-space, returning the
// waypoints start, every interface midpoint crossed, and goal, in order.
func (p *Planner) Plan(start, goal geom.Point) ([]geom.Point, error) {
	if p.graph == nil {
		return nil, &PlanError{cause: ErrNotBuilt}
	}
	path, err := p.graph.Search(start, goal)
	if err != nil {
		return nil, &PlanError{cause: err}
	}
	return path, nil
}

// Trapezoids returns every live trapezoid's vertices, for diagnostic
// rendering of the current decomposition. Build must have succeeded first.
func (p *Planner) Trapezoids() []geom.Polygon {
	if p.trapMap == nil {
		return nil
	}
	var out []geom.Polygon
	for _, t := range p.trapMap.Set.All() {
		out = append(out, geom.NewPolygon(t.Vertices()))
	}
	return out
}

// DecompositionEdges returns every obstacle edge the current decomposition
// distinguishes on, for diagnostic rendering.
func (p *Planner) DecompositionEdges() []geom.Segment {
	if p.trapMap == nil {
		return nil
	}
	return p.trapMap.DiagnosticEdges()
}

// CSpaceObstacles returns the vehicle-expanded obstacles used by the most
// recent Build.
func (p *Planner) CSpaceObstacles() []geom.Polygon {
	return p.cspaceObstacles
}

package journeyplanner

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/bluele/gcache"
	"github.com/google/uuid"
	"github.com/mosayeb-a/tehran-metro-sub000/pkg/arrivals"
	"github.com/mosayeb-a/tehran-metro-sub000/pkg/itinerary"
	"github.com/mosayeb-a/tehran-metro-sub000/pkg/metro"
	"github.com/mosayeb-a/tehran-metro-sub000/pkg/network"
	"github.com/mosayeb-a/tehran-metro-sub000/pkg/planner"
	"github.com/rs/zerolog/log"
)

var ErrStationNotFound = errors.New("station not found")
var ErrNoRoute = errors.New("no route between stations")

const plansIndex = "metro-plans"

// EventSink receives a document for every plan served
type EventSink interface {
	IndexRequest(indexName string, document io.ReadSeeker)
}

type Options struct {
	Solver         planner.Options
	TransferDelay  time.Duration
	RouteCacheSize int
	RouteCacheTTL  time.Duration
}

func DefaultOptions() Options {
	return Options{
		Solver:         planner.DefaultOptions(),
		TransferDelay:  arrivals.DefaultTransferDelay,
		RouteCacheSize: 1000,
		RouteCacheTTL:  time.Hour,
	}
}

// Plan is a solved route with its itinerary
type Plan struct {
	ID          string           `json:"id"`
	Origin      *metro.Station   `json:"origin"`
	Destination *metro.Station   `json:"destination"`
	Path        []string         `json:"path"`
	Items       []metro.PathItem `json:"items"`
	Transfers   int              `json:"transfers"`
	Cost        int              `json:"cost"`
}

// Planner ties the solver, itinerary builder and arrival estimator together over one network
type Planner struct {
	Network   *network.Network
	solver    *planner.Solver
	estimator *arrivals.Estimator
	routes    gcache.Cache
	events    EventSink
	options   Options
}

func New(net *network.Network, schedules arrivals.ScheduleProvider, events EventSink, options Options) *Planner {
	if options.RouteCacheSize <= 0 {
		options.RouteCacheSize = DefaultOptions().RouteCacheSize
	}

	routes := gcache.New(options.RouteCacheSize).LRU()
	if options.RouteCacheTTL > 0 {
		routes = routes.Expiration(options.RouteCacheTTL)
	}

	return &Planner{
		Network:   net,
		solver:    planner.NewSolver(net, options.Solver),
		estimator: arrivals.NewEstimator(net, schedules),
		routes:    routes.Build(),
		events:    events,
		options:   options,
	}
}

type routeKey struct {
	from string
	to   string
}

// Plan resolves both stations, solves the route and builds its itinerary.
// Results are memoised per origin and destination.
func (p *Planner) Plan(from string, to string) (*Plan, error) {
	origin, exists := p.Network.Station(from)
	if !exists {
		return nil, fmt.Errorf("%s: %w", from, ErrStationNotFound)
	}
	destination, exists := p.Network.Station(to)
	if !exists {
		return nil, fmt.Errorf("%s: %w", to, ErrStationNotFound)
	}

	// Callers such as fiber hand out strings backed by reused request buffers
	key := routeKey{from: strings.Clone(from), to: strings.Clone(to)}
	if cached, err := p.routes.Get(key); err == nil {
		return p.record(cached.(*Plan)), nil
	}

	result, ok := p.solver.Solve(from, to)
	if !ok {
		return nil, fmt.Errorf("%s -> %s: %w", from, to, ErrNoRoute)
	}

	plan := &Plan{
		Origin:      origin,
		Destination: destination,
		Path:        result.Path,
		Items:       itinerary.Build(p.Network, result.Path),
		Transfers:   result.Transfers,
		Cost:        result.Cost,
	}

	if err := p.routes.Set(key, plan); err != nil {
		log.Error().Err(err).Msg("Failed to cache plan")
	}

	return p.record(plan), nil
}

// record hands out a copy of the cached plan with its own id and emits the plan event
func (p *Planner) record(cached *Plan) *Plan {
	plan := *cached
	plan.ID = uuid.New().String()

	if p.events != nil {
		event, err := json.Marshal(map[string]any{
			"id":           plan.ID,
			"origin":       plan.Origin.ID,
			"destination":  plan.Destination.ID,
			"transfers":    plan.Transfers,
			"stations":     len(plan.Path),
			"creationtime": time.Now(),
		})
		if err == nil {
			p.events.IndexRequest(plansIndex, bytes.NewReader(event))
		}
	}

	return &plan
}

// Cached reports whether the route between two stations is memoised
func (p *Planner) Cached(from string, to string) bool {
	return p.routes.Has(routeKey{from: from, to: to})
}

// EstimateOptions fills the configured transfer delay into arrival options for a reference time
func (p *Planner) EstimateOptions(referenceTime time.Time) arrivals.Options {
	return arrivals.Options{
		ReferenceTime: referenceTime,
		Weekday:       referenceTime.Weekday(),
		TransferDelay: p.options.TransferDelay,
	}
}

// Estimate times a plan synchronously
func (p *Planner) Estimate(ctx context.Context, plan *Plan, options arrivals.Options) (*arrivals.Estimate, error) {
	return p.estimator.Estimate(ctx, plan.Items, options)
}

// StartEstimate times a plan in the background
func (p *Planner) StartEstimate(ctx context.Context, plan *Plan, options arrivals.Options) *arrivals.Overlay {
	return arrivals.StartOverlay(ctx, p.estimator, plan.Items, options)
}

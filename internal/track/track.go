// Package track assembles everything navigation needs for one loaded
// level and manages which level is active.
package track

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/Faultbox/kartnav/internal/circuit"
	"github.com/Faultbox/kartnav/internal/config"
	"github.com/Faultbox/kartnav/internal/level"
	"github.com/Faultbox/kartnav/internal/logger"
	"github.com/Faultbox/kartnav/internal/pathfind"
	"github.com/Faultbox/kartnav/internal/route"
	"github.com/Faultbox/kartnav/internal/waypoint"
	"github.com/Faultbox/kartnav/internal/world"
)

// Options configures track loading.
type Options struct {
	Navigation config.NavigationConfig
	Complexity config.ComplexityConfig
	Logger     *zap.Logger
}

// OptionsFromConfig takes the navigation and complexity sections of cfg.
func OptionsFromConfig(cfg *config.Config, log *zap.Logger) Options {
	return Options{
		Navigation: cfg.Navigation,
		Complexity: cfg.Complexity,
		Logger:     log,
	}
}

// Track is a loaded level ready for route queries. It is not safe for
// concurrent use.
type Track struct {
	Name    string
	Level   *level.Level
	World   *world.Map
	Graph   *waypoint.Graph
	Engine  *waypoint.Engine
	Advisor *route.Advisor
	Report  circuit.Report

	// Problems found in the level description; none of them stop loading.
	Warnings error
}

// Load reads a level file and builds its track.
func Load(path string, opts Options) (*Track, error) {
	l, err := level.Load(path)
	if err != nil {
		return nil, err
	}
	return New(l, opts)
}

// New builds the track of l. Anchors and risers are applied to l first.
// It fails only when no waypoint graph can be built.
func New(l *level.Level, opts Options) (*Track, error) {
	log := logger.OrNop(opts.Logger).Named("track")

	var warnings error
	if err := l.Validate(); err != nil && !errors.Is(err, level.ErrNoWaypoints) {
		warnings = multierr.Append(warnings, err)
	}

	geo := l.ToWorld(log.Named("world"))
	warnings = multierr.Append(warnings, l.ApplyAnchors())
	warnings = multierr.Append(warnings, l.ApplyRisers(geo))
	for _, w := range multierr.Errors(warnings) {
		log.Warn("level problem", zap.String("level", l.Name), zap.Error(w))
	}

	g, err := waypoint.Build(l.Records(), waypoint.Options{
		Sprint: l.Sprint,
		Logger: log.Named("waypoint"),
	})
	if err != nil {
		return nil, fmt.Errorf("building waypoints of %q: %w", l.Name, err)
	}

	markOnLine(g, geo, opts.Navigation.OnLineEpsilon)

	n := opts.Navigation
	engine := waypoint.NewEngine(pathfind.Capacity{
		Open:   n.OpenSetBase,
		Closed: n.ClosedSetBase,
		Nodes:  n.NodeBase,
	})

	t := &Track{
		Name:     l.Name,
		Level:    l,
		World:    geo,
		Graph:    g,
		Engine:   engine,
		Advisor:  route.NewAdvisor(g, engine, geo, log.Named("route")),
		Warnings: warnings,
	}
	t.Report = circuit.NewAnalyzer(opts.Complexity, geo, engine, log.Named("circuit")).Analyze(g)

	log.Info("track loaded",
		zap.String("level", l.Name),
		zap.Int("waypoints", g.Len()),
		zap.Uint32("length", t.Report.Length),
		zap.Int("complexity", t.Report.Complexity))

	return t, nil
}

// markOnLine flags spawn waypoints lying on a boundary line.
func markOnLine(g *waypoint.Graph, geo world.Geometry, epsilon float64) {
	for i := 0; i < g.Len(); i++ {
		w := g.At(i)
		if !w.Spawnpoint() {
			continue
		}
		_, d, ok := geo.NearestLine(w.Position())
		w.SetOnLine(ok && d < epsilon)
	}
}

// Close releases the track's graph and search buffers.
func (t *Track) Close() {
	t.Graph.Clear()
	t.Engine.Reset()
}

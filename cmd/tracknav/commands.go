package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/multierr"

	"github.com/Faultbox/kartnav/internal/config"
	"github.com/Faultbox/kartnav/internal/level"
	"github.com/Faultbox/kartnav/internal/track"
	"github.com/Faultbox/kartnav/internal/waypoint"
	vmath "github.com/Faultbox/kartnav/pkg/math"
)

func cmdInfo(cfg *config.Config, args []string) {
	path, _ := splitLevel(cfg, args)
	t := loadTrack(cfg, path)
	defer t.Close()

	printSummary(t)
}

func printSummary(t *track.Track) {
	g := t.Graph
	kind := "circuit"
	if g.Sprint() {
		kind = "sprint"
	}

	fmt.Printf("Level:      %s (%s)\n", t.Name, kind)
	fmt.Printf("Waypoints:  %d\n", g.Len())
	fmt.Printf("Finish:     %v\n", g.FinishLine())
	fmt.Printf("Starting:   %v\n", g.StartingWaypoint())
	fmt.Printf("Length:     %d\n", g.CircuitLength())
	fmt.Printf("Complexity: %d\n", g.Complexity())

	problems := waypoint.Warnings(g.Validate())
	levelProblems := multierr.Errors(t.Warnings)
	if len(problems)+len(levelProblems) == 0 {
		return
	}
	fmt.Println()
	fmt.Println("Problems:")
	for _, p := range problems {
		fmt.Printf("  %v\n", p)
	}
	for _, p := range levelProblems {
		fmt.Printf("  %v\n", p)
	}
}

func cmdAnalyze(cfg *config.Config, args []string) {
	path, _ := splitLevel(cfg, args)
	t := loadTrack(cfg, path)
	defer t.Close()

	printSummary(t)

	r := t.Report
	fmt.Println()
	if r.Baseline {
		fmt.Println("No route from start to finish; complexity is the baseline.")
		return
	}

	fmt.Println("Turns:")
	fmt.Printf("  %-14s %8s %8s %6s %6s %6s %9s\n", "apex", "yaw", "pitch", "radius", "space", "wall", "score")
	for _, turn := range r.Turns {
		fmt.Printf("  %-14v %8.1f %8.1f %6.2f %6.2f %6.2f %9.1f\n",
			turn.Apex, turn.YawDelta, turn.PitchDelta, turn.Radius, turn.Spacing, turn.Wall, turn.Contribution)
	}

	fmt.Println()
	fmt.Printf("Sneaker panel clusters: %d\n", len(r.Clusters))
	for _, c := range r.Clusters {
		fmt.Printf("  [%.0f, %.0f] - [%.0f, %.0f]\n", c.Min[0], c.Min[1], c.Max[0], c.Max[1])
	}

	logEngineStats(t)
}

func cmdRoute(cfg *config.Config, args []string) {
	path, args := splitLevel(cfg, args)
	if len(args) < 2 {
		fmt.Fprintln(os.Stderr, "Usage: tracknav route <level> <from-id> <to-id>")
		os.Exit(1)
	}
	t := loadTrack(cfg, path)
	defer t.Close()

	from, to := waypointArg(t, args[0]), waypointArg(t, args[1])
	shortcuts, reverse := cfg.Navigation.Shortcuts, config.Reverse()

	route, ok := t.Advisor.PathTo(from, to, shortcuts, reverse)
	if !ok {
		fmt.Printf("No route from %v to %v\n", from, to)
		logEngineStats(t)
		return
	}

	ids := make([]string, len(route.Nodes))
	for i, w := range route.Nodes {
		ids[i] = strconv.Itoa(w.ID())
	}
	fmt.Printf("Route:    %s\n", strings.Join(ids, " -> "))
	fmt.Printf("Distance: %d\n", route.TotalCost)
	fmt.Printf("Next:     %v\n", t.Advisor.NextWaypointToward(from, to, shortcuts, reverse))
	logEngineStats(t)
}

func cmdClosest(cfg *config.Config, args []string) {
	path, args := splitLevel(cfg, args)
	if len(args) < 3 {
		fmt.Fprintln(os.Stderr, "Usage: tracknav closest <level> <x> <y> <z>")
		os.Exit(1)
	}
	t := loadTrack(cfg, path)
	defer t.Close()

	pos := vmath.Vec3{X: floatArg(args[0]), Y: floatArg(args[1]), Z: floatArg(args[2])}
	closest := t.Advisor.ClosestWaypoint(pos)
	best := t.Advisor.BestWaypointForAgent(pos, nil, cfg.Navigation.Shortcuts)

	fmt.Printf("Closest: %v\n", closest)
	fmt.Printf("Best:    %v\n", best)
	if best != nil {
		fmt.Printf("Next:    %v\n", t.Advisor.NextWaypointAlongCircuit(best, cfg.Navigation.Shortcuts))
	}
}

func cmdSpawn(cfg *config.Config, args []string) {
	path, args := splitLevel(cfg, args)
	if len(args) < 2 {
		fmt.Fprintln(os.Stderr, "Usage: tracknav spawn <level> <from-id> <distance>")
		os.Exit(1)
	}
	t := loadTrack(cfg, path)
	defer t.Close()

	from := waypointArg(t, args[0])
	dist, err := strconv.ParseUint(args[1], 10, 32)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid distance %q\n", args[1])
		os.Exit(1)
	}

	spawn := t.Advisor.SpawnPointAhead(from, uint32(dist), cfg.Navigation.Shortcuts, config.Reverse())
	if spawn == nil {
		fmt.Printf("No spawn point ahead of %v\n", from)
		return
	}
	fmt.Printf("Spawn point: %v (on line: %v)\n", spawn, spawn.OnLine())
}

func cmdAdjust(cfg *config.Config, args []string) {
	path, args := splitLevel(cfg, args)
	if len(args) < 1 || path == "" {
		fmt.Fprintln(os.Stderr, "Usage: tracknav adjust <level> <output>")
		os.Exit(1)
	}

	l, err := level.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	errs := multierr.Append(l.ApplyAnchors(), l.ApplyRisers(l.ToWorld(nil)))
	for _, e := range multierr.Errors(errs) {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", e)
	}

	if err := l.Save(args[0]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s (%d anchors, %d risers applied)\n", args[0], len(l.Anchors), len(l.Risers))
}

func cmdConfig(cfg *config.Config, args []string) {
	var (
		path string
		err  error
	)
	if len(args) > 0 {
		path, err = args[0], cfg.SaveTo(args[0])
	} else {
		path, err = filepath.Join(config.ConfigDir(), config.FileName), cfg.Save()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s\n", path)
}

func waypointArg(t *track.Track, s string) *waypoint.Waypoint {
	id, err := strconv.Atoi(s)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid waypoint id %q\n", s)
		os.Exit(1)
	}
	w := t.Graph.FindByID(id)
	if w == nil {
		fmt.Fprintf(os.Stderr, "Error: no waypoint %d in %s\n", id, t.Name)
		os.Exit(1)
	}
	return w
}

func floatArg(s string) float32 {
	f, err := strconv.ParseFloat(s, 32)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid number %q\n", s)
		os.Exit(1)
	}
	return float32(f)
}

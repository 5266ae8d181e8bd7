// tracknav inspects the waypoint navigation of kart racing levels.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/kartnav/internal/config"
	"github.com/Faultbox/kartnav/internal/logger"
	"github.com/Faultbox/kartnav/internal/track"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	args := config.Args()
	if len(args) < 1 {
		printUsage()
		os.Exit(1)
	}

	command := args[0]
	args = args[1:]

	if stray := strayFlags(args); len(stray) > 0 {
		fmt.Fprintf(os.Stderr, "Flags must come before the command: %s\n", strings.Join(stray, " "))
		os.Exit(1)
	}

	switch command {
	case "info":
		cmdInfo(cfg, args)
	case "analyze":
		cmdAnalyze(cfg, args)
	case "route":
		cmdRoute(cfg, args)
	case "closest":
		cmdClosest(cfg, args)
	case "spawn":
		cmdSpawn(cfg, args)
	case "adjust":
		cmdAdjust(cfg, args)
	case "config":
		cmdConfig(cfg, args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`tracknav - kart racing waypoint navigation inspector

Usage:
  tracknav [flags] <command> [level.yaml] [args]

The level may be omitted when --level or the config file names one.

Commands:
  info <level>                      Show circuit length, start and complexity
  analyze <level>                   Show every scored turn and sneaker panel cluster
  route <level> <from-id> <to-id>   Shortest route between two waypoints
  closest <level> <x> <y> <z>       Closest and best waypoint for a position
  spawn <level> <from-id> <dist>    First spawn point at least dist ahead
  adjust <level> <output>           Write the level with anchors and risers applied
  config [output]                   Write the effective config (default: user config dir)

Flags (before the command):
  --config <file>   Config file (default: ./tracknav.yaml or the user config dir)
  --debug           Debug logging
  --log-file <file> Also log to a rotating file
  --level <file>    Default level file
  --shortcuts       Allow shortcut waypoints
  --reverse         Search against the direction of travel

Examples:
  tracknav info levels/loop.yaml
  tracknav --shortcuts route levels/loop.yaml 2 4
  tracknav closest levels/loop.yaml 1000 10 0`)
}

// strayFlags returns the long flags given after the command, which the
// flag package leaves as plain arguments.
func strayFlags(args []string) []string {
	var stray []string
	for _, a := range args {
		if strings.HasPrefix(a, "--") {
			stray = append(stray, a)
		}
	}
	return stray
}

// splitLevel takes the level path from the first argument when it names a
// YAML file, otherwise from the config.
func splitLevel(cfg *config.Config, args []string) (string, []string) {
	if len(args) > 0 {
		ext := strings.ToLower(filepath.Ext(args[0]))
		if ext == ".yaml" || ext == ".yml" {
			return args[0], args[1:]
		}
	}
	return cfg.Level.Path, args
}

func loadTrack(cfg *config.Config, path string) *track.Track {
	if path == "" {
		fmt.Fprintln(os.Stderr, "Error: no level given")
		os.Exit(1)
	}

	t, err := track.Load(path, track.OptionsFromConfig(cfg, logger.Named("tracknav")))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return t
}

func logEngineStats(t *track.Track) {
	s := t.Engine.Stats()
	logger.Debug("search engine",
		zap.Int("searches", s.Searches),
		zap.Int("open_base", s.Base.Open),
		zap.Int("closed_base", s.Base.Closed),
		zap.Int("node_base", s.Base.Nodes))
}

package config

import "flag"

var (
	flagConfig    = flag.String("config", "", "Path to config file")
	flagDebug     = flag.Bool("debug", false, "Enable debug logging")
	flagLogFile   = flag.String("log-file", "", "Write logs to this file as well")
	flagLevel     = flag.String("level", "", "Level description file")
	flagShortcuts = flag.Bool("shortcuts", false, "Allow shortcut waypoints in route queries")
	flagReverse   = flag.Bool("reverse", false, "Search against the direction of travel")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// Args returns the non-flag command-line arguments.
func Args() []string {
	return flag.Args()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// Reverse reports whether --reverse was given.
func Reverse() bool {
	return *flagReverse
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagLogFile != "" {
		cfg.Logging.LogFile = *flagLogFile
	}
	if *flagLevel != "" {
		cfg.Level.Path = *flagLevel
	}
	if *flagShortcuts {
		cfg.Navigation.Shortcuts = true
	}
}

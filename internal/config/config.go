// Package config handles navigation tool configuration loading and management.
package config

// Config holds all settings.
type Config struct {
	Logging    LoggingConfig    `yaml:"logging"`
	Navigation NavigationConfig `yaml:"navigation"`
	Complexity ComplexityConfig `yaml:"complexity"`
	Level      LevelConfig      `yaml:"level"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// NavigationConfig holds search engine and query settings.
type NavigationConfig struct {
	OpenSetBase   int     `yaml:"open_set_base"`   // initial open set capacity
	ClosedSetBase int     `yaml:"closed_set_base"` // initial closed set capacity
	NodeBase      int     `yaml:"node_base"`       // initial node-state capacity
	Shortcuts     bool    `yaml:"shortcuts"`       // default shortcut policy for CLI queries
	OnLineEpsilon float64 `yaml:"on_line_epsilon"` // max distance for a spawn waypoint to count as on a line
}

// ComplexityConfig holds the track complexity scoring constants.
type ComplexityConfig struct {
	Baseline            int     `yaml:"baseline"`
	BaseRadius          float64 `yaml:"base_radius"`
	MinimumTurn         float64 `yaml:"minimum_turn"` // degrees
	MinimumDrop         float64 `yaml:"minimum_drop"` // degrees
	DropMultiplier      float64 `yaml:"drop_multiplier"`
	StraightDivisor     float64 `yaml:"straight_divisor"`
	WallSearchRadius    float64 `yaml:"wall_search_radius"`
	WallProbeOffset     float64 `yaml:"wall_probe_offset"`
	WallWeight          float64 `yaml:"wall_weight"`
	SneakerPanelMargin  float64 `yaml:"sneaker_panel_margin"`
	SneakerPanelPenalty int     `yaml:"sneaker_panel_penalty"`
}

// LevelConfig holds the default level to operate on.
type LevelConfig struct {
	Path string `yaml:"path"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
		Navigation: NavigationConfig{
			OpenSetBase:   16,
			ClosedSetBase: 16,
			NodeBase:      32,
			Shortcuts:     false,
			OnLineEpsilon: 1,
		},
		Complexity: DefaultComplexity(),
	}
}

// DefaultComplexity returns the stock complexity scoring constants.
func DefaultComplexity() ComplexityConfig {
	return ComplexityConfig{
		Baseline:            -1250,
		BaseRadius:          384,
		MinimumTurn:         10,
		MinimumDrop:         30,
		DropMultiplier:      8,
		StraightDivisor:     4,
		WallSearchRadius:    768,
		WallProbeOffset:     128,
		WallWeight:          0.5,
		SneakerPanelMargin:  64,
		SneakerPanelPenalty: 250,
	}
}

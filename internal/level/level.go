// Package level reads and writes YAML level descriptions: waypoint
// placements, their anchor and riser helpers, and the world geometry the
// navigation code queries.
package level

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Level format errors.
var (
	ErrNoWaypoints     = errors.New("level has no waypoints")
	ErrDuplicateID     = errors.New("duplicate waypoint id")
	ErrUnknownWaypoint = errors.New("unknown waypoint")
	ErrBadRiserMode    = errors.New("riser mode must be floor or ceiling")
	ErrBadPolygon      = errors.New("sector polygon needs at least 3 points")
	ErrUnknownFeature  = errors.New("unknown feature")
	ErrNegativeSize    = errors.New("negative size")
)

// Vec3 is a position in level units, written as [x, y, z].
type Vec3 [3]float32

// Vec2 is a horizontal position, written as [x, y].
type Vec2 [2]float64

// Level is a complete level description.
type Level struct {
	Name      string     `yaml:"name"`
	Sprint    bool       `yaml:"sprint,omitempty"`
	Waypoints []Waypoint `yaml:"waypoints"`
	Anchors   []Anchor   `yaml:"anchors,omitempty"`
	Risers    []Riser    `yaml:"risers,omitempty"`
	Walls     []Wall     `yaml:"walls,omitempty"`
	Sectors   []Sector   `yaml:"sectors,omitempty"`
	Panels    []Panel    `yaml:"panels,omitempty"`
}

// Waypoint is one waypoint placement. Enabled and Spawnpoint default to true.
type Waypoint struct {
	ID         int     `yaml:"id"`
	Next       []int   `yaml:"next,flow,omitempty"`
	Position   Vec3    `yaml:"position,flow"`
	Radius     float32 `yaml:"radius"`
	Enabled    *bool   `yaml:"enabled,omitempty"`
	Shortcut   bool    `yaml:"shortcut,omitempty"`
	Spawnpoint *bool   `yaml:"spawnpoint,omitempty"`
	FinishLine bool    `yaml:"finish_line,omitempty"`
}

// IsEnabled reports the enabled flag with its default applied.
func (w Waypoint) IsEnabled() bool { return w.Enabled == nil || *w.Enabled }

// IsSpawnpoint reports the spawn point flag with its default applied.
func (w Waypoint) IsSpawnpoint() bool { return w.Spawnpoint == nil || *w.Spawnpoint }

// Anchor sets a waypoint's radius to its distance from Position.
type Anchor struct {
	Waypoint int  `yaml:"waypoint"`
	Position Vec3 `yaml:"position,flow"`
}

// Riser modes.
const (
	RiseToFloor   = "floor"
	RiseToCeiling = "ceiling"
)

// Riser moves a waypoint onto the floor or ceiling below or above it.
type Riser struct {
	Waypoint int     `yaml:"waypoint"`
	Mode     string  `yaml:"mode"`
	Offset   float32 `yaml:"offset,omitempty"`
}

// Wall is a boundary line.
type Wall struct {
	From     Vec2    `yaml:"from,flow"`
	To       Vec2    `yaml:"to,flow"`
	TwoSided bool    `yaml:"two_sided,omitempty"`
	Bottom   float32 `yaml:"bottom,omitempty"`
	Top      float32 `yaml:"top,omitempty"`
}

// Sector is a floor region.
type Sector struct {
	Polygon []Vec2  `yaml:"polygon,flow"`
	Floor   float32 `yaml:"floor"`
	Ceiling float32 `yaml:"ceiling"`
	Deadly  bool    `yaml:"deadly,omitempty"`
	Feature string  `yaml:"feature,omitempty"`
}

// Panel is a sneaker panel placed as a point with a half-size.
type Panel struct {
	Position Vec2    `yaml:"position,flow"`
	Size     float64 `yaml:"size"`
}

// Parse decodes a level description. It does not validate it.
func Parse(data []byte) (*Level, error) {
	var l Level
	if err := yaml.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("parsing level: %w", err)
	}
	return &l, nil
}

// Load reads and parses a level file.
func Load(path string) (*Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading level file: %w", err)
	}
	l, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return l, nil
}

// Marshal encodes the level as YAML.
func (l *Level) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("marshaling level: %w", err)
	}
	return data, nil
}

// Save writes the level to path, including any anchor or riser adjustments.
func (l *Level) Save(path string) error {
	data, err := l.Marshal()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing level file: %w", err)
	}
	return nil
}

// FindWaypoint returns the placement with the given id.
func (l *Level) FindWaypoint(id int) *Waypoint {
	for i := range l.Waypoints {
		if l.Waypoints[i].ID == id {
			return &l.Waypoints[i]
		}
	}
	return nil
}

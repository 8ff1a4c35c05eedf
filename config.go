package territory

import (
	"fmt"
	"io/ioutil"

	"github.com/go-yaml/yaml"
	"github.com/golang/geo/r3"
	"github.com/golang/geo/s1"
	"github.com/mitchellh/go-homedir"
)

// Config includes settings for building a tile graph & editing territories
type Config struct {
	// decimal places boundary vertices are rounded to before matching
	VertexPrecision int `yaml:"vertex_precision"`

	// tiles whose center is within this many degrees of a pole are excluded,
	// 0 excludes none
	PolarExclusionDegrees float64 `yaml:"polar_exclusion_degrees"`

	// the sphere's "up" axis, poles lie along it
	WorldUp []float64 `yaml:"world_up"`

	// texture width / height used when no preview image says otherwise
	TextureAspect float64 `yaml:"texture_aspect"`

	// sqlite file holding saved clusters
	Database string `yaml:"database"`

	// tier label -> "#rrggbb"
	TierColors   map[string]string `yaml:"tier_colors"`
	DefaultColor string            `yaml:"default_color"`
}

// DefaultConfig returns a config with default settings.
func DefaultConfig() *Config {
	return &Config{
		VertexPrecision:       5,
		PolarExclusionDegrees: 10,
		WorldUp:               []float64{0, 1, 0},
		TextureAspect:         1,
		Database:              "~/.territory/clusters.sqlite",
		TierColors:            map[string]string{},
		DefaultColor:          "#4a5a6a",
	}
}

// LoadConfig reads a YAML config from disk. Unset fields keep their defaults,
// invalid ones are reset to them.
func LoadConfig(fname string) (*Config, error) {
	path, err := homedir.Expand(fname)
	if err != nil {
		return nil, err
	}

	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg.withDefaults(), nil
}

// withDefaults resets invalid fields from DefaultConfig. A polar exclusion
// of 0 is valid & turns the polar zones off.
func (c *Config) withDefaults() *Config {
	def := DefaultConfig()
	if c.VertexPrecision <= 0 {
		c.VertexPrecision = def.VertexPrecision
	}
	if c.PolarExclusionDegrees < 0 {
		c.PolarExclusionDegrees = def.PolarExclusionDegrees
	}
	if len(c.WorldUp) != 3 || toVector(c.WorldUp).Norm() == 0 {
		c.WorldUp = def.WorldUp
	}
	if c.TextureAspect <= 0 {
		c.TextureAspect = def.TextureAspect
	}
	if c.Database == "" {
		c.Database = def.Database
	}
	if c.TierColors == nil {
		c.TierColors = def.TierColors
	}
	if c.DefaultColor == "" {
		c.DefaultColor = def.DefaultColor
	}
	return c
}

// Up returns WorldUp as a unit vector.
func (c *Config) Up() r3.Vector {
	return toVector(c.WorldUp).Normalize()
}

// PolarExclusion returns the polar threshold as an angle.
func (c *Config) PolarExclusion() s1.Angle {
	return s1.Angle(c.PolarExclusionDegrees) * s1.Degree
}

// DatabasePath returns Database with any leading ~ expanded.
func (c *Config) DatabasePath() (string, error) {
	return homedir.Expand(c.Database)
}

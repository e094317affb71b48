package config

import (
	"errors"
	"fmt"

	"github.com/OCharnyshevich/voxelmesh/pkg/world/gen"
)

// Generator types.
const (
	GeneratorDefault = "default"
	GeneratorFlat    = "flat"
)

// Config holds the generator configuration.
type Config struct {
	Radius      int    `json:"radius" yaml:"radius"` // chunks span -radius..+radius on x and z
	Seed        int64  `json:"seed" yaml:"seed"`
	Noise       string `json:"noise" yaml:"noise"`         // "opensimplex" or "perlin"
	Generator   string `json:"generator" yaml:"generator"` // "default" or "flat"
	Workers     int    `json:"workers" yaml:"workers"`     // 0 = GOMAXPROCS
	Ores        bool   `json:"ores" yaml:"ores"`
	Worms       bool   `json:"worms" yaml:"worms"`
	Output      string `json:"output" yaml:"output"`
	MaterialLib bool   `json:"material_lib" yaml:"material_lib"`

	Terrain gen.TerrainConfig `json:"terrain" yaml:"terrain"`
	Ore     gen.OreConfig     `json:"ore" yaml:"ore"`
	Worm    gen.WormConfig    `json:"worm" yaml:"worm"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Radius:    2,
		Seed:      1,
		Noise:     gen.BackendOpenSimplex,
		Generator: GeneratorDefault,
		Ores:      true,
		Worms:     true,
		Output:    "world.obj",
		Terrain:   gen.DefaultTerrainConfig(),
		Ore:       gen.DefaultOreConfig(),
		Worm:      gen.DefaultWormConfig(),
	}
}

// Validate reports every configuration error found, joined.
func (c *Config) Validate() error {
	var errs []error
	if c.Radius < 0 {
		errs = append(errs, fmt.Errorf("radius must not be negative, got %d", c.Radius))
	}
	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers must not be negative, got %d", c.Workers))
	}
	switch c.Noise {
	case gen.BackendOpenSimplex, gen.BackendPerlin:
	default:
		errs = append(errs, fmt.Errorf("%w: %q", gen.ErrUnknownBackend, c.Noise))
	}
	switch c.Generator {
	case GeneratorDefault, GeneratorFlat:
	default:
		errs = append(errs, fmt.Errorf("unknown generator %q", c.Generator))
	}
	if c.Output == "" {
		errs = append(errs, errors.New("output path required"))
	}
	if err := c.Terrain.Validate(); err != nil {
		errs = append(errs, err)
	}
	if c.Ores {
		if err := c.Ore.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	if c.Worms {
		if err := c.Worm.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Merge applies file-loaded config values into cfg, but only for fields
// that were NOT explicitly set via CLI flags. explicitFlags contains the
// flag names that were explicitly provided on the command line. Tuning
// sections have no flags and always come from the file.
func Merge(cfg *Config, fromFile *Config, explicitFlags map[string]bool) {
	if !explicitFlags["radius"] {
		cfg.Radius = fromFile.Radius
	}
	if !explicitFlags["seed"] {
		cfg.Seed = fromFile.Seed
	}
	if !explicitFlags["noise"] {
		cfg.Noise = fromFile.Noise
	}
	if !explicitFlags["generator"] {
		cfg.Generator = fromFile.Generator
	}
	if !explicitFlags["workers"] {
		cfg.Workers = fromFile.Workers
	}
	if !explicitFlags["ores"] {
		cfg.Ores = fromFile.Ores
	}
	if !explicitFlags["worms"] {
		cfg.Worms = fromFile.Worms
	}
	if !explicitFlags["o"] {
		cfg.Output = fromFile.Output
	}
	if !explicitFlags["mtl"] {
		cfg.MaterialLib = fromFile.MaterialLib
	}
	cfg.Terrain = fromFile.Terrain
	cfg.Ore = fromFile.Ore
	cfg.Worm = fromFile.Worm
}

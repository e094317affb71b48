package config

import (
	"errors"
	"testing"

	"github.com/OCharnyshevich/voxelmesh/pkg/world/gen"
)

func TestDefaultConfigValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestValidateReportsAllErrors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Radius = -1
	cfg.Noise = "value"
	cfg.Terrain.Octaves = nil

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !errors.Is(err, gen.ErrNoOctaves) {
		t.Errorf("err = %v, want ErrNoOctaves in chain", err)
	}
	if !errors.Is(err, gen.ErrUnknownBackend) {
		t.Errorf("err = %v, want ErrUnknownBackend in chain", err)
	}
}

func TestValidateSkipsDisabledPasses(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Ores = false
	cfg.Ore.Window = 0
	cfg.Worms = false
	cfg.Worm.Segments = 0
	if err := cfg.Validate(); err != nil {
		t.Errorf("disabled passes should not be validated: %v", err)
	}
}

func TestMergeExplicitFlagsWin(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Radius = 7
	cfg.Seed = 99

	fromFile := DefaultConfig()
	fromFile.Radius = 3
	fromFile.Seed = 5
	fromFile.Noise = gen.BackendPerlin
	fromFile.Terrain.HeightFactor = 40

	Merge(cfg, fromFile, map[string]bool{"radius": true})

	if cfg.Radius != 7 {
		t.Errorf("Radius = %d, want explicit 7", cfg.Radius)
	}
	if cfg.Seed != 5 {
		t.Errorf("Seed = %d, want file value 5", cfg.Seed)
	}
	if cfg.Noise != gen.BackendPerlin {
		t.Errorf("Noise = %q, want perlin", cfg.Noise)
	}
	if cfg.Terrain.HeightFactor != 40 {
		t.Errorf("Terrain.HeightFactor = %g, want 40", cfg.Terrain.HeightFactor)
	}
}

package gen

import (
	"errors"
	"fmt"

	perlin "github.com/aquilax/go-perlin"
	opensimplex "github.com/ojrac/opensimplex-go"
)

// Noise backends accepted by NewSource.
const (
	BackendOpenSimplex = "opensimplex"
	BackendPerlin      = "perlin"
)

// ErrUnknownBackend is returned by NewSource for an unsupported backend name.
var ErrUnknownBackend = errors.New("unknown noise backend")

// Source is a seeded continuous noise field. Both functions return values in
// [-1, 1] and depend only on the seed and their inputs.
type Source interface {
	Noise2(x, z float64) float64
	Noise3(x, y, z float64) float64
}

// NewSource creates the named noise backend for seed.
func NewSource(backend string, seed int64) (Source, error) {
	switch backend {
	case BackendOpenSimplex, "":
		return &simplexSource{noise: opensimplex.New(seed)}, nil
	case BackendPerlin:
		return &perlinSource{noise: perlin.NewPerlin(2, 2, 3, seed)}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}

type simplexSource struct {
	noise opensimplex.Noise
}

func (s *simplexSource) Noise2(x, z float64) float64 {
	return clampUnit(s.noise.Eval2(x, z))
}

func (s *simplexSource) Noise3(x, y, z float64) float64 {
	return clampUnit(s.noise.Eval3(x, y, z))
}

// perlinSource wraps go-perlin, whose octave sum can slightly overshoot [-1, 1].
type perlinSource struct {
	noise *perlin.Perlin
}

func (s *perlinSource) Noise2(x, z float64) float64 {
	return clampUnit(s.noise.Noise2D(x, z))
}

func (s *perlinSource) Noise3(x, y, z float64) float64 {
	return clampUnit(s.noise.Noise3D(x, y, z))
}

// Remap maps a noise value from [-1, 1] to [0, 1].
func Remap(v float64) float64 {
	return (v + 1) / 2
}

func clampUnit(v float64) float64 {
	switch {
	case v < -1:
		return -1
	case v > 1:
		return 1
	default:
		return v
	}
}

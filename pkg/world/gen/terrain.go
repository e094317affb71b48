package gen

import (
	"errors"
	"fmt"
	"math"
)

const (
	bedrockLayers = 5
	dirtDepth     = 9
)

// bedrockThresholds[y] is the noise value a cell in layer y must exceed to
// become bedrock. Layer 0 always passes.
var bedrockThresholds = [bedrockLayers]float64{-2, -0.5, 0, 0.35, 0.7}

var (
	ErrNoOctaves = errors.New("terrain: no octaves configured")
	ErrBadOctave = errors.New("terrain: octave must be positive")
)

// TerrainConfig tunes the height map and column layering.
type TerrainConfig struct {
	Octaves        []int   `json:"octaves" yaml:"octaves"`
	Scale          float64 `json:"scale" yaml:"scale"`                   // blocks per unit of the lowest octave
	Redistribution float64 `json:"redistribution" yaml:"redistribution"` // exponent applied to the [0,1] height
	BaseHeight     int     `json:"base_height" yaml:"base_height"`
	HeightFactor   float64 `json:"height_factor" yaml:"height_factor"`
	SeaLevel       float64 `json:"sea_level" yaml:"sea_level"` // fraction of HeightFactor below which columns are capped with grass
}

// DefaultTerrainConfig returns the stock terrain shape.
func DefaultTerrainConfig() TerrainConfig {
	return TerrainConfig{
		Octaves:        []int{3, 7, 12},
		Scale:          128,
		Redistribution: 0.8,
		BaseHeight:     48,
		HeightFactor:   80,
		SeaLevel:       0.3,
	}
}

// Validate reports configuration errors that would break generation.
func (c TerrainConfig) Validate() error {
	if len(c.Octaves) == 0 {
		return ErrNoOctaves
	}
	for _, o := range c.Octaves {
		if o <= 0 {
			return fmt.Errorf("%w: got %d", ErrBadOctave, o)
		}
	}
	if c.Scale <= 0 {
		return fmt.Errorf("terrain: scale must be positive, got %g", c.Scale)
	}
	if c.Redistribution <= 0 {
		return fmt.Errorf("terrain: redistribution must be positive, got %g", c.Redistribution)
	}
	if c.BaseHeight < 0 || c.BaseHeight >= ChunkHeight {
		return fmt.Errorf("terrain: base height %d out of range [0,%d)", c.BaseHeight, ChunkHeight)
	}
	return nil
}

// TerrainGenerator builds the base volume of a chunk: a noisy bedrock floor
// and height-mapped stone, dirt and grass or water columns.
type TerrainGenerator struct {
	noise     Source
	cfg       TerrainConfig
	weightSum float64
}

// NewTerrainGenerator validates cfg and returns a generator sampling noise.
func NewTerrainGenerator(noise Source, cfg TerrainConfig) (*TerrainGenerator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	var sum float64
	for _, o := range cfg.Octaves {
		sum += 1 / float64(o)
	}
	if sum == 0 {
		return nil, ErrNoOctaves
	}
	return &TerrainGenerator{noise: noise, cfg: cfg, weightSum: sum}, nil
}

func (g *TerrainGenerator) Generate(chunkX, chunkZ int) *Chunk {
	c := &Chunk{}
	xo, zo := ChunkPos{X: chunkX, Z: chunkZ}.Origin()

	g.placeBedrock(c, xo, zo)

	for x := 0; x < ChunkWidth; x++ {
		for z := 0; z < ChunkWidth; z++ {
			height, v := g.column(xo+x, zo+z)
			g.fillColumn(c, x, z, height, v >= g.cfg.SeaLevel)
		}
	}
	return c
}

func (g *TerrainGenerator) HeightAt(blockX, blockZ int) int {
	h, _ := g.column(blockX, blockZ)
	return h
}

// placeBedrock fills the bottom layers where the 3D noise passes each
// layer's threshold, giving a ragged bedrock ceiling.
func (g *TerrainGenerator) placeBedrock(c *Chunk, xo, zo int) {
	for y := 0; y < bedrockLayers; y++ {
		for z := 0; z < ChunkWidth; z++ {
			for x := 0; x < ChunkWidth; x++ {
				n := g.noise.Noise3((float64(xo+x)+0.5)/4, float64(y), (float64(zo+z)+0.5)/4)
				if n > bedrockThresholds[y] {
					c.SetBlock(x, y, z, BlockBedrock)
				}
			}
		}
	}
}

// column returns the number of filled cells in the column at world (bx, bz)
// and the redistributed height fraction it was derived from.
func (g *TerrainGenerator) column(bx, bz int) (int, float64) {
	nx := float64(bx) / g.cfg.Scale
	nz := float64(bz) / g.cfg.Scale

	var e float64
	for _, o := range g.cfg.Octaves {
		f := float64(o)
		e += g.noise.Noise2(f*nx, f*nz) / f
	}
	v := math.Pow(Remap(e/g.weightSum), g.cfg.Redistribution)

	h := g.cfg.BaseHeight + int(v*g.cfg.HeightFactor)
	return min(max(h, 1), ChunkHeight-1), v
}

// fillColumn lays stone, then dirtDepth dirt, then a grass or water cap,
// leaving bedrock cells in place.
func (g *TerrainGenerator) fillColumn(c *Chunk, x, z, height int, water bool) {
	top := height - 1
	for y := 0; y < height; y++ {
		if c.GetBlock(x, y, z) == BlockBedrock {
			continue
		}
		switch {
		case y == top && water:
			c.SetBlock(x, y, z, BlockWater)
		case y == top:
			c.SetBlock(x, y, z, BlockGrass)
		case y >= top-dirtDepth:
			c.SetBlock(x, y, z, BlockDirt)
		default:
			c.SetBlock(x, y, z, BlockStone)
		}
	}
}

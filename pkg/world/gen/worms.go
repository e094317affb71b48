package gen

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// WormConfig tunes WormCarver.
type WormConfig struct {
	SeedMinY      int          `json:"seed_min_y" yaml:"seed_min_y"`
	SeedMaxY      int          `json:"seed_max_y" yaml:"seed_max_y"` // exclusive
	SeedThreshold float64      `json:"seed_threshold" yaml:"seed_threshold"`
	SeedSpacing   int          `json:"seed_spacing" yaml:"seed_spacing"`   // min Chebyshev distance between seeds
	MaxPerChunk   int          `json:"max_per_chunk" yaml:"max_per_chunk"` // 0 = uncapped
	Segments      int          `json:"segments" yaml:"segments"`
	SubSteps      int          `json:"sub_steps" yaml:"sub_steps"`
	Radius        int          `json:"radius" yaml:"radius"`
	Carvable      []BlockState `json:"carvable" yaml:"carvable"`
}

// DefaultWormConfig returns the stock tunnel shape.
func DefaultWormConfig() WormConfig {
	return WormConfig{
		SeedMinY:      10,
		SeedMaxY:      60,
		SeedThreshold: 0.875,
		SeedSpacing:   8,
		MaxPerChunk:   2,
		Segments:      8,
		SubSteps:      4,
		Radius:        2,
		Carvable:      []BlockState{BlockStone, BlockDirt},
	}
}

// Validate checks the worm parameters.
func (c WormConfig) Validate() error {
	if c.SeedMinY < 0 || c.SeedMaxY > ChunkHeight || c.SeedMinY >= c.SeedMaxY {
		return fmt.Errorf("worms: seed band [%d,%d) invalid", c.SeedMinY, c.SeedMaxY)
	}
	if c.Segments < 1 || c.SubSteps < 1 {
		return fmt.Errorf("worms: need at least one segment and sub-step")
	}
	if c.Radius < 0 || c.SeedSpacing < 0 || c.MaxPerChunk < 0 {
		return fmt.Errorf("worms: radius, spacing and cap must not be negative")
	}
	for _, b := range c.Carvable {
		if b == BlockAir || b == BlockBedrock {
			return fmt.Errorf("worms: %s cannot be carvable", b)
		}
	}
	return nil
}

// Seed is a worm start position in world block coordinates.
type Seed struct{ X, Y, Z int }

// WormCarver bores tunnels by walking noise-steered paths and clearing a
// sphere of carvable blocks at every step.
type WormCarver struct {
	noise    Source
	cfg      WormConfig
	carvable map[BlockState]bool
	sphere   [][3]int
}

// NewWormCarver creates a WormCarver sampling noise.
func NewWormCarver(noise Source, cfg WormConfig) *WormCarver {
	carvable := make(map[BlockState]bool, len(cfg.Carvable))
	for _, b := range cfg.Carvable {
		if b != BlockAir && b != BlockBedrock {
			carvable[b] = true
		}
	}
	return &WormCarver{
		noise:    noise,
		cfg:      cfg,
		carvable: carvable,
		sphere:   sphereOffsets(cfg.Radius),
	}
}

// sphereOffsets lists the cell offsets within Euclidean distance r of the origin.
func sphereOffsets(r int) [][3]int {
	var out [][3]int
	for dy := -r; dy <= r; dy++ {
		for dz := -r; dz <= r; dz++ {
			for dx := -r; dx <= r; dx++ {
				if dx*dx+dy*dy+dz*dz <= r*r {
					out = append(out, [3]int{dx, dy, dz})
				}
			}
		}
	}
	return out
}

// Carve seeds and walks every worm over s. It returns the number of worms
// and the number of cells turned to air.
func (wc *WormCarver) Carve(s Store) (worms, carved int) {
	seeds := wc.Seeds(s)
	for _, seed := range seeds {
		carved += wc.walk(s, seed)
	}
	return len(seeds), carved
}

// Seeds returns the worm start positions in deterministic chunk and raster order.
func (wc *WormCarver) Seeds(s Store) []Seed {
	positions := s.Positions()
	limit := -1
	if wc.cfg.MaxPerChunk > 0 {
		limit = wc.cfg.MaxPerChunk * len(positions)
	}

	var seeds []Seed
	for _, pos := range positions {
		xo, zo := pos.Origin()
		for y := wc.cfg.SeedMinY; y < wc.cfg.SeedMaxY; y++ {
			for z := zo; z < zo+ChunkWidth; z++ {
				for x := xo; x < xo+ChunkWidth; x++ {
					if limit >= 0 && len(seeds) >= limit {
						return seeds
					}
					v := Remap(wc.noise.Noise3(float64(x)/16, float64(y)/16, float64(z)/16))
					if v <= wc.cfg.SeedThreshold {
						continue
					}
					cand := Seed{x, y, z}
					if wc.crowded(seeds, cand) {
						continue
					}
					seeds = append(seeds, cand)
				}
			}
		}
	}
	return seeds
}

func (wc *WormCarver) crowded(seeds []Seed, c Seed) bool {
	d := wc.cfg.SeedSpacing
	for _, s := range seeds {
		if abs(s.X-c.X) < d && abs(s.Y-c.Y) < d && abs(s.Z-c.Z) < d {
			return true
		}
	}
	return false
}

// walk carves a sphere at seed, then advances the worm, steering once per
// segment and carving after every sub-step.
func (wc *WormCarver) walk(s Store, seed Seed) int {
	pos := mgl64.Vec3{float64(seed.X), float64(seed.Y), float64(seed.Z)}
	carved := wc.carveSphere(s, pos)
	for i, n := 0, wc.cfg.Segments; i < n; i++ {
		dir := wc.direction(pos)
		for j, m := 0, wc.cfg.SubSteps; j < m; j++ {
			pos = pos.Add(dir)
			carved += wc.carveSphere(s, pos)
		}
	}
	return carved
}

// direction derives the unit step for the next segment: pitch from the noise
// at the position, yaw from the noise at the squared position.
func (wc *WormCarver) direction(pos mgl64.Vec3) mgl64.Vec3 {
	p := pos.Mul(1.0 / 32)
	sq := mgl64.Vec3{pos[0] * pos[0], pos[1] * pos[1], pos[2] * pos[2]}.Mul(1.0 / 1024)

	pitch := -math.Pi/4 + Remap(wc.noise.Noise3(p[0], p[1], p[2]))*math.Pi/2
	yaw := Remap(wc.noise.Noise3(sq[0], sq[1], sq[2])) * 2 * math.Pi

	cp := math.Cos(pitch)
	return mgl64.Vec3{cp * math.Cos(yaw), math.Sin(pitch), cp * math.Sin(yaw)}
}

// carveSphere clears carvable cells within Radius of the rounded position.
func (wc *WormCarver) carveSphere(s Store, pos mgl64.Vec3) int {
	cx := int(math.Round(pos[0]))
	cy := int(math.Round(pos[1]))
	cz := int(math.Round(pos[2]))

	n := 0
	for _, o := range wc.sphere {
		x, y, z := cx+o[0], cy+o[1], cz+o[2]
		b, ok := s.Block(x, y, z)
		if !ok || !wc.carvable[b] {
			continue
		}
		if s.SetBlock(x, y, z, BlockAir) {
			n++
		}
	}
	return n
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

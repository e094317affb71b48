package gen

import "fmt"

// OreKind configures one ore: the band of y it lives in and how many vein
// attempts each chunk makes.
type OreKind struct {
	Block BlockState `json:"block" yaml:"block"`
	MinY  int        `json:"min_y" yaml:"min_y"`
	MaxY  int        `json:"max_y" yaml:"max_y"` // exclusive
	Veins int        `json:"veins" yaml:"veins"`
}

// OreConfig tunes OreGenerator.
type OreConfig struct {
	Kinds           []OreKind `json:"kinds" yaml:"kinds"`
	GateThreshold   float64   `json:"gate_threshold" yaml:"gate_threshold"`     // attempt runs only below this
	PocketThreshold float64   `json:"pocket_threshold" yaml:"pocket_threshold"` // local maximum must exceed this
	CellThreshold   float64   `json:"cell_threshold" yaml:"cell_threshold"`     // per-cell pocket gate
	Window          int       `json:"window" yaml:"window"`                     // x/z size of the maximum search
	PocketRadius    int       `json:"pocket_radius" yaml:"pocket_radius"`
}

// DefaultOreConfig returns ore bands that sit below the lowest possible stone
// top of DefaultTerrainConfig.
func DefaultOreConfig() OreConfig {
	return OreConfig{
		Kinds: []OreKind{
			{BlockDiamondOre, 5, 10, 1},
			{BlockRedstoneOre, 10, 14, 2},
			{BlockLapisOre, 14, 18, 1},
			{BlockGoldOre, 18, 22, 2},
			{BlockEmeraldOre, 22, 25, 1},
			{BlockIronOre, 25, 31, 3},
			{BlockCoalOre, 31, 38, 4},
		},
		GateThreshold:   0.6,
		PocketThreshold: 0.85,
		CellThreshold:   0.45,
		Window:          8,
		PocketRadius:    1,
	}
}

// Validate checks that bands are well formed and do not overlap.
func (c OreConfig) Validate() error {
	if c.Window < 1 || c.Window > ChunkWidth {
		return fmt.Errorf("ores: window %d out of range [1,%d]", c.Window, ChunkWidth)
	}
	if c.PocketRadius < 0 {
		return fmt.Errorf("ores: negative pocket radius %d", c.PocketRadius)
	}
	for i, k := range c.Kinds {
		if !k.Block.IsOre() {
			return fmt.Errorf("ores: %s is not an ore", k.Block)
		}
		if k.MinY < 0 || k.MaxY > ChunkHeight || k.MinY >= k.MaxY {
			return fmt.Errorf("ores: %s band [%d,%d) invalid", k.Block, k.MinY, k.MaxY)
		}
		for _, o := range c.Kinds[:i] {
			if k.MinY < o.MaxY && o.MinY < k.MaxY {
				return fmt.Errorf("ores: %s band overlaps %s", k.Block, o.Block)
			}
		}
	}
	return nil
}

// OreGenerator places small irregular ore pockets at local maxima of a 3D
// noise field. It runs over already generated chunks.
type OreGenerator struct {
	noise Source
	cfg   OreConfig
}

// NewOreGenerator creates an OreGenerator sampling noise.
func NewOreGenerator(noise Source, cfg OreConfig) *OreGenerator {
	return &OreGenerator{noise: noise, cfg: cfg}
}

// Place scatters pockets in every chunk of s and returns the number of ore
// blocks written.
func (og *OreGenerator) Place(s Store) int {
	placed := 0
	for _, pos := range s.Positions() {
		for k, ore := range og.cfg.Kinds {
			for i, n := 0, ore.Veins; i < n; i++ {
				placed += og.attempt(s, pos, k, i, ore)
			}
		}
	}
	return placed
}

func (og *OreGenerator) attempt(s Store, pos ChunkPos, k, i int, ore OreKind) int {
	xo, zo := pos.Origin()

	gate := Remap(og.noise.Noise2(
		float64(xo+i*31+k*7)+0.5,
		float64(zo-i*17)+0.5,
	))
	if gate >= og.cfg.GateThreshold {
		return 0
	}

	span := ChunkWidth - og.cfg.Window + 1
	ox, oz := xo+(i*5)%span, zo+(i*3)%span

	best := -1.0
	var bx, by, bz int
	for y := ore.MinY; y < ore.MaxY; y++ {
		for z := oz; z < oz+og.cfg.Window; z++ {
			for x := ox; x < ox+og.cfg.Window; x++ {
				v := Remap(og.noise.Noise3(float64(x)/4+float64(k)*100, float64(y)/4, float64(z)/4))
				if v > best {
					best, bx, by, bz = v, x, y, z
				}
			}
		}
	}
	if best <= og.cfg.PocketThreshold {
		return 0
	}
	return og.pocket(s, bx, by, bz, k, ore)
}

// pocket sets ore cells around (cx, cy, cz) that pass the per-cell gate,
// clipped to the ore's band.
func (og *OreGenerator) pocket(s Store, cx, cy, cz, k int, ore OreKind) int {
	r := og.cfg.PocketRadius
	n := 0
	for y := max(cy-r, ore.MinY); y <= min(cy+r, ore.MaxY-1); y++ {
		for z := cz - r; z <= cz+r; z++ {
			for x := cx - r; x <= cx+r; x++ {
				v := Remap(og.noise.Noise3(float64(x)/2, float64(y)/2+float64(k)*50, float64(z)/2))
				if v <= og.cfg.CellThreshold {
					continue
				}
				if s.SetBlock(x, y, z, ore.Block) {
					n++
				}
			}
		}
	}
	return n
}

package gen

import "cmp"

const (
	ChunkWidth  = 16
	ChunkHeight = 256

	sectionHeight = 16
	sectionCount  = ChunkHeight / sectionHeight
)

// ChunkPos identifies a chunk by its X and Z coordinates.
type ChunkPos struct{ X, Z int }

// Origin returns the world block coordinates of the chunk's (0, 0) column.
func (p ChunkPos) Origin() (x, z int) {
	return p.X * ChunkWidth, p.Z * ChunkWidth
}

// Compare orders positions by X, then Z.
func (p ChunkPos) Compare(o ChunkPos) int {
	if c := cmp.Compare(p.X, o.X); c != 0 {
		return c
	}
	return cmp.Compare(p.Z, o.Z)
}

// ChunkPosOf returns the chunk containing world block column (x, z).
func ChunkPosOf(x, z int) ChunkPos {
	return ChunkPos{X: x >> 4, Z: z >> 4}
}

// Section holds block data for a 16×16×16 vertical slice of a chunk.
// Index = y*256 + z*16 + x.
type Section struct {
	Blocks [4096]BlockState
}

// Chunk is a 256×16×16 block volume indexed [y][z][x].
type Chunk struct {
	Sections [sectionCount]*Section // nil = all-air
}

// Occupancy is the result of a bounds-checked cell lookup.
type Occupancy uint8

const (
	Air Occupancy = iota
	Solid
	OutOfChunk
)

// Generator produces chunk data deterministically from a seed.
type Generator interface {
	Generate(chunkX, chunkZ int) *Chunk
	HeightAt(blockX, blockZ int) int
}

// InChunk reports whether local coordinates fall inside a chunk.
func InChunk(x, y, z int) bool {
	return x >= 0 && x < ChunkWidth && z >= 0 && z < ChunkWidth && y >= 0 && y < ChunkHeight
}

// SetBlock sets a block state at the given local coordinates within the chunk.
// x, z must be in [0,16), y must be in [0,256).
func (c *Chunk) SetBlock(x, y, z int, state BlockState) {
	sec := y >> 4
	if c.Sections[sec] == nil {
		if state == BlockAir {
			return
		}
		c.Sections[sec] = &Section{}
	}
	c.Sections[sec].Blocks[(y&0xF)*256+z*16+x] = state
}

// GetBlock returns the block state at the given local coordinates.
func (c *Chunk) GetBlock(x, y, z int) BlockState {
	sec := y >> 4
	if c.Sections[sec] == nil {
		return BlockAir
	}
	return c.Sections[sec].Blocks[(y&0xF)*256+z*16+x]
}

// Lookup is the bounds-checked form of GetBlock.
func (c *Chunk) Lookup(x, y, z int) (BlockState, Occupancy) {
	if !InChunk(x, y, z) {
		return BlockAir, OutOfChunk
	}
	b := c.GetBlock(x, y, z)
	if b.IsAir() {
		return b, Air
	}
	return b, Solid
}

// Fill sets every cell in layers [y0, y1) to state.
func (c *Chunk) Fill(y0, y1 int, state BlockState) {
	for y := max(y0, 0); y < min(y1, ChunkHeight); y++ {
		for z := 0; z < ChunkWidth; z++ {
			for x := 0; x < ChunkWidth; x++ {
				c.SetBlock(x, y, z, state)
			}
		}
	}
}

// Empty reports whether the chunk holds no solid block.
func (c *Chunk) Empty() bool {
	for _, sec := range c.Sections {
		if sec == nil {
			continue
		}
		for _, b := range sec.Blocks {
			if !b.IsAir() {
				return false
			}
		}
	}
	return true
}

// Count returns how many cells hold state.
func (c *Chunk) Count(state BlockState) int {
	n := 0
	for _, sec := range c.Sections {
		if sec == nil {
			if state == BlockAir {
				n += len(Section{}.Blocks)
			}
			continue
		}
		for _, b := range sec.Blocks {
			if b == state {
				n++
			}
		}
	}
	return n
}

// Store is world-space access to a sparse set of chunks. Positions outside
// any stored chunk read as absent and ignore writes.
type Store interface {
	Positions() []ChunkPos
	Chunk(pos ChunkPos) (*Chunk, bool)
	Block(x, y, z int) (BlockState, bool)
	SetBlock(x, y, z int, state BlockState) bool
}

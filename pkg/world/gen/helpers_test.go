package gen

// constNoise returns fixed values regardless of input.
type constNoise struct {
	v2, v3 float64
}

func (n constNoise) Noise2(_, _ float64) float64    { return n.v2 }
func (n constNoise) Noise3(_, _, _ float64) float64 { return n.v3 }

// mapStore is a minimal Store over a fixed set of chunks.
type mapStore map[ChunkPos]*Chunk

func (s mapStore) Positions() []ChunkPos {
	var out []ChunkPos
	for x := -8; x <= 8; x++ {
		for z := -8; z <= 8; z++ {
			if _, ok := s[ChunkPos{x, z}]; ok {
				out = append(out, ChunkPos{x, z})
			}
		}
	}
	return out
}

func (s mapStore) Chunk(pos ChunkPos) (*Chunk, bool) {
	c, ok := s[pos]
	return c, ok
}

func (s mapStore) Block(x, y, z int) (BlockState, bool) {
	c, ok := s[ChunkPosOf(x, z)]
	if !ok || y < 0 || y >= ChunkHeight {
		return BlockAir, false
	}
	return c.GetBlock(x&0xF, y, z&0xF), true
}

func (s mapStore) SetBlock(x, y, z int, state BlockState) bool {
	c, ok := s[ChunkPosOf(x, z)]
	if !ok || y < 0 || y >= ChunkHeight {
		return false
	}
	c.SetBlock(x&0xF, y, z&0xF, state)
	return true
}

func stoneChunk(top int) *Chunk {
	c := &Chunk{}
	c.Fill(0, top, BlockStone)
	return c
}

package gen

import "testing"

func TestChunkSetGetBlock(t *testing.T) {
	c := &Chunk{}
	c.SetBlock(3, 200, 7, BlockDirt)

	if got := c.GetBlock(3, 200, 7); got != BlockDirt {
		t.Errorf("GetBlock = %s, want dirt", got)
	}
	if got := c.GetBlock(7, 200, 3); got != BlockAir {
		t.Errorf("GetBlock swapped axes = %s, want air", got)
	}
	if c.Sections[200>>4] == nil {
		t.Fatal("section not allocated")
	}
	if c.Sections[200>>4].Blocks[(200&0xF)*256+7*16+3] != BlockDirt {
		t.Error("block not stored at [y][z][x] index")
	}
}

func TestChunkAirDoesNotAllocate(t *testing.T) {
	c := &Chunk{}
	c.SetBlock(0, 100, 0, BlockAir)
	if c.Sections[100>>4] != nil {
		t.Error("setting air allocated a section")
	}
	if !c.Empty() {
		t.Error("chunk should be empty")
	}
}

func TestChunkLookup(t *testing.T) {
	c := &Chunk{}
	c.SetBlock(1, 1, 1, BlockStone)

	tests := []struct {
		x, y, z int
		block   BlockState
		occ     Occupancy
	}{
		{1, 1, 1, BlockStone, Solid},
		{1, 2, 1, BlockAir, Air},
		{-1, 1, 1, BlockAir, OutOfChunk},
		{16, 1, 1, BlockAir, OutOfChunk},
		{1, -1, 1, BlockAir, OutOfChunk},
		{1, 256, 1, BlockAir, OutOfChunk},
		{1, 1, 16, BlockAir, OutOfChunk},
	}
	for _, tt := range tests {
		b, occ := c.Lookup(tt.x, tt.y, tt.z)
		if b != tt.block || occ != tt.occ {
			t.Errorf("Lookup(%d,%d,%d) = (%s,%d), want (%s,%d)", tt.x, tt.y, tt.z, b, occ, tt.block, tt.occ)
		}
	}
}

func TestChunkFillAndCount(t *testing.T) {
	c := &Chunk{}
	c.Fill(5, 10, BlockStone)
	if got := c.Count(BlockStone); got != 5*256 {
		t.Errorf("Count(stone) = %d, want %d", got, 5*256)
	}
	if got := c.Count(BlockAir); got != ChunkHeight*256-5*256 {
		t.Errorf("Count(air) = %d, want %d", got, ChunkHeight*256-5*256)
	}
	c.Fill(-3, 0, BlockDirt) // clipped away
	if c.Count(BlockDirt) != 0 {
		t.Error("Fill below 0 should be clipped")
	}
}

func TestChunkPosOf(t *testing.T) {
	tests := []struct {
		x, z int
		want ChunkPos
	}{
		{0, 0, ChunkPos{0, 0}},
		{15, 15, ChunkPos{0, 0}},
		{16, -1, ChunkPos{1, -1}},
		{-16, -17, ChunkPos{-1, -2}},
	}
	for _, tt := range tests {
		if got := ChunkPosOf(tt.x, tt.z); got != tt.want {
			t.Errorf("ChunkPosOf(%d,%d) = %v, want %v", tt.x, tt.z, got, tt.want)
		}
	}
}

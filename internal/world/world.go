package world

import (
	"context"
	"fmt"
	"runtime"
	"slices"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/OCharnyshevich/voxelmesh/pkg/world/gen"
)

// World is the chunk store: a sparse map from chunk position to chunk
// volume, with world-space block access over it.
type World struct {
	mu        sync.RWMutex
	generator gen.Generator
	chunks    map[gen.ChunkPos]*gen.Chunk
}

var _ gen.Store = (*World)(nil)

// NewWorld creates an empty World whose chunks come from generator.
func NewWorld(generator gen.Generator) *World {
	return &World{
		generator: generator,
		chunks:    make(map[gen.ChunkPos]*gen.Chunk),
	}
}

// GenerateRadius generates every chunk from -radius to +radius on both axes,
// using up to workers goroutines (0 = GOMAXPROCS). Each chunk is published
// only once fully built. It returns the number of chunks in the store.
func (w *World) GenerateRadius(ctx context.Context, radius, workers int) (int, error) {
	if radius < 0 {
		return 0, fmt.Errorf("negative radius %d", radius)
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for cx := -radius; cx <= radius; cx++ {
		for cz := -radius; cz <= radius; cz++ {
			pos := gen.ChunkPos{X: cx, Z: cz}
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				w.Put(pos, w.generator.Generate(pos.X, pos.Z))
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return 0, fmt.Errorf("generate chunks: %w", err)
	}
	return w.Len(), nil
}

// Put publishes a chunk. A chunk already stored at pos is kept.
func (w *World) Put(pos gen.ChunkPos, c *gen.Chunk) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.chunks[pos]; ok {
		return
	}
	w.chunks[pos] = c
}

// Chunk returns the chunk stored at pos.
func (w *World) Chunk(pos gen.ChunkPos) (*gen.Chunk, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	c, ok := w.chunks[pos]
	return c, ok
}

// Len returns the number of stored chunks.
func (w *World) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.chunks)
}

// Positions returns every stored chunk position ordered by X, then Z.
func (w *World) Positions() []gen.ChunkPos {
	w.mu.RLock()
	out := make([]gen.ChunkPos, 0, len(w.chunks))
	for pos := range w.chunks {
		out = append(out, pos)
	}
	w.mu.RUnlock()

	slices.SortFunc(out, gen.ChunkPos.Compare)
	return out
}

// Block returns the block at world coordinates. ok is false when the
// position lies outside every stored chunk or outside [0,256) in y.
func (w *World) Block(x, y, z int) (gen.BlockState, bool) {
	if y < 0 || y >= gen.ChunkHeight {
		return gen.BlockAir, false
	}
	c, ok := w.Chunk(gen.ChunkPosOf(x, z))
	if !ok {
		return gen.BlockAir, false
	}
	return c.GetBlock(x&0xF, y, z&0xF), true
}

// SetBlock writes a block at world coordinates. Writes that land outside
// every stored chunk are dropped and report false.
func (w *World) SetBlock(x, y, z int, state gen.BlockState) bool {
	if y < 0 || y >= gen.ChunkHeight {
		return false
	}
	c, ok := w.Chunk(gen.ChunkPosOf(x, z))
	if !ok {
		return false
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	c.SetBlock(x&0xF, y, z&0xF, state)
	return true
}

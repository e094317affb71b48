// Package mesh turns a chunk store into a deduplicated quad mesh and
// writes it as Wavefront OBJ.
package mesh

import (
	"fmt"

	"github.com/OCharnyshevich/voxelmesh/pkg/world/gen"
)

// Vertex is an integer world-space cube corner.
type Vertex struct{ X, Y, Z int32 }

// Face is a quad over four vertex indices (0-based) carrying the material of
// the cell that emitted it. Two faces are the same face when both the index
// sequence and the material match.
type Face struct {
	V        [4]uint32
	Material gen.BlockState
}

// Group is a run of consecutive faces sharing a material.
type Group struct {
	Material gen.BlockState
	Faces    []Face
}

// Mesh is the builder's output: vertices in registration order and faces
// in emission order.
type Mesh struct {
	Vertices []Vertex
	Faces    []Face
}

// Groups splits the face list into consecutive same-material runs.
func (m *Mesh) Groups() []Group {
	var groups []Group
	for i, f := range m.Faces {
		if len(groups) == 0 || groups[len(groups)-1].Material != f.Material {
			groups = append(groups, Group{Material: f.Material, Faces: m.Faces[i : i+1]})
			continue
		}
		g := &groups[len(groups)-1]
		g.Faces = g.Faces[:len(g.Faces)+1]
	}
	return groups
}

// Materials returns the distinct materials in first-use order.
func (m *Mesh) Materials() []gen.BlockState {
	seen := make(map[gen.BlockState]bool)
	var out []gen.BlockState
	for _, f := range m.Faces {
		if !seen[f.Material] {
			seen[f.Material] = true
			out = append(out, f.Material)
		}
	}
	return out
}

// ChunkSource is the read side of a chunk store.
type ChunkSource interface {
	Positions() []gen.ChunkPos
	Chunk(pos gen.ChunkPos) (*gen.Chunk, bool)
}

// corners are the unit cube corner offsets c1..c8, in registration order.
var corners = [8][3]int32{
	{0, 0, 0},
	{1, 0, 0},
	{0, 1, 0},
	{0, 0, 1},
	{1, 1, 0},
	{0, 1, 1},
	{1, 0, 1},
	{1, 1, 1},
}

// cubeFace is one side of a cube: the corners it spans and the offset of the
// neighbouring cell across it.
type cubeFace struct {
	corners    [4]int
	dx, dy, dz int
}

var cubeFaces = [6]cubeFace{
	{[4]int{0, 1, 6, 3}, 0, -1, 0}, // bottom
	{[4]int{0, 1, 4, 2}, 0, 0, -1}, // north
	{[4]int{3, 6, 7, 5}, 0, 0, 1},  // south
	{[4]int{0, 3, 5, 2}, -1, 0, 0}, // west
	{[4]int{1, 4, 7, 6}, 1, 0, 0},  // east
	{[4]int{2, 4, 7, 5}, 0, 1, 0},  // top
}

// Builder accumulates the vertex registry and the deduplicated face list.
// It is not safe for concurrent use.
type Builder struct {
	index    map[Vertex]uint32
	vertices []Vertex
	seen     map[Face]struct{}
	faces    []Face
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{
		index: make(map[Vertex]uint32),
		seen:  make(map[Face]struct{}),
	}
}

// Build runs both passes over every chunk of src in position order.
// Chunks without a solid cell contribute nothing and are skipped.
func Build(src ChunkSource) *Mesh {
	b := NewBuilder()
	var positions []gen.ChunkPos
	for _, pos := range src.Positions() {
		if c, ok := src.Chunk(pos); ok && !c.Empty() {
			positions = append(positions, pos)
			b.RegisterChunk(pos, c)
		}
	}
	for _, pos := range positions {
		c, _ := src.Chunk(pos)
		b.EmitChunk(pos, c)
	}
	return b.Mesh()
}

// Register returns the index of v, adding it on first sight.
func (b *Builder) Register(v Vertex) uint32 {
	if i, ok := b.index[v]; ok {
		return i
	}
	i := uint32(len(b.vertices))
	b.index[v] = i
	b.vertices = append(b.vertices, v)
	return i
}

// RegisterChunk is pass 1: it registers all eight corners of every
// non-air cell of c.
func (b *Builder) RegisterChunk(pos gen.ChunkPos, c *gen.Chunk) {
	forEachSolid(pos, c, func(_, _, _ int, origin Vertex, _ gen.BlockState) {
		for _, o := range corners {
			b.Register(Vertex{origin.X + o[0], origin.Y + o[1], origin.Z + o[2]})
		}
	})
}

// EmitChunk is pass 2: it adds the visible faces of every non-air cell of c.
// Cells on the chunk's x/z border show every face; elsewhere a face shows
// when the cell across it is air, another material, or outside the chunk.
func (b *Builder) EmitChunk(pos gen.ChunkPos, c *gen.Chunk) {
	forEachSolid(pos, c, func(x, y, z int, origin Vertex, block gen.BlockState) {
		border := x == 0 || x == gen.ChunkWidth-1 || z == 0 || z == gen.ChunkWidth-1
		for _, cf := range cubeFaces {
			if !border {
				nb, occ := c.Lookup(x+cf.dx, y+cf.dy, z+cf.dz)
				if occ == gen.Solid && nb == block {
					continue
				}
			}
			f := Face{Material: block}
			for i, ci := range cf.corners {
				o := corners[ci]
				f.V[i] = b.mustIndex(Vertex{origin.X + o[0], origin.Y + o[1], origin.Z + o[2]})
			}
			b.addFace(f)
		}
	})
}

func (b *Builder) addFace(f Face) {
	if _, ok := b.seen[f]; ok {
		return
	}
	b.seen[f] = struct{}{}
	b.faces = append(b.faces, f)
}

// mustIndex panics when pass 2 references a corner pass 1 never registered.
func (b *Builder) mustIndex(v Vertex) uint32 {
	i, ok := b.index[v]
	if !ok {
		panic(fmt.Sprintf("mesh: face references unregistered vertex %v", v))
	}
	return i
}

// Mesh returns the vertices and faces collected so far.
func (b *Builder) Mesh() *Mesh {
	return &Mesh{Vertices: b.vertices, Faces: b.faces}
}

// forEachSolid visits the non-air cells of c in y, z, x order, passing the
// cell's world-space minimum corner.
func forEachSolid(pos gen.ChunkPos, c *gen.Chunk, fn func(x, y, z int, origin Vertex, block gen.BlockState)) {
	xo, zo := pos.Origin()
	for sec, s := range c.Sections {
		if s == nil {
			continue
		}
		for i, block := range s.Blocks {
			if block.IsAir() {
				continue
			}
			y := sec*16 + i/256
			z := (i / 16) % 16
			x := i % 16
			fn(x, y, z, Vertex{int32(xo + x), int32(y), int32(zo + z)}, block)
		}
	}
}

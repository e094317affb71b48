package gen

// Layer is a horizontal slab [MinY, MaxY) of a single block.
type Layer struct {
	Block      BlockState
	MinY, MaxY int
}

// DefaultFlatLayers is a flat test world: bedrock y=0..4, stone y=5..68,
// dirt y=69..72, grass y=73.
var DefaultFlatLayers = []Layer{
	{BlockBedrock, 0, 5},
	{BlockStone, 5, 69},
	{BlockDirt, 69, 73},
	{BlockGrass, 73, 74},
}

// FlatGenerator fills every chunk with the same stack of layers.
type FlatGenerator struct {
	layers []Layer
}

// NewFlatGenerator creates a FlatGenerator. A nil layer list uses DefaultFlatLayers.
func NewFlatGenerator(layers []Layer) *FlatGenerator {
	if layers == nil {
		layers = DefaultFlatLayers
	}
	return &FlatGenerator{layers: layers}
}

func (g *FlatGenerator) Generate(_, _ int) *Chunk {
	c := &Chunk{}
	for _, l := range g.layers {
		c.Fill(l.MinY, l.MaxY, l.Block)
	}
	return c
}

// HeightAt returns the number of filled cells, so the top solid block is at HeightAt-1.
func (g *FlatGenerator) HeightAt(_, _ int) int {
	top := 0
	for _, l := range g.layers {
		if !l.Block.IsAir() {
			top = max(top, l.MaxY)
		}
	}
	return top
}

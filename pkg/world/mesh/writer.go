package mesh

import (
	"bufio"
	"fmt"
	"io"

	"github.com/OCharnyshevich/voxelmesh/pkg/world/gen"
)

// OBJOptions controls the OBJ header.
type OBJOptions struct {
	// MaterialLib, when set, is written as an mtllib directive.
	MaterialLib string
}

// WriteOBJ writes m as Wavefront OBJ: one "v x y z" line per vertex, then
// each material run as "usemtl <name>" followed by 1-based "f" quads.
func WriteOBJ(w io.Writer, m *Mesh, opts OBJOptions) error {
	bw := bufio.NewWriter(w)

	if opts.MaterialLib != "" {
		fmt.Fprintf(bw, "mtllib %s\n", opts.MaterialLib)
	}
	for _, v := range m.Vertices {
		fmt.Fprintf(bw, "v %d %d %d\n", v.X, v.Y, v.Z)
	}
	for _, g := range m.Groups() {
		fmt.Fprintf(bw, "usemtl %s\n", g.Material)
		for _, f := range g.Faces {
			fmt.Fprintf(bw, "f %d %d %d %d\n", f.V[0]+1, f.V[1]+1, f.V[2]+1, f.V[3]+1)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write obj: %w", err)
	}
	return nil
}

// diffuse is the Kd colour written for each material.
var diffuse = map[gen.BlockState][3]float64{
	gen.BlockBedrock:     {0.33, 0.33, 0.33},
	gen.BlockStone:       {0.50, 0.50, 0.50},
	gen.BlockDirt:        {0.53, 0.38, 0.26},
	gen.BlockGrass:       {0.36, 0.60, 0.24},
	gen.BlockWater:       {0.20, 0.35, 0.80},
	gen.BlockDiamondOre:  {0.40, 0.85, 0.85},
	gen.BlockCoalOre:     {0.15, 0.15, 0.15},
	gen.BlockIronOre:     {0.75, 0.62, 0.52},
	gen.BlockGoldOre:     {0.95, 0.80, 0.20},
	gen.BlockRedstoneOre: {0.75, 0.10, 0.10},
	gen.BlockLapisOre:    {0.15, 0.30, 0.70},
	gen.BlockEmeraldOre:  {0.20, 0.75, 0.35},
}

// WriteMTL writes a material library with one newmtl entry per material.
func WriteMTL(w io.Writer, materials []gen.BlockState) error {
	bw := bufio.NewWriter(w)
	for i, mat := range materials {
		if i > 0 {
			bw.WriteString("\n")
		}
		kd, ok := diffuse[mat]
		if !ok {
			kd = [3]float64{1, 0, 1}
		}
		fmt.Fprintf(bw, "newmtl %s\n", mat)
		fmt.Fprintf(bw, "Kd %.2f %.2f %.2f\n", kd[0], kd[1], kd[2])
		if mat == gen.BlockWater {
			bw.WriteString("d 0.60\n")
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write mtl: %w", err)
	}
	return nil
}

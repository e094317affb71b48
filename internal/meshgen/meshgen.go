// Package meshgen runs the full pipeline: terrain, ores, worms, mesh, file.
package meshgen

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/OCharnyshevich/voxelmesh/internal/config"
	"github.com/OCharnyshevich/voxelmesh/internal/storage"
	"github.com/OCharnyshevich/voxelmesh/internal/world"
	"github.com/OCharnyshevich/voxelmesh/pkg/world/gen"
	"github.com/OCharnyshevich/voxelmesh/pkg/world/mesh"
)

// Stats summarises one run.
type Stats struct {
	Chunks    int
	OreBlocks int
	Worms     int
	Carved    int
	Vertices  int
	Faces     int
	Bytes     int64
}

// Pipeline owns the generators for one run.
type Pipeline struct {
	cfg       *config.Config
	log       *slog.Logger
	generator gen.Generator
	ores      *gen.OreGenerator
	worms     *gen.WormCarver
}

// New validates cfg and builds the noise source and generators. Any error
// here is fatal: nothing has been generated or written yet.
func New(cfg *config.Config, log *slog.Logger) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	noise, err := gen.NewSource(cfg.Noise, cfg.Seed)
	if err != nil {
		return nil, fmt.Errorf("create noise: %w", err)
	}

	var generator gen.Generator
	switch cfg.Generator {
	case config.GeneratorFlat:
		generator = gen.NewFlatGenerator(nil)
	default:
		generator, err = gen.NewTerrainGenerator(noise, cfg.Terrain)
		if err != nil {
			return nil, fmt.Errorf("create terrain generator: %w", err)
		}
	}

	p := &Pipeline{cfg: cfg, log: log, generator: generator}
	if cfg.Ores {
		p.ores = gen.NewOreGenerator(noise, cfg.Ore)
	}
	if cfg.Worms {
		p.worms = gen.NewWormCarver(noise, cfg.Worm)
	}
	return p, nil
}

// Build generates the world and extracts its mesh.
func (p *Pipeline) Build(ctx context.Context) (*mesh.Mesh, Stats, error) {
	var st Stats
	w := world.NewWorld(p.generator)

	start := time.Now()
	n, err := w.GenerateRadius(ctx, p.cfg.Radius, p.cfg.Workers)
	if err != nil {
		return nil, st, err
	}
	st.Chunks = n
	p.log.Info("generated terrain", "chunks", n, "radius", p.cfg.Radius, "took", time.Since(start))

	if p.ores != nil {
		start = time.Now()
		st.OreBlocks = p.ores.Place(w)
		p.log.Info("placed ores", "blocks", st.OreBlocks, "took", time.Since(start))
	}

	if p.worms != nil {
		start = time.Now()
		st.Worms, st.Carved = p.worms.Carve(w)
		p.log.Info("carved worms", "worms", st.Worms, "blocks", st.Carved, "took", time.Since(start))
	}

	start = time.Now()
	m := mesh.Build(w)
	st.Vertices = len(m.Vertices)
	st.Faces = len(m.Faces)
	p.log.Info("built mesh",
		"vertices", humanize.Comma(int64(st.Vertices)),
		"faces", humanize.Comma(int64(st.Faces)),
		"took", time.Since(start),
	)
	return m, st, nil
}

// Export writes m as OBJ to out, referencing lib as its material library
// when lib is non-empty.
func (p *Pipeline) Export(out io.Writer, m *mesh.Mesh, lib string) error {
	return mesh.WriteOBJ(out, m, mesh.OBJOptions{MaterialLib: lib})
}

// Run builds the mesh and writes it, and optionally its material library,
// through store. Each file only appears once fully written, and the mesh is
// removed again if its material library cannot be written.
func (p *Pipeline) Run(ctx context.Context, store *storage.Storage) (Stats, error) {
	m, st, err := p.Build(ctx)
	if err != nil {
		return st, err
	}

	var lib, libRef string
	if p.cfg.MaterialLib {
		lib = materialLibName(p.cfg.Output)
		libRef = filepath.Base(lib)
	}

	start := time.Now()
	st.Bytes, err = store.WriteFile(p.cfg.Output, func(w io.Writer) error {
		return p.Export(w, m, libRef)
	})
	if err != nil {
		return st, fmt.Errorf("write mesh: %w", err)
	}

	if lib != "" {
		if _, err := store.WriteFile(lib, func(w io.Writer) error {
			return mesh.WriteMTL(w, m.Materials())
		}); err != nil {
			if rmErr := store.Remove(p.cfg.Output); rmErr != nil {
				p.log.Warn("failed to remove mesh", "path", store.Path(p.cfg.Output), "error", rmErr)
			}
			return st, fmt.Errorf("write material library: %w", err)
		}
	}
	p.log.Info("wrote mesh", "path", store.Path(p.cfg.Output), "took", time.Since(start))
	return st, nil
}

// materialLibName derives "world.mtl" from "world.obj" or "world.obj.zst".
func materialLibName(output string) string {
	base := strings.TrimSuffix(output, ".zst")
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".mtl"
}

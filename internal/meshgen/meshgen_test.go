package meshgen

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/OCharnyshevich/voxelmesh/internal/config"
	"github.com/OCharnyshevich/voxelmesh/internal/storage"
	"github.com/OCharnyshevich/voxelmesh/pkg/world/gen"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func export(t *testing.T, cfg *config.Config) []byte {
	t.Helper()
	p, err := New(cfg, discardLogger())
	if err != nil {
		t.Fatal(err)
	}
	m, _, err := p.Build(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := p.Export(&buf, m, ""); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestExportDeterministic(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Radius = 1
	cfg.Seed = 2024
	cfg.Workers = 4

	first := export(t, cfg)
	second := export(t, cfg)
	if len(first) == 0 {
		t.Fatal("empty output")
	}
	if !bytes.Equal(first, second) {
		t.Error("two runs with the same seed produced different output")
	}

	cfg.Seed = 2025
	if bytes.Equal(first, export(t, cfg)) {
		t.Error("different seeds produced identical output")
	}
}

func TestBuildFlatWorld(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Radius = 0
	cfg.Generator = config.GeneratorFlat
	cfg.Ores = false
	cfg.Worms = false

	p, err := New(cfg, discardLogger())
	if err != nil {
		t.Fatal(err)
	}
	m, st, err := p.Build(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if st.Chunks != 1 {
		t.Errorf("chunks = %d, want 1", st.Chunks)
	}
	// Every corner of a solid 16×74×16 block is registered.
	if want := 17 * 75 * 17; st.Vertices != want || len(m.Vertices) != want {
		t.Errorf("vertices = %d, want %d", st.Vertices, want)
	}
	mats := m.Materials()
	want := []gen.BlockState{gen.BlockBedrock, gen.BlockStone, gen.BlockDirt, gen.BlockGrass}
	if len(mats) != len(want) {
		t.Fatalf("materials = %v, want %v", mats, want)
	}
	for i := range want {
		if mats[i] != want[i] {
			t.Errorf("material %d = %s, want %s", i, mats[i], want[i])
		}
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Terrain.Octaves = []int{}
	if _, err := New(cfg, discardLogger()); err == nil {
		t.Error("expected error for empty octave list")
	}
}

func TestRunWritesMeshAndMaterials(t *testing.T) {
	dir := t.TempDir()
	store, err := storage.New(dir, discardLogger())
	if err != nil {
		t.Fatal(err)
	}

	cfg := config.DefaultConfig()
	cfg.Radius = 0
	cfg.Generator = config.GeneratorFlat
	cfg.Worms = false
	cfg.MaterialLib = true
	cfg.Output = "flat.obj"

	p, err := New(cfg, discardLogger())
	if err != nil {
		t.Fatal(err)
	}
	st, err := p.Run(context.Background(), store)
	if err != nil {
		t.Fatal(err)
	}

	obj, err := os.ReadFile(filepath.Join(dir, "flat.obj"))
	if err != nil {
		t.Fatal(err)
	}
	if int64(len(obj)) != st.Bytes {
		t.Errorf("reported %d bytes, file has %d", st.Bytes, len(obj))
	}
	if !strings.HasPrefix(string(obj), "mtllib flat.mtl\nv 0 0 0\n") {
		t.Errorf("unexpected header: %q", string(obj[:40]))
	}

	mtl, err := os.ReadFile(filepath.Join(dir, "flat.mtl"))
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"bedrock", "stone", "dirt", "grass"} {
		if !strings.Contains(string(mtl), "newmtl "+name+"\n") {
			t.Errorf("material library missing %s", name)
		}
	}
}

// blockPath makes name a non-empty directory so renaming a file onto it fails.
func blockPath(t *testing.T, dir, name string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Join(dir, name, "keep"), 0o755); err != nil {
		t.Fatal(err)
	}
}

func TestRunFailureLeavesNoOutput(t *testing.T) {
	tests := []struct {
		name    string
		blocked string
	}{
		{"mesh write fails", "flat.obj"},
		{"material library write fails", "flat.mtl"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			store, err := storage.New(dir, discardLogger())
			if err != nil {
				t.Fatal(err)
			}
			blockPath(t, dir, tt.blocked)

			cfg := config.DefaultConfig()
			cfg.Radius = 0
			cfg.Generator = config.GeneratorFlat
			cfg.Ores = false
			cfg.Worms = false
			cfg.MaterialLib = true
			cfg.Output = "flat.obj"

			p, err := New(cfg, discardLogger())
			if err != nil {
				t.Fatal(err)
			}
			if _, err := p.Run(context.Background(), store); err == nil {
				t.Fatal("expected an error")
			}

			entries, err := os.ReadDir(dir)
			if err != nil {
				t.Fatal(err)
			}
			for _, e := range entries {
				if e.Name() != tt.blocked {
					t.Errorf("failed run left %s behind", e.Name())
				}
			}
		})
	}
}

func TestMaterialLibName(t *testing.T) {
	tests := []struct{ in, want string }{
		{"world.obj", "world.mtl"},
		{"out/world.obj.zst", "out/world.mtl"},
		{"mesh", "mesh.mtl"},
	}
	for _, tt := range tests {
		if got := materialLibName(tt.in); got != tt.want {
			t.Errorf("materialLibName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

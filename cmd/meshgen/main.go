package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/OCharnyshevich/voxelmesh/internal/config"
	"github.com/OCharnyshevich/voxelmesh/internal/meshgen"
	"github.com/OCharnyshevich/voxelmesh/internal/storage"
)

func main() {
	cfg := config.DefaultConfig()

	flag.IntVar(&cfg.Radius, "radius", cfg.Radius, "chunks generated from -radius to +radius on x and z")
	flag.Int64Var(&cfg.Seed, "seed", cfg.Seed, "world seed")
	flag.StringVar(&cfg.Noise, "noise", cfg.Noise, "noise backend: opensimplex or perlin")
	flag.StringVar(&cfg.Generator, "generator", cfg.Generator, "terrain generator: default or flat")
	flag.IntVar(&cfg.Workers, "workers", cfg.Workers, "terrain generation goroutines (0 = GOMAXPROCS)")
	flag.BoolVar(&cfg.Ores, "ores", cfg.Ores, "place ore pockets")
	flag.BoolVar(&cfg.Worms, "worms", cfg.Worms, "carve worm tunnels")
	flag.StringVar(&cfg.Output, "o", cfg.Output, "output OBJ path (.zst suffix compresses)")
	flag.BoolVar(&cfg.MaterialLib, "mtl", cfg.MaterialLib, "also write a .mtl material library")
	configSrc := flag.String("config", "", "JSON or YAML config file, local or any go-getter source")
	dir := flag.String("dir", ".", "directory relative output paths resolve against")
	level := flag.String("log-level", "info", "log level: debug, info, warn, error")
	flag.Parse()

	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(*level)); err != nil {
		lvl = slog.LevelInfo
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})).
		With("run", uuid.NewString())

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	store, err := storage.New(*dir, log)
	if err != nil {
		log.Error("open storage", "error", err)
		os.Exit(1)
	}

	if *configSrc != "" {
		explicit := make(map[string]bool)
		flag.Visit(func(f *flag.Flag) { explicit[f.Name] = true })

		fromFile := config.DefaultConfig()
		if err := store.LoadConfig(ctx, *configSrc, fromFile); err != nil {
			log.Error("load config", "error", err)
			os.Exit(1)
		}
		config.Merge(cfg, fromFile, explicit)
	}

	p, err := meshgen.New(cfg, log)
	if err != nil {
		log.Error("setup", "error", err)
		os.Exit(1)
	}

	log.Info("generating",
		"radius", cfg.Radius,
		"seed", cfg.Seed,
		"noise", cfg.Noise,
		"generator", cfg.Generator,
	)

	start := time.Now()
	st, err := p.Run(ctx, store)
	if err != nil {
		log.Error("run failed", "error", err)
		os.Exit(1)
	}
	log.Info("done",
		"chunks", st.Chunks,
		"vertices", st.Vertices,
		"faces", st.Faces,
		"took", time.Since(start),
	)
}

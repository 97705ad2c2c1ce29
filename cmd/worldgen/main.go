// Command worldgen generates a hex planet from a seed, logs a summary and
// optionally archives the result to a SQLite atlas.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"github.com/dustin/go-humanize"

	"github.com/talgya/hex-planet/internal/config"
	"github.com/talgya/hex-planet/internal/generation"
	"github.com/talgya/hex-planet/internal/persistence"
	"github.com/talgya/hex-planet/internal/world"
)

func main() {
	configPath := flag.String("config", "", "YAML config file (defaults built in when empty)")
	seed := flag.Int64("seed", 0, "world seed, overrides the config")
	radius := flag.Int("radius", -1, "chunk radius, overrides the config")
	archive := flag.String("archive", "", "SQLite atlas path, overrides the config")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	if err := run(*configPath, *seed, *radius, *archive); err != nil {
		slog.Error("worldgen failed", "error", err)
		os.Exit(1)
	}
}

func run(configPath string, seed int64, radius int, archive string) error {
	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
		slog.Info("configuration loaded", "path", configPath)
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "seed":
			cfg.World.Seed = seed
		case "radius":
			cfg.World.ChunkRadius = radius
		case "archive":
			cfg.Archive.Path = archive
		}
	})

	gcfg, err := cfg.Generation()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	snap, rep, err := generation.GenerateWithConfig(gcfg)
	if err != nil {
		return err
	}
	logSummary(snap, rep)

	if cfg.Archive.Path == "" {
		return nil
	}
	return archiveSnapshot(cfg.Archive.Path, snap, rep)
}

func logSummary(snap *world.Snapshot, rep *generation.Report) {
	counts := snap.BiomeCounts()
	for _, b := range world.Biomes() {
		if counts[b] == 0 {
			continue
		}
		slog.Info("biome", "type", b, "tiles", humanize.Comma(int64(counts[b])))
	}

	continents := snap.Continents()
	slices.SortFunc(continents, func(a, b world.ContinentView) int {
		return b.Stats().Area - a.Stats().Area
	})
	for i, c := range continents {
		if i == 5 {
			slog.Info("smaller continents omitted", "count", len(continents)-i)
			break
		}
		s := c.Stats()
		slog.Info("continent",
			"id", c.ID(),
			"area", humanize.Comma(int64(s.Area)),
			"mean_elevation", fmt.Sprintf("%.0f", s.MeanElevation),
			"peak", s.MaxElevation,
			"mean_humidity", fmt.Sprintf("%.2f", s.MeanHumidity),
		)
	}

	h := rep.Hydrology
	slog.Info("hydrology",
		"rainfall", humanize.CommafWithDigits(h.Rainfall, 1),
		"ocean_outflow", humanize.CommafWithDigits(h.OceanOutflow, 1),
		"remaining", humanize.CommafWithDigits(h.Remaining, 1),
		"lakes", humanize.Comma(int64(h.Lakes)),
		"river_tiles", humanize.Comma(int64(h.RiverTiles)),
	)
	slog.Info("world summary",
		"seed", snap.Seed(),
		"tiles", humanize.Comma(int64(snap.Len())),
		"continents", rep.Continents,
		"ocean_bodies", rep.OceanBodies,
		"beaches", rep.Beaches,
		"cliffs", rep.Cliffs,
		"elapsed", rep.Total,
	)
}

func archiveSnapshot(path string, snap *world.Snapshot, rep *generation.Report) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create archive dir: %w", err)
		}
	}
	db, err := persistence.Open(path)
	if err != nil {
		return err
	}
	defer db.Close()

	runID, err := db.SaveSnapshot(snap)
	if err != nil {
		return fmt.Errorf("archive snapshot: %w", err)
	}
	report, err := json.Marshal(rep)
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	if err := db.SaveMeta(runID, "report", string(report)); err != nil {
		return fmt.Errorf("archive report: %w", err)
	}

	stat, err := os.Stat(path)
	if err == nil {
		slog.Info("atlas updated", "path", path, "run", runID, "size", humanize.Bytes(uint64(stat.Size())))
	}
	return nil
}

// Command wildgrid runs the grid ecosystem simulation.
package main

import (
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/talgya/wildgrid/internal/api"
	"github.com/talgya/wildgrid/internal/config"
	"github.com/talgya/wildgrid/internal/entropy"
	"github.com/talgya/wildgrid/internal/persistence"
	"github.com/talgya/wildgrid/internal/report"
	"github.com/talgya/wildgrid/internal/sim"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config layered over the defaults")
	seed := flag.Int64("seed", 0, "override the RNG seed (0 = use config)")
	turns := flag.Int("turns", 0, "override the turn cap (0 = use config)")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// ── Configuration ─────────────────────────────────────────────────
	var cfg *config.Config
	var err error
	if *configPath != "" {
		cfg, err = config.Load(*configPath)
	} else {
		cfg, err = config.Default()
	}
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if *seed != 0 {
		cfg.Run.Seed = *seed
	}
	if *turns != 0 {
		cfg.Run.TurnCap = *turns
	}

	// ── Database ──────────────────────────────────────────────────────
	os.MkdirAll(filepath.Dir(cfg.Run.DBPath), 0755)
	db, err := persistence.Open(cfg.Run.DBPath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	slog.Info("database opened", "path", cfg.Run.DBPath)

	// ── Engine ────────────────────────────────────────────────────────
	rng := entropy.NewSource(cfg.Run.Seed)
	engine := sim.New(cfg, rng)
	if _, err := engine.Initialize(); err != nil {
		slog.Error("failed to initialize simulation", "error", err)
		os.Exit(1)
	}

	runID, err := db.CreateRun(cfg.Run.Seed)
	if err != nil {
		slog.Error("failed to register run", "error", err)
		os.Exit(1)
	}
	slog.Info("run registered", "run_id", runID, "seed", cfg.Run.Seed)

	writer, err := report.NewWriter(cfg.Output.Dir, runID)
	if err != nil {
		slog.Error("failed to create output directory", "error", err)
		os.Exit(1)
	}
	if err := writer.WriteConfig(cfg); err != nil {
		slog.Warn("failed to save run config", "error", err)
	}

	// Persist each committed turn as it happens.
	engine.OnStatsUpdate(func(stats sim.Stats) {
		records := engine.History()
		if len(records) == 0 {
			return
		}
		if err := db.AppendTurn(runID, records[len(records)-1]); err != nil {
			slog.Warn("failed to persist turn", "turn", stats.Turn, "error", err)
		}
	})

	// ── HTTP observation API ──────────────────────────────────────────
	runner := sim.NewRunner(engine, durationMS(cfg.Run.IntervalMS))
	if cfg.API.Port > 0 {
		server := &api.Server{
			Engine:   engine,
			Runner:   runner,
			Port:     cfg.API.Port,
			AdminKey: cfg.API.AdminKey,
		}
		server.Start()
	}

	// ── Turn loop ─────────────────────────────────────────────────────
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		slog.Info("shutdown requested, stopping after current turn")
		runner.Stop()
	}()

	runner.Run()

	// ── Final report ──────────────────────────────────────────────────
	stats := engine.Stats()
	extTurn, extinct := engine.ExtinctionTurn()

	if err := db.FinishRun(runID, stats.Turn, stats.Winner(), extTurn, extinct); err != nil {
		slog.Warn("failed to finish run record", "error", err)
	}
	if err := db.SaveCensus(runID, engine.Creatures()); err != nil {
		slog.Warn("failed to save final census", "error", err)
	}
	if err := writer.WriteTurnLog(engine.History()); err != nil {
		slog.Warn("failed to write turn log", "error", err)
	}
	if err := writer.WriteSummary(stats, extTurn, extinct); err != nil {
		slog.Warn("failed to write summary", "error", err)
	}

	slog.Info("simulation finished",
		"turns", humanize.Comma(int64(stats.Turn)),
		"events", humanize.Comma(int64(len(engine.Events()))),
		"outcome", stats.Winner(),
		"predators", stats.Predators.Total,
		"prey", stats.Prey.Total,
		"scavengers", stats.Scavengers.Total,
		"water_consumed", humanize.Comma(int64(stats.WaterConsumed)),
		"food_consumed", humanize.Comma(int64(stats.FoodConsumed)),
	)
	if extinct {
		slog.Info("extinction", "turn", extTurn)
	}
	if writer.Dir() != "" {
		slog.Info("report written", "dir", writer.Dir())
	}
}

func durationMS(ms int) time.Duration {
	if ms <= 0 {
		return 0
	}
	return time.Duration(ms) * time.Millisecond
}

package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/blockedby/dispatch-os/internal/api"
	"github.com/blockedby/dispatch-os/internal/config"
	"github.com/blockedby/dispatch-os/internal/logger"
	"github.com/blockedby/dispatch-os/internal/nats"
	"github.com/blockedby/dispatch-os/internal/publisher"
	"github.com/blockedby/dispatch-os/internal/schedule"
	"github.com/blockedby/dispatch-os/internal/store"
	"github.com/blockedby/dispatch-os/internal/web"
)

func main() {
	// .env is optional
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	if err := logger.Init(cfg.LogLevel, cfg.LogFile); err != nil {
		panic("failed to init logger: " + err.Error())
	}
	log := logger.Get()
	log.Info().Msg("starting dispatch scheduling service")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Info().Msg("received shutdown signal")
		cancel()
	}()

	// store: roster seed, then snapshot overlay
	mem := store.NewMemory()
	if err := store.LoadRoster(cfg.RosterPath, mem); err != nil {
		log.Fatal().Err(err).Str("path", cfg.RosterPath).Msg("failed to load roster")
	}

	if cfg.SnapshotPath != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.SnapshotPath), 0755); err != nil {
			log.Fatal().Err(err).Msg("failed to create snapshot dir")
		}
		snap, err := store.OpenSnapshot(cfg.SnapshotPath)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to open snapshot")
		}
		if err := snap.Restore(ctx, mem); err != nil {
			log.Fatal().Err(err).Msg("failed to restore snapshot")
		}
		mem.SetPersister(snap)
	}

	// scheduling core
	engine := schedule.NewEngine(mem)
	placement := schedule.NewPlacement(engine, mem)
	views := schedule.NewReadModels(mem)

	// websocket hub; resize gestures stream in over /ws, previews fan
	// back out through the same hub
	hub := web.NewHub()
	go hub.Run()
	engine.AddSink(web.NewScheduleSink(hub))
	gestures := web.NewGestureController(mem, engine, web.NewPreviewBroadcaster(hub))

	// nats publishing is optional
	if cfg.NatsURL != "" {
		nc, err := nats.New(ctx, cfg.NatsURL)
		if err != nil {
			log.Warn().Err(err).Msg("failed to connect to nats, publishing disabled")
		} else if err := nc.EnsureStream(ctx, publisher.StreamName, publisher.StreamSubjects); err != nil {
			log.Warn().Err(err).Msg("failed to ensure schedule stream, publishing disabled")
			nc.Close()
		} else {
			defer nc.Close()
			engine.AddSink(publisher.NewNATSPublisher(nc))
		}
	}

	// api + web server
	apiServer := api.NewServer(&api.Config{
		Port:        cfg.HTTPPort,
		Title:       "Dispatch Scheduling API",
		Description: "Job assignment, drag-and-drop placement and resize for the dispatch console",
		Version:     "dev",
	}, &api.Dependencies{
		Engine:    engine,
		Placement: placement,
		Views:     views,
		Directory: mem,
	})

	srv := web.NewServer(&web.Config{
		Port:          cfg.HTTPPort,
		MutationRPS:   cfg.MutationRPS,
		MutationBurst: cfg.MutationBurst,
	}, hub, gestures, apiServer.Mux())

	go func() {
		log.Info().Int("port", cfg.HTTPPort).Msg("http server listening")
		if err := srv.Start(); err != nil {
			log.Error().Err(err).Msg("http server stopped")
			cancel()
		}
	}()

	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http server shutdown failed")
	}
	log.Info().Msg("dispatch scheduling service stopped")
}

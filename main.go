package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Tresillo2017/classlimit/api"
	"github.com/Tresillo2017/classlimit/config"
	"github.com/Tresillo2017/classlimit/core"
	"github.com/Tresillo2017/classlimit/database"
	"github.com/Tresillo2017/classlimit/mock"
	"github.com/Tresillo2017/classlimit/util"
)

func main() {
	if err := config.LoadEnv(); err != nil {
		fmt.Printf("Failed to load .env file: %v\n", err)
		os.Exit(1)
	}
	cfg := config.Load()

	// Initialize logger
	logger, err := util.NewLogger("classlimit", cfg.LogDir)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}

	store, err := openStore(cfg)
	if err != nil {
		logger.Log("msg", "failed to open settings store", "store", cfg.Store, "err", err)
		os.Exit(1)
	}
	defer store.Close()

	planner, err := core.NewPlanner(logger, store)
	if err != nil {
		logger.Log("msg", "failed to load roster", "err", err)
		os.Exit(1)
	}

	if cfg.SeedDemo && len(planner.Subjects()) == 0 {
		startTime := time.Now()
		if err := seedDemo(planner); err != nil {
			logger.Log("msg", "failed to seed demo subjects", "err", err)
			os.Exit(1)
		}
		util.LogWithTiming(logger, startTime, "Seeded %d demo subjects", len(mock.MockSubjects))
	}

	server := api.NewServer(api.ServerConfig{
		Logger:     logger,
		ListenAddr: cfg.APIListenAddr,
	}, planner)

	// Start server non-blocking
	go func() {
		if err := server.Start(); err != nil {
			logger.Log("msg", "server error", "err", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Log("msg", "shutdown error", "err", err)
	}
	logger.Log("msg", "server stopped")
}

func openStore(cfg config.Config) (core.SettingsStore, error) {
	switch cfg.Store {
	case config.StoreFile:
		return core.NewPersistentStore(cfg.DataDir)
	case config.StorePostgres:
		db, err := database.Connect(cfg.DB)
		if err != nil {
			return nil, err
		}
		return database.NewSettingsStore(db)
	default:
		return nil, fmt.Errorf("unknown store %q", cfg.Store)
	}
}

func seedDemo(planner *core.Planner) error {
	for _, m := range mock.MockSubjects {
		rec, err := planner.AddSubject(m.Name, m.WeeklyHours)
		if err != nil {
			return err
		}
		for i := 0; i < m.CurrentSkips; i++ {
			if _, err := planner.IncrementSkips(rec.ID); err != nil {
				return err
			}
		}
	}
	_, err := planner.Recalculate()
	return err
}

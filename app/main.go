package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kunwoo0421/GovernmentSupportProject/app/api"
	"github.com/kunwoo0421/GovernmentSupportProject/app/cfg"
	"github.com/kunwoo0421/GovernmentSupportProject/app/config"
	"github.com/kunwoo0421/GovernmentSupportProject/app/database"
	"github.com/kunwoo0421/GovernmentSupportProject/app/sources"
	"github.com/kunwoo0421/GovernmentSupportProject/app/tasks"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	logLevel := slog.LevelInfo
	if appCfg.Debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})))

	slog.Info("Starting government support notice aggregator", "version", appCfg.Version)

	// Database connection (runs migrations)
	db, err := database.NewConnection(appCfg.DBPath)
	if err != nil {
		log.Fatal("Failed to open database: ", err)
	}
	defer db.Close()
	slog.Info("Database ready", "path", appCfg.DBPath)

	// Per-source configuration files (all optional)
	loader := config.NewLoader(appCfg.SourcesDir)
	sourceConfigs, err := loader.LoadAll()
	if err != nil {
		log.Fatal("Failed to load source configurations: ", err)
	}
	slog.Info("Source configurations loaded", "count", len(sourceConfigs))

	// Shared HTTP client; per-request timeouts are bounded via context
	httpClient := &http.Client{}

	mss := sources.NewMSSAdapter(httpClient, appCfg.DataGoKrAPIKey, appCfg.UserAgent,
		config.Get(sourceConfigs, "mss").Settings)
	kstartup := sources.NewKStartupAdapter(httpClient, appCfg.KStartupAPIKey, appCfg.UserAgent,
		config.Get(sourceConfigs, "kstartup").Settings)
	kocca := sources.NewKoccaAdapter(httpClient, appCfg.KoccaAPIKey, appCfg.UserAgent,
		config.Get(sourceConfigs, "kocca").Settings)
	bizinfo := sources.NewBizinfoAdapter(httpClient, appCfg.UserAgent,
		config.Get(sourceConfigs, "bizinfo").Settings)
	koneps := sources.NewKonepsAdapter(httpClient, appCfg.KonepsAPIKey, appCfg.UserAgent,
		config.Get(sourceConfigs, "koneps").Settings)

	aggregator := sources.NewAggregator(mss, kstartup, kocca, bizinfo)
	repo := database.NewNoticeRepository(db)
	service := sources.NewService(aggregator, koneps, repo)

	// Background refresh scheduler
	scheduler := tasks.NewScheduler(service)
	scheduler.Start()
	defer scheduler.Stop()
	slog.Info("Background scheduler started", "workers", appCfg.WorkerCount, "interval_seconds", appCfg.SchedulerInterval)

	// HTTP server
	handler := api.NewHandler(service, repo)
	server := api.NewServer(handler, appCfg.APIAccessKey)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "port", appCfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// Wait for interrupt signal or server error
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	// Graceful shutdown
	slog.Info("Shutting down gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped")
	}

	// Scheduler is stopped via defer
	slog.Info("Shutdown complete")
}

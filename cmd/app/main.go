package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"netinv/pkg/api"
	"netinv/pkg/config"
	"netinv/pkg/database"
	"netinv/pkg/health"
	"netinv/pkg/inventory"
	"netinv/pkg/metrics"
	"netinv/pkg/models"
	"netinv/pkg/probe"
	"netinv/pkg/topology"
)

func main() {
	// ══════════════════════════════════════════════════════════════
	// STRUCTURED LOGGING
	// ══════════════════════════════════════════════════════════════
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// ══════════════════════════════════════════════════════════════
	// CONFIGURATION
	// ══════════════════════════════════════════════════════════════
	conf, err := config.LoadConfig(".")
	if err != nil {
		slog.Error("Failed to load conf", "error", err)
		os.Exit(1)
	}
	slog.Info("Config loaded", "db_driver", conf.DBDriver, "api_prefix", conf.APIPrefix, "probe_workers", conf.ProbeWorkers)

	// ══════════════════════════════════════════════════════════════
	// DATABASE
	// ══════════════════════════════════════════════════════════════
	db, err := database.Connect(conf)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	sqlDB, err := db.DB()
	if err != nil {
		slog.Error("Failed to get database handle", "error", err)
		os.Exit(1)
	}
	defer sqlDB.Close()

	// ══════════════════════════════════════════════════════════════
	// COMMUNICATION CHANNELS
	// ══════════════════════════════════════════════════════════════
	// Device changes and probe outcomes both feed the health monitor.
	healthEvents := make(chan models.Event, conf.InternalQueueSize)

	// ══════════════════════════════════════════════════════════════
	// SERVICES
	// ══════════════════════════════════════════════════════════════
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	promMetrics := metrics.NewMetrics(sqlDB)

	deviceService := inventory.NewDeviceService(db, conf.EncryptionKey, healthEvents)
	topologyService := topology.NewTopologyService(db)

	prober := probe.NewProber(probe.Config{
		Timeout:   conf.ProbeTimeout(),
		Workers:   conf.ProbeWorkers,
		QueueSize: conf.ProbeQueueSize,
		SNMPPort:  conf.SNMPDefaultPort,
		SSHPort:   conf.SSHDefaultPort,
		Community: conf.SNMPDefaultCommunity,
	}, healthEvents, promMetrics)

	healthMonitor := health.NewHealthMonitor(
		healthEvents,
		deviceService.Repository(),
		conf.HealthWindowMinutes,
		conf.HealthFailureThreshold,
	)

	// ══════════════════════════════════════════════════════════════
	// START SERVICES
	// ══════════════════════════════════════════════════════════════
	prober.Start(ctx)
	go healthMonitor.Run(ctx)

	// ══════════════════════════════════════════════════════════════
	// ROUTER SETUP
	// ══════════════════════════════════════════════════════════════
	router, err := api.NewRouter(conf.APIPrefix, api.Dependencies{
		Devices:  deviceService,
		Sites:    database.NewSiteRepository(db),
		Topology: topologyService,
		Prober:   prober,
		Metrics:  promMetrics,
		DB:       sqlDB,
	})
	if err != nil {
		slog.Error("Failed to build router", "error", err)
		os.Exit(1)
	}

	// ══════════════════════════════════════════════════════════════
	// START SERVER
	// ══════════════════════════════════════════════════════════════
	server := &http.Server{
		Addr:              conf.ServerAddress,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown failed", "error", err)
		}
	}()

	if conf.TLSCertFile != "" && conf.TLSKeyFile != "" {
		slog.Info("Starting HTTPS app", "address", conf.ServerAddress)
		err = server.ListenAndServeTLS(conf.TLSCertFile, conf.TLSKeyFile)
	} else {
		slog.Info("Starting HTTP app", "address", conf.ServerAddress)
		err = server.ListenAndServe()
	}
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server failed to start", "error", err)
		os.Exit(1)
	}
	slog.Info("Server stopped")
}

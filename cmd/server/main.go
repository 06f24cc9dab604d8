package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/protectedpay/ledger/internal/auth"
	"github.com/protectedpay/ledger/internal/config"
	"github.com/protectedpay/ledger/internal/ledger"
	"github.com/protectedpay/ledger/internal/metrics"
	"github.com/protectedpay/ledger/internal/payout"
	"github.com/protectedpay/ledger/internal/registry"
	"github.com/protectedpay/ledger/internal/service"
	"github.com/protectedpay/ledger/internal/storage/sqlite"
	"github.com/protectedpay/ledger/pkg/logging"
)

func main() {
	logging.Setup()

	cfg := config.Load()

	// Initialize SQLite storage
	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	// Metrics and the payout sink. The recording sink confirms transfers by
	// persisting receipts; swap in a chain-backed sink to move real value.
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	sink := payout.Instrument(payout.NewRecordingSink(store), m)

	// Engines
	paymentEngine := ledger.NewPaymentEngine(store, sink)
	potEngine := ledger.NewPotEngine(store, sink, ledger.PotPolicy{
		OpenContributions: cfg.PotOpenContributions,
		CapAtTarget:       cfg.PotCapAtTarget,
	})
	names := registry.New(store)

	// Session auth
	authenticator := auth.NewPasswordAuthenticator(store)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	srv := service.New(paymentEngine, potEngine, names, store, authenticator, jwtManager, m)
	srv.RegisterRoutes(r, reg)

	addr := fmt.Sprintf(":%d", cfg.Port)
	slog.Info("Ledger server starting", "address", addr)
	if err := r.Run(addr); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

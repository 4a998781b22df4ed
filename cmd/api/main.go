package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"smartsub/internal/client"
	"smartsub/internal/config"
	"smartsub/internal/repository"
	"smartsub/internal/server"
	"smartsub/internal/service"
	"syscall"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

func main() {
	// load .env into os.Environ
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found (ok in prod)")
	}

	cfg := &config.Config{}
	if err := env.Parse(cfg); err != nil {
		fmt.Printf("Failed to parse config: %v\n", err)
		os.Exit(1)
	}

	setupLogger(&cfg.Log)

	db := client.InitDB(cfg.DatabaseURL)
	payoutClient := client.NewPayoutClient(&cfg.Payout)

	subRepo := repository.NewSubscriptionRepository(db)
	userSubRepo := repository.NewUserSubRepository(db)
	balanceRepo := repository.NewBalanceRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)

	subscriptionService := service.NewSubscriptionService(subRepo)
	purchaseService := service.NewPurchaseService(db, subRepo, userSubRepo, balanceRepo, paymentRepo, nil)
	balanceService := service.NewBalanceService(db, balanceRepo, paymentRepo, payoutClient)

	srv := server.NewServer(subscriptionService, purchaseService, balanceService, cfg.JWT.Secret)

	serverAddr := cfg.HTTP.Host + ":" + cfg.HTTP.Port

	slog.Info("starting HTTP server", "addr", serverAddr, "env", cfg.Environment.Name)
	go func() {
		if err := srv.Start(serverAddr); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server error", "err", err)
			os.Exit(1)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	<-sigChan
	slog.Info("signal received, starting graceful shutdown")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "err", err)
		os.Exit(1)
	}
}

func setupLogger(logCfg *config.Log) {
	level := slog.LevelInfo
	switch logCfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}

	var h slog.Handler
	if logCfg.Format == "text" {
		h = slog.NewTextHandler(os.Stdout, opts)
	} else {
		h = slog.NewJSONHandler(os.Stdout, opts)
	}

	slog.SetDefault(slog.New(h))
}

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/markandeyay/rugpullcheck/internal/analyzer"
	"github.com/markandeyay/rugpullcheck/internal/cache"
	"github.com/markandeyay/rugpullcheck/internal/configs"
	"github.com/markandeyay/rugpullcheck/internal/providers/dexscreener"
	"github.com/markandeyay/rugpullcheck/internal/providers/etherscan"
	"github.com/markandeyay/rugpullcheck/internal/providers/goplus"
	"github.com/markandeyay/rugpullcheck/internal/scoring"
	"github.com/markandeyay/rugpullcheck/internal/server"
	"github.com/markandeyay/rugpullcheck/internal/utils/request"
)

var log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
	Level: slog.LevelDebug,
}))

func main() {
	cfg := configs.Load()

	if cfg.Providers.EtherscanAPIKey == "" {
		log.Warn("ETHERSCAN_API_KEY not set, contract verification will report no data")
	}

	httpClient := request.New(time.Duration(cfg.Providers.HTTPTimeoutSeconds) * time.Second)

	marketSource := dexscreener.NewClient(httpClient, log)
	contractSource := etherscan.NewClient(cfg.Providers.EtherscanAPIKey, httpClient, log)
	securitySource := goplus.NewClient(cfg.Providers.GoPlusAPIKey, httpClient, log)

	tokenAnalyzer := analyzer.New(marketSource, contractSource, securitySource, scoring.NewEngine(), log)
	reportCache := cache.NewTTLCache(time.Duration(cfg.Cache.TTLSeconds) * time.Second)

	srv := server.New(tokenAnalyzer, reportCache, cfg.Server.FrontendURL, log)

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: srv,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("listening", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "err", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", "err", err)
	}
	log.Info("stopped")
}

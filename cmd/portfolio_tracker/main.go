package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"go.uber.org/zap"

	"portfolio_tracker/internal/app/service"
	"portfolio_tracker/internal/config"
	clientprovider "portfolio_tracker/internal/infrastructure/network/client"
	networkdefinition "portfolio_tracker/internal/infrastructure/network/definition"
	"portfolio_tracker/internal/infrastructure/pricetable"
	"portfolio_tracker/internal/infrastructure/restapi"
	"portfolio_tracker/internal/infrastructure/tokenloader"
	"portfolio_tracker/internal/infrastructure/walletsession"
	"portfolio_tracker/internal/pkg/logger"
	"portfolio_tracker/internal/pkg/metrics"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := config.LoadEnv(); err != nil {
		logrus.Warnf("Failed to load .env: %v", err)
	}

	cfgPath := config.Path()
	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "CRITICAL: failed to load configuration from %s: %v\n", cfgPath, err)
		os.Exit(1)
	}

	zapLogger, err := logger.InitZap(cfg.Logging.Level, cfg.Logging.Development)
	if err != nil {
		fmt.Fprintf(os.Stderr, "CRITICAL: failed to initialize zap logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = zapLogger.Sync() }()

	appLogger := logger.NewSlogAdapter()
	appLogger.Info("Portfolio tracker starting", "config", cfgPath, "log_level", cfg.Logging.Level)

	metrics.MustRegisterMetrics()

	netDefProvider := networkdefinition.NewNetworkDefinitionProvider(appLogger)
	wallet := walletsession.NewSession(netDefProvider, appLogger)

	prices, err := pricetable.New(cfg.Prices, time.Now)
	if err != nil {
		logger.Fatal("Invalid price table", "error", err)
	}
	tokenPriceService := service.NewTokenPriceService(prices, appLogger, time.Duration(cfg.TokenPriceSvc.CacheTTLMinutes)*time.Minute)
	if err := tokenPriceService.LoadAndCacheTokenPrices(ctx); err != nil {
		logger.Fatal("Failed to load token prices", "error", err)
	}
	tokenPriceService.StartAutoRefresh(ctx, time.Duration(cfg.TokenPriceSvc.RefreshIntervalSeconds)*time.Second)

	holdingsProvider, err := tokenloader.NewTokenLoader(
		cfg.Simulation.TokensFile,
		cfg.Simulation.FetchDelay(),
		appLogger,
	)
	if err != nil {
		logger.Fatal("Failed to load token fixtures", "error", err)
	}
	clientProvider := clientprovider.NewEVMClientProvider(cfg.Simulation.MaxNativeBalanceEther, appLogger)

	holdingsService := service.NewHoldingsService(holdingsProvider, netDefProvider, clientProvider, tokenPriceService, appLogger)
	dashboard := service.NewDashboardService(
		holdingsService,
		wallet,
		netDefProvider,
		appLogger,
		time.Duration(cfg.Dashboard.FetchTimeoutMillis)*time.Millisecond,
	)
	defer dashboard.Close()
	go dashboard.Run(ctx)

	if cfg.Wallet.AutoConnectAddress != "" {
		chainID := cfg.Wallet.AutoConnectChainID
		if chainID == 0 {
			chainID = networkdefinition.Ethereum.ChainID
		}
		if err := wallet.Connect(cfg.Wallet.AutoConnectAddress, chainID); err != nil {
			appLogger.Warn("Auto-connect failed", "address", cfg.Wallet.AutoConnectAddress, "chain_id", chainID, "error", err)
		}
	}

	limiter := restapi.NewRefreshLimiter(cfg.Dashboard.RefreshRatePerMinute, cfg.Dashboard.RefreshBurst)
	handler := restapi.NewPortfolioHandler(dashboard, wallet, netDefProvider, cfg, limiter, appLogger)
	router := restapi.SetupRouter(handler, cfg, zapLogger)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		appLogger.Info("HTTP server starting", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start HTTP server", "error", err)
		}
	}()

	<-ctx.Done()
	appLogger.Info("Shutdown signal received, stopping HTTP server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("Server forced to shutdown", zap.Error(err))
	} else {
		appLogger.Info("HTTP server stopped")
	}

	appLogger.Info("Portfolio tracker stopped")
}

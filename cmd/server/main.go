package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/slinghq/sling-backend/internal/adapter/httpapi"
	"github.com/slinghq/sling-backend/internal/adapter/prices"
	"github.com/slinghq/sling-backend/internal/adapter/rates"
	"github.com/slinghq/sling-backend/internal/adapter/repository/memory"
	"github.com/slinghq/sling-backend/internal/adapter/repository/postgres"
	"github.com/slinghq/sling-backend/internal/config"
	"github.com/slinghq/sling-backend/internal/domain"
	"github.com/slinghq/sling-backend/internal/usecase/converter"
	"github.com/slinghq/sling-backend/internal/usecase/holdings"
	"github.com/slinghq/sling-backend/internal/usecase/ledger"
	"github.com/slinghq/sling-backend/internal/usecase/quote"
	"github.com/slinghq/sling-backend/internal/usecase/seeder"
	"github.com/slinghq/sling-backend/internal/usecase/transfer"
	"github.com/slinghq/sling-backend/migrations"
)

func main() {
	// .env is optional; real env vars win either way
	_ = godotenv.Load()

	logger := logrus.New()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		logger.WithError(err).Fatal("failed to load configuration")
	}
	if level, err := logrus.ParseLevel(cfg.Service.LogLevel); err == nil {
		logger.SetLevel(level)
	}

	// 1. Repositories: Postgres when configured, in-memory otherwise
	// (the prototype's native mode; state lives for the process lifetime)
	var (
		accountRepo  domain.AccountRepository
		holdingRepo  domain.HoldingRepository
		activityRepo domain.ActivityRepository
	)

	if connStr := connectionString(cfg); connStr != "" {
		db, err := postgres.NewDB(connStr)
		if err != nil {
			logger.WithError(err).Fatal("failed to connect to database")
		}
		defer db.Close()

		goose.SetBaseFS(migrations.FS)
		if err := goose.SetDialect("postgres"); err != nil {
			logger.WithError(err).Fatal("failed to set migration dialect")
		}
		if err := goose.Up(db.DB, "."); err != nil {
			logger.WithError(err).Fatal("failed to apply migrations")
		}

		accountRepo = postgres.NewAccountRepository(db)
		holdingRepo = postgres.NewHoldingRepository(db)
		activityRepo = postgres.NewActivityRepository(db)
		logger.Info("using postgres repositories")
	} else {
		accountRepo = memory.NewAccountRepository()
		holdingRepo = memory.NewHoldingRepository()
		activityRepo = memory.NewActivityRepository()
		logger.Info("using in-memory repositories")
	}

	// 2. Services
	var rateProvider converter.RateProvider
	if cfg.Rates.ProviderURL != "" {
		rateProvider = rates.NewHTTPProvider(cfg.Rates.ProviderURL)
	}
	converterService := converter.NewService(rateProvider, cfg.Rates.CacheTTL(), cfg.Rates.FetchTimeout())

	ledgerService := ledger.NewService(accountRepo, activityRepo)
	holdingsService := holdings.NewService(holdingRepo, ledgerService)
	transferService := transfer.NewService(ledgerService, converterService, activityRepo, cfg.Ledger.BaseCurrency)

	priceFeed := prices.NewSimulatedFeed(map[string]domain.Money{
		"AAPL":                      domain.NewMoney(decimal.RequireFromString("178.50"), cfg.Ledger.BaseCurrency),
		"TSLA":                      domain.NewMoney(decimal.RequireFromString("242.10"), cfg.Ledger.BaseCurrency),
		"NVDA":                      domain.NewMoney(decimal.RequireFromString("118.30"), cfg.Ledger.BaseCurrency),
		httpapi.SavingsInstrumentID: domain.NewMoney(decimal.RequireFromString("1.02"), cfg.Ledger.BaseCurrency),
	})

	quoteRegistry := quote.NewRegistry(priceFeed, cfg.Quotes.WindowSeconds)

	// 3. Seed the default account with a zero balance
	ctx := context.Background()
	accountSeeder := seeder.NewAccountSeeder(accountRepo, cfg.Ledger.BaseCurrency)
	if err := accountSeeder.Seed(ctx); err != nil {
		logger.WithError(err).Fatal("failed to seed default account")
	}
	logger.WithField("account", seeder.DefaultAccountID).Info("default account ready")

	// 4. HTTP server
	apiToken := os.Getenv("API_TOKEN")
	if apiToken == "" {
		apiToken = cfg.Service.APIToken
	}

	server := httpapi.NewServer(
		ledgerService,
		holdingsService,
		converterService,
		transferService,
		activityRepo,
		priceFeed,
		quoteRegistry,
		cfg.Quotes.WindowSeconds,
		seeder.DefaultAccountID,
		cfg.Ledger.BaseCurrency,
		apiToken,
		logger,
	)

	httpServer := &http.Server{
		Addr:    ":" + cfg.Service.Port,
		Handler: server.Router(),
	}

	go func() {
		logger.WithField("port", cfg.Service.Port).Info("http server listening")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("http server failed")
		}
	}()

	waitForShutdown(httpServer, logger)
}

// connectionString assembles the Postgres DSN from config; empty means
// "run in-memory"
func connectionString(cfg *config.Config) string {
	sql := cfg.Databases.SQL
	if sql.ConnectionString != "" {
		return sql.ConnectionString
	}
	if os.Getenv("DB_CONN_STR") != "" {
		return os.Getenv("DB_CONN_STR")
	}
	host := sql.Host
	if os.Getenv("DB_HOST") != "" {
		host = os.Getenv("DB_HOST")
	}
	if host == "" {
		return ""
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		host, sql.Port, sql.Username, sql.Password, sql.Database)
}

// waitForShutdown waits for SIGTERM or SIGINT and gracefully shuts down the server
func waitForShutdown(httpServer *http.Server, logger *logrus.Logger) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	sig := <-sigChan
	logger.WithField("signal", sig.String()).Info("shutting down gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("shutdown did not complete cleanly")
	}
	logger.Info("http server stopped")
}

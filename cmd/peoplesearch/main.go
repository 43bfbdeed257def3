package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/slaguerre91/people-search-homepage/internal/config"
	"github.com/slaguerre91/people-search-homepage/internal/db"
	dbRedis "github.com/slaguerre91/people-search-homepage/internal/db/redis"
	"github.com/slaguerre91/people-search-homepage/internal/domain"
	logpkg "github.com/slaguerre91/people-search-homepage/internal/logger"
	"github.com/slaguerre91/people-search-homepage/internal/metrics"
	budgetrepo "github.com/slaguerre91/people-search-homepage/internal/repository/budget"
	"github.com/slaguerre91/people-search-homepage/internal/repository/parsecache"
	profilerepo "github.com/slaguerre91/people-search-homepage/internal/repository/profile"
	reviewrepo "github.com/slaguerre91/people-search-homepage/internal/repository/review"
	chiTransport "github.com/slaguerre91/people-search-homepage/internal/transport/chi"
	lookupTransport "github.com/slaguerre91/people-search-homepage/internal/transport/lookup"
	openaiParse "github.com/slaguerre91/people-search-homepage/internal/transport/openai"
	directoryuc "github.com/slaguerre91/people-search-homepage/internal/usecase/directory"
	healthuc "github.com/slaguerre91/people-search-homepage/internal/usecase/health"
	lookupuc "github.com/slaguerre91/people-search-homepage/internal/usecase/lookup"
	parseuc "github.com/slaguerre91/people-search-homepage/internal/usecase/parse"
	searchuc "github.com/slaguerre91/people-search-homepage/internal/usecase/search"
	"github.com/slaguerre91/people-search-homepage/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting people-search API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Strings("db_addrs", cfg.Database.Addrs),
	)

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Database.Addrs,
		Password: cfg.Database.Password,
	})
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	// Wait for database to be ready
	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	// Register metrics explicitly (no init())
	metrics.RegisterParseMetrics()
	metrics.RegisterSearchMetrics()

	// Repositories
	profileRepo := profilerepo.New(store, cfg.Storage.KeyPrefix)
	if err := profileRepo.EnsureIndex(ctx); err != nil {
		logger.Fatal("Failed to create directory search index", zap.Error(err))
	}
	reviewRepo := reviewrepo.New(store, cfg.Storage.KeyPrefix)

	// Single BudgetTracker shared by the parser chain.
	var budget *parseuc.BudgetTracker
	budgetCfg := cfg.Parser.Budget
	if cfg.Parser.APIKey != "" && (budgetCfg.DailyTokenLimit > 0 || budgetCfg.MonthlyTokenLimit > 0) {
		action := parseuc.BudgetActionWarn
		if budgetCfg.Action == "reject" {
			action = parseuc.BudgetActionReject
		}
		budget = parseuc.NewBudgetTracker(
			cfg.Storage.KeyPrefix, "openai",
			budgetCfg.DailyTokenLimit, budgetCfg.MonthlyTokenLimit, action, logger,
		)
		// Connect persistence store — loads current counters from DB.
		budgetStore := budgetrepo.New(store, 48*time.Hour, 62*24*time.Hour)
		budget.WithStore(ctx, budgetStore)
	}

	// Pass nil interface (not typed nil pointer!) if budget is not configured.
	// Go gotcha: (*BudgetTracker)(nil) wrapped in BudgetChecker != nil.
	var budgetChecker parseuc.BudgetChecker
	if budget != nil {
		budgetChecker = budget
	}

	// LLM fallback parser wiring. An empty api_key leaves the rule parser
	// on its own.
	var llmParser parseuc.QueryParser
	var parserHealth healthuc.ParserChecker
	if cfg.Parser.APIKey != "" {
		base := openaiParse.NewParser(&openaiParse.Config{
			APIKey:   cfg.Parser.APIKey,
			BaseURL:  cfg.Parser.BaseURL,
			Model:    cfg.Parser.Model,
			Provider: "openai",
			Logger:   logger,
		})
		llmParser = buildParser(base, cfg.Parser, cfg.Storage.KeyPrefix, store, budgetChecker, logger)
		parserHealth = base
		logger.Info("LLM parse fallback enabled",
			zap.String("model", cfg.Parser.Model),
			zap.Bool("cache", cfg.Parser.CacheTTLSec > 0),
			zap.Bool("budget", budget != nil),
		)
	} else {
		logger.Info("LLM parse fallback disabled, rule parser only")
	}

	parseSvc := parseuc.New(llmParser, logger)

	// External lookup: rate-limited provider client behind the scoring service
	lookupClient := lookupTransport.NewClient(&lookupTransport.Config{
		BaseURL:        cfg.Lookup.BaseURL,
		RequestsPerSec: cfg.Lookup.RequestsPerSec,
		Logger:         logger,
	})
	lookupSvc := lookupuc.New(parseSvc, lookupClient,
		time.Duration(cfg.Lookup.TimeoutSec)*time.Second, cfg.Lookup.MaxResults, logger)

	directorySvc := directoryuc.New(profileRepo, reviewRepo, cfg.Search.PageSize, cfg.Search.AutocompleteLimit)

	searchSvc := searchuc.New(directorySvc, lookupSvc, newSearchEmitter(logger), logger)

	healthSvc := healthuc.New(store, profileRepo, parserHealth)

	// Create chi server
	server := chiTransport.NewServer(searchSvc, directorySvc, parseSvc, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Register(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// buildParser assembles the decorator chain: OpenAI -> Cached -> Instrumented
func buildParser(
	base *openaiParse.Parser,
	parserCfg config.ParserConfig,
	keyPrefix string,
	store db.Store,
	budget parseuc.BudgetChecker,
	logger *zap.Logger,
) parseuc.QueryParser {
	var parser domain.QueryParser = base

	// Cached
	if store != nil && parserCfg.CacheTTLSec > 0 {
		parser = parsecache.New(parser, store, keyPrefix,
			time.Duration(parserCfg.CacheTTLSec)*time.Second, metrics.ParseCacheTotal, logger)
	}

	// Instrumented (budget + metrics)
	return parseuc.NewInstrumentedParser(parser, "openai", parserCfg.Model, budget, logger)
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"code":    "internal_error",
						"message": "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())

			// Set X-Request-ID in response header
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line — one line per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}

package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"catchup-feed/internal/articleextractor"
	"catchup-feed/internal/feedfetcher"
	hhttp "catchup-feed/internal/handler/http"
	"catchup-feed/internal/handler/http/requestid"
	"catchup-feed/internal/historystore"
	"catchup-feed/internal/infra/db"
	"catchup-feed/internal/keywordextractor"
	"catchup-feed/internal/llmclient"
	"catchup-feed/internal/llmsummarizer"
	"catchup-feed/internal/mailer"
	"catchup-feed/internal/observability/logging"
	"catchup-feed/internal/observability/metrics"
	"catchup-feed/internal/observability/tracing"
	"catchup-feed/internal/pipeline"
	"catchup-feed/internal/recommender"
	"catchup-feed/internal/registry"
)

func main() {
	logger := logging.NewLogger()
	slog.SetDefault(logger)

	database := initDatabase(logger)
	defer func() {
		if database == nil {
			return
		}
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	version := getVersion()
	handler := setupServer(logger, database, version)

	runServer(logger, handler, version)
}

// initDatabase opens the database connection and runs migrations. A
// summarization service with no DATABASE_URL configured still starts, but
// falls back to an in-memory history store (see buildHistoryStore).
func initDatabase(logger *slog.Logger) *sql.DB {
	if os.Getenv("DATABASE_URL") == "" {
		logger.Warn("DATABASE_URL not set, history will not be persisted across restarts")
		return nil
	}
	database := db.Open()
	if err := db.MigrateUp(database); err != nil {
		logger.Error("failed to migrate database", slog.Any("error", err))
		os.Exit(1)
	}
	return database
}

// getVersion returns the application version from environment or default.
func getVersion() string {
	version := os.Getenv("VERSION")
	if version == "" {
		version = "dev"
	}
	return version
}

func getEnvOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// buildHistoryStore picks the Postgres-backed store when a database
// connection is available, otherwise an in-process memory store so the
// service is still usable for local development and demos.
func buildHistoryStore(database *sql.DB, logger *slog.Logger) historystore.Store {
	if database == nil {
		logger.Warn("using in-memory history store")
		return historystore.NewMemoryStore()
	}
	return historystore.NewPostgresStore(database)
}

// buildCompleter selects the LLM backend from LLM_PROVIDER ("claude" or
// "openai", default "claude") and constructs its API client from the
// matching API-key environment variable.
func buildCompleter(logger *slog.Logger) llmclient.Completer {
	provider := getEnvOrDefault("LLM_PROVIDER", "claude")

	switch provider {
	case "openai":
		apiKey := os.Getenv("OPENAI_API_KEY")
		if apiKey == "" {
			logger.Error("OPENAI_API_KEY must be set when LLM_PROVIDER=openai")
			os.Exit(1)
		}
		model := getEnvOrDefault("OPENAI_MODEL", "gpt-4o-mini")
		return llmclient.NewOpenAICompleter(apiKey, model, 2048)
	case "claude":
		apiKey := os.Getenv("ANTHROPIC_API_KEY")
		if apiKey == "" {
			logger.Error("ANTHROPIC_API_KEY must be set when LLM_PROVIDER=claude")
			os.Exit(1)
		}
		model := getEnvOrDefault("ANTHROPIC_MODEL", "claude-3-5-haiku-latest")
		return llmclient.NewClaudeCompleter(apiKey, model, 2048)
	default:
		logger.Error("unsupported LLM_PROVIDER", slog.String("provider", provider))
		os.Exit(1)
		return nil
	}
}

// buildFeedLister loads the curated feed registry, honoring a
// FEED_REGISTRY_OVERRIDE path when set.
func buildFeedLister(logger *slog.Logger) *registry.Registry {
	if overridePath := os.Getenv("FEED_REGISTRY_OVERRIDE"); overridePath != "" {
		reg, err := registry.LoadOverride(overridePath)
		if err != nil {
			logger.Error("failed to load feed registry override", slog.Any("error", err))
			os.Exit(1)
		}
		return reg
	}
	reg, err := registry.NewDefault()
	if err != nil {
		logger.Error("failed to load default feed registry", slog.Any("error", err))
		os.Exit(1)
	}
	return reg
}

// setupServer wires the domain's components (feed registry, fetcher,
// article extractor, keyword extractor, LLM summarizer, history store,
// recommender, mailer) into the pipeline orchestrator and recommender,
// then builds and returns the HTTP handler that exposes them.
func setupServer(logger *slog.Logger, database *sql.DB, version string) http.Handler {
	httpClient := &http.Client{Timeout: 30 * time.Second}

	feeds := buildFeedLister(logger)
	metrics.UpdateFeedSourcesTotal(len(feeds.List()))
	fetcher := feedfetcher.New(httpClient)
	extractor := articleextractor.New(httpClient, articleextractor.DefaultConfig())
	completer := buildCompleter(logger)
	keywords := keywordextractor.New(completer)

	pipelineCfg := pipeline.LoadConfigFromEnv(logger)
	summarizer := llmsummarizer.NewWithCaps(completer, pipelineCfg.LLMModel, pipelineCfg.BodySoftCap, pipelineCfg.BodyHardCap)

	historyStore := buildHistoryStore(database, logger)
	mailSender := mailer.New(mailer.ConfigFromEnv(), 10*time.Second)

	orchestrator := pipeline.New(pipelineCfg, pipeline.Deps{
		Registry:         feeds,
		FeedFetcher:      fetcher,
		ArticleExtractor: extractor,
		KeywordExtractor: keywords,
		Summarizer:       summarizer,
		HistoryStore:     historyStore,
		MailSender:       mailSender,
	})

	recommenderCfg := recommender.LoadConfigFromEnv(logger)
	recEngine := recommender.New(recommenderCfg, recommender.Deps{
		Feeds:   feeds,
		Fetcher: fetcher,
		History: historyStore,
	})

	mux := setupRoutes(database, version, orchestrator, historyStore, recEngine)
	return applyMiddleware(logger, mux)
}

// setupRoutes registers the health/readiness/liveness/metrics probes and
// the summarize/history/recommendation/feedback endpoints.
func setupRoutes(
	database *sql.DB,
	version string,
	orchestrator hhttp.Orchestrator,
	historyStore hhttp.HistoryStore,
	recEngine hhttp.RecommenderService,
) *http.ServeMux {
	mux := http.NewServeMux()

	mux.Handle("/health", &hhttp.HealthHandler{DB: database, Version: version})
	mux.Handle("/ready", &hhttp.ReadyHandler{DB: database})
	mux.Handle("/live", &hhttp.LiveHandler{})
	mux.Handle("/metrics", hhttp.MetricsHandler())

	mux.Handle("/api/v1/summarize", &hhttp.SummarizeHandler{Orchestrator: orchestrator})
	mux.Handle("/api/v1/feedback", &hhttp.FeedbackHandler{Store: historyStore})
	mux.Handle("/api/v1/history/{userID}", &hhttp.HistoryHandler{Store: historyStore})
	mux.Handle("/api/v1/recommendations/{userID}", &hhttp.RecommendationHandler{Recommender: recEngine})
	mux.Handle("/api/v1/recommendations/{userID}/click", &hhttp.RecommendationClickHandler{Store: historyStore})

	return mux
}

// applyMiddleware wraps the handler with the shared ambient middleware
// chain: request ID, tracing, recovery, logging, body size limit, input
// validation, timeout and metrics, applied innermost to outermost.
func applyMiddleware(logger *slog.Logger, handler http.Handler) http.Handler {
	limit, window := rateLimitFromEnv()
	limiter := hhttp.NewRateLimiter(limit, window)

	chain := handler
	chain = hhttp.MetricsMiddleware(chain)
	chain = limiter.Limit(chain)
	chain = hhttp.Timeout(60 * time.Second)(chain)
	chain = hhttp.InputValidation()(chain)
	chain = hhttp.LimitRequestBody(1 << 20)(chain)
	chain = hhttp.Logging(logger)(chain)
	chain = hhttp.Recover(logger)(chain)
	chain = tracing.Middleware(chain)
	chain = requestid.Middleware(chain)
	return chain
}

// rateLimitFromEnv reads RATE_LIMIT_REQUESTS/RATE_LIMIT_WINDOW, defaulting to
// 60 requests per minute per IP — generous enough for the summarize
// endpoint's own timeouts to be the binding constraint in normal use.
func rateLimitFromEnv() (int, time.Duration) {
	limit := 60
	if v := os.Getenv("RATE_LIMIT_REQUESTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	window := time.Minute
	if v := os.Getenv("RATE_LIMIT_WINDOW"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			window = d
		}
	}
	return limit, window
}

// runServer starts the HTTP server and handles graceful shutdown on
// SIGINT/SIGTERM.
func runServer(logger *slog.Logger, handler http.Handler, version string) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	addr := getEnvOrDefault("ADDR", ":8080")
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second, // Prevent Slowloris attacks
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		logger.Info("server starting", slog.String("addr", addr), slog.String("version", version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
	}
	logger.Info("server stopped")
}

package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ytldr/internal/config"
	hhttp "ytldr/internal/handler/http"
	"ytldr/internal/handler/http/summary"
	"ytldr/internal/infra/completion"
	"ytldr/internal/infra/extractor"
	"ytldr/internal/observability/logging"
	"ytldr/internal/observability/requestid"
	"ytldr/internal/observability/tracing"
	"ytldr/internal/usecase/summarize"
	"ytldr/internal/utils/text"
	pkgconfig "ytldr/pkg/config"
)

// maxRequestBody bounds JSON request bodies, base64 file uploads included.
const maxRequestBody = 16 << 20

func main() {
	logger := logging.NewLogger()
	slog.SetDefault(logger)

	cfg, err := config.LoadEngineConfig()
	if err != nil {
		logger.Error("failed to load engine configuration", slog.Any("error", err))
		os.Exit(1)
	}

	version := getVersion()
	components, err := setupServer(logger, cfg, version)
	if err != nil {
		logger.Error("failed to set up server", slog.Any("error", err))
		os.Exit(1)
	}

	runServer(logger, components, version)
}

// getVersion returns the application version from environment or default.
func getVersion() string {
	return pkgconfig.GetEnvString("VERSION", "dev")
}

// ServerComponents holds what runServer needs.
type ServerComponents struct {
	Handler http.Handler
	Addr    string
}

// setupServer builds the summarization engine, its routes and middleware.
func setupServer(logger *slog.Logger, cfg *config.EngineConfig, version string) (*ServerComponents, error) {
	extractCfg, err := extractor.LoadConfigFromEnv()
	if err != nil {
		return nil, err
	}
	fetcher := extractor.NewFetcher(extractCfg)

	svc, err := completion.New(context.Background(), cfg.Completion())
	if err != nil {
		return nil, err
	}

	engine, err := summarize.NewEngine(svc, cfg.Summarize(),
		summarize.WithExtractor(extractor.NewRegistry(fetcher)),
		summarize.WithMetadataFetcher(extractor.NewMetadataFetcher(fetcher)),
		summarize.WithTokenCounter(tokenCounter(logger)),
	)
	if err != nil {
		return nil, err
	}

	var limiter summary.Limiter
	if cfg.MinInterval > 0 {
		limiter = completion.NewGuard(cfg.MinInterval)
	} else {
		logger.Warn("request spacing guard is DISABLED")
	}

	checks := map[string]hhttp.Check{
		"article_fetch": hhttp.BreakerCheck(fetcher.Breaker()),
	}
	if cb := completion.BreakerOf(svc); cb != nil {
		checks["completion"] = hhttp.BreakerCheck(cb)
	}

	mux := http.NewServeMux()
	summary.Register(mux, engine, limiter)
	mux.Handle("GET /health", &hhttp.HealthHandler{Version: version, Provider: svc.Name(), Checks: checks})
	mux.Handle("GET /live", &hhttp.LiveHandler{})
	mux.Handle("GET /metrics", hhttp.MetricsHandler())

	requestTimeout := pkgconfig.GetEnvDuration("SERVER_REQUEST_TIMEOUT", 5*time.Minute)
	logger.Info("summarization engine ready",
		slog.String("provider", svc.Name()),
		slog.Int("max_chunk_size", cfg.MaxChunkSize),
		slog.Int("overlap_size", cfg.OverlapSize),
		slog.Int("map_concurrency", cfg.MapConcurrency),
		slog.Duration("min_interval", cfg.MinInterval),
		slog.Duration("request_timeout", requestTimeout))

	return &ServerComponents{
		Handler: applyMiddleware(logger, mux, requestTimeout),
		Addr:    pkgconfig.GetEnvString("SERVER_ADDR", ":8080"),
	}, nil
}

// tokenCounter prefers the cl100k_base encoding and falls back to the
// character heuristic when the encoding cannot be loaded.
func tokenCounter(logger *slog.Logger) text.TokenCounter {
	tc, err := text.NewTiktokenCounter("cl100k_base")
	if err != nil {
		logger.Warn("tiktoken unavailable, using heuristic token estimates", slog.Any("error", err))
		return text.HeuristicCounter{}
	}
	return tc
}

// applyMiddleware wraps the handler with the middleware chain.
// Order: Request ID → Tracing → Recovery → Logging → Metrics → Validation → Timeout
func applyMiddleware(logger *slog.Logger, handler http.Handler, requestTimeout time.Duration) http.Handler {
	chain := handler

	// Apply in reverse order (innermost to outermost)
	chain = hhttp.Timeout(requestTimeout)(chain)
	chain = hhttp.InputValidation(maxRequestBody)(chain)
	chain = hhttp.MetricsMiddleware(chain)
	chain = hhttp.Logging(logger)(chain)
	chain = hhttp.Recover(logger)(chain)
	chain = tracing.Middleware(chain)
	chain = requestid.Middleware(chain)

	return chain
}

// runServer starts the HTTP server and handles graceful shutdown.
func runServer(logger *slog.Logger, components *ServerComponents, version string) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	srv := &http.Server{
		Addr:              components.Addr,
		Handler:           components.Handler,
		ReadHeaderTimeout: 10 * time.Second, // Prevent Slowloris attacks
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		logger.Info("server starting",
			slog.String("addr", components.Addr),
			slog.String("version", version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	// In-flight summaries get a grace period before their contexts are cancelled.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(),
		pkgconfig.GetEnvDuration("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second))
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
	}
	cancel()
	logger.Info("server stopped")
}

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

	"github.com/kailas-cloud/remedex/internal/config"
	"github.com/kailas-cloud/remedex/internal/db"
	dbRedis "github.com/kailas-cloud/remedex/internal/db/redis"
	"github.com/kailas-cloud/remedex/internal/domain"
	logpkg "github.com/kailas-cloud/remedex/internal/logger"
	"github.com/kailas-cloud/remedex/internal/metrics"
	budgetrepo "github.com/kailas-cloud/remedex/internal/repository/budget"
	"github.com/kailas-cloud/remedex/internal/repository/predcache"
	"github.com/kailas-cloud/remedex/internal/repository/remedytable"
	chiTransport "github.com/kailas-cloud/remedex/internal/transport/chi"
	openaiInf "github.com/kailas-cloud/remedex/internal/transport/openai"
	classifyuc "github.com/kailas-cloud/remedex/internal/usecase/classify"
	consultuc "github.com/kailas-cloud/remedex/internal/usecase/consult"
	healthuc "github.com/kailas-cloud/remedex/internal/usecase/health"
	inferenceuc "github.com/kailas-cloud/remedex/internal/usecase/inference"
	remedyuc "github.com/kailas-cloud/remedex/internal/usecase/remedy"
	usageuc "github.com/kailas-cloud/remedex/internal/usecase/usage"
	"github.com/kailas-cloud/remedex/internal/version"
)

func main() {
	// .env is optional; real environment variables win
	if err := config.LoadDotEnv(); err != nil {
		panic("failed to load .env: " + err.Error())
	}

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

	logger.Info("Starting remedex API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("classifier_model", cfg.Classifier.Model),
		zap.String("dataset", cfg.Dataset.Path),
	)

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// Remedy table is loaded once and never reloaded
	table, err := remedytable.Load(ctx, remedytable.Source{
		Path:    cfg.Dataset.Path,
		Format:  cfg.Dataset.Format,
		Charset: cfg.Dataset.Charset,
	})
	if err != nil {
		logger.Fatal("Failed to load remedy table", zap.Error(err))
	}
	logger.Info("Remedy table loaded",
		zap.Int("rows", table.Len()),
		zap.Int("skipped", table.Skipped()),
	)
	if unknown := table.UncataloguedDiseases(); len(unknown) > 0 {
		logger.Warn("Remedy table lists diseases the classifier can never predict",
			zap.Strings("diseases", unknown))
	}

	// Register metrics explicitly (no init())
	metrics.RegisterInferenceMetrics()
	metrics.RegisterConsultationMetrics()
	metrics.RemedyTableRows.Set(float64(table.Len()))

	// Optional key-value store: prediction cache + budget persistence
	var store db.Store
	if cfg.Database.Enabled() {
		// rueidis speaks to Redis and Valkey alike; the driver name is informational
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Database.Addrs,
			Password: cfg.Database.Password,
		})
		if err != nil {
			logger.Fatal("Failed to create database store", zap.Error(err))
		}
		defer s.Close()

		if err := s.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
			logger.Fatal("Database not ready", zap.Error(err))
		}
		logger.Info("Connected to database",
			zap.String("db_driver", cfg.Database.Driver),
			zap.Strings("db_addrs", cfg.Database.Addrs),
		)
		store = s
	}

	// Single BudgetTracker shared by the inferer chain and the usage service.
	var budget *inferenceuc.BudgetTracker
	if budgetCfg := cfg.Classifier.Budget; budgetCfg.Enabled() {
		action := inferenceuc.BudgetActionWarn
		if budgetCfg.Action == "reject" {
			action = inferenceuc.BudgetActionReject
		}
		budget = inferenceuc.NewBudgetTracker(
			cfg.Classifier.Provider, budgetCfg.DailyTokenLimit, budgetCfg.MonthlyTokenLimit, action, logger,
		)
		if store != nil {
			budget.WithStore(ctx, budgetrepo.New(store))
		}
	}

	// Pass nil interface (not typed nil pointer!) if budget is not configured.
	// Go gotcha: (*BudgetTracker)(nil) wrapped in BudgetChecker != nil.
	var budgetChecker inferenceuc.BudgetChecker
	var budgetReader usageuc.BudgetReader
	if budget != nil {
		budgetChecker = budget
		budgetReader = budget
	}

	inferer, err := buildInferer(cfg, store, budgetChecker, logger)
	if err != nil {
		logger.Fatal("Failed to create inferer", zap.Error(err))
	}
	logger.Info("Inferer created",
		zap.String("provider", cfg.Classifier.Provider),
		zap.String("model", cfg.Classifier.Model),
		zap.Bool("cache", cfg.Cache.Enabled),
	)

	// Use case services
	classifySvc := classifyuc.New(inferer)
	remedySvc := remedyuc.New(table, nil)
	consultSvc := consultuc.New(classifySvc, remedySvc)
	usageSvc := usageuc.New(budgetReader, cfg.Classifier.Model)

	var pinger healthuc.StorePinger
	if store != nil {
		pinger = store
	}
	var inferenceChecker healthuc.InferenceChecker
	if cfg.Classifier.HealthCheck {
		inferenceChecker = newInferenceHealthChecker(inferer)
	}
	healthSvc := healthuc.New(table, pinger, inferenceChecker)

	server := chiTransport.NewServer(consultSvc, classifySvc, remedySvc, usageSvc, healthSvc, logger)

	var inferenceMiddlewares []func(http.Handler) http.Handler
	if cfg.RateLimit.Enabled {
		limiter := chiTransport.NewClientRateLimiter(cfg.RateLimit.RatePerSec, cfg.RateLimit.Burst)
		go limiter.RunPruner(ctx, time.Duration(cfg.RateLimit.PruneIntervalSec)*time.Second)
		inferenceMiddlewares = append(inferenceMiddlewares, limiter.Middleware())
	}

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	chiTransport.HandlerWithOptions(server, chiTransport.ServerOptions{
		BaseRouter:           r,
		InferenceMiddlewares: inferenceMiddlewares,
		ErrorHandlerFunc: func(w http.ResponseWriter, _ *http.Request, err error) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(chiTransport.ErrorResponse{
				Code:    chiTransport.ErrorResponseCodeBadRequest,
				Message: err.Error(),
			})
		},
	})

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
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// inferenceHealthChecker wraps domain.Inferer to implement health.InferenceChecker.
type inferenceHealthChecker struct {
	inferer domain.Inferer
}

func newInferenceHealthChecker(inferer domain.Inferer) *inferenceHealthChecker {
	return &inferenceHealthChecker{inferer: inferer}
}

func (h *inferenceHealthChecker) HealthCheck(ctx context.Context) error {
	if hc, ok := h.inferer.(domain.HealthChecker); ok {
		if err := hc.HealthCheck(ctx); err != nil {
			return fmt.Errorf("inference health check: %w", err)
		}
	}
	return nil
}

// buildInferer assembles the decorator chain: OpenAI -> Timeout -> Instrumented -> Cached
func buildInferer(
	cfg config.Config,
	store db.Store,
	budget inferenceuc.BudgetChecker,
	logger *zap.Logger,
) (domain.Inferer, error) {
	// Base provider (with transport metrics built-in)
	base, err := openaiInf.NewInferer(&openaiInf.Config{
		APIKey:      cfg.Classifier.APIKey,
		BaseURL:     cfg.Classifier.BaseURL,
		Model:       cfg.Classifier.Model,
		Temperature: cfg.Classifier.Temperature,
		MaxTokens:   cfg.Classifier.MaxTokens,
		Provider:    cfg.Classifier.Provider,
		Logger:      logger,
	})
	if err != nil {
		return nil, fmt.Errorf("openai inferer: %w", err)
	}

	// Per-call deadline
	var inferer domain.Inferer = domain.NewTimeoutInferer(base, time.Duration(cfg.Classifier.TimeoutSec)*time.Second)

	// Instrumented (budget + metrics)
	inferer = inferenceuc.NewInstrumentedInferer(
		inferer, cfg.Classifier.Provider, cfg.Classifier.Model, budget, logger,
	)

	// Cached (outermost: hits spend no budget)
	if cfg.Cache.Enabled && store != nil {
		inferer = predcache.New(
			inferer, store, cfg.Classifier.Model,
			time.Duration(cfg.Cache.TTLSec)*time.Second,
			metrics.PredictionCacheTotal, logger,
		)
	}

	return inferer, nil
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

			requestID := chiMiddleware.GetReqID(r.Context())
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			ctx, reqLogger := logpkg.ForRequest(r.Context(), logger, requestID)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line: one line per request
			fields := append([]zap.Field{
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
				zap.String("inference_tokens", ww.Header().Get(metrics.InferenceTokensHeader)),
			}, logpkg.EventFields(ctx)...)
			reqLogger.Info("http_request", fields...)
		})
	}
}

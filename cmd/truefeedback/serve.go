package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"truefeedback/internal/config"
	"truefeedback/internal/llm"
	"truefeedback/internal/observability/logging"
	"truefeedback/internal/observability/metrics"
	impl "truefeedback/internal/service/impl"
	"truefeedback/internal/store"
	"truefeedback/internal/suggest"
	httpx "truefeedback/internal/transport/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 15 * time.Second

func serveCmd(envFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			config.LoadDotEnv(*envFile)
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg)
		},
	}
}

func serve(ctx context.Context, cfg config.Config) error {
	logger := logging.NewLogger(logging.Config{
		ServiceName: appName,
		Environment: cfg.Environment,
		Level:       cfg.LogLevel,
	})
	slog.SetDefault(logger)
	logger.Info("starting service", "version", Version)

	db, err := store.Open(store.Config{Driver: cfg.DatabaseDriver, DSN: cfg.DatabaseURL, LogSQL: cfg.LogSQL})
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}
	if cfg.AutoMigrate {
		if err := store.Migrate(ctx, db, cfg.DatabaseDriver); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	st := store.New(db)

	metrics.MustRegister(prometheus.DefaultRegisterer, appName)

	var provider suggest.Provider
	if cfg.GeminiAPIKey != "" {
		p, err := llm.NewGenAIProvider(ctx, cfg.GeminiAPIKey, cfg.SuggestModel)
		if err != nil {
			return err
		}
		logger.Info("suggestion provider ready", "provider", p.Name(), "model", cfg.SuggestModel)
		provider = p
	} else {
		logger.Warn("GEMINI_API_KEY not set; suggestions will fail over to defaults")
	}

	tokens := impl.NewTokenServiceHS256(impl.TokenConfig{
		Issuer:     cfg.Issuer,
		AccessTTL:  cfg.AccessTTL,
		SigningKey: []byte(cfg.SigningKey),
	}, logger)
	accounts := impl.NewAccountServiceImpl(
		st,
		impl.NewPasswordServiceArgon2id(1, impl.DefaultArgon2Params()),
		tokens,
		impl.NewLogEmailService(logger),
		cfg.VerifyCodeTTL,
		logger,
	)

	router := httpx.NewRouter(httpx.Deps{
		Accounts:               accounts,
		Messages:               impl.NewMessageServiceImpl(st, logger),
		Suggestions:            suggest.NewGenerator(provider, cfg.SuggestTimeout, logger),
		Tokens:                 tokens,
		Logger:                 logger,
		CORSOrigins:            cfg.CORSOrigins,
		RateLimitPerMinute:     cfg.RateLimitPerMinute,
		SendRateLimitPerMinute: cfg.SendRateLimitPerMinute,
	})

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("listening", "addr", srv.Addr, "issuer", cfg.Issuer)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

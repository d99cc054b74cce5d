package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/types"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/example/rentlink/config"
	"github.com/example/rentlink/logging"
	"github.com/example/rentlink/modules/api"
	"github.com/example/rentlink/modules/app"
	"github.com/example/rentlink/modules/assistant"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the engine behind the HTTP and websocket surface",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, closeLogs, err := setup(cmd)
			if err != nil {
				return err
			}
			code := serve(cmd.Context(), cfg, logger)
			closeLogs()
			if code != 0 {
				os.Exit(code)
			}
			return nil
		},
	}
}

// setup loads configuration and builds the application logger.
func setup(cmd *cobra.Command) (config.Config, types.Logger, func(), error) {
	files, _ := cmd.Flags().GetStringSlice("env-file")
	cfg, err := config.Load(files...)
	if err != nil {
		return config.Config{}, nil, nil, err
	}

	if quiet, _ := cmd.Flags().GetBool("quiet"); quiet {
		return cfg, logging.Nop(), func() {}, nil
	}

	level, ok := logging.ParseLevel(cfg.LogLevel)
	if !ok {
		cfg.Warnings = append(cfg.Warnings, fmt.Sprintf("LOG_LEVEL=%q is invalid, using info", cfg.LogLevel))
		level = slog.LevelInfo
	}
	logger, closer, err := logging.New(logging.Options{
		Writer: os.Stderr,
		Level:  level,
		Format: logging.Format(cfg.LogFormat),
		Fluent: logging.FluentOptions{
			Host:      cfg.FluentBit.Host,
			Port:      cfg.FluentBit.Port,
			TagPrefix: cfg.FluentBit.TagPrefix,
		},
	})
	if err != nil {
		return config.Config{}, nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}
	for _, w := range cfg.Warnings {
		logger.Warn("Configuration fallback", "detail", w)
	}
	return cfg, logger, func() {
		if err := closer(); err != nil {
			fmt.Fprintln(os.Stderr, "failed to close log forwarder:", err)
		}
	}, nil
}

// newInterpreter wraps the provider with the search cache, backed by Redis
// when REDIS_ADDR is set.
func newInterpreter(ctx context.Context, cfg config.Config, provider assistant.Provider, logger types.Logger) (*assistant.CachedInterpreter, func()) {
	if cfg.RedisAddr != "" {
		store := assistant.NewRedisStore(redis.NewClient(&redis.Options{Addr: cfg.RedisAddr}), "rentlink:", cfg.CacheTTL)
		err := store.Ping(ctx)
		if err == nil {
			logger.Info("Search cache using Redis", "addr", cfg.RedisAddr)
			return assistant.NewCachedInterpreter(provider, store, logger), func() { _ = store.Close() }
		}
		logger.Warn("Redis unavailable, using in-memory search cache", "addr", cfg.RedisAddr, "error", err)
		_ = store.Close()
	}
	store := assistant.NewMemoryStore(cfg.CacheTTL, nil)
	return assistant.NewCachedInterpreter(provider, store, logger), func() {}
}

func serve(ctx context.Context, cfg config.Config, logger types.Logger) int {
	provider, err := assistant.NewProvider(ctx, cfg.APIKey, cfg.Model)
	if err != nil {
		logger.Error("Failed to create generative-text provider", "error", err)
		return 1
	}
	if _, ok := provider.(assistant.Unavailable); ok {
		logger.Warn("No API key configured, AI features are disabled")
	}
	interpreter, closeCache := newInterpreter(ctx, cfg, provider, logger)
	defer closeCache()

	monoApp, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(cfg.ShutdownTimeout),
		mono.WithLogLevel(mono.LogLevelInfo),
		mono.WithLogFormat(mono.LogFormatText),
	)
	if err != nil {
		logger.Error("Failed to create application", "error", err)
		return 1
	}

	appModule, err := app.NewModule(
		app.Options{
			ResetOnLogout: cfg.ResetOnLogout,
			RequireTitle:  cfg.RequireTitle,
		},
		app.RuntimeOptions{
			Describer:   provider,
			Interpreter: interpreter,
		},
		logger,
	)
	if err != nil {
		logger.Error("Failed to create app module", "error", err)
		return 1
	}
	apiModule := api.NewModule(api.Options{
		Addr:         cfg.HTTPAddr,
		AllowOrigins: cfg.CORSOrigins,
	}, logger)

	// app owns the state; api depends on its services and consumes its events.
	monoApp.Register(appModule)
	monoApp.Register(apiModule)

	if err := monoApp.Start(ctx); err != nil {
		logger.Error("Failed to start application", "error", err)
		return 1
	}
	logger.Info("RentLink started", "addr", cfg.HTTPAddr)

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		cfg.ShutdownTimeout,
		map[string]gfshutdown.Operation{
			"mono-app": func(ctx context.Context) error {
				logger.Info("Graceful shutdown initiated")
				return monoApp.Stop(ctx)
			},
		},
	)

	exitCode := <-wait
	stats := interpreter.Stats()
	logger.Info("Application exited", "code", exitCode, "cache_hits", stats.Hits, "cache_misses", stats.Misses)
	return exitCode
}

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

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	goredis "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/storefront-core/server/internal/assistant/graph"
	"github.com/storefront-core/server/internal/catalog"
	"github.com/storefront-core/server/internal/checkout"
	"github.com/storefront-core/server/internal/core"
	"github.com/storefront-core/server/internal/httpapi"
	"github.com/storefront-core/server/internal/model"
	"github.com/storefront-core/server/internal/repo"
	"github.com/storefront-core/server/internal/session"
	logx "github.com/storefront-core/server/pkg/logger"
	pkgredis "github.com/storefront-core/server/pkg/redis"
)

// AppConfig defines all configurable parameters of the storefront server,
// sourced from environment variables (loaded from .env for local runs).
type AppConfig struct {
	Environment string `envconfig:"ENVIRONMENT" default:"development"`

	// Infrastructure
	HTTP  model.HTTPConfig
	Redis pkgredis.Config

	// Storefront
	Session  model.SessionConfig
	Catalog  model.CatalogConfig
	Checkout model.CheckoutConfig

	// Assistant; disabled when GEMINI_API_KEY is empty.
	APIKey       string `envconfig:"GEMINI_API_KEY"`
	BaseURL      string `envconfig:"GEMINI_BASE_URL"`
	Response     model.ResponseModelConfig
	Prompt       model.ResponsePromptConfig
	Conversation model.ConversationConfig
}

func main() {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Warning: could not load .env file: %v\n", err)
	}

	var cfg AppConfig
	if err := envconfig.Process("", &cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to process environment config: %v\n", err)
		os.Exit(1)
	}

	env := core.ParseEnvironment(cfg.Environment)
	logx.Init(logx.LoggerOpts{Environment: env})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		logx.Fatal().Err(err).Msg("storefront stopped")
	}
}

func run(ctx context.Context, cfg AppConfig) error {
	readTimeout, err := parseDuration("HTTP_READ_TIMEOUT", cfg.HTTP.ReadTimeout)
	if err != nil {
		return err
	}
	writeTimeout, err := parseDuration("HTTP_WRITE_TIMEOUT", cfg.HTTP.WriteTimeout)
	if err != nil {
		return err
	}
	sessionTTL, err := parseDuration("SESSION_TTL", cfg.Session.TTL)
	if err != nil {
		return err
	}
	sweepInterval, err := parseDuration("SESSION_SWEEP_INTERVAL", cfg.Session.SweepInterval)
	if err != nil {
		return err
	}
	conversationTTL, err := parseDuration("CONVERSATION_TTL", cfg.Conversation.TTL)
	if err != nil {
		return err
	}
	threshold, err := decimal.NewFromString(cfg.Checkout.FreeShippingThreshold)
	if err != nil {
		return fmt.Errorf("invalid CHECKOUT_FREE_SHIPPING_THRESHOLD %q: %w", cfg.Checkout.FreeShippingThreshold, err)
	}

	products, err := loadCatalog(cfg.Catalog)
	if err != nil {
		return err
	}

	var journal model.ActivityJournal = repo.NewMemoryActivityJournal()
	var conversations model.ConversationRepository = repo.NewMemoryConversationRepository()
	if cfg.Redis.Enabled() {
		rdb, err := cfg.Redis.New(ctx)
		if err != nil {
			return fmt.Errorf("initialise Redis client: %w", err)
		}
		defer closeRedis(rdb)
		journal = repo.NewRedisActivityJournal(rdb, sessionTTL)
		conversations = repo.NewRedisConversationRepository(rdb, conversationTTL)
		logx.Info().Msg("Connected to Redis")
	} else {
		logx.Warn().Msg("REDIS_URL not set; using in-memory journal and conversation history")
	}

	sessions := session.NewManager(session.Config{
		TTL:           sessionTTL,
		SweepInterval: sweepInterval,
		Journal:       journal,
		Checkout: checkout.NewService(checkout.Config{
			DeliveryDays:          cfg.Checkout.DeliveryDays,
			FreeShippingThreshold: threshold,
		}),
	})
	sessions.OnEnd(func(ctx context.Context, sessionID string) {
		if err := conversations.ClearHistory(ctx, sessionID); err != nil {
			logx.Warn().Err(err).Str("session_id", sessionID).Msg("Failed to clear conversation history")
		}
	})

	var assistant graph.Runner
	if cfg.APIKey != "" {
		assistant, err = graph.BuildResponseGraph(ctx, graph.Config{
			APIKey:           cfg.APIKey,
			BaseURL:          cfg.BaseURL,
			ResponseModel:    cfg.Response,
			ResponsePrompt:   cfg.Prompt,
			Conversation:     cfg.Conversation,
			ConversationRepo: conversations,
			Catalog:          products,
			Carts:            sessions,
		})
		if err != nil {
			return fmt.Errorf("build assistant: %w", err)
		}
		logx.Info().Str("model", cfg.Response.Model).Msg("Shopping assistant enabled")
	} else {
		logx.Warn().Msg("GEMINI_API_KEY not set; shopping assistant disabled")
	}

	go sessions.Run(ctx)

	srv := &http.Server{
		Addr: cfg.HTTP.Addr,
		Handler: httpapi.NewRouter(httpapi.Options{
			Catalog:        products,
			Sessions:       sessions,
			Assistant:      assistant,
			RequestTimeout: writeTimeout,
		}),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logx.Info().Str("addr", srv.Addr).Str("environment", cfg.Environment).Msg("Storefront listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logx.Info().Msg("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func loadCatalog(cfg model.CatalogConfig) (*catalog.Catalog, error) {
	if cfg.Path == "" {
		c := catalog.Sample()
		logx.Info().Int("products", c.Len()).Msg("Using sample catalog")
		return c, nil
	}
	c, err := catalog.Load(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", cfg.Path, err)
	}
	logx.Info().Str("path", cfg.Path).Int("products", c.Len()).Msg("Catalog loaded")
	return c, nil
}

func parseDuration(key, v string) (time.Duration, error) {
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return d, nil
}

func closeRedis(rdb *goredis.Client) {
	if err := rdb.Close(); err != nil {
		logx.Warn().Err(err).Msg("Failed to close Redis client")
	}
}

package cli

import (
	"context"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/unify"
	"github.com/aretw0/unify/internal/logging"
	"github.com/aretw0/unify/pkg/adapters/file"
	"github.com/aretw0/unify/pkg/adapters/memory"
	"github.com/aretw0/unify/pkg/adapters/redis"
	"github.com/aretw0/unify/pkg/adapters/sqlite"
	"github.com/aretw0/unify/pkg/domain"
	"github.com/aretw0/unify/pkg/persistence/middleware"
	"github.com/aretw0/unify/pkg/ports"
	"github.com/aretw0/unify/pkg/runner"
)

// CreateLogger configures the application logger.
// Without --debug or --log-level nothing is logged.
func CreateLogger(opts Options) (*slog.Logger, error) {
	if opts.Debug {
		return logging.New(slog.LevelDebug), nil
	}
	if opts.LogLevel == "" {
		return logging.NewNop(), nil
	}
	level, err := logging.ParseLevel(opts.LogLevel)
	if err != nil {
		return nil, err
	}
	return logging.New(level), nil
}

// CreateEngine builds an engine from the engine flags.
// In debug mode every unification is traced.
func CreateEngine(opts Options, logger *slog.Logger, hooks ...domain.LifecycleHooks) *unify.Engine {
	engineOpts := []unify.Option{unify.WithLogger(logger)}

	if opts.Debug {
		hooks = append(hooks, createDebugHooks(logger))
	}
	for _, h := range hooks {
		engineOpts = append(engineOpts, unify.WithLifecycleHooks(h))
	}
	if opts.NoOccursCheck {
		engineOpts = append(engineOpts, unify.WithoutOccursCheck())
	}
	if opts.MaxSteps > 0 {
		engineOpts = append(engineOpts, unify.WithMaxSteps(opts.MaxSteps))
	}

	return unify.New(engineOpts...)
}

// CreateStore opens the solution store named by opts.Store and wraps it with the
// cache and encryption middleware when configured. A nil store means solutions are
// not persisted. The returned close function is never nil.
func CreateStore(ctx context.Context, opts Options) (ports.SolutionStore, func() error, error) {
	noop := func() error { return nil }

	var (
		store  ports.SolutionStore
		closer = noop
	)

	switch strings.ToLower(opts.Store) {
	case "", "none":
		return nil, noop, nil
	case "memory":
		store = memory.NewStore()
	case "file":
		store = file.New(opts.StorePath)
	case "sqlite":
		path := opts.StorePath
		if path == "" {
			path = defaultSQLitePath
		}
		if path != ":memory:" {
			if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
				return nil, noop, fmt.Errorf("failed to create store directory: %w", err)
			}
		}
		s, err := sqlite.Open(path)
		if err != nil {
			return nil, noop, err
		}
		store, closer = s, s.Close
	case "redis":
		addr := opts.RedisAddr
		if addr == "" {
			addr = defaultRedisAddr
		}
		s := redis.New(addr, os.Getenv(EnvRedisPassword), 0)
		if err := s.Ping(ctx); err != nil {
			_ = s.Close()
			return nil, noop, fmt.Errorf("redis at %s: %w", addr, err)
		}
		store, closer = s, s.Close
	default:
		return nil, noop, fmt.Errorf("unknown store %q (want memory, file, sqlite or redis)", opts.Store)
	}

	var mws []middleware.Middleware
	if opts.CacheSize > 0 {
		mw, err := middleware.NewCacheMiddleware(opts.CacheSize)
		if err != nil {
			_ = closer()
			return nil, noop, err
		}
		mws = append(mws, mw)
	}
	if opts.EncryptionKey != "" {
		cfg, err := encryptionConfig(opts)
		if err != nil {
			_ = closer()
			return nil, noop, err
		}
		mws = append(mws, middleware.NewEncryptionMiddleware(cfg))
	}

	return middleware.Chain(store, mws...), closer, nil
}

func encryptionConfig(opts Options) (middleware.EncryptionConfig, error) {
	active, err := decodeKey(opts.EncryptionKey)
	if err != nil {
		return middleware.EncryptionConfig{}, fmt.Errorf("encryption key: %w", err)
	}
	cfg := middleware.EncryptionConfig{ActiveKey: active}
	for i, k := range opts.FallbackKeys {
		key, err := decodeKey(k)
		if err != nil {
			return middleware.EncryptionConfig{}, fmt.Errorf("fallback key %d: %w", i+1, err)
		}
		cfg.FallbackKeys = append(cfg.FallbackKeys, key)
	}
	return cfg, nil
}

func decodeKey(s string) ([]byte, error) {
	key, err := hex.DecodeString(strings.TrimSpace(s))
	if err != nil {
		return nil, fmt.Errorf("must be hex encoded: %w", err)
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("must be 32 bytes, got %d", len(key))
	}
	return key, nil
}

// CreateRunner wires logger, engine and store into a runner.
// The returned close function releases the store.
func CreateRunner(ctx context.Context, opts Options, hooks ...domain.LifecycleHooks) (*runner.Runner, func() error, error) {
	logger, err := CreateLogger(opts)
	if err != nil {
		return nil, nil, err
	}

	store, closer, err := CreateStore(ctx, opts)
	if err != nil {
		return nil, nil, err
	}

	runnerOpts := []runner.Option{
		runner.WithLogger(logger),
		runner.WithEngine(CreateEngine(opts, logger, hooks...)),
		runner.WithSanitizer(),
	}
	if store != nil {
		runnerOpts = append(runnerOpts, runner.WithStore(store))
	}

	return runner.NewRunner(runnerOpts...), closer, nil
}

package cli

import (
	"fmt"
	"log/slog"

	"github.com/aretw0/lindenmayer"
	"github.com/aretw0/lindenmayer/internal/config"
	"github.com/aretw0/lindenmayer/pkg/adapters/file"
	"github.com/aretw0/lindenmayer/pkg/adapters/memory"
	"github.com/aretw0/lindenmayer/pkg/adapters/redis"
	"github.com/aretw0/lindenmayer/pkg/catalog"
	"github.com/aretw0/lindenmayer/pkg/domain"
	"github.com/aretw0/lindenmayer/pkg/observability"
	"github.com/aretw0/lindenmayer/pkg/ports"
)

// OpenStore builds the grammar store selected by cfg. The memory store starts
// with the bundled catalog. The returned close function is never nil.
func OpenStore(cfg config.Config) (ports.GrammarStore, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Store {
	case config.StoreMemory:
		defs, err := catalog.Definitions()
		if err != nil {
			return nil, noop, err
		}
		store, err := memory.NewStore(defs...)
		if err != nil {
			return nil, noop, err
		}
		return store, noop, nil

	case config.StoreFile:
		return file.New(cfg.Dir), noop, nil

	case config.StoreRedis:
		opts := []redis.Option{redis.WithPrefix(cfg.RedisPrefix)}
		if cfg.RedisTTL > 0 {
			opts = append(opts, redis.WithTTL(cfg.RedisTTL))
		}
		store := redis.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, opts...)
		return store, store.Close, nil
	}
	return nil, noop, fmt.Errorf("%w: unknown store %q", config.ErrInvalidConfig, cfg.Store)
}

// NewEngine initializes an engine with standard CLI conventions: the store
// from cfg, the depth cap and logging hooks, plus any extra hooks.
func NewEngine(cfg config.Config, logger *slog.Logger, hooks ...domain.LifecycleHooks) (*lindenmayer.Engine, func() error, error) {
	store, closeStore, err := OpenStore(cfg)
	if err != nil {
		return nil, closeStore, err
	}

	all := append([]domain.LifecycleHooks{observability.LogHooks(logger)}, hooks...)
	engine, err := lindenmayer.New(store,
		lindenmayer.WithLogger(logger),
		lindenmayer.WithMaxDepth(cfg.MaxDepth),
		lindenmayer.WithLifecycleHooks(observability.Combine(all...)),
	)
	if err != nil {
		_ = closeStore()
		return nil, func() error { return nil }, fmt.Errorf("error initializing engine: %w", err)
	}
	return engine, closeStore, nil
}

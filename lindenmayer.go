package lindenmayer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"

	"github.com/aretw0/lindenmayer/pkg/adapters/memory"
	"github.com/aretw0/lindenmayer/pkg/catalog"
	"github.com/aretw0/lindenmayer/pkg/domain"
	"github.com/aretw0/lindenmayer/pkg/expansion"
	"github.com/aretw0/lindenmayer/pkg/ports"
	"github.com/google/uuid"
)

// ErrDepthLimit is returned when a request asks for more rounds than the
// engine allows (see WithMaxDepth).
var ErrDepthLimit = errors.New("depth exceeds the configured limit")

// Engine is the high-level entry point of the library.
// It resolves grammars through a GrammarStore and opens expansion runs on them.
// Safe for concurrent use: every run owns its own expansion state.
type Engine struct {
	store    ports.GrammarStore
	hooks    domain.LifecycleHooks
	logger   *slog.Logger
	maxDepth int
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithMaxDepth caps the depth a run may request. Zero means no cap.
func WithMaxDepth(depth int) Option {
	return func(e *Engine) {
		e.maxDepth = depth
	}
}

// New creates an Engine over store.
// A nil store is replaced by an in-memory store holding the bundled catalog.
func New(store ports.GrammarStore, opts ...Option) (*Engine, error) {
	eng := &Engine{store: store}
	for _, opt := range opts {
		opt(eng)
	}

	if eng.maxDepth < 0 {
		return nil, fmt.Errorf("max depth must not be negative: %d", eng.maxDepth)
	}

	if eng.logger == nil {
		eng.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	if eng.store == nil {
		defs, err := catalog.Definitions()
		if err != nil {
			return nil, fmt.Errorf("failed to load catalog: %w", err)
		}
		mem, err := memory.NewStore(defs...)
		if err != nil {
			return nil, err
		}
		eng.store = mem
	}

	return eng, nil
}

// Store returns the grammar store the engine reads from.
func (e *Engine) Store() ports.GrammarStore {
	return e.store
}

// Request describes one expansion run.
type Request struct {
	// Depth is the number of rewrite rounds.
	Depth int
	// Seed fixes the generator of a stochastic grammar. When nil a seed is
	// drawn from entropy and reported by Run.Seed, so the run can be replayed.
	// Ignored for deterministic grammars.
	Seed *uint64
	// Limit stops the run after that many symbols. Zero means no limit.
	Limit int64
}

// Grammars lists the names available in the store.
func (e *Engine) Grammars(ctx context.Context) ([]string, error) {
	return e.store.List(ctx)
}

// Inspect loads a grammar definition.
func (e *Engine) Inspect(ctx context.Context, name string) (*domain.Definition, error) {
	return e.store.Load(ctx, name)
}

// Define validates and stores a grammar definition, replacing any previous one.
func (e *Engine) Define(ctx context.Context, def *domain.Definition) error {
	if err := e.store.Save(ctx, def); err != nil {
		return err
	}
	e.logger.Debug("grammar defined", "grammar", def.Name, "stochastic", def.Grammar.Stochastic())
	return nil
}

// Remove deletes a grammar definition. Removing an unknown name is not an error.
func (e *Engine) Remove(ctx context.Context, name string) error {
	return e.store.Delete(ctx, name)
}

// Open starts a lazy expansion of the named grammar. Nothing is expanded
// until the caller pulls symbols from the returned Run.
func (e *Engine) Open(ctx context.Context, name string, req Request) (*Run, error) {
	if req.Depth < 0 {
		return nil, fmt.Errorf("%w: %d", expansion.ErrNegativeDepth, req.Depth)
	}
	if e.maxDepth > 0 && req.Depth > e.maxDepth {
		return nil, fmt.Errorf("%w: %d > %d", ErrDepthLimit, req.Depth, e.maxDepth)
	}
	if req.Limit < 0 {
		return nil, fmt.Errorf("limit must not be negative: %d", req.Limit)
	}

	def, err := e.store.Load(ctx, name)
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()
	run := &Run{
		ID:      id,
		Grammar: def.Name,
		Depth:   req.Depth,
		ctx:     ctx,
		hooks:   e.hooks,
		logger:  e.logger.With("run_id", id, "grammar", def.Name),
		limit:   req.Limit,
	}

	if def.Grammar.Stochastic() {
		seed := rand.Uint64()
		if req.Seed != nil {
			seed = *req.Seed
		}
		run.seed = &seed
		run.source, err = expansion.NewStochastic(def.Grammar, req.Depth, expansion.WithSeed(seed))
	} else {
		run.source, err = expansion.NewLazy(def.Grammar, req.Depth)
	}
	if err != nil {
		return nil, err
	}

	run.start()
	return run, nil
}

// Materialize expands the named grammar completely and returns the sequence.
// Prefer Open for deep expansions: the result grows exponentially with depth.
func (e *Engine) Materialize(ctx context.Context, name string, req Request) (domain.Sequence, error) {
	run, err := e.Open(ctx, name, req)
	if err != nil {
		return nil, err
	}
	defer run.Close()
	return expansion.Collect(run)
}

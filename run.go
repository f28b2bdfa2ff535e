package lindenmayer

import (
	"context"
	"log/slog"
	"time"

	"github.com/aretw0/lindenmayer/pkg/domain"
	"github.com/aretw0/lindenmayer/pkg/expansion"
	"github.com/aretw0/lindenmayer/pkg/ports"
)

// ctxCheckInterval is how many symbols pass between two context checks.
const ctxCheckInterval = 256

type engineSource interface {
	ports.SymbolSource
	Stats() expansion.Stats
}

// Run is one open expansion. It is a ports.SymbolSource, so it plugs into
// expansion.Collect, expansion.All and turtle.NewReader.
//
// The run ends when the expansion is exhausted, fails, reaches its limit, its
// context is cancelled, or Close is called. The end hook fires exactly once.
// A Run is not safe for concurrent use.
type Run struct {
	// ID identifies the run in logs and lifecycle events.
	ID      string
	Grammar string
	Depth   int

	source engineSource
	seed   *uint64
	limit  int64

	ctx     context.Context
	hooks   domain.LifecycleHooks
	logger  *slog.Logger
	started time.Time

	emitted   int64
	truncated bool
	done      bool
	err       error
}

func (r *Run) start() {
	r.started = time.Now()
	r.logger.Debug("expansion opened", "depth", r.Depth)
	if r.hooks.OnExpansionStart != nil {
		r.hooks.OnExpansionStart(r.ctx, r.event(domain.EventExpansionStart))
	}
}

// Next returns the next symbol, or false once the run has ended.
func (r *Run) Next() (domain.Symbol, bool) {
	if r.done {
		return 0, false
	}
	if r.limit > 0 && r.emitted >= r.limit {
		// Only a pending symbol makes the output truncated.
		if _, more := r.source.Next(); more {
			r.truncated = true
			r.finish(nil)
		} else {
			r.finish(r.source.Err())
		}
		return 0, false
	}
	if r.emitted%ctxCheckInterval == 0 {
		if err := r.ctx.Err(); err != nil {
			r.finish(err)
			return 0, false
		}
	}

	sym, ok := r.source.Next()
	if !ok {
		r.finish(r.source.Err())
		return 0, false
	}
	r.emitted++
	return sym, true
}

// Err returns the error that ended the run: a sampling failure of a
// stochastic grammar or the context's error. Reaching Limit is not an error.
func (r *Run) Err() error {
	return r.err
}

// Close ends the run early. It is safe to call more than once.
func (r *Run) Close() error {
	r.finish(nil)
	return nil
}

// Seed returns the seed of a stochastic run, or false for deterministic grammars.
func (r *Run) Seed() (uint64, bool) {
	if r.seed == nil {
		return 0, false
	}
	return *r.seed, true
}

// Emitted returns how many symbols the run has produced.
func (r *Run) Emitted() int64 {
	return r.emitted
}

// Truncated reports whether the run stopped at its symbol limit with symbols
// still pending. An expansion exactly Limit symbols long is not truncated.
func (r *Run) Truncated() bool {
	return r.truncated
}

// Stats returns the work done by the underlying engine.
func (r *Run) Stats() expansion.Stats {
	return r.source.Stats()
}

func (r *Run) finish(err error) {
	if r.done {
		return
	}
	r.done = true
	r.err = err

	if err != nil {
		r.logger.Warn("expansion stopped", "emitted", r.emitted, "error", err)
	} else {
		r.logger.Debug("expansion closed", "emitted", r.emitted, "truncated", r.truncated)
	}
	if r.hooks.OnExpansionEnd != nil {
		r.hooks.OnExpansionEnd(r.ctx, r.event(domain.EventExpansionEnd))
	}
}

func (r *Run) event(typ domain.EventType) *domain.ExpansionEvent {
	e := &domain.ExpansionEvent{
		EventBase: domain.EventBase{
			Timestamp: time.Now(),
			Type:      typ,
			RunID:     r.ID,
		},
		Grammar:    r.Grammar,
		Depth:      r.Depth,
		Stochastic: r.seed != nil,
		Seed:       r.seed,
	}
	if typ == domain.EventExpansionEnd {
		e.Symbols = r.emitted
		e.Lookups = r.source.Stats().Rewrites
		e.Duration = time.Since(r.started)
		e.Err = r.err
	}
	return e
}

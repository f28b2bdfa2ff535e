package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/lindenmayer/pkg/domain"
)

// LogHooks logs every run at Debug on start and at Info (or Error) on end.
func LogHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnExpansionStart: func(ctx context.Context, e *domain.ExpansionEvent) {
			logger.DebugContext(ctx, "expansion_start",
				"run_id", e.RunID,
				"grammar", e.Grammar,
				"depth", e.Depth,
				"stochastic", e.Stochastic,
			)
		},
		OnExpansionEnd: func(ctx context.Context, e *domain.ExpansionEvent) {
			attrs := []any{
				"run_id", e.RunID,
				"grammar", e.Grammar,
				"depth", e.Depth,
				"symbols", e.Symbols,
				"lookups", e.Lookups,
				"duration", e.Duration,
			}
			if e.Seed != nil {
				attrs = append(attrs, "seed", *e.Seed)
			}
			if e.Err != nil {
				logger.ErrorContext(ctx, "expansion_end", append(attrs, "error", e.Err)...)
				return
			}
			logger.InfoContext(ctx, "expansion_end", attrs...)
		},
	}
}

// Combine calls every non-nil callback of hooks in order.
func Combine(hooks ...domain.LifecycleHooks) domain.LifecycleHooks {
	var starts, ends []func(context.Context, *domain.ExpansionEvent)
	for _, h := range hooks {
		if h.OnExpansionStart != nil {
			starts = append(starts, h.OnExpansionStart)
		}
		if h.OnExpansionEnd != nil {
			ends = append(ends, h.OnExpansionEnd)
		}
	}

	var combined domain.LifecycleHooks
	if len(starts) > 0 {
		combined.OnExpansionStart = func(ctx context.Context, e *domain.ExpansionEvent) {
			for _, fn := range starts {
				fn(ctx, e)
			}
		}
	}
	if len(ends) > 0 {
		combined.OnExpansionEnd = func(ctx context.Context, e *domain.ExpansionEvent) {
			for _, fn := range ends {
				fn(ctx, e)
			}
		}
	}
	return combined
}

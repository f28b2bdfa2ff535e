package lindenmayer_test

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"testing"

	"github.com/aretw0/lindenmayer"
	"github.com/aretw0/lindenmayer/pkg/domain"
	"github.com/aretw0/lindenmayer/pkg/dsl"
	"github.com/aretw0/lindenmayer/pkg/expansion"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubStore skips validation so malformed grammars can reach the engine.
type stubStore map[string]*domain.Definition

func (s stubStore) Save(_ context.Context, def *domain.Definition) error {
	s[def.Name] = def
	return nil
}

func (s stubStore) Load(_ context.Context, name string) (*domain.Definition, error) {
	def, ok := s[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrGrammarNotFound, name)
	}
	return def, nil
}

func (s stubStore) Delete(_ context.Context, name string) error {
	delete(s, name)
	return nil
}

func (s stubStore) List(context.Context) ([]string, error) {
	var names []string
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

type recorder struct {
	starts []*domain.ExpansionEvent
	ends   []*domain.ExpansionEvent
}

func (r *recorder) hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnExpansionStart: func(_ context.Context, e *domain.ExpansionEvent) { r.starts = append(r.starts, e) },
		OnExpansionEnd:   func(_ context.Context, e *domain.ExpansionEvent) { r.ends = append(r.ends, e) },
	}
}

func build(t *testing.T, b *dsl.Builder) *domain.Definition {
	t.Helper()
	def, err := b.Build()
	require.NoError(t, err)
	return def
}

func newEngine(t *testing.T, opts ...lindenmayer.Option) *lindenmayer.Engine {
	t.Helper()
	store := stubStore{}
	for _, def := range []*domain.Definition{
		build(t, dsl.New("algae").Axiom("A").Rule('A', "AB").Rule('B', "A")),
		build(t, dsl.New("coin").Axiom("XXXXXXXX").Choice('X', "H", 1).Choice('X', "T", 1)),
		{
			Name: "broken",
			Grammar: domain.NewStochasticGrammar(domain.NewSequence("AX"), domain.StochasticRules{
				'X': {{Replacement: domain.NewSequence("H"), Weight: 0}},
			}),
		},
	} {
		store[def.Name] = def
	}

	eng, err := lindenmayer.New(store, opts...)
	require.NoError(t, err)
	return eng
}

func TestEngine_Materialize(t *testing.T) {
	eng := newEngine(t)
	out, err := eng.Materialize(context.Background(), "algae", lindenmayer.Request{Depth: 5})
	require.NoError(t, err)
	assert.Equal(t, "ABAABABAABAAB", out.String())
}

func TestEngine_OpenFiresHooksOnce(t *testing.T) {
	rec := &recorder{}
	eng := newEngine(t, lindenmayer.WithLifecycleHooks(rec.hooks()))

	run, err := eng.Open(context.Background(), "algae", lindenmayer.Request{Depth: 5})
	require.NoError(t, err)
	require.Len(t, rec.starts, 1)
	assert.Empty(t, rec.ends, "nothing ends before the stream is drained")

	out, err := expansion.Collect(run)
	require.NoError(t, err)
	assert.Len(t, out, 13)
	require.NoError(t, run.Close())

	require.Len(t, rec.ends, 1)
	end := rec.ends[0]
	assert.Equal(t, run.ID, end.RunID)
	assert.Equal(t, rec.starts[0].RunID, end.RunID)
	assert.Equal(t, domain.EventExpansionEnd, end.Type)
	assert.Equal(t, "algae", end.Grammar)
	assert.Equal(t, int64(13), end.Symbols)
	assert.Equal(t, run.Stats().Rewrites, end.Lookups)
	assert.False(t, end.Stochastic)
	assert.Nil(t, end.Seed)
	assert.NoError(t, end.Err)
}

func TestEngine_Limit(t *testing.T) {
	eng := newEngine(t)
	run, err := eng.Open(context.Background(), "algae", lindenmayer.Request{Depth: 30, Limit: 4})
	require.NoError(t, err)

	out, err := expansion.Collect(run)
	require.NoError(t, err)
	assert.Equal(t, "ABAA", out.String())
	assert.True(t, run.Truncated())
	assert.Equal(t, int64(4), run.Emitted())
}

func TestEngine_LimitEqualToLength(t *testing.T) {
	eng := newEngine(t)
	run, err := eng.Open(context.Background(), "algae", lindenmayer.Request{Depth: 5, Limit: 13})
	require.NoError(t, err)

	out, err := expansion.Collect(run)
	require.NoError(t, err)
	assert.Equal(t, "ABAABABAABAAB", out.String())
	assert.False(t, run.Truncated())
	assert.Equal(t, int64(13), run.Emitted())

	run, err = eng.Open(context.Background(), "algae", lindenmayer.Request{Depth: 5, Limit: 12})
	require.NoError(t, err)
	out, err = expansion.Collect(run)
	require.NoError(t, err)
	assert.Len(t, out, 12)
	assert.True(t, run.Truncated())
}

func TestEngine_StochasticSeed(t *testing.T) {
	eng := newEngine(t)
	ctx := context.Background()

	seed := uint64(7)
	first, err := eng.Materialize(ctx, "coin", lindenmayer.Request{Depth: 1, Seed: &seed})
	require.NoError(t, err)
	second, err := eng.Materialize(ctx, "coin", lindenmayer.Request{Depth: 1, Seed: &seed})
	require.NoError(t, err)
	assert.Equal(t, first, second)

	// An entropy-seeded run reports its seed, which replays it.
	run, err := eng.Open(ctx, "coin", lindenmayer.Request{Depth: 1})
	require.NoError(t, err)
	drawn, ok := run.Seed()
	require.True(t, ok)
	out, err := expansion.Collect(run)
	require.NoError(t, err)

	replay, err := eng.Materialize(ctx, "coin", lindenmayer.Request{Depth: 1, Seed: &drawn})
	require.NoError(t, err)
	assert.Equal(t, out, replay)

	algae, err := eng.Open(ctx, "algae", lindenmayer.Request{Depth: 1, Seed: &seed})
	require.NoError(t, err)
	_, ok = algae.Seed()
	assert.False(t, ok, "deterministic grammars ignore seeds")
}

func TestEngine_SamplingFailure(t *testing.T) {
	rec := &recorder{}
	eng := newEngine(t, lindenmayer.WithLifecycleHooks(rec.hooks()))

	run, err := eng.Open(context.Background(), "broken", lindenmayer.Request{Depth: 1})
	require.NoError(t, err)

	out, err := expansion.Collect(run)
	assert.ErrorIs(t, err, domain.ErrNoCandidates)
	assert.Equal(t, "A", out.String())
	require.Len(t, rec.ends, 1)
	assert.ErrorIs(t, rec.ends[0].Err, domain.ErrNoCandidates)
}

func TestEngine_ContextCancel(t *testing.T) {
	eng := newEngine(t)
	ctx, cancel := context.WithCancel(context.Background())

	run, err := eng.Open(ctx, "algae", lindenmayer.Request{Depth: 40})
	require.NoError(t, err)
	for range 300 {
		_, ok := run.Next()
		require.True(t, ok)
	}
	cancel()

	_, err = expansion.Collect(run)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, run.Emitted(), int64(600))
}

func TestEngine_Errors(t *testing.T) {
	eng := newEngine(t, lindenmayer.WithMaxDepth(10))
	ctx := context.Background()

	_, err := eng.Open(ctx, "algae", lindenmayer.Request{Depth: 11})
	assert.ErrorIs(t, err, lindenmayer.ErrDepthLimit)

	_, err = eng.Open(ctx, "algae", lindenmayer.Request{Depth: -1})
	assert.ErrorIs(t, err, expansion.ErrNegativeDepth)

	_, err = eng.Open(ctx, "missing", lindenmayer.Request{Depth: 1})
	assert.ErrorIs(t, err, domain.ErrGrammarNotFound)

	_, err = lindenmayer.New(stubStore{}, lindenmayer.WithMaxDepth(-1))
	assert.Error(t, err)
}

func TestEngine_DefineAndRemove(t *testing.T) {
	eng := newEngine(t)
	ctx := context.Background()

	require.NoError(t, eng.Define(ctx, build(t, dsl.New("koch").Axiom("F").Rule('F', "F+F-F-F+F"))))
	names, err := eng.Grammars(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"algae", "broken", "coin", "koch"}, names)

	def, err := eng.Inspect(ctx, "koch")
	require.NoError(t, err)
	assert.Equal(t, "F", def.Grammar.Axiom().String())

	require.NoError(t, eng.Remove(ctx, "koch"))
	_, err = eng.Inspect(ctx, "koch")
	assert.ErrorIs(t, err, domain.ErrGrammarNotFound)
}

func TestNew_DefaultCatalog(t *testing.T) {
	eng, err := lindenmayer.New(nil)
	require.NoError(t, err)

	names, err := eng.Grammars(context.Background())
	require.NoError(t, err)
	assert.Contains(t, names, "fractal-plant")
	assert.Contains(t, names, "stochastic-plant")
}

func TestStream(t *testing.T) {
	eng := newEngine(t)
	ctx := context.Background()

	var buf bytes.Buffer
	run, err := eng.Open(ctx, "algae", lindenmayer.Request{Depth: 5})
	require.NoError(t, err)
	n, err := lindenmayer.Stream(&buf, run, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(13), n)
	assert.Equal(t, "ABAAB\nABAAB\nAAB\n", buf.String())

	buf.Reset()
	run, err = eng.Open(ctx, "algae", lindenmayer.Request{Depth: 2})
	require.NoError(t, err)
	_, err = lindenmayer.Stream(&buf, run, 0)
	require.NoError(t, err)
	assert.Equal(t, "ABA\n", buf.String())

	buf.Reset()
	run, err = eng.Open(ctx, "broken", lindenmayer.Request{Depth: 1})
	require.NoError(t, err)
	_, err = lindenmayer.Stream(&buf, run, 0)
	assert.ErrorIs(t, err, domain.ErrNoCandidates)
}

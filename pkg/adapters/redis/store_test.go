package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/lindenmayer/pkg/adapters/redis"
	"github.com/aretw0/lindenmayer/pkg/domain"
	"github.com/aretw0/lindenmayer/pkg/ports"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T) (*miniredis.Miniredis, *backend.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := backend.NewClient(&backend.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func algae(name string) *domain.Definition {
	return &domain.Definition{
		Name: name,
		Grammar: domain.NewGrammar(domain.NewSequence("A"), domain.Rules{
			'A': domain.NewSequence("AB"),
			'B': domain.NewSequence("A"),
		}),
	}
}

func TestRedisStore_Contract(t *testing.T) {
	_, client := newClient(t)

	store := redis.NewFromClient(client)
	ports.RunGrammarStoreContract(t, store)
}

func TestRedisStore_TTL_Expiration(t *testing.T) {
	mr, client := newClient(t)

	store := redis.NewFromClient(client, redis.WithTTL(1*time.Second))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, algae("short-lived")))

	names, err := store.List(ctx)
	assert.NoError(t, err)
	assert.Contains(t, names, "short-lived")

	// Key expiry in miniredis follows its own clock.
	mr.FastForward(2 * time.Second)

	_, err = store.Load(ctx, "short-lived")
	assert.ErrorIs(t, err, domain.ErrGrammarNotFound)

	// Index pruning compares against the wall clock.
	time.Sleep(1200 * time.Millisecond)

	names, err = store.List(ctx)
	assert.NoError(t, err)
	assert.Empty(t, names)
}

func TestRedisStore_Prefix(t *testing.T) {
	mr, client := newClient(t)

	store := redis.NewFromClient(client, redis.WithPrefix("custom:app:"))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, algae("algae")))

	assert.True(t, mr.Exists("custom:app:algae"), "Expected key with custom prefix to exist")
	assert.True(t, mr.Exists("custom:app:_index"), "Expected index with custom prefix to exist")

	names, err := store.List(ctx)
	assert.NoError(t, err)
	assert.Equal(t, []string{"algae"}, names)
}

func TestRedisStore_CorruptDocument(t *testing.T) {
	mr, client := newClient(t)
	store := redis.NewFromClient(client)

	require.NoError(t, mr.Set(redis.DefaultPrefix+"broken", "{not json"))
	_, err := store.Load(context.Background(), "broken")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrGrammarNotFound)

	require.NoError(t, mr.Set(redis.DefaultPrefix+"invalid", `{"name":"invalid","axiom":"A","rules":{"AB":"A"}}`))
	_, err = store.Load(context.Background(), "invalid")
	assert.ErrorIs(t, err, domain.ErrInvalidGrammar)
}

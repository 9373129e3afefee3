package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMemoryStore_LoadMissing(t *testing.T) {
	var v []string
	found, err := NewMemoryStore().Load(context.Background(), "nothing", &v)
	require.NoError(t, err)
	require.False(t, found)
}

func TestMemoryStore_ValuesAreCopied(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	in := []string{"a", "b"}
	require.NoError(t, s.Save(ctx, "k", in))
	in[0] = "changed"

	var out []string
	found, err := s.Load(ctx, "k", &out)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, []string{"a", "b"}, out)
}

func TestMemoryRateLimiter_Window(t *testing.T) {
	ctx := context.Background()
	l := NewMemoryRateLimiter(2, time.Minute)
	now := time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	for i, want := range []bool{true, true, false} {
		ok, err := l.Allow(ctx, "ip")
		require.NoError(t, err)
		require.Equal(t, want, ok, "hit %d", i)
	}

	ok, _ := l.Allow(ctx, "other-ip")
	require.True(t, ok)

	now = now.Add(time.Minute)
	ok, _ = l.Allow(ctx, "ip")
	require.True(t, ok, "new window")
}

func TestMemoryIdempotencyStore_Expires(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryIdempotencyStore()
	now := time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	require.NoError(t, s.Set(ctx, "k", `{"status":201}`, time.Hour))
	v, err := s.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, `{"status":201}`, v)

	now = now.Add(2 * time.Hour)
	v, err = s.Get(ctx, "k")
	require.NoError(t, err)
	require.Empty(t, v)
}

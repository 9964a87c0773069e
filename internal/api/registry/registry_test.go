package registry_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/taskdeck/taskdeck/internal/api/registry"
	"github.com/taskdeck/taskdeck/pkg/jwtx"
)

func testRegistries(t *testing.T) map[string]registry.Registry {
	t.Helper()

	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return map[string]registry.Registry{
		"memory": registry.NewMemory(),
		"redis":  registry.NewRedis(client, jwtx.DefaultRefreshTokenTTL),
	}
}

func TestRegistry_AddContainsRemove(t *testing.T) {
	for name, reg := range testRegistries(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			ok, err := reg.Contains(ctx, "tok-a")
			require.NoError(t, err)
			require.False(t, ok, "empty registry should contain nothing")

			require.NoError(t, reg.Add(ctx, "tok-a"))
			require.NoError(t, reg.Add(ctx, "tok-b"))

			ok, err = reg.Contains(ctx, "tok-a")
			require.NoError(t, err)
			require.True(t, ok)

			require.NoError(t, reg.Remove(ctx, "tok-a"))

			ok, err = reg.Contains(ctx, "tok-a")
			require.NoError(t, err)
			require.False(t, ok)

			ok, err = reg.Contains(ctx, "tok-b")
			require.NoError(t, err)
			require.True(t, ok, "removing one token must not revoke others")
		})
	}
}

func TestRegistry_DuplicateAddSingleRemove(t *testing.T) {
	for name, reg := range testRegistries(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			require.NoError(t, reg.Add(ctx, "tok"))
			require.NoError(t, reg.Add(ctx, "tok"))

			// One Remove revokes the token regardless of how many times it
			// was added.
			require.NoError(t, reg.Remove(ctx, "tok"))

			ok, err := reg.Contains(ctx, "tok")
			require.NoError(t, err)
			require.False(t, ok)
		})
	}
}

func TestRegistry_RemoveUnknownIsNoop(t *testing.T) {
	for name, reg := range testRegistries(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, reg.Remove(context.Background(), "never-added"))
		})
	}
}

func TestRedis_SetExpiry(t *testing.T) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	reg := registry.NewRedis(client, time.Minute)
	ctx := context.Background()

	require.NoError(t, reg.Add(ctx, "tok"))

	mr.FastForward(2 * time.Minute)

	ok, err := reg.Contains(ctx, "tok")
	require.NoError(t, err)
	require.False(t, ok, "tokens should age out with the set TTL")
}

func TestMemory_ConcurrentAccess(t *testing.T) {
	reg := registry.NewMemory()
	ctx := context.Background()

	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 100; j++ {
				_ = reg.Add(ctx, "shared")
				_, _ = reg.Contains(ctx, "shared")
				_ = reg.Remove(ctx, "shared")
			}
		}()
	}
	for i := 0; i < 8; i++ {
		<-done
	}
}

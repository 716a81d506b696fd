package locker

import (
	"context"
	"hyperschedule-service/internal/app/services/shared/redis"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLockService(t *testing.T) {
	ctx := context.Background()

	t.Run("Exclusive Until Unlocked", func(t *testing.T) {
		svc := NewLockService(redis.NewMemoryRepository(), zap.NewNop())

		acquired, token, err := svc.TryLock(ctx, "harvest:lock:hmc", time.Minute)
		require.NoError(t, err)
		require.True(t, acquired)
		assert.NotEmpty(t, token)

		again, _, err := svc.TryLock(ctx, "harvest:lock:hmc", time.Minute)
		require.NoError(t, err)
		assert.False(t, again)

		require.NoError(t, svc.Unlock(ctx, "harvest:lock:hmc", token))

		reacquired, _, err := svc.TryLock(ctx, "harvest:lock:hmc", time.Minute)
		require.NoError(t, err)
		assert.True(t, reacquired)
	})

	t.Run("Unlock With Foreign Token Fails", func(t *testing.T) {
		svc := NewLockService(redis.NewMemoryRepository(), zap.NewNop())
		_, _, err := svc.TryLock(ctx, "k", time.Minute)
		require.NoError(t, err)

		assert.Error(t, svc.Unlock(ctx, "k", "not-the-owner"))
	})

	t.Run("Unlock Missing Lock Is Noop", func(t *testing.T) {
		svc := NewLockService(redis.NewMemoryRepository(), zap.NewNop())
		assert.NoError(t, svc.Unlock(ctx, "k", "anything"))
	})

	t.Run("Refresh Requires Ownership", func(t *testing.T) {
		svc := NewLockService(redis.NewMemoryRepository(), zap.NewNop())
		_, token, err := svc.TryLock(ctx, "k", time.Minute)
		require.NoError(t, err)

		assert.NoError(t, svc.Refresh(ctx, "k", token, time.Minute))
		assert.Error(t, svc.Refresh(ctx, "k", "someone-else", time.Minute))
		assert.Error(t, svc.Refresh(ctx, "missing", token, time.Minute))
	})
}

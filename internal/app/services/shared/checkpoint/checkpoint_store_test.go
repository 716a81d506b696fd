package checkpoint

import (
	"context"
	"hyperschedule-service/internal/app/contracts"
	"hyperschedule-service/internal/app/models"
	"hyperschedule-service/internal/app/services/shared/redis"
	"hyperschedule-service/internal/pkg/constvars"
	"hyperschedule-service/internal/pkg/exceptions"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleCheckpoint(t *testing.T) *models.Checkpoint {
	t.Helper()
	days, err := models.NewWeekdays(nil, "TR")
	require.NoError(t, err)
	meeting, err := models.NewMeetingBuilder().
		Weekdays(days).
		Times(models.Time{Hour: 14, Minute: 45}, models.Time{Hour: 16}).
		Subterm(models.SecondHalfTerm).
		Build()
	require.NoError(t, err)

	result := models.NewScraperResult(models.Term{Code: "FA2026", Name: "Fall 2026"})
	require.NoError(t, result.AddCourse(nil, models.Course{Code: "A", Name: "Refined A", Schedule: models.Schedule{meeting}}))
	require.NoError(t, result.AddCourse(nil, models.Course{Code: "B", Name: "Coarse B"}))

	return &models.Checkpoint{
		RunID:     "run-1",
		Snapshot:  *result,
		Pending:   []string{"B"},
		Attempts:  map[string]int{"B": 2},
		UpdatedAt: time.Date(2026, time.October, 18, 10, 0, 0, 0, time.UTC),
	}
}

func exerciseStore(t *testing.T, store contracts.CheckpointStore) {
	ctx := context.Background()

	_, err := store.Load(ctx, "hmc")
	require.Error(t, err)
	assert.True(t, exceptions.IsKind(err, exceptions.KindNotFound))

	want := sampleCheckpoint(t)
	require.NoError(t, store.Save(ctx, "hmc", want))

	got, err := store.Load(ctx, "hmc")
	require.NoError(t, err)
	assert.Equal(t, "hmc", got.ScraperID)
	assert.Equal(t, want.Pending, got.Pending)
	assert.Equal(t, want.Attempts, got.Attempts)
	assert.Equal(t, want.Snapshot.Term, got.Snapshot.Term)
	assert.Equal(t, want.Snapshot.Courses, got.Snapshot.Courses)
	assert.True(t, want.UpdatedAt.Equal(got.UpdatedAt))

	replacement := sampleCheckpoint(t)
	replacement.Pending = nil
	require.NoError(t, store.Save(ctx, "hmc", replacement))
	got, err = store.Load(ctx, "hmc")
	require.NoError(t, err)
	assert.Empty(t, got.Pending)

	_, err = store.Load(ctx, "pomona")
	assert.True(t, exceptions.IsKind(err, exceptions.KindNotFound))

	require.NoError(t, store.Delete(ctx, "hmc"))
	require.NoError(t, store.Delete(ctx, "hmc"))
	_, err = store.Load(ctx, "hmc")
	assert.True(t, exceptions.IsKind(err, exceptions.KindNotFound))
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()
	exerciseStore(t, store)
	assert.Equal(t, 2, store.Saves())
	assert.Equal(t, 1, store.Deletes())
}

func TestMemoryStoreIsolation(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	checkpoint := sampleCheckpoint(t)
	require.NoError(t, store.Save(ctx, "hmc", checkpoint))

	checkpoint.Pending[0] = "mutated"
	loaded, err := store.Load(ctx, "hmc")
	require.NoError(t, err)
	assert.Equal(t, []string{"B"}, loaded.Pending)
}

func TestFileStore(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	require.NoError(t, err)
	exerciseStore(t, store)

	t.Run("No Temp Files Left Behind", func(t *testing.T) {
		require.NoError(t, store.Save(context.Background(), "hmc", sampleCheckpoint(t)))
		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "hmc.json", entries[0].Name())
	})

	t.Run("Corrupt File Is A Store Error", func(t *testing.T) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{not json"), 0o644))
		_, err := store.Load(context.Background(), "broken")
		require.Error(t, err)
		assert.True(t, exceptions.IsKind(err, exceptions.KindStore))
	})
}

func TestRedisStore(t *testing.T) {
	exerciseStore(t, NewRedisStore(redis.NewMemoryRepository(), time.Hour))
}

func TestNewStore(t *testing.T) {
	store, err := NewStore(constvars.CheckpointBackendMemory, StoreDependencies{})
	require.NoError(t, err)
	assert.NotNil(t, store)

	store, err = NewStore(constvars.CheckpointBackendRedis, StoreDependencies{RedisRepo: redis.NewMemoryRepository()})
	require.NoError(t, err)
	assert.NotNil(t, store)

	_, err = NewStore(constvars.CheckpointBackendMongo, StoreDependencies{})
	assert.True(t, exceptions.IsKind(err, exceptions.KindConfig))

	_, err = NewStore("etcd", StoreDependencies{})
	assert.True(t, exceptions.IsKind(err, exceptions.KindConfig))
}

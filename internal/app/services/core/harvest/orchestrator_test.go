package harvest

import (
	"context"
	"errors"
	"hyperschedule-service/internal/app/contracts"
	"hyperschedule-service/internal/app/models"
	"hyperschedule-service/internal/app/services/shared/checkpoint"
	"hyperschedule-service/internal/pkg/exceptions"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const testTerm = "FA2026"

// fakeCatalog lists coarse courses and refines them by filling Description.
type fakeCatalog struct {
	mu       sync.Mutex
	term     string
	codes    []string
	runErr   error
	fail     map[string]bool
	panics   map[string]bool
	renames  map[string]string
	keep     map[string]bool
	delay    time.Duration
	calls    map[string]int
	started  int
	finished int
}

func newFakeCatalog(codes ...string) *fakeCatalog {
	return &fakeCatalog{
		term:    testTerm,
		codes:   codes,
		fail:    map[string]bool{},
		panics:  map[string]bool{},
		renames: map[string]string{},
		keep:    map[string]bool{},
		calls:   map[string]int{},
	}
}

func (f *fakeCatalog) run(ctx context.Context) (*models.ScraperResult, error) {
	if f.runErr != nil {
		return nil, f.runErr
	}
	result := models.NewScraperResult(models.Term{Code: f.term})
	for _, code := range f.codes {
		if err := result.AddCourse(zap.NewNop(), models.Course{Code: code, Name: "coarse " + code}); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func (f *fakeCatalog) refine(ctx context.Context, course models.Course) (*models.Course, error) {
	f.mu.Lock()
	f.calls[course.Code]++
	f.started++
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.finished++
		f.mu.Unlock()
	}()

	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.panics[course.Code] {
		panic("selector exploded")
	}
	if f.fail[course.Code] {
		return nil, errors.New("detail page unavailable")
	}
	if f.keep[course.Code] {
		return nil, nil
	}
	if renamed, ok := f.renames[course.Code]; ok {
		course.Code = renamed
	}
	course.Description = "refined " + course.Code
	return &course, nil
}

func (f *fakeCatalog) callsFor(code string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[code]
}

func (f *fakeCatalog) scraper() contracts.Scraper {
	return contracts.NewScraper(contracts.ScraperFuncs{ScraperID: "hmc", RunFn: f.run, RefineFn: f.refine})
}

func (f *fakeCatalog) listingOnly() contracts.Scraper {
	return contracts.NewScraper(contracts.ScraperFuncs{ScraperID: "hmc", RunFn: f.run})
}

func seedCheckpoint(t *testing.T, store *checkpoint.MemoryStore, term string, refined []string, pending []string) {
	t.Helper()
	snapshot := models.NewScraperResult(models.Term{Code: term})
	for _, code := range refined {
		require.NoError(t, snapshot.AddCourse(zap.NewNop(), models.Course{Code: code, Name: "coarse " + code, Description: "refined earlier " + code}))
	}
	for _, code := range pending {
		require.NoError(t, snapshot.AddCourse(zap.NewNop(), models.Course{Code: code, Name: "coarse " + code}))
	}
	require.NoError(t, store.Save(context.Background(), "hmc", &models.Checkpoint{
		ScraperID: "hmc",
		Snapshot:  *snapshot,
		Pending:   pending,
	}))
}

func newTestOrchestrator(store contracts.CheckpointStore, opts Options) *Orchestrator {
	return NewOrchestrator(store, zap.NewNop(), opts)
}

func TestHarvestFixpoint(t *testing.T) {
	store := checkpoint.NewMemoryStore()
	catalog := newFakeCatalog("A", "B", "C")
	orchestrator := newTestOrchestrator(store, Options{Workers: 2})

	for i := 0; i < 2; i++ {
		out, err := orchestrator.Harvest(context.Background(), "", catalog.scraper())
		require.NoError(t, err)
		assert.Equal(t, StateCompleted, out.State)
		assert.Empty(t, out.Pending)
		assert.Equal(t, 3, out.Refined)
		assert.NotEmpty(t, out.RunID)
		assert.Equal(t, "refined B", out.Result.Courses["B"].Description)
	}

	assert.Equal(t, 0, store.Saves())
	_, err := store.Load(context.Background(), "hmc")
	assert.True(t, exceptions.IsKind(err, exceptions.KindNotFound))
}

func TestHarvestPartialFailure(t *testing.T) {
	store := checkpoint.NewMemoryStore()
	catalog := newFakeCatalog("A", "B", "C")
	catalog.fail["B"] = true
	orchestrator := newTestOrchestrator(store, Options{Workers: 3})

	out, err := orchestrator.Harvest(context.Background(), "run-1", catalog.scraper())
	require.NoError(t, err)

	assert.Equal(t, StateExhausted, out.State)
	assert.Equal(t, []string{"B"}, out.Pending)
	assert.Equal(t, 2, out.Refined)
	assert.Equal(t, 1, out.Failed)
	assert.True(t, out.CheckpointSaved)
	assert.Equal(t, "refined A", out.Result.Courses["A"].Description)
	assert.Equal(t, "refined C", out.Result.Courses["C"].Description)
	assert.Equal(t, "", out.Result.Courses["B"].Description)
	assert.Equal(t, "coarse B", out.Result.Courses["B"].Name)

	stored, err := store.Load(context.Background(), "hmc")
	require.NoError(t, err)
	assert.Equal(t, []string{"B"}, stored.Pending)
	assert.Equal(t, "run-1", stored.RunID)
	assert.Equal(t, 1, stored.Attempts["B"])
	assert.Equal(t, "refined A", stored.Snapshot.Courses["A"].Description)

	t.Run("Next Invocation Only Retries B", func(t *testing.T) {
		catalog.fail["B"] = false

		out, err := orchestrator.Harvest(context.Background(), "run-2", catalog.scraper())
		require.NoError(t, err)
		assert.Equal(t, StateCompleted, out.State)
		assert.Equal(t, 1, out.Refined)
		assert.Equal(t, 2, out.Skipped)
		assert.Equal(t, 1, catalog.callsFor("A"))
		assert.Equal(t, 2, catalog.callsFor("B"))
		assert.Equal(t, 1, store.Deletes())

		_, err = store.Load(context.Background(), "hmc")
		assert.True(t, exceptions.IsKind(err, exceptions.KindNotFound))
	})
}

func TestHarvestResume(t *testing.T) {
	store := checkpoint.NewMemoryStore()
	seedCheckpoint(t, store, testTerm, []string{"A"}, []string{"B", "C"})

	catalog := newFakeCatalog("A", "B", "C", "D")
	for _, code := range []string{"A", "B", "C", "D"} {
		catalog.fail[code] = true
	}
	orchestrator := newTestOrchestrator(store, Options{Workers: 2})

	out, err := orchestrator.Harvest(context.Background(), "", catalog.scraper())
	require.NoError(t, err)

	assert.Equal(t, StateExhausted, out.State)
	assert.Equal(t, []string{"B", "C", "D"}, out.Pending)
	assert.Equal(t, 0, catalog.callsFor("A"))
	assert.Equal(t, "refined earlier A", out.Result.Courses["A"].Description)
	assert.Equal(t, 1, out.Skipped)
}

func TestHarvestWithdrawal(t *testing.T) {
	store := checkpoint.NewMemoryStore()
	seedCheckpoint(t, store, testTerm, []string{"A"}, []string{"B"})

	catalog := newFakeCatalog("A", "C")
	catalog.fail["C"] = true
	orchestrator := newTestOrchestrator(store, Options{})

	out, err := orchestrator.Harvest(context.Background(), "", catalog.scraper())
	require.NoError(t, err)

	assert.NotContains(t, out.Result.Courses, "B")
	assert.Equal(t, []string{"C"}, out.Pending)
	assert.Equal(t, 0, catalog.callsFor("B"))

	stored, err := store.Load(context.Background(), "hmc")
	require.NoError(t, err)
	assert.Equal(t, []string{"C"}, stored.Pending)
	assert.NotContains(t, stored.Snapshot.Courses, "B")
}

func TestHarvestDeadline(t *testing.T) {
	store := checkpoint.NewMemoryStore()
	catalog := newFakeCatalog("A", "B", "C", "D", "E", "F")
	catalog.delay = 100 * time.Millisecond
	orchestrator := newTestOrchestrator(store, Options{Workers: 1, Deadline: 150 * time.Millisecond})

	out, err := orchestrator.Harvest(context.Background(), "", catalog.scraper())
	require.NoError(t, err)

	assert.Equal(t, StateExhausted, out.State)
	assert.NotEmpty(t, out.Pending)
	assert.True(t, out.CheckpointSaved)
	assert.Equal(t, 1, store.Saves())

	catalog.mu.Lock()
	started, finished := catalog.started, catalog.finished
	catalog.mu.Unlock()
	assert.Equal(t, started, finished, "in-flight refinements run to completion")
	assert.Equal(t, started, out.Refined)
	assert.Equal(t, 6, out.Refined+len(out.Pending))
	assert.Equal(t, 1, catalog.callsFor("A"), "dispatch is ascending")
}

func TestHarvestListingFailure(t *testing.T) {
	store := checkpoint.NewMemoryStore()
	seedCheckpoint(t, store, testTerm, []string{"A"}, []string{"B"})

	catalog := newFakeCatalog("A", "B")
	catalog.runErr = errors.New("catalog offline")
	orchestrator := newTestOrchestrator(store, Options{})

	out, err := orchestrator.Harvest(context.Background(), "", catalog.scraper())
	require.Error(t, err)
	assert.True(t, exceptions.IsKind(err, exceptions.KindListing))
	assert.Equal(t, StateFailed, out.State)
	assert.Nil(t, out.Result)

	assert.Equal(t, 1, store.Saves(), "only the seed write")
	assert.Equal(t, 0, store.Deletes())
	stored, err := store.Load(context.Background(), "hmc")
	require.NoError(t, err)
	assert.Equal(t, []string{"B"}, stored.Pending)
}

func TestHarvestInvalidListing(t *testing.T) {
	orchestrator := newTestOrchestrator(checkpoint.NewMemoryStore(), Options{})

	nilResult := contracts.NewScraper(contracts.ScraperFuncs{
		ScraperID: "hmc",
		RunFn: func(ctx context.Context) (*models.ScraperResult, error) {
			return nil, nil
		},
	})
	_, err := orchestrator.Harvest(context.Background(), "", nilResult)
	assert.True(t, exceptions.IsKind(err, exceptions.KindListing))

	catalog := newFakeCatalog("A")
	catalog.term = ""
	_, err = orchestrator.Harvest(context.Background(), "", catalog.scraper())
	assert.True(t, exceptions.IsKind(err, exceptions.KindListing))
}

func TestHarvestRefineIsolation(t *testing.T) {
	store := checkpoint.NewMemoryStore()
	catalog := newFakeCatalog("A", "B", "C", "D")
	catalog.panics["B"] = true
	catalog.renames["C"] = "C2"
	catalog.keep["D"] = true
	orchestrator := newTestOrchestrator(store, Options{Workers: 4})

	out, err := orchestrator.Harvest(context.Background(), "", catalog.scraper())
	require.NoError(t, err)

	assert.Equal(t, []string{"B", "C"}, out.Pending)
	assert.Equal(t, 2, out.Failed)
	assert.Equal(t, "refined A", out.Result.Courses["A"].Description)
	assert.Equal(t, "coarse D", out.Result.Courses["D"].Name)
	assert.Equal(t, "", out.Result.Courses["D"].Description)
	assert.NotContains(t, out.Result.Courses, "C2")
}

func TestHarvestRetryCap(t *testing.T) {
	store := checkpoint.NewMemoryStore()
	catalog := newFakeCatalog("A", "B")
	catalog.fail["B"] = true
	orchestrator := newTestOrchestrator(store, Options{MaxRefineAttempts: 2})

	first, err := orchestrator.Harvest(context.Background(), "", catalog.scraper())
	require.NoError(t, err)
	assert.Equal(t, StateExhausted, first.State)
	assert.Equal(t, []string{"B"}, first.Pending)
	assert.Empty(t, first.Abandoned)

	second, err := orchestrator.Harvest(context.Background(), "", catalog.scraper())
	require.NoError(t, err)
	assert.Equal(t, StateCompleted, second.State)
	assert.Empty(t, second.Pending)
	assert.Equal(t, []string{"B"}, second.Abandoned)
	assert.Equal(t, "coarse B", second.Result.Courses["B"].Name)
	assert.Equal(t, 1, store.Deletes())
}

func TestHarvestAbandonedCodesStayAbandoned(t *testing.T) {
	store := checkpoint.NewMemoryStore()
	snapshot := models.NewScraperResult(models.Term{Code: testTerm})
	for _, code := range []string{"A", "B", "C"} {
		require.NoError(t, snapshot.AddCourse(nil, models.Course{Code: code, Name: "stale " + code}))
	}
	require.NoError(t, store.Save(context.Background(), "hmc", &models.Checkpoint{
		ScraperID: "hmc",
		Snapshot:  *snapshot,
		Pending:   []string{"B", "C"},
		Attempts:  map[string]int{"B": 1},
	}))

	catalog := newFakeCatalog("A", "B", "C")
	catalog.fail["B"] = true
	catalog.fail["C"] = true
	orchestrator := newTestOrchestrator(store, Options{MaxRefineAttempts: 2})

	first, err := orchestrator.Harvest(context.Background(), "", catalog.scraper())
	require.NoError(t, err)
	assert.Equal(t, StateExhausted, first.State)
	assert.Equal(t, []string{"B"}, first.Abandoned)
	assert.Equal(t, []string{"C"}, first.Pending)

	stored, err := store.Load(context.Background(), "hmc")
	require.NoError(t, err)
	assert.Equal(t, []string{"B"}, stored.Abandoned)
	assert.Equal(t, []string{"C"}, stored.Pending)

	catalog.fail["B"] = false
	second, err := orchestrator.Harvest(context.Background(), "", catalog.scraper())
	require.NoError(t, err)
	assert.Equal(t, 1, catalog.callsFor("B"), "abandoned course is not refined again")
	assert.Equal(t, "coarse B", second.Result.Courses["B"].Name, "abandoned course keeps the fresh listing")
	assert.Empty(t, second.Abandoned)
	assert.Equal(t, []string{"C"}, second.Pending)

	stored, err = store.Load(context.Background(), "hmc")
	require.NoError(t, err)
	assert.Equal(t, []string{"B"}, stored.Abandoned)
}

func TestHarvestRetriesForeverByDefault(t *testing.T) {
	store := checkpoint.NewMemoryStore()
	catalog := newFakeCatalog("B")
	catalog.fail["B"] = true
	orchestrator := newTestOrchestrator(store, Options{})

	for i := 1; i <= 3; i++ {
		out, err := orchestrator.Harvest(context.Background(), "", catalog.scraper())
		require.NoError(t, err)
		assert.Equal(t, []string{"B"}, out.Pending)
	}

	stored, err := store.Load(context.Background(), "hmc")
	require.NoError(t, err)
	assert.Equal(t, 3, stored.Attempts["B"])
}

func TestHarvestTermChange(t *testing.T) {
	store := checkpoint.NewMemoryStore()
	seedCheckpoint(t, store, "SP2026", []string{"A"}, []string{"B"})

	core, logs := observer.New(zapcore.WarnLevel)
	catalog := newFakeCatalog("A", "B")
	orchestrator := NewOrchestrator(store, zap.New(core), Options{})

	out, err := orchestrator.Harvest(context.Background(), "", catalog.scraper())
	require.NoError(t, err)

	assert.Equal(t, StateCompleted, out.State)
	assert.Equal(t, 1, catalog.callsFor("A"))
	assert.Equal(t, "refined A", out.Result.Courses["A"].Description)
	assert.Equal(t, 1, logs.FilterMessage("Orchestrator.loadCheckpoint discarded checkpoint of another term").Len())
	assert.Equal(t, 1, store.Deletes())
}

func TestHarvestWithoutRefiner(t *testing.T) {
	store := checkpoint.NewMemoryStore()
	seedCheckpoint(t, store, testTerm, nil, []string{"A"})

	catalog := newFakeCatalog("A", "B")
	orchestrator := newTestOrchestrator(store, Options{})

	out, err := orchestrator.Harvest(context.Background(), "", catalog.listingOnly())
	require.NoError(t, err)

	assert.Equal(t, StateCompleted, out.State)
	assert.Equal(t, 0, out.Refined)
	assert.Equal(t, 2, out.Result.Len())
	assert.Equal(t, 1, store.Saves())
	assert.Equal(t, 1, store.Deletes())
}

type flakyStore struct {
	*checkpoint.MemoryStore
	loadErr error
	saveErr error
}

func (s *flakyStore) Load(ctx context.Context, scraperID string) (*models.Checkpoint, error) {
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	return s.MemoryStore.Load(ctx, scraperID)
}

func (s *flakyStore) Save(ctx context.Context, scraperID string, cp *models.Checkpoint) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	return s.MemoryStore.Save(ctx, scraperID, cp)
}

func TestHarvestStoreFailures(t *testing.T) {
	t.Run("Load Failure Refines Everything", func(t *testing.T) {
		memory := checkpoint.NewMemoryStore()
		seedCheckpoint(t, memory, testTerm, []string{"A"}, nil)
		store := &flakyStore{MemoryStore: memory, loadErr: exceptions.ErrCheckpointLoad(errors.New("timeout"), "hmc")}

		core, logs := observer.New(zapcore.WarnLevel)
		catalog := newFakeCatalog("A")
		orchestrator := NewOrchestrator(store, zap.New(core), Options{})

		out, err := orchestrator.Harvest(context.Background(), "", catalog.scraper())
		require.NoError(t, err)
		assert.Equal(t, 1, catalog.callsFor("A"))
		assert.Equal(t, StateCompleted, out.State)
		assert.Equal(t, 1, logs.FilterMessage("Orchestrator.loadCheckpoint failed, starting without checkpoint").Len())
	})

	t.Run("Save Failure Is Not Fatal", func(t *testing.T) {
		store := &flakyStore{MemoryStore: checkpoint.NewMemoryStore(), saveErr: errors.New("disk full")}

		catalog := newFakeCatalog("A", "B")
		catalog.fail["B"] = true
		orchestrator := newTestOrchestrator(store, Options{})

		out, err := orchestrator.Harvest(context.Background(), "", catalog.scraper())
		require.NoError(t, err)
		assert.Equal(t, StateExhausted, out.State)
		assert.False(t, out.CheckpointSaved)
		assert.Equal(t, "refined A", out.Result.Courses["A"].Description)
	})
}

func TestHarvestRateLimited(t *testing.T) {
	catalog := newFakeCatalog("A", "B", "C")
	orchestrator := newTestOrchestrator(checkpoint.NewMemoryStore(), Options{RefineRatePerSecond: 1000})

	out, err := orchestrator.Harvest(context.Background(), "", catalog.scraper())
	require.NoError(t, err)
	assert.Equal(t, StateCompleted, out.State)
	assert.Equal(t, 3, out.Refined)
}

func TestOptionsDefaults(t *testing.T) {
	opts := NewOrchestrator(checkpoint.NewMemoryStore(), zap.NewNop(), Options{}).Options()
	assert.Equal(t, 15*time.Minute, opts.Deadline)
	assert.Equal(t, 4, opts.Workers)
}

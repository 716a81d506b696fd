package harvest

import (
	"context"
	"hyperschedule-service/internal/app/contracts"
	"hyperschedule-service/internal/app/models"
	"hyperschedule-service/internal/pkg/constvars"
	"hyperschedule-service/internal/pkg/exceptions"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

type State string

const (
	StateListing    State = "listing"
	StateMerging    State = "merging"
	StateRefining   State = "refining"
	StateFinalizing State = "finalizing"
	StateCompleted  State = "completed"
	StateExhausted  State = "exhausted"
	StateFailed     State = "failed"
)

// Options bound a single invocation.
type Options struct {
	// Deadline is measured from invocation entry; no refinement is
	// dispatched after it passes.
	Deadline time.Duration
	Workers  int
	// RefineRatePerSecond caps dispatches; 0 disables the limit.
	RefineRatePerSecond float64
	// MaxRefineAttempts abandons a course once it has failed this many
	// times across invocations; 0 retries forever.
	MaxRefineAttempts int
}

func (o Options) withDefaults() Options {
	if o.Deadline <= 0 {
		o.Deadline = constvars.DefaultHarvestDeadline
	}
	if o.Workers <= 0 {
		o.Workers = constvars.DefaultHarvestWorkers
	}
	return o
}

// HarvestOutput reports what one invocation did.
type HarvestOutput struct {
	RunID           string                `json:"run_id"`
	ScraperID       string                `json:"scraper_id"`
	State           State                 `json:"state"`
	Result          *models.ScraperResult `json:"-"`
	Pending         []string              `json:"pending,omitempty"`
	Refined         int                   `json:"refined"`
	Failed          int                   `json:"failed"`
	Abandoned       []string              `json:"abandoned,omitempty"`
	Skipped         int                   `json:"skipped"`
	CheckpointSaved bool                  `json:"checkpoint_saved"`
	Elapsed         time.Duration         `json:"elapsed"`
}

// Orchestrator runs the listing, merges it with the stored checkpoint and
// refines whatever is still pending until the queue drains or the deadline
// passes.
type Orchestrator struct {
	store contracts.CheckpointStore
	log   *zap.Logger
	opts  Options
	now   func() time.Time
}

func NewOrchestrator(store contracts.CheckpointStore, log *zap.Logger, opts Options) *Orchestrator {
	return &Orchestrator{
		store: store,
		log:   log,
		opts:  opts.withDefaults(),
		now:   time.Now,
	}
}

func (o *Orchestrator) Options() Options {
	return o.opts
}

// invocation is the mutable state of one Harvest call. Fields below mu are
// written by refinement workers.
type invocation struct {
	runID     string
	scraperID string
	started   time.Time
	log       *zap.Logger

	result     *models.ScraperResult
	checkpoint *models.Checkpoint
	hadStored  bool
	skipped    int

	mu        sync.Mutex
	pending   map[string]struct{}
	attempts  map[string]int
	refined   int
	failed    int
	abandoned []string

	// carried are codes abandoned by an earlier invocation and still listed.
	carried []string
}

// Harvest performs one invocation for scraper. runID may be empty, in which
// case one is generated. The merged result is returned whenever listing
// succeeds, including when refinement was cut short by the deadline.
func (o *Orchestrator) Harvest(ctx context.Context, runID string, scraper contracts.Scraper) (*HarvestOutput, error) {
	if runID == "" {
		runID = uuid.NewString()
	}
	inv := &invocation{
		runID:     runID,
		scraperID: scraper.ID(),
		started:   o.now(),
		log: o.log.With(
			zap.String(constvars.LoggingRunIDKey, runID),
			zap.String(constvars.LoggingScraperIDKey, scraper.ID()),
		),
		pending:  make(map[string]struct{}),
		attempts: make(map[string]int),
	}
	inv.log.Info("Orchestrator.Harvest called",
		zap.Duration(constvars.LoggingDeadlineKey, o.opts.Deadline),
		zap.Int(constvars.LoggingWorkersKey, o.opts.Workers),
	)

	if err := o.list(ctx, inv, scraper); err != nil {
		inv.log.Warn("Orchestrator.Harvest listing failed", zap.Error(err))
		return &HarvestOutput{
			RunID:     runID,
			ScraperID: inv.scraperID,
			State:     StateFailed,
			Elapsed:   o.now().Sub(inv.started),
		}, err
	}

	refine, canRefine := contracts.RefinerOf(scraper)
	o.merge(ctx, inv, canRefine)

	if canRefine {
		o.refine(ctx, inv, refine)
	}

	return o.finalize(ctx, inv), nil
}

func (o *Orchestrator) list(ctx context.Context, inv *invocation, scraper contracts.Scraper) error {
	inv.log.Info("Orchestrator.list entering state", zap.String(constvars.LoggingStateKey, string(StateListing)))

	result, err := scraper.Run(ctx)
	if err != nil {
		return exceptions.ErrScraperRun(err, inv.scraperID)
	}
	if result == nil {
		return exceptions.ErrScraperNilResult(inv.scraperID)
	}
	if err := result.Term.Validate(); err != nil {
		return exceptions.ErrScraperRun(err, inv.scraperID)
	}
	if result.Courses == nil {
		result.Courses = make(map[string]models.Course)
	}

	inv.result = result
	inv.log.Info("Orchestrator.list listed courses",
		zap.String(constvars.LoggingTermCodeKey, result.Term.Code),
		zap.Int(constvars.LoggingCourseCountKey, result.Len()),
	)
	return nil
}

// loadCheckpoint returns the usable checkpoint for this invocation, or nil.
func (o *Orchestrator) loadCheckpoint(ctx context.Context, inv *invocation) *models.Checkpoint {
	checkpoint, err := o.store.Load(ctx, inv.scraperID)
	if err != nil {
		if !exceptions.IsKind(err, exceptions.KindNotFound) {
			inv.log.Warn("Orchestrator.loadCheckpoint failed, starting without checkpoint", zap.Error(err))
		}
		return nil
	}
	if checkpoint == nil {
		return nil
	}
	inv.hadStored = true

	if checkpoint.Snapshot.Term.Code != inv.result.Term.Code {
		inv.log.Warn("Orchestrator.loadCheckpoint discarded checkpoint of another term",
			zap.String(constvars.LoggingTermCodeKey, checkpoint.Snapshot.Term.Code),
		)
		return nil
	}
	return checkpoint
}

func (o *Orchestrator) merge(ctx context.Context, inv *invocation, canRefine bool) {
	inv.log.Info("Orchestrator.merge entering state", zap.String(constvars.LoggingStateKey, string(StateMerging)))

	checkpoint := o.loadCheckpoint(ctx, inv)
	inv.checkpoint = checkpoint
	if !canRefine {
		return
	}

	var stillPending, wasAbandoned map[string]struct{}
	if checkpoint != nil {
		stillPending = checkpoint.PendingSet()
		wasAbandoned = toSet(checkpoint.Abandoned)
	}

	for code := range inv.result.Courses {
		if checkpoint != nil {
			if _, ok := wasAbandoned[code]; ok {
				inv.carried = append(inv.carried, code)
				continue
			}
			prior, known := checkpoint.Snapshot.Courses[code]
			_, wasPending := stillPending[code]
			if known && !wasPending {
				inv.result.Courses[code] = prior.Clone()
				inv.skipped++
				continue
			}
			if attempts := checkpoint.Attempts[code]; attempts > 0 {
				inv.attempts[code] = attempts
			}
		}
		inv.pending[code] = struct{}{}
	}

	inv.log.Info("Orchestrator.merge merged checkpoint",
		zap.Bool(constvars.LoggingCheckpointLoadedKey, checkpoint != nil),
		zap.Int(constvars.LoggingPendingCountKey, len(inv.pending)),
		zap.Int(constvars.LoggingCourseCountKey, inv.result.Len()),
	)
}

func (o *Orchestrator) newLimiter() *rate.Limiter {
	if o.opts.RefineRatePerSecond <= 0 {
		return nil
	}
	burst := int(math.Ceil(o.opts.RefineRatePerSecond))
	return rate.NewLimiter(rate.Limit(o.opts.RefineRatePerSecond), burst)
}

func (o *Orchestrator) refine(ctx context.Context, inv *invocation, refine contracts.RefineFunc) {
	codes := models.SortedKeys(inv.pending)
	inv.log.Info("Orchestrator.refine entering state",
		zap.String(constvars.LoggingStateKey, string(StateRefining)),
		zap.Int(constvars.LoggingPendingCountKey, len(codes)),
	)
	if len(codes) == 0 {
		return
	}

	dispatchCtx, cancel := context.WithDeadline(ctx, inv.started.Add(o.opts.Deadline))
	defer cancel()

	sem := semaphore.NewWeighted(int64(o.opts.Workers))
	limiter := o.newLimiter()
	var wg sync.WaitGroup

	dispatched := 0
	for _, code := range codes {
		if dispatchCtx.Err() != nil {
			break
		}
		if limiter != nil {
			if err := limiter.Wait(dispatchCtx); err != nil {
				break
			}
		}
		if err := sem.Acquire(dispatchCtx, 1); err != nil {
			break
		}
		if dispatchCtx.Err() != nil {
			sem.Release(1)
			break
		}

		inv.mu.Lock()
		course := inv.result.Courses[code].Clone()
		inv.mu.Unlock()

		dispatched++
		wg.Add(1)
		go func(code string, course models.Course) {
			defer wg.Done()
			defer sem.Release(1)

			refined, err := refineOne(ctx, refine, code, course)
			o.commit(inv, code, refined, err)
		}(code, course)
	}

	if dispatched < len(codes) {
		inv.log.Warn("Orchestrator.refine deadline reached, leaving courses pending",
			zap.Int(constvars.LoggingPendingCountKey, len(codes)-dispatched),
		)
	}
	wg.Wait()
}

// refineOne isolates one refinement: errors, panics and a changed code all
// become a KindRefine error for that course alone.
func refineOne(ctx context.Context, refine contracts.RefineFunc, code string, course models.Course) (refined *models.Course, err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			refined, err = nil, exceptions.ErrScraperRefinePanic(code, recovered)
		}
	}()

	refined, err = refine(ctx, course)
	if err != nil {
		return nil, exceptions.ErrScraperRefine(err, code)
	}
	if refined == nil {
		return nil, nil
	}
	if refined.Code != code {
		return nil, exceptions.ErrScraperRefineCodeChanged(code, refined.Code)
	}
	if err := refined.Validate(); err != nil {
		return nil, exceptions.ErrScraperRefine(err, code)
	}
	return refined, nil
}

func (o *Orchestrator) commit(inv *invocation, code string, refined *models.Course, err error) {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	if err != nil {
		inv.failed++
		inv.attempts[code]++
		inv.log.Warn("Orchestrator.commit refinement failed",
			zap.String(constvars.LoggingCourseCodeKey, code),
			zap.Int(constvars.LoggingAttemptsKey, inv.attempts[code]),
			zap.Error(err),
		)

		if o.opts.MaxRefineAttempts > 0 && inv.attempts[code] >= o.opts.MaxRefineAttempts {
			delete(inv.pending, code)
			delete(inv.attempts, code)
			inv.abandoned = append(inv.abandoned, code)
			inv.log.Warn("Orchestrator.commit abandoned course after repeated failures",
				zap.String(constvars.LoggingCourseCodeKey, code),
				zap.Int(constvars.LoggingAttemptsKey, o.opts.MaxRefineAttempts),
			)
		}
		return
	}

	if refined != nil {
		inv.result.Courses[code] = *refined
	}
	delete(inv.pending, code)
	delete(inv.attempts, code)
	inv.refined++
}

func (o *Orchestrator) finalize(ctx context.Context, inv *invocation) *HarvestOutput {
	inv.log.Info("Orchestrator.finalize entering state", zap.String(constvars.LoggingStateKey, string(StateFinalizing)))

	// Persist even when the caller's context was cancelled mid-refinement.
	storeCtx := context.WithoutCancel(ctx)

	out := &HarvestOutput{
		RunID:     inv.runID,
		ScraperID: inv.scraperID,
		Result:    inv.result,
		Pending:   models.SortedKeys(inv.pending),
		Refined:   inv.refined,
		Failed:    inv.failed,
		Abandoned: models.SortedKeys(toSet(inv.abandoned)),
		Skipped:   inv.skipped,
	}

	if len(inv.pending) == 0 {
		out.State = StateCompleted
		if inv.hadStored {
			if err := o.store.Delete(storeCtx, inv.scraperID); err != nil {
				inv.log.Warn("Orchestrator.finalize failed to delete stale checkpoint", zap.Error(err))
			}
		}
	} else {
		out.State = StateExhausted
		checkpoint := &models.Checkpoint{
			ScraperID: inv.scraperID,
			RunID:     inv.runID,
			Snapshot:  *inv.result.Clone(),
			Pending:   out.Pending,
			UpdatedAt: o.now().UTC(),
		}
		if len(inv.carried) > 0 || len(inv.abandoned) > 0 {
			abandoned := toSet(inv.carried)
			for _, code := range inv.abandoned {
				abandoned[code] = struct{}{}
			}
			checkpoint.Abandoned = models.SortedKeys(abandoned)
		}
		if len(inv.attempts) > 0 {
			checkpoint.Attempts = make(map[string]int, len(inv.attempts))
			for code, attempts := range inv.attempts {
				checkpoint.Attempts[code] = attempts
			}
		}

		if err := o.store.Save(storeCtx, inv.scraperID, checkpoint); err != nil {
			inv.log.Warn("Orchestrator.finalize failed to save checkpoint", zap.Error(err))
		} else {
			out.CheckpointSaved = true
		}
	}

	out.Elapsed = o.now().Sub(inv.started)
	if len(out.Abandoned) == 0 {
		out.Abandoned = nil
	}
	inv.log.Info("Orchestrator.Harvest finished",
		zap.String(constvars.LoggingStateKey, string(out.State)),
		zap.Int(constvars.LoggingPendingCountKey, len(out.Pending)),
		zap.Int(constvars.LoggingRefinedCountKey, out.Refined),
		zap.Int(constvars.LoggingFailedCountKey, out.Failed),
		zap.Int(constvars.LoggingAbandonedCountKey, len(inv.abandoned)),
		zap.Duration(constvars.LoggingElapsedKey, out.Elapsed),
	)
	return out
}

func toSet(codes []string) map[string]struct{} {
	set := make(map[string]struct{}, len(codes))
	for _, code := range codes {
		set[code] = struct{}{}
	}
	return set
}

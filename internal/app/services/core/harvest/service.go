package harvest

import (
	"context"
	"fmt"
	"hyperschedule-service/internal/app/contracts"
	"hyperschedule-service/internal/app/models"
	"hyperschedule-service/internal/pkg/constvars"
	"hyperschedule-service/internal/pkg/exceptions"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ServiceDependencies wires a Service. Locker, Publisher and Notifier are
// optional.
type ServiceDependencies struct {
	Scrapers     contracts.ScraperProvider
	Orchestrator *Orchestrator
	Store        contracts.CheckpointStore
	Locker       contracts.LockerService
	Publisher    contracts.ResultPublisher
	Notifier     contracts.HarvestNotifier
	LockTTL      time.Duration
	Log          *zap.Logger
}

// Service is the invocation entry point: it resolves a scraper, serializes
// harvests of the same scraper across processes and hands the result to
// downstream consumers.
type Service struct {
	scrapers     contracts.ScraperProvider
	orchestrator *Orchestrator
	store        contracts.CheckpointStore
	locker       contracts.LockerService
	publisher    contracts.ResultPublisher
	notifier     contracts.HarvestNotifier
	lockTTL      time.Duration
	log          *zap.Logger
	inFlight     sync.WaitGroup

	// runCtx parents every background harvest; Shutdown cancels it.
	runCtx     context.Context
	cancelRuns context.CancelFunc
}

func NewService(deps ServiceDependencies) *Service {
	lockTTL := deps.LockTTL
	if lockTTL <= 0 {
		deadline := deps.Orchestrator.Options().Deadline
		lockTTL = deadline + deadline/2
	}
	runCtx, cancelRuns := context.WithCancel(context.Background())
	return &Service{
		scrapers:     deps.Scrapers,
		orchestrator: deps.Orchestrator,
		store:        deps.Store,
		locker:       deps.Locker,
		publisher:    deps.Publisher,
		notifier:     deps.Notifier,
		lockTTL:      lockTTL,
		log:          deps.Log,
		runCtx:       runCtx,
		cancelRuns:   cancelRuns,
	}
}

func (s *Service) ScraperIDs() []string {
	return s.scrapers.IDs()
}

func (s *Service) EnabledScraperIDs() []string {
	return s.scrapers.EnabledIDs()
}

// Checkpoint returns the stored progress of a configured scraper.
func (s *Service) Checkpoint(ctx context.Context, scraperID string) (*models.Checkpoint, error) {
	if _, err := s.scrapers.Resolve(scraperID); err != nil {
		return nil, err
	}
	return s.store.Load(ctx, scraperID)
}

// HarvestAsync validates scraperID, takes the scraper's lock and runs the
// harvest in the background. A harvest already running anywhere yields a
// KindLocked error and nothing is started. The returned run id identifies the
// harvest in logs and events.
func (s *Service) HarvestAsync(ctx context.Context, scraperID string) (string, error) {
	scraper, err := s.scrapers.Resolve(scraperID)
	if err != nil {
		return "", err
	}
	if err := s.runCtx.Err(); err != nil {
		return "", err
	}

	// The run outlives the request but not the service.
	bgCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	stopAfter := context.AfterFunc(s.runCtx, cancel)

	runID := uuid.NewString()
	bgCtx = context.WithValue(bgCtx, constvars.CONTEXT_RUN_ID_KEY, runID)

	release, err := s.acquire(bgCtx, scraperID)
	if err != nil {
		stopAfter()
		cancel()
		return "", err
	}

	s.inFlight.Add(1)
	go func() {
		defer s.inFlight.Done()
		defer cancel()
		defer stopAfter()
		defer release()

		if _, err := s.run(bgCtx, runID, scraper); err != nil {
			s.log.Warn("Service.HarvestAsync harvest failed",
				zap.String(constvars.LoggingRunIDKey, runID),
				zap.String(constvars.LoggingScraperIDKey, scraperID),
				zap.Error(err),
			)
		}
	}()
	return runID, nil
}

// Wait blocks until every harvest started by HarvestAsync has returned.
func (s *Service) Wait() {
	s.inFlight.Wait()
}

// Shutdown cancels background harvests and waits for them until ctx is done.
// Cancelled harvests still persist their checkpoint. No new background
// harvest is accepted afterwards.
func (s *Service) Shutdown(ctx context.Context) error {
	s.cancelRuns()

	done := make(chan struct{})
	go func() {
		s.inFlight.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// HarvestByID runs one invocation for the scraper configured under scraperID.
func (s *Service) HarvestByID(ctx context.Context, runID, scraperID string) (*HarvestOutput, error) {
	if runID == "" {
		runID = uuid.NewString()
	}
	ctx = context.WithValue(ctx, constvars.CONTEXT_RUN_ID_KEY, runID)

	s.log.Info("Service.HarvestByID called",
		zap.String(constvars.LoggingRunIDKey, runID),
		zap.String(constvars.LoggingScraperIDKey, scraperID),
	)

	scraper, err := s.scrapers.Resolve(scraperID)
	if err != nil {
		return nil, err
	}

	release, err := s.acquire(ctx, scraperID)
	if err != nil {
		return nil, err
	}
	defer release()

	return s.run(ctx, runID, scraper)
}

// run harvests scraper while the caller holds its lock.
func (s *Service) run(ctx context.Context, runID string, scraper contracts.Scraper) (*HarvestOutput, error) {
	out, err := s.orchestrator.Harvest(ctx, runID, scraper)
	if err != nil {
		s.notify(ctx, out, "")
		return out, err
	}

	objectKey := s.publish(ctx, out)
	s.notify(ctx, out, objectKey)
	return out, nil
}

// acquire takes the per-scraper lock and keeps it alive until release is
// called.
func (s *Service) acquire(ctx context.Context, scraperID string) (func(), error) {
	if s.locker == nil {
		return func() {}, nil
	}

	key := fmt.Sprintf(constvars.RedisHarvestLockFormat, scraperID)
	acquired, lockValue, err := s.locker.TryLock(ctx, key, s.lockTTL)
	if err != nil {
		return nil, err
	}
	if !acquired {
		return nil, exceptions.ErrHarvestLocked(scraperID)
	}

	refreshCtx, cancelRefresh := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		tick := time.NewTicker(s.lockTTL / constvars.DefaultLockRefreshFraction)
		defer tick.Stop()
		for {
			select {
			case <-refreshCtx.Done():
				return
			case <-tick.C:
				if err := s.locker.Refresh(refreshCtx, key, lockValue, s.lockTTL); err != nil {
					s.log.Warn("Service.acquire failed to refresh harvest lock",
						zap.String(constvars.LoggingRedisKey, key),
						zap.Error(err),
					)
				}
			}
		}
	}()

	return func() {
		cancelRefresh()
		<-done
		if err := s.locker.Unlock(context.WithoutCancel(ctx), key, lockValue); err != nil {
			s.log.Warn("Service.acquire failed to release harvest lock",
				zap.String(constvars.LoggingRedisKey, key),
				zap.Error(err),
			)
		}
	}, nil
}

func (s *Service) publish(ctx context.Context, out *HarvestOutput) string {
	if s.publisher == nil || out.Result == nil {
		return ""
	}
	objectKey, err := s.publisher.Publish(ctx, out.ScraperID, out.RunID, out.Result)
	if err != nil {
		s.log.Warn("Service.publish failed",
			zap.String(constvars.LoggingRunIDKey, out.RunID),
			zap.String(constvars.LoggingScraperIDKey, out.ScraperID),
			zap.Error(err),
		)
		return ""
	}
	return objectKey
}

func (s *Service) notify(ctx context.Context, out *HarvestOutput, objectKey string) {
	if s.notifier == nil || out == nil {
		return
	}

	event := contracts.HarvestEvent{
		RunID:      out.RunID,
		ScraperID:  out.ScraperID,
		State:      string(out.State),
		Pending:    len(out.Pending),
		Refined:    out.Refined,
		Failed:     out.Failed,
		ObjectKey:  objectKey,
		Elapsed:    out.Elapsed,
		FinishedAt: time.Now().UTC(),
	}
	if out.Result != nil {
		event.TermCode = out.Result.Term.Code
		event.CourseCount = out.Result.Len()
	}

	if err := s.notifier.Notify(ctx, event); err != nil {
		s.log.Warn("Service.notify failed",
			zap.String(constvars.LoggingRunIDKey, out.RunID),
			zap.String(constvars.LoggingScraperIDKey, out.ScraperID),
			zap.Error(err),
		)
	}
}

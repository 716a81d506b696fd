package locker

import (
	"context"
	"fmt"
	"hyperschedule-service/internal/app/contracts"
	"hyperschedule-service/internal/pkg/constvars"
	"hyperschedule-service/internal/pkg/exceptions"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type lockService struct {
	redisRepo contracts.RedisRepository
	Log       *zap.Logger
}

func NewLockService(repo contracts.RedisRepository, logger *zap.Logger) contracts.LockerService {
	return &lockService{
		redisRepo: repo,
		Log:       logger,
	}
}

func (s *lockService) TryLock(ctx context.Context, key string, expiration time.Duration) (bool, string, error) {
	runID, _ := ctx.Value(constvars.CONTEXT_RUN_ID_KEY).(string)
	s.Log.Info("lockService.TryLock called",
		zap.String(constvars.LoggingRunIDKey, runID),
		zap.String(constvars.LoggingRedisKey, key),
		zap.Duration(constvars.LoggingLockExpirationKey, expiration),
	)

	lockValue := uuid.NewString()
	acquired, err := s.redisRepo.TrySetNX(ctx, key, lockValue, expiration)
	if err != nil {
		s.Log.Error("lockService.TryLock error calling redisRepo.TrySetNX",
			zap.String(constvars.LoggingRunIDKey, runID),
			zap.Error(err),
		)
		return false, "", err
	}

	if !acquired {
		s.Log.Info("lockService.TryLock not acquired",
			zap.String(constvars.LoggingRunIDKey, runID),
			zap.String(constvars.LoggingRedisKey, key),
		)
		return false, "", nil
	}

	s.Log.Info("lockService.TryLock acquired lock",
		zap.String(constvars.LoggingRunIDKey, runID),
		zap.String(constvars.LoggingRedisKey, key),
		zap.String(constvars.LoggingLockValueKey, lockValue),
	)
	return true, lockValue, nil
}

// owned reports whether key currently holds lockValue. A missing key is not an error.
func (s *lockService) owned(ctx context.Context, key, lockValue string) (bool, bool, error) {
	storedVal, err := s.redisRepo.Get(ctx, key)
	if err != nil {
		return false, false, err
	}
	if storedVal == "" {
		return false, false, nil
	}
	expectedValue := fmt.Sprintf("\"%s\"", lockValue)
	if storedVal != expectedValue {
		s.Log.Error("lockService lock ownership mismatch",
			zap.String(constvars.LoggingRedisKey, key),
			zap.String(constvars.LoggingLockStoredValueKey, storedVal),
			zap.String(constvars.LoggingLockExpectedKey, expectedValue),
		)
		return true, false, nil
	}
	return true, true, nil
}

func (s *lockService) Unlock(ctx context.Context, key, lockValue string) error {
	runID, _ := ctx.Value(constvars.CONTEXT_RUN_ID_KEY).(string)
	s.Log.Info("lockService.Unlock called",
		zap.String(constvars.LoggingRunIDKey, runID),
		zap.String(constvars.LoggingRedisKey, key),
		zap.String(constvars.LoggingLockValueKey, lockValue),
	)

	exists, owned, err := s.owned(ctx, key, lockValue)
	if err != nil {
		s.Log.Error("lockService.Unlock error retrieving value from redis",
			zap.String(constvars.LoggingRunIDKey, runID),
			zap.Error(err),
		)
		return err
	}
	if !exists {
		s.Log.Info("lockService.Unlock no lock found to release",
			zap.String(constvars.LoggingRunIDKey, runID),
			zap.String(constvars.LoggingRedisKey, key),
		)
		return nil
	}
	if !owned {
		return exceptions.ErrRedisUnlock(fmt.Errorf("lock not owned by this client"))
	}

	if delErr := s.redisRepo.Delete(ctx, key); delErr != nil {
		s.Log.Error("lockService.Unlock error deleting lock from redis",
			zap.String(constvars.LoggingRunIDKey, runID),
			zap.Error(delErr),
		)
		return delErr
	}

	s.Log.Info("lockService.Unlock succeeded",
		zap.String(constvars.LoggingRunIDKey, runID),
		zap.String(constvars.LoggingRedisKey, key),
	)
	return nil
}

func (s *lockService) Refresh(ctx context.Context, key, lockValue string, expiration time.Duration) error {
	exists, owned, err := s.owned(ctx, key, lockValue)
	if err != nil {
		return err
	}
	if !exists || !owned {
		return exceptions.ErrRedisExpire(fmt.Errorf("lock %s no longer owned by this client", key))
	}
	if _, err := s.redisRepo.Expire(ctx, key, expiration); err != nil {
		s.Log.Error("lockService.Refresh error extending lock",
			zap.String(constvars.LoggingRedisKey, key),
			zap.Error(err),
		)
		return err
	}
	return nil
}

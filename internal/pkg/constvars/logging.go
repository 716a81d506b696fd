package constvars

const (
	LoggingRequestIDKey        = "request_id"
	LoggingRunIDKey            = "run_id"
	LoggingScraperIDKey        = "scraper_id"
	LoggingScraperKindKey      = "scraper_kind"
	LoggingCourseCodeKey       = "course_code"
	LoggingTermCodeKey         = "term_code"
	LoggingStateKey            = "state"
	LoggingPendingCountKey     = "pending_count"
	LoggingCourseCountKey      = "course_count"
	LoggingRefinedCountKey     = "refined_count"
	LoggingFailedCountKey      = "failed_count"
	LoggingAbandonedCountKey   = "abandoned_count"
	LoggingAttemptsKey         = "attempts"
	LoggingWorkersKey          = "workers"
	LoggingDeadlineKey         = "deadline"
	LoggingElapsedKey          = "elapsed"
	LoggingWeekdayKey          = "weekday"
	LoggingMeetingKey          = "meeting"
	LoggingRedisKey            = "redis_key"
	LoggingObjectKey           = "object_key"
	LoggingBucketKey           = "bucket"
	LoggingQueueKey            = "queue"
	LoggingLockValueKey        = "lock_value"
	LoggingLockStoredValueKey  = "lock_stored_value"
	LoggingLockExpectedKey     = "lock_expected_value"
	LoggingLockExpirationKey   = "lock_expiration"
	LoggingMethodKey           = "method"
	LoggingEndpointKey         = "endpoint"
	LoggingRemoteAddrKey       = "remote_addr"
	LoggingStatusCodeKey       = "status_code"
	LoggingURLKey              = "url"
	LoggingRowIndexKey         = "row_index"
	LoggingCheckpointLoadedKey = "checkpoint_loaded"
	LoggingCronSpecKey         = "cron_spec"
)

package constvars

// Validation messages mapper
var CustomValidationErrorMessages = map[string]string{
	"required": "is required",
	"min":      "must be at least %s",
	"max":      "must be at most %s",
	"oneof":    "must be one of [%s]",
	"gt":       "must be greater than %s",
	"gte":      "must be greater than or equal to %s",
	"lt":       "must be less than %s",
	"lte":      "must be less than or equal to %s",
	"url":      "must be a valid URL",
	"uuid":     "must be a valid UUID",
	"dive":     "contains an invalid element",
}

// Error messages for clients
const (
	ErrClientCannotProcessRequest          = "failed to process your request"
	ErrClientSomethingWrongWithApplication = "there is something wrong with the application"
	ErrClientNotAuthorized                 = "you can't access this feature"
	ErrClientResourceNotFound              = "the requested resource was not found"
	ErrClientHarvestInProgress             = "a harvest for this scraper is already running"
	ErrClientScraperUnavailable            = "the scraper could not fetch the course catalog"
)

// Error messages for developers
const (
	ErrDevInvalidInput             = "invalid input"
	ErrDevCannotParseJSON          = "cannot parse JSON"
	ErrDevCannotMarshalJSON        = "cannot marshal JSON"
	ErrDevValidationFailed         = "validation failed"
	ErrDevInvalidAPIKey            = "invalid api key"
	ErrDevDateParse                = "date got invalid string: %q"
	ErrDevTimeParse                = "time got invalid string: %q"
	ErrDevInvalidWeekday           = "weekdays got invalid day: %q"
	ErrDevEmptyWeekdays            = "meeting got empty weekdays"
	ErrDevSubtermNoArguments       = "subterm got no slots"
	ErrDevSubtermNoTruthy          = "subterm got no true slots: %v"
	ErrDevMeetingDatesInverted     = "meeting start date not before end date: %s >= %s"
	ErrDevMeetingTimesInverted     = "meeting start time not before end time: %s >= %s"
	ErrDevCourseInvalid            = "course %q failed validation"
	ErrDevCourseSeatsExceeded      = "course %q has %d seats filled of %d total"
	ErrDevTermInvalid              = "term code is required"
	ErrDevScraperRun               = "scraper %q run failed"
	ErrDevScraperNilResult         = "scraper %q returned no result"
	ErrDevScraperRefine            = "scraper refine failed for course %q"
	ErrDevScraperRefinePanic       = "scraper refine panicked for course %q: %v"
	ErrDevScraperRefineCodeChanged = "scraper refine for course %q returned course %q"
	ErrDevScraperNotFound          = "scraper %q is not configured"
	ErrDevScraperKindUnknown       = "scraper kind %q is not registered"
	ErrDevScraperOptions           = "scraper %q has invalid options"
	ErrDevCheckpointNotFound       = "checkpoint for scraper %q not found"
	ErrDevCheckpointLoad           = "failed to load checkpoint for scraper %q"
	ErrDevCheckpointSave           = "failed to save checkpoint for scraper %q"
	ErrDevCheckpointDelete         = "failed to delete checkpoint for scraper %q"
	ErrDevCheckpointBackendUnknown = "checkpoint backend %q is not supported"
	ErrDevRedisSet                 = "failed to set value in redis"
	ErrDevRedisGet                 = "failed to get value from redis for key %q"
	ErrDevRedisDelete              = "failed to delete value from redis"
	ErrDevRedisUnlock              = "failed to release redis lock"
	ErrDevRedisExpire              = "failed to refresh redis key expiration"
	ErrDevHarvestLocked            = "harvest for scraper %q already holds the lock"
	ErrDevMinioCreateObject        = "failed to create object in bucket %q"
	ErrDevRabbitMQPublish          = "failed to publish message to queue %q"
	ErrDevConfigScrapersFile       = "failed to read scrapers file %q"
	ErrDevConfigHarvest            = "invalid harvest configuration"
	ErrDevConfigDuplicateScraper   = "scraper %q is configured more than once"
	ErrDevHTTPFetch                = "failed to fetch %q"
	ErrDevHTTPUnexpectedStatus     = "unexpected status %d fetching %q"
	ErrDevHTMLParse                = "failed to parse HTML from %q"
)

// Success messages
const (
	ResponseSuccess         = "success"
	ResponseHarvestAccepted = "harvest accepted"
	ResponseUnknown         = "unknown"
)

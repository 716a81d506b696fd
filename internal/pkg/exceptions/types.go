package exceptions

import (
	"fmt"
	"hyperschedule-service/internal/pkg/constvars"
)

var (
	ErrDateParse = func(err error, input string) *CustomError {
		return BuildNewCustomError(err, KindParse, constvars.StatusUnprocessableEntity, constvars.ErrClientCannotProcessRequest, fmt.Sprintf(constvars.ErrDevDateParse, input))
	}
	ErrTimeParse = func(err error, input string) *CustomError {
		return BuildNewCustomError(err, KindParse, constvars.StatusUnprocessableEntity, constvars.ErrClientCannotProcessRequest, fmt.Sprintf(constvars.ErrDevTimeParse, input))
	}
	ErrInvalidWeekday = func(day rune) *CustomError {
		return BuildNewCustomError(nil, KindConfig, constvars.StatusUnprocessableEntity, constvars.ErrClientCannotProcessRequest, fmt.Sprintf(constvars.ErrDevInvalidWeekday, string(day)))
	}
	ErrEmptyWeekdays = func() *CustomError {
		return BuildNewCustomError(nil, KindConfig, constvars.StatusUnprocessableEntity, constvars.ErrClientCannotProcessRequest, constvars.ErrDevEmptyWeekdays)
	}
	ErrSubtermNoSlots = func() *CustomError {
		return BuildNewCustomError(nil, KindConfig, constvars.StatusUnprocessableEntity, constvars.ErrClientCannotProcessRequest, constvars.ErrDevSubtermNoArguments)
	}
	ErrSubtermNoTruthySlots = func(slots []bool) *CustomError {
		return BuildNewCustomError(nil, KindConfig, constvars.StatusUnprocessableEntity, constvars.ErrClientCannotProcessRequest, fmt.Sprintf(constvars.ErrDevSubtermNoTruthy, slots))
	}
	ErrMeetingDatesInverted = func(start, end fmt.Stringer) *CustomError {
		return BuildNewCustomError(nil, KindConfig, constvars.StatusUnprocessableEntity, constvars.ErrClientCannotProcessRequest, fmt.Sprintf(constvars.ErrDevMeetingDatesInverted, start, end))
	}
	ErrMeetingTimesInverted = func(start, end fmt.Stringer) *CustomError {
		return BuildNewCustomError(nil, KindConfig, constvars.StatusUnprocessableEntity, constvars.ErrClientCannotProcessRequest, fmt.Sprintf(constvars.ErrDevMeetingTimesInverted, start, end))
	}
	ErrCourseValidation = func(err error, code string) *CustomError {
		return BuildNewCustomError(err, KindConfig, constvars.StatusUnprocessableEntity, FormatFirstValidationError(err), fmt.Sprintf(constvars.ErrDevCourseInvalid, code))
	}
	ErrCourseSeatsExceeded = func(code string, filled, total int) *CustomError {
		return BuildNewCustomError(nil, KindConfig, constvars.StatusUnprocessableEntity, constvars.ErrClientCannotProcessRequest, fmt.Sprintf(constvars.ErrDevCourseSeatsExceeded, code, filled, total))
	}
	ErrTermInvalid = func() *CustomError {
		return BuildNewCustomError(nil, KindConfig, constvars.StatusUnprocessableEntity, constvars.ErrClientCannotProcessRequest, constvars.ErrDevTermInvalid)
	}
	ErrInputValidation = func(err error) *CustomError {
		return BuildNewCustomError(err, KindConfig, constvars.StatusBadRequest, FormatFirstValidationError(err), constvars.ErrDevValidationFailed)
	}
	ErrCannotMarshalJSON = func(err error) *CustomError {
		return BuildNewCustomError(err, KindInternal, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevCannotMarshalJSON)
	}
	ErrCannotParseJSON = func(err error) *CustomError {
		return BuildNewCustomError(err, KindInternal, constvars.StatusBadRequest, constvars.ErrClientCannotProcessRequest, constvars.ErrDevCannotParseJSON)
	}
	ErrInvalidAPIKey = func(err error) *CustomError {
		return BuildNewCustomError(err, KindConfig, constvars.StatusUnauthorized, constvars.ErrClientNotAuthorized, constvars.ErrDevInvalidAPIKey)
	}
	ErrScraperRun = func(err error, scraperID string) *CustomError {
		return BuildNewCustomError(err, KindListing, constvars.StatusBadGateway, constvars.ErrClientScraperUnavailable, fmt.Sprintf(constvars.ErrDevScraperRun, scraperID))
	}
	ErrScraperNilResult = func(scraperID string) *CustomError {
		return BuildNewCustomError(nil, KindListing, constvars.StatusBadGateway, constvars.ErrClientScraperUnavailable, fmt.Sprintf(constvars.ErrDevScraperNilResult, scraperID))
	}
	ErrScraperRefine = func(err error, code string) *CustomError {
		return BuildNewCustomError(err, KindRefine, constvars.StatusBadGateway, constvars.ErrClientCannotProcessRequest, fmt.Sprintf(constvars.ErrDevScraperRefine, code))
	}
	ErrScraperRefinePanic = func(code string, recovered interface{}) *CustomError {
		return BuildNewCustomError(nil, KindRefine, constvars.StatusInternalServerError, constvars.ErrClientCannotProcessRequest, fmt.Sprintf(constvars.ErrDevScraperRefinePanic, code, recovered))
	}
	ErrScraperRefineCodeChanged = func(code, returned string) *CustomError {
		return BuildNewCustomError(nil, KindRefine, constvars.StatusBadGateway, constvars.ErrClientCannotProcessRequest, fmt.Sprintf(constvars.ErrDevScraperRefineCodeChanged, code, returned))
	}
	ErrScraperNotFound = func(scraperID string) *CustomError {
		return BuildNewCustomError(nil, KindNotFound, constvars.StatusNotFound, constvars.ErrClientResourceNotFound, fmt.Sprintf(constvars.ErrDevScraperNotFound, scraperID))
	}
	ErrScraperKindUnknown = func(kind string) *CustomError {
		return BuildNewCustomError(nil, KindConfig, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevScraperKindUnknown, kind))
	}
	ErrScraperOptions = func(err error, scraperID string) *CustomError {
		return BuildNewCustomError(err, KindConfig, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevScraperOptions, scraperID))
	}
	ErrCheckpointNotFound = func(scraperID string) *CustomError {
		return BuildNewCustomError(nil, KindNotFound, constvars.StatusNotFound, constvars.ErrClientResourceNotFound, fmt.Sprintf(constvars.ErrDevCheckpointNotFound, scraperID))
	}
	ErrCheckpointLoad = func(err error, scraperID string) *CustomError {
		return BuildNewCustomError(err, KindStore, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevCheckpointLoad, scraperID))
	}
	ErrCheckpointSave = func(err error, scraperID string) *CustomError {
		return BuildNewCustomError(err, KindStore, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevCheckpointSave, scraperID))
	}
	ErrCheckpointDelete = func(err error, scraperID string) *CustomError {
		return BuildNewCustomError(err, KindStore, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevCheckpointDelete, scraperID))
	}
	ErrCheckpointBackendUnknown = func(backend string) *CustomError {
		return BuildNewCustomError(nil, KindConfig, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevCheckpointBackendUnknown, backend))
	}
	ErrRedisSet = func(err error) *CustomError {
		return BuildNewCustomError(err, KindStore, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisSet)
	}
	ErrRedisGetNoData = func(err error, key string) *CustomError {
		return BuildNewCustomError(err, KindStore, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevRedisGet, key))
	}
	ErrRedisDelete = func(err error) *CustomError {
		return BuildNewCustomError(err, KindStore, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisDelete)
	}
	ErrRedisUnlock = func(err error) *CustomError {
		return BuildNewCustomError(err, KindStore, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisUnlock)
	}
	ErrRedisExpire = func(err error) *CustomError {
		return BuildNewCustomError(err, KindStore, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisExpire)
	}
	ErrHarvestLocked = func(scraperID string) *CustomError {
		return BuildNewCustomError(nil, KindLocked, constvars.StatusConflict, constvars.ErrClientHarvestInProgress, fmt.Sprintf(constvars.ErrDevHarvestLocked, scraperID))
	}
	ErrMinioCreateObject = func(err error, bucketName string) *CustomError {
		return BuildNewCustomError(err, KindInternal, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevMinioCreateObject, bucketName))
	}
	ErrRabbitMQPublish = func(err error, queue string) *CustomError {
		return BuildNewCustomError(err, KindInternal, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevRabbitMQPublish, queue))
	}
	ErrConfigScrapersFile = func(err error, path string) *CustomError {
		return BuildNewCustomError(err, KindConfig, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevConfigScrapersFile, path))
	}
	ErrConfigDuplicateScraper = func(scraperID string) *CustomError {
		return BuildNewCustomError(nil, KindConfig, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevConfigDuplicateScraper, scraperID))
	}
	ErrConfigHarvest = func(err error) *CustomError {
		return BuildNewCustomError(err, KindConfig, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevConfigHarvest)
	}
	ErrHTTPFetch = func(err error, url string) *CustomError {
		return BuildNewCustomError(err, KindInternal, constvars.StatusBadGateway, constvars.ErrClientScraperUnavailable, fmt.Sprintf(constvars.ErrDevHTTPFetch, url))
	}
	ErrHTTPUnexpectedStatus = func(status int, url string) *CustomError {
		return BuildNewCustomError(nil, KindInternal, constvars.StatusBadGateway, constvars.ErrClientScraperUnavailable, fmt.Sprintf(constvars.ErrDevHTTPUnexpectedStatus, status, url))
	}
	ErrHTMLParse = func(err error, url string) *CustomError {
		return BuildNewCustomError(err, KindInternal, constvars.StatusBadGateway, constvars.ErrClientScraperUnavailable, fmt.Sprintf(constvars.ErrDevHTMLParse, url))
	}
)

package exceptions

import (
	"errors"
	"fmt"
	"hyperschedule-service/internal/pkg/constvars"
	"runtime"
)

// Kind classifies a CustomError by how far its failure propagates.
type Kind string

const (
	// KindParse marks a Date or Time that could not be read from its input.
	KindParse Kind = "parse_error"
	// KindConfig marks an invalid entity construction (subterm, weekdays, meeting, course).
	KindConfig Kind = "config_error"
	// KindListing marks a failed bulk listing; fatal to the invocation.
	KindListing Kind = "listing_error"
	// KindRefine marks a failed refinement of a single course; never fatal.
	KindRefine Kind = "refine_error"
	// KindStore marks a checkpoint load/save/delete failure.
	KindStore Kind = "store_error"
	// KindNotFound marks a missing checkpoint, scraper or object.
	KindNotFound Kind = "not_found"
	// KindLocked marks a harvest that is already running elsewhere.
	KindLocked Kind = "locked"
	// KindInternal is everything else.
	KindInternal Kind = "internal_error"
)

type CustomError struct {
	Kind          Kind     `json:"-"`
	StatusCode    int      `json:"status_code"`
	Success       bool     `json:"success"`
	ClientMessage string   `json:"message"`
	DevMessage    string   `json:"-"`
	Location      Location `json:"-"`
	Err           error    `json:"-"`
}

type Location struct {
	File         string
	Line         int
	FunctionName string
}

func (e *CustomError) Error() string {
	return fmt.Sprintf("%s (%s:%d %s)", e.DevMessage, e.Location.File, e.Location.Line, e.Location.FunctionName)
}

func (e *CustomError) Unwrap() error {
	return e.Err
}

// IsKind reports whether any CustomError in err's chain has the given kind.
func IsKind(err error, kind Kind) bool {
	var customErr *CustomError
	for err != nil {
		if !errors.As(err, &customErr) {
			return false
		}
		if customErr.Kind == kind {
			return true
		}
		err = customErr.Err
	}
	return false
}

func BuildNewCustomError(err error, kind Kind, statusCode int, clientMessage, devMessage string) *CustomError {
	location := getLocation(3)
	if err != nil {
		devMessage = fmt.Sprintf("%s: %s", devMessage, err.Error())
	}
	return &CustomError{
		Kind:          kind,
		StatusCode:    statusCode,
		ClientMessage: clientMessage,
		DevMessage:    devMessage,
		Location:      location,
		Err:           err,
	}
}

func getLocation(skip int) Location {
	pc, file, line, ok := runtime.Caller(skip)
	if !ok {
		return Location{
			File:         constvars.ResponseUnknown,
			Line:         0,
			FunctionName: constvars.ResponseUnknown,
		}
	}
	function := runtime.FuncForPC(pc).Name()
	return Location{
		File:         file,
		Line:         line,
		FunctionName: function,
	}
}

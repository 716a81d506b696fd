package models

import (
	"fmt"
	"hyperschedule-service/internal/pkg/exceptions"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/goccy/go-json"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// DateTimeParser reads a calendar instant out of loosely formatted text.
type DateTimeParser interface {
	ParseDateTime(input string) (time.Time, bool)
}

type looseParser struct{}

func (looseParser) ParseDateTime(input string) (time.Time, bool) {
	input = strings.TrimSpace(input)
	if input == "" {
		return time.Time{}, false
	}
	parsed, err := dateparse.ParseAny(input)
	if err != nil {
		return time.Time{}, false
	}
	return parsed, true
}

// DefaultDateTimeParser backs ParseDate and ParseTime.
var DefaultDateTimeParser DateTimeParser = looseParser{}

// Date is a calendar day with no time component.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate normalizes out-of-range values the way time.Date does.
func NewDate(year int, month time.Month, day int) Date {
	normalized := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return Date{Year: normalized.Year(), Month: normalized.Month(), Day: normalized.Day()}
}

// ParseDate makes a Date out of whatever it is given. YYYY-MM-DD is
// preferred but anything DefaultDateTimeParser understands works.
func ParseDate(input string) (Date, error) {
	return ParseDateWith(DefaultDateTimeParser, input)
}

func ParseDateWith(parser DateTimeParser, input string) (Date, error) {
	if parsed, err := time.Parse(dateLayout, strings.TrimSpace(input)); err == nil {
		return NewDate(parsed.Date()), nil
	}
	parsed, ok := parser.ParseDateTime(input)
	if !ok {
		return Date{}, exceptions.ErrDateParse(nil, input)
	}
	return NewDate(parsed.Date()), nil
}

func (d Date) IsZero() bool {
	return d == Date{}
}

func (d Date) Compare(other Date) int {
	switch {
	case d.Year != other.Year:
		return compareInts(d.Year, other.Year)
	case d.Month != other.Month:
		return compareInts(int(d.Month), int(other.Month))
	default:
		return compareInts(d.Day, other.Day)
	}
}

func (d Date) Before(other Date) bool {
	return d.Compare(other) < 0
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := time.Parse(dateLayout, raw)
	if err != nil {
		return exceptions.ErrDateParse(err, raw)
	}
	*d = NewDate(parsed.Date())
	return nil
}

// Time is a time of day with minute precision.
type Time struct {
	Hour   int
	Minute int
}

var clockLayouts = []string{
	"15:04",
	"15:04:05",
	"3:04 PM",
	"3:04PM",
	"3:04:05 PM",
	"3 PM",
	"3PM",
	"15.04",
}

// NewTime validates the hour and minute ranges.
func NewTime(hour, minute int) (Time, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return Time{}, exceptions.ErrTimeParse(nil, fmt.Sprintf("%d:%d", hour, minute))
	}
	return Time{Hour: hour, Minute: minute}, nil
}

// ParseTime makes a Time out of whatever it is given. HH:MM is preferred.
func ParseTime(input string) (Time, error) {
	return ParseTimeWith(DefaultDateTimeParser, input)
}

func ParseTimeWith(parser DateTimeParser, input string) (Time, error) {
	normalized := strings.ToUpper(strings.TrimSpace(input))
	normalized = strings.NewReplacer("A.M.", "AM", "P.M.", "PM").Replace(normalized)
	for _, layout := range clockLayouts {
		if parsed, err := time.Parse(layout, normalized); err == nil {
			return Time{Hour: parsed.Hour(), Minute: parsed.Minute()}, nil
		}
	}
	parsed, ok := parser.ParseDateTime(input)
	if !ok {
		return Time{}, exceptions.ErrTimeParse(nil, input)
	}
	return Time{Hour: parsed.Hour(), Minute: parsed.Minute()}, nil
}

func (t Time) minutes() int {
	return t.Hour*60 + t.Minute
}

func (t Time) Compare(other Time) int {
	return compareInts(t.minutes(), other.minutes())
}

func (t Time) Before(other Time) bool {
	return t.Compare(other) < 0
}

// String renders a 12-hour clock, e.g. "1:05 PM".
func (t Time) String() string {
	hour := (t.Hour+11)%12 + 1
	ampm := "AM"
	if t.Hour >= 12 {
		ampm = "PM"
	}
	return fmt.Sprintf("%d:%02d %s", hour, t.Minute, ampm)
}

func (t Time) MarshalJSON() ([]byte, error) {
	return json.Marshal(fmt.Sprintf("%02d:%02d", t.Hour, t.Minute))
}

func (t *Time) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := time.Parse(timeLayout, raw)
	if err != nil {
		return exceptions.ErrTimeParse(err, raw)
	}
	*t = Time{Hour: parsed.Hour(), Minute: parsed.Minute()}
	return nil
}

func compareInts(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

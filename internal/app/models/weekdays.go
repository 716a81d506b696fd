package models

import (
	"hyperschedule-service/internal/pkg/constvars"
	"hyperschedule-service/internal/pkg/exceptions"
	"strings"
	"unicode"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

// WeekdayChars lists the day codes Monday through Sunday.
const WeekdayChars = "MTWRFSU"

// Weekdays is a subset of the days of the week.
type Weekdays struct {
	mask uint8
}

// NewWeekdays builds a set from a string of day codes such as "MWF".
func NewWeekdays(log Logger, days string) (Weekdays, error) {
	var w Weekdays
	for _, day := range days {
		if unicode.IsSpace(day) {
			continue
		}
		if err := w.Add(log, day); err != nil {
			return Weekdays{}, err
		}
	}
	return w, nil
}

// Add inserts a day. Adding a day twice is harmless but reported.
func (w *Weekdays) Add(log Logger, day rune) error {
	day = unicode.ToUpper(day)
	idx := strings.IndexRune(WeekdayChars, day)
	if idx < 0 {
		return exceptions.ErrInvalidWeekday(day)
	}
	bit := uint8(1) << idx
	if w.mask&bit != 0 {
		warn(log, "Weekdays.Add got same day more than once",
			zap.String(constvars.LoggingWeekdayKey, string(day)),
		)
	}
	w.mask |= bit
	return nil
}

func (w Weekdays) Contains(day rune) bool {
	idx := strings.IndexRune(WeekdayChars, unicode.ToUpper(day))
	return idx >= 0 && w.mask&(uint8(1)<<idx) != 0
}

func (w Weekdays) Len() int {
	count := 0
	for mask := w.mask; mask != 0; mask &= mask - 1 {
		count++
	}
	return count
}

func (w Weekdays) IsEmpty() bool {
	return w.mask == 0
}

// String lists the days in Monday-first order.
func (w Weekdays) String() string {
	var sb strings.Builder
	for idx, day := range WeekdayChars {
		if w.mask&(uint8(1)<<idx) != 0 {
			sb.WriteRune(day)
		}
	}
	return sb.String()
}

func (w Weekdays) MarshalJSON() ([]byte, error) {
	return json.Marshal(w.String())
}

func (w *Weekdays) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := NewWeekdays(nil, raw)
	if err != nil {
		return err
	}
	*w = parsed
	return nil
}

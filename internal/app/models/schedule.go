package models

import (
	"hyperschedule-service/internal/pkg/constvars"

	"go.uber.org/zap"
)

// Schedule is every meeting of one course, in insertion order.
type Schedule []Meeting

// Add appends m unless a meeting with the same dates, days, times and
// subterm is already present, in which case the first one is kept and a
// warning is logged. It reports whether m was appended.
func (s *Schedule) Add(log Logger, m Meeting) bool {
	key := m.slotKey()
	for _, existing := range *s {
		if existing.slotKey() == key {
			warn(log, "Schedule.Add dropped duplicate meeting",
				zap.String(constvars.LoggingMeetingKey, key),
			)
			return false
		}
	}
	*s = append(*s, m)
	return true
}

func (s Schedule) Validate() error {
	for _, m := range s {
		if err := m.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func (s Schedule) Clone() Schedule {
	if s == nil {
		return nil
	}
	out := make(Schedule, len(s))
	for idx, m := range s {
		out[idx] = m.Clone()
	}
	return out
}

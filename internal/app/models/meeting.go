package models

import (
	"fmt"
	"hyperschedule-service/internal/pkg/exceptions"
)

// Location is free-form room or building text.
type Location string

// Meeting is one recurring time block of a course. Any field may be unset.
// Build meetings with MeetingBuilder so that the cross-field checks run.
type Meeting struct {
	StartDate *Date     `json:"start_date,omitempty"`
	EndDate   *Date     `json:"end_date,omitempty"`
	Weekdays  *Weekdays `json:"weekdays,omitempty"`
	StartTime *Time     `json:"start_time,omitempty"`
	EndTime   *Time     `json:"end_time,omitempty"`
	Subterm   *Subterm  `json:"subterm,omitempty"`
	Location  *Location `json:"location,omitempty"`
}

// Validate checks the invariants of a finished meeting: start strictly before
// end for both dates and times when both ends are set, no empty weekday set
// and no subterm without slots.
func (m Meeting) Validate() error {
	if m.StartDate != nil && m.EndDate != nil && !m.StartDate.Before(*m.EndDate) {
		return exceptions.ErrMeetingDatesInverted(m.StartDate, m.EndDate)
	}
	if m.StartTime != nil && m.EndTime != nil && !m.StartTime.Before(*m.EndTime) {
		return exceptions.ErrMeetingTimesInverted(m.StartTime, m.EndTime)
	}
	if m.Weekdays != nil && m.Weekdays.IsEmpty() {
		return exceptions.ErrEmptyWeekdays()
	}
	if m.Subterm != nil && m.Subterm.IsZero() {
		return exceptions.ErrSubtermNoSlots()
	}
	return nil
}

// slotKey identifies the (dates, days, times, subterm) tuple used for
// de-duplication inside a Schedule. Location is not part of it.
func (m Meeting) slotKey() string {
	optional := func(value fmt.Stringer, set bool) string {
		if !set {
			return "-"
		}
		return value.String()
	}
	return fmt.Sprintf("%s|%s|%s|%s|%s|%s",
		optional(m.StartDate, m.StartDate != nil),
		optional(m.EndDate, m.EndDate != nil),
		optional(m.Weekdays, m.Weekdays != nil),
		optional(m.StartTime, m.StartTime != nil),
		optional(m.EndTime, m.EndTime != nil),
		optional(m.Subterm, m.Subterm != nil),
	)
}

func (m Meeting) String() string {
	return m.slotKey()
}

// Clone copies every set field so the result shares nothing with m.
func (m Meeting) Clone() Meeting {
	var out Meeting
	if m.StartDate != nil {
		v := *m.StartDate
		out.StartDate = &v
	}
	if m.EndDate != nil {
		v := *m.EndDate
		out.EndDate = &v
	}
	if m.Weekdays != nil {
		v := *m.Weekdays
		out.Weekdays = &v
	}
	if m.StartTime != nil {
		v := *m.StartTime
		out.StartTime = &v
	}
	if m.EndTime != nil {
		v := *m.EndTime
		out.EndTime = &v
	}
	if m.Subterm != nil {
		v := Subterm{slots: m.Subterm.Slots()}
		out.Subterm = &v
	}
	if m.Location != nil {
		v := *m.Location
		out.Location = &v
	}
	return out
}

// MeetingBuilder accumulates optional meeting fields; Build validates them once.
type MeetingBuilder struct {
	meeting Meeting
}

func NewMeetingBuilder() *MeetingBuilder {
	return &MeetingBuilder{}
}

func (b *MeetingBuilder) StartDate(date Date) *MeetingBuilder {
	b.meeting.StartDate = &date
	return b
}

func (b *MeetingBuilder) EndDate(date Date) *MeetingBuilder {
	b.meeting.EndDate = &date
	return b
}

func (b *MeetingBuilder) Dates(start, end Date) *MeetingBuilder {
	return b.StartDate(start).EndDate(end)
}

func (b *MeetingBuilder) Weekdays(weekdays Weekdays) *MeetingBuilder {
	b.meeting.Weekdays = &weekdays
	return b
}

func (b *MeetingBuilder) StartTime(t Time) *MeetingBuilder {
	b.meeting.StartTime = &t
	return b
}

func (b *MeetingBuilder) EndTime(t Time) *MeetingBuilder {
	b.meeting.EndTime = &t
	return b
}

func (b *MeetingBuilder) Times(start, end Time) *MeetingBuilder {
	return b.StartTime(start).EndTime(end)
}

func (b *MeetingBuilder) Subterm(subterm Subterm) *MeetingBuilder {
	b.meeting.Subterm = &subterm
	return b
}

func (b *MeetingBuilder) Location(location Location) *MeetingBuilder {
	b.meeting.Location = &location
	return b
}

// Build returns the meeting, or a config error if the fields contradict
// each other. The builder can keep being used after Build.
func (b *MeetingBuilder) Build() (Meeting, error) {
	if err := b.meeting.Validate(); err != nil {
		return Meeting{}, err
	}
	return b.meeting.Clone(), nil
}

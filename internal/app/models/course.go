package models

import (
	"hyperschedule-service/internal/pkg/exceptions"
	"hyperschedule-service/internal/pkg/utils"
)

type EnrollmentStatus string

const (
	EnrollmentStatusOpen     EnrollmentStatus = "open"
	EnrollmentStatusClosed   EnrollmentStatus = "closed"
	EnrollmentStatusReopened EnrollmentStatus = "reopened"
	EnrollmentStatusUnknown  EnrollmentStatus = "unknown"
)

// Course is one catalog entry. Sections are separate courses. Code is the
// identity; everything else may be replaced by refinement.
type Course struct {
	Code               string           `json:"code" validate:"required"`
	Name               string           `json:"name"`
	Description        string           `json:"description,omitempty"`
	Schedule           Schedule         `json:"schedule,omitempty"`
	Instructors        []string         `json:"instructors,omitempty"`
	NumCredits         float64          `json:"num_credits" validate:"gte=0"`
	EnrollmentStatus   EnrollmentStatus `json:"enrollment_status,omitempty" validate:"omitempty,oneof=open closed reopened unknown"`
	NumSeatsFilled     int              `json:"num_seats_filled" validate:"gte=0"`
	NumSeatsTotal      int              `json:"num_seats_total" validate:"gte=0"`
	WaitlistLength     int              `json:"waitlist_length" validate:"gte=0"`
	SortKey            []string         `json:"sort_key,omitempty"`
	MutualExclusionKey []string         `json:"mutual_exclusion_key,omitempty"`
}

// Validate checks field ranges, meeting invariants and that a course does not
// report more filled seats than it has when the total is known.
func (c Course) Validate() error {
	if err := utils.ValidateStruct(c); err != nil {
		return exceptions.ErrCourseValidation(err, c.Code)
	}
	if c.NumSeatsTotal > 0 && c.NumSeatsFilled > c.NumSeatsTotal {
		return exceptions.ErrCourseSeatsExceeded(c.Code, c.NumSeatsFilled, c.NumSeatsTotal)
	}
	return c.Schedule.Validate()
}

// Clone deep-copies the course; refinement tasks get clones so they never
// alias orchestrator state.
func (c Course) Clone() Course {
	out := c
	out.Schedule = c.Schedule.Clone()
	out.Instructors = cloneStrings(c.Instructors)
	out.SortKey = cloneStrings(c.SortKey)
	out.MutualExclusionKey = cloneStrings(c.MutualExclusionKey)
	return out
}

// MutuallyExclusiveWith reports whether both courses are alternative
// choices for the same underlying class.
func (c Course) MutuallyExclusiveWith(other Course) bool {
	if len(c.MutualExclusionKey) == 0 || len(c.MutualExclusionKey) != len(other.MutualExclusionKey) {
		return false
	}
	for idx := range c.MutualExclusionKey {
		if c.MutualExclusionKey[idx] != other.MutualExclusionKey[idx] {
			return false
		}
	}
	return true
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

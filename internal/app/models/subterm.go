package models

import (
	"fmt"
	"hyperschedule-service/internal/pkg/exceptions"
	"strings"

	"github.com/goccy/go-json"
)

// Subterm names which equal slices of a term a meeting occupies, without
// reference to any particular term. Subterm(true, false) is the first half.
type Subterm struct {
	slots []bool
}

// NewSubterm needs at least one slot and at least one true slot.
func NewSubterm(slots ...bool) (Subterm, error) {
	if len(slots) == 0 {
		return Subterm{}, exceptions.ErrSubtermNoSlots()
	}
	hasSlot := false
	for _, included := range slots {
		hasSlot = hasSlot || included
	}
	if !hasSlot {
		return Subterm{}, exceptions.ErrSubtermNoTruthySlots(slots)
	}
	copied := make([]bool, len(slots))
	copy(copied, slots)
	return Subterm{slots: copied}, nil
}

func mustSubterm(slots ...bool) Subterm {
	subterm, err := NewSubterm(slots...)
	if err != nil {
		panic(err)
	}
	return subterm
}

var (
	FullTerm                 = mustSubterm(true)
	FirstHalfTerm            = mustSubterm(true, false)
	SecondHalfTerm           = mustSubterm(false, true)
	FirstThirdTerm           = mustSubterm(true, false, false)
	MiddleThirdTerm          = mustSubterm(false, true, false)
	LastThirdTerm            = mustSubterm(false, false, true)
	FirstAndMiddleThirdTerms = mustSubterm(true, true, false)
	MiddleAndLastThirdTerms  = mustSubterm(false, true, true)
)

func (s Subterm) Arity() int {
	return len(s.slots)
}

func (s Subterm) Includes(idx int) bool {
	return idx >= 0 && idx < len(s.slots) && s.slots[idx]
}

func (s Subterm) Slots() []bool {
	copied := make([]bool, len(s.slots))
	copy(copied, s.slots)
	return copied
}

func (s Subterm) IsZero() bool {
	return len(s.slots) == 0
}

func (s Subterm) Equal(other Subterm) bool {
	if len(s.slots) != len(other.slots) {
		return false
	}
	for idx := range s.slots {
		if s.slots[idx] != other.slots[idx] {
			return false
		}
	}
	return true
}

// String renders the included slices as fractions, e.g. "1/3, 2/3".
func (s Subterm) String() string {
	fractions := make([]string, 0, len(s.slots))
	for idx, included := range s.slots {
		if included {
			fractions = append(fractions, fmt.Sprintf("%d/%d", idx+1, len(s.slots)))
		}
	}
	return strings.Join(fractions, ", ")
}

func (s Subterm) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.slots)
}

func (s *Subterm) UnmarshalJSON(data []byte) error {
	var slots []bool
	if err := json.Unmarshal(data, &slots); err != nil {
		return err
	}
	parsed, err := NewSubterm(slots...)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

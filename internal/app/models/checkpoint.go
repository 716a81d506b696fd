package models

import (
	"sort"
	"time"
)

// Checkpoint is the durable refinement progress of one scraper: the last merged
// result, the codes still waiting for refinement and the codes given up on.
// Abandoned codes are neither pending nor refined.
type Checkpoint struct {
	ScraperID string         `json:"scraper_id"`
	RunID     string         `json:"run_id"`
	Snapshot  ScraperResult  `json:"snapshot"`
	Pending   []string       `json:"pending"`
	Attempts  map[string]int `json:"attempts,omitempty"`
	Abandoned []string       `json:"abandoned,omitempty"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func (c *Checkpoint) PendingSet() map[string]struct{} {
	set := make(map[string]struct{}, len(c.Pending))
	for _, code := range c.Pending {
		set[code] = struct{}{}
	}
	return set
}

func (c *Checkpoint) IsPending(code string) bool {
	for _, pending := range c.Pending {
		if pending == code {
			return true
		}
	}
	return false
}

// SortedKeys returns the keys of a code set in ascending order.
func SortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func (c *Checkpoint) Clone() *Checkpoint {
	out := *c
	out.Snapshot = *c.Snapshot.Clone()
	out.Pending = cloneStrings(c.Pending)
	out.Abandoned = cloneStrings(c.Abandoned)
	if c.Attempts != nil {
		out.Attempts = make(map[string]int, len(c.Attempts))
		for code, attempts := range c.Attempts {
			out.Attempts[code] = attempts
		}
	}
	return &out
}

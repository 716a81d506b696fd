package models

import (
	"hyperschedule-service/internal/pkg/constvars"
	"hyperschedule-service/internal/pkg/exceptions"
	"sort"

	"go.uber.org/zap"
)

// Term identifies the academic term a result belongs to.
type Term struct {
	Code string `json:"code" validate:"required"`
	Name string `json:"name,omitempty"`
}

func (t Term) Validate() error {
	if t.Code == "" {
		return exceptions.ErrTermInvalid()
	}
	return nil
}

// ScraperResult is a term plus its courses keyed by code.
type ScraperResult struct {
	Term    Term              `json:"term"`
	Courses map[string]Course `json:"courses"`
}

func NewScraperResult(term Term) *ScraperResult {
	return &ScraperResult{Term: term, Courses: make(map[string]Course)}
}

// AddCourse validates c and stores it under its code. A second course with the
// same code replaces the first and a warning is logged.
func (r *ScraperResult) AddCourse(log Logger, c Course) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if r.Courses == nil {
		r.Courses = make(map[string]Course)
	}
	if _, exists := r.Courses[c.Code]; exists {
		warn(log, "ScraperResult.AddCourse got multiple courses with same code",
			zap.String(constvars.LoggingCourseCodeKey, c.Code),
		)
	}
	r.Courses[c.Code] = c
	return nil
}

func (r *ScraperResult) Len() int {
	return len(r.Courses)
}

// Codes returns every course code in ascending order.
func (r *ScraperResult) Codes() []string {
	codes := make([]string, 0, len(r.Courses))
	for code := range r.Courses {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

func (r *ScraperResult) Clone() *ScraperResult {
	out := &ScraperResult{Term: r.Term, Courses: make(map[string]Course, len(r.Courses))}
	for code, course := range r.Courses {
		out.Courses[code] = course.Clone()
	}
	return out
}

package contracts

import (
	"context"
	"hyperschedule-service/internal/app/models"
)

// Scraper fetches the course catalog of one institution.
//
// Run should finish within about 15 minutes. When per-course detail is
// expensive, return coarse courses from Run and implement Refiner so that the
// detail is filled in over one or more invocations.
type Scraper interface {
	ID() string
	Run(ctx context.Context) (*models.ScraperResult, error)
}

// Refiner is the optional second capability of a Scraper. Refine receives a
// copy of one course and returns its replacement, or nil for "unchanged".
// It may be called concurrently for different courses.
type Refiner interface {
	Refine(ctx context.Context, course models.Course) (*models.Course, error)
}

type RefineFunc func(ctx context.Context, course models.Course) (*models.Course, error)

// RefinerOf reports whether s can refine courses.
func RefinerOf(s Scraper) (RefineFunc, bool) {
	refiner, ok := s.(Refiner)
	if !ok {
		return nil, false
	}
	return refiner.Refine, true
}

// ScraperFuncs adapts plain functions to a Scraper. A nil RefineFn yields a
// scraper without the Refiner capability.
type ScraperFuncs struct {
	ScraperID string
	RunFn     func(ctx context.Context) (*models.ScraperResult, error)
	RefineFn  RefineFunc
}

type funcScraper struct {
	id  string
	run func(ctx context.Context) (*models.ScraperResult, error)
}

func (s *funcScraper) ID() string {
	return s.id
}

func (s *funcScraper) Run(ctx context.Context) (*models.ScraperResult, error) {
	return s.run(ctx)
}

type funcRefiningScraper struct {
	funcScraper
	refine RefineFunc
}

func (s *funcRefiningScraper) Refine(ctx context.Context, course models.Course) (*models.Course, error) {
	return s.refine(ctx, course)
}

func NewScraper(funcs ScraperFuncs) Scraper {
	base := funcScraper{id: funcs.ScraperID, run: funcs.RunFn}
	if funcs.RefineFn == nil {
		return &base
	}
	return &funcRefiningScraper{funcScraper: base, refine: funcs.RefineFn}
}

// ScraperProvider resolves configured scrapers by id.
type ScraperProvider interface {
	Resolve(id string) (Scraper, error)
	IDs() []string
	EnabledIDs() []string
}

package scrapers

import (
	"context"
	"fmt"
	"hyperschedule-service/internal/app/contracts"
	"hyperschedule-service/internal/app/models"
	"hyperschedule-service/internal/pkg/constvars"
	"hyperschedule-service/internal/pkg/exceptions"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

type htmlCatalogScraper struct {
	id        string
	opts      *HTMLCatalogOptions
	log       *zap.Logger
	client    *http.Client
	baseURL   *url.URL
	termStart models.Date
	termEnd   models.Date

	mu         sync.RWMutex
	detailURLs map[string]string
}

type refiningHTMLCatalogScraper struct {
	*htmlCatalogScraper
}

// NewHTMLCatalogScraper builds a scraper that lists courses from one HTML
// table. It also refines courses from their detail pages when a detail URL
// attribute or template is configured.
func NewHTMLCatalogScraper(id string, options map[string]any, log *zap.Logger) (contracts.Scraper, error) {
	opts, err := decodeHTMLCatalogOptions(id, options)
	if err != nil {
		return nil, err
	}

	baseURL, err := url.Parse(opts.CatalogURL)
	if err != nil {
		return nil, exceptions.ErrScraperOptions(err, id)
	}

	timeout := constvars.DefaultScraperHTTPTimeout
	if opts.TimeoutSeconds > 0 {
		timeout = time.Duration(opts.TimeoutSeconds) * time.Second
	}
	if opts.UserAgent == "" {
		opts.UserAgent = constvars.DefaultHarvestUserAgent
	}

	s := &htmlCatalogScraper{
		id:         id,
		opts:       opts,
		log:        log,
		client:     &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		detailURLs: make(map[string]string),
	}

	if opts.TermStart != "" && opts.TermEnd != "" {
		if s.termStart, err = models.ParseDate(opts.TermStart); err != nil {
			return nil, exceptions.ErrScraperOptions(err, id)
		}
		if s.termEnd, err = models.ParseDate(opts.TermEnd); err != nil {
			return nil, exceptions.ErrScraperOptions(err, id)
		}
	}

	if opts.refines() {
		return &refiningHTMLCatalogScraper{htmlCatalogScraper: s}, nil
	}
	return s, nil
}

func (s *htmlCatalogScraper) ID() string {
	return s.id
}

func (s *htmlCatalogScraper) Run(ctx context.Context) (*models.ScraperResult, error) {
	s.log.Info("htmlCatalogScraper.Run called",
		zap.String(constvars.LoggingScraperIDKey, s.id),
		zap.String(constvars.LoggingURLKey, s.opts.CatalogURL),
	)

	doc, err := s.fetch(ctx, s.opts.CatalogURL)
	if err != nil {
		return nil, err
	}

	result := models.NewScraperResult(models.Term{Code: s.opts.TermCode, Name: s.opts.TermName})
	detailURLs := make(map[string]string)

	doc.Find(s.opts.Selectors.Row).Each(func(i int, row *goquery.Selection) {
		course, err := s.parseRow(row)
		if err != nil {
			s.log.Warn("htmlCatalogScraper.Run skipped row",
				zap.String(constvars.LoggingScraperIDKey, s.id),
				zap.Int(constvars.LoggingRowIndexKey, i),
				zap.Error(err),
			)
			return
		}
		if err := result.AddCourse(s.log, course); err != nil {
			s.log.Warn("htmlCatalogScraper.Run skipped invalid course",
				zap.String(constvars.LoggingScraperIDKey, s.id),
				zap.String(constvars.LoggingCourseCodeKey, course.Code),
				zap.Error(err),
			)
			return
		}
		if link, ok := s.detailLink(row); ok {
			detailURLs[course.Code] = link
		}
	})

	s.mu.Lock()
	s.detailURLs = detailURLs
	s.mu.Unlock()

	s.log.Info("htmlCatalogScraper.Run succeeded",
		zap.String(constvars.LoggingScraperIDKey, s.id),
		zap.Int(constvars.LoggingCourseCountKey, result.Len()),
	)
	return result, nil
}

func (s *refiningHTMLCatalogScraper) Refine(ctx context.Context, course models.Course) (*models.Course, error) {
	link, ok := s.detailURL(course.Code)
	if !ok {
		return nil, nil
	}

	doc, err := s.fetch(ctx, link)
	if err != nil {
		return nil, err
	}

	sel := s.opts.DetailSelectors
	if description := cellText(doc.Selection, sel.Description); description != "" {
		course.Description = description
	}
	if instructors := cellTexts(doc.Selection, sel.Instructors); len(instructors) > 0 {
		course.Instructors = instructors
	}
	if seats := cellText(doc.Selection, sel.Seats); seats != "" {
		filled, total, err := parseSeats(seats)
		if err != nil {
			return nil, err
		}
		course.NumSeatsFilled, course.NumSeatsTotal = filled, total
	}
	if status := cellText(doc.Selection, sel.Status); status != "" {
		course.EnrollmentStatus = parseEnrollmentStatus(status)
	}
	if waitlist := cellText(doc.Selection, sel.Waitlist); waitlist != "" {
		length, err := strconv.Atoi(waitlist)
		if err != nil {
			return nil, fmt.Errorf("waitlist %q: %w", waitlist, err)
		}
		course.WaitlistLength = length
	}
	return &course, nil
}

func (s *htmlCatalogScraper) parseRow(row *goquery.Selection) (models.Course, error) {
	sel := s.opts.Selectors

	course := models.Course{
		Code:             cellText(row, sel.Code),
		Name:             cellText(row, sel.Name),
		Instructors:      cellTexts(row, sel.Instructors),
		EnrollmentStatus: parseEnrollmentStatus(cellText(row, sel.Status)),
	}
	if course.Code == "" {
		return models.Course{}, fmt.Errorf("row has no course code")
	}

	if credits := cellText(row, sel.Credits); credits != "" {
		value, err := strconv.ParseFloat(credits, 64)
		if err != nil {
			return models.Course{}, fmt.Errorf("credits %q: %w", credits, err)
		}
		course.NumCredits = value
	}

	if seats := cellText(row, sel.Seats); seats != "" {
		filled, total, err := parseSeats(seats)
		if err != nil {
			return models.Course{}, err
		}
		course.NumSeatsFilled, course.NumSeatsTotal = filled, total
	}

	schedule, err := s.parseSchedule(
		splitList(cellText(row, sel.Days)),
		splitList(cellText(row, sel.Times)),
		splitList(cellText(row, sel.Location)),
	)
	if err != nil {
		return models.Course{}, err
	}
	course.Schedule = schedule
	return course, nil
}

// parseSchedule pairs the i-th days, times and location entries of a row
// into one meeting each.
func (s *htmlCatalogScraper) parseSchedule(days, times, locations []string) (models.Schedule, error) {
	count := max(len(days), len(times))
	var schedule models.Schedule

	for i := 0; i < count; i++ {
		builder := models.NewMeetingBuilder()
		if !s.termStart.IsZero() {
			builder.Dates(s.termStart, s.termEnd)
		}

		if i < len(days) {
			weekdays, err := models.NewWeekdays(s.log, strings.ReplaceAll(days[i], " ", ""))
			if err != nil {
				return nil, err
			}
			builder.Weekdays(weekdays)
		}

		if i < len(times) {
			start, end, err := parseTimeRange(times[i])
			if err != nil {
				return nil, err
			}
			builder.Times(start, end)
		}

		if i < len(locations) {
			builder.Location(models.Location(locations[i]))
		}

		meeting, err := builder.Build()
		if err != nil {
			return nil, err
		}
		schedule.Add(s.log, meeting)
	}
	return schedule, nil
}

func (s *htmlCatalogScraper) detailLink(row *goquery.Selection) (string, bool) {
	attr := s.opts.DetailURLAttr
	if attr == "" {
		return "", false
	}

	href, ok := row.Attr(attr)
	if !ok {
		href, ok = row.Find("[" + attr + "]").First().Attr(attr)
	}
	href = strings.TrimSpace(href)
	if !ok || href == "" {
		return "", false
	}

	ref, err := url.Parse(href)
	if err != nil {
		return "", false
	}
	return s.baseURL.ResolveReference(ref).String(), true
}

func (s *htmlCatalogScraper) detailURL(code string) (string, bool) {
	s.mu.RLock()
	link, ok := s.detailURLs[code]
	s.mu.RUnlock()
	if ok {
		return link, true
	}

	if s.opts.DetailURLTemplate == "" {
		return "", false
	}
	link = strings.ReplaceAll(s.opts.DetailURLTemplate, "{code}", url.PathEscape(code))
	ref, err := url.Parse(link)
	if err != nil {
		return "", false
	}
	return s.baseURL.ResolveReference(ref).String(), true
}

func (s *htmlCatalogScraper) fetch(ctx context.Context, target string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, constvars.MethodGet, target, nil)
	if err != nil {
		return nil, exceptions.ErrHTTPFetch(err, target)
	}
	req.Header.Set(constvars.HeaderUserAgent, s.opts.UserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, exceptions.ErrHTTPFetch(err, target)
	}
	defer resp.Body.Close()

	if resp.StatusCode != constvars.StatusOK {
		return nil, exceptions.ErrHTTPUnexpectedStatus(resp.StatusCode, target)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, exceptions.ErrHTMLParse(err, target)
	}
	return doc, nil
}

package scrapers

import (
	"fmt"
	"hyperschedule-service/internal/app/models"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

func cellText(s *goquery.Selection, selector string) string {
	return strings.Join(strings.Fields(s.Find(selector).First().Text()), " ")
}

func cellTexts(s *goquery.Selection, selector string) []string {
	var out []string
	s.Find(selector).Each(func(_ int, item *goquery.Selection) {
		text := strings.Join(strings.Fields(item.Text()), " ")
		if text != "" {
			out = append(out, text)
		}
	})
	return out
}

// splitList splits a cell holding several meetings separated by ";".
func splitList(text string) []string {
	if text == "" {
		return nil
	}
	parts := strings.Split(text, ";")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		out = append(out, strings.TrimSpace(part))
	}
	return out
}

// parseSeats reads "filled/total".
func parseSeats(text string) (int, int, error) {
	filledText, totalText, ok := strings.Cut(text, "/")
	if !ok {
		return 0, 0, fmt.Errorf("seats %q: want filled/total", text)
	}
	filled, err := strconv.Atoi(strings.TrimSpace(filledText))
	if err != nil {
		return 0, 0, fmt.Errorf("seats %q: %w", text, err)
	}
	total, err := strconv.Atoi(strings.TrimSpace(totalText))
	if err != nil {
		return 0, 0, fmt.Errorf("seats %q: %w", text, err)
	}
	return filled, total, nil
}

// parseTimeRange reads "9:00 AM - 10:15 AM"; an en dash also separates.
func parseTimeRange(text string) (models.Time, models.Time, error) {
	text = strings.ReplaceAll(text, "–", "-")
	startText, endText, ok := strings.Cut(text, "-")
	if !ok {
		return models.Time{}, models.Time{}, fmt.Errorf("time range %q: want start-end", text)
	}
	start, err := models.ParseTime(strings.TrimSpace(startText))
	if err != nil {
		return models.Time{}, models.Time{}, err
	}
	end, err := models.ParseTime(strings.TrimSpace(endText))
	if err != nil {
		return models.Time{}, models.Time{}, err
	}
	return start, end, nil
}

func parseEnrollmentStatus(text string) models.EnrollmentStatus {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "":
		return ""
	case "open":
		return models.EnrollmentStatusOpen
	case "closed", "full":
		return models.EnrollmentStatusClosed
	case "reopened":
		return models.EnrollmentStatusReopened
	default:
		return models.EnrollmentStatusUnknown
	}
}

package scrapers

import (
	"hyperschedule-service/internal/pkg/exceptions"
	"hyperschedule-service/internal/pkg/utils"

	"github.com/goccy/go-json"
)

// HTMLCatalogOptions configures an html-catalog scraper. Each row matched by
// Selectors.Row is one course; cells are read with the remaining selectors
// relative to the row.
type HTMLCatalogOptions struct {
	CatalogURL     string `json:"catalog_url" validate:"required,url"`
	TermCode       string `json:"term_code" validate:"required"`
	TermName       string `json:"term_name"`
	TermStart      string `json:"term_start"`
	TermEnd        string `json:"term_end"`
	UserAgent      string `json:"user_agent"`
	TimeoutSeconds int    `json:"timeout_seconds" validate:"gte=0"`

	Selectors HTMLCatalogSelectors `json:"selectors"`

	// DetailURLAttr names an attribute on the row, or on an element inside
	// it, that links to the course detail page.
	DetailURLAttr string `json:"detail_url_attr"`
	// DetailURLTemplate is used when no attribute is found; "{code}" is
	// replaced with the escaped course code.
	DetailURLTemplate string              `json:"detail_url_template"`
	DetailSelectors   HTMLDetailSelectors `json:"detail_selectors"`
}

type HTMLCatalogSelectors struct {
	Row         string `json:"row"`
	Code        string `json:"code"`
	Name        string `json:"name"`
	Credits     string `json:"credits"`
	Status      string `json:"status"`
	Seats       string `json:"seats"`
	Days        string `json:"days"`
	Times       string `json:"times"`
	Location    string `json:"location"`
	Instructors string `json:"instructors"`
}

type HTMLDetailSelectors struct {
	Description string `json:"description"`
	Instructors string `json:"instructors"`
	Seats       string `json:"seats"`
	Status      string `json:"status"`
	Waitlist    string `json:"waitlist"`
}

func (o *HTMLCatalogOptions) refines() bool {
	return o.DetailURLAttr != "" || o.DetailURLTemplate != ""
}

func (o *HTMLCatalogOptions) applyDefaults() {
	defaultString(&o.Selectors.Row, "tr.course")
	defaultString(&o.Selectors.Code, ".code")
	defaultString(&o.Selectors.Name, ".name")
	defaultString(&o.Selectors.Credits, ".credits")
	defaultString(&o.Selectors.Status, ".status")
	defaultString(&o.Selectors.Seats, ".seats")
	defaultString(&o.Selectors.Days, ".days")
	defaultString(&o.Selectors.Times, ".times")
	defaultString(&o.Selectors.Location, ".location")
	defaultString(&o.Selectors.Instructors, ".instructor")

	defaultString(&o.DetailSelectors.Description, ".description")
	defaultString(&o.DetailSelectors.Instructors, ".instructor")
	defaultString(&o.DetailSelectors.Seats, ".seats")
	defaultString(&o.DetailSelectors.Status, ".status")
	defaultString(&o.DetailSelectors.Waitlist, ".waitlist")
}

func defaultString(field *string, value string) {
	if *field == "" {
		*field = value
	}
}

// decodeHTMLCatalogOptions converts the free-form options of the scrapers
// file into HTMLCatalogOptions.
func decodeHTMLCatalogOptions(id string, options map[string]any) (*HTMLCatalogOptions, error) {
	raw, err := json.Marshal(options)
	if err != nil {
		return nil, exceptions.ErrScraperOptions(err, id)
	}

	var opts HTMLCatalogOptions
	if err := json.Unmarshal(raw, &opts); err != nil {
		return nil, exceptions.ErrScraperOptions(err, id)
	}
	opts.applyDefaults()

	if err := utils.ValidateStruct(opts); err != nil {
		return nil, exceptions.ErrScraperOptions(err, id)
	}
	return &opts, nil
}

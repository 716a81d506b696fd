package config

import (
	"hyperschedule-service/internal/pkg/exceptions"
	"hyperschedule-service/internal/pkg/utils"
	"os"

	"github.com/goccy/go-json"
)

// ScraperConfig is one entry of the scrapers file.
type ScraperConfig struct {
	ID      string         `json:"id" validate:"required"`
	Kind    string         `json:"kind" validate:"required"`
	Enabled bool           `json:"enabled"`
	Options map[string]any `json:"options"`
}

type ScrapersConfig struct {
	Scrapers []ScraperConfig `json:"scrapers" validate:"dive"`
}

// Find returns the scraper configured under id.
func (c *ScrapersConfig) Find(id string) (ScraperConfig, bool) {
	for _, s := range c.Scrapers {
		if s.ID == id {
			return s, true
		}
	}
	return ScraperConfig{}, false
}

// EnabledIDs returns the ids of every enabled scraper in file order.
func (c *ScrapersConfig) EnabledIDs() []string {
	var ids []string
	for _, s := range c.Scrapers {
		if s.Enabled {
			ids = append(ids, s.ID)
		}
	}
	return ids
}

func LoadScrapersConfig(path string) (*ScrapersConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, exceptions.ErrConfigScrapersFile(err, path)
	}
	return ParseScrapersConfig(raw)
}

func ParseScrapersConfig(raw []byte) (*ScrapersConfig, error) {
	var cfg ScrapersConfig
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, exceptions.ErrCannotParseJSON(err)
	}
	if err := utils.ValidateStruct(cfg); err != nil {
		return nil, exceptions.ErrInputValidation(err)
	}

	seen := make(map[string]struct{}, len(cfg.Scrapers))
	for _, s := range cfg.Scrapers {
		if _, ok := seen[s.ID]; ok {
			return nil, exceptions.ErrConfigDuplicateScraper(s.ID)
		}
		seen[s.ID] = struct{}{}
	}
	return &cfg, nil
}

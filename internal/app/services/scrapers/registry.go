package scrapers

import (
	"hyperschedule-service/internal/app/config"
	"hyperschedule-service/internal/app/contracts"
	"hyperschedule-service/internal/pkg/constvars"
	"hyperschedule-service/internal/pkg/exceptions"
	"sort"
	"sync"

	"go.uber.org/zap"
)

// Factory builds a scraper from its configured options.
type Factory func(id string, options map[string]any, log *zap.Logger) (contracts.Scraper, error)

// Registry maps scraper kinds to factories and lazily builds the scrapers
// listed in the scrapers file.
type Registry struct {
	mu        sync.Mutex
	log       *zap.Logger
	factories map[string]Factory
	configs   *config.ScrapersConfig
	built     map[string]contracts.Scraper
}

var _ contracts.ScraperProvider = (*Registry)(nil)

// NewRegistry returns a registry with the built-in kinds registered.
func NewRegistry(configs *config.ScrapersConfig, log *zap.Logger) *Registry {
	if configs == nil {
		configs = &config.ScrapersConfig{}
	}
	r := &Registry{
		log:       log,
		factories: make(map[string]Factory),
		configs:   configs,
		built:     make(map[string]contracts.Scraper),
	}
	r.Register(constvars.ScraperKindHTMLCatalog, NewHTMLCatalogScraper)
	return r
}

func (r *Registry) Register(kind string, factory Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[kind] = factory
}

// Add registers an already-built scraper under its own id.
func (r *Registry) Add(scraper contracts.Scraper) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.built[scraper.ID()] = scraper
}

func (r *Registry) Resolve(id string) (contracts.Scraper, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if scraper, ok := r.built[id]; ok {
		return scraper, nil
	}

	cfg, ok := r.configs.Find(id)
	if !ok {
		return nil, exceptions.ErrScraperNotFound(id)
	}

	factory, ok := r.factories[cfg.Kind]
	if !ok {
		return nil, exceptions.ErrScraperKindUnknown(cfg.Kind)
	}

	scraper, err := factory(cfg.ID, cfg.Options, r.log)
	if err != nil {
		return nil, err
	}

	r.log.Info("Registry.Resolve built scraper",
		zap.String(constvars.LoggingScraperIDKey, id),
		zap.String(constvars.LoggingScraperKindKey, cfg.Kind),
	)
	r.built[id] = scraper
	return scraper, nil
}

// IDs lists every known scraper id in ascending order.
func (r *Registry) IDs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	seen := make(map[string]struct{})
	for _, cfg := range r.configs.Scrapers {
		seen[cfg.ID] = struct{}{}
	}
	for id := range r.built {
		seen[id] = struct{}{}
	}

	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// EnabledIDs lists the scrapers the scheduled worker should harvest:
// configured scrapers marked enabled plus every scraper added directly.
func (r *Registry) EnabledIDs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	seen := make(map[string]struct{})
	for _, id := range r.configs.EnabledIDs() {
		seen[id] = struct{}{}
	}
	for id := range r.built {
		if _, configured := r.configs.Find(id); !configured {
			seen[id] = struct{}{}
		}
	}

	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

package service

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"address-geocoder/internal/models"
	"address-geocoder/internal/pattern"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// ErrEmptyAddress is returned for a request without any address text.
var ErrEmptyAddress = errors.New("service: address cannot be empty")

// ErrMissingScope is returned when prefecture, city or town is missing.
var ErrMissingScope = errors.New("service: prefecture, city and town are required")

// CityRepository interface for dependency injection
type CityRepository interface {
	CityNames(ctx context.Context, prefecture string) ([]pattern.Candidate, error)
}

// Finder resolves blocks and residential units of a query.
type Finder interface {
	Find(ctx context.Context, query models.Query) (models.Query, error)
}

// GeocodeService turns geocode requests into resolved queries
type GeocodeService struct {
	finder  Finder
	cities  CityRepository
	cache   *pattern.Cache
	workers int
	logger  zerolog.Logger
}

// ServiceOption configures a GeocodeService.
type ServiceOption func(*GeocodeService)

// WithCityCanonicalization lets the service complete a city given without its
// county (竹富町 -> 八重山郡竹富町) using the store's city names.
func WithCityCanonicalization(cities CityRepository, cache *pattern.Cache) ServiceOption {
	return func(s *GeocodeService) {
		s.cities = cities
		s.cache = cache
	}
}

// WithWorkers bounds the number of concurrent resolutions in a batch.
func WithWorkers(n int) ServiceOption {
	return func(s *GeocodeService) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithServiceLogger sets the service's logger.
func WithServiceLogger(l zerolog.Logger) ServiceOption {
	return func(s *GeocodeService) { s.logger = l }
}

// NewGeocodeService creates a new geocode service
func NewGeocodeService(finder Finder, opts ...ServiceOption) *GeocodeService {
	s := &GeocodeService{
		finder:  finder,
		workers: runtime.NumCPU(),
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Geocode resolves the block and residential unit of one request
func (s *GeocodeService) Geocode(ctx context.Context, req models.GeocodeRequest) (models.Query, error) {
	if req.Address == "" && req.Input == "" {
		return models.Query{}, ErrEmptyAddress
	}
	if req.Prefecture == "" || req.City == "" || req.Town == "" {
		return models.Query{}, ErrMissingScope
	}

	city, err := s.canonicalCity(ctx, req.Prefecture, req.City)
	if err != nil {
		return models.Query{}, fmt.Errorf("service: failed to canonicalize city: %w", err)
	}

	query, err := s.finder.Find(ctx, newQuery(req, city))
	if err != nil {
		return models.Query{}, fmt.Errorf("service: failed to find address: %w", err)
	}

	return query, nil
}

// GeocodeBatch resolves requests concurrently. Results keep the request order.
// The first store failure cancels the remaining work.
func (s *GeocodeService) GeocodeBatch(ctx context.Context, reqs []models.GeocodeRequest) ([]models.Query, error) {
	results := make([]models.Query, len(reqs))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for i, req := range reqs {
		i, req := i, req
		g.Go(func() error {
			q, err := s.Geocode(gCtx, req)
			if err != nil {
				return fmt.Errorf("request %d: %w", i, err)
			}
			results[i] = q
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.logger.Debug().Int("count", len(reqs)).Msg("batch geocoded")
	return results, nil
}

// canonicalCity maps city onto the store's full county+city+ward name when the
// caller omitted the county. Unknown cities pass through unchanged.
func (s *GeocodeService) canonicalCity(ctx context.Context, prefecture, city string) (string, error) {
	if s.cities == nil || s.cache == nil {
		return city, nil
	}

	patterns, err := s.cache.Get(prefecture, func() ([]pattern.Candidate, error) {
		return s.cities.CityNames(ctx, prefecture)
	})
	if err != nil {
		return "", err
	}

	p, matched, ok := pattern.Match(patterns, city)
	if !ok || matched != city {
		return city, nil
	}
	return p.Source, nil
}

func newQuery(req models.GeocodeRequest, city string) models.Query {
	input := req.Input
	if input == "" {
		input = req.Prefecture + req.City + req.Town + req.Address
	}

	patch := models.Patch{
		Prefecture: models.String(req.Prefecture),
		City:       models.String(city),
		Town:       models.String(req.Town),
		MatchLevel: models.LevelOf(models.LevelMachiaza),
	}
	if req.TownID != "" {
		patch.TownID = models.String(req.TownID)
	}
	if req.LgCode != "" {
		patch.LgCode = models.String(req.LgCode)
	}
	return models.NewQuery(input, NormalizeResidual(req.Address)).Copy(patch)
}

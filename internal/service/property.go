package service

import (
	"context"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/deppfellow/lightbnb/internal/lib/cache"
	"github.com/deppfellow/lightbnb/internal/model"
	"github.com/deppfellow/lightbnb/internal/validation"
)

// PropertyService searches and creates properties. Search results are
// cached when a cache is configured; creating a property invalidates them.
type PropertyService struct {
	properties PropertyStore
	cache      *cache.Cache
	logger     *zerolog.Logger
}

func NewPropertyService(properties PropertyStore, searchCache *cache.Cache, logger *zerolog.Logger) *PropertyService {
	return &PropertyService{
		properties: properties,
		cache:      searchCache,
		logger:     loggerOrNop(logger),
	}
}

// Search validates opts and returns matching properties. Cache errors are
// logged and the database is queried instead.
func (s *PropertyService) Search(ctx context.Context, opts model.SearchOptions, limit int) ([]model.PropertyWithRating, error) {
	if err := validation.Validate(&opts); err != nil {
		return nil, err
	}
	limit = model.NormalizeLimit(limit)

	var key string
	if s.cache != nil {
		var err error
		key, err = s.cache.Key(ctx, searchCacheParams(opts, limit))
		if err != nil {
			s.logger.Warn().Err(err).Msg("search cache unavailable")
		} else {
			var cached []model.PropertyWithRating
			found, err := s.cache.Get(ctx, key, &cached)
			switch {
			case err != nil:
				s.logger.Warn().Err(err).Str("key", key).Msg("failed to read search cache")
			case found:
				s.logger.Debug().Str("key", key).Msg("search cache hit")
				return cached, nil
			}
		}
	}

	properties, err := s.properties.SearchProperties(ctx, opts, limit)
	if err != nil {
		return nil, err
	}
	if properties == nil {
		properties = []model.PropertyWithRating{}
	}

	if key != "" {
		if err := s.cache.Set(ctx, key, properties); err != nil {
			s.logger.Warn().Err(err).Str("key", key).Msg("failed to fill search cache")
		}
	}

	return properties, nil
}

// Create validates and stores a new property.
func (s *PropertyService) Create(ctx context.Context, input model.NewProperty) (*model.Property, error) {
	if err := validation.Validate(&input); err != nil {
		return nil, err
	}

	property, err := s.properties.AddProperty(ctx, input)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			s.logger.Warn().Err(err).Msg("failed to invalidate search cache")
		}
	}

	return property, nil
}

// searchCacheParams flattens the filters that are present, so equal
// searches map onto the same cache key.
func searchCacheParams(opts model.SearchOptions, limit int) map[string]string {
	params := map[string]string{"limit": strconv.Itoa(limit)}
	if opts.City != nil && *opts.City != "" {
		params["city"] = *opts.City
	}
	if opts.OwnerID != nil {
		params["owner_id"] = strconv.FormatInt(*opts.OwnerID, 10)
	}
	if opts.MinimumPricePerNight != nil {
		params["minimum_price_per_night"] = strconv.FormatInt(model.MinimumMinorUnits(*opts.MinimumPricePerNight), 10)
	}
	if opts.MaximumPricePerNight != nil {
		params["maximum_price_per_night"] = strconv.FormatInt(model.MaximumMinorUnits(*opts.MaximumPricePerNight), 10)
	}
	if opts.MinimumRating != nil {
		params["minimum_rating"] = strconv.FormatFloat(*opts.MinimumRating, 'f', -1, 64)
	}
	return params
}

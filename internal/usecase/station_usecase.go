package usecase

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/metro-parking/internal/domain/repository"
	"github.com/metro-parking/internal/pkg/errors"
	"github.com/metro-parking/internal/pkg/metrics"
	"github.com/metro-parking/internal/usecase/dto"
)

// StationUseCase resolves subway stations through the geodata source.
type StationUseCase struct {
	geodataRepo repository.GeodataRepository
	cacheRepo   repository.CacheRepository
	logger      *zap.Logger
	cacheTTL    time.Duration
}

// NewStationUseCase creates a StationUseCase. cacheRepo may be nil,
// which disables caching of city lookups.
func NewStationUseCase(
	geodataRepo repository.GeodataRepository,
	cacheRepo repository.CacheRepository,
	logger *zap.Logger,
	cacheTTL time.Duration,
) *StationUseCase {
	return &StationUseCase{
		geodataRepo: geodataRepo,
		cacheRepo:   cacheRepo,
		logger:      logger,
		cacheTTL:    cacheTTL,
	}
}

// SearchByCity returns the unique, sorted subway station names in a
// city. Results are cached per city when a cache is configured; cache
// failures are logged and the lookup falls through to the source.
func (uc *StationUseCase) SearchByCity(ctx context.Context, req dto.StationSearchRequest) (*dto.StationSearchResponse, error) {
	cacheKey := stationCacheKey(req.City)

	if uc.cacheRepo != nil {
		if cached, err := uc.cacheRepo.Get(ctx, cacheKey); err == nil && cached != nil {
			var stations []string
			if uerr := json.Unmarshal(cached, &stations); uerr != nil {
				uc.logger.Warn("Corrupt cache entry, refetching", zap.String("key", cacheKey), zap.Error(uerr))
			} else {
				metrics.CacheHits.WithLabelValues("station_search").Inc()
				return &dto.StationSearchResponse{
					City:     req.City,
					Stations: stations,
					Total:    len(stations),
				}, nil
			}
		}
		metrics.CacheMisses.WithLabelValues("station_search").Inc()
	}

	stations, err := uc.geodataRepo.StationNames(ctx, req.City)
	if err != nil {
		uc.logger.Error("Failed to fetch station names", zap.String("city", req.City), zap.Error(err))
		return nil, errors.ErrUpstreamUnavailable
	}

	if uc.cacheRepo != nil {
		if data, err := json.Marshal(stations); err == nil {
			if err := uc.cacheRepo.Set(ctx, cacheKey, data, uc.cacheTTL); err != nil {
				uc.logger.Warn("Failed to cache station names", zap.String("key", cacheKey), zap.Error(err))
			}
		}
	}

	return &dto.StationSearchResponse{
		City:     req.City,
		Stations: stations,
		Total:    len(stations),
	}, nil
}

func stationCacheKey(city string) string {
	return "stations:city:" + strings.ToLower(strings.TrimSpace(city))
}

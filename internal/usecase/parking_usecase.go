package usecase

import (
	"context"
	"math"

	"go.uber.org/zap"

	"github.com/metro-parking/internal/domain"
	"github.com/metro-parking/internal/domain/repository"
	"github.com/metro-parking/internal/geometry"
	"github.com/metro-parking/internal/pkg/errors"
	"github.com/metro-parking/internal/pkg/metrics"
	"github.com/metro-parking/internal/pkg/utils"
	"github.com/metro-parking/internal/usecase/dto"
)

// ParkingUseCase runs the full pipeline: resolve the station, fetch
// nearby parking geometries, clean and validate the rings, project to
// the local UTM zone and sum the areas.
type ParkingUseCase struct {
	geodataRepo    repository.GeodataRepository
	logger         *zap.Logger
	defaultRadiusM int
	maxRadiusM     int
}

// NewParkingUseCase creates a ParkingUseCase.
func NewParkingUseCase(
	geodataRepo repository.GeodataRepository,
	logger *zap.Logger,
	defaultRadiusM, maxRadiusM int,
) *ParkingUseCase {
	return &ParkingUseCase{
		geodataRepo:    geodataRepo,
		logger:         logger,
		defaultRadiusM: defaultRadiusM,
		maxRadiusM:     maxRadiusM,
	}
}

// ParkingNear resolves the station by name (first match wins, as the
// lookup already prefers exact name matches) and measures the parking
// lots around it.
func (uc *ParkingUseCase) ParkingNear(ctx context.Context, req dto.ParkingRequest) (*dto.ParkingResponse, error) {
	station, err := uc.resolveStation(ctx, req.StationName, req.City)
	if err != nil {
		return nil, err
	}

	lots, totalArea, err := uc.measureLots(ctx, station, req)
	if err != nil {
		return nil, err
	}

	if len(lots) == 0 {
		return nil, errors.ErrNoParkingFound.WithDetails(map[string]interface{}{
			"station_name": req.StationName,
		})
	}

	results := make([]dto.ParkingLotResult, 0, len(lots))
	for _, lot := range lots {
		results = append(results, dto.ConvertParkingLot(lot))
	}

	uc.logger.Info("Parking lots measured",
		zap.String("station", station.Name),
		zap.Int("lots", len(lots)),
		zap.Float64("total_area_m2", totalArea))

	return &dto.ParkingResponse{
		StationName: station.Name,
		Station:     *station,
		TotalAreaM2: totalArea,
		Lots:        results,
		Total:       len(results),
	}, nil
}

// resolveStation finds the station coordinates, using the first match
// with coordinates actually on the ellipsoid.
func (uc *ParkingUseCase) resolveStation(ctx context.Context, name, city string) (*domain.Station, error) {
	stations, err := uc.geodataRepo.StationLocations(ctx, name, city)
	if err != nil {
		uc.logger.Error("Failed to locate station", zap.String("station", name), zap.Error(err))
		return nil, errors.ErrUpstreamUnavailable
	}

	for i := range stations {
		if utils.ValidateCoordinates(stations[i].Lat, stations[i].Lon) {
			return &stations[i], nil
		}
	}

	return nil, errors.ErrStationNotFound.WithDetails(map[string]interface{}{
		"station_name": name,
	})
}

// measureLots fetches raw geometries around the station and runs each
// one through the geometry pipeline. Degenerate and invalid outlines
// are skipped silently, matching the behavior of the data source's
// own renderers. The returned total equals the sum of lot areas.
func (uc *ParkingUseCase) measureLots(ctx context.Context, station *domain.Station, req dto.ParkingRequest) ([]domain.ParkingLot, float64, error) {
	radius := req.RadiusM
	if radius == 0 {
		radius = uc.defaultRadiusM
	}
	if !utils.ValidateRadius(radius) {
		return nil, 0, errors.ErrInvalidRadius.WithDetails(map[string]interface{}{
			"radius_m": radius,
		})
	}
	if uc.maxRadiusM > 0 && radius > uc.maxRadiusM {
		radius = uc.maxRadiusM
	}

	elements, err := uc.geodataRepo.ParkingGeometries(ctx, station.Lat, station.Lon, radius, req.SurfaceOnly)
	if err != nil {
		uc.logger.Error("Failed to fetch parking geometries",
			zap.String("station", station.Name),
			zap.Error(err))
		return nil, 0, errors.ErrUpstreamUnavailable
	}

	lots := make([]domain.ParkingLot, 0, len(elements))
	var totalArea float64

	for _, el := range elements {
		if len(el.Geometry) == 0 {
			// Point features have no outline to measure.
			continue
		}
		metrics.PolygonsProcessed.Inc()

		ring := geometry.CleanRing(el.Geometry)
		if ring == nil {
			metrics.PolygonsSkipped.WithLabelValues("degenerate").Inc()
			uc.logger.Debug("Skipping degenerate ring", zap.Int64("element_id", el.ID))
			continue
		}

		if !geometry.ValidateRing(ring) {
			metrics.PolygonsSkipped.WithLabelValues("self_intersection").Inc()
			uc.logger.Debug("Skipping self-intersecting ring", zap.Int64("element_id", el.ID))
			continue
		}

		area, epsg, err := geometry.PlanarAreaM2(ring)
		if err != nil {
			metrics.PolygonsSkipped.WithLabelValues("projection").Inc()
			uc.logger.Debug("Skipping unprojectable ring",
				zap.Int64("element_id", el.ID),
				zap.Error(err))
			continue
		}

		centroid := geometry.Centroid(ring)
		distanceM := utils.HaversineDistance(station.Lat, station.Lon, centroid.Lat, centroid.Lon) * 1000

		lots = append(lots, domain.ParkingLot{
			ID:        el.ID,
			Type:      el.Type,
			Ring:      ring,
			AreaM2:    area,
			EPSG:      epsg,
			DistanceM: math.Round(distanceM*10) / 10,
			Tags:      el.Tags,
		})
		totalArea += area
	}

	return lots, math.Round(totalArea*100) / 100, nil
}

package usecase

import (
	"context"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"go.uber.org/zap"

	"github.com/metro-parking/internal/domain"
	"github.com/metro-parking/internal/geometry"
	"github.com/metro-parking/internal/pkg/errors"
	"github.com/metro-parking/internal/usecase/dto"
)

const defaultMapZoom = 15

// MapUseCase builds the interactive map view of measured parking lots.
type MapUseCase struct {
	parkingUC *ParkingUseCase
	logger    *zap.Logger
}

// NewMapUseCase creates a MapUseCase on top of the parking pipeline.
func NewMapUseCase(parkingUC *ParkingUseCase, logger *zap.Logger) *MapUseCase {
	return &MapUseCase{
		parkingUC: parkingUC,
		logger:    logger,
	}
}

// BuildMap runs the parking pipeline and turns the lots into map view
// data: a center point averaged over the lot centroids, a zoom level
// and a GeoJSON FeatureCollection with numbered, labeled polygons.
func (uc *MapUseCase) BuildMap(ctx context.Context, req dto.ParkingRequest) (*dto.MapViewData, error) {
	station, err := uc.parkingUC.resolveStation(ctx, req.StationName, req.City)
	if err != nil {
		return nil, err
	}

	lots, totalArea, err := uc.parkingUC.measureLots(ctx, station, req)
	if err != nil {
		return nil, err
	}
	if len(lots) == 0 {
		return nil, errors.ErrNoParkingFound.WithDetails(map[string]interface{}{
			"station_name": req.StationName,
		})
	}

	fc := geojson.NewFeatureCollection()
	var sumLat, sumLon float64

	for i, lot := range lots {
		ring := geometry.OrbRing(lot.Ring)
		feature := geojson.NewFeature(orb.Polygon{ring})
		feature.Properties["label"] = i + 1
		feature.Properties["id"] = lot.ID
		feature.Properties["type"] = lot.Type
		feature.Properties["area_m2"] = lot.AreaM2
		feature.Properties["distance_m"] = lot.DistanceM
		if name, ok := lot.Tags["name"]; ok {
			feature.Properties["name"] = name
		}
		fc.Append(feature)

		centroid := geometry.Centroid(lot.Ring)
		sumLat += centroid.Lat
		sumLon += centroid.Lon
	}

	data, err := fc.MarshalJSON()
	if err != nil {
		uc.logger.Error("Failed to encode map features", zap.Error(err))
		return nil, errors.ErrInternalServer
	}

	return &dto.MapViewData{
		StationName: station.Name,
		Center: domain.Point{
			Lat: sumLat / float64(len(lots)),
			Lon: sumLon / float64(len(lots)),
		},
		Zoom:        defaultMapZoom,
		TotalAreaM2: totalArea,
		LotCount:    len(lots),
		GeoJSON:     string(data),
	}, nil
}

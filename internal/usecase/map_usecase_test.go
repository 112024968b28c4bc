package usecase_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/metro-parking/internal/domain/repository"
	apperrors "github.com/metro-parking/internal/pkg/errors"
	"github.com/metro-parking/internal/usecase"
	"github.com/metro-parking/internal/usecase/dto"
)

func TestMapUseCase_BuildMap(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	t.Run("builds labeled feature collection", func(t *testing.T) {
		mockGeo := &MockGeodataRepository{}
		parkingUC := usecase.NewParkingUseCase(mockGeo, logger, 500, 5000)
		uc := usecase.NewMapUseCase(parkingUC, logger)

		elements := []repository.RawElement{
			{ID: 1, Type: "way", Geometry: squareNear(0, 0), Tags: map[string]string{"name": "Lot A"}},
			{ID: 2, Type: "way", Geometry: squareNear(0.002, 0.002)},
		}

		mockGeo.On("StationLocations", ctx, "Diagonal", "Barcelona").Return(barcelonaStation(), nil)
		mockGeo.On("ParkingGeometries", ctx, 41.3937, 2.1621, 500, false).Return(elements, nil)

		view, err := uc.BuildMap(ctx, dto.ParkingRequest{StationName: "Diagonal", City: "Barcelona"})
		require.NoError(t, err)

		assert.Equal(t, "Diagonal", view.StationName)
		assert.Equal(t, 15, view.Zoom)
		assert.Equal(t, 2, view.LotCount)
		assert.Greater(t, view.TotalAreaM2, 0.0)

		// Center sits between the two squares.
		assert.InDelta(t, 41.3864, view.Center.Lat, 0.002)
		assert.InDelta(t, 2.1745, view.Center.Lon, 0.002)

		var fc struct {
			Type     string `json:"type"`
			Features []struct {
				Geometry struct {
					Type        string          `json:"type"`
					Coordinates [][][2]float64 `json:"coordinates"`
				} `json:"geometry"`
				Properties map[string]interface{} `json:"properties"`
			} `json:"features"`
		}
		require.NoError(t, json.Unmarshal([]byte(view.GeoJSON), &fc))

		assert.Equal(t, "FeatureCollection", fc.Type)
		require.Len(t, fc.Features, 2)
		assert.Equal(t, "Polygon", fc.Features[0].Geometry.Type)
		// Rings are closed in GeoJSON output.
		ring := fc.Features[0].Geometry.Coordinates[0]
		assert.Equal(t, ring[0], ring[len(ring)-1])

		assert.Equal(t, float64(1), fc.Features[0].Properties["label"])
		assert.Equal(t, "Lot A", fc.Features[0].Properties["name"])
		assert.Equal(t, float64(2), fc.Features[1].Properties["label"])
	})

	t.Run("no lots yields not found", func(t *testing.T) {
		mockGeo := &MockGeodataRepository{}
		parkingUC := usecase.NewParkingUseCase(mockGeo, logger, 500, 5000)
		uc := usecase.NewMapUseCase(parkingUC, logger)

		mockGeo.On("StationLocations", ctx, "Diagonal", "").Return(barcelonaStation(), nil)
		mockGeo.On("ParkingGeometries", ctx, 41.3937, 2.1621, 500, false).
			Return([]repository.RawElement{}, nil)

		view, err := uc.BuildMap(ctx, dto.ParkingRequest{StationName: "Diagonal"})
		assert.Nil(t, view)
		var appErr *apperrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "NO_PARKING_FOUND", appErr.Code)
	})
}

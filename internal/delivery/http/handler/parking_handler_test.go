package handler_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/metro-parking/internal/delivery/http/handler"
	"github.com/metro-parking/internal/domain"
	"github.com/metro-parking/internal/domain/repository"
	"github.com/metro-parking/internal/usecase"
)

// MockGeodataRepository is a mock of GeodataRepository
type MockGeodataRepository struct {
	mock.Mock
}

func (m *MockGeodataRepository) StationNames(ctx context.Context, city string) ([]string, error) {
	args := m.Called(ctx, city)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockGeodataRepository) StationLocations(ctx context.Context, name, city string) ([]domain.Station, error) {
	args := m.Called(ctx, name, city)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Station), args.Error(1)
}

func (m *MockGeodataRepository) ParkingGeometries(ctx context.Context, lat, lon float64, radius int, surfaceOnly bool) ([]repository.RawElement, error) {
	args := m.Called(ctx, lat, lon, radius, surfaceOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.RawElement), args.Error(1)
}

func parkingSquare() []domain.Coordinate {
	return []domain.Coordinate{
		{Lon: 2.1730, Lat: 41.3850},
		{Lon: 2.1740, Lat: 41.3850},
		{Lon: 2.1740, Lat: 41.3858},
		{Lon: 2.1730, Lat: 41.3858},
	}
}

func newParkingApp(mockGeo *MockGeodataRepository) *fiber.App {
	logger := zap.NewNop()
	parkingUC := usecase.NewParkingUseCase(mockGeo, logger, 500, 5000)
	h := handler.NewParkingHandler(parkingUC, logger)

	app := fiber.New()
	app.Post("/get_parking_lots", h.GetParkingLots)
	app.Post("/api/v1/parking/area", h.ParkingArea)
	return app
}

func postForm(app *fiber.App, path string, form url.Values) (int, []byte, error) {
	req := httptest.NewRequest("POST", path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := app.Test(req, -1)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	return resp.StatusCode, body, err
}

func TestParkingHandler_GetParkingLots(t *testing.T) {
	t.Run("returns total area as flat JSON", func(t *testing.T) {
		mockGeo := &MockGeodataRepository{}
		app := newParkingApp(mockGeo)

		mockGeo.On("StationLocations", mock.Anything, "Diagonal", "Barcelona").
			Return([]domain.Station{{Name: "Diagonal", Lat: 41.3937, Lon: 2.1621}}, nil)
		mockGeo.On("ParkingGeometries", mock.Anything, 41.3937, 2.1621, 750, false).
			Return([]repository.RawElement{{ID: 1, Type: "way", Geometry: parkingSquare()}}, nil)

		status, body, err := postForm(app, "/get_parking_lots", url.Values{
			"station_name": {"Diagonal"},
			"city":         {"Barcelona"},
			"radius":       {"750"},
		})
		require.NoError(t, err)
		assert.Equal(t, 200, status)

		var payload map[string]interface{}
		require.NoError(t, json.Unmarshal(body, &payload))
		assert.Equal(t, "Diagonal", payload["station_name"])
		assert.Greater(t, payload["total_area_m2"].(float64), 0.0)
	})

	t.Run("missing station yields 404 error object", func(t *testing.T) {
		mockGeo := &MockGeodataRepository{}
		app := newParkingApp(mockGeo)

		mockGeo.On("StationLocations", mock.Anything, "Ghost", "").
			Return([]domain.Station{}, nil)

		status, body, err := postForm(app, "/get_parking_lots", url.Values{
			"station_name": {"Ghost"},
		})
		require.NoError(t, err)
		assert.Equal(t, 404, status)

		var payload map[string]string
		require.NoError(t, json.Unmarshal(body, &payload))
		assert.Contains(t, payload["error"], "Could not find location for station")
	})

	t.Run("no parking lots yields 404", func(t *testing.T) {
		mockGeo := &MockGeodataRepository{}
		app := newParkingApp(mockGeo)

		mockGeo.On("StationLocations", mock.Anything, "Diagonal", "").
			Return([]domain.Station{{Name: "Diagonal", Lat: 41.3937, Lon: 2.1621}}, nil)
		mockGeo.On("ParkingGeometries", mock.Anything, 41.3937, 2.1621, 500, false).
			Return([]repository.RawElement{}, nil)

		status, _, err := postForm(app, "/get_parking_lots", url.Values{
			"station_name": {"Diagonal"},
		})
		require.NoError(t, err)
		assert.Equal(t, 404, status)
	})

	t.Run("missing station name is a 400", func(t *testing.T) {
		mockGeo := &MockGeodataRepository{}
		app := newParkingApp(mockGeo)

		status, _, err := postForm(app, "/get_parking_lots", url.Values{"city": {"Barcelona"}})
		require.NoError(t, err)
		assert.Equal(t, 400, status)
	})

	t.Run("non-numeric radius is a 400", func(t *testing.T) {
		mockGeo := &MockGeodataRepository{}
		app := newParkingApp(mockGeo)

		status, _, err := postForm(app, "/get_parking_lots", url.Values{
			"station_name": {"Diagonal"},
			"radius":       {"half a km"},
		})
		require.NoError(t, err)
		assert.Equal(t, 400, status)
	})
}

func TestParkingHandler_ParkingArea(t *testing.T) {
	t.Run("returns measured lots in the response envelope", func(t *testing.T) {
		mockGeo := &MockGeodataRepository{}
		app := newParkingApp(mockGeo)

		mockGeo.On("StationLocations", mock.Anything, "Diagonal", "Barcelona").
			Return([]domain.Station{{Name: "Diagonal", Lat: 41.3937, Lon: 2.1621}}, nil)
		mockGeo.On("ParkingGeometries", mock.Anything, 41.3937, 2.1621, 500, false).
			Return([]repository.RawElement{{ID: 1, Type: "way", Geometry: parkingSquare()}}, nil)

		reqBody := `{"station_name":"Diagonal","city":"Barcelona"}`
		req := httptest.NewRequest("POST", "/api/v1/parking/area", strings.NewReader(reqBody))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, 200, resp.StatusCode)

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)

		var envelope struct {
			Data struct {
				StationName string  `json:"station_name"`
				TotalAreaM2 float64 `json:"total_area_m2"`
				Lots        []struct {
					ID     int64   `json:"id"`
					AreaM2 float64 `json:"area_m2"`
					EPSG   int     `json:"epsg"`
				} `json:"lots"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(body, &envelope))
		assert.Equal(t, "Diagonal", envelope.Data.StationName)
		require.Len(t, envelope.Data.Lots, 1)
		assert.Equal(t, 32631, envelope.Data.Lots[0].EPSG)
		assert.InDelta(t, envelope.Data.Lots[0].AreaM2, envelope.Data.TotalAreaM2, 0.011)
	})

	t.Run("validation failure is a 400 with error code", func(t *testing.T) {
		mockGeo := &MockGeodataRepository{}
		app := newParkingApp(mockGeo)

		req := httptest.NewRequest("POST", "/api/v1/parking/area", strings.NewReader(`{"city":"Barcelona"}`))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, 400, resp.StatusCode)

		body, _ := io.ReadAll(resp.Body)
		var envelope struct {
			Error struct {
				Code string `json:"code"`
			} `json:"error"`
		}
		require.NoError(t, json.Unmarshal(body, &envelope))
		assert.Equal(t, "INVALID_REQUEST", envelope.Error.Code)
	})
}

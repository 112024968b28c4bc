package handler_test

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/metro-parking/internal/delivery/http/handler"
	"github.com/metro-parking/internal/pkg/errors"
	"github.com/metro-parking/internal/usecase"
)

func newStationApp(mockGeo *MockGeodataRepository) *fiber.App {
	logger := zap.NewNop()
	stationUC := usecase.NewStationUseCase(mockGeo, nil, logger, 0)
	h := handler.NewStationHandler(stationUC, logger)

	app := fiber.New()
	app.Get("/api/v1/stations", h.Search)
	return app
}

func getJSON(t *testing.T, app *fiber.App, path string) (int, []byte) {
	t.Helper()
	req := httptest.NewRequest("GET", path, nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, body
}

func TestStationHandler_Search(t *testing.T) {
	t.Run("returns station names with total meta", func(t *testing.T) {
		mockGeo := &MockGeodataRepository{}
		app := newStationApp(mockGeo)

		mockGeo.On("StationNames", mock.Anything, "Barcelona").
			Return([]string{"Diagonal", "Sagrada Familia"}, nil)

		status, body := getJSON(t, app, "/api/v1/stations?city=Barcelona")
		assert.Equal(t, 200, status)

		var envelope struct {
			Data struct {
				City     string   `json:"city"`
				Stations []string `json:"stations"`
			} `json:"data"`
			Meta struct {
				Total int `json:"total"`
			} `json:"meta"`
		}
		require.NoError(t, json.Unmarshal(body, &envelope))
		assert.Equal(t, "Barcelona", envelope.Data.City)
		assert.Equal(t, []string{"Diagonal", "Sagrada Familia"}, envelope.Data.Stations)
		assert.Equal(t, 2, envelope.Meta.Total)
	})

	t.Run("missing city is a 400", func(t *testing.T) {
		mockGeo := &MockGeodataRepository{}
		app := newStationApp(mockGeo)

		status, _ := getJSON(t, app, "/api/v1/stations")
		assert.Equal(t, 400, status)
	})

	t.Run("upstream failure maps to 502", func(t *testing.T) {
		mockGeo := &MockGeodataRepository{}
		app := newStationApp(mockGeo)

		mockGeo.On("StationNames", mock.Anything, "Barcelona").
			Return(nil, errors.ErrUpstreamUnavailable)

		status, body := getJSON(t, app, "/api/v1/stations?city=Barcelona")
		assert.Equal(t, 502, status)

		var envelope struct {
			Error struct {
				Code string `json:"code"`
			} `json:"error"`
		}
		require.NoError(t, json.Unmarshal(body, &envelope))
		assert.Equal(t, "UPSTREAM_UNAVAILABLE", envelope.Error.Code)
	})
}

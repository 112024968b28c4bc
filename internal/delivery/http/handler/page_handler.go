package handler

import (
	"html/template"
	"path/filepath"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	apperrors "github.com/metro-parking/internal/pkg/errors"
	"github.com/metro-parking/internal/pkg/validator"
	"github.com/metro-parking/internal/usecase"
	"github.com/metro-parking/internal/usecase/dto"
)

// HomePageData feeds the search form template.
type HomePageData struct {
	Title         string
	DefaultRadius int
}

// SearchPageData feeds the station list template.
type SearchPageData struct {
	Title    string
	City     string
	Stations []string
}

// MapPageData feeds the interactive map template. GeoJSON is marked
// safe for embedding into the inline script.
type MapPageData struct {
	Title       string
	StationName string
	CenterLat   float64
	CenterLon   float64
	Zoom        int
	TotalAreaM2 float64
	LotCount    int
	GeoJSON     template.JS
}

// PageHandler renders the HTML pages of the service.
type PageHandler struct {
	templates     *template.Template
	stationUC     *usecase.StationUseCase
	mapUC         *usecase.MapUseCase
	defaultRadius int
	logger        *zap.Logger
}

// NewPageHandler loads the page templates from the templates directory.
func NewPageHandler(
	stationUC *usecase.StationUseCase,
	mapUC *usecase.MapUseCase,
	defaultRadius int,
	logger *zap.Logger,
) (*PageHandler, error) {
	tmpl, err := template.ParseGlob(filepath.Join("templates", "*.html"))
	if err != nil {
		return nil, err
	}

	return &PageHandler{
		templates:     tmpl,
		stationUC:     stationUC,
		mapUC:         mapUC,
		defaultRadius: defaultRadius,
		logger:        logger,
	}, nil
}

// Home renders the city search form.
func (h *PageHandler) Home(c *fiber.Ctx) error {
	data := HomePageData{
		Title:         "Metro Parking",
		DefaultRadius: h.defaultRadius,
	}
	return h.render(c, "base.html", data)
}

// Search renders the station list for a city submitted via the form.
func (h *PageHandler) Search(c *fiber.Ctx) error {
	req := dto.StationSearchRequest{City: c.FormValue("city")}
	if err := validator.Validate(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).SendString("Error: city name is required.")
	}

	result, err := h.stationUC.SearchByCity(c.Context(), req)
	if err != nil {
		return h.pageError(c, err)
	}

	data := SearchPageData{
		Title:    "Stations in " + result.City,
		City:     result.City,
		Stations: result.Stations,
	}
	return h.render(c, "search_results.html", data)
}

// Map renders the interactive map of parking lots around a station.
func (h *PageHandler) Map(c *fiber.Ctx) error {
	req := dto.ParkingRequest{
		StationName: c.Query("station_name"),
		City:        c.Query("city"),
		RadiusM:     c.QueryInt("radius", 0),
		SurfaceOnly: c.Query("surface") == "true",
	}
	if err := validator.Validate(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).SendString("Error: station_name is required.")
	}

	view, err := h.mapUC.BuildMap(c.Context(), req)
	if err != nil {
		return h.pageError(c, err)
	}

	data := MapPageData{
		Title:       "Parking near " + view.StationName,
		StationName: view.StationName,
		CenterLat:   view.Center.Lat,
		CenterLon:   view.Center.Lon,
		Zoom:        view.Zoom,
		TotalAreaM2: view.TotalAreaM2,
		LotCount:    view.LotCount,
		GeoJSON:     template.JS(view.GeoJSON),
	}
	return h.render(c, "map.html", data)
}

func (h *PageHandler) render(c *fiber.Ctx, name string, data interface{}) error {
	c.Set("Content-Type", "text/html; charset=utf-8")
	if err := h.templates.ExecuteTemplate(c.Response().BodyWriter(), name, data); err != nil {
		h.logger.Error("Template render failed", zap.String("template", name), zap.Error(err))
		return fiber.ErrInternalServerError
	}
	return nil
}

func (h *PageHandler) pageError(c *fiber.Ctx, err error) error {
	if appErr, ok := err.(*apperrors.AppError); ok {
		return c.Status(appErr.StatusCode).SendString("Error: " + appErr.Message + ".")
	}
	return c.Status(fiber.StatusInternalServerError).SendString("Error: something went wrong.")
}

package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	apperrors "github.com/metro-parking/internal/pkg/errors"
	"github.com/metro-parking/internal/pkg/utils"
	"github.com/metro-parking/internal/pkg/validator"
	"github.com/metro-parking/internal/usecase"
	"github.com/metro-parking/internal/usecase/dto"
)

// ParkingHandler serves parking-lot area requests, both the legacy
// form endpoint and the JSON API.
type ParkingHandler struct {
	parkingUC *usecase.ParkingUseCase
	logger    *zap.Logger
}

func NewParkingHandler(parkingUC *usecase.ParkingUseCase, logger *zap.Logger) *ParkingHandler {
	return &ParkingHandler{
		parkingUC: parkingUC,
		logger:    logger,
	}
}

// GetParkingLots godoc
// @Summary Total parking area near a station (form endpoint)
// @Description Resolves the station, measures the surrounding parking lots and returns the summed area. Accepts form fields station_name, city and radius.
// @Tags Parking
// @Accept x-www-form-urlencoded
// @Produce json
// @Param station_name formData string true "Subway station name"
// @Param city formData string false "City to narrow the station lookup"
// @Param radius formData int false "Search radius in meters" default(500)
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Router /get_parking_lots [post]
func (h *ParkingHandler) GetParkingLots(c *fiber.Ctx) error {
	req, err := parkingRequestFromForm(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	result, err := h.parkingUC.ParkingNear(c.Context(), *req)
	if err != nil {
		// The legacy contract is a flat {"error": ...} object.
		if appErr, ok := err.(*apperrors.AppError); ok {
			return c.Status(appErr.StatusCode).JSON(fiber.Map{"error": appErr.Message})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
	}

	return c.JSON(fiber.Map{
		"station_name":  result.StationName,
		"total_area_m2": result.TotalAreaM2,
	})
}

// ParkingArea godoc
// @Summary Measured parking lots near a station
// @Description JSON variant of the parking lookup returning every measured lot with its ring, EPSG code and area, plus the total.
// @Tags Parking
// @Accept json
// @Produce json
// @Param request body dto.ParkingRequest true "Station lookup parameters"
// @Success 200 {object} utils.SuccessResponse{data=dto.ParkingResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 502 {object} utils.ErrorResponse
// @Router /api/v1/parking/area [post]
func (h *ParkingHandler) ParkingArea(c *fiber.Ctx) error {
	var req dto.ParkingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.parkingUC.ParkingNear(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total: result.Total,
	})
}

// parkingRequestFromForm builds a validated request from form fields.
func parkingRequestFromForm(c *fiber.Ctx) (*dto.ParkingRequest, error) {
	req := dto.ParkingRequest{
		StationName: c.FormValue("station_name"),
		City:        c.FormValue("city"),
		SurfaceOnly: c.FormValue("surface") == "true",
	}

	if raw := c.FormValue("radius"); raw != "" {
		radius, err := strconv.Atoi(raw)
		if err != nil {
			return nil, apperrors.ErrInvalidRadius
		}
		req.RadiusM = radius
	}

	if err := validator.Validate(&req); err != nil {
		return nil, err
	}
	return &req, nil
}

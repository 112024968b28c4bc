package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/metro-parking/internal/pkg/utils"
	"github.com/metro-parking/internal/pkg/validator"
	"github.com/metro-parking/internal/usecase"
	"github.com/metro-parking/internal/usecase/dto"
)

// StationHandler serves station search requests.
type StationHandler struct {
	stationUC *usecase.StationUseCase
	logger    *zap.Logger
}

func NewStationHandler(stationUC *usecase.StationUseCase, logger *zap.Logger) *StationHandler {
	return &StationHandler{
		stationUC: stationUC,
		logger:    logger,
	}
}

// Search godoc
// @Summary Search subway stations by city
// @Description Returns the unique, sorted subway station names inside the named city.
// @Tags Stations
// @Produce json
// @Param city query string true "City name (English)"
// @Success 200 {object} utils.SuccessResponse{data=dto.StationSearchResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 502 {object} utils.ErrorResponse
// @Router /api/v1/stations [get]
func (h *StationHandler) Search(c *fiber.Ctx) error {
	var req dto.StationSearchRequest
	req.City = c.Query("city")

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.stationUC.SearchByCity(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total: result.Total,
	})
}

package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"tripgen/internal/infra"
	"tripgen/internal/models/request_models"
	"tripgen/internal/services"
	"tripgen/pkg/utils"
)

type ItineraryController struct {
	itineraryService services.ItineraryServiceInterface
	loc              *time.Location
}

func NewItineraryController(itineraryService services.ItineraryServiceInterface, cfg *infra.Config) *ItineraryController {
	return &ItineraryController{
		itineraryService: itineraryService,
		loc:              utils.LoadLocationOr(cfg.Planner.TimeZone),
	}
}

// GenerateItinerary godoc
// @Summary Generate an itinerary
// @Description Turn a free-text travel request into a day-by-day itinerary
// @Tags Itinerary
// @Accept json
// @Produce json
// @Param request body request_models.GenerateItineraryRequest true "Prompt, optional start date and start location"
// @Success 200 {object} response_models.ItineraryResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 422 {object} utils.APIResponse
// @Router /itineraries/generate [post]
func (i *ItineraryController) GenerateItinerary(c *gin.Context) {
	var req request_models.GenerateItineraryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "prompt is required")
		return
	}

	startDate, err := utils.ParseTripDate(req.StartDate, i.loc)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	if startDate.IsZero() {
		startDate = time.Now().In(i.loc)
	}

	itinerary, err := i.itineraryService.Generate(c.Request.Context(), req.Prompt, startDate, req.Start.MatrixPoint())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, itinerary, "Itinerary generated successfully")
}

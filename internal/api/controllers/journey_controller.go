package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"tripgen/internal/infra"
	"tripgen/internal/models/request_models"
	"tripgen/internal/services"
	"tripgen/pkg/utils"
)

type JourneyController struct {
	journeyService services.JourneyServiceInterface
	loc            *time.Location
}

func NewJourneyController(journeyService services.JourneyServiceInterface, cfg *infra.Config) *JourneyController {
	return &JourneyController{
		journeyService: journeyService,
		loc:            utils.LoadLocationOr(cfg.Planner.TimeZone),
	}
}

// CreateJourney godoc
// @Summary Generate and save a journey
// @Description Generate an itinerary from a prompt and store it for the authenticated user
// @Tags Journey
// @Accept json
// @Produce json
// @Param request body request_models.CreateJourneyRequest true "Prompt, optional start date and title"
// @Success 201 {object} response_models.JourneyDetailResponse
// @Failure 400 {object} utils.APIResponse
// @Security BearerAuth
// @Router /journeys [post]
func (j *JourneyController) CreateJourney(c *gin.Context) {
	var req request_models.CreateJourneyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "prompt is required")
		return
	}

	startDate, err := utils.ParseTripDate(req.StartDate, j.loc)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	if startDate.IsZero() {
		startDate = time.Now().In(j.loc)
	}

	journey, err := j.journeyService.CreateJourney(c.Request.Context(), c.GetString("user_id"), req, startDate)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, journey, "Journey created successfully")
}

// GetJourneyByUserId godoc
// @Summary Get journeys of the current user
// @Description Fetch a paginated list of journeys for the authenticated user
// @Tags Journey
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(5) minimum(1) maximum(100)
// @Success 200 {array} response_models.JourneyResponse
// @Security BearerAuth
// @Router /journeys [get]
func (j *JourneyController) GetJourneyByUserId(c *gin.Context) {
	pageStr := c.DefaultQuery("page", "1")
	pageSizeStr := c.DefaultQuery("pageSize", "5")

	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid page number")
		return
	}

	pageSize, err := strconv.Atoi(pageSizeStr)
	if err != nil || pageSize < 1 || pageSize > 100 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid page size (must be 1-100)")
		return
	}

	userId := c.GetString("user_id")

	journeys, err := j.journeyService.GetListOfJourneyByUserId(c.Request.Context(), page, pageSize, userId)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, journeys, "Journey fetched successfully")
}

// GetDetailsInfoOfJourneyById godoc
// @Summary Get journey details by ID
// @Description Fetch a stored journey with its day plans
// @Tags Journey
// @Produce json
// @Param journeyId path string true "Journey ID"
// @Success 200 {object} response_models.JourneyDetailResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /journeys/{journeyId} [get]
func (j *JourneyController) GetDetailsInfoOfJourneyById(c *gin.Context) {
	journeyId := c.Param("journeyId")
	if journeyId == "" {
		utils.RespondError(c, http.StatusBadRequest, "Journey ID is required")
		return
	}

	journey, err := j.journeyService.GetDetailsInfoOfJourneyById(c.Request.Context(), c.GetString("user_id"), journeyId)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, journey, "Journey details fetched successfully")
}

package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"tripgen/internal/models/request_models"
	"tripgen/internal/services"
	"tripgen/pkg/utils"
)

type PlacesController struct {
	placesService services.PlacesServiceInterface
}

func NewPlacesController(placesService services.PlacesServiceInterface) *PlacesController {
	return &PlacesController{
		placesService: placesService,
	}
}

// SearchPlaces godoc
// @Summary Search places
// @Description Run one places query and return the classified venues
// @Tags Places
// @Produce json
// @Param query query string true "Category or free text, e.g. museums"
// @Param near query string true "City, e.g. Paris, France"
// @Param limit query int false "Maximum results" maximum(50)
// @Success 200 {array} response_models.Venue
// @Router /places/search [get]
func (p *PlacesController) SearchPlaces(c *gin.Context) {
	var q request_models.PlacesSearchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "query and near are required")
		return
	}

	venues, err := p.placesService.SearchVenues(c.Request.Context(), services.PlaceQuery{
		Query: q.Query,
		Near:  q.Near,
		Limit: q.Limit,
	})
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, venues, "Places fetched successfully")
}

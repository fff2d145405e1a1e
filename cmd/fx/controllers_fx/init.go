package controllers_fx

import (
	"go.uber.org/fx"
	"tripgen/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewItineraryController),
	fx.Provide(controllers.NewJourneyController),
	fx.Provide(controllers.NewPlacesController))

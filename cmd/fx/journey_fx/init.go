package journey_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"
	"tripgen/internal/repositories"
	"tripgen/internal/services"
)

var Module = fx.Provide(provideJourneyRepo, provideJourneyService)

func provideJourneyRepo(db *gorm.DB) repositories.JourneyRepository {
	return repositories.NewJourneyRepository(db)
}

func provideJourneyService(journeyRepo repositories.JourneyRepository, itineraries services.ItineraryServiceInterface) services.JourneyServiceInterface {
	return services.NewJourneyService(journeyRepo, itineraries)
}

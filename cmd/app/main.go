package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"tripgen/cmd/fx/config_fx"
	"tripgen/cmd/fx/controllers_fx"
	"tripgen/cmd/fx/db_fx"
	"tripgen/cmd/fx/extractor_fx"
	"tripgen/cmd/fx/itinerary_fx"
	"tripgen/cmd/fx/journey_fx"
	"tripgen/cmd/fx/memcache_fx"
	"tripgen/cmd/fx/places_fx"
	"tripgen/cmd/fx/planner_fx"
	"tripgen/cmd/fx/redis_fx"
	"tripgen/internal/api/controllers"
	"tripgen/internal/infra"
	"tripgen/pkg/metrics"
	"tripgen/pkg/middleware"
)

func main() {
	metrics.RegisterDefault()

	app := fx.New(
		config_fx.Module,
		db_fx.Module,
		redis_fx.Module,
		memcache_fx.Module,
		places_fx.Module,
		extractor_fx.Module,
		planner_fx.Module,
		itinerary_fx.Module,
		journey_fx.Module,
		controllers_fx.Module,

		fx.Invoke(StartServer),
		fx.Provide(ProvideRouter),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine, cfg *infra.Config) {
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Printf("Starting HTTP server at :%s", cfg.Port)
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("Stopping HTTP server")
			return srv.Shutdown(ctx)
		},
	})
}

func ProvideRouter(
	cfg *infra.Config,
	itineraryController *controllers.ItineraryController,
	journeyController *controllers.JourneyController,
	placesController *controllers.PlacesController) *gin.Engine {

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.MetricsMiddleware())

	limiter := middleware.NewRateLimiter(cfg.Planner.RateLimitPerMin, 3)

	RegisterRoutes(r, limiter, itineraryController, journeyController, placesController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	limiter *middleware.RateLimiter,
	itineraryController *controllers.ItineraryController,
	journeyController *controllers.JourneyController,
	placesController *controllers.PlacesController) {

	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))
	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	itineraryGroup := r.Group("/itineraries")
	itineraryGroup.POST("/generate", limiter.Limit(), itineraryController.GenerateItinerary)

	placesGroup := r.Group("/places")
	placesGroup.GET("/search", placesController.SearchPlaces)

	journeyGroup := r.Group("/journeys")
	journeyGroup.Use(middleware.JWTAuthMiddleware())
	journeyGroup.POST("", limiter.Limit(), journeyController.CreateJourney)
	journeyGroup.GET("", journeyController.GetJourneyByUserId)
	journeyGroup.GET("/:journeyId", journeyController.GetDetailsInfoOfJourneyById)
}

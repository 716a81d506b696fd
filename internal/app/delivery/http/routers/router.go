package routers

import (
	"fmt"
	"hyperschedule-service/internal/app/config"
	"hyperschedule-service/internal/app/delivery/http/controllers"
	"hyperschedule-service/internal/app/delivery/http/middlewares"
	"hyperschedule-service/internal/pkg/constvars"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
)

func SetupRoutes(
	router *chi.Mux,
	internalConfig *config.InternalConfig,
	middlewares *middlewares.Middlewares,
	harvestController *controllers.HarvestController,
) {

	corsOptions := cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", constvars.HeaderAPIKey, constvars.HeaderRequestID},
		ExposedHeaders:   []string{constvars.HeaderRequestID},
		AllowCredentials: false,
		MaxAge:           300,
	}
	router.Use(cors.Handler(corsOptions))

	window := time.Duration(internalConfig.App.MaxTimeRequestsPerSeconds) * time.Second
	if window <= 0 {
		window = time.Second
	}
	router.Use(httprate.LimitByIP(internalConfig.App.MaxRequests, window))

	router.Use(middlewares.ErrorHandler)
	router.Use(middlewares.RequestIDMiddleware)
	router.Use(middlewares.Logging)

	endpointPrefix := fmt.Sprintf("/%s", internalConfig.App.EndpointPrefix)
	versionPrefix := fmt.Sprintf("/%s", internalConfig.App.Version)

	router.Route(endpointPrefix, func(r chi.Router) {
		r.Route(versionPrefix, func(r chi.Router) {
			r.Get(fmt.Sprintf("/%s", constvars.ResourceHealthCheck), harvestController.HealthCheck)

			r.Route(fmt.Sprintf("/%s", constvars.ResourceScrapers), func(r chi.Router) {
				attachHarvestRoutes(r, middlewares, harvestController)
			})
		})
	})
}

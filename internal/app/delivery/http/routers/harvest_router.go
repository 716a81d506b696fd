package routers

import (
	"fmt"
	"hyperschedule-service/internal/app/delivery/http/controllers"
	"hyperschedule-service/internal/app/delivery/http/middlewares"
	"hyperschedule-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
)

func attachHarvestRoutes(router chi.Router, middlewares *middlewares.Middlewares, harvestController *controllers.HarvestController) {
	router.Use(middlewares.RequireAdminAPIKey)

	router.Get("/", harvestController.ListScrapers)
	router.Get(fmt.Sprintf("/{scraperID}/%s", constvars.ResourceCheckpoint), harvestController.GetCheckpoint)
	router.Post(fmt.Sprintf("/{scraperID}/%s", constvars.ResourceHarvests), harvestController.TriggerHarvest)
}

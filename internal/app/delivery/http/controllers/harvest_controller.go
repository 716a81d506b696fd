package controllers

import (
	"context"
	"hyperschedule-service/internal/app/models"
	"hyperschedule-service/internal/pkg/constvars"
	"hyperschedule-service/internal/pkg/dto/responses"
	"hyperschedule-service/internal/pkg/utils"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const checkpointLookupTimeout = 10 * time.Second

// HarvestService is the part of the harvest service the admin API calls.
type HarvestService interface {
	ScraperIDs() []string
	EnabledScraperIDs() []string
	Checkpoint(ctx context.Context, scraperID string) (*models.Checkpoint, error)
	HarvestAsync(ctx context.Context, scraperID string) (string, error)
}

type HarvestController struct {
	Log            *zap.Logger
	HarvestService HarvestService
	Version        string
}

var (
	harvestControllerInstance *HarvestController
	onceHarvestController     sync.Once
)

func NewHarvestController(logger *zap.Logger, harvestService HarvestService, version string) *HarvestController {
	onceHarvestController.Do(func() {
		instance := &HarvestController{
			Log:            logger,
			HarvestService: harvestService,
			Version:        version,
		}
		harvestControllerInstance = instance
	})
	return harvestControllerInstance
}

func requestIDFrom(r *http.Request) string {
	requestID, _ := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	return requestID
}

func (ctrl *HarvestController) HealthCheck(w http.ResponseWriter, r *http.Request) {
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ResponseSuccess, responses.HealthCheck{
		Status:  "ok",
		Version: ctrl.Version,
	})
}

func (ctrl *HarvestController) ListScrapers(w http.ResponseWriter, r *http.Request) {
	ctrl.Log.Info("HarvestController.ListScrapers called",
		zap.String(constvars.LoggingRequestIDKey, requestIDFrom(r)),
	)

	enabled := make(map[string]struct{})
	for _, id := range ctrl.HarvestService.EnabledScraperIDs() {
		enabled[id] = struct{}{}
	}

	ids := ctrl.HarvestService.ScraperIDs()
	result := make([]responses.ScraperSummary, 0, len(ids))
	for _, id := range ids {
		_, isEnabled := enabled[id]
		result = append(result, responses.ScraperSummary{ID: id, Enabled: isEnabled})
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ResponseSuccess, result)
}

func (ctrl *HarvestController) GetCheckpoint(w http.ResponseWriter, r *http.Request) {
	requestID := requestIDFrom(r)
	scraperID := chi.URLParam(r, "scraperID")
	ctrl.Log.Info("HarvestController.GetCheckpoint called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingScraperIDKey, scraperID),
	)

	ctx, cancel := context.WithTimeout(r.Context(), checkpointLookupTimeout)
	defer cancel()

	checkpoint, err := ctrl.HarvestService.Checkpoint(ctx, scraperID)
	if err != nil {
		ctrl.Log.Error("HarvestController.GetCheckpoint error from service",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ResponseSuccess, responses.CheckpointSummary{
		ScraperID:   scraperID,
		RunID:       checkpoint.RunID,
		TermCode:    checkpoint.Snapshot.Term.Code,
		CourseCount: checkpoint.Snapshot.Len(),
		Pending:     checkpoint.Pending,
		Attempts:    checkpoint.Attempts,
		UpdatedAt:   checkpoint.UpdatedAt,
	})
}

func (ctrl *HarvestController) TriggerHarvest(w http.ResponseWriter, r *http.Request) {
	requestID := requestIDFrom(r)
	scraperID := chi.URLParam(r, "scraperID")
	ctrl.Log.Info("HarvestController.TriggerHarvest called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingScraperIDKey, scraperID),
	)

	runID, err := ctrl.HarvestService.HarvestAsync(r.Context(), scraperID)
	if err != nil {
		ctrl.Log.Error("HarvestController.TriggerHarvest error from service",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("HarvestController.TriggerHarvest accepted",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingRunIDKey, runID),
	)
	utils.BuildSuccessResponse(w, constvars.StatusAccepted, constvars.ResponseHarvestAccepted, responses.HarvestAccepted{
		RunID:     runID,
		ScraperID: scraperID,
	})
}

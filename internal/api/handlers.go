package api

import (
	"errors"
	"fmt"
	"net/http"
	"os"

	"housing/server/config"
	"housing/server/internal/models"
	"housing/server/internal/pipeline"
	"housing/server/internal/predictor"
	"housing/server/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const statusMessage = "Housing Price Prediction API is running. Use /predict/sale or /predict/rent"

// topFeatures is how many feature importances GET /models reports per mode
const topFeatures = 20

type Handler struct {
	dispatcher *predictor.Dispatcher
	store      *store.Store
	options    config.FormOptions
	logger     *logrus.Logger
}

// describer is implemented by pipelines that can report their metadata
type describer interface {
	Info() pipeline.Info
	FeatureImportances() ([]pipeline.FeatureImportance, error)
}

type ModelSummary struct {
	pipeline.Info
	TopFeatures []pipeline.FeatureImportance `json:"top_features,omitempty"`
}

type HealthResponse struct {
	Status string   `json:"status"`
	Models []string `json:"models"`
}

func NewHandler(modelStore *store.Store, options config.FormOptions, logger *logrus.Logger) *Handler {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}

	return &Handler{
		dispatcher: predictor.NewDispatcher(modelStore),
		store:      modelStore,
		options:    options,
		logger:     logger,
	}
}

func (h *Handler) Index(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": statusMessage})
}

func (h *Handler) Predict(c *gin.Context) {
	mode := c.Param("mode")

	var input models.PropertyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": validationIssues(err)})
		return
	}

	result, err := h.dispatcher.Predict(mode, input.Record())
	if err != nil {
		h.writePredictError(c, mode, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *Handler) writePredictError(c *gin.Context, mode string, err error) {
	var inferenceErr *predictor.InferenceError

	switch {
	case errors.Is(err, predictor.ErrInvalidMode):
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Mode must be 'sale' or 'rent'"})
	case errors.Is(err, predictor.ErrModelUnavailable):
		h.logger.WithField("mode", mode).Warn("Prediction requested for a mode without a model")
		c.JSON(http.StatusInternalServerError, gin.H{"detail": fmt.Sprintf("Model for %s not loaded", mode)})
	case errors.As(err, &inferenceErr):
		h.logger.WithError(err).WithField("mode", mode).Error("Pipeline failed")
		c.JSON(http.StatusInternalServerError, gin.H{"detail": inferenceErr.Error()})
	default:
		h.logger.WithError(err).WithField("mode", mode).Error("Failed to predict")
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
	}
}

// Health reports which modes can serve predictions
func (h *Handler) Health(c *gin.Context) {
	loaded := h.store.Loaded()

	status := "ok"
	if len(loaded) < len(store.Modes) {
		status = "degraded"
	}

	c.JSON(http.StatusOK, HealthResponse{Status: status, Models: loaded})
}

// ListModels describes every loaded pipeline along with its most important
// features, when the artifact carries enough statistics to compute them
func (h *Handler) ListModels(c *gin.Context) {
	summaries := make(map[string]ModelSummary)

	for _, mode := range h.store.Loaded() {
		p, _ := h.store.Lookup(mode)
		d, ok := p.(describer)
		if !ok {
			summaries[mode] = ModelSummary{Info: pipeline.Info{Mode: mode}}
			continue
		}

		summary := ModelSummary{Info: d.Info()}
		importances, err := d.FeatureImportances()
		if err != nil {
			if !errors.Is(err, pipeline.ErrNoImportances) {
				h.logger.WithError(err).WithField("mode", mode).Error("Failed to compute feature importances")
			}
		} else {
			summary.TopFeatures = pipeline.TopFeatures(importances, topFeatures)
		}
		summaries[mode] = summary
	}

	c.JSON(http.StatusOK, summaries)
}

// Options returns the categorical values the prediction form offers
func (h *Handler) Options(c *gin.Context) {
	c.JSON(http.StatusOK, h.options)
}

package handlers

import (
	"fmt"
	"io"
	"net/http"

	"cars-info-processing/internal/constants"
	apperrors "cars-info-processing/internal/errors"
	"cars-info-processing/internal/models"
	"cars-info-processing/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// maxBodyBytes caps request bodies read by the handlers.
const maxBodyBytes = 10 << 20

type CarHandler struct {
	service *service.CarService
	logger  *zap.Logger
}

func NewCarHandler(service *service.CarService, logger *zap.Logger) *CarHandler {
	return &CarHandler{
		service: service,
		logger:  logger,
	}
}

// Process handles POST /api/v1/cars/process.
func (h *CarHandler) Process(c *gin.Context) {
	var req models.ProcessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn(fmt.Sprintf("%s Invalid JSON", constants.APIName()), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  "Invalid JSON",
			"status": http.StatusBadRequest,
		})
		return
	}

	h.logger.Info(fmt.Sprintf("%s Received process request", constants.APIName()),
		zap.Int("operation_count", len(req.Operations)),
		zap.Bool("persist", req.Persist))

	result, err := h.service.Process(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Validate handles POST /api/v1/cars/validate. The body is the raw car list
// document.
func (h *CarHandler) Validate(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxBodyBytes))
	if err != nil {
		h.respondError(c, apperrors.NewFormatError("failed to read request body"))
		return
	}

	cars, err := h.service.ParseInput(string(body))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"valid": true,
		"count": len(cars),
	})
}

// GetBatch handles GET /api/v1/cars/batches/:id and returns the serialized
// car list of an earlier batch.
func (h *CarHandler) GetBatch(c *gin.Context) {
	batchID := c.Param("id")

	cars, err := h.service.GetBatch(c.Request.Context(), batchID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	output, err := h.service.Serialize(cars)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(output))
}

func (h *CarHandler) respondError(c *gin.Context, err error) {
	appErr := apperrors.AsAppError(err)
	if appErr.StatusCode >= http.StatusInternalServerError {
		h.logger.Error(fmt.Sprintf("%s Error processing request", constants.APIName()), zap.Error(err))
	} else {
		h.logger.Warn(fmt.Sprintf("%s Request rejected", constants.APIName()),
			zap.String("kind", appErr.Kind.String()), zap.Error(err))
	}

	body := gin.H{
		"error":  err.Error(),
		"kind":   appErr.Kind.String(),
		"status": appErr.StatusCode,
	}
	if appErr.StatusCode >= http.StatusInternalServerError {
		body["error"] = appErr.Message
	}
	if appErr.Field != "" {
		body["field"] = appErr.Field
	}
	c.JSON(appErr.StatusCode, body)
}

package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Yashika2244-hub/fraud-detection-api/internal/analytics"
	"github.com/Yashika2244-hub/fraud-detection-api/internal/services"
	"github.com/Yashika2244-hub/fraud-detection-api/pkg"
	"github.com/Yashika2244-hub/fraud-detection-api/pkg/common"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AnalyticsHandler struct {
	logger  *zap.Logger
	service services.AnalyticsService
}

func NewAnalyticsHandler(logger *zap.Logger, svc services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{logger: logger, service: svc}
}

func (h *AnalyticsHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/analytics/statistics", h.GetStatistics)
	r.GET("/analytics/outliers", h.GetOutliers)
}

func (h *AnalyticsHandler) GetStatistics(c *gin.Context) {
	id, ok := traceID(c)
	if !ok {
		return
	}
	comparison, err := h.service.Statistics(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, id, err)
		return
	}
	c.JSON(http.StatusOK, common.APIResponse{
		TraceID: id,
		Data: map[string]interface{}{
			"comparison": comparison,
		},
	})
}

// GetOutliers runs the selected anomaly detector. Degenerate inputs (zero
// variance, no numeric data) complete the interaction with a marked empty
// result instead of failing it.
func (h *AnalyticsHandler) GetOutliers(c *gin.Context) {
	id, ok := traceID(c)
	if !ok {
		return
	}

	method := analytics.Method(c.DefaultQuery("method", string(analytics.MethodZScore)))
	param, err := detectorParam(c, method)
	if err != nil {
		respondError(c, h.logger, id, err)
		return
	}

	detection, err := h.service.Outliers(c.Request.Context(), id, method, param)
	switch {
	case errors.Is(err, analytics.ErrZeroVariance):
		c.JSON(http.StatusOK, common.APIResponse{
			TraceID: id,
			Data: map[string]interface{}{
				"undefined": true,
				"message":   "z-score is undefined: all amounts are identical",
			},
		})
		return
	case errors.Is(err, analytics.ErrNoData):
		c.JSON(http.StatusOK, common.APIResponse{
			TraceID: id,
			Data: map[string]interface{}{
				"undefined": true,
				"message":   "insufficient data: no numeric amounts",
			},
		})
		return
	case err != nil:
		respondError(c, h.logger, id, err)
		return
	}

	c.JSON(http.StatusOK, common.APIResponse{
		TraceID: id,
		Data: map[string]interface{}{
			"detection":  detection,
			"totalCount": len(detection.Flagged),
			"fraudCount": len(detection.FraudFlagged),
		},
	})
}

func detectorParam(c *gin.Context, method analytics.Method) (float64, error) {
	name, fallback := "threshold", pkg.ZScoreThresholdDefault
	if method == analytics.MethodIQR {
		name, fallback = "multiplier", pkg.IQRMultiplierDefault
	}
	raw := c.Query(name)
	if raw == "" {
		return fallback, nil
	}
	param, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, pkg.NewAppError(pkg.ErrInvalidInputCode, name+" must be a number", err)
	}
	return param, nil
}

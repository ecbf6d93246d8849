package handlers

import (
	"net/http"

	"github.com/Yashika2244-hub/fraud-detection-api/internal/reports"
	"github.com/Yashika2244-hub/fraud-detection-api/internal/services"
	"github.com/Yashika2244-hub/fraud-detection-api/internal/views"
	"github.com/Yashika2244-hub/fraud-detection-api/pkg/common"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ReportHandler struct {
	logger  *zap.Logger
	service services.ReportService
}

func NewReportHandler(logger *zap.Logger, svc services.ReportService) *ReportHandler {
	return &ReportHandler{logger: logger, service: svc}
}

func (h *ReportHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/reports", h.ListReports)
	r.GET("/reports/:id", h.RunReport)
}

func (h *ReportHandler) ListReports(c *gin.Context) {
	id, ok := traceID(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, common.APIResponse{
		TraceID: id,
		Data: map[string]interface{}{
			"reports": h.service.List(),
		},
	})
}

func (h *ReportHandler) RunReport(c *gin.Context) {
	id, ok := traceID(c)
	if !ok {
		return
	}
	report, rs, err := h.service.Run(c.Request.Context(), id, reports.ID(c.Param("id")))
	if err != nil {
		respondError(c, h.logger, id, err)
		return
	}
	c.JSON(http.StatusOK, common.APIResponse{
		TraceID: id,
		Data: map[string]interface{}{
			"report": report,
			"result": views.TableFrom(rs),
		},
	})
}

package handlers

import (
	"net/http"
	"strconv"

	"github.com/Yashika2244-hub/fraud-detection-api/internal/analytics"
	"github.com/Yashika2244-hub/fraud-detection-api/internal/services"
	"github.com/Yashika2244-hub/fraud-detection-api/pkg"
	"github.com/Yashika2244-hub/fraud-detection-api/pkg/common"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type DashboardHandler struct {
	logger  *zap.Logger
	service services.DashboardService
}

func NewDashboardHandler(logger *zap.Logger, svc services.DashboardService) *DashboardHandler {
	return &DashboardHandler{logger: logger, service: svc}
}

func (h *DashboardHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/dashboard/summary", h.GetSummary)
	r.GET("/dashboard/filters", h.GetFilters)
	r.GET("/dashboard/breakdowns", h.GetBreakdowns)
}

// GetSummary returns the KPI scalars, optionally filtered by year, month and
// gender. Absent or "All" parameters mean no filter.
func (h *DashboardHandler) GetSummary(c *gin.Context) {
	id, ok := traceID(c)
	if !ok {
		return
	}

	filter, err := parseFilter(c)
	if err != nil {
		respondError(c, h.logger, id, err)
		return
	}

	summary, err := h.service.Summary(c.Request.Context(), id, filter)
	if err != nil {
		respondError(c, h.logger, id, err)
		return
	}
	c.JSON(http.StatusOK, common.APIResponse{
		TraceID: id,
		Data: map[string]interface{}{
			"summary": summary,
			"filter":  filter,
		},
	})
}

func (h *DashboardHandler) GetFilters(c *gin.Context) {
	id, ok := traceID(c)
	if !ok {
		return
	}
	opts, err := h.service.Filters(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, id, err)
		return
	}
	c.JSON(http.StatusOK, common.APIResponse{
		TraceID: id,
		Data: map[string]interface{}{
			"filters": opts,
		},
	})
}

func (h *DashboardHandler) GetBreakdowns(c *gin.Context) {
	id, ok := traceID(c)
	if !ok {
		return
	}
	breakdowns, err := h.service.Breakdowns(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, id, err)
		return
	}
	c.JSON(http.StatusOK, common.APIResponse{
		TraceID: id,
		Data: map[string]interface{}{
			"breakdowns": breakdowns,
		},
	})
}

func parseFilter(c *gin.Context) (analytics.Filter, error) {
	var f analytics.Filter
	if v := c.Query("year"); v != "" && v != pkg.FilterAll {
		year, err := strconv.Atoi(v)
		if err != nil {
			return f, pkg.NewAppError(pkg.ErrInvalidInputCode, "year must be a number", err)
		}
		f.Year = year
	}
	if v := c.Query("month"); v != "" && v != pkg.FilterAll {
		month, err := strconv.Atoi(v)
		if err != nil || month < 1 || month > 12 {
			return f, pkg.NewAppError(pkg.ErrInvalidInputCode, "month must be between 1 and 12", err)
		}
		f.Month = month
	}
	if v := c.Query("gender"); v != "" && v != pkg.FilterAll {
		f.Gender = v
	}
	return f, nil
}

package handlers

import (
	"net/http"
	"strconv"

	"github.com/Yashika2244-hub/fraud-detection-api/internal/services"
	"github.com/Yashika2244-hub/fraud-detection-api/internal/views"
	"github.com/Yashika2244-hub/fraud-detection-api/pkg"
	"github.com/Yashika2244-hub/fraud-detection-api/pkg/common"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CatalogHandler struct {
	logger       *zap.Logger
	service      services.CatalogService
	defaultLimit int
}

func NewCatalogHandler(logger *zap.Logger, svc services.CatalogService, defaultLimit int) *CatalogHandler {
	return &CatalogHandler{logger: logger, service: svc, defaultLimit: defaultLimit}
}

func (h *CatalogHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/tables", h.ListTables)
	r.GET("/tables/:name", h.GetTable)
	r.POST("/query", h.RunQuery)
}

func (h *CatalogHandler) ListTables(c *gin.Context) {
	id, ok := traceID(c)
	if !ok {
		return
	}
	tables, err := h.service.Tables(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, id, err)
		return
	}
	c.JSON(http.StatusOK, common.APIResponse{
		TraceID: id,
		Data: map[string]interface{}{
			"tables": tables,
		},
	})
}

func (h *CatalogHandler) GetTable(c *gin.Context) {
	id, ok := traceID(c)
	if !ok {
		return
	}

	limit := h.defaultLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			respondError(c, h.logger, id, pkg.NewAppError(pkg.ErrInvalidInputCode, "limit must be a non-negative number", err))
			return
		}
		limit = parsed
	}

	rs, err := h.service.TableData(c.Request.Context(), id, c.Param("name"), limit)
	if err != nil {
		respondError(c, h.logger, id, err)
		return
	}
	c.JSON(http.StatusOK, common.APIResponse{
		TraceID: id,
		Data: map[string]interface{}{
			"table": views.TableFrom(rs),
		},
	})
}

func (h *CatalogHandler) RunQuery(c *gin.Context) {
	id, ok := traceID(c)
	if !ok {
		return
	}

	var req views.QueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, pkg.ErrorResponse{
			Code:    pkg.ErrInvalidInputCode.Code,
			Message: "invalid request body",
			Details: err.Error(),
		})
		return
	}

	rs, err := h.service.RunQuery(c.Request.Context(), id, req.Query)
	if err != nil {
		respondError(c, h.logger, id, err)
		return
	}
	c.JSON(http.StatusOK, common.APIResponse{
		TraceID: id,
		Data: map[string]interface{}{
			"result": views.TableFrom(rs),
		},
	})
}

package handlers

import (
	"net/http"

	"github.com/Yashika2244-hub/fraud-detection-api/internal/services"
	"github.com/Yashika2244-hub/fraud-detection-api/pkg/common"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ExportHandler struct {
	logger  *zap.Logger
	service services.ExportService
}

func NewExportHandler(logger *zap.Logger, svc services.ExportService) *ExportHandler {
	return &ExportHandler{logger: logger, service: svc}
}

func (h *ExportHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/exports", h.ListExports)
	r.GET("/exports/:name", h.Download)
}

func (h *ExportHandler) ListExports(c *gin.Context) {
	id, ok := traceID(c)
	if !ok {
		return
	}
	files, err := h.service.List()
	if err != nil {
		respondError(c, h.logger, id, err)
		return
	}
	c.JSON(http.StatusOK, common.APIResponse{
		TraceID: id,
		Data: map[string]interface{}{
			"files": files,
		},
	})
}

// Download streams one artifact unchanged.
func (h *ExportHandler) Download(c *gin.Context) {
	id, ok := traceID(c)
	if !ok {
		return
	}
	name := c.Param("name")
	path, contentType, err := h.service.Resolve(name)
	if err != nil {
		respondError(c, h.logger, id, err)
		return
	}
	c.Header("Content-Type", contentType)
	c.FileAttachment(path, name)
}

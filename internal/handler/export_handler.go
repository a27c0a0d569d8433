package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/maptotext/mindmap/internal/pkg/response"
	"github.com/maptotext/mindmap/internal/service"
)

type ExportHandler struct {
	export *service.ExportService
}

func NewExportHandler(export *service.ExportService) *ExportHandler {
	return &ExportHandler{export: export}
}

func (h *ExportHandler) Export(c *gin.Context) {
	payload, err := h.export.Export(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, payload)
}

func (h *ExportHandler) ExportMindMap(c *gin.Context) {
	format := strings.TrimSpace(c.Query("format"))
	if format == "" {
		format = "text"
	}
	content, filename, contentType, err := h.export.ExportMindMap(c.Request.Context(), c.Param("id"), format)
	if err != nil {
		handleError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, content)
}

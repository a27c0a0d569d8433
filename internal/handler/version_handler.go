package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/maptotext/mindmap/internal/pkg/errcode"
	"github.com/maptotext/mindmap/internal/pkg/response"
	"github.com/maptotext/mindmap/internal/service"
)

type VersionHandler struct {
	mindmaps *service.MindMapService
}

func NewVersionHandler(mindmaps *service.MindMapService) *VersionHandler {
	return &VersionHandler{mindmaps: mindmaps}
}

func (h *VersionHandler) List(c *gin.Context) {
	versions, err := h.mindmaps.ListVersions(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, versions)
}

func parseVersion(c *gin.Context) (int, bool) {
	version, err := strconv.Atoi(c.Param("version"))
	if err != nil || version <= 0 {
		response.Error(c, http.StatusBadRequest, errcode.ErrInvalid, "invalid version")
		return 0, false
	}
	return version, true
}

func (h *VersionHandler) Get(c *gin.Context) {
	version, ok := parseVersion(c)
	if !ok {
		return
	}
	v, err := h.mindmaps.GetVersion(c.Request.Context(), c.Param("id"), version)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, v)
}

func (h *VersionHandler) Restore(c *gin.Context) {
	version, ok := parseVersion(c)
	if !ok {
		return
	}
	m, err := h.mindmaps.RestoreVersion(c.Request.Context(), c.Param("id"), version)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, m)
}

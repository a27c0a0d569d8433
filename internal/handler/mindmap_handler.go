package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/maptotext/mindmap/internal/pkg/errcode"
	"github.com/maptotext/mindmap/internal/pkg/response"
	"github.com/maptotext/mindmap/internal/service"
)

type MindMapHandler struct {
	mindmaps *service.MindMapService
}

func NewMindMapHandler(mindmaps *service.MindMapService) *MindMapHandler {
	return &MindMapHandler{mindmaps: mindmaps}
}

type titleRequest struct {
	Title string `json:"title"`
}

func (h *MindMapHandler) Create(c *gin.Context) {
	var req titleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, errcode.ErrInvalid, "invalid request")
		return
	}
	m, err := h.mindmaps.Create(c.Request.Context(), req.Title)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, m)
}

func (h *MindMapHandler) List(c *gin.Context) {
	infos, err := h.mindmaps.List(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, infos)
}

// Get always yields a document: a missing or unreadable record degrades to
// the empty document for the requested id.
func (h *MindMapHandler) Get(c *gin.Context) {
	m := h.mindmaps.Load(c.Request.Context(), c.Param("id"))
	response.Success(c, m)
}

func (h *MindMapHandler) Rename(c *gin.Context) {
	var req titleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, errcode.ErrInvalid, "invalid request")
		return
	}
	m, err := h.mindmaps.Rename(c.Request.Context(), c.Param("id"), req.Title)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, m)
}

func (h *MindMapHandler) Delete(c *gin.Context) {
	if err := h.mindmaps.Delete(c.Request.Context(), c.Param("id")); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"ok": true})
}

package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/maptotext/mindmap/internal/pkg/errcode"
	"github.com/maptotext/mindmap/internal/pkg/response"
	"github.com/maptotext/mindmap/internal/service"
)

type KeywordHandler struct {
	mindmaps *service.MindMapService
}

func NewKeywordHandler(mindmaps *service.MindMapService) *KeywordHandler {
	return &KeywordHandler{mindmaps: mindmaps}
}

type keywordRequest struct {
	Value string `json:"value"`
}

func (h *KeywordHandler) Add(c *gin.Context) {
	var req keywordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, errcode.ErrInvalid, "invalid request")
		return
	}
	m, keyword, err := h.mindmaps.AddKeyword(c.Request.Context(), c.Param("id"), c.Param("bubbleId"), req.Value)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"mindmap": m, "keyword": keyword})
}

func (h *KeywordHandler) Update(c *gin.Context) {
	var req keywordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, errcode.ErrInvalid, "invalid request")
		return
	}
	m, err := h.mindmaps.UpdateKeyword(c.Request.Context(), c.Param("id"), c.Param("bubbleId"), c.Param("keywordId"), req.Value)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, m)
}

func (h *KeywordHandler) Delete(c *gin.Context) {
	m, err := h.mindmaps.DeleteKeyword(c.Request.Context(), c.Param("id"), c.Param("bubbleId"), c.Param("keywordId"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, m)
}

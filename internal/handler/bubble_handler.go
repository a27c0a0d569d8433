package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/maptotext/mindmap/internal/model"
	"github.com/maptotext/mindmap/internal/pkg/errcode"
	"github.com/maptotext/mindmap/internal/pkg/response"
	"github.com/maptotext/mindmap/internal/service"
)

type BubbleHandler struct {
	mindmaps *service.MindMapService
}

func NewBubbleHandler(mindmaps *service.MindMapService) *BubbleHandler {
	return &BubbleHandler{mindmaps: mindmaps}
}

func (h *BubbleHandler) Add(c *gin.Context) {
	m, bubble, err := h.mindmaps.AddBubble(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"mindmap": m, "bubble": bubble})
}

type bubbleTextRequest struct {
	Text string `json:"text"`
}

func (h *BubbleHandler) UpdateText(c *gin.Context) {
	var req bubbleTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, errcode.ErrInvalid, "invalid request")
		return
	}
	m, err := h.mindmaps.UpdateBubbleText(c.Request.Context(), c.Param("id"), c.Param("bubbleId"), req.Text)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, m)
}

type importanceRequest struct {
	Importance string `json:"importance"`
}

// SetImportance enforces the recognized label set at the API boundary; the
// store itself accepts any string.
func (h *BubbleHandler) SetImportance(c *gin.Context) {
	var req importanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, errcode.ErrInvalid, "invalid request")
		return
	}
	if !model.IsRecognizedImportance(req.Importance) {
		response.Error(c, http.StatusBadRequest, errcode.ErrInvalid, "unrecognized importance label")
		return
	}
	m, err := h.mindmaps.SetImportance(c.Request.Context(), c.Param("id"), c.Param("bubbleId"), req.Importance)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, m)
}

func (h *BubbleHandler) Delete(c *gin.Context) {
	m, err := h.mindmaps.DeleteBubble(c.Request.Context(), c.Param("id"), c.Param("bubbleId"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, m)
}

type moveRequest struct {
	TargetID string `json:"target_id"`
	Position string `json:"position"`
}

func (h *BubbleHandler) Move(c *gin.Context) {
	var req moveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, errcode.ErrInvalid, "invalid request")
		return
	}
	ctx := c.Request.Context()
	mapID := c.Param("id")
	bubbleID := c.Param("bubbleId")
	var (
		m   *model.MindMap
		err error
	)
	switch req.Position {
	case "before":
		m, err = h.mindmaps.MoveBubbleBefore(ctx, mapID, bubbleID, req.TargetID)
	case "after":
		m, err = h.mindmaps.MoveBubbleAfter(ctx, mapID, bubbleID, req.TargetID)
	default:
		response.Error(c, http.StatusBadRequest, errcode.ErrInvalid, "position must be before or after")
		return
	}
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, m)
}

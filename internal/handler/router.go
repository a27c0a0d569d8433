package handler

import (
	"github.com/gin-gonic/gin"
)

type RouterDeps struct {
	MindMaps *MindMapHandler
	Bubbles  *BubbleHandler
	Keywords *KeywordHandler
	Versions *VersionHandler
	Export   *ExportHandler
}

func RegisterRoutes(api *gin.RouterGroup, deps RouterDeps) {
	api.POST("/mindmaps", deps.MindMaps.Create)
	api.GET("/mindmaps", deps.MindMaps.List)
	api.GET("/mindmaps/:id", deps.MindMaps.Get)
	api.PUT("/mindmaps/:id/title", deps.MindMaps.Rename)
	api.DELETE("/mindmaps/:id", deps.MindMaps.Delete)

	api.POST("/mindmaps/:id/bubbles", deps.Bubbles.Add)
	api.PUT("/mindmaps/:id/bubbles/:bubbleId/text", deps.Bubbles.UpdateText)
	api.PUT("/mindmaps/:id/bubbles/:bubbleId/importance", deps.Bubbles.SetImportance)
	api.DELETE("/mindmaps/:id/bubbles/:bubbleId", deps.Bubbles.Delete)
	api.POST("/mindmaps/:id/bubbles/:bubbleId/move", deps.Bubbles.Move)

	api.POST("/mindmaps/:id/bubbles/:bubbleId/keywords", deps.Keywords.Add)
	api.PUT("/mindmaps/:id/bubbles/:bubbleId/keywords/:keywordId", deps.Keywords.Update)
	api.DELETE("/mindmaps/:id/bubbles/:bubbleId/keywords/:keywordId", deps.Keywords.Delete)

	api.GET("/mindmaps/:id/versions", deps.Versions.List)
	api.GET("/mindmaps/:id/versions/:version", deps.Versions.Get)
	api.POST("/mindmaps/:id/versions/:version/restore", deps.Versions.Restore)

	api.GET("/mindmaps/:id/export", deps.Export.ExportMindMap)
	api.GET("/export", deps.Export.Export)
}

package controller

import (
	"learnpath_backend/internal/service"
	"learnpath_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type TranscriptController struct {
	Service *service.TranscriptService
}

func NewTranscriptController(svc *service.TranscriptService) *TranscriptController {
	return &TranscriptController{Service: svc}
}

// @Summary 获取视频字幕
// @Tags 字幕
// @Produce json
// @Param videoId path string true "视频ID"
// @Success 200 {object} util.Response
// @Router /api/videos/{videoId}/transcript [get]
func (c *TranscriptController) Get(ctx *gin.Context) {
	videoID := ctx.Param("videoId")
	if videoID == "" {
		util.BadRequest(ctx, "videoId is required")
		return
	}

	// 上游失败也返回 200，错误信息在 transcript.error 里
	transcript := c.Service.FetchVideoTranscript(ctx.Request.Context(), videoID)
	util.Success(ctx, transcript)
}

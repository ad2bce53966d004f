package controller

import (
	"learnpath_backend/internal/service"
	"learnpath_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ExportController struct {
	Service *service.ExportService
}

func NewExportController(svc *service.ExportService) *ExportController {
	return &ExportController{Service: svc}
}

// @Summary 导出学习指南（Markdown / PDF）
// @Tags 导出
// @Accept json
// @Produce json
// @Param body body service.ExportRequest true "视频、字幕、分析与笔记"
// @Success 201 {object} util.Response
// @Router /api/export [post]
func (c *ExportController) Export(ctx *gin.Context) {
	var req service.ExportRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.Service.Export(ctx.Request.Context(), &req)
	if err != nil {
		if err == util.ErrUnsupportedFormat {
			util.BadRequest(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, result)
}

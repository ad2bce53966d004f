package controller

import (
	"learnpath_backend/internal/service"
	"learnpath_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type PathController struct {
	Service *service.KnowledgePathService
}

func NewPathController(svc *service.KnowledgePathService) *PathController {
	return &PathController{Service: svc}
}

// @Summary 生成知识路径
// @Tags 知识路径
// @Accept json
// @Produce json
// @Param body body service.GenerateRequest true "主题与难度"
// @Success 201 {object} util.Response
// @Router /api/paths/generate [post]
func (c *PathController) Generate(ctx *gin.Context) {
	var req service.GenerateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.Service.GenerateKnowledgePath(ctx.Request.Context(), &req)
	if err != nil {
		if err == util.ErrEmptyTopic {
			util.BadRequest(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, result)
}

// @Summary 获取知识路径列表
// @Tags 知识路径
// @Produce json
// @Param topic query string false "主题关键字"
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(20)
// @Success 200 {object} util.Response
// @Router /api/paths [get]
func (c *PathController) List(ctx *gin.Context) {
	topic := ctx.Query("topic")
	page := util.MustParseInt(ctx.DefaultQuery("page", "1"))
	limit := util.MustParseInt(ctx.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	records, total, err := c.Service.ListPaths(topic, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{
		List:  records,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

// @Summary 获取知识路径详情
// @Tags 知识路径
// @Produce json
// @Param id path string true "路径ID"
// @Success 200 {object} util.Response
// @Router /api/paths/{id} [get]
func (c *PathController) Get(ctx *gin.Context) {
	id := ctx.Param("id")

	path, summary, err := c.Service.GetPath(id)
	if err != nil {
		util.NotFound(ctx)
		return
	}

	util.Success(ctx, gin.H{"path": path, "summary": summary})
}

// @Summary 删除知识路径
// @Tags 知识路径
// @Produce json
// @Param id path string true "路径ID"
// @Success 200 {object} util.Response
// @Router /api/paths/{id} [delete]
func (c *PathController) Delete(ctx *gin.Context) {
	id := ctx.Param("id")

	if err := c.Service.DeletePath(id); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, nil)
}

package controller

import (
	"learnpath_backend/internal/model"
	"learnpath_backend/internal/service"
	"learnpath_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type VerificationController struct {
	Verifier        *service.ResourceVerifier
	MinQualityScore float64
}

func NewVerificationController(verifier *service.ResourceVerifier, minQualityScore float64) *VerificationController {
	if minQualityScore <= 0 {
		minQualityScore = 0.5
	}
	return &VerificationController{Verifier: verifier, MinQualityScore: minQualityScore}
}

type verifyRequest struct {
	Resources model.ResearchResults `json:"resources" binding:"required"`
}

// @Summary 校验资源并生成质量报告
// @Tags 资源校验
// @Accept json
// @Produce json
// @Param body body verifyRequest true "分类 → 资源列表"
// @Success 200 {object} util.Response
// @Router /api/resources/verify [post]
func (c *VerificationController) Verify(ctx *gin.Context) {
	var req verifyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	verified := c.Verifier.VerifyResources(ctx.Request.Context(), req.Resources)
	report := service.GenerateQualityReport(&verified)

	util.Success(ctx, gin.H{
		"results": verified,
		"report":  report,
	})
}

type filterRequest struct {
	Results         model.VerifiedResults `json:"results" binding:"required"`
	MinQualityScore *float64              `json:"minQualityScore"`
}

// @Summary 按质量阈值过滤已校验资源
// @Tags 资源校验
// @Accept json
// @Produce json
// @Param body body filterRequest true "校验结果与阈值"
// @Success 200 {object} util.Response
// @Router /api/resources/filter [post]
func (c *VerificationController) Filter(ctx *gin.Context) {
	var req filterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	min := c.MinQualityScore
	if req.MinQualityScore != nil {
		min = *req.MinQualityScore
	}

	filtered := service.FilterQualityResources(&req.Results, min)
	util.Success(ctx, gin.H{"resources": filtered})
}

package controller

import (
	"dsa_tracker_backend/internal/service"
	"dsa_tracker_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AttemptController struct {
	AttemptService *service.AttemptService
	Identity       ViewerResolver
}

func NewAttemptController(attemptService *service.AttemptService, identity ViewerResolver) *AttemptController {
	return &AttemptController{
		AttemptService: attemptService,
		Identity:       identity,
	}
}

// ListAttempts godoc
// @Summary 获取尝试记录
// @Description 按时间倒序返回尝试记录，可按题目过滤
// @Tags 尝试
// @Produce  json
// @Param   problemId query int false "题目ID"
// @Success 200 {object} util.Response{data=[]model.Attempt} "成功"
// @Failure 400 {object} util.Response "无效的ID"
// @Router /api/attempts [get]
func (c *AttemptController) ListAttempts(ctx *gin.Context) {
	var problemID *uint
	if raw := ctx.Query("problemId"); raw != "" {
		id, err := util.ParseID(raw)
		if err != nil {
			util.RespondError(ctx, err)
			return
		}
		problemID = &id
	}

	viewer, ok := resolveViewer(ctx, c.Identity)
	if !ok {
		return
	}

	attempts, err := c.AttemptService.List(ctx.Request.Context(), viewer, problemID)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	util.Success(ctx, attempts)
}

// CreateAttempt godoc
// @Summary 记录一次尝试
// @Description 尝试序号按题目自动递增
// @Tags 尝试
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.AttemptRequest true "尝试信息"
// @Success 201 {object} util.Response{data=model.Attempt} "创建成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 401 {object} util.Response "未授权"
// @Failure 403 {object} util.Response "无权操作"
// @Failure 404 {object} util.Response "题目不存在"
// @Router /api/attempts [post]
func (c *AttemptController) CreateAttempt(ctx *gin.Context) {
	var req service.AttemptRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	viewer, ok := resolveViewer(ctx, c.Identity)
	if !ok {
		return
	}

	attempt, err := c.AttemptService.Create(ctx.Request.Context(), viewer, req)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	util.Created(ctx, attempt)
}

package controller

import (
	"dsa_tracker_backend/internal/service"
	"dsa_tracker_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ProblemController struct {
	ProblemService *service.ProblemService
	Identity       ViewerResolver
}

func NewProblemController(problemService *service.ProblemService, identity ViewerResolver) *ProblemController {
	return &ProblemController{
		ProblemService: problemService,
		Identity:       identity,
	}
}

// ListProblems godoc
// @Summary 获取题目列表
// @Description 返回当前身份的全部题目及其尝试记录，未登录时返回演示账号的数据
// @Tags 题目
// @Produce  json
// @Success 200 {object} util.Response{data=[]model.Problem} "成功"
// @Failure 500 {object} util.Response "服务器内部错误"
// @Router /api/problems [get]
func (c *ProblemController) ListProblems(ctx *gin.Context) {
	viewer, ok := resolveViewer(ctx, c.Identity)
	if !ok {
		return
	}

	problems, err := c.ProblemService.List(ctx.Request.Context(), viewer)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	util.Success(ctx, problems)
}

// CreateProblem godoc
// @Summary 创建题目
// @Tags 题目
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.ProblemRequest true "题目信息"
// @Success 201 {object} util.Response{data=model.Problem} "创建成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 401 {object} util.Response "未授权"
// @Failure 500 {object} util.Response "服务器内部错误"
// @Router /api/problems [post]
func (c *ProblemController) CreateProblem(ctx *gin.Context) {
	var req service.ProblemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	viewer, ok := resolveViewer(ctx, c.Identity)
	if !ok {
		return
	}

	problem, err := c.ProblemService.Create(ctx.Request.Context(), viewer, req)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	util.Created(ctx, problem)
}

// GetProblem godoc
// @Summary 获取题目详情
// @Tags 题目
// @Produce  json
// @Param   id path int true "题目ID"
// @Success 200 {object} util.Response{data=model.Problem} "成功"
// @Failure 400 {object} util.Response "无效的ID"
// @Failure 403 {object} util.Response "无权访问"
// @Failure 404 {object} util.Response "题目不存在"
// @Router /api/problems/{id} [get]
func (c *ProblemController) GetProblem(ctx *gin.Context) {
	id, err := util.ParseID(ctx.Param("id"))
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	viewer, ok := resolveViewer(ctx, c.Identity)
	if !ok {
		return
	}

	problem, err := c.ProblemService.Get(ctx.Request.Context(), viewer, id)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	util.Success(ctx, problem)
}

// DeleteProblem godoc
// @Summary 删除题目
// @Description 删除题目及其全部尝试记录
// @Tags 题目
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "题目ID"
// @Success 200 {object} util.Response{data=object} "删除成功"
// @Failure 400 {object} util.Response "无效的ID"
// @Failure 401 {object} util.Response "未授权"
// @Failure 403 {object} util.Response "无权操作"
// @Failure 404 {object} util.Response "题目不存在"
// @Router /api/problems/{id} [delete]
func (c *ProblemController) DeleteProblem(ctx *gin.Context) {
	id, err := util.ParseID(ctx.Param("id"))
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	viewer, ok := resolveViewer(ctx, c.Identity)
	if !ok {
		return
	}

	if err := c.ProblemService.Delete(ctx.Request.Context(), viewer, id); err != nil {
		util.RespondError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"message": "problem deleted"})
}

package controller

import (
	"dsa_tracker_backend/internal/service"
	"dsa_tracker_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type StatsController struct {
	StatsService *service.StatsService
	Identity     ViewerResolver
}

func NewStatsController(statsService *service.StatsService, identity ViewerResolver) *StatsController {
	return &StatsController{
		StatsService: statsService,
		Identity:     identity,
	}
}

// GetStats godoc
// @Summary 获取统计数据
// @Description 汇总解题数量、成功率、平均用时、分布以及最近30天的活动
// @Tags 统计
// @Produce  json
// @Param   tz query string false "IANA 时区，默认 UTC"
// @Success 200 {object} util.Response{data=service.Stats} "成功"
// @Failure 400 {object} util.Response "无效的时区"
// @Router /api/stats [get]
func (c *StatsController) GetStats(ctx *gin.Context) {
	loc, err := service.LoadLocation(ctx.Query("tz"))
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	viewer, ok := resolveViewer(ctx, c.Identity)
	if !ok {
		return
	}

	stats, err := c.StatsService.Summary(ctx.Request.Context(), viewer, loc)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	util.Success(ctx, stats)
}

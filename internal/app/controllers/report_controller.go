package controllers

import (
	"walink-crm-service/internal/domain/services"
	"walink-crm-service/internal/domain/services/container"
	"walink-crm-service/internal/error/code"
	"walink-crm-service/internal/error/response"

	"github.com/gin-gonic/gin"
)

// ReportController 报表控制器
type ReportController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewReportController 创建一个新的报表控制器
func NewReportController(ctx *gin.Context, container *container.ServiceContainer) *ReportController {
	return &ReportController{
		Ctx:       ctx,
		Container: container,
	}
}

// HandleReportFunc 返回一个处理报表请求的Gin处理函数
func HandleReportFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewReportController(ctx, container)

		switch method {
		case "getOverview":
			controller.GetOverview()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "无效的方法")
		}
	}
}

// GetOverview 获取报表总览
// range 参数支持 7d/30d/90d，缺省为 30d
func (c *ReportController) GetOverview() {
	rangeStr := c.Ctx.DefaultQuery("range", "30d")

	statsService := c.Container.GetService("stats").(services.InterfaceStatsService)
	overview, err := statsService.GetReportOverview(currentScope(c.Ctx), rangeStr)
	if err != nil {
		response.ServerError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, overview)
}

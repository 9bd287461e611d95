package controllers

import (
	"walink-crm-service/internal/domain/services"
	"walink-crm-service/internal/domain/services/container"
	"walink-crm-service/internal/error/code"
	"walink-crm-service/internal/error/response"

	"github.com/gin-gonic/gin"
)

// DashboardController 仪表盘控制器
type DashboardController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewDashboardController 创建一个新的仪表盘控制器
func NewDashboardController(ctx *gin.Context, container *container.ServiceContainer) *DashboardController {
	return &DashboardController{
		Ctx:       ctx,
		Container: container,
	}
}

// HandleDashboardFunc 返回一个处理仪表盘请求的Gin处理函数
func HandleDashboardFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewDashboardController(ctx, container)

		switch method {
		case "getStats":
			controller.GetStats()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "无效的方法")
		}
	}
}

// GetStats 获取仪表盘统计数据
func (c *DashboardController) GetStats() {
	statsService := c.Container.GetService("stats").(services.InterfaceStatsService)
	stats, err := statsService.GetDashboardStats(currentScope(c.Ctx))
	if err != nil {
		response.ServerError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, stats)
}

package controllers

import (
	"time"
	"walink-crm-service/internal/app/middleware"
	"walink-crm-service/internal/domain/services"
	"walink-crm-service/internal/domain/services/container"
	"walink-crm-service/internal/error/code"
	"walink-crm-service/internal/error/response"
	"walink-crm-service/internal/infrastructure/database"

	"github.com/gin-gonic/gin"
)

// HealthController 健康检查控制器
type HealthController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
	Pool      *database.ConnectionPool
}

// NewHealthController 创建一个新的健康检查控制器
func NewHealthController(ctx *gin.Context, container *container.ServiceContainer, pool *database.ConnectionPool) *HealthController {
	return &HealthController{
		Ctx:       ctx,
		Container: container,
		Pool:      pool,
	}
}

// HandleHealthFunc 返回一个处理健康检查请求的Gin处理函数
func HandleHealthFunc(container *container.ServiceContainer, pool *database.ConnectionPool, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewHealthController(ctx, container, pool)

		switch method {
		case "ping":
			controller.Ping()
		case "status":
			controller.Status()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "无效的方法")
		}
	}
}

// Ping 存活探针
func (c *HealthController) Ping() {
	response.Success(c.Ctx, gin.H{"message": "pong"})
}

// Status 服务状态详情
// 数据库不可用视为服务不健康，缓存与网关掉线只降级不致命
func (c *HealthController) Status() {
	dbStatus := "up"
	if err := c.Pool.HealthCheck(); err != nil {
		dbStatus = "down"
	}

	poolStats, err := c.Pool.Stats()
	if err != nil {
		poolStats = map[string]interface{}{}
	}

	redisStatus := "up"
	redisService := c.Container.GetService("redis").(services.InterfaceRedisService)
	if err := redisService.Ping(); err != nil {
		redisStatus = "down"
	}

	gatewayStatus := "down"
	gateway := c.Container.GetService("gateway").(services.InterfaceGatewayService)
	if gateway.IsUp() {
		gatewayStatus = "up"
	}

	payload := gin.H{
		"database":         dbStatus,
		"database_pool":    poolStats,
		"redis":            redisStatus,
		"gateway":          gatewayStatus,
		"cached_responses": middleware.CacheItemCount(),
		"time":             time.Now().Format(time.RFC3339),
	}

	if dbStatus != "up" {
		c.Ctx.JSON(code.StatusInternalServerError, payload)
		return
	}
	response.Success(c.Ctx, payload)
}

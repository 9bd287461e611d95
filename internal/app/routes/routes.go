package routes

import (
	"time"
	"walink-crm-service/internal/app/controllers"
	"walink-crm-service/internal/app/middleware"
	"walink-crm-service/internal/domain/services/container"
	"walink-crm-service/internal/infrastructure/config"
	"walink-crm-service/internal/infrastructure/database"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SetupRouter 初始化并返回配置好的路由
func SetupRouter(pool *database.ConnectionPool, cfg *config.Config, withGateway bool) (*gin.Engine, *container.ServiceContainer) {
	// 初始化 Gin
	r := gin.Default()

	// 添加 CORS 中间件，会话Cookie要求带凭证的跨域请求
	r.Use(func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
			c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, Accept, Origin, Cache-Control, X-Requested-With")
			c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS, PATCH")
		}
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})
	// 创建服务容器
	serviceContainer := container.NewServiceContainer(pool.GetDB(), cfg, withGateway)
	// 初始化中间件
	middleware.InitAuthMiddleware(cfg, pool.GetDB())
	// 添加 Swagger 文档路由
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 注册路由
	registerRoutes(r, serviceContainer, pool)
	return r, serviceContainer
}

// registerRoutes 配置所有API路由
func registerRoutes(
	r *gin.Engine,
	container *container.ServiceContainer,
	pool *database.ConnectionPool,
) {
	// API 路由根路径
	api := r.Group("/api")
	// 注册公共路由
	registerPublicRoutes(api, container, pool)
	// 注册需要认证的路由
	registerAuthenticatedRoutes(api, container)
}

// registerPublicRoutes 注册公共路由
func registerPublicRoutes(
	api *gin.RouterGroup,
	container *container.ServiceContainer,
	pool *database.ConnectionPool,
) {
	// 添加IP限流中间件 - 每秒允许10个请求，最多突发20个请求
	api.Use(middleware.IPRateLimiter(10, 20))

	// 健康检查路由
	api.GET("/ping", controllers.HandleHealthFunc(container, pool, "ping"))
	api.GET("/health", controllers.HandleHealthFunc(container, pool, "ping")) // 兼容Docker健康检查的路由

	// 健康状态路由组
	healthGroup := api.Group("/health")
	healthGroup.GET("/status", controllers.HandleHealthFunc(container, pool, "status"))

	// 认证路由，注册和登录单独收紧限流
	authGroup := api.Group("/auth")
	authGroup.Use(middleware.PathRateLimiter(5, 10)) // 每秒5个请求，最多突发10个
	authGroup.POST("/signup", controllers.HandleAuthFunc(container, "signup"))
	authGroup.POST("/login", controllers.HandleAuthFunc(container, "login"))
	authGroup.POST("/logout", controllers.HandleAuthFunc(container, "logout"))
}

// registerAuthenticatedRoutes 注册需要认证的路由
func registerAuthenticatedRoutes(
	api *gin.RouterGroup,
	container *container.ServiceContainer,
) {
	// 添加认证中间件
	auth := api.Group("/")
	auth.Use(middleware.Authentication())

	// 添加通用限流中间件 - 每秒30个请求，最多突发50个请求
	auth.Use(middleware.IPRateLimiter(30, 50))

	// 当前会话
	auth.GET("/auth/me", controllers.HandleAuthFunc(container, "me"))

	// 联系人路由，对外路径沿用前端的 users 命名
	userGroup := auth.Group("/users")
	userGroup.GET("", controllers.HandleContactFunc(container, "getContacts"))
	userGroup.GET("/:id", controllers.HandleContactFunc(container, "getContact"))
	userGroup.POST("", controllers.HandleContactFunc(container, "createContact"))
	userGroup.PATCH("/:id", controllers.HandleContactFunc(container, "updateContact"))
	userGroup.POST("/:id/assign", controllers.HandleContactFunc(container, "assignContact"))

	// 会话消息路由
	userGroup.GET("/:id/messages", controllers.HandleMessageFunc(container, "getMessages"))
	userGroup.POST("/:id/messages", controllers.HandleMessageFunc(container, "sendMessage"))

	// 客户需求路由
	userGroup.GET("/:id/requirements", controllers.HandleRequirementFunc(container, "getRequirements"))
	userGroup.POST("/:id/requirements", controllers.HandleRequirementFunc(container, "createRequirement"))
	auth.PATCH("/requirements/:id", controllers.HandleRequirementFunc(container, "updateRequirement"))

	// 预约路由
	appointmentGroup := auth.Group("/appointments")
	appointmentGroup.GET("", controllers.HandleAppointmentFunc(container, "getAppointments"))
	appointmentGroup.POST("", controllers.HandleAppointmentFunc(container, "createAppointment"))
	appointmentGroup.PATCH("/:id", controllers.HandleAppointmentFunc(container, "updateAppointment"))

	// 群发任务路由
	broadcastGroup := auth.Group("/broadcasts")
	broadcastGroup.GET("", controllers.HandleBroadcastFunc(container, "getBroadcasts"))
	broadcastGroup.GET("/:id", controllers.HandleBroadcastFunc(container, "getBroadcast"))
	broadcastGroup.POST("", controllers.HandleBroadcastFunc(container, "createBroadcast"))
	broadcastGroup.POST("/:id/send", controllers.HandleBroadcastFunc(container, "sendBroadcast"))

	// 消息模板路由
	templateGroup := auth.Group("/templates")
	templateGroup.GET("", controllers.HandleTemplateFunc(container, "getTemplates"))
	templateGroup.GET("/:id", controllers.HandleTemplateFunc(container, "getTemplate"))
	templateGroup.POST("", controllers.HandleTemplateFunc(container, "createTemplate"))

	// 仪表盘与报表路由
	auth.GET("/dashboard/stats", controllers.HandleDashboardFunc(container, "getStats"))
	auth.GET("/reports/overview", middleware.CacheByParams(1*time.Minute, "range"), controllers.HandleReportFunc(container, "getOverview"))

	// 团队管理路由，成员查看全员开放，增删改仅超级管理员
	teamGroup := auth.Group("/team")
	teamGroup.GET("", controllers.HandleTeamFunc(container, "getTeam"))
	teamGroup.POST("", middleware.RequireSuperAdmin(), controllers.HandleTeamFunc(container, "createMember"))
	teamGroup.PUT("/:id", middleware.RequireSuperAdmin(), controllers.HandleTeamFunc(container, "updateMember"))
	teamGroup.DELETE("/:id", middleware.RequireSuperAdmin(), controllers.HandleTeamFunc(container, "deleteMember"))
}

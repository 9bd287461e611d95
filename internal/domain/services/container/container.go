package container

import (
	"sync"

	"walink-crm-service/internal/domain/services"
	"walink-crm-service/internal/infrastructure/config"
	"walink-crm-service/pkg/logger"

	"gorm.io/gorm"
)

// ServiceContainer 管理所有服务的依赖注入
type ServiceContainer struct {
	db     *gorm.DB
	config *config.Config

	// 基础服务
	jwtService services.InterfaceJWTService

	// 数据存储服务
	redisService services.InterfaceRedisService

	// 网关桥接服务
	gatewayService services.InterfaceGatewayService

	// 业务服务
	adminService       services.InterfaceAdminService
	contactService     services.InterfaceContactService
	messageService     services.InterfaceMessageService
	requirementService services.InterfaceRequirementService
	needService        services.InterfaceNeedService
	broadcastService   services.InterfaceBroadcastService
	templateService    services.InterfaceTemplateService
	statsService       services.InterfaceStatsService

	mu sync.RWMutex
}

// NewServiceContainer 创建新的服务容器
// withGateway 为 false 时不连接MQTT（测试场景）
func NewServiceContainer(db *gorm.DB, cfg *config.Config, withGateway bool) *ServiceContainer {
	if db == nil {
		panic("数据库连接为空")
	}

	if cfg == nil {
		panic("配置为空")
	}

	container := &ServiceContainer{
		db:     db,
		config: cfg,
	}
	container.initializeServices(withGateway)
	return container
}

// initializeServices 初始化所有服务
func (c *ServiceContainer) initializeServices(withGateway bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// 初始化基础服务
	c.jwtService = services.NewJWTService(c.config, c.db)

	// 初始化Redis服务，连接不可用时统计查询自动降级
	c.redisService = services.NewRedisService(c.config)
	statsCache := c.redisService
	if err := c.redisService.Ping(); err != nil {
		logger.Warning("Redis连接测试失败: %v，统计缓存停用", err)
		statsCache = nil
	}

	// 初始化业务服务
	c.adminService = services.NewAdminService(c.db, c.config)
	c.contactService = services.NewContactService(c.db, c.config)
	c.messageService = services.NewMessageService(c.db, c.config)
	c.requirementService = services.NewRequirementService(c.db, c.config)
	c.needService = services.NewNeedService(c.db, c.config)
	c.broadcastService = services.NewBroadcastService(c.db, c.config)
	c.templateService = services.NewTemplateService(c.db, c.config)
	c.statsService = services.NewStatsService(c.db, c.config, statsCache)

	// 初始化网关桥接服务并连接
	c.gatewayService = services.NewGatewayService(c.config, c.contactService, c.messageService, c.broadcastService)
	if withGateway {
		if err := c.gatewayService.Connect(); err != nil {
			logger.Warning("消息网关连接失败: %v", err)
		}
	}
}

// GetService 获取指定名称的服务
func (c *ServiceContainer) GetService(name string) interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()

	switch name {
	case "config":
		return c.config
	case "db":
		return c.db
	case "jwt":
		return c.jwtService
	case "redis":
		return c.redisService
	case "gateway":
		return c.gatewayService
	case "admin":
		return c.adminService
	case "contact":
		return c.contactService
	case "message":
		return c.messageService
	case "requirement":
		return c.requirementService
	case "need":
		return c.needService
	case "broadcast":
		return c.broadcastService
	case "template":
		return c.templateService
	case "stats":
		return c.statsService
	default:
		return nil
	}
}

package controllers

import (
	"time"
	"walink-crm-service/internal/domain/models"
	"walink-crm-service/internal/domain/services"
	"walink-crm-service/internal/domain/services/container"
	"walink-crm-service/internal/error/code"
	"walink-crm-service/internal/error/response"
	"walink-crm-service/pkg/logger"

	"github.com/gin-gonic/gin"
)

// BroadcastController 群发任务控制器
type BroadcastController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewBroadcastController 创建一个新的群发控制器
func NewBroadcastController(ctx *gin.Context, container *container.ServiceContainer) *BroadcastController {
	return &BroadcastController{
		Ctx:       ctx,
		Container: container,
	}
}

// CreateBroadcastRequest 创建群发任务请求
type CreateBroadcastRequest struct {
	Title              string     `json:"title" binding:"required"`
	Message            string     `json:"message" binding:"required"`
	TargetAudienceType string     `json:"target_audience_type"`
	ScheduledAt        *time.Time `json:"scheduled_at"`
}

// HandleBroadcastFunc 返回一个处理群发请求的Gin处理函数
func HandleBroadcastFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewBroadcastController(ctx, container)

		switch method {
		case "getBroadcasts":
			controller.GetBroadcasts()
		case "getBroadcast":
			controller.GetBroadcast()
		case "createBroadcast":
			controller.CreateBroadcast()
		case "sendBroadcast":
			controller.SendBroadcast()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "无效的方法")
		}
	}
}

// GetBroadcasts 获取群发任务列表
func (c *BroadcastController) GetBroadcasts() {
	page := pageFromQuery(c.Ctx)

	broadcastService := c.Container.GetService("broadcast").(services.InterfaceBroadcastService)
	broadcasts, meta, err := broadcastService.GetAllBroadcasts(currentScope(c.Ctx), page)
	if err != nil {
		response.ServerError(c.Ctx, err)
		return
	}
	response.SuccessPage(c.Ctx, broadcasts, meta)
}

// GetBroadcast 获取群发任务详情
func (c *BroadcastController) GetBroadcast() {
	id, ok := parseIDParam(c.Ctx, "id")
	if !ok {
		response.ParamError(c.Ctx, "无效的ID参数")
		return
	}

	broadcastService := c.Container.GetService("broadcast").(services.InterfaceBroadcastService)
	broadcast, err := broadcastService.GetBroadcastByID(id, currentScope(c.Ctx))
	if err != nil {
		response.ServerError(c.Ctx, err)
		return
	}
	if broadcast == nil {
		response.NotFound(c.Ctx, code.ErrBroadcastNotFound)
		return
	}
	response.Success(c.Ctx, broadcast)
}

// CreateBroadcast 创建群发任务
func (c *BroadcastController) CreateBroadcast() {
	var req CreateBroadcastRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "缺少必填字段: "+err.Error())
		return
	}

	scope := currentScope(c.Ctx)
	targetType := req.TargetAudienceType
	if targetType == "" {
		targetType = "all"
	}

	broadcastService := c.Container.GetService("broadcast").(services.InterfaceBroadcastService)
	broadcast, err := broadcastService.CreateBroadcast(&models.Broadcast{
		Title:              req.Title,
		Message:            req.Message,
		TargetAudienceType: targetType,
		ScheduledAt:        req.ScheduledAt,
		CreatedBy:          scope.AdminID,
	})
	if err != nil {
		response.ServerError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, broadcast)
}

// SendBroadcast 触发群发投递
// 任务标记为发送中并投递到网关，实际送达由回执异步回填
func (c *BroadcastController) SendBroadcast() {
	id, ok := parseIDParam(c.Ctx, "id")
	if !ok {
		response.ParamError(c.Ctx, "无效的ID参数")
		return
	}

	broadcastService := c.Container.GetService("broadcast").(services.InterfaceBroadcastService)
	broadcast, err := broadcastService.Dispatch(id, currentScope(c.Ctx))
	if err != nil {
		response.ServerError(c.Ctx, err)
		return
	}
	if broadcast == nil {
		response.NotFound(c.Ctx, code.ErrBroadcastNotFound)
		return
	}

	gateway := c.Container.GetService("gateway").(services.InterfaceGatewayService)
	if err := gateway.PublishBroadcast(broadcast); err != nil {
		logger.Warning("群发任务投递网关失败 id=%d: %v", broadcast.ID, err)
	}

	response.Success(c.Ctx, broadcast)
}

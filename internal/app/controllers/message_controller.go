package controllers

import (
	"walink-crm-service/internal/domain/services"
	"walink-crm-service/internal/domain/services/container"
	"walink-crm-service/internal/error/code"
	"walink-crm-service/internal/error/response"
	"walink-crm-service/pkg/logger"

	"github.com/gin-gonic/gin"
)

// InterfaceMessageController 定义消息控制器接口
type InterfaceMessageController interface {
	GetMessages()
	SendMessage()
}

// MessageController 消息控制器
type MessageController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewMessageController 创建一个新的消息控制器
func NewMessageController(ctx *gin.Context, container *container.ServiceContainer) *MessageController {
	return &MessageController{
		Ctx:       ctx,
		Container: container,
	}
}

// SendMessageRequest 发送消息请求
type SendMessageRequest struct {
	Text string `json:"message_text" binding:"required"`
}

// HandleMessageFunc 返回一个处理消息请求的Gin处理函数
func HandleMessageFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewMessageController(ctx, container)

		switch method {
		case "getMessages":
			controller.GetMessages()
		case "sendMessage":
			controller.SendMessage()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "无效的方法")
		}
	}
}

// GetMessages 获取联系人会话消息
// @Summary      获取联系人会话消息
// @Tags         Message
// @Produce      json
// @Param        id path int true "联系人ID"
// @Param        limit query int false "每页条数"
// @Param        offset query int false "偏移量"
// @Success      200  {object}  response.PagedResponse
// @Router       /users/{id}/messages [get]
// @Security     BearerAuth
func (c *MessageController) GetMessages() {
	contactID, ok := parseIDParam(c.Ctx, "id")
	if !ok {
		response.ParamError(c.Ctx, "无效的ID参数")
		return
	}
	page := pageFromQuery(c.Ctx)

	messageService := c.Container.GetService("message").(services.InterfaceMessageService)
	messages, meta, err := messageService.ListByContact(contactID, currentScope(c.Ctx), page)
	if err != nil {
		response.ServerError(c.Ctx, err)
		return
	}
	response.SuccessPage(c.Ctx, messages, meta)
}

// SendMessage 向联系人发送外发消息
// 消息先落库（queued），再投递到网关；投递失败不影响落库结果
func (c *MessageController) SendMessage() {
	contactID, ok := parseIDParam(c.Ctx, "id")
	if !ok {
		response.ParamError(c.Ctx, "无效的ID参数")
		return
	}

	var req SendMessageRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "缺少必填字段: "+err.Error())
		return
	}

	scope := currentScope(c.Ctx)

	contactService := c.Container.GetService("contact").(services.InterfaceContactService)
	contact, err := contactService.GetContactByID(contactID, scope)
	if err != nil {
		response.ServerError(c.Ctx, err)
		return
	}
	if contact == nil {
		response.NotFound(c.Ctx, code.ErrContactNotFound)
		return
	}

	messageService := c.Container.GetService("message").(services.InterfaceMessageService)
	message, err := messageService.AppendOutgoing(contactID, scope.AdminID, req.Text, scope)
	if err != nil {
		response.ServerError(c.Ctx, err)
		return
	}
	if message == nil {
		response.NotFound(c.Ctx, code.ErrContactNotFound)
		return
	}

	gateway := c.Container.GetService("gateway").(services.InterfaceGatewayService)
	if err := gateway.PublishMessage(message, contact.Phone); err != nil {
		logger.Warning("外发消息投递网关失败 external_id=%s: %v", message.ExternalID, err)
	}

	response.Success(c.Ctx, message)
}

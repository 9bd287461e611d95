package controllers

import (
	"walink-crm-service/internal/domain/models"
	"walink-crm-service/internal/domain/services"
	"walink-crm-service/internal/domain/services/container"
	"walink-crm-service/internal/error/code"
	"walink-crm-service/internal/error/response"

	"github.com/gin-gonic/gin"
)

// TemplateController 消息模板控制器
type TemplateController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewTemplateController 创建一个新的模板控制器
func NewTemplateController(ctx *gin.Context, container *container.ServiceContainer) *TemplateController {
	return &TemplateController{
		Ctx:       ctx,
		Container: container,
	}
}

// CreateTemplateRequest 创建模板请求
type CreateTemplateRequest struct {
	Name      string   `json:"name" binding:"required"`
	Content   string   `json:"content" binding:"required"`
	Category  string   `json:"category"`
	Variables []string `json:"variables"`
}

// HandleTemplateFunc 返回一个处理模板请求的Gin处理函数
func HandleTemplateFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewTemplateController(ctx, container)

		switch method {
		case "getTemplates":
			controller.GetTemplates()
		case "getTemplate":
			controller.GetTemplate()
		case "createTemplate":
			controller.CreateTemplate()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "无效的方法")
		}
	}
}

// GetTemplates 获取模板列表
func (c *TemplateController) GetTemplates() {
	templateService := c.Container.GetService("template").(services.InterfaceTemplateService)
	templates, err := templateService.GetAllTemplates(currentScope(c.Ctx))
	if err != nil {
		response.ServerError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, templates)
}

// GetTemplate 获取模板详情
func (c *TemplateController) GetTemplate() {
	id, ok := parseIDParam(c.Ctx, "id")
	if !ok {
		response.ParamError(c.Ctx, "无效的ID参数")
		return
	}

	templateService := c.Container.GetService("template").(services.InterfaceTemplateService)
	template, err := templateService.GetTemplateByID(id, currentScope(c.Ctx))
	if err != nil {
		response.ServerError(c.Ctx, err)
		return
	}
	if template == nil {
		response.NotFound(c.Ctx, code.ErrTemplateNotFound)
		return
	}
	response.Success(c.Ctx, template)
}

// CreateTemplate 创建模板
func (c *TemplateController) CreateTemplate() {
	var req CreateTemplateRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "缺少必填字段: "+err.Error())
		return
	}

	scope := currentScope(c.Ctx)
	templateService := c.Container.GetService("template").(services.InterfaceTemplateService)
	template, err := templateService.CreateTemplate(&models.MessageTemplate{
		Name:      req.Name,
		Content:   req.Content,
		Category:  req.Category,
		CreatedBy: scope.AdminID,
	}, req.Variables)
	if err != nil {
		response.ServerError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, template)
}

package controllers

import (
	"walink-crm-service/internal/domain/models"
	"walink-crm-service/internal/domain/services"
	"walink-crm-service/internal/domain/services/container"
	"walink-crm-service/internal/error/code"
	"walink-crm-service/internal/error/response"

	"github.com/gin-gonic/gin"
)

// RequirementController 客户需求控制器
type RequirementController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewRequirementController 创建一个新的需求控制器
func NewRequirementController(ctx *gin.Context, container *container.ServiceContainer) *RequirementController {
	return &RequirementController{
		Ctx:       ctx,
		Container: container,
	}
}

// CreateRequirementRequest 创建需求请求
type CreateRequirementRequest struct {
	RequirementText string `json:"requirement_text" binding:"required"`
	Category        string `json:"category"`
}

// UpdateRequirementRequest 更新需求请求
type UpdateRequirementRequest struct {
	RequirementText string `json:"requirement_text"`
	Category        string `json:"category"`
	Status          string `json:"status"`
}

// HandleRequirementFunc 返回一个处理需求请求的Gin处理函数
func HandleRequirementFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewRequirementController(ctx, container)

		switch method {
		case "getRequirements":
			controller.GetRequirements()
		case "createRequirement":
			controller.CreateRequirement()
		case "updateRequirement":
			controller.UpdateRequirement()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "无效的方法")
		}
	}
}

// GetRequirements 获取联系人的需求列表
func (c *RequirementController) GetRequirements() {
	contactID, ok := parseIDParam(c.Ctx, "id")
	if !ok {
		response.ParamError(c.Ctx, "无效的ID参数")
		return
	}

	requirementService := c.Container.GetService("requirement").(services.InterfaceRequirementService)
	requirements, err := requirementService.ListByContact(contactID, currentScope(c.Ctx))
	if err != nil {
		response.ServerError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, requirements)
}

// CreateRequirement 为联系人创建需求
func (c *RequirementController) CreateRequirement() {
	contactID, ok := parseIDParam(c.Ctx, "id")
	if !ok {
		response.ParamError(c.Ctx, "无效的ID参数")
		return
	}

	var req CreateRequirementRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "缺少必填字段: "+err.Error())
		return
	}

	requirementService := c.Container.GetService("requirement").(services.InterfaceRequirementService)
	created, err := requirementService.CreateRequirement(&models.Requirement{
		ContactID:       contactID,
		RequirementText: req.RequirementText,
		Category:        req.Category,
	}, currentScope(c.Ctx))
	if err != nil {
		response.ServerError(c.Ctx, err)
		return
	}
	if created == nil {
		response.NotFound(c.Ctx, code.ErrContactNotFound)
		return
	}
	response.Success(c.Ctx, created)
}

// UpdateRequirement 更新需求，状态为自由字符串
func (c *RequirementController) UpdateRequirement() {
	id, ok := parseIDParam(c.Ctx, "id")
	if !ok {
		response.ParamError(c.Ctx, "无效的ID参数")
		return
	}

	var req UpdateRequirementRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "请求参数错误: "+err.Error())
		return
	}

	updates := map[string]interface{}{}
	if req.RequirementText != "" {
		updates["requirement_text"] = req.RequirementText
	}
	if req.Category != "" {
		updates["category"] = req.Category
	}
	if req.Status != "" {
		updates["status"] = req.Status
	}

	requirementService := c.Container.GetService("requirement").(services.InterfaceRequirementService)
	requirement, err := requirementService.UpdateRequirement(id, updates, currentScope(c.Ctx))
	if err != nil {
		response.ServerError(c.Ctx, err)
		return
	}
	if requirement == nil {
		response.NotFound(c.Ctx, code.ErrRequirementNotFound)
		return
	}
	response.Success(c.Ctx, requirement)
}

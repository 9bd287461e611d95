package controllers

import (
	"errors"
	"walink-crm-service/internal/domain/services"
	"walink-crm-service/internal/domain/services/container"
	"walink-crm-service/internal/error/code"
	"walink-crm-service/internal/error/response"

	"github.com/gin-gonic/gin"
)

// TeamController 团队管理控制器
type TeamController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewTeamController 创建一个新的团队控制器
func NewTeamController(ctx *gin.Context, container *container.ServiceContainer) *TeamController {
	return &TeamController{
		Ctx:       ctx,
		Container: container,
	}
}

// CreateMemberRequest 创建团队成员请求
type CreateMemberRequest struct {
	Name     string  `json:"name" binding:"required"`
	Phone    string  `json:"phone" binding:"required"`
	Email    *string `json:"email"`
	Password string  `json:"password" binding:"required,min=6"`
	Tier     string  `json:"admin_tier"`
}

// UpdateMemberRequest 更新团队成员请求
type UpdateMemberRequest struct {
	Name     *string `json:"name"`
	Phone    *string `json:"phone"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Tier     *string `json:"admin_tier"`
	Status   *string `json:"status"`
}

// HandleTeamFunc 返回一个处理团队管理请求的Gin处理函数
func HandleTeamFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewTeamController(ctx, container)

		switch method {
		case "getTeam":
			controller.GetTeam()
		case "createMember":
			controller.CreateMember()
		case "updateMember":
			controller.UpdateMember()
		case "deleteMember":
			controller.DeleteMember()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "无效的方法")
		}
	}
}

// GetTeam 获取团队成员及工作量
// 受限账号只能看到自己，超级管理员可见全员
func (c *TeamController) GetTeam() {
	statsService := c.Container.GetService("stats").(services.InterfaceStatsService)
	members, err := statsService.GetTeamMembers(currentScope(c.Ctx))
	if err != nil {
		response.ServerError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, members)
}

// CreateMember 创建团队成员
func (c *TeamController) CreateMember() {
	var req CreateMemberRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "缺少必填字段: "+err.Error())
		return
	}

	adminService := c.Container.GetService("admin").(services.InterfaceAdminService)
	account, err := adminService.Register(&services.RegisterRequest{
		Name:     req.Name,
		Phone:    req.Phone,
		Email:    req.Email,
		Password: req.Password,
		Tier:     req.Tier,
	})
	if err != nil {
		if errors.Is(err, services.ErrDuplicateAccount) {
			response.Conflict(c.Ctx, code.ErrAccountExists)
			return
		}
		response.ServerError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, account)
}

// UpdateMember 更新团队成员
func (c *TeamController) UpdateMember() {
	id, ok := parseIDParam(c.Ctx, "id")
	if !ok {
		response.ParamError(c.Ctx, "无效的ID参数")
		return
	}

	var req UpdateMemberRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "无效的请求参数: "+err.Error())
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.Password != nil {
		updates["password"] = *req.Password
	}
	if req.Tier != nil {
		updates["tier"] = *req.Tier
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}

	adminService := c.Container.GetService("admin").(services.InterfaceAdminService)
	account, err := adminService.UpdateAccount(id, updates)
	if err != nil {
		if errors.Is(err, services.ErrDuplicateAccount) {
			response.Conflict(c.Ctx, code.ErrAccountExists)
			return
		}
		response.ServerError(c.Ctx, err)
		return
	}
	if account == nil {
		response.NotFound(c.Ctx, code.ErrAccountNotFound)
		return
	}
	response.Success(c.Ctx, account)
}

// DeleteMember 删除团队成员
// 最后一名超级管理员不可删除
func (c *TeamController) DeleteMember() {
	id, ok := parseIDParam(c.Ctx, "id")
	if !ok {
		response.ParamError(c.Ctx, "无效的ID参数")
		return
	}

	adminService := c.Container.GetService("admin").(services.InterfaceAdminService)
	if err := adminService.DeleteAccount(id); err != nil {
		if errors.Is(err, services.ErrLastSuperAdmin) {
			response.FailWithMessage(c.Ctx, code.ErrForbidden, "不能删除最后一名超级管理员")
			return
		}
		response.ServerError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, gin.H{"deleted": id})
}

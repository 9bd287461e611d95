package controllers

import (
	"walink-crm-service/internal/domain/models"
	"walink-crm-service/internal/domain/services"
	"walink-crm-service/internal/domain/services/container"
	"walink-crm-service/internal/error/code"
	"walink-crm-service/internal/error/response"

	"github.com/gin-gonic/gin"
)

// InterfaceContactController 定义联系人控制器接口
type InterfaceContactController interface {
	GetContacts()
	GetContact()
	CreateContact()
	UpdateContact()
	AssignContact()
}

// ContactController 联系人控制器
type ContactController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewContactController 创建一个新的联系人控制器
func NewContactController(ctx *gin.Context, container *container.ServiceContainer) *ContactController {
	return &ContactController{
		Ctx:       ctx,
		Container: container,
	}
}

// CreateContactRequest 创建联系人请求
type CreateContactRequest struct {
	Phone string `json:"phone" binding:"required" example:"13900139000"`
	Name  string `json:"name" example:"李四"`
	Email string `json:"email" binding:"omitempty,email" example:"contact@example.com"`
}

// UpdateContactRequest 更新联系人请求
type UpdateContactRequest struct {
	Name  string `json:"name"`
	Email string `json:"email" binding:"omitempty,email"`
}

// AssignContactRequest 分配联系人请求
type AssignContactRequest struct {
	AdminID *uint `json:"admin_id"` // null 表示取消分配
}

// HandleContactFunc 返回一个处理联系人请求的Gin处理函数
func HandleContactFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewContactController(ctx, container)

		switch method {
		case "getContacts":
			controller.GetContacts()
		case "getContact":
			controller.GetContact()
		case "createContact":
			controller.CreateContact()
		case "updateContact":
			controller.UpdateContact()
		case "assignContact":
			controller.AssignContact()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "无效的方法")
		}
	}
}

// GetContacts 获取联系人列表
// @Summary      获取联系人列表
// @Description  分页获取当前操作者范围内的联系人
// @Tags         Contact
// @Produce      json
// @Param        limit query int false "每页条数, 默认20"
// @Param        offset query int false "偏移量, 默认0"
// @Param        search query string false "搜索关键词(姓名、手机号)"
// @Success      200  {object}  response.PagedResponse
// @Failure      500  {object}  response.ErrorResponse
// @Router       /users [get]
// @Security     BearerAuth
func (c *ContactController) GetContacts() {
	page := pageFromQuery(c.Ctx)
	search := c.Ctx.Query("search")
	scope := currentScope(c.Ctx)

	contactService := c.Container.GetService("contact").(services.InterfaceContactService)
	contacts, meta, err := contactService.GetAllContacts(scope, page, search)
	if err != nil {
		response.ServerError(c.Ctx, err)
		return
	}

	response.SuccessPage(c.Ctx, contacts, meta)
}

// GetContact 获取联系人详情
// 范围外与不存在统一返回404
func (c *ContactController) GetContact() {
	id, ok := parseIDParam(c.Ctx, "id")
	if !ok {
		response.ParamError(c.Ctx, "无效的ID参数")
		return
	}

	contactService := c.Container.GetService("contact").(services.InterfaceContactService)
	contact, err := contactService.GetContactByID(id, currentScope(c.Ctx))
	if err != nil {
		response.ServerError(c.Ctx, err)
		return
	}
	if contact == nil {
		response.NotFound(c.Ctx, code.ErrContactNotFound)
		return
	}
	response.Success(c.Ctx, contact)
}

// CreateContact 手动创建联系人
func (c *ContactController) CreateContact() {
	var req CreateContactRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "缺少必填字段: "+err.Error())
		return
	}

	scope := currentScope(c.Ctx)
	contact := &models.Contact{
		Phone: req.Phone,
		Name:  req.Name,
		Email: req.Email,
	}
	// 受限操作者创建的联系人归属自己
	if scope.Restricted() {
		adminID := scope.AdminID
		contact.AssignedAdminID = &adminID
	}

	contactService := c.Container.GetService("contact").(services.InterfaceContactService)
	created, err := contactService.CreateContact(contact)
	if err != nil {
		response.ServerError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, created)
}

// UpdateContact 更新联系人
func (c *ContactController) UpdateContact() {
	id, ok := parseIDParam(c.Ctx, "id")
	if !ok {
		response.ParamError(c.Ctx, "无效的ID参数")
		return
	}

	var req UpdateContactRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "请求参数错误: "+err.Error())
		return
	}

	updates := map[string]interface{}{}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Email != "" {
		updates["email"] = req.Email
	}

	contactService := c.Container.GetService("contact").(services.InterfaceContactService)
	contact, err := contactService.UpdateContact(id, updates, currentScope(c.Ctx))
	if err != nil {
		response.ServerError(c.Ctx, err)
		return
	}
	if contact == nil {
		response.NotFound(c.Ctx, code.ErrContactNotFound)
		return
	}
	response.Success(c.Ctx, contact)
}

// AssignContact 调整联系人归属
func (c *ContactController) AssignContact() {
	id, ok := parseIDParam(c.Ctx, "id")
	if !ok {
		response.ParamError(c.Ctx, "无效的ID参数")
		return
	}

	var req AssignContactRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "请求参数错误: "+err.Error())
		return
	}

	contactService := c.Container.GetService("contact").(services.InterfaceContactService)
	contact, err := contactService.AssignContact(id, req.AdminID, currentScope(c.Ctx))
	if err != nil {
		response.ServerError(c.Ctx, err)
		return
	}
	if contact == nil {
		response.NotFound(c.Ctx, code.ErrContactNotFound)
		return
	}
	response.Success(c.Ctx, contact)
}

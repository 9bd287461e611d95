package controllers

import (
	"time"
	"walink-crm-service/internal/domain/models"
	"walink-crm-service/internal/domain/services"
	"walink-crm-service/internal/domain/services/container"
	"walink-crm-service/internal/error/code"
	"walink-crm-service/internal/error/response"

	"github.com/gin-gonic/gin"
)

// AppointmentController 跟进事项（预约）控制器
// HTTP层暴露为 /appointments，底层为 Need 实体
type AppointmentController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewAppointmentController 创建一个新的预约控制器
func NewAppointmentController(ctx *gin.Context, container *container.ServiceContainer) *AppointmentController {
	return &AppointmentController{
		Ctx:       ctx,
		Container: container,
	}
}

// CreateAppointmentRequest 创建预约请求
type CreateAppointmentRequest struct {
	ContactID   uint       `json:"contact_id" binding:"required"`
	Title       string     `json:"title" binding:"required"`
	AssignedTo  *uint      `json:"assigned_to"`
	ScheduledAt *time.Time `json:"scheduled_at"`
}

// UpdateAppointmentRequest 更新预约请求
type UpdateAppointmentRequest struct {
	Title       string     `json:"title"`
	Status      string     `json:"status"`
	AssignedTo  *uint      `json:"assigned_to"`
	ScheduledAt *time.Time `json:"scheduled_at"`
}

// HandleAppointmentFunc 返回一个处理预约请求的Gin处理函数
func HandleAppointmentFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewAppointmentController(ctx, container)

		switch method {
		case "getAppointments":
			controller.GetAppointments()
		case "createAppointment":
			controller.CreateAppointment()
		case "updateAppointment":
			controller.UpdateAppointment()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "无效的方法")
		}
	}
}

// GetAppointments 获取预约列表
// @Summary      获取预约列表
// @Tags         Appointment
// @Produce      json
// @Param        limit query int false "每页条数"
// @Param        offset query int false "偏移量"
// @Param        status query string false "状态过滤"
// @Success      200  {object}  response.PagedResponse
// @Router       /appointments [get]
// @Security     BearerAuth
func (c *AppointmentController) GetAppointments() {
	page := pageFromQuery(c.Ctx)
	status := c.Ctx.Query("status")

	needService := c.Container.GetService("need").(services.InterfaceNeedService)
	needs, meta, err := needService.GetAllNeeds(currentScope(c.Ctx), page, status)
	if err != nil {
		response.ServerError(c.Ctx, err)
		return
	}
	response.SuccessPage(c.Ctx, needs, meta)
}

// CreateAppointment 创建预约
func (c *AppointmentController) CreateAppointment() {
	var req CreateAppointmentRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "缺少必填字段: "+err.Error())
		return
	}

	needService := c.Container.GetService("need").(services.InterfaceNeedService)
	need, err := needService.CreateNeed(&models.Need{
		ContactID:   req.ContactID,
		Title:       req.Title,
		AssignedTo:  req.AssignedTo,
		ScheduledAt: req.ScheduledAt,
	}, currentScope(c.Ctx))
	if err != nil {
		response.ServerError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, need)
}

// UpdateAppointment 更新预约，状态为自由字符串
func (c *AppointmentController) UpdateAppointment() {
	id, ok := parseIDParam(c.Ctx, "id")
	if !ok {
		response.ParamError(c.Ctx, "无效的ID参数")
		return
	}

	var req UpdateAppointmentRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "请求参数错误: "+err.Error())
		return
	}

	updates := map[string]interface{}{}
	if req.Title != "" {
		updates["title"] = req.Title
	}
	if req.Status != "" {
		updates["status"] = req.Status
	}
	if req.AssignedTo != nil {
		updates["assigned_to"] = req.AssignedTo
	}
	if req.ScheduledAt != nil {
		updates["scheduled_at"] = req.ScheduledAt
	}

	needService := c.Container.GetService("need").(services.InterfaceNeedService)
	need, err := needService.UpdateNeed(id, updates, currentScope(c.Ctx))
	if err != nil {
		response.ServerError(c.Ctx, err)
		return
	}
	if need == nil {
		response.NotFound(c.Ctx, code.ErrNeedNotFound)
		return
	}
	response.Success(c.Ctx, need)
}

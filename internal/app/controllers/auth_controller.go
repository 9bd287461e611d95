package controllers

import (
	"errors"
	"walink-crm-service/internal/app/middleware"
	"walink-crm-service/internal/domain/services"
	"walink-crm-service/internal/domain/services/container"
	"walink-crm-service/internal/error/code"
	"walink-crm-service/internal/error/response"
	"walink-crm-service/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
)

// InterfaceAuthController 定义认证控制器接口
type InterfaceAuthController interface {
	Signup()
	Login()
	Logout()
	Me()
}

// AuthController 认证控制器
type AuthController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewAuthController 创建一个新的认证控制器
func NewAuthController(ctx *gin.Context, container *container.ServiceContainer) *AuthController {
	return &AuthController{
		Ctx:       ctx,
		Container: container,
	}
}

// SignupRequest 注册请求
type SignupRequest struct {
	Name     string  `json:"name" binding:"required" example:"张三"`
	Phone    string  `json:"phone" binding:"required" example:"13800138000"`
	Email    *string `json:"email" binding:"omitempty,email" example:"admin@example.com"`
	Password string  `json:"password" binding:"required,min=6" example:"Admin@123"`
	Tier     string  `json:"admin_tier" example:"client_admin"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Phone    string `json:"phone" binding:"required" example:"13800138000"`
	Password string `json:"password" binding:"required" example:"Admin@123"`
}

// HandleAuthFunc 返回一个处理认证请求的Gin处理函数
func HandleAuthFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewAuthController(ctx, container)

		switch method {
		case "signup":
			controller.Signup()
		case "login":
			controller.Login()
		case "logout":
			controller.Logout()
		case "me":
			controller.Me()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "无效的方法")
		}
	}
}

// Signup 注册账号
// @Summary      注册管理员账号
// @Description  系统第一个账号自动成为super_admin，其后默认client_admin
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body SignupRequest true "注册信息"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.ErrorResponse
// @Failure      409  {object}  response.ErrorResponse
// @Router       /auth/signup [post]
func (c *AuthController) Signup() {
	var req SignupRequest
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

	// 注册即登录
	jwtService := c.Container.GetService("jwt").(services.InterfaceJWTService)
	token, err := jwtService.GenerateToken(account.ID, account.Tier)
	if err != nil {
		response.ServerError(c.Ctx, err)
		return
	}
	cfg := c.Container.GetService("config").(*config.Config)
	middleware.SetSessionCookie(c.Ctx, cfg, token)

	response.Success(c.Ctx, account)
}

// Login 登录
// @Summary      登录
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "登录凭证"
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.ErrorResponse
// @Router       /auth/login [post]
func (c *AuthController) Login() {
	var req LoginRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "缺少必填字段: "+err.Error())
		return
	}

	jwtService := c.Container.GetService("jwt").(services.InterfaceJWTService)
	result, err := jwtService.Login(req.Phone, req.Password)
	if err != nil {
		response.Fail(c.Ctx, code.ErrPasswordIncorrect)
		return
	}

	cfg := c.Container.GetService("config").(*config.Config)
	middleware.SetSessionCookie(c.Ctx, cfg, result.Token)

	response.Success(c.Ctx, gin.H{
		"token":   result.Token,
		"account": result.Account,
	})
}

// Logout 登出，清除会话Cookie
func (c *AuthController) Logout() {
	cfg := c.Container.GetService("config").(*config.Config)
	middleware.ClearSessionCookie(c.Ctx, cfg)
	response.Success(c.Ctx, nil)
}

// Me 当前登录账号
func (c *AuthController) Me() {
	scope := currentScope(c.Ctx)

	adminService := c.Container.GetService("admin").(services.InterfaceAdminService)
	account, err := adminService.GetAccountByID(scope.AdminID)
	if err != nil {
		response.ServerError(c.Ctx, err)
		return
	}
	if account == nil {
		response.Unauthorized(c.Ctx)
		return
	}
	response.Success(c.Ctx, account)
}

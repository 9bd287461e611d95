package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"walink-crm-service/internal/domain/models"
	"walink-crm-service/internal/error/code"
)

// Response 成功响应格式
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
}

// PagedResponse 分页列表响应格式
type PagedResponse struct {
	Data interface{}     `json:"data"`
	Meta models.PageMeta `json:"meta"`
}

// ErrorResponse 失败响应格式
type ErrorResponse struct {
	Success bool   `json:"success"`
	Code    int    `json:"code"`
	Error   string `json:"error"`
}

// Success 成功响应
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    data,
	})
}

// SuccessPage 分页成功响应
func SuccessPage(c *gin.Context, data interface{}, meta models.PageMeta) {
	c.JSON(http.StatusOK, PagedResponse{
		Data: data,
		Meta: meta,
	})
}

// Fail 失败响应，HTTP状态由错误码映射决定
func Fail(c *gin.Context, errorCode int) {
	FailWithMessage(c, errorCode, code.GetMessage(errorCode))
}

// FailWithMessage 失败响应（自定义消息）
func FailWithMessage(c *gin.Context, errorCode int, message string) {
	c.JSON(code.GetStatus(errorCode), ErrorResponse{
		Success: false,
		Code:    errorCode,
		Error:   message,
	})
}

// ParamError 参数错误响应
func ParamError(c *gin.Context, message string) {
	FailWithMessage(c, code.ErrValidation, message)
}

// ServerError 服务器错误响应，错误消息原样附带
func ServerError(c *gin.Context, err error) {
	msg := code.GetMessage(code.ErrUnknown)
	if err != nil {
		msg = err.Error()
	}
	FailWithMessage(c, code.ErrUnknown, msg)
}

// NotFound 资源不存在响应
func NotFound(c *gin.Context, errorCode int) {
	Fail(c, errorCode)
}

// Unauthorized 未授权响应，所有认证失败统一为401
func Unauthorized(c *gin.Context) {
	Fail(c, code.ErrTokenInvalid)
}

// Forbidden 权限不足响应
func Forbidden(c *gin.Context) {
	Fail(c, code.ErrForbidden)
}

// Conflict 唯一约束冲突响应
func Conflict(c *gin.Context, errorCode int) {
	Fail(c, errorCode)
}

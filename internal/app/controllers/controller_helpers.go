package controllers

import (
	"strconv"
	"walink-crm-service/internal/app/middleware"
	"walink-crm-service/internal/domain/models"
	"walink-crm-service/internal/domain/services"

	"github.com/gin-gonic/gin"
)

// parseIDParam 解析URL路径中的ID参数
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// pageFromQuery 解析limit/offset分页参数
func pageFromQuery(c *gin.Context) models.PageQuery {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	page := models.PageQuery{Limit: limit, Offset: offset}
	page.Normalize()
	return page
}

// currentScope 取当前操作者范围
func currentScope(c *gin.Context) services.Scope {
	return middleware.CurrentScope(c)
}

package services

import (
	"walink-crm-service/internal/domain/models"

	"gorm.io/gorm"
)

// Scope 表示当前操作者的租户范围
// 零值Scope为内部调用者，视为全局视图
//
// 数据层的租户隔离完全由各查询自行附加谓词实现，
// 所有受限读写都必须经由 assigned_admin_id / admin_id / assigned_to / created_by
// 归属链回溯到操作者
type Scope struct {
	AdminID uint
	Tier    string
}

// GlobalScope 全局视图，供系统内部调用使用
var GlobalScope = Scope{}

// Restricted 是否需要附加租户过滤
// super_admin 与内部调用者不受限
func (s Scope) Restricted() bool {
	return s.AdminID != 0 && s.Tier != models.TierSuperAdmin
}

// scopeContacts 对联系人查询附加归属过滤
func scopeContacts(query *gorm.DB, scope Scope) *gorm.DB {
	if !scope.Restricted() {
		return query
	}
	return query.Where("contacts.assigned_admin_id = ?", scope.AdminID)
}

// scopeThroughContacts 经联系人关系过滤子表（messages/requirements等）
func scopeThroughContacts(query *gorm.DB, table string, scope Scope) *gorm.DB {
	if !scope.Restricted() {
		return query
	}
	return query.
		Joins("JOIN contacts ON contacts.id = "+table+".contact_id").
		Where("contacts.assigned_admin_id = ?", scope.AdminID)
}

package models

// Contact 客户联系人，通过 assigned_admin_id 归属某个管理员
// 未分配的联系人只有超级管理员可见
type Contact struct {
	BaseModel
	Phone           string        `gorm:"type:varchar(20);index;not null" json:"phone"`
	Name            string        `gorm:"type:varchar(100)" json:"name"`
	Email           string        `gorm:"type:varchar(100)" json:"email"`
	AssignedAdminID *uint         `gorm:"index" json:"assigned_admin_id,omitempty"`
	AssignedAdmin   *AdminAccount `gorm:"foreignKey:AssignedAdminID" json:"-"`
}

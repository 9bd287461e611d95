package models

import "time"

// Need 跟进事项/预约，指派给某个管理员
// Status 为自由字符串，本层不校验状态迁移
type Need struct {
	BaseModel
	ContactID   uint       `gorm:"index;not null" json:"contact_id"`
	AssignedTo  *uint      `gorm:"index" json:"assigned_to,omitempty"`
	Title       string     `gorm:"type:varchar(200)" json:"title"`
	Status      string     `gorm:"type:varchar(30);default:'open'" json:"status"`
	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
}

package models

// Requirement 客户需求（订单类记录）
// Status 为自由字符串，本层不校验状态迁移
type Requirement struct {
	BaseModel
	ContactID       uint   `gorm:"index;not null" json:"contact_id"`
	RequirementText string `gorm:"type:text;not null" json:"requirement_text"`
	Category        string `gorm:"type:varchar(50)" json:"category"`
	Status          string `gorm:"type:varchar(30);default:'in_progress'" json:"status"`
}

package models

// MessageTemplate 消息模板
// Variables 以JSON数组形式存储占位符名，读取时由服务层解析
type MessageTemplate struct {
	BaseModel
	Name      string `gorm:"type:varchar(100);not null" json:"name"`
	Category  string `gorm:"type:varchar(50)" json:"category"`
	Content   string `gorm:"type:text;not null" json:"content"`
	Variables string `gorm:"type:text" json:"-"`
	CreatedBy uint   `gorm:"index;not null" json:"created_by"`
}

// TemplateView 模板的对外表示，Variables 已解析为列表
type TemplateView struct {
	MessageTemplate
	Variables []string `json:"variables"`
}

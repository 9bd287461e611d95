package models

// 管理员层级
const (
	TierClientAdmin = "client_admin"
	TierSuperAdmin  = "super_admin"
)

// AdminAccount represents a CRM operator account
type AdminAccount struct {
	BaseModel
	Name             string  `gorm:"type:varchar(100);not null" json:"name"`
	Phone            string  `gorm:"type:varchar(20);unique;not null" json:"phone"`
	Email            *string `gorm:"type:varchar(100);unique" json:"email,omitempty"`
	Password         string  `gorm:"type:varchar(100);not null" json:"-"` // Password not exposed in JSON
	Tier             string  `gorm:"type:varchar(20);default:'client_admin'" json:"tier"`
	Status           string  `gorm:"type:varchar(20);default:'active'" json:"status"` // Status: active, inactive, locked
	WhatsAppLinked   bool    `gorm:"default:false" json:"whatsapp_linked"`
	WhatsAppDeviceID *string `gorm:"type:varchar(100)" json:"whatsapp_device_id,omitempty"`
}

// IsSuperAdmin 是否为超级管理员
func (a *AdminAccount) IsSuperAdmin() bool {
	return a.Tier == TierSuperAdmin
}

package models

// 消息方向
const (
	MessageTypeIncoming = "incoming"
	MessageTypeOutgoing = "outgoing"
)

// 消息状态
const (
	MessageStatusReceived  = "received"
	MessageStatusQueued    = "queued"
	MessageStatusSent      = "sent"
	MessageStatusDelivered = "delivered"
	MessageStatusFailed    = "failed"
)

// Message 联系人会话消息，只追加，从不更新或删除
type Message struct {
	BaseModel
	ContactID   uint   `gorm:"index;not null" json:"contact_id"`
	AdminID     *uint  `gorm:"index" json:"admin_id,omitempty"` // 外发消息的作者，入站消息为空
	MessageText string `gorm:"type:text;not null" json:"message_text"`
	MessageType string `gorm:"type:varchar(10);not null" json:"message_type"`
	Status      string `gorm:"type:varchar(20);default:'received'" json:"status"`
	ExternalID  string `gorm:"type:varchar(64);index" json:"external_id,omitempty"` // 网关侧关联ID
}

package models

import "time"

// 群发状态
const (
	BroadcastStatusDraft     = "draft"
	BroadcastStatusScheduled = "scheduled"
	BroadcastStatusSending   = "sending"
	BroadcastStatusCompleted = "completed"
)

// Broadcast 群发任务
type Broadcast struct {
	BaseModel
	Title              string     `gorm:"type:varchar(200);not null" json:"title"`
	Message            string     `gorm:"type:text;not null" json:"message"`
	TargetAudienceType string     `gorm:"type:varchar(30);default:'all'" json:"target_audience_type"`
	ScheduledAt        *time.Time `json:"scheduled_at,omitempty"`
	Status             string     `gorm:"type:varchar(20);default:'draft'" json:"status"`
	CreatedBy          uint       `gorm:"index;not null" json:"created_by"`
	SentCount          int        `gorm:"default:0" json:"sent_count"`
	DeliveredCount     int        `gorm:"default:0" json:"delivered_count"`
}

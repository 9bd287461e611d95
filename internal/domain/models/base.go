package models

import "time"

// BaseModel 所有实体的公共字段
type BaseModel struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PageQuery 分页查询参数（limit/offset 风格）
type PageQuery struct {
	Limit  int `form:"limit" json:"limit"`
	Offset int `form:"offset" json:"offset"`
}

// PageMeta 分页结果元数据
type PageMeta struct {
	HasMore    bool `json:"hasMore"`
	NextOffset int  `json:"nextOffset"`
}

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

// Normalize 约束分页参数到合法范围
func (q *PageQuery) Normalize() {
	if q.Limit < 1 || q.Limit > MaxPageLimit {
		q.Limit = DefaultPageLimit
	}
	if q.Offset < 0 {
		q.Offset = 0
	}
}

// NewPageMeta 根据本页行数计算分页元数据
func NewPageMeta(q PageQuery, rows int) PageMeta {
	if rows > q.Limit {
		return PageMeta{HasMore: true, NextOffset: q.Offset + q.Limit}
	}
	return PageMeta{HasMore: false, NextOffset: q.Offset + rows}
}

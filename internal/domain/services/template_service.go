package services

import (
	"encoding/json"
	"walink-crm-service/internal/domain/models"
	"walink-crm-service/internal/infrastructure/config"

	"gorm.io/gorm"
)

// InterfaceTemplateService 消息模板服务接口
type InterfaceTemplateService interface {
	GetAllTemplates(scope Scope) ([]models.TemplateView, error)
	GetTemplateByID(id uint, scope Scope) (*models.TemplateView, error)
	CreateTemplate(t *models.MessageTemplate, variables []string) (*models.TemplateView, error)
}

// TemplateService 提供消息模板相关的服务
type TemplateService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewTemplateService 创建一个新的模板服务
func NewTemplateService(db *gorm.DB, cfg *config.Config) InterfaceTemplateService {
	return &TemplateService{
		DB:     db,
		Config: cfg,
	}
}

// parseVariables 解析序列化的占位符列表
// 空列或解析失败一律退化为空列表，解析错误不外传
func parseVariables(raw string) []string {
	if raw == "" {
		return []string{}
	}
	var vars []string
	if err := json.Unmarshal([]byte(raw), &vars); err != nil || vars == nil {
		return []string{}
	}
	return vars
}

func toView(t models.MessageTemplate) models.TemplateView {
	return models.TemplateView{
		MessageTemplate: t,
		Variables:       parseVariables(t.Variables),
	}
}

// scopeTemplates 模板按 created_by 归属过滤
func scopeTemplates(query *gorm.DB, scope Scope) *gorm.DB {
	if !scope.Restricted() {
		return query
	}
	return query.Where("message_templates.created_by = ?", scope.AdminID)
}

// GetAllTemplates 获取模板列表，按创建时间倒序
func (s *TemplateService) GetAllTemplates(scope Scope) ([]models.TemplateView, error) {
	var templates []models.MessageTemplate
	query := scopeTemplates(s.DB.Model(&models.MessageTemplate{}), scope)
	if err := query.Order("message_templates.created_at DESC, message_templates.id DESC").
		Find(&templates).Error; err != nil {
		return nil, err
	}

	views := make([]models.TemplateView, 0, len(templates))
	for _, t := range templates {
		views = append(views, toView(t))
	}
	return views, nil
}

// GetTemplateByID 根据ID获取模板，越权与不存在均返回 (nil, nil)
func (s *TemplateService) GetTemplateByID(id uint, scope Scope) (*models.TemplateView, error) {
	var template models.MessageTemplate
	query := scopeTemplates(s.DB.Where("message_templates.id = ?", id), scope)
	if err := query.First(&template).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	view := toView(template)
	return &view, nil
}

// CreateTemplate 创建模板，占位符列表序列化存储，写后回读
func (s *TemplateService) CreateTemplate(t *models.MessageTemplate, variables []string) (*models.TemplateView, error) {
	if variables == nil {
		variables = []string{}
	}
	raw, err := json.Marshal(variables)
	if err != nil {
		return nil, err
	}
	t.Variables = string(raw)

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(t).Error; err != nil {
			return err
		}
		return tx.First(t, t.ID).Error
	})
	if err != nil {
		return nil, err
	}
	view := toView(*t)
	return &view, nil
}

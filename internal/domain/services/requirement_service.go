package services

import (
	"walink-crm-service/internal/domain/models"
	"walink-crm-service/internal/infrastructure/config"

	"gorm.io/gorm"
)

// InterfaceRequirementService 客户需求服务接口
type InterfaceRequirementService interface {
	ListByContact(contactID uint, scope Scope) ([]models.Requirement, error)
	GetRequirementByID(id uint, scope Scope) (*models.Requirement, error)
	CreateRequirement(req *models.Requirement, scope Scope) (*models.Requirement, error)
	UpdateRequirement(id uint, updates map[string]interface{}, scope Scope) (*models.Requirement, error)
}

// RequirementService 提供客户需求相关的服务
type RequirementService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewRequirementService 创建一个新的需求服务
func NewRequirementService(db *gorm.DB, cfg *config.Config) InterfaceRequirementService {
	return &RequirementService{
		DB:     db,
		Config: cfg,
	}
}

// ListByContact 按联系人取需求，经联系人关系过滤
func (s *RequirementService) ListByContact(contactID uint, scope Scope) ([]models.Requirement, error) {
	var requirements []models.Requirement
	query := scopeThroughContacts(
		s.DB.Model(&models.Requirement{}).Where("requirements.contact_id = ?", contactID),
		"requirements", scope)
	if err := query.Order("requirements.created_at DESC").Find(&requirements).Error; err != nil {
		return nil, err
	}
	return requirements, nil
}

// GetRequirementByID 根据ID获取需求，越权与不存在均返回 (nil, nil)
func (s *RequirementService) GetRequirementByID(id uint, scope Scope) (*models.Requirement, error) {
	var requirement models.Requirement
	query := scopeThroughContacts(
		s.DB.Model(&models.Requirement{}).Where("requirements.id = ?", id),
		"requirements", scope)
	if err := query.First(&requirement).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &requirement, nil
}

// CreateRequirement 创建需求，联系人必须在操作者范围内，写后回读
func (s *RequirementService) CreateRequirement(req *models.Requirement, scope Scope) (*models.Requirement, error) {
	var created *models.Requirement

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var count int64
		query := scopeContacts(tx.Model(&models.Contact{}).Where("contacts.id = ?", req.ContactID), scope)
		if err := query.Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return nil
		}

		if err := tx.Create(req).Error; err != nil {
			return err
		}
		created = &models.Requirement{}
		return tx.First(created, req.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// UpdateRequirement 更新需求（含状态迁移），写后回读
// 状态为自由字符串，任意迁移都被接受，策略在调用方
func (s *RequirementService) UpdateRequirement(id uint, updates map[string]interface{}, scope Scope) (*models.Requirement, error) {
	var requirement *models.Requirement

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		existing, err := s.getScoped(tx, id, scope)
		if err != nil || existing == nil {
			return err
		}

		if err := tx.Model(existing).Updates(updates).Error; err != nil {
			return err
		}
		requirement = &models.Requirement{}
		return tx.First(requirement, id).Error
	})
	if err != nil {
		return nil, err
	}
	return requirement, nil
}

func (s *RequirementService) getScoped(tx *gorm.DB, id uint, scope Scope) (*models.Requirement, error) {
	var requirement models.Requirement
	query := scopeThroughContacts(
		tx.Model(&models.Requirement{}).Where("requirements.id = ?", id),
		"requirements", scope)
	if err := query.First(&requirement).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &requirement, nil
}

package services

import (
	"walink-crm-service/internal/domain/models"
	"walink-crm-service/internal/infrastructure/config"

	"gorm.io/gorm"
)

// InterfaceNeedService 跟进事项（预约）服务接口
type InterfaceNeedService interface {
	GetAllNeeds(scope Scope, page models.PageQuery, status string) ([]models.Need, models.PageMeta, error)
	GetNeedByID(id uint, scope Scope) (*models.Need, error)
	CreateNeed(need *models.Need, scope Scope) (*models.Need, error)
	UpdateNeed(id uint, updates map[string]interface{}, scope Scope) (*models.Need, error)
}

// NeedService 提供跟进事项相关的服务
type NeedService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewNeedService 创建一个新的跟进事项服务
func NewNeedService(db *gorm.DB, cfg *config.Config) InterfaceNeedService {
	return &NeedService{
		DB:     db,
		Config: cfg,
	}
}

// scopeNeeds 跟进事项直接按 assigned_to 归属过滤
func scopeNeeds(query *gorm.DB, scope Scope) *gorm.DB {
	if !scope.Restricted() {
		return query
	}
	return query.Where("needs.assigned_to = ?", scope.AdminID)
}

// GetAllNeeds 获取跟进事项列表，支持分页和状态过滤
func (s *NeedService) GetAllNeeds(scope Scope, page models.PageQuery, status string) ([]models.Need, models.PageMeta, error) {
	page.Normalize()
	var needs []models.Need

	query := scopeNeeds(s.DB.Model(&models.Need{}), scope)
	if status != "" {
		query = query.Where("needs.status = ?", status)
	}

	if err := query.Order("needs.created_at DESC").
		Offset(page.Offset).Limit(page.Limit + 1).
		Find(&needs).Error; err != nil {
		return nil, models.PageMeta{}, err
	}

	meta := models.NewPageMeta(page, len(needs))
	if len(needs) > page.Limit {
		needs = needs[:page.Limit]
	}
	return needs, meta, nil
}

// GetNeedByID 根据ID获取跟进事项，越权与不存在均返回 (nil, nil)
func (s *NeedService) GetNeedByID(id uint, scope Scope) (*models.Need, error) {
	var need models.Need
	query := scopeNeeds(s.DB.Where("needs.id = ?", id), scope)
	if err := query.First(&need).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &need, nil
}

// CreateNeed 创建跟进事项，写后回读
// 受限操作者创建的事项归属自己
func (s *NeedService) CreateNeed(need *models.Need, scope Scope) (*models.Need, error) {
	if scope.Restricted() {
		adminID := scope.AdminID
		need.AssignedTo = &adminID
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(need).Error; err != nil {
			return err
		}
		return tx.First(need, need.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return need, nil
}

// UpdateNeed 更新跟进事项（含状态迁移），写后回读
// 状态为自由字符串，任意迁移都被接受
func (s *NeedService) UpdateNeed(id uint, updates map[string]interface{}, scope Scope) (*models.Need, error) {
	var need *models.Need

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var existing models.Need
		query := scopeNeeds(tx.Where("needs.id = ?", id), scope)
		if err := query.First(&existing).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil
			}
			return err
		}

		if err := tx.Model(&existing).Updates(updates).Error; err != nil {
			return err
		}
		need = &models.Need{}
		return tx.First(need, id).Error
	})
	if err != nil {
		return nil, err
	}
	return need, nil
}

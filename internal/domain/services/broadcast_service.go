package services

import (
	"walink-crm-service/internal/domain/models"
	"walink-crm-service/internal/infrastructure/config"

	"gorm.io/gorm"
)

// InterfaceBroadcastService 群发任务服务接口
type InterfaceBroadcastService interface {
	GetAllBroadcasts(scope Scope, page models.PageQuery) ([]models.Broadcast, models.PageMeta, error)
	GetBroadcastByID(id uint, scope Scope) (*models.Broadcast, error)
	CreateBroadcast(b *models.Broadcast) (*models.Broadcast, error)
	// Dispatch 统计目标受众并将任务标记为发送中
	// 实际投递由网关进程消费MQTT任务消息完成
	Dispatch(id uint, scope Scope) (*models.Broadcast, error)
	IncrementDelivered(id uint) error
}

// BroadcastService 提供群发任务相关的服务
type BroadcastService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewBroadcastService 创建一个新的群发服务
func NewBroadcastService(db *gorm.DB, cfg *config.Config) InterfaceBroadcastService {
	return &BroadcastService{
		DB:     db,
		Config: cfg,
	}
}

// scopeBroadcasts 群发任务按 created_by 归属过滤
func scopeBroadcasts(query *gorm.DB, scope Scope) *gorm.DB {
	if !scope.Restricted() {
		return query
	}
	return query.Where("broadcasts.created_by = ?", scope.AdminID)
}

// GetAllBroadcasts 获取群发任务列表
func (s *BroadcastService) GetAllBroadcasts(scope Scope, page models.PageQuery) ([]models.Broadcast, models.PageMeta, error) {
	page.Normalize()
	var broadcasts []models.Broadcast

	query := scopeBroadcasts(s.DB.Model(&models.Broadcast{}), scope)
	if err := query.Order("broadcasts.created_at DESC").
		Offset(page.Offset).Limit(page.Limit + 1).
		Find(&broadcasts).Error; err != nil {
		return nil, models.PageMeta{}, err
	}

	meta := models.NewPageMeta(page, len(broadcasts))
	if len(broadcasts) > page.Limit {
		broadcasts = broadcasts[:page.Limit]
	}
	return broadcasts, meta, nil
}

// GetBroadcastByID 根据ID获取群发任务，越权与不存在均返回 (nil, nil)
func (s *BroadcastService) GetBroadcastByID(id uint, scope Scope) (*models.Broadcast, error) {
	var broadcast models.Broadcast
	query := scopeBroadcasts(s.DB.Where("broadcasts.id = ?", id), scope)
	if err := query.First(&broadcast).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &broadcast, nil
}

// CreateBroadcast 创建群发任务，写后回读
func (s *BroadcastService) CreateBroadcast(b *models.Broadcast) (*models.Broadcast, error) {
	if b.ScheduledAt != nil {
		b.Status = models.BroadcastStatusScheduled
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(b).Error; err != nil {
			return err
		}
		return tx.First(b, b.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return b, nil
}

// Dispatch 统计受众数并标记发送中，写后回读
func (s *BroadcastService) Dispatch(id uint, scope Scope) (*models.Broadcast, error) {
	var broadcast *models.Broadcast

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var existing models.Broadcast
		query := scopeBroadcasts(tx.Where("broadcasts.id = ?", id), scope)
		if err := query.First(&existing).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil
			}
			return err
		}

		// 受众：创建者名下的联系人，assigned 类型只算已分配的
		audience := tx.Model(&models.Contact{})
		switch existing.TargetAudienceType {
		case "assigned":
			audience = audience.Where("assigned_admin_id = ?", existing.CreatedBy)
		default:
			if scope.Restricted() {
				audience = audience.Where("assigned_admin_id = ?", scope.AdminID)
			}
		}
		var count int64
		if err := audience.Count(&count).Error; err != nil {
			return err
		}

		updates := map[string]interface{}{
			"status":     models.BroadcastStatusSending,
			"sent_count": count,
		}
		if err := tx.Model(&existing).Updates(updates).Error; err != nil {
			return err
		}

		broadcast = &models.Broadcast{}
		return tx.First(broadcast, id).Error
	})
	if err != nil {
		return nil, err
	}
	return broadcast, nil
}

// IncrementDelivered 投递回执累加
func (s *BroadcastService) IncrementDelivered(id uint) error {
	return s.DB.Model(&models.Broadcast{}).
		Where("id = ?", id).
		Update("delivered_count", gorm.Expr("delivered_count + 1")).Error
}

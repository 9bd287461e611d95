package services

import (
	"walink-crm-service/internal/domain/models"
	"walink-crm-service/internal/infrastructure/config"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InterfaceMessageService 消息服务接口
// 消息只追加，本层不提供更新或删除
type InterfaceMessageService interface {
	ListByContact(contactID uint, scope Scope, page models.PageQuery) ([]models.Message, models.PageMeta, error)
	AppendOutgoing(contactID uint, adminID uint, text string, scope Scope) (*models.Message, error)
	AppendIncoming(contactID uint, text, externalID string) (*models.Message, error)
	MarkStatusByExternalID(externalID, status string) error
}

// MessageService 提供会话消息相关的服务
type MessageService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewMessageService 创建一个新的消息服务
func NewMessageService(db *gorm.DB, cfg *config.Config) InterfaceMessageService {
	return &MessageService{
		DB:     db,
		Config: cfg,
	}
}

// contactVisible 联系人是否在操作者范围内
func (s *MessageService) contactVisible(tx *gorm.DB, contactID uint, scope Scope) (bool, error) {
	var count int64
	query := scopeContacts(tx.Model(&models.Contact{}).Where("contacts.id = ?", contactID), scope)
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListByContact 按联系人取消息，时间倒序分页
// 联系人越权或不存在时返回空结果
func (s *MessageService) ListByContact(contactID uint, scope Scope, page models.PageQuery) ([]models.Message, models.PageMeta, error) {
	page.Normalize()

	visible, err := s.contactVisible(s.DB, contactID, scope)
	if err != nil {
		return nil, models.PageMeta{}, err
	}
	if !visible {
		return []models.Message{}, models.NewPageMeta(page, 0), nil
	}

	var messages []models.Message
	if err := s.DB.Where("contact_id = ?", contactID).
		Order("created_at DESC").
		Offset(page.Offset).Limit(page.Limit + 1).
		Find(&messages).Error; err != nil {
		return nil, models.PageMeta{}, err
	}

	meta := models.NewPageMeta(page, len(messages))
	if len(messages) > page.Limit {
		messages = messages[:page.Limit]
	}
	return messages, meta, nil
}

// AppendOutgoing 追加一条外发消息，写后回读
// 联系人越权时返回 (nil, nil)
func (s *MessageService) AppendOutgoing(contactID uint, adminID uint, text string, scope Scope) (*models.Message, error) {
	var message *models.Message

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		visible, err := s.contactVisible(tx, contactID, scope)
		if err != nil {
			return err
		}
		if !visible {
			return nil
		}

		message = &models.Message{
			ContactID:   contactID,
			AdminID:     &adminID,
			MessageText: text,
			MessageType: models.MessageTypeOutgoing,
			Status:      models.MessageStatusQueued,
			ExternalID:  uuid.NewString(), // 网关侧关联用
		}
		if err := tx.Create(message).Error; err != nil {
			return err
		}
		return tx.First(message, message.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return message, nil
}

// AppendIncoming 追加一条入站消息（网关摄取），写后回读
func (s *MessageService) AppendIncoming(contactID uint, text, externalID string) (*models.Message, error) {
	message := &models.Message{
		ContactID:   contactID,
		MessageText: text,
		MessageType: models.MessageTypeIncoming,
		Status:      models.MessageStatusReceived,
		ExternalID:  externalID,
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(message).Error; err != nil {
			return err
		}
		return tx.First(message, message.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return message, nil
}

// MarkStatusByExternalID 按网关关联ID更新投递状态
// 状态字段是消息行里唯一允许变更的列
func (s *MessageService) MarkStatusByExternalID(externalID, status string) error {
	return s.DB.Model(&models.Message{}).
		Where("external_id = ?", externalID).
		Update("status", status).Error
}

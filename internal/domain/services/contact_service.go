package services

import (
	"walink-crm-service/internal/domain/models"
	"walink-crm-service/internal/infrastructure/config"

	"gorm.io/gorm"
)

// InterfaceContactService 联系人服务接口
//
// 受限范围下 GetContactByID / UpdateContact 对"不存在"与"无权查看"
// 统一返回 (nil, nil)，避免跨租户的存在性泄露
type InterfaceContactService interface {
	GetAllContacts(scope Scope, page models.PageQuery, search string) ([]models.Contact, models.PageMeta, error)
	GetContactByID(id uint, scope Scope) (*models.Contact, error)
	CreateContact(contact *models.Contact) (*models.Contact, error)
	UpdateContact(id uint, updates map[string]interface{}, scope Scope) (*models.Contact, error)
	AssignContact(id uint, adminID *uint, scope Scope) (*models.Contact, error)
	EnsureByPhone(phone, name string) (*models.Contact, error)
}

// ContactService 提供联系人相关的服务
type ContactService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewContactService 创建一个新的联系人服务
func NewContactService(db *gorm.DB, cfg *config.Config) InterfaceContactService {
	return &ContactService{
		DB:     db,
		Config: cfg,
	}
}

// GetAllContacts 获取联系人列表，支持分页、搜索和租户过滤
func (s *ContactService) GetAllContacts(scope Scope, page models.PageQuery, search string) ([]models.Contact, models.PageMeta, error) {
	page.Normalize()
	var contacts []models.Contact

	query := scopeContacts(s.DB.Model(&models.Contact{}), scope)
	if search != "" {
		query = query.Where("contacts.name LIKE ? OR contacts.phone LIKE ?",
			"%"+search+"%", "%"+search+"%")
	}

	if err := query.Order("contacts.created_at DESC").
		Offset(page.Offset).Limit(page.Limit + 1).
		Find(&contacts).Error; err != nil {
		return nil, models.PageMeta{}, err
	}

	meta := models.NewPageMeta(page, len(contacts))
	if len(contacts) > page.Limit {
		contacts = contacts[:page.Limit]
	}
	return contacts, meta, nil
}

// GetContactByID 根据ID获取联系人，越权与不存在均返回 (nil, nil)
func (s *ContactService) GetContactByID(id uint, scope Scope) (*models.Contact, error) {
	var contact models.Contact
	query := scopeContacts(s.DB.Where("contacts.id = ?", id), scope)
	if err := query.First(&contact).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &contact, nil
}

// CreateContact 创建联系人，写后回读返回持久化状态
func (s *ContactService) CreateContact(contact *models.Contact) (*models.Contact, error) {
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(contact).Error; err != nil {
			return err
		}
		return tx.First(contact, contact.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return contact, nil
}

// UpdateContact 更新联系人，写后回读；范围外返回 (nil, nil)
func (s *ContactService) UpdateContact(id uint, updates map[string]interface{}, scope Scope) (*models.Contact, error) {
	var contact *models.Contact

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var existing models.Contact
		query := scopeContacts(tx.Where("contacts.id = ?", id), scope)
		if err := query.First(&existing).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil
			}
			return err
		}

		if err := tx.Model(&existing).Updates(updates).Error; err != nil {
			return err
		}

		contact = &models.Contact{}
		return tx.First(contact, id).Error
	})
	if err != nil {
		return nil, err
	}
	return contact, nil
}

// AssignContact 调整联系人归属
func (s *ContactService) AssignContact(id uint, adminID *uint, scope Scope) (*models.Contact, error) {
	return s.UpdateContact(id, map[string]interface{}{"assigned_admin_id": adminID}, scope)
}

// EnsureByPhone 按手机号取回或创建联系人，入站消息摄取使用
func (s *ContactService) EnsureByPhone(phone, name string) (*models.Contact, error) {
	var contact models.Contact
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("phone = ?", phone).First(&contact).Error; err == nil {
			return nil
		} else if err != gorm.ErrRecordNotFound {
			return err
		}

		contact = models.Contact{Phone: phone, Name: name}
		if err := tx.Create(&contact).Error; err != nil {
			return err
		}
		return tx.First(&contact, contact.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return &contact, nil
}

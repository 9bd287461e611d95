package services

import (
	"fmt"
	"walink-crm-service/internal/domain/models"
	"walink-crm-service/internal/infrastructure/config"
	"walink-crm-service/utils"

	"gorm.io/gorm"
)

// InterfaceAdminService 账号服务接口
type InterfaceAdminService interface {
	Register(req *RegisterRequest) (*models.AdminAccount, error)
	GetAccountByID(id uint) (*models.AdminAccount, error)
	GetAccountByPhone(phone string) (*models.AdminAccount, error)
	GetAllAccounts(page models.PageQuery, search string) ([]models.AdminAccount, models.PageMeta, error)
	UpdateAccount(id uint, updates map[string]interface{}) (*models.AdminAccount, error)
	DeleteAccount(id uint) error
	CheckPassword(password, hash string) bool
}

// RegisterRequest 注册参数
type RegisterRequest struct {
	Name     string
	Phone    string
	Email    *string
	Password string
	Tier     string // 可选，申请的层级
}

// AdminService 提供账号相关的服务
type AdminService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewAdminService 创建一个新的账号服务
func NewAdminService(db *gorm.DB, cfg *config.Config) InterfaceAdminService {
	return &AdminService{
		DB:     db,
		Config: cfg,
	}
}

// CheckPassword 验证密码是否匹配
func (s *AdminService) CheckPassword(password, hash string) bool {
	return utils.CheckPasswordHash(password, hash)
}

// Register 注册新账号
// 系统中第一个账号无条件成为 super_admin（引导逃生口）；
// 之后默认 client_admin，仅当显式申请且部署开关允许时才授予 super_admin
func (s *AdminService) Register(req *RegisterRequest) (*models.AdminAccount, error) {
	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("密码加密失败: %v", err)
	}

	account := &models.AdminAccount{
		Name:     req.Name,
		Phone:    req.Phone,
		Email:    req.Email,
		Password: hashedPassword,
		Status:   "active",
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		// 唯一性检查：手机号，邮箱（提供时）
		var count int64
		dup := tx.Model(&models.AdminAccount{}).Where("phone = ?", req.Phone)
		if req.Email != nil && *req.Email != "" {
			dup = dup.Or("email = ?", *req.Email)
		}
		if err := dup.Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicateAccount
		}

		// 层级引导
		var total int64
		if err := tx.Model(&models.AdminAccount{}).Count(&total).Error; err != nil {
			return err
		}
		switch {
		case total == 0:
			account.Tier = models.TierSuperAdmin
		case req.Tier == models.TierSuperAdmin && s.Config.AllowSuperAdminSignup:
			account.Tier = models.TierSuperAdmin
		default:
			account.Tier = models.TierClientAdmin
		}

		if err := tx.Create(account).Error; err != nil {
			return err
		}
		// 回读持久化后的行，返回服务端生成的默认值
		return tx.First(account, account.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return account, nil
}

// GetAccountByID 根据ID获取账号
// 未找到时返回 (nil, nil)
func (s *AdminService) GetAccountByID(id uint) (*models.AdminAccount, error) {
	var account models.AdminAccount
	if err := s.DB.First(&account, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &account, nil
}

// GetAccountByPhone 根据手机号获取账号
func (s *AdminService) GetAccountByPhone(phone string) (*models.AdminAccount, error) {
	var account models.AdminAccount
	if err := s.DB.Where("phone = ?", phone).First(&account).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &account, nil
}

// GetAllAccounts 获取账号列表，支持分页和搜索
func (s *AdminService) GetAllAccounts(page models.PageQuery, search string) ([]models.AdminAccount, models.PageMeta, error) {
	page.Normalize()
	var accounts []models.AdminAccount

	query := s.DB.Model(&models.AdminAccount{})
	if search != "" {
		query = query.Where("name LIKE ? OR phone LIKE ? OR email LIKE ?",
			"%"+search+"%", "%"+search+"%", "%"+search+"%")
	}

	// 多取一行以判断是否还有下一页
	if err := query.Order("created_at DESC").
		Offset(page.Offset).Limit(page.Limit + 1).
		Find(&accounts).Error; err != nil {
		return nil, models.PageMeta{}, err
	}

	meta := models.NewPageMeta(page, len(accounts))
	if len(accounts) > page.Limit {
		accounts = accounts[:page.Limit]
	}
	return accounts, meta, nil
}

// UpdateAccount 更新账号信息
// 未找到时返回 (nil, nil)
func (s *AdminService) UpdateAccount(id uint, updates map[string]interface{}) (*models.AdminAccount, error) {
	var account *models.AdminAccount

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var existing models.AdminAccount
		if err := tx.First(&existing, id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil
			}
			return err
		}

		// 手机号变更需要检查唯一性
		if phone, ok := updates["phone"].(string); ok && phone != existing.Phone {
			var count int64
			if err := tx.Model(&models.AdminAccount{}).
				Where("phone = ? AND id != ?", phone, id).Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return ErrDuplicateAccount
			}
		}

		// 密码变更需要哈希处理
		if password, ok := updates["password"].(string); ok {
			hashedPassword, err := utils.HashPassword(password)
			if err != nil {
				return fmt.Errorf("密码加密失败: %v", err)
			}
			updates["password"] = hashedPassword
		}

		if err := tx.Model(&existing).Updates(updates).Error; err != nil {
			return err
		}

		// 回读更新后的账号
		account = &models.AdminAccount{}
		return tx.First(account, id).Error
	})
	if err != nil {
		return nil, err
	}
	return account, nil
}

// DeleteAccount 删除账号
func (s *AdminService) DeleteAccount(id uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		// 确保系统中至少保留一个超级管理员
		var target models.AdminAccount
		if err := tx.First(&target, id).Error; err != nil {
			return err
		}
		if target.IsSuperAdmin() {
			var supers int64
			if err := tx.Model(&models.AdminAccount{}).
				Where("tier = ?", models.TierSuperAdmin).Count(&supers).Error; err != nil {
				return err
			}
			if supers <= 1 {
				return ErrLastSuperAdmin
			}
		}

		// 解除联系人归属，保留客户数据
		if err := tx.Model(&models.Contact{}).
			Where("assigned_admin_id = ?", id).
			Update("assigned_admin_id", nil).Error; err != nil {
			return err
		}

		return tx.Delete(&models.AdminAccount{}, id).Error
	})
}

package services

import (
	"fmt"
	"testing"
	"walink-crm-service/internal/domain/models"
	"walink-crm-service/internal/infrastructure/config"
	"walink-crm-service/utils"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB 每个测试用独立的内存库
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.AdminAccount{},
		&models.Contact{},
		&models.Message{},
		&models.Requirement{},
		&models.Need{},
		&models.Broadcast{},
		&models.MessageTemplate{},
	))
	return db
}

func newTestConfig() *config.Config {
	return &config.Config{
		EnvType:      "test",
		JWTSecretKey: "test-secret-key",
	}
}

// mustCreateAccount 直接写入一个账号行，绕过注册流程
func mustCreateAccount(t *testing.T, db *gorm.DB, name, phone, password, tier string) *models.AdminAccount {
	t.Helper()

	hash, err := utils.HashPassword(password)
	require.NoError(t, err)

	account := &models.AdminAccount{
		Name:     name,
		Phone:    phone,
		Password: hash,
		Tier:     tier,
		Status:   "active",
	}
	require.NoError(t, db.Create(account).Error)
	return account
}

// mustCreateContact 直接写入一个联系人行
func mustCreateContact(t *testing.T, db *gorm.DB, phone, name string, assignedTo *uint) *models.Contact {
	t.Helper()

	contact := &models.Contact{
		Phone:           phone,
		Name:            name,
		AssignedAdminID: assignedTo,
	}
	require.NoError(t, db.Create(contact).Error)
	return contact
}

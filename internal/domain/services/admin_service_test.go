package services

import (
	"fmt"
	"testing"
	"walink-crm-service/internal/domain/models"
	"walink-crm-service/internal/infrastructure/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterFirstAccountBecomesSuperAdmin(t *testing.T) {
	db := newTestDB(t)
	svc := NewAdminService(db, newTestConfig())

	first, err := svc.Register(&RegisterRequest{
		Name: "张三", Phone: "13800138000", Password: "secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, models.TierSuperAdmin, first.Tier)

	// 之后的注册默认 client_admin，即使申请了 super_admin
	second, err := svc.Register(&RegisterRequest{
		Name: "李四", Phone: "13800138001", Password: "secret123",
		Tier: models.TierSuperAdmin,
	})
	require.NoError(t, err)
	assert.Equal(t, models.TierClientAdmin, second.Tier)
}

func TestRegisterSuperAdminSignupSwitch(t *testing.T) {
	db := newTestDB(t)
	cfg := &config.Config{JWTSecretKey: "test", AllowSuperAdminSignup: true}
	svc := NewAdminService(db, cfg)

	mustCreateAccount(t, db, "root", "13800000000", "secret123", models.TierSuperAdmin)

	account, err := svc.Register(&RegisterRequest{
		Name: "王五", Phone: "13800138002", Password: "secret123",
		Tier: models.TierSuperAdmin,
	})
	require.NoError(t, err)
	assert.Equal(t, models.TierSuperAdmin, account.Tier)
}

func TestRegisterDuplicatePhone(t *testing.T) {
	db := newTestDB(t)
	svc := NewAdminService(db, newTestConfig())

	_, err := svc.Register(&RegisterRequest{
		Name: "张三", Phone: "13800138000", Password: "secret123",
	})
	require.NoError(t, err)

	_, err = svc.Register(&RegisterRequest{
		Name: "假张三", Phone: "13800138000", Password: "other456",
	})
	assert.ErrorIs(t, err, ErrDuplicateAccount)
}

func TestRegisterHashesPassword(t *testing.T) {
	db := newTestDB(t)
	svc := NewAdminService(db, newTestConfig())

	account, err := svc.Register(&RegisterRequest{
		Name: "张三", Phone: "13800138000", Password: "secret123",
	})
	require.NoError(t, err)

	var stored models.AdminAccount
	require.NoError(t, db.First(&stored, account.ID).Error)
	assert.NotEqual(t, "secret123", stored.Password)
	assert.True(t, svc.CheckPassword("secret123", stored.Password))
	assert.False(t, svc.CheckPassword("wrong", stored.Password))
}

func TestUpdateAccountNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewAdminService(db, newTestConfig())

	account, err := svc.UpdateAccount(999, map[string]interface{}{"name": "改名"})
	require.NoError(t, err)
	assert.Nil(t, account)
}

func TestDeleteAccountKeepsLastSuperAdmin(t *testing.T) {
	db := newTestDB(t)
	svc := NewAdminService(db, newTestConfig())

	root := mustCreateAccount(t, db, "root", "13800000000", "secret123", models.TierSuperAdmin)
	assert.ErrorIs(t, svc.DeleteAccount(root.ID), ErrLastSuperAdmin)

	// 有第二个超级管理员时允许删除
	mustCreateAccount(t, db, "root2", "13800000001", "secret123", models.TierSuperAdmin)
	assert.NoError(t, svc.DeleteAccount(root.ID))
}

func TestDeleteAccountUnassignsContacts(t *testing.T) {
	db := newTestDB(t)
	svc := NewAdminService(db, newTestConfig())

	mustCreateAccount(t, db, "root", "13800000000", "secret123", models.TierSuperAdmin)
	agent := mustCreateAccount(t, db, "agent", "13800000001", "secret123", models.TierClientAdmin)
	contact := mustCreateContact(t, db, "15000000000", "客户", &agent.ID)

	require.NoError(t, svc.DeleteAccount(agent.ID))

	// 联系人保留，归属被解除
	var kept models.Contact
	require.NoError(t, db.First(&kept, contact.ID).Error)
	assert.Nil(t, kept.AssignedAdminID)
}

func TestGetAllAccountsPagination(t *testing.T) {
	db := newTestDB(t)
	svc := NewAdminService(db, newTestConfig())

	for i := 0; i < 25; i++ {
		mustCreateAccount(t, db, "成员", fmt.Sprintf("138%08d", i), "secret123", models.TierClientAdmin)
	}

	page1, meta, err := svc.GetAllAccounts(models.PageQuery{Limit: 20, Offset: 0}, "")
	require.NoError(t, err)
	assert.Len(t, page1, 20)
	assert.True(t, meta.HasMore)
	assert.Equal(t, 20, meta.NextOffset)

	page2, meta2, err := svc.GetAllAccounts(models.PageQuery{Limit: 20, Offset: meta.NextOffset}, "")
	require.NoError(t, err)
	assert.Len(t, page2, 5)
	assert.False(t, meta2.HasMore)
}

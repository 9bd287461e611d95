package services

import (
	"fmt"
	"testing"
	"walink-crm-service/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetContactByIDScoping(t *testing.T) {
	db := newTestDB(t)
	svc := NewContactService(db, newTestConfig())

	owner := mustCreateAccount(t, db, "owner", "13800000001", "secret123", models.TierClientAdmin)
	other := mustCreateAccount(t, db, "other", "13800000002", "secret123", models.TierClientAdmin)
	contact := mustCreateContact(t, db, "15000000000", "客户", &owner.ID)

	ownerScope := Scope{AdminID: owner.ID, Tier: models.TierClientAdmin}
	otherScope := Scope{AdminID: other.ID, Tier: models.TierClientAdmin}
	superScope := Scope{AdminID: 99, Tier: models.TierSuperAdmin}

	got, err := svc.GetContactByID(contact.ID, ownerScope)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, contact.ID, got.ID)

	// 他人的联系人与不存在的联系人不可区分
	invisible, err := svc.GetContactByID(contact.ID, otherScope)
	require.NoError(t, err)
	assert.Nil(t, invisible)

	missing, err := svc.GetContactByID(9999, otherScope)
	require.NoError(t, err)
	assert.Nil(t, missing)

	// 超级管理员不受限
	all, err := svc.GetContactByID(contact.ID, superScope)
	require.NoError(t, err)
	assert.NotNil(t, all)
}

func TestGetAllContactsScopingAndUnassigned(t *testing.T) {
	db := newTestDB(t)
	svc := NewContactService(db, newTestConfig())

	owner := mustCreateAccount(t, db, "owner", "13800000001", "secret123", models.TierClientAdmin)
	mustCreateContact(t, db, "15000000001", "我的客户", &owner.ID)
	mustCreateContact(t, db, "15000000002", "无主客户", nil)

	ownerScope := Scope{AdminID: owner.ID, Tier: models.TierClientAdmin}
	contacts, _, err := svc.GetAllContacts(ownerScope, models.PageQuery{}, "")
	require.NoError(t, err)
	require.Len(t, contacts, 1)
	assert.Equal(t, "我的客户", contacts[0].Name)

	// 未分配的联系人只有超级管理员可见
	superScope := Scope{AdminID: 99, Tier: models.TierSuperAdmin}
	all, _, err := svc.GetAllContacts(superScope, models.PageQuery{}, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestGetAllContactsPaginationBoundary(t *testing.T) {
	db := newTestDB(t)
	svc := NewContactService(db, newTestConfig())

	for i := 0; i < 50; i++ {
		mustCreateContact(t, db, fmt.Sprintf("150%08d", i), "客户", nil)
	}

	// 行数恰好等于limit时没有下一页
	contacts, meta, err := svc.GetAllContacts(GlobalScope, models.PageQuery{Limit: 50, Offset: 0}, "")
	require.NoError(t, err)
	assert.Len(t, contacts, 50)
	assert.False(t, meta.HasMore)
	assert.Equal(t, 50, meta.NextOffset)

	mustCreateContact(t, db, "15099999999", "第51个", nil)

	contacts, meta, err = svc.GetAllContacts(GlobalScope, models.PageQuery{Limit: 50, Offset: 0}, "")
	require.NoError(t, err)
	assert.Len(t, contacts, 50)
	assert.True(t, meta.HasMore)
	assert.Equal(t, 50, meta.NextOffset)
}

func TestUpdateContactOutOfScope(t *testing.T) {
	db := newTestDB(t)
	svc := NewContactService(db, newTestConfig())

	owner := mustCreateAccount(t, db, "owner", "13800000001", "secret123", models.TierClientAdmin)
	other := mustCreateAccount(t, db, "other", "13800000002", "secret123", models.TierClientAdmin)
	contact := mustCreateContact(t, db, "15000000000", "客户", &owner.ID)

	updated, err := svc.UpdateContact(contact.ID,
		map[string]interface{}{"name": "改名"},
		Scope{AdminID: other.ID, Tier: models.TierClientAdmin})
	require.NoError(t, err)
	assert.Nil(t, updated)

	// 原始数据未被改动
	var kept models.Contact
	require.NoError(t, db.First(&kept, contact.ID).Error)
	assert.Equal(t, "客户", kept.Name)
}

func TestAssignContact(t *testing.T) {
	db := newTestDB(t)
	svc := NewContactService(db, newTestConfig())

	agent := mustCreateAccount(t, db, "agent", "13800000001", "secret123", models.TierClientAdmin)
	contact := mustCreateContact(t, db, "15000000000", "客户", nil)

	assigned, err := svc.AssignContact(contact.ID, &agent.ID, Scope{AdminID: 99, Tier: models.TierSuperAdmin})
	require.NoError(t, err)
	require.NotNil(t, assigned)
	require.NotNil(t, assigned.AssignedAdminID)
	assert.Equal(t, agent.ID, *assigned.AssignedAdminID)
}

func TestEnsureByPhoneIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := NewContactService(db, newTestConfig())

	first, err := svc.EnsureByPhone("15000000000", "新客户")
	require.NoError(t, err)

	second, err := svc.EnsureByPhone("15000000000", "换了名字也不覆盖")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "新客户", second.Name)

	var count int64
	require.NoError(t, db.Model(&models.Contact{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

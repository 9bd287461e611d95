package services

import (
	"testing"
	"walink-crm-service/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateNeedRestrictedSelfAssigns(t *testing.T) {
	db := newTestDB(t)
	svc := NewNeedService(db, newTestConfig())

	agent := mustCreateAccount(t, db, "agent", "13800000001", "secret123", models.TierClientAdmin)
	contact := mustCreateContact(t, db, "15000000000", "客户", &agent.ID)

	need, err := svc.CreateNeed(&models.Need{
		ContactID: contact.ID,
		Title:     "回访电话",
	}, Scope{AdminID: agent.ID, Tier: models.TierClientAdmin})
	require.NoError(t, err)
	require.NotNil(t, need.AssignedTo)
	assert.Equal(t, agent.ID, *need.AssignedTo)
	assert.Equal(t, "open", need.Status)
}

func TestGetAllNeedsStatusFilter(t *testing.T) {
	db := newTestDB(t)
	svc := NewNeedService(db, newTestConfig())

	contact := mustCreateContact(t, db, "15000000000", "客户", nil)
	require.NoError(t, db.Create(&models.Need{ContactID: contact.ID, Title: "待办", Status: "open"}).Error)
	require.NoError(t, db.Create(&models.Need{ContactID: contact.ID, Title: "已完成", Status: "done"}).Error)

	open, _, err := svc.GetAllNeeds(GlobalScope, models.PageQuery{}, "open")
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Equal(t, "待办", open[0].Title)

	all, _, err := svc.GetAllNeeds(GlobalScope, models.PageQuery{}, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestUpdateNeedScoping(t *testing.T) {
	db := newTestDB(t)
	svc := NewNeedService(db, newTestConfig())

	owner := mustCreateAccount(t, db, "owner", "13800000001", "secret123", models.TierClientAdmin)
	other := mustCreateAccount(t, db, "other", "13800000002", "secret123", models.TierClientAdmin)
	contact := mustCreateContact(t, db, "15000000000", "客户", &owner.ID)

	need := &models.Need{ContactID: contact.ID, Title: "回访", AssignedTo: &owner.ID}
	require.NoError(t, db.Create(need).Error)

	// 未被指派的管理员不可见
	updated, err := svc.UpdateNeed(need.ID,
		map[string]interface{}{"status": "done"},
		Scope{AdminID: other.ID, Tier: models.TierClientAdmin})
	require.NoError(t, err)
	assert.Nil(t, updated)

	// 被指派者可以更新状态，状态值不做校验
	updated, err = svc.UpdateNeed(need.ID,
		map[string]interface{}{"status": "whatever"},
		Scope{AdminID: owner.ID, Tier: models.TierClientAdmin})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "whatever", updated.Status)
}

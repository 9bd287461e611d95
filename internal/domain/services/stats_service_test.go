package services

import (
	"testing"
	"walink-crm-service/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetDashboardStatsScoped(t *testing.T) {
	db := newTestDB(t)
	svc := NewStatsService(db, newTestConfig(), nil)

	agent := mustCreateAccount(t, db, "agent", "13800000001", "secret123", models.TierClientAdmin)
	mine := mustCreateContact(t, db, "15000000001", "我的客户", &agent.ID)
	mustCreateContact(t, db, "15000000002", "别人的客户", nil)

	require.NoError(t, db.Create(&models.Need{ContactID: mine.ID, Title: "回访", Status: "open", AssignedTo: &agent.ID}).Error)
	require.NoError(t, db.Create(&models.Requirement{ContactID: mine.ID, RequirementText: "需求", Status: "in_progress"}).Error)
	require.NoError(t, db.Create(&models.Broadcast{Title: "任务", Message: "x", Status: models.BroadcastStatusSending, CreatedBy: agent.ID}).Error)

	scope := Scope{AdminID: agent.ID, Tier: models.TierClientAdmin}
	stats, err := svc.GetDashboardStats(scope)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.TotalContacts)
	assert.Equal(t, int64(1), stats.OpenNeeds)
	assert.Equal(t, int64(1), stats.InProgressRequirements)
	assert.Equal(t, int64(1), stats.ActiveBroadcasts)

	// 全局视图看到两个联系人
	global, err := svc.GetDashboardStats(GlobalScope)
	require.NoError(t, err)
	assert.Equal(t, int64(2), global.TotalContacts)
}

func TestGetReportOverviewRangeFallback(t *testing.T) {
	db := newTestDB(t)
	svc := NewStatsService(db, newTestConfig(), nil)

	overview, err := svc.GetReportOverview(GlobalScope, "bogus")
	require.NoError(t, err)
	assert.Equal(t, "30d", overview.Range)

	overview, err = svc.GetReportOverview(GlobalScope, "7d")
	require.NoError(t, err)
	assert.Equal(t, "7d", overview.Range)
}

func TestGetReportOverviewMessageVolume(t *testing.T) {
	db := newTestDB(t)
	svc := NewStatsService(db, newTestConfig(), nil)

	contact := mustCreateContact(t, db, "15000000000", "客户", nil)
	require.NoError(t, db.Create(&models.Message{ContactID: contact.ID, MessageText: "in", MessageType: models.MessageTypeIncoming, Status: models.MessageStatusReceived}).Error)
	require.NoError(t, db.Create(&models.Message{ContactID: contact.ID, MessageText: "out", MessageType: models.MessageTypeOutgoing, Status: models.MessageStatusSent}).Error)

	overview, err := svc.GetReportOverview(GlobalScope, "7d")
	require.NoError(t, err)
	require.Len(t, overview.MessageVolume, 1)
	assert.Equal(t, int64(1), overview.MessageVolume[0].Incoming)
	assert.Equal(t, int64(1), overview.MessageVolume[0].Outgoing)
}

func TestGetTeamMembersScoping(t *testing.T) {
	db := newTestDB(t)
	svc := NewStatsService(db, newTestConfig(), nil)

	root := mustCreateAccount(t, db, "root", "13800000000", "secret123", models.TierSuperAdmin)
	agent := mustCreateAccount(t, db, "agent", "13800000001", "secret123", models.TierClientAdmin)
	mine := mustCreateContact(t, db, "15000000001", "客户", &agent.ID)
	require.NoError(t, db.Create(&models.Need{ContactID: mine.ID, Title: "回访", Status: "open", AssignedTo: &agent.ID}).Error)

	// 受限操作者只看到自己
	members, err := svc.GetTeamMembers(Scope{AdminID: agent.ID, Tier: models.TierClientAdmin})
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, agent.ID, members[0].ID)
	assert.Equal(t, int64(1), members[0].AssignedContacts)
	assert.Equal(t, int64(1), members[0].OpenNeeds)

	// 超级管理员看到全员
	all, err := svc.GetTeamMembers(Scope{AdminID: root.ID, Tier: models.TierSuperAdmin})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

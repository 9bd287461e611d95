package services

import (
	"testing"
	"walink-crm-service/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendOutgoingAssignsExternalID(t *testing.T) {
	db := newTestDB(t)
	svc := NewMessageService(db, newTestConfig())

	agent := mustCreateAccount(t, db, "agent", "13800000001", "secret123", models.TierClientAdmin)
	contact := mustCreateContact(t, db, "15000000000", "客户", &agent.ID)

	scope := Scope{AdminID: agent.ID, Tier: models.TierClientAdmin}
	msg, err := svc.AppendOutgoing(contact.ID, agent.ID, "你好", scope)
	require.NoError(t, err)
	require.NotNil(t, msg)
	assert.Equal(t, models.MessageTypeOutgoing, msg.MessageType)
	assert.Equal(t, models.MessageStatusQueued, msg.Status)
	assert.NotEmpty(t, msg.ExternalID)
	require.NotNil(t, msg.AdminID)
	assert.Equal(t, agent.ID, *msg.AdminID)
}

func TestAppendOutgoingOutOfScope(t *testing.T) {
	db := newTestDB(t)
	svc := NewMessageService(db, newTestConfig())

	owner := mustCreateAccount(t, db, "owner", "13800000001", "secret123", models.TierClientAdmin)
	other := mustCreateAccount(t, db, "other", "13800000002", "secret123", models.TierClientAdmin)
	contact := mustCreateContact(t, db, "15000000000", "客户", &owner.ID)

	msg, err := svc.AppendOutgoing(contact.ID, other.ID, "你好", Scope{AdminID: other.ID, Tier: models.TierClientAdmin})
	require.NoError(t, err)
	assert.Nil(t, msg)

	var count int64
	require.NoError(t, db.Model(&models.Message{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestListByContactInvisibleReturnsEmpty(t *testing.T) {
	db := newTestDB(t)
	svc := NewMessageService(db, newTestConfig())

	owner := mustCreateAccount(t, db, "owner", "13800000001", "secret123", models.TierClientAdmin)
	other := mustCreateAccount(t, db, "other", "13800000002", "secret123", models.TierClientAdmin)
	contact := mustCreateContact(t, db, "15000000000", "客户", &owner.ID)

	_, err := svc.AppendIncoming(contact.ID, "入站消息", "wa-msg-1")
	require.NoError(t, err)

	messages, meta, err := svc.ListByContact(contact.ID, Scope{AdminID: other.ID, Tier: models.TierClientAdmin}, models.PageQuery{})
	require.NoError(t, err)
	assert.Empty(t, messages)
	assert.False(t, meta.HasMore)

	visible, _, err := svc.ListByContact(contact.ID, Scope{AdminID: owner.ID, Tier: models.TierClientAdmin}, models.PageQuery{})
	require.NoError(t, err)
	assert.Len(t, visible, 1)
}

func TestMarkStatusByExternalID(t *testing.T) {
	db := newTestDB(t)
	svc := NewMessageService(db, newTestConfig())

	contact := mustCreateContact(t, db, "15000000000", "客户", nil)
	msg, err := svc.AppendIncoming(contact.ID, "hello", "wa-msg-7")
	require.NoError(t, err)

	require.NoError(t, svc.MarkStatusByExternalID("wa-msg-7", models.MessageStatusDelivered))

	var updated models.Message
	require.NoError(t, db.First(&updated, msg.ID).Error)
	assert.Equal(t, models.MessageStatusDelivered, updated.Status)
	// 其余列保持不变
	assert.Equal(t, "hello", updated.MessageText)
}

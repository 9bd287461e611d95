package services

import (
	"testing"
	"walink-crm-service/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateRequirementRequiresVisibleContact(t *testing.T) {
	db := newTestDB(t)
	svc := NewRequirementService(db, newTestConfig())

	owner := mustCreateAccount(t, db, "owner", "13800000001", "secret123", models.TierClientAdmin)
	other := mustCreateAccount(t, db, "other", "13800000002", "secret123", models.TierClientAdmin)
	contact := mustCreateContact(t, db, "15000000000", "客户", &owner.ID)

	// 不在范围内的联系人上创建被静默拒绝
	created, err := svc.CreateRequirement(&models.Requirement{
		ContactID: contact.ID, RequirementText: "想买A产品",
	}, Scope{AdminID: other.ID, Tier: models.TierClientAdmin})
	require.NoError(t, err)
	assert.Nil(t, created)

	created, err = svc.CreateRequirement(&models.Requirement{
		ContactID: contact.ID, RequirementText: "想买A产品", Category: "产品咨询",
	}, Scope{AdminID: owner.ID, Tier: models.TierClientAdmin})
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, "in_progress", created.Status)
}

func TestUpdateRequirementFreeFormStatus(t *testing.T) {
	db := newTestDB(t)
	svc := NewRequirementService(db, newTestConfig())

	contact := mustCreateContact(t, db, "15000000000", "客户", nil)
	req := &models.Requirement{ContactID: contact.ID, RequirementText: "需求"}
	require.NoError(t, db.Create(req).Error)

	updated, err := svc.UpdateRequirement(req.ID,
		map[string]interface{}{"status": "completed"}, GlobalScope)
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "completed", updated.Status)
}

func TestListByContactScoping(t *testing.T) {
	db := newTestDB(t)
	svc := NewRequirementService(db, newTestConfig())

	owner := mustCreateAccount(t, db, "owner", "13800000001", "secret123", models.TierClientAdmin)
	other := mustCreateAccount(t, db, "other", "13800000002", "secret123", models.TierClientAdmin)
	contact := mustCreateContact(t, db, "15000000000", "客户", &owner.ID)
	require.NoError(t, db.Create(&models.Requirement{ContactID: contact.ID, RequirementText: "需求"}).Error)

	mine, err := svc.ListByContact(contact.ID, Scope{AdminID: owner.ID, Tier: models.TierClientAdmin})
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	invisible, err := svc.ListByContact(contact.ID, Scope{AdminID: other.ID, Tier: models.TierClientAdmin})
	require.NoError(t, err)
	assert.Empty(t, invisible)
}

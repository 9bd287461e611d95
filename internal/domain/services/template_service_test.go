package services

import (
	"testing"
	"walink-crm-service/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTemplateVariablesRoundTrip(t *testing.T) {
	db := newTestDB(t)
	svc := NewTemplateService(db, newTestConfig())

	view, err := svc.CreateTemplate(&models.MessageTemplate{
		Name:      "预约提醒",
		Content:   "您好{{name}}，您的预约时间是{{date}}",
		Category:  "appointment",
		CreatedBy: 1,
	}, []string{"name", "date"})
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "date"}, view.Variables)

	got, err := svc.GetTemplateByID(view.ID, GlobalScope)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, []string{"name", "date"}, got.Variables)
}

func TestTemplateVariablesDegradeToEmptyList(t *testing.T) {
	db := newTestDB(t)
	svc := NewTemplateService(db, newTestConfig())

	// nil 占位符列表落库后回读为空列表而不是 null
	view, err := svc.CreateTemplate(&models.MessageTemplate{
		Name: "无变量", Content: "固定文案", CreatedBy: 1,
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{}, view.Variables)

	// 存量脏数据同样退化为空列表
	dirty := &models.MessageTemplate{
		Name: "脏数据", Content: "x", Variables: "not-json", CreatedBy: 1,
	}
	require.NoError(t, db.Create(dirty).Error)

	got, err := svc.GetTemplateByID(dirty.ID, GlobalScope)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, []string{}, got.Variables)
}

func TestTemplateScoping(t *testing.T) {
	db := newTestDB(t)
	svc := NewTemplateService(db, newTestConfig())

	_, err := svc.CreateTemplate(&models.MessageTemplate{
		Name: "甲的模板", Content: "x", CreatedBy: 1,
	}, nil)
	require.NoError(t, err)
	mine, err := svc.CreateTemplate(&models.MessageTemplate{
		Name: "乙的模板", Content: "y", CreatedBy: 2,
	}, nil)
	require.NoError(t, err)

	scope := Scope{AdminID: 2, Tier: models.TierClientAdmin}
	templates, err := svc.GetAllTemplates(scope)
	require.NoError(t, err)
	require.Len(t, templates, 1)
	assert.Equal(t, "乙的模板", templates[0].Name)

	// 他人模板按ID取同样不可见
	invisible, err := svc.GetTemplateByID(mine.ID, Scope{AdminID: 1, Tier: models.TierClientAdmin})
	require.NoError(t, err)
	assert.Nil(t, invisible)
}

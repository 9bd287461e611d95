package services

import (
	"time"
	"walink-crm-service/internal/domain/models"
	"walink-crm-service/internal/infrastructure/config"
	"walink-crm-service/pkg/logger"

	"gorm.io/gorm"
)

// InterfaceStatsService 统计与报表服务接口
// 受限范围下每个子聚合独立套用同一归属谓词，
// 因为各表之间只通过联系人/账号关系相连
type InterfaceStatsService interface {
	GetDashboardStats(scope Scope) (*DashboardStats, error)
	GetReportOverview(scope Scope, rangeStr string) (*ReportOverview, error)
	GetTeamMembers(scope Scope) ([]TeamMember, error)
}

// DashboardStats 仪表盘统计
type DashboardStats struct {
	TotalContacts          int64 `json:"total_contacts"`
	MessagesToday          int64 `json:"messages_today"`
	OpenNeeds              int64 `json:"open_needs"`
	InProgressRequirements int64 `json:"in_progress_requirements"`
	ActiveBroadcasts       int64 `json:"active_broadcasts"`
}

// DailyMessageCount 按日消息量
type DailyMessageCount struct {
	Day      string `json:"day"`
	Incoming int64  `json:"incoming"`
	Outgoing int64  `json:"outgoing"`
}

// CategoryCount 需求分类统计
type CategoryCount struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}

// ReportOverview 报表总览
type ReportOverview struct {
	Range                  string              `json:"range"`
	NewContacts            int64               `json:"new_contacts"`
	MessageVolume          []DailyMessageCount `json:"message_volume"`
	RequirementsByCategory []CategoryCount     `json:"requirements_by_category"`
}

// TeamMember 团队成员及其工作量
type TeamMember struct {
	ID               uint   `json:"id"`
	Name             string `json:"name"`
	Phone            string `json:"phone"`
	Tier             string `json:"tier"`
	Status           string `json:"status"`
	AssignedContacts int64  `json:"assigned_contacts"`
	OpenNeeds        int64  `json:"open_needs"`
}

// StatsService 提供统计相关的服务
type StatsService struct {
	DB     *gorm.DB
	Config *config.Config
	Cache  InterfaceRedisService // 可为nil，缓存失败降级为直查
}

// NewStatsService 创建一个新的统计服务
func NewStatsService(db *gorm.DB, cfg *config.Config, cache InterfaceRedisService) InterfaceStatsService {
	return &StatsService{
		DB:     db,
		Config: cfg,
		Cache:  cache,
	}
}

// GetDashboardStats 获取仪表盘统计，优先读缓存
func (s *StatsService) GetDashboardStats(scope Scope) (*DashboardStats, error) {
	if s.Cache != nil {
		var cached DashboardStats
		if err := s.Cache.GetDashboardStats(scope.AdminID, &cached); err == nil {
			return &cached, nil
		}
	}

	stats := &DashboardStats{}
	startOfDay := time.Now().Truncate(24 * time.Hour)

	// 每个子聚合独立过滤
	if err := scopeContacts(s.DB.Model(&models.Contact{}), scope).
		Count(&stats.TotalContacts).Error; err != nil {
		return nil, err
	}

	if err := scopeThroughContacts(
		s.DB.Model(&models.Message{}).Where("messages.created_at >= ?", startOfDay),
		"messages", scope).
		Count(&stats.MessagesToday).Error; err != nil {
		return nil, err
	}

	if err := scopeNeeds(s.DB.Model(&models.Need{}).Where("needs.status = ?", "open"), scope).
		Count(&stats.OpenNeeds).Error; err != nil {
		return nil, err
	}

	if err := scopeThroughContacts(
		s.DB.Model(&models.Requirement{}).Where("requirements.status = ?", "in_progress"),
		"requirements", scope).
		Count(&stats.InProgressRequirements).Error; err != nil {
		return nil, err
	}

	if err := scopeBroadcasts(
		s.DB.Model(&models.Broadcast{}).
			Where("broadcasts.status IN ?", []string{models.BroadcastStatusScheduled, models.BroadcastStatusSending}),
		scope).
		Count(&stats.ActiveBroadcasts).Error; err != nil {
		return nil, err
	}

	if s.Cache != nil {
		if err := s.Cache.CacheDashboardStats(scope.AdminID, stats); err != nil {
			logger.Warning("缓存仪表盘统计失败: %v", err)
		}
	}
	return stats, nil
}

// parseRange 解析报表时间窗口，非法值退化为30天
func parseRange(rangeStr string) (string, time.Duration) {
	switch rangeStr {
	case "7d":
		return "7d", 7 * 24 * time.Hour
	case "90d":
		return "90d", 90 * 24 * time.Hour
	default:
		return "30d", 30 * 24 * time.Hour
	}
}

// GetReportOverview 获取报表总览
func (s *StatsService) GetReportOverview(scope Scope, rangeStr string) (*ReportOverview, error) {
	label, window := parseRange(rangeStr)
	since := time.Now().Add(-window)

	overview := &ReportOverview{Range: label}

	if err := scopeContacts(
		s.DB.Model(&models.Contact{}).Where("contacts.created_at >= ?", since), scope).
		Count(&overview.NewContacts).Error; err != nil {
		return nil, err
	}

	// 按日消息量，入站/外发分列
	type dailyRow struct {
		Day      string
		Incoming int64
		Outgoing int64
	}
	var rows []dailyRow
	volumeQuery := scopeThroughContacts(
		s.DB.Model(&models.Message{}).Where("messages.created_at >= ?", since),
		"messages", scope)
	if err := volumeQuery.
		Select("DATE(messages.created_at) AS day, " +
			"SUM(CASE WHEN messages.message_type = 'incoming' THEN 1 ELSE 0 END) AS incoming, " +
			"SUM(CASE WHEN messages.message_type = 'outgoing' THEN 1 ELSE 0 END) AS outgoing").
		Group("DATE(messages.created_at)").
		Order("day").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	overview.MessageVolume = make([]DailyMessageCount, 0, len(rows))
	for _, r := range rows {
		overview.MessageVolume = append(overview.MessageVolume, DailyMessageCount{
			Day:      r.Day,
			Incoming: r.Incoming,
			Outgoing: r.Outgoing,
		})
	}

	// 需求分类分布
	var categories []CategoryCount
	categoryQuery := scopeThroughContacts(
		s.DB.Model(&models.Requirement{}).Where("requirements.created_at >= ?", since),
		"requirements", scope)
	if err := categoryQuery.
		Select("requirements.category AS category, COUNT(*) AS count").
		Group("requirements.category").
		Order("count DESC").
		Scan(&categories).Error; err != nil {
		return nil, err
	}
	overview.RequirementsByCategory = categories

	return overview, nil
}

// GetTeamMembers 获取团队成员及工作量
// 受限操作者只看到自己
func (s *StatsService) GetTeamMembers(scope Scope) ([]TeamMember, error) {
	var accounts []models.AdminAccount
	query := s.DB.Model(&models.AdminAccount{})
	if scope.Restricted() {
		query = query.Where("id = ?", scope.AdminID)
	}
	if err := query.Order("created_at ASC").Find(&accounts).Error; err != nil {
		return nil, err
	}

	members := make([]TeamMember, 0, len(accounts))
	for _, account := range accounts {
		member := TeamMember{
			ID:     account.ID,
			Name:   account.Name,
			Phone:  account.Phone,
			Tier:   account.Tier,
			Status: account.Status,
		}

		if err := s.DB.Model(&models.Contact{}).
			Where("assigned_admin_id = ?", account.ID).
			Count(&member.AssignedContacts).Error; err != nil {
			return nil, err
		}
		if err := s.DB.Model(&models.Need{}).
			Where("assigned_to = ? AND status = ?", account.ID, "open").
			Count(&member.OpenNeeds).Error; err != nil {
			return nil, err
		}

		members = append(members, member)
	}
	return members, nil
}

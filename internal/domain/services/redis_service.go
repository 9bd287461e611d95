package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
	"walink-crm-service/internal/infrastructure/config"

	"github.com/go-redis/redis/v8"
)

// 仪表盘统计缓存TTL
const dashboardStatsTTL = 30 * time.Second

// InterfaceRedisService defines the Redis service interface
type InterfaceRedisService interface {
	Set(key string, value interface{}, expiration time.Duration) error
	Get(key string, dest interface{}) error
	Delete(key string) error
	CacheDashboardStats(adminID uint, stats interface{}) error
	GetDashboardStats(adminID uint, dest interface{}) error
	Ping() error
}

// RedisService handles Redis operations
type RedisService struct {
	Client *redis.Client
	Ctx    context.Context
}

// NewRedisService creates a new Redis service
func NewRedisService(cfg *config.Config) InterfaceRedisService {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.GetRedisAddr(),
		DB:   cfg.RedisDB,
	})

	return &RedisService{
		Client: client,
		Ctx:    context.Background(),
	}
}

// Set sets a key-value pair in Redis with expiration
func (s *RedisService) Set(key string, value interface{}, expiration time.Duration) error {
	jsonValue, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return s.Client.Set(s.Ctx, key, jsonValue, expiration).Err()
}

// Get gets a value from Redis by key
func (s *RedisService) Get(key string, dest interface{}) error {
	val, err := s.Client.Get(s.Ctx, key).Result()
	if err != nil {
		return err
	}

	return json.Unmarshal([]byte(val), dest)
}

// Delete deletes a key from Redis
func (s *RedisService) Delete(key string) error {
	return s.Client.Del(s.Ctx, key).Err()
}

// dashboardStatsKey 仪表盘统计缓存键，按操作者分键
func dashboardStatsKey(adminID uint) string {
	return fmt.Sprintf("dashboard_stats:%d", adminID)
}

// CacheDashboardStats caches dashboard stats with a short TTL
func (s *RedisService) CacheDashboardStats(adminID uint, stats interface{}) error {
	return s.Set(dashboardStatsKey(adminID), stats, dashboardStatsTTL)
}

// GetDashboardStats gets cached dashboard stats
func (s *RedisService) GetDashboardStats(adminID uint, dest interface{}) error {
	return s.Get(dashboardStatsKey(adminID), dest)
}

// Ping checks the Redis connection
func (s *RedisService) Ping() error {
	ctx, cancel := context.WithTimeout(s.Ctx, 2*time.Second)
	defer cancel()
	return s.Client.Ping(ctx).Err()
}

package services

import (
	"errors"
	"fmt"
	"time"
	"walink-crm-service/internal/domain/models"
	"walink-crm-service/internal/infrastructure/config"
	"walink-crm-service/utils"

	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"
)

// 会话令牌有效期
const sessionTokenTTL = 7 * 24 * time.Hour

// InterfaceJWTService 定义JWT服务接口
type InterfaceJWTService interface {
	GenerateToken(adminID uint, tier string) (string, error)
	// ExtractClaims 验证令牌并提取声明
	// 过期、篡改、格式错误一律返回错误，调用方只需判断是否为nil
	ExtractClaims(tokenString string) (*SessionClaims, error)
	Login(phone, password string) (*LoginResult, error)
}

// SessionClaims 定义会话令牌的声明结构
type SessionClaims struct {
	AdminID uint   `json:"admin_id"`
	Tier    string `json:"tier"`
	jwt.RegisteredClaims
}

// LoginResult 表示登录结果
type LoginResult struct {
	Token   string               `json:"token"`
	Account *models.AdminAccount `json:"account"`
}

// JWTService 提供JWT相关服务
type JWTService struct {
	secretKey string
	issuer    string
	DB        *gorm.DB
}

// NewJWTService 创建一个新的JWT服务
func NewJWTService(cfg *config.Config, db *gorm.DB) InterfaceJWTService {
	return &JWTService{
		secretKey: cfg.JWTSecretKey,
		issuer:    "walink-crm-service",
		DB:        db,
	}
}

// GenerateToken 生成会话令牌，有效期7天
func (s *JWTService) GenerateToken(adminID uint, tier string) (string, error) {
	now := time.Now()
	claims := &SessionClaims{
		AdminID: adminID,
		Tier:    tier,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(sessionTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    s.issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.secretKey))
}

// ExtractClaims 验证令牌并提取声明
func (s *JWTService) ExtractClaims(tokenString string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// 验证签名算法
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.secretKey), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.AdminID == 0 {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

// Login 处理登录请求，手机号+密码
func (s *JWTService) Login(phone, password string) (*LoginResult, error) {
	var account models.AdminAccount
	if err := s.DB.Where("phone = ?", phone).First(&account).Error; err != nil {
		// 不区分账号不存在与密码错误
		return nil, ErrInvalidCredentials
	}

	if !utils.CheckPasswordHash(password, account.Password) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.GenerateToken(account.ID, account.Tier)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		Token:   token,
		Account: &account,
	}, nil
}

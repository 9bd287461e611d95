package services

import (
	"testing"
	"time"
	"walink-crm-service/internal/domain/models"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTServiceRoundTrip(t *testing.T) {
	db := newTestDB(t)
	svc := NewJWTService(newTestConfig(), db)

	token, err := svc.GenerateToken(42, models.TierClientAdmin)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ExtractClaims(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.AdminID)
	assert.Equal(t, models.TierClientAdmin, claims.Tier)
}

func TestJWTServiceRejectsTamperedToken(t *testing.T) {
	db := newTestDB(t)
	svc := NewJWTService(newTestConfig(), db)

	token, err := svc.GenerateToken(1, models.TierSuperAdmin)
	require.NoError(t, err)

	// 篡改最后一个字符
	tampered := token[:len(token)-1] + "x"
	_, err = svc.ExtractClaims(tampered)
	assert.Error(t, err)
}

func TestJWTServiceRejectsWrongSecret(t *testing.T) {
	db := newTestDB(t)
	svc := NewJWTService(newTestConfig(), db)

	// 用别的密钥签出来的令牌
	other := jwt.NewWithClaims(jwt.SigningMethodHS256, &SessionClaims{
		AdminID: 7,
		Tier:    models.TierClientAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := other.SignedString([]byte("another-secret"))
	require.NoError(t, err)

	_, err = svc.ExtractClaims(signed)
	assert.Error(t, err)
}

func TestJWTServiceRejectsExpiredToken(t *testing.T) {
	db := newTestDB(t)
	cfg := newTestConfig()
	svc := NewJWTService(cfg, db)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, &SessionClaims{
		AdminID: 7,
		Tier:    models.TierClientAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	})
	signed, err := expired.SignedString([]byte(cfg.JWTSecretKey))
	require.NoError(t, err)

	_, err = svc.ExtractClaims(signed)
	assert.Error(t, err)
}

func TestJWTServiceLogin(t *testing.T) {
	db := newTestDB(t)
	svc := NewJWTService(newTestConfig(), db)
	account := mustCreateAccount(t, db, "张三", "13800138000", "secret123", models.TierClientAdmin)

	result, err := svc.Login("13800138000", "secret123")
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, account.ID, result.Account.ID)

	// 错误凭证统一返回同一个错误，不能区分账号不存在与密码错误
	_, errWrongPassword := svc.Login("13800138000", "wrong")
	_, errNoAccount := svc.Login("13900000000", "secret123")
	assert.ErrorIs(t, errWrongPassword, ErrInvalidCredentials)
	assert.ErrorIs(t, errNoAccount, ErrInvalidCredentials)
}

package auth

import (
	"errors"
	"fmt"
	"time"

	"school_achievements/internal/config"

	"github.com/golang-jwt/jwt/v5"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

var ErrInvalidToken = errors.New("неверный или просроченный токен")

// Claims описывает содержимое JWT. Subject хранит email пользователя.
type Claims struct {
	UserID uint   `json:"user_id"`
	Type   string `json:"type"`
	jwt.RegisteredClaims
}

// TokenManager выпускает и проверяет пары access/refresh токенов.
type TokenManager struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration

	// NowFunc подменяется в тестах.
	NowFunc func() time.Time
}

func NewTokenManager(cfg config.JWTConfig) *TokenManager {
	return &TokenManager{
		accessSecret:  []byte(cfg.AccessSecret),
		refreshSecret: []byte(cfg.RefreshSecret),
		accessTTL:     cfg.AccessTTL,
		refreshTTL:    cfg.RefreshTTL,
		NowFunc:       time.Now,
	}
}

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// IssuePair выпускает access и refresh токены для пользователя.
func (m *TokenManager) IssuePair(userID uint, email string) (TokenPair, error) {
	access, err := m.issue(userID, email, TokenTypeAccess, m.accessTTL, m.accessSecret)
	if err != nil {
		return TokenPair{}, fmt.Errorf("ошибка при генерации access токена: %w", err)
	}
	refresh, err := m.issue(userID, email, TokenTypeRefresh, m.refreshTTL, m.refreshSecret)
	if err != nil {
		return TokenPair{}, fmt.Errorf("ошибка при генерации refresh токена: %w", err)
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (m *TokenManager) issue(userID uint, email, typ string, ttl time.Duration, secret []byte) (string, error) {
	now := m.NowFunc()
	claims := Claims{
		UserID: userID,
		Type:   typ,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func (m *TokenManager) ParseAccess(tokenString string) (*Claims, error) {
	return m.parse(tokenString, TokenTypeAccess, m.accessSecret)
}

func (m *TokenManager) ParseRefresh(tokenString string) (*Claims, error) {
	return m.parse(tokenString, TokenTypeRefresh, m.refreshSecret)
}

func (m *TokenManager) parse(tokenString, typ string, secret []byte) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(m.NowFunc))
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Type != typ || claims.Subject == "" || claims.UserID == 0 {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

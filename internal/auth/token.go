package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/openshelf/openshelf/internal/domain"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"

	DefaultAccessTTL  = 2 * time.Hour
	DefaultRefreshTTL = 7 * 24 * time.Hour
)

// Claims is the JWT payload: the authenticated user plus a type
// discriminator separating access from refresh tokens.
type Claims struct {
	UserID int64  `json:"user_id"`
	Type   string `json:"type"`
	jwt.RegisteredClaims
}

// TokenManager issues and validates HS256 access/refresh token pairs.
type TokenManager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewTokenManager(secret string) *TokenManager {
	return &TokenManager{
		secret:     []byte(secret),
		accessTTL:  DefaultAccessTTL,
		refreshTTL: DefaultRefreshTTL,
	}
}

func (m *TokenManager) sign(userID int64, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		Type:   tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// IssueAccess returns a short-lived access token for the user.
func (m *TokenManager) IssueAccess(userID int64) (string, error) {
	return m.sign(userID, TokenTypeAccess, m.accessTTL)
}

// IssueRefresh returns a long-lived refresh token for the user.
func (m *TokenManager) IssueRefresh(userID int64) (string, error) {
	return m.sign(userID, TokenTypeRefresh, m.refreshTTL)
}

// Parse validates the signature and expiry and returns the claims.
func (m *TokenManager) Parse(token string) (*Claims, error) {
	claims := new(Claims)
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.Unauthorized("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, domain.Unauthorized("invalid token or has expired")
	}
	return claims, nil
}

// ParseRefresh validates a refresh token, rejecting access tokens.
func (m *TokenManager) ParseRefresh(token string) (*Claims, error) {
	claims, err := m.Parse(token)
	if err != nil {
		return nil, err
	}
	if claims.Type != TokenTypeRefresh {
		return nil, domain.Unauthorized("invalid token or has expired")
	}
	return claims, nil
}

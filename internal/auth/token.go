// Package auth issues and verifies the three token types the service uses:
// bearer access tokens, email-verification tokens and password-reset tokens.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/d60-Lab/buzzboard/internal/config"
	"github.com/d60-Lab/buzzboard/pkg/apperr"
)

const (
	TokenBearer            = "bearer"
	TokenEmailVerification = "email_verification"
	TokenPasswordReset     = "password_reset"
)

// Claims binds a token to a user id and a token type. Subject carries the email.
type Claims struct {
	UserID string `json:"id"`
	Type   string `json:"typ"`
	jwt.RegisteredClaims
}

type TokenManager struct {
	secret    []byte
	accessTTL time.Duration
	verifyTTL time.Duration
	resetTTL  time.Duration
}

func NewTokenManager(cfg config.Auth) *TokenManager {
	return &TokenManager{
		secret:    []byte(cfg.Secret),
		accessTTL: cfg.AccessTokenTTL,
		verifyTTL: cfg.VerifyTokenTTL,
		resetTTL:  cfg.ResetTokenTTL,
	}
}

func (m *TokenManager) IssueAccess(userID, email string) (string, error) {
	return m.issue(userID, email, TokenBearer, m.accessTTL)
}

func (m *TokenManager) IssueEmailVerification(userID, email string) (string, error) {
	return m.issue(userID, email, TokenEmailVerification, m.verifyTTL)
}

func (m *TokenManager) IssuePasswordReset(userID, email string) (string, error) {
	return m.issue(userID, email, TokenPasswordReset, m.resetTTL)
}

func (m *TokenManager) issue(userID, email, typ string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		Type:   typ,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// Parse verifies a token of the expected type. Expired or malformed tokens map
// to Unauthorized; a valid token of the wrong type is InvalidInput.
func (m *TokenManager) Parse(tokenString, expectedType string) (*Claims, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperr.Unauthorized("token expired")
		}
		return nil, apperr.Unauthorized("invalid token")
	}
	if claims.Type != expectedType {
		return nil, apperr.InvalidInput("invalid token type")
	}
	return &claims, nil
}

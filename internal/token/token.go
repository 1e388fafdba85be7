// Package token signs and verifies the time-bound JWTs carrying a user
// identity claim. Access and refresh tokens use distinct secrets and
// lifetimes.
package token

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pius706975/poolseek-be/config"
	"github.com/pius706975/poolseek-be/internal/apperr"
)

// Claims carries the user identity inside a signed token.
type Claims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

// Issuer mints and verifies access and refresh tokens.
type Issuer struct {
	cfg config.JWTConfig
}

func NewIssuer(cfg config.JWTConfig) *Issuer {
	return &Issuer{cfg: cfg}
}

// IssueAccessToken returns a short-lived token proving identity for
// protected calls.
func (i *Issuer) IssueAccessToken(userID string) (string, error) {
	return sign(userID, []byte(i.cfg.AccessSecret), i.cfg.AccessTokenTTL)
}

// IssueRefreshToken returns a long-lived per-device token used solely to
// mint new access tokens.
func (i *Issuer) IssueRefreshToken(userID string) (string, error) {
	return sign(userID, []byte(i.cfg.RefreshSecret), i.cfg.RefreshTokenTTL)
}

// RefreshTokenTTL reports the configured refresh-token lifetime so callers
// can compute the stored expiration.
func (i *Issuer) RefreshTokenTTL() time.Duration {
	return i.cfg.RefreshTokenTTL
}

// VerifyAccessToken validates tokenString against the access secret and
// returns the user ID it carries. Invalid or expired tokens fail with 401,
// keeping the verifier's message.
func (i *Issuer) VerifyAccessToken(tokenString string) (string, error) {
	return verify(tokenString, []byte(i.cfg.AccessSecret))
}

func sign(userID string, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func verify(tokenString string, secret []byte) (string, error) {
	claims := Claims{}
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return secret, nil
	})
	if err != nil {
		return "", apperr.Unauthorized(err.Error())
	}
	if !token.Valid {
		return "", apperr.Unauthorized("invalid token")
	}
	if strings.TrimSpace(claims.UserID) == "" {
		return "", apperr.Unauthorized("missing user claim")
	}
	return claims.UserID, nil
}

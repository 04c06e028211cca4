// Package auth implements token issuance and the cache-aside resolution of
// the current user on protected endpoints.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token scopes. The same signing secret backs all three token kinds, the
// scope claim is what keeps them apart. Email verification tokens carry no
// scope at all, same as the system this one replaces.
const (
	ScopeAccess  = "access_token"
	ScopeRefresh = "refresh_token"
)

const (
	AccessTokenTTL  = 15 * time.Minute
	RefreshTokenTTL = 7 * 24 * time.Hour
	EmailTokenTTL   = 24 * time.Hour
)

// Claims is the payload of every token the API issues. Subject is the user's
// email.
type Claims struct {
	jwt.RegisteredClaims
	Scope string `json:"scope,omitempty"`
}

// TokenManager signs and validates tokens with a fixed secret and algorithm.
// It is built once at startup from the config and never mutated after.
type TokenManager struct {
	secret []byte
	method jwt.SigningMethod
}

func NewTokenManager(secret, algorithm string) (*TokenManager, error) {
	var method jwt.SigningMethod

	switch algorithm {
	case "HS256":
		method = jwt.SigningMethodHS256
	case "HS512":
		method = jwt.SigningMethodHS512
	default:
		return nil, fmt.Errorf("unsupported signing algorithm %q", algorithm)
	}

	return &TokenManager{
		secret: []byte(secret),
		method: method,
	}, nil
}

// CreateAccessToken issues a short-lived session token. A zero ttl falls back
// to the 15 minute default.
func (m *TokenManager) CreateAccessToken(email string, ttl time.Duration) (string, error) {
	if ttl == 0 {
		ttl = AccessTokenTTL
	}

	return m.sign(email, ScopeAccess, ttl)
}

// CreateRefreshToken issues a 7 day token used to rotate session tokens.
func (m *TokenManager) CreateRefreshToken(email string) (string, error) {
	return m.sign(email, ScopeRefresh, RefreshTokenTTL)
}

// CreateEmailToken issues the one day token embedded in verification mails.
// It deliberately has no scope claim.
func (m *TokenManager) CreateEmailToken(email string) (string, error) {
	return m.sign(email, "", EmailTokenTTL)
}

func (m *TokenManager) sign(email, scope string, ttl time.Duration) (string, error) {
	now := time.Now().UTC()

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Scope: scope,
	}

	return jwt.NewWithClaims(m.method, claims).SignedString(m.secret)
}

// VerifyToken decodes raw and checks signature, expiry and scope. Signature
// and expiry failures come back as ErrInvalidToken, a valid token with the
// wrong scope as ErrScopeMismatch. There is no expiry grace window.
func (m *TokenManager) VerifyToken(raw, expectedScope string) (*Claims, error) {
	claims, err := m.parse(raw)
	if err != nil {
		return nil, err
	}

	if claims.Scope != expectedScope {
		return nil, ErrScopeMismatch
	}

	return claims, nil
}

// EmailFromToken extracts the subject of an email verification token. Scope
// is not checked because those tokens are issued without one.
func (m *TokenManager) EmailFromToken(raw string) (string, error) {
	claims, err := m.parse(raw)
	if err != nil {
		return "", err
	}

	return claims.Subject, nil
}

func (m *TokenManager) parse(raw string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != m.method.Alg() {
			return nil, ErrInvalidToken
		}

		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// Package auth issues and verifies the HS256 bearer tokens handed out on login.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

const (
	AuthorizationHeader = "Authorization"
	Bearer              = "Bearer "
	TokenType           = "bearer"
)

var (
	ErrTokenExpired = errors.New("token expired")
	ErrInvalidToken = errors.New("invalid token")
)

type Config struct {
	SecretKey  string `envconfig:"SECRET_KEY" default:"change-me-in-env-please" json:"-"`
	TTLMinutes int    `envconfig:"ACCESS_TOKEN_EXPIRE_MINUTES" default:"60"`
}

type Claims struct {
	jwt.RegisteredClaims
}

type Manager struct {
	key []byte
	ttl time.Duration
}

func NewManager(cfg Config) *Manager {
	return &Manager{
		key: []byte(cfg.SecretKey),
		ttl: time.Duration(cfg.TTLMinutes) * time.Minute,
	}
}

// Issue signs a token for subject that expires after the configured TTL.
func (m *Manager) Issue(subject string) (string, error) {
	return m.IssueWithTTL(subject, m.ttl)
}

func (m *Manager) IssueWithTTL(subject string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.key)
}

// Decode verifies signature, algorithm and expiry of tokenStr.
func (m *Manager) Decode(tokenStr string) (*Claims, error) {
	claims := new(Claims)
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return m.key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		// claims are validated before the signature, so an expired token
		// must also carry a valid signature to be reported as expired.
		if errors.Is(err, jwt.ErrTokenExpired) && !errors.Is(err, jwt.ErrTokenSignatureInvalid) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (m *Manager) TTL() time.Duration {
	return m.ttl
}

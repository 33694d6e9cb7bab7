package auth

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"

	"github.com/Tomlord1122/todo-dashboard/internal/config"
	"github.com/Tomlord1122/todo-dashboard/internal/domain"
)

type TokenType string

const (
	AccessToken  TokenType = "access"
	RefreshToken TokenType = "refresh"
)

// Claims is the JWT payload for both token types. The subject is the user id;
// for refresh tokens the ID (jti) is the backing session id.
type Claims struct {
	Role domain.Role `json:"role,omitempty"`
	Type TokenType   `json:"typ"`
	jwt.RegisteredClaims
}

// TokenManager issues and verifies HS256 tokens. Access and refresh tokens
// are signed with different secrets.
type TokenManager struct {
	issuer        string
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	now           func() time.Time
}

func NewTokenManager(issuer string, cfg config.Auth) *TokenManager {
	return &TokenManager{
		issuer:        issuer,
		accessSecret:  []byte(cfg.AccessSecret),
		refreshSecret: []byte(cfg.RefreshSecret),
		accessTTL:     cfg.AccessTokenTTL,
		refreshTTL:    cfg.RefreshTokenTTL,
		now:           time.Now,
	}
}

// WithClock returns a copy of m that reads time from now.
func (m *TokenManager) WithClock(now func() time.Time) *TokenManager {
	c := *m
	c.now = now
	return &c
}

func (m *TokenManager) Now() time.Time { return m.now() }

// RefreshExpiry is the expiry a refresh token issued now would carry.
func (m *TokenManager) RefreshExpiry() time.Time {
	return m.now().Add(m.refreshTTL).Truncate(time.Second)
}

func (m *TokenManager) IssueAccess(user *domain.User) (string, error) {
	now := m.now()
	claims := Claims{
		Role: user.Role,
		Type: AccessToken,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			Issuer:    m.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.accessTTL)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.accessSecret)
	if err != nil {
		return "", errors.Wrap(err, "sign access token")
	}
	return token, nil
}

func (m *TokenManager) IssueRefresh(userID, sessionID string, expiresAt time.Time) (string, error) {
	claims := Claims{
		Type: RefreshToken,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sessionID,
			Subject:   userID,
			Issuer:    m.issuer,
			IssuedAt:  jwt.NewNumericDate(m.now()),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.refreshSecret)
	if err != nil {
		return "", errors.Wrap(err, "sign refresh token")
	}
	return token, nil
}

func (m *TokenManager) ParseAccess(token string) (*Claims, error) {
	return m.parse(token, m.accessSecret, AccessToken)
}

func (m *TokenManager) ParseRefresh(token string) (*Claims, error) {
	claims, err := m.parse(token, m.refreshSecret, RefreshToken)
	if err != nil {
		return nil, err
	}
	if claims.ID == "" {
		return nil, errors.Wrap(domain.ErrUnauthorized, "refresh token without session id")
	}
	return claims, nil
}

func (m *TokenManager) parse(token string, secret []byte, want TokenType) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (any, error) { return secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(m.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return nil, errors.Wrapf(domain.ErrUnauthorized, "parse %s token: %v", want, err)
	}
	if claims.Type != want || claims.Subject == "" {
		return nil, errors.Wrapf(domain.ErrUnauthorized, "unexpected %s token claims", want)
	}
	return claims, nil
}

// BearerToken extracts the token from an "Authorization: Bearer <token>" value.
func BearerToken(header string) (string, error) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", errors.Wrap(domain.ErrUnauthorized, "invalid authorization header")
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", errors.Wrap(domain.ErrUnauthorized, "empty bearer token")
	}
	return token, nil
}

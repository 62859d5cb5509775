package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/noah-isme/taptime-api/internal/models"
	appErrors "github.com/noah-isme/taptime-api/pkg/errors"
)

const tokenIssuer = "taptime-api"

// TokenConfig defines how session bearer tokens are signed.
type TokenConfig struct {
	Secret string
	TTL    time.Duration
	Issuer string
}

// TokenService issues and verifies the HS256 tokens that identify a session.
type TokenService struct {
	config TokenConfig
	now    func() time.Time
}

// NewTokenService constructs a TokenService.
func NewTokenService(config TokenConfig) *TokenService {
	if config.Issuer == "" {
		config.Issuer = tokenIssuer
	}
	if config.TTL <= 0 {
		config.TTL = 12 * time.Hour
	}
	return &TokenService{config: config, now: time.Now}
}

// TTL is the lifetime of issued tokens.
func (s *TokenService) TTL() time.Duration {
	return s.config.TTL
}

// Issue signs a token whose subject is the session id.
func (s *TokenService) Issue(sessionID string) (string, time.Time, error) {
	now := s.now().UTC()
	expiresAt := now.Add(s.config.TTL)
	claims := models.SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sessionID,
			Issuer:    s.config.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.Secret))
	if err != nil {
		return "", time.Time{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign session token")
	}
	return signed, expiresAt, nil
}

// Parse validates a token and returns its claims.
func (s *TokenService) Parse(tokenString string) (*models.SessionClaims, error) {
	claims := &models.SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.config.Secret), nil
	}, jwt.WithIssuer(s.config.Issuer), jwt.WithTimeFunc(s.now))
	if err != nil || !token.Valid {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid or expired session token")
	}
	if claims.SessionID() == "" {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "session token has no subject")
	}
	return claims, nil
}

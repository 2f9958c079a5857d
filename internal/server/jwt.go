// Package server provides the HTTP REST API for the hiring pipeline.
package server

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/hiredesk/hiredesk/internal/config"
	"github.com/hiredesk/hiredesk/internal/types"
)

// Claims represents JWT claims carrying the acting principal.
type Claims struct {
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email"`
	Role   string    `json:"role"`
	jwt.RegisteredClaims
}

// Principal converts the claims to the principal shape the hiring core uses.
func (c *Claims) Principal() types.Principal {
	return types.Principal{UserID: c.UserID, Email: c.Email, Role: c.Role}
}

// JWTService validates session tokens minted by the identity service with
// the shared secret. GenerateToken exists for tooling and tests; this
// process is not the issuer.
type JWTService struct {
	config *config.JWTConfig
}

// NewJWTService creates a new JWT service with the given configuration.
func NewJWTService(cfg *config.JWTConfig) *JWTService {
	return &JWTService{config: cfg}
}

// GenerateToken generates a signed token for the given principal.
func (s *JWTService) GenerateToken(principal types.Principal) (string, error) {
	now := time.Now()
	expiresAt := now.Add(time.Duration(s.config.ExpirationHours) * time.Hour)

	claims := &Claims{
		UserID: principal.UserID,
		Email:  principal.Email,
		Role:   principal.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.config.Secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// ValidateToken validates a token and returns the embedded principal.
func (s *JWTService) ValidateToken(tokenString string) (types.Principal, error) {
	if tokenString == "" {
		return types.Principal{}, fmt.Errorf("token string is empty")
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.Secret), nil
	})
	if err != nil {
		return types.Principal{}, fmt.Errorf("failed to parse token: %w", err)
	}
	if !token.Valid {
		return types.Principal{}, fmt.Errorf("token is not valid")
	}

	return claims.Principal(), nil
}

package adapters

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/spendlens/backend/internal/application/adapter"
	domainerror "github.com/spendlens/backend/internal/domain/error"
)

// CustomClaims represents the custom claims for JWT access tokens.
type CustomClaims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// tokenService implements the adapter.TokenService interface.
type tokenService struct {
	secret []byte
	expiry time.Duration
}

// NewTokenService creates a new token service instance.
func NewTokenService(secret string, expiry time.Duration) adapter.TokenService {
	if expiry <= 0 {
		expiry = 24 * time.Hour
	}
	return &tokenService{
		secret: []byte(secret),
		expiry: expiry,
	}
}

// GenerateAccessToken creates a signed access token for a user.
func (s *tokenService) GenerateAccessToken(userID string) (string, error) {
	now := time.Now().UTC()
	claims := CustomClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    "spendlens",
			Subject:   userID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ValidateAccessToken validates a token and returns its claims.
func (s *tokenService) ValidateAccessToken(ctx context.Context, tokenString string) (*adapter.TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &CustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, domainerror.NewInvalidTokenError(err)
	}

	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid {
		return nil, domainerror.ErrInvalidToken
	}
	if claims.UserID == "" {
		return nil, domainerror.ErrInvalidToken
	}

	return &adapter.TokenClaims{
		UserID: claims.UserID,
	}, nil
}
